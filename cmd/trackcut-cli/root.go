package main

import (
	"github.com/spf13/cobra"

	"github.com/trackcut/trackcut/internal/config"
	"github.com/trackcut/trackcut/internal/tools"
)

// commandContext carries lazily-initialized shared state for subcommands.
type commandContext struct {
	configFlag *string

	cfg *config.Config
	ts  *tools.Toolset
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	if c.cfg != nil {
		return c.cfg, nil
	}
	cfg, err := config.Load(*c.configFlag)
	if err != nil {
		return nil, err
	}
	c.cfg = cfg
	return cfg, nil
}

func (c *commandContext) ensureToolset() (tools.Toolset, error) {
	if c.ts != nil {
		return *c.ts, nil
	}
	cfg, err := c.ensureConfig()
	if err != nil {
		return tools.Toolset{}, err
	}
	ts, err := tools.Resolve(cfg.Tools.FFmpegPath, cfg.Tools.FFprobePath)
	if err != nil {
		return tools.Toolset{}, err
	}
	c.ts = &ts
	return ts, nil
}

func newRootCommand() *cobra.Command {
	var configFlag string

	ctx := &commandContext{configFlag: &configFlag}

	rootCmd := &cobra.Command{
		Use:           "trackcut-cli",
		Short:         "Remove audio and subtitle tracks from video files",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")

	rootCmd.AddCommand(newStreamsCommand(ctx))
	rootCmd.AddCommand(newRemoveCommand(ctx))
	rootCmd.AddCommand(newTrimCommand(ctx))
	rootCmd.AddCommand(newExtractAudioCommand(ctx))
	rootCmd.AddCommand(newReplaceAudioCommand(ctx))
	rootCmd.AddCommand(newAddSubsCommand(ctx))
	rootCmd.AddCommand(newHistoryCommand(ctx))
	rootCmd.AddCommand(newTranscriptCommand(ctx))
	rootCmd.AddCommand(newSubsCommand())

	return rootCmd
}
