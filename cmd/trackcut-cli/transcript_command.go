package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/trackcut/trackcut/internal/transcript"
)

func newTranscriptCommand(ctx *commandContext) *cobra.Command {
	var languages string
	var outputDir string

	cmd := &cobra.Command{
		Use:   "transcript <url>",
		Short: "Download a video's subtitles and produce a plain-text transcript",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if languages == "" {
				languages = cfg.Transcript.Languages
			}
			if outputDir == "" {
				outputDir = cfg.Transcript.OutputDir
			}

			fetcher := transcript.NewFetcher(outputDir, languages)
			result, err := fetcher.Fetch(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			fmt.Printf("subtitles:  %s\n", result.SubtitlePath)
			if result.CleanPath != "" {
				fmt.Printf("cleaned:    %s\n", result.CleanPath)
			}
			fmt.Printf("transcript: %s\n", result.PlainPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&languages, "langs", "", "Subtitle languages (comma-separated, default from config)")
	cmd.Flags().StringVar(&outputDir, "dir", "", "Output directory (default from config)")
	return cmd
}
