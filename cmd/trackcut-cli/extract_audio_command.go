package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/trackcut/trackcut/internal/remux"
)

func newExtractAudioCommand(ctx *commandContext) *cobra.Command {
	var outputDir string

	cmd := &cobra.Command{
		Use:   "extract-audio <file>",
		Short: "Save a video's audio track as an mp3",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ts, err := ctx.ensureToolset()
			if err != nil {
				return err
			}

			outPath, err := remux.ExtractAudio(cmd.Context(), ts, args[0])
			if err != nil {
				return err
			}
			outPath, err = deliverOutput(outPath, "", outputDir)
			if err != nil {
				return err
			}
			fmt.Printf("audio: %s\n", outPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&outputDir, "output-dir", "", "Move the output into this directory")
	return cmd
}
