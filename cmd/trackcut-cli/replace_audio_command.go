package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/trackcut/trackcut/internal/remux"
)

func newReplaceAudioCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "replace-audio <video> <audio>",
		Short: "Write a copy of the video with its audio replaced",
		Long: `Replace-audio copies the video stream untouched and swaps the audio
for the given file, cutting the output at the shorter of the two.
The original video is left unchanged.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ts, err := ctx.ensureToolset()
			if err != nil {
				return err
			}

			outPath, err := remux.ReplaceAudio(cmd.Context(), ts, args[0], args[1])
			if err != nil {
				return err
			}
			fmt.Printf("replaced: %s\n", outPath)
			return nil
		},
	}
}
