package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/trackcut/trackcut/internal/remux"
)

func newAddSubsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "add-subs <video> <subtitle>...",
		Short: "Mux subtitle files into a copy of a video",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ts, err := ctx.ensureToolset()
			if err != nil {
				return err
			}

			outPath, err := remux.AddSubtitles(cmd.Context(), ts, args[0], args[1:])
			if err != nil {
				return err
			}
			fmt.Printf("subtitled: %s\n", outPath)
			return nil
		},
	}
}
