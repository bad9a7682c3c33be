package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/trackcut/trackcut/internal/subtitle"
)

func newSubsCommand() *cobra.Command {
	var flatten bool

	cmd := &cobra.Command{
		Use:   "clean-subs <file.srt>",
		Short: "Merge duplicated cues in an SRT file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cleanPath, err := subtitle.CleanFile(args[0])
			if err != nil {
				return err
			}
			fmt.Printf("cleaned: %s\n", cleanPath)

			if flatten {
				plainPath, err := subtitle.FlattenFile(args[0])
				if err != nil {
					return err
				}
				fmt.Printf("transcript: %s\n", plainPath)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&flatten, "flatten", false, "Also write a plain-text transcript")
	return cmd
}
