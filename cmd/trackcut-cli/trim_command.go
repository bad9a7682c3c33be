package main

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/trackcut/trackcut/internal/library"
	"github.com/trackcut/trackcut/internal/remux"
)

func newTrimCommand(ctx *commandContext) *cobra.Command {
	var start string
	var end string
	var name string
	var outputDir string

	cmd := &cobra.Command{
		Use:   "trim <file>",
		Short: "Cut a section of a video without re-encoding",
		Long: `Trim stream-copies the section between --start and --end into a new
timestamped file next to the source. Offsets are given as seconds,
mm:ss, or hh:mm:ss; the end must lie within the video's duration.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ts, err := ctx.ensureToolset()
			if err != nil {
				return err
			}

			startOff, err := parseOffset(start)
			if err != nil {
				return err
			}
			endOff, err := parseOffset(end)
			if err != nil {
				return err
			}

			outPath, err := remux.Trim(cmd.Context(), ts, args[0], startOff, endOff)
			if err != nil {
				return err
			}
			outPath, err = deliverOutput(outPath, name, outputDir)
			if err != nil {
				return err
			}
			fmt.Printf("trimmed: %s\n", outPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&start, "start", "0", "Start offset (seconds, mm:ss, or hh:mm:ss)")
	cmd.Flags().StringVar(&end, "end", "", "End offset (seconds, mm:ss, or hh:mm:ss)")
	cmd.Flags().StringVar(&name, "name", "", "Rename the output to this file name")
	cmd.Flags().StringVar(&outputDir, "output-dir", "", "Move the output into this directory")
	cmd.MarkFlagRequired("end")

	return cmd
}

// parseOffset parses "90", "1:30", or "01:02:03" into a duration. Fractional
// seconds are accepted in the last component.
func parseOffset(s string) (time.Duration, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) == 0 || len(parts) > 3 {
		return 0, fmt.Errorf("invalid offset %q", s)
	}

	var total float64
	for _, part := range parts {
		v, err := strconv.ParseFloat(part, 64)
		if err != nil || v < 0 {
			return 0, fmt.Errorf("invalid offset %q", s)
		}
		total = total*60 + v
	}
	return time.Duration(total * float64(time.Second)), nil
}

// deliverOutput applies the optional --name and --output-dir flags to a
// produced file and returns its final path.
func deliverOutput(path, name, dir string) (string, error) {
	if name != "" {
		renamed, err := library.RenameFile(path, name)
		if err != nil {
			return "", err
		}
		path = renamed
	}
	if dir != "" {
		dest := filepath.Join(dir, filepath.Base(path))
		if err := library.MoveFile(path, dest); err != nil {
			return "", err
		}
		path = dest
	}
	return path, nil
}
