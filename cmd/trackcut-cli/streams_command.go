package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/trackcut/trackcut/internal/language"
	"github.com/trackcut/trackcut/internal/library"
	"github.com/trackcut/trackcut/internal/model"
	"github.com/trackcut/trackcut/internal/probe"
)

func newStreamsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "streams <folder|file>",
		Short: "List video files and their removable tracks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ts, err := ctx.ensureToolset()
			if err != nil {
				return err
			}
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			target := args[0]
			info, err := os.Stat(target)
			if err != nil {
				return err
			}

			if !info.IsDir() {
				file, err := probe.Inspect(cmd.Context(), ts, target)
				if err != nil {
					return err
				}
				printStreamDetail(file)
				return nil
			}

			scanner := library.NewScanner(ts, cfg.Library.Extensions, cfg.Library.ProbeWorkers)
			files, err := scanner.Scan(cmd.Context(), target)
			if err != nil {
				return err
			}
			printFolderSummary(files)
			return nil
		},
	}
}

func printFolderSummary(files []*model.MediaFile) {
	rows := make([][]string, 0, len(files))
	for _, file := range files {
		duration := file.DurationString()
		if file.ProbeError != "" {
			duration = "?"
		}
		rows = append(rows, []string{
			file.Name(),
			duration,
			model.FormatSize(file.Size),
			file.StreamSummary(),
		})
	}
	fmt.Println(renderTable(
		[]string{"File", "Duration", "Size", "Tracks"},
		rows,
		[]columnAlignment{alignLeft, alignRight, alignRight, alignLeft},
	))
}

func printStreamDetail(file *model.MediaFile) {
	fmt.Printf("%s (%s, %s)\n\n", file.Name(), file.Container, file.DurationString())

	rows := make([][]string, 0, file.StreamCount())
	for _, s := range file.AudioStreams {
		note := ""
		if s.Default {
			note = "default"
		}
		rows = append(rows, []string{
			strconv.Itoa(s.Index), "audio", s.Codec,
			language.DisplayName(s.Language), fmt.Sprintf("%dch", s.Channels), note,
		})
	}
	for _, s := range file.SubtitleStreams {
		note := ""
		if s.Forced {
			note = "forced"
		}
		rows = append(rows, []string{
			strconv.Itoa(s.Index), "subtitle", s.Codec,
			language.DisplayName(s.Language), "", note,
		})
	}

	fmt.Println(renderTable(
		[]string{"Index", "Type", "Codec", "Language", "Channels", "Flags"},
		rows,
		[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft, alignRight, alignLeft},
	))
}
