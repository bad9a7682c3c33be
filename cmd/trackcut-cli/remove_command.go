package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/trackcut/trackcut/internal/batch"
	"github.com/trackcut/trackcut/internal/history"
	"github.com/trackcut/trackcut/internal/library"
	"github.com/trackcut/trackcut/internal/model"
	"github.com/trackcut/trackcut/internal/selection"
)

func newRemoveCommand(ctx *commandContext) *cobra.Command {
	var audioLangs []string
	var subLangs []string
	var workers int
	var assumeYes bool

	cmd := &cobra.Command{
		Use:   "remove <folder>",
		Short: "Remove tracks matching the given languages from every file in a folder",
		Long: `Remove scans the folder, marks every audio/subtitle track whose language
tag matches the requested languages, and rewrites the affected files in
place. Files without a matching track are left untouched. Tracks are
matched by each file's own language tags, never by position.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(audioLangs) == 0 && len(subLangs) == 0 {
				return fmt.Errorf("specify at least one of --audio-lang or --sub-lang")
			}

			ts, err := ctx.ensureToolset()
			if err != nil {
				return err
			}
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if workers <= 0 {
				workers = cfg.Batch.Workers
			}

			scanner := library.NewScanner(ts, cfg.Library.Extensions, cfg.Library.ProbeWorkers)
			files, err := scanner.Scan(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if len(files) == 0 {
				return fmt.Errorf("no video files found in %q", args[0])
			}

			sel := selection.NewModel()
			reports := sel.ApplyToAll(files, audioLangs, subLangs)
			printMatchReports(reports)

			marked := 0
			for _, report := range reports {
				if !report.Empty() {
					marked++
				}
			}
			if marked == 0 {
				fmt.Println("Nothing to remove; no file has a matching track.")
				return nil
			}

			if !assumeYes && !confirm(fmt.Sprintf("Rewrite %d of %d files in place?", marked, len(files))) {
				fmt.Println("Aborted.")
				return nil
			}

			store, err := history.Open(cfg.History.DatabasePath)
			var appender batch.HistoryAppender
			if err != nil {
				fmt.Fprintf(os.Stderr, "history unavailable: %v\n", err)
			} else {
				defer store.Close()
				appender = store
			}

			runner := batch.NewRunner(ts, appender)
			run := runner.Start(cmd.Context(), files, sel, workers)

			for job := range run.Results() {
				printJobResult(job)
			}

			summary := run.Wait()
			fmt.Printf("\n%d succeeded, %d failed, %d skipped of %d files\n",
				summary.Succeeded, summary.Failed, summary.Skipped, summary.Total)
			if summary.Failed > 0 {
				return fmt.Errorf("%d files failed", summary.Failed)
			}
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&audioLangs, "audio-lang", nil, "Audio languages to remove (e.g. jpn,fre)")
	cmd.Flags().StringSliceVar(&subLangs, "sub-lang", nil, "Subtitle languages to remove (e.g. spa)")
	cmd.Flags().IntVar(&workers, "workers", 0, "Files processed in parallel (default from config)")
	cmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "Skip the confirmation prompt")

	return cmd
}

func printMatchReports(reports []selection.MatchReport) {
	rows := make([][]string, 0, len(reports))
	for _, report := range reports {
		marked := "-"
		if !report.Empty() {
			marked = formatIndexList(report.Selected.Sorted())
		}
		missed := strings.Join(report.Missed, ", ")
		rows = append(rows, []string{report.File.Name(), marked, missed})
	}
	fmt.Println(renderTable(
		[]string{"File", "Tracks to remove", "No match for"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignLeft},
	))
}

func printJobResult(job *model.JobResult) {
	switch job.Status {
	case model.JobStatusSucceeded:
		if job.Detail != "" {
			fmt.Printf("ok    %s (%s)\n", job.File.Name(), job.Detail)
		} else {
			fmt.Printf("ok    %s removed %s\n", job.File.Name(), formatIndexList(job.Removed.Sorted()))
		}
	case model.JobStatusFailed:
		fmt.Printf("FAIL  %s: %s\n", job.File.Name(), job.Detail)
	}
}

func formatIndexList(indices []int) string {
	parts := make([]string, len(indices))
	for i, idx := range indices {
		parts[i] = fmt.Sprintf("#%d", idx)
	}
	return strings.Join(parts, " ")
}

func confirm(prompt string) bool {
	fmt.Printf("%s [y/N]: ", prompt)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}
