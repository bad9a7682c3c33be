package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/trackcut/trackcut/internal/history"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recently finished batch jobs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			store, err := history.Open(cfg.History.DatabasePath)
			if err != nil {
				return err
			}
			defer store.Close()

			entries, err := store.Recent(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Println("No batch jobs recorded yet.")
				return nil
			}

			rows := make([][]string, 0, len(entries))
			for _, entry := range entries {
				removed := entry.Removed
				if removed == "" {
					removed = "-"
				}
				rows = append(rows, []string{
					entry.FileName,
					removed,
					entry.Status.String(),
					entry.Detail,
					entry.FinishedAt.Local().Format("2006-01-02 15:04"),
				})
			}
			fmt.Println(renderTable(
				[]string{"File", "Removed", "Status", "Detail", "Finished"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignLeft},
			))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 50, "Maximum entries to show")
	return cmd
}
