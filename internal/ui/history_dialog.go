package ui

import (
	"context"
	"log"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/trackcut/trackcut/internal/history"
)

const historyQueryTimeout = 5 * time.Second

// ShowHistoryDialog lists the most recent batch jobs from the history store.
func ShowHistoryDialog(window fyne.Window, store *history.Store) {
	ctx, cancel := context.WithTimeout(context.Background(), historyQueryTimeout)
	defer cancel()

	entries, err := store.Recent(ctx, HistoryDisplayLimit)
	if err != nil {
		log.Printf("Failed to load history: %v", err)
		dialog.ShowError(err, window)
		return
	}

	if len(entries) == 0 {
		dialog.ShowInformation("History", "No batch jobs recorded yet.", window)
		return
	}

	table := widget.NewTable(
		func() (int, int) {
			return len(entries) + 1, 4 // header row
		},
		func() fyne.CanvasObject {
			label := widget.NewLabel("")
			label.Truncation = fyne.TextTruncateEllipsis
			return label
		},
		func(id widget.TableCellID, obj fyne.CanvasObject) {
			label := obj.(*widget.Label)
			label.TextStyle = fyne.TextStyle{}

			if id.Row == 0 {
				label.TextStyle = fyne.TextStyle{Bold: true}
				label.SetText([]string{"File", "Removed", "Status", "Finished"}[id.Col])
				return
			}

			entry := entries[id.Row-1]
			switch id.Col {
			case 0:
				label.SetText(entry.FileName)
			case 1:
				if entry.Removed == "" {
					label.SetText(DashPlaceholder)
				} else {
					label.SetText(entry.Removed)
				}
			case 2:
				label.SetText(entry.Status.String())
			case 3:
				label.SetText(entry.FinishedAt.Local().Format("2006-01-02 15:04"))
			}
		},
	)
	table.SetColumnWidth(0, 260)
	table.SetColumnWidth(1, 90)
	table.SetColumnWidth(2, 90)
	table.SetColumnWidth(3, 140)

	content := container.NewStack(table)
	historyDialog := dialog.NewCustom("History", "Close", content, window)
	historyDialog.Resize(fyne.NewSize(HistoryDialogWidth, HistoryDialogHeight))
	historyDialog.Show()
}
