package ui

import (
	"fmt"
	"log"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/trackcut/trackcut/internal/config"
	"github.com/trackcut/trackcut/internal/model"
	"github.com/trackcut/trackcut/internal/selection"
)

// BatchDialog applies one language choice across every inspected file:
// "remove Japanese audio and Spanish subtitles everywhere" expressed once,
// matched against each file's own stream tags.
type BatchDialog struct {
	window   fyne.Window
	files    []*model.MediaFile
	sel      *selection.Model
	settings *config.Settings

	audioEntry *widget.Entry
	subEntry   *widget.Entry
	onApplied  func(reports []selection.MatchReport)
}

// ShowBatchDialog opens the apply-to-all language picker. onApplied receives
// the per-file match reports after the selection model has been updated.
func ShowBatchDialog(window fyne.Window, files []*model.MediaFile, sel *selection.Model, settings *config.Settings, onApplied func([]selection.MatchReport)) {
	bd := &BatchDialog{
		window:    window,
		files:     files,
		sel:       sel,
		settings:  settings,
		onApplied: onApplied,
	}
	bd.show()
}

func (bd *BatchDialog) show() {
	bd.audioEntry = widget.NewEntry()
	bd.audioEntry.SetPlaceHolder("e.g. jpn, fre")
	bd.audioEntry.SetText(strings.Join(bd.settings.GetAudioLanguages(), ", "))

	bd.subEntry = widget.NewEntry()
	bd.subEntry.SetPlaceHolder("e.g. spa")
	bd.subEntry.SetText(strings.Join(bd.settings.GetSubtitleLanguages(), ", "))

	hint := widget.NewLabel("Tracks are matched by each file's own language tags, not by position.\nFiles without a matching track are left unchanged.")
	hint.Importance = widget.LowImportance

	form := container.NewVBox(
		widget.NewLabel("Audio languages to remove:"),
		bd.audioEntry,
		widget.NewLabel("Subtitle languages to remove:"),
		bd.subEntry,
		widget.NewSeparator(),
		hint,
	)

	confirm := dialog.NewCustomConfirm(
		"Apply to all files",
		"Apply",
		"Cancel",
		form,
		bd.onConfirm,
		bd.window,
	)
	confirm.Resize(fyne.NewSize(BatchDialogWidth, BatchDialogHeight))
	confirm.Show()
}

func (bd *BatchDialog) onConfirm(confirmed bool) {
	if !confirmed {
		return
	}

	audioLangs := splitLanguageInput(bd.audioEntry.Text)
	subLangs := splitLanguageInput(bd.subEntry.Text)
	if len(audioLangs) == 0 && len(subLangs) == 0 {
		dialog.ShowInformation("Apply to all files", "Enter at least one language.", bd.window)
		return
	}

	bd.settings.SetAudioLanguages(audioLangs)
	bd.settings.SetSubtitleLanguages(subLangs)

	reports := bd.sel.ApplyToAll(bd.files, audioLangs, subLangs)
	log.Printf("Applied batch selection: audio=%v subtitles=%v across %d files",
		audioLangs, subLangs, len(bd.files))

	dialog.ShowInformation("Apply to all files", summarizeReports(reports), bd.window)

	if bd.onApplied != nil {
		bd.onApplied(reports)
	}
}

// summarizeReports renders the per-file match outcome for the confirmation
// popup, calling out files where nothing matched.
func summarizeReports(reports []selection.MatchReport) string {
	matched := 0
	var untouched []string
	for _, report := range reports {
		if report.Empty() {
			untouched = append(untouched, report.File.Name())
		} else {
			matched++
		}
	}

	summary := fmt.Sprintf("%d of %d files have tracks marked for removal.", matched, len(reports))
	if len(untouched) > 0 {
		const maxListed = 5
		listed := untouched
		if len(listed) > maxListed {
			listed = listed[:maxListed]
		}
		summary += "\n\nNo matching tracks (left unchanged):\n" + strings.Join(listed, "\n")
		if len(untouched) > maxListed {
			summary += fmt.Sprintf("\n… and %d more", len(untouched)-maxListed)
		}
	}
	return summary
}

func splitLanguageInput(raw string) []string {
	parts := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == ' ' || r == ';'
	})
	langs := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			langs = append(langs, trimmed)
		}
	}
	return langs
}
