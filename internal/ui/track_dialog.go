package ui

import (
	"fmt"
	"log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/trackcut/trackcut/internal/language"
	"github.com/trackcut/trackcut/internal/model"
	"github.com/trackcut/trackcut/internal/selection"
)

// TrackDialog lets the user tick the audio and subtitle streams of one file
// for removal. Checked means "remove this stream".
type TrackDialog struct {
	window fyne.Window
	file   *model.MediaFile
	sel    *selection.Model

	checks  map[int]*widget.Check // keyed by container stream index
	onApply func()
}

// ShowTrackDialog opens the per-file track picker. onApply runs after the
// selection model has been updated.
func ShowTrackDialog(window fyne.Window, file *model.MediaFile, sel *selection.Model, onApply func()) {
	td := &TrackDialog{
		window:  window,
		file:    file,
		sel:     sel,
		checks:  make(map[int]*widget.Check),
		onApply: onApply,
	}
	td.show()
}

func (td *TrackDialog) show() {
	current := td.sel.SelectionFor(td.file.Path)

	form := container.NewVBox()

	if len(td.file.AudioStreams) > 0 {
		form.Add(widget.NewLabelWithStyle("Audio tracks", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}))
		for _, stream := range td.file.AudioStreams {
			check := widget.NewCheck(describeAudio(stream), nil)
			check.Checked = current.Contains(stream.Index)
			td.checks[stream.Index] = check
			form.Add(check)
		}
	}

	if len(td.file.SubtitleStreams) > 0 {
		form.Add(widget.NewLabelWithStyle("Subtitle tracks", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}))
		for _, stream := range td.file.SubtitleStreams {
			check := widget.NewCheck(describeSubtitle(stream), nil)
			check.Checked = current.Contains(stream.Index)
			td.checks[stream.Index] = check
			form.Add(check)
		}
	}

	if len(td.checks) == 0 {
		dialog.ShowInformation("Tracks", "This file has no removable tracks.", td.window)
		return
	}

	hint := widget.NewLabel("Checked tracks are removed when the batch runs.")
	hint.Importance = widget.LowImportance

	content := container.NewBorder(nil, hint, nil, nil, container.NewVScroll(form))

	confirm := dialog.NewCustomConfirm(
		td.file.Name(),
		"Apply",
		"Cancel",
		content,
		td.onConfirm,
		td.window,
	)
	confirm.Resize(fyne.NewSize(TrackDialogWidth, TrackDialogHeight))
	confirm.Show()
}

func (td *TrackDialog) onConfirm(confirmed bool) {
	if !confirmed {
		return
	}

	var indices []int
	for idx, check := range td.checks {
		if check.Checked {
			indices = append(indices, idx)
		}
	}

	if err := td.sel.Select(td.file, indices); err != nil {
		log.Printf("Failed to store selection for %s: %v", td.file.Name(), err)
		dialog.ShowError(err, td.window)
		return
	}

	log.Printf("Selection for %s: %d of %d tracks marked", td.file.Name(), len(indices), len(td.checks))
	if td.onApply != nil {
		td.onApply()
	}
}

// describeAudio renders one audio stream as a checkbox label, e.g.
// "#1 aac · English · 6ch (default)".
func describeAudio(s model.AudioStream) string {
	label := fmt.Sprintf("#%d %s", s.Index, s.Codec)
	label += MiddleDotSeparator + language.DisplayName(s.Language)
	if s.Channels > 0 {
		label += fmt.Sprintf("%s%dch", MiddleDotSeparator, s.Channels)
	}
	if s.Title != "" {
		label += MiddleDotSeparator + s.Title
	}
	if s.Default {
		label += " (default)"
	}
	return label
}

// describeSubtitle renders one subtitle stream as a checkbox label.
func describeSubtitle(s model.SubtitleStream) string {
	label := fmt.Sprintf("#%d %s", s.Index, s.Codec)
	label += MiddleDotSeparator + language.DisplayName(s.Language)
	if s.Title != "" {
		label += MiddleDotSeparator + s.Title
	}
	if s.Forced {
		label += " (forced)"
	}
	return label
}
