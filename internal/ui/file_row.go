package ui

import (
	"fmt"
	"log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/trackcut/trackcut/internal/model"
)

// FileRow represents one video file in the library list: thumbnail, name,
// stream summary, selection count, and the status of its batch job.
type FileRow struct {
	widget.BaseWidget

	file     *model.MediaFile
	job      *model.JobResult
	selected int

	// UI components
	thumbnail    *canvas.Image
	nameLabel    *widget.Label
	summaryLabel *widget.Label
	statusLabel  *widget.Label

	// Action buttons
	tracksBtn *widget.Button
	revealBtn *widget.Button
	playBtn   *widget.Button

	// Callbacks
	onEditTracks func(file *model.MediaFile)
	onReveal     func(filePath string)
	onOpen       func(filePath string)
}

// NewFileRow creates a new file row widget
func NewFileRow(file *model.MediaFile) *FileRow {
	if file == nil {
		log.Printf("Warning: NewFileRow called with nil file")
		file = &model.MediaFile{Path: "placeholder"}
	}

	fr := &FileRow{file: file}
	fr.ExtendBaseWidget(fr)
	fr.createUI()
	fr.updateFromFile()
	return fr
}

// SetCallbacks sets the action callbacks
func (fr *FileRow) SetCallbacks(
	onEditTracks func(file *model.MediaFile),
	onReveal func(filePath string),
	onOpen func(filePath string),
) {
	fr.onEditTracks = onEditTracks
	fr.onReveal = onReveal
	fr.onOpen = onOpen
}

// UpdateFile updates the row with new file data and selection count
func (fr *FileRow) UpdateFile(file *model.MediaFile, selected int, job *model.JobResult) {
	if file == nil {
		log.Printf("Warning: UpdateFile called with nil file for %s", fr.file.Path)
		return
	}

	fr.file = file
	fr.selected = selected
	fr.job = job
	fr.updateFromFile()
	fr.Refresh()
}

// SetThumbnail sets the preview image from raw JPEG bytes
func (fr *FileRow) SetThumbnail(data []byte) {
	if len(data) == 0 {
		return
	}
	resource := fyne.NewStaticResource(fr.file.Name()+".jpg", data)
	fr.thumbnail.Resource = resource
	fr.thumbnail.Refresh()
}

// createUI creates the UI components
func (fr *FileRow) createUI() {
	fr.thumbnail = canvas.NewImageFromResource(theme.FileVideoIcon())
	fr.thumbnail.SetMinSize(fyne.NewSize(ThumbnailWidth, ThumbnailHeight))
	fr.thumbnail.FillMode = canvas.ImageFillContain

	fr.nameLabel = widget.NewLabel("")
	fr.nameLabel.TextStyle = fyne.TextStyle{Bold: true}
	fr.nameLabel.Truncation = fyne.TextTruncateEllipsis
	fr.nameLabel.Alignment = fyne.TextAlignLeading

	fr.summaryLabel = widget.NewLabel("")
	fr.summaryLabel.Truncation = fyne.TextTruncateEllipsis

	fr.statusLabel = widget.NewLabel("")
	fr.statusLabel.Alignment = fyne.TextAlignTrailing

	fr.tracksBtn = widget.NewButton("tracks", func() {
		if fr.onEditTracks != nil {
			fr.onEditTracks(fr.file)
		}
	})
	fr.tracksBtn.Importance = widget.MediumImportance

	fr.revealBtn = widget.NewButton("reveal", func() {
		if fr.onReveal != nil {
			fr.onReveal(fr.file.Path)
		}
	})
	fr.revealBtn.Importance = widget.LowImportance

	fr.playBtn = widget.NewButton("play", func() {
		if fr.onOpen != nil {
			fr.onOpen(fr.file.Path)
		}
	})
	fr.playBtn.Importance = widget.LowImportance
}

// updateFromFile updates UI components based on file and job state
func (fr *FileRow) updateFromFile() {
	fr.nameLabel.SetText(fr.file.Name())

	summary := fr.file.StreamSummary()
	if fr.file.ProbeError == "" {
		details := fr.file.DurationString() + MiddleDotSeparator + model.FormatSize(fr.file.Size)
		summary = summary + MiddleDotSeparator + details
	}
	fr.summaryLabel.SetText(summary)

	fr.updateStatus()
	fr.updateButtons()
}

// updateStatus renders the job status or the pending selection count
func (fr *FileRow) updateStatus() {
	if fr.job != nil {
		switch fr.job.Status {
		case model.JobStatusFailed:
			fr.statusLabel.Importance = widget.DangerImportance
			fr.statusLabel.SetText(IconError + " " + fr.job.Status.String())
		case model.JobStatusSucceeded:
			fr.statusLabel.Importance = widget.SuccessImportance
			fr.statusLabel.SetText(fr.job.Status.String())
		case model.JobStatusRunning:
			fr.statusLabel.Importance = widget.HighImportance
			fr.statusLabel.SetText(IconRun + " " + fr.job.Status.String())
		default:
			fr.statusLabel.Importance = widget.MediumImportance
			fr.statusLabel.SetText("⏳ " + fr.job.Status.String())
		}
		return
	}

	fr.statusLabel.Importance = widget.MediumImportance
	if fr.file.ProbeError != "" {
		fr.statusLabel.Importance = widget.WarningImportance
		fr.statusLabel.SetText("unreadable")
	} else if fr.selected > 0 {
		fr.statusLabel.SetText(fmt.Sprintf("%d to remove", fr.selected))
	} else {
		fr.statusLabel.SetText(DashPlaceholder)
	}
}

// updateButtons updates button states based on file state
func (fr *FileRow) updateButtons() {
	if fr.file.ProbeError != "" || fr.file.StreamCount() == 0 {
		fr.tracksBtn.Disable()
	} else {
		fr.tracksBtn.Enable()
	}

	// A running job owns the file; no track edits mid-flight.
	if fr.job != nil && !fr.job.Status.IsTerminal() {
		fr.tracksBtn.Disable()
	}
}

// CreateRenderer creates the widget renderer
func (fr *FileRow) CreateRenderer() fyne.WidgetRenderer {
	info := container.NewVBox(fr.nameLabel, fr.summaryLabel)

	actions := container.NewHBox(fr.tracksBtn, fr.revealBtn, fr.playBtn)
	rightCluster := container.NewBorder(nil, nil, nil, actions, fr.statusLabel)

	mainContent := container.NewBorder(nil, nil, fr.thumbnail, rightCluster, info)

	layout := container.NewVBox(mainContent, widget.NewSeparator())
	return widget.NewSimpleRenderer(layout)
}
