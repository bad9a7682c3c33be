package ui

import (
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/trackcut/trackcut/internal/config"
)

// SettingsDialog represents the settings configuration dialog
type SettingsDialog struct {
	settings *config.Settings
	window   fyne.Window
	dialog   *dialog.ConfirmDialog

	// UI components
	videoDirEntry *widget.Entry
	workersEntry  *widget.Entry
	confirmCheck  *widget.Check
}

// NewSettingsDialog creates a new settings dialog
func NewSettingsDialog(settings *config.Settings, window fyne.Window) *SettingsDialog {
	sd := &SettingsDialog{
		settings: settings,
		window:   window,
	}

	sd.createUI()
	return sd
}

// Show displays the settings dialog
func (sd *SettingsDialog) Show() {
	sd.loadCurrentSettings()
	sd.dialog.Show()
}

// createUI creates the settings dialog UI
func (sd *SettingsDialog) createUI() {
	// Video directory selection
	sd.videoDirEntry = widget.NewEntry()
	sd.videoDirEntry.SetPlaceHolder("Video folder path")

	browseDirBtn := widget.NewButton("Browse", sd.onBrowseDirectory)
	videoDirRow := container.NewBorder(nil, nil, nil, browseDirBtn, sd.videoDirEntry)

	// Parallel batch workers
	sd.workersEntry = widget.NewEntry()
	sd.workersEntry.SetPlaceHolder("1-8")

	// Confirmation before running a batch
	sd.confirmCheck = widget.NewCheck("Ask before running a batch", nil)

	// Create form
	form := container.NewVBox(
		widget.NewLabel("Library"),
		widget.NewSeparator(),

		widget.NewLabel("Video Folder:"),
		videoDirRow,

		widget.NewSeparator(),
		widget.NewLabel("Batch Processing"),
		widget.NewSeparator(),

		widget.NewLabel("Parallel Files:"),
		sd.workersEntry,

		sd.confirmCheck,
	)

	// Create dialog with buttons
	sd.dialog = dialog.NewCustomConfirm(
		"Settings",
		"Save",
		"Cancel",
		form,
		sd.onSave,
		sd.window,
	)

	sd.dialog.Resize(fyne.NewSize(SettingsDialogWidth, SettingsDialogHeight))
}

// loadCurrentSettings loads current settings into the UI
func (sd *SettingsDialog) loadCurrentSettings() {
	sd.videoDirEntry.SetText(sd.settings.GetVideoDirectory())
	sd.workersEntry.SetText(strconv.Itoa(sd.settings.GetBatchWorkers()))
	sd.confirmCheck.SetChecked(sd.settings.GetConfirmBeforeRun())
}

// onBrowseDirectory handles directory browsing
func (sd *SettingsDialog) onBrowseDirectory() {
	dialog.ShowFolderOpen(func(uri fyne.ListableURI, err error) {
		if err != nil || uri == nil {
			return
		}
		sd.videoDirEntry.SetText(uri.Path())
	}, sd.window)
}

// onSave handles saving the settings
func (sd *SettingsDialog) onSave(confirmed bool) {
	if !confirmed {
		return
	}

	if dir := sd.videoDirEntry.Text; dir != "" {
		sd.settings.SetVideoDirectory(dir)
	}

	if workersStr := sd.workersEntry.Text; workersStr != "" {
		if workers, err := strconv.Atoi(workersStr); err == nil {
			sd.settings.SetBatchWorkers(workers)
		}
	}

	sd.settings.SetConfirmBeforeRun(sd.confirmCheck.Checked)

	dialog.ShowInformation("Settings", "Settings saved successfully!", sd.window)
}
