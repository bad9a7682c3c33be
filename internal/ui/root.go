package ui

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/trackcut/trackcut/internal/batch"
	"github.com/trackcut/trackcut/internal/config"
	"github.com/trackcut/trackcut/internal/history"
	"github.com/trackcut/trackcut/internal/library"
	"github.com/trackcut/trackcut/internal/model"
	"github.com/trackcut/trackcut/internal/platform"
	"github.com/trackcut/trackcut/internal/selection"
	"github.com/trackcut/trackcut/internal/thumbs"
)

// RootUI represents the main UI structure
type RootUI struct {
	window   fyne.Window
	settings *config.Settings

	scanner *library.Scanner
	sel     *selection.Model
	runner  *batch.Runner
	thumbs  *thumbs.Generator
	store   *history.Store

	// Top bar
	folderEntry *widget.Entry
	scanBtn     *widget.Button

	// Toolbar
	batchBtn  *widget.Button
	runBtn    *widget.Button
	cancelBtn *widget.Button

	// Status area
	statusLabel *widget.Label
	progress    *widget.ProgressBar

	fileList *widget.List

	// Library and run state
	mu    sync.Mutex
	files []*model.MediaFile
	jobs  map[string]*model.JobResult // keyed by file path
	run   *batch.Run

	// UI update debouncing
	lastUIUpdate  time.Time
	uiUpdateMutex sync.Mutex
}

// NewRootUI creates and initializes the main UI
func NewRootUI(window fyne.Window, app fyne.App, scanner *library.Scanner, sel *selection.Model, runner *batch.Runner, gen *thumbs.Generator, store *history.Store) *RootUI {
	settings := config.NewSettings(app)

	// Ensure the library folder exists
	platform.CreateDirectoryIfNotExists(settings.GetVideoDirectory())

	ui := &RootUI{
		window:   window,
		settings: settings,
		scanner:  scanner,
		sel:      sel,
		runner:   runner,
		thumbs:   gen,
		store:    store,
		jobs:     make(map[string]*model.JobResult),
	}

	window.SetTitle("TrackCut")

	// Job transitions come from worker goroutines.
	ui.runner.SetUpdateCallback(ui.onJobUpdate)

	ui.setupUI()
	return ui
}

// setupUI creates and arranges all UI components
func (ui *RootUI) setupUI() {
	ui.createMenu()

	// Folder entry row
	ui.folderEntry = widget.NewEntry()
	ui.folderEntry.SetPlaceHolder("Folder with video files")
	ui.folderEntry.SetText(ui.settings.GetVideoDirectory())
	ui.folderEntry.OnSubmitted = func(string) { ui.onScan() }

	browseBtn := widget.NewButton(IconFolder, ui.onBrowseFolder)
	browseBtn.Importance = widget.LowImportance

	ui.scanBtn = widget.NewButton("Scan", ui.onScan)
	topPanel := container.NewBorder(nil, nil, browseBtn, ui.scanBtn, ui.folderEntry)

	// Toolbar row
	ui.batchBtn = widget.NewButton("Select by language…", ui.onShowBatchDialog)
	ui.runBtn = widget.NewButton(IconRun+" Run batch", ui.onRunBatch)
	ui.runBtn.Importance = widget.HighImportance
	ui.cancelBtn = widget.NewButton(IconStop+" Cancel", ui.onCancelBatch)
	ui.cancelBtn.Disable()

	historyBtn := widget.NewButton(IconHistory, ui.onShowHistory)
	historyBtn.Importance = widget.LowImportance
	settingsBtn := widget.NewButton(IconSettings, ui.onShowSettings)
	settingsBtn.Importance = widget.LowImportance

	toolbar := container.NewHBox(ui.batchBtn, ui.runBtn, ui.cancelBtn, historyBtn, settingsBtn)

	// Status area
	ui.statusLabel = widget.NewLabel("Scan a folder to begin.")
	ui.progress = widget.NewProgressBar()
	ui.progress.Hide()
	statusArea := container.NewVBox(ui.statusLabel, ui.progress)

	// File list
	ui.fileList = widget.NewList(
		func() int { return len(ui.snapshotFiles()) },
		func() fyne.CanvasObject { return ui.createFileItem() },
		func(id widget.ListItemID, obj fyne.CanvasObject) { ui.updateFileItem(id, obj) },
	)

	content := container.NewBorder(
		container.NewVBox(topPanel, toolbar), // top
		statusArea,                           // bottom
		nil,
		nil,
		ui.fileList, // center
	)
	ui.window.SetContent(content)
}

// createMenu creates the application menu
func (ui *RootUI) createMenu() {
	mainMenu := fyne.NewMainMenu(
		fyne.NewMenu("File",
			fyne.NewMenuItem("Open Folder…", ui.onBrowseFolder),
			fyne.NewMenuItem("Rescan", ui.onScan),
			fyne.NewMenuItemSeparator(),
			fyne.NewMenuItem("Settings", ui.onShowSettings),
		),
		fyne.NewMenu("Batch",
			fyne.NewMenuItem("Select by language…", ui.onShowBatchDialog),
			fyne.NewMenuItem("Clear all selections", ui.onClearSelections),
			fyne.NewMenuItemSeparator(),
			fyne.NewMenuItem("History", ui.onShowHistory),
		),
	)
	ui.window.SetMainMenu(mainMenu)
}

// createFileItem creates a new file row widget
func (ui *RootUI) createFileItem() fyne.CanvasObject {
	row := NewFileRow(&model.MediaFile{Path: "placeholder"})
	row.SetCallbacks(ui.onEditTracks, ui.onRevealFile, ui.onOpenFile)
	return row
}

// updateFileItem updates a file row with current data
func (ui *RootUI) updateFileItem(id widget.ListItemID, item fyne.CanvasObject) {
	files := ui.snapshotFiles()
	if id >= len(files) {
		return
	}
	file := files[id]

	row, ok := item.(*FileRow)
	if !ok {
		return
	}
	row.SetCallbacks(ui.onEditTracks, ui.onRevealFile, ui.onOpenFile)

	ui.mu.Lock()
	job := ui.jobs[file.Path]
	ui.mu.Unlock()

	row.UpdateFile(file, len(ui.sel.SelectionFor(file.Path)), job)

	// Thumbnails are cached by the generator; fetch off the UI thread and
	// apply only if the row still shows the same file.
	if file.ProbeError == "" {
		go func(path string) {
			data, err := ui.thumbs.Thumbnail(context.Background(), path)
			if err != nil {
				log.Printf("Thumbnail failed for %s: %v", path, err)
				return
			}
			fyne.Do(func() {
				if row.file != nil && row.file.Path == path {
					row.SetThumbnail(data)
				}
			})
		}(file.Path)
	}
}

// snapshotFiles returns the current library slice under the lock.
func (ui *RootUI) snapshotFiles() []*model.MediaFile {
	ui.mu.Lock()
	defer ui.mu.Unlock()
	return ui.files
}

// onBrowseFolder handles folder selection
func (ui *RootUI) onBrowseFolder() {
	dialog.ShowFolderOpen(func(uri fyne.ListableURI, err error) {
		if err != nil || uri == nil {
			return
		}
		ui.folderEntry.SetText(uri.Path())
		ui.onScan()
	}, ui.window)
}

// onScan scans the selected folder and probes every video file
func (ui *RootUI) onScan() {
	dir := ui.folderEntry.Text
	if dir == "" {
		dialog.ShowInformation("Scan", "Choose a folder first.", ui.window)
		return
	}

	ui.settings.SetVideoDirectory(dir)
	ui.scanBtn.Disable()
	ui.statusLabel.SetText("Scanning " + dir + "…")
	log.Printf("Scanning folder: %s", dir)

	go func() {
		files, err := ui.scanner.Scan(context.Background(), dir)

		fyne.Do(func() {
			ui.scanBtn.Enable()
			if err != nil {
				log.Printf("Scan failed for %s: %v", dir, err)
				ui.statusLabel.SetText("Scan failed: " + err.Error())
				dialog.ShowError(err, ui.window)
				return
			}

			ui.mu.Lock()
			ui.files = files
			ui.jobs = make(map[string]*model.JobResult)
			ui.mu.Unlock()
			ui.sel.Reset()
			ui.progress.Hide()

			unreadable := 0
			for _, f := range files {
				if f.ProbeError != "" {
					unreadable++
				}
			}
			status := fmt.Sprintf("%d video files", len(files))
			if unreadable > 0 {
				status += fmt.Sprintf(" (%d unreadable)", unreadable)
			}
			ui.statusLabel.SetText(status)
			ui.fileList.Refresh()
			log.Printf("Scan finished: %d files, %d unreadable", len(files), unreadable)
		})
	}()
}

// onEditTracks opens the per-file track picker
func (ui *RootUI) onEditTracks(file *model.MediaFile) {
	ShowTrackDialog(ui.window, file, ui.sel, func() {
		ui.fileList.Refresh()
	})
}

// onShowBatchDialog opens the apply-to-all language dialog
func (ui *RootUI) onShowBatchDialog() {
	files := ui.snapshotFiles()
	if len(files) == 0 {
		dialog.ShowInformation("Apply to all files", "Scan a folder first.", ui.window)
		return
	}
	ShowBatchDialog(ui.window, files, ui.sel, ui.settings, func([]selection.MatchReport) {
		ui.fileList.Refresh()
	})
}

// onClearSelections drops every pending selection
func (ui *RootUI) onClearSelections() {
	ui.sel.Reset()
	ui.fileList.Refresh()
}

// onRunBatch starts processing the selected tracks across all files
func (ui *RootUI) onRunBatch() {
	files := ui.snapshotFiles()
	if len(files) == 0 {
		dialog.ShowInformation("Run batch", "Scan a folder first.", ui.window)
		return
	}

	ui.mu.Lock()
	running := ui.run != nil
	ui.mu.Unlock()
	if running {
		dialog.ShowInformation("Run batch", "A batch is already running.", ui.window)
		return
	}

	marked := 0
	for _, file := range files {
		if len(ui.sel.SelectionFor(file.Path)) > 0 {
			marked++
		}
	}

	if !ui.settings.GetConfirmBeforeRun() {
		ui.startRun(files)
		return
	}

	message := fmt.Sprintf("Remove the marked tracks from %d of %d files?\nOriginals are replaced in place.", marked, len(files))
	dialog.ShowConfirm("Run batch", message, func(confirmed bool) {
		if confirmed {
			ui.startRun(files)
		}
	}, ui.window)
}

// startRun kicks off a batch run and watches it to completion
func (ui *RootUI) startRun(files []*model.MediaFile) {
	log.Printf("Starting batch run over %d files", len(files))

	run := ui.runner.Start(context.Background(), files, ui.sel, ui.settings.GetBatchWorkers())

	ui.mu.Lock()
	ui.run = run
	ui.jobs = make(map[string]*model.JobResult)
	for _, job := range run.Jobs() {
		ui.jobs[job.File.Path] = job
	}
	ui.mu.Unlock()

	ui.runBtn.Disable()
	ui.batchBtn.Disable()
	ui.scanBtn.Disable()
	ui.cancelBtn.Enable()
	ui.progress.SetValue(0)
	ui.progress.Show()
	ui.statusLabel.SetText("Processing…")

	go func() {
		finished := 0
		total := len(files)
		for job := range run.Results() {
			finished++
			done := finished
			lastJob := job
			fyne.Do(func() {
				ui.progress.SetValue(float64(done) / float64(total))
				ui.statusLabel.SetText(fmt.Sprintf("Processing %d/%d — %s", done, total, lastJob.File.Name()))
			})
		}

		summary := run.Wait()
		log.Printf("Batch finished: %d succeeded, %d failed, %d skipped of %d",
			summary.Succeeded, summary.Failed, summary.Skipped, summary.Total)

		fyne.Do(func() {
			ui.mu.Lock()
			ui.run = nil
			ui.mu.Unlock()

			ui.runBtn.Enable()
			ui.batchBtn.Enable()
			ui.scanBtn.Enable()
			ui.cancelBtn.Disable()
			ui.progress.Hide()
			ui.statusLabel.SetText(fmt.Sprintf("Done: %d succeeded, %d failed, %d skipped",
				summary.Succeeded, summary.Failed, summary.Skipped))
			ui.showSummary(summary)

			// Stream layouts changed on disk; rescan to reflect them.
			ui.onScan()
		})
	}()
}

// onCancelBatch stops the active run
func (ui *RootUI) onCancelBatch() {
	ui.mu.Lock()
	run := ui.run
	ui.mu.Unlock()

	if run == nil {
		return
	}
	log.Printf("Canceling batch run")
	run.Cancel()
	ui.cancelBtn.Disable()
}

// showSummary pops the end-of-run report, listing failures with their
// captured diagnostics.
func (ui *RootUI) showSummary(summary model.BatchSummary) {
	text := fmt.Sprintf("Processed %d files: %d succeeded, %d failed, %d skipped.",
		summary.Total, summary.Succeeded, summary.Failed, summary.Skipped)

	for _, job := range summary.Results {
		if job.Status == model.JobStatusFailed {
			text += fmt.Sprintf("\n\n%s %s\n%s", IconError, job.File.Name(), job.Detail)
		}
	}

	dialog.ShowInformation("Batch complete", text, ui.window)
}

// onJobUpdate handles job transitions from the batch runner
func (ui *RootUI) onJobUpdate(job *model.JobResult) {
	log.Printf("Job update: id=%s file=%s status=%s", job.ID, job.File.Name(), job.Status)

	ui.mu.Lock()
	ui.jobs[job.File.Path] = job
	ui.mu.Unlock()

	ui.debouncedRefresh(job.Status.IsTerminal())
}

// debouncedRefresh limits list refresh frequency during a run; terminal
// transitions always refresh so final states are never dropped.
func (ui *RootUI) debouncedRefresh(force bool) {
	ui.uiUpdateMutex.Lock()
	now := time.Now()
	if !force && now.Sub(ui.lastUIUpdate) < UIUpdateDebounce {
		ui.uiUpdateMutex.Unlock()
		return
	}
	ui.lastUIUpdate = now
	ui.uiUpdateMutex.Unlock()

	fyne.Do(func() {
		ui.fileList.Refresh()
	})
}

// onRevealFile handles revealing a file in the system file manager
func (ui *RootUI) onRevealFile(filePath string) {
	if err := platform.OpenFileInManager(filePath); err != nil {
		log.Printf("Error revealing file %s: %v", filePath, err)
		dialog.ShowError(err, ui.window)
	}
}

// onOpenFile handles opening a file with the default application
func (ui *RootUI) onOpenFile(filePath string) {
	if err := platform.OpenFileWithDefaultApp(filePath); err != nil {
		log.Printf("Error opening file %s: %v", filePath, err)
		dialog.ShowError(err, ui.window)
	}
}

// onShowHistory shows recorded batch jobs
func (ui *RootUI) onShowHistory() {
	if ui.store == nil {
		dialog.ShowInformation("History", "History is not available.", ui.window)
		return
	}
	ShowHistoryDialog(ui.window, ui.store)
}

// onShowSettings shows the settings dialog
func (ui *RootUI) onShowSettings() {
	NewSettingsDialog(ui.settings, ui.window).Show()
}
