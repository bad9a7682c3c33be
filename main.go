package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"github.com/gofrs/flock"

	"github.com/trackcut/trackcut/internal/batch"
	"github.com/trackcut/trackcut/internal/config"
	"github.com/trackcut/trackcut/internal/history"
	"github.com/trackcut/trackcut/internal/library"
	"github.com/trackcut/trackcut/internal/selection"
	"github.com/trackcut/trackcut/internal/thumbs"
	"github.com/trackcut/trackcut/internal/tools"
	"github.com/trackcut/trackcut/internal/ui"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

const (
	AppID   = "com.trackcut.trackcut"
	AppName = "TrackCut"

	WindowWidth  = 900
	WindowHeight = 640
)

func main() {
	fmt.Printf("%s v%s starting...\n", AppName, version)

	cfg, err := config.Load("")
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Two instances replacing the same files in place would race; refuse to
	// start a second one.
	lock := flock.New(filepath.Join(os.TempDir(), "trackcut.lock"))
	locked, err := lock.TryLock()
	if err != nil {
		log.Fatalf("Failed to acquire instance lock: %v", err)
	}
	if !locked {
		log.Fatalf("Another TrackCut instance is already running")
	}
	defer lock.Unlock()

	ts, err := tools.Resolve(cfg.Tools.FFmpegPath, cfg.Tools.FFprobePath)
	if err != nil {
		log.Fatalf("Required tools missing: %v", err)
	}
	log.Printf("Using ffmpeg=%s ffprobe=%s", ts.FFmpeg, ts.FFprobe)

	store, err := history.Open(cfg.History.DatabasePath)
	if err != nil {
		log.Printf("History unavailable: %v", err)
		store = nil
	} else {
		defer store.Close()
	}

	scanner := library.NewScanner(ts, cfg.Library.Extensions, cfg.Library.ProbeWorkers)
	sel := selection.NewModel()
	gen := thumbs.NewGenerator(ts,
		time.Duration(cfg.Thumbnails.OffsetSeconds*float64(time.Second)),
		cfg.Thumbnails.CacheLimit)

	var appender batch.HistoryAppender
	if store != nil {
		appender = store
	}
	runner := batch.NewRunner(ts, appender)

	myApp := app.NewWithID(AppID)
	myApp.Settings().SetTheme(ui.NewCompactTheme())

	myWindow := myApp.NewWindow(fmt.Sprintf("%s v%s", AppName, version))
	myWindow.Resize(fyne.NewSize(WindowWidth, WindowHeight))

	ui.NewRootUI(myWindow, myApp, scanner, sel, runner, gen, store)

	myWindow.ShowAndRun()
}
