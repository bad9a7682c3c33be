package config

import (
	"strings"

	"fyne.io/fyne/v2"

	"github.com/trackcut/trackcut/internal/platform"
)

// Settings keys for Fyne preferences
const (
	KeyVideoDir         = "video_directory"
	KeyBatchWorkers     = "batch_workers"
	KeyAudioLanguages   = "batch_audio_languages"
	KeySubLanguages     = "batch_subtitle_languages"
	KeyConfirmBeforeRun = "confirm_before_run"
)

// Default values
const (
	DefaultBatchWorkers     = 1
	DefaultConfirmBeforeRun = true

	maxBatchWorkers = 8
)

// Settings manages per-user UI state persisted through Fyne preferences.
// File-backed configuration lives in Config; these values are the ones the
// desktop app changes at runtime.
type Settings struct {
	app fyne.App
}

// NewSettings creates a new settings manager
func NewSettings(app fyne.App) *Settings {
	return &Settings{app: app}
}

// GetVideoDirectory returns the folder last opened in the library view
func (s *Settings) GetVideoDirectory() string {
	dir := s.app.Preferences().String(KeyVideoDir)
	if dir == "" {
		defaultDir, err := platform.GetHomeVideosDir()
		if err != nil {
			defaultDir = "/tmp/videos"
		}
		s.SetVideoDirectory(defaultDir)
		return defaultDir
	}
	return dir
}

// SetVideoDirectory sets the library folder
func (s *Settings) SetVideoDirectory(dir string) {
	s.app.Preferences().SetString(KeyVideoDir, dir)
}

// GetBatchWorkers returns the number of files processed in parallel
func (s *Settings) GetBatchWorkers() int {
	value := s.app.Preferences().Int(KeyBatchWorkers)
	if value <= 0 {
		s.SetBatchWorkers(DefaultBatchWorkers)
		return DefaultBatchWorkers
	}
	return value
}

// SetBatchWorkers sets the number of files processed in parallel
func (s *Settings) SetBatchWorkers(count int) {
	if count < 1 {
		count = 1
	}
	if count > maxBatchWorkers {
		count = maxBatchWorkers
	}
	s.app.Preferences().SetInt(KeyBatchWorkers, count)
}

// GetAudioLanguages returns the language tags last used for batch audio
// selection
func (s *Settings) GetAudioLanguages() []string {
	return splitLanguages(s.app.Preferences().String(KeyAudioLanguages))
}

// SetAudioLanguages sets the batch audio language tags
func (s *Settings) SetAudioLanguages(langs []string) {
	s.app.Preferences().SetString(KeyAudioLanguages, strings.Join(langs, ","))
}

// GetSubtitleLanguages returns the language tags last used for batch
// subtitle selection
func (s *Settings) GetSubtitleLanguages() []string {
	return splitLanguages(s.app.Preferences().String(KeySubLanguages))
}

// SetSubtitleLanguages sets the batch subtitle language tags
func (s *Settings) SetSubtitleLanguages(langs []string) {
	s.app.Preferences().SetString(KeySubLanguages, strings.Join(langs, ","))
}

// GetConfirmBeforeRun returns whether the app asks before starting a batch
func (s *Settings) GetConfirmBeforeRun() bool {
	return s.app.Preferences().BoolWithFallback(KeyConfirmBeforeRun, DefaultConfirmBeforeRun)
}

// SetConfirmBeforeRun sets whether the app asks before starting a batch
func (s *Settings) SetConfirmBeforeRun(confirm bool) {
	s.app.Preferences().SetBool(KeyConfirmBeforeRun, confirm)
}

func splitLanguages(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	langs := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			langs = append(langs, trimmed)
		}
	}
	return langs
}
