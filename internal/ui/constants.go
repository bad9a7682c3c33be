package ui

import "time"

// UI-wide constants to avoid magic numbers/strings scattered across the codebase.

// Icons (emojis/symbols)
const (
	IconSettings = "⚙"
	IconRun      = "▶"
	IconStop     = "⏹"
	IconFolder   = "📁"
	IconError    = "❌"
	IconHistory  = "🕘"
)

// Text fragments
const (
	MiddleDotSeparator = " · "
	DashPlaceholder    = "—"
)

// Layout sizing (FileRow / lists)
const (
	ThumbnailWidth  float32 = 96
	ThumbnailHeight float32 = 54
)

// Dialog sizing
const (
	TrackDialogWidth     float32 = 460
	TrackDialogHeight    float32 = 420
	SettingsDialogWidth  float32 = 480
	SettingsDialogHeight float32 = 360
	BatchDialogWidth     float32 = 480
	BatchDialogHeight    float32 = 320
	HistoryDialogWidth   float32 = 620
	HistoryDialogHeight  float32 = 420
)

// Debounce durations
const (
	UIUpdateDebounce = 100 * time.Millisecond
)

// History view
const (
	HistoryDisplayLimit = 100
)
