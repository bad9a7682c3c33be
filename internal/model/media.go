package model

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// StreamType identifies the kind of stream inside a container.
type StreamType string

const (
	StreamAudio    StreamType = "audio"
	StreamSubtitle StreamType = "subtitle"
)

// AudioStream holds the properties of a single audio stream. Index is the
// container-level stream index, the same number an ffmpeg -map option
// references. Immutable once read from the container; identity is
// (file, index).
type AudioStream struct {
	Index    int
	Codec    string
	Language string
	Title    string
	Channels int
	Default  bool
}

// SubtitleStream holds the properties of a single subtitle stream.
type SubtitleStream struct {
	Index    int
	Codec    string
	Language string
	Title    string
	Forced   bool
}

// MediaFile describes one video file and its removable streams. Stream
// slices preserve container order: the position of a stream in its slice is
// not its identity, Index is.
type MediaFile struct {
	Path            string
	Container       string
	Duration        float64 // seconds
	Size            int64
	ModTime         time.Time
	VideoCodec      string
	AudioStreams    []AudioStream
	SubtitleStreams []SubtitleStream

	// AllIndices lists every stream index in container order, including
	// video, data, and attachment streams. The removal command maps these,
	// minus the excluded set.
	AllIndices []int

	// ProbeError holds the inspection failure for files that could not be
	// read. Such files are listed but cannot be processed.
	ProbeError string
}

// Name returns the base file name for display.
func (mf *MediaFile) Name() string {
	return filepath.Base(mf.Path)
}

// StreamCount returns the number of removable (audio + subtitle) streams.
func (mf *MediaFile) StreamCount() int {
	return len(mf.AudioStreams) + len(mf.SubtitleStreams)
}

// HasStreamIndex reports whether idx identifies an audio or subtitle stream
// of this file.
func (mf *MediaFile) HasStreamIndex(idx int) bool {
	for _, a := range mf.AudioStreams {
		if a.Index == idx {
			return true
		}
	}
	for _, s := range mf.SubtitleStreams {
		if s.Index == idx {
			return true
		}
	}
	return false
}

// StreamSummary returns a short human-readable description of the file's
// streams, e.g. "2 audio (eng, jpn) · 1 subtitle (eng)".
func (mf *MediaFile) StreamSummary() string {
	if mf.ProbeError != "" {
		return "unknown format"
	}
	var parts []string
	if n := len(mf.AudioStreams); n > 0 {
		langs := make([]string, 0, n)
		for _, a := range mf.AudioStreams {
			langs = append(langs, orUnknown(a.Language))
		}
		parts = append(parts, fmt.Sprintf("%d audio (%s)", n, strings.Join(langs, ", ")))
	}
	if n := len(mf.SubtitleStreams); n > 0 {
		langs := make([]string, 0, n)
		for _, s := range mf.SubtitleStreams {
			langs = append(langs, orUnknown(s.Language))
		}
		parts = append(parts, fmt.Sprintf("%d subtitle (%s)", n, strings.Join(langs, ", ")))
	}
	if len(parts) == 0 {
		return "no removable streams"
	}
	return strings.Join(parts, " · ")
}

func orUnknown(lang string) string {
	if lang == "" {
		return "und"
	}
	return lang
}

// File size formatting constants
const (
	fileSizeUnit  = 1024
	fileSizeUnits = "KMGTPE"
)

// FormatSize formats a byte count to human readable form, e.g. "1.4 GB".
func FormatSize(bytes int64) string {
	if bytes < fileSizeUnit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(fileSizeUnit), 0
	for n := bytes / fileSizeUnit; n >= fileSizeUnit; n /= fileSizeUnit {
		div *= fileSizeUnit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), fileSizeUnits[exp])
}

// DurationString formats the container duration as hh:mm:ss or mm:ss.
func (mf *MediaFile) DurationString() string {
	total := int(mf.Duration)
	hours := total / 3600
	minutes := (total % 3600) / 60
	seconds := total % 60
	if hours > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}
