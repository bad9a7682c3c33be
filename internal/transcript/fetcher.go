// Package transcript downloads subtitles for online videos through yt-dlp
// and turns them into cleaned SRT files or plain-text transcripts.
package transcript

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/lrstanley/go-ytdlp"

	"github.com/trackcut/trackcut/internal/subtitle"
)

const (
	// DefaultLanguages is the subtitle language list requested when the
	// caller does not specify one.
	DefaultLanguages = "en"

	outputTemplate = "%(title)s.%(ext)s"
)

// Fetcher downloads video subtitles into a target directory.
type Fetcher struct {
	dir       string
	languages string
}

// NewFetcher creates a Fetcher writing into dir. languages is a
// comma-separated yt-dlp language list; empty selects DefaultLanguages.
func NewFetcher(dir, languages string) *Fetcher {
	if languages == "" {
		languages = DefaultLanguages
	}
	return &Fetcher{dir: dir, languages: languages}
}

// Result describes a fetched transcript.
type Result struct {
	// SubtitlePath is the downloaded SRT file.
	SubtitlePath string
	// CleanPath is the duplicate-merged SRT, empty if cleaning failed.
	CleanPath string
	// PlainPath is the flattened plain-text transcript.
	PlainPath string
}

// Fetch downloads the subtitles for url without downloading the video,
// converts them to SRT, and produces cleaned and flattened variants next
// to the download.
func (f *Fetcher) Fetch(ctx context.Context, url string) (*Result, error) {
	if err := os.MkdirAll(f.dir, 0o755); err != nil {
		return nil, err
	}

	before, err := listSRT(f.dir)
	if err != nil {
		return nil, err
	}

	dl := ytdlp.New().
		SkipDownload().
		WriteSubs().
		WriteAutoSubs().
		SubLangs(f.languages).
		ConvertSubs("srt").
		Output(filepath.Join(f.dir, outputTemplate))

	if _, err := dl.Run(ctx, url); err != nil {
		return nil, fmt.Errorf("subtitle download failed: %w", err)
	}

	subtitlePath, err := newestSRT(f.dir, before)
	if err != nil {
		return nil, err
	}
	log.Printf("Downloaded subtitles: %s", subtitlePath)

	result := &Result{SubtitlePath: subtitlePath}

	cleanPath, err := subtitle.CleanFile(subtitlePath)
	if err != nil {
		log.Printf("Subtitle cleanup failed for %s: %v", subtitlePath, err)
	} else {
		result.CleanPath = cleanPath
	}

	plainPath, err := subtitle.FlattenFile(subtitlePath)
	if err != nil {
		return result, fmt.Errorf("transcript flattening failed: %w", err)
	}
	result.PlainPath = plainPath
	return result, nil
}

// listSRT returns the SRT files currently present in dir.
func listSRT(dir string) (map[string]bool, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	present := make(map[string]bool)
	for _, entry := range entries {
		if !entry.IsDir() && strings.EqualFold(filepath.Ext(entry.Name()), ".srt") {
			present[entry.Name()] = true
		}
	}
	return present, nil
}

// newestSRT finds the SRT file added to dir since the before snapshot,
// preferring the most recently modified when several appeared.
func newestSRT(dir string, before map[string]bool) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", err
	}

	var newest string
	var newestMod int64
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || before[name] || !strings.EqualFold(filepath.Ext(name), ".srt") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if mod := info.ModTime().UnixNano(); newest == "" || mod > newestMod {
			newest = name
			newestMod = mod
		}
	}

	if newest == "" {
		return "", fmt.Errorf("no subtitles were downloaded to %q", dir)
	}
	return filepath.Join(dir, newest), nil
}
