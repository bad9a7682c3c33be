package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// Tools contains paths to external executables. Empty values fall back to
// PATH lookup.
type Tools struct {
	FFmpegPath  string `toml:"ffmpeg_path"`
	FFprobePath string `toml:"ffprobe_path"`
}

// Library contains configuration for folder scanning.
type Library struct {
	Extensions   []string `toml:"extensions"`
	ProbeWorkers int      `toml:"probe_workers"`
}

// Batch contains configuration for the batch runner.
type Batch struct {
	Workers int `toml:"workers"`
}

// Thumbnails contains configuration for thumbnail extraction.
type Thumbnails struct {
	OffsetSeconds float64 `toml:"offset_seconds"`
	CacheLimit    int     `toml:"cache_limit"`
}

// Transcript contains configuration for subtitle downloads.
type Transcript struct {
	Languages string `toml:"languages"`
	OutputDir string `toml:"output_dir"`
}

// History contains configuration for the job history database.
type History struct {
	DatabasePath string `toml:"database_path"`
}

// Config encapsulates all file-backed configuration values.
type Config struct {
	Tools      Tools      `toml:"tools"`
	Library    Library    `toml:"library"`
	Batch      Batch      `toml:"batch"`
	Thumbnails Thumbnails `toml:"thumbnails"`
	Transcript Transcript `toml:"transcript"`
	History    History    `toml:"history"`
}

const (
	defaultProbeWorkers     = 4
	defaultBatchWorkers     = 1
	defaultThumbnailOffset  = 1.0
	defaultThumbnailCache   = 256
	defaultSubtitleLanguage = "en"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Library: Library{
			Extensions:   []string{"mkv", "mp4", "avi", "mov"},
			ProbeWorkers: defaultProbeWorkers,
		},
		Batch: Batch{
			Workers: defaultBatchWorkers,
		},
		Thumbnails: Thumbnails{
			OffsetSeconds: defaultThumbnailOffset,
			CacheLimit:    defaultThumbnailCache,
		},
		Transcript: Transcript{
			Languages: defaultSubtitleLanguage,
			OutputDir: "~/Videos/transcripts",
		},
		History: History{
			DatabasePath: "~/.local/share/trackcut/history.db",
		},
	}
}

// DefaultConfigPath returns the absolute path to the default configuration
// file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/trackcut/config.toml")
}

// Load parses and validates a configuration file. A missing file yields
// defaults. The returned config has all path fields expanded.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			return nil, err
		}
		path = defaultPath
	}

	file, err := os.Open(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		// Defaults only.
	case err != nil:
		return nil, fmt.Errorf("open config: %w", err)
	default:
		defer file.Close()
		decoder := toml.NewDecoder(file)
		if decodeErr := decoder.Decode(&cfg); decodeErr != nil {
			return nil, fmt.Errorf("parse config: %w", decodeErr)
		}
	}

	if err := cfg.expandPaths(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if c.Library.ProbeWorkers < 1 {
		return errors.New("library.probe_workers must be at least 1")
	}
	if c.Batch.Workers < 1 {
		return errors.New("batch.workers must be at least 1")
	}
	if c.Thumbnails.OffsetSeconds < 0 {
		return errors.New("thumbnails.offset_seconds must not be negative")
	}
	if c.Thumbnails.CacheLimit < 1 {
		return errors.New("thumbnails.cache_limit must be at least 1")
	}
	for _, ext := range c.Library.Extensions {
		if strings.TrimSpace(ext) == "" {
			return errors.New("library.extensions must not contain empty entries")
		}
	}
	return nil
}

func (c *Config) expandPaths() error {
	fields := []*string{
		&c.Tools.FFmpegPath,
		&c.Tools.FFprobePath,
		&c.Transcript.OutputDir,
		&c.History.DatabasePath,
	}
	for _, field := range fields {
		expanded, err := expandPath(*field)
		if err != nil {
			return err
		}
		*field = expanded
	}
	return nil
}

// expandPath resolves a leading "~/" against the user's home directory.
func expandPath(path string) (string, error) {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
	}
	return path, nil
}
