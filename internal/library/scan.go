package library

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/trackcut/trackcut/internal/model"
	"github.com/trackcut/trackcut/internal/probe"
	"github.com/trackcut/trackcut/internal/tools"
)

// DefaultExtensions are the video container extensions recognized during a
// folder scan.
var DefaultExtensions = []string{".mkv", ".mp4", ".avi", ".mov"}

// DefaultProbeWorkers bounds how many ffprobe processes a scan spawns at
// once.
const DefaultProbeWorkers = 4

// Scanner lists and inspects the video files of a folder.
type Scanner struct {
	ts         tools.Toolset
	extensions map[string]bool
	workers    int
}

// NewScanner creates a scanner recognizing the given extensions (falling
// back to DefaultExtensions) and probing with the given concurrency.
func NewScanner(ts tools.Toolset, extensions []string, workers int) *Scanner {
	if len(extensions) == 0 {
		extensions = DefaultExtensions
	}
	if workers < 1 {
		workers = DefaultProbeWorkers
	}

	extSet := make(map[string]bool, len(extensions))
	for _, ext := range extensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		extSet[ext] = true
	}

	return &Scanner{ts: ts, extensions: extSet, workers: workers}
}

// ListVideoFiles returns the paths of recognized video files directly in
// dir, sorted by name. It does not recurse.
func (s *Scanner) ListVideoFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if s.extensions[strings.ToLower(filepath.Ext(entry.Name()))] {
			paths = append(paths, filepath.Join(dir, entry.Name()))
		}
	}
	sort.Strings(paths)
	return paths, nil
}

// Scan lists and probes the folder's video files. The returned slice keeps
// name order; files that failed inspection carry a ProbeError and empty
// stream lists. Inspection failures never abort the scan.
func (s *Scanner) Scan(ctx context.Context, dir string) ([]*model.MediaFile, error) {
	paths, err := s.ListVideoFiles(dir)
	if err != nil {
		return nil, err
	}

	files := make([]*model.MediaFile, len(paths))

	sem := make(chan struct{}, s.workers)
	var wg sync.WaitGroup
	for i, path := range paths {
		wg.Add(1)
		go func(i int, path string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			mf, err := probe.Inspect(ctx, s.ts, path)
			if err != nil {
				mf = &model.MediaFile{Path: path, ProbeError: err.Error()}
				if info, statErr := os.Stat(path); statErr == nil {
					mf.Size = info.Size()
					mf.ModTime = info.ModTime()
				}
			}
			files[i] = mf
		}(i, path)
	}
	wg.Wait()

	return files, nil
}
