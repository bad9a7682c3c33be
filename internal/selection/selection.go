// Package selection holds the per-file sets of stream indices marked for
// removal. Batch mode applies one language choice across many files by
// matching each file's own stream tags, never raw positions.
package selection

import (
	"fmt"
	"sync"

	"github.com/trackcut/trackcut/internal/language"
	"github.com/trackcut/trackcut/internal/model"
)

// Model records which stream indices are marked for removal, keyed by file
// path. All methods are safe for concurrent use; the UI mutates selections
// while the batch runner reads them.
type Model struct {
	mu         sync.RWMutex
	selections map[string]model.IndexSet
}

// NewModel creates an empty selection model.
func NewModel() *Model {
	return &Model{
		selections: make(map[string]model.IndexSet),
	}
}

// Select replaces the selection for file with the given indices. Every
// index must identify an audio or subtitle stream of the file; streams are
// not renumbered after inspection, so a valid index stays valid for the
// whole run.
func (m *Model) Select(file *model.MediaFile, indices []int) error {
	for _, idx := range indices {
		if !file.HasStreamIndex(idx) {
			return fmt.Errorf("file %q has no removable stream with index %d", file.Name(), idx)
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.selections[file.Path] = model.NewIndexSet(indices...)
	return nil
}

// SelectionFor returns a copy of the selection for path, empty if none.
func (m *Model) SelectionFor(path string) model.IndexSet {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if set, ok := m.selections[path]; ok {
		return set.Clone()
	}
	return model.IndexSet{}
}

// Clear removes the selection for path.
func (m *Model) Clear(path string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.selections, path)
}

// Reset drops all selections.
func (m *Model) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.selections = make(map[string]model.IndexSet)
}

// MatchReport describes what ApplyToAll selected for one file. A file with
// no stream matching any requested language gets an empty selection; that
// is reported here as "nothing to remove", not treated as an error.
type MatchReport struct {
	File     *model.MediaFile
	Selected model.IndexSet
	Matched  []string // normalized languages that matched at least one stream
	Missed   []string // requested languages with no matching stream
}

// Empty reports whether nothing was selected for the file.
func (r MatchReport) Empty() bool {
	return len(r.Selected) == 0
}

// ApplyToAll translates one audio-language and subtitle-language choice
// into each file's local stream indices by language tag. Duplicate tags
// select every matching stream of that type. There is no positional
// fallback for untagged streams: removing by guessed position is
// unrecoverable after a replace.
func (m *Model) ApplyToAll(files []*model.MediaFile, audioLangs, subtitleLangs []string) []MatchReport {
	audioLangs = language.NormalizeList(audioLangs)
	subtitleLangs = language.NormalizeList(subtitleLangs)

	reports := make([]MatchReport, 0, len(files))

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, file := range files {
		selected := model.IndexSet{}
		matched := make(map[string]struct{})

		for _, lang := range audioLangs {
			for _, stream := range file.AudioStreams {
				if language.Match(stream.Language, lang) {
					selected[stream.Index] = struct{}{}
					matched[lang] = struct{}{}
				}
			}
		}
		for _, lang := range subtitleLangs {
			for _, stream := range file.SubtitleStreams {
				if language.Match(stream.Language, lang) {
					selected[stream.Index] = struct{}{}
					matched[lang] = struct{}{}
				}
			}
		}

		report := MatchReport{File: file, Selected: selected.Clone()}
		for _, lang := range append(append([]string{}, audioLangs...), subtitleLangs...) {
			if _, ok := matched[lang]; ok {
				report.Matched = appendUnique(report.Matched, lang)
			} else {
				report.Missed = appendUnique(report.Missed, lang)
			}
		}

		m.selections[file.Path] = selected
		reports = append(reports, report)
	}

	return reports
}

func appendUnique(list []string, value string) []string {
	for _, existing := range list {
		if existing == value {
			return list
		}
	}
	return append(list, value)
}
