package selection

import (
	"testing"

	"github.com/trackcut/trackcut/internal/model"
)

func movieFile() *model.MediaFile {
	return &model.MediaFile{
		Path: "/videos/movie.mkv",
		AudioStreams: []model.AudioStream{
			{Index: 1, Language: "eng"},
			{Index: 2, Language: "jpn"},
		},
		SubtitleStreams: []model.SubtitleStream{
			{Index: 3, Language: "eng"},
			{Index: 4, Language: "spa"},
		},
	}
}

// Same languages, different track order.
func reorderedFile() *model.MediaFile {
	return &model.MediaFile{
		Path: "/videos/episode.mkv",
		AudioStreams: []model.AudioStream{
			{Index: 1, Language: "jpn"},
			{Index: 2, Language: "eng"},
		},
		SubtitleStreams: []model.SubtitleStream{
			{Index: 3, Language: "spa"},
		},
	}
}

func germanOnlyFile() *model.MediaFile {
	return &model.MediaFile{
		Path: "/videos/other.mkv",
		AudioStreams: []model.AudioStream{
			{Index: 1, Language: "ger"},
		},
	}
}

func TestSelectValidIndices(t *testing.T) {
	m := NewModel()
	file := movieFile()

	if err := m.Select(file, []int{2, 4}); err != nil {
		t.Fatalf("Select() error: %v", err)
	}

	got := m.SelectionFor(file.Path)
	if len(got) != 2 || !got.Contains(2) || !got.Contains(4) {
		t.Errorf("SelectionFor() = %v, expected {2, 4}", got.Sorted())
	}
}

func TestSelectUnknownIndex(t *testing.T) {
	m := NewModel()
	file := movieFile()

	if err := m.Select(file, []int{7}); err == nil {
		t.Fatal("Expected error for unknown stream index, got nil")
	}
	if got := m.SelectionFor(file.Path); len(got) != 0 {
		t.Errorf("Selection should be untouched after rejected Select, got %v", got.Sorted())
	}
}

func TestSelectionForIsCopy(t *testing.T) {
	m := NewModel()
	file := movieFile()
	if err := m.Select(file, []int{2}); err != nil {
		t.Fatalf("Select() error: %v", err)
	}

	got := m.SelectionFor(file.Path)
	got[99] = struct{}{}

	if m.SelectionFor(file.Path).Contains(99) {
		t.Error("SelectionFor() must return a copy, not shared storage")
	}
}

func TestApplyToAllMatchesByLanguageNotPosition(t *testing.T) {
	m := NewModel()
	files := []*model.MediaFile{movieFile(), reorderedFile()}

	reports := m.ApplyToAll(files, []string{"jpn"}, []string{"spa"})
	if len(reports) != 2 {
		t.Fatalf("Expected 2 reports, got %d", len(reports))
	}

	// movie.mkv: jpn audio is index 2, spa subtitle is index 4.
	first := m.SelectionFor("/videos/movie.mkv")
	if len(first) != 2 || !first.Contains(2) || !first.Contains(4) {
		t.Errorf("movie.mkv selection = %v, expected {2, 4}", first.Sorted())
	}

	// episode.mkv orders tracks differently: jpn audio is index 1, spa subtitle index 3.
	second := m.SelectionFor("/videos/episode.mkv")
	if len(second) != 2 || !second.Contains(1) || !second.Contains(3) {
		t.Errorf("episode.mkv selection = %v, expected {1, 3}", second.Sorted())
	}
}

func TestApplyToAllMissingLanguageIsNoOp(t *testing.T) {
	m := NewModel()
	files := []*model.MediaFile{germanOnlyFile()}

	reports := m.ApplyToAll(files, []string{"jpn"}, []string{"spa"})
	if len(reports) != 1 {
		t.Fatalf("Expected 1 report, got %d", len(reports))
	}

	report := reports[0]
	if !report.Empty() {
		t.Errorf("Expected empty selection, got %v", report.Selected.Sorted())
	}
	if len(report.Missed) != 2 {
		t.Errorf("Missed = %v, expected both requested languages", report.Missed)
	}
	if got := m.SelectionFor("/videos/other.mkv"); len(got) != 0 {
		t.Errorf("Selection for unmatched file = %v, expected empty", got.Sorted())
	}
}

func TestApplyToAllNormalizesTagSpellings(t *testing.T) {
	m := NewModel()
	// Stream tagged "ja", request uses the 3-letter "jpn".
	file := &model.MediaFile{
		Path: "/videos/tagged.mkv",
		AudioStreams: []model.AudioStream{
			{Index: 1, Language: "ja"},
		},
	}

	m.ApplyToAll([]*model.MediaFile{file}, []string{"jpn"}, nil)

	if got := m.SelectionFor(file.Path); !got.Contains(1) {
		t.Errorf("Expected ja/jpn to match, selection = %v", got.Sorted())
	}
}

func TestApplyToAllDuplicateLanguageSelectsAll(t *testing.T) {
	m := NewModel()
	file := &model.MediaFile{
		Path: "/videos/dup.mkv",
		AudioStreams: []model.AudioStream{
			{Index: 1, Language: "eng"},
			{Index: 2, Language: "eng"},
		},
	}

	m.ApplyToAll([]*model.MediaFile{file}, []string{"eng"}, nil)

	got := m.SelectionFor(file.Path)
	if len(got) != 2 {
		t.Errorf("Expected both eng streams selected, got %v", got.Sorted())
	}
}

func TestClearAndReset(t *testing.T) {
	m := NewModel()
	file := movieFile()
	if err := m.Select(file, []int{1}); err != nil {
		t.Fatalf("Select() error: %v", err)
	}

	m.Clear(file.Path)
	if got := m.SelectionFor(file.Path); len(got) != 0 {
		t.Errorf("Selection after Clear = %v, expected empty", got.Sorted())
	}

	if err := m.Select(file, []int{1}); err != nil {
		t.Fatalf("Select() error: %v", err)
	}
	m.Reset()
	if got := m.SelectionFor(file.Path); len(got) != 0 {
		t.Errorf("Selection after Reset = %v, expected empty", got.Sorted())
	}
}
