package model

import "testing"

func sampleFile() *MediaFile {
	return &MediaFile{
		Path:       "/videos/movie.mkv",
		Container:  "matroska,webm",
		Duration:   5025,
		VideoCodec: "h264",
		AudioStreams: []AudioStream{
			{Index: 1, Codec: "aac", Language: "eng"},
			{Index: 2, Codec: "ac3", Language: "jpn"},
		},
		SubtitleStreams: []SubtitleStream{
			{Index: 3, Codec: "subrip", Language: "eng"},
			{Index: 4, Codec: "subrip", Language: "spa"},
		},
	}
}

func TestHasStreamIndex(t *testing.T) {
	mf := sampleFile()

	for _, idx := range []int{1, 2, 3, 4} {
		if !mf.HasStreamIndex(idx) {
			t.Errorf("Expected index %d to exist", idx)
		}
	}
	for _, idx := range []int{0, 5, -1} {
		if mf.HasStreamIndex(idx) {
			t.Errorf("Expected index %d to not exist", idx)
		}
	}
}

func TestStreamSummary(t *testing.T) {
	mf := sampleFile()
	expected := "2 audio (eng, jpn) · 2 subtitle (eng, spa)"
	if got := mf.StreamSummary(); got != expected {
		t.Errorf("StreamSummary() = %q, expected %q", got, expected)
	}

	broken := &MediaFile{Path: "/videos/broken.mkv", ProbeError: "not a container"}
	if got := broken.StreamSummary(); got != "unknown format" {
		t.Errorf("StreamSummary() for broken file = %q, expected %q", got, "unknown format")
	}

	empty := &MediaFile{Path: "/videos/raw.mp4"}
	if got := empty.StreamSummary(); got != "no removable streams" {
		t.Errorf("StreamSummary() for streamless file = %q", got)
	}
}

func TestStreamSummaryMissingLanguage(t *testing.T) {
	mf := &MediaFile{
		Path:         "/videos/untagged.mp4",
		AudioStreams: []AudioStream{{Index: 1, Codec: "aac"}},
	}
	expected := "1 audio (und)"
	if got := mf.StreamSummary(); got != expected {
		t.Errorf("StreamSummary() = %q, expected %q", got, expected)
	}
}

func TestDurationString(t *testing.T) {
	tests := []struct {
		seconds  float64
		expected string
	}{
		{5025, "01:23:45"},
		{754, "12:34"},
		{59, "00:59"},
		{0, "00:00"},
	}

	for _, test := range tests {
		mf := &MediaFile{Duration: test.seconds}
		if got := mf.DurationString(); got != test.expected {
			t.Errorf("DurationString(%v) = %q, expected %q", test.seconds, got, test.expected)
		}
	}
}

func TestFormatSize(t *testing.T) {
	tests := []struct {
		bytes    int64
		expected string
	}{
		{0, "0 B"},
		{512, "512 B"},
		{2048, "2.0 KB"},
		{1536 * 1024, "1.5 MB"},
		{3 * 1024 * 1024 * 1024, "3.0 GB"},
	}

	for _, test := range tests {
		if got := FormatSize(test.bytes); got != test.expected {
			t.Errorf("FormatSize(%d) = %q, expected %q", test.bytes, got, test.expected)
		}
	}
}

func TestJobStatusTerminal(t *testing.T) {
	tests := []struct {
		status   JobStatus
		terminal bool
	}{
		{JobStatusPending, false},
		{JobStatusRunning, false},
		{JobStatusSucceeded, true},
		{JobStatusFailed, true},
	}

	for _, test := range tests {
		if got := test.status.IsTerminal(); got != test.terminal {
			t.Errorf("IsTerminal(%s) = %v, expected %v", test.status, got, test.terminal)
		}
	}
}

func TestIndexSet(t *testing.T) {
	set := NewIndexSet(4, 1, 2)

	if !set.Contains(2) {
		t.Error("Expected set to contain 2")
	}
	if set.Contains(3) {
		t.Error("Expected set to not contain 3")
	}

	sorted := set.Sorted()
	expected := []int{1, 2, 4}
	if len(sorted) != len(expected) {
		t.Fatalf("Sorted() length = %d, expected %d", len(sorted), len(expected))
	}
	for i, v := range expected {
		if sorted[i] != v {
			t.Errorf("Sorted()[%d] = %d, expected %d", i, sorted[i], v)
		}
	}

	clone := set.Clone()
	delete(clone, 1)
	if !set.Contains(1) {
		t.Error("Clone() should not share storage with the original")
	}
}
