package subtitle

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Output naming constants
const (
	CleanSuffix = " - clean"
	PlainSuffix = " - plain"
	PlainExt    = ".txt"
)

// Cues repeated by broadcasters within this gap are merged into one.
const mergeGapMs = 100

// MergeDuplicates collapses consecutive cues carrying identical text that
// either overlap or sit within mergeGapMs of each other, extending the
// first cue's end time. Cue text is normalized (tags stripped, whitespace
// collapsed) before comparison.
func MergeDuplicates(cues []Cue) []Cue {
	if len(cues) == 0 {
		return nil
	}

	normalized := make([]Cue, len(cues))
	for i, cue := range cues {
		cue.Text = strings.TrimSpace(whitespaceRun.ReplaceAllString(StripTags(cue.Text), " "))
		normalized[i] = cue
	}

	merged := make([]Cue, 0, len(normalized))
	buffer := normalized[0]

	for _, current := range normalized[1:] {
		if current.Text == buffer.Text && shouldMerge(buffer, current) {
			buffer.End = laterEnd(buffer.End, current.End)
			continue
		}
		merged = append(merged, buffer)
		buffer = current
	}
	merged = append(merged, buffer)

	for i := range merged {
		merged[i].Index = i + 1
	}
	return merged
}

func shouldMerge(previous, current Cue) bool {
	prevEnd, err1 := previous.EndMs()
	curStart, err2 := current.StartMs()
	if err1 != nil || err2 != nil {
		return false
	}
	gap := curStart - prevEnd
	return gap <= mergeGapMs
}

func laterEnd(a, b string) string {
	aMs, err1 := timeToMs(a)
	bMs, err2 := timeToMs(b)
	if err1 != nil || err2 != nil {
		return a
	}
	if bMs > aMs {
		return b
	}
	return a
}

// CleanFile parses an SRT file, merges duplicated cues, and writes the
// result next to the original as "<name> - clean.srt". Returns the output
// path.
func CleanFile(path string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}

	cues := Parse(string(content))
	if len(cues) == 0 {
		return "", fmt.Errorf("no valid subtitles found in %q", path)
	}

	outputPath := derivedPath(path, CleanSuffix, filepath.Ext(path))
	if err := os.WriteFile(outputPath, []byte(Render(MergeDuplicates(cues))), 0o644); err != nil {
		return "", err
	}
	return outputPath, nil
}

// FlattenFile converts an SRT file into a one-line plain-text transcript
// written as "<name> - plain.txt". Returns the output path.
func FlattenFile(path string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}

	text := Flatten(Parse(string(content)))
	outputPath := derivedPath(path, PlainSuffix, PlainExt)
	if err := os.WriteFile(outputPath, []byte(text+"\n"), 0o644); err != nil {
		return "", err
	}
	return outputPath, nil
}

func derivedPath(path, suffix, ext string) string {
	base := strings.TrimSuffix(path, filepath.Ext(path))
	return base + suffix + ext
}
