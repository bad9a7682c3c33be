package subtitle

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Cue is a single SRT entry. Start and End keep the original "HH:MM:SS,mmm"
// spelling; two cues with equal timing are considered the same cue.
type Cue struct {
	Index int
	Start string
	End   string
	Text  string
}

var (
	timingPattern  = regexp.MustCompile(`(.+?)\s*-->\s*(.+)`)
	htmlTagPattern = regexp.MustCompile(`<[^>]+>`)
	blockSplit     = regexp.MustCompile(`\n\s*\n`)
	whitespaceRun  = regexp.MustCompile(`\s+`)
)

// String renders the cue back in SRT form, trailing newline included.
func (c Cue) String() string {
	return fmt.Sprintf("%d\n%s --> %s\n%s\n", c.Index, c.Start, c.End, c.Text)
}

// StartMs returns the cue start in milliseconds.
func (c Cue) StartMs() (int, error) {
	return timeToMs(c.Start)
}

// EndMs returns the cue end in milliseconds.
func (c Cue) EndMs() (int, error) {
	return timeToMs(c.End)
}

// timeToMs parses an SRT timestamp ("01:02:03,456") into milliseconds.
func timeToMs(stamp string) (int, error) {
	parsed, err := time.Parse("15:04:05,000", strings.TrimSpace(stamp))
	if err != nil {
		return 0, fmt.Errorf("invalid timestamp %q: %w", stamp, err)
	}
	ms := parsed.Hour()*3600000 + parsed.Minute()*60000 + parsed.Second()*1000 + parsed.Nanosecond()/1e6
	return ms, nil
}

// StripTags removes HTML formatting tags from subtitle text.
func StripTags(text string) string {
	return htmlTagPattern.ReplaceAllString(text, "")
}

// Parse converts raw SRT content into cues. Malformed blocks (missing
// index or timing line) are skipped rather than failing the whole file;
// subtitle files in the wild are rarely pristine.
func Parse(content string) []Cue {
	content = strings.TrimPrefix(content, "\uFEFF")
	blocks := blockSplit.Split(strings.TrimSpace(content), -1)

	cues := make([]Cue, 0, len(blocks))
	for _, block := range blocks {
		lines := strings.Split(strings.TrimSpace(block), "\n")
		if len(lines) < 2 {
			continue
		}

		index, err := strconv.Atoi(strings.TrimSpace(lines[0]))
		if err != nil {
			continue
		}

		timing := timingPattern.FindStringSubmatch(lines[1])
		if timing == nil {
			continue
		}

		text := strings.TrimSpace(strings.Join(lines[2:], "\n"))
		cues = append(cues, Cue{
			Index: index,
			Start: strings.TrimSpace(timing[1]),
			End:   strings.TrimSpace(timing[2]),
			Text:  StripTags(text),
		})
	}
	return cues
}

// Render writes cues back as SRT content.
func Render(cues []Cue) string {
	parts := make([]string, 0, len(cues))
	for _, cue := range cues {
		parts = append(parts, cue.String())
	}
	return strings.Join(parts, "\n")
}

// Flatten joins all cue text into one normalized plain-text line.
func Flatten(cues []Cue) string {
	parts := make([]string, 0, len(cues))
	for _, cue := range cues {
		if cue.Text != "" {
			parts = append(parts, cue.Text)
		}
	}
	joined := strings.Join(parts, " ")
	return strings.TrimSpace(whitespaceRun.ReplaceAllString(joined, " "))
}
