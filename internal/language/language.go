package language

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// ISO 639-2 bibliographic codes that x/text does not parse; mkvmerge and
// some muxers still write these.
var bibliographic = map[string]string{
	"alb": "sq",
	"arm": "hy",
	"baq": "eu",
	"bur": "my",
	"chi": "zh",
	"cze": "cs",
	"dut": "nl",
	"fre": "fr",
	"geo": "ka",
	"ger": "de",
	"gre": "el",
	"ice": "is",
	"mac": "mk",
	"may": "ms",
	"per": "fa",
	"rum": "ro",
	"slo": "sk",
	"tib": "bo",
	"wel": "cy",
}

var namer = display.English.Languages()

// Normalize converts any recognized language tag (ISO 639-1, or an ISO
// 639-2 T or B code) to its canonical base code, e.g. "jpn" and "ja" both
// yield "ja". Returns "" for empty, undetermined, or unrecognized input.
func Normalize(tag string) string {
	tag = strings.ToLower(strings.TrimSpace(tag))
	if tag == "" || tag == "und" || tag == "unknown" {
		return ""
	}
	if mapped, ok := bibliographic[tag]; ok {
		tag = mapped
	}
	parsed, err := language.Parse(tag)
	if err != nil {
		return ""
	}
	base, conf := parsed.Base()
	if conf == language.No {
		return ""
	}
	code := base.String()
	if code == "und" {
		return ""
	}
	return code
}

// Match reports whether two tags identify the same language. Unrecognized
// or undetermined tags never match anything, including themselves.
func Match(a, b string) bool {
	na := Normalize(a)
	nb := Normalize(b)
	return na != "" && na == nb
}

// DisplayName returns a human-readable English name for a tag, the
// uppercased tag when unrecognized, and "Unknown" when empty.
func DisplayName(tag string) string {
	trimmed := strings.TrimSpace(tag)
	if trimmed == "" || strings.EqualFold(trimmed, "und") {
		return "Unknown"
	}
	code := Normalize(trimmed)
	if code == "" {
		return strings.ToUpper(trimmed)
	}
	parsed, err := language.Parse(code)
	if err != nil {
		return strings.ToUpper(trimmed)
	}
	if name := namer.Name(parsed); name != "" {
		return name
	}
	return strings.ToUpper(trimmed)
}

// NormalizeList deduplicates and normalizes a list of tags, dropping
// unrecognized entries.
func NormalizeList(tags []string) []string {
	if len(tags) == 0 {
		return nil
	}
	normalized := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		code := Normalize(tag)
		if code == "" {
			continue
		}
		if _, ok := seen[code]; ok {
			continue
		}
		seen[code] = struct{}{}
		normalized = append(normalized, code)
	}
	return normalized
}
