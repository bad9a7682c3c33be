package probe

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/trackcut/trackcut/internal/model"
	"github.com/trackcut/trackcut/internal/tools"
)

// InspectionError wraps any failure to read a file's stream listing:
// unreadable file, unrecognized container, or a failing ffprobe run. It is
// non-fatal by contract; folder scanning lists the file as unreadable and
// continues.
type InspectionError struct {
	Path string
	Err  error
}

func (e *InspectionError) Error() string {
	return fmt.Sprintf("inspect %q: %v", e.Path, e.Err)
}

func (e *InspectionError) Unwrap() error {
	return e.Err
}

// Inspect probes path and returns its parsed stream listing. The single
// ffprobe call covers format and streams; audio and subtitle lists preserve
// container order.
func Inspect(ctx context.Context, ts tools.Toolset, path string) (*model.MediaFile, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, &InspectionError{Path: path, Err: err}
	}

	cmd := exec.CommandContext(ctx, ts.FFprobe,
		"-v", "quiet",
		"-print_format", "json",
		"-show_format", "-show_streams",
		path,
	)

	out, err := cmd.Output()
	if err != nil {
		return nil, &InspectionError{Path: path, Err: fmt.Errorf("ffprobe: %w", err)}
	}

	mf, err := ParseJSON(out)
	if err != nil {
		return nil, &InspectionError{Path: path, Err: err}
	}
	mf.Path = path
	mf.Size = info.Size()
	mf.ModTime = info.ModTime()
	return mf, nil
}

// ParseJSON converts raw ffprobe JSON output into a MediaFile. Exported for
// testing without a real ffprobe binary.
func ParseJSON(data []byte) (*model.MediaFile, error) {
	var raw ffprobeOutput
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse ffprobe JSON: %w", err)
	}
	return buildMediaFile(&raw), nil
}

// --- ffprobe JSON wire types ---

type ffprobeOutput struct {
	Format  ffprobeFormat   `json:"format"`
	Streams []ffprobeStream `json:"streams"`
}

type ffprobeFormat struct {
	Filename   string            `json:"filename"`
	FormatName string            `json:"format_name"`
	Duration   string            `json:"duration"`
	Size       string            `json:"size"`
	Tags       map[string]string `json:"tags"`
}

type ffprobeStream struct {
	Index       int               `json:"index"`
	CodecName   string            `json:"codec_name"`
	CodecType   string            `json:"codec_type"`
	Channels    int               `json:"channels"`
	Disposition map[string]int    `json:"disposition"`
	Tags        map[string]string `json:"tags"`
}

// --- Conversion from wire types to domain types ---

func buildMediaFile(raw *ffprobeOutput) *model.MediaFile {
	mf := &model.MediaFile{
		Container: raw.Format.FormatName,
		Duration:  parseFloat(raw.Format.Duration),
	}

	for i := range raw.Streams {
		s := &raw.Streams[i]
		mf.AllIndices = append(mf.AllIndices, s.Index)
		switch s.CodecType {
		case "video":
			if mf.VideoCodec == "" && s.Disposition["attached_pic"] != 1 {
				mf.VideoCodec = s.CodecName
			}
		case "audio":
			mf.AudioStreams = append(mf.AudioStreams, model.AudioStream{
				Index:    s.Index,
				Codec:    s.CodecName,
				Language: streamLanguage(s.Tags),
				Title:    s.Tags["title"],
				Channels: s.Channels,
				Default:  s.Disposition["default"] == 1,
			})
		case "subtitle":
			mf.SubtitleStreams = append(mf.SubtitleStreams, model.SubtitleStream{
				Index:    s.Index,
				Codec:    s.CodecName,
				Language: streamLanguage(s.Tags),
				Title:    s.Tags["title"],
				Forced:   s.Disposition["forced"] == 1,
			})
		}
	}
	return mf
}

// streamLanguage extracts the language tag, checking the key spellings seen
// in the wild.
func streamLanguage(tags map[string]string) string {
	for _, key := range []string{"language", "LANGUAGE", "Language", "lang"} {
		if value, ok := tags[key]; ok {
			value = strings.TrimSpace(value)
			if value != "" {
				return strings.ToLower(value)
			}
		}
	}
	return ""
}

// Duration runs a minimal ffprobe query for the container duration in
// seconds. Used where a full stream listing is not needed.
func Duration(ctx context.Context, ts tools.Toolset, path string) (float64, error) {
	cmd := exec.CommandContext(ctx, ts.FFprobe,
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		path,
	)

	out, err := cmd.Output()
	if err != nil {
		return 0, &InspectionError{Path: path, Err: fmt.Errorf("ffprobe: %w", err)}
	}

	duration, err := strconv.ParseFloat(strings.TrimSpace(string(out)), 64)
	if err != nil {
		return 0, &InspectionError{Path: path, Err: fmt.Errorf("parse duration: %w", err)}
	}
	return duration, nil
}

func parseFloat(s string) float64 {
	f, _ := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return f
}
