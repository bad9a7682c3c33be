package remux

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/trackcut/trackcut/internal/model"
	"github.com/trackcut/trackcut/internal/probe"
	"github.com/trackcut/trackcut/internal/tools"
)

// Only the tail of ffmpeg's stderr is kept for diagnostics; the banner and
// stream mapping dump above it rarely explain a failure.
const stderrTailLimit = 4096

// runTool executes one external invocation and converts any failure into an
// InvocationError carrying the stderr tail.
func runTool(ctx context.Context, bin string, args []string) error {
	cmd := exec.CommandContext(ctx, bin, args...)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return &InvocationError{
			Tool:   bin,
			Args:   args,
			Stderr: stderrTail(stderr.String()),
			Err:    err,
		}
	}
	return nil
}

func stderrTail(s string) string {
	s = strings.TrimSpace(s)
	if len(s) > stderrTailLimit {
		s = s[len(s)-stderrTailLimit:]
	}
	return s
}

// validateOutput checks that the tool actually produced a usable file; an
// exit code of zero with an empty output still counts as a failure.
func validateOutput(bin string, args []string, path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return &InvocationError{Tool: bin, Args: args, Err: fmt.Errorf("no output produced: %w", err)}
	}
	if info.Size() == 0 {
		return &InvocationError{Tool: bin, Args: args, Err: fmt.Errorf("output %q is empty", path)}
	}
	return nil
}

// RemoveStreams strips the streams in remove from file, replacing the
// original atomically only after ffmpeg succeeds and the output validates.
// An empty remove set is a no-op: the file is left untouched rather than
// rewritten into an identical copy.
func RemoveStreams(ctx context.Context, ts tools.Toolset, file *model.MediaFile, remove model.IndexSet) error {
	if len(remove) == 0 {
		return nil
	}

	tmpPath := TempOutputPath(file.Path)
	args := BuildRemovalArgs(file, remove, tmpPath)

	if err := runTool(ctx, ts.FFmpeg, args); err != nil {
		os.Remove(tmpPath)
		return err
	}
	if err := validateOutput(ts.FFmpeg, args, tmpPath); err != nil {
		os.Remove(tmpPath)
		return err
	}

	if err := os.Rename(tmpPath, file.Path); err != nil {
		os.Remove(tmpPath)
		return &InvocationError{Tool: ts.FFmpeg, Args: args, Err: fmt.Errorf("replace original: %w", err)}
	}
	return nil
}

// Trim writes a stream-copy cut of path between start and end to a new
// timestamped file and returns its path. End must lie within the container
// duration.
func Trim(ctx context.Context, ts tools.Toolset, path string, start, end time.Duration) (string, error) {
	if end <= start {
		return "", fmt.Errorf("trim end %v must be after start %v", end, start)
	}

	total, err := probe.Duration(ctx, ts, path)
	if err != nil {
		return "", err
	}
	if end.Seconds() > total {
		return "", fmt.Errorf("trim end %v exceeds video duration %.1fs", end, total)
	}

	outputPath := TrimmedOutputPath(path, time.Now())
	args := BuildTrimArgs(path, start, end-start, outputPath)
	if err := runTool(ctx, ts.FFmpeg, args); err != nil {
		os.Remove(outputPath)
		return "", err
	}
	if err := validateOutput(ts.FFmpeg, args, outputPath); err != nil {
		os.Remove(outputPath)
		return "", err
	}
	return outputPath, nil
}

// ExtractAudio saves the audio track of path as an mp3 next to it and
// returns the output path.
func ExtractAudio(ctx context.Context, ts tools.Toolset, path string) (string, error) {
	outputPath := ExtractedAudioPath(path)
	args := BuildExtractAudioArgs(path, outputPath)
	if err := runTool(ctx, ts.FFmpeg, args); err != nil {
		os.Remove(outputPath)
		return "", err
	}
	if err := validateOutput(ts.FFmpeg, args, outputPath); err != nil {
		os.Remove(outputPath)
		return "", err
	}
	return outputPath, nil
}

// ReplaceAudio writes a copy of videoPath whose audio comes from audioPath
// and returns the output path.
func ReplaceAudio(ctx context.Context, ts tools.Toolset, videoPath, audioPath string) (string, error) {
	outputPath := ReplacedAudioPath(videoPath)
	args := BuildReplaceAudioArgs(videoPath, audioPath, outputPath)
	if err := runTool(ctx, ts.FFmpeg, args); err != nil {
		os.Remove(outputPath)
		return "", err
	}
	if err := validateOutput(ts.FFmpeg, args, outputPath); err != nil {
		os.Remove(outputPath)
		return "", err
	}
	return outputPath, nil
}

// AddSubtitles muxes the given subtitle files into a copy of videoPath and
// returns the output path.
func AddSubtitles(ctx context.Context, ts tools.Toolset, videoPath string, subtitlePaths []string) (string, error) {
	if len(subtitlePaths) == 0 {
		return "", fmt.Errorf("no subtitle files provided")
	}

	outputPath := SubtitledPath(videoPath)
	args := BuildAddSubtitlesArgs(videoPath, subtitlePaths, outputPath)
	if err := runTool(ctx, ts.FFmpeg, args); err != nil {
		os.Remove(outputPath)
		return "", err
	}
	if err := validateOutput(ts.FFmpeg, args, outputPath); err != nil {
		os.Remove(outputPath)
		return "", err
	}
	return outputPath, nil
}
