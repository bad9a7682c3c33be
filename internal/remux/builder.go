package remux

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/trackcut/trackcut/internal/model"
)

// Output naming constants
const (
	TempSuffix          = ".trackcut-tmp"
	TrimmedSuffix       = " - trimmed"
	ReplacedAudioSuffix = " - replaced audio"
	SubtitledSuffix     = " - with subtitles"
	AudioExtension      = ".mp3"
	TrimStampFormat     = "03-04pm"
)

// Codec constants
const (
	MP3Codec        = "libmp3lame"
	MovTextCodec    = "mov_text"
	CopyCodec       = "copy"
	ThumbnailVCodec = "mjpeg"
	ThumbnailFormat = "image2"
)

// BuildThumbnailArgs produces arguments that grab one frame at offset and
// write it as JPEG to stdout.
func BuildThumbnailArgs(inputPath string, offset time.Duration) []string {
	return []string{
		"-ss", formatSeconds(offset),
		"-i", inputPath,
		"-vframes", "1",
		"-f", ThumbnailFormat,
		"-vcodec", ThumbnailVCodec,
		"pipe:1",
	}
}

// Containers whose subtitle streams must be transcoded to mov_text.
var movTextContainers = map[string]bool{
	".mp4": true,
	".mov": true,
	".m4v": true,
}

// BuildRemovalArgs produces the ffmpeg arguments that copy every stream of
// file except those in remove into outputPath, without re-encoding. The
// result is deterministic for a given (file, remove) pair.
func BuildRemovalArgs(file *model.MediaFile, remove model.IndexSet, outputPath string) []string {
	args := []string{"-y", "-i", file.Path}
	for _, idx := range file.AllIndices {
		if remove.Contains(idx) {
			continue
		}
		args = append(args, "-map", fmt.Sprintf("0:%d", idx))
	}
	args = append(args, "-c", CopyCodec, outputPath)
	return args
}

// BuildTrimArgs produces arguments for a stream-copy trim of length
// duration starting at start.
func BuildTrimArgs(inputPath string, start, duration time.Duration, outputPath string) []string {
	return []string{
		"-y",
		"-ss", formatSeconds(start),
		"-i", inputPath,
		"-t", formatSeconds(duration),
		"-c", CopyCodec,
		outputPath,
	}
}

// BuildExtractAudioArgs produces arguments that drop video and encode the
// audio track as mp3.
func BuildExtractAudioArgs(inputPath, outputPath string) []string {
	return []string{
		"-y",
		"-i", inputPath,
		"-vn",
		"-acodec", MP3Codec,
		outputPath,
	}
}

// BuildReplaceAudioArgs produces arguments that keep the input video stream
// and take audio from audioPath instead.
func BuildReplaceAudioArgs(videoPath, audioPath, outputPath string) []string {
	return []string{
		"-y",
		"-i", videoPath,
		"-i", audioPath,
		"-c:v", CopyCodec,
		"-map", "0:v:0",
		"-map", "1:a:0",
		"-shortest",
		outputPath,
	}
}

// BuildAddSubtitlesArgs produces arguments that mux external subtitle files
// into the container as additional subtitle streams. MP4-family containers
// only accept mov_text subtitles; everything else is stream-copied.
func BuildAddSubtitlesArgs(videoPath string, subtitlePaths []string, outputPath string) []string {
	args := []string{"-y", "-i", videoPath}
	for _, sub := range subtitlePaths {
		args = append(args, "-i", sub)
	}

	args = append(args, "-map", "0:v", "-map", "0:a?")
	for i := range subtitlePaths {
		args = append(args, "-map", fmt.Sprintf("%d:0", i+1))
	}

	subtitleCodec := CopyCodec
	if movTextContainers[strings.ToLower(filepath.Ext(videoPath))] {
		subtitleCodec = MovTextCodec
	}
	args = append(args, "-c:v", CopyCodec, "-c:a", CopyCodec, "-c:s", subtitleCodec, outputPath)
	return args
}

// TempOutputPath returns the temporary output path used while a removal
// runs, in the same directory as path so the final rename stays on one
// filesystem. The container extension is preserved because ffmpeg infers
// the output muxer from it.
func TempOutputPath(path string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + TempSuffix + ext
}

// TrimmedOutputPath returns the output path for a trim, stamped with the
// current time so repeated trims of one file never collide.
func TrimmedOutputPath(path string, now time.Time) string {
	ext := filepath.Ext(path)
	stamp := strings.ToLower(now.Format(TrimStampFormat))
	return strings.TrimSuffix(path, ext) + TrimmedSuffix + " " + stamp + ext
}

// ExtractedAudioPath returns the mp3 output path for an audio extraction.
func ExtractedAudioPath(path string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + AudioExtension
}

// ReplacedAudioPath returns the output path for an audio replacement.
func ReplacedAudioPath(path string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + ReplacedAudioSuffix + ext
}

// SubtitledPath returns the output path for a subtitle mux.
func SubtitledPath(path string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + SubtitledSuffix + ext
}

func formatSeconds(d time.Duration) string {
	return fmt.Sprintf("%.3f", d.Seconds())
}
