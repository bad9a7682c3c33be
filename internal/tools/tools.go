// Package tools resolves the external multimedia binaries once at startup.
// The resulting Toolset is immutable and passed to every component that
// spawns a subprocess; a missing binary is the one fatal startup condition.
package tools

import (
	"fmt"
	"os/exec"
	"strings"
)

// Default binary names, overridable through configuration.
const (
	DefaultFFmpeg  = "ffmpeg"
	DefaultFFprobe = "ffprobe"
)

// Toolset holds the resolved absolute paths of the external tools.
type Toolset struct {
	FFmpeg  string
	FFprobe string
}

// Resolve looks up the configured ffmpeg and ffprobe commands on PATH (or
// verifies explicit paths) and returns the resolved toolset. Empty
// arguments fall back to the default binary names.
func Resolve(ffmpeg, ffprobe string) (Toolset, error) {
	ts := Toolset{}

	path, err := resolveBinary(ffmpeg, DefaultFFmpeg)
	if err != nil {
		return ts, err
	}
	ts.FFmpeg = path

	path, err = resolveBinary(ffprobe, DefaultFFprobe)
	if err != nil {
		return ts, err
	}
	ts.FFprobe = path

	return ts, nil
}

func resolveBinary(configured, fallback string) (string, error) {
	name := strings.TrimSpace(configured)
	if name == "" {
		name = fallback
	}
	path, err := exec.LookPath(name)
	if err != nil {
		return "", fmt.Errorf("required tool %q not found: %w", name, err)
	}
	return path, nil
}
