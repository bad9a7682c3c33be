package library

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/trackcut/trackcut/internal/tools"
)

const probeJSON = `{"streams": [{"index": 0, "codec_name": "h264", "codec_type": "video"}], "format": {"format_name": "matroska,webm", "duration": "10.0"}}`

// fakeFFprobe emits a fixed stream listing, failing for files whose name
// contains "bad".
func fakeFFprobe(t *testing.T) tools.Toolset {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell script fixtures are not executable on windows")
	}

	dir := t.TempDir()
	script := "#!/bin/sh\n" +
		"case \"$*\" in *bad*) echo 'invalid data' >&2; exit 1;; esac\n" +
		"cat <<'EOF'\n" + probeJSON + "\nEOF\n"
	path := filepath.Join(dir, "ffprobe")
	if err := os.WriteFile(path, []byte(script), 0o755); err != nil {
		t.Fatalf("Failed to write fake ffprobe: %v", err)
	}
	return tools.Toolset{FFmpeg: path, FFprobe: path}
}

func writeFiles(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatalf("Failed to write %s: %v", name, err)
		}
	}
}

func TestListVideoFiles(t *testing.T) {
	ts := tools.Toolset{}
	dir := t.TempDir()
	writeFiles(t, dir, "b.mkv", "a.mp4", "notes.txt", "cover.jpg", "C.MOV")
	if err := os.Mkdir(filepath.Join(dir, "sub.mkv"), 0o755); err != nil {
		t.Fatalf("Failed to create directory: %v", err)
	}

	s := NewScanner(ts, nil, 1)
	paths, err := s.ListVideoFiles(dir)
	if err != nil {
		t.Fatalf("ListVideoFiles() error: %v", err)
	}

	expected := []string{"C.MOV", "a.mp4", "b.mkv"}
	if len(paths) != len(expected) {
		t.Fatalf("ListVideoFiles() = %v, expected %d entries", paths, len(expected))
	}
	for i, name := range expected {
		if filepath.Base(paths[i]) != name {
			t.Errorf("paths[%d] = %q, expected %q", i, filepath.Base(paths[i]), name)
		}
	}
}

func TestListVideoFilesCustomExtensions(t *testing.T) {
	ts := tools.Toolset{}
	dir := t.TempDir()
	writeFiles(t, dir, "a.webm", "b.mkv")

	s := NewScanner(ts, []string{"webm"}, 1)
	paths, err := s.ListVideoFiles(dir)
	if err != nil {
		t.Fatalf("ListVideoFiles() error: %v", err)
	}
	if len(paths) != 1 || filepath.Base(paths[0]) != "a.webm" {
		t.Errorf("ListVideoFiles() = %v, expected only a.webm", paths)
	}
}

func TestScanContinuesPastUnreadableFiles(t *testing.T) {
	ts := fakeFFprobe(t)
	dir := t.TempDir()
	writeFiles(t, dir, "a.mkv", "bad.mkv", "c.mkv")

	s := NewScanner(ts, nil, 2)
	files, err := s.Scan(context.Background(), dir)
	if err != nil {
		t.Fatalf("Scan() error: %v", err)
	}

	if len(files) != 3 {
		t.Fatalf("Expected 3 files, got %d", len(files))
	}

	for _, f := range files {
		switch f.Name() {
		case "bad.mkv":
			if f.ProbeError == "" {
				t.Error("bad.mkv should carry a probe error")
			}
		default:
			if f.ProbeError != "" {
				t.Errorf("%s unexpectedly failed: %s", f.Name(), f.ProbeError)
			}
			if f.Container != "matroska,webm" {
				t.Errorf("%s container = %q", f.Name(), f.Container)
			}
		}
	}
}

func TestRenameFile(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "old.mkv")

	newPath, err := RenameFile(filepath.Join(dir, "old.mkv"), "new.mkv")
	if err != nil {
		t.Fatalf("RenameFile() error: %v", err)
	}
	if filepath.Base(newPath) != "new.mkv" {
		t.Errorf("newPath = %q", newPath)
	}
	if _, err := os.Stat(newPath); err != nil {
		t.Errorf("Renamed file missing: %v", err)
	}

	if _, err := RenameFile(newPath, "sub/dir.mkv"); err == nil {
		t.Error("Expected error for name containing a separator")
	}
}

func TestMoveAndCopyFile(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "a.mkv")
	src := filepath.Join(dir, "a.mkv")

	copied := filepath.Join(dir, "backup", "a.mkv")
	if err := CopyFile(src, copied); err != nil {
		t.Fatalf("CopyFile() error: %v", err)
	}
	if _, err := os.Stat(src); err != nil {
		t.Error("CopyFile() must keep the source")
	}

	moved := filepath.Join(dir, "sorted", "a.mkv")
	if err := MoveFile(src, moved); err != nil {
		t.Fatalf("MoveFile() error: %v", err)
	}
	if _, err := os.Stat(src); !os.IsNotExist(err) {
		t.Error("MoveFile() must remove the source")
	}
	if _, err := os.Stat(moved); err != nil {
		t.Errorf("Moved file missing: %v", err)
	}
}
