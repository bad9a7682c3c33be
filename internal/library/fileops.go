package library

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// RenameFile renames a file within its directory. The new name must be a
// bare file name, not a path.
func RenameFile(originalPath, newName string) (string, error) {
	if filepath.Base(newName) != newName {
		return "", fmt.Errorf("new name %q must not contain path separators", newName)
	}
	newPath := filepath.Join(filepath.Dir(originalPath), newName)
	if err := os.Rename(originalPath, newPath); err != nil {
		return "", err
	}
	return newPath, nil
}

// MoveFile moves a file to destination, creating parent directories as
// needed. Falls back to copy-and-delete when the destination is on another
// filesystem.
func MoveFile(source, destination string) error {
	if err := os.MkdirAll(filepath.Dir(destination), 0o755); err != nil {
		return err
	}
	if err := os.Rename(source, destination); err == nil {
		return nil
	}
	if err := CopyFile(source, destination); err != nil {
		return err
	}
	return os.Remove(source)
}

// CopyFile copies a file to destination, creating parent directories as
// needed and preserving the source's permission bits.
func CopyFile(source, destination string) error {
	if err := os.MkdirAll(filepath.Dir(destination), 0o755); err != nil {
		return err
	}

	in, err := os.Open(source)
	if err != nil {
		return err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return err
	}

	out, err := os.OpenFile(destination, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(destination)
		return err
	}
	return out.Close()
}
