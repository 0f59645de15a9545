package util

import (
	"errors"
	"io/fs"
	"os"
)

func DirExists(path string) bool {
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return false
	}
	return info.IsDir()
}

// EnsureDir creates path (and parents) if it does not exist yet.
// Calling it on an existing directory is a no-op.
func EnsureDir(path string) error {
	return os.MkdirAll(path, 0o755)
}

// FileExistsNonEmpty reports whether path is a regular file with content.
func FileExistsNonEmpty(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular() && info.Size() > 0
}
