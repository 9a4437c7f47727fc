// Package ioutils provides file system utilities for the albumart-downloader.
//
// This package contains functions for:
//   - Title sanitization for cover file names
//   - Directory creation
//   - Atomic file writing
//   - Reading the link list
package ioutils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// partialSuffix marks files that are still being written.
const partialSuffix = ".part"

// SanitizeTitle replaces every path separator in an album title with a
// space so the title cannot be interpreted as a nested path.
//
// No other characters are touched: two titles that only differ in their
// separators map to the same file name.
//
// Example:
//
//	SanitizeTitle("AC/DC Live") // Returns "AC DC Live"
func SanitizeTitle(title string) string {
	return strings.Map(func(r rune) rune {
		if r == '/' || (r < 0x80 && os.IsPathSeparator(uint8(r))) {
			return ' '
		}
		return r
	}, title)
}

// EnsureDir creates a directory and all parent directories if they don't exist.
//
// Directories are created with mode 0755 (rwxr-xr-x).
// If the directory already exists, no error is returned.
func EnsureDir(path string) error {
	return os.MkdirAll(path, 0755)
}

// IsPartial reports whether name is a temporary file left by WriteFileAtomic.
func IsPartial(name string) bool {
	return strings.HasPrefix(filepath.Base(name), ".") && strings.HasSuffix(name, partialSuffix)
}

// WriteFileAtomic writes data to path so that readers either see the
// complete file or no change at all.
//
// The data is written to a hidden ".<uuid>.part" file in the same directory,
// synced, and then renamed over path. If anything fails the temporary file
// is removed and path is left untouched.
func WriteFileAtomic(path string, data []byte) (err error) {
	dir := filepath.Dir(path)
	tmpPath := filepath.Join(dir, "."+uuid.NewString()+partialSuffix)

	file, err := os.OpenFile(tmpPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			os.Remove(tmpPath)
		}
	}()

	if _, err = file.Write(data); err != nil {
		file.Close()
		return fmt.Errorf("writing %s: %w", tmpPath, err)
	}
	if err = file.Sync(); err != nil {
		file.Close()
		return fmt.Errorf("syncing %s: %w", tmpPath, err)
	}
	if err = file.Close(); err != nil {
		return err
	}

	return os.Rename(tmpPath, path)
}
