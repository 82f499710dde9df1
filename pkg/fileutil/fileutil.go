package fileutil

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/rohmanhakim/digester/pkg/failure"
)

// GetFileExtension extracts the file extension from a path, or empty string if none
func GetFileExtension(path string) string {
	ext := filepath.Ext(path)
	if ext == "" {
		return ""
	}
	// Remove the leading dot
	return strings.TrimPrefix(ext, ".")
}

// EnsureDir check if a given directory plus the following path exist, then create one if not
func EnsureDir(dir string, path ...string) failure.ClassifiedError {
	targetPath := []string{dir}
	targetPath = append(targetPath, path...)

	fullDir := filepath.Join(targetPath...)
	if err := os.MkdirAll(fullDir, 0755); err != nil {
		return &FileError{
			Message:   fmt.Sprintf("%v", err),
			Retryable: false,
			Cause:     ErrCausePathError,
		}
	}
	return nil
}

// RequireFile succeeds only when path names an existing regular file.
func RequireFile(path string) failure.ClassifiedError {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &FileError{
				Message:   fmt.Sprintf("%s does not exist", path),
				Retryable: false,
				Cause:     ErrCauseNotExist,
			}
		}
		return &FileError{
			Message:   fmt.Sprintf("%v", err),
			Retryable: false,
			Cause:     ErrCausePathError,
		}
	}
	if !info.Mode().IsRegular() {
		return &FileError{
			Message:   fmt.Sprintf("%s is not a regular file", path),
			Retryable: false,
			Cause:     ErrCauseNotRegular,
		}
	}
	return nil
}
