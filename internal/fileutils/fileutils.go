// Package fileutils provides the file operations owned by the CLI layer.
// The conversion engine itself only ever sees in-memory buffers.
package fileutils

import (
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"fjacquet/csv-ofx/internal/parsererror"
)

var log = logrus.New()

// SetLogger sets a custom logger for this package.
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

// FileExists checks if a file exists and is not a directory.
func FileExists(filePath string) bool {
	info, err := os.Stat(filePath)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// ReadFile reads the entire contents of a file.
func ReadFile(filePath string) ([]byte, error) {
	data, err := os.ReadFile(filePath) // #nosec G304 -- CLI tool requires user-provided file paths
	if err != nil {
		log.WithError(err).Error("Failed to read file")
		return nil, &parsererror.FileAccessError{Path: filePath, Op: "read", Err: err}
	}
	return data, nil
}

// WriteFile writes data to a file, creating parent directories as needed.
func WriteFile(filePath string, data []byte) error {
	dir := filepath.Dir(filePath)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return &parsererror.FileAccessError{Path: dir, Op: "mkdir", Err: err}
	}

	if err := os.WriteFile(filePath, data, 0600); err != nil {
		log.WithError(err).Error("Failed to write file")
		return &parsererror.FileAccessError{Path: filePath, Op: "write", Err: err}
	}
	return nil
}
