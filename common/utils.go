// Package common provides shared constants, types, and utilities
// used across the Onyx Desktop application.
package common

import (
	"os"
	"path/filepath"
)

// ConfigDir returns the path to the per-user application configuration
// directory. It resolves only; creation is left to the first save so
// that probing for an existing configuration has no side effects.
func ConfigDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", WrapError(err, "failed to resolve user config directory")
	}
	return filepath.Join(base, ConfigDirName), nil
}

// EnsureConfigDir resolves the configuration directory and creates it
// if it does not exist.
func EnsureConfigDir() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0700); err != nil {
		return "", WrapError(err, "failed to create config directory")
	}
	return dir, nil
}

// LogDir returns the directory used for log files, creating it if
// necessary.
func LogDir() (string, error) {
	dir, err := EnsureConfigDir()
	if err != nil {
		return "", err
	}
	logDir := filepath.Join(dir, "logs")
	if err := os.MkdirAll(logDir, 0700); err != nil {
		return "", WrapError(err, "failed to create log directory")
	}
	return logDir, nil
}

// FileExists checks if a file exists at the given path.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
