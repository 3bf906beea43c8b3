package storage

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// LoadSession returns the browse location saved by the last TUI session.
// A missing file yields "" (popular listing, page 1).
func LoadSession(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

// SaveSession stores the browse location for the next start.
func SaveSession(path, location string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(location+"\n"), 0644)
}

// DefaultSessionPath returns the session file path: ~/.config/cine/session
func DefaultSessionPath() (string, error) {
	return defaultFile("session")
}

// DefaultLogPath returns the log file path: ~/.config/cine/cine.log
func DefaultLogPath() (string, error) {
	return defaultFile("cine.log")
}
