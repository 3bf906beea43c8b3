package logging

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-hclog"
)

// Name is the root logger name.
const Name = "cine"

// ParseLevel maps a config string to an hclog level.
// Unknown or empty values fall back to Info.
func ParseLevel(s string) hclog.Level {
	level := hclog.LevelFromString(strings.TrimSpace(s))
	if level == hclog.NoLevel {
		return hclog.Info
	}
	return level
}

// New builds a logger writing to w.
func New(w io.Writer, level string) hclog.Logger {
	return hclog.New(&hclog.LoggerOptions{
		Name:   Name,
		Level:  ParseLevel(level),
		Output: w,
	})
}

// Open builds a logger appending to the file at path.
// The returned close function closes the file.
func Open(path, level string) (hclog.Logger, func() error, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, nil, err
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, err
	}

	return New(f, level), f.Close, nil
}
