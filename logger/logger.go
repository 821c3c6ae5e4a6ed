// Package logger sets up structured logging to the tracker's log file.
// The stdlib log output used throughout the packages is routed through
// slog once Init has run.
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Init opens (appending) the log file and installs a JSON slog handler
// writing to it as the default logger. It returns a close function.
func Init(level, file string) (func(), error) {
	f, err := os.OpenFile(file, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("cannot open log file %q: %w", file, err)
	}
	handler := slog.NewJSONHandler(f, &slog.HandlerOptions{Level: parseLevel(level)})
	slog.SetDefault(slog.New(handler))
	return func() { f.Close() }, nil
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Show copies the log file to w.
func Show(w io.Writer, file string) error {
	f, err := os.Open(file)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = io.Copy(w, f)
	return err
}

// Clear truncates the log file.
func Clear(file string) error {
	return os.Truncate(file, 0)
}
