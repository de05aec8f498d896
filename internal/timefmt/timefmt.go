// Package timefmt renders strftime-style timestamp patterns, the format task
// files use for "timestamp_format".
package timefmt

import (
	"fmt"
	"strings"
	"time"

	"github.com/lestrrat-go/strftime"

	"github.com/mrz1836/gitauto/internal/constants"
)

// Format renders t with a strftime pattern such as "%Y-%m-%d %H:%M:%S".
// An empty pattern uses constants.DefaultTimestampFormat.
func Format(pattern string, t time.Time) (string, error) {
	if pattern == "" {
		pattern = constants.DefaultTimestampFormat
	}
	out, err := strftime.Format(pattern, t)
	if err != nil {
		return "", fmt.Errorf("invalid timestamp format %q: %w", pattern, err)
	}
	return out, nil
}

// Validate reports whether pattern can be rendered.
func Validate(pattern string) error {
	if pattern == "" {
		return nil
	}
	if _, err := strftime.New(pattern); err != nil {
		return fmt.Errorf("invalid timestamp format %q: %w", pattern, err)
	}
	return nil
}

// CommitMessage appends the rendered timestamp to message: "Build [2024-05-01]".
func CommitMessage(message, pattern string, t time.Time) (string, error) {
	ts, err := Format(pattern, t)
	if err != nil {
		return "", err
	}
	message = strings.TrimSpace(message)
	if message == "" {
		return "[" + ts + "]", nil
	}
	return message + " [" + ts + "]", nil
}

// Compact renders t for use in stash labels and other identifiers: 20240501-150405.
func Compact(t time.Time) string {
	return t.Format("20060102-150405")
}
