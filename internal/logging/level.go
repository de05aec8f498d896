package logging

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"
)

// Level is the severity of a workflow event.
type Level int

// Event levels, least to most severe.
const (
	LevelDebug Level = iota
	LevelInfo
	LevelNormal
	LevelStep
	LevelSuccess
	LevelWarning
	LevelError
)

//nolint:gochecknoglobals // lookup table
var levelNames = [...]string{"debug", "info", "normal", "step", "success", "warning", "error"}

// String returns the lowercase level name.
func (l Level) String() string {
	if l < LevelDebug || l > LevelError {
		return fmt.Sprintf("level(%d)", int(l))
	}
	return levelNames[l]
}

// MarshalText implements encoding.TextMarshaler.
func (l Level) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// ParseLevel converts a level name into a Level.
func ParseLevel(s string) (Level, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range levelNames {
		if n == name {
			return Level(i), nil
		}
	}
	return LevelInfo, fmt.Errorf("unknown log level %q", s)
}

// zerologLevel maps an event level onto zerolog's scale. step, success and
// normal are informational for the file log; the event level is kept as a field.
func (l Level) zerologLevel() zerolog.Level {
	switch l {
	case LevelDebug:
		return zerolog.DebugLevel
	case LevelWarning:
		return zerolog.WarnLevel
	case LevelError:
		return zerolog.ErrorLevel
	case LevelInfo, LevelNormal, LevelStep, LevelSuccess:
		return zerolog.InfoLevel
	default:
		return zerolog.InfoLevel
	}
}
