package tui

import (
	"encoding/json"
	"fmt"
	"io"
	"sync"

	"github.com/mrz1836/gitauto/internal/logging"
)

// Verbosity selects which workflow events reach the console.
type Verbosity int

// Verbosity settings.
const (
	// VerbosityQuiet shows warnings and errors only.
	VerbosityQuiet Verbosity = iota
	// VerbosityDefault adds steps, successes and info lines.
	VerbosityDefault
	// VerbosityVerbose shows every event including debug output.
	VerbosityVerbose
)

// NewVerbosity maps the --verbose and --quiet flags. Quiet wins.
func NewVerbosity(verbose, quiet bool) Verbosity {
	switch {
	case quiet:
		return VerbosityQuiet
	case verbose:
		return VerbosityVerbose
	default:
		return VerbosityDefault
	}
}

// Shows reports whether an event at level is displayed.
func (v Verbosity) Shows(level logging.Level) bool {
	switch level {
	case logging.LevelWarning, logging.LevelError:
		return true
	case logging.LevelStep, logging.LevelSuccess, logging.LevelInfo:
		return v >= VerbosityDefault
	case logging.LevelDebug, logging.LevelNormal:
		return v >= VerbosityVerbose
	default:
		return v >= VerbosityVerbose
	}
}

// ConsoleSink renders workflow events as styled lines.
type ConsoleSink struct {
	mu        sync.Mutex
	w         io.Writer
	verbosity Verbosity
	styles    *OutputStyles
}

// NewConsoleSink creates a ConsoleSink writing to w.
func NewConsoleSink(w io.Writer, verbosity Verbosity) *ConsoleSink {
	CheckNoColor()
	return &ConsoleSink{w: w, verbosity: verbosity, styles: NewOutputStyles()}
}

// Emit implements logging.Sink.
func (s *ConsoleSink) Emit(e logging.Event) {
	if !s.verbosity.Shows(e.Level) {
		return
	}

	var line string
	switch e.Level {
	case logging.LevelStep:
		line = s.styles.Step.Render("▸ " + e.Message)
	case logging.LevelSuccess:
		line = s.styles.Success.Render("✓ " + e.Message)
	case logging.LevelWarning:
		line = s.styles.Warning.Render("⚠ " + e.Message)
	case logging.LevelError:
		line = s.styles.Error.Render("✗ " + e.Message)
	case logging.LevelInfo:
		line = s.styles.Info.Render("ℹ " + e.Message)
	case logging.LevelDebug:
		line = s.styles.Dim.Render("  " + e.Message)
	default:
		line = "  " + e.Message
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	_, _ = fmt.Fprintln(s.w, line)
}

// JSONSink writes each displayed event as a JSON line.
type JSONSink struct {
	mu        sync.Mutex
	encoder   *json.Encoder
	verbosity Verbosity
}

// NewJSONSink creates a JSONSink writing to w.
func NewJSONSink(w io.Writer, verbosity Verbosity) *JSONSink {
	return &JSONSink{encoder: json.NewEncoder(w), verbosity: verbosity}
}

// Emit implements logging.Sink.
func (s *JSONSink) Emit(e logging.Event) {
	if !s.verbosity.Shows(e.Level) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	//nolint:errchkjson // sink has no error return
	_ = s.encoder.Encode(e)
}

// NewEventSink picks the console sink for format.
func NewEventSink(w io.Writer, format string, verbosity Verbosity) logging.Sink {
	if format == FormatJSON {
		return NewJSONSink(w, verbosity)
	}
	return NewConsoleSink(w, verbosity)
}

var (
	_ logging.Sink = (*ConsoleSink)(nil)
	_ logging.Sink = (*JSONSink)(nil)
)
