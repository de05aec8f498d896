package tui

import "io"

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Output writes user-facing results.
type Output interface {
	// Success prints a success message.
	Success(msg string)
	// Error prints an error, with its suggested action when one is known.
	Error(err error)
	// Warning prints a warning message.
	Warning(msg string)
	// Info prints an informational message.
	Info(msg string)
	// Table prints rows under headers.
	Table(headers []string, rows [][]string)
	// JSON writes v as JSON.
	JSON(v any) error
}

// NewOutput creates the Output for format. Anything but "json" gets styled text.
func NewOutput(w io.Writer, format string) Output {
	if format == FormatJSON {
		return NewJSONOutput(w)
	}
	return NewTTYOutput(w)
}
