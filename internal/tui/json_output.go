package tui

import (
	"encoding/json"
	"errors"
	"io"

	gaerrors "github.com/mrz1836/gitauto/internal/errors"
)

// JSONOutput writes one JSON object per message.
type JSONOutput struct {
	encoder *json.Encoder
}

// NewJSONOutput creates a JSONOutput.
func NewJSONOutput(w io.Writer) *JSONOutput {
	return &JSONOutput{encoder: json.NewEncoder(w)}
}

type jsonMessage struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

type jsonError struct {
	Type       string `json:"type"`
	Message    string `json:"message"`
	Details    string `json:"details,omitempty"`
	Suggestion string `json:"suggestion,omitempty"`
}

// Success writes {"type":"success","message":...}.
func (o *JSONOutput) Success(msg string) {
	o.message("success", msg)
}

// Error writes the error with the wrapped cause as details and the suggested
// action, if any.
func (o *JSONOutput) Error(err error) {
	out := jsonError{
		Type:    "error",
		Message: err.Error(),
	}
	if wrapped := errors.Unwrap(err); wrapped != nil {
		out.Details = wrapped.Error()
	}
	_, out.Suggestion = gaerrors.Actionable(err)

	//nolint:errchkjson // no error return in the interface
	_ = o.encoder.Encode(out)
}

// Warning writes {"type":"warning","message":...}.
func (o *JSONOutput) Warning(msg string) {
	o.message("warning", msg)
}

// Info writes {"type":"info","message":...}.
func (o *JSONOutput) Info(msg string) {
	o.message("info", msg)
}

// Table writes an array of objects keyed by header.
func (o *JSONOutput) Table(headers []string, rows [][]string) {
	result := make([]map[string]string, 0, len(rows))
	if len(headers) > 0 {
		for _, row := range rows {
			obj := make(map[string]string, len(headers))
			for i, h := range headers {
				if i < len(row) {
					obj[h] = row[i]
				} else {
					obj[h] = ""
				}
			}
			result = append(result, obj)
		}
	}
	//nolint:errchkjson // no error return in the interface
	_ = o.encoder.Encode(result)
}

// JSON writes v.
func (o *JSONOutput) JSON(v any) error {
	return o.encoder.Encode(v)
}

func (o *JSONOutput) message(kind, msg string) {
	//nolint:errchkjson // no error return in the interface
	_ = o.encoder.Encode(jsonMessage{Type: kind, Message: msg})
}

var _ Output = (*JSONOutput)(nil)
