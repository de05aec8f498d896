package config

import (
	"bytes"

	"gopkg.in/yaml.v3"

	"github.com/mrz1836/gitauto/internal/errors"
)

// MarshalYAML renders v as two-space indented YAML for display.
func MarshalYAML(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return nil, errors.Wrap(err, "failed to encode YAML")
	}
	if err := enc.Close(); err != nil {
		return nil, errors.Wrap(err, "failed to encode YAML")
	}
	return buf.Bytes(), nil
}
