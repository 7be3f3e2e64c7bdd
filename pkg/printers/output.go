package printers

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Format selects a structured output encoding.
type Format string

const (
	Text Format = ""
	JSON Format = "json"
	YAML Format = "yaml"
)

// Structured reports whether f is a machine-readable format.
func (f Format) Structured() bool {
	return f == JSON || f == YAML
}

// Encode writes v to w in format f.
func Encode(w io.Writer, f Format, v interface{}) error {
	switch f {
	case JSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case YAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	}
	return fmt.Errorf("printers: unsupported format %q", f)
}
