// Package structured provides document writers (JSON, YAML) carrying the
// complete build metadata, including advisories and the watch list.
package structured

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"template-go/internal/model"
)

// Document is the structured form of the metadata: the published constants
// keyed by name next to the full metadata.
type Document struct {
	Constants map[string]string `json:"constants" yaml:"constants"`
	Flags     []string          `json:"flags" yaml:"flags"`
	Metadata  *model.Metadata   `json:"metadata" yaml:"metadata"`
}

// NewDocument builds the document for meta.
func NewDocument(meta *model.Metadata) Document {
	constants := make(map[string]string)
	for _, kv := range meta.Pairs() {
		constants[kv.Key] = kv.Value
	}
	return Document{
		Constants: constants,
		Flags:     meta.Features.Tags(),
		Metadata:  meta,
	}
}

// JSONWriter writes indented JSON.
type JSONWriter struct{}

// NewJSONWriter creates a JSONWriter.
func NewJSONWriter() *JSONWriter {
	return &JSONWriter{}
}

// Format implements report.ReportWriter.
func (w *JSONWriter) Format() string {
	return "json"
}

// Write implements report.ReportWriter.
func (w *JSONWriter) Write(meta *model.Metadata, out io.Writer) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(NewDocument(meta)); err != nil {
		return fmt.Errorf("failed to encode json: %w", err)
	}
	return nil
}

// YAMLWriter writes YAML.
type YAMLWriter struct{}

// NewYAMLWriter creates a YAMLWriter.
func NewYAMLWriter() *YAMLWriter {
	return &YAMLWriter{}
}

// Format implements report.ReportWriter.
func (w *YAMLWriter) Format() string {
	return "yaml"
}

// Write implements report.ReportWriter.
func (w *YAMLWriter) Write(meta *model.Metadata, out io.Writer) error {
	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)
	if err := enc.Encode(NewDocument(meta)); err != nil {
		return fmt.Errorf("failed to encode yaml: %w", err)
	}
	return enc.Close()
}
