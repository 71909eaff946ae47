// Package text provides line-oriented writers: dotenv-style KEY=VALUE,
// go build -ldflags and go build -tags.
package text

import (
	"fmt"
	"io"
	"strings"

	"template-go/internal/model"
)

// EnvWriter writes KEY=VALUE lines.
type EnvWriter struct{}

// NewEnvWriter creates an EnvWriter.
func NewEnvWriter() *EnvWriter {
	return &EnvWriter{}
}

// Format implements report.ReportWriter.
func (w *EnvWriter) Format() string {
	return "env"
}

// Write implements report.ReportWriter. Published constants come first in
// publication order, followed by BUILD_FEATURES with the set flags.
func (w *EnvWriter) Write(meta *model.Metadata, out io.Writer) error {
	var sb strings.Builder
	for _, kv := range meta.Pairs() {
		fmt.Fprintf(&sb, "%s=%s\n", kv.Key, kv.Value)
	}
	fmt.Fprintf(&sb, "%s=%s\n", model.KeyFeatures, strings.Join(meta.Features.Tags(), ","))

	_, err := io.WriteString(out, sb.String())
	return err
}

// TagsWriter writes the set feature flags as a go build -tags list.
type TagsWriter struct{}

// NewTagsWriter creates a TagsWriter.
func NewTagsWriter() *TagsWriter {
	return &TagsWriter{}
}

// Format implements report.ReportWriter.
func (w *TagsWriter) Format() string {
	return "tags"
}

// Write implements report.ReportWriter.
func (w *TagsWriter) Write(meta *model.Metadata, out io.Writer) error {
	_, err := fmt.Fprintln(out, strings.Join(meta.Features.Tags(), ","))
	return err
}
