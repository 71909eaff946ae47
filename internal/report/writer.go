// Package report publishes build metadata in the formats consumed by the
// build: environment files, linker flags, build tags and structured
// documents.
package report

import (
	"io"

	"template-go/internal/model"
)

// ReportWriter renders build metadata in one output format.
type ReportWriter interface {
	// Write renders meta to w. Writers never inspect anything themselves;
	// every value comes from meta.
	Write(meta *model.Metadata, w io.Writer) error

	// Format returns the format identifier for this writer, e.g. "ldflags".
	Format() string
}
