package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"template-go/internal/report/structured"
	"template-go/internal/report/text"
)

// Registry manages report writers for different formats.
type Registry struct {
	writers map[string]ReportWriter
}

// NewRegistry creates a registry with every built-in writer. pkg is the
// import path of the package whose variables the ldflags writer sets.
func NewRegistry(pkg string, logger zerolog.Logger) *Registry {
	r := &Registry{
		writers: make(map[string]ReportWriter),
	}

	for _, w := range []ReportWriter{
		text.NewEnvWriter(),
		text.NewLdflagsWriter(pkg, logger),
		text.NewTagsWriter(),
		structured.NewJSONWriter(),
		structured.NewYAMLWriter(),
	} {
		r.writers[w.Format()] = w
	}

	return r
}

// Get returns a writer for the specified format.
// Format names are case-insensitive.
func (r *Registry) Get(format string) (ReportWriter, error) {
	normalizedFormat := strings.ToLower(strings.TrimSpace(format))

	writer, ok := r.writers[normalizedFormat]
	if !ok {
		return nil, fmt.Errorf("unsupported output format %q, supported formats: %s",
			format, strings.Join(r.GetAll(), ", "))
	}

	return writer, nil
}

// GetAll returns all supported format names in sorted order.
func (r *Registry) GetAll() []string {
	formats := make([]string, 0, len(r.writers))
	for format := range r.writers {
		formats = append(formats, format)
	}
	sort.Strings(formats)
	return formats
}

// Has checks if the specified format is supported.
func (r *Registry) Has(format string) bool {
	_, ok := r.writers[strings.ToLower(strings.TrimSpace(format))]
	return ok
}
