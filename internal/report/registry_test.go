package report

import (
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestNewRegistry(t *testing.T) {
	r := NewRegistry("example.com/app/internal/buildinfo", zerolog.Nop())

	if r == nil {
		t.Fatal("expected non-nil registry")
	}

	want := []string{"env", "json", "ldflags", "tags", "yaml"}
	got := r.GetAll()
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("GetAll() = %v, want %v", got, want)
	}
}

func TestRegistry_Get(t *testing.T) {
	r := NewRegistry("example.com/app/internal/buildinfo", zerolog.Nop())

	for _, format := range []string{"ldflags", "LDFLAGS", " Tags ", "json"} {
		writer, err := r.Get(format)
		if err != nil {
			t.Fatalf("Get(%q) unexpected error: %v", format, err)
		}
		if writer.Format() != strings.ToLower(strings.TrimSpace(format)) {
			t.Errorf("Get(%q).Format() = %q", format, writer.Format())
		}
	}
}

func TestRegistry_Get_Unsupported(t *testing.T) {
	r := NewRegistry("example.com/app/internal/buildinfo", zerolog.Nop())

	_, err := r.Get("xml")
	if err == nil {
		t.Fatal("expected error for unsupported format")
	}
	if !strings.Contains(err.Error(), "xml") || !strings.Contains(err.Error(), "ldflags") {
		t.Errorf("error should name the format and the supported ones, got: %v", err)
	}
}

func TestRegistry_Has(t *testing.T) {
	r := NewRegistry("example.com/app/internal/buildinfo", zerolog.Nop())

	if !r.Has("YAML") {
		t.Error("expected yaml to be supported")
	}
	if r.Has("excel") {
		t.Error("excel should not be supported")
	}
}
