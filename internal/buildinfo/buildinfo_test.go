package buildinfo

import (
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"template-go/internal/model"
)

// setVars overrides the linker variables for one test.
func setVars(t *testing.T, version, revision, date string) {
	t.Helper()
	oldVersion, oldRevision, oldShort, oldDate, oldToolchain := Version, Revision, ShortRevision, Date, Toolchain
	t.Cleanup(func() {
		Version, Revision, ShortRevision, Date, Toolchain = oldVersion, oldRevision, oldShort, oldDate, oldToolchain
	})
	Version, Revision, Date = version, revision, date
	if revision != model.Unknown {
		ShortRevision = revision[:8]
	}
}

func TestGet_LinkedValues(t *testing.T) {
	setVars(t, "1.2.3", "0123456789abcdef0123456789abcdef01234567", "2024-05-01 12:00:00 UTC")
	Toolchain = "1.25.5 linux/amd64 (Stable channel)"

	info := Get()
	assert.Equal(t, "1.2.3", info.Version)
	assert.Equal(t, "01234567", info.ShortRevision)
	assert.Equal(t, "1.25.5 linux/amd64 (Stable channel)", info.Toolchain)
	assert.Equal(t, runtime.GOOS+"/"+runtime.GOARCH, info.Platform)
	assert.Equal(t, "1.2.3 (01234567 2024-05-01 12:00:00 UTC)", info.Short())
}

func TestGet_Defaults(t *testing.T) {
	setVars(t, "dev", model.Unknown, model.Unknown)
	Toolchain = model.Unknown

	info := Get()
	assert.NotEmpty(t, info.Revision)
	assert.True(t, strings.HasPrefix(info.Toolchain, runtime.Version()))
	assert.Equal(t, Features(), info.Features)
}

func TestInfo_String(t *testing.T) {
	info := Info{
		Version:  "0.1.0",
		Revision: "unknown",
		Branch:   "HEAD",
		Features: model.FeatureFlags{Stable: true},
	}

	s := info.String()
	assert.Contains(t, s, "Version:    0.1.0\n")
	assert.Contains(t, s, "Branch:     HEAD\n")
	assert.Contains(t, s, "Features:   stable\n")

	info.Features = model.FeatureFlags{}
	assert.NotContains(t, info.String(), "Features:")
}
