package structured

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"template-go/internal/model"
)

func sampleMetadata() *model.Metadata {
	return &model.Metadata{
		Version:    "0.1.0",
		Revision:   model.UnknownRevision(),
		Branch:     model.BranchInfo{Name: model.DetachedHead},
		Stamp:      model.BuildStamp{Date: "2024-05-01 12:00:00 UTC", User: "alice"},
		Toolchain:  model.ToolchainInfo{Version: "1.26.0-devel", Host: "linux/amd64", Channel: model.ChannelNightly, Detected: true},
		Features:   model.FeatureFlags{Nightly: true, MSRV: true},
		Target:     model.Target{OS: "linux", Arch: "amd64"},
		Advisories: []model.Advisory{{Message: "Expect a fully static binary."}},
		Watch:      []string{"go.mod", ".git/HEAD"},
	}
}

func TestJSONWriter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewJSONWriter().Write(sampleMetadata(), &buf))

	var doc Document
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))

	assert.Equal(t, "unknown", doc.Constants["BUILD_GIT_REVISION"])
	assert.Equal(t, "HEAD", doc.Constants["BUILD_GIT_BRANCH"])
	assert.Equal(t, "1.26.0-devel linux/amd64 (Nightly channel)", doc.Constants["TOOLCHAIN"])
	assert.Equal(t, []string{"nightly", "msrv"}, doc.Flags)
	assert.Equal(t, sampleMetadata(), doc.Metadata)
}

func TestYAMLWriter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewYAMLWriter().Write(sampleMetadata(), &buf))

	assert.Contains(t, buf.String(), "BUILD_USER: alice")

	var doc Document
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, "0.1.0", doc.Constants["VERSION"])
	assert.Equal(t, []string{"go.mod", ".git/HEAD"}, doc.Metadata.Watch)
	assert.Equal(t, model.ChannelNightly, doc.Metadata.Toolchain.Channel)
}
