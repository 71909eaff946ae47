// Package buildinfo exposes the build metadata baked into the binary.
//
// The variables are set at link time by the values cmd/buildmeta emits:
//
//	go build -tags "$(buildmeta emit -f tags)" -ldflags "$(buildmeta emit -f ldflags)"
//
// Without linker flags they keep their sentinel defaults.
package buildinfo

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"

	"template-go/internal/model"
)

// Linker-settable build metadata.
var (
	Version       = "dev"
	Revision      = model.Unknown
	ShortRevision = model.Unknown
	Branch        = model.DetachedHead
	Date          = model.Unknown
	User          = model.Unknown
	Toolchain     = model.Unknown
)

// features is filled in by the tag-guarded files of this package.
var features model.FeatureFlags

// Info is a snapshot of the embedded build metadata.
type Info struct {
	Version       string             `json:"version"`
	Revision      string             `json:"revision"`
	ShortRevision string             `json:"short_revision"`
	Branch        string             `json:"branch"`
	Date          string             `json:"date"`
	User          string             `json:"user"`
	Toolchain     string             `json:"toolchain"`
	Features      model.FeatureFlags `json:"features"`
	GoVersion     string             `json:"go_version"`
	Platform      string             `json:"platform"`
}

// Features returns the conditional compilation flags the binary was built with.
func Features() model.FeatureFlags {
	return features
}

// Get returns the embedded metadata. A revision left at its default is
// taken from the module's VCS stamp, and a toolchain left at its default
// from the running runtime.
func Get() Info {
	info := Info{
		Version:       Version,
		Revision:      Revision,
		ShortRevision: ShortRevision,
		Branch:        Branch,
		Date:          Date,
		User:          User,
		Toolchain:     Toolchain,
		Features:      features,
		GoVersion:     runtime.Version(),
		Platform:      runtime.GOOS + "/" + runtime.GOARCH,
	}

	if info.Revision == model.Unknown {
		if rev, ok := vcsRevision(); ok {
			info.Revision = rev
			if len(rev) >= model.ShortRevisionLength {
				info.ShortRevision = rev[:model.ShortRevisionLength]
			}
		}
	}
	if info.Toolchain == model.Unknown {
		info.Toolchain = runtime.Version() + " " + info.Platform
	}
	return info
}

func vcsRevision() (string, bool) {
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return "", false
	}
	for _, s := range bi.Settings {
		if s.Key == "vcs.revision" && s.Value != "" {
			return s.Value, true
		}
	}
	return "", false
}

// Short returns the one-line version, e.g. "0.1.0 (01234567 2024-05-01 12:00:00 UTC)".
func (i Info) Short() string {
	return fmt.Sprintf("%s (%s %s)", i.Version, i.ShortRevision, i.Date)
}

// String returns the multi-line description printed by --version.
func (i Info) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Version:    %s\n", i.Version)
	fmt.Fprintf(&sb, "Revision:   %s\n", i.Revision)
	fmt.Fprintf(&sb, "Branch:     %s\n", i.Branch)
	fmt.Fprintf(&sb, "Built:      %s\n", i.Date)
	fmt.Fprintf(&sb, "Built By:   %s\n", i.User)
	fmt.Fprintf(&sb, "Toolchain:  %s\n", i.Toolchain)
	fmt.Fprintf(&sb, "Go Version: %s\n", i.GoVersion)
	fmt.Fprintf(&sb, "OS/Arch:    %s\n", i.Platform)
	if tags := i.Features.Tags(); len(tags) > 0 {
		fmt.Fprintf(&sb, "Features:   %s\n", strings.Join(tags, ", "))
	}
	return sb.String()
}
