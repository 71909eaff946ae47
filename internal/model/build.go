// Package model provides data models for the build metadata process.
package model

import "strings"

// Sentinel values substituted when a fact cannot be determined.
const (
	Unknown      = "unknown" // revision, date, user, toolchain
	DetachedHead = "HEAD"    // branch
)

// DateLayout is the layout of BuildStamp.Date.
const DateLayout = "2006-01-02 15:04:05 UTC"

// ShortRevisionLength is the length of RevisionInfo.Short when known.
const ShortRevisionLength = 8

// RevisionInfo identifies the commit the build was made from.
type RevisionInfo struct {
	Full  string `json:"full" yaml:"full"`   // full commit id or "unknown"
	Short string `json:"short" yaml:"short"` // 8-char prefix or "unknown"
}

// UnknownRevision returns a RevisionInfo holding only sentinels.
func UnknownRevision() RevisionInfo {
	return RevisionInfo{Full: Unknown, Short: Unknown}
}

// BranchInfo names the checked out local branch.
type BranchInfo struct {
	Name string `json:"name" yaml:"name"` // short branch name or "HEAD"
}

// IsDetached reports whether no local branch is checked out.
func (b BranchInfo) IsDetached() bool {
	return b.Name == DetachedHead
}

// BuildStamp records when and by whom the build was made.
type BuildStamp struct {
	Date string `json:"date" yaml:"date"`
	User string `json:"user" yaml:"user"`
}

// LibcFamily classifies how a target links against the C library.
type LibcFamily string

const (
	LibcNone  LibcFamily = "none"  // cgo disabled, pure Go binary
	LibcMusl  LibcFamily = "musl"  // cgo with a musl toolchain
	LibcGlibc LibcFamily = "glibc" // cgo on Linux with the system toolchain
	LibcOther LibcFamily = "other" // cgo on a non-Linux system
)

// Target describes the platform the binary is built for.
type Target struct {
	OS         string `json:"os" yaml:"os"`
	Arch       string `json:"arch" yaml:"arch"`
	CgoEnabled bool   `json:"cgo_enabled" yaml:"cgo_enabled"`
	CC         string `json:"cc,omitempty" yaml:"cc,omitempty"`
	// Explicit is set when GOOS or GOARCH was chosen by the caller.
	Explicit bool `json:"explicit" yaml:"explicit"`
}

// Platform returns the target as "<os>/<arch>", or "unknown".
func (t Target) Platform() string {
	if t.OS == "" || t.Arch == "" {
		return Unknown
	}
	return t.OS + "/" + t.Arch
}

// Libc classifies the target's C library family.
func (t Target) Libc() LibcFamily {
	switch {
	case !t.CgoEnabled:
		return LibcNone
	case strings.Contains(t.CC, "musl"):
		return LibcMusl
	case t.OS == "linux":
		return LibcGlibc
	default:
		return LibcOther
	}
}

// Advisory is an informational build-log message. It never affects the build.
type Advisory struct {
	Message string `json:"message" yaml:"message"`
}
