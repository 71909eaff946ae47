package model

import "fmt"

// MSRV is the minimum toolchain version that enables the msrv flag.
const MSRV = "1.23.0"

// Channel is a toolchain release maturity tier.
type Channel string

const (
	ChannelStable  Channel = "Stable"
	ChannelBeta    Channel = "Beta"
	ChannelNightly Channel = "Nightly"
	ChannelUnknown Channel = "Unknown"
)

// ToolchainInfo describes the Go toolchain used for the build.
type ToolchainInfo struct {
	Version  string  `json:"version" yaml:"version"` // semver, e.g. "1.25.5"
	Host     string  `json:"host" yaml:"host"`       // "<os>/<arch>" of the build host
	Channel  Channel `json:"channel" yaml:"channel"`
	Detected bool    `json:"detected" yaml:"detected"`
}

// UnknownToolchain returns the value used when the toolchain cannot be queried.
func UnknownToolchain() ToolchainInfo {
	return ToolchainInfo{Version: Unknown, Host: Unknown, Channel: ChannelUnknown}
}

// Descriptor formats the toolchain as "<semver> <host> (<Channel> channel)".
func (t ToolchainInfo) Descriptor() string {
	if !t.Detected {
		return Unknown
	}
	return fmt.Sprintf("%s %s (%s channel)", t.Version, t.Host, t.Channel)
}

// FeatureFlags are presence-only conditional compilation switches.
// At most one of Nightly, Beta and Stable is set.
type FeatureFlags struct {
	Nightly bool `json:"nightly" yaml:"nightly"`
	Beta    bool `json:"beta" yaml:"beta"`
	Stable  bool `json:"stable" yaml:"stable"`
	MSRV    bool `json:"msrv" yaml:"msrv"`
}

// Feature flag names as passed to go build -tags.
const (
	FlagNightly = "nightly"
	FlagBeta    = "beta"
	FlagStable  = "stable"
	FlagMSRV    = "msrv"
)

// FlagsFor derives the channel flags. msrv is computed separately from the
// version and merged by the caller.
func FlagsFor(channel Channel) FeatureFlags {
	switch channel {
	case ChannelNightly:
		return FeatureFlags{Nightly: true}
	case ChannelBeta:
		return FeatureFlags{Beta: true}
	case ChannelStable:
		return FeatureFlags{Stable: true}
	default:
		return FeatureFlags{}
	}
}

// Tags returns the names of the set flags in a stable order.
func (f FeatureFlags) Tags() []string {
	tags := make([]string, 0, 2)
	if f.Nightly {
		tags = append(tags, FlagNightly)
	}
	if f.Beta {
		tags = append(tags, FlagBeta)
	}
	if f.Stable {
		tags = append(tags, FlagStable)
	}
	if f.MSRV {
		tags = append(tags, FlagMSRV)
	}
	return tags
}
