package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/rs/zerolog"

	"template-go/internal/client/gotool"
	"template-go/internal/model"
)

var (
	// go1.22, go1.22.3
	releasePattern = regexp.MustCompile(`^go(\d+)\.(\d+)(?:\.(\d+))?$`)
	// go1.23rc1, go1.23beta2
	prereleasePattern = regexp.MustCompile(`^go(\d+)\.(\d+)(?:\.(\d+))?(rc|beta)(\d+)$`)
	// devel go1.24-3cd3f3a Mon Jan 1 00:00:00 2024 +0000
	develPattern = regexp.MustCompile(`go(\d+)\.(\d+)`)
)

var msrvThreshold = semver.MustParse(model.MSRV)

// ToolchainInspector queries the Go toolchain and derives feature flags.
type ToolchainInspector struct {
	client *gotool.Client
	env    Environ
	logger zerolog.Logger

	queried bool
	goenv   map[string]string
}

// NewToolchainInspector creates an inspector. env is the caller's environment
// snapshot, used to decide whether the target platform was chosen explicitly.
func NewToolchainInspector(client *gotool.Client, env Environ, logger zerolog.Logger) *ToolchainInspector {
	return &ToolchainInspector{
		client: client,
		env:    env,
		logger: logger.With().Str("component", "toolchain-inspector").Logger(),
	}
}

// Detect returns the toolchain description and its feature flags. When the
// toolchain cannot be queried the result is UnknownToolchain with no flags.
func (t *ToolchainInspector) Detect(ctx context.Context) (model.ToolchainInfo, model.FeatureFlags) {
	env, ok := t.query(ctx)
	if !ok {
		return model.UnknownToolchain(), model.FeatureFlags{}
	}

	info, version, err := ParseGoVersion(env["GOVERSION"])
	if err != nil {
		t.logger.Debug().Err(err).Msg("unrecognized toolchain version")
		return model.UnknownToolchain(), model.FeatureFlags{}
	}
	info.Host = hostPlatform(env)

	flags := model.FlagsFor(info.Channel)
	flags.MSRV = meetsMSRV(version)

	t.logger.Debug().
		Str("toolchain", info.Descriptor()).
		Strs("flags", flags.Tags()).
		Msg("toolchain detected")
	return info, flags
}

// Target describes the platform being built for.
func (t *ToolchainInspector) Target(ctx context.Context) model.Target {
	target := model.Target{Explicit: t.env.Has("GOOS") || t.env.Has("GOARCH")}

	env, ok := t.query(ctx)
	if !ok {
		return target
	}
	target.OS = env["GOOS"]
	target.Arch = env["GOARCH"]
	target.CgoEnabled = env["CGO_ENABLED"] == "1"
	target.CC = env["CC"]
	return target
}

// query runs go env once per inspector.
func (t *ToolchainInspector) query(ctx context.Context) (map[string]string, bool) {
	if !t.queried {
		t.queried = true
		env, err := t.client.Env(ctx, gotool.Keys...)
		if err != nil {
			t.logger.Debug().Err(err).Msg("toolchain query failed")
		} else {
			t.goenv = env
		}
	}
	return t.goenv, t.goenv != nil
}

// ParseGoVersion classifies a GOVERSION string and converts it to semver.
// Release builds are Stable, rc and beta builds are Beta, and tip builds
// ("devel ...") are Nightly. Any other non-empty value is reported with the
// Unknown channel.
func ParseGoVersion(goversion string) (model.ToolchainInfo, *semver.Version, error) {
	raw := strings.TrimSpace(goversion)
	if raw == "" {
		return model.ToolchainInfo{}, nil, fmt.Errorf("empty toolchain version")
	}

	var (
		channel model.Channel
		text    string
	)

	// GOVERSION may carry experiment suffixes, e.g. "go1.25.5 X:boringcrypto".
	first := strings.Fields(raw)[0]

	switch {
	case first == "devel":
		channel = model.ChannelNightly
		text = "0.0.0-devel"
		if m := develPattern.FindStringSubmatch(raw); m != nil {
			text = fmt.Sprintf("%s.%s.0-devel", m[1], m[2])
		}
	case releasePattern.MatchString(first):
		m := releasePattern.FindStringSubmatch(first)
		channel = model.ChannelStable
		text = fmt.Sprintf("%s.%s.%s", m[1], m[2], orZero(m[3]))
	case prereleasePattern.MatchString(first):
		m := prereleasePattern.FindStringSubmatch(first)
		channel = model.ChannelBeta
		text = fmt.Sprintf("%s.%s.%s-%s%s", m[1], m[2], orZero(m[3]), m[4], m[5])
	default:
		channel = model.ChannelUnknown
		text = strings.TrimPrefix(first, "go")
	}

	version, err := semver.NewVersion(text)
	if err != nil {
		return model.ToolchainInfo{}, nil, fmt.Errorf("failed to parse toolchain version %q: %w", raw, err)
	}

	return model.ToolchainInfo{
		Version:  version.String(),
		Channel:  channel,
		Detected: true,
	}, version, nil
}

// meetsMSRV compares the version core against the threshold; pre-release
// builds of the threshold version count as meeting it.
func meetsMSRV(v *semver.Version) bool {
	core, err := v.SetPrerelease("")
	if err != nil {
		return false
	}
	return !core.LessThan(msrvThreshold)
}

func hostPlatform(env map[string]string) string {
	goos, arch := env["GOHOSTOS"], env["GOHOSTARCH"]
	if goos == "" || arch == "" {
		return model.Unknown
	}
	return goos + "/" + arch
}

func orZero(s string) string {
	if s == "" {
		return "0"
	}
	return s
}
