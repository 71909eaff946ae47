package service

import (
	"context"

	"github.com/rs/zerolog"

	"template-go/internal/model"
)

// Emitter aggregates the inspectors into the published build metadata.
type Emitter struct {
	repository  *RepositoryInspector
	toolchain   *ToolchainInspector
	environment *EnvironmentInspector
	advisor     *TargetAdvisor

	packageVersion string
	describeTags   bool
	driverFiles    []string

	logger zerolog.Logger
}

// EmitterOption is a functional option for configuring an Emitter.
type EmitterOption func(*Emitter)

// NewEmitter creates an Emitter over the given inspectors.
func NewEmitter(
	repository *RepositoryInspector,
	toolchain *ToolchainInspector,
	environment *EnvironmentInspector,
	advisor *TargetAdvisor,
	logger zerolog.Logger,
	opts ...EmitterOption,
) *Emitter {
	e := &Emitter{
		repository:     repository,
		toolchain:      toolchain,
		environment:    environment,
		advisor:        advisor,
		packageVersion: model.Unknown,
		logger:         logger.With().Str("component", "emitter").Logger(),
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// WithPackageVersion sets the version published when tags are not described.
func WithPackageVersion(version string) EmitterOption {
	return func(e *Emitter) {
		if version != "" {
			e.packageVersion = version
		}
	}
}

// WithDescribeTags derives VERSION from the nearest git tag.
func WithDescribeTags(enabled bool) EmitterOption {
	return func(e *Emitter) {
		e.describeTags = enabled
	}
}

// WithDriverFiles declares files whose change requires a re-run.
func WithDriverFiles(paths ...string) EmitterOption {
	return func(e *Emitter) {
		e.driverFiles = append(e.driverFiles, paths...)
	}
}

// Emit runs every inspector and returns the aggregated metadata. It never
// fails; unavailable facts are published as sentinels or absent flags.
func (e *Emitter) Emit(ctx context.Context) *model.Metadata {
	e.logger.Debug().Msg("emitting build metadata")

	meta := &model.Metadata{Version: e.packageVersion}

	meta.Revision, meta.Branch = e.repository.Inspect(ctx)
	if e.describeTags {
		meta.Version = e.repository.DescribeVersion(ctx, e.packageVersion)
	}

	meta.Toolchain, meta.Features = e.toolchain.Detect(ctx)
	meta.Target = e.toolchain.Target(ctx)
	meta.Stamp = e.environment.Inspect(ctx)

	meta.Advisories = e.advisor.Advise(meta.Target)
	for _, a := range meta.Advisories {
		e.logger.Warn().Msg(a.Message)
	}

	meta.Watch = append(append([]string{}, e.driverFiles...), e.repository.WatchPaths(ctx)...)

	e.logger.Info().
		Str("version", meta.Version).
		Str("revision", meta.Revision.Full).
		Str("branch", meta.Branch.Name).
		Str("toolchain", meta.Toolchain.Descriptor()).
		Strs("features", meta.Features.Tags()).
		Msg("build metadata emitted")
	return meta
}
