package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"template-go/internal/model"
)

// Clock returns the current time.
type Clock func() time.Time

// EnvironmentInspector captures who builds and when.
type EnvironmentInspector struct {
	startedAt time.Time
	resolvers []IdentityResolver
	logger    zerolog.Logger
}

// NewEnvironmentInspector reads clock once; that reading is the build date.
// Identity resolvers are tried in the order given.
func NewEnvironmentInspector(clock Clock, resolvers []IdentityResolver, logger zerolog.Logger) *EnvironmentInspector {
	if clock == nil {
		clock = time.Now
	}
	return &EnvironmentInspector{
		startedAt: clock(),
		resolvers: resolvers,
		logger:    logger.With().Str("component", "environment-inspector").Logger(),
	}
}

// DefaultIdentityResolvers returns USER, then USERNAME, then fallback
// (typically a CommandIdentity) when non-nil.
func DefaultIdentityResolvers(env Environ, fallback IdentityResolver) []IdentityResolver {
	resolvers := []IdentityResolver{
		NewEnvIdentity("USER", env),
		NewEnvIdentity("USERNAME", env),
	}
	if fallback != nil {
		resolvers = append(resolvers, fallback)
	}
	return resolvers
}

// BuildDate returns the build start time as "YYYY-MM-DD HH:MM:SS UTC".
func (e *EnvironmentInspector) BuildDate() string {
	return e.startedAt.UTC().Format(model.DateLayout)
}

// BuildUser returns the first identity a resolver yields, or "unknown".
func (e *EnvironmentInspector) BuildUser(ctx context.Context) string {
	for _, r := range e.resolvers {
		if user, ok := r.Resolve(ctx); ok && user != "" {
			e.logger.Debug().Str("resolver", r.Name()).Str("user", user).Msg("build user resolved")
			return user
		}
	}
	e.logger.Debug().Msg("no identity source available")
	return model.Unknown
}

// Inspect gathers the build stamp.
func (e *EnvironmentInspector) Inspect(ctx context.Context) model.BuildStamp {
	return model.BuildStamp{
		Date: e.BuildDate(),
		User: e.BuildUser(ctx),
	}
}
