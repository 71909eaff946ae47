package service

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/caarlos0/env/v11"
	"github.com/rs/zerolog"

	"template-go/internal/client/command"
)

// IdentityResolver resolves the identity of the user running the build.
// A resolver that cannot determine an identity returns false.
type IdentityResolver interface {
	Resolve(ctx context.Context) (string, bool)
	Name() string
}

// identityVars are the environment variables that carry a user name.
type identityVars struct {
	User     string `env:"USER"`     // POSIX
	Username string `env:"USERNAME"` // Windows
}

// EnvIdentity reads the user name from one environment variable of a snapshot.
type EnvIdentity struct {
	key  string
	vars identityVars
	err  error
}

// NewEnvIdentity creates a resolver reading key ("USER" or "USERNAME") from snapshot.
func NewEnvIdentity(key string, snapshot Environ) *EnvIdentity {
	r := &EnvIdentity{key: key}
	r.err = env.ParseWithOptions(&r.vars, env.Options{Environment: snapshot})
	return r
}

// Name implements IdentityResolver.
func (r *EnvIdentity) Name() string {
	return "env:" + r.key
}

// Resolve implements IdentityResolver.
func (r *EnvIdentity) Resolve(_ context.Context) (string, bool) {
	if r.err != nil {
		return "", false
	}

	var value string
	switch r.key {
	case "USER":
		value = r.vars.User
	case "USERNAME":
		value = r.vars.Username
	}
	value = strings.TrimSpace(value)
	return value, value != ""
}

// CommandIdentity asks an external command (whoami) for the user name.
type CommandIdentity struct {
	name   string
	runner command.Runner
	logger zerolog.Logger
}

// NewCommandIdentity creates a resolver running name without arguments.
func NewCommandIdentity(name string, runner command.Runner, logger zerolog.Logger) *CommandIdentity {
	return &CommandIdentity{
		name:   name,
		runner: runner,
		logger: logger,
	}
}

// Name implements IdentityResolver.
func (r *CommandIdentity) Name() string {
	return "command:" + r.name
}

// Resolve implements IdentityResolver. Missing executables, non-zero exit
// statuses and non-UTF-8 output are all treated as "no identity".
func (r *CommandIdentity) Resolve(ctx context.Context) (string, bool) {
	out, err := r.runner.Run(ctx, "", r.name)
	if err != nil {
		r.logger.Debug().Err(err).Str("command", r.name).Msg("identity command failed")
		return "", false
	}
	if !utf8.ValidString(out) {
		r.logger.Debug().Str("command", r.name).Msg("identity command printed invalid UTF-8")
		return "", false
	}
	user := strings.TrimSpace(out)
	return user, user != ""
}
