// Package gotool provides a client for querying the active Go toolchain.
package gotool

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"

	"template-go/internal/client/command"
)

// Keys queried by Env. Together they describe the toolchain and the target.
var Keys = []string{"GOVERSION", "GOHOSTOS", "GOHOSTARCH", "GOOS", "GOARCH", "CGO_ENABLED", "CC"}

// Client queries `go env`.
type Client struct {
	dir    string
	binary string
	runner command.Runner
	logger zerolog.Logger
}

// NewClient creates a toolchain client running binary inside dir.
func NewClient(dir, binary string, runner command.Runner, logger zerolog.Logger) *Client {
	if binary == "" {
		binary = "go"
	}
	return &Client{
		dir:    dir,
		binary: binary,
		runner: runner,
		logger: logger.With().Str("component", "gotool-client").Logger(),
	}
}

// Env returns the requested go env variables.
func (c *Client) Env(ctx context.Context, keys ...string) (map[string]string, error) {
	args := append([]string{"env", "-json"}, keys...)
	c.logger.Debug().Strs("keys", keys).Msg("querying go env")

	out, err := c.runner.Run(ctx, c.dir, c.binary, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query go env: %w", err)
	}

	var env map[string]string
	if err := json.Unmarshal([]byte(out), &env); err != nil {
		return nil, fmt.Errorf("failed to parse go env output: %w", err)
	}
	return env, nil
}
