// Package git provides a client for reading git repository metadata.
//
// All operations shell out to the git binary through command.Runner.
// The client is read-only: it never writes to the repository.
package git

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"template-go/internal/client/command"
)

// ErrNoRepository is returned when the directory has no .git entry.
var ErrNoRepository = errors.New("not a git repository")

// ErrInvalidObjectID is returned when git prints something that is not an
// object id.
var ErrInvalidObjectID = errors.New("invalid object id")

const localBranchPrefix = "refs/heads/"

// Client is a client for a git repository rooted at a directory.
type Client struct {
	dir    string         // Repository root (working directory)
	binary string         // git executable
	runner command.Runner // Process runner
	logger zerolog.Logger // Logger
}

// NewClient creates a client for the repository rooted at dir.
func NewClient(dir, binary string, runner command.Runner, logger zerolog.Logger) *Client {
	if binary == "" {
		binary = "git"
	}
	return &Client{
		dir:    dir,
		binary: binary,
		runner: runner,
		logger: logger.With().Str("component", "git-client").Logger(),
	}
}

// Dir returns the repository root.
func (c *Client) Dir() string {
	return c.dir
}

// GitPath returns the .git entry of the repository root.
func (c *Client) GitPath() string {
	return filepath.Join(c.dir, ".git")
}

// Exists reports whether the root carries a .git directory or worktree file.
// Parent directories are not searched.
func (c *Client) Exists() bool {
	_, err := os.Stat(c.GitPath())
	return err == nil
}

// HeadCommit returns the full id of the commit HEAD points to.
func (c *Client) HeadCommit(ctx context.Context) (string, error) {
	return c.resolve(ctx, "HEAD")
}

// PeeledHead peels HEAD, following symbolic refs and tags, to a commit id.
func (c *Client) PeeledHead(ctx context.Context) (string, error) {
	return c.resolve(ctx, "HEAD^{commit}")
}

// SymbolicHead returns the full ref name HEAD points to, e.g.
// "refs/heads/main". It fails when HEAD is detached.
func (c *Client) SymbolicHead(ctx context.Context) (string, error) {
	out, err := c.run(ctx, "symbolic-ref", "--quiet", "HEAD")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// GitFile resolves name ("HEAD", "refs/heads/main") to its path inside the
// git directory. Worktrees and submodules, whose .git is a file, resolve to
// their real git directory. Relative results are joined to the root.
func (c *Client) GitFile(ctx context.Context, name string) (string, error) {
	out, err := c.run(ctx, "rev-parse", "--git-path", name)
	if err != nil {
		return "", err
	}
	path := strings.TrimSpace(out)
	if path == "" {
		return "", fmt.Errorf("git rev-parse --git-path %s returned no path", name)
	}
	if !filepath.IsAbs(path) {
		path = filepath.Join(c.dir, filepath.FromSlash(path))
	}
	return path, nil
}

// NearestTag returns the most recent tag reachable from HEAD.
func (c *Client) NearestTag(ctx context.Context) (string, error) {
	out, err := c.run(ctx, "describe", "--tags", "--abbrev=0", "HEAD")
	if err != nil {
		return "", err
	}
	tag := strings.TrimSpace(out)
	if tag == "" {
		return "", fmt.Errorf("git describe returned no tag")
	}
	return tag, nil
}

// CommitsSince counts the commits reachable from HEAD but not from rev.
func (c *Client) CommitsSince(ctx context.Context, rev string) (int, error) {
	out, err := c.run(ctx, "rev-list", "--count", rev+"..HEAD")
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(strings.TrimSpace(out))
	if err != nil {
		return 0, fmt.Errorf("failed to parse commit count %q: %w", out, err)
	}
	return n, nil
}

// resolve turns a revision expression into a commit id.
func (c *Client) resolve(ctx context.Context, rev string) (string, error) {
	out, err := c.run(ctx, "rev-parse", "--verify", "--quiet", rev)
	if err != nil {
		return "", err
	}
	id := strings.TrimSpace(out)
	if !IsObjectID(id) {
		return "", fmt.Errorf("%w: %q", ErrInvalidObjectID, id)
	}
	return id, nil
}

// run executes a git subcommand inside the repository root.
func (c *Client) run(ctx context.Context, args ...string) (string, error) {
	if !c.Exists() {
		return "", fmt.Errorf("%s: %w", c.dir, ErrNoRepository)
	}

	fullArgs := append([]string{"-C", c.dir}, args...)
	c.logger.Debug().Strs("args", args).Msg("running git")

	out, err := c.runner.Run(ctx, "", c.binary, fullArgs...)
	if err != nil {
		return "", fmt.Errorf("git %s: %w", strings.Join(args, " "), err)
	}
	return out, nil
}

// IsObjectID reports whether s looks like a full SHA-1 or SHA-256 object id.
func IsObjectID(s string) bool {
	if len(s) != 40 && len(s) != 64 {
		return false
	}
	for _, r := range s {
		if !strings.ContainsRune("0123456789abcdef", r) {
			return false
		}
	}
	return true
}

// LocalBranchName returns the short name of a local branch ref. Tags,
// remote-tracking refs and anything else outside refs/heads/ yield false.
func LocalBranchName(ref string) (string, bool) {
	name, ok := strings.CutPrefix(ref, localBranchPrefix)
	if !ok || name == "" {
		return "", false
	}
	return name, true
}

// LooseRefPath returns the on-disk path of a ref relative to the repository
// root, e.g. ".git/refs/heads/main".
func LooseRefPath(ref string) string {
	return filepath.Join(".git", filepath.FromSlash(ref))
}
