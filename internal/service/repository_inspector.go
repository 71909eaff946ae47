// Package service provides the inspectors and the emitter that derive build
// metadata. Inspectors never fail: every unavailable fact degrades to a
// sentinel value.
package service

import (
	"context"
	"path/filepath"

	"github.com/rs/zerolog"

	"template-go/internal/client/git"
	"template-go/internal/model"
)

// dirtySuffix marks a tag-derived version built from commits past the tag.
const dirtySuffix = "-dirty"

// RepositoryInspector reads revision and branch facts from a git repository.
type RepositoryInspector struct {
	client *git.Client
	logger zerolog.Logger
}

// NewRepositoryInspector creates an inspector over the given git client.
func NewRepositoryInspector(client *git.Client, logger zerolog.Logger) *RepositoryInspector {
	return &RepositoryInspector{
		client: client,
		logger: logger.With().Str("component", "repository-inspector").Logger(),
	}
}

// Revision returns the full id of the head commit, or "unknown".
func (r *RepositoryInspector) Revision(ctx context.Context) string {
	id, err := r.client.HeadCommit(ctx)
	if err != nil {
		r.logger.Debug().Err(err).Msg("head commit unavailable")
		return model.Unknown
	}
	return id
}

// ShortRevision returns the first 8 characters of the peeled head commit,
// or "unknown".
func (r *RepositoryInspector) ShortRevision(ctx context.Context) string {
	id, err := r.client.PeeledHead(ctx)
	if err != nil {
		r.logger.Debug().Err(err).Msg("peeled head unavailable")
		return model.Unknown
	}
	return id[:model.ShortRevisionLength]
}

// Branch returns the short name of the checked out local branch. Detached
// heads, unborn branches and refs outside refs/heads/ yield "HEAD".
func (r *RepositoryInspector) Branch(ctx context.Context) string {
	ref, err := r.client.SymbolicHead(ctx)
	if err != nil {
		r.logger.Debug().Err(err).Msg("head is not symbolic")
		return model.DetachedHead
	}

	name, ok := git.LocalBranchName(ref)
	if !ok {
		r.logger.Debug().Str("ref", ref).Msg("head is not a local branch")
		return model.DetachedHead
	}

	// An unborn branch has a name but no commit to report.
	if _, err := r.client.HeadCommit(ctx); err != nil {
		r.logger.Debug().Err(err).Str("branch", name).Msg("branch has no commits")
		return model.DetachedHead
	}
	return name
}

// Inspect gathers revision and branch facts.
func (r *RepositoryInspector) Inspect(ctx context.Context) (model.RevisionInfo, model.BranchInfo) {
	rev := model.RevisionInfo{
		Full:  r.Revision(ctx),
		Short: r.ShortRevision(ctx),
	}
	branch := model.BranchInfo{Name: r.Branch(ctx)}

	r.logger.Debug().
		Str("revision", rev.Full).
		Str("branch", branch.Name).
		Msg("repository inspected")
	return rev, branch
}

// DescribeVersion returns the nearest tag reachable from the head, suffixed
// with "-dirty" when the head is past that tag. Any failure yields fallback.
func (r *RepositoryInspector) DescribeVersion(ctx context.Context, fallback string) string {
	tag, err := r.client.NearestTag(ctx)
	if err != nil {
		r.logger.Debug().Err(err).Msg("no tag to describe, using package version")
		return fallback
	}

	depth, err := r.client.CommitsSince(ctx, tag)
	if err != nil {
		r.logger.Debug().Err(err).Str("tag", tag).Msg("failed to measure tag distance")
		return fallback
	}
	if depth > 0 {
		return tag + dirtySuffix
	}
	return tag
}

// WatchPaths lists the files that move when the head pointer changes: HEAD
// and the loose ref of the current branch, both inside the git directory.
// Outside a repository <dir>/.git/HEAD is still listed, so that a later
// git init invalidates metadata recorded without one.
func (r *RepositoryInspector) WatchPaths(ctx context.Context) []string {
	head := filepath.Join(r.client.GitPath(), "HEAD")
	if !r.client.Exists() {
		return []string{head}
	}

	if p, err := r.client.GitFile(ctx, "HEAD"); err == nil {
		head = p
	} else {
		r.logger.Debug().Err(err).Msg("failed to resolve HEAD path")
	}
	paths := []string{head}

	ref, err := r.client.SymbolicHead(ctx)
	if err != nil {
		return paths
	}
	if _, ok := git.LocalBranchName(ref); !ok {
		return paths
	}
	refPath := filepath.Join(r.client.Dir(), git.LooseRefPath(ref))
	if p, err := r.client.GitFile(ctx, ref); err == nil {
		refPath = p
	} else {
		r.logger.Debug().Err(err).Str("ref", ref).Msg("failed to resolve ref path")
	}
	return append(paths, refPath)
}
