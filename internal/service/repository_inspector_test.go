package service

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"template-go/internal/client/command"
	"template-go/internal/client/git"
	"template-go/internal/model"
	"template-go/internal/stamp"
)

// initTestRepo creates an empty repository whose head is refs/heads/main.
func initTestRepo(t *testing.T) string {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}

	dir := t.TempDir()
	runTestGit(t, dir, "init")
	runTestGit(t, dir, "config", "user.email", "test@example.com")
	runTestGit(t, dir, "config", "user.name", "Test User")
	runTestGit(t, dir, "config", "commit.gpgsign", "false")
	runTestGit(t, dir, "config", "tag.gpgsign", "false")
	runTestGit(t, dir, "symbolic-ref", "HEAD", "refs/heads/main")
	return dir
}

// commitTestFile writes a file and commits it.
func commitTestFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
	runTestGit(t, dir, "add", name)
	runTestGit(t, dir, "commit", "-m", "add "+name)
}

func runTestGit(t *testing.T, dir string, args ...string) string {
	t.Helper()

	cmd := exec.Command("git", append([]string{"-C", dir}, args...)...)
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "git %v failed: %s", args, string(output))
	return strings.TrimSpace(string(output))
}

func newTestRepositoryInspector(dir string, runner command.Runner) *RepositoryInspector {
	client := git.NewClient(dir, "git", runner, zerolog.Nop())
	return NewRepositoryInspector(client, zerolog.Nop())
}

func TestRepositoryInspector_NoRepository(t *testing.T) {
	dir := t.TempDir()
	r := newTestRepositoryInspector(dir, command.NewExecRunner())
	ctx := context.Background()

	assert.Equal(t, model.Unknown, r.Revision(ctx))
	assert.Equal(t, model.Unknown, r.ShortRevision(ctx))
	assert.Equal(t, model.DetachedHead, r.Branch(ctx))
	assert.Equal(t, []string{filepath.Join(dir, ".git", "HEAD")}, r.WatchPaths(ctx),
		"a later git init must invalidate recorded metadata")
	assert.Equal(t, "0.1.0", r.DescribeVersion(ctx, "0.1.0"))
}

func TestRepositoryInspector_MissingGitBinary(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, ".git"), 0755))

	client := git.NewClient(dir, "definitely-not-git-4242", command.NewExecRunner(), zerolog.Nop())
	r := NewRepositoryInspector(client, zerolog.Nop())
	ctx := context.Background()

	assert.Equal(t, model.Unknown, r.Revision(ctx))
	assert.Equal(t, model.Unknown, r.ShortRevision(ctx))
	assert.Equal(t, model.DetachedHead, r.Branch(ctx))
}

func TestRepositoryInspector_FreshRepository(t *testing.T) {
	dir := initTestRepo(t)
	r := newTestRepositoryInspector(dir, command.NewExecRunner())
	ctx := context.Background()

	rev, branch := r.Inspect(ctx)
	assert.Equal(t, model.UnknownRevision(), rev)
	assert.Equal(t, model.DetachedHead, branch.Name, "unborn branch is not reported")
	assert.Equal(t, "0.1.0", r.DescribeVersion(ctx, "0.1.0"))
}

func TestRepositoryInspector_LocalBranch(t *testing.T) {
	dir := initTestRepo(t)
	commitTestFile(t, dir, "README.md", "# Test Repo\n")
	runTestGit(t, dir, "checkout", "-b", "feature/x")

	r := newTestRepositoryInspector(dir, command.NewExecRunner())
	ctx := context.Background()
	head := runTestGit(t, dir, "rev-parse", "HEAD")

	assert.Equal(t, head, r.Revision(ctx))
	assert.Equal(t, "feature/x", r.Branch(ctx))

	short := r.ShortRevision(ctx)
	assert.Len(t, short, model.ShortRevisionLength)
	assert.True(t, strings.HasPrefix(r.Revision(ctx), short))

	assert.Equal(t, []string{
		filepath.Join(dir, ".git", "HEAD"),
		filepath.Join(dir, ".git", "refs", "heads", "feature", "x"),
	}, r.WatchPaths(ctx))
}

func TestRepositoryInspector_DetachedHead(t *testing.T) {
	dir := initTestRepo(t)
	commitTestFile(t, dir, "a.txt", "a")
	first := runTestGit(t, dir, "rev-parse", "HEAD")
	runTestGit(t, dir, "tag", "v1.0.0")
	commitTestFile(t, dir, "b.txt", "b")
	runTestGit(t, dir, "checkout", "--detach", "v1.0.0")

	r := newTestRepositoryInspector(dir, command.NewExecRunner())
	ctx := context.Background()

	assert.Equal(t, first, r.Revision(ctx))
	assert.Equal(t, first[:8], r.ShortRevision(ctx))
	assert.Equal(t, model.DetachedHead, r.Branch(ctx), "neither the hash nor the tag is a branch")
	assert.Equal(t, []string{filepath.Join(dir, ".git", "HEAD")}, r.WatchPaths(ctx))
}

func TestRepositoryInspector_Worktree(t *testing.T) {
	dir := initTestRepo(t)
	commitTestFile(t, dir, "a.txt", "a")
	wt := filepath.Join(t.TempDir(), "wt")
	runTestGit(t, dir, "worktree", "add", "-b", "wtb", wt)

	r := newTestRepositoryInspector(wt, command.NewExecRunner())
	ctx := context.Background()

	assert.Equal(t, "wtb", r.Branch(ctx))

	watch := r.WatchPaths(ctx)
	require.Len(t, watch, 2)
	for _, p := range watch {
		info, err := os.Stat(p)
		require.NoError(t, err, "watched path %s", p)
		assert.True(t, info.Mode().IsRegular())
	}

	path := filepath.Join(t.TempDir(), "buildmeta.stamp")
	meta := &model.Metadata{Version: "0.1.0", Watch: watch}
	require.NoError(t, stamp.Save(path, "", meta))
	_, ok, err := stamp.Load(path, "")
	require.NoError(t, err)
	assert.True(t, ok)

	commitTestFile(t, wt, "b.txt", "b")
	_, ok, err = stamp.Load(path, "")
	require.NoError(t, err)
	assert.False(t, ok, "a commit in the worktree moves its branch ref")
}

func TestRepositoryInspector_DescribeVersion(t *testing.T) {
	dir := initTestRepo(t)
	commitTestFile(t, dir, "a.txt", "a")
	r := newTestRepositoryInspector(dir, command.NewExecRunner())
	ctx := context.Background()

	assert.Equal(t, "0.1.0", r.DescribeVersion(ctx, "0.1.0"), "no tags yet")

	runTestGit(t, dir, "tag", "v2.0.0")
	assert.Equal(t, "v2.0.0", r.DescribeVersion(ctx, "0.1.0"))

	commitTestFile(t, dir, "b.txt", "b")
	assert.Equal(t, "v2.0.0-dirty", r.DescribeVersion(ctx, "0.1.0"))
}

func TestRepositoryInspector_NonBranchSymbolicRef(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, ".git"), 0755))

	const id = "0123456789abcdef0123456789abcdef01234567"
	runner := command.NewFakeRunner().
		On("git -C "+dir+" symbolic-ref --quiet HEAD", "refs/remotes/origin/main\n", nil).
		On("git -C "+dir+" rev-parse --verify --quiet HEAD", id+"\n", nil)

	r := newTestRepositoryInspector(dir, runner)
	ctx := context.Background()

	assert.Equal(t, id, r.Revision(ctx))
	assert.Equal(t, model.DetachedHead, r.Branch(ctx))
}

func TestRepositoryInspector_GarbageRevision(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, ".git"), 0755))

	runner := command.NewFakeRunner().
		On("git -C "+dir+" rev-parse --verify --quiet HEAD", "\n", nil).
		On("git -C "+dir+" rev-parse --verify --quiet HEAD^{commit}", "xyz\n", nil)

	r := newTestRepositoryInspector(dir, runner)
	ctx := context.Background()

	assert.Equal(t, model.Unknown, r.Revision(ctx))
	assert.Equal(t, model.Unknown, r.ShortRevision(ctx))
}
