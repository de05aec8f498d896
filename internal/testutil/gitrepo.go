package testutil

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// RequireGit skips the test when git is not installed.
func RequireGit(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}
}

// RunGit runs git in dir and fails the test on a non-zero exit.
// It returns the trimmed combined output.
func RunGit(t *testing.T, dir string, args ...string) string {
	t.Helper()
	cmd := exec.CommandContext(context.Background(), "git", args...) //#nosec G204 -- test code with fixed inputs
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	require.NoError(t, err, "git %s: %s", strings.Join(args, " "), out)
	return strings.TrimSpace(string(out))
}

// ConfigureUser sets an identity and disables signing and rebase pulls.
func ConfigureUser(t *testing.T, dir string) {
	t.Helper()
	RunGit(t, dir, "config", "user.email", "test@gitauto.local")
	RunGit(t, dir, "config", "user.name", "Gitauto Test")
	RunGit(t, dir, "config", "commit.gpgsign", "false")
	RunGit(t, dir, "config", "pull.rebase", "false")
}

// InitRepo creates an empty repository whose unborn branch is main.
func InitRepo(t *testing.T) string {
	t.Helper()
	RequireGit(t)
	dir := t.TempDir()
	RunGit(t, dir, "init")
	RunGit(t, dir, "symbolic-ref", "HEAD", "refs/heads/main")
	ConfigureUser(t, dir)
	return dir
}

// WriteFile writes content to name inside dir, creating parent directories.
func WriteFile(t *testing.T, dir, name, content string) {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

// ReadFile returns the content of name inside dir.
func ReadFile(t *testing.T, dir, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, name)) //#nosec G304 -- test temp dir
	require.NoError(t, err)
	return string(data)
}

// CommitAll stages everything and commits with msg.
func CommitAll(t *testing.T, dir, msg string) {
	t.Helper()
	RunGit(t, dir, "add", "-A")
	RunGit(t, dir, "commit", "-m", msg)
}

// SetupRemote creates a bare repository and a working clone with one
// commit on main pushed to origin.
func SetupRemote(t *testing.T) (work, bare string) {
	t.Helper()
	RequireGit(t)
	bare = t.TempDir()
	RunGit(t, bare, "init", "--bare")
	RunGit(t, bare, "symbolic-ref", "HEAD", "refs/heads/main")

	work = InitRepo(t)
	WriteFile(t, work, "README.md", "# test\n")
	CommitAll(t, work, "initial commit")
	RunGit(t, work, "remote", "add", "origin", bare)
	RunGit(t, work, "push", "-u", "origin", "main")
	return work, bare
}

// CloneRemote clones bare into a new directory with a configured user.
func CloneRemote(t *testing.T, bare string) string {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "clone")
	RunGit(t, filepath.Dir(dir), "clone", bare, dir)
	ConfigureUser(t, dir)
	return dir
}

// PushFromClone commits a file in a fresh clone of bare and pushes it,
// simulating another user updating the remote.
func PushFromClone(t *testing.T, bare, branch, file, content, msg string) {
	t.Helper()
	other := CloneRemote(t, bare)
	RunGit(t, other, "checkout", branch)
	WriteFile(t, other, file, content)
	CommitAll(t, other, msg)
	RunGit(t, other, "push", "origin", branch)
}

// StashCount returns the number of stash entries in dir.
func StashCount(t *testing.T, dir string) int {
	t.Helper()
	out := RunGit(t, dir, "stash", "list")
	if out == "" {
		return 0
	}
	return len(strings.Split(out, "\n"))
}
