package git

import (
	"context"
	"os/exec"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gaerrors "github.com/mrz1836/gitauto/internal/errors"
	"github.com/mrz1836/gitauto/internal/logging"
)

func TestCLIExecutor_Run(t *testing.T) {
	dir := setupTestRepo(t)
	rec := logging.NewRecorder()
	executor := NewCLIExecutor(logging.New(rec))

	t.Run("captures stdout", func(t *testing.T) {
		res, err := executor.Run(context.Background(), Command{Dir: dir, Name: "git", Args: []string{"rev-parse", "--git-dir"}})
		require.NoError(t, err)
		assert.True(t, res.Succeeded())
		assert.Equal(t, ".git\n", res.Stdout)
		assert.NotEmpty(t, rec.Messages(logging.LevelDebug))
	})

	t.Run("non-zero exit is not an error", func(t *testing.T) {
		res, err := executor.Run(context.Background(), Command{Dir: dir, Name: "git", Args: []string{"show", "does-not-exist"}})
		require.NoError(t, err)
		assert.False(t, res.Succeeded())
		assert.NotZero(t, res.ExitCode)
		assert.NotEmpty(t, res.Stderr)
	})

	t.Run("missing binary is distinct", func(t *testing.T) {
		_, err := executor.Run(context.Background(), Command{Dir: dir, Name: "gitauto-no-such-binary"})
		require.ErrorIs(t, err, gaerrors.ErrBinaryNotFound)
		require.ErrorIs(t, err, exec.ErrNotFound)
	})

	t.Run("missing work dir", func(t *testing.T) {
		_, err := executor.Run(context.Background(), Command{Dir: filepath.Join(dir, "nope"), Name: "git", Args: []string{"status"}})
		require.ErrorIs(t, err, gaerrors.ErrWorkDirMissing)
	})

	t.Run("canceled context refuses to start", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := executor.Run(ctx, Command{Dir: dir, Name: "git", Args: []string{"status"}})
		require.ErrorIs(t, err, gaerrors.ErrInterrupted)
	})
}

func TestCLIExecutor_Env(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses sh")
	}
	executor := NewCLIExecutor(nil)
	res, err := executor.Run(context.Background(), Command{
		Dir:  t.TempDir(),
		Name: "sh",
		Args: []string{"-c", "printf %s \"$GITAUTO_TEST_VALUE\""},
		Env:  []string{"GITAUTO_TEST_VALUE=hello"},
	})
	require.NoError(t, err)
	assert.Equal(t, "hello", res.Stdout)
}

func TestRunShell(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses sh")
	}
	dir := t.TempDir()
	executor := NewCLIExecutor(nil)

	t.Run("success runs in dir", func(t *testing.T) {
		res, err := RunShell(context.Background(), executor, dir, "echo built > out.txt && cat out.txt")
		require.NoError(t, err)
		assert.Equal(t, OutcomeSuccess, res.Outcome)
		assert.Equal(t, "built", res.Output)
		assert.FileExists(t, filepath.Join(dir, "out.txt"))
	})

	t.Run("non-zero exit is a failure result", func(t *testing.T) {
		res, err := RunShell(context.Background(), executor, dir, "echo broken >&2; exit 3")
		require.NoError(t, err)
		assert.Equal(t, OutcomeFailure, res.Outcome)
		assert.Equal(t, "command exited with code 3", res.Reason)
		assert.Equal(t, "broken", res.Output)
	})
}

func TestCommandResult_Combined(t *testing.T) {
	tests := []struct {
		name string
		res  *CommandResult
		want string
	}{
		{"nil", nil, ""},
		{"stdout only", &CommandResult{Stdout: "out\n"}, "out"},
		{"stderr only", &CommandResult{Stderr: " err "}, "err"},
		{"both", &CommandResult{Stdout: "out\n", Stderr: "err\n"}, "out\nerr"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.res.Combined())
		})
	}
}

func TestShellCommand(t *testing.T) {
	c := ShellCommand("/repo", "make build")
	assert.Equal(t, "/repo", c.Dir)
	if runtime.GOOS == "windows" {
		assert.Equal(t, []string{"/C", "make build"}, c.Args)
		return
	}
	assert.Equal(t, "sh", c.Name)
	assert.Equal(t, []string{"-c", "make build"}, c.Args)
	assert.Equal(t, "sh -c make build", c.String())
}
