package cli

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/mrz1836/gitauto/internal/clock"
	"github.com/mrz1836/gitauto/internal/config"
)

// executeCLI runs the root command with args against an isolated home and
// returns everything written to stdout and stderr.
func executeCLI(t *testing.T, env *Env, args ...string) (string, error) {
	t.Helper()
	t.Setenv("GITAUTO_HOME", t.TempDir())
	t.Setenv("NO_COLOR", "1")
	for _, name := range []string{"GITAUTO_OUTPUT", "GITAUTO_CONFIG_DIR", "GIT_AUTOMATION_CONFIG_DIR", "GITAUTO_PUSH_RETRIES"} {
		t.Setenv(name, "")
	}

	if env == nil {
		env = &Env{}
	}
	if env.Clock == nil {
		env.Clock = clock.FixedClock{At: time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC)}
	}

	flags := &GlobalFlags{}
	cmd := newRootCmd(flags, BuildInfo{Version: "test"}, env)
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(context.Background())
	env.close()
	return buf.String(), err
}

// writeTask stores a task for folder in a fresh task directory and returns
// the directory.
func writeTask(t *testing.T, name, folder string, edit func(*config.TaskConfig)) string {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "tasks")
	task := config.NewTaskConfig(name, folder)
	task.CommitMessage = "Build"
	task.TimestampFormat = "%Y-%m-%d"
	if edit != nil {
		edit(&task)
	}
	_, err := config.NewStore(dir).Create(context.Background(), task, false)
	require.NoError(t, err)
	return dir
}
