package cli

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrz1836/gitauto/internal/config"
	"github.com/mrz1836/gitauto/internal/errors"
	"github.com/mrz1836/gitauto/internal/git"
	"github.com/mrz1836/gitauto/internal/prompt"
	"github.com/mrz1836/gitauto/internal/testutil"
)

func TestCreateShowList(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "tasks")
	folder := t.TempDir()

	out, err := executeCLI(t, nil, "create", "docs", "--config-dir", dir,
		"--folder", folder, "--branch", "gh-pages", "--pre-command", "make docs", "--no-push")
	require.NoError(t, err)
	assert.Contains(t, out, "Task 'docs' written to")
	assert.FileExists(t, filepath.Join(dir, "docs.json"))

	out, err = executeCLI(t, nil, "show", "docs", "--config-dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "name: docs")
	assert.Contains(t, out, "branch: gh-pages")
	assert.Contains(t, out, "pre_command: make docs")
	assert.Contains(t, out, "push_after_command: false")

	out, err = executeCLI(t, nil, "list", "--config-dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "TASK")
	assert.Contains(t, out, "docs")
	assert.Contains(t, out, "gh-pages")

	out, err = executeCLI(t, nil, "list", "--config-dir", dir, "-q", "-o", "json")
	require.NoError(t, err)
	var entries []config.Entry
	require.NoError(t, json.Unmarshal([]byte(out), &entries))
	require.Len(t, entries, 1)
	assert.Equal(t, "docs", entries[0].Name)
	assert.False(t, entries[0].Task.PushAfterCommand)
}

func TestCreate_ExistingTask(t *testing.T) {
	dir := writeTask(t, "docs", t.TempDir(), nil)
	folder := t.TempDir()

	_, err := executeCLI(t, nil, "create", "docs", "--config-dir", dir, "--folder", folder)
	require.ErrorIs(t, err, errors.ErrConfigExists)

	_, err = executeCLI(t, nil, "create", "docs", "--config-dir", dir, "--folder", folder, "--overwrite")
	require.NoError(t, err)

	res, err := config.NewStore(dir).Load("docs")
	require.NoError(t, err)
	assert.Equal(t, folder, res.Task.RepositoryPath)
}

func TestCreate_RequiresFolder(t *testing.T) {
	_, err := executeCLI(t, nil, "create", "docs", "--config-dir", t.TempDir())
	require.Error(t, err)
	assert.Equal(t, ExitInvalidInput, ExitCodeForError(err))
}

func TestCreate_InvalidName(t *testing.T) {
	_, err := executeCLI(t, nil, "create", "../evil", "--config-dir", t.TempDir(), "--folder", t.TempDir())
	require.ErrorIs(t, err, errors.ErrInvalidTaskName)
	assert.Equal(t, ExitInvalidInput, ExitCodeForError(err))
}

func TestList_Empty(t *testing.T) {
	out, err := executeCLI(t, nil, "list", "--config-dir", filepath.Join(t.TempDir(), "none"))
	require.NoError(t, err)
	assert.Contains(t, out, "No tasks found")
}

func TestShow_Overrides(t *testing.T) {
	dir := writeTask(t, "docs", t.TempDir(), nil)

	out, err := executeCLI(t, nil, "show", "docs", "--config-dir", dir, "--branch", "release", "-o", "json", "-q")
	require.NoError(t, err)

	var task config.TaskConfig
	require.NoError(t, json.Unmarshal([]byte(out), &task))
	assert.Equal(t, "release", task.Branch)
	assert.Equal(t, "docs", task.Name)
}

func TestShow_JSONPathFlag(t *testing.T) {
	dir := writeTask(t, "docs", t.TempDir(), nil)

	out, err := executeCLI(t, nil, "show", "--json", filepath.Join(dir, "docs.json"))
	require.NoError(t, err)
	assert.Contains(t, out, "name: docs")
}

func TestRun_MissingTask(t *testing.T) {
	_, err := executeCLI(t, nil, "run", "nope", "--config-dir", t.TempDir())
	require.ErrorIs(t, err, errors.ErrConfigNotFound)
	assert.Equal(t, ExitError, ExitCodeForError(err))
}

func TestRun_RequiresTask(t *testing.T) {
	_, err := executeCLI(t, nil, "run", "--config-dir", t.TempDir())
	require.ErrorIs(t, err, errors.ErrInvalidArgument)
	assert.Equal(t, ExitInvalidInput, ExitCodeForError(err))
}

func TestRun_CommitsAndPushes(t *testing.T) {
	work, bare := testutil.SetupRemote(t)
	dir := writeTask(t, "demo", work, func(task *config.TaskConfig) {
		task.PullBeforeCommand = false
		task.PreCommand = "echo generated > out.txt"
	})

	out, err := executeCLI(t, &Env{Executor: git.NewCLIExecutor(nil)}, "demo", "--config-dir", dir)
	require.NoError(t, err)

	assert.Contains(t, out, "▸ Starting run workflow for task 'demo'")
	assert.Contains(t, out, "Task 'demo' completed successfully")
	assert.Equal(t, "Build [2024-05-01]", testutil.RunGit(t, bare, "log", "-1", "--format=%s", "main"))
}

func TestRun_VerboseShowsCommandOutput(t *testing.T) {
	work, _ := testutil.SetupRemote(t)
	dir := writeTask(t, "demo", work, func(task *config.TaskConfig) {
		task.PullBeforeCommand = false
		task.PreCommand = "printf 'task-%s\\n' output"
		task.PushAfterCommand = false
	})

	out, err := executeCLI(t, nil, "run", "demo", "--config-dir", dir, "-v")
	require.NoError(t, err)
	assert.Contains(t, out, "task-output")

	out, err = executeCLI(t, nil, "run", "demo", "--config-dir", dir)
	require.NoError(t, err)
	assert.NotContains(t, out, "task-output")
}

func TestRun_FailedStepExitsWithError(t *testing.T) {
	work, _ := testutil.SetupRemote(t)
	dir := writeTask(t, "demo", work, func(task *config.TaskConfig) {
		task.PreCommand = "exit 4"
	})
	testutil.WriteFile(t, work, "pending.txt", "x\n")

	out, err := executeCLI(t, nil, "run", "demo", "--config-dir", dir)
	require.ErrorIs(t, err, errors.ErrCommandFailed)
	assert.Equal(t, ExitError, ExitCodeForError(err))
	assert.Contains(t, out, "aborted at step 'pre-command'")
}

func TestRun_JSONReport(t *testing.T) {
	work, _ := testutil.SetupRemote(t)
	testutil.WriteFile(t, work, "pending.txt", "x\n")
	dir := writeTask(t, "demo", work, nil)

	out, err := executeCLI(t, nil, "update", "demo", "--config-dir", dir, "-q", "-o", "json")
	require.NoError(t, err)

	var report struct {
		Workflow   string `json:"workflow"`
		State      string `json:"state"`
		CommitMade bool   `json:"commit_made"`
		Pushed     bool   `json:"pushed"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, "update", report.Workflow)
	assert.Equal(t, "done", report.State)
	assert.True(t, report.CommitMade)
	assert.True(t, report.Pushed)
}

func TestPull_KeepsLocalChanges(t *testing.T) {
	work, bare := testutil.SetupRemote(t)
	testutil.PushFromClone(t, bare, "main", "remote.txt", "remote\n", "remote change")
	testutil.WriteFile(t, work, "local.txt", "local\n")
	dir := writeTask(t, "demo", work, nil)

	_, err := executeCLI(t, nil, "pull", "demo", "--config-dir", dir)
	require.NoError(t, err)
	assert.Equal(t, "remote\n", testutil.ReadFile(t, work, "remote.txt"))
	assert.Equal(t, "local\n", testutil.ReadFile(t, work, "local.txt"))
}

func TestLog_JSON(t *testing.T) {
	work, _ := testutil.SetupRemote(t)
	testutil.WriteFile(t, work, "a.txt", "a\n")
	testutil.CommitAll(t, work, "second")
	testutil.RunGit(t, work, "push", "origin", "main")
	dir := writeTask(t, "demo", work, nil)

	out, err := executeCLI(t, nil, "log", "demo", "--config-dir", dir, "--count", "2", "-q", "-o", "json")
	require.NoError(t, err)

	var commits []git.CommitSelection
	require.NoError(t, json.Unmarshal([]byte(out), &commits))
	require.Len(t, commits, 2)
	assert.Equal(t, "second", commits[0].Subject)
	assert.Equal(t, "initial commit", commits[1].Subject)
}

func TestLog_Table(t *testing.T) {
	work, _ := testutil.SetupRemote(t)
	dir := writeTask(t, "demo", work, nil)

	out, err := executeCLI(t, nil, "log", "demo", "--config-dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "SUBJECT")
	assert.Contains(t, out, "initial commit")
}

func TestLog_NegativeCount(t *testing.T) {
	dir := writeTask(t, "demo", t.TempDir(), nil)

	_, err := executeCLI(t, nil, "log", "demo", "--config-dir", dir, "--count", "-1")
	require.ErrorIs(t, err, errors.ErrValueOutOfRange)
	assert.Equal(t, ExitInvalidInput, ExitCodeForError(err))
}

func TestRevert_Cancel(t *testing.T) {
	work, _ := testutil.SetupRemote(t)
	dir := writeTask(t, "demo", work, nil)
	testutil.WriteFile(t, work, "local.txt", "local\n")

	env := &Env{Prompter: &prompt.Scripted{Selections: []int{0}}}
	out, err := executeCLI(t, env, "revert", "demo", "--config-dir", dir)
	require.ErrorIs(t, err, errors.ErrOperationCanceled)
	assert.Equal(t, ExitError, ExitCodeForError(err))
	assert.Contains(t, out, "Cherry-pick operation cancelled")
	assert.Equal(t, "local\n", testutil.ReadFile(t, work, "local.txt"))
}

func TestRevert_AppliesCommit(t *testing.T) {
	work, bare := testutil.SetupRemote(t)
	testutil.WriteFile(t, work, "feature.txt", "feature\n")
	testutil.CommitAll(t, work, "add feature")
	testutil.RunGit(t, work, "rm", "-q", "feature.txt")
	testutil.RunGit(t, work, "commit", "-m", "remove feature")
	testutil.RunGit(t, work, "push", "origin", "main")
	dir := writeTask(t, "demo", work, nil)

	env := &Env{Prompter: &prompt.Scripted{Selections: []int{2}, Confirms: []bool{true}}}
	out, err := executeCLI(t, env, "revert", "demo", "--config-dir", dir, "--count", "3")
	require.NoError(t, err)
	assert.Contains(t, out, "Applied [")
	assert.Equal(t, "add feature", testutil.RunGit(t, bare, "log", "-1", "--format=%s", "main"))
}
