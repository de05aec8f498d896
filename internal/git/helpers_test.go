package git

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/mrz1836/gitauto/internal/logging"
	"github.com/mrz1836/gitauto/internal/testutil"
)

func runGit(t *testing.T, dir string, args ...string) string {
	t.Helper()
	return testutil.RunGit(t, dir, args...)
}

func setupTestRepo(t *testing.T) string {
	t.Helper()
	return testutil.InitRepo(t)
}

func createFile(t *testing.T, dir, name, content string) {
	t.Helper()
	testutil.WriteFile(t, dir, name, content)
}

func readFile(t *testing.T, dir, name string) string {
	t.Helper()
	return testutil.ReadFile(t, dir, name)
}

func commitAll(t *testing.T, dir, msg string) {
	t.Helper()
	testutil.CommitAll(t, dir, msg)
}

func setupRemote(t *testing.T) (work, bare string) {
	t.Helper()
	return testutil.SetupRemote(t)
}

func cloneRemote(t *testing.T, bare string) string {
	t.Helper()
	return testutil.CloneRemote(t, bare)
}

func newTestRepository(path string) (*Repository, *logging.Recorder) {
	rec := logging.NewRecorder()
	log := logging.New(rec)
	return NewRepository(NewCLIExecutor(log), path, log), rec
}

// recordingExecutor wraps another Executor and records every command.
type recordingExecutor struct {
	next Executor

	mu    sync.Mutex
	calls []Command
}

func (r *recordingExecutor) Run(ctx context.Context, c Command) (*CommandResult, error) {
	r.mu.Lock()
	r.calls = append(r.calls, c)
	r.mu.Unlock()
	return r.next.Run(ctx, c)
}

func (r *recordingExecutor) ran(sub string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.calls {
		if len(c.Args) > 0 && c.Args[0] == sub {
			return true
		}
	}
	return false
}

// fakeExecutor answers commands from a table keyed by the joined argument list.
type fakeExecutor struct {
	responses map[string]*CommandResult
	calls     []string
}

func (f *fakeExecutor) Run(_ context.Context, c Command) (*CommandResult, error) {
	key := strings.Join(c.Args, " ")
	f.calls = append(f.calls, key)
	if res, ok := f.responses[key]; ok {
		return res, nil
	}
	return &CommandResult{}, nil
}
