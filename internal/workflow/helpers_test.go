package workflow

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/mrz1836/gitauto/internal/clock"
	"github.com/mrz1836/gitauto/internal/config"
	"github.com/mrz1836/gitauto/internal/git"
	"github.com/mrz1836/gitauto/internal/logging"
	"github.com/mrz1836/gitauto/internal/prompt"
)

//nolint:gochecknoglobals // fixed test instant
var testNow = time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC)

const testRunID = "0123abcd-0000-4000-8000-000000000000"

type harness struct {
	engine   *Engine
	rec      *logging.Recorder
	exec     *countingExecutor
	prompter *prompt.Scripted
}

func newHarness(t *testing.T, next git.Executor) *harness {
	t.Helper()
	rec := logging.NewRecorder()
	log := logging.New(rec)
	if next == nil {
		next = git.NewCLIExecutor(log)
	}
	exec := &countingExecutor{next: next}
	p := &prompt.Scripted{}

	return &harness{
		engine: NewEngine(exec, log,
			WithClock(clock.FixedClock{At: testNow}),
			WithPrompter(p),
			WithRunIDFunc(func() string { return testRunID }),
			WithPushRetry(git.RetryConfig{MaxAttempts: 3, InitialDelay: time.Millisecond, Multiplier: 1}),
		),
		rec:      rec,
		exec:     exec,
		prompter: p,
	}
}

func taskFor(path string) config.TaskConfig {
	cfg := config.NewTaskConfig("demo", path)
	cfg.CommitMessage = "Build"
	cfg.TimestampFormat = "%Y-%m-%d"
	return cfg
}

// countingExecutor records every command it forwards.
type countingExecutor struct {
	next git.Executor

	mu    sync.Mutex
	calls []git.Command
}

func (c *countingExecutor) Run(ctx context.Context, cmd git.Command) (*git.CommandResult, error) {
	c.mu.Lock()
	c.calls = append(c.calls, cmd)
	c.mu.Unlock()
	return c.next.Run(ctx, cmd)
}

func (c *countingExecutor) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.calls)
}

// ran counts git commands whose first argument is sub.
func (c *countingExecutor) ran(sub string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, cmd := range c.calls {
		if cmd.Name == "git" && len(cmd.Args) > 0 && cmd.Args[0] == sub {
			n++
		}
	}
	return n
}

// flakyPushExecutor fails the first failures pushes with a network error.
type flakyPushExecutor struct {
	next     git.Executor
	failures int
	output   string

	mu     sync.Mutex
	pushes int
}

func (f *flakyPushExecutor) Run(ctx context.Context, cmd git.Command) (*git.CommandResult, error) {
	if cmd.Name == "git" && len(cmd.Args) > 0 && cmd.Args[0] == "push" {
		f.mu.Lock()
		f.pushes++
		n := f.pushes
		f.mu.Unlock()
		if n <= f.failures {
			return &git.CommandResult{Stderr: f.output, ExitCode: 128}, nil
		}
	}
	return f.next.Run(ctx, cmd)
}

func (f *flakyPushExecutor) pushCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.pushes
}

func stepOutcome(r *Report, step Step) (StepOutcome, bool) {
	for _, s := range r.Steps {
		if s.Step == step {
			return s, true
		}
	}
	return StepOutcome{}, false
}
