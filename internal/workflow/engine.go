// Package workflow orchestrates repository operations into gitauto's
// workflows: the full task run, update, pull-only and interactive revert.
//
// The engine is the only place that decides whether a failed step aborts the
// run or is reported as a warning:
//
//	missing repo path, init, checkout, stash, pull   fatal
//	new-branch upstream push                          warning
//	stash pop conflict                                warning, manual fix needed
//	pre-command, commit, post-command                 fatal
//	nothing to commit                                 success, push skipped
//	push in run and update                            warning (after retries)
//	push in revert, cherry-pick conflict              fatal
//
// Each step checks the context before it starts; a canceled context stops
// the run with ErrInterrupted but never kills a git command already running.
package workflow

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mrz1836/gitauto/internal/clock"
	"github.com/mrz1836/gitauto/internal/config"
	"github.com/mrz1836/gitauto/internal/constants"
	gaerrors "github.com/mrz1836/gitauto/internal/errors"
	"github.com/mrz1836/gitauto/internal/git"
	"github.com/mrz1836/gitauto/internal/logging"
	"github.com/mrz1836/gitauto/internal/prompt"
	"github.com/mrz1836/gitauto/internal/timefmt"
)

// Options are per-invocation switches that are not part of the task file.
type Options struct {
	// Initialize creates the repository when the folder is not one yet.
	Initialize bool
	// CommitCount is how many remote commits revert offers. Zero means 5.
	CommitCount int
}

func (o Options) commitCount() int {
	if o.CommitCount <= 0 {
		return constants.DefaultCommitCount
	}
	return o.CommitCount
}

// Engine runs workflows. It is safe to reuse across runs but runs one task
// at a time per repository; concurrent runs against the same working tree
// are the caller's responsibility.
type Engine struct {
	exec      git.Executor
	log       *logging.Logger
	prompter  prompt.Prompter
	clock     clock.Clock
	pushRetry git.RetryConfig
	newRunID  func() string
}

// Option configures an Engine.
type Option func(*Engine)

// WithPrompter sets the prompter used by the revert workflow.
func WithPrompter(p prompt.Prompter) Option {
	return func(e *Engine) { e.prompter = p }
}

// WithClock sets the time source for commit messages and stash labels.
func WithClock(c clock.Clock) Option {
	return func(e *Engine) { e.clock = clock.OrReal(c) }
}

// WithPushRetry sets the backoff used when a push fails with a network error.
func WithPushRetry(cfg git.RetryConfig) Option {
	return func(e *Engine) { e.pushRetry = cfg }
}

// WithRunIDFunc sets the run ID generator.
func WithRunIDFunc(f func() string) Option {
	return func(e *Engine) { e.newRunID = f }
}

// NewEngine creates an Engine that runs commands through exec and emits
// events to log.
func NewEngine(exec git.Executor, log *logging.Logger, opts ...Option) *Engine {
	if log == nil {
		log = logging.Nop()
	}
	e := &Engine{
		exec:      exec,
		log:       log,
		clock:     clock.RealClock{},
		pushRetry: git.PushRetryConfig(constants.DefaultPushRetries),
		newRunID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// run is the mutable state of one workflow execution.
type run struct {
	ctx    context.Context //nolint:containedctx // scoped to a single run
	engine *Engine
	task   config.TaskConfig
	opts   Options
	repo   *git.Repository
	log    *logging.Logger
	report *Report
	remote string
	stash  git.StashToken
	// stashRestored is set once the pop of stash has been attempted.
	stashRestored bool
}

func (e *Engine) newRun(ctx context.Context, kind Kind, task config.TaskConfig, opts Options) *run {
	runID := e.newRunID()
	log := e.log.WithTask(task.Name).WithRunID(runID)
	return &run{
		ctx:    ctx,
		engine: e,
		task:   task,
		opts:   opts,
		repo:   git.NewRepository(e.exec, task.RepositoryPath, log),
		log:    log,
		report: &Report{
			Workflow:  kind,
			Task:      task.Name,
			RunID:     runID,
			State:     StateInit,
			StartedAt: e.clock.Now(),
		},
	}
}

// execute runs body and turns its error into the final report state.
func (e *Engine) execute(ctx context.Context, kind Kind, task config.TaskConfig, opts Options, body func(*run) error) (*Report, error) {
	r := e.newRun(ctx, kind, task, opts)
	r.log.Step("Starting %s workflow for task '%s'", kind, task.Name)

	err := body(r)
	return r.finish(err)
}

func (r *run) finish(err error) (*Report, error) {
	r.report.FinishedAt = r.engine.clock.Now()
	r.report.Duration = r.report.FinishedAt.Sub(r.report.StartedAt)
	r.report.Stash = r.stash
	name := r.task.Name

	if err == nil {
		r.report.State = StateDone
		if n := len(r.report.Warnings); n > 0 {
			r.log.Warning("Task '%s' completed with %d warning(s)", name, n)
		} else {
			r.log.Success("Task '%s' completed successfully", name)
		}
		return r.report, nil
	}

	r.report.State = StateAborted
	var stepErr *StepError
	if errors.As(err, &stepErr) {
		r.report.FailedStep = stepErr.Step
	}

	switch {
	case errors.Is(err, gaerrors.ErrInterrupted):
		r.log.Error("Task '%s' interrupted before step '%s'", name, r.report.FailedStep)
	case errors.Is(err, gaerrors.ErrOperationCanceled):
		r.report.Canceled = true
		r.log.Warning("Task '%s' canceled", name)
	default:
		r.log.Error("Task '%s' aborted at step '%s': %v", name, r.report.FailedStep, unwrapStep(err))
	}
	return r.report, err
}

func unwrapStep(err error) error {
	var stepErr *StepError
	if errors.As(err, &stepErr) {
		return stepErr.Err
	}
	return err
}

// enter refuses to start step once the run has been interrupted.
func (r *run) enter(step Step) error {
	if err := r.ctx.Err(); err != nil {
		return &StepError{Step: step, Err: fmt.Errorf("%w: %w", gaerrors.ErrInterrupted, context.Cause(r.ctx))}
	}
	return nil
}

func (r *run) record(step Step, res git.Result) {
	r.report.Steps = append(r.report.Steps, StepOutcome{Step: step, Outcome: res.Outcome, Detail: res.Detail()})
}

func (r *run) skip(step Step, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	r.log.Info("%s", msg)
	r.report.Steps = append(r.report.Steps, StepOutcome{Step: step, Outcome: git.OutcomeNoOp, Detail: msg, Skipped: true})
}

func (r *run) warn(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	r.log.Warning("%s", msg)
	r.report.Warnings = append(r.report.Warnings, msg)
}

// fail records res and returns a StepError wrapping sentinel.
func (r *run) fail(step Step, sentinel error, res git.Result) error {
	r.record(step, res)
	detail := res.Detail()
	if detail == "" {
		return &StepError{Step: step, Err: sentinel}
	}
	return &StepError{Step: step, Err: fmt.Errorf("%s: %w", detail, sentinel)}
}

func (r *run) now() time.Time {
	return r.engine.clock.Now()
}

// stashLabel is unique per run: gitauto-<task>-<timestamp>-<short run id>.
func (r *run) stashLabel() string {
	id := r.report.RunID
	if len(id) > 8 {
		id = id[:8]
	}
	return strings.Join([]string{constants.StashLabelPrefix, r.task.Name, timefmt.Compact(r.now()), id}, "-")
}
