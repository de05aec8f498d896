package workflow

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mrz1836/gitauto/internal/constants"
	gaerrors "github.com/mrz1836/gitauto/internal/errors"
	"github.com/mrz1836/gitauto/internal/git"
	"github.com/mrz1836/gitauto/internal/timefmt"
)

// validate fails before any git command when the task has no repository path.
func (r *run) validate() error {
	if err := r.enter(StepValidate); err != nil {
		return err
	}
	if strings.TrimSpace(r.task.RepositoryPath) == "" {
		r.log.Error("Task '%s' has no repository folder configured", r.task.Name)
		return &StepError{Step: StepValidate, Err: gaerrors.ErrMissingRepoPath}
	}
	return nil
}

// ensureRepository initializes the repository when allowed, then resolves
// which remote the run syncs with.
func (r *run) ensureRepository(allowInit bool) error {
	if err := r.enter(StepInitialize); err != nil {
		return err
	}

	if !r.repo.IsRepository() {
		if !allowInit || !r.opts.Initialize {
			r.log.Error("'%s' is not a git repository. Run with --initialize to create it", r.repo.Path())
			return &StepError{Step: StepInitialize, Err: fmt.Errorf("%s: %w", r.repo.Path(), gaerrors.ErrNotGitRepo)}
		}

		r.log.Step("Initializing repository in %s", r.repo.Path())
		res, err := r.repo.Initialize(r.ctx, r.task.OriginURL)
		if err != nil {
			return &StepError{Step: StepInitialize, Err: err}
		}
		if !res.OK() {
			return r.fail(StepInitialize, gaerrors.ErrRepoInitFailed, res)
		}
		r.record(StepInitialize, res)
	}

	hasOrigin, err := r.repo.HasRemote(r.ctx, constants.DefaultRemote)
	if err != nil {
		return &StepError{Step: StepInitialize, Err: err}
	}
	if !hasOrigin && r.task.OriginURL != "" {
		res, err := r.repo.AddRemote(r.ctx, constants.DefaultRemote, r.task.OriginURL)
		if err != nil {
			return &StepError{Step: StepInitialize, Err: err}
		}
		if !res.OK() {
			return r.fail(StepInitialize, gaerrors.ErrRemoteSetupFailed, res)
		}
		hasOrigin = true
	}

	if hasOrigin {
		r.remote = constants.DefaultRemote
	} else {
		r.log.Info("No '%s' remote configured; pull and push will be skipped", constants.DefaultRemote)
	}
	return nil
}

// checkoutBranch runs checkout-or-create. A failed upstream push of a new
// branch only warns.
func (r *run) checkoutBranch() error {
	if err := r.enter(StepBranch); err != nil {
		return err
	}
	r.log.Step("Preparing branch '%s'", r.task.Branch)

	res, err := r.repo.CheckoutOrCreateBranch(r.ctx, r.task.Branch, r.remote)
	if err != nil {
		return &StepError{Step: StepBranch, Err: err}
	}
	if !res.OK() {
		return r.fail(StepBranch, gaerrors.ErrCheckoutFailed, res)
	}
	r.record(StepBranch, res)
	if res.Warning != "" {
		r.warn("%s. You may need to set upstream manually", res.Warning)
	}

	r.report.State = StateBranchReady
	return nil
}

// stashChanges stashes everything, untracked files included, when the tree
// has any pending change.
func (r *run) stashChanges() error {
	if err := r.enter(StepStash); err != nil {
		return err
	}

	pending, err := r.repo.HasPendingChanges(r.ctx)
	if err != nil {
		return &StepError{Step: StepStash, Err: fmt.Errorf("%w: %w", gaerrors.ErrStatusFailed, err)}
	}
	if !pending {
		r.skip(StepStash, "No local changes to stash")
		return nil
	}

	token, res, err := r.repo.Stash(r.ctx, r.stashLabel(), r.now())
	if err != nil {
		return &StepError{Step: StepStash, Err: err}
	}
	if !res.OK() {
		return r.fail(StepStash, gaerrors.ErrStashFailed, res)
	}
	r.record(StepStash, res)
	r.stash = token
	return nil
}

// restoreStash pops the run's stash, if it made one. It runs even after an
// interrupt, since it finishes the current step rather than starting a new
// one. Conflicts and failures are warnings.
func (r *run) restoreStash() {
	if !r.stash.Created || r.stashRestored {
		return
	}
	r.stashRestored = true

	res, err := r.repo.PopStash(context.WithoutCancel(r.ctx))
	switch {
	case err != nil:
		r.warn("Could not restore stashed changes '%s': %v. Run 'git stash pop' manually", r.stash.Label, err)
	case res.Outcome == git.OutcomeConflict:
		r.record(StepPopStash, res)
		r.report.StashConflict = true
		r.report.Guidance = stashGuidance
		r.warn("Failed to pop stash due to merge conflict. Manual resolution needed")
	case !res.OK():
		r.record(StepPopStash, res)
		r.warn("Could not restore stashed changes '%s': %s", r.stash.Label, res.Detail())
	default:
		r.record(StepPopStash, res)
	}
}

// syncWithRemote is the stash, pull, pop protocol. It reports whether the
// tree has no pending changes afterwards.
func (r *run) syncWithRemote() (clean bool, err error) {
	if r.remote == "" {
		r.skip(StepPull, "No remote configured; skipping pull")
	} else {
		if err := r.stashChanges(); err != nil {
			return false, err
		}
		if err := r.pull(); err != nil {
			r.log.Info("Attempting to restore stashed changes after the failed pull")
			r.restoreStash()
			return false, err
		}
		r.restoreStash()
	}

	pending, err := r.repo.HasPendingChanges(r.ctx)
	if err != nil {
		return false, &StepError{Step: StepPull, Err: fmt.Errorf("%w: %w", gaerrors.ErrStatusFailed, err)}
	}
	r.report.State = StateSynced
	if !pending {
		r.report.CleanAfterPull = true
		r.log.Info("Repository is clean after pull; nothing to process")
	}
	return !pending, nil
}

func (r *run) pull() error {
	if err := r.enter(StepPull); err != nil {
		return err
	}
	r.log.Step("Pulling latest changes from %s/%s", r.remote, r.task.Branch)

	res, err := r.repo.Pull(r.ctx, r.remote, r.task.Branch)
	if err != nil {
		return &StepError{Step: StepPull, Err: err}
	}
	if res.Outcome == git.OutcomeConflict {
		r.report.Guidance = pullGuidance
	}
	if !res.OK() {
		return r.fail(StepPull, gaerrors.ErrPullFailed, res)
	}
	r.record(StepPull, res)
	r.log.Success("Pulled latest changes")
	return nil
}

// runCommand executes a pre or post command line through the shell.
// A non-zero exit is fatal.
func (r *run) runCommand(step Step, line string) error {
	if strings.TrimSpace(line) == "" {
		return nil
	}
	if err := r.enter(step); err != nil {
		return err
	}
	r.log.Step("Running %s: %s", step, line)

	res, err := git.RunShell(r.ctx, r.engine.exec, r.repo.Path(), line)
	if err != nil {
		return &StepError{Step: step, Err: err}
	}
	for _, out := range strings.Split(strings.TrimSpace(res.Output), "\n") {
		if out != "" {
			r.log.Normal("%s", out)
		}
	}
	if !res.OK() {
		return r.fail(step, gaerrors.ErrCommandFailed, git.Result{Outcome: res.Outcome, Reason: res.Reason})
	}
	r.record(step, git.Result{Outcome: res.Outcome, Reason: res.Reason})
	r.log.Success("%s completed", step)
	return nil
}

// commit stages everything and commits with the timestamped message.
func (r *run) commit() error {
	if err := r.enter(StepCommit); err != nil {
		return err
	}
	r.log.Step("Committing changes")

	message, err := timefmt.CommitMessage(r.task.CommitMessage, r.task.TimestampFormat, r.now())
	if err != nil {
		return &StepError{Step: StepCommit, Err: fmt.Errorf("%w: %w", gaerrors.ErrConfigInvalid, err)}
	}

	res, committed, err := r.repo.Commit(r.ctx, message)
	if err != nil {
		return &StepError{Step: StepCommit, Err: err}
	}
	if !res.OK() {
		return r.fail(StepCommit, gaerrors.ErrCommitFailed, res)
	}
	r.record(StepCommit, res)
	r.report.CommitMade = committed
	if committed {
		r.log.Success("Committed: %s", message)
	}
	r.report.State = StateCommitted
	return nil
}

// pushCommit pushes the new commit. Network failures are retried; a final
// failure is a warning because the commit is already safe locally.
func (r *run) pushCommit() error {
	switch {
	case !r.task.PushAfterCommand:
		r.skip(StepPush, "Push disabled for this task")
		return nil
	case !r.report.CommitMade:
		r.skip(StepPush, "No commit was made; skipping push")
		return nil
	case r.remote == "":
		r.skip(StepPush, "No remote configured; skipping push")
		return nil
	}
	if err := r.enter(StepPush); err != nil {
		return err
	}
	r.log.Step("Pushing to %s/%s", r.remote, r.task.Branch)

	res, err := r.pushWithRetry()
	if err != nil {
		return &StepError{Step: StepPush, Err: err}
	}
	r.record(StepPush, res)
	if !res.OK() {
		r.warn("Push to %s/%s failed (%s): %s", r.remote, r.task.Branch, res.Kind, res.Detail())
		return nil
	}
	r.report.Pushed = true
	r.report.State = StatePushed
	r.log.Success("Pushed to %s/%s", r.remote, r.task.Branch)
	return nil
}

func (r *run) pushWithRetry() (git.Result, error) {
	cfg := r.engine.pushRetry
	op := &git.SimpleRetryOperation[git.Result]{
		AttemptFunc: func(ctx context.Context, _ int) (git.Result, bool, error) {
			res, err := r.repo.Push(ctx, r.remote, r.task.Branch)
			if err != nil {
				return res, false, err
			}
			return res, res.OK(), nil
		},
		ShouldRetryFunc: func(res git.Result, err error) bool {
			return err == nil && res.Kind.Retryable()
		},
		OnRetryWaitFunc: func(attempt int, delay time.Duration) {
			r.log.Warning("Push attempt %d of %d failed with a network error, retrying in %s",
				attempt, cfg.MaxAttempts, delay)
		},
	}

	res, _, err := git.ExecuteWithRetry(r.ctx, cfg, op)
	if err != nil && r.ctx.Err() != nil {
		return res, fmt.Errorf("%w: %w", gaerrors.ErrInterrupted, context.Cause(r.ctx))
	}
	return res, err
}

// finalPull syncs again after pushing. Failures only warn.
func (r *run) finalPull() error {
	if r.remote == "" {
		return nil
	}
	if err := r.enter(StepFinalPull); err != nil {
		return err
	}
	r.log.Step("Final pull from %s/%s", r.remote, r.task.Branch)

	res, err := r.repo.Pull(r.ctx, r.remote, r.task.Branch)
	if err != nil {
		return &StepError{Step: StepFinalPull, Err: err}
	}
	r.record(StepFinalPull, res)
	if !res.OK() {
		r.warn("Final pull from %s/%s failed: %s", r.remote, r.task.Branch, res.Detail())
		return nil
	}
	r.log.Success("Final pull completed")
	return nil
}
