package workflow

import (
	"context"
	"fmt"

	"github.com/mrz1836/gitauto/internal/config"
	gaerrors "github.com/mrz1836/gitauto/internal/errors"
	"github.com/mrz1836/gitauto/internal/git"
)

// RunRevert lets the user pick one of the last N commits on the remote
// branch and applies it as a new commit with cherry-pick.
//
// The branch must already exist locally. Pending changes are stashed first
// and restored on every exit path, including cancellation and conflicts.
// Unlike the task workflow, a failed push here fails the run.
func (e *Engine) RunRevert(ctx context.Context, task config.TaskConfig, opts Options) (*Report, error) {
	return e.execute(ctx, KindRevert, task, opts, func(r *run) error {
		if err := r.validate(); err != nil {
			return err
		}
		if err := r.ensureRepository(false); err != nil {
			return err
		}
		if r.remote == "" {
			return &StepError{Step: StepFetchCommits, Err: fmt.Errorf("no remote configured: %w", gaerrors.ErrFetchFailed)}
		}
		if e.prompter == nil {
			return &StepError{Step: StepSelect, Err: gaerrors.ErrInteractiveRequired}
		}

		if err := r.enter(StepBranch); err != nil {
			return err
		}
		exists, err := r.repo.BranchExistsLocal(r.ctx, task.Branch)
		if err != nil {
			return &StepError{Step: StepBranch, Err: err}
		}
		if !exists {
			r.log.Error("Local branch '%s' not found. Please ensure it exists before attempting to cherry-pick", task.Branch)
			return &StepError{Step: StepBranch, Err: fmt.Errorf("'%s': %w", task.Branch, gaerrors.ErrBranchNotFound)}
		}

		if err := r.stashChanges(); err != nil {
			return err
		}
		if r.stash.Created {
			r.log.Info("Local changes stashed as '%s'", r.stash.Label)
		}

		err = r.revert()
		if r.stash.Created {
			r.log.Info("Attempting to restore stashed changes")
		}
		r.restoreStash()
		return err
	})
}

func (r *run) revert() error {
	if err := r.checkoutBranch(); err != nil {
		return err
	}

	commits, err := r.fetchCommits(r.opts.commitCount())
	if err != nil {
		return err
	}

	selected, err := r.selectCommit(commits)
	if err != nil {
		return err
	}

	if err := r.cherryPick(selected); err != nil {
		return err
	}
	return r.pushRevert()
}

func (r *run) fetchCommits(n int) ([]git.CommitSelection, error) {
	if err := r.enter(StepFetchCommits); err != nil {
		return nil, err
	}
	r.log.Step("Fetching the last %d commits of %s/%s", n, r.remote, r.task.Branch)

	commits, err := r.repo.LastCommits(r.ctx, r.remote, r.task.Branch, n)
	if err != nil {
		return nil, &StepError{Step: StepFetchCommits, Err: err}
	}
	if len(commits) == 0 {
		r.log.Warning("No commits found on remote branch '%s/%s' to cherry-pick from", r.remote, r.task.Branch)
		return nil, &StepError{Step: StepFetchCommits, Err: gaerrors.ErrNoCommits}
	}
	return commits, nil
}

// selectCommit asks for a commit and a confirmation. Choosing 0 or an
// out-of-range number, declining, or interrupting the prompt all return
// ErrOperationCanceled.
func (r *run) selectCommit(commits []git.CommitSelection) (git.CommitSelection, error) {
	if err := r.enter(StepSelect); err != nil {
		return git.CommitSelection{}, err
	}
	p := r.engine.prompter

	options := make([]string, len(commits))
	for i, c := range commits {
		options[i] = fmt.Sprintf("[%s] %s (%s, %s)", c.ShortHash, c.Subject, c.Author, c.Date)
	}

	title := fmt.Sprintf("Last %d commits on remote branch '%s/%s':", len(commits), r.remote, r.task.Branch)
	choice, err := p.Select(r.ctx, title, options)
	if err != nil {
		return git.CommitSelection{}, r.canceled(err)
	}
	if choice < 0 || choice > len(commits) {
		return git.CommitSelection{}, r.canceled(
			fmt.Errorf("selection %d of %d: %w", choice, len(commits), gaerrors.ErrInvalidSelection))
	}
	if choice == 0 {
		return git.CommitSelection{}, r.canceled(nil)
	}
	selected := commits[choice-1]

	r.log.Info("You are about to apply changes from commit [%s] - '%s' as a NEW commit.", selected.ShortHash, selected.Subject)
	ok, err := p.Confirm(r.ctx, "Confirm this action?", false)
	if err != nil {
		return git.CommitSelection{}, r.canceled(err)
	}
	if !ok {
		return git.CommitSelection{}, r.canceled(nil)
	}
	return selected, nil
}

func (r *run) canceled(err error) error {
	r.log.Info("Cherry-pick operation cancelled")
	r.report.Steps = append(r.report.Steps, StepOutcome{Step: StepSelect, Outcome: git.OutcomeNoOp, Detail: "canceled"})
	if err == nil {
		return &StepError{Step: StepSelect, Err: gaerrors.ErrOperationCanceled}
	}
	return &StepError{Step: StepSelect, Err: fmt.Errorf("%w: %w", gaerrors.ErrOperationCanceled, err)}
}

func (r *run) cherryPick(c git.CommitSelection) error {
	if err := r.enter(StepCherryPick); err != nil {
		return err
	}
	r.log.Step("Performing cherry-pick of commit [%s]", c.ShortHash)

	res, err := r.repo.CherryPick(r.ctx, c.FullHash)
	if err != nil {
		return &StepError{Step: StepCherryPick, Err: err}
	}

	switch res.Outcome {
	case git.OutcomeConflict:
		for _, line := range cherryPickInstructions {
			r.log.Error("%s", line)
		}
		r.report.Guidance = cherryPickGuidance
		return r.fail(StepCherryPick, gaerrors.ErrCherryPickConflict, res)
	case git.OutcomeFailure:
		r.log.Error("Cherry-pick of commit [%s] failed", c.ShortHash)
		return r.fail(StepCherryPick, gaerrors.ErrCherryPickFailed, res)
	case git.OutcomeNoOp:
		r.record(StepCherryPick, res)
		r.report.Applied = &c
		r.warn("Changes from commit [%s] are already present; nothing was applied", c.ShortHash)
		return nil
	default:
		r.record(StepCherryPick, res)
		r.report.Applied = &c
		r.report.CommitMade = true
		r.report.State = StateCommitted
		r.log.Success("Changes from commit [%s] successfully applied as a new commit", c.ShortHash)
		return nil
	}
}

// pushRevert pushes the cherry-picked commit. Failure is fatal here.
func (r *run) pushRevert() error {
	switch {
	case !r.report.CommitMade:
		r.skip(StepPush, "No new commit; skipping push")
		return nil
	case !r.task.PushAfterCommand:
		r.skip(StepPush, "Push skipped after cherry-pick (push_after_command is false)")
		return nil
	}
	if err := r.enter(StepPush); err != nil {
		return err
	}
	r.log.Step("Pushing to %s/%s", r.remote, r.task.Branch)

	res, err := r.repo.Push(r.ctx, r.remote, r.task.Branch)
	if err != nil {
		return &StepError{Step: StepPush, Err: err}
	}
	if !res.OK() {
		return r.fail(StepPush, pushSentinel(res.Kind), res)
	}
	r.record(StepPush, res)
	r.report.Pushed = true
	r.report.State = StatePushed
	r.log.Success("Pushed to %s/%s", r.remote, r.task.Branch)
	return nil
}

func pushSentinel(kind git.ErrorType) error {
	switch kind {
	case git.ErrorTypeAuth:
		return gaerrors.ErrPushAuthFailed
	case git.ErrorTypeNetwork:
		return gaerrors.ErrPushNetworkFailed
	case git.ErrorTypeNonFastForward:
		return gaerrors.ErrPushRejected
	default:
		return gaerrors.ErrPushFailed
	}
}

// ShowLastCommits lists the last n commits of the task's remote branch
// without changing the working tree.
func (e *Engine) ShowLastCommits(ctx context.Context, task config.TaskConfig, n int) ([]git.CommitSelection, error) {
	r := e.newRun(ctx, KindRevert, task, Options{CommitCount: n})
	if err := r.validate(); err != nil {
		return nil, err
	}
	if err := r.ensureRepository(false); err != nil {
		return nil, err
	}
	if r.remote == "" {
		return nil, &StepError{Step: StepFetchCommits, Err: fmt.Errorf("no remote configured: %w", gaerrors.ErrFetchFailed)}
	}
	return r.fetchCommits(r.opts.commitCount())
}
