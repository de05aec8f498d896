package workflow

import (
	"context"

	"github.com/mrz1836/gitauto/internal/config"
)

// plan is the part of the backbone a workflow runs.
type plan struct {
	pull        bool
	preCommand  string
	postCommand string
	commit      bool
}

// RunTask runs the full task workflow: branch, stash-protected pull,
// pre-command, commit, push, final pull, post-command. When the pull leaves
// nothing to process, commands, commit and push are skipped.
func (e *Engine) RunTask(ctx context.Context, task config.TaskConfig, opts Options) (*Report, error) {
	return e.execute(ctx, KindRun, task, opts, func(r *run) error {
		return r.backbone(plan{
			pull:        task.PullBeforeCommand,
			preCommand:  task.PreCommand,
			postCommand: task.PostCommand,
			commit:      true,
		})
	})
}

// RunUpdate always pulls and never runs the task's pre or post command. It
// syncs and ships whatever changed.
func (e *Engine) RunUpdate(ctx context.Context, task config.TaskConfig, opts Options) (*Report, error) {
	return e.execute(ctx, KindUpdate, task, opts, func(r *run) error {
		return r.backbone(plan{pull: true, commit: true})
	})
}

// RunPull prepares the branch and runs the stash, pull, pop protocol only.
func (e *Engine) RunPull(ctx context.Context, task config.TaskConfig, opts Options) (*Report, error) {
	return e.execute(ctx, KindPull, task, opts, func(r *run) error {
		return r.backbone(plan{pull: true})
	})
}

func (r *run) backbone(p plan) error {
	if err := r.validate(); err != nil {
		return err
	}
	if err := r.ensureRepository(true); err != nil {
		return err
	}
	if err := r.checkoutBranch(); err != nil {
		return err
	}

	if p.pull {
		clean, err := r.syncWithRemote()
		if err != nil {
			return err
		}
		if clean && p.commit {
			r.skip(StepCommit, "Nothing changed after pull; skipping commands, commit and push")
			return nil
		}
	}
	if !p.commit {
		return nil
	}

	if err := r.runCommand(StepPreCommand, p.preCommand); err != nil {
		return err
	}
	if p.preCommand != "" {
		r.report.State = StateCommandExecuted
	}

	if err := r.commit(); err != nil {
		return err
	}
	if err := r.pushCommit(); err != nil {
		return err
	}
	if err := r.finalPull(); err != nil {
		return err
	}
	return r.runCommand(StepPostCommand, p.postCommand)
}
