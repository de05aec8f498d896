package git

import "context"

// Commit stages everything with `git add .` and commits with message.
// committed is false when there was nothing to commit; that case is
// OutcomeNoOp, not a failure.
func (r *Repository) Commit(ctx context.Context, message string) (result Result, committed bool, err error) {
	r.log.Normal("Staging changes")
	add, err := r.git(ctx, "add", ".")
	if err != nil {
		return Result{}, false, err
	}
	if !add.Succeeded() {
		return failure("git add failed", add), false, nil
	}

	r.log.Normal("Committing with message: %s", message)
	res, err := r.git(ctx, "commit", "-m", message)
	if err != nil {
		return Result{}, false, err
	}
	if res.Succeeded() {
		return success("committed", res), true, nil
	}
	if isNothingToCommit(res.Combined()) {
		r.log.Info("Nothing to commit")
		return noop("nothing to commit", res), false, nil
	}
	return failure("git commit failed", res), false, nil
}
