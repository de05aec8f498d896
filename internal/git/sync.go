package git

import (
	"context"
	"fmt"
)

// Pull runs `git pull <remote> <branch>`. Merge conflicts are reported as
// OutcomeConflict; everything else non-zero as OutcomeFailure.
func (r *Repository) Pull(ctx context.Context, remote, branch string) (Result, error) {
	r.log.Normal("Pulling latest changes from %s/%s", remote, branch)
	res, err := r.git(ctx, "pull", remote, branch)
	if err != nil {
		return Result{}, err
	}
	if res.Succeeded() {
		return success("pulled", res), nil
	}
	if isConflict(res.Combined()) {
		return conflict("pull stopped on merge conflicts", res), nil
	}
	return failure(fmt.Sprintf("could not pull %s/%s", remote, branch), res), nil
}

// Fetch runs `git fetch <remote>`.
func (r *Repository) Fetch(ctx context.Context, remote string) (Result, error) {
	r.log.Debug("Fetching from %s", remote)
	res, err := r.git(ctx, "fetch", remote)
	if err != nil {
		return Result{}, err
	}
	if !res.Succeeded() {
		return failure(fmt.Sprintf("could not fetch %s", remote), res), nil
	}
	return success("fetched", res), nil
}

// Push runs `git push <remote> <branch>`. Failures carry a Kind so callers
// can decide whether a retry makes sense.
func (r *Repository) Push(ctx context.Context, remote, branch string) (Result, error) {
	r.log.Normal("Pushing changes to %s/%s", remote, branch)
	res, err := r.git(ctx, "push", remote, branch)
	if err != nil {
		return Result{}, err
	}
	if !res.Succeeded() {
		return failure(fmt.Sprintf("could not push to %s/%s", remote, branch), res), nil
	}
	return success("pushed", res), nil
}
