package git

import (
	"context"
	"time"
)

// StashToken records whether a workflow run created a stash entry.
// It is never persisted; the zero value means nothing was stashed.
type StashToken struct {
	Created   bool      `json:"created"`
	Label     string    `json:"label,omitempty"`
	CreatedAt time.Time `json:"created_at,omitzero"`
}

// Stash saves tracked and untracked changes under label. When git reports
// there is nothing to save the Result is OutcomeNoOp and the token is empty.
func (r *Repository) Stash(ctx context.Context, label string, now time.Time) (StashToken, Result, error) {
	r.log.Normal("Stashing local changes as '%s'", label)
	res, err := r.git(ctx, "stash", "push", "--include-untracked", "-m", label)
	if err != nil {
		return StashToken{}, Result{}, err
	}

	out := res.Combined()
	switch {
	case isNothingToStash(out):
		r.log.Info("No local changes to stash")
		return StashToken{}, noop("nothing to stash", res), nil
	case !res.Succeeded():
		return StashToken{}, failure("could not stash local changes", res), nil
	}

	r.log.Success("Local changes stashed")
	return StashToken{Created: true, Label: label, CreatedAt: now}, success("stashed", res), nil
}

// PopStash applies and drops the most recent stash entry.
//
// An empty stash list is OutcomeNoOp. A pop that hits merge conflicts is
// OutcomeConflict: git keeps the entry and leaves conflict markers in the
// tree for the user to resolve.
func (r *Repository) PopStash(ctx context.Context) (Result, error) {
	list, err := r.git(ctx, "stash", "list")
	if err != nil {
		return Result{}, err
	}
	if !list.Succeeded() {
		return failure("could not list stash entries", list), nil
	}
	if len(splitLines(list.Stdout)) == 0 {
		r.log.Info("No stash entries to apply")
		return noop("stash is empty", list), nil
	}

	r.log.Normal("Applying stashed changes")
	res, err := r.git(ctx, "stash", "pop")
	if err != nil {
		return Result{}, err
	}
	if res.Succeeded() {
		r.log.Success("Stashed changes applied")
		return success("stash applied", res), nil
	}
	if isConflict(res.Combined()) {
		r.log.Error("Applying the stash produced merge conflicts. Manual resolution needed")
		return conflict("stash pop has conflicts", res), nil
	}
	r.log.Error("Could not apply stash: %s", failure("", res).Detail())
	return failure("could not apply stash", res), nil
}
