package git

import (
	"context"
	"errors"
	"fmt"
	"strings"

	gaerrors "github.com/mrz1836/gitauto/internal/errors"
)

// BranchExistsLocal reports whether refs/heads/name resolves.
func (r *Repository) BranchExistsLocal(ctx context.Context, name string) (bool, error) {
	res, err := r.git(ctx, "rev-parse", "--verify", "--quiet", "refs/heads/"+name)
	if err != nil {
		return false, err
	}
	return res.Succeeded(), nil
}

// BranchExistsRemote asks the remote directly with ls-remote, so no prior
// fetch is needed. A remote that cannot be reached is reported as an error
// wrapping ErrFetchFailed.
func (r *Repository) BranchExistsRemote(ctx context.Context, remote, name string) (bool, error) {
	res, err := r.git(ctx, "ls-remote", "--heads", remote, name)
	if err != nil {
		return false, err
	}
	if !res.Succeeded() {
		return false, fmt.Errorf("ls-remote %s: %s: %w", remote, strings.TrimSpace(res.Combined()), gaerrors.ErrFetchFailed)
	}
	return remoteHeadListed(res.Stdout, name), nil
}

// CurrentBranch returns the checked-out branch name.
func (r *Repository) CurrentBranch(ctx context.Context) (string, error) {
	res, err := r.git(ctx, "rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return "", err
	}
	if !res.Succeeded() {
		// unborn branch in a fresh repository
		sym, err := r.git(ctx, "symbolic-ref", "--short", "HEAD")
		if err != nil {
			return "", err
		}
		if !sym.Succeeded() {
			return "", fmt.Errorf("current branch: %s: %w", sym.Combined(), gaerrors.ErrGitOperation)
		}
		return strings.TrimSpace(sym.Stdout), nil
	}
	return strings.TrimSpace(res.Stdout), nil
}

// CheckoutOrCreateBranch makes name the current branch.
//
// A local branch wins and the remote is never consulted. Otherwise, when
// remote is non-empty and has the branch, a local tracking branch is created.
// Otherwise a new branch is created and, when remote is non-empty, pushed with
// upstream tracking; a failed push is reported in Result.Warning only.
func (r *Repository) CheckoutOrCreateBranch(ctx context.Context, name, remote string) (Result, error) {
	local, err := r.BranchExistsLocal(ctx, name)
	if err != nil {
		return Result{}, err
	}
	if local {
		return r.checkoutExisting(ctx, name)
	}

	if remote != "" {
		onRemote, err := r.BranchExistsRemote(ctx, remote, name)
		switch {
		case err != nil && !isRemoteLookupFailure(err):
			return Result{}, err
		case err != nil:
			r.log.Warning("Could not check %s for branch '%s': %v", remote, name, err)
		case onRemote:
			return r.checkoutTracking(ctx, name, remote)
		}
	}

	return r.createBranch(ctx, name, remote)
}

func (r *Repository) checkoutExisting(ctx context.Context, name string) (Result, error) {
	r.log.Normal("Checking out existing local branch '%s'", name)
	res, err := r.git(ctx, "checkout", name)
	if err != nil {
		return Result{}, err
	}
	if !res.Succeeded() {
		return failure(fmt.Sprintf("could not check out '%s'", name), res), nil
	}
	return success("checked out local branch", res), nil
}

func (r *Repository) checkoutTracking(ctx context.Context, name, remote string) (Result, error) {
	r.log.Normal("Branch '%s' found on %s, creating local tracking branch", name, remote)
	res, err := r.git(ctx, "checkout", "--track", remote+"/"+name)
	if err != nil {
		return Result{}, err
	}
	if res.Succeeded() {
		return success("created tracking branch", res), nil
	}

	// the remote-tracking ref may not be fetched yet
	fetch, err := r.git(ctx, "fetch", remote, name)
	if err != nil {
		return Result{}, err
	}
	if !fetch.Succeeded() {
		return failure(fmt.Sprintf("could not fetch '%s' from %s", name, remote), fetch), nil
	}
	res, err = r.git(ctx, "checkout", "--track", remote+"/"+name)
	if err != nil {
		return Result{}, err
	}
	if !res.Succeeded() {
		return failure(fmt.Sprintf("could not track %s/%s", remote, name), res), nil
	}
	return success("created tracking branch", res), nil
}

func (r *Repository) createBranch(ctx context.Context, name, remote string) (Result, error) {
	r.log.Normal("Creating new branch '%s'", name)
	res, err := r.git(ctx, "checkout", "-b", name)
	if err != nil {
		return Result{}, err
	}
	if !res.Succeeded() {
		return failure(fmt.Sprintf("could not create branch '%s'", name), res), nil
	}
	out := success("created new branch", res)

	if remote == "" {
		return out, nil
	}

	push, err := r.git(ctx, "push", "-u", remote, name)
	if err != nil {
		return Result{}, err
	}
	if !push.Succeeded() {
		out.Warning = fmt.Sprintf("could not set upstream for '%s' on %s: %s",
			name, remote, failure("", push).Detail())
		return out, nil
	}
	r.log.Success("Pushed new branch '%s' to %s with upstream tracking", name, remote)
	return out, nil
}

func isRemoteLookupFailure(err error) bool {
	return errors.Is(err, gaerrors.ErrFetchFailed)
}
