package git

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	gaerrors "github.com/mrz1836/gitauto/internal/errors"
)

// CommitSelection is one commit offered for cherry-picking.
type CommitSelection struct {
	FullHash  string `json:"full_hash"`
	ShortHash string `json:"short_hash"`
	Subject   string `json:"subject"`
	Author    string `json:"author"`
	Date      string `json:"date"`
}

// fieldSep separates log fields; subjects may contain any printable character.
const fieldSep = "\x1f"

// LastCommits fetches remote and returns up to n commits of remote/branch,
// newest first. An unreachable remote or unknown branch is an error wrapping
// ErrFetchFailed or ErrLogFailed.
func (r *Repository) LastCommits(ctx context.Context, remote, branch string, n int) ([]CommitSelection, error) {
	if n <= 0 {
		return nil, fmt.Errorf("commit count %d: %w", n, gaerrors.ErrValueOutOfRange)
	}

	fetch, err := r.Fetch(ctx, remote)
	if err != nil {
		return nil, err
	}
	if !fetch.OK() {
		return nil, fmt.Errorf("%s: %w", fetch.Detail(), gaerrors.ErrFetchFailed)
	}

	res, err := r.git(ctx, "log", remote+"/"+branch, "-n", strconv.Itoa(n),
		"--pretty=format:%H%x1f%h%x1f%s%x1f%an%x1f%ad", "--date=short")
	if err != nil {
		return nil, err
	}
	if !res.Succeeded() {
		return nil, fmt.Errorf("log %s/%s: %s: %w", remote, branch, strings.TrimSpace(res.Combined()), gaerrors.ErrLogFailed)
	}
	return parseLog(res.Stdout), nil
}

func parseLog(output string) []CommitSelection {
	var commits []CommitSelection
	for _, line := range splitLines(output) {
		parts := strings.SplitN(line, fieldSep, 5)
		if len(parts) != 5 {
			continue
		}
		commits = append(commits, CommitSelection{
			FullHash:  parts[0],
			ShortHash: parts[1],
			Subject:   parts[2],
			Author:    parts[3],
			Date:      parts[4],
		})
	}
	return commits
}

// CherryPick applies hash on top of the current branch as a new commit,
// with GIT_EDITOR=true so git never waits on an editor.
//
// Conflicts leave the cherry-pick in progress and return OutcomeConflict.
// A commit whose changes are already present is aborted and returned as
// OutcomeNoOp.
func (r *Repository) CherryPick(ctx context.Context, hash string) (Result, error) {
	r.log.Normal("Cherry-picking commit %s", hash)
	res, err := r.exec.Run(ctx, Command{
		Dir:  r.path,
		Name: "git",
		Args: []string{"cherry-pick", hash},
		Env:  []string{"GIT_EDITOR=true"},
	})
	if err != nil {
		return Result{}, err
	}
	if res.Succeeded() {
		return success("cherry-picked", res), nil
	}

	out := res.Combined()
	switch {
	case isConflict(out):
		return conflict(fmt.Sprintf("cherry-pick of %s stopped on conflicts", hash), res), nil
	case isEmptyCherryPick(out):
		abort, err := r.git(ctx, "cherry-pick", "--abort")
		if err != nil {
			return Result{}, err
		}
		if !abort.Succeeded() {
			r.log.Warning("Could not abort the empty cherry-pick: %s", abort.Combined())
		}
		return noop("changes from this commit are already present", res), nil
	default:
		return failure(fmt.Sprintf("cherry-pick of %s failed", hash), res), nil
	}
}
