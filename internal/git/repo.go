package git

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	gaerrors "github.com/mrz1836/gitauto/internal/errors"
	"github.com/mrz1836/gitauto/internal/logging"
)

const repoDirPerm = 0o750

// Repository runs git operations against one working tree.
//
// Operations report ordinary git failures through Result rather than error.
// An error return means the command could not run at all (git missing,
// directory missing, run interrupted) and is always fatal to a workflow.
type Repository struct {
	exec Executor
	path string
	log  *logging.Logger
}

// NewRepository binds an executor and logger to the working tree at path.
func NewRepository(exec Executor, path string, log *logging.Logger) *Repository {
	if log == nil {
		log = logging.Nop()
	}
	return &Repository{exec: exec, path: path, log: log}
}

// Path returns the working tree path.
func (r *Repository) Path() string {
	return r.path
}

func (r *Repository) git(ctx context.Context, args ...string) (*CommandResult, error) {
	return r.exec.Run(ctx, Command{Dir: r.path, Name: "git", Args: args})
}

// IsRepository reports whether path contains git metadata. A .git file
// (linked worktree or submodule) counts as well as a directory.
func (r *Repository) IsRepository() bool {
	_, err := os.Stat(filepath.Join(r.path, ".git"))
	return err == nil
}

// Initialize creates path if needed, runs git init and adds originURL as
// origin when given. It is a no-op for an existing repository.
func (r *Repository) Initialize(ctx context.Context, originURL string) (Result, error) {
	if r.IsRepository() {
		r.log.Info("Repository already exists at %s", r.path)
		return Result{Outcome: OutcomeNoOp, Reason: "already a repository"}, nil
	}

	if _, err := os.Stat(r.path); os.IsNotExist(err) {
		if err := os.MkdirAll(r.path, repoDirPerm); err != nil {
			return Result{}, fmt.Errorf("failed to create %s: %w: %w", r.path, gaerrors.ErrRepoInitFailed, err)
		}
		r.log.Info("Created directory %s", r.path)
	}

	res, err := r.git(ctx, "init")
	if err != nil {
		return Result{}, err
	}
	if !res.Succeeded() {
		return failure("git init failed", res), nil
	}
	r.log.Success("Initialized empty repository in %s", r.path)

	if originURL == "" {
		return success("repository initialized", res), nil
	}

	remote, err := r.AddRemote(ctx, "origin", originURL)
	if err != nil {
		return Result{}, err
	}
	if !remote.OK() {
		return remote, nil
	}
	return success("repository initialized with origin", res), nil
}

// Remotes lists configured remote names.
func (r *Repository) Remotes(ctx context.Context) ([]string, error) {
	res, err := r.git(ctx, "remote")
	if err != nil {
		return nil, err
	}
	if !res.Succeeded() {
		return nil, fmt.Errorf("git remote: %s: %w", res.Combined(), gaerrors.ErrGitOperation)
	}
	return splitLines(res.Stdout), nil
}

// HasRemote reports whether a remote called name is configured.
func (r *Repository) HasRemote(ctx context.Context, name string) (bool, error) {
	remotes, err := r.Remotes(ctx)
	if err != nil {
		return false, err
	}
	for _, rm := range remotes {
		if rm == name {
			return true, nil
		}
	}
	return false, nil
}

// AddRemote configures remote name to point at url. An existing remote with
// a different URL is updated with set-url; one with the same URL is left alone.
func (r *Repository) AddRemote(ctx context.Context, name, url string) (Result, error) {
	list, err := r.git(ctx, "remote")
	if err != nil {
		return Result{}, err
	}
	if !list.Succeeded() {
		return failure("could not list remotes", list), nil
	}

	safeURL := logging.RedactURLCredentials(url)

	if !listContains(list.Stdout, name) {
		res, err := r.git(ctx, "remote", "add", name, url)
		if err != nil {
			return Result{}, err
		}
		if !res.Succeeded() {
			return failure("git remote add failed", res), nil
		}
		r.log.Success("Added remote '%s': %s", name, safeURL)
		return success("remote added", res), nil
	}

	current, err := r.git(ctx, "remote", "get-url", name)
	if err != nil {
		return Result{}, err
	}
	if current.Succeeded() && strings.TrimSpace(current.Stdout) == url {
		r.log.Info("Remote '%s' already points at %s", name, safeURL)
		return noop("remote already configured", current), nil
	}

	res, err := r.git(ctx, "remote", "set-url", name, url)
	if err != nil {
		return Result{}, err
	}
	if !res.Succeeded() {
		return failure("git remote set-url failed", res), nil
	}
	r.log.Success("Updated remote '%s' to %s", name, safeURL)
	return success("remote url updated", res), nil
}

// Status returns the parsed `git status --porcelain` output.
func (r *Repository) Status(ctx context.Context) (*Status, error) {
	res, err := r.git(ctx, "status", "--porcelain")
	if err != nil {
		return nil, err
	}
	if !res.Succeeded() {
		return nil, fmt.Errorf("%s: %w", strings.TrimSpace(res.Combined()), gaerrors.ErrStatusFailed)
	}
	return parseStatus(res.Stdout), nil
}

// HasPendingChanges reports any status entry, tracked or untracked.
func (r *Repository) HasPendingChanges(ctx context.Context) (bool, error) {
	st, err := r.Status(ctx)
	if err != nil {
		return false, err
	}
	if st.Clean() {
		r.log.Debug("No changes detected")
		return false, nil
	}
	r.log.Debug("Changes detected (%d entries)", len(st.Entries))
	return true, nil
}

// HasUnstagedTrackedChanges reports changes to tracked files, ignoring
// untracked (??) entries.
func (r *Repository) HasUnstagedTrackedChanges(ctx context.Context) (bool, error) {
	st, err := r.Status(ctx)
	if err != nil {
		return false, err
	}
	return st.HasTrackedChanges(), nil
}
