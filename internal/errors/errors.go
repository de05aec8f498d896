// Package errors provides centralized error handling for gitauto.
//
// This package defines sentinel errors used for programmatic error categorization
// throughout the application. All error types can be checked using errors.Is().
//
// IMPORTANT: This package MUST NOT import any other internal packages.
// Only standard library imports are allowed.
package errors

import "errors"

// Sentinel errors for error categorization.
// These allow callers to check error types with errors.Is().
var (
	// ErrGitOperation indicates that a git command failed during execution.
	ErrGitOperation = errors.New("git operation failed")

	// ErrBinaryNotFound indicates that an external program (usually git) is not installed
	// or not on PATH. Distinct from a program that ran and exited non-zero.
	ErrBinaryNotFound = errors.New("executable not found")

	// ErrWorkDirMissing indicates the working directory for a command does not exist.
	ErrWorkDirMissing = errors.New("working directory does not exist")

	// ErrNotGitRepo indicates the path is not a git repository.
	ErrNotGitRepo = errors.New("not a git repository")

	// ErrRepoInitFailed indicates the repository could not be created or initialized.
	ErrRepoInitFailed = errors.New("repository initialization failed")

	// ErrRemoteSetupFailed indicates the origin remote could not be configured.
	ErrRemoteSetupFailed = errors.New("remote setup failed")

	// ErrBranchNotFound indicates the specified branch does not exist locally.
	ErrBranchNotFound = errors.New("branch not found")

	// ErrCheckoutFailed indicates a branch could not be checked out or created.
	ErrCheckoutFailed = errors.New("branch checkout failed")

	// ErrPullFailed indicates that git pull failed.
	ErrPullFailed = errors.New("pull failed")

	// ErrFetchFailed indicates that git fetch failed.
	ErrFetchFailed = errors.New("fetch failed")

	// ErrStatusFailed indicates that the working tree status could not be read.
	ErrStatusFailed = errors.New("status check failed")

	// ErrStashFailed indicates local changes could not be stashed.
	ErrStashFailed = errors.New("stash failed")

	// ErrStashConflict indicates that popping the stash produced merge conflicts.
	ErrStashConflict = errors.New("stash pop has conflicts")

	// ErrCommitFailed indicates that staging or committing failed for a reason
	// other than there being nothing to commit.
	ErrCommitFailed = errors.New("commit failed")

	// ErrPushFailed indicates that git push failed.
	ErrPushFailed = errors.New("push failed")

	// ErrPushAuthFailed indicates that git push failed due to authentication.
	ErrPushAuthFailed = errors.New("push authentication failed")

	// ErrPushNetworkFailed indicates that git push failed due to network issues.
	ErrPushNetworkFailed = errors.New("push network failed")

	// ErrPushRejected indicates the remote rejected a non-fast-forward push.
	ErrPushRejected = errors.New("push rejected by remote")

	// ErrLogFailed indicates that the commit history could not be read.
	ErrLogFailed = errors.New("commit log failed")

	// ErrNoCommits indicates the remote branch has no commits to select from.
	ErrNoCommits = errors.New("no commits found")

	// ErrCherryPickFailed indicates a cherry-pick failed without conflicts.
	ErrCherryPickFailed = errors.New("cherry-pick failed")

	// ErrCherryPickConflict indicates a cherry-pick stopped on merge conflicts
	// and the tree is left mid-operation.
	ErrCherryPickConflict = errors.New("cherry-pick has conflicts")

	// ErrCommandFailed indicates that a pre or post command exited non-zero.
	ErrCommandFailed = errors.New("command failed")

	// ErrMissingRepoPath indicates the task has no repository path configured.
	ErrMissingRepoPath = errors.New("repository path is not configured")

	// ErrInterrupted indicates the run was interrupted (SIGINT/SIGTERM) before
	// the next step could start.
	ErrInterrupted = errors.New("interrupted")

	// ErrOperationCanceled indicates the user canceled an interactive operation.
	ErrOperationCanceled = errors.New("operation canceled by user")

	// ErrInvalidSelection indicates a selection outside the offered range.
	ErrInvalidSelection = errors.New("invalid selection")

	// ErrInteractiveRequired indicates that interactive prompts are required but not available.
	ErrInteractiveRequired = errors.New("interactive prompt required")

	// ErrConfigNil indicates that a nil config was passed to validation.
	ErrConfigNil = errors.New("config is nil")

	// ErrConfigNotFound indicates that a task configuration file was not found.
	ErrConfigNotFound = errors.New("config file not found")

	// ErrConfigInvalid indicates the task configuration could not be parsed.
	ErrConfigInvalid = errors.New("invalid task configuration")

	// ErrConfigMissingFolder indicates the task configuration has no repository folder.
	ErrConfigMissingFolder = errors.New("task configuration is missing folder")

	// ErrConfigExists indicates an attempt to create a task file that already exists.
	ErrConfigExists = errors.New("config file already exists")

	// ErrInvalidTaskName indicates the task name cannot be used as a file name.
	ErrInvalidTaskName = errors.New("invalid task name")

	// ErrLockTimeout indicates a file lock could not be acquired within the timeout period.
	ErrLockTimeout = errors.New("lock acquisition timeout")

	// ErrEmptyValue indicates that a required value was empty.
	ErrEmptyValue = errors.New("value cannot be empty")

	// ErrInvalidOutputFormat indicates an invalid output format was specified.
	ErrInvalidOutputFormat = errors.New("invalid output format")

	// ErrInvalidArgument indicates that an invalid argument was provided.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrValueOutOfRange indicates that a value is outside the allowed range.
	ErrValueOutOfRange = errors.New("value out of range")
)

// ExitCode2Error wraps an error to indicate exit code 2 should be used.
type ExitCode2Error struct {
	Err error
}

// NewExitCode2Error wraps an error to indicate exit code 2.
func NewExitCode2Error(err error) *ExitCode2Error {
	return &ExitCode2Error{Err: err}
}

// Error implements the error interface.
func (e *ExitCode2Error) Error() string {
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *ExitCode2Error) Unwrap() error {
	return e.Err
}

// IsExitCode2Error checks if an error should result in exit code 2.
func IsExitCode2Error(err error) bool {
	var e *ExitCode2Error
	return errors.As(err, &e)
}
