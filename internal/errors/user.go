package errors

import "errors"

// ErrorInfo holds user-facing message and suggested action for an error.
type ErrorInfo struct {
	// Message is the user-friendly error description.
	Message string
	// Action is a suggested action to resolve the issue (empty if none).
	Action string
}

type errorEntry struct {
	err  error
	info ErrorInfo
}

// errorInfoEntries maps sentinel errors to their user-facing messages.
// Order matters: more specific errors come before the general ones they may wrap.
//
//nolint:gochecknoglobals // Pre-built mapping
var errorInfoEntries = []errorEntry{
	{ErrBinaryNotFound, ErrorInfo{
		Message: "git was not found on this system.",
		Action:  "Install git and make sure it is on your PATH.",
	}},
	{ErrMissingRepoPath, ErrorInfo{
		Message: "The task has no repository folder configured.",
		Action:  "Set \"folder\" in the task file or pass --folder.",
	}},
	{ErrNotGitRepo, ErrorInfo{
		Message: "The repository folder is not a git repository.",
		Action:  "Run again with --initialize to create it.",
	}},
	{ErrRepoInitFailed, ErrorInfo{
		Message: "The repository could not be initialized.",
		Action:  "Check that the folder is writable.",
	}},
	{ErrRemoteSetupFailed, ErrorInfo{
		Message: "The origin remote could not be configured.",
		Action:  "Check the origin URL and run 'git remote -v' in the repository.",
	}},
	{ErrBranchNotFound, ErrorInfo{
		Message: "The branch does not exist locally.",
		Action:  "Run the task once to create the branch, or check the branch name.",
	}},
	{ErrCheckoutFailed, ErrorInfo{
		Message: "The branch could not be checked out.",
		Action:  "Commit or stash local changes that block the checkout.",
	}},
	{ErrPullFailed, ErrorInfo{
		Message: "Pulling from the remote failed.",
		Action:  "Check network access and resolve any merge conflicts with 'git status'.",
	}},
	{ErrFetchFailed, ErrorInfo{
		Message: "Fetching from the remote failed.",
		Action:  "Check network access and the origin URL.",
	}},
	{ErrStashFailed, ErrorInfo{
		Message: "Local changes could not be stashed.",
		Action:  "Resolve the repository state manually and try again.",
	}},
	{ErrStashConflict, ErrorInfo{
		Message: "Restoring stashed changes produced conflicts.",
		Action:  "Resolve the conflicts, then run 'git stash drop' once the changes are safe.",
	}},
	{ErrCommitFailed, ErrorInfo{
		Message: "Committing changes failed.",
		Action:  "Check 'git status' and your git user configuration.",
	}},
	{ErrPushAuthFailed, ErrorInfo{
		Message: "Push failed due to an authentication error.",
		Action:  "Check your SSH keys or credentials for the remote.",
	}},
	{ErrPushNetworkFailed, ErrorInfo{
		Message: "Push failed due to a network error.",
		Action:  "Check your internet connection and try again.",
	}},
	{ErrPushRejected, ErrorInfo{
		Message: "The remote rejected the push.",
		Action:  "Pull the latest changes and push again.",
	}},
	{ErrPushFailed, ErrorInfo{
		Message: "Pushing to the remote failed.",
		Action:  "Run 'git push' manually to see the full error.",
	}},
	{ErrCherryPickConflict, ErrorInfo{
		Message: "The cherry-pick stopped on merge conflicts.",
		Action:  "Resolve the files, 'git add' them, then 'git cherry-pick --continue' (or --abort).",
	}},
	{ErrCherryPickFailed, ErrorInfo{
		Message: "The cherry-pick failed.",
		Action:  "Run 'git status' to inspect the repository.",
	}},
	{ErrNoCommits, ErrorInfo{
		Message: "The remote branch has no commits.",
		Action:  "",
	}},
	{ErrCommandFailed, ErrorInfo{
		Message: "The task command exited with an error.",
		Action:  "Run the command manually in the repository folder to debug it.",
	}},
	{ErrInterrupted, ErrorInfo{
		Message: "The run was interrupted.",
		Action:  "",
	}},
	{ErrOperationCanceled, ErrorInfo{
		Message: "Operation was canceled.",
		Action:  "",
	}},
	{ErrInteractiveRequired, ErrorInfo{
		Message: "This operation requires an interactive terminal.",
		Action:  "Run in an interactive terminal, not in a script.",
	}},
	{ErrConfigNotFound, ErrorInfo{
		Message: "Task configuration file not found.",
		Action:  "Create it with 'gitauto create <task>' or check --config-dir.",
	}},
	{ErrConfigMissingFolder, ErrorInfo{
		Message: "The task configuration has no repository folder.",
		Action:  "Add \"folder\" to the task file.",
	}},
	{ErrConfigInvalid, ErrorInfo{
		Message: "The task configuration file is invalid.",
		Action:  "Check the file for JSON syntax errors.",
	}},
	{ErrConfigExists, ErrorInfo{
		Message: "A task configuration with this name already exists.",
		Action:  "Use --overwrite to replace it.",
	}},
	{ErrLockTimeout, ErrorInfo{
		Message: "Could not acquire lock. Another process may be using the resource.",
		Action:  "Wait and try again, or check for stuck processes.",
	}},
	{ErrGitOperation, ErrorInfo{
		Message: "Git operation failed. Check your repository state.",
		Action:  "Run 'git status' in the repository folder.",
	}},
	{ErrEmptyValue, ErrorInfo{
		Message: "A required value was not provided.",
		Action:  "Provide the required value and try again.",
	}},
}

// getErrorInfo looks up the ErrorInfo for a given error using errors.Is traversal.
// Returns an ErrorInfo with the original error message if not found.
func getErrorInfo(err error) ErrorInfo {
	for _, entry := range errorInfoEntries {
		if errors.Is(err, entry.err) {
			return entry.info
		}
	}
	return ErrorInfo{Message: err.Error()}
}

// UserMessage returns a user-friendly message for common errors.
// For unrecognized errors, it returns the error's original message.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	return getErrorInfo(err).Message
}

// Actionable returns a user-friendly error message along with a suggested
// action the user can take to resolve or work around the issue.
func Actionable(err error) (message, action string) {
	if err == nil {
		return "", ""
	}
	info := getErrorInfo(err)
	return info.Message, info.Action
}
