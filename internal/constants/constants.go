// Package constants provides centralized constant values used throughout gitauto.
// This package is the single source of truth for shared defaults and MUST NOT
// import any other internal packages.
package constants

import "time"

// Task defaults applied once when a task configuration is loaded.
const (
	// DefaultBranch is used when a task does not name a branch.
	DefaultBranch = "main"

	// DefaultRemote is the remote name every workflow pulls from and pushes to.
	DefaultRemote = "origin"

	// DefaultTimestampFormat is the strftime pattern appended to commit messages.
	DefaultTimestampFormat = "%Y-%m-%d %H:%M:%S"

	// DefaultCommitMessageTemplate is formatted with the task name when a task
	// has no commit message.
	DefaultCommitMessageTemplate = "Automated update for %s"

	// DefaultCommitCount is how many remote commits log and revert list.
	DefaultCommitCount = 5

	// StashLabelPrefix starts every stash message created by a workflow run.
	StashLabelPrefix = "gitauto"
)

// Push retry defaults for network-class failures in the task and update workflows.
const (
	// DefaultPushRetries is the number of extra push attempts after the first.
	DefaultPushRetries = 2

	// PushRetryInitialDelay is the wait before the first retry.
	PushRetryInitialDelay = 2 * time.Second

	// PushRetryMaxDelay caps the exponential backoff.
	PushRetryMaxDelay = 15 * time.Second

	// PushRetryMultiplier grows the delay between attempts.
	PushRetryMultiplier = 2.0
)

// Process exit codes.
const (
	// ExitSuccess means the workflow completed, possibly with warnings.
	ExitSuccess = 0

	// ExitFailure covers fatal workflow failures, cancellations and interrupts.
	ExitFailure = 1

	// ExitUsage is returned for invalid flags or arguments.
	ExitUsage = 2
)

// EnvPrefix is the viper environment prefix for global settings.
const EnvPrefix = "GITAUTO"
