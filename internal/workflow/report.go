package workflow

import (
	"fmt"
	"time"

	"github.com/mrz1836/gitauto/internal/git"
)

// Kind names a workflow.
type Kind string

// Workflow kinds.
const (
	KindRun    Kind = "run"
	KindUpdate Kind = "update"
	KindPull   Kind = "pull"
	KindRevert Kind = "revert"
)

// State is how far a workflow run got.
type State int

// Workflow states in order. StateAborted is reachable from any of them.
const (
	StateInit State = iota
	StateBranchReady
	StateSynced
	StateCommandExecuted
	StateCommitted
	StatePushed
	StateDone
	StateAborted
)

//nolint:gochecknoglobals // lookup table
var stateNames = [...]string{"init", "branch_ready", "synced", "command_executed", "committed", "pushed", "done", "aborted"}

// String returns the snake_case state name.
func (s State) String() string {
	if s < StateInit || s > StateAborted {
		return fmt.Sprintf("state(%d)", int(s))
	}
	return stateNames[s]
}

// MarshalText implements encoding.TextMarshaler.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Step names one unit of a workflow, used in logs, reports and errors.
type Step string

// Workflow steps.
const (
	StepValidate     Step = "validate"
	StepInitialize   Step = "initialize"
	StepBranch       Step = "checkout"
	StepStash        Step = "stash"
	StepPull         Step = "pull"
	StepPopStash     Step = "stash-pop"
	StepPreCommand   Step = "pre-command"
	StepCommit       Step = "commit"
	StepPush         Step = "push"
	StepFinalPull    Step = "final-pull"
	StepPostCommand  Step = "post-command"
	StepFetchCommits Step = "fetch-commits"
	StepSelect       Step = "select"
	StepCherryPick   Step = "cherry-pick"
)

// StepOutcome records what one step did.
type StepOutcome struct {
	Step    Step        `json:"step"`
	Outcome git.Outcome `json:"outcome"`
	Detail  string      `json:"detail,omitempty"`
	Skipped bool        `json:"skipped,omitempty"`
}

// Report summarizes a workflow run. It is returned even when the run fails.
type Report struct {
	Workflow   Kind           `json:"workflow"`
	Task       string         `json:"task"`
	RunID      string         `json:"run_id"`
	State      State          `json:"state"`
	FailedStep Step           `json:"failed_step,omitempty"`
	Steps      []StepOutcome  `json:"steps"`
	Warnings   []string       `json:"warnings,omitempty"`
	Stash      git.StashToken `json:"stash"`
	// CommitMade is false when there was nothing to commit.
	CommitMade bool `json:"commit_made"`
	Pushed     bool `json:"pushed"`
	// CleanAfterPull means the pull left nothing to commit, so commands,
	// commit and push were skipped.
	CleanAfterPull bool `json:"clean_after_pull"`
	// StashConflict means restoring the stash left conflicts in the tree.
	StashConflict bool `json:"stash_conflict"`
	// Canceled means the user declined or aborted a prompt.
	Canceled bool `json:"canceled"`
	// Applied is the commit a revert run cherry-picked.
	Applied *git.CommitSelection `json:"applied,omitempty"`
	// Guidance holds manual resolution steps in markdown after a conflict.
	Guidance   string        `json:"guidance,omitempty"`
	StartedAt  time.Time     `json:"started_at"`
	FinishedAt time.Time     `json:"finished_at"`
	Duration   time.Duration `json:"duration"`
}

// Succeeded reports whether the run reached StateDone.
func (r *Report) Succeeded() bool {
	return r != nil && r.State == StateDone
}

// StepError is a fatal workflow failure. It unwraps to the underlying
// sentinel, so errors.Is(err, errors.ErrPullFailed) works on it.
type StepError struct {
	Step Step
	Err  error
}

// Error implements error.
func (e *StepError) Error() string {
	return fmt.Sprintf("%s: %v", e.Step, e.Err)
}

// Unwrap returns the underlying error.
func (e *StepError) Unwrap() error {
	return e.Err
}
