package git

import (
	"fmt"
	"strings"
)

// Outcome is the tri-state (plus no-op) result of a repository operation.
type Outcome int

const (
	// OutcomeSuccess means the operation did what was asked.
	OutcomeSuccess Outcome = iota
	// OutcomeNoOp means there was nothing to do (nothing to commit, no stash to pop).
	OutcomeNoOp
	// OutcomeConflict means git stopped on merge conflicts that need manual resolution.
	OutcomeConflict
	// OutcomeFailure means git reported an error.
	OutcomeFailure
)

// String returns a lowercase name for the outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomeNoOp:
		return "noop"
	case OutcomeConflict:
		return "conflict"
	case OutcomeFailure:
		return "failure"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (o Outcome) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// Result is what a repository operation reports back to the workflow.
type Result struct {
	Outcome Outcome `json:"outcome"`
	// Reason is a short human-readable explanation.
	Reason string `json:"reason,omitempty"`
	// Output is the combined git output, for failures and debugging.
	Output string `json:"output,omitempty"`
	// Kind classifies failures (auth, network, non-fast-forward...).
	Kind ErrorType `json:"kind,omitempty"`
	// Warning is set when the operation succeeded but part of it did not,
	// such as a new branch whose upstream push failed.
	Warning string `json:"warning,omitempty"`
}

// OK reports success or no-op.
func (r Result) OK() bool {
	return r.Outcome == OutcomeSuccess || r.Outcome == OutcomeNoOp
}

// Detail returns Reason, followed by the first line of Output when present.
func (r Result) Detail() string {
	first, _, _ := strings.Cut(strings.TrimSpace(r.Output), "\n")
	switch {
	case first == "":
		return r.Reason
	case r.Reason == "":
		return first
	default:
		return r.Reason + ": " + first
	}
}

func success(reason string, res *CommandResult) Result {
	return Result{Outcome: OutcomeSuccess, Reason: reason, Output: res.Combined()}
}

func noop(reason string, res *CommandResult) Result {
	return Result{Outcome: OutcomeNoOp, Reason: reason, Output: res.Combined()}
}

func conflict(reason string, res *CommandResult) Result {
	return Result{Outcome: OutcomeConflict, Reason: reason, Output: res.Combined()}
}

func failure(reason string, res *CommandResult) Result {
	out := res.Combined()
	return Result{Outcome: OutcomeFailure, Reason: reason, Output: out, Kind: ClassifyError(out)}
}
