package git

import "strings"

// This file is the only place that inspects git's human-readable output.
// Git's exit codes do not distinguish "nothing to commit" from a failed
// commit, or a conflicted stash pop from any other failure, so the
// repository operations ask these helpers and hand callers an Outcome.

// ErrorType classifies why a remote operation failed.
type ErrorType int

const (
	// ErrorTypeUnknown indicates the failure could not be classified.
	ErrorTypeUnknown ErrorType = iota
	// ErrorTypeAuth indicates rejected or missing credentials.
	ErrorTypeAuth
	// ErrorTypeNetwork indicates the remote could not be reached.
	ErrorTypeNetwork
	// ErrorTypeNonFastForward indicates the remote has commits the local branch lacks.
	ErrorTypeNonFastForward
	// ErrorTypeNotFound indicates a missing repository, ref or remote.
	ErrorTypeNotFound
)

// String returns a human-readable name for the error type.
func (e ErrorType) String() string {
	switch e {
	case ErrorTypeUnknown:
		return "unknown"
	case ErrorTypeAuth:
		return "authentication"
	case ErrorTypeNetwork:
		return "network"
	case ErrorTypeNonFastForward:
		return "non_fast_forward"
	case ErrorTypeNotFound:
		return "not_found"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (e ErrorType) MarshalText() ([]byte, error) {
	return []byte(e.String()), nil
}

// Retryable reports whether another attempt could plausibly succeed.
func (e ErrorType) Retryable() bool {
	return e == ErrorTypeNetwork
}

// PatternMatcher checks whether text contains any of a list of lowercase patterns.
type PatternMatcher struct {
	patterns []string
}

// NewPatternMatcher creates a PatternMatcher. Patterns must be lowercase.
func NewPatternMatcher(patterns ...string) *PatternMatcher {
	return &PatternMatcher{patterns: patterns}
}

// Matches lowercases s and reports whether any pattern occurs in it.
func (m *PatternMatcher) Matches(s string) bool {
	return m.matchesLower(strings.ToLower(s))
}

func (m *PatternMatcher) matchesLower(lower string) bool {
	for _, pattern := range m.patterns {
		if strings.Contains(lower, pattern) {
			return true
		}
	}
	return false
}

//nolint:gochecknoglobals // immutable matchers
var (
	authPatterns = NewPatternMatcher(
		"authentication failed",
		"could not read username",
		"could not read password",
		"permission denied",
		"invalid username or password",
		"access denied",
		"authentication required",
		"bad credentials",
		"invalid token",
		"token expired",
		"host key verification failed",
	)

	networkPatterns = NewPatternMatcher(
		"could not resolve host",
		"connection refused",
		"network is unreachable",
		"connection timed out",
		"operation timed out",
		"unable to access",
		"no route to host",
		"failed to connect",
		"connection reset",
		"early eof",
		"the remote end hung up unexpectedly",
		"timeout",
	)

	nonFastForwardPatterns = NewPatternMatcher(
		"non-fast-forward",
		"updates were rejected",
		"fetch first",
		"tip of your current branch is behind",
		"rejected because the remote contains work",
		"[rejected]",
	)

	notFoundPatterns = NewPatternMatcher(
		"repository not found",
		"does not appear to be a git repository",
		"couldn't find remote ref",
		"does not exist",
		"no such remote",
	)

	nothingToCommitPatterns = NewPatternMatcher(
		"nothing to commit",
		"nothing added to commit",
		"no changes added to commit",
	)

	nothingToStashPatterns = NewPatternMatcher(
		"no local changes to save",
	)

	conflictPatterns = NewPatternMatcher(
		"conflict (",
		"merge conflict",
		"automatic merge failed",
		"could not apply",
		"after resolving the conflicts",
		"fix conflicts",
		"unmerged paths",
	)

	emptyCherryPickPatterns = NewPatternMatcher(
		"the previous cherry-pick is now empty",
		"nothing to commit",
	)
)

// ClassifyError determines the failure type from git output.
// Authentication is checked before network because "unable to access"
// also prefixes credential errors over HTTPS.
func ClassifyError(output string) ErrorType {
	lower := strings.ToLower(output)
	switch {
	case authPatterns.matchesLower(lower):
		return ErrorTypeAuth
	case networkPatterns.matchesLower(lower):
		return ErrorTypeNetwork
	case nonFastForwardPatterns.matchesLower(lower):
		return ErrorTypeNonFastForward
	case notFoundPatterns.matchesLower(lower):
		return ErrorTypeNotFound
	default:
		return ErrorTypeUnknown
	}
}

func isNothingToCommit(output string) bool { return nothingToCommitPatterns.Matches(output) }

func isNothingToStash(output string) bool { return nothingToStashPatterns.Matches(output) }

func isConflict(output string) bool { return conflictPatterns.Matches(output) }

func isEmptyCherryPick(output string) bool { return emptyCherryPickPatterns.Matches(output) }

// remoteHeadListed reports whether ls-remote --heads output contains branch exactly.
func remoteHeadListed(output, branch string) bool {
	want := "refs/heads/" + branch
	for _, line := range splitLines(output) {
		fields := strings.Fields(line)
		if len(fields) == 2 && fields[1] == want {
			return true
		}
	}
	return false
}

// listContains reports whether name is one of the lines of output.
func listContains(output, name string) bool {
	for _, line := range splitLines(output) {
		if strings.TrimSpace(line) == name {
			return true
		}
	}
	return false
}
