// Package testutil provides helpers shared by gitauto tests: scratch git
// repositories with bare remotes, and mock errors.
//
// It should only be imported by test files (*_test.go).
package testutil

import "errors"

// Mock errors for simulating failures.
var (
	// ErrMockExec simulates an executor that could not start a process.
	ErrMockExec = errors.New("exec failed")

	// ErrMockPrompt simulates a prompt that could not read input.
	ErrMockPrompt = errors.New("prompt failed")
)
