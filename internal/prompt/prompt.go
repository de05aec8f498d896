// Package prompt provides the interactive questions gitauto asks during the
// revert workflow: pick one of N numbered items, and confirm yes/no.
//
// The workflow only sees the Prompter interface, so it runs headless in tests
// with a Scripted prompter.
package prompt

import (
	"context"
	"fmt"
)

// Prompter asks the user to choose and confirm.
type Prompter interface {
	// Select shows options numbered from 1 and returns the chosen number.
	// 0 means the user chose to cancel. An interrupted prompt returns an
	// error wrapping ErrOperationCanceled.
	Select(ctx context.Context, title string, options []string) (int, error)

	// Confirm asks a yes/no question.
	Confirm(ctx context.Context, message string, defaultYes bool) (bool, error)
}

// SelectionPrompt is the text shown before reading a selection.
func SelectionPrompt(n int) string {
	return fmt.Sprintf("Enter the number of your choice (1-%d) or 0 to cancel: ", n)
}

// validSelection reports whether choice is 0 or within 1..n.
func validSelection(choice, n int) bool {
	return choice >= 0 && choice <= n
}
