package prompt

import (
	"context"
	"fmt"
	"sync"

	gaerrors "github.com/mrz1836/gitauto/internal/errors"
)

// Scripted answers from fixed queues. It records the questions it was asked.
// Running out of answers behaves like the user canceling.
type Scripted struct {
	Selections []int
	Confirms   []bool

	mu        sync.Mutex
	questions []string
}

// Select implements Prompter.
func (s *Scripted) Select(_ context.Context, title string, options []string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.questions = append(s.questions, title)

	if len(s.Selections) == 0 {
		return 0, fmt.Errorf("no scripted selection: %w", gaerrors.ErrOperationCanceled)
	}
	choice := s.Selections[0]
	s.Selections = s.Selections[1:]
	if !validSelection(choice, len(options)) {
		return 0, fmt.Errorf("selection %d of %d: %w", choice, len(options), gaerrors.ErrInvalidSelection)
	}
	return choice, nil
}

// Confirm implements Prompter.
func (s *Scripted) Confirm(_ context.Context, message string, _ bool) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.questions = append(s.questions, message)

	if len(s.Confirms) == 0 {
		return false, fmt.Errorf("no scripted confirmation: %w", gaerrors.ErrOperationCanceled)
	}
	answer := s.Confirms[0]
	s.Confirms = s.Confirms[1:]
	return answer, nil
}

// Questions returns every title and message asked so far.
func (s *Scripted) Questions() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.questions...)
}

var _ Prompter = (*Scripted)(nil)
