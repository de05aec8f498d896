package prompt

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"

	gaerrors "github.com/mrz1836/gitauto/internal/errors"
	"github.com/mrz1836/gitauto/internal/tui"
)

// TerminalPrompter asks questions with huh forms.
type TerminalPrompter struct {
	accessible bool
}

// NewTerminalPrompter creates a huh-backed prompter. Accessible mode (plain
// numbered prompts for screen readers) is enabled when ACCESSIBLE is set.
func NewTerminalPrompter() *TerminalPrompter {
	_, accessible := os.LookupEnv("ACCESSIBLE")
	return &TerminalPrompter{accessible: accessible}
}

// IsInteractive reports whether stdin and stdout are both terminals.
func IsInteractive() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd())) //nolint:gosec // fd fits in int
}

// New returns a TerminalPrompter when running interactively, otherwise a
// LinePrompter on stdin and stdout.
func New() Prompter {
	if IsInteractive() {
		return NewTerminalPrompter()
	}
	return NewLinePrompter(os.Stdin, os.Stdout)
}

// Select implements Prompter. The last option is always "Cancel" with value 0.
func (p *TerminalPrompter) Select(ctx context.Context, title string, options []string) (int, error) {
	huhOptions := make([]huh.Option[int], 0, len(options)+1)
	for i, opt := range options {
		huhOptions = append(huhOptions, huh.NewOption(fmt.Sprintf("%d) %s", i+1, opt), i+1))
	}
	huhOptions = append(huhOptions, huh.NewOption("0) Cancel", 0))

	choice := 1
	field := huh.NewSelect[int]().
		Title(title).
		Options(huhOptions...).
		Value(&choice)

	if err := p.run(ctx, field); err != nil {
		return 0, err
	}
	return choice, nil
}

// Confirm implements Prompter.
func (p *TerminalPrompter) Confirm(ctx context.Context, message string, defaultYes bool) (bool, error) {
	confirmed := defaultYes
	field := huh.NewConfirm().
		Title(message).
		Affirmative("Yes").
		Negative("No").
		Value(&confirmed)

	if err := p.run(ctx, field); err != nil {
		return false, err
	}
	return confirmed, nil
}

func (p *TerminalPrompter) run(ctx context.Context, field huh.Field) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) { //nolint:gosec // fd fits in int
		return gaerrors.ErrInteractiveRequired
	}

	form := huh.NewForm(huh.NewGroup(field)).
		WithTheme(tui.Theme()).
		WithAccessible(p.accessible)

	if err := form.RunWithContext(ctx); err != nil {
		if errors.Is(err, huh.ErrUserAborted) || ctx.Err() != nil {
			return fmt.Errorf("prompt aborted: %w", gaerrors.ErrOperationCanceled)
		}
		return fmt.Errorf("prompt failed: %w", err)
	}
	return nil
}

var _ Prompter = (*TerminalPrompter)(nil)
