package prompt

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	gaerrors "github.com/mrz1836/gitauto/internal/errors"
)

// LinePrompter reads answers line by line. It is used when stdin is not a
// terminal, so answers can be piped in: echo 2 | gitauto revert docs.
type LinePrompter struct {
	in  *bufio.Reader
	out io.Writer

	once  sync.Once
	lines chan lineResult
}

type lineResult struct {
	line string
	err  error
}

// NewLinePrompter reads from in and writes questions to out.
func NewLinePrompter(in io.Reader, out io.Writer) *LinePrompter {
	return &LinePrompter{in: bufio.NewReader(in), out: out}
}

// Select implements Prompter. Invalid input is reported and asked again;
// end of input cancels.
func (p *LinePrompter) Select(ctx context.Context, title string, options []string) (int, error) {
	if title != "" {
		_, _ = fmt.Fprintln(p.out, title)
	}
	for i, opt := range options {
		_, _ = fmt.Fprintf(p.out, "  %d) %s\n", i+1, opt)
	}

	for {
		_, _ = fmt.Fprint(p.out, SelectionPrompt(len(options)))
		line, err := p.readLine(ctx)
		if err != nil {
			return 0, err
		}

		choice, convErr := strconv.Atoi(line)
		switch {
		case convErr != nil:
			_, _ = fmt.Fprintln(p.out, "Invalid input. Please enter a number.")
		case !validSelection(choice, len(options)):
			_, _ = fmt.Fprintln(p.out, "Invalid selection. Please enter a number from the list or 0 to cancel.")
		default:
			return choice, nil
		}
	}
}

// Confirm implements Prompter. An empty answer takes the default.
func (p *LinePrompter) Confirm(ctx context.Context, message string, defaultYes bool) (bool, error) {
	hint := "[y/N]"
	if defaultYes {
		hint = "[Y/n]"
	}

	for {
		_, _ = fmt.Fprintf(p.out, "%s %s: ", message, hint)
		line, err := p.readLine(ctx)
		if err != nil {
			return false, err
		}

		switch strings.ToLower(line) {
		case "":
			return defaultYes, nil
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		default:
			_, _ = fmt.Fprintln(p.out, "Please answer y or n.")
		}
	}
}

// readLine returns the next trimmed line. End of input and ctx cancellation
// both count as the user canceling. A line that arrives after a canceled
// prompt is kept for the next one.
func (p *LinePrompter) readLine(ctx context.Context) (string, error) {
	p.once.Do(p.startReader)

	select {
	case <-ctx.Done():
		return "", fmt.Errorf("prompt interrupted: %w", gaerrors.ErrOperationCanceled)
	case r, ok := <-p.lines:
		if !ok {
			return "", fmt.Errorf("no answer: %w", gaerrors.ErrOperationCanceled)
		}
		line := strings.TrimSpace(r.line)
		if r.err != nil {
			if r.err == io.EOF && line != "" {
				return line, nil
			}
			return "", fmt.Errorf("no answer: %w", gaerrors.ErrOperationCanceled)
		}
		return line, nil
	}
}

// startReader runs the single goroutine that owns the input. It stops after
// the first read error.
func (p *LinePrompter) startReader() {
	p.lines = make(chan lineResult)
	go func() {
		defer close(p.lines)
		for {
			line, err := p.in.ReadString('\n')
			p.lines <- lineResult{line: line, err: err}
			if err != nil {
				return
			}
		}
	}()
}

var _ Prompter = (*LinePrompter)(nil)
