// Package git runs git and shell commands for gitauto and interprets their results.
// This file provides the command runner every repository operation is built on.
package git

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"
	"time"

	gaerrors "github.com/mrz1836/gitauto/internal/errors"
	"github.com/mrz1836/gitauto/internal/logging"
)

// Command describes one external process invocation.
type Command struct {
	// Dir is the working directory. Empty means the current directory.
	Dir string
	// Name is the program to run, resolved through PATH.
	Name string
	// Args are passed verbatim; nothing is interpreted by a shell.
	Args []string
	// Env entries are appended to the inherited environment.
	Env []string
}

// String renders the command line for logs.
func (c Command) String() string {
	if len(c.Args) == 0 {
		return c.Name
	}
	return c.Name + " " + strings.Join(c.Args, " ")
}

// CommandResult is the captured outcome of a finished process.
type CommandResult struct {
	Stdout   string        `json:"stdout"`
	Stderr   string        `json:"stderr"`
	ExitCode int           `json:"exit_code"`
	Duration time.Duration `json:"duration"`
}

// Succeeded reports a zero exit code. Operations layer their own
// exceptions (nothing to commit, no stash) on top of this.
func (r *CommandResult) Succeeded() bool {
	return r != nil && r.ExitCode == 0
}

// Combined returns trimmed stdout and stderr joined by a newline.
func (r *CommandResult) Combined() string {
	if r == nil {
		return ""
	}
	out := strings.TrimSpace(r.Stdout)
	errOut := strings.TrimSpace(r.Stderr)
	switch {
	case out == "":
		return errOut
	case errOut == "":
		return out
	default:
		return out + "\n" + errOut
	}
}

// Executor runs external commands.
//
// Run never returns an error for a non-zero exit; callers inspect ExitCode.
// Errors are reserved for commands that could not run at all:
// ErrBinaryNotFound, ErrWorkDirMissing, or ErrInterrupted when ctx was
// already done before the process started.
type Executor interface {
	Run(ctx context.Context, cmd Command) (*CommandResult, error)
}

// CLIExecutor runs commands with os/exec.
type CLIExecutor struct {
	log      *logging.Logger
	lookPath func(string) (string, error)
}

// NewCLIExecutor creates an executor that logs every invocation at debug level.
func NewCLIExecutor(log *logging.Logger) *CLIExecutor {
	if log == nil {
		log = logging.Nop()
	}
	return &CLIExecutor{log: log, lookPath: exec.LookPath}
}

// Run implements Executor.
//
// A process that has started is never killed when ctx is canceled: git is
// left to finish so the repository is not corrupted mid-write. Callers check
// ctx between steps instead.
func (e *CLIExecutor) Run(ctx context.Context, c Command) (*CommandResult, error) {
	if ctx.Err() != nil {
		return nil, fmt.Errorf("%s not started: %w", c.Name, gaerrors.ErrInterrupted)
	}

	if c.Dir != "" {
		info, err := os.Stat(c.Dir)
		if err != nil || !info.IsDir() {
			return nil, fmt.Errorf("%s: %w", c.Dir, gaerrors.ErrWorkDirMissing)
		}
	}

	path, err := e.lookPath(c.Name)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", gaerrors.ErrBinaryNotFound, c.Name, err)
	}

	e.log.Debug("Executing '%s' in %s", logging.FilterSensitiveValue(c.String()), c.Dir)

	cmd := exec.CommandContext(context.WithoutCancel(ctx), path, c.Args...) //#nosec G204 -- args are built by repository operations or come from the user's own task file
	cmd.Dir = c.Dir
	if len(c.Env) > 0 {
		cmd.Env = append(os.Environ(), c.Env...)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	runErr := cmd.Run()
	res := &CommandResult{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		Duration: time.Since(start),
	}

	var exitErr *exec.ExitError
	switch {
	case runErr == nil:
	case errors.As(runErr, &exitErr):
		res.ExitCode = exitErr.ExitCode()
	case errors.Is(runErr, exec.ErrNotFound):
		return nil, fmt.Errorf("%w: %s: %w", gaerrors.ErrBinaryNotFound, c.Name, runErr)
	default:
		return nil, fmt.Errorf("failed to run %s: %w", c.Name, runErr)
	}

	e.logOutput(res)
	return res, nil
}

func (e *CLIExecutor) logOutput(res *CommandResult) {
	for _, line := range splitLines(res.Stdout) {
		e.log.Debug("stdout: %s", line)
	}
	for _, line := range splitLines(res.Stderr) {
		e.log.Debug("stderr: %s", line)
	}
	if res.ExitCode != 0 {
		e.log.Debug("Command exited with code %d", res.ExitCode)
	}
}

// ShellCommand builds a command that runs line through the platform shell
// (sh -c, or cmd /C on Windows) in dir.
func ShellCommand(dir, line string) Command {
	if runtime.GOOS == "windows" {
		return Command{Dir: dir, Name: "cmd", Args: []string{"/C", line}}
	}
	return Command{Dir: dir, Name: "sh", Args: []string{"-c", line}}
}

// RunShell executes a user command line in dir and returns a Result.
// A non-zero exit is OutcomeFailure; it is up to the workflow whether that is fatal.
func RunShell(ctx context.Context, runner Executor, dir, line string) (Result, error) {
	res, err := runner.Run(ctx, ShellCommand(dir, line))
	if err != nil {
		return Result{}, err
	}
	if !res.Succeeded() {
		return failure(fmt.Sprintf("command exited with code %d", res.ExitCode), res), nil
	}
	return success("command completed", res), nil
}

func splitLines(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n")
}
