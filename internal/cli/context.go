package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mrz1836/gitauto/internal/clock"
	"github.com/mrz1836/gitauto/internal/config"
	"github.com/mrz1836/gitauto/internal/errors"
	"github.com/mrz1836/gitauto/internal/git"
	"github.com/mrz1836/gitauto/internal/logging"
	"github.com/mrz1836/gitauto/internal/prompt"
	"github.com/mrz1836/gitauto/internal/tui"
	"github.com/mrz1836/gitauto/internal/workflow"
)

// Env carries the process-level collaborators commands run against.
// Zero fields fall back to the real implementations.
type Env struct {
	// Executor runs git and shell commands.
	Executor git.Executor
	// Prompter answers interactive questions in revert.
	Prompter prompt.Prompter
	// Clock pins timestamps.
	Clock clock.Clock
	// FileLog enables the rotating log file.
	FileLog bool

	closers []io.Closer
}

// DefaultEnv returns the environment used by the gitauto binary.
func DefaultEnv() *Env {
	return &Env{FileLog: true}
}

// close releases everything opened while commands ran.
func (e *Env) close() {
	for _, c := range e.closers {
		_ = c.Close()
	}
	e.closers = nil
}

// App holds what every command needs once global flags are parsed.
type App struct {
	Flags    *GlobalFlags
	Settings *config.Settings
	Store    *config.Store
	Log      *logging.Logger
	Out      tui.Output

	env *Env
}

// appKey is the context key for App.
type appKey struct{}

// withApp returns a new context with the App attached.
func withApp(ctx context.Context, a *App) context.Context {
	return context.WithValue(ctx, appKey{}, a)
}

// appFrom retrieves the App set by the root command's PersistentPreRunE.
func appFrom(cmd *cobra.Command) (*App, error) {
	a, ok := cmd.Context().Value(appKey{}).(*App)
	if !ok || a == nil {
		return nil, errors.ErrConfigNil
	}
	return a, nil
}

// newApp loads global settings, resolves the task directory and creates the
// logger for one command invocation.
func newApp(cmd *cobra.Command, v *viper.Viper, flags *GlobalFlags, env *Env) (*App, error) {
	settings, err := config.LoadSettings(v)
	if err != nil {
		return nil, err
	}
	flags.Output = settings.Output
	if !IsValidOutputFormat(flags.Output) {
		return nil, fmt.Errorf("%w: %q must be one of %v", errors.ErrInvalidOutputFormat, flags.Output, ValidOutputFormats())
	}

	dir, err := config.ResolveTaskDir(settings.TaskDir)
	if err != nil {
		return nil, err
	}

	log, closer := InitLogger(cmd.OutOrStdout(), flags, env.FileLog && settings.LogFile)
	env.closers = append(env.closers, closer)

	return &App{
		Flags:    flags,
		Settings: settings,
		Store:    config.NewStore(dir),
		Log:      log,
		Out:      tui.NewOutput(cmd.OutOrStdout(), flags.Output),
		env:      env,
	}, nil
}

// engine builds a workflow engine wired to the app's logger and settings.
func (a *App) engine() *workflow.Engine {
	exec := a.env.Executor
	if exec == nil {
		exec = git.NewCLIExecutor(a.Log)
	}
	prompter := a.env.Prompter
	if prompter == nil {
		prompter = prompt.New()
	}
	return workflow.NewEngine(exec, a.Log,
		workflow.WithPrompter(prompter),
		workflow.WithClock(a.env.Clock),
		workflow.WithPushRetry(git.PushRetryConfig(a.Settings.PushRetries)),
	)
}

// commitCount returns the --count flag, or the configured default when the
// flag is zero.
func (a *App) commitCount(flag int) (int, error) {
	switch {
	case flag < 0:
		return 0, fmt.Errorf("--count %d must be at least 1: %w", flag, errors.ErrValueOutOfRange)
	case flag == 0:
		return a.Settings.CommitCount, nil
	default:
		return flag, nil
	}
}

// resolveTask loads the task named by args or --json and applies the
// override flags. Defaults filled in while loading are logged as warnings.
func (a *App) resolveTask(args []string, tf *TaskFlags) (config.TaskConfig, error) {
	var (
		res *config.LoadResult
		err error
	)
	switch {
	case tf.JSON != "":
		res, err = config.LoadTask(config.ExpandPath(tf.JSON))
	case len(args) == 1:
		res, err = a.Store.Load(args[0])
	default:
		return config.TaskConfig{}, errors.NewExitCode2Error(
			fmt.Errorf("a task name or --json path is required: %w", errors.ErrInvalidArgument))
	}
	if err != nil {
		return config.TaskConfig{}, err
	}

	for _, w := range res.Warnings {
		a.Log.Warning("%s", w)
	}
	a.Log.Debug("Loaded task '%s' from %s", res.Task.Name, res.Path)

	task := res.Task.WithOverrides(config.Overrides{
		Branch: tf.Branch,
		Origin: tf.Origin,
		Folder: tf.Folder,
	})
	if err := task.Validate(); err != nil {
		return config.TaskConfig{}, err
	}
	return task, nil
}
