package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/mrz1836/gitauto/internal/config"
	"github.com/mrz1836/gitauto/internal/errors"
	"github.com/mrz1836/gitauto/internal/signal"
	"github.com/mrz1836/gitauto/internal/tui"
	"github.com/mrz1836/gitauto/internal/workflow"
)

// BuildInfo contains version information set at build time via ldflags.
type BuildInfo struct {
	// Version is the semantic version (e.g., "1.0.0").
	Version string
	// Commit is the git commit hash.
	Commit string
	// Date is the build date.
	Date string
}

// newRootCmd creates and returns the root command for the gitauto CLI.
// Running it with a task name is the same as "gitauto run <task>".
func newRootCmd(flags *GlobalFlags, info BuildInfo, env *Env) *cobra.Command {
	v := config.NewViper()
	taskFlags := &TaskFlags{}

	cmd := &cobra.Command{
		Use:   "gitauto [task]",
		Short: "gitauto - scripted git workflows for named tasks",
		Long: `gitauto runs a named task against a git repository: check out the task branch,
pull with local changes stashed, run the task command, then commit and push
whatever it changed.

Tasks are JSON files in the task directory (see --config-dir).

Examples:
  gitauto docs                 # run the "docs" task
  gitauto update docs          # commit and push pending changes only
  gitauto revert docs          # re-apply one of the last remote commits`,
		Version:           formatVersion(info),
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: completeTaskNames,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 && taskFlags.JSON == "" {
				return cmd.Help()
			}
			return runWorkflow(cmd, args, taskFlags, workflow.KindRun)
		},
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := BindGlobalFlags(v, cmd); err != nil {
				return fmt.Errorf("failed to bind flags: %w", err)
			}

			app, err := newApp(cmd, v, flags, env)
			if err != nil {
				return err
			}
			cmd.SetContext(withApp(cmd.Context(), app))
			return nil
		},
		// SilenceUsage prevents printing usage on error
		// (we handle our own error messages)
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	AddGlobalFlags(cmd, flags)
	addTaskFlags(cmd, taskFlags, true)

	AddRunCommand(cmd)
	AddUpdateCommand(cmd)
	AddPullCommand(cmd)
	AddLogCommand(cmd)
	AddRevertCommand(cmd)
	AddListCommand(cmd)
	AddCreateCommand(cmd)
	AddShowCommand(cmd)
	AddCompletionCommand(cmd)

	return cmd
}

// formatVersion creates the version string from build info.
func formatVersion(info BuildInfo) string {
	if info.Version == "" {
		info.Version = "dev"
	}
	if info.Commit == "" {
		info.Commit = "none"
	}
	if info.Date == "" {
		info.Date = "unknown"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", info.Version, info.Commit, info.Date)
}

// Execute runs the root command with the provided context and build info.
// SIGINT and SIGTERM stop the run before its next step.
func Execute(ctx context.Context, info BuildInfo) error {
	handler := signal.NewHandler(ctx, errors.ErrInterrupted)
	defer handler.Stop()

	env := DefaultEnv()
	defer env.close()

	flags := &GlobalFlags{}
	//nolint:contextcheck // Cobra command pattern uses cmd.Context() internally
	cmd := newRootCmd(flags, info, env)
	err := cmd.ExecuteContext(handler.Context())
	if err != nil {
		printError(cmd.ErrOrStderr(), flags.Output, err)
	}
	return err
}

// printError writes the final error line. Interrupts and cancellations get
// their own message instead of an error.
func printError(w io.Writer, format string, err error) {
	out := tui.NewOutput(w, format)
	switch {
	case stderrors.Is(err, errors.ErrInterrupted):
		out.Warning("Interrupted. The run was canceled before its next step")
	case stderrors.Is(err, errors.ErrOperationCanceled):
		out.Warning("Operation canceled")
	default:
		out.Error(err)
	}
}
