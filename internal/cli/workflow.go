package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/mrz1836/gitauto/internal/tui"
	"github.com/mrz1836/gitauto/internal/workflow"
)

// AddRunCommand adds the run command to the root command.
func AddRunCommand(root *cobra.Command) {
	root.AddCommand(newWorkflowCmd(workflow.KindRun, "Run a task: pull, run its command, commit and push",
		`Run the full task workflow:

  1. check out or create the task branch
  2. stash local changes, pull, restore them (when pull_before_command is true)
  3. run pre_command
  4. commit everything with the timestamped commit message
  5. push (when push_after_command is true) and pull again
  6. run post_command

When the pull leaves the tree clean, the command, commit and push are skipped.`))
}

// AddUpdateCommand adds the update command to the root command.
func AddUpdateCommand(root *cobra.Command) {
	root.AddCommand(newWorkflowCmd(workflow.KindUpdate, "Pull, then commit and push pending changes",
		`Update syncs with the remote and ships whatever is pending in the working
tree. The task's pre_command and post_command are never run, and the pull
always happens regardless of pull_before_command.`))
}

// AddPullCommand adds the pull command to the root command.
func AddPullCommand(root *cobra.Command) {
	root.AddCommand(newWorkflowCmd(workflow.KindPull, "Pull the task branch, keeping local changes",
		`Pull checks out the task branch and pulls from origin. Local changes are
stashed before the pull and restored after it. Nothing is committed.`))
}

// AddRevertCommand adds the revert command to the root command.
func AddRevertCommand(root *cobra.Command) {
	tf := &TaskFlags{}
	var count int

	cmd := &cobra.Command{
		Use:   "revert [task]",
		Short: "Re-apply one of the last remote commits as a new commit",
		Long: `Revert lists the last commits of the task branch on origin and applies the
one you pick as a NEW commit with cherry-pick. The branch must already exist
locally. Pending changes are stashed first and restored afterwards.

Enter 0 at the selection prompt to cancel.`,
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: completeTaskNames,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := appFrom(cmd)
			if err != nil {
				return err
			}
			n, err := a.commitCount(count)
			if err != nil {
				return err
			}
			task, err := a.resolveTask(args, tf)
			if err != nil {
				return err
			}

			report, err := a.engine().RunRevert(cmd.Context(), task, workflow.Options{CommitCount: n})
			return a.renderReport(cmd.OutOrStdout(), report, err)
		},
	}
	addTaskFlags(cmd, tf, false)
	cmd.Flags().IntVar(&count, "count", 0, "number of remote commits to choose from (default from settings)")
	root.AddCommand(cmd)
}

func newWorkflowCmd(kind workflow.Kind, short, long string) *cobra.Command {
	tf := &TaskFlags{}
	cmd := &cobra.Command{
		Use:               string(kind) + " [task]",
		Short:             short,
		Long:              long,
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: completeTaskNames,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWorkflow(cmd, args, tf, kind)
		},
	}
	addTaskFlags(cmd, tf, true)
	return cmd
}

// runWorkflow loads the task and runs the task, update or pull workflow.
func runWorkflow(cmd *cobra.Command, args []string, tf *TaskFlags, kind workflow.Kind) error {
	a, err := appFrom(cmd)
	if err != nil {
		return err
	}
	task, err := a.resolveTask(args, tf)
	if err != nil {
		return err
	}

	engine := a.engine()
	opts := workflow.Options{Initialize: tf.Initialize}
	ctx := cmd.Context()

	var report *workflow.Report
	switch kind {
	case workflow.KindUpdate:
		report, err = engine.RunUpdate(ctx, task, opts)
	case workflow.KindPull:
		report, err = engine.RunPull(ctx, task, opts)
	case workflow.KindRun:
		report, err = engine.RunTask(ctx, task, opts)
	default:
		return fmt.Errorf("unknown workflow %q", kind)
	}
	return a.renderReport(cmd.OutOrStdout(), report, err)
}

// renderReport prints the final report. Text output shows any manual
// resolution guidance; JSON output writes the whole report.
func (a *App) renderReport(w io.Writer, report *workflow.Report, runErr error) error {
	if report == nil {
		return runErr
	}

	if a.Flags.Output == OutputJSON {
		if err := a.Out.JSON(report); err != nil {
			return err
		}
		return runErr
	}

	if report.Guidance != "" {
		_, _ = fmt.Fprintln(w, tui.RenderMarkdown(report.Guidance))
	}
	if report.Applied != nil && runErr == nil {
		a.Out.Info(fmt.Sprintf("Applied [%s] %s", report.Applied.ShortHash, report.Applied.Subject))
	}
	return runErr
}
