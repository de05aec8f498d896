package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mrz1836/gitauto/internal/config"
	"github.com/mrz1836/gitauto/internal/tui"
)

// folderColumnWidth caps the folder column of the list table.
const folderColumnWidth = 50

// AddListCommand adds the list command to the root command.
func AddListCommand(root *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the tasks in the task directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := appFrom(cmd)
			if err != nil {
				return err
			}

			entries, warnings, err := a.Store.List(cmd.Context())
			if err != nil {
				return err
			}
			for _, w := range warnings {
				a.Log.Warning("%s", w)
			}

			if a.Flags.Output == OutputJSON {
				return a.Out.JSON(entries)
			}
			if len(entries) == 0 {
				a.Out.Info(fmt.Sprintf("No tasks found in %s", a.Store.Dir()))
				return nil
			}

			rows := make([][]string, 0, len(entries))
			for _, e := range entries {
				rows = append(rows, []string{
					e.Name,
					e.Task.Branch,
					tui.Truncate(e.Task.RepositoryPath, folderColumnWidth),
					yesNo(e.Task.PullBeforeCommand),
					yesNo(e.Task.PushAfterCommand),
				})
			}
			a.Out.Table([]string{"TASK", "BRANCH", "FOLDER", "PULL", "PUSH"}, rows)
			return nil
		},
	}
	root.AddCommand(cmd)
}

// createFlags holds the fields of a new task.
type createFlags struct {
	folder          string
	branch          string
	origin          string
	preCommand      string
	postCommand     string
	commitMessage   string
	timestampFormat string
	noPull          bool
	noPush          bool
	overwrite       bool
}

// AddCreateCommand adds the create command to the root command.
func AddCreateCommand(root *cobra.Command) {
	f := &createFlags{}

	cmd := &cobra.Command{
		Use:   "create <task>",
		Short: "Create a task file",
		Long: `Create writes <task>.json to the task directory. Unset fields take their
defaults: branch main, pull and push enabled, commit message
"Automated update for <task>".

Examples:
  gitauto create docs --folder ~/src/docs --pre-command "make docs"
  gitauto create docs --folder ~/src/docs --branch gh-pages --overwrite`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := appFrom(cmd)
			if err != nil {
				return err
			}

			task := f.task(args[0])
			path, err := a.Store.Create(cmd.Context(), task, f.overwrite)
			if err != nil {
				return err
			}

			if a.Flags.Output == OutputJSON {
				return a.Out.JSON(config.Entry{Name: task.Name, Path: path, Task: task})
			}
			a.Out.Success(fmt.Sprintf("Task '%s' written to %s", task.Name, path))
			return nil
		},
	}

	cmd.Flags().StringVar(&f.folder, "folder", "", "repository folder the task runs in")
	cmd.Flags().StringVar(&f.branch, "branch", "", "branch to check out (default main)")
	cmd.Flags().StringVar(&f.origin, "origin", "", "origin URL added when the repository has none")
	cmd.Flags().StringVar(&f.preCommand, "pre-command", "", "shell command run before committing")
	cmd.Flags().StringVar(&f.postCommand, "post-command", "", "shell command run after pushing")
	cmd.Flags().StringVar(&f.commitMessage, "commit-message", "", "commit message prefix")
	cmd.Flags().StringVar(&f.timestampFormat, "timestamp-format", "", "strftime format appended to the commit message")
	cmd.Flags().BoolVar(&f.noPull, "no-pull", false, "do not pull before running the command")
	cmd.Flags().BoolVar(&f.noPush, "no-push", false, "do not push after committing")
	cmd.Flags().BoolVar(&f.overwrite, "overwrite", false, "replace an existing task file")
	_ = cmd.MarkFlagRequired("folder")

	root.AddCommand(cmd)
}

func (f *createFlags) task(name string) config.TaskConfig {
	task := config.NewTaskConfig(name, config.ExpandPath(f.folder))
	if f.branch != "" {
		task.Branch = f.branch
	}
	if f.commitMessage != "" {
		task.CommitMessage = f.commitMessage
	}
	if f.timestampFormat != "" {
		task.TimestampFormat = f.timestampFormat
	}
	task.OriginURL = f.origin
	task.PreCommand = f.preCommand
	task.PostCommand = f.postCommand
	task.PullBeforeCommand = !f.noPull
	task.PushAfterCommand = !f.noPush
	return task
}

// AddShowCommand adds the show command to the root command.
func AddShowCommand(root *cobra.Command) {
	tf := &TaskFlags{}

	cmd := &cobra.Command{
		Use:               "show [task]",
		Short:             "Show a task with defaults and overrides applied",
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: completeTaskNames,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := appFrom(cmd)
			if err != nil {
				return err
			}
			task, err := a.resolveTask(args, tf)
			if err != nil {
				return err
			}

			if a.Flags.Output == OutputJSON {
				return a.Out.JSON(task)
			}
			data, err := config.MarshalYAML(task)
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), string(data))
			return err
		},
	}
	addTaskFlags(cmd, tf, false)
	root.AddCommand(cmd)
}

// completeTaskNames offers the task files in the task directory.
func completeTaskNames(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	flagDir := ""
	if f := cmd.Flag("config-dir"); f != nil {
		flagDir = f.Value.String()
	}
	dir, err := config.ResolveTaskDir(flagDir)
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	entries, _, err := config.NewStore(dir).List(ctx)
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if strings.HasPrefix(e.Name, toComplete) {
			names = append(names, e.Name+"\t"+e.Task.RepositoryPath)
		}
	}
	return names, cobra.ShellCompDirectiveNoFileComp
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
