package cli

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mrz1836/gitauto/internal/git"
	"github.com/mrz1836/gitauto/internal/tui"
)

// commitSubjectWidth caps the subject column of the log table.
const commitSubjectWidth = 60

// AddLogCommand adds the log command to the root command.
func AddLogCommand(root *cobra.Command) {
	tf := &TaskFlags{}
	var count int

	cmd := &cobra.Command{
		Use:   "log [task]",
		Short: "Show the last commits of the task branch on origin",
		Long: `Log fetches origin and lists the last commits of the task branch, newest
first. The working tree is not changed.`,
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

			commits, err := a.engine().ShowLastCommits(cmd.Context(), task, n)
			if err != nil {
				return err
			}
			if a.Flags.Output == OutputJSON {
				return a.Out.JSON(commits)
			}
			a.Out.Table([]string{"#", "COMMIT", "SUBJECT", "AUTHOR", "DATE"}, commitRows(commits))
			return nil
		},
	}
	addTaskFlags(cmd, tf, false)
	cmd.Flags().IntVar(&count, "count", 0, "number of commits to show (default from settings)")
	root.AddCommand(cmd)
}

func commitRows(commits []git.CommitSelection) [][]string {
	rows := make([][]string, 0, len(commits))
	for i, c := range commits {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			c.ShortHash,
			tui.Truncate(c.Subject, commitSubjectWidth),
			c.Author,
			c.Date,
		})
	}
	return rows
}
