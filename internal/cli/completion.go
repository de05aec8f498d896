package cli

import (
	"github.com/spf13/cobra"
)

// AddCompletionCommand adds the completion command with subcommands to the root command.
// This replaces Cobra's default completion command so the help text can show
// how to load completions for each shell. Task names complete from the task
// directory.
func AddCompletionCommand(rootCmd *cobra.Command) {
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	completionCmd := &cobra.Command{
		Use:   "completion",
		Short: "Generate shell completions",
		Long: `Generate shell completion scripts for gitauto.

  gitauto completion bash
  gitauto completion zsh
  gitauto completion fish
  gitauto completion powershell`,
		// completion scripts need no settings, logger or task directory
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
	}

	completionCmd.AddCommand(newShellCompletionCmd("bash", "source <(gitauto completion bash)",
		func(cmd *cobra.Command) error { return cmd.Root().GenBashCompletionV2(cmd.OutOrStdout(), true) }))
	completionCmd.AddCommand(newShellCompletionCmd("zsh", "source <(gitauto completion zsh)",
		func(cmd *cobra.Command) error { return cmd.Root().GenZshCompletion(cmd.OutOrStdout()) }))
	completionCmd.AddCommand(newShellCompletionCmd("fish", "gitauto completion fish | source",
		func(cmd *cobra.Command) error { return cmd.Root().GenFishCompletion(cmd.OutOrStdout(), true) }))
	completionCmd.AddCommand(newShellCompletionCmd("powershell", "gitauto completion powershell | Out-String | Invoke-Expression",
		func(cmd *cobra.Command) error { return cmd.Root().GenPowerShellCompletionWithDesc(cmd.OutOrStdout()) }))

	rootCmd.AddCommand(completionCmd)
}

func newShellCompletionCmd(shell, load string, gen func(*cobra.Command) error) *cobra.Command {
	return &cobra.Command{
		Use:   shell,
		Short: "Generate " + shell + " completion script",
		Long: "Generate " + shell + ` completion script for gitauto.

To load completions in current session:
  ` + load,
		Args:                  cobra.NoArgs,
		DisableFlagsInUseLine: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return gen(cmd)
		},
	}
}
