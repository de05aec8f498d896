// Package cli provides the command-line interface for gitauto.
package cli

import (
	stderrors "errors"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mrz1836/gitauto/internal/constants"
	"github.com/mrz1836/gitauto/internal/errors"
	"github.com/mrz1836/gitauto/internal/tui"
)

// Exit codes for the CLI.
const (
	// ExitSuccess indicates successful execution.
	ExitSuccess = constants.ExitSuccess
	// ExitError indicates a general error.
	ExitError = constants.ExitFailure
	// ExitInvalidInput indicates invalid user input.
	ExitInvalidInput = constants.ExitUsage
)

// Output format constants.
const (
	// OutputText is the default human-readable output format.
	OutputText = tui.FormatText
	// OutputJSON is the machine-readable JSON output format.
	OutputJSON = tui.FormatJSON
)

// GlobalFlags holds flags available to all commands.
type GlobalFlags struct {
	// Output specifies the output format (text or json).
	Output string
	// Verbose shows command output and debug events.
	Verbose bool
	// Quiet shows warnings and errors only.
	Quiet bool
	// ConfigDir overrides the task configuration directory.
	ConfigDir string
}

// TaskFlags select and override the task a workflow command runs.
type TaskFlags struct {
	// JSON is an explicit path to a task file.
	JSON string
	// Branch overrides the task's branch.
	Branch string
	// Origin overrides the task's origin URL.
	Origin string
	// Folder overrides the task's repository folder.
	Folder string
	// Initialize creates the repository when the folder is not one yet.
	Initialize bool
}

// AddGlobalFlags adds global flags to a command.
// These flags are available to all subcommands via PersistentFlags.
func AddGlobalFlags(cmd *cobra.Command, flags *GlobalFlags) {
	cmd.PersistentFlags().StringVarP(&flags.Output, "output", "o", OutputText, "output format (text|json)")
	cmd.PersistentFlags().BoolVarP(&flags.Verbose, "verbose", "v", false, "show command output and debug details")
	cmd.PersistentFlags().BoolVarP(&flags.Quiet, "quiet", "q", false, "show warnings and errors only")
	cmd.PersistentFlags().StringVar(&flags.ConfigDir, "config-dir", "", "directory holding task JSON files")
	cmd.MarkFlagsMutuallyExclusive("verbose", "quiet")
}

// addTaskFlags adds the task selection flags to a workflow command.
func addTaskFlags(cmd *cobra.Command, flags *TaskFlags, withInit bool) {
	cmd.Flags().StringVar(&flags.JSON, "json", "", "path to a task JSON file")
	cmd.Flags().StringVar(&flags.Branch, "branch", "", "override the task branch")
	cmd.Flags().StringVar(&flags.Origin, "origin", "", "override the task origin URL")
	cmd.Flags().StringVar(&flags.Folder, "folder", "", "override the task repository folder")
	if withInit {
		cmd.Flags().BoolVar(&flags.Initialize, "initialize", false, "initialize the repository if it does not exist")
	}
}

// BindGlobalFlags binds global flags to Viper for configuration file and
// environment variable support. The GITAUTO_ prefix is used for environment
// variables (e.g., GITAUTO_OUTPUT, GITAUTO_PUSH_RETRIES).
func BindGlobalFlags(v *viper.Viper, cmd *cobra.Command) error {
	// Use Root().PersistentFlags() to find flags defined on the root command,
	// even when called from a subcommand's PersistentPreRunE.
	rootFlags := cmd.Root().PersistentFlags()

	if err := v.BindPFlag("output", rootFlags.Lookup("output")); err != nil {
		return err
	}
	if err := v.BindPFlag("verbose", rootFlags.Lookup("verbose")); err != nil {
		return err
	}
	if err := v.BindPFlag("quiet", rootFlags.Lookup("quiet")); err != nil {
		return err
	}
	return v.BindPFlag("config_dir", rootFlags.Lookup("config-dir"))
}

// ValidOutputFormats returns the list of valid output format values.
func ValidOutputFormats() []string {
	return []string{OutputText, OutputJSON}
}

// IsValidOutputFormat checks if the given format is a valid output format.
func IsValidOutputFormat(format string) bool {
	for _, valid := range ValidOutputFormats() {
		if format == valid {
			return true
		}
	}
	return false
}

// ExitCodeForError returns the appropriate exit code for the given error.
// Returns ExitSuccess (0) for nil errors, ExitInvalidInput (2) for user input
// errors (invalid flags, bad arguments), and ExitError (1) for all other errors.
func ExitCodeForError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	if errors.IsExitCode2Error(err) {
		return ExitInvalidInput
	}

	for _, target := range []error{
		errors.ErrInvalidOutputFormat,
		errors.ErrInvalidArgument,
		errors.ErrInvalidTaskName,
		errors.ErrValueOutOfRange,
	} {
		if stderrors.Is(err, target) {
			return ExitInvalidInput
		}
	}

	// Cobra flag parsing errors (mutually exclusive flags, unknown flags, etc.)
	if isInvalidInputError(err.Error()) {
		return ExitInvalidInput
	}

	return ExitError
}

// isInvalidInputError checks if an error message indicates invalid user input.
// This catches Cobra's built-in flag validation errors.
func isInvalidInputError(errMsg string) bool {
	invalidInputPatterns := []string{
		"unknown flag",
		"unknown shorthand flag",
		"flag needs an argument",
		"invalid argument",
		"if any flags in the group",
		"required flag",
		"unknown command",
		"accepts at most",
		"accepts 1 arg",
	}

	for _, pattern := range invalidInputPatterns {
		if strings.Contains(errMsg, pattern) {
			return true
		}
	}
	return false
}
