package cli

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrz1836/gitauto/internal/errors"
)

func TestExitCodes(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0, ExitSuccess)
	assert.Equal(t, 1, ExitError)
	assert.Equal(t, 2, ExitInvalidInput)
}

func TestIsValidOutputFormat(t *testing.T) {
	t.Parallel()

	assert.True(t, IsValidOutputFormat("text"))
	assert.True(t, IsValidOutputFormat("json"))
	assert.False(t, IsValidOutputFormat("yaml"))
	assert.False(t, IsValidOutputFormat(""))
	assert.Equal(t, []string{"text", "json"}, ValidOutputFormats())
}

func TestExitCodeForError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"workflow failure", fmt.Errorf("pull: %w", errors.ErrPullFailed), ExitError},
		{"interrupt", errors.ErrInterrupted, ExitError},
		{"cancel", errors.ErrOperationCanceled, ExitError},
		{"exit code 2 wrapper", errors.NewExitCode2Error(stderrors.New("bad")), ExitInvalidInput},
		{"invalid output", fmt.Errorf("%w: xml", errors.ErrInvalidOutputFormat), ExitInvalidInput},
		{"invalid task name", errors.ErrInvalidTaskName, ExitInvalidInput},
		{"out of range", errors.ErrValueOutOfRange, ExitInvalidInput},
		{"unknown flag", stderrors.New("unknown flag: --nope"), ExitInvalidInput},
		{"required flag", stderrors.New(`required flag(s) "folder" not set`), ExitInvalidInput},
		{"too many args", stderrors.New("accepts at most 1 arg(s), received 2"), ExitInvalidInput},
		{"other", stderrors.New("boom"), ExitError},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, ExitCodeForError(tc.err))
		})
	}
}

func TestBindGlobalFlags(t *testing.T) {
	t.Parallel()

	flags := &GlobalFlags{}
	cmd := &cobra.Command{Use: "test"}
	AddGlobalFlags(cmd, flags)
	require.NoError(t, cmd.PersistentFlags().Set("output", "json"))
	require.NoError(t, cmd.PersistentFlags().Set("config-dir", "/tmp/tasks"))

	v := viper.New()
	require.NoError(t, BindGlobalFlags(v, cmd))
	assert.Equal(t, "json", v.GetString("output"))
	assert.Equal(t, "/tmp/tasks", v.GetString("config_dir"))
}

func TestAddTaskFlags(t *testing.T) {
	t.Parallel()

	cmd := &cobra.Command{Use: "test"}
	addTaskFlags(cmd, &TaskFlags{}, false)
	assert.NotNil(t, cmd.Flags().Lookup("json"))
	assert.NotNil(t, cmd.Flags().Lookup("branch"))
	assert.Nil(t, cmd.Flags().Lookup("initialize"))

	withInit := &cobra.Command{Use: "test"}
	addTaskFlags(withInit, &TaskFlags{}, true)
	assert.NotNil(t, withInit.Flags().Lookup("initialize"))
}
