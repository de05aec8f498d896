package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrz1836/gitauto/internal/errors"
)

func TestRootCmd_Help(t *testing.T) {
	out, err := executeCLI(t, nil, "--help")
	require.NoError(t, err)

	assert.Contains(t, out, "gitauto")
	assert.Contains(t, out, "--output")
	assert.Contains(t, out, "--verbose")
	assert.Contains(t, out, "--quiet")
	assert.Contains(t, out, "--config-dir")
	for _, sub := range []string{"run", "update", "pull", "log", "revert", "list", "create", "show"} {
		assert.Contains(t, out, sub)
	}
}

func TestRootCmd_NoArgsShowsHelp(t *testing.T) {
	out, err := executeCLI(t, nil, "--config-dir", t.TempDir())
	require.NoError(t, err)
	assert.Contains(t, out, "Usage:")
}

func TestRootCmd_Version(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		info           BuildInfo
		expectContains []string
	}{
		{
			name:           "full version info",
			info:           BuildInfo{Version: "1.0.0", Commit: "abc1234", Date: "2025-01-01"},
			expectContains: []string{"1.0.0", "abc1234", "2025-01-01"},
		},
		{
			name:           "default dev version",
			info:           BuildInfo{},
			expectContains: []string{"dev", "none", "unknown"},
		},
		{
			name:           "partial version info",
			info:           BuildInfo{Version: "2.0.0-beta"},
			expectContains: []string{"2.0.0-beta", "none", "unknown"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			cmd := newRootCmd(&GlobalFlags{}, tc.info, &Env{})
			buf := new(bytes.Buffer)
			cmd.SetOut(buf)
			cmd.SetErr(buf)
			cmd.SetArgs([]string{"--version"})

			require.NoError(t, cmd.Execute())
			for _, expected := range tc.expectContains {
				assert.Contains(t, buf.String(), expected)
			}
		})
	}
}

func TestRootCmd_InvalidOutputFormat(t *testing.T) {
	_, err := executeCLI(t, nil, "list", "--output", "xml", "--config-dir", t.TempDir())
	require.ErrorIs(t, err, errors.ErrInvalidOutputFormat)
	assert.Equal(t, ExitInvalidInput, ExitCodeForError(err))
}

func TestRootCmd_VerboseQuietExclusive(t *testing.T) {
	_, err := executeCLI(t, nil, "list", "-v", "-q")
	require.Error(t, err)
	assert.Equal(t, ExitInvalidInput, ExitCodeForError(err))
}

func TestRootCmd_TooManyArgs(t *testing.T) {
	_, err := executeCLI(t, nil, "run", "a", "b")
	require.Error(t, err)
	assert.Equal(t, ExitInvalidInput, ExitCodeForError(err))
}

func TestPrintError(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	tests := []struct {
		name string
		err  error
		want string
	}{
		{"interrupt", errors.ErrInterrupted, "Interrupted"},
		{"cancel", errors.ErrOperationCanceled, "Operation canceled"},
		{"failure", errors.ErrPullFailed, "✗ pull failed"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			printError(&buf, OutputText, tc.err)
			assert.Contains(t, buf.String(), tc.want)
		})
	}

	var buf bytes.Buffer
	printError(&buf, OutputJSON, errors.ErrPullFailed)
	assert.Contains(t, buf.String(), `"type":"error"`)
}
