package workflow

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gaerrors "github.com/mrz1836/gitauto/internal/errors"
)

func TestState_String(t *testing.T) {
	tests := []struct {
		state State
		want  string
	}{
		{StateInit, "init"},
		{StateBranchReady, "branch_ready"},
		{StateCommandExecuted, "command_executed"},
		{StateDone, "done"},
		{StateAborted, "aborted"},
		{State(42), "state(42)"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.state.String())
		})
	}
}

func TestStepError(t *testing.T) {
	err := fmt.Errorf("run: %w", &StepError{Step: StepPull, Err: gaerrors.ErrPullFailed})

	require.ErrorIs(t, err, gaerrors.ErrPullFailed)
	var stepErr *StepError
	require.ErrorAs(t, err, &stepErr)
	assert.Equal(t, StepPull, stepErr.Step)
	assert.Equal(t, "run: pull: "+gaerrors.ErrPullFailed.Error(), err.Error())
	assert.False(t, errors.Is(err, gaerrors.ErrPushFailed))
}

func TestReport_JSON(t *testing.T) {
	report := &Report{Workflow: KindRun, Task: "docs", State: StateDone}
	assert.True(t, report.Succeeded())

	data, err := json.Marshal(report)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"state":"done"`)
	assert.Contains(t, string(data), `"workflow":"run"`)

	var nilReport *Report
	assert.False(t, nilReport.Succeeded())
}

func TestStashLabel(t *testing.T) {
	h := newHarness(t, nil)
	r := h.engine.newRun(t.Context(), KindRun, taskFor("/tmp/repo"), Options{})

	assert.Equal(t, "gitauto-demo-20240501-123000-0123abcd", r.stashLabel())
}

func TestOptions_CommitCount(t *testing.T) {
	assert.Equal(t, 5, Options{}.commitCount())
	assert.Equal(t, 3, Options{CommitCount: 3}.commitCount())
}
