package prompt

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gaerrors "github.com/mrz1836/gitauto/internal/errors"
)

func TestLinePrompter_Select(t *testing.T) {
	options := []string{"abc1234 first", "def5678 second"}

	tests := []struct {
		name    string
		input   string
		want    int
		wantErr error
		output  []string
	}{
		{name: "valid choice", input: "2\n", want: 2},
		{name: "zero cancels", input: "0\n", want: 0},
		{name: "retries on garbage", input: "two\n5\n1\n", want: 1, output: []string{"Invalid input", "Invalid selection"}},
		{name: "answer without newline", input: "1", want: 1},
		{name: "end of input cancels", input: "", wantErr: gaerrors.ErrOperationCanceled},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var out bytes.Buffer
			p := NewLinePrompter(strings.NewReader(tc.input), &out)

			got, err := p.Select(context.Background(), "Last commits:", options)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
			assert.Contains(t, out.String(), "  1) abc1234 first")
			assert.Contains(t, out.String(), "(1-2) or 0 to cancel")
			for _, s := range tc.output {
				assert.Contains(t, out.String(), s)
			}
		})
	}
}

func TestLinePrompter_Confirm(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		defaultYes bool
		want       bool
	}{
		{"yes", "y\n", false, true},
		{"full no", "no\n", true, false},
		{"empty takes default yes", "\n", true, true},
		{"empty takes default no", "\n", false, false},
		{"retries", "maybe\nYES\n", false, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := NewLinePrompter(strings.NewReader(tc.input), io.Discard)
			got, err := p.Confirm(context.Background(), "Confirm this action?", tc.defaultYes)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestLinePrompter_ContextCanceled(t *testing.T) {
	r, w := io.Pipe()
	defer func() { _ = w.Close() }()
	p := NewLinePrompter(r, io.Discard)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.Select(ctx, "", []string{"a"})
	require.ErrorIs(t, err, gaerrors.ErrOperationCanceled)
}

func TestLinePrompter_LineAfterCancelIsKept(t *testing.T) {
	r, w := io.Pipe()
	defer func() { _ = w.Close() }()
	p := NewLinePrompter(r, io.Discard)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := p.Select(ctx, "", []string{"a", "b"})
	require.ErrorIs(t, err, gaerrors.ErrOperationCanceled)

	go func() { _, _ = io.WriteString(w, "2\n") }()
	got, err := p.Select(context.Background(), "", []string{"a", "b"})
	require.NoError(t, err)
	assert.Equal(t, 2, got)
}

func TestScripted(t *testing.T) {
	s := &Scripted{Selections: []int{3, 9}, Confirms: []bool{true}}
	ctx := context.Background()
	opts := []string{"a", "b", "c"}

	got, err := s.Select(ctx, "pick", opts)
	require.NoError(t, err)
	assert.Equal(t, 3, got)

	_, err = s.Select(ctx, "pick again", opts)
	require.ErrorIs(t, err, gaerrors.ErrInvalidSelection)

	ok, err := s.Confirm(ctx, "sure?", false)
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = s.Confirm(ctx, "really?", false)
	require.ErrorIs(t, err, gaerrors.ErrOperationCanceled)

	_, err = s.Select(ctx, "empty", opts)
	require.ErrorIs(t, err, gaerrors.ErrOperationCanceled)

	assert.Equal(t, []string{"pick", "pick again", "sure?", "really?", "empty"}, s.Questions())
}

func TestSelectionPrompt(t *testing.T) {
	assert.Equal(t, "Enter the number of your choice (1-5) or 0 to cancel: ", SelectionPrompt(5))
}
