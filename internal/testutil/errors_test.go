package testutil

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMockErrors(t *testing.T) {
	assert.Equal(t, "exec failed", ErrMockExec.Error())
	assert.Equal(t, "prompt failed", ErrMockPrompt.Error())
	assert.ErrorIs(t, fmt.Errorf("wrapped: %w", ErrMockExec), ErrMockExec)
	assert.False(t, errors.Is(errors.New("exec failed"), ErrMockExec)) //nolint:err113 // comparing a look-alike
}
