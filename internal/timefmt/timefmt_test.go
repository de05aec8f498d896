package timefmt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

//nolint:gochecknoglobals // fixed test instant
var testTime = time.Date(2024, 5, 1, 15, 4, 5, 0, time.UTC)

func TestFormat(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		want    string
	}{
		{"default when empty", "", "2024-05-01 15:04:05"},
		{"date only", "%Y-%m-%d", "2024-05-01"},
		{"time only", "%H:%M", "15:04"},
		{"literal text", "build %Y", "build 2024"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Format(tc.pattern, testTime)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestCommitMessage(t *testing.T) {
	t.Run("appends bracketed timestamp", func(t *testing.T) {
		got, err := CommitMessage("Build", "%Y-%m-%d", testTime)
		require.NoError(t, err)
		assert.Equal(t, "Build [2024-05-01]", got)
	})

	t.Run("trims message whitespace", func(t *testing.T) {
		got, err := CommitMessage("  Build \n", "%Y", testTime)
		require.NoError(t, err)
		assert.Equal(t, "Build [2024]", got)
	})

	t.Run("empty message keeps timestamp", func(t *testing.T) {
		got, err := CommitMessage("", "%Y", testTime)
		require.NoError(t, err)
		assert.Equal(t, "[2024]", got)
	})
}

func TestValidate(t *testing.T) {
	require.NoError(t, Validate(""))
	require.NoError(t, Validate("%Y-%m-%d"))
}

func TestCompact(t *testing.T) {
	assert.Equal(t, "20240501-150405", Compact(testTime))
}
