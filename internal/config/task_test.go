package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrz1836/gitauto/internal/errors"
)

func TestNewTaskConfig_Defaults(t *testing.T) {
	cfg := NewTaskConfig("docs", "/srv/docs")

	assert.Equal(t, "docs", cfg.Name)
	assert.Equal(t, "/srv/docs", cfg.RepositoryPath)
	assert.Equal(t, "main", cfg.Branch)
	assert.True(t, cfg.PullBeforeCommand)
	assert.True(t, cfg.PushAfterCommand)
	assert.Equal(t, "Automated update for docs", cfg.CommitMessage)
	assert.Equal(t, "%Y-%m-%d %H:%M:%S", cfg.TimestampFormat)
	require.NoError(t, cfg.Validate())
}

func TestTaskConfig_WithOverrides(t *testing.T) {
	base := NewTaskConfig("docs", "/srv/docs")

	t.Run("empty overrides keep values", func(t *testing.T) {
		assert.Equal(t, base, base.WithOverrides(Overrides{}))
	})

	t.Run("overrides replace values", func(t *testing.T) {
		got := base.WithOverrides(Overrides{Branch: "release", Origin: "git@example.com:docs.git", Folder: "/tmp/docs"})
		assert.Equal(t, "release", got.Branch)
		assert.Equal(t, "git@example.com:docs.git", got.OriginURL)
		assert.Equal(t, filepath.Clean("/tmp/docs"), got.RepositoryPath)
		assert.Equal(t, "main", base.Branch, "original is not modified")
	})
}

func TestTaskConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*TaskConfig)
		wantErr error
	}{
		{"empty name", func(c *TaskConfig) { c.Name = " " }, errors.ErrEmptyValue},
		{"empty branch", func(c *TaskConfig) { c.Branch = "" }, errors.ErrEmptyValue},
		{"empty folder is allowed", func(c *TaskConfig) { c.RepositoryPath = "" }, nil},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := NewTaskConfig("docs", "/srv/docs")
			tc.mutate(&cfg)
			err := cfg.Validate()
			if tc.wantErr == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestExpandPath(t *testing.T) {
	t.Setenv("HOME", "/home/tester")

	assert.Empty(t, ExpandPath(""))
	assert.Equal(t, filepath.Clean("/home/tester/repos/site"), ExpandPath("~/repos/site"))
	assert.Equal(t, filepath.Clean("/srv/a"), ExpandPath("/srv/a/../a/"))
}
