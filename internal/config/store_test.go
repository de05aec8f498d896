package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrz1836/gitauto/internal/errors"
)

func TestStore_Path(t *testing.T) {
	dir := t.TempDir()
	s := NewStore(dir)
	abs := filepath.Join(t.TempDir(), "elsewhere.json")

	tests := []struct {
		task    string
		want    string
		wantErr error
	}{
		{task: "docs", want: filepath.Join(dir, "docs.json")},
		{task: "docs.json", want: filepath.Join(dir, "docs.json")},
		{task: "my_task-2.v1", want: filepath.Join(dir, "my_task-2.v1.json")},
		{task: abs, want: abs},
		{task: "../escape", wantErr: errors.ErrInvalidTaskName},
		{task: "", wantErr: errors.ErrInvalidTaskName},
		{task: "a/b", wantErr: errors.ErrInvalidTaskName},
	}

	for _, tc := range tests {
		t.Run(tc.task, func(t *testing.T) {
			got, err := s.Path(tc.task)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestStore_CreateAndLoad(t *testing.T) {
	ctx := context.Background()
	s := NewStore(filepath.Join(t.TempDir(), "tasks"))

	task := NewTaskConfig("docs", "/srv/docs")
	task.PreCommand = "make"

	path, err := s.Create(ctx, task, false)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(s.Dir(), "docs.json"), path)

	info, err := os.Stat(path)
	require.NoError(t, err)
	if os.PathSeparator == '/' {
		assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
	}

	res, err := s.Load("docs")
	require.NoError(t, err)
	assert.Empty(t, res.Warnings)
	assert.Equal(t, task.PreCommand, res.Task.PreCommand)
	assert.Equal(t, filepath.Clean(task.RepositoryPath), res.Task.RepositoryPath)

	_, err = s.Create(ctx, task, false)
	require.ErrorIs(t, err, errors.ErrConfigExists)

	task.Branch = "release"
	_, err = s.Create(ctx, task, true)
	require.NoError(t, err)
	res, err = s.Load("docs")
	require.NoError(t, err)
	assert.Equal(t, "release", res.Task.Branch)

	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))
}

func TestStore_CreateRequiresFolder(t *testing.T) {
	s := NewStore(t.TempDir())
	_, err := s.Create(context.Background(), NewTaskConfig("docs", ""), false)
	require.ErrorIs(t, err, errors.ErrConfigMissingFolder)
}

func TestStore_List(t *testing.T) {
	dir := t.TempDir()
	s := NewStore(dir)
	ctx := context.Background()

	for _, name := range []string{"zeta", "alpha", "mid"} {
		_, err := s.Create(ctx, NewTaskConfig(name, "/srv/"+name), false)
		require.NoError(t, err)
	}
	writeTaskFile(t, dir, "broken.json", `{`)
	writeTaskFile(t, dir, "notes.txt", `ignored`)

	entries, warnings, err := s.List(ctx)
	require.NoError(t, err)

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name)
	}
	assert.Equal(t, []string{"alpha", "mid", "zeta"}, names)
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "broken.json")
}

func TestStore_ListMissingDir(t *testing.T) {
	entries, warnings, err := NewStore(filepath.Join(t.TempDir(), "missing")).List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, entries)
	assert.Empty(t, warnings)
}
