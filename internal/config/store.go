package config

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/mrz1836/gitauto/internal/constants"
	"github.com/mrz1836/gitauto/internal/errors"
	"github.com/mrz1836/gitauto/internal/flock"
)

// maxConcurrentLoads bounds how many task files List reads at once.
const maxConcurrentLoads = 8

//nolint:gochecknoglobals // compiled once
var taskNamePattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)

// Store reads and writes task files in one directory.
type Store struct {
	dir string
}

// NewStore returns a Store rooted at dir. The directory is created lazily.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Dir returns the task directory.
func (s *Store) Dir() string {
	return s.dir
}

// Path returns the file for task. An absolute path ending in .json is used
// as-is; anything else must be a plain task name.
func (s *Store) Path(task string) (string, error) {
	if filepath.IsAbs(task) && strings.EqualFold(filepath.Ext(task), constants.TaskFileExt) {
		return filepath.Clean(task), nil
	}
	name := strings.TrimSuffix(task, constants.TaskFileExt)
	if !taskNamePattern.MatchString(name) {
		return "", fmt.Errorf("%q: %w", task, errors.ErrInvalidTaskName)
	}
	return filepath.Join(s.dir, name+constants.TaskFileExt), nil
}

// Load reads the named task.
func (s *Store) Load(task string) (*LoadResult, error) {
	path, err := s.Path(task)
	if err != nil {
		return nil, err
	}
	return LoadTask(path)
}

// Entry is one task file found by List.
type Entry struct {
	Name string     `json:"name"`
	Path string     `json:"path"`
	Task TaskConfig `json:"task"`
}

// List loads every task file in the directory, sorted by name. Files that
// fail to load are reported as warnings. A missing directory is an empty list.
func (s *Store) List(ctx context.Context) ([]Entry, []string, error) {
	matches, err := filepath.Glob(filepath.Join(s.dir, "*"+constants.TaskFileExt))
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to list task files")
	}

	var (
		mu       sync.Mutex
		entries  = make([]Entry, 0, len(matches))
		warnings []string
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentLoads)
	for _, path := range matches {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			res, err := LoadTask(path)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				warnings = append(warnings, fmt.Sprintf("Skipping %s: %v", filepath.Base(path), err))
				return nil
			}
			name := strings.TrimSuffix(filepath.Base(path), constants.TaskFileExt)
			entries = append(entries, Entry{Name: name, Path: path, Task: res.Task})
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
	sort.Strings(warnings)
	return entries, warnings, nil
}

// Create writes task as <name>.json and returns the path. An existing file
// is an ErrConfigExists error unless overwrite is set. The write holds an
// exclusive lock on <path>.lock and replaces the file atomically.
func (s *Store) Create(ctx context.Context, task TaskConfig, overwrite bool) (string, error) {
	if err := task.Validate(); err != nil {
		return "", err
	}
	if strings.TrimSpace(task.RepositoryPath) == "" {
		return "", fmt.Errorf("task %q: %w", task.Name, errors.ErrConfigMissingFolder)
	}

	path, err := s.Path(task.Name)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(path), constants.DirPerm); err != nil {
		return "", errors.Wrap(err, "failed to create task directory")
	}

	lock, err := flock.Acquire(ctx, path+constants.LockFileExt, flock.DefaultTimeout)
	if err != nil {
		return "", err
	}
	defer func() { _ = lock.Release() }()

	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return "", fmt.Errorf("%s: %w", path, errors.ErrConfigExists)
		}
	}

	data, err := json.MarshalIndent(task, "", "    ")
	if err != nil {
		return "", errors.Wrap(err, "failed to encode task")
	}
	if err := atomicWrite(path, append(data, '\n')); err != nil {
		return "", err
	}
	return path, nil
}

// atomicWrite writes data to a temp file and renames it over path.
func atomicWrite(path string, data []byte) error {
	tmpPath := path + ".tmp"
	f, err := os.OpenFile(tmpPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, constants.TaskFilePerm) //#nosec G304 -- path is built by Store.Path
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}

	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to write data: %w", err)
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to sync file: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to close file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to rename file: %w", err)
	}
	return nil
}
