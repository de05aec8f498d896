// Package config loads gitauto task files and global settings.
//
// A task file is a JSON object describing one automation target. Loading
// applies every default exactly once, so the workflow engine receives a fully
// populated TaskConfig and never checks for missing fields itself.
package config

import (
	"fmt"
	"strings"

	"github.com/mrz1836/gitauto/internal/constants"
	"github.com/mrz1836/gitauto/internal/errors"
	"github.com/mrz1836/gitauto/internal/timefmt"
)

// TaskConfig is the identity and policy of one automation target.
// It is treated as immutable for the duration of a workflow run.
type TaskConfig struct {
	Name              string `json:"name" yaml:"name" mapstructure:"name"`
	RepositoryPath    string `json:"folder" yaml:"folder" mapstructure:"folder"`
	Branch            string `json:"branch" yaml:"branch" mapstructure:"branch"`
	OriginURL         string `json:"origin,omitempty" yaml:"origin,omitempty" mapstructure:"origin"`
	PullBeforeCommand bool   `json:"pull_before_command" yaml:"pull_before_command" mapstructure:"pull_before_command"`
	PreCommand        string `json:"pre_command,omitempty" yaml:"pre_command,omitempty" mapstructure:"pre_command"`
	PostCommand       string `json:"post_command,omitempty" yaml:"post_command,omitempty" mapstructure:"post_command"`
	CommitMessage     string `json:"commit_message" yaml:"commit_message" mapstructure:"commit_message"`
	PushAfterCommand  bool   `json:"push_after_command" yaml:"push_after_command" mapstructure:"push_after_command"`
	TimestampFormat   string `json:"timestamp_format" yaml:"timestamp_format" mapstructure:"timestamp_format"`
}

// NewTaskConfig returns a task with every default applied.
func NewTaskConfig(name, folder string) TaskConfig {
	return TaskConfig{
		Name:              name,
		RepositoryPath:    folder,
		Branch:            constants.DefaultBranch,
		PullBeforeCommand: true,
		CommitMessage:     DefaultCommitMessage(name),
		PushAfterCommand:  true,
		TimestampFormat:   constants.DefaultTimestampFormat,
	}
}

// DefaultCommitMessage is the commit message used when a task has none.
func DefaultCommitMessage(name string) string {
	return fmt.Sprintf(constants.DefaultCommitMessageTemplate, name)
}

// Overrides are command-line values that replace task file values.
// Empty fields leave the task unchanged.
type Overrides struct {
	Branch string
	Origin string
	Folder string
}

// WithOverrides returns a copy of c with the non-empty overrides applied.
func (c TaskConfig) WithOverrides(o Overrides) TaskConfig {
	if o.Branch != "" {
		c.Branch = o.Branch
	}
	if o.Origin != "" {
		c.OriginURL = o.Origin
	}
	if o.Folder != "" {
		c.RepositoryPath = ExpandPath(o.Folder)
	}
	return c
}

// Validate checks the fields a workflow cannot run without.
// An empty RepositoryPath is left to the workflow, which reports it as a
// failed run rather than a load error.
func (c TaskConfig) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("task name: %w", errors.ErrEmptyValue)
	}
	if strings.TrimSpace(c.Branch) == "" {
		return fmt.Errorf("branch: %w", errors.ErrEmptyValue)
	}
	if err := timefmt.Validate(c.TimestampFormat); err != nil {
		return fmt.Errorf("%w: %w", errors.ErrConfigInvalid, err)
	}
	return nil
}
