package config

import (
	stderrors "errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/mrz1836/gitauto/internal/constants"
	"github.com/mrz1836/gitauto/internal/errors"
)

// Settings are the global, task-independent options.
type Settings struct {
	// TaskDir overrides where task files are read from.
	TaskDir string `mapstructure:"config_dir" yaml:"config_dir,omitempty"`
	// PushRetries is the number of extra push attempts on network errors.
	PushRetries int `mapstructure:"push_retries" yaml:"push_retries"`
	// CommitCount is how many commits log and revert show.
	CommitCount int `mapstructure:"commit_count" yaml:"commit_count"`
	// Output is "text" or "json".
	Output string `mapstructure:"output" yaml:"output"`
	// LogFile disables the rotating file log when false.
	LogFile bool `mapstructure:"log_file" yaml:"log_file"`
}

// NewViper returns a viper instance with settings defaults and GITAUTO_
// environment binding.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetDefault("config_dir", "")
	v.SetDefault("push_retries", constants.DefaultPushRetries)
	v.SetDefault("commit_count", constants.DefaultCommitCount)
	v.SetDefault("output", "text")
	v.SetDefault("log_file", true)
	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	return v
}

// LoadSettings merges ~/.gitauto/config.yaml (if present) into v and
// decodes the result. Flags bound to v take precedence over env, which
// takes precedence over the file.
func LoadSettings(v *viper.Viper) (*Settings, error) {
	path, err := GlobalConfigPath()
	if err == nil {
		if _, statErr := os.Stat(path); statErr == nil {
			v.SetConfigFile(path)
			v.SetConfigType("yaml")
			if err := v.ReadInConfig(); err != nil && !isConfigNotFoundError(err) {
				return nil, fmt.Errorf("%s: %w: %w", path, errors.ErrConfigInvalid, err)
			}
		}
	}

	var s Settings
	if err := v.Unmarshal(&s, decoderOption()); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal settings")
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks value ranges.
func (s *Settings) Validate() error {
	if s.PushRetries < 0 || s.PushRetries > 10 {
		return fmt.Errorf("push_retries %d must be between 0 and 10: %w", s.PushRetries, errors.ErrValueOutOfRange)
	}
	if s.CommitCount < 1 {
		return fmt.Errorf("commit_count %d must be at least 1: %w", s.CommitCount, errors.ErrValueOutOfRange)
	}
	return nil
}

func isConfigNotFoundError(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	return stderrors.As(err, &notFound)
}
