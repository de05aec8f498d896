package config

import (
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"

	"github.com/mrz1836/gitauto/internal/constants"
	"github.com/mrz1836/gitauto/internal/errors"
)

// keyAliases maps legacy task file keys onto their current names.
// The current key wins when a file has both.
//
//nolint:gochecknoglobals // fixed lookup table
var keyAliases = map[string]string{
	"git_repo_path":      "folder",
	"command_line":       "pre_command",
	"git_commit_message": "commit_message",
}

// LoadResult is a loaded task plus the defaults that had to be filled in.
type LoadResult struct {
	Task     TaskConfig
	Path     string
	Warnings []string
}

// LoadTask reads the task file at path.
//
// A missing file wraps ErrConfigNotFound, unparsable JSON wraps
// ErrConfigInvalid and a file without "folder" wraps ErrConfigMissingFolder.
// A missing name falls back to the file name; a missing branch or commit
// message falls back to its default and adds a warning.
func LoadTask(path string) (*LoadResult, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%s: %w", path, errors.ErrConfigNotFound)
		}
		return nil, errors.Wrap(err, "failed to stat task file")
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("json")
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("%s: %w: %w", path, errors.ErrConfigInvalid, err)
	}
	resolveAliases(v)

	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	result := &LoadResult{Path: path}

	if !v.IsSet("folder") || strings.TrimSpace(v.GetString("folder")) == "" {
		return nil, fmt.Errorf("%s: %w", path, errors.ErrConfigMissingFolder)
	}
	if !v.IsSet("name") || v.GetString("name") == "" {
		v.Set("name", stem)
	}
	name := v.GetString("name")

	v.SetDefault("pull_before_command", true)
	v.SetDefault("push_after_command", true)
	v.SetDefault("timestamp_format", constants.DefaultTimestampFormat)
	if !v.IsSet("branch") || v.GetString("branch") == "" {
		v.Set("branch", constants.DefaultBranch)
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Task '%s' has no branch, using '%s'", name, constants.DefaultBranch))
	}
	if !v.IsSet("commit_message") || v.GetString("commit_message") == "" {
		v.Set("commit_message", DefaultCommitMessage(name))
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Task '%s' has no commit message, using '%s'", name, DefaultCommitMessage(name)))
	}

	var task TaskConfig
	if err := v.Unmarshal(&task, decoderOption()); err != nil {
		return nil, fmt.Errorf("%s: %w: %w", path, errors.ErrConfigInvalid, err)
	}
	task.RepositoryPath = ExpandPath(task.RepositoryPath)

	if err := task.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	result.Task = task
	return result, nil
}

func resolveAliases(v *viper.Viper) {
	for alias, key := range keyAliases {
		if v.InConfig(alias) && !v.InConfig(key) {
			v.Set(key, v.Get(alias))
		}
	}
}

// decoderOption configures mapstructure for task files. Booleans may be
// written as JSON booleans or as strings like "true", "yes" or "off".
func decoderOption() viper.DecoderConfigOption {
	return viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			stringToBoolHookFunc(),
		),
	)
}

var errInvalidBool = stderrors.New("invalid boolean")

func stringToBoolHookFunc() mapstructure.DecodeHookFuncType {
	return func(from, to reflect.Type, data any) (any, error) {
		if from.Kind() != reflect.String || to.Kind() != reflect.Bool {
			return data, nil
		}
		s, _ := data.(string)
		switch strings.ToLower(strings.TrimSpace(s)) {
		case "true", "yes", "y", "on", "1":
			return true, nil
		case "false", "no", "n", "off", "0", "":
			return false, nil
		default:
			return nil, fmt.Errorf("%w: %q", errInvalidBool, s)
		}
	}
}
