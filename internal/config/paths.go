package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/mrz1836/gitauto/internal/constants"
	"github.com/mrz1836/gitauto/internal/errors"
)

// ResolveTaskDir returns the directory holding task files. Precedence:
// flagDir, then GIT_AUTOMATION_CONFIG_DIR / GITAUTO_CONFIG_DIR, then
// $XDG_CONFIG_HOME/git_automation_configs, then ~/.config/git_automation_configs
// (%APPDATA%\git_automation_configs on Windows).
func ResolveTaskDir(flagDir string) (string, error) {
	if flagDir != "" {
		return ExpandPath(flagDir), nil
	}
	for _, name := range constants.ConfigDirEnvVars {
		if dir := os.Getenv(name); dir != "" {
			return ExpandPath(dir), nil
		}
	}

	if runtime.GOOS == "windows" {
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, constants.TaskConfigDirName), nil
		}
	}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, constants.TaskConfigDirName), nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, "failed to get home directory")
	}
	return filepath.Join(home, ".config", constants.TaskConfigDirName), nil
}

// AppHome returns ~/.gitauto, or GITAUTO_HOME when set.
func AppHome() (string, error) {
	if dir := os.Getenv(constants.EnvPrefix + "_HOME"); dir != "" {
		return ExpandPath(dir), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, "failed to get home directory")
	}
	return filepath.Join(home, constants.AppHome), nil
}

// GlobalConfigPath returns the path of the optional global settings file.
func GlobalConfigPath() (string, error) {
	dir, err := AppHome()
	if err != nil {
		return "", fmt.Errorf("get global config path: %w", err)
	}
	return filepath.Join(dir, constants.AppConfigFileName), nil
}

// ExpandPath replaces a leading ~ with the home directory and cleans the result.
func ExpandPath(path string) string {
	if path == "" {
		return ""
	}
	if path == "~" || strings.HasPrefix(path, "~/") || strings.HasPrefix(path, `~\`) {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, path[1:])
		}
	}
	return filepath.Clean(path)
}
