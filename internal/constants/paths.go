package constants

// Directory and file names.
const (
	// AppHome is the hidden directory in the user's home that holds logs.
	AppHome = ".gitauto"

	// LogsDir is the directory under AppHome where log files are written.
	LogsDir = "logs"

	// CLILogFileName is the rotating JSON log written by every command.
	CLILogFileName = "gitauto.log"

	// TaskConfigDirName is the directory of task files under the user config dir.
	TaskConfigDirName = "git_automation_configs"

	// TaskFileExt is the extension of task configuration files.
	TaskFileExt = ".json"

	// LockFileExt is appended to a task file path to form its lock file.
	LockFileExt = ".lock"
)

// Environment variables that locate the task configuration directory.
// The first one set wins.
//
//nolint:gochecknoglobals // fixed lookup order
var ConfigDirEnvVars = []string{"GIT_AUTOMATION_CONFIG_DIR", "GITAUTO_CONFIG_DIR"}

// AppConfigFileName is the optional global settings file under AppHome.
const AppConfigFileName = "config.yaml"

// Log rotation for the CLI log file.
const (
	// LogMaxSizeMB rotates the log file once it reaches this size.
	LogMaxSizeMB = 10

	// LogMaxBackups is the number of rotated files kept.
	LogMaxBackups = 3

	// LogMaxAgeDays removes rotated files older than this.
	LogMaxAgeDays = 30

	// LogCompress gzips rotated files.
	LogCompress = true
)

// File modes for files gitauto writes.
const (
	// TaskFilePerm is the mode of task configuration files.
	TaskFilePerm = 0o600

	// DirPerm is the mode of directories gitauto creates.
	DirPerm = 0o750
)
