package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/mrz1836/gitauto/internal/config"
	"github.com/mrz1836/gitauto/internal/constants"
	"github.com/mrz1836/gitauto/internal/logging"
	"github.com/mrz1836/gitauto/internal/tui"
)

// zerologConfigOnce ensures zerolog global settings are configured exactly once.
var zerologConfigOnce sync.Once //nolint:gochecknoglobals // One-time configuration

// configureZerologGlobals sets the field names used in the file log.
func configureZerologGlobals() {
	zerologConfigOnce.Do(func() {
		zerolog.TimestampFieldName = "ts"
		zerolog.MessageFieldName = "msg"
	})
}

// newFileLogger creates the zerolog logger behind the file sink. The file
// keeps every level; console verbosity does not apply to it.
func newFileLogger(w io.Writer) zerolog.Logger {
	configureZerologGlobals()
	return zerolog.New(w).
		Level(zerolog.DebugLevel).
		Hook(logging.NewSensitiveDataHook()).
		With().Timestamp().Logger()
}

// InitLogger creates the workflow logger for a command.
//
// Events go to out, rendered for flags.Output and filtered by --verbose and
// --quiet. When fileLog is true they are also written as JSON to
// ~/.gitauto/logs/gitauto.log with rotation. If the log file cannot be
// created the logger continues with console-only output.
//
// The returned closer releases the log file and is never nil.
func InitLogger(out io.Writer, flags *GlobalFlags, fileLog bool) (*logging.Logger, io.Closer) {
	if !fileLog {
		return InitLoggerWithWriter(out, nil, flags), nopCloser{}
	}

	fileWriter, err := createLogFileWriter()
	if err != nil {
		return InitLoggerWithWriter(out, nil, flags), nopCloser{}
	}
	return InitLoggerWithWriter(out, fileWriter, flags), fileWriter
}

// InitLoggerWithWriter creates the workflow logger with explicit writers.
// file may be nil. This is primarily intended for testing purposes.
func InitLoggerWithWriter(out, file io.Writer, flags *GlobalFlags) *logging.Logger {
	verbosity := tui.NewVerbosity(flags.Verbose, flags.Quiet)
	sinks := []logging.Sink{tui.NewEventSink(out, flags.Output, verbosity)}
	if file != nil {
		sinks = append(sinks, logging.NewZerologSink(newFileLogger(file)))
	}
	return logging.New(sinks...)
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// filteringWriteCloser wraps a WriteCloser with sensitive data filtering.
// It implements io.WriteCloser so it can be used as a drop-in replacement.
type filteringWriteCloser struct {
	filter *logging.FilteringWriter
	closer io.Closer
}

// Write implements io.Writer by delegating to the filtering writer.
func (fwc *filteringWriteCloser) Write(p []byte) (n int, err error) {
	return fwc.filter.Write(p)
}

// Close implements io.Closer by delegating to the underlying closer.
func (fwc *filteringWriteCloser) Close() error {
	return fwc.closer.Close()
}

// createLogFileWriter creates a rotating file writer for the CLI log,
// wrapped with a filtering writer so credentials never reach the disk.
func createLogFileWriter() (io.WriteCloser, error) {
	logPath, err := LogFilePath()
	if err != nil {
		return nil, err
	}

	logDir := filepath.Dir(logPath)
	if err := os.MkdirAll(logDir, constants.DirPerm); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	lj := &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    constants.LogMaxSizeMB,
		MaxBackups: constants.LogMaxBackups,
		MaxAge:     constants.LogMaxAgeDays,
		Compress:   constants.LogCompress,
	}

	return &filteringWriteCloser{
		filter: logging.NewFilteringWriter(lj),
		closer: lj,
	}, nil
}

// LogFilePath returns the path to the CLI log file.
func LogFilePath() (string, error) {
	home, err := config.AppHome()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, constants.LogsDir, constants.CLILogFileName), nil
}
