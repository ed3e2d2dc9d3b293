package config

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Logger is the global zerolog logger instance.
//
//nolint:gochecknoglobals // Logger is intentionally global for application-wide structured logging
var Logger zerolog.Logger

// logFileHandle tracks the current log file for cleanup (prevents Windows file locking issues).
//
//nolint:gochecknoglobals // Tracks the global logger's file handle for proper cleanup
var logFileHandle *os.File

// consoleOut is the console destination of the current logger, nil while
// a full-screen UI owns the terminal.
//
//nolint:gochecknoglobals // Guarded by logMu
var consoleOut io.Writer

// logMu protects concurrent access to logFileHandle, consoleOut and Logger.
//
//nolint:gochecknoglobals // Guards the global logger state
var logMu sync.RWMutex

// InitLogger rebuilds the global Logger from cfg.
//
// console receives human-readable output (or raw JSON when cfg.Format is
// "json"); pass nil to log to the file only, as the demo does while the
// table owns the screen. When cfg.File is set the file is opened in append
// mode and written alongside the console. An unparsable level falls back
// to info.
//
// It returns an error if directory creation or opening the log file fails.
func InitLogger(cfg LoggingConfig, console io.Writer) error {
	logMu.Lock()
	defer logMu.Unlock()

	lvl, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || cfg.Level == "" {
		lvl = zerolog.InfoLevel
	}

	// Close any previously opened log file to prevent file handle leaks
	closeLogFileLocked()

	var writers []io.Writer
	if console != nil {
		writers = append(writers, consoleWriter(console, cfg.Format))
	}

	if cfg.File != "" {
		if dirErr := ensureParentDir(cfg.File); dirErr != nil {
			return dirErr
		}

		logFile, fileErr := os.OpenFile(
			cfg.File,
			os.O_APPEND|os.O_CREATE|os.O_WRONLY,
			0600,
		)
		if fileErr != nil {
			return fileErr
		}
		logFileHandle = logFile
		writers = append(writers, logFile)
	}

	consoleOut = console
	Logger = newLogger(lvl, writers...)
	return nil
}

func consoleWriter(out io.Writer, format string) io.Writer {
	if format == "json" {
		return out
	}
	return zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: time.RFC3339,
	}
}

func newLogger(lvl zerolog.Level, writers ...io.Writer) zerolog.Logger {
	if len(writers) == 0 {
		return zerolog.New(io.Discard).Level(zerolog.Disabled)
	}
	return zerolog.New(zerolog.MultiLevelWriter(writers...)).
		Level(lvl).
		With().
		Timestamp().
		Caller().
		Logger()
}

// SetLogLevel sets the global Logger's level, falling back to info when
// level cannot be parsed.
func SetLogLevel(level string) {
	logMu.Lock()
	defer logMu.Unlock()

	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	Logger = Logger.Level(lvl)
}

// CloseLogFile closes the current log file handle, if any, and resets the
// Logger to the console so subsequent logs are not written to a closed file.
func CloseLogFile() {
	logMu.Lock()
	defer logMu.Unlock()
	closeLogFileLocked()
}

// closeLogFileLocked closes the log file and resets the logger. Must be called with logMu held.
func closeLogFileLocked() {
	if logFileHandle == nil {
		return
	}
	_ = logFileHandle.Close()
	logFileHandle = nil

	var writers []io.Writer
	if consoleOut != nil {
		writers = append(writers, zerolog.ConsoleWriter{Out: consoleOut, TimeFormat: time.RFC3339})
	}
	Logger = newLogger(Logger.GetLevel(), writers...)
}

// GetLogger returns the global logger instance.
func GetLogger() zerolog.Logger {
	logMu.RLock()
	defer logMu.RUnlock()
	return Logger
}

// init installs an info-level stderr logger so packages can log before
// configuration is loaded.
//
//nolint:gochecknoinits // intentional: package-level logger must be initialized before use
func init() {
	_ = InitLogger(LoggingConfig{Level: DefaultLogLevel}, os.Stderr)
}
