// Package output provides terminal output utilities.
package output

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// logger is the global logger instance.
var logger *log.Logger

func init() {
	logger = log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: false,
		ReportCaller:    false,
	})
}

// LogConfig holds the resolved logging settings.
type LogConfig struct {
	// Verbose enables debug output, timestamps and caller information.
	Verbose bool

	// Timestamps overrides timestamp reporting. Nil means off unless Verbose.
	Timestamps *bool
}

func (c LogConfig) timestamps() bool {
	if c.Verbose {
		return true
	}
	if c.Timestamps != nil {
		return *c.Timestamps
	}
	return false
}

// SetupLogging configures the global logger.
func SetupLogging(cfg LogConfig) {
	setupLogging(os.Stderr, cfg)
}

func setupLogging(w io.Writer, cfg LogConfig) {
	level := log.InfoLevel
	if cfg.Verbose {
		level = log.DebugLevel
	}

	logger = log.NewWithOptions(w, log.Options{
		Level:           level,
		ReportTimestamp: cfg.timestamps(),
		ReportCaller:    cfg.Verbose,
		TimeFormat:      "15:04:05",
	})
}

// Logger returns the global logger.
func Logger() *log.Logger {
	return logger
}

// StageLogger returns a child logger prefixed with a generation stage name.
func StageLogger(stage string) *log.Logger {
	return logger.WithPrefix(StyleDim.Render("[" + stage + "]"))
}

// BoolPtr returns a pointer to b.
func BoolPtr(b bool) *bool {
	return &b
}

// Debug logs a debug message.
func Debug(msg string, keyvals ...interface{}) {
	logger.Debug(msg, keyvals...)
}

// Info logs an info message.
func Info(msg string, keyvals ...interface{}) {
	logger.Info(msg, keyvals...)
}

// Warn logs a warning message.
func Warn(msg string, keyvals ...interface{}) {
	logger.Warn(msg, keyvals...)
}

// Error logs an error message.
func Error(msg string, keyvals ...interface{}) {
	logger.Error(msg, keyvals...)
}

// Print prints a message to stdout without any formatting.
func Print(msg string) {
	os.Stdout.WriteString(msg)
}

// Println prints a message to stdout with a newline.
func Println(msg string) {
	os.Stdout.WriteString(msg + "\n")
}
