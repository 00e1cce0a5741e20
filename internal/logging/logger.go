package logging

import (
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/VoidMesh/noise/internal/config"
)

var Logger *log.Logger

// LogLevel represents available log levels
type LogLevel string

const (
	DebugLevel LogLevel = "debug"
	InfoLevel  LogLevel = "info"
	WarnLevel  LogLevel = "warn"
	ErrorLevel LogLevel = "error"
)

// InitLogger initializes the global logger from the logging configuration.
// Output goes to stderr.
func InitLogger(cfg config.LoggingConfig) {
	InitLoggerWithWriter(os.Stderr, cfg)
}

// InitLoggerWithWriter is InitLogger with an explicit destination.
func InitLoggerWithWriter(w io.Writer, cfg config.LoggingConfig) {
	Logger = log.New(w)

	level := ParseLevel(cfg.Level)
	setLogLevel(Logger, level)

	switch strings.ToLower(cfg.Format) {
	case "json":
		Logger.SetFormatter(log.JSONFormatter)
	case "logfmt":
		Logger.SetFormatter(log.LogfmtFormatter)
	default:
		Logger.SetFormatter(log.TextFormatter)
	}

	if cfg.Format == "pretty" || !cfg.Structured {
		Logger.SetReportCaller(true)
	}
	Logger.SetReportTimestamp(true)
	Logger.SetPrefix("voidmesh-noise")

	// Route the package-level helpers (log.Info, log.Fatal) through the same logger.
	log.SetDefault(Logger)

	Logger.Debug("Logger initialized", "log_level", level, "format", cfg.Format)
}

// ParseLevel maps a configured level name onto a LogLevel, defaulting to info.
func ParseLevel(s string) LogLevel {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return DebugLevel
	case "info":
		return InfoLevel
	case "warn", "warning":
		return WarnLevel
	case "error":
		return ErrorLevel
	default:
		return InfoLevel
	}
}

// setLogLevel configures the logger with the specified level
func setLogLevel(logger *log.Logger, level LogLevel) {
	switch level {
	case DebugLevel:
		logger.SetLevel(log.DebugLevel)
	case InfoLevel:
		logger.SetLevel(log.InfoLevel)
	case WarnLevel:
		logger.SetLevel(log.WarnLevel)
	case ErrorLevel:
		logger.SetLevel(log.ErrorLevel)
	default:
		logger.SetLevel(log.InfoLevel)
	}
}

// GetLogger returns the global logger instance, creating a default one on
// first use.
func GetLogger() *log.Logger {
	if Logger == nil {
		InitLogger(config.LoggingConfig{Level: "info", Format: "text", Structured: true})
	}
	return Logger
}

// WithFields creates a logger with contextual fields
func WithFields(fields ...interface{}) *log.Logger {
	return GetLogger().With(fields...)
}

// WithComponent creates a logger tagged with the emitting component
func WithComponent(component string) *log.Logger {
	return WithFields("component", component)
}

// WithField creates a logger carrying a generated field's id
func WithField(fieldID string) *log.Logger {
	return WithFields("field_id", fieldID)
}

// WithDuration creates a logger with duration context (for performance logging)
func WithDuration(operation string, duration interface{}) *log.Logger {
	return WithFields("operation", operation, "duration", duration)
}
