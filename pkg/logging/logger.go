/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: logger.go
Description: Logging system for the dialect sniffer. Wraps logrus with a validated
configuration, text/JSON/custom formats and an optional timestamped log file. Console
output goes to stderr so reports on stdout stay machine readable.
*/

package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"
)

// LogLevel represents the logging level
type LogLevel string

const (
	LogLevelDebug   LogLevel = "debug"
	LogLevelInfo    LogLevel = "info"
	LogLevelWarning LogLevel = "warn"
	LogLevelError   LogLevel = "error"
)

// LogFormat represents the logging format
type LogFormat string

const (
	LogFormatJSON    LogFormat = "json"
	LogFormatText    LogFormat = "text"
	LogFormatCustom  LogFormat = "custom"
	LogFormatSniffer LogFormat = "sniffer"
)

// filePrefix names the log files written to OutputDir
const filePrefix = "dialect-sniffer_"

// LoggerConfig holds the configuration for the logger
type LoggerConfig struct {
	Level     LogLevel  `mapstructure:"level" json:"level"`
	Format    LogFormat `mapstructure:"format" json:"format"`
	OutputDir string    `mapstructure:"output_dir" json:"output_dir"` // Empty = console only
	MaxFiles  int       `mapstructure:"max_files" json:"max_files"`
	Timestamp bool      `mapstructure:"timestamp" json:"timestamp"`
	Caller    bool      `mapstructure:"caller" json:"caller"`
	Colors    bool      `mapstructure:"colors" json:"colors"`
}

// DefaultConfig returns the console-only configuration used when none is given
func DefaultConfig() *LoggerConfig {
	return &LoggerConfig{
		Level:     LogLevelWarning,
		Format:    LogFormatCustom,
		MaxFiles:  10,
		Timestamp: true,
	}
}

// Validate checks the LoggerConfig for invalid or missing values.
// Returns an error if the config is invalid, or nil if valid.
func (c *LoggerConfig) Validate() error {
	if c.OutputDir != "" && c.MaxFiles <= 0 {
		return fmt.Errorf("max_files must be positive when output_dir is set")
	}
	switch c.Format {
	case LogFormatJSON, LogFormatText, LogFormatCustom, LogFormatSniffer:
		// ok
	default:
		return fmt.Errorf("unsupported log format: %s", c.Format)
	}
	switch c.Level {
	case LogLevelDebug, LogLevelInfo, LogLevelWarning, LogLevelError:
		// ok
	default:
		return fmt.Errorf("unsupported log level: %s", c.Level)
	}
	return nil
}

// Logger provides structured logging for detection runs
type Logger struct {
	config     *LoggerConfig
	logger     *logrus.Logger
	manager    *LogManager
	console    io.Writer
	fileHandle *os.File
	filePath   string
	startTime  time.Time
}

// NewLogger creates a new logger instance writing to stderr
func NewLogger(config *LoggerConfig) (*Logger, error) {
	return NewLoggerWithOutput(config, os.Stderr)
}

// NewLoggerWithOutput creates a logger whose console output goes to console
func NewLoggerWithOutput(config *LoggerConfig, console io.Writer) (*Logger, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid logger config: %w", err)
	}

	l := &Logger{
		config:    config,
		logger:    logrus.New(),
		console:   console,
		startTime: time.Now(),
	}
	l.logger.SetOutput(console)

	if err := l.setup(console); err != nil {
		return nil, fmt.Errorf("failed to setup logger: %w", err)
	}
	return l, nil
}

// setup configures the logger with the given configuration
func (l *Logger) setup(console io.Writer) error {
	level, err := logrus.ParseLevel(string(l.config.Level))
	if err != nil {
		level = logrus.WarnLevel
	}
	l.logger.SetLevel(level)
	l.logger.SetReportCaller(l.config.Caller)

	if err := l.setFormatter(); err != nil {
		return err
	}
	return l.setupFileOutput(console)
}

// setFormatter configures the log formatter
func (l *Logger) setFormatter() error {
	callerPrettyfier := func(f *runtime.Frame) (string, string) {
		return "", fmt.Sprintf("%s:%d", filepath.Base(f.File), f.Line)
	}

	switch l.config.Format {
	case LogFormatJSON:
		l.logger.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat:  time.RFC3339,
			DisableTimestamp: !l.config.Timestamp,
			CallerPrettyfier: callerPrettyfier,
		})
	case LogFormatText:
		l.logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:    l.config.Timestamp,
			DisableTimestamp: !l.config.Timestamp,
			TimestampFormat:  time.RFC3339,
			ForceColors:      l.config.Colors,
			DisableColors:    !l.config.Colors,
			CallerPrettyfier: callerPrettyfier,
		})
	case LogFormatCustom:
		l.logger.SetFormatter(&CustomFormatter{
			Timestamp: l.config.Timestamp,
			Caller:    l.config.Caller,
			Colors:    l.config.Colors,
		})
	case LogFormatSniffer:
		l.logger.SetFormatter(&SnifferFormatter{
			CustomFormatter: CustomFormatter{
				Timestamp: l.config.Timestamp,
				Caller:    l.config.Caller,
				Colors:    l.config.Colors,
			},
		})
	default:
		return fmt.Errorf("unsupported log format: %s", l.config.Format)
	}
	return nil
}

// setupFileOutput adds a timestamped log file next to the console output
func (l *Logger) setupFileOutput(console io.Writer) error {
	if l.config.OutputDir == "" {
		return nil
	}

	if err := os.MkdirAll(l.config.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}

	timestamp := l.startTime.Format("2006-01-02_15-04-05.000")
	l.filePath = filepath.Join(l.config.OutputDir, fmt.Sprintf("%s%s.log", filePrefix, timestamp))

	file, err := os.OpenFile(l.filePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	l.fileHandle = file
	l.manager = NewLogManager(l.config.OutputDir, l.config.MaxFiles)
	l.logger.SetOutput(io.MultiWriter(console, file))

	l.logger.WithFields(logrus.Fields{
		"log_file": l.filePath,
		"level":    l.config.Level,
		"format":   l.config.Format,
	}).Debug("Logging system initialized")
	return nil
}

// Sniffer-specific logging methods

// LogCandidate logs a scored candidate dialect
func (l *Logger) LogCandidate(runID string, dialect string, score float64, fields map[string]interface{}) {
	if fields == nil {
		fields = make(map[string]interface{})
	}
	fields["run_id"] = runID
	fields["dialect"] = dialect
	fields["score"] = score

	l.logger.WithFields(fields).Debug("Candidate scored")
}

// LogDetection logs the outcome of a detection run. Ties for the best score
// are logged at warn level.
func (l *Logger) LogDetection(runID string, dialect string, score float64, candidates int, duration time.Duration, ambiguous bool, fields map[string]interface{}) {
	if fields == nil {
		fields = make(map[string]interface{})
	}
	fields["run_id"] = runID
	fields["dialect"] = dialect
	fields["score"] = score
	fields["candidates"] = candidates
	fields["duration"] = duration

	entry := l.logger.WithFields(fields)
	if ambiguous {
		entry.Warn("Detection complete with tied candidates")
		return
	}
	entry.Info("Detection complete")
}

// LogStats logs throughput for a finished run
func (l *Logger) LogStats(candidates int, chars int, elapsed time.Duration, fields map[string]interface{}) {
	if fields == nil {
		fields = make(map[string]interface{})
	}
	fields["candidates"] = candidates
	fields["chars"] = chars
	fields["elapsed"] = elapsed
	if secs := elapsed.Seconds(); secs > 0 {
		fields["candidates_per_sec"] = float64(candidates) / secs
	}
	fields["uptime"] = time.Since(l.startTime)

	l.logger.WithFields(fields).Debug("Statistics update")
}

// Close removes log files beyond MaxFiles, logs what is left and closes
// the log file. Console logging keeps working afterwards.
func (l *Logger) Close() error {
	if l.fileHandle == nil {
		return nil
	}

	var firstErr error
	if err := l.manager.CleanupOldLogs(); err != nil {
		firstErr = fmt.Errorf("failed to cleanup log files: %w", err)
	} else if stats, err := l.manager.GetLogStats(); err == nil {
		l.logger.WithFields(logrus.Fields{
			"files":  stats.TotalFiles,
			"bytes":  stats.TotalSize,
			"oldest": stats.OldestFile,
		}).Debug("Log files retained")
	}

	l.logger.SetOutput(l.console)
	if err := l.fileHandle.Close(); err != nil && firstErr == nil {
		firstErr = fmt.Errorf("failed to close log file: %w", err)
	}
	l.fileHandle = nil
	return firstErr
}

// GetLogger returns the underlying logrus logger
func (l *Logger) GetLogger() *logrus.Logger {
	return l.logger
}

// FilePath returns the current log file, empty when logging to console only
func (l *Logger) FilePath() string {
	return l.filePath
}

// Debug logs a debug message
func (l *Logger) Debug(msg string, fields map[string]interface{}) {
	l.logger.WithFields(fields).Debug(msg)
}

// Info logs an info message
func (l *Logger) Info(msg string, fields map[string]interface{}) {
	l.logger.WithFields(fields).Info(msg)
}

// Warning logs a warning message
func (l *Logger) Warning(msg string, fields map[string]interface{}) {
	l.logger.WithFields(fields).Warn(msg)
}

// Error logs an error message
func (l *Logger) Error(msg string, fields map[string]interface{}) {
	l.logger.WithFields(fields).Error(msg)
}
