/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: logger_test.go
Description: Tests for the logging system. Tests logger creation, levels, formats,
file output with retention and the sniffer formatter.
*/

package logging_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kleascm/dialect-sniffer/pkg/logging"
)

// TestLoggerCreation tests logger creation with default and custom configurations
func TestLoggerCreation(t *testing.T) {
	logger, err := logging.NewLogger(nil)
	require.NoError(t, err)
	assert.NotNil(t, logger)
	assert.Empty(t, logger.FilePath())
	assert.NoError(t, logger.Close())

	logger, err = logging.NewLoggerWithOutput(&logging.LoggerConfig{
		Level:     logging.LogLevelDebug,
		Format:    logging.LogFormatJSON,
		OutputDir: t.TempDir(),
		MaxFiles:  5,
		Timestamp: true,
		Caller:    true,
	}, &bytes.Buffer{})
	require.NoError(t, err)
	assert.NotEmpty(t, logger.FilePath())
	assert.NoError(t, logger.Close())
}

// TestConfigValidation tests that invalid configurations are rejected
func TestConfigValidation(t *testing.T) {
	require.NoError(t, logging.DefaultConfig().Validate())

	bad := []*logging.LoggerConfig{
		{Level: "loud", Format: logging.LogFormatText},
		{Level: logging.LogLevelInfo, Format: "xml"},
		{Level: logging.LogLevelInfo, Format: logging.LogFormatText, OutputDir: "logs", MaxFiles: 0},
	}
	for _, cfg := range bad {
		assert.Error(t, cfg.Validate())
		_, err := logging.NewLoggerWithOutput(cfg, &bytes.Buffer{})
		assert.Error(t, err)
	}
}

// TestLogLevels tests that entries below the configured level are dropped
func TestLogLevels(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.NewLoggerWithOutput(&logging.LoggerConfig{
		Level:  logging.LogLevelWarning,
		Format: logging.LogFormatCustom,
	}, &buf)
	require.NoError(t, err)
	defer logger.Close()

	logger.Debug("Debug message", map[string]interface{}{"key": "value"})
	logger.Info("Info message", map[string]interface{}{"key": "value"})
	logger.Warning("Warning message", map[string]interface{}{"key": "value"})
	logger.Error("Error message", map[string]interface{}{"key": "value"})

	out := buf.String()
	assert.NotContains(t, out, "Debug message")
	assert.NotContains(t, out, "Info message")
	assert.Contains(t, out, "WARNING Warning message key=value")
	assert.Contains(t, out, "ERROR Error message key=value")
}

// TestLogFormats tests every supported format
func TestLogFormats(t *testing.T) {
	formats := []logging.LogFormat{
		logging.LogFormatText,
		logging.LogFormatJSON,
		logging.LogFormatCustom,
		logging.LogFormatSniffer,
	}

	for _, format := range formats {
		t.Run(string(format), func(t *testing.T) {
			var buf bytes.Buffer
			logger, err := logging.NewLoggerWithOutput(&logging.LoggerConfig{
				Level:  logging.LogLevelDebug,
				Format: format,
			}, &buf)
			require.NoError(t, err)
			defer logger.Close()

			logger.LogDetection("run-1", "delimiter=','", 1.5, 12, 3*time.Millisecond, false, nil)
			assert.Contains(t, buf.String(), "Detection complete")
		})
	}
}

// TestJSONFormat tests that JSON output carries the detection fields
func TestJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.NewLoggerWithOutput(&logging.LoggerConfig{
		Level:  logging.LogLevelDebug,
		Format: logging.LogFormatJSON,
	}, &buf)
	require.NoError(t, err)
	defer logger.Close()

	logger.LogCandidate("run-2", "delimiter=';'", 0.75, map[string]interface{}{"worker": 3})

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "Candidate scored", entry["msg"])
	assert.Equal(t, "run-2", entry["run_id"])
	assert.Equal(t, 0.75, entry["score"])
	assert.Equal(t, float64(3), entry["worker"])
}

// TestFileOutput tests that entries reach the log file as well as the console
func TestFileOutput(t *testing.T) {
	dir := t.TempDir()
	var console bytes.Buffer
	logger, err := logging.NewLoggerWithOutput(&logging.LoggerConfig{
		Level:     logging.LogLevelInfo,
		Format:    logging.LogFormatText,
		OutputDir: dir,
		MaxFiles:  3,
	}, &console)
	require.NoError(t, err)

	logger.LogStats(40, 1000, 2*time.Second, map[string]interface{}{"run_id": "abc"})
	logger.Info("Input loaded", map[string]interface{}{"chars": 1000})
	path := logger.FilePath()
	require.NoError(t, logger.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Input loaded")
	assert.Contains(t, console.String(), "Input loaded")
	assert.True(t, strings.HasPrefix(filepath.Base(path), "dialect-sniffer_"))
}

// TestLogRetention tests that Close removes the oldest files beyond MaxFiles
func TestLogRetention(t *testing.T) {
	dir := t.TempDir()
	old := []string{
		"dialect-sniffer_2000-01-01_00-00-00.000.log",
		"dialect-sniffer_2000-01-02_00-00-00.000.log",
	}
	for _, name := range old {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("old\n"), 0644))
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "unrelated.log"), []byte("keep\n"), 0644))

	logger, err := logging.NewLoggerWithOutput(&logging.LoggerConfig{
		Level:     logging.LogLevelInfo,
		Format:    logging.LogFormatCustom,
		OutputDir: dir,
		MaxFiles:  2,
	}, &bytes.Buffer{})
	require.NoError(t, err)
	current := logger.FilePath()
	require.NoError(t, logger.Close())

	assert.NoFileExists(t, filepath.Join(dir, old[0]))
	assert.FileExists(t, filepath.Join(dir, old[1]))
	assert.FileExists(t, current)
	assert.FileExists(t, filepath.Join(dir, "unrelated.log"))

	stats, err := logging.NewLogManager(dir, 2).GetLogStats()
	require.NoError(t, err)
	assert.Equal(t, 2, stats.TotalFiles)
	assert.Positive(t, stats.TotalSize)
}

// TestCloseLogsRetainedFiles tests that Close reports the kept log files and
// leaves console logging usable
func TestCloseLogsRetainedFiles(t *testing.T) {
	dir := t.TempDir()
	var console bytes.Buffer
	logger, err := logging.NewLoggerWithOutput(&logging.LoggerConfig{
		Level:     logging.LogLevelDebug,
		Format:    logging.LogFormatText,
		OutputDir: dir,
		MaxFiles:  3,
	}, &console)
	require.NoError(t, err)
	path := logger.FilePath()
	require.NoError(t, logger.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Log files retained")
	assert.Contains(t, string(data), "files=1")
	assert.Contains(t, console.String(), "Log files retained")

	logger.Info("after close", nil)
	assert.Contains(t, console.String(), "after close")
	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "after close")

	assert.NoError(t, logger.Close())
}

// TestSnifferFormatter tests event prefixes and shortened run identifiers
func TestSnifferFormatter(t *testing.T) {
	f := &logging.SnifferFormatter{}
	entry := logrus.NewEntry(logrus.New())
	entry.Level = logrus.InfoLevel
	entry.Message = "Candidate scored"
	entry.Data = logrus.Fields{"run_id": "1234567890abcdef", "score": 0.5}

	out, err := f.Format(entry)
	require.NoError(t, err)
	assert.Equal(t, "INFO [SCORE] Candidate scored run_id=12345678 score=0.5\n", string(out))

	entry.Message = "Statistics update"
	entry.Data = logrus.Fields{"candidates_per_sec": 1234.5678}
	out, err = f.Format(entry)
	require.NoError(t, err)
	assert.Equal(t, "INFO [STATS] Statistics update candidates_per_sec=1234.57/sec\n", string(out))
}

// TestCustomFormatter tests plain single-line output with sorted fields
func TestCustomFormatter(t *testing.T) {
	f := &logging.CustomFormatter{}
	entry := logrus.NewEntry(logrus.New())
	entry.Level = logrus.WarnLevel
	entry.Message = "Ambiguous"
	entry.Data = logrus.Fields{"z": 1, "a": "x", "d": 1500 * time.Millisecond}

	out, err := f.Format(entry)
	require.NoError(t, err)
	assert.Equal(t, "WARNING Ambiguous a=x d=1.5s z=1\n", string(out))
}
