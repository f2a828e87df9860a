/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: utils.go
Description: Log file management for the dialect sniffer. Keeps the log directory
bounded and reports on the files it holds.
*/

package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"
)

// LogManager keeps the number of log files in a directory bounded
type LogManager struct {
	logDir   string
	maxFiles int
}

// LogStats describes the log files in a directory
type LogStats struct {
	TotalFiles int       `json:"total_files"`
	TotalSize  int64     `json:"total_size"`
	OldestFile time.Time `json:"oldest_file"`
	NewestFile time.Time `json:"newest_file"`
}

// NewLogManager creates a new log manager
func NewLogManager(logDir string, maxFiles int) *LogManager {
	return &LogManager{
		logDir:   logDir,
		maxFiles: maxFiles,
	}
}

func (lm *LogManager) files() ([]string, error) {
	files, err := filepath.Glob(filepath.Join(lm.logDir, filePrefix+"*.log"))
	if err != nil {
		return nil, fmt.Errorf("failed to glob log files: %w", err)
	}
	return files, nil
}

// CleanupOldLogs removes the oldest log files beyond the retention limit
func (lm *LogManager) CleanupOldLogs() error {
	files, err := lm.files()
	if err != nil {
		return err
	}
	if len(files) <= lm.maxFiles {
		return nil
	}

	// Timestamped names sort oldest first
	sort.Strings(files)

	for _, file := range files[:len(files)-lm.maxFiles] {
		if err := os.Remove(file); err != nil {
			return fmt.Errorf("failed to remove file %s: %w", file, err)
		}
	}
	return nil
}

// GetLogStats returns statistics about log files
func (lm *LogManager) GetLogStats() (*LogStats, error) {
	files, err := lm.files()
	if err != nil {
		return nil, err
	}

	stats := &LogStats{TotalFiles: len(files)}
	for _, file := range files {
		info, err := os.Stat(file)
		if err != nil {
			continue
		}
		stats.TotalSize += info.Size()
		if stats.OldestFile.IsZero() || info.ModTime().Before(stats.OldestFile) {
			stats.OldestFile = info.ModTime()
		}
		if info.ModTime().After(stats.NewestFile) {
			stats.NewestFile = info.ModTime()
		}
	}
	return stats, nil
}
