/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: formatter.go
Description: Custom log formatters for the dialect sniffer. Compact single-line output
with optional colours, and a sniffer variant that tags detection events.
*/

package logging

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// CustomFormatter renders one line per entry with sorted fields
type CustomFormatter struct {
	Timestamp bool
	Caller    bool
	Colors    bool
}

// Format implements logrus.Formatter
func (f *CustomFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	return f.format(entry, "", f.formatValue), nil
}

func (f *CustomFormatter) format(entry *logrus.Entry, prefix string, value func(string, interface{}) string) []byte {
	var output strings.Builder

	if f.Timestamp {
		f.write(&output, 36, entry.Time.Format("2006-01-02 15:04:05.000")) // Cyan
	}

	f.write(&output, f.getLevelColor(entry.Level), strings.ToUpper(entry.Level.String()))

	if prefix != "" {
		f.write(&output, 35, "["+prefix+"]") // Magenta
	}

	if f.Caller && entry.HasCaller() {
		f.write(&output, 33, fmt.Sprintf("[%s:%d]", entry.Caller.File, entry.Caller.Line)) // Yellow
	}

	output.WriteString(entry.Message)

	if len(entry.Data) > 0 {
		output.WriteString(" ")
		output.WriteString(f.formatFields(entry.Data, value))
	}

	output.WriteString("\n")
	return []byte(output.String())
}

// write appends s and a space, coloured when enabled
func (f *CustomFormatter) write(b *strings.Builder, color int, s string) {
	if f.Colors {
		fmt.Fprintf(b, "\033[%dm%s\033[0m ", color, s)
		return
	}
	b.WriteString(s)
	b.WriteString(" ")
}

// getLevelColor returns the ANSI color code for a log level
func (f *CustomFormatter) getLevelColor(level logrus.Level) int {
	switch level {
	case logrus.DebugLevel, logrus.TraceLevel:
		return 37 // White
	case logrus.InfoLevel:
		return 32 // Green
	case logrus.WarnLevel:
		return 33 // Yellow
	case logrus.ErrorLevel:
		return 31 // Red
	default:
		return 35 // Magenta
	}
}

// formatFields renders fields as key=value pairs in key order
func (f *CustomFormatter) formatFields(fields logrus.Fields, value func(string, interface{}) string) string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		formatted := value(key, fields[key])
		if f.Colors {
			parts = append(parts, fmt.Sprintf("\033[34m%s\033[0m=\033[32m%s\033[0m", key, formatted)) // Blue key, Green value
		} else {
			parts = append(parts, fmt.Sprintf("%s=%s", key, formatted))
		}
	}
	return strings.Join(parts, " ")
}

// formatValue formats a field value appropriately
func (f *CustomFormatter) formatValue(_ string, value interface{}) string {
	switch v := value.(type) {
	case time.Duration:
		return v.String()
	case time.Time:
		return v.Format("15:04:05.000")
	case float64:
		return fmt.Sprintf("%.6g", v)
	case string:
		if len(v) > 50 {
			return fmt.Sprintf("%s...", v[:50])
		}
		return v
	case error:
		return v.Error()
	default:
		return fmt.Sprintf("%v", v)
	}
}

// SnifferFormatter tags detection events with a short prefix
type SnifferFormatter struct {
	CustomFormatter
}

// Format implements logrus.Formatter
func (f *SnifferFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	return f.format(entry, f.getPrefix(entry.Message), f.formatSnifferValue), nil
}

// getPrefix returns a prefix based on the log message
func (f *SnifferFormatter) getPrefix(message string) string {
	switch {
	case strings.Contains(message, "Candidate scored"):
		return "SCORE"
	case strings.Contains(message, "Detection complete"):
		return "DETECT"
	case strings.Contains(message, "Statistics update"):
		return "STATS"
	case strings.Contains(message, "Input"):
		return "INPUT"
	default:
		return ""
	}
}

// formatSnifferValue shortens run identifiers and rounds rates
func (f *SnifferFormatter) formatSnifferValue(key string, value interface{}) string {
	switch key {
	case "run_id":
		if s, ok := value.(string); ok && len(s) > 8 {
			return s[:8]
		}
	case "candidates_per_sec":
		if r, ok := value.(float64); ok {
			return fmt.Sprintf("%.2f/sec", r)
		}
	}
	return f.formatValue(key, value)
}
