/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: report.go
Description: Detection reports. Renders detection results as a ranking table, JSON
or YAML, and writes timestamped report files for later comparison.
*/

package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/kleascm/dialect-sniffer/pkg/detector"
)

// Format selects the rendering of a report
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ErrUnknownFormat is returned for unsupported report formats
var ErrUnknownFormat = errors.New("unknown report format")

// ParseFormat validates a format name
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatText, FormatJSON, FormatYAML:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// Extension returns the file extension used for the format
func (f Format) Extension() string {
	if f == FormatText {
		return "txt"
	}
	return string(f)
}

// view limits a result to its top candidates without touching the original
func view(result *detector.Result, top int) *detector.Result {
	v := *result
	v.Ranked = result.Top(top)
	return &v
}

// WriteResult renders result to w, listing at most top candidates (0 = all)
func WriteResult(w io.Writer, result *detector.Result, format Format, top int) error {
	return Encode(w, view(result, top), format)
}

// Encode renders any value as JSON or YAML, and detection results also as text
func Encode(w io.Writer, v interface{}, format Format) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	case FormatText:
		if result, ok := v.(*detector.Result); ok {
			return writeText(w, result)
		}
		_, err := fmt.Fprintf(w, "%v\n", v)
		return err
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// writeText prints the best dialect followed by the ranking table
func writeText(w io.Writer, result *detector.Result) error {
	fmt.Fprintf(w, "Detected dialect: %s\n", result.Best.Dialect)
	fmt.Fprintf(w, "Score: %.6f\n", result.Best.Score)
	if result.Ambiguous {
		fmt.Fprintln(w, "Warning: several dialects share the best score")
	}
	fmt.Fprintf(w, "Candidates: %d, characters: %d, run %s in %v\n\n",
		result.Candidates, result.TextLength, result.RunID, result.Duration)

	t := NewTable()
	t.Header("Rank", "Score", "Dialect")
	t.Align(1, AlignRight)
	t.Align(2, AlignRight)
	for i, c := range result.Ranked {
		t.Row(i+1, fmt.Sprintf("%.6f", c.Score), c.Dialect.String())
	}
	_, err := fmt.Fprintln(w, t.String())
	return err
}

// WriteFile writes the report to dir with a timestamped name and returns its path
func WriteFile(dir string, name string, result *detector.Result, format Format, top int) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create report directory: %w", err)
	}

	// Generate filename: 2024-06-11_01-30-00_data.csv_1a2b3c4d.json
	timestamp := time.Now().Format("2006-01-02_15-04-05")
	runID := result.RunID
	if len(runID) > 8 {
		runID = runID[:8]
	}
	filename := fmt.Sprintf("%s_%s_%s.%s", timestamp, filepath.Base(name), runID, format.Extension())
	path := filepath.Join(dir, filename)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create report file: %w", err)
	}

	if err := WriteResult(f, result, format, top); err != nil {
		f.Close()
		return "", fmt.Errorf("failed to write report: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to close report file: %w", err)
	}
	return path, nil
}
