/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: reporter.go
Description: Reporter interface and implementations for detection telemetry.
Lets callers observe every scored candidate and the final ranking.
*/

package detector

import (
	"sync/atomic"

	"github.com/kleascm/dialect-sniffer/pkg/logging"
)

// Reporter receives detection events. Implementations must be safe for
// concurrent use since candidates are scored in parallel.
type Reporter interface {
	// OnCandidateScored is called after every candidate has been scored.
	OnCandidateScored(runID string, c Candidate)
	// OnDetectionComplete is called once with the final result.
	OnDetectionComplete(result *Result)
}

// NopReporter discards all events
type NopReporter struct{}

// OnCandidateScored does nothing
func (NopReporter) OnCandidateScored(string, Candidate) {}

// OnDetectionComplete does nothing
func (NopReporter) OnDetectionComplete(*Result) {}

// LoggerReporter logs detection events through the sniffer logger
type LoggerReporter struct {
	logger *logging.Logger
	scored atomic.Int64
}

// NewLoggerReporter creates a new LoggerReporter.
func NewLoggerReporter(logger *logging.Logger) *LoggerReporter {
	return &LoggerReporter{logger: logger}
}

// OnCandidateScored logs each candidate at debug level.
func (r *LoggerReporter) OnCandidateScored(runID string, c Candidate) {
	r.scored.Add(1)
	r.logger.LogCandidate(runID, c.Dialect.String(), c.Score, nil)
}

// OnDetectionComplete logs the winning dialect.
func (r *LoggerReporter) OnDetectionComplete(result *Result) {
	r.logger.LogDetection(result.RunID, result.Best.Dialect.String(), result.Best.Score,
		result.Candidates, result.Duration, result.Ambiguous, nil)
}

// Scored returns how many candidate events have been seen
func (r *LoggerReporter) Scored() int64 {
	return r.scored.Load()
}
