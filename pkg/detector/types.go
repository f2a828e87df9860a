/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: types.go
Description: Core types for dialect detection. Defines the scorer contract, scored
candidates, detection results and the sentinel errors of the search.
*/

package detector

import (
	"context"
	"errors"
	"time"

	"github.com/kleascm/dialect-sniffer/pkg/dialect"
)

var (
	// ErrEmptyInput is returned when there is no text to score
	ErrEmptyInput = errors.New("input text is empty")
	// ErrNoCandidates is returned when no dialect was proposed
	ErrNoCandidates = errors.New("no candidate dialects")
	// ErrNoScorers is returned when the engine has nothing to score with
	ErrNoScorers = errors.New("no scorers configured")
)

// Scorer rates one dialect against a text.
// Implementations must be safe for concurrent use.
type Scorer interface {
	// Name identifies the scorer in reports and logs.
	Name() string
	// Score returns a non-negative rating, higher is more plausible.
	Score(ctx context.Context, text string, d dialect.Dialect) (float64, error)
}

// Candidate is a dialect together with its scores
type Candidate struct {
	Dialect dialect.Dialect    `json:"dialect" yaml:"dialect"`
	Score   float64            `json:"score" yaml:"score"`   // Product of all scorer results
	Scores  map[string]float64 `json:"scores" yaml:"scores"` // Per-scorer results
}

// Result is the outcome of one detection run
type Result struct {
	RunID      string        `json:"run_id" yaml:"run_id"`
	Best       Candidate     `json:"best" yaml:"best"`
	Ranked     []Candidate   `json:"ranked" yaml:"ranked"`       // Best first
	Ambiguous  bool          `json:"ambiguous" yaml:"ambiguous"` // Several candidates share the best score
	Candidates int           `json:"candidates" yaml:"candidates"`
	TextLength int           `json:"text_length" yaml:"text_length"` // In characters
	StartedAt  time.Time     `json:"started_at" yaml:"started_at"`
	Duration   time.Duration `json:"duration" yaml:"duration"`
}

// Top returns at most n best candidates
func (r *Result) Top(n int) []Candidate {
	if n <= 0 || n >= len(r.Ranked) {
		return r.Ranked
	}
	return r.Ranked[:n]
}
