/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: sniffer.go
Description: Public entry points of the dialect sniffer. Scores one dialect against a
text, or proposes candidate dialects and ranks them all.
*/

package sniffer

import (
	"context"

	"github.com/kleascm/dialect-sniffer/pkg/detector"
	"github.com/kleascm/dialect-sniffer/pkg/dialect"
	"github.com/kleascm/dialect-sniffer/pkg/pattern"
)

// Options configures Sniff
type Options struct {
	Eps        float64                  // Pattern weight floor, pattern.DefaultEps when zero
	Workers    int                      // Parallel scorers, 0 = one per CPU
	Candidates dialect.CandidateOptions // Restricts the proposed characters
	Reporter   detector.Reporter        // Optional event sink
}

// PatternScore returns the pattern consistency score of text under d.
func PatternScore(text string, d dialect.Dialect, eps float64) float64 {
	return pattern.Score(text, d, eps)
}

// Sniff proposes candidate dialects for text and ranks them by pattern score.
func Sniff(ctx context.Context, text string, opts Options) (*detector.Result, error) {
	if text == "" {
		return nil, detector.ErrEmptyInput
	}
	eps := opts.Eps
	if eps == 0 {
		eps = pattern.DefaultEps
	}
	engine := detector.NewEngine(detector.Options{
		Workers:  opts.Workers,
		Scorers:  []detector.Scorer{pattern.NewScorer(eps)},
		Reporter: opts.Reporter,
	})
	return engine.Detect(ctx, text, dialect.Candidates(text, opts.Candidates))
}
