/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: engine.go
Description: Detection engine. Scores every candidate dialect against a text with a
bounded pool of workers, combines the scorer results and ranks the candidates. Each
candidate is scored independently, so the search is an embarrassingly parallel map.
*/

package detector

import (
	"context"
	"fmt"
	"runtime"
	"sort"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/kleascm/dialect-sniffer/pkg/dialect"
	"github.com/kleascm/dialect-sniffer/pkg/pattern"
)

// Options configures an Engine
type Options struct {
	Workers  int      // Parallel scorers, 0 = runtime.NumCPU()
	Scorers  []Scorer // Combined by product, pattern scorer when empty
	Reporter Reporter // Event sink, NopReporter when nil
}

// Engine ranks candidate dialects for a text
type Engine struct {
	workers  int
	scorers  []Scorer
	reporter Reporter
}

// NewEngine creates an engine, filling in defaults for unset options
func NewEngine(opts Options) *Engine {
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	scorers := opts.Scorers
	if len(scorers) == 0 {
		scorers = []Scorer{pattern.NewScorer(pattern.DefaultEps)}
	}
	reporter := opts.Reporter
	if reporter == nil {
		reporter = NopReporter{}
	}
	return &Engine{
		workers:  workers,
		scorers:  scorers,
		reporter: reporter,
	}
}

// Workers returns the size of the scoring pool
func (e *Engine) Workers() int {
	return e.workers
}

// Detect scores all candidates against text and returns them ranked.
// The text must be non-empty; candidates must contain at least one dialect.
func (e *Engine) Detect(ctx context.Context, text string, candidates []dialect.Dialect) (*Result, error) {
	if text == "" {
		return nil, ErrEmptyInput
	}
	if len(candidates) == 0 {
		return nil, ErrNoCandidates
	}
	if len(e.scorers) == 0 {
		return nil, ErrNoScorers
	}

	result := &Result{
		RunID:      uuid.NewString(),
		Candidates: len(candidates),
		TextLength: utf8.RuneCountInString(text),
		StartedAt:  time.Now(),
	}

	scored := make([]Candidate, len(candidates))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)

	for i, d := range candidates {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			c, err := e.scoreCandidate(gctx, text, d)
			if err != nil {
				return err
			}
			scored[i] = c
			e.reporter.OnCandidateScored(result.RunID, c)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("detection %s failed: %w", result.RunID, err)
	}

	Rank(scored)
	result.Ranked = scored
	result.Best = scored[0]
	result.Ambiguous = len(scored) > 1 && scored[1].Score == scored[0].Score
	result.Duration = time.Since(result.StartedAt)

	e.reporter.OnDetectionComplete(result)
	return result, nil
}

// scoreCandidate runs every scorer on one dialect and multiplies the results
func (e *Engine) scoreCandidate(ctx context.Context, text string, d dialect.Dialect) (Candidate, error) {
	c := Candidate{
		Dialect: d,
		Score:   1,
		Scores:  make(map[string]float64, len(e.scorers)),
	}
	for _, s := range e.scorers {
		v, err := s.Score(ctx, text, d)
		if err != nil {
			return Candidate{}, fmt.Errorf("scorer %s on %s: %w", s.Name(), d, err)
		}
		c.Scores[s.Name()] = v
		c.Score *= v
	}
	return c, nil
}

// Rank orders candidates by descending score. Equal scores keep dialect order,
// so the ranking is reproducible regardless of scoring order.
func Rank(candidates []Candidate) {
	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].Score != candidates[j].Score {
			return candidates[i].Score > candidates[j].Score
		}
		return candidates[i].Dialect.Less(candidates[j].Dialect)
	})
}
