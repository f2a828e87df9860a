/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: score.go
Description: Pattern consistency score. Rates how uniformly the rows of a text are
shaped under one dialect: each distinct row pattern contributes its count weighted by
(L-1)/L for L cells, floored at eps, and the sum is averaged over distinct patterns.
*/

package pattern

import (
	"context"
	"math"

	"github.com/kleascm/dialect-sniffer/pkg/abstraction"
	"github.com/kleascm/dialect-sniffer/pkg/dialect"
)

// DefaultEps is the weight floor for single-cell row patterns
const DefaultEps = 1e-3

// Score computes the pattern score of text under d.
// Higher means the rows agree more on their structure.
func Score(text string, d dialect.Dialect, eps float64) float64 {
	return ScoreAbstraction(abstraction.Make(text, d), eps)
}

// ScoreAbstraction computes the pattern score of a finished abstraction.
func ScoreAbstraction(a abstraction.Abstraction, eps float64) float64 {
	return ScoreHistogram(NewHistogram(a), eps)
}

// ScoreHistogram averages the pattern weights over the distinct patterns.
// The denominator counts distinct shapes, not rows: repeating a known shape
// raises the score, adding a new shape lowers it.
func ScoreHistogram(h *Histogram, eps float64) float64 {
	if h.Len() == 0 {
		return math.NaN()
	}
	total := 0.0
	for _, e := range h.entries {
		total += Weight(e.Pattern, e.Count, eps)
	}
	return total / float64(h.Len())
}

// Weight is count × max(eps, (L-1)/L) where L is the cell count of p
func Weight(p abstraction.RowPattern, count int, eps float64) float64 {
	l := float64(p.CellCount())
	return float64(count) * math.Max(eps, (l-1)/l)
}

// Scorer adapts the pattern score to the detector's scorer contract
type Scorer struct {
	Eps float64 // Weight floor, DefaultEps when zero
}

// NewScorer creates a pattern scorer with the given floor
func NewScorer(eps float64) *Scorer {
	return &Scorer{Eps: eps}
}

// Name identifies the scorer in reports
func (s *Scorer) Name() string {
	return "pattern"
}

// Score implements the detector scorer contract. It never fails.
func (s *Scorer) Score(_ context.Context, text string, d dialect.Dialect) (float64, error) {
	eps := s.Eps
	if eps == 0 {
		eps = DefaultEps
	}
	return Score(text, d, eps), nil
}
