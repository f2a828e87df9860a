/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: engine_test.go
Description: Tests for the detection engine. Covers ranking, tie handling, scorer
combination, error propagation, cancellation and the logging reporter.
*/

package detector_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kleascm/dialect-sniffer/pkg/detector"
	"github.com/kleascm/dialect-sniffer/pkg/dialect"
	"github.com/kleascm/dialect-sniffer/pkg/logging"
	"github.com/kleascm/dialect-sniffer/pkg/pattern"
)

const table = "a,b,c\nd,e,f\ng,h,i\n"

// constScorer returns the same value for every dialect
type constScorer struct {
	name  string
	value float64
}

func (s constScorer) Name() string { return s.name }

func (s constScorer) Score(context.Context, string, dialect.Dialect) (float64, error) {
	return s.value, nil
}

// failingScorer fails on one delimiter
type failingScorer struct {
	on  rune
	err error
}

func (s failingScorer) Name() string { return "failing" }

func (s failingScorer) Score(_ context.Context, _ string, d dialect.Dialect) (float64, error) {
	if d.Delimiter == s.on {
		return 0, s.err
	}
	return 1, nil
}

func TestDetectPicksTheDelimiter(t *testing.T) {
	engine := detector.NewEngine(detector.Options{})
	candidates := dialect.Candidates(table, dialect.CandidateOptions{})

	result, err := engine.Detect(context.Background(), table, candidates)
	require.NoError(t, err)

	assert.Equal(t, dialect.New(',', dialect.None, dialect.None), result.Best.Dialect)
	assert.InDelta(t, 2.0, result.Best.Score, 1e-9)
	assert.InDelta(t, 2.0, result.Best.Scores["pattern"], 1e-9)
	assert.False(t, result.Ambiguous)
	assert.Len(t, result.Ranked, len(candidates))
	assert.Equal(t, len(candidates), result.Candidates)
	assert.Equal(t, len(table), result.TextLength)
	assert.NotEmpty(t, result.RunID)
	assert.False(t, result.StartedAt.IsZero())
}

func TestDetectRankingIsDescending(t *testing.T) {
	text := "x;y;z\n1;2;3\n4,5;6\n"
	engine := detector.NewEngine(detector.Options{Workers: 3})

	result, err := engine.Detect(context.Background(), text, dialect.Candidates(text, dialect.CandidateOptions{}))
	require.NoError(t, err)
	for i := 1; i < len(result.Ranked); i++ {
		assert.GreaterOrEqual(t, result.Ranked[i-1].Score, result.Ranked[i].Score)
	}
	assert.Equal(t, ';', result.Best.Dialect.Delimiter)
}

func TestDetectMatchesAcrossWorkerCounts(t *testing.T) {
	text := "id|name|note\n1|\"a|b\"|x\n2|c|\"y\"\"z\"\n3|d|\n"
	candidates := dialect.Candidates(text, dialect.CandidateOptions{})

	sequential, err := detector.NewEngine(detector.Options{Workers: 1}).Detect(context.Background(), text, candidates)
	require.NoError(t, err)
	parallel, err := detector.NewEngine(detector.Options{Workers: 8}).Detect(context.Background(), text, candidates)
	require.NoError(t, err)

	assert.Equal(t, sequential.Ranked, parallel.Ranked)
	assert.NotEqual(t, sequential.RunID, parallel.RunID)
}

func TestDetectTiesAreAmbiguousAndDeterministic(t *testing.T) {
	// Without quotes in the text, the quote character does not change the score
	candidates := []dialect.Dialect{
		dialect.New(',', '"', dialect.None),
		dialect.New(',', dialect.None, dialect.None),
	}
	result, err := detector.NewEngine(detector.Options{}).Detect(context.Background(), table, candidates)
	require.NoError(t, err)

	assert.True(t, result.Ambiguous)
	assert.Equal(t, dialect.New(',', dialect.None, dialect.None), result.Best.Dialect)
	assert.Equal(t, result.Ranked[0].Score, result.Ranked[1].Score)
}

func TestDetectSingleCandidate(t *testing.T) {
	d := dialect.New('\t', dialect.None, dialect.None)
	result, err := detector.NewEngine(detector.Options{}).Detect(context.Background(), "a\tb\n", []dialect.Dialect{d})
	require.NoError(t, err)
	assert.Equal(t, d, result.Best.Dialect)
	assert.False(t, result.Ambiguous)
}

func TestDetectCombinesScorersByProduct(t *testing.T) {
	engine := detector.NewEngine(detector.Options{
		Scorers: []detector.Scorer{pattern.NewScorer(pattern.DefaultEps), constScorer{name: "half", value: 0.5}},
	})
	result, err := engine.Detect(context.Background(), table, []dialect.Dialect{dialect.New(',', dialect.None, dialect.None)})
	require.NoError(t, err)

	assert.InDelta(t, 1.0, result.Best.Score, 1e-9)
	require.Len(t, result.Best.Scores, 2)
	assert.InDelta(t, 2.0, result.Best.Scores["pattern"], 1e-9)
	assert.InDelta(t, 0.5, result.Best.Scores["half"], 1e-9)
}

func TestDetectErrors(t *testing.T) {
	engine := detector.NewEngine(detector.Options{})
	candidates := []dialect.Dialect{dialect.New(',', dialect.None, dialect.None)}

	_, err := engine.Detect(context.Background(), "", candidates)
	assert.ErrorIs(t, err, detector.ErrEmptyInput)

	_, err = engine.Detect(context.Background(), table, nil)
	assert.ErrorIs(t, err, detector.ErrNoCandidates)
}

func TestDetectPropagatesScorerErrors(t *testing.T) {
	boom := errors.New("boom")
	engine := detector.NewEngine(detector.Options{
		Scorers: []detector.Scorer{failingScorer{on: ';', err: boom}},
	})
	candidates := []dialect.Dialect{
		dialect.New(',', dialect.None, dialect.None),
		dialect.New(';', dialect.None, dialect.None),
	}

	result, err := engine.Detect(context.Background(), table, candidates)
	assert.Nil(t, result)
	require.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "failing")
}

func TestDetectHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := detector.NewEngine(detector.Options{}).Detect(ctx, table, dialect.Candidates(table, dialect.CandidateOptions{}))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewEngineDefaults(t *testing.T) {
	assert.Greater(t, detector.NewEngine(detector.Options{}).Workers(), 0)
	assert.Equal(t, 4, detector.NewEngine(detector.Options{Workers: 4}).Workers())
}

func TestRank(t *testing.T) {
	comma := dialect.New(',', dialect.None, dialect.None)
	semicolon := dialect.New(';', dialect.None, dialect.None)
	none := dialect.New(dialect.None, dialect.None, dialect.None)

	candidates := []detector.Candidate{
		{Dialect: semicolon, Score: 1},
		{Dialect: none, Score: 0.5},
		{Dialect: comma, Score: 1},
	}
	detector.Rank(candidates)

	assert.Equal(t, []dialect.Dialect{comma, semicolon, none}, []dialect.Dialect{
		candidates[0].Dialect, candidates[1].Dialect, candidates[2].Dialect,
	})
}

func TestResultTop(t *testing.T) {
	r := &detector.Result{Ranked: make([]detector.Candidate, 5)}
	assert.Len(t, r.Top(2), 2)
	assert.Len(t, r.Top(0), 5)
	assert.Len(t, r.Top(10), 5)
}

// newLogger returns a sniffer logger writing plain text to buf
func newLogger(t *testing.T, level logging.LogLevel, buf *bytes.Buffer) *logging.Logger {
	t.Helper()
	logger, err := logging.NewLoggerWithOutput(&logging.LoggerConfig{
		Level:  level,
		Format: logging.LogFormatText,
	}, buf)
	require.NoError(t, err)
	return logger
}

func TestLoggerReporter(t *testing.T) {
	var buf bytes.Buffer
	reporter := detector.NewLoggerReporter(newLogger(t, logging.LogLevelDebug, &buf))
	candidates := dialect.Candidates(table, dialect.CandidateOptions{})
	result, err := detector.NewEngine(detector.Options{Reporter: reporter}).Detect(context.Background(), table, candidates)
	require.NoError(t, err)

	assert.Equal(t, int64(len(candidates)), reporter.Scored())
	out := buf.String()
	assert.Equal(t, len(candidates), strings.Count(out, "Candidate scored"))
	assert.Contains(t, out, "Detection complete")
	assert.Contains(t, out, result.RunID)
}

func TestLoggerReporterWarnsOnTies(t *testing.T) {
	var buf bytes.Buffer
	reporter := detector.NewLoggerReporter(newLogger(t, logging.LogLevelWarning, &buf))

	reporter.OnDetectionComplete(&detector.Result{RunID: "run", Ambiguous: true})
	assert.Contains(t, buf.String(), "tied candidates")
	assert.Contains(t, buf.String(), "level=warning")

	buf.Reset()
	reporter.OnDetectionComplete(&detector.Result{RunID: "run"})
	assert.Empty(t, buf.String())
}
