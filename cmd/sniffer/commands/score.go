/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: score.go
Description: Score and abstract command implementations. Score prints the pattern
score of one dialect; abstract shows the abstraction and row pattern histogram the
score is computed from.
*/

package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/kleascm/dialect-sniffer/pkg/abstraction"
	"github.com/kleascm/dialect-sniffer/pkg/detector"
	"github.com/kleascm/dialect-sniffer/pkg/dialect"
	"github.com/kleascm/dialect-sniffer/pkg/pattern"
	"github.com/kleascm/dialect-sniffer/pkg/report"
)

// ScoreReport is the output of the score command
type ScoreReport struct {
	Dialect dialect.Dialect `json:"dialect" yaml:"dialect"`
	Eps     float64         `json:"eps" yaml:"eps"`
	Score   float64         `json:"score" yaml:"score"`
}

// String renders the report for text output
func (r ScoreReport) String() string {
	return fmt.Sprintf("%s score=%.6f", r.Dialect, r.Score)
}

// AbstractReport is the output of the abstract command
type AbstractReport struct {
	Dialect     dialect.Dialect `json:"dialect" yaml:"dialect"`
	Abstraction string          `json:"abstraction" yaml:"abstraction"`
	Rows        int             `json:"rows" yaml:"rows"`
	Patterns    []PatternReport `json:"patterns" yaml:"patterns"`
	Score       float64         `json:"score" yaml:"score"`
}

// PatternReport describes one distinct row pattern
type PatternReport struct {
	Pattern string  `json:"pattern" yaml:"pattern"`
	Count   int     `json:"count" yaml:"count"`
	Cells   int     `json:"cells" yaml:"cells"`
	Weight  float64 `json:"weight" yaml:"weight"`
}

// String renders the report for text output
func (r AbstractReport) String() string {
	t := report.NewTable()
	t.Header("Pattern", "Count", "Cells", "Weight")
	t.Align(2, report.AlignRight)
	t.Align(3, report.AlignRight)
	t.Align(4, report.AlignRight)
	for _, p := range r.Patterns {
		t.Row(p.Pattern, p.Count, p.Cells, fmt.Sprintf("%.6f", p.Weight))
	}
	return fmt.Sprintf("Dialect: %s\nAbstraction: %s\nRows: %d\nScore: %.6f\n%s",
		r.Dialect, r.Abstraction, r.Rows, r.Score, t.String())
}

func newScoreCommand(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "score <file|->",
		Short: "Compute the pattern score of one dialect",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return RunScore(cmd, v, args[0])
		},
	}
	addDialectFlags(cmd)
	return cmd
}

func newAbstractCommand(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "abstract <file|->",
		Short: "Show the structural abstraction of a file under one dialect",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return RunAbstract(cmd, v, args[0])
		},
	}
	addDialectFlags(cmd)
	return cmd
}

// loadForDialect performs the setup shared by score and abstract
func loadForDialect(cmd *cobra.Command, v *viper.Viper, path string) (string, dialect.Dialect, float64, report.Format, error) {
	var d dialect.Dialect
	cfg, err := LoadConfig(v)
	if err != nil {
		return "", d, 0, "", err
	}
	format, err := report.ParseFormat(cfg.Output.Format)
	if err != nil {
		return "", d, 0, "", err
	}
	if d, err = dialectFromFlags(cmd); err != nil {
		return "", d, 0, "", err
	}

	logger, err := SetupLogging(cmd, cfg)
	if err != nil {
		return "", d, 0, "", err
	}
	defer logger.Close()

	text, err := readInput(cmd, path, cfg, logger)
	if err != nil {
		return "", d, 0, "", err
	}
	if text == "" {
		return "", d, 0, "", detector.ErrEmptyInput
	}
	return text, d, cfg.Detection.Eps, format, nil
}

// RunScore prints the pattern score of the file at path under the flagged dialect
func RunScore(cmd *cobra.Command, v *viper.Viper, path string) error {
	text, d, eps, format, err := loadForDialect(cmd, v, path)
	if err != nil {
		return err
	}
	out := ScoreReport{
		Dialect: d,
		Eps:     eps,
		Score:   pattern.Score(text, d, eps),
	}
	return report.Encode(cmd.OutOrStdout(), out, format)
}

// RunAbstract prints the abstraction and row pattern histogram of the file at path
func RunAbstract(cmd *cobra.Command, v *viper.Viper, path string) error {
	text, d, eps, format, err := loadForDialect(cmd, v, path)
	if err != nil {
		return err
	}

	a := abstraction.Make(text, d)
	h := pattern.NewHistogram(a)
	out := AbstractReport{
		Dialect:     d,
		Abstraction: a.String(),
		Rows:        h.Rows(),
		Score:       pattern.ScoreHistogram(h, eps),
	}
	for _, e := range h.Entries() {
		out.Patterns = append(out.Patterns, PatternReport{
			Pattern: string(e.Pattern),
			Count:   e.Count,
			Cells:   e.Pattern.CellCount(),
			Weight:  pattern.Weight(e.Pattern, e.Count, eps),
		})
	}
	return report.Encode(cmd.OutOrStdout(), out, format)
}
