/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: detect.go
Description: Detect command implementation. Proposes candidate dialects for a file,
scores them all in parallel and reports the ranking.
*/

package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/kleascm/dialect-sniffer/pkg/detector"
	"github.com/kleascm/dialect-sniffer/pkg/dialect"
	"github.com/kleascm/dialect-sniffer/pkg/pattern"
	"github.com/kleascm/dialect-sniffer/pkg/report"
)

func newDetectCommand(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "detect <file|->",
		Short: "Detect the dialect of a delimited text file",
		Long: `Detect generates every plausible combination of delimiter, quote and escape
character found in the file, scores each of them by row pattern consistency and
prints the best dialect followed by the strongest alternatives.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return RunDetect(cmd, v, args[0])
		},
	}

	cmd.Flags().IntP("workers", "w", 0, "Number of parallel scorers (0 = one per CPU)")
	cmd.Flags().StringArray("delimiters", nil, "Only consider this delimiter (repeatable)")
	cmd.Flags().StringArray("quotechars", nil, "Only consider this quote character (repeatable)")
	cmd.Flags().StringArray("escapechars", nil, "Only consider this escape character (repeatable)")
	cmd.Flags().Int("top", 5, "Number of ranked candidates to show (0 = all)")

	v.BindPFlag("detection.workers", cmd.Flags().Lookup("workers"))
	v.BindPFlag("detection.delimiters", cmd.Flags().Lookup("delimiters"))
	v.BindPFlag("detection.quotechars", cmd.Flags().Lookup("quotechars"))
	v.BindPFlag("detection.escapechars", cmd.Flags().Lookup("escapechars"))
	v.BindPFlag("output.top", cmd.Flags().Lookup("top"))

	return cmd
}

// RunDetect ranks the candidate dialects of the file at path
func RunDetect(cmd *cobra.Command, v *viper.Viper, path string) error {
	cfg, err := LoadConfig(v)
	if err != nil {
		return err
	}
	format, err := report.ParseFormat(cfg.Output.Format)
	if err != nil {
		return err
	}

	logger, err := SetupLogging(cmd, cfg)
	if err != nil {
		return err
	}
	defer logger.Close()

	text, err := readInput(cmd, path, cfg, logger)
	if err != nil {
		return err
	}

	candOpts, err := cfg.CandidateOptions()
	if err != nil {
		return err
	}
	candidates := dialect.Candidates(text, candOpts)
	logger.Debug("Candidates generated", map[string]interface{}{"count": len(candidates)})

	engine := detector.NewEngine(detector.Options{
		Workers:  cfg.Detection.Workers,
		Scorers:  []detector.Scorer{pattern.NewScorer(cfg.Detection.Eps)},
		Reporter: detector.NewLoggerReporter(logger),
	})

	result, err := engine.Detect(cmd.Context(), text, candidates)
	if err != nil {
		return fmt.Errorf("detection failed: %w", err)
	}
	logger.LogStats(result.Candidates, result.TextLength, result.Duration, map[string]interface{}{
		"run_id":  result.RunID,
		"workers": engine.Workers(),
	})

	if err := report.WriteResult(cmd.OutOrStdout(), result, format, cfg.Output.Top); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	if cfg.Output.Dir != "" {
		name := path
		if name == "-" {
			name = "stdin"
		}
		file, err := report.WriteFile(cfg.Output.Dir, name, result, format, cfg.Output.Top)
		if err != nil {
			return err
		}
		logger.Info("Report saved", map[string]interface{}{"file": file})
	}
	return nil
}
