/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: utils.go
Description: Shared utilities for the sniffer commands. Provides configuration
loading, logging setup, input reading and dialect flag handling used across all
command implementations.
*/

package commands

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/kleascm/dialect-sniffer/pkg/config"
	"github.com/kleascm/dialect-sniffer/pkg/dialect"
	"github.com/kleascm/dialect-sniffer/pkg/logging"
	"github.com/kleascm/dialect-sniffer/pkg/textio"
)

// LoadConfig loads configuration from flags, files and environment
func LoadConfig(v *viper.Viper) (*config.Config, error) {
	cfg, err := config.Load(v)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}

// SetupLogging configures the logging system on the command's error stream
func SetupLogging(cmd *cobra.Command, cfg *config.Config) (*logging.Logger, error) {
	logger, err := logging.NewLoggerWithOutput(&cfg.Logging, cmd.ErrOrStderr())
	if err != nil {
		return nil, fmt.Errorf("failed to setup logging: %w", err)
	}
	return logger, nil
}

// readInput reads the named file, or stdin for "-", as text.
// Decoding failures print the matching warning before returning the error.
func readInput(cmd *cobra.Command, path string, cfg *config.Config, logger *logging.Logger) (string, error) {
	opts := textio.Options{
		MaxChars: cfg.Detection.NumChars,
		Encoding: cfg.Detection.Encoding,
	}

	var text string
	var err error
	if path == "-" {
		text, err = textio.ReadText(cmd.InOrStdin(), opts)
	} else {
		text, err = textio.ReadFile(path, opts)
	}
	if err != nil {
		if errors.Is(err, textio.ErrDecode) {
			fmt.Fprintln(cmd.ErrOrStderr(), Warning(WarnUnicodeDecodeError))
		}
		return "", err
	}

	logger.Info("Input loaded", map[string]interface{}{
		"path":  path,
		"chars": utf8.RuneCountInString(text),
	})
	return text, nil
}

// addDialectFlags registers the flags that describe a single dialect
func addDialectFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("delimiter", "d", ",", `Delimiter character ("" or none to disable, tab for \t)`)
	cmd.Flags().StringP("quotechar", "q", `"`, `Quote character ("" or none to disable)`)
	cmd.Flags().StringP("escapechar", "e", "", `Escape character ("" or none to disable)`)
}

// dialectFromFlags parses and validates the dialect flags
func dialectFromFlags(cmd *cobra.Command) (dialect.Dialect, error) {
	delimiter, _ := cmd.Flags().GetString("delimiter")
	quote, _ := cmd.Flags().GetString("quotechar")
	escape, _ := cmd.Flags().GetString("escapechar")

	d, err := dialect.Parse(delimiter, quote, escape)
	if err != nil {
		return dialect.Dialect{}, err
	}
	if err := d.Validate(); err != nil {
		return dialect.Dialect{}, err
	}
	return d, nil
}
