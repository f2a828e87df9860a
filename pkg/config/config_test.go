/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: config_test.go
Description: Tests for configuration defaults, loading from file and environment,
and validation.
*/

package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kleascm/dialect-sniffer/pkg/config"
	"github.com/kleascm/dialect-sniffer/pkg/dialect"
	"github.com/kleascm/dialect-sniffer/pkg/logging"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := config.Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 1e-3, cfg.Detection.Eps)
	assert.Equal(t, "text", cfg.Output.Format)
	assert.Equal(t, 5, cfg.Output.Top)
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.Load(viper.New())
	require.NoError(t, err)
	assert.Equal(t, 1e-3, cfg.Detection.Eps)
	assert.Equal(t, 0, cfg.Detection.Workers)
	assert.Empty(t, cfg.Detection.Delimiters)
	assert.Equal(t, config.Default().Output, cfg.Output)
	assert.Equal(t, logging.LogLevelWarning, cfg.Logging.Level)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sniffer.yaml")
	content := `detection:
  workers: 3
  num_chars: 4096
  delimiters: [",", "tab", "none"]
output:
  format: json
  top: 2
logging:
  level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	v := viper.New()
	v.Set("config", path)
	cfg, err := config.Load(v)
	require.NoError(t, err)

	assert.Equal(t, 3, cfg.Detection.Workers)
	assert.Equal(t, 4096, cfg.Detection.NumChars)
	assert.Equal(t, "json", cfg.Output.Format)
	assert.Equal(t, 2, cfg.Output.Top)
	assert.Equal(t, logging.LogLevelDebug, cfg.Logging.Level)

	opts, err := cfg.CandidateOptions()
	require.NoError(t, err)
	assert.Equal(t, []rune{',', '\t'}, opts.Delimiters)
	assert.Empty(t, opts.QuoteChars)
}

func TestLoadMissingFile(t *testing.T) {
	v := viper.New()
	v.Set("config", filepath.Join(t.TempDir(), "missing.yaml"))
	_, err := config.Load(v)
	assert.Error(t, err)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("SNIFFER_DETECTION_EPS", "0.01")
	t.Setenv("SNIFFER_OUTPUT_FORMAT", "yaml")

	cfg, err := config.Load(viper.New())
	require.NoError(t, err)
	assert.Equal(t, 0.01, cfg.Detection.Eps)
	assert.Equal(t, "yaml", cfg.Output.Format)
}

func TestLoadCharListsFromEnvironment(t *testing.T) {
	tests := []struct {
		value string
		want  []rune
	}{
		{",", []rune{','}},
		{";,|", []rune{';', '|'}},
		{"; |", []rune{';', '|'}},
		{"tab,semicolon", []rune{'\t', ';'}},
		{"comma", []rune{','}},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			t.Setenv("SNIFFER_DETECTION_DELIMITERS", tt.value)

			cfg, err := config.Load(viper.New())
			require.NoError(t, err)
			opts, err := cfg.CandidateOptions()
			require.NoError(t, err)
			assert.Equal(t, tt.want, opts.Delimiters)
		})
	}
}

func TestLoadRejectsEmptyCharEntry(t *testing.T) {
	t.Setenv("SNIFFER_DETECTION_DELIMITERS", ";,,")
	_, err := config.Load(viper.New())
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
}

func TestCandidateOptionsEmptyEntry(t *testing.T) {
	cfg := config.Default()
	cfg.Detection.Delimiters = []string{""}
	_, err := cfg.CandidateOptions()
	assert.ErrorIs(t, err, dialect.ErrInvalidChar)
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
	}{
		{"zero eps", func(c *config.Config) { c.Detection.Eps = 0 }},
		{"eps of one", func(c *config.Config) { c.Detection.Eps = 1 }},
		{"negative workers", func(c *config.Config) { c.Detection.Workers = -1 }},
		{"negative num_chars", func(c *config.Config) { c.Detection.NumChars = -5 }},
		{"bad delimiter", func(c *config.Config) { c.Detection.Delimiters = []string{"ab"} }},
		{"bad quotechar", func(c *config.Config) { c.Detection.QuoteChars = []string{"''"} }},
		{"empty delimiter entry", func(c *config.Config) { c.Detection.Delimiters = []string{"", ""} }},
		{"bad format", func(c *config.Config) { c.Output.Format = "xml" }},
		{"bad log level", func(c *config.Config) { c.Logging.Level = "loud" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			tt.mutate(cfg)
			assert.ErrorIs(t, cfg.Validate(), config.ErrInvalidConfig)
		})
	}
}

func TestCandidateOptions(t *testing.T) {
	cfg := config.Default()
	cfg.Detection.QuoteChars = []string{`"`, "'"}
	cfg.Detection.EscapeChars = []string{`\`}

	opts, err := cfg.CandidateOptions()
	require.NoError(t, err)
	assert.Equal(t, dialect.CandidateOptions{
		QuoteChars:  []rune{'"', '\''},
		EscapeChars: []rune{'\\'},
	}, opts)
}
