/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: config.go
Description: Configuration for the dialect sniffer. Values come from command-line
flags, an optional config file and SNIFFER_* environment variables, merged by viper.
*/

package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"

	"github.com/kleascm/dialect-sniffer/pkg/dialect"
	"github.com/kleascm/dialect-sniffer/pkg/logging"
	"github.com/kleascm/dialect-sniffer/pkg/pattern"
)

// EnvPrefix is the prefix of environment variables read by Load
const EnvPrefix = "SNIFFER"

// ErrInvalidConfig wraps every validation failure
var ErrInvalidConfig = errors.New("invalid configuration")

// DetectionConfig controls candidate generation and scoring
type DetectionConfig struct {
	Eps         float64  `mapstructure:"eps" json:"eps"`
	Workers     int      `mapstructure:"workers" json:"workers"`     // 0 = one per CPU
	NumChars    int      `mapstructure:"num_chars" json:"num_chars"` // 0 = whole file
	Encoding    string   `mapstructure:"encoding" json:"encoding"`   // Empty = UTF-8
	Delimiters  []string `mapstructure:"delimiters" json:"delimiters"`
	QuoteChars  []string `mapstructure:"quotechars" json:"quotechars"`
	EscapeChars []string `mapstructure:"escapechars" json:"escapechars"`
}

// OutputConfig controls how results are reported
type OutputConfig struct {
	Format string `mapstructure:"format" json:"format"` // text, json or yaml
	Dir    string `mapstructure:"dir" json:"dir"`       // Report directory, empty = stdout only
	Top    int    `mapstructure:"top" json:"top"`
}

// Config is the complete sniffer configuration
type Config struct {
	Detection DetectionConfig      `mapstructure:"detection" json:"detection"`
	Logging   logging.LoggerConfig `mapstructure:"logging" json:"logging"`
	Output    OutputConfig         `mapstructure:"output" json:"output"`
}

// Default returns a sensible default config
func Default() *Config {
	return &Config{
		Detection: DetectionConfig{
			Eps:     pattern.DefaultEps,
			Workers: 0,
		},
		Logging: *logging.DefaultConfig(),
		Output: OutputConfig{
			Format: "text",
			Top:    5,
		},
	}
}

// SetDefaults registers the defaults of Default with v
func SetDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("detection.eps", d.Detection.Eps)
	v.SetDefault("detection.workers", d.Detection.Workers)
	v.SetDefault("detection.num_chars", d.Detection.NumChars)
	v.SetDefault("detection.encoding", d.Detection.Encoding)
	v.SetDefault("detection.delimiters", []string{})
	v.SetDefault("detection.quotechars", []string{})
	v.SetDefault("detection.escapechars", []string{})
	v.SetDefault("logging.level", string(d.Logging.Level))
	v.SetDefault("logging.format", string(d.Logging.Format))
	v.SetDefault("logging.output_dir", d.Logging.OutputDir)
	v.SetDefault("logging.max_files", d.Logging.MaxFiles)
	v.SetDefault("logging.timestamp", d.Logging.Timestamp)
	v.SetDefault("logging.caller", d.Logging.Caller)
	v.SetDefault("logging.colors", d.Logging.Colors)
	v.SetDefault("output.format", d.Output.Format)
	v.SetDefault("output.dir", d.Output.Dir)
	v.SetDefault("output.top", d.Output.Top)
}

// Load reads the config file named by the "config" key, if any, layers the
// environment on top and decodes the result.
func Load(v *viper.Viper) (*Config, error) {
	SetDefaults(v)

	if file := v.GetString("config"); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	cfg := &Config{}
	hook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		charListHook,
		mapstructure.StringToTimeDurationHookFunc(),
	))
	if err := v.Unmarshal(cfg, hook); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the config for invalid values
func (c *Config) Validate() error {
	if c.Detection.Eps <= 0 || c.Detection.Eps >= 1 {
		return fmt.Errorf("%w: eps must be in (0, 1), got %g", ErrInvalidConfig, c.Detection.Eps)
	}
	if c.Detection.Workers < 0 {
		return fmt.Errorf("%w: workers must not be negative", ErrInvalidConfig)
	}
	if c.Detection.NumChars < 0 {
		return fmt.Errorf("%w: num_chars must not be negative", ErrInvalidConfig)
	}
	if _, err := c.CandidateOptions(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	switch c.Output.Format {
	case "text", "json", "yaml":
	default:
		return fmt.Errorf("%w: unsupported output format: %s", ErrInvalidConfig, c.Output.Format)
	}
	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

// CandidateOptions converts the configured character overrides into runes
func (c *Config) CandidateOptions() (dialect.CandidateOptions, error) {
	var opts dialect.CandidateOptions
	var err error
	if opts.Delimiters, err = parseChars(c.Detection.Delimiters); err != nil {
		return opts, fmt.Errorf("delimiters: %w", err)
	}
	if opts.QuoteChars, err = parseChars(c.Detection.QuoteChars); err != nil {
		return opts, fmt.Errorf("quotechars: %w", err)
	}
	if opts.EscapeChars, err = parseChars(c.Detection.EscapeChars); err != nil {
		return opts, fmt.Errorf("escapechars: %w", err)
	}
	return opts, nil
}

// charListHook splits character lists given as one string, as environment
// variables are. A lone character is kept whole so "," names the comma itself.
// Lists are separated by whitespace when they contain any, otherwise by commas.
func charListHook(from reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
	if from.Kind() != reflect.String || to.Kind() != reflect.Slice || to.Elem().Kind() != reflect.String {
		return data, nil
	}
	s := reflect.ValueOf(data).String()
	switch {
	case s == "":
		return []string{}, nil
	case utf8.RuneCountInString(s) == 1:
		return []string{s}, nil
	case strings.IndexFunc(s, unicode.IsSpace) >= 0:
		return strings.Fields(s), nil
	default:
		return strings.Split(s, ","), nil
	}
}

func parseChars(values []string) ([]rune, error) {
	var out []rune
	for _, s := range values {
		if s == "" {
			return nil, fmt.Errorf("%w: empty entry", dialect.ErrInvalidChar)
		}
		r, err := dialect.ParseChar(s)
		if err != nil {
			return nil, err
		}
		if r != dialect.None {
			out = append(out, r)
		}
	}
	return out, nil
}
