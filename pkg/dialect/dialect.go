/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: dialect.go
Description: Dialect definition for delimited-text sniffing. A dialect is the triple of
delimiter, quote and escape characters under which a text is interpreted; any of them
may be disabled. Provides parsing of user-supplied characters, validation and
JSON/YAML serialization in the delimiter/quotechar/escapechar shape.
*/

package dialect

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

// None marks a disabled dialect character. It never equals a decoded rune.
const None rune = -1

var (
	// ErrInvalidChar is returned when a dialect character is not a single rune
	ErrInvalidChar = errors.New("dialect character must be a single character")
	// ErrConflictingChars is returned when two enabled dialect characters coincide
	ErrConflictingChars = errors.New("dialect characters must be distinct")
)

// Dialect describes how a delimited text is structured.
// It is a comparable value type and can be used as a map key.
type Dialect struct {
	Delimiter rune // Field separator, or None
	Quote     rune // Quote character, or None
	Escape    rune // Escape character, or None
}

// New creates a dialect from three runes. Pass None to disable a mechanism.
func New(delimiter, quote, escape rune) Dialect {
	return Dialect{Delimiter: delimiter, Quote: quote, Escape: escape}
}

// Parse builds a dialect from user-facing strings, see ParseChar.
func Parse(delimiter, quote, escape string) (Dialect, error) {
	d, err := ParseChar(delimiter)
	if err != nil {
		return Dialect{}, fmt.Errorf("delimiter: %w", err)
	}
	q, err := ParseChar(quote)
	if err != nil {
		return Dialect{}, fmt.Errorf("quotechar: %w", err)
	}
	e, err := ParseChar(escape)
	if err != nil {
		return Dialect{}, fmt.Errorf("escapechar: %w", err)
	}
	return New(d, q, e), nil
}

// namedChars maps the spellings accepted on the command line to runes
var namedChars = map[string]rune{
	"none":      None,
	`\t`:        '\t',
	"tab":       '\t',
	"space":     ' ',
	"comma":     ',',
	"semicolon": ';',
	"pipe":      '|',
	"colon":     ':',
}

// ParseChar converts a user-supplied string into a dialect rune.
// The empty string and "none" disable the mechanism.
func ParseChar(s string) (rune, error) {
	if s == "" {
		return None, nil
	}
	if r, ok := namedChars[strings.ToLower(s)]; ok {
		return r, nil
	}
	if utf8.RuneCountInString(s) != 1 {
		return None, fmt.Errorf("%w: %q", ErrInvalidChar, s)
	}
	r, _ := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return None, fmt.Errorf("%w: %q", ErrInvalidChar, s)
	}
	return r, nil
}

// charString renders a dialect rune as a plain string, empty for None
func charString(r rune) string {
	if r == None {
		return ""
	}
	return string(r)
}

// quoteChar renders a dialect rune for human-readable output
func quoteChar(r rune) string {
	switch r {
	case None:
		return "none"
	case '\t':
		return `'\t'`
	default:
		return fmt.Sprintf("%q", r)
	}
}

// String implements fmt.Stringer
func (d Dialect) String() string {
	return fmt.Sprintf("delimiter=%s quote=%s escape=%s",
		quoteChar(d.Delimiter), quoteChar(d.Quote), quoteChar(d.Escape))
}

// Validate checks that no two enabled characters coincide.
func (d Dialect) Validate() error {
	if d.Delimiter != None && d.Delimiter == d.Quote {
		return fmt.Errorf("%w: delimiter and quotechar are both %s", ErrConflictingChars, quoteChar(d.Delimiter))
	}
	if d.Escape != None && (d.Escape == d.Delimiter || d.Escape == d.Quote) {
		return fmt.Errorf("%w: escapechar %s reused", ErrConflictingChars, quoteChar(d.Escape))
	}
	return nil
}

// Less orders dialects by delimiter, then quote, then escape.
// None sorts before every real character.
func (d Dialect) Less(o Dialect) bool {
	if d.Delimiter != o.Delimiter {
		return d.Delimiter < o.Delimiter
	}
	if d.Quote != o.Quote {
		return d.Quote < o.Quote
	}
	return d.Escape < o.Escape
}

// wireDialect is the serialized shape shared by JSON and YAML
type wireDialect struct {
	Delimiter  string `json:"delimiter" yaml:"delimiter"`
	QuoteChar  string `json:"quotechar" yaml:"quotechar"`
	EscapeChar string `json:"escapechar" yaml:"escapechar"`
}

func (d Dialect) toWire() wireDialect {
	return wireDialect{
		Delimiter:  charString(d.Delimiter),
		QuoteChar:  charString(d.Quote),
		EscapeChar: charString(d.Escape),
	}
}

func (w wireDialect) toDialect() (Dialect, error) {
	return Parse(w.Delimiter, w.QuoteChar, w.EscapeChar)
}

// MarshalJSON implements json.Marshaler
func (d Dialect) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.toWire())
}

// UnmarshalJSON implements json.Unmarshaler
func (d *Dialect) UnmarshalJSON(data []byte) error {
	var w wireDialect
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	parsed, err := w.toDialect()
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// MarshalYAML implements yaml.Marshaler
func (d Dialect) MarshalYAML() (interface{}, error) {
	return d.toWire(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler
func (d *Dialect) UnmarshalYAML(node *yaml.Node) error {
	var w wireDialect
	if err := node.Decode(&w); err != nil {
		return err
	}
	parsed, err := w.toDialect()
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
