/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: candidates.go
Description: Candidate dialect generation. Proposes the delimiter, quote and escape
combinations that are plausible for a given text so the detector can score each of them.
*/

package dialect

import (
	"sort"
	"unicode"
)

// DefaultQuoteChars are the quote characters considered when they occur in the text
var DefaultQuoteChars = []rune{'"', '\'', '`'}

// DefaultEscapeChars are the escape characters considered when they occur in the text
var DefaultEscapeChars = []rune{'\\'}

// blockedDelimiters can never act as delimiters
var blockedDelimiters = map[rune]bool{
	'.':  true,
	'/':  true,
	'"':  true,
	'\'': true,
	'`':  true,
	'\n': true,
	'\r': true,
}

// CandidateOptions restricts candidate generation.
// A non-empty override replaces the character set inferred from the text.
type CandidateOptions struct {
	Delimiters  []rune
	QuoteChars  []rune
	EscapeChars []rune
}

// Candidates returns every valid dialect worth scoring for text, in a stable order.
// None is always a candidate for each of the three characters.
func Candidates(text string, opts CandidateOptions) []Dialect {
	present := make(map[rune]bool)
	for _, r := range text {
		present[r] = true
	}

	delimiters := opts.Delimiters
	if len(delimiters) == 0 {
		for r := range present {
			if IsPotentialDelimiter(r) {
				delimiters = append(delimiters, r)
			}
		}
	}
	quotes := opts.QuoteChars
	if len(quotes) == 0 {
		quotes = filterPresent(DefaultQuoteChars, present)
	}
	escapes := opts.EscapeChars
	if len(escapes) == 0 {
		escapes = filterPresent(DefaultEscapeChars, present)
	}

	delimiters = withNone(delimiters)
	quotes = withNone(quotes)
	escapes = withNone(escapes)

	var out []Dialect
	for _, d := range delimiters {
		for _, q := range quotes {
			for _, e := range escapes {
				candidate := New(d, q, e)
				if candidate.Validate() != nil {
					continue
				}
				out = append(out, candidate)
			}
		}
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Less(out[j]) })
	return out
}

// IsPotentialDelimiter reports whether r could separate fields.
// Letters, digits, line breaks, quote characters and control characters other
// than tab are excluded.
func IsPotentialDelimiter(r rune) bool {
	if blockedDelimiters[r] {
		return false
	}
	if r == '\t' {
		return true
	}
	if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsControl(r) || unicode.IsMark(r) {
		return false
	}
	return r != unicode.ReplacementChar
}

// filterPresent keeps the runes of set that occur in the text
func filterPresent(set []rune, present map[rune]bool) []rune {
	var out []rune
	for _, r := range set {
		if present[r] {
			out = append(out, r)
		}
	}
	return out
}

// withNone returns a deduplicated copy of rs that also contains None
func withNone(rs []rune) []rune {
	seen := map[rune]bool{None: true}
	out := []rune{None}
	for _, r := range rs {
		if seen[r] {
			continue
		}
		seen[r] = true
		out = append(out, r)
	}
	return out
}
