/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: abstraction.go
Description: Symbolic abstraction of delimited text. Reduces raw content under a
candidate dialect to a skeleton over the alphabet row separator, delimiter, quote and
cell, then merges quoted blocks, marks empty cells and strips trailing row separators
so rows can be compared by shape alone.
*/

package abstraction

import (
	"strings"

	"github.com/kleascm/dialect-sniffer/pkg/dialect"
)

// Symbol is one letter of the abstraction alphabet
type Symbol byte

const (
	RowSep Symbol = 'R' // End of a row
	Delim  Symbol = 'D' // Field delimiter
	Quote  Symbol = 'Q' // Unmerged quote character
	Cell   Symbol = 'C' // Cell content of any length
)

// Abstraction is the structural skeleton of a text under one dialect
type Abstraction []Symbol

// Parse converts a string of symbol letters back into an abstraction.
// Letters outside the alphabet are ignored.
func Parse(s string) Abstraction {
	a := make(Abstraction, 0, len(s))
	for i := 0; i < len(s); i++ {
		switch sym := Symbol(s[i]); sym {
		case RowSep, Delim, Quote, Cell:
			a = append(a, sym)
		}
	}
	return a
}

// String returns the abstraction as its symbol letters, e.g. "CDCRCDC"
func (a Abstraction) String() string {
	var b strings.Builder
	b.Grow(len(a))
	for _, s := range a {
		b.WriteByte(byte(s))
	}
	return b.String()
}

// last returns the final symbol, or 0 when empty
func (a Abstraction) last() Symbol {
	if len(a) == 0 {
		return 0
	}
	return a[len(a)-1]
}

// Make runs the full pipeline: build, merge quotes, fill empties, strip trailing.
func Make(text string, d dialect.Dialect) Abstraction {
	a := Build(text, d)
	a = MergeQuotes(a)
	a = FillEmpties(a)
	return StripTrailing(a)
}

// Build scans text once and emits the base abstraction.
//
// Runs of line breaks collapse to a single RowSep and runs of content to a single
// Cell. An escape character protects only the next character; an escape left armed
// at the end of the text is dropped.
func Build(text string, d dialect.Dialect) Abstraction {
	a := make(Abstraction, 0, len(text)/2+1)
	escapeNext := false

	for _, r := range text {
		switch {
		case r == '\r' || r == '\n':
			if a.last() != RowSep {
				a = append(a, RowSep)
			}
		case r == d.Delimiter:
			if escapeNext {
				a = append(a, Cell)
				escapeNext = false
			} else {
				a = append(a, Delim)
			}
		case r == d.Quote:
			if escapeNext {
				a = append(a, Cell)
				escapeNext = false
			} else {
				a = append(a, Quote)
			}
		case r == d.Escape:
			if escapeNext {
				if a.last() != Cell {
					a = append(a, Cell)
				}
				escapeNext = false
			} else {
				escapeNext = true
			}
		default:
			escapeNext = false
			if a.last() != Cell {
				a = append(a, Cell)
			}
		}
	}
	return a
}

// span is an inclusive range of symbol positions
type span struct {
	open, close int
}

// QuoteSpans returns the inclusive position pairs of every closed quoted block.
// A doubled quote inside a block is content and does not close it. An opening
// quote without a partner yields no span.
func QuoteSpans(a Abstraction) [][2]int {
	var spans [][2]int
	for _, s := range quoteSpans(a) {
		spans = append(spans, [2]int{s.open, s.close})
	}
	return spans
}

func quoteSpans(a Abstraction) []span {
	var spans []span
	inQuotes := false
	open := 0

	for i := 0; i < len(a); i++ {
		if a[i] != Quote {
			continue
		}
		if !inQuotes {
			inQuotes = true
			open = i
			continue
		}
		if i+1 < len(a) && a[i+1] == Quote {
			i++
			continue
		}
		spans = append(spans, span{open: open, close: i})
		inQuotes = false
	}
	return spans
}

// MergeQuotes replaces every closed quoted block, quotes included, with Cell
// symbols. Stray quotes are left in place. The input is not modified.
func MergeQuotes(a Abstraction) Abstraction {
	out := make(Abstraction, len(a))
	copy(out, a)
	for _, s := range quoteSpans(a) {
		for i := s.open; i <= s.close; i++ {
			out[i] = Cell
		}
	}
	return out
}

// FillEmpties marks empty fields with a Cell and collapses Cell runs.
//
// The result is the fixed point of the rewrites DD→DCD, DR→DCR, RD→RCD and CC→C,
// followed by a leading Cell when the text starts with a delimiter and a trailing
// Cell when it ends with one. A single forward scan with one symbol of lookbehind
// reaches that fixed point directly.
func FillEmpties(a Abstraction) Abstraction {
	out := make(Abstraction, 0, len(a)+len(a)/2+2)

	for _, s := range a {
		prev := out.last()
		switch s {
		case Cell:
			if prev == Cell {
				continue
			}
		case Delim:
			if prev == Delim || prev == RowSep || len(out) == 0 {
				out = append(out, Cell)
			}
		case RowSep:
			if prev == Delim {
				out = append(out, Cell)
			}
		}
		out = append(out, s)
	}

	if out.last() == Delim {
		out = append(out, Cell)
	}
	return out
}

// StripTrailing drops row separators at the end of the abstraction.
func StripTrailing(a Abstraction) Abstraction {
	end := len(a)
	for end > 0 && a[end-1] == RowSep {
		end--
	}
	return a[:end]
}
