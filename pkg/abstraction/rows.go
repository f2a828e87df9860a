/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: rows.go
Description: Row patterns. Splits a finished abstraction into the symbol sequences
between row separators, which are compared by value when grouping rows by shape.
*/

package abstraction

import "strings"

// RowPattern is the symbol sequence of one row, row separators excluded
type RowPattern string

// Rows splits the abstraction at every RowSep.
// An abstraction without separators is a single row, so the result is never empty.
func (a Abstraction) Rows() []RowPattern {
	parts := strings.Split(a.String(), string(RowSep))
	rows := make([]RowPattern, len(parts))
	for i, p := range parts {
		rows[i] = RowPattern(p)
	}
	return rows
}

// CellCount is the number of delimiter-separated segments in the row
func (p RowPattern) CellCount() int {
	return strings.Count(string(p), string(Delim)) + 1
}
