/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: table.go
Description: Table rendering for text reports. Wraps go-pretty tables behind a small
builder so every command lays out its columns the same way.
*/

package report

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// Align is the horizontal alignment of a column
type Align int

const (
	AlignDefault Align = iota
	AlignLeft
	AlignRight
)

// Table builds a terminal table row by row
type Table struct {
	writer  table.Writer
	configs []table.ColumnConfig
}

// NewTable returns an empty table in the light box style
func NewTable() *Table {
	w := table.NewWriter()
	w.SetStyle(table.StyleLight)
	return &Table{writer: w}
}

// Header sets the column headers
func (t *Table) Header(cols ...string) {
	row := make(table.Row, len(cols))
	for i, c := range cols {
		row[i] = c
	}
	t.writer.AppendHeader(row)
}

// Row appends a data row
func (t *Table) Row(vals ...interface{}) {
	row := make(table.Row, len(vals))
	copy(row, vals)
	t.writer.AppendRow(row)
}

// Align sets the alignment of the 1-based column n
func (t *Table) Align(n int, a Align) {
	// go-pretty replaces column configs wholesale
	t.configs = append(t.configs, table.ColumnConfig{Number: n, Align: toTextAlign(a)})
	t.writer.SetColumnConfigs(t.configs)
}

// String renders the table
func (t *Table) String() string {
	return t.writer.Render()
}

func toTextAlign(a Align) text.Align {
	switch a {
	case AlignLeft:
		return text.AlignLeft
	case AlignRight:
		return text.AlignRight
	default:
		return text.AlignDefault
	}
}
