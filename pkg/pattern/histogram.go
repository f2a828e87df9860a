/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: histogram.go
Description: Row pattern histogram. Counts how often each distinct row shape occurs
in an abstraction, keeping first-occurrence order for reproducible iteration.
*/

package pattern

import "github.com/kleascm/dialect-sniffer/pkg/abstraction"

// Entry is one distinct row pattern and its number of occurrences
type Entry struct {
	Pattern abstraction.RowPattern `json:"pattern" yaml:"pattern"`
	Count   int                    `json:"count" yaml:"count"`
}

// Histogram maps distinct row patterns to their counts
type Histogram struct {
	entries []Entry
	index   map[abstraction.RowPattern]int
}

// NewHistogram groups the rows of a by pattern equality
func NewHistogram(a abstraction.Abstraction) *Histogram {
	h := &Histogram{index: make(map[abstraction.RowPattern]int)}
	for _, row := range a.Rows() {
		h.add(row)
	}
	return h
}

func (h *Histogram) add(p abstraction.RowPattern) {
	if i, ok := h.index[p]; ok {
		h.entries[i].Count++
		return
	}
	h.index[p] = len(h.entries)
	h.entries = append(h.entries, Entry{Pattern: p, Count: 1})
}

// Len returns the number of distinct patterns
func (h *Histogram) Len() int {
	return len(h.entries)
}

// Count returns the occurrences of p, zero if absent
func (h *Histogram) Count(p abstraction.RowPattern) int {
	if i, ok := h.index[p]; ok {
		return h.entries[i].Count
	}
	return 0
}

// Entries returns the distinct patterns in first-occurrence order
func (h *Histogram) Entries() []Entry {
	out := make([]Entry, len(h.entries))
	copy(out, h.entries)
	return out
}

// Rows returns the total number of rows counted
func (h *Histogram) Rows() int {
	total := 0
	for _, e := range h.entries {
		total += e.Count
	}
	return total
}
