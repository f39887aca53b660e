package reports

import (
	"sort"
	"strings"
)

// Column identifies a sortable result column by its short URL key.
type Column struct {
	Key   string
	Title string
	less  func(a, b Result) bool
}

// DefaultColumn is the column results are sorted by when none is chosen.
const DefaultColumn = "pp"

var columns = []Column{
	{Key: "im", Title: "Implementation", less: func(a, b Result) bool { return lowerLess(a.Implementation, b.Implementation) }},
	{Key: "so", Title: "Solution", less: func(a, b Result) bool { return lowerLess(a.Solution, b.Solution) }},
	{Key: "la", Title: "Label", less: func(a, b Result) bool { return lowerLess(a.Label, b.Label) }},
	{Key: "pa", Title: "Passes", less: func(a, b Result) bool { return a.Passes < b.Passes }},
	{Key: "du", Title: "Duration", less: func(a, b Result) bool { return a.Duration < b.Duration }},
	{Key: "th", Title: "Threads", less: func(a, b Result) bool { return a.Threads < b.Threads }},
	{Key: "al", Title: "Algorithm", less: func(a, b Result) bool { return lowerLess(a.Algorithm, b.Algorithm) }},
	{Key: "fa", Title: "Faithful", less: func(a, b Result) bool { return !a.Faithful && b.Faithful }},
	{Key: "bi", Title: "Bits", less: func(a, b Result) bool { return bitsValue(a) < bitsValue(b) }},
	{Key: "pp", Title: "Passes/s", less: func(a, b Result) bool { return a.PassesPerSecond() < b.PassesPerSecond() }},
}

// Columns returns the sortable columns in display order.
func Columns() []Column {
	out := make([]Column, len(columns))
	copy(out, columns)
	return out
}

// LookupColumn finds a column by key, ignoring case.
func LookupColumn(key string) (Column, bool) {
	for _, c := range columns {
		if strings.EqualFold(c.Key, key) {
			return c, true
		}
	}
	return Column{}, false
}

// SortResults orders results in place by column. Unknown columns leave the
// order unchanged.
func SortResults(results []Result, column string, descending bool) {
	c, ok := LookupColumn(column)
	if !ok {
		return
	}
	sort.SliceStable(results, func(i, j int) bool {
		if descending {
			return c.less(results[j], results[i])
		}
		return c.less(results[i], results[j])
	})
}

func lowerLess(a, b string) bool {
	return strings.ToLower(a) < strings.ToLower(b)
}

func bitsValue(r Result) int {
	if r.Bits == nil {
		return 0
	}
	return *r.Bits
}
