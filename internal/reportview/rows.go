package reportview

import (
	"strconv"

	"github.com/dustin/go-humanize"

	"github.com/mwiater/primeview/internal/reports"
)

// Headers returns the grid headers: the row number followed by every column.
func Headers() []string {
	headers := []string{"#"}
	for _, c := range reports.Columns() {
		headers = append(headers, c.Title)
	}
	return headers
}

// FormatRow renders r as grid cells. n is the 1-based row number.
func (p *Page) FormatRow(n int, r reports.Result) []string {
	bits := "?"
	if r.Bits != nil {
		bits = strconv.Itoa(*r.Bits)
	}
	faithful := "no"
	if r.Faithful {
		faithful = "yes"
	}
	return []string{
		strconv.Itoa(n),
		p.LanguageInfo(r.Implementation).Name,
		r.Solution,
		r.Label,
		humanize.Comma(r.Passes),
		strconv.FormatFloat(r.Duration, 'f', 2, 64),
		strconv.Itoa(r.Threads),
		r.Algorithm,
		faithful,
		bits,
		humanize.FormatFloat("#,###.##", r.PassesPerSecond()),
	}
}

// PageResults returns the filtered, sorted results on the table's current
// page. A non-positive page size selects everything.
func (p *Page) PageResults() []reports.Result {
	results := p.Results()
	size := p.table.PageSize()
	if size <= 0 {
		return results
	}
	start := p.table.PageNumber() * size
	if start >= len(results) {
		return nil
	}
	end := min(start+size, len(results))
	return results[start:end]
}

// PageCount is the number of pages the filtered results span.
func (p *Page) PageCount() int {
	size := p.table.PageSize()
	n := len(p.Results())
	if size <= 0 || n == 0 {
		return 1
	}
	return (n + size - 1) / size
}
