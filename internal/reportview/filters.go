package reportview

import (
	"slices"
	"strings"

	"github.com/mwiater/primeview/internal/filtergroup"
	"github.com/mwiater/primeview/internal/reports"
)

// FilterText returns the encoded text of group g.
func (p *Page) FilterText(g filtergroup.Group) string {
	return g.Encode(p.filters[g.Key])
}

// SetFilterText replaces every flag of group g from text.
func (p *Page) SetFilterText(g filtergroup.Group, text string) {
	p.filters[g.Key] = g.Decode(text)
}

// Flag returns the value of one flag. Unknown tokens read as true.
func (p *Page) Flag(g filtergroup.Group, token string) bool {
	on, ok := p.filters[g.Key][token]
	return !ok || on
}

// SetFlag sets one flag of group g. Tokens the group does not define are ignored.
func (p *Page) SetFlag(g filtergroup.Group, token string, on bool) {
	if _, ok := g.Lookup(token); !ok {
		return
	}
	flags := p.filters[g.Key]
	if flags == nil {
		flags = g.AllOn()
		p.filters[g.Key] = flags
	}
	flags[token] = on
}

// ToggleFlag inverts one flag of group g.
func (p *Page) ToggleFlag(g filtergroup.Group, token string) {
	p.SetFlag(g, token, !p.Flag(g, token))
}

// FilterImplementations splits the implementation filter into keys.
func (p *Page) FilterImplementations() []string {
	return filtergroup.Split(p.ImplementationText)
}

// ImplementationSelectionChanged reads the picker's selection into the
// implementation filter.
func (p *Page) ImplementationSelectionChanged() {
	p.ImplementationText = p.sel.Values(filtergroup.Separator)
}

// AreFiltersClear reports whether no filter excludes anything.
func (p *Page) AreFiltersClear() bool {
	if p.ImplementationText != "" {
		return false
	}
	for _, g := range filtergroup.Groups() {
		if p.FilterText(g) != "" {
			return false
		}
	}
	return true
}

// ClearFilters resets every filter and empties the implementation picker.
func (p *Page) ClearFilters() {
	p.ImplementationText = ""
	for _, g := range filtergroup.Groups() {
		p.SetFilterText(g, "")
	}
	p.sel.Clear()
}

// Matches reports whether r passes the current filters.
func (p *Page) Matches(r reports.Result) bool {
	if impls := p.FilterImplementations(); len(impls) > 0 && !slices.Contains(impls, r.Implementation) {
		return false
	}

	parallelism := "st"
	if r.MultiThreaded() {
		parallelism = "mt"
	}

	algorithm := "ot"
	switch strings.ToLower(r.Algorithm) {
	case "base":
		algorithm = "ba"
	case "wheel":
		algorithm = "wh"
	}

	faithful := "uf"
	if r.Faithful {
		faithful = "ff"
	}

	bits := "ot"
	switch {
	case r.Bits == nil:
		bits = "uk"
	case *r.Bits == 1:
		bits = "on"
	}

	return p.Flag(filtergroup.Parallelism, parallelism) &&
		p.Flag(filtergroup.Algorithm, algorithm) &&
		p.Flag(filtergroup.Faithful, faithful) &&
		p.Flag(filtergroup.Bits, bits)
}

// Results returns the report's results that pass the filters, in the bound
// sort order.
func (p *Page) Results() []reports.Result {
	if p.report == nil {
		return nil
	}
	var out []reports.Result
	for _, r := range p.report.Results {
		if p.Matches(r) {
			out = append(out, r)
		}
	}
	reports.SortResults(out, p.SortColumn, p.SortDescending)
	return out
}

// Implementations lists the distinct implementation keys in the report.
func (p *Page) Implementations() []string {
	if p.report == nil {
		return nil
	}
	var keys []string
	for _, r := range p.report.Results {
		if !slices.Contains(keys, r.Implementation) {
			keys = append(keys, r.Implementation)
		}
	}
	slices.Sort(keys)
	return keys
}
