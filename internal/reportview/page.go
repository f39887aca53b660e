// internal/reportview/page.go
// Package reportview is the report details page model: it binds the sort,
// panel and filter state to a location query string, keeps the table widget's
// sort reconciled with that state and manages the named filter presets.
package reportview

import (
	"context"
	"fmt"
	"strings"

	"github.com/mwiater/primeview/internal/filtergroup"
	"github.com/mwiater/primeview/internal/kvstore"
	"github.com/mwiater/primeview/internal/languages"
	"github.com/mwiater/primeview/internal/logging"
	"github.com/mwiater/primeview/internal/presets"
	"github.com/mwiater/primeview/internal/querystate"
	"github.com/mwiater/primeview/internal/reports"
	"github.com/mwiater/primeview/internal/sortbridge"
)

// Table is the sortable, pageable results widget.
type Table interface {
	sortbridge.Table
	PageNumber() int
	PageSize() int
}

// MultiSelect is the implementation picker.
type MultiSelect interface {
	Clear()
	Values(separator string) string
	SetValues(values []string)
}

// Options wires a Page to its collaborators. Reports and Languages may be nil.
type Options struct {
	Table     Table
	Select    MultiSelect
	Navigator querystate.Navigator
	Store     kvstore.Store
	Reports   reports.Reader
	Languages languages.Source
}

// Page holds the state of one report details view. Exported fields are bound
// to the location; changes are written back on the next AfterRender.
type Page struct {
	SortColumn            string
	SortDescending        bool
	HideSystemInformation bool
	HideFilters           bool
	HideFilterPresets     bool
	ReportID              string
	ImplementationText    string

	// PresetName is the pending name for AddPreset.
	PresetName string

	filters map[string]filtergroup.Flags

	table     Table
	sel       MultiSelect
	nav       querystate.Navigator
	binder    *querystate.Binder
	bridge    *sortbridge.Bridge
	presets   *presets.Store
	reader    reports.Reader
	langs     languages.Source
	report    *reports.Report
	lookup    *languages.Lookup
	rowNumber int
}

// New builds a page over opts. Table, Select and Navigator are required.
func New(opts Options) (*Page, error) {
	if opts.Table == nil || opts.Select == nil || opts.Navigator == nil {
		return nil, fmt.Errorf("reportview: table, select and navigator are required")
	}

	p := &Page{
		SortColumn:     reports.DefaultColumn,
		SortDescending: true,
		filters:        make(map[string]filtergroup.Flags),
		table:          opts.Table,
		sel:            opts.Select,
		nav:            opts.Navigator,
		presets:        presets.New(opts.Store),
		reader:         opts.Reports,
		langs:          opts.Languages,
		lookup:         languages.NewLookup(nil),
	}
	for _, g := range filtergroup.Groups() {
		p.filters[g.Key] = g.AllOn()
	}

	binder, err := querystate.New(opts.Store, p.fields()...)
	if err != nil {
		return nil, err
	}
	p.binder = binder
	p.bridge = sortbridge.New(opts.Table,
		func() (string, bool) { return p.SortColumn, p.SortDescending },
		func(column string, desc bool) { p.SortColumn, p.SortDescending = column, desc },
	)
	return p, nil
}

func (p *Page) fields() []querystate.Field {
	fields := []querystate.Field{
		querystate.String("SortColumn", "sc", reports.DefaultColumn,
			func() string { return p.SortColumn }, func(v string) { p.SortColumn = v }),
		querystate.Bool("SortDescending", "sd", true,
			func() bool { return p.SortDescending }, func(v bool) { p.SortDescending = v }),
		querystate.Bool("HideSystemInformation", "hi", false,
			func() bool { return p.HideSystemInformation }, func(v bool) { p.HideSystemInformation = v }).Remembered(),
		querystate.Bool("HideFilters", "hf", false,
			func() bool { return p.HideFilters }, func(v bool) { p.HideFilters = v }).Remembered(),
		querystate.Bool("HideFilterPresets", "hp", false,
			func() bool { return p.HideFilterPresets }, func(v bool) { p.HideFilterPresets = v }).Remembered(),
		querystate.String("ReportID", "id", "",
			func() string { return p.ReportID }, func(v string) { p.ReportID = v }),
		querystate.String("FilterImplementationText", "fi", "",
			func() string { return p.ImplementationText }, func(v string) { p.ImplementationText = v }),
	}
	for _, g := range filtergroup.Groups() {
		g := g
		fields = append(fields, querystate.String(g.Name, g.Key, "",
			func() string { return p.FilterText(g) }, func(v string) { p.SetFilterText(g, v) }))
	}
	return fields
}

// SetParameters seeds the bound state from the navigator's location.
func (p *Page) SetParameters() {
	p.binder.Load(p.nav)
	if logging.DebugEnabled() {
		for _, g := range filtergroup.Groups() {
			if unknown := g.Unknown(p.rawFilterValue(g)); len(unknown) > 0 {
				logging.LogDebug("reportview: ignoring unknown %s tokens %v", g.Key, unknown)
			}
		}
	}
}

// rawFilterValue returns the group's text as it appears in the location.
func (p *Page) rawFilterValue(g filtergroup.Group) string {
	uri := p.nav.URI()
	i := strings.Index(uri, "?")
	if i < 0 {
		return ""
	}
	for _, pair := range strings.Split(uri[i+1:], "&") {
		if key, value, ok := strings.Cut(pair, "="); ok && key == g.Key {
			return value
		}
	}
	return ""
}

// Initialize loads the report, the language map and the stored presets.
// Failures degrade to an absent report, fallback language names and an empty
// preset list.
func (p *Page) Initialize(ctx context.Context) {
	p.report = reports.Fetch(ctx, p.reader, p.ReportID)
	p.lookup = languages.Resolve(ctx, p.langs)
	p.presets.Load()
	if impls := p.FilterImplementations(); len(impls) > 0 {
		p.sel.SetValues(impls)
	}
}

// LocationChanged reseeds the bound state after the location moved to a new
// entry, and brings the implementation select in line with it.
func (p *Page) LocationChanged() {
	p.SetParameters()
	if impls := p.FilterImplementations(); len(impls) > 0 {
		p.sel.SetValues(impls)
	} else {
		p.sel.Clear()
	}
}

// Bindings returns the query-bound fields in declaration order.
func (p *Page) Bindings() []querystate.Field { return p.binder.Fields() }

// LanguageMapLoaded reports whether display names come from a language map
// rather than the capitalized key.
func (p *Page) LanguageMapLoaded() bool { return p.lookup.Available() }

// AfterRender runs once per render cycle: the table adopts a bound sort that
// differs from its own, then the location is rewritten from the bound state.
// It reports whether the location changed.
func (p *Page) AfterRender() bool {
	p.bridge.AfterRender()
	return p.binder.Sync(p.nav)
}

// TableRefreshStarted is called by the table when a refresh begins.
func (p *Page) TableRefreshStarted() {
	p.rowNumber = p.table.PageNumber() * p.table.PageSize()
	if p.bridge.RefreshStarted() {
		p.binder.Sync(p.nav)
	}
}

// SortChangedByUser is called by the table before it refreshes because the
// user picked a new sort.
func (p *Page) SortChangedByUser() {
	p.bridge.UserSorted()
}

// SortState exposes the sort bridge's reconciliation state.
func (p *Page) SortState() sortbridge.State { return p.bridge.State() }

// SortAdoptions counts how often the table was told to adopt the bound sort.
func (p *Page) SortAdoptions() int { return p.bridge.Adoptions() }

// Location returns the navigator's current URI.
func (p *Page) Location() string { return p.nav.URI() }

// RowNumber is the index of the first row on the current page.
func (p *Page) RowNumber() int { return p.rowNumber }

// Report returns the loaded report, or nil when it is unavailable.
func (p *Page) Report() *reports.Report { return p.report }

// Title is the display title of the loaded report.
func (p *Page) Title() string { return reports.Title(p.report) }

// LanguageInfo resolves the display information for an implementation key.
func (p *Page) LanguageInfo(key string) languages.Info { return p.lookup.Info(key) }

// ToggleSystemInfoPanel flips the system information panel.
func (p *Page) ToggleSystemInfoPanel() { p.HideSystemInformation = !p.HideSystemInformation }

// ToggleFilterPanel flips the filter panel.
func (p *Page) ToggleFilterPanel() { p.HideFilters = !p.HideFilters }

// ToggleFilterPresetPanel flips the preset panel.
func (p *Page) ToggleFilterPresetPanel() { p.HideFilterPresets = !p.HideFilterPresets }
