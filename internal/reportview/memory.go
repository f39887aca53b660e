package reportview

import (
	"slices"
	"strings"

	"github.com/mwiater/primeview/internal/querystate"
)

// MemoryTable is a headless Table. OnRefresh runs at the start of Refresh.
type MemoryTable struct {
	Column     string
	Descending bool
	Page       int
	Size       int
	OnRefresh  func()

	refreshes int
}

func (t *MemoryTable) SortParameters() (string, bool) { return t.Column, t.Descending }

func (t *MemoryTable) SetSortParameters(column string, descending bool) bool {
	if t.Column == column && t.Descending == descending {
		return false
	}
	t.Column, t.Descending = column, descending
	return true
}

func (t *MemoryTable) Refresh() {
	t.refreshes++
	if t.OnRefresh != nil {
		t.OnRefresh()
	}
}

func (t *MemoryTable) PageNumber() int { return t.Page }
func (t *MemoryTable) PageSize() int   { return t.Size }

// Refreshes counts calls to Refresh.
func (t *MemoryTable) Refreshes() int { return t.refreshes }

// MemorySelect is a headless MultiSelect keeping values in selection order.
type MemorySelect struct {
	values []string
}

func (s *MemorySelect) Clear() { s.values = nil }

func (s *MemorySelect) Values(separator string) string {
	return strings.Join(s.values, separator)
}

func (s *MemorySelect) SetValues(values []string) {
	s.values = slices.Clone(values)
}

// Selected reports whether value is selected.
func (s *MemorySelect) Selected(value string) bool {
	return slices.Contains(s.values, value)
}

// Toggle selects or deselects value.
func (s *MemorySelect) Toggle(value string) {
	if i := slices.Index(s.values, value); i >= 0 {
		s.values = slices.Delete(s.values, i, i+1)
		return
	}
	s.values = append(s.values, value)
}

// Memory is a Page wired to in-memory widgets and location.
type Memory struct {
	*Page
	Table  *MemoryTable
	Select *MemorySelect
	Nav    *querystate.Location
}

// NewMemory builds a page positioned at uri. Any Table, Select or Navigator in
// opts is replaced.
func NewMemory(uri string, pageSize int, opts Options) (*Memory, error) {
	m := &Memory{
		Table:  &MemoryTable{Size: pageSize},
		Select: &MemorySelect{},
		Nav:    querystate.NewLocation(uri),
	}
	opts.Table, opts.Select, opts.Navigator = m.Table, m.Select, m.Nav

	page, err := New(opts)
	if err != nil {
		return nil, err
	}
	m.Page = page
	m.Table.OnRefresh = page.TableRefreshStarted
	return m, nil
}

// UserSort simulates a header click: the table takes the new sort and
// refreshes, and the page reads it back.
func (m *Memory) UserSort(column string, descending bool) {
	m.SortChangedByUser()
	m.Table.SetSortParameters(column, descending)
	m.Table.Refresh()
}

// ClampPage moves the table back onto the last page when a filter change left
// it past the end, refreshing so the row number follows. It reports whether
// the page moved.
func (m *Memory) ClampPage() bool {
	last := m.PageCount() - 1
	if m.Table.Page <= last {
		return false
	}
	m.Table.Page = last
	m.Table.Refresh()
	return true
}

// Navigate pushes uri onto the location history and reseeds the page from it.
func (m *Memory) Navigate(uri string) {
	m.Nav.Navigate(uri)
	m.LocationChanged()
}

// Back returns to the previous location, if any, and reseeds the page.
func (m *Memory) Back() bool {
	if !m.Nav.Back() {
		return false
	}
	m.LocationChanged()
	return true
}
