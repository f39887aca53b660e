// internal/sortbridge/bridge.go
// Package sortbridge reconciles a table widget's sort column and direction
// with the sort fields bound to the location, without the two feeding each
// other's changes back in a loop.
package sortbridge

import (
	"strings"

	"github.com/mwiater/primeview/internal/logging"
)

// State is the bridge's reconciliation state.
type State int

const (
	// Idle means the widget's sort matches the bound fields.
	Idle State = iota
	// PendingTableUpdate means the widget was told to adopt the bound sort and
	// has not yet started the resulting refresh.
	PendingTableUpdate
)

func (s State) String() string {
	if s == PendingTableUpdate {
		return "pending-table-update"
	}
	return "idle"
}

// Table is the widget side of the bridge.
type Table interface {
	// SortParameters returns the widget's current sort.
	SortParameters() (column string, descending bool)
	// SetSortParameters changes the widget's sort and reports whether
	// anything changed.
	SetSortParameters(column string, descending bool) bool
	// Refresh re-renders the widget; it begins by calling RefreshStarted.
	Refresh()
}

// Bridge is owned by the view. It is not safe for concurrent use.
type Bridge struct {
	table Table
	get   func() (string, bool)
	set   func(string, bool)

	state     State
	userSort  bool
	adoptions int
}

// New binds table to the sort fields reachable through get and set.
func New(table Table, get func() (string, bool), set func(string, bool)) *Bridge {
	return &Bridge{table: table, get: get, set: set}
}

// State returns the current reconciliation state.
func (b *Bridge) State() State { return b.state }

// Adoptions counts the instructions sent to the widget to adopt the bound sort.
func (b *Bridge) Adoptions() int { return b.adoptions }

// UserSorted records that the widget is about to refresh because the user
// changed its sort. The next RefreshStarted reads the widget's sort back.
func (b *Bridge) UserSorted() {
	b.userSort = true
}

// AfterRender pushes the bound sort onto the widget when they differ and no
// user sort is being processed. It reports whether the widget was instructed.
func (b *Bridge) AfterRender() bool {
	if b.state != Idle || b.userSort {
		return false
	}

	column, desc := b.get()
	tableColumn, tableDesc := b.table.SortParameters()
	if strings.EqualFold(column, tableColumn) && desc == tableDesc {
		return false
	}

	b.transition(PendingTableUpdate)
	b.adoptions++
	if !b.table.SetSortParameters(column, desc) {
		b.transition(Idle)
		return true
	}
	// Stays pending until the widget's refresh confirms via RefreshStarted.
	b.table.Refresh()
	return true
}

// RefreshStarted is called by the widget when a refresh begins. After a
// user-driven sort it copies the widget's sort into the bound fields and
// reports whether they changed, so the caller can rewrite the location.
func (b *Bridge) RefreshStarted() bool {
	if b.state == PendingTableUpdate {
		// Our own adoption; the widget already holds the bound sort.
		b.transition(Idle)
		b.userSort = false
		return false
	}
	if !b.userSort {
		return false
	}
	b.userSort = false

	tableColumn, tableDesc := b.table.SortParameters()
	column, desc := b.get()

	changed := false
	if !strings.EqualFold(tableColumn, column) {
		column = tableColumn
		changed = true
	}
	if tableDesc != desc {
		desc = tableDesc
		changed = true
	}
	if changed {
		b.set(column, desc)
	}
	return changed
}

func (b *Bridge) transition(next State) {
	if b.state == next {
		return
	}
	logging.LogDebug("sortbridge: %s -> %s", b.state, next)
	b.state = next
}
