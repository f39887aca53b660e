// internal/tui/model_test.go
package tui

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mwiater/primeview/internal/kvstore"
	"github.com/mwiater/primeview/internal/reports"
	"github.com/mwiater/primeview/internal/reportview"
)

type staticReader struct{ report *reports.Report }

func (s staticReader) GetReport(context.Context, string) (*reports.Report, error) {
	return s.report, nil
}

func testModel(t *testing.T, uri string) *model {
	t.Helper()
	user := "tester"
	report := &reports.Report{
		ID:   "r1",
		User: &user,
		Results: []reports.Result{
			{Implementation: "c", Threads: 1, Passes: 100, Duration: 5, Algorithm: "base", Faithful: true},
			{Implementation: "rust", Threads: 4, Passes: 300, Duration: 5, Algorithm: "wheel"},
			{Implementation: "go", Threads: 1, Passes: 200, Duration: 5, Algorithm: "base", Faithful: true},
		},
	}
	page, err := reportview.NewMemory(uri, 2, reportview.Options{
		Store:   kvstore.NewMemory(),
		Reports: staticReader{report: report},
	})
	if err != nil {
		t.Fatalf("NewMemory: %v", err)
	}
	page.SetParameters()
	page.Initialize(context.Background())
	return newModel(page)
}

func press(m *model, keys ...string) *model {
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case " ":
			msg = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
		case "down":
			msg = tea.KeyMsg{Type: tea.KeyDown}
		case "pgdown":
			msg = tea.KeyMsg{Type: tea.KeyPgDown}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		next, _ := m.Update(msg)
		m = next.(*model)
	}
	return m
}

func TestFlagKeysCoverEveryFlag(t *testing.T) {
	keys := flagKeys()
	if len(keys) != 10 {
		t.Fatalf("got %d flag keys", len(keys))
	}
	if keys[3].group.Key != "fa" || keys[3].flag.Token != "wh" || keys[3].key != "4" {
		t.Fatalf("key 4 = %+v", keys[3])
	}
	if keys[9].key != "0" || keys[9].group.Key != "fb" {
		t.Fatalf("key 0 = %+v", keys[9])
	}
}

func TestFlagToggleRewritesLocation(t *testing.T) {
	m := testModel(t, "/report?id=r1")
	m = press(m, "4")
	if got := m.page.Location(); got != "/report?id=r1&fa=wh" {
		t.Fatalf("location = %q", got)
	}
	for _, row := range m.grid.Rows() {
		if row[1] == "Rust" {
			t.Fatalf("wheel result still listed: %v", row)
		}
	}
	m = press(m, "4", "c")
	if got := m.page.Location(); got != "/report?id=r1" {
		t.Fatalf("location = %q", got)
	}
}

func TestSortKeys(t *testing.T) {
	m := testModel(t, "/report")
	m = press(m, "s")
	if m.page.SortColumn != reports.Columns()[0].Key || !m.page.SortDescending {
		t.Fatalf("sort = %s/%v", m.page.SortColumn, m.page.SortDescending)
	}
	m = press(m, "S", "r")
	if m.page.SortColumn != "pp" || m.page.SortDescending {
		t.Fatalf("sort = %s/%v", m.page.SortColumn, m.page.SortDescending)
	}
	if got := m.page.Location(); got != "/report?sd=false" {
		t.Fatalf("location = %q", got)
	}
	if m.page.SortAdoptions() != 1 {
		t.Fatalf("user sorts were adopted back: %d", m.page.SortAdoptions())
	}
}

func TestPanelToggles(t *testing.T) {
	m := testModel(t, "/report")
	m = press(m, "i", "f", "p")
	if got := m.page.Location(); got != "/report?hi=true&hf=true&hp=true" {
		t.Fatalf("location = %q", got)
	}
	view := m.View()
	if strings.Contains(view, "Presets") || strings.Contains(view, "Parallelism") {
		t.Fatal("hidden panels rendered")
	}
}

func TestPresetFlow(t *testing.T) {
	m := testModel(t, "/report")
	m = press(m, "1", "n", "fast", "enter")
	if m.state != viewResults {
		t.Fatalf("state = %v", m.state)
	}
	presets := m.page.Presets()
	if len(presets) != 1 || presets[0].Name != "fast" || presets[0].ParallelismText != "st" {
		t.Fatalf("presets = %+v", presets)
	}

	m = press(m, "c", "P", "enter")
	if m.page.PresetName != "fast" || !strings.Contains(m.page.Location(), "fp=st") {
		t.Fatalf("preset not applied: name=%q location=%q", m.page.PresetName, m.page.Location())
	}

	m = press(m, "P", "x", "esc")
	if len(m.page.Presets()) != 0 {
		t.Fatal("preset not removed")
	}
}

func TestQuitKeyIgnoredWhileNaming(t *testing.T) {
	m := testModel(t, "/report")
	m = press(m, "n", "q")
	if m.state != viewPresetName || m.nameInput.Value() != "q" {
		t.Fatalf("state=%v value=%q", m.state, m.nameInput.Value())
	}
	m = press(m, "esc")
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
}

func TestLanguagePicker(t *testing.T) {
	m := testModel(t, "/report")
	m = press(m, "l", "down", " ", "esc")
	if got := m.page.Location(); got != "/report?fi=go" {
		t.Fatalf("location = %q", got)
	}
}

func TestPaging(t *testing.T) {
	m := testModel(t, "/report")
	m = press(m, "pgdown")
	if m.page.Table.Page != 1 || m.page.RowNumber() != 2 {
		t.Fatalf("page=%d row=%d", m.page.Table.Page, m.page.RowNumber())
	}
	if rows := m.grid.Rows(); len(rows) != 1 || rows[0][0] != "3" {
		t.Fatalf("rows = %v", rows)
	}
	m = press(m, "pgdown")
	if m.page.Table.Page != 1 {
		t.Fatal("paged past the end")
	}
}

func TestFilterChangeClampsPage(t *testing.T) {
	m := testModel(t, "/report")
	m = press(m, "pgdown")
	if m.page.Table.Page != 1 {
		t.Fatalf("page = %d", m.page.Table.Page)
	}

	// Hiding single-threaded results leaves one page.
	m = press(m, "1")
	if m.page.Table.Page != 0 || m.page.RowNumber() != 0 {
		t.Fatalf("page=%d row=%d count=%d", m.page.Table.Page, m.page.RowNumber(), m.page.PageCount())
	}
	rows := m.grid.Rows()
	if len(rows) != 1 || rows[0][0] != "1" || rows[0][1] != "Rust" {
		t.Fatalf("rows = %v", rows)
	}
	m = press(m, "left")
	if m.page.Table.Page != 0 || len(m.grid.Rows()) != 1 {
		t.Fatalf("after left: page=%d rows=%v", m.page.Table.Page, m.grid.Rows())
	}
}

func TestOpenLocationAndBack(t *testing.T) {
	m := testModel(t, "/report")
	m = press(m, "g")
	if m.state != viewLocation || m.locInput.Value() != "/report" {
		t.Fatalf("state=%v value=%q", m.state, m.locInput.Value())
	}
	m.locInput.SetValue("/report?sc=im&sd=false")
	m = press(m, "enter")
	if m.state != viewResults || m.page.Location() != "/report?sc=im&sd=false" {
		t.Fatalf("state=%v location=%q", m.state, m.page.Location())
	}
	if column, desc := m.page.Table.SortParameters(); column != "im" || desc {
		t.Fatalf("table sort = %s/%v", column, desc)
	}

	m = press(m, "b")
	if m.page.Location() != "/report" || m.page.SortColumn != "pp" {
		t.Fatalf("after back: %q sort %s", m.page.Location(), m.page.SortColumn)
	}
	m = press(m, "b")
	if m.status != "no earlier location" {
		t.Fatalf("status = %q", m.status)
	}
}

func TestLanguagePanelNotesMissingMap(t *testing.T) {
	m := press(testModel(t, "/report"), "l")
	if view := m.View(); !strings.Contains(view, "language map unavailable") {
		t.Fatalf("view missing note:\n%s", view)
	}
}

func TestView(t *testing.T) {
	m := testModel(t, "/report?fa=wh")
	view := m.View()
	for _, want := range []string{"Report generated by tester", "/report?fa=wh", "Algorithm", "Results: 3"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}
