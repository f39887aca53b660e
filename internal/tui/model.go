// internal/tui/model.go
// Package tui is the interactive report viewer. It plays the part of the
// sortable results table and the implementation picker for a report page.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mwiater/primeview/internal/filtergroup"
	"github.com/mwiater/primeview/internal/logging"
	"github.com/mwiater/primeview/internal/reports"
	"github.com/mwiater/primeview/internal/reportview"
)

// viewState represents the screen currently receiving keys.
type viewState int

const (
	// viewResults is the results grid.
	viewResults viewState = iota
	// viewPresetName prompts for the name of a new preset.
	viewPresetName
	// viewPresets lists the stored presets.
	viewPresets
	// viewLanguages is the implementation picker.
	viewLanguages
	// viewLocation prompts for a location to open.
	viewLocation
)

// flagKey binds a number key to one filter flag.
type flagKey struct {
	key   string
	group filtergroup.Group
	flag  filtergroup.Flag
}

// flagKeys assigns 1..9 then 0 to the flags in group order.
func flagKeys() []flagKey {
	digits := "1234567890"
	var keys []flagKey
	for _, g := range filtergroup.Groups() {
		for _, f := range g.Flags {
			if len(keys) == len(digits) {
				return keys
			}
			keys = append(keys, flagKey{key: string(digits[len(keys)]), group: g, flag: f})
		}
	}
	return keys
}

type model struct {
	page          *reportview.Memory
	state         viewState
	grid          table.Model
	nameInput     textinput.Model
	locInput      textinput.Model
	flags         []flagKey
	presetCursor  int
	langCursor    int
	status        string
	width, height int
}

func newModel(page *reportview.Memory) *model {
	columns := make([]table.Column, 0, len(reportview.Headers()))
	for i, title := range reportview.Headers() {
		width := 10
		switch i {
		case 0:
			width = 4
		case 1, 3:
			width = 16
		}
		columns = append(columns, table.Column{Title: title, Width: width})
	}

	grid := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(page.Table.PageSize()+1),
	)

	ti := textinput.New()
	ti.Placeholder = "preset name"
	ti.Prompt = "Preset name: "
	ti.CharLimit = 64

	loc := textinput.New()
	loc.Prompt = "Open: "
	loc.CharLimit = 256

	m := &model{
		page:      page,
		state:     viewResults,
		grid:      grid,
		nameInput: ti,
		locInput:  loc,
		flags:     flagKeys(),
	}
	m.page.AfterRender()
	m.refreshRows()
	return m
}

// Init implements tea.Model.
func (m *model) Init() tea.Cmd {
	return nil
}

// Update handles a message and then runs the page's post-render step.
func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.grid.SetWidth(msg.Width)
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch m.state {
		case viewPresetName:
			cmd = m.updatePresetName(msg)
		case viewPresets:
			m.updatePresets(msg)
		case viewLanguages:
			m.updateLanguages(msg)
		case viewLocation:
			cmd = m.updateLocation(msg)
		default:
			var quit bool
			cmd, quit = m.updateResults(msg)
			if quit {
				return m, tea.Quit
			}
		}
	}

	if m.page.AfterRender() {
		logging.LogDebug("tui: location %s", m.page.Location())
	}
	if m.page.ClampPage() {
		logging.LogDebug("tui: moved to last page %d", m.page.Table.Page+1)
	}
	m.refreshRows()
	return m, cmd
}

func (m *model) updateResults(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch key := msg.String(); key {
	case "q", "esc":
		return nil, true
	case "s", "S":
		m.cycleSortColumn(key == "s")
	case "r":
		column, desc := m.page.Table.SortParameters()
		m.page.UserSort(column, !desc)
	case "c":
		m.page.ClearFilters()
	case "i":
		m.page.ToggleSystemInfoPanel()
	case "f":
		m.page.ToggleFilterPanel()
	case "p":
		m.page.ToggleFilterPresetPanel()
	case "n":
		m.state = viewPresetName
		m.nameInput.SetValue(m.page.PresetName)
		return m.nameInput.Focus(), false
	case "P":
		m.state = viewPresets
		m.presetCursor = 0
	case "l":
		m.state = viewLanguages
		m.langCursor = 0
	case "g":
		m.state = viewLocation
		m.locInput.SetValue(m.page.Location())
		return m.locInput.Focus(), false
	case "b", "backspace":
		if !m.page.Back() {
			m.status = "no earlier location"
		} else {
			m.status = ""
		}
	case "pgdown", "right":
		m.turnPage(1)
	case "pgup", "left":
		m.turnPage(-1)
	default:
		for _, fk := range m.flags {
			if fk.key == key {
				m.page.ToggleFlag(fk.group, fk.flag.Token)
				return nil, false
			}
		}
		var cmd tea.Cmd
		m.grid, cmd = m.grid.Update(msg)
		return cmd, false
	}
	return nil, false
}

func (m *model) cycleSortColumn(forward bool) {
	columns := reports.Columns()
	current, desc := m.page.Table.SortParameters()
	idx := 0
	for i, c := range columns {
		if strings.EqualFold(c.Key, current) {
			idx = i
			break
		}
	}
	if forward {
		idx = (idx + 1) % len(columns)
	} else {
		idx = (idx - 1 + len(columns)) % len(columns)
	}
	m.page.UserSort(columns[idx].Key, desc)
}

func (m *model) turnPage(delta int) {
	next := m.page.Table.Page + delta
	if next < 0 || next >= m.page.PageCount() {
		return
	}
	m.page.Table.Page = next
	m.page.Table.Refresh()
}

func (m *model) updatePresetName(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		m.nameInput.Blur()
		m.state = viewResults
		return nil
	case "enter":
		m.page.PresetName = m.nameInput.Value()
		if err := m.page.AddPreset(); err != nil {
			m.status = fmt.Sprintf("could not save preset: %v", err)
			logging.LogEvent("tui: %s", m.status)
		} else {
			m.status = ""
		}
		m.nameInput.Reset()
		m.nameInput.Blur()
		m.state = viewResults
		return nil
	}
	var cmd tea.Cmd
	m.nameInput, cmd = m.nameInput.Update(msg)
	return cmd
}

func (m *model) updateLocation(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		m.locInput.Blur()
		m.state = viewResults
		return nil
	case "enter":
		if uri := strings.TrimSpace(m.locInput.Value()); uri != "" && uri != m.page.Location() {
			m.page.Navigate(uri)
		}
		m.locInput.Blur()
		m.state = viewResults
		return nil
	}
	var cmd tea.Cmd
	m.locInput, cmd = m.locInput.Update(msg)
	return cmd
}

func (m *model) updatePresets(msg tea.KeyMsg) {
	count := len(m.page.Presets())
	switch msg.String() {
	case "esc", "q":
		m.state = viewResults
	case "up", "k":
		if m.presetCursor > 0 {
			m.presetCursor--
		}
	case "down", "j":
		if m.presetCursor < count-1 {
			m.presetCursor++
		}
	case "enter":
		if m.page.ApplyPreset(m.presetCursor) {
			m.state = viewResults
		}
	case "x", "delete":
		if err := m.page.RemovePreset(m.presetCursor); err != nil {
			m.status = fmt.Sprintf("could not remove preset: %v", err)
			logging.LogEvent("tui: %s", m.status)
		}
		if m.presetCursor >= len(m.page.Presets()) && m.presetCursor > 0 {
			m.presetCursor--
		}
	}
}

func (m *model) updateLanguages(msg tea.KeyMsg) {
	impls := m.page.Implementations()
	switch msg.String() {
	case "esc", "q", "enter":
		m.state = viewResults
	case "up", "k":
		if m.langCursor > 0 {
			m.langCursor--
		}
	case "down", "j":
		if m.langCursor < len(impls)-1 {
			m.langCursor++
		}
	case " ", "x":
		if m.langCursor < len(impls) {
			m.page.Select.Toggle(impls[m.langCursor])
			m.page.ImplementationSelectionChanged()
		}
	}
}

func (m *model) refreshRows() {
	results := m.page.PageResults()
	rows := make([]table.Row, 0, len(results))
	for i, r := range results {
		rows = append(rows, table.Row(m.page.FormatRow(m.page.RowNumber()+i+1, r)))
	}
	m.grid.SetRows(rows)
}

// Run starts the interactive viewer for page.
func Run(ctx context.Context, page *reportview.Memory) error {
	p := tea.NewProgram(newModel(page), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Background(lipgloss.Color("62")).Foreground(lipgloss.Color("230")).Padding(0, 1)
	panelStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1)
	footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	cursorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)
