package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/mwiater/primeview/internal/reports"
	"github.com/mwiater/primeview/internal/util"
)

// View renders the header, the open panels, the grid and the footer.
func (m *model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(m.page.Title()) + "\n")
	if report := m.page.Report(); report == nil {
		b.WriteString(errorStyle.Render("Report unavailable") + "\n")
	} else if !m.page.HideSystemInformation {
		b.WriteString(panelStyle.Render(systemInfo(report)) + "\n")
	}

	var panels []string
	if !m.page.HideFilters {
		panels = append(panels, panelStyle.Render(m.filterPanel()))
	}
	if !m.page.HideFilterPresets {
		panels = append(panels, panelStyle.Render(m.presetPanel()))
	}
	if len(panels) > 0 {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, panels...) + "\n")
	}

	switch m.state {
	case viewPresetName:
		b.WriteString(m.nameInput.View() + "\n")
	case viewLanguages:
		b.WriteString(panelStyle.Render(m.languagePanel()) + "\n")
	case viewLocation:
		b.WriteString(m.locInput.View() + "\n")
	}

	b.WriteString(m.grid.View() + "\n")
	if m.status != "" {
		b.WriteString(errorStyle.Render(m.status) + "\n")
	}

	column, desc := m.page.Table.SortParameters()
	direction := "asc"
	if desc {
		direction = "desc"
	}
	b.WriteString(footerStyle.Render(fmt.Sprintf("page %d/%d  sort %s %s  %s",
		m.page.Table.Page+1, m.page.PageCount(), column, direction, m.page.Location())) + "\n")
	b.WriteString(footerStyle.Render("s/S sort  r reverse  1-0 flags  c clear  l languages  n save preset  P presets  i/f/p panels  g open  b back  q quit"))
	return b.String()
}

func systemInfo(r *reports.Report) string {
	var lines []string
	if r.Date != nil {
		lines = append(lines, "Generated "+humanize.Time(*r.Date))
	}
	if r.CPU != nil {
		lines = append(lines, fmt.Sprintf("CPU: %s (%d cores, %d logical)", r.CPU.Brand, r.CPU.Cores, r.CPU.LogicalCores))
	}
	if r.OS != nil {
		lines = append(lines, fmt.Sprintf("OS: %s %s %s", r.OS.Platform, r.OS.Release, r.OS.Arch))
	}
	lines = append(lines, fmt.Sprintf("Results: %s", humanize.Comma(int64(len(r.Results)))))
	return strings.Join(lines, "\n")
}

func (m *model) filterPanel() string {
	var lines []string
	var current string
	for _, fk := range m.flags {
		if fk.group.Name != current {
			current = fk.group.Name
			lines = append(lines, current)
		}
		lines = append(lines, fmt.Sprintf("  %s %s %s", fk.key, util.BoolMark(m.page.Flag(fk.group, fk.flag.Token)), fk.flag.Label))
	}
	impls := "all"
	if selected := m.page.FilterImplementations(); len(selected) > 0 {
		names := make([]string, 0, len(selected))
		for _, key := range selected {
			names = append(names, m.page.LanguageInfo(key).Name)
		}
		impls = util.TruncateRunes(strings.Join(names, ", "), 40)
	}
	lines = append(lines, "Implementations: "+impls)
	return strings.Join(lines, "\n")
}

func (m *model) presetPanel() string {
	presets := m.page.Presets()
	if len(presets) == 0 {
		return "Presets\n  (none)"
	}
	lines := []string{"Presets"}
	for i, p := range presets {
		line := "  " + p.Name
		if m.state == viewPresets && i == m.presetCursor {
			line = cursorStyle.Render("> " + p.Name)
		}
		lines = append(lines, line)
	}
	if m.state == viewPresets {
		lines = append(lines, footerStyle.Render("enter apply  x remove  esc back"))
	}
	return strings.Join(lines, "\n")
}

func (m *model) languagePanel() string {
	impls := m.page.Implementations()
	if len(impls) == 0 {
		return "Implementations\n  (none)"
	}
	lines := []string{"Implementations"}
	for i, key := range impls {
		line := fmt.Sprintf("%s %s", util.BoolMark(m.page.Select.Selected(key)), util.PadRight(m.page.LanguageInfo(key).Name, 16))
		if i == m.langCursor {
			line = cursorStyle.Render("> " + line)
		} else {
			line = "  " + line
		}
		lines = append(lines, line)
	}
	if !m.page.LanguageMapLoaded() {
		lines = append(lines, errorStyle.Render("language map unavailable"))
	}
	lines = append(lines, footerStyle.Render("space toggle  esc back"))
	return strings.Join(lines, "\n")
}
