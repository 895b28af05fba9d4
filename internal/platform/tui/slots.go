package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-parallax/internal/storage"
)

// SlotsModel is the save-slot browser shown over the map.
type SlotsModel struct {
	slots  []storage.SlotInfo
	err    error
	table  table.Model
	width  int
	height int
}

// NewSlotsModel creates a browser over slots. A non-nil err is shown
// instead of the table.
func NewSlotsModel(slots []storage.SlotInfo, err error, width, height int) SlotsModel {
	m := SlotsModel{slots: slots, err: err, width: width, height: height}
	m.table = m.createTable()
	m.updateTableRows()
	return m
}

// createTable creates a new table with appropriate columns.
func (m *SlotsModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Slot", Width: 16},
		{Title: "Map", Width: 5},
		{Title: "Layers", Width: 7},
		{Title: "Saved", Width: 14},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-8, 3)), // Leave room for title, help, and margins
	)

	// Table styles
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// updateTableRows updates the table with current slots.
func (m *SlotsModel) updateTableRows() {
	rows := make([]table.Row, len(m.slots))
	for i, s := range m.slots {
		saved := "-"
		if !s.UpdatedAt.IsZero() {
			saved = s.UpdatedAt.Format("Jan 02 15:04")
		}
		rows[i] = table.Row{
			s.Name,
			fmt.Sprintf("%d", s.MapID),
			fmt.Sprintf("%d", s.Layers),
			saved,
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Update passes navigation keys to the table.
func (m SlotsModel) Update(msg tea.Msg) (SlotsModel, tea.Cmd) {
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// Selected returns the highlighted slot name.
func (m SlotsModel) Selected() (string, bool) {
	if m.err != nil || len(m.slots) == 0 {
		return "", false
	}
	i := m.table.Cursor()
	if i < 0 || i >= len(m.slots) {
		return "", false
	}
	return m.slots[i].Name, true
}

// View renders the browser.
func (m SlotsModel) View() string {
	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		MarginBottom(1)
	b.WriteString(titleStyle.Render("SAVED SESSIONS"))
	b.WriteString("\n\n")

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	switch {
	case m.err != nil:
		b.WriteString(boxStyle.Render(errorStyle.Render(m.err.Error())))
	case len(m.slots) == 0:
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		b.WriteString(boxStyle.Render(emptyStyle.Render("No saves yet.\nUse :save [slot] to create one.")))
	default:
		b.WriteString(boxStyle.Render(m.table.View()))
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("↑/↓ select • enter load • esc back"))

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, b.String())
}
