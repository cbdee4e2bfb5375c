// Package tui is the interactive browser for duplicate groups: inspect
// members, pick which copies to drop, and delete them after confirmation.
package tui

import (
	"path/filepath"
	"strconv"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dupehound/dupehound/internal/dupes"
	"github.com/dupehound/dupehound/internal/report"
	"github.com/rs/zerolog"
)

var (
	tableBorderStyle = lipgloss.NewStyle().
				BorderStyle(lipgloss.NormalBorder()).
				BorderForeground(lipgloss.Color("240"))

	memberPaneStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("240"))

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("6")).
			Bold(true).
			Padding(0, 1)

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9")).
			Bold(true)

	cursorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("12")).
			Bold(true)

	statusStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("236")).
			Foreground(lipgloss.Color("7"))

	popupStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("12")).
			Background(lipgloss.Color("235")).
			Padding(1, 4)
)

// Model holds the state of the duplicate browser.
type Model struct {
	table   table.Model
	groups  []dupes.Group
	wasted  int64
	log     zerolog.Logger
	deleter Deleter

	memberCursor int
	selected     map[string]bool // member path -> marked for deletion

	confirmDelete bool
	showHelp      bool
	statusMessage string
	quitting      bool
	width, height int
}

// Deleter performs the actual removal; swappable in tests.
type Deleter func(groups []dupes.Group, selected map[string]bool, log zerolog.Logger) (deleted []string, freed int64, failed int)

// NewModel builds the browser over a completed scan's groups.
func NewModel(groups []dupes.Group, wasted int64, log zerolog.Logger, del Deleter) Model {
	columns := []table.Column{
		{Title: "Directory", Width: 40},
		{Title: "Copies", Width: 6},
		{Title: "Size", Width: 10},
		{Title: "Wasted", Width: 10},
	}
	rows := groupRows(groups)
	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(12),
	)
	return Model{
		table:    t,
		groups:   groups,
		wasted:   wasted,
		log:      log,
		deleter:  del,
		selected: map[string]bool{},
	}
}

func groupRows(groups []dupes.Group) []table.Row {
	rows := make([]table.Row, 0, len(groups))
	for _, g := range groups {
		rows = append(rows, table.Row{
			g.Directory,
			strconv.Itoa(len(g.Paths)),
			report.FormatBytes(g.Size),
			report.FormatBytes(g.WastedBytes()),
		})
	}
	return rows
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) currentGroup() *dupes.Group {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.groups) {
		return nil
	}
	return &m.groups[i]
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.table.SetHeight(clamp(msg.Height-14, 4, 20))
		return m, nil

	case statusMsg:
		m.statusMessage = string(msg)
		return m, nil

	case tea.KeyMsg:
		if m.confirmDelete {
			return m.updateConfirm(msg)
		}
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit
		case "?":
			m.showHelp = !m.showHelp
			return m, nil
		case "left", "h":
			if m.memberCursor > 0 {
				m.memberCursor--
			}
			return m, nil
		case "right", "l":
			if g := m.currentGroup(); g != nil && m.memberCursor < len(g.Paths)-1 {
				m.memberCursor++
			}
			return m, nil
		case " ":
			return m.toggleMember(), nil
		case "a":
			return m.selectRedundant(), nil
		case "c":
			return m, m.copyMemberPath()
		case "d":
			if m.countSelected() == 0 {
				m.statusMessage = "nothing selected, press space or a to mark copies"
				return m, nil
			}
			m.confirmDelete = true
			return m, nil
		}
	}

	var cmd tea.Cmd
	prev := m.table.Cursor()
	m.table, cmd = m.table.Update(msg)
	if m.table.Cursor() != prev {
		m.memberCursor = 0
	}
	return m, cmd
}

func (m Model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "enter":
		m.confirmDelete = false
		return m.deleteSelected()
	default:
		m.confirmDelete = false
		m.statusMessage = "deletion cancelled"
		return m, nil
	}
}

// toggleMember marks or unmarks the member under the cursor. The last
// unmarked copy of a group cannot be marked.
func (m Model) toggleMember() Model {
	g := m.currentGroup()
	if g == nil || m.memberCursor >= len(g.Paths) {
		return m
	}
	p := g.Paths[m.memberCursor]
	if m.selected[p] {
		delete(m.selected, p)
		return m
	}
	unmarked := 0
	for _, q := range g.Paths {
		if !m.selected[q] {
			unmarked++
		}
	}
	if unmarked <= 1 {
		m.statusMessage = "one copy must survive in each group"
		return m
	}
	m.selected[p] = true
	return m
}

// selectRedundant marks every member of the current group except the first.
func (m Model) selectRedundant() Model {
	g := m.currentGroup()
	if g == nil {
		return m
	}
	for i, p := range g.Paths {
		if i == 0 {
			delete(m.selected, p)
			continue
		}
		m.selected[p] = true
	}
	return m
}

func (m Model) countSelected() int {
	n := 0
	for _, v := range m.selected {
		if v {
			n++
		}
	}
	return n
}

type statusMsg string

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func shortPath(p string, max int) string {
	if len(p) <= max {
		return p
	}
	return "…" + p[len(p)-max+1:]
}

func memberLabel(g dupes.Group, i int) string {
	return filepath.Base(g.Paths[i])
}
