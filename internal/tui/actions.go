package tui

import (
	"fmt"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dupehound/dupehound/internal/dupes"
	"github.com/dupehound/dupehound/internal/report"
	"github.com/dupehound/dupehound/internal/sweep"
	"github.com/rs/zerolog"
)

// SweepDeleter is the production Deleter backed by the sweep package.
func SweepDeleter(groups []dupes.Group, selected map[string]bool, log zerolog.Logger) (deleted []string, freed int64, failed int) {
	if err := sweep.Validate(groups, selected); err != nil {
		log.Error().Err(err).Msg("refusing deletion")
		return nil, 0, 0
	}
	out := sweep.Delete(groups, selected, log)
	return out.Deleted, out.FreedBytes, len(out.Failed)
}

// deleteSelected runs the deleter and rebuilds the group list without the
// removed members.
func (m Model) deleteSelected() (tea.Model, tea.Cmd) {
	deleted, freed, failed := m.deleter(m.groups, m.selected, m.log)
	if len(deleted) == 0 && failed == 0 {
		m.statusMessage = "nothing deleted"
		return m, nil
	}

	gone := map[string]bool{}
	for _, p := range deleted {
		gone[p] = true
	}
	var remaining []dupes.Group
	var wasted int64
	for _, g := range m.groups {
		var paths []string
		for _, p := range g.Paths {
			if !gone[p] {
				paths = append(paths, p)
			}
		}
		if len(paths) >= 2 {
			kept := dupes.Group{Paths: paths, Size: g.Size, Directory: g.Directory}
			remaining = append(remaining, kept)
			wasted += kept.WastedBytes()
		}
	}
	m.groups = remaining
	m.wasted = wasted
	m.selected = map[string]bool{}
	m.memberCursor = 0
	m.table.SetRows(groupRows(remaining))
	if m.table.Cursor() >= len(remaining) && len(remaining) > 0 {
		m.table.SetCursor(len(remaining) - 1)
	}

	msg := fmt.Sprintf("deleted %d file(s), freed %s", len(deleted), report.FormatBytes(freed))
	if failed > 0 {
		msg += fmt.Sprintf(", %d failed (see log)", failed)
	}
	m.statusMessage = msg
	return m, nil
}

// copyMemberPath copies the cursor member's full path to the clipboard.
func (m Model) copyMemberPath() tea.Cmd {
	g := m.currentGroup()
	if g == nil || m.memberCursor >= len(g.Paths) {
		return nil
	}
	p := g.Paths[m.memberCursor]
	if err := clipboard.WriteAll(p); err != nil {
		return func() tea.Msg { return statusMsg("clipboard unavailable: " + err.Error()) }
	}
	return func() tea.Msg { return statusMsg("copied path to clipboard") }
}
