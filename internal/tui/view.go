package tui

import (
	"fmt"
	"strings"

	"github.com/dupehound/dupehound/internal/report"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	var b strings.Builder

	b.WriteString(titleStyle.Render("dupehound · duplicate groups"))
	b.WriteString("\n")
	if len(m.groups) == 0 {
		b.WriteString("\nNo duplicate files found ✅\n\npress q to quit\n")
		return b.String()
	}
	b.WriteString(tableBorderStyle.Render(m.table.View()))
	b.WriteString("\n")
	b.WriteString(m.memberPane())
	b.WriteString("\n")

	if m.confirmDelete {
		b.WriteString(popupStyle.Render(fmt.Sprintf(
			"Delete %d selected file(s)?  y = delete, any other key = cancel", m.countSelected())))
		b.WriteString("\n")
	}
	if m.showHelp {
		b.WriteString(helpText)
	}
	b.WriteString(m.statusBar())
	return b.String()
}

// memberPane lists the members of the current group; the cursor member is
// highlighted, marked members carry a [x].
func (m Model) memberPane() string {
	g := m.currentGroup()
	if g == nil {
		return ""
	}
	var lines []string
	lines = append(lines, fmt.Sprintf("members of %s:", shortPath(g.Directory, 60)))
	for i, p := range g.Paths {
		mark := "[ ]"
		if m.selected[p] {
			mark = selectedStyle.Render("[x]")
		}
		label := memberLabel(*g, i)
		if i == m.memberCursor {
			label = cursorStyle.Render("> " + label)
		} else {
			label = "  " + label
		}
		lines = append(lines, fmt.Sprintf(" %s %s", mark, label))
	}
	return memberPaneStyle.Render(strings.Join(lines, "\n"))
}

func (m Model) statusBar() string {
	left := fmt.Sprintf(" %d groups  %s wasted  %d marked ",
		len(m.groups), report.FormatBytes(m.wasted), m.countSelected())
	if m.statusMessage != "" {
		left += "| " + m.statusMessage + " "
	}
	return statusStyle.Render(left)
}

const helpText = `
  ↑/↓        select group
  ←/→        select member
  space      mark/unmark member for deletion
  a          mark all but the first copy
  d          delete marked files (asks for confirmation)
  c          copy member path to clipboard
  ?          toggle this help
  q          quit
`
