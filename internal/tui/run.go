package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dupehound/dupehound/internal/dupes"
	"github.com/rs/zerolog"
)

// Run starts the interactive browser over a completed scan.
func Run(groups []dupes.Group, wasted int64, log zerolog.Logger) error {
	m := NewModel(groups, wasted, log, SweepDeleter)
	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}
	return nil
}
