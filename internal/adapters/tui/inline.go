package tui

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/term"
)

// getTerminalWidth returns the current terminal width, defaulting to 80.
func getTerminalWidth() int {
	w, _, err := term.GetSize(os.Stdout.Fd())
	if err != nil || w < 40 {
		return 80
	}
	return w
}

// viewInline renders the compact two-line timer.
func (m Model) viewInline() string {
	color := modeColor(m.theme, m.snap.Mode, m.snap.Running)
	accent := lipgloss.NewStyle().Foreground(color).Bold(true)
	dim := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.ColorHelp))

	var b strings.Builder

	line := fmt.Sprintf("  🍅 %s  %s", m.snap.Mode.Label(), m.snap.Display)
	switch {
	case m.finished():
		line += "  complete!"
	case !m.snap.Running:
		line += "  ⏸ PAUSED"
	}
	b.WriteString(accent.Render(line))
	b.WriteString("\n")

	bar := m.progress
	bar.FullColor = string(color)
	bar.Width = barWidth(m.width-16, m.width)
	b.WriteString("  " + bar.ViewAs(m.snap.Progress))
	b.WriteString(dim.Render(fmt.Sprintf("  %d%%", int(m.snap.Progress*100))))
	b.WriteString("\n")

	b.WriteString(dim.Render("  " + m.helpText()))
	b.WriteString("\n")

	return b.String()
}
