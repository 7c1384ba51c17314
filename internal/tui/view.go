package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("69"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	statusStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("69")).Bold(true)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("204")).Bold(true)
	panelBorder  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Merge Replays"))
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(fmt.Sprintf("%s → %s", m.cfg.SourceFolder, m.cfg.DestFolder)))
	if m.cfg.DeleteOriginals {
		b.WriteString(warnStyle.Render("  (deleting originals)"))
	}
	b.WriteString("\n\n")

	status := statusStyle.Render(m.status)
	switch {
	case m.err != nil:
		status = errorStyle.Render(m.status)
	case m.done:
		status = successStyle.Render(m.status)
	default:
		status = m.spinner.View() + " " + status
	}
	b.WriteString(status)
	b.WriteString("\n")
	b.WriteString(m.progress.ViewAs(m.percent))
	b.WriteString("\n")

	if len(m.lines) > 0 {
		rendered := make([]string, 0, len(m.lines))
		for _, line := range m.lines {
			rendered = append(rendered, styleLine(line))
		}
		width := clamp(m.width-2, minProgressWidth, m.width)
		b.WriteString(panelBorder.Width(width).Render(strings.Join(rendered, "\n")))
		b.WriteString("\n")
	}

	if len(m.summary.Failed) > 0 {
		b.WriteString(errorStyle.Render("Failed: " + strings.Join(m.summary.Failed, ", ")))
		b.WriteString("\n")
	}

	if !m.done {
		b.WriteString(mutedStyle.Render(fmt.Sprintf("%s  %s",
			helpText(m.keys.Cancel.Help().Key, m.keys.Cancel.Help().Desc),
			helpText(m.keys.Quit.Help().Key, m.keys.Quit.Help().Desc))))
		b.WriteString("\n")
	}
	return b.String()
}

func styleLine(line string) string {
	switch {
	case strings.Contains(line, "✗"):
		return errorStyle.Render(line)
	case strings.Contains(line, "⚠"):
		return warnStyle.Render(line)
	case strings.Contains(line, "✓"):
		return successStyle.Render(line)
	default:
		return line
	}
}

func helpText(keyName, desc string) string {
	return keyName + " " + desc
}
