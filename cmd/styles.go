package cmd

import (
	"fmt"
	"strings"

	"github.com/KaramelBytes/autoeda-cli/internal/report"
	"github.com/charmbracelet/lipgloss"
)

var (
	successColor = lipgloss.Color("#4ECDC4")
	warningColor = lipgloss.Color("#FFE66D")
	errorColor   = lipgloss.Color("#FF6B6B")
	subtleColor  = lipgloss.Color("#666666")

	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#95E1D3"))
	successStyle = lipgloss.NewStyle().Foreground(successColor)
	warningStyle = lipgloss.NewStyle().Foreground(warningColor)
	errorStyle   = lipgloss.NewStyle().Foreground(errorColor)
	subtleStyle  = lipgloss.NewStyle().Foreground(subtleColor)
	boldStyle    = lipgloss.NewStyle().Bold(true)
)

// renderStyled formats a report for the terminal.
func renderStyled(rep *report.Report) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("Transform report: %s", rep.Source)))
	b.WriteString("\n")
	b.WriteString(subtleStyle.Render(fmt.Sprintf("run %s, %d rows", rep.RunID, rep.Rows)))
	b.WriteString("\n\n")
	for _, e := range rep.Entries {
		line := fmt.Sprintf("✓ %s → %s", boldStyle.Render(e.Column), e.Strategy)
		if e.Class != "" {
			line += fmt.Sprintf(" (%s)", e.Class)
		}
		if len(e.Outputs) > 1 {
			line += subtleStyle.Render(fmt.Sprintf(" [%s]", strings.Join(e.Outputs, ", ")))
		}
		b.WriteString(successStyle.Render(line))
		b.WriteString("\n")
	}
	for _, n := range rep.Untouched {
		b.WriteString(subtleStyle.Render(fmt.Sprintf("· %s untouched: %s", n.Column, n.Reason)))
		b.WriteString("\n")
	}
	for _, n := range rep.Skipped {
		b.WriteString(warningStyle.Render(fmt.Sprintf("⚠ %s skipped: %s", n.Column, n.Reason)))
		b.WriteString("\n")
	}
	for _, n := range rep.Failures {
		b.WriteString(errorStyle.Render(fmt.Sprintf("✗ %s failed: %s", n.Column, n.Reason)))
		b.WriteString("\n")
	}
	for _, w := range rep.Warnings {
		b.WriteString(warningStyle.Render("⚠ " + w))
		b.WriteString("\n")
	}
	return b.String()
}
