package ui

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"
)

// ANSI colors only, so output follows the terminal theme.
var (
	TitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true).MarginBottom(1)

	UsageStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))

	// dimmed
	DescStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))

	FlagStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))

	ErrorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
)

// Intent renders an intent id with its confidence for terminal output.
func Intent(id string, confidence float64) string {
	return UsageStyle.Render(id) + " " + DescStyle.Render("("+strconv.FormatFloat(confidence, 'f', 2, 64)+")")
}
