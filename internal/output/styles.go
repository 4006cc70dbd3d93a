package output

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// BarWidth is the number of cells in a score bar
const BarWidth = 20

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	boldStyle   = lipgloss.NewStyle().Bold(true)
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
)

// scoreColor picks a color band: green from 75, blue from 56, yellow from 36, red below.
func scoreColor(score int) string {
	switch {
	case score >= 75:
		return "10"
	case score >= 56:
		return "12"
	case score >= 36:
		return "3"
	default:
		return "9"
	}
}

func scoreStyle(score int) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(scoreColor(score)))
}

// renderBar draws count out of total as width cells of █ followed by ░.
// Any non-zero count fills at least one cell.
func renderBar(count, total, width int, color string) string {
	if total <= 0 || width <= 0 {
		return ""
	}
	if count < 0 {
		count = 0
	}
	if count > total {
		count = total
	}
	filled := (count * width) / total
	if count > 0 && filled == 0 {
		filled = 1
	}
	style := lipgloss.NewStyle().Foreground(lipgloss.Color(color))
	return style.Render(strings.Repeat("█", filled)) + dimStyle.Render(strings.Repeat("░", width-filled))
}
