package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeepscore/jeepscore/internal/score"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#74B9FF"))
	subtleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#626262"))
	countStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFD700")).
			Border(lipgloss.RoundedBorder()).Padding(0, 1)
	headerStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	errorStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF6B6B"))
	flashStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#96CEB4"))

	// rowStyles maps the scoreboard's row style classes to styles.
	rowStyles = map[string]lipgloss.Style{
		"win":  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#96CEB4")),
		"high": lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B")),
		"low":  lipgloss.NewStyle().Foreground(lipgloss.Color("#74B9FF")),
	}
)

// statusText renders the row flags as a word for the trailing column.
func statusText(row score.Row) string {
	switch {
	case row.IsWin:
		return "win"
	case row.IsHigh:
		return "high"
	case row.IsLow:
		return "low"
	default:
		return ""
	}
}

// RenderBoard renders a computed scoreboard as an aligned text table,
// one row per player in entry order. Shared by the play screen and the
// board/history CLI commands.
func RenderBoard(board score.Board) string {
	headers := make([]string, 0, len(board.Columns)+1)
	widths := make([]int, 0, len(board.Columns)+1)
	for _, col := range board.Columns {
		headers = append(headers, col.Title)
		width := len(col.Title)
		for _, id := range board.Order {
			if cell := board.Rows[id].Cells[col.Key]; len(cell) > width {
				width = len(cell)
			}
		}
		widths = append(widths, width)
	}
	headers = append(headers, "Status")
	widths = append(widths, len("Status"))

	var b strings.Builder
	for i, h := range headers {
		if i > 0 {
			b.WriteString("  ")
		}
		b.WriteString(headerStyle.Render(pad(h, widths[i])))
	}
	b.WriteString("\n")

	for _, id := range board.Order {
		row := board.Rows[id]

		style := lipgloss.NewStyle()
		for _, class := range row.Styles {
			if s, ok := rowStyles[class]; ok {
				style = s
				break
			}
		}

		cells := make([]string, 0, len(board.Columns)+1)
		for i, col := range board.Columns {
			cells = append(cells, pad(row.Cells[col.Key], widths[i]))
		}
		cells = append(cells, pad(statusText(row), widths[len(widths)-1]))

		b.WriteString(style.Render(strings.Join(cells, "  ")))
		b.WriteString("\n")
	}
	return b.String()
}

func pad(s string, width int) string {
	return fmt.Sprintf("%-*s", width, s)
}
