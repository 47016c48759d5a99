// Package static renders non-interactive terminal output such as tables.
package static

import (
	"strings"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
)

// RenderTable creates a borderless table with aligned columns. Headers are
// bold when styled is set. An empty row set renders nothing.
func RenderTable(headers []string, rows [][]string, styled bool) string {
	if len(rows) == 0 {
		return ""
	}

	var output strings.Builder

	t := table.New().
		Headers(headers...).
		Rows(rows...).
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		BorderHeader(false).
		BorderColumn(false).
		BorderRow(false).
		StyleFunc(func(row, col int) lipgloss.Style {
			style := lipgloss.NewStyle()
			if col < len(headers)-1 {
				style = style.PaddingRight(2)
			}
			if row == table.HeaderRow && styled {
				style = style.Bold(true)
			}
			return style
		})

	output.WriteString(t.String())
	output.WriteString("\n")

	return output.String()
}
