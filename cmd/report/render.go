package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"survey-insights-go/internal/pipeline"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	noteStyle   = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("241"))
)

// renderTables prints one table per question in chart order.
func renderTables(d pipeline.Dashboard) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d responses from %d respondents\n\n", d.Summary.TotalResponses, d.Summary.UniqueRespondents)

	for _, q := range d.Questions {
		b.WriteString(titleStyle.Render(fmt.Sprintf("Q%d. %s", q.Spec.ID, q.Chart.Title)))
		b.WriteString("\n")
		if q.Chart.Empty() {
			b.WriteString(noteStyle.Render("No responses"))
			b.WriteString("\n\n")
			continue
		}

		t := table.New().
			Border(lipgloss.NormalBorder()).
			Headers("Category", "Count", "%", "Label").
			StyleFunc(func(row, col int) lipgloss.Style {
				if row == table.HeaderRow {
					return headerStyle
				}
				if col == 1 || col == 2 {
					return cellStyle.Align(lipgloss.Right)
				}
				return cellStyle
			})
		for i, c := range q.Chart.Categories {
			t.Row(c,
				strconv.Itoa(q.Chart.Counts[i]),
				strconv.FormatFloat(q.Chart.Percentages[i], 'f', 1, 64),
				q.Chart.Labels[i])
		}
		b.WriteString(t.Render())
		b.WriteString("\n")
		b.WriteString(noteStyle.Render(q.Highlight.Insight))
		b.WriteString("\n\n")
	}
	return b.String()
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
