package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/aretw0/storyboard/pkg/domain"
)

var (
	headerStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#fbbf24")).Padding(0, 1)
	cellStyle       = lipgloss.NewStyle().Padding(0, 1)
	transitionStyle = lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.Color("#c084fc"))
	implicitStyle   = lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.Color("#666688")).Italic(true)
	totalStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00ccff"))
)

// RenderTimeline draws the segments of a computed timeline as a bordered table.
func RenderTimeline(tl domain.ComputedTimeline) string {
	rows := make([][]string, 0, len(tl.Segments))
	for i, seg := range tl.Segments {
		rows = append(rows, []string{
			fmt.Sprint(i),
			string(seg.Type),
			seg.Label,
			fmt.Sprintf("%g", seg.StartTime),
			fmt.Sprintf("%g", seg.EndTime),
			fmt.Sprintf("%g", seg.Duration()),
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("#444466"))).
		Headers("#", "TYPE", "LABEL", "START", "END", "MS").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if row < 0 || row >= len(tl.Segments) {
				return cellStyle
			}
			seg := tl.Segments[row]
			if seg.Type != domain.SegmentTransition {
				return cellStyle
			}
			if domain.IsImplicitTransitionID(seg.ReferenceID) {
				return implicitStyle
			}
			return transitionStyle
		})

	return t.String() + "\n" + totalStyle.Render(fmt.Sprintf("total %gms", tl.TotalDuration)) + "\n"
}
