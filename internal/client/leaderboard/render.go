package leaderboard

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var (
	tierStyles = map[Tier]lipgloss.Style{
		Gold:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFD700")),
		Silver:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#C0C0C0")),
		Bronze:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#CD7F32")),
		Standard: lipgloss.NewStyle().Foreground(lipgloss.Color("#94A3B8")),
	}
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#13A4EC")).Padding(0, 1)
	cellStyle    = lipgloss.NewStyle().Padding(0, 1)
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#64748B"))
	segmentOn    = lipgloss.NewStyle().Foreground(lipgloss.Color("#13A4EC"))
	segmentOff   = lipgloss.NewStyle().Foreground(lipgloss.Color("#334155"))
	continueLine = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#13A4EC"))
)

// SegmentsText draws the stage dots, filled for cleared stages.
func (r Row) SegmentsText() string {
	var sb strings.Builder
	for _, on := range r.Segments {
		if on {
			sb.WriteString(segmentOn.Render("●"))
		} else {
			sb.WriteString(segmentOff.Render("○"))
		}
	}
	return sb.String()
}

// Render writes the view as a table followed by the navigation hints.
func Render(w io.Writer, v View) error {
	var sb strings.Builder
	if len(v.Rows) == 0 {
		sb.WriteString(mutedStyle.Render(orPlaceholder(v.Placeholder)))
		sb.WriteString("\n")
	} else {
		t := table.New().
			Border(lipgloss.RoundedBorder()).
			BorderStyle(mutedStyle).
			Headers("RANK", "TEAM", "STAGES", "SCORE").
			StyleFunc(func(row, col int) lipgloss.Style {
				if row == table.HeaderRow {
					return headerStyle
				}
				if row < 0 || row >= len(v.Rows) {
					return cellStyle
				}
				if col == 0 || col == 1 {
					return cellStyle.Inherit(tierStyles[v.Rows[row].Tier])
				}
				return cellStyle
			})
		for _, r := range v.Rows {
			t.Row(r.RankText, r.TeamName, r.SegmentsText()+" "+r.Progress, r.Score)
		}
		sb.WriteString(t.String())
		sb.WriteString("\n")
		sb.WriteString(mutedStyle.Render(fmt.Sprintf("%d team(s)", v.TotalTeams)))
		sb.WriteString("\n")
	}
	sb.WriteString(mutedStyle.Render("← back: " + v.Route.Back))
	sb.WriteString("\n")
	sb.WriteString(continueLine.Render("→ " + v.Route.ContinueText() + " (" + v.Route.Continue + ")"))
	sb.WriteString("\n")

	_, err := io.WriteString(w, sb.String())
	return err
}

func orPlaceholder(s string) string {
	if s == "" {
		return Placeholder
	}
	return s
}
