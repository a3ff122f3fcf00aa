package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/dd0wney/transit-resilience/pkg/graph"
)

// maxListedRemovals caps the removal sequence printed per strategy.
const maxListedRemovals = 10

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF00FF")).
			MarginTop(1)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00FFFF"))

	cellStyle = lipgloss.NewStyle().
			Padding(0, 1)

	statsBoxStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#00FF00")).
			Padding(0, 2).
			MarginRight(2)

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888"))
)

// Render writes s as styled text. Colours are dropped automatically when w
// is not a terminal.
func Render(w io.Writer, s *Summary) error {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Transit network resilience"))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		statsBoxStyle.Render(networkBox(s.Network)),
		statsBoxStyle.Render(degreeTable(s.Network)),
	))
	b.WriteString("\n\n")

	if len(s.Network.TopStations) > 0 {
		b.WriteString(headerStyle.Render("Most central stations"))
		b.WriteString("\n")
		b.WriteString(centralityTable(s.Network))
		b.WriteString("\n\n")
	}

	b.WriteString(headerStyle.Render(fmt.Sprintf("Removal of %d stations", s.Budget)))
	b.WriteString("\n")
	b.WriteString(comparisonTable(s))
	b.WriteString("\n")

	for _, run := range []StrategySummary{s.Targeted, s.Random} {
		b.WriteString(mutedStyle.Render(fmt.Sprintf("%s removals: %s", run.Strategy, removalList(run.Removed))))
		b.WriteString("\n")
	}

	if s.Ensemble != nil {
		b.WriteString("\n")
		b.WriteString(headerStyle.Render(fmt.Sprintf("Random ensemble (%d runs)", s.Ensemble.Runs)))
		b.WriteString("\n")
		b.WriteString(fmt.Sprintf("final components: mean %.2f, std dev %.2f, min %.0f, max %.0f\n",
			s.Ensemble.Mean, s.Ensemble.StdDev, s.Ensemble.Min, s.Ensemble.Max))
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func networkBox(n NetworkSummary) string {
	return fmt.Sprintf(`Network
Trips:       %d
Stations:    %d
Links:       %d
Components:  %d
Largest:     %d
Wiener:      %.0f
Randić:      %.3f`,
		n.Trips,
		n.Stations,
		n.Links,
		n.Cohesion.Components,
		n.Cohesion.LargestComponent,
		n.Cohesion.Wiener,
		n.Cohesion.Randic,
	)
}

func degreeTable(n NetworkSummary) string {
	t := newTable("Degree", "Stations")
	for _, bucket := range n.Degrees {
		t.Row(strconv.Itoa(bucket.Degree), strconv.Itoa(bucket.Nodes))
	}
	return t.Render()
}

func centralityTable(n NetworkSummary) string {
	t := newTable("#", "Station", "Betweenness")
	for i, ranked := range n.TopStations {
		t.Row(strconv.Itoa(i+1), string(ranked.NodeID), fmt.Sprintf("%.1f", ranked.Score))
	}
	return t.Render()
}

func comparisonTable(s *Summary) string {
	t := newTable("Strategy", "Snapshots", "Final components", "Peak components",
		"Wiener drop", "Randić drop", "Wiener/Randić r")
	for _, run := range []StrategySummary{s.Targeted, s.Random} {
		t.Row(
			run.Strategy,
			strconv.Itoa(run.Snapshots),
			strconv.Itoa(run.FinalComponents),
			strconv.Itoa(run.PeakComponents),
			percent(run.WienerDrop),
			percent(run.RandicDrop),
			correlation(run.Correlation),
		)
	}
	return t.Render()
}

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("#00FFFF"))).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle.Padding(0, 1)
			}
			return cellStyle
		}).
		Headers(headers...)
}

func percent(v float64) string {
	return fmt.Sprintf("%.1f%%", v*100)
}

func correlation(r *float64) string {
	if r == nil {
		return "n/a"
	}
	return fmt.Sprintf("%.3f", *r)
}

func removalList(ids []graph.NodeID) string {
	if len(ids) == 0 {
		return "none"
	}
	shown := ids[:min(len(ids), maxListedRemovals)]
	names := make([]string, len(shown))
	for i, id := range shown {
		names[i] = string(id)
	}
	list := strings.Join(names, ", ")
	if len(ids) > len(shown) {
		list += fmt.Sprintf(", ... (%d more)", len(ids)-len(shown))
	}
	return list
}
