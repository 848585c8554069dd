package utils

import (
	"fmt"
	"io"
	"sort"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/lipgloss"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/elC0mpa/vm-doctor/model"
)

const (
	ColorRank1 = "#d73027"
	ColorRank2 = "#f46d43"
	ColorRank3 = "#fee08b"
	ColorRank4 = "#abdda4"
	ColorRank5 = "#66c2a5"
	ColorRank6 = "#1a9850"
)

// maxBars keeps the chart readable on a normal terminal
const maxBars = 12

var defaultStyle = lipgloss.NewStyle().
	BorderStyle(lipgloss.NormalBorder()).
	BorderForeground(lipgloss.Color("#F4D060"))

// DrawIdleCostChart draws the 24h cost of the most expensive idle instances
func DrawIdleCostChart(w io.Writer, idle []model.ReportEntry) {
	fmt.Fprintf(w, "\n%s\n", text.FgHiWhite.Sprint(" 💸  IDLE INSTANCE COST (24h)"))
	fmt.Fprintln(w, text.FgHiBlue.Sprint(" ------------------------------------------------"))

	if len(idle) == 0 {
		fmt.Fprintln(w, " No idle instances.")
		return
	}

	ranked := rankByCost(idle)
	if len(ranked) > maxBars {
		ranked = ranked[:maxBars]
	}

	bc := barchart.New(130, 20)
	for rank, e := range ranked {
		bc.Push(barchart.BarData{
			Label: getBarLabel(e),
			Values: []barchart.BarValue{
				{
					Value: e.Classification.Cost.Cost24h,
					Style: lipgloss.NewStyle().Foreground(lipgloss.Color(rankColor(rank))),
				},
			},
		})
	}

	bc.Draw()
	fmt.Fprintln(w, lipgloss.JoinHorizontal(lipgloss.Top, defaultStyle.Render(bc.View())))
}

func getBarLabel(e model.ReportEntry) string {
	return fmt.Sprintf("%s: %.2f %s", e.Classification.Name, e.Classification.Cost.Cost24h, e.Classification.Cost.Currency)
}

// rankByCost orders entries by descending cost, ties by name
func rankByCost(entries []model.ReportEntry) []model.ReportEntry {
	ranked := make([]model.ReportEntry, len(entries))
	copy(ranked, entries)

	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i].Classification, ranked[j].Classification
		if a.Cost.Cost24h != b.Cost.Cost24h {
			return a.Cost.Cost24h > b.Cost.Cost24h
		}
		return a.Name < b.Name
	})
	return ranked
}

func rankColor(rank int) string {
	palette := []string{ColorRank1, ColorRank2, ColorRank3, ColorRank4, ColorRank5, ColorRank6}
	if rank < len(palette) {
		return palette[rank]
	}
	return palette[len(palette)-1]
}
