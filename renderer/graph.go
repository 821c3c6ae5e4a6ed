package renderer

import (
	"strings"

	"github.com/guptarohit/asciigraph"

	tracker "github.com/shazib/mftracker"
)

const (
	graphHeight = 20
	graphWidth  = 90
)

// SeriesGraph plots one series as an ASCII line chart captioned with the
// fund name and the covered date range.
func SeriesGraph(s tracker.FundSeries) string {
	if len(s.Points) == 0 {
		return s.Name + ": no data\n"
	}
	values := make([]float64, len(s.Points))
	for i, p := range s.Points {
		values[i], _ = p.Value.Decimal().Float64()
	}
	caption := s.Name + "  (" + s.Points[0].Date.String() + " to " + s.Points[len(s.Points)-1].Date.String() + ")"
	plot := asciigraph.Plot(values,
		asciigraph.Height(graphHeight),
		asciigraph.Width(graphWidth),
		asciigraph.Caption(caption),
	)
	return plot + "\n"
}

// TotalGraph plots the portfolio-wide day change series.
func TotalGraph(r *tracker.DayChangeReport) string {
	total := tracker.FundSeries{Name: "Day Change Total", Points: r.Total}
	return SeriesGraph(total)
}

// NavGraphs plots each fund's NAV history, one chart per fund.
func NavGraphs(series []tracker.FundSeries) string {
	var b strings.Builder
	for _, s := range series {
		b.WriteString(SeriesGraph(s))
		b.WriteString("\n")
	}
	return b.String()
}
