// Package renderer turns tracker reports into markdown for the terminal
// and charts for the graph views.
package renderer

import (
	"bytes"

	md "github.com/nao1215/markdown"

	tracker "github.com/shazib/mftracker"
)

// SummaryMarkdown renders the portfolio summary: the totals block followed
// by one row per fund.
func SummaryMarkdown(s *tracker.Summary) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Portfolio")

	doc.Table(md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
		},
		Header: []string{"Invested", "Current", "Total Returns", "Last Updated"},
		Rows: [][]string{{
			s.Invested.String(),
			s.Current.String(),
			s.Profit.SignedString() + " (" + s.ProfitPercent.SignedString() + ")",
			s.LastUpdated,
		}},
	})

	doc.H2("Funds")
	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
		},
		Header: []string{"Scheme Name", "Day Change", "Returns", "Current", "NAV"},
	}
	for _, row := range s.Rows {
		dayChange := row.DayChange.String()
		if row.DayChange.Valid() {
			dayChange += " (" + row.DayChangePercent.SignedString() + ")"
		}
		table.Rows = append(table.Rows, []string{
			row.Name,
			dayChange,
			row.Returns.SignedString() + " (" + row.ReturnsPercent.SignedString() + ")",
			row.Current.String() + " / " + row.Invested.String(),
			row.LatestNav.String() + " @ " + row.LatestNavDate.String(),
		})
	}
	doc.Table(table)

	doc.Build()
	return buf.String()
}

// DayChangeMarkdown renders the per-fund day change series and the
// portfolio total per day.
func DayChangeMarkdown(r *tracker.DayChangeReport) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Day Change")
	for _, fund := range r.Funds {
		doc.H2(fund.Name)
		table := md.TableSet{
			Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight},
			Header:    []string{"NAV Date", "Day Change"},
		}
		for _, p := range fund.Points {
			table.Rows = append(table.Rows, []string{p.Date.String(), p.Value.SignedString()})
		}
		doc.Table(table)
	}

	doc.H2("Total")
	table := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight},
		Header:    []string{"NAV Date", "Day Change"},
	}
	for _, p := range r.Total {
		table.Rows = append(table.Rows, []string{p.Date.String(), p.Value.SignedString()})
	}
	doc.Table(table)

	doc.Build()
	return buf.String()
}
