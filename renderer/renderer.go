// Package renderer renders dashboard figures to markdown documents.
package renderer

import (
	"bytes"

	"github.com/etnz/finvest"
	md "github.com/nao1215/markdown"
)

// SummaryMarkdown renders the portfolio summary.
func SummaryMarkdown(s *finvest.Summary) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Portfolio Summary")
	doc.Table(md.TableSet{
		Header: []string{"Figure", "Value"},
		Rows: [][]string{
			{"Total value", s.TotalValue.String()},
			{"Invested", s.TotalInvested.String()},
			{"Result", s.ProfitabilityValue.SignedString()},
			{"Profitability", s.Profitability.SignedString()},
		},
	})
	return doc.String()
}

// AllocationMarkdown renders the market value grouped by asset type,
// with each type's share of the total.
func AllocationMarkdown(entries []finvest.AllocationEntry) string {
	var total finvest.Money
	for _, e := range entries {
		total = total.Add(e.Value)
	}

	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{
			e.Type.Label(),
			e.Value.String(),
			e.Value.PercentOf(total).String(),
		})
	}

	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	doc.H2("Allocation")
	doc.Table(md.TableSet{
		Header: []string{"Type", "Value", "Share"},
		Rows:   rows,
	})
	return doc.String()
}

// AssetsMarkdown renders the per-asset display figures.
func AssetsMarkdown(assets []finvest.Asset) string {
	rows := make([][]string, 0, len(assets))
	for _, a := range assets {
		v := a.Valuation()
		rows = append(rows, []string{
			a.Ticker,
			a.Type.Label(),
			a.Quantity.String(),
			a.CurrentPrice.String(),
			v.MarketValue.String(),
			v.Gain.SignedString(),
			v.GainPercent.SignedString(),
		})
	}

	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	doc.H2("Assets")
	doc.Table(md.TableSet{
		Header: []string{"Ticker", "Type", "Quantity", "Price", "Value", "Gain", "Gain %"},
		Rows:   rows,
	})
	return doc.String()
}
