package engine

import (
	"fmt"
	"log/slog"

	"github.com/keldine/worldtycoon/internal/company"
)

// Quarterly close parameters.
const (
	corporateTaxRate  = 0.20
	quartersRetained  = 12
)

// closeQuarter runs on the first day of January, April, July and October:
// macro shocks first, then per-company settlement of the quarter's books.
func (w *World) closeQuarter() {
	prevCycle := w.Indicators.Cycle
	w.Indicators.QuarterlyShock(w.rng)
	if w.Indicators.Cycle != prevCycle {
		w.AddNews(CategoryEconomy, fmt.Sprintf("Economic outlook shifts: analysts now call the climate %s.", w.Indicators.Cycle))
	}
	w.AddNews(CategoryEconomy, fmt.Sprintf("Quarterly figures: inflation %.1f%%, base rate %.1f%%.",
		w.Indicators.InflationRate*100, w.Indicators.InterestRate*100))

	label := quarterLabel(w.Date.Year(), int(w.Date.Month()))
	for _, c := range w.Companies {
		base := c.QuarterBaseline
		cur := c.Financials
		report := companyQuarter(label,
			cur.Revenue-base.Revenue,
			cur.COGS-base.COGS,
			cur.OpEx-base.OpEx,
			cur.Logistics-base.Logistics,
			cur.InterestIncome-base.InterestIncome,
			cur.InterestExpense-base.InterestExpense,
		)
		if report.Profit > 0 {
			report.Tax = report.Profit * corporateTaxRate
			c.Cash -= report.Tax
		}
		c.QuarterlyHistory = append(c.QuarterlyHistory, report)
		if len(c.QuarterlyHistory) > quartersRetained {
			c.QuarterlyHistory = c.QuarterlyHistory[len(c.QuarterlyHistory)-quartersRetained:]
		}
		c.QuarterBaseline = cur

		if c.IsPlayer {
			cat := CategoryPlayer
			if report.Tax > 0 {
				w.AddNews(cat, fmt.Sprintf("Quarter closed: profit %s, tax paid %s.", money(report.Profit), money(report.Tax)))
			} else {
				w.AddNews(cat, fmt.Sprintf("Quarter closed: loss of %s, no tax due.", money(-report.Profit)))
			}
		}

		slog.Info("quarter closed",
			"company", c.Name,
			"quarter", label,
			"revenue", report.Revenue,
			"profit", report.Profit,
			"tax", report.Tax,
		)
	}
}

func companyQuarter(label string, rev, cogs, opex, logi, intInc, intExp float64) company.QuarterlyReport {
	return company.QuarterlyReport{
		Label:           label,
		Revenue:         rev,
		COGS:            cogs,
		OpEx:            opex,
		Logistics:       logi,
		InterestIncome:  intInc,
		InterestExpense: intExp,
		Profit:          rev - cogs - opex - logi + intInc - intExp,
	}
}

// quarterLabel names the quarter that just ended. Called on the first day
// of the new quarter, so January closes Q4 of the previous year.
func quarterLabel(year, month int) string {
	switch month {
	case 1:
		return fmt.Sprintf("%d-Q4", year-1)
	case 4:
		return fmt.Sprintf("%d-Q1", year)
	case 7:
		return fmt.Sprintf("%d-Q2", year)
	default:
		return fmt.Sprintf("%d-Q3", year)
	}
}
