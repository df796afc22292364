package engine

import (
	"errors"

	"github.com/keldine/worldtycoon/internal/company"
)

// Share market parameters.
const (
	TotalShares       = 1_000_000
	ipoFloatFraction  = 0.30
	performanceWeight = 0.05
	dailyVolatility   = 0.03
	priceFloor        = 0.01
	priceHistoryDays  = 30
	profitMultiple    = 10.0
	revenueMultiple   = 2.0
)

// ErrNotIPOReady rejects a listing with no profit and no revenue to
// value the company on.
var ErrNotIPOReady = errors.New("company has no earnings or revenue to value")

// ipoValuation prices a listing on lifetime results: ten times
// cumulative operating profit, falling back to twice cumulative revenue
// for unprofitable filers.
func ipoValuation(c *company.Company) (float64, error) {
	profit := c.Financials.Revenue - c.Financials.COGS - c.Financials.OpEx
	if profit > 0 {
		return profit * profitMultiple, nil
	}
	if c.Financials.Revenue > 0 {
		return c.Financials.Revenue * revenueMultiple, nil
	}
	return 0, ErrNotIPOReady
}

// executeIPO lists the company, selling the float and crediting the
// proceeds. Returns cash raised.
func (w *World) executeIPO(c *company.Company) (float64, error) {
	valuation, err := ipoValuation(c)
	if err != nil {
		return 0, err
	}
	price := valuation / TotalShares
	floated := int(TotalShares * ipoFloatFraction)
	proceeds := price * float64(floated)

	c.IsPublic = true
	c.SharePrice = price
	c.SharesOutstanding = TotalShares
	c.PriceHistory = append(c.PriceHistory, price)
	c.Cash += proceeds
	return proceeds, nil
}

// priceShares moves every public company's share price by yesterday's
// performance, random volatility and the economic cycle.
func (w *World) priceShares() {
	drift := w.Indicators.StockDrift()
	for _, c := range w.Companies {
		if !c.IsPublic {
			continue
		}
		denom := c.Cash
		if denom < 1 {
			denom = 1
		}
		performance := c.DailyNet / denom * performanceWeight
		noise := (w.rng.Float64() - 0.5) * dailyVolatility

		c.SharePrice *= 1 + performance + noise + drift
		if c.SharePrice < priceFloor {
			c.SharePrice = priceFloor
		}
		c.PriceHistory = append(c.PriceHistory, c.SharePrice)
		if len(c.PriceHistory) > priceHistoryDays {
			c.PriceHistory = c.PriceHistory[len(c.PriceHistory)-priceHistoryDays:]
		}
	}
}
