package engine

import (
	"sort"

	"github.com/keldine/worldtycoon/internal/catalog"
	"github.com/keldine/worldtycoon/internal/company"
)

// Read-model views for the API. All of them copy data out under the
// world lock so callers never hold live references.

// CostEntry is one line of the inflation-adjusted price list.
type CostEntry struct {
	ID   string  `json:"id"`
	Name string  `json:"name"`
	Kind string  `json:"kind"` // store, factory, facility, technology
	Cost float64 `json:"cost"`
}

// CostTable returns today's construction and research prices.
func (w *World) CostTable() []CostEntry {
	w.mu.Lock()
	infl := w.Indicators.InflationRate
	w.mu.Unlock()

	var out []CostEntry
	for st, f := range catalog.StoreFormats {
		out = append(out, CostEntry{
			ID: string(st), Name: string(st), Kind: "store",
			Cost: catalog.Adjusted(f.BaseCost, infl),
		})
	}
	for _, cat := range []catalog.FactoryCategory{
		catalog.FactoryGeneral, catalog.FactoryTextile, catalog.FactoryElectronics,
		catalog.FactoryAutomobile, catalog.FactoryPharma, catalog.FactoryAircraft,
		catalog.FactorySoftware,
	} {
		out = append(out, CostEntry{
			ID: string(cat), Name: string(cat) + " factory", Kind: "factory",
			Cost: catalog.FactoryCost(cat, infl),
		})
	}
	out = append(out,
		CostEntry{ID: "farm", Name: "Farm", Kind: "facility", Cost: catalog.Adjusted(catalog.BaseCostFarm, infl)},
		CostEntry{ID: "marketing_firm", Name: "Marketing Firm", Kind: "facility", Cost: catalog.Adjusted(catalog.BaseCostMarketingFirm, infl)},
		CostEntry{ID: "research_center", Name: "Research Center", Kind: "facility", Cost: catalog.Adjusted(catalog.BaseCostResearchCenter, infl)},
		CostEntry{ID: "expansion", Name: "Country Expansion", Kind: "facility", Cost: catalog.Adjusted(catalog.BaseCostCountryExpansion, infl)},
		CostEntry{ID: "quality", Name: "Quality Investment", Kind: "facility", Cost: catalog.Adjusted(catalog.BaseCostQualityInvestment, infl)},
	)
	for _, t := range catalog.Technologies {
		out = append(out, CostEntry{
			ID: t.ID, Name: t.Name, Kind: "technology",
			Cost: catalog.Adjusted(t.Cost, infl),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Kind != out[j].Kind {
			return out[i].Kind < out[j].Kind
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// MarketEntry is one seller's position for a product in a country.
type MarketEntry struct {
	Company   string  `json:"company"`
	ProductID string  `json:"product_id"`
	Quality   float64 `json:"quality"`
	Awareness float64 `json:"awareness"`
	Price     float64 `json:"price"`
	Stock     int     `json:"stock"`
}

// MarketReport lists every seller active in a country.
func (w *World) MarketReport(countryCode string) []MarketEntry {
	w.mu.Lock()
	defer w.mu.Unlock()

	var out []MarketEntry
	for _, c := range w.Companies {
		for _, s := range c.Stores {
			if s.CountryCode != countryCode {
				continue
			}
			for _, it := range s.Items {
				out = append(out, MarketEntry{
					Company:   c.Name,
					ProductID: it.ProductID,
					Quality:   c.ProductQuality[it.ProductID],
					Awareness: c.Awareness(countryCode, it.ProductID),
					Price:     it.Price,
					Stock:     it.Stock,
				})
			}
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ProductID != out[j].ProductID {
			return out[i].ProductID < out[j].ProductID
		}
		return out[i].Company < out[j].Company
	})
	return out
}

// CompanySummary is the public view of a competitor.
type CompanySummary struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	IsPlayer   bool    `json:"is_player"`
	Home       string  `json:"home"`
	Countries  int     `json:"countries"`
	Stores     int     `json:"stores"`
	Factories  int     `json:"factories"`
	Farms      int     `json:"farms"`
	IsPublic   bool    `json:"is_public"`
	SharePrice float64 `json:"share_price"`
	Revenue    float64 `json:"revenue"`
	DailyNet   float64 `json:"daily_net"`
}

// Summaries returns the public view of every company. Cash positions are
// only exposed for the player.
type Summaries struct {
	PlayerCash float64          `json:"player_cash"`
	Companies  []CompanySummary `json:"companies"`
}

// CompanySummaries builds the cross-company scoreboard.
func (w *World) CompanySummaries() Summaries {
	w.mu.Lock()
	defer w.mu.Unlock()

	var out Summaries
	for _, c := range w.Companies {
		if c.IsPlayer {
			out.PlayerCash = c.Cash
		}
		out.Companies = append(out.Companies, summarize(c))
	}
	return out
}

func summarize(c *company.Company) CompanySummary {
	return CompanySummary{
		ID:         c.ID,
		Name:       c.Name,
		IsPlayer:   c.IsPlayer,
		Home:       c.HomeCountry,
		Countries:  len(c.OperatingCountries),
		Stores:     len(c.Stores),
		Factories:  len(c.Factories),
		Farms:      len(c.Farms),
		IsPublic:   c.IsPublic,
		SharePrice: c.SharePrice,
		Revenue:    c.Financials.Revenue,
		DailyNet:   c.DailyNet,
	}
}
