package engine

import (
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/keldine/worldtycoon/internal/catalog"
	"github.com/keldine/worldtycoon/internal/company"
	"github.com/keldine/worldtycoon/internal/countries"
)

// Expansion limits for AI planning.
const (
	aiMaxFarms     = 3
	aiMaxCountries = 5
	ipoRevenueBar  = 5_000_000
)

// runStrategies gives every AI company one strategic decision. The ladder
// runs top priority first; the first move that fires ends the turn.
func (w *World) runStrategies() {
	for _, c := range w.Companies {
		if c.IsPlayer {
			continue
		}
		w.strategize(c)
	}
}

func (w *World) strategize(c *company.Company) {
	switch {
	case w.aiResearch(c):
	case w.aiResearchCenter(c):
	case w.aiGoPublic(c):
	case w.aiMarketingFirm(c):
	case w.aiFarm(c):
	case w.aiFactory(c):
	case w.aiSpecialtyStore(c, catalog.StoreElectronics, 0.1):
	case w.aiSpecialtyStore(c, catalog.StoreApparel, 0.1):
	case w.aiSpecialtyStore(c, catalog.StorePharmacy, 0.1):
	case w.aiSpecialtyStore(c, catalog.StoreAviation, 0.05):
	case w.aiExpand(c):
	case w.aiConvenienceStore(c):
	}
}

// aiResearch buys a random locked technology when the treasury can cover
// it twice over. Requires a research center.
func (w *World) aiResearch(c *company.Company) bool {
	if len(c.ResearchCenters) == 0 || w.rng.Float64() >= 0.3 {
		return false
	}
	var locked []catalog.Technology
	for _, t := range catalog.Technologies {
		if !c.HasTech(t.ID) {
			locked = append(locked, t)
		}
	}
	if len(locked) == 0 {
		return false
	}
	tech := locked[w.rng.Intn(len(locked))]
	cost := catalog.Adjusted(tech.Cost, w.Indicators.InflationRate)
	if c.Cash <= cost*2 {
		return false
	}
	c.Cash -= cost
	c.Technologies = append(c.Technologies, tech.ID)
	w.AddNews(CategoryCompetitor, fmt.Sprintf("%s completes %s research.", c.Name, tech.Name))
	return true
}

func (w *World) aiResearchCenter(c *company.Company) bool {
	if len(c.ResearchCenters) > 0 || w.rng.Float64() >= 0.1 {
		return false
	}
	cost := catalog.Adjusted(catalog.BaseCostResearchCenter, w.Indicators.InflationRate)
	if c.Cash <= cost*2.5 {
		return false
	}
	c.Cash -= cost
	c.ResearchCenters = append(c.ResearchCenters, &company.ResearchCenter{
		ID:          uuid.NewString(),
		CountryCode: c.HomeCountry,
		City:        w.capitalCity(c.HomeCountry),
	})
	w.AddNews(CategoryCompetitor, fmt.Sprintf("%s opens a research center in %s.", c.Name, w.capitalCity(c.HomeCountry)))
	return true
}

// aiGoPublic lists the company once revenue clears the bar.
func (w *World) aiGoPublic(c *company.Company) bool {
	if c.IsPublic || c.Financials.Revenue <= ipoRevenueBar || w.rng.Float64() >= 0.25 {
		return false
	}
	proceeds, err := w.executeIPO(c)
	if err != nil {
		return false
	}
	w.AddNews(CategoryCompetitor, fmt.Sprintf("%s goes public, raising %s.", c.Name, money(proceeds)))
	return true
}

func (w *World) aiMarketingFirm(c *company.Company) bool {
	if w.rng.Float64() >= 0.15 {
		return false
	}
	cost := catalog.Adjusted(catalog.BaseCostMarketingFirm, w.Indicators.InflationRate)
	if c.Cash <= cost*2.5 {
		return false
	}
	target := ""
	for _, code := range c.OperatingCountries {
		covered := false
		for _, firm := range c.MarketingFirms {
			if firm.CountryCode == code {
				covered = true
				break
			}
		}
		if !covered {
			target = code
			break
		}
	}
	if target == "" {
		return false
	}
	c.Cash -= cost
	c.MarketingFirms = append(c.MarketingFirms, &company.MarketingFirm{
		ID:          uuid.NewString(),
		CountryCode: target,
		City:        w.capitalCity(target),
		AutoManage:  true,
	})
	w.AddNews(CategoryCompetitor, fmt.Sprintf("%s launches a marketing division in %s.", c.Name, w.capitalCity(target)))
	return true
}

func (w *World) aiFarm(c *company.Company) bool {
	if len(c.Farms) >= aiMaxFarms || w.rng.Float64() >= 0.2 {
		return false
	}
	cost := catalog.Adjusted(catalog.BaseCostFarm, w.Indicators.InflationRate)
	if c.Cash <= cost*2.5 {
		return false
	}
	crops := make([]string, 0, len(catalog.Crops))
	for id := range catalog.Crops {
		crops = append(crops, id)
	}
	sort.Strings(crops)
	crop := crops[w.rng.Intn(len(crops))]
	country := c.OperatingCountries[w.rng.Intn(len(c.OperatingCountries))]
	c.Cash -= cost
	c.Farms = append(c.Farms, &company.Farm{
		ID:          uuid.NewString(),
		CropID:      crop,
		CountryCode: country,
		City:        w.capitalCity(country),
	})
	w.AddNews(CategoryCompetitor, fmt.Sprintf("%s starts farming %s.", c.Name, catalog.Crops[crop].Name))
	return true
}

// aiFactory builds a plant for a manufacturable product the company does
// not yet produce, priced by plant category.
func (w *World) aiFactory(c *company.Company) bool {
	if w.rng.Float64() >= 0.1 {
		return false
	}
	baseGate := catalog.Adjusted(catalog.BaseCostFactory, w.Indicators.InflationRate)
	if c.Cash <= baseGate*2.5 {
		return false
	}
	var candidates []string
	for _, r := range sortedRecipes() {
		if !c.CanManufacture(r.OutputID) || c.FactoryFor(r.OutputID) != nil {
			continue
		}
		candidates = append(candidates, r.OutputID)
	}
	if len(candidates) == 0 {
		return false
	}
	output := candidates[w.rng.Intn(len(candidates))]
	category := catalog.FactoryCategoryFor(output)
	cost := catalog.FactoryCost(category, w.Indicators.InflationRate)
	if c.Cash <= cost*2 {
		return false
	}
	country := c.OperatingCountries[w.rng.Intn(len(c.OperatingCountries))]
	c.Cash -= cost
	c.Factories = append(c.Factories, &company.Factory{
		ID:          uuid.NewString(),
		Category:    category,
		OutputID:    output,
		CountryCode: country,
		City:        w.capitalCity(country),
	})
	w.AddNews(CategoryCompetitor, fmt.Sprintf("%s breaks ground on a new plant in %s.", c.Name, w.capitalCity(country)))
	return true
}

// aiSpecialtyStore opens a tech-gated retail format in a country that
// lacks one. Specialty shelves start empty and are fed by the company's
// own plants.
func (w *World) aiSpecialtyStore(c *company.Company, st catalog.StoreType, chance float64) bool {
	format := catalog.StoreFormats[st]
	if format.RequiredTech != "" && !c.HasTech(format.RequiredTech) {
		return false
	}
	if w.rng.Float64() >= chance {
		return false
	}
	cost := catalog.StoreCost(st, w.Indicators.InflationRate)
	if c.Cash <= cost*2.5 {
		return false
	}
	target := ""
	for _, code := range c.OperatingCountries {
		if !w.hasStoreOfType(c, st, code) {
			target = code
			break
		}
	}
	if target == "" {
		return false
	}
	c.Cash -= cost
	store := &company.Store{
		ID:          uuid.NewString(),
		Type:        st,
		CountryCode: target,
		City:        w.capitalCity(target),
	}
	for _, pid := range format.CarriedProducts {
		unit := catalog.SourcingCost(pid, w.Indicators.InflationRate)
		store.Items = append(store.Items, company.StoreItem{
			ProductID: pid, Cost: unit, Price: unit * 1.8,
		})
	}
	c.Stores = append(c.Stores, store)
	w.AddNews(CategoryCompetitor, fmt.Sprintf("%s opens a %s in %s.", c.Name, st, w.capitalCity(target)))
	return true
}

func (w *World) hasStoreOfType(c *company.Company, st catalog.StoreType, countryCode string) bool {
	for _, s := range c.Stores {
		if s.Type == st && s.CountryCode == countryCode {
			return true
		}
	}
	return false
}

// aiExpand enters a new market in the company's home subregion.
func (w *World) aiExpand(c *company.Company) bool {
	if len(c.OperatingCountries) >= aiMaxCountries {
		return false
	}
	cost := catalog.Adjusted(catalog.BaseCostCountryExpansion, w.Indicators.InflationRate)
	if c.Cash <= cost*3.5 {
		return false
	}
	home, ok := w.CountryIndex[c.HomeCountry]
	if !ok {
		return false
	}
	var targets []countries.Country
	for _, cc := range w.Countries {
		if cc.Subregion == home.Subregion && !c.OperatesIn(cc.Code) {
			targets = append(targets, cc)
		}
	}
	if len(targets) == 0 {
		return false
	}
	target := targets[w.rng.Intn(len(targets))]
	c.Cash -= cost
	c.OperatingCountries = append(c.OperatingCountries, target.Code)
	w.AddNews(CategoryCompetitor, fmt.Sprintf("%s expands into %s.", c.Name, target.Name))
	return true
}

// aiConvenienceStore is the fallback move: a stocked store in the capital
// of a random operating country that does not already have one.
func (w *World) aiConvenienceStore(c *company.Company) bool {
	cost := catalog.StoreCost(catalog.StoreConvenience, w.Indicators.InflationRate)
	if c.Cash <= cost*2.5 {
		return false
	}
	var targets []string
	for _, code := range c.OperatingCountries {
		if !w.hasStoreOfType(c, catalog.StoreConvenience, code) {
			targets = append(targets, code)
		}
	}
	if len(targets) == 0 {
		return false
	}
	country := targets[w.rng.Intn(len(targets))]
	c.Cash -= cost
	store := &company.Store{
		ID:          uuid.NewString(),
		Type:        catalog.StoreConvenience,
		CountryCode: country,
		City:        w.capitalCity(country),
	}
	for _, p := range catalog.SourceableProducts {
		unit := catalog.Adjusted(p.BaseCost, w.Indicators.InflationRate)
		store.Items = append(store.Items, company.StoreItem{
			ProductID: p.ID, Stock: 100, Cost: unit, Price: unit * 1.8,
		})
	}
	c.Stores = append(c.Stores, store)
	w.AddNews(CategoryCompetitor, fmt.Sprintf("%s opens a convenience store in %s.", c.Name, w.capitalCity(country)))
	return true
}

func sortedRecipes() []catalog.Recipe {
	ids := make([]string, 0, len(catalog.Recipes))
	for id := range catalog.Recipes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	out := make([]catalog.Recipe, 0, len(ids))
	for _, id := range ids {
		out = append(out, catalog.Recipes[id])
	}
	return out
}

