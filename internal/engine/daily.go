package engine

import (
	"log/slog"
	"math"

	"github.com/keldine/worldtycoon/internal/catalog"
	"github.com/keldine/worldtycoon/internal/company"
)

// Daily tuning constants.
const (
	qualityNormalization = 0.005 // daily pull toward the market average
	qualityInvestDay     = 15    // day-of-month multiple for automated R&D
	qualityInvestCeiling = 95    // no automated R&D above this score
	maxCampaignsPerFirm  = 3
	campaignGainPerDay   = 0.5
	awarenessDecayPerDay = 0.1
	baseDemandPlayer     = 15.0
	baseDemandAI         = 8.0
	priceSensitivity     = 15.0 // margin multiples until demand hits zero
)

// DayResult records every cash and P&L movement for one company on one
// day. The sum of its cash entries equals the company's cash delta
// exactly, which the conservation tests rely on.
type DayResult struct {
	Revenue           float64
	COGS              float64
	OpEx              float64 // fixed facility costs + marketing
	Logistics         float64 // shipping fees paid
	ProductionCost    float64 // accrued ingredient cost of today's output
	InterestIncome    float64
	InterestExpense   float64 // interest portion of loan payments
	LoanPayments      float64 // full cash paid to lenders
	MaterialPurchases float64
	ExternalPurchases float64
	QualityInvestment float64 // automated R&D spend, capital not opEx
	UnitsSold         int
	Net               float64
}

// CashDelta is the net cash movement implied by the ledger.
func (r DayResult) CashDelta() float64 {
	return r.InterestIncome - r.LoanPayments - r.MaterialPurchases -
		r.Logistics - r.ExternalPurchases - r.QualityInvestment +
		r.Revenue - r.COGS - r.OpEx
}

// AdvanceDay runs one simulated day. An inactive world (nothing built,
// no competitors trading) does not advance the calendar.
func (w *World) AdvanceDay() bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.Active() {
		return false
	}

	w.Day++
	w.Date = w.Date.AddDate(0, 0, 1)

	totalRevenue := 0.0
	for _, c := range w.Companies {
		res := w.tickCompany(c)
		totalRevenue += res.Revenue
	}

	// Cross-company steps run after every company has settled, so the
	// weekly and quarterly passes see the day's finished books.
	if w.Day%7 == 1 {
		w.runStrategies()
	}
	if w.Date.Day() == 1 && w.Date.Month()%3 == 1 {
		w.closeQuarter()
	}
	w.priceShares()
	w.recomputeAverages()

	slog.Info("daily report",
		"date", w.Date.Format("2006-01-02"),
		"day", w.Day,
		"cycle", w.Indicators.Cycle,
		"inflation", w.Indicators.InflationRate,
		"interest", w.Indicators.InterestRate,
		"companies", len(w.Companies),
		"total_revenue", totalRevenue,
	)
	return true
}

// tickCompany runs the full daily order for one company and settles cash.
func (w *World) tickCompany(c *company.Company) DayResult {
	var res DayResult
	startCash := c.Cash

	w.normalizeQuality(c)
	w.accrueInterest(c, &res)
	w.autoInvestQuality(c, &res)
	w.payLoans(c, &res)
	w.runMarketing(c, &res)
	w.procureMaterials(c, &res)
	w.harvestFarms(c)
	w.runFactories(c, &res)
	w.replenishStores(c, &res)
	w.autoPrice(c)
	w.sellGoods(c, &res)

	res.OpEx += float64(len(c.Stores))*catalog.DailyOpExStore +
		float64(len(c.Factories))*catalog.DailyOpExFactory +
		float64(len(c.Farms))*catalog.DailyOpExFarm

	// Day-end settlement. Interest, loans, procurement and shipping have
	// already moved cash in-flight.
	c.Cash += res.Revenue - res.COGS - res.OpEx

	res.Net = res.Revenue - res.COGS - res.OpEx - res.Logistics -
		res.ProductionCost + res.InterestIncome - res.InterestExpense
	c.DailyNet = res.Net

	c.Financials.Revenue += res.Revenue
	c.Financials.COGS += res.COGS
	c.Financials.OpEx += res.OpEx
	c.Financials.Logistics += res.Logistics
	c.Financials.InterestIncome += res.InterestIncome
	c.Financials.InterestExpense += res.InterestExpense

	if delta := c.Cash - startCash; math.Abs(delta-res.CashDelta()) > 1e-6 {
		slog.Warn("cash ledger drift", "company", c.Name,
			"delta", delta, "ledger", res.CashDelta())
	}
	return res
}

// normalizeQuality pulls every product score slightly toward yesterday's
// market average.
func (w *World) normalizeQuality(c *company.Company) {
	for pid, q := range c.ProductQuality {
		if avg, ok := w.Averages.Quality[pid]; ok {
			c.SetQuality(pid, q+(avg-q)*qualityNormalization)
		}
	}
}

// accrueInterest pays interest on positive cash balances.
func (w *World) accrueInterest(c *company.Company, res *DayResult) {
	if c.Cash <= 0 {
		return
	}
	interest := c.Cash * w.Indicators.InterestRate / 365
	c.Cash += interest
	res.InterestIncome = interest
}

// autoInvestQuality runs the twice-monthly automated R&D pass: find the
// weakest product the company actually handles and buy an improvement.
// Requires an owned research center and the automation opt-in. The spend
// is a capital outlay, kept out of operating expenses and daily net.
func (w *World) autoInvestQuality(c *company.Company, res *DayResult) {
	if !c.Automation.InvestQuality || len(c.ResearchCenters) == 0 {
		return
	}
	if w.Date.Day()%qualityInvestDay != 0 {
		return
	}
	cost := catalog.Adjusted(catalog.BaseCostQualityInvestment, w.Indicators.InflationRate)

	target := ""
	lowest := math.MaxFloat64
	for _, s := range c.Stores {
		for _, it := range s.Items {
			if q := c.Quality(it.ProductID); q < lowest {
				lowest, target = q, it.ProductID
			}
		}
	}
	for _, f := range c.Factories {
		if q := c.Quality(f.OutputID); q < lowest {
			lowest, target = q, f.OutputID
		}
	}
	if target == "" || lowest >= qualityInvestCeiling || c.Cash <= cost {
		return
	}
	gain := 2 + w.rng.Float64()*5
	c.SetQuality(target, lowest+gain)
	c.Cash -= cost
	res.QualityInvestment += cost
}

// payLoans applies every loan's daily payment, cash constraint or not,
// and drops settled loans.
func (w *World) payLoans(c *company.Company, res *DayResult) {
	kept := c.Loans[:0]
	for _, l := range c.Loans {
		interest, paid := l.AccrueDay()
		c.Cash -= paid
		res.InterestExpense += interest
		res.LoanPayments += paid
		if !l.Settled() {
			kept = append(kept, l)
		}
	}
	c.Loans = kept
}

// runMarketing manages campaigns, applies awareness gains and decays idle
// country/product pairs.
func (w *World) runMarketing(c *company.Company, res *DayResult) {
	for _, firm := range c.MarketingFirms {
		if !c.IsPlayer || firm.AutoManage {
			w.autoSelectCampaign(c, firm)
		}
		for _, camp := range firm.Campaigns {
			if !camp.Active {
				continue
			}
			aw := c.Awareness(firm.CountryCode, camp.ProductID)
			c.SetAwareness(firm.CountryCode, camp.ProductID, aw+campaignGainPerDay)
			res.OpEx += catalog.CampaignDailyCost
		}
	}

	// Pairs with no active campaign fade.
	for key, aw := range c.BrandAwareness {
		if aw <= 0 || w.hasActiveCampaign(c, key) {
			continue
		}
		aw -= awarenessDecayPerDay
		if aw < 0 {
			aw = 0
		}
		c.BrandAwareness[key] = aw
	}
}

func (w *World) hasActiveCampaign(c *company.Company, awarenessKey string) bool {
	for _, firm := range c.MarketingFirms {
		for _, camp := range firm.Campaigns {
			if camp.Active && company.AwarenessKey(firm.CountryCode, camp.ProductID) == awarenessKey {
				return true
			}
		}
	}
	return false
}

// autoSelectCampaign starts a push for the least-known product the
// company sells in the firm's country, if the firm has a free slot and a
// week of budget headroom per running campaign.
func (w *World) autoSelectCampaign(c *company.Company, firm *company.MarketingFirm) {
	active := firm.ActiveCampaigns()
	if active >= maxCampaignsPerFirm {
		return
	}
	if c.Cash <= catalog.CampaignDailyCost*7*float64(active+1) {
		return
	}

	campaigned := make(map[string]bool)
	for _, camp := range firm.Campaigns {
		if camp.Active {
			campaigned[camp.ProductID] = true
		}
	}

	target := ""
	lowest := math.MaxFloat64
	for _, s := range c.Stores {
		if s.CountryCode != firm.CountryCode {
			continue
		}
		for _, it := range s.Items {
			if campaigned[it.ProductID] {
				continue
			}
			if aw := c.Awareness(firm.CountryCode, it.ProductID); aw < lowest {
				lowest, target = aw, it.ProductID
			}
		}
	}
	if target == "" {
		return
	}
	for i := range firm.Campaigns {
		if firm.Campaigns[i].ProductID == target {
			firm.Campaigns[i].Active = true
			return
		}
	}
	firm.Campaigns = append(firm.Campaigns, company.Campaign{ProductID: target, Active: true})
}

// procureMaterials tops up raw-material inventory for every factory
// recipe, one batch per material per day, affordability-gated.
func (w *World) procureMaterials(c *company.Company, res *DayResult) {
	if !c.Automation.BuyMaterials {
		return
	}
	threshold := float64(2 * catalog.RawMaterialBatch)
	for _, f := range c.Factories {
		recipe, ok := catalog.Recipes[f.OutputID]
		if !ok {
			continue
		}
		for _, ing := range recipe.Ingredients {
			if c.Inventory[ing.ID] >= threshold {
				continue
			}
			rm, ok := catalog.RawMaterialByID(ing.ID)
			if !ok {
				continue
			}
			unit := catalog.Adjusted(rm.BaseCost, w.Indicators.InflationRate)
			cost := float64(catalog.RawMaterialBatch) * unit
			if c.Cash <= cost {
				continue
			}
			c.Cash -= cost
			res.MaterialPurchases += cost
			c.AbsorbInventory(ing.ID, catalog.RawMaterialBatch, unit)
		}
	}
}

// harvestFarms adds each farm's daily crop yield to the central pool.
func (w *World) harvestFarms(c *company.Company) {
	for _, f := range c.Farms {
		if crop, ok := catalog.Crops[f.CropID]; ok {
			c.Inventory[f.CropID] += float64(crop.ProductionRate)
		}
	}
}

// runFactories executes each plant's recipe at full rate or not at all.
// Output lands in the central pool alongside raw materials, so
// intermediate goods are immediately available to downstream recipes.
func (w *World) runFactories(c *company.Company, res *DayResult) {
	for _, f := range c.Factories {
		recipe, ok := catalog.Recipes[f.OutputID]
		if !ok || !c.CanManufacture(f.OutputID) {
			continue
		}
		rate := float64(recipe.ProductionRate)
		feasible := true
		for _, ing := range recipe.Ingredients {
			if c.Inventory[ing.ID] < ing.Amount*rate {
				feasible = false
				break
			}
		}
		if !feasible {
			continue
		}
		for _, ing := range recipe.Ingredients {
			c.Inventory[ing.ID] -= ing.Amount * rate
		}
		unitCost := catalog.RecipeCost(recipe, w.Indicators.InflationRate)
		c.AbsorbInventory(f.OutputID, rate, unitCost)
		res.ProductionCost += unitCost * rate
	}
}

// replenishStores restocks every shelf line under the threshold. A
// manufacturable product under auto-supply is served from the central
// pool only; external sourcing is reserved for goods the company does
// not make itself, which is what rewards vertical integration.
func (w *World) replenishStores(c *company.Company, res *DayResult) {
	for _, s := range c.Stores {
		for i := range s.Items {
			it := &s.Items[i]
			if it.Stock >= catalog.ReplenishThreshold {
				continue
			}
			if c.Automation.SupplyStores && c.CanManufacture(it.ProductID) {
				w.supplyFromPool(c, s, it.ProductID, res)
				continue
			}
			w.sourceExternally(c, s, it.ProductID, res)
		}
	}
}

// supplyFromPool ships one batch of pooled finished goods to the store.
// The factory list only sets the shipping fee: the cheapest source
// factory wins, with a stable first-minimum tie-break. The transfer is
// gated on the pooled quantity, not any single plant's output.
func (w *World) supplyFromPool(c *company.Company, s *company.Store, productID string, res *DayResult) {
	bestFee := math.MaxFloat64
	for _, f := range c.Factories {
		if f.OutputID != productID {
			continue
		}
		if fee := w.shippingFee(f.CountryCode, s.CountryCode); fee < bestFee {
			bestFee = fee
		}
	}
	if bestFee == math.MaxFloat64 {
		return
	}
	if c.Inventory[productID] < catalog.StoreReplenishBatch || c.Cash < bestFee {
		return
	}
	c.Inventory[productID] -= catalog.StoreReplenishBatch
	c.Cash -= bestFee
	res.Logistics += bestFee
	s.AbsorbStock(productID, catalog.StoreReplenishBatch, c.InventoryCost(productID))
}

// sourceExternally buys one batch of finished goods on the open market.
func (w *World) sourceExternally(c *company.Company, s *company.Store, productID string, res *DayResult) {
	if !c.Automation.StockExternally || !catalog.AllowsExternalSourcing(s.Type) {
		return
	}
	unit := catalog.SourcingCost(productID, w.Indicators.InflationRate)
	if unit <= 0 {
		return
	}
	cost := unit * catalog.StoreReplenishBatch
	if c.Cash < cost {
		return
	}
	c.Cash -= cost
	res.ExternalPurchases += cost
	s.AbsorbStock(productID, catalog.StoreReplenishBatch, unit)
}

// autoPrice marks every shelf line at double its carried cost.
func (w *World) autoPrice(c *company.Company) {
	if !c.Automation.PriceProducts {
		return
	}
	for _, s := range c.Stores {
		for i := range s.Items {
			if s.Items[i].Cost > 0 {
				s.Items[i].Price = s.Items[i].Cost * 2
			}
		}
	}
}

// sellGoods runs the demand model for every shelf line with stock.
func (w *World) sellGoods(c *company.Company, res *DayResult) {
	base := baseDemandAI
	if c.IsPlayer {
		base = baseDemandPlayer
	}
	cycle := w.Indicators.DemandMultiplier()

	for _, s := range c.Stores {
		for i := range s.Items {
			it := &s.Items[i]
			if it.Stock <= 0 || it.Price <= 0 {
				continue
			}

			priceFactor := 1.0
			if it.Cost > 0 {
				priceFactor = 1 - (it.Price-it.Cost)/(it.Cost*priceSensitivity)
				if priceFactor < 0 {
					priceFactor = 0
				}
			}

			q := c.Quality(it.ProductID)
			qualityFactor := 1.0
			if avg, ok := w.Averages.Quality[it.ProductID]; ok {
				qualityFactor = 1 + (q-avg)/100
			}

			aw := c.Awareness(s.CountryCode, it.ProductID)
			brandFactor := 1.0
			if avg, ok := w.Averages.Awareness[company.AwarenessKey(s.CountryCode, it.ProductID)]; ok {
				brandFactor = 1 + (aw-avg)/150
			}

			noise := w.rng.Float64()*0.4 + 0.8
			potential := int(math.Floor(base * cycle * priceFactor * qualityFactor * brandFactor * noise))
			if potential < 0 {
				potential = 0
			}
			sold := potential
			if sold > it.Stock {
				sold = it.Stock
			}
			if sold == 0 {
				continue
			}
			it.Stock -= sold
			res.Revenue += float64(sold) * it.Price
			res.COGS += float64(sold) * it.Cost
			res.UnitsSold += sold
		}
	}
}
