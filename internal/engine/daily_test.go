package engine

import (
	"math"
	"testing"
	"time"

	"github.com/keldine/worldtycoon/internal/catalog"
	"github.com/keldine/worldtycoon/internal/company"
	"github.com/keldine/worldtycoon/internal/entropy"
)

func newTestWorld(t *testing.T, competitors int) *World {
	t.Helper()
	return NewWorld(Options{
		Seed:          1,
		PlayerName:    "Test Corp",
		PlayerCountry: "USA",
		Competitors:   competitors,
	})
}

// addStockedStore gives the company a convenience store with bread on the
// shelf at a known cost and price.
func addStockedStore(c *company.Company, stock int) *company.Store {
	s := &company.Store{
		ID:          "store-1",
		Type:        catalog.StoreConvenience,
		CountryCode: c.HomeCountry,
		City:        "Test City",
	}
	s.AbsorbStock("prod_bread", stock, 1.0)
	s.Item("prod_bread").Price = 2.0
	c.Stores = append(c.Stores, s)
	return s
}

func TestIdleWorldDoesNotAdvance(t *testing.T) {
	w := newTestWorld(t, 0)
	date := w.Date
	if w.AdvanceDay() {
		t.Fatal("empty world should not tick")
	}
	if !w.Date.Equal(date) || w.Day != 0 {
		t.Errorf("calendar moved on an idle world: day %d, date %s", w.Day, w.Date)
	}
}

func TestCashConservation(t *testing.T) {
	w := newTestWorld(t, 0)
	c := w.Player()
	addStockedStore(c, 500)
	c.Loans = append(c.Loans, company.NewLoan(500_000, 0.04, 365))
	c.Cash += 500_000

	w.rng = &entropy.Sequence{Values: []float64{0.5, 0.3, 0.7, 0.9, 0.1}}

	for i := 0; i < 30; i++ {
		before := c.Cash
		res := w.tickCompany(c)
		delta := c.Cash - before
		if math.Abs(delta-res.CashDelta()) > 1e-6 {
			t.Fatalf("day %d: cash delta %v, ledger says %v", i, delta, res.CashDelta())
		}
	}
}

func TestSalesNeverOversell(t *testing.T) {
	w := newTestWorld(t, 0)
	c := w.Player()
	s := addStockedStore(c, 3) // below replenish threshold, but AutoStock off
	c.Automation.StockExternally = false
	c.Automation.SupplyStores = false

	w.rng = &entropy.Sequence{Values: []float64{0.99}} // max demand noise
	var res DayResult
	w.sellGoods(c, &res)

	it := s.Item("prod_bread")
	if it.Stock < 0 {
		t.Fatalf("stock went negative: %d", it.Stock)
	}
	if res.UnitsSold > 3 {
		t.Fatalf("sold %d units from a stock of 3", res.UnitsSold)
	}
}

func TestHighMarginCollapsesDemand(t *testing.T) {
	w := newTestWorld(t, 0)
	c := w.Player()
	s := addStockedStore(c, 100)
	// Margin of 16x cost exceeds the sensitivity cutoff (15x).
	s.Item("prod_bread").Price = 1.0 + 16.0
	c.Automation.PriceProducts = false

	w.rng = &entropy.Sequence{Values: []float64{0.99}}
	var res DayResult
	w.sellGoods(c, &res)
	if res.UnitsSold != 0 {
		t.Fatalf("sold %d units at a prohibitive margin", res.UnitsSold)
	}
}

func TestFactoryAllOrNothing(t *testing.T) {
	w := newTestWorld(t, 0)
	c := w.Player()
	c.Automation.BuyMaterials = false
	f := &company.Factory{
		ID: "f1", Category: catalog.FactoryGeneral, OutputID: "prod_bread",
		CountryCode: "USA",
	}
	c.Factories = append(c.Factories, f)

	// Bread needs 2 flour per unit at rate 50: 100 flour per day.
	c.Inventory["rm_flour"] = 99
	var res DayResult
	w.runFactories(c, &res)
	if c.Inventory["prod_bread"] != 0 {
		t.Fatalf("produced %v units with insufficient flour", c.Inventory["prod_bread"])
	}
	if c.Inventory["rm_flour"] != 99 {
		t.Fatal("ingredients consumed on a failed run")
	}

	c.Inventory["rm_flour"] = 100
	cashBefore := c.Cash
	w.runFactories(c, &res)
	if c.Inventory["prod_bread"] != 50 {
		t.Fatalf("pooled output = %v, want full rate 50", c.Inventory["prod_bread"])
	}
	if c.Cash != cashBefore {
		t.Error("production moved cash; only material purchase should")
	}
	if c.Inventory["rm_flour"] != 0 {
		t.Fatalf("flour left over: %v", c.Inventory["rm_flour"])
	}
	if res.ProductionCost <= 0 {
		t.Error("no production cost accrued")
	}
}

func TestFactoryGatedByResearch(t *testing.T) {
	w := newTestWorld(t, 0)
	c := w.Player()
	f := &company.Factory{
		ID: "f1", Category: catalog.FactoryElectronics, OutputID: "prod_smartphone",
		CountryCode: "USA",
	}
	c.Factories = append(c.Factories, f)
	c.Inventory["rm_plastic"] = 10_000
	c.Inventory["rm_semiconductor"] = 10_000

	var res DayResult
	w.runFactories(c, &res)
	if c.Inventory["prod_smartphone"] != 0 {
		t.Fatal("plant ran without the required technology")
	}
}

func TestReplenishPrefersCheapestShipping(t *testing.T) {
	w := newTestWorld(t, 0)
	c := w.Player()
	s := addStockedStore(c, 0)
	c.Automation.SupplyStores = true
	c.Automation.StockExternally = false

	far := &company.Factory{ID: "far", OutputID: "prod_bread", CountryCode: "JPN"}
	near := &company.Factory{ID: "near", OutputID: "prod_bread", CountryCode: "USA"}
	c.Factories = append(c.Factories, far, near)
	c.AbsorbInventory("prod_bread", 500, 0.9)

	var res DayResult
	w.replenishStores(c, &res)

	if res.Logistics != catalog.ShippingDomestic {
		t.Errorf("logistics = %v, want domestic fee %v", res.Logistics, float64(catalog.ShippingDomestic))
	}
	if c.Inventory["prod_bread"] != 400 {
		t.Errorf("pool = %v, want 400 after one batch", c.Inventory["prod_bread"])
	}
	if s.Item("prod_bread").Stock != catalog.StoreReplenishBatch {
		t.Errorf("shelf stock = %d, want %d", s.Item("prod_bread").Stock, catalog.StoreReplenishBatch)
	}
}

func TestReplenishDrawsFromSharedPool(t *testing.T) {
	w := newTestWorld(t, 0)
	c := w.Player()
	s := addStockedStore(c, 0)
	c.Automation.SupplyStores = true
	c.Automation.StockExternally = false

	// Two plants each contribute 60 units: neither day's run covers a
	// batch on its own, but the pooled 120 does.
	c.Factories = append(c.Factories,
		&company.Factory{ID: "f1", OutputID: "prod_bread", CountryCode: "USA"},
		&company.Factory{ID: "f2", OutputID: "prod_bread", CountryCode: "USA"},
	)
	c.AbsorbInventory("prod_bread", 60, 1.0)
	c.AbsorbInventory("prod_bread", 60, 1.0)

	var res DayResult
	w.replenishStores(c, &res)

	if s.Item("prod_bread").Stock != catalog.StoreReplenishBatch {
		t.Fatalf("shelf stock = %d, want %d from the pooled supply", s.Item("prod_bread").Stock, catalog.StoreReplenishBatch)
	}
	if c.Inventory["prod_bread"] != 20 {
		t.Fatalf("pool = %v, want 20 left", c.Inventory["prod_bread"])
	}
}

func TestManufacturableGoodsNeverSourcedExternally(t *testing.T) {
	w := newTestWorld(t, 0)
	c := w.Player()
	s := addStockedStore(c, 0)
	c.Automation.SupplyStores = true
	c.Automation.StockExternally = true

	// Bread is manufacturable and auto-supply is on, so an empty pool
	// means the shelf stays empty rather than filling from wholesalers.
	var res DayResult
	w.replenishStores(c, &res)

	if res.ExternalPurchases != 0 {
		t.Fatalf("external purchase of %v for a product the company makes itself", res.ExternalPurchases)
	}
	if s.Item("prod_bread").Stock != 0 {
		t.Fatalf("shelf stock = %d, want 0", s.Item("prod_bread").Stock)
	}
}

func TestReplenishFallsBackToExternalSourcing(t *testing.T) {
	w := newTestWorld(t, 0)
	c := w.Player()
	s := addStockedStore(c, 0)

	before := c.Cash
	var res DayResult
	w.replenishStores(c, &res)

	if s.Item("prod_bread").Stock != catalog.StoreReplenishBatch {
		t.Fatalf("shelf stock = %d after external sourcing", s.Item("prod_bread").Stock)
	}
	if res.ExternalPurchases <= 0 {
		t.Fatal("no external purchase recorded")
	}
	if c.Cash >= before {
		t.Fatal("external purchase did not move cash")
	}
}

func TestSpecialtyStoreNeverSourcesExternally(t *testing.T) {
	w := newTestWorld(t, 0)
	c := w.Player()
	s := &company.Store{
		ID: "d1", Type: catalog.StoreDealership, CountryCode: "USA",
		Items: []company.StoreItem{{ProductID: "prod_car", Cost: 3200, Price: 6400}},
	}
	c.Stores = append(c.Stores, s)

	var res DayResult
	w.replenishStores(c, &res)
	if s.Item("prod_car").Stock != 0 {
		t.Fatal("dealership restocked from external suppliers")
	}
	if res.ExternalPurchases != 0 {
		t.Fatal("external purchase recorded for a closed format")
	}
}

func TestMarketingLiftsAndDecayFades(t *testing.T) {
	w := newTestWorld(t, 0)
	c := w.Player()
	addStockedStore(c, 100)
	firm := &company.MarketingFirm{
		ID: "m1", CountryCode: "USA",
		Campaigns: []company.Campaign{{ProductID: "prod_bread", Active: true}},
	}
	c.MarketingFirms = append(c.MarketingFirms, firm)
	c.SetAwareness("USA", "prod_cola", 5) // no campaign: should fade

	var res DayResult
	w.runMarketing(c, &res)

	if aw := c.Awareness("USA", "prod_bread"); aw != campaignGainPerDay {
		t.Errorf("campaigned awareness = %v, want %v", aw, campaignGainPerDay)
	}
	if aw := c.Awareness("USA", "prod_cola"); math.Abs(aw-4.9) > 1e-9 {
		t.Errorf("idle awareness = %v, want 4.9", aw)
	}
	if res.OpEx != catalog.CampaignDailyCost {
		t.Errorf("marketing spend = %v, want %v", res.OpEx, float64(catalog.CampaignDailyCost))
	}
}

func TestAwarenessAndQualityStayBounded(t *testing.T) {
	w := newTestWorld(t, 0)
	c := w.Player()
	addStockedStore(c, 100)
	firm := &company.MarketingFirm{
		ID: "m1", CountryCode: "USA",
		Campaigns: []company.Campaign{{ProductID: "prod_bread", Active: true}},
	}
	c.MarketingFirms = append(c.MarketingFirms, firm)

	var res DayResult
	for i := 0; i < 300; i++ {
		w.runMarketing(c, &res)
	}
	if aw := c.Awareness("USA", "prod_bread"); aw > 100 {
		t.Errorf("awareness exceeded cap: %v", aw)
	}

	c.SetQuality("prod_bread", 99)
	w.Averages.Quality["prod_bread"] = 120 // hostile average; clamp must hold
	for i := 0; i < 1000; i++ {
		w.normalizeQuality(c)
	}
	if q := c.Quality("prod_bread"); q > 100 || q < 0 {
		t.Errorf("quality out of bounds: %v", q)
	}
}

func TestLoanPaymentsRunUnconditionally(t *testing.T) {
	w := newTestWorld(t, 0)
	c := w.Player()
	c.Cash = 10 // nearly broke
	c.Loans = append(c.Loans, company.NewLoan(500_000, 0.04, 365))

	var res DayResult
	w.payLoans(c, &res)
	if c.Cash >= 10 {
		t.Fatal("payment skipped on low balance")
	}
	if c.Cash > 0 {
		t.Fatalf("expected negative cash, got %v", c.Cash)
	}
	if res.LoanPayments <= 0 || res.InterestExpense <= 0 {
		t.Fatal("loan ledger entries missing")
	}
}

func TestFarmsFeedFactories(t *testing.T) {
	w := newTestWorld(t, 0)
	c := w.Player()
	c.Farms = append(c.Farms, &company.Farm{ID: "farm1", CropID: "rm_wheat", CountryCode: "USA"})

	w.harvestFarms(c)
	if c.Inventory["rm_wheat"] != 150 {
		t.Fatalf("wheat = %v, want daily rate 150", c.Inventory["rm_wheat"])
	}
	before := c.Cash
	w.harvestFarms(c)
	if c.Cash != before {
		t.Fatal("harvest should not move cash")
	}
}

func TestProcurementGatedByAutomationFlag(t *testing.T) {
	w := newTestWorld(t, 0)
	c := w.Player()
	c.Factories = append(c.Factories, &company.Factory{
		ID: "f1", OutputID: "prod_bread", CountryCode: "USA",
	})

	c.Automation.BuyMaterials = false
	var res DayResult
	w.procureMaterials(c, &res)
	if res.MaterialPurchases != 0 {
		t.Fatal("materials bought with automation off")
	}

	c.Automation.BuyMaterials = true
	w.procureMaterials(c, &res)
	if c.Inventory["rm_flour"] != catalog.RawMaterialBatch {
		t.Fatalf("flour = %v, want one batch", c.Inventory["rm_flour"])
	}
	if res.MaterialPurchases <= 0 {
		t.Fatal("purchase not recorded")
	}
}

func TestAutomatedResearchNeedsCenterAndToggle(t *testing.T) {
	w := newTestWorld(t, 0)
	c := w.Player()
	addStockedStore(c, 100)
	c.Cash = 1_000_000
	w.Date = time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC)
	w.rng = &entropy.Sequence{Values: []float64{0.5}}

	c.Automation.InvestQuality = true
	var res DayResult
	w.autoInvestQuality(c, &res) // no research center yet
	if res.QualityInvestment != 0 {
		t.Fatal("automated research ran without a research center")
	}

	c.ResearchCenters = append(c.ResearchCenters, &company.ResearchCenter{ID: "rc1", CountryCode: "USA"})
	c.Automation.InvestQuality = false
	w.autoInvestQuality(c, &res)
	if res.QualityInvestment != 0 {
		t.Fatal("automated research ran with the toggle off")
	}

	c.Automation.InvestQuality = true
	before := c.Quality("prod_bread")
	w.autoInvestQuality(c, &res)
	if res.QualityInvestment <= 0 {
		t.Fatal("automated research skipped with center and toggle in place")
	}
	if c.Quality("prod_bread") <= before {
		t.Fatal("quality unchanged after investment")
	}
}

func TestAutomatedResearchIsCapitalSpend(t *testing.T) {
	w := newTestWorld(t, 0)
	c := w.Player()
	addStockedStore(c, 100)
	c.Cash = 1_000_000
	c.ResearchCenters = append(c.ResearchCenters, &company.ResearchCenter{ID: "rc1", CountryCode: "USA"})
	c.Automation.InvestQuality = true
	w.Date = time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC)
	w.rng = &entropy.Sequence{Values: []float64{0.5}}

	before := c.Cash
	var res DayResult
	w.autoInvestQuality(c, &res)

	if res.QualityInvestment <= 0 {
		t.Fatal("no investment recorded")
	}
	if res.OpEx != 0 {
		t.Fatalf("research spend leaked into OpEx: %v", res.OpEx)
	}
	if got, want := before-c.Cash, res.QualityInvestment; math.Abs(got-want) > 1e-9 {
		t.Fatalf("cash moved %v, ledger says %v", got, want)
	}
	if math.Abs(res.CashDelta()-(c.Cash-before)) > 1e-9 {
		t.Fatalf("ledger drift: delta %v vs %v", c.Cash-before, res.CashDelta())
	}
}

func TestCampaignAutomationIsPerFirm(t *testing.T) {
	w := newTestWorld(t, 0)
	c := w.Player()
	c.Cash = 1_000_000
	addStockedStore(c, 100)
	s2 := &company.Store{ID: "store-2", Type: catalog.StoreConvenience, CountryCode: "CAN"}
	s2.AbsorbStock("prod_bread", 100, 1.0)
	c.Stores = append(c.Stores, s2)

	auto := &company.MarketingFirm{ID: "m-auto", CountryCode: "USA", AutoManage: true}
	manual := &company.MarketingFirm{ID: "m-manual", CountryCode: "CAN"}
	c.MarketingFirms = append(c.MarketingFirms, auto, manual)

	var res DayResult
	w.runMarketing(c, &res)

	if auto.ActiveCampaigns() != 1 {
		t.Fatalf("managed firm runs %d campaigns, want 1", auto.ActiveCampaigns())
	}
	if manual.ActiveCampaigns() != 0 {
		t.Fatalf("manual firm started %d campaigns on its own", manual.ActiveCampaigns())
	}
}

func TestMarketAveragesLagOneDay(t *testing.T) {
	w := newTestWorld(t, 1)
	player := w.Player()
	addStockedStore(player, 100)
	player.SetQuality("prod_bread", 80)

	// Averages are empty before the first tick; the first sale must not
	// see today's quality.
	if len(w.Averages.Quality) != 0 {
		t.Fatal("averages populated before any tick")
	}
	if !w.AdvanceDay() {
		t.Fatal("world with assets refused to tick")
	}
	avg, ok := w.Averages.Quality["prod_bread"]
	if !ok {
		t.Fatal("averages not recomputed after tick")
	}
	if avg <= 0 {
		t.Fatalf("average quality = %v", avg)
	}
}

func TestDeterministicRuns(t *testing.T) {
	run := func() float64 {
		w := NewWorld(Options{Seed: 99, PlayerName: "P", PlayerCountry: "USA", Competitors: 3})
		addStockedStore(w.Player(), 1000)
		for i := 0; i < 60; i++ {
			w.AdvanceDay()
		}
		total := 0.0
		for _, c := range w.Companies {
			total += c.Cash
		}
		return total
	}
	if a, b := run(), run(); a != b {
		t.Errorf("same seed diverged: %v vs %v", a, b)
	}
}
