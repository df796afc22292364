package engine

import (
	"errors"
	"testing"

	"github.com/keldine/worldtycoon/internal/catalog"
	"github.com/keldine/worldtycoon/internal/company"
)

func TestBuildStoreSeedsShelfLines(t *testing.T) {
	w := newTestWorld(t, 0)
	c := w.Player()
	before := c.Cash

	s, err := w.BuildStore(c, catalog.StoreConvenience, "USA")
	if err != nil {
		t.Fatal(err)
	}
	format := catalog.StoreFormats[catalog.StoreConvenience]
	if len(s.Items) != len(format.CarriedProducts) {
		t.Errorf("shelf lines = %d, want %d", len(s.Items), len(format.CarriedProducts))
	}
	for _, it := range s.Items {
		if it.Stock != 0 || it.Price != 0 {
			t.Errorf("shelf line %s seeded with stock/price", it.ProductID)
		}
	}
	if c.Cash >= before {
		t.Error("store was free")
	}
}

func TestBuildStoreRejections(t *testing.T) {
	w := newTestWorld(t, 0)
	c := w.Player()

	if _, err := w.BuildStore(c, catalog.StoreConvenience, "JPN"); !errors.Is(err, ErrNotOperating) {
		t.Errorf("foreign build err = %v, want ErrNotOperating", err)
	}
	if _, err := w.BuildStore(c, catalog.StoreDealership, "USA"); !errors.Is(err, ErrMissingTechnology) {
		t.Errorf("ungated dealership err = %v, want ErrMissingTechnology", err)
	}
	c.Cash = 100
	if _, err := w.BuildStore(c, catalog.StoreConvenience, "USA"); !errors.Is(err, ErrInsufficientFunds) {
		t.Errorf("broke build err = %v, want ErrInsufficientFunds", err)
	}
}

func TestBuildFactoryRequiresRecipeTech(t *testing.T) {
	w := newTestWorld(t, 0)
	c := w.Player()

	if _, err := w.BuildFactory(c, "prod_smartphone", "USA"); !errors.Is(err, ErrMissingTechnology) {
		t.Fatalf("err = %v, want ErrMissingTechnology", err)
	}
	f, err := w.BuildFactory(c, "prod_bread", "USA")
	if err != nil {
		t.Fatal(err)
	}
	if f.Category != catalog.FactoryGeneral {
		t.Errorf("category = %v, want general", f.Category)
	}
	if f.OutputID != "prod_bread" {
		t.Errorf("output = %q, want prod_bread", f.OutputID)
	}
}

func TestResearchRequiresCenter(t *testing.T) {
	w := newTestWorld(t, 0)
	c := w.Player()
	c.Cash = 100_000_000

	if err := w.ResearchTech(c, "tech_electronics"); !errors.Is(err, ErrInvalidTarget) {
		t.Fatalf("centerless research err = %v, want ErrInvalidTarget", err)
	}
	if _, err := w.BuildResearchCenter(c, "USA"); err != nil {
		t.Fatal(err)
	}
	if err := w.ResearchTech(c, "tech_electronics"); err != nil {
		t.Fatal(err)
	}
	if !c.HasTech("tech_electronics") {
		t.Fatal("technology not recorded")
	}
	if err := w.ResearchTech(c, "tech_electronics"); !errors.Is(err, ErrLimitReached) {
		t.Errorf("duplicate research err = %v, want ErrLimitReached", err)
	}
}

func TestExpandCountry(t *testing.T) {
	w := newTestWorld(t, 0)
	c := w.Player()

	if err := w.ExpandCountry(c, "JPN"); err != nil {
		t.Fatal(err)
	}
	if !c.OperatesIn("JPN") {
		t.Fatal("expansion not recorded")
	}
	if err := w.ExpandCountry(c, "JPN"); !errors.Is(err, ErrLimitReached) {
		t.Errorf("re-expansion err = %v, want ErrLimitReached", err)
	}
	if err := w.ExpandCountry(c, "XXX"); !errors.Is(err, ErrInvalidTarget) {
		t.Errorf("unknown country err = %v, want ErrInvalidTarget", err)
	}
}

func TestLoanLifecycle(t *testing.T) {
	w := newTestWorld(t, 0)
	c := w.Player()
	before := c.Cash

	l, err := w.TakeLoan(c, 0)
	if err != nil {
		t.Fatal(err)
	}
	if c.Cash != before+company.LoanOffers[0].Amount {
		t.Error("principal not credited")
	}
	if want := w.Indicators.InterestRate + company.LoanRatePremium; l.AnnualRate != want {
		t.Errorf("rate = %v, want market+premium %v", l.AnnualRate, want)
	}

	// Overpayment is capped at the balance, and a settled loan is dropped.
	if err := w.RepayLoan(c, l.ID, l.Balance*2); err != nil {
		t.Fatal(err)
	}
	if len(c.Loans) != 0 {
		t.Fatal("settled loan not dropped")
	}
	if c.Cash != before {
		t.Errorf("cash = %v after full repayment, want %v", c.Cash, before)
	}

	if _, err := w.TakeLoan(c, 99); !errors.Is(err, ErrInvalidTarget) {
		t.Errorf("bad offer err = %v, want ErrInvalidTarget", err)
	}
}

func TestShareTradingAverageCost(t *testing.T) {
	w := newTestWorld(t, 1)
	player := w.Player()
	var target *company.Company
	for _, c := range w.Companies {
		if !c.IsPlayer {
			target = c
		}
	}
	target.IsPublic = true
	target.SharePrice = 2.0
	target.SharesOutstanding = TotalShares

	if err := w.BuyShares(player, target.ID, 100); err != nil {
		t.Fatal(err)
	}
	target.SharePrice = 4.0
	if err := w.BuyShares(player, target.ID, 100); err != nil {
		t.Fatal(err)
	}
	h := player.Holding(target.ID)
	if h == nil || h.Shares != 200 {
		t.Fatal("holding not accumulated")
	}
	if h.AvgCost != 3.0 {
		t.Errorf("avg cost = %v, want 3.0", h.AvgCost)
	}

	if err := w.SellShares(player, target.ID, 300); !errors.Is(err, ErrInvalidTarget) {
		t.Errorf("oversell err = %v, want ErrInvalidTarget", err)
	}
	if err := w.SellShares(player, target.ID, 200); err != nil {
		t.Fatal(err)
	}
	if player.Holding(target.ID) != nil {
		t.Error("emptied holding not removed")
	}
}

func TestBuySharesRejectsSelfAndPrivate(t *testing.T) {
	w := newTestWorld(t, 1)
	player := w.Player()
	var target *company.Company
	for _, c := range w.Companies {
		if !c.IsPlayer {
			target = c
		}
	}
	if err := w.BuyShares(player, player.ID, 10); !errors.Is(err, ErrInvalidTarget) {
		t.Errorf("self-purchase err = %v", err)
	}
	if err := w.BuyShares(player, target.ID, 10); !errors.Is(err, ErrInvalidTarget) {
		t.Errorf("private target err = %v", err)
	}
}

func TestSetCampaignCap(t *testing.T) {
	w := newTestWorld(t, 0)
	c := w.Player()
	firm := &company.MarketingFirm{ID: "m1", CountryCode: "USA"}
	c.MarketingFirms = append(c.MarketingFirms, firm)

	for i, pid := range []string{"prod_cola", "prod_chips", "prod_bread"} {
		if err := w.SetCampaign(c, "m1", pid, true); err != nil {
			t.Fatalf("campaign %d: %v", i, err)
		}
	}
	if err := w.SetCampaign(c, "m1", "prod_cake", true); !errors.Is(err, ErrLimitReached) {
		t.Fatalf("fourth campaign err = %v, want ErrLimitReached", err)
	}
	if err := w.SetCampaign(c, "m1", "prod_cola", false); err != nil {
		t.Fatal(err)
	}
	if err := w.SetCampaign(c, "m1", "prod_cake", true); err != nil {
		t.Fatalf("slot freed but campaign rejected: %v", err)
	}
}

func TestInvestQualityAddsTen(t *testing.T) {
	w := newTestWorld(t, 0)
	c := w.Player()
	start := c.Quality("prod_bread")

	if err := w.InvestQuality(c, "prod_bread"); err != nil {
		t.Fatal(err)
	}
	if q := c.Quality("prod_bread"); q != start+10 {
		t.Errorf("quality = %v, want %v", q, start+10)
	}
	if err := w.InvestQuality(c, "prod_nonsense"); !errors.Is(err, ErrInvalidTarget) {
		t.Errorf("unknown product err = %v", err)
	}
}

func TestMarketingFirmOnePerCountry(t *testing.T) {
	w := newTestWorld(t, 0)
	c := w.Player()

	if _, err := w.BuildMarketingFirm(c, "USA"); err != nil {
		t.Fatal(err)
	}
	if _, err := w.BuildMarketingFirm(c, "USA"); !errors.Is(err, ErrLimitReached) {
		t.Fatalf("second firm err = %v, want ErrLimitReached", err)
	}
}
