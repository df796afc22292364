package engine

import (
	"testing"

	"github.com/keldine/worldtycoon/internal/catalog"
	"github.com/keldine/worldtycoon/internal/company"
	"github.com/keldine/worldtycoon/internal/entropy"
)

// aiCompany returns the first competitor in the world.
func aiCompany(w *World) *company.Company {
	for _, c := range w.Companies {
		if !c.IsPlayer {
			return c
		}
	}
	return nil
}

func TestAIFallbackOpensStockedStore(t *testing.T) {
	w := newTestWorld(t, 1)
	ai := aiCompany(w)
	// Five markets blocks expansion, leaving the store fallback.
	ai.OperatingCountries = []string{"USA", "CAN", "GBR", "DEU", "FRA"}
	ai.Cash = 8_000_000

	// Rolls: research center, marketing, farm, factory all miss; the last
	// draw picks the store's country.
	w.rng = &entropy.Sequence{Values: []float64{0.99, 0.99, 0.99, 0.99, 0.0}}
	w.strategize(ai)

	if len(ai.Stores) != 1 {
		t.Fatalf("stores = %d, want the fallback store", len(ai.Stores))
	}
	s := ai.Stores[0]
	if s.CountryCode != "USA" {
		t.Errorf("country = %s, want first operating country", s.CountryCode)
	}
	for _, it := range s.Items {
		if it.Stock != 100 {
			t.Errorf("%s stock = %d, want seeded 100", it.ProductID, it.Stock)
		}
		if it.Price != it.Cost*1.8 {
			t.Errorf("%s price = %v, want cost x1.8", it.ProductID, it.Price)
		}
	}
}

func TestAINeverStacksConvenienceStores(t *testing.T) {
	w := newTestWorld(t, 1)
	ai := aiCompany(w)
	ai.OperatingCountries = []string{"USA", "CAN", "GBR", "DEU", "FRA"}
	ai.Cash = 8_000_000
	for _, code := range ai.OperatingCountries {
		ai.Stores = append(ai.Stores, &company.Store{
			ID: "s-" + code, Type: catalog.StoreConvenience, CountryCode: code,
		})
	}

	w.rng = &entropy.Sequence{Values: []float64{0.99, 0.99, 0.99, 0.99, 0.0}}
	w.strategize(ai)

	if len(ai.Stores) != 5 {
		t.Fatalf("stores = %d, want no second store in a covered market", len(ai.Stores))
	}
}

func TestAIMarketingFirmSelfManages(t *testing.T) {
	w := newTestWorld(t, 1)
	ai := aiCompany(w)
	ai.Cash = 10_000_000

	// Research-center roll misses, marketing roll hits.
	w.rng = &entropy.Sequence{Values: []float64{0.99, 0.1}}
	w.strategize(ai)

	if len(ai.MarketingFirms) != 1 {
		t.Fatalf("marketing firms = %d, want 1", len(ai.MarketingFirms))
	}
	if !ai.MarketingFirms[0].AutoManage {
		t.Error("competitor firm left unmanaged")
	}
}

func TestAIBuildsResearchCenterFirst(t *testing.T) {
	w := newTestWorld(t, 1)
	ai := aiCompany(w)
	ai.Cash = 10_000_000
	before := ai.Cash

	w.rng = &entropy.Sequence{Values: []float64{0.05}}
	w.strategize(ai)

	if len(ai.ResearchCenters) != 1 {
		t.Fatalf("research centers = %d, want 1", len(ai.ResearchCenters))
	}
	if ai.Cash >= before {
		t.Error("center was free")
	}
	if len(ai.Stores) != 0 {
		t.Error("ladder continued past the first firing rung")
	}
}

func TestAIResearchRequiresCenter(t *testing.T) {
	w := newTestWorld(t, 1)
	ai := aiCompany(w)
	ai.Cash = 10_000_000
	ai.ResearchCenters = append(ai.ResearchCenters, &company.ResearchCenter{ID: "rc", CountryCode: ai.HomeCountry})

	// First draw passes the 30% research roll, second picks the technology.
	w.rng = &entropy.Sequence{Values: []float64{0.2, 0.0}}
	w.strategize(ai)

	if len(ai.Technologies) != 1 {
		t.Fatalf("technologies = %d, want 1", len(ai.Technologies))
	}
}

func TestAIExpandsWithinSubregion(t *testing.T) {
	w := newTestWorld(t, 1)
	ai := aiCompany(w)
	ai.HomeCountry = "USA"
	ai.OperatingCountries = []string{"USA"}
	ai.Cash = 8_000_000

	w.rng = &entropy.Sequence{Values: []float64{0.99, 0.99, 0.99, 0.99, 0.0}}
	w.strategize(ai)

	if len(ai.OperatingCountries) != 2 {
		t.Fatalf("operating countries = %v, want an expansion", ai.OperatingCountries)
	}
	added := ai.OperatingCountries[1]
	home := w.CountryIndex["USA"]
	if got := w.CountryIndex[added]; got.Subregion != home.Subregion {
		t.Errorf("expanded into %s (%s), want the home subregion %s", added, got.Subregion, home.Subregion)
	}
}

func TestAIListsAfterRevenueBar(t *testing.T) {
	w := newTestWorld(t, 1)
	ai := aiCompany(w)
	ai.Financials.Revenue = 6_000_000
	ai.Cash = 1_000_000

	// Center roll misses, IPO roll hits.
	w.rng = &entropy.Sequence{Values: []float64{0.99, 0.0}}
	w.strategize(ai)

	if !ai.IsPublic {
		t.Fatal("competitor did not list")
	}
	if ai.Cash <= 1_000_000 {
		t.Error("IPO proceeds not credited")
	}
}

func TestRunStrategiesSkipsPlayer(t *testing.T) {
	w := newTestWorld(t, 0)
	c := w.Player()
	c.Cash = 100_000_000

	w.rng = &entropy.Sequence{Values: []float64{0.0}}
	w.runStrategies()

	if len(c.Stores) != 0 || len(c.ResearchCenters) != 0 || len(c.Farms) != 0 {
		t.Error("strategy ladder ran for the player")
	}
}
