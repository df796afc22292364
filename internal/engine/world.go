// Package engine holds the world state and the daily simulation tick:
// production, logistics, sales, marketing, finance, AI strategy, quarterly
// closes and share pricing.
package engine

import (
	"sync"
	"time"

	"github.com/keldine/worldtycoon/internal/catalog"
	"github.com/keldine/worldtycoon/internal/company"
	"github.com/keldine/worldtycoon/internal/countries"
	"github.com/keldine/worldtycoon/internal/economy"
	"github.com/keldine/worldtycoon/internal/entropy"
)

// Starting capital for the player; AI competitors get 80%.
const (
	InitialCapital    = 10_000_000
	aiCapitalFraction = 0.8
)

// MarketAverages are the cross-company means companies compare themselves
// against. They are recomputed after every company has ticked, so each
// day's sales see the previous day's averages.
type MarketAverages struct {
	Quality   map[string]float64 `json:"quality"`   // product id → mean quality
	Awareness map[string]float64 `json:"awareness"` // country|product → mean awareness
}

// World is the complete simulation state.
type World struct {
	mu sync.Mutex

	Seed      int64              `json:"seed"`
	Date      time.Time          `json:"date"`
	Day       int                `json:"day"` // days elapsed since start
	Companies []*company.Company `json:"companies"`

	Countries    []countries.Country          `json:"countries"`
	CountryIndex map[string]countries.Country `json:"-"`
	Cities       map[string][]countries.City  `json:"cities"`

	Indicators economy.Indicators `json:"indicators"`
	Averages   MarketAverages     `json:"averages"`
	News       []NewsItem         `json:"news"`

	rng entropy.Source
}

// Options configures a fresh world.
type Options struct {
	Seed          int64
	PlayerName    string
	PlayerCountry string
	Competitors   int
	Countries     []countries.Country
}

// NewWorld creates a world on 2024-01-01 with one player company and the
// requested number of AI competitors, each seeded in its preferred market.
func NewWorld(opts Options) *World {
	set := opts.Countries
	if len(set) == 0 {
		set = countries.Builtin
	}
	rng := entropy.New(opts.Seed)
	idx := countries.Index(set)

	w := &World{
		Seed:         opts.Seed,
		Date:         time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
		Countries:    set,
		CountryIndex: idx,
		Cities:       countries.GenerateCities(opts.Seed, set),
		Indicators:   economy.NewIndicators(),
		Averages: MarketAverages{
			Quality:   make(map[string]float64),
			Awareness: make(map[string]float64),
		},
		rng: rng,
	}

	playerCountry := opts.PlayerCountry
	if _, ok := idx[playerCountry]; !ok {
		playerCountry = set[0].Code
	}
	player := company.New(opts.PlayerName, playerCountry, InitialCapital, true)
	w.Companies = append(w.Companies, player)

	for i := 0; i < opts.Competitors; i++ {
		seed := countries.CompetitorSeeds[i%len(countries.CompetitorSeeds)]
		home := seed.CountryCode
		if _, ok := idx[home]; !ok {
			home = set[rng.Intn(len(set))].Code
		}
		ai := company.New(seed.Name, home, InitialCapital*aiCapitalFraction, false)
		w.Companies = append(w.Companies, ai)
	}

	w.AddNews(CategoryTutorial, "Welcome to the world market. Open your first store to begin trading.")
	return w
}

// Player returns the player company.
func (w *World) Player() *company.Company {
	for _, c := range w.Companies {
		if c.IsPlayer {
			return c
		}
	}
	return nil
}

// CompanyByID returns a company by id, or nil.
func (w *World) CompanyByID(id string) *company.Company {
	for _, c := range w.Companies {
		if c.ID == id {
			return c
		}
	}
	return nil
}

// Lock serializes access between the tick loop and the API/actions.
func (w *World) Lock()   { w.mu.Lock() }
func (w *World) Unlock() { w.mu.Unlock() }

// Active reports whether anything in the world warrants advancing the
// calendar: the player owns something, or any competitor is trading.
func (w *World) Active() bool {
	for _, c := range w.Companies {
		if c.IsPlayer && c.HasAssets() {
			return true
		}
		if !c.IsPlayer && len(c.Stores) > 0 {
			return true
		}
	}
	return false
}

// shippingFee returns the logistics cost for one replenishment batch
// between two countries.
func (w *World) shippingFee(from, to string) float64 {
	switch countries.Tier(w.CountryIndex, from, to) {
	case countries.TierDomestic:
		return catalog.ShippingDomestic
	case countries.TierRegional:
		return catalog.ShippingRegional
	default:
		return catalog.ShippingIntercontinental
	}
}

// capitalCity returns the capital of a country, degrading to the country
// code when city generation has no entry.
func (w *World) capitalCity(code string) string {
	if city, ok := countries.CapitalOf(w.Cities, code); ok {
		return city.Name
	}
	return code
}

// recomputeAverages rebuilds the lagged market averages from current
// company state. Runs once per tick, after every company has settled.
func (w *World) recomputeAverages() {
	quality := make(map[string]float64)
	qCount := make(map[string]int)
	awareness := make(map[string]float64)
	aCount := make(map[string]int)

	for _, c := range w.Companies {
		for pid, q := range c.ProductQuality {
			quality[pid] += q
			qCount[pid]++
		}
		for key, a := range c.BrandAwareness {
			awareness[key] += a
			aCount[key]++
		}
	}
	for pid := range quality {
		quality[pid] /= float64(qCount[pid])
	}
	for key := range awareness {
		awareness[key] /= float64(aCount[key])
	}
	w.Averages = MarketAverages{Quality: quality, Awareness: awareness}
}
