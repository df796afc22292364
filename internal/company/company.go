// Package company defines the Company aggregate and its owned entities:
// stores, factories, farms, marketing firms, loans, share holdings and
// quarterly financial records. Behavior that needs world context (market
// averages, indicators, other companies) lives in the engine; this package
// holds state and the invariant-preserving mutators.
package company

import (
	"github.com/google/uuid"

	"github.com/keldine/worldtycoon/internal/catalog"
)

// StoreItem is one product line on a store's shelf. Cost is the weighted
// average unit cost of the current stock.
type StoreItem struct {
	ProductID string  `json:"product_id"`
	Stock     int     `json:"stock"`
	Price     float64 `json:"price"`
	Cost      float64 `json:"cost"`
}

// Store is a retail outlet in one city.
type Store struct {
	ID          string            `json:"id"`
	Type        catalog.StoreType `json:"type"`
	CountryCode string            `json:"country_code"`
	City        string            `json:"city"`
	Items       []StoreItem       `json:"items"`
}

// Item returns a pointer to the shelf line for a product, or nil.
func (s *Store) Item(productID string) *StoreItem {
	for i := range s.Items {
		if s.Items[i].ProductID == productID {
			return &s.Items[i]
		}
	}
	return nil
}

// AbsorbStock merges units at unitCost into the shelf line, keeping the
// weighted average cost.
func (s *Store) AbsorbStock(productID string, units int, unitCost float64) {
	it := s.Item(productID)
	if it == nil {
		s.Items = append(s.Items, StoreItem{ProductID: productID, Stock: units, Cost: unitCost})
		return
	}
	total := it.Stock + units
	if total > 0 {
		it.Cost = (float64(it.Stock)*it.Cost + float64(units)*unitCost) / float64(total)
	}
	it.Stock = total
}

// Factory is a production plant bound to one output recipe. Output flows
// into the company's central inventory; the plant itself holds no stock.
type Factory struct {
	ID          string                  `json:"id"`
	Category    catalog.FactoryCategory `json:"category"`
	OutputID    string                  `json:"output_id"`
	CountryCode string                  `json:"country_code"`
	City        string                  `json:"city"`
}

// Farm grows one crop and feeds company-wide raw material inventory.
type Farm struct {
	ID          string `json:"id"`
	CropID      string `json:"crop_id"`
	CountryCode string `json:"country_code"`
	City        string `json:"city"`
}

// Campaign is one active or halted marketing push for a product in the
// firm's country.
type Campaign struct {
	ProductID string `json:"product_id"`
	Active    bool   `json:"active"`
}

// MarketingFirm runs up to three campaigns in its country. AutoManage lets
// the firm pick its own campaign targets; competitors always self-manage.
type MarketingFirm struct {
	ID          string     `json:"id"`
	CountryCode string     `json:"country_code"`
	City        string     `json:"city"`
	AutoManage  bool       `json:"auto_manage"`
	Campaigns   []Campaign `json:"campaigns"`
}

// ActiveCampaigns counts campaigns currently running.
func (m *MarketingFirm) ActiveCampaigns() int {
	n := 0
	for _, c := range m.Campaigns {
		if c.Active {
			n++
		}
	}
	return n
}

// ResearchCenter lowers nothing by itself; owning at least one is the
// prerequisite for researching technologies.
type ResearchCenter struct {
	ID          string `json:"id"`
	CountryCode string `json:"country_code"`
	City        string `json:"city"`
}

// ShareHolding is an equity position in another company, carried at
// average cost.
type ShareHolding struct {
	CompanyID string  `json:"company_id"`
	Shares    int     `json:"shares"`
	AvgCost   float64 `json:"avg_cost"`
}

// Financials are cumulative totals since game start. Quarterly deltas are
// taken against the baseline captured at the previous close.
type Financials struct {
	Revenue         float64 `json:"revenue"`
	COGS            float64 `json:"cogs"`
	OpEx            float64 `json:"op_ex"`
	Logistics       float64 `json:"logistics"`
	InterestIncome  float64 `json:"interest_income"`
	InterestExpense float64 `json:"interest_expense"`
}

// QuarterlyReport is one closed quarter's results.
type QuarterlyReport struct {
	Label           string  `json:"label"` // e.g. "2024-Q1"
	Revenue         float64 `json:"revenue"`
	COGS            float64 `json:"cogs"`
	OpEx            float64 `json:"op_ex"`
	Logistics       float64 `json:"logistics"`
	InterestIncome  float64 `json:"interest_income"`
	InterestExpense float64 `json:"interest_expense"`
	Profit          float64 `json:"profit"`
	Tax             float64 `json:"tax"`
}

// Automation holds the player's toggles. AI companies run with everything
// enabled.
type Automation struct {
	SupplyStores    bool `json:"supply_stores"`
	StockExternally bool `json:"stock_externally"`
	PriceProducts   bool `json:"price_products"`
	BuyMaterials    bool `json:"buy_materials"`
	InvestQuality   bool `json:"invest_quality"`
}

// Company is the central aggregate: one player or AI corporation.
type Company struct {
	ID                 string             `json:"id"`
	Name               string             `json:"name"`
	IsPlayer           bool               `json:"is_player"`
	HomeCountry        string             `json:"home_country"`
	OperatingCountries []string           `json:"operating_countries"`
	Cash               float64            `json:"cash"`
	Stores             []*Store           `json:"stores"`
	Factories          []*Factory         `json:"factories"`
	Farms              []*Farm            `json:"farms"`
	MarketingFirms     []*MarketingFirm   `json:"marketing_firms"`
	ResearchCenters    []*ResearchCenter  `json:"research_centers"`
	Technologies       []string           `json:"technologies"`
	Inventory          map[string]float64 `json:"central_inventory"` // shared pool: raw materials and finished goods
	InventoryCosts     map[string]float64 `json:"inventory_costs"`   // weighted-average unit cost per pooled item
	ProductQuality     map[string]float64 `json:"product_quality"`
	BrandAwareness     map[string]float64 `json:"brand_awareness"` // key: country|product
	Loans              []*Loan            `json:"loans"`
	Holdings           []*ShareHolding    `json:"holdings"`

	IsPublic          bool      `json:"is_public"`
	SharePrice        float64   `json:"share_price"`
	SharesOutstanding int       `json:"shares_outstanding"`
	PriceHistory      []float64 `json:"price_history"`

	Financials       Financials        `json:"financials"`
	QuarterBaseline  Financials        `json:"quarter_baseline"`
	QuarterlyHistory []QuarterlyReport `json:"quarterly_history"`
	DailyNet         float64           `json:"daily_net"`

	Automation Automation `json:"automation"`
}

// New creates a company operating in one country with the given capital.
// AI companies start with every automation toggle on.
func New(name, homeCountry string, cash float64, isPlayer bool) *Company {
	return &Company{
		ID:                 uuid.NewString(),
		Name:               name,
		IsPlayer:           isPlayer,
		HomeCountry:        homeCountry,
		OperatingCountries: []string{homeCountry},
		Cash:               cash,
		Inventory:          make(map[string]float64),
		InventoryCosts:     make(map[string]float64),
		ProductQuality:     make(map[string]float64),
		BrandAwareness:     make(map[string]float64),
		Automation: Automation{
			SupplyStores:    !isPlayer,
			StockExternally: true,
			PriceProducts:   true,
			BuyMaterials:    true,
			InvestQuality:   !isPlayer,
		},
	}
}

// AbsorbInventory merges units at unitCost into the central pool, keeping
// the weighted average unit cost of the pooled item.
func (c *Company) AbsorbInventory(id string, units, unitCost float64) {
	held := c.Inventory[id]
	total := held + units
	if total > 0 {
		c.InventoryCosts[id] = (held*c.InventoryCosts[id] + units*unitCost) / total
	}
	c.Inventory[id] = total
}

// InventoryCost returns the carried unit cost of a pooled item.
func (c *Company) InventoryCost(id string) float64 {
	return c.InventoryCosts[id]
}

// AwarenessKey builds the brand-awareness map key for a country/product
// pair.
func AwarenessKey(countryCode, productID string) string {
	return countryCode + "|" + productID
}

// HasTech reports whether the company has researched the technology.
func (c *Company) HasTech(id string) bool {
	for _, t := range c.Technologies {
		if t == id {
			return true
		}
	}
	return false
}

// OperatesIn reports whether the company has expanded into the country.
func (c *Company) OperatesIn(countryCode string) bool {
	for _, cc := range c.OperatingCountries {
		if cc == countryCode {
			return true
		}
	}
	return false
}

// CanManufacture reports whether the company may run a recipe: either
// ungated or covered by a researched technology.
func (c *Company) CanManufacture(outputID string) bool {
	r, ok := catalog.Recipes[outputID]
	if !ok {
		return false
	}
	return r.RequiredTech == "" || c.HasTech(r.RequiredTech)
}

// FactoryFor returns the company's factory producing the good, or nil.
func (c *Company) FactoryFor(outputID string) *Factory {
	for _, f := range c.Factories {
		if f.OutputID == outputID {
			return f
		}
	}
	return nil
}

// Quality returns the company's quality score for a product, seeding the
// catalog base value on first touch.
func (c *Company) Quality(productID string) float64 {
	if q, ok := c.ProductQuality[productID]; ok {
		return q
	}
	base := 20.0
	if p, ok := catalog.ProductByID(productID); ok {
		base = p.BaseQuality
	}
	c.ProductQuality[productID] = base
	return base
}

// SetQuality clamps to [0, 100] and stores.
func (c *Company) SetQuality(productID string, q float64) {
	c.ProductQuality[productID] = clamp(q, 0, 100)
}

// Awareness returns brand awareness for a country/product pair.
func (c *Company) Awareness(countryCode, productID string) float64 {
	return c.BrandAwareness[AwarenessKey(countryCode, productID)]
}

// SetAwareness clamps to [0, 100] and stores.
func (c *Company) SetAwareness(countryCode, productID string, v float64) {
	c.BrandAwareness[AwarenessKey(countryCode, productID)] = clamp(v, 0, 100)
}

// SellsInCountry reports whether any store in the country carries the
// product.
func (c *Company) SellsInCountry(countryCode, productID string) bool {
	for _, s := range c.Stores {
		if s.CountryCode != countryCode {
			continue
		}
		if s.Item(productID) != nil {
			return true
		}
	}
	return false
}

// Holding returns the equity position in the target company, or nil.
func (c *Company) Holding(companyID string) *ShareHolding {
	for _, h := range c.Holdings {
		if h.CompanyID == companyID {
			return h
		}
	}
	return nil
}

// HasAssets reports whether the company owns anything that makes a tick
// worth running.
func (c *Company) HasAssets() bool {
	return len(c.Stores) > 0 || len(c.Factories) > 0 || len(c.Farms) > 0 || len(c.Loans) > 0
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
