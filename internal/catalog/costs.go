package catalog

// FactoryCategory identifies a production plant class. The category sets
// construction cost; the recipe chosen at build time sets what it makes.
type FactoryCategory string

const (
	FactoryGeneral     FactoryCategory = "general"
	FactoryTextile     FactoryCategory = "textile"
	FactoryElectronics FactoryCategory = "electronics"
	FactoryAutomobile  FactoryCategory = "automobile"
	FactoryPharma      FactoryCategory = "pharma"
	FactoryAircraft    FactoryCategory = "aircraft"
	FactorySoftware    FactoryCategory = "software"
)

// Base construction and operating costs before inflation adjustment.
const (
	BaseCostFactory           = 1_000_000
	BaseCostTextileFactory    = 1_600_000
	BaseCostElectronicsPlant  = 3_000_000
	BaseCostAutomobilePlant   = 10_000_000
	BaseCostPharmaPlant       = 5_000_000
	BaseCostAircraftPlant     = 50_000_000
	BaseCostSoftwareStudio    = 4_000_000
	BaseCostFarm              = 800_000
	BaseCostMarketingFirm     = 1_200_000
	BaseCostResearchCenter    = 750_000
	BaseCostCountryExpansion  = 300_000
	BaseCostQualityInvestment = 250_000
	CampaignDailyCost         = 5_000
)

// Daily fixed operating expenses per facility.
const (
	DailyOpExStore   = 50
	DailyOpExFactory = 500
	DailyOpExFarm    = 250
)

// Batch sizes for stock movements.
const (
	StoreReplenishBatch = 100 // units per store restock
	RawMaterialBatch    = 500 // units per raw-material purchase
	ReplenishThreshold  = 10  // store stock level that triggers restock
)

// Shipping fees per batch by distance tier.
const (
	ShippingDomestic         = 100
	ShippingRegional         = 500
	ShippingIntercontinental = 1500
)

var factoryBaseCosts = map[FactoryCategory]float64{
	FactoryGeneral:     BaseCostFactory,
	FactoryTextile:     BaseCostTextileFactory,
	FactoryElectronics: BaseCostElectronicsPlant,
	FactoryAutomobile:  BaseCostAutomobilePlant,
	FactoryPharma:      BaseCostPharmaPlant,
	FactoryAircraft:    BaseCostAircraftPlant,
	FactorySoftware:    BaseCostSoftwareStudio,
}

// FactoryCategoryFor maps a recipe's required technology to the plant
// category that manufactures it.
func FactoryCategoryFor(outputID string) FactoryCategory {
	r, ok := Recipes[outputID]
	if !ok {
		return FactoryGeneral
	}
	switch r.RequiredTech {
	case "tech_textiles":
		return FactoryTextile
	case "tech_electronics":
		return FactoryElectronics
	case "tech_automotive":
		return FactoryAutomobile
	case "tech_pharmaceuticals":
		return FactoryPharma
	case "tech_aerospace":
		return FactoryAircraft
	case "tech_software":
		return FactorySoftware
	default:
		return FactoryGeneral
	}
}

// Adjusted scales a base cost by current inflation.
func Adjusted(base, inflation float64) float64 {
	return base * (1 + inflation)
}

// FactoryCost returns the inflation-adjusted construction cost for a plant
// category.
func FactoryCost(cat FactoryCategory, inflation float64) float64 {
	base, ok := factoryBaseCosts[cat]
	if !ok {
		base = BaseCostFactory
	}
	return Adjusted(base, inflation)
}

// StoreCost returns the inflation-adjusted construction cost for a store
// format.
func StoreCost(t StoreType, inflation float64) float64 {
	f, ok := StoreFormats[t]
	if !ok {
		return Adjusted(BaseCostFactory, inflation)
	}
	return Adjusted(f.BaseCost, inflation)
}
