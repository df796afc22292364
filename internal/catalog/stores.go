package catalog

// StoreType identifies a retail format.
type StoreType string

const (
	StoreConvenience StoreType = "Convenience Store"
	StoreDealership  StoreType = "Car Dealership"
	StoreApparel     StoreType = "Apparel Store"
	StorePharmacy    StoreType = "Pharmacy"
	StoreAviation    StoreType = "Aviation Showroom"
	StoreElectronics StoreType = "Electronics Store"
)

// StoreFormat describes a retail format: what it costs to open, which
// technology gates it, and whether it can stock goods from external
// suppliers or only from the owner's factories.
type StoreFormat struct {
	Type            StoreType
	BaseCost        float64
	RequiredTech    string // empty when ungated
	ExternalSupply  bool   // can buy finished goods on the open market
	CarriedProducts []string
}

// StoreFormats is the retail format catalog. Specialty formats carry only
// their category's goods and rely on the owner's production chain.
var StoreFormats = map[StoreType]StoreFormat{
	StoreConvenience: {
		Type: StoreConvenience, BaseCost: 150_000, ExternalSupply: true,
		CarriedProducts: []string{
			"prod_cola", "prod_chips", "prod_bread", "prod_cake",
			"prod_frozen_pizza", "prod_ice_cream", "prod_premium_coffee",
			"prod_painkiller", "prod_vitamins", "prod_socks",
		},
	},
	StoreDealership: {
		Type: StoreDealership, BaseCost: 750_000, RequiredTech: "tech_automotive",
		CarriedProducts: []string{"prod_car", "prod_truck", "prod_motorcycle"},
	},
	StoreApparel: {
		Type: StoreApparel, BaseCost: 300_000, RequiredTech: "tech_textiles",
		CarriedProducts: []string{"prod_tshirt", "prod_jeans", "prod_jacket", "prod_socks"},
	},
	StorePharmacy: {
		Type: StorePharmacy, BaseCost: 400_000, RequiredTech: "tech_pharmaceuticals",
		CarriedProducts: []string{"prod_painkiller", "prod_antibiotics", "prod_vitamins", "prod_vaccine"},
	},
	StoreAviation: {
		Type: StoreAviation, BaseCost: 10_000_000, RequiredTech: "tech_aerospace",
		CarriedProducts: []string{"prod_airplane", "prod_satellite", "prod_helicopter"},
	},
	StoreElectronics: {
		Type: StoreElectronics, BaseCost: 500_000, RequiredTech: "tech_electronics",
		CarriedProducts: []string{"prod_smartphone", "prod_laptop", "prod_tv", "prod_drone"},
	},
}

// AllowsExternalSourcing reports whether a store of the given type may
// replenish stock from outside suppliers.
func AllowsExternalSourcing(t StoreType) bool {
	f, ok := StoreFormats[t]
	return ok && f.ExternalSupply
}
