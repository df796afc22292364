package catalog

// Technology is a research-tree node. Unlocks lists the recipe outputs it
// makes manufacturable; some technologies also gate store formats.
type Technology struct {
	ID      string
	Name    string
	Cost    float64 // base cost before inflation
	Unlocks []string
}

// Technologies is the research tree in ascending cost order.
var Technologies = []Technology{
	{
		ID: "tech_food_processing", Name: "Food Processing", Cost: 750_000,
		Unlocks: []string{"prod_cake", "prod_frozen_pizza", "prod_ice_cream", "prod_premium_coffee"},
	},
	{
		ID: "tech_textiles", Name: "Textile Manufacturing", Cost: 1_200_000,
		Unlocks: []string{"rm_fabric", "prod_tshirt", "prod_jeans", "prod_jacket", "prod_socks"},
	},
	{
		ID: "tech_electronics", Name: "Consumer Electronics", Cost: 5_000_000,
		Unlocks: []string{"prod_smartphone", "prod_laptop", "prod_tv", "prod_drone"},
	},
	{
		ID: "tech_software", Name: "Software Engineering", Cost: 6_000_000,
		Unlocks: []string{"prod_videogame", "prod_os", "prod_bizsoftware", "prod_antivirus", "prod_photo_editor"},
	},
	{
		ID: "tech_pharmaceuticals", Name: "Pharmaceuticals", Cost: 8_000_000,
		Unlocks: []string{"prod_painkiller", "prod_antibiotics", "prod_vitamins", "prod_vaccine"},
	},
	{
		ID: "tech_automotive", Name: "Automotive Engineering", Cost: 10_000_000,
		Unlocks: []string{"prod_car", "prod_truck", "prod_motorcycle"},
	},
	{
		ID: "tech_aerospace", Name: "Aerospace Engineering", Cost: 30_000_000,
		Unlocks: []string{"prod_airplane", "prod_satellite", "prod_helicopter"},
	},
}

// TechByID returns the technology with the given id, or false.
func TechByID(id string) (Technology, bool) {
	for _, t := range Technologies {
		if t.ID == id {
			return t, true
		}
	}
	return Technology{}, false
}
