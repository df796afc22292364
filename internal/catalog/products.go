// Package catalog holds the static reference data the simulation runs on:
// products, raw materials, manufacturing recipes, farmable crops, the tech
// tree, store formats, and base construction costs. Loaded once at startup
// and treated as read-only for the session.
package catalog

// Product describes a sellable good at its base (zero-inflation) cost.
type Product struct {
	ID          string
	Name        string
	BaseCost    float64 // external sourcing cost per unit
	BaseQuality float64
}

// RawMaterial is an input good purchasable on the open market.
type RawMaterial struct {
	ID       string
	Name     string
	BaseCost float64
}

// Ingredient is one line of a manufacturing recipe.
type Ingredient struct {
	ID     string
	Amount float64
}

// Recipe describes how a factory turns raw materials into an output good.
type Recipe struct {
	OutputID       string
	Name           string
	Ingredients    []Ingredient
	ProductionRate int    // units per day
	RequiredTech   string // empty when available from the start
}

// Crop describes a raw material a farm can grow.
type Crop struct {
	ID             string
	Name           string
	ProductionRate int
}

// SourceableProducts are stocked from external suppliers without a factory.
var SourceableProducts = []Product{
	{ID: "prod_cola", Name: "Cola", BaseCost: 0.5, BaseQuality: 20},
	{ID: "prod_chips", Name: "Potato Chips", BaseCost: 0.8, BaseQuality: 20},
	{ID: "prod_bread", Name: "Bread", BaseCost: 1.2, BaseQuality: 20},
}

// RawMaterials lists every purchasable input at base cost.
var RawMaterials = []RawMaterial{
	{ID: "rm_flour", Name: "Flour", BaseCost: 0.4},
	{ID: "rm_sugar", Name: "Sugar", BaseCost: 0.6},
	{ID: "rm_wheat", Name: "Wheat", BaseCost: 0.15},
	{ID: "rm_sugar_cane", Name: "Sugar Cane", BaseCost: 0.1},
	{ID: "rm_plastic", Name: "Plastic", BaseCost: 1.5},
	{ID: "rm_semiconductor", Name: "Semiconductor", BaseCost: 25},
	{ID: "rm_steel", Name: "Steel", BaseCost: 10},
	{ID: "rm_rubber", Name: "Rubber", BaseCost: 5},
	{ID: "rm_engine", Name: "Engine", BaseCost: 2000},
	{ID: "rm_cotton", Name: "Cotton", BaseCost: 0.2},
	{ID: "rm_dyes", Name: "Dyes", BaseCost: 1.0},
	{ID: "rm_fabric", Name: "Fabric", BaseCost: 1.0},
	{ID: "rm_leather", Name: "Leather", BaseCost: 15.0},
	{ID: "rm_chemicals", Name: "Chemicals", BaseCost: 8.0},
	{ID: "rm_purified_water", Name: "Purified Water", BaseCost: 0.5},
	{ID: "rm_aluminum", Name: "Aluminum", BaseCost: 500},
	{ID: "rm_composites", Name: "Composites", BaseCost: 1500},
	{ID: "rm_avionics", Name: "Avionics", BaseCost: 50000},
	{ID: "rm_jet_engine", Name: "Jet Engine", BaseCost: 500000},
	{ID: "rm_titanium", Name: "Titanium", BaseCost: 800},
	{ID: "rm_coders", Name: "Developer Hours", BaseCost: 100},
	{ID: "rm_server_space", Name: "Server Space", BaseCost: 20},
	{ID: "rm_cheese", Name: "Cheese", BaseCost: 2.0},
	{ID: "rm_tomato_sauce", Name: "Tomato Sauce", BaseCost: 1.0},
	{ID: "rm_milk", Name: "Milk", BaseCost: 0.8},
	{ID: "rm_coffee_beans", Name: "Coffee Beans", BaseCost: 4.0},
	{ID: "rm_lithium", Name: "Lithium", BaseCost: 30.0},
	{ID: "rm_lcd_panel", Name: "LCD Panel", BaseCost: 40.0},
	{ID: "rm_small_motor", Name: "Small Motor", BaseCost: 20.0},
	{ID: "rm_motorcycle_engine", Name: "Motorcycle Engine", BaseCost: 500},
}

// Crops are the raw materials a farm can produce.
var Crops = map[string]Crop{
	"rm_wheat":        {ID: "rm_wheat", Name: "Wheat", ProductionRate: 150},
	"rm_sugar_cane":   {ID: "rm_sugar_cane", Name: "Sugar Cane", ProductionRate: 120},
	"rm_cotton":       {ID: "rm_cotton", Name: "Cotton", ProductionRate: 100},
	"rm_milk":         {ID: "rm_milk", Name: "Milk", ProductionRate: 90},
	"rm_coffee_beans": {ID: "rm_coffee_beans", Name: "Coffee Beans", ProductionRate: 70},
}

// Recipes maps output id to its manufacturing recipe. Outputs prefixed
// rm_ are intermediate goods that feed other recipes.
var Recipes = map[string]Recipe{
	"rm_sugar": {
		OutputID: "rm_sugar", Name: "Sugar",
		Ingredients:    []Ingredient{{ID: "rm_sugar_cane", Amount: 4}},
		ProductionRate: 80,
	},
	"prod_bread": {
		OutputID: "prod_bread", Name: "Bread",
		Ingredients:    []Ingredient{{ID: "rm_flour", Amount: 2}},
		ProductionRate: 50,
	},
	"prod_cake": {
		OutputID: "prod_cake", Name: "Cake",
		Ingredients:    []Ingredient{{ID: "rm_flour", Amount: 3}, {ID: "rm_sugar", Amount: 2}},
		ProductionRate: 30,
		RequiredTech:   "tech_food_processing",
	},
	"prod_frozen_pizza": {
		OutputID: "prod_frozen_pizza", Name: "Frozen Pizza",
		Ingredients:    []Ingredient{{ID: "rm_flour", Amount: 1.5}, {ID: "rm_cheese", Amount: 1}, {ID: "rm_tomato_sauce", Amount: 0.5}},
		ProductionRate: 40,
		RequiredTech:   "tech_food_processing",
	},
	"prod_ice_cream": {
		OutputID: "prod_ice_cream", Name: "Ice Cream",
		Ingredients:    []Ingredient{{ID: "rm_milk", Amount: 2}, {ID: "rm_sugar", Amount: 1}},
		ProductionRate: 60,
		RequiredTech:   "tech_food_processing",
	},
	"prod_premium_coffee": {
		OutputID: "prod_premium_coffee", Name: "Premium Coffee",
		Ingredients:    []Ingredient{{ID: "rm_coffee_beans", Amount: 0.5}, {ID: "rm_purified_water", Amount: 1}},
		ProductionRate: 100,
		RequiredTech:   "tech_food_processing",
	},
	"rm_fabric": {
		OutputID: "rm_fabric", Name: "Fabric",
		Ingredients:    []Ingredient{{ID: "rm_cotton", Amount: 4}},
		ProductionRate: 60,
		RequiredTech:   "tech_textiles",
	},
	"prod_tshirt": {
		OutputID: "prod_tshirt", Name: "T-Shirt",
		Ingredients:    []Ingredient{{ID: "rm_fabric", Amount: 2}, {ID: "rm_dyes", Amount: 0.5}},
		ProductionRate: 40,
		RequiredTech:   "tech_textiles",
	},
	"prod_jeans": {
		OutputID: "prod_jeans", Name: "Jeans",
		Ingredients:    []Ingredient{{ID: "rm_fabric", Amount: 5}, {ID: "rm_dyes", Amount: 1}},
		ProductionRate: 25,
		RequiredTech:   "tech_textiles",
	},
	"prod_jacket": {
		OutputID: "prod_jacket", Name: "Leather Jacket",
		Ingredients:    []Ingredient{{ID: "rm_fabric", Amount: 3}, {ID: "rm_leather", Amount: 2}},
		ProductionRate: 15,
		RequiredTech:   "tech_textiles",
	},
	"prod_socks": {
		OutputID: "prod_socks", Name: "Socks",
		Ingredients:    []Ingredient{{ID: "rm_cotton", Amount: 1}, {ID: "rm_dyes", Amount: 0.1}},
		ProductionRate: 80,
		RequiredTech:   "tech_textiles",
	},
	"prod_smartphone": {
		OutputID: "prod_smartphone", Name: "Smartphone",
		Ingredients:    []Ingredient{{ID: "rm_plastic", Amount: 5}, {ID: "rm_semiconductor", Amount: 2}},
		ProductionRate: 20,
		RequiredTech:   "tech_electronics",
	},
	"prod_laptop": {
		OutputID: "prod_laptop", Name: "Laptop",
		Ingredients:    []Ingredient{{ID: "rm_plastic", Amount: 10}, {ID: "rm_semiconductor", Amount: 4}, {ID: "rm_lcd_panel", Amount: 1}, {ID: "rm_lithium", Amount: 2}},
		ProductionRate: 10,
		RequiredTech:   "tech_electronics",
	},
	"prod_tv": {
		OutputID: "prod_tv", Name: "Television",
		Ingredients:    []Ingredient{{ID: "rm_plastic", Amount: 15}, {ID: "rm_lcd_panel", Amount: 1}, {ID: "rm_semiconductor", Amount: 1}},
		ProductionRate: 15,
		RequiredTech:   "tech_electronics",
	},
	"prod_drone": {
		OutputID: "prod_drone", Name: "Drone",
		Ingredients:    []Ingredient{{ID: "rm_plastic", Amount: 2}, {ID: "rm_semiconductor", Amount: 1}, {ID: "rm_small_motor", Amount: 4}},
		ProductionRate: 25,
		RequiredTech:   "tech_electronics",
	},
	"prod_car": {
		OutputID: "prod_car", Name: "Car",
		Ingredients:    []Ingredient{{ID: "rm_steel", Amount: 100}, {ID: "rm_rubber", Amount: 40}, {ID: "rm_engine", Amount: 1}},
		ProductionRate: 5,
		RequiredTech:   "tech_automotive",
	},
	"prod_truck": {
		OutputID: "prod_truck", Name: "Truck",
		Ingredients:    []Ingredient{{ID: "rm_steel", Amount: 200}, {ID: "rm_rubber", Amount: 80}, {ID: "rm_engine", Amount: 2}},
		ProductionRate: 2,
		RequiredTech:   "tech_automotive",
	},
	"prod_motorcycle": {
		OutputID: "prod_motorcycle", Name: "Motorcycle",
		Ingredients:    []Ingredient{{ID: "rm_steel", Amount: 20}, {ID: "rm_rubber", Amount: 10}, {ID: "rm_motorcycle_engine", Amount: 1}},
		ProductionRate: 10,
		RequiredTech:   "tech_automotive",
	},
	"prod_painkiller": {
		OutputID: "prod_painkiller", Name: "Painkillers",
		Ingredients:    []Ingredient{{ID: "rm_chemicals", Amount: 1}, {ID: "rm_purified_water", Amount: 2}},
		ProductionRate: 30,
		RequiredTech:   "tech_pharmaceuticals",
	},
	"prod_antibiotics": {
		OutputID: "prod_antibiotics", Name: "Antibiotics",
		Ingredients:    []Ingredient{{ID: "rm_chemicals", Amount: 3}, {ID: "rm_purified_water", Amount: 5}},
		ProductionRate: 15,
		RequiredTech:   "tech_pharmaceuticals",
	},
	"prod_vitamins": {
		OutputID: "prod_vitamins", Name: "Vitamins",
		Ingredients:    []Ingredient{{ID: "rm_chemicals", Amount: 0.5}, {ID: "rm_sugar", Amount: 0.2}},
		ProductionRate: 50,
		RequiredTech:   "tech_pharmaceuticals",
	},
	"prod_vaccine": {
		OutputID: "prod_vaccine", Name: "Vaccine",
		Ingredients:    []Ingredient{{ID: "rm_chemicals", Amount: 5}, {ID: "rm_purified_water", Amount: 10}},
		ProductionRate: 10,
		RequiredTech:   "tech_pharmaceuticals",
	},
	"prod_airplane": {
		OutputID: "prod_airplane", Name: "Private Jet",
		Ingredients:    []Ingredient{{ID: "rm_aluminum", Amount: 500}, {ID: "rm_composites", Amount: 200}, {ID: "rm_avionics", Amount: 10}, {ID: "rm_jet_engine", Amount: 2}},
		ProductionRate: 1,
		RequiredTech:   "tech_aerospace",
	},
	"prod_satellite": {
		OutputID: "prod_satellite", Name: "Satellite",
		Ingredients:    []Ingredient{{ID: "rm_titanium", Amount: 100}, {ID: "rm_composites", Amount: 50}, {ID: "rm_avionics", Amount: 20}},
		ProductionRate: 1,
		RequiredTech:   "tech_aerospace",
	},
	"prod_helicopter": {
		OutputID: "prod_helicopter", Name: "Helicopter",
		Ingredients:    []Ingredient{{ID: "rm_aluminum", Amount: 200}, {ID: "rm_composites", Amount: 50}, {ID: "rm_engine", Amount: 1}},
		ProductionRate: 2,
		RequiredTech:   "tech_aerospace",
	},
	"prod_videogame": {
		OutputID: "prod_videogame", Name: "Video Game",
		Ingredients:    []Ingredient{{ID: "rm_coders", Amount: 10}, {ID: "rm_server_space", Amount: 5}},
		ProductionRate: 10,
		RequiredTech:   "tech_software",
	},
	"prod_os": {
		OutputID: "prod_os", Name: "Operating System",
		Ingredients:    []Ingredient{{ID: "rm_coders", Amount: 50}, {ID: "rm_server_space", Amount: 20}},
		ProductionRate: 2,
		RequiredTech:   "tech_software",
	},
	"prod_bizsoftware": {
		OutputID: "prod_bizsoftware", Name: "Business Software",
		Ingredients:    []Ingredient{{ID: "rm_coders", Amount: 30}, {ID: "rm_server_space", Amount: 15}},
		ProductionRate: 5,
		RequiredTech:   "tech_software",
	},
	"prod_antivirus": {
		OutputID: "prod_antivirus", Name: "Antivirus Software",
		Ingredients:    []Ingredient{{ID: "rm_coders", Amount: 20}, {ID: "rm_server_space", Amount: 10}},
		ProductionRate: 8,
		RequiredTech:   "tech_software",
	},
	"prod_photo_editor": {
		OutputID: "prod_photo_editor", Name: "Photo Editor",
		Ingredients:    []Ingredient{{ID: "rm_coders", Amount: 15}, {ID: "rm_server_space", Amount: 8}},
		ProductionRate: 12,
		RequiredTech:   "tech_software",
	},
}

// AllProducts is every good a store can carry, including manufactured ones.
var AllProducts = buildAllProducts()

func buildAllProducts() []Product {
	extra := []Product{
		{ID: "prod_cake", Name: "Cake", BaseCost: 2.4, BaseQuality: 35},
		{ID: "prod_frozen_pizza", Name: "Frozen Pizza", BaseCost: 3.1, BaseQuality: 30},
		{ID: "prod_ice_cream", Name: "Ice Cream", BaseCost: 2.2, BaseQuality: 32},
		{ID: "prod_premium_coffee", Name: "Premium Coffee", BaseCost: 2.5, BaseQuality: 40},
		{ID: "prod_tshirt", Name: "T-Shirt", BaseCost: 2.5, BaseQuality: 25},
		{ID: "prod_jeans", Name: "Jeans", BaseCost: 6.0, BaseQuality: 30},
		{ID: "prod_jacket", Name: "Leather Jacket", BaseCost: 33.0, BaseQuality: 50},
		{ID: "prod_socks", Name: "Socks", BaseCost: 0.3, BaseQuality: 15},
		{ID: "prod_smartphone", Name: "Smartphone", BaseCost: 57.5, BaseQuality: 40},
		{ID: "prod_laptop", Name: "Laptop", BaseCost: 215, BaseQuality: 60},
		{ID: "prod_tv", Name: "Television", BaseCost: 87.5, BaseQuality: 55},
		{ID: "prod_drone", Name: "Drone", BaseCost: 108, BaseQuality: 58},
		{ID: "prod_car", Name: "Car", BaseCost: 3200, BaseQuality: 50},
		{ID: "prod_truck", Name: "Truck", BaseCost: 6400, BaseQuality: 52},
		{ID: "prod_motorcycle", Name: "Motorcycle", BaseCost: 750, BaseQuality: 48},
		{ID: "prod_painkiller", Name: "Painkillers", BaseCost: 9.0, BaseQuality: 45},
		{ID: "prod_antibiotics", Name: "Antibiotics", BaseCost: 26.5, BaseQuality: 55},
		{ID: "prod_vitamins", Name: "Vitamins", BaseCost: 4.12, BaseQuality: 48},
		{ID: "prod_vaccine", Name: "Vaccine", BaseCost: 45, BaseQuality: 60},
		{ID: "prod_airplane", Name: "Private Jet", BaseCost: 2050000, BaseQuality: 70},
		{ID: "prod_satellite", Name: "Satellite", BaseCost: 1155000, BaseQuality: 80},
		{ID: "prod_helicopter", Name: "Helicopter", BaseCost: 177000, BaseQuality: 75},
		{ID: "prod_videogame", Name: "Video Game", BaseCost: 1100, BaseQuality: 60},
		{ID: "prod_os", Name: "Operating System", BaseCost: 5400, BaseQuality: 65},
		{ID: "prod_bizsoftware", Name: "Business Software", BaseCost: 3300, BaseQuality: 62},
		{ID: "prod_antivirus", Name: "Antivirus Software", BaseCost: 2200, BaseQuality: 68},
		{ID: "prod_photo_editor", Name: "Photo Editor", BaseCost: 1660, BaseQuality: 64},
	}
	out := make([]Product, 0, len(SourceableProducts)+len(extra))
	seen := make(map[string]bool)
	for _, p := range append(append([]Product{}, SourceableProducts...), extra...) {
		if seen[p.ID] {
			continue
		}
		seen[p.ID] = true
		out = append(out, p)
	}
	return out
}

// ProductByID returns a product from the full database, or false.
func ProductByID(id string) (Product, bool) {
	for _, p := range AllProducts {
		if p.ID == id {
			return p, true
		}
	}
	return Product{}, false
}

// RawMaterialByID returns a raw material, or false.
func RawMaterialByID(id string) (RawMaterial, bool) {
	for _, rm := range RawMaterials {
		if rm.ID == id {
			return rm, true
		}
	}
	return RawMaterial{}, false
}

// RecipeCost is the ingredient cost to make one unit at the given inflation.
func RecipeCost(r Recipe, inflation float64) float64 {
	total := 0.0
	for _, ing := range r.Ingredients {
		if rm, ok := RawMaterialByID(ing.ID); ok {
			total += ing.Amount * rm.BaseCost * (1 + inflation)
		}
	}
	return total
}

// SourcingCost is the external purchase cost per unit at the given inflation.
func SourcingCost(id string, inflation float64) float64 {
	if p, ok := ProductByID(id); ok {
		return p.BaseCost * (1 + inflation)
	}
	return 0
}
