package countries

import (
	opensimplex "github.com/ojrac/opensimplex-go"
)

// City is an urban market inside a country. Attributes are generated
// deterministically from the world seed so every run with the same seed
// sees the same cities.
type City struct {
	Name           string  `json:"name"`
	CountryCode    string  `json:"country_code"`
	Population     int64   `json:"population"`
	IncomeLevel    float64 `json:"income_level"`    // 0..1
	EconomicGrowth float64 `json:"economic_growth"` // annual fraction, may be negative
	IsCapital      bool    `json:"is_capital"`
}

var cityPrefixes = []string{"North", "East", "Port", "West"}

// GenerateCities derives a city roster for each country from layered
// noise. The capital is always first and holds the largest share of the
// urban population.
func GenerateCities(seed int64, set []Country) map[string][]City {
	popNoise := opensimplex.NewNormalized(seed)
	incomeNoise := opensimplex.NewNormalized(seed + 1)
	growthNoise := opensimplex.NewNormalized(seed + 2)

	out := make(map[string][]City, len(set))
	for ci, c := range set {
		x := float64(ci)

		// 2 to 4 secondary cities, larger countries get more.
		n := 2
		if c.Population > 50_000_000 {
			n = 3
		}
		if c.Population > 200_000_000 {
			n = 4
		}

		cities := make([]City, 0, n+1)
		capitalShare := 0.08 + popNoise.Eval2(x, 0)*0.10
		cities = append(cities, City{
			Name:           c.Capital,
			CountryCode:    c.Code,
			Population:     int64(float64(c.Population) * capitalShare),
			IncomeLevel:    0.3 + incomeNoise.Eval2(x, 0)*0.7,
			EconomicGrowth: (growthNoise.Eval2(x, 0) - 0.4) * 0.1,
			IsCapital:      true,
		})
		for i := 1; i <= n; i++ {
			y := float64(i)
			share := capitalShare * (0.3 + popNoise.Eval2(x, y)*0.4)
			cities = append(cities, City{
				Name:           cityName(c.Capital, i),
				CountryCode:    c.Code,
				Population:     int64(float64(c.Population) * share),
				IncomeLevel:    0.2 + incomeNoise.Eval2(x, y)*0.7,
				EconomicGrowth: (growthNoise.Eval2(x, y) - 0.4) * 0.1,
			})
		}
		out[c.Code] = cities
	}
	return out
}

func cityName(capital string, i int) string {
	prefix := cityPrefixes[(i-1)%len(cityPrefixes)]
	return prefix + " " + capital
}

// CapitalOf returns the capital city for a country code, or false.
func CapitalOf(cities map[string][]City, code string) (City, bool) {
	for _, c := range cities[code] {
		if c.IsCapital {
			return c, true
		}
	}
	return City{}, false
}
