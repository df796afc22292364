// Package countries provides the world geography the companies expand
// across: country reference data, shipping distance tiers, and
// deterministic per-country city generation.
package countries

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Country is one market a company can operate in.
type Country struct {
	Code       string `json:"code"` // ISO 3166-1 alpha-3
	Name       string `json:"name"`
	Region     string `json:"region"` // continent, e.g. "Europe"
	Subregion  string `json:"subregion"`
	Capital    string `json:"capital"`
	Population int64  `json:"population"`
}

// Builtin is the baseline country set, used whenever the live dataset is
// unavailable. Capitals double as the default siting city.
var Builtin = []Country{
	{Code: "USA", Name: "United States", Region: "Americas", Subregion: "North America", Capital: "Washington, D.C.", Population: 334_900_000},
	{Code: "CAN", Name: "Canada", Region: "Americas", Subregion: "North America", Capital: "Ottawa", Population: 38_900_000},
	{Code: "MEX", Name: "Mexico", Region: "Americas", Subregion: "North America", Capital: "Mexico City", Population: 128_500_000},
	{Code: "BRA", Name: "Brazil", Region: "Americas", Subregion: "South America", Capital: "Brasília", Population: 216_400_000},
	{Code: "ARG", Name: "Argentina", Region: "Americas", Subregion: "South America", Capital: "Buenos Aires", Population: 45_800_000},
	{Code: "CHL", Name: "Chile", Region: "Americas", Subregion: "South America", Capital: "Santiago", Population: 19_600_000},
	{Code: "GBR", Name: "United Kingdom", Region: "Europe", Subregion: "Northern Europe", Capital: "London", Population: 67_700_000},
	{Code: "SWE", Name: "Sweden", Region: "Europe", Subregion: "Northern Europe", Capital: "Stockholm", Population: 10_500_000},
	{Code: "NOR", Name: "Norway", Region: "Europe", Subregion: "Northern Europe", Capital: "Oslo", Population: 5_500_000},
	{Code: "DEU", Name: "Germany", Region: "Europe", Subregion: "Western Europe", Capital: "Berlin", Population: 84_500_000},
	{Code: "FRA", Name: "France", Region: "Europe", Subregion: "Western Europe", Capital: "Paris", Population: 68_200_000},
	{Code: "NLD", Name: "Netherlands", Region: "Europe", Subregion: "Western Europe", Capital: "Amsterdam", Population: 17_900_000},
	{Code: "CHE", Name: "Switzerland", Region: "Europe", Subregion: "Western Europe", Capital: "Bern", Population: 8_800_000},
	{Code: "ESP", Name: "Spain", Region: "Europe", Subregion: "Southern Europe", Capital: "Madrid", Population: 48_300_000},
	{Code: "ITA", Name: "Italy", Region: "Europe", Subregion: "Southern Europe", Capital: "Rome", Population: 58_900_000},
	{Code: "GRC", Name: "Greece", Region: "Europe", Subregion: "Southern Europe", Capital: "Athens", Population: 10_400_000},
	{Code: "POL", Name: "Poland", Region: "Europe", Subregion: "Eastern Europe", Capital: "Warsaw", Population: 36_800_000},
	{Code: "CZE", Name: "Czechia", Region: "Europe", Subregion: "Eastern Europe", Capital: "Prague", Population: 10_900_000},
	{Code: "JPN", Name: "Japan", Region: "Asia", Subregion: "Eastern Asia", Capital: "Tokyo", Population: 124_500_000},
	{Code: "KOR", Name: "South Korea", Region: "Asia", Subregion: "Eastern Asia", Capital: "Seoul", Population: 51_700_000},
	{Code: "CHN", Name: "China", Region: "Asia", Subregion: "Eastern Asia", Capital: "Beijing", Population: 1_410_000_000},
	{Code: "IND", Name: "India", Region: "Asia", Subregion: "Southern Asia", Capital: "New Delhi", Population: 1_428_000_000},
	{Code: "SGP", Name: "Singapore", Region: "Asia", Subregion: "South-Eastern Asia", Capital: "Singapore", Population: 5_900_000},
	{Code: "IDN", Name: "Indonesia", Region: "Asia", Subregion: "South-Eastern Asia", Capital: "Jakarta", Population: 277_500_000},
	{Code: "THA", Name: "Thailand", Region: "Asia", Subregion: "South-Eastern Asia", Capital: "Bangkok", Population: 71_800_000},
	{Code: "AUS", Name: "Australia", Region: "Oceania", Subregion: "Australia and New Zealand", Capital: "Canberra", Population: 26_600_000},
	{Code: "NZL", Name: "New Zealand", Region: "Oceania", Subregion: "Australia and New Zealand", Capital: "Wellington", Population: 5_200_000},
	{Code: "ZAF", Name: "South Africa", Region: "Africa", Subregion: "Southern Africa", Capital: "Pretoria", Population: 60_400_000},
	{Code: "EGY", Name: "Egypt", Region: "Africa", Subregion: "Northern Africa", Capital: "Cairo", Population: 112_700_000},
	{Code: "NGA", Name: "Nigeria", Region: "Africa", Subregion: "Western Africa", Capital: "Abuja", Population: 223_800_000},
	{Code: "ARE", Name: "United Arab Emirates", Region: "Asia", Subregion: "Western Asia", Capital: "Abu Dhabi", Population: 9_500_000},
	{Code: "TUR", Name: "Türkiye", Region: "Asia", Subregion: "Western Asia", Capital: "Ankara", Population: 85_300_000},
}

// Index maps country code to Country for a given set.
func Index(set []Country) map[string]Country {
	idx := make(map[string]Country, len(set))
	for _, c := range set {
		idx[c.Code] = c
	}
	return idx
}

// ShippingTier classifies the logistics distance between two countries.
type ShippingTier int

const (
	TierDomestic ShippingTier = iota
	TierRegional
	TierIntercontinental
)

// Tier returns the shipping distance class between two countries. Unknown
// codes are treated as intercontinental.
func Tier(idx map[string]Country, from, to string) ShippingTier {
	if from == to {
		return TierDomestic
	}
	a, okA := idx[from]
	b, okB := idx[to]
	if okA && okB && a.Region == b.Region {
		return TierRegional
	}
	return TierIntercontinental
}

const restCountriesURL = "https://restcountries.com/v3.1/all?fields=cca3,name,region,subregion,capital,population"

type restCountry struct {
	CCA3 string `json:"cca3"`
	Name struct {
		Common string `json:"common"`
	} `json:"name"`
	Region     string   `json:"region"`
	Subregion  string   `json:"subregion"`
	Capital    []string `json:"capital"`
	Population int64    `json:"population"`
}

// Fetch pulls the live country dataset. Callers should fall back to
// Builtin on error; the simulation never requires network access.
func Fetch(ctx context.Context) ([]Country, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, restCountriesURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build country request: %w", err)
	}
	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch countries: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch countries: status %d", resp.StatusCode)
	}

	var raw []restCountry
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode countries: %w", err)
	}

	out := make([]Country, 0, len(raw))
	for _, rc := range raw {
		if rc.CCA3 == "" || len(rc.Capital) == 0 || rc.Region == "" || rc.Subregion == "" {
			continue
		}
		if rc.Population < 1_000_000 {
			continue // markets too small to model
		}
		out = append(out, Country{
			Code:       rc.CCA3,
			Name:       rc.Name.Common,
			Region:     rc.Region,
			Subregion:  rc.Subregion,
			Capital:    rc.Capital[0],
			Population: rc.Population,
		})
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("fetch countries: empty dataset")
	}
	return out, nil
}

// Load fetches the live dataset and falls back to Builtin on any failure.
func Load(ctx context.Context) []Country {
	set, err := Fetch(ctx)
	if err != nil {
		return Builtin
	}
	return set
}
