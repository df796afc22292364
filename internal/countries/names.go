package countries

// Competitor seed names, paired with a preferred home market. The engine
// assigns them in order when spawning AI companies.
type CompetitorSeed struct {
	Name        string
	CountryCode string
}

// CompetitorSeeds is the default AI roster.
var CompetitorSeeds = []CompetitorSeed{
	{Name: "Northgate Retail Group", CountryCode: "USA"},
	{Name: "Hanwa Industrial", CountryCode: "JPN"},
	{Name: "Rheinland Werke", CountryCode: "DEU"},
	{Name: "Meridian Commerce", CountryCode: "GBR"},
	{Name: "Austral Trading Co.", CountryCode: "AUS"},
	{Name: "Baltica Holdings", CountryCode: "SWE"},
	{Name: "Serra Azul Group", CountryCode: "BRA"},
	{Name: "Taeyang Corporation", CountryCode: "KOR"},
	{Name: "Loire Industries", CountryCode: "FRA"},
	{Name: "Mahanadi Enterprises", CountryCode: "IND"},
	{Name: "Delta Crown Trading", CountryCode: "EGY"},
	{Name: "Cascadia Brands", CountryCode: "CAN"},
}
