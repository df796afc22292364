// Package config loads the simulation's YAML configuration file, with
// full defaults when the file is absent.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds everything tunable from outside the binary.
type Config struct {
	// Seed drives all stochastic behavior. 0 means random each run.
	Seed int64 `yaml:"seed"`
	// DBPath is the sqlite file for save slots and the news log.
	DBPath string `yaml:"db_path"`
	// APIAddr is the HTTP listen address.
	APIAddr string `yaml:"api_addr"`
	// AdminToken guards mutating endpoints. Empty disables them.
	AdminToken string `yaml:"admin_token"`
	// TickIntervalMS is the wall-clock length of one simulated day at 1x.
	TickIntervalMS int `yaml:"tick_interval_ms"`
	// Competitors is the number of AI companies to spawn.
	Competitors int `yaml:"competitors"`
	// PlayerName and PlayerCountry seed the player company.
	PlayerName    string `yaml:"player_name"`
	PlayerCountry string `yaml:"player_country"`
	// FetchCountries enables the live country dataset at startup.
	FetchCountries bool `yaml:"fetch_countries"`
}

// Default returns the stock configuration.
func Default() Config {
	return Config{
		Seed:           0,
		DBPath:         "tycoon.db",
		APIAddr:        ":8080",
		TickIntervalMS: 2000,
		Competitors:    4,
		PlayerName:     "Player Corp",
		PlayerCountry:  "USA",
		FetchCountries: false,
	}
}

// Load reads the YAML file at path, layering it over defaults. A missing
// file is not an error; a malformed one is.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg.TickIntervalMS <= 0 {
		cfg.TickIntervalMS = Default().TickIntervalMS
	}
	if cfg.Competitors < 0 {
		cfg.Competitors = 0
	}
	return cfg, nil
}
