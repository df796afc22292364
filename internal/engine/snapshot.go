package engine

import (
	"encoding/json"
	"fmt"

	"github.com/keldine/worldtycoon/internal/countries"
	"github.com/keldine/worldtycoon/internal/entropy"
)

// Snapshot serializes the world for a save slot.
func (w *World) Snapshot() ([]byte, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	data, err := json.Marshal(w)
	if err != nil {
		return nil, fmt.Errorf("snapshot world: %w", err)
	}
	return data, nil
}

// Restore rebuilds a world from a snapshot. Derived state (country index,
// random source) is reconstructed; random draws do not replay across a
// save/load boundary.
func Restore(data []byte) (*World, error) {
	w := &World{}
	if err := json.Unmarshal(data, w); err != nil {
		return nil, fmt.Errorf("restore world: %w", err)
	}
	if len(w.Companies) == 0 {
		return nil, fmt.Errorf("restore world: no companies in snapshot")
	}
	if len(w.Countries) == 0 {
		w.Countries = countries.Builtin
	}
	w.CountryIndex = countries.Index(w.Countries)
	if w.Cities == nil {
		w.Cities = countries.GenerateCities(w.Seed, w.Countries)
	}
	if w.Averages.Quality == nil {
		w.Averages.Quality = make(map[string]float64)
	}
	if w.Averages.Awareness == nil {
		w.Averages.Awareness = make(map[string]float64)
	}
	w.rng = entropy.New(w.Seed)
	return w, nil
}
