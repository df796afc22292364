// Package economy models the macro environment the companies operate in:
// inflation, interest rates, and the boom/recession cycle.
package economy

import "github.com/keldine/worldtycoon/internal/entropy"

// Cycle is the phase of the economic cycle.
type Cycle string

const (
	CycleNormal    Cycle = "NORMAL"
	CycleBoom      Cycle = "BOOM"
	CycleRecession Cycle = "RECESSION"
)

// Shock magnitudes and floors for quarterly indicator drift.
const (
	inflationShockRange = 0.01  // uniform ±0.5%
	interestShockRange  = 0.015 // uniform ±0.75%
	inflationFloor      = -0.05
	interestFloor       = 0.005

	minQuartersInCycle = 4  // no transitions before this
	maxQuartersInCycle = 12 // forced transition past this
	transitionChance   = 0.25
)

// Indicators is the macroeconomic state shared by all companies.
type Indicators struct {
	InflationRate   float64 `json:"inflation_rate"`
	InterestRate    float64 `json:"interest_rate"`
	Cycle           Cycle   `json:"cycle"`
	QuartersInCycle int     `json:"quarters_in_cycle"`
}

// NewIndicators returns the opening macro state: 2% inflation, 3% interest,
// normal cycle.
func NewIndicators() Indicators {
	return Indicators{
		InflationRate: 0.02,
		InterestRate:  0.03,
		Cycle:         CycleNormal,
	}
}

// QuarterlyShock drifts inflation and interest by a bounded uniform shock
// and steps the cycle state machine. Called on the first day of each
// quarter.
func (ind *Indicators) QuarterlyShock(rng entropy.Source) {
	ind.InflationRate += (rng.Float64() - 0.5) * inflationShockRange
	if ind.InflationRate < inflationFloor {
		ind.InflationRate = inflationFloor
	}
	ind.InterestRate += (rng.Float64() - 0.5) * interestShockRange
	if ind.InterestRate < interestFloor {
		ind.InterestRate = interestFloor
	}

	ind.QuartersInCycle++
	eligible := ind.QuartersInCycle > minQuartersInCycle && rng.Float64() < transitionChance
	if !eligible && ind.QuartersInCycle <= maxQuartersInCycle {
		return
	}
	prev := ind.Cycle
	switch ind.Cycle {
	case CycleNormal:
		if rng.Float64() < 0.5 {
			ind.Cycle = CycleBoom
		} else {
			ind.Cycle = CycleRecession
		}
	case CycleBoom:
		if rng.Float64() < 0.7 {
			ind.Cycle = CycleNormal
		}
	case CycleRecession:
		if rng.Float64() < 0.7 {
			ind.Cycle = CycleNormal
		}
	}
	// The counter only resets when the phase actually changes, so a boom
	// that survives its transition roll keeps aging toward the forced cap.
	if ind.Cycle != prev {
		ind.QuartersInCycle = 0
	}
}

// DemandMultiplier is the cycle's effect on daily sales volume.
func (ind Indicators) DemandMultiplier() float64 {
	switch ind.Cycle {
	case CycleBoom:
		return 1.2
	case CycleRecession:
		return 0.8
	default:
		return 1.0
	}
}

// StockDrift is the cycle's daily contribution to share-price movement.
func (ind Indicators) StockDrift() float64 {
	switch ind.Cycle {
	case CycleBoom:
		return 0.0005
	case CycleRecession:
		return -0.0008
	default:
		return 0
	}
}
