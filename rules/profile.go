package rules

import (
	"fmt"

	"github.com/nstehr/brood/timing"
)

// Phase names understood by the strategies.
const (
	PhaseBooming   = "booming"
	PhaseRushing   = "rushing"
	PhaseMutalisk  = "mutalisk"
	PhaseUltralisk = "ultralisk"
	PhaseRoach     = "roach"
	PhaseHydralisk = "hydralisk"
)

// Faction selects the Strategy implementation.
const (
	FactionZerg    = "zerg"
	FactionTerran  = "terran"
	FactionProtoss = "protoss"
)

// Profile is the static configuration of one strategy: when each phase is
// open, how heavily each unit is favored, and a few economic constants.
// Nothing in it changes during a match.
type Profile struct {
	Name                string                     `yaml:"name"`
	Faction             string                     `yaml:"faction"`
	Timings             map[string][]timing.Window `yaml:"timings"`
	Weights             CompositionWeights         `yaml:"weights"`
	IdealWorkersPerBase int                        `yaml:"ideal_workers_per_base"`
	MaxWorkers          int                        `yaml:"max_workers"`
	PhaseCadence        int                        `yaml:"phase_cadence"`
	Visualize           bool                       `yaml:"visualize"`
	CameraFollow        bool                       `yaml:"camera_follow"`
	SpireUpgrades       bool                       `yaml:"spire_upgrades"`
}

// CompositionWeights are the independent roll probabilities per army unit.
type CompositionWeights struct {
	Ultralisk float64 `yaml:"ultralisk"`
	Mutalisk  float64 `yaml:"mutalisk"`
	Hydralisk float64 `yaml:"hydralisk"`
	Roach     float64 `yaml:"roach"`
	Zergling  float64 `yaml:"zergling"`
}

// DefaultProfile is the balanced zerg build.
func DefaultProfile() Profile {
	inf := timing.Forever
	return Profile{
		Name:    "balanced",
		Faction: FactionZerg,
		Timings: map[string][]timing.Window{
			PhaseBooming: {{Start: timing.SinceStart, End: 500}, {Start: 550, End: 775}, {Start: 800, End: 1000}, {Start: 1500, End: 1900}, {Start: 2000, End: inf}},
			PhaseRushing: {{Start: 400, End: 850}, {Start: 950, End: 1000}, {Start: 1250, End: 1300}, {Start: 1450, End: 1500}, {Start: 1650, End: 1700},
				{Start: 1850, End: 1900}, {Start: 2050, End: 2100}, {Start: 2250, End: 2300}, {Start: 2600, End: inf}},
			PhaseMutalisk:  {{Start: 300, End: 800}, {Start: 900, End: 1200}},
			PhaseUltralisk: {{Start: 400, End: inf}},
			PhaseRoach:     {{Start: 400, End: 700}, {Start: 1000, End: inf}},
			PhaseHydralisk: {{Start: 600, End: inf}},
		},
		Weights: CompositionWeights{
			Ultralisk: 0.8,
			Mutalisk:  0.7,
			Hydralisk: 0.2,
			Roach:     0.1,
			Zergling:  0.9,
		},
		IdealWorkersPerBase: 24,
		MaxWorkers:          85,
		PhaseCadence:        8,
	}
}

// DefaultTerranProfile is the marine strategy. Only the booming phase is used.
func DefaultTerranProfile() Profile {
	return Profile{
		Name:    "marines",
		Faction: FactionTerran,
		Timings: map[string][]timing.Window{
			PhaseBooming: {{Start: timing.SinceStart, End: timing.Forever}},
		},
		IdealWorkersPerBase: 16,
		MaxWorkers:          16,
		PhaseCadence:        8,
	}
}

// DefaultProtossProfile is the gateway strategy. Army production only runs
// outside the booming windows.
func DefaultProtossProfile() Profile {
	return Profile{
		Name:    "gateway",
		Faction: FactionProtoss,
		Timings: map[string][]timing.Window{
			PhaseBooming: {{Start: timing.SinceStart, End: 250}, {Start: 300, End: 400}, {Start: 500, End: 600}, {Start: 800, End: 1000}},
		},
		IdealWorkersPerBase: 24,
		MaxWorkers:          70,
		PhaseCadence:        8,
	}
}

// Validate clamps weights to [0, 1] and counts to sane ranges, and rejects
// profiles that name an unknown faction.
func (p *Profile) Validate() error {
	switch p.Faction {
	case FactionZerg, FactionTerran, FactionProtoss:
	default:
		return fmt.Errorf("unknown faction %q", p.Faction)
	}
	p.Weights.Ultralisk = clamp(p.Weights.Ultralisk, 0, 1)
	p.Weights.Mutalisk = clamp(p.Weights.Mutalisk, 0, 1)
	p.Weights.Hydralisk = clamp(p.Weights.Hydralisk, 0, 1)
	p.Weights.Roach = clamp(p.Weights.Roach, 0, 1)
	p.Weights.Zergling = clamp(p.Weights.Zergling, 0, 1)
	p.IdealWorkersPerBase = clampInt(p.IdealWorkersPerBase, 1, 80)
	p.MaxWorkers = clampInt(p.MaxWorkers, 1, 200)
	p.PhaseCadence = clampInt(p.PhaseCadence, 1, 1000)
	return nil
}

// clampInt restricts v to [lo, hi].
func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// clamp restricts v to [lo, hi].
func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
