package rules

import "math"

const (
	supplyCapMax          = 200
	supplyPerOverlord     = 8
	larvaPerInject        = 7
	injectEnergy          = 25
	overlordBuildTime     = 18.0
	minimumUnitCost       = 50
	overlordForecastAhead = overlordBuildTime / 3 // seconds of income counted toward the next overlords
)

// SupplyInputs are the counts the overlord forecast needs. SupplyCap is the
// absolute cap, not the current one. InjectReady counts producers with enough
// energy to inject; AvailableSpawns counts larvae ready now. Projected is the
// mineral stock expected by the time an increment finishes.
type SupplyInputs struct {
	SupplyCap       int
	SupplyUsed      int
	PerIncrement    int
	Townhalls       int
	InjectReady     int
	PerInjectYield  int
	AvailableSpawns int
	SupplyPerSpawn  int
	Projected       float64
	MinimumUnitCost int
	InProgress      int
}

// SupplyForecast returns how many supply increments to start now. It never
// goes negative and subtracts increments already on their way.
func SupplyForecast(in SupplyInputs) int {
	if in.PerIncrement <= 0 || in.MinimumUnitCost <= 0 {
		return 0
	}
	inc := float64(in.PerIncrement)
	maxNeeded := roundHalfEven(float64(in.SupplyCap-in.SupplyUsed) / inc)

	spawns := in.Townhalls + in.InjectReady*in.PerInjectYield + in.AvailableSpawns
	demand := roundHalfEven(float64(spawns*in.SupplyPerSpawn) / inc)
	affordable := roundHalfEven(in.Projected / float64(in.MinimumUnitCost))

	return max(min(maxNeeded, demand, affordable)-in.InProgress, 0)
}

// roundHalfEven matches the rounding the tuning constants were chosen with.
func roundHalfEven(v float64) int {
	return int(math.RoundToEven(v))
}

// supplyPerSpawn is the supply a larva turns into under the favored tier.
func (e RuleEnv) supplyPerSpawn() int {
	switch {
	case e.Phase(PhaseRoach) || e.Phase(PhaseMutalisk) || e.Phase(PhaseHydralisk):
		return 2
	case e.Phase(PhaseUltralisk):
		return 6
	default:
		return 1
	}
}

// OverlordsNeeded feeds the snapshot into SupplyForecast.
func (e RuleEnv) OverlordsNeeded() int {
	ready := 0
	for _, q := range e.Ready(Queen) {
		if q.Energy >= injectEnergy {
			ready++
		}
	}
	inProgress := 0
	for _, o := range e.Units(Overlord) {
		if !o.IsReady {
			inProgress++
		}
	}
	inProgress += e.Snap.PendingCount(Overlord)

	return SupplyForecast(SupplyInputs{
		SupplyCap:       supplyCapMax,
		SupplyUsed:      e.SupplyUsed(),
		PerIncrement:    supplyPerOverlord,
		Townhalls:       len(e.Townhalls()),
		InjectReady:     ready,
		PerInjectYield:  larvaPerInject,
		AvailableSpawns: len(e.Ready(Larva)),
		SupplyPerSpawn:  e.supplyPerSpawn(),
		Projected:       float64(e.Minerals()) + e.Snap.CollectionRateMinerals*overlordForecastAhead/60,
		MinimumUnitCost: minimumUnitCost,
		InProgress:      inProgress,
	})
}

// LowWater is the supply headroom below which another overlord is wanted.
func (e RuleEnv) LowWater() int {
	switch {
	case e.Time() > 500:
		return 12
	case e.Time() > 400:
		return 10
	case e.Time() > 250:
		return 8
	default:
		return 6
	}
}

// ShouldBuildOverlord covers the two opening overlords and the low-water rule.
func (e RuleEnv) ShouldBuildOverlord() bool {
	if e.SupplyUsed() == 13 && e.Time() < 60 {
		return true
	}
	if e.SupplyUsed() == 19 && e.Time() < 120 {
		return true
	}
	return e.SupplyCap() != supplyCapMax && e.SupplyLeft() < e.LowWater()
}
