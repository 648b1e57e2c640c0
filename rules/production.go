package rules

import (
	"log/slog"

	"github.com/nstehr/brood/model"
)

// Candidate is one entry of the army composition roll.
type Candidate struct {
	Unit     string
	Weight   float64
	Eligible func(env RuleEnv) bool
}

// ZergCandidates lists army units from most to least supply-expensive.
func ZergCandidates(w CompositionWeights) []Candidate {
	return []Candidate{
		{Ultralisk, w.Ultralisk, RuleEnv.ShouldBuildUltralisk},
		{Mutalisk, w.Mutalisk, RuleEnv.ShouldBuildMutalisk},
		{Hydralisk, w.Hydralisk, RuleEnv.ShouldBuildHydralisk},
		{Roach, w.Roach, RuleEnv.ShouldBuildRoach},
		{Zergling, w.Zergling, RuleEnv.ShouldBuildZergling},
	}
}

// SelectComposition walks candidates in order and returns the first eligible
// one whose roll succeeds. Ineligible candidates consume no roll. When every
// roll fails nothing is built this opportunity.
func SelectComposition(env RuleEnv, candidates []Candidate) (string, bool) {
	for _, c := range candidates {
		if !c.Eligible(env) {
			continue
		}
		if env.Rand.Float64() < c.Weight {
			return c.Unit, true
		}
	}
	return "", false
}

func (e RuleEnv) ShouldBuildUltralisk() bool {
	return e.Phase(PhaseUltralisk) && e.CanAfford(Ultralisk) && e.HasReady(UltraliskCavern) && e.SupplyLeft() >= 6
}

func (e RuleEnv) ShouldBuildMutalisk() bool {
	return e.Phase(PhaseMutalisk) && e.CanAfford(Mutalisk) && e.HasReady(Spire) && e.SupplyLeft() >= 2
}

func (e RuleEnv) ShouldBuildHydralisk() bool {
	return e.Phase(PhaseHydralisk) && e.CanAfford(Hydralisk) && e.HasReady(HydraliskDen) && e.SupplyLeft() >= 2
}

func (e RuleEnv) ShouldBuildRoach() bool {
	if e.Minerals() < 150 {
		return false
	}
	return e.Phase(PhaseRoach) && e.CanAfford(Roach) && e.HasReady(RoachWarren) && e.SupplyLeft() >= 2
}

// ShouldBuildZergling favors lings when defending, or outside a boom while
// minerals outweigh gas.
func (e RuleEnv) ShouldBuildZergling() bool {
	ratio := e.Vespene() == 0 || float64(e.Minerals())/float64(e.Vespene()) > 1.3
	wanted := e.RecentlyAttacked() || (!e.Phase(PhaseBooming) && ratio)
	return wanted && e.HasReady(SpawningPool) && e.SupplyLeft() > 2 && e.CanAfford(Zergling)
}

// ShouldBuildDrones is the economic rule: keep droning during a boom until the
// worker cap or the per-base ideal is met.
func (e RuleEnv) ShouldBuildDrones() bool {
	workers := len(e.Workers())
	return len(e.Ready(Larva)) > 0 &&
		workers < e.Profile.MaxWorkers &&
		e.Phase(PhaseBooming) &&
		e.WorkersPerBase() < float64(e.Profile.IdealWorkersPerBase)
}

func (e RuleEnv) CanBuildDrone() bool {
	return e.SupplyLeft() > 1 && e.CanAfford(Drone)
}

// randomLarva picks an unclaimed larva.
func randomLarva(env RuleEnv) (model.UnitView, bool) {
	larvae := env.Larvae()
	if len(larvae) == 0 {
		return model.UnitView{}, false
	}
	return larvae[env.Rand.IntN(len(larvae))], true
}

// PlanArmy rolls the composition once against a random larva.
func PlanArmy(env RuleEnv, out *Orders) {
	larva, ok := randomLarva(env)
	if !ok {
		return
	}
	trainRolled(env, out, larva.ID, ZergCandidates(env.Profile.Weights))
}

// trainRolled rolls candidates once and trains the winner from producer.
func trainRolled(env RuleEnv, out *Orders, producer int, candidates []Candidate) bool {
	unit, ok := SelectComposition(env, candidates)
	if !ok || !out.Train(producer, unit) {
		return false
	}
	slog.Debug("training", "unit", unit, "producer", producer, "time", env.Time())
	return true
}

// PlanDrones trains one drone when the economy wants one and no base is
// or was recently under attack.
func PlanDrones(env RuleEnv, out *Orders) {
	if env.RecentlyAttacked() || !env.ShouldBuildDrones() || !env.CanBuildDrone() {
		return
	}
	larva, ok := randomLarva(env)
	if !ok {
		return
	}
	if out.Train(larva.ID, Drone) {
		slog.Debug("training", "unit", Drone, "workers", len(env.Workers()), "time", env.Time())
	}
}

// PlanOverlords trains supply when below the low-water mark. The forecast
// decides how many; one is always started when nothing is on its way.
func PlanOverlords(env RuleEnv, out *Orders) {
	if !env.ShouldBuildOverlord() {
		return
	}
	n := env.OverlordsNeeded()
	if n == 0 && env.Snap.PendingCount(Overlord) == 0 && countUnready(env.Units(Overlord)) == 0 {
		n = 1
	}
	for range n {
		larva, ok := randomLarva(env)
		if !ok || !out.Train(larva.ID, Overlord) {
			return
		}
		slog.Debug("training", "unit", Overlord, "supplyLeft", env.SupplyLeft(), "time", env.Time())
	}
}

func countUnready(units []model.UnitView) int {
	n := 0
	for _, u := range units {
		if !u.IsReady {
			n++
		}
	}
	return n
}

// PlanQueens gives every idle townhall without a queen nearby one queen.
// Skipped on the iterations where rally points are refreshed.
func PlanQueens(env RuleEnv, out *Orders) {
	if env.Iteration()%50 == 0 || !env.HasReady(SpawningPool) {
		return
	}
	queens := env.Ready(Queen)
	for _, th := range env.IdleReady(townhallTypes...) {
		if len(model.Within(queens, th.Position, 5)) > 0 {
			continue
		}
		if env.Pending(Queen) > 0 {
			return
		}
		if out.Train(th.ID, Queen) {
			slog.Info("training", "unit", Queen, "townhall", th.ID, "time", env.Time())
		}
	}
}

// PlanInjects sends idle queens to inject the closest townhall.
func PlanInjects(env RuleEnv, out *Orders) {
	townhalls := env.Townhalls()
	for _, q := range env.Ready(Queen) {
		if !q.IsIdle || !env.Snap.Offers(q.ID, AbilityInjectLarva) {
			continue
		}
		th, ok := model.ClosestUnit(townhalls, q.Position)
		if !ok {
			return
		}
		out.Use(q.ID, AbilityInjectLarva, th.ID)
	}
}

// PlanRallies points every finished townhall at the rally point.
func PlanRallies(env RuleEnv, out *Orders) {
	rally := env.RallyPoint()
	slog.Debug("setting rally points", "x", rally.X, "y", rally.Y)
	for _, th := range env.ReadyTownhalls() {
		out.Rally(th.ID, rally)
	}
}
