package rules

import (
	"math"

	"github.com/nstehr/brood/model"
)

// RuleEnv wraps one tick's snapshot and the match memory and exposes helper
// methods callable from expr expressions and from Go decision code alike.
type RuleEnv struct {
	Snap    model.WorldSnapshot
	State   *StrategyState
	Profile Profile
	Rand    Rand
	out     *Orders
}

// NewRuleEnv binds a snapshot to the match state for one planning pass.
func NewRuleEnv(snap model.WorldSnapshot, state *StrategyState, p Profile, r Rand, out *Orders) RuleEnv {
	return RuleEnv{Snap: snap, State: state, Profile: p, Rand: r, out: out}
}

func (e RuleEnv) Time() float64    { return e.Snap.Time }
func (e RuleEnv) Iteration() int   { return e.Snap.Iteration }
func (e RuleEnv) Minerals() int    { return e.Snap.Minerals }
func (e RuleEnv) Vespene() int     { return e.Snap.Vespene }
func (e RuleEnv) SupplyUsed() int  { return e.Snap.SupplyUsed }
func (e RuleEnv) SupplyCap() int   { return e.Snap.SupplyCap }
func (e RuleEnv) SupplyLeft() int  { return e.Snap.SupplyLeft() }

func (e RuleEnv) ExpansionCount() int { return e.State.ExpansionCount }

// Has reports any unit of type t, finished or not.
func (e RuleEnv) Has(t string) bool { return e.Count(t) > 0 }

func (e RuleEnv) HasReady(t string) bool { return e.ReadyCount(t) > 0 }

func (e RuleEnv) Count(t string) int { return countType(e.Snap.Units, t) }

func (e RuleEnv) ReadyCount(t string) int { return len(e.Ready(t)) }

// Pending counts what the host reports as ordered plus what this batch has
// already requested.
func (e RuleEnv) Pending(t string) int {
	n := e.Snap.PendingCount(t)
	if e.out != nil {
		n += e.out.Requested(t)
	}
	return n
}

// CanAfford checks the item against resources the current batch has not spent.
func (e RuleEnv) CanAfford(item string) bool {
	if e.out != nil {
		return e.out.CanAfford(item)
	}
	c, ok := CostOf(item)
	return ok && c.Minerals <= e.Snap.Minerals && c.Vespene <= e.Snap.Vespene && c.Supply <= max(e.Snap.SupplyLeft(), 0)
}

// BuildOnce reports that no structure of type t exists or is on its way and
// one is affordable.
func (e RuleEnv) BuildOnce(t string) bool {
	return !e.Has(t) && e.Pending(t) == 0 && e.CanAfford(t)
}

// Missing is BuildOnce for structures that may be rebuilt: nothing ready and
// nothing pending.
func (e RuleEnv) Missing(t string) bool {
	return !e.HasReady(t) && e.Pending(t) == 0 && e.CanAfford(t)
}

func (e RuleEnv) Phase(name string) bool { return e.State.Phase(name) }

// Rushing is the rushing window or an army trade that is going our way.
func (e RuleEnv) Rushing() bool {
	return e.Phase(PhaseRushing) || e.Snap.Score.ArmyLost < e.Snap.Score.ArmyKilled
}

func (e RuleEnv) Milestone(name string) bool { return e.State.Reached(Milestone(name)) }

func (e RuleEnv) UnderAttack() bool { return len(e.TownhallsUnderAttack()) > 0 }

// RecentlyAttacked is true while under attack and for a while after.
func (e RuleEnv) RecentlyAttacked() bool {
	return e.UnderAttack() || e.State.RecentlyAttacked(e.Snap.Time)
}

// HasIdleTownhall reports a finished townhall with an empty queue.
func (e RuleEnv) HasIdleTownhall() bool { return len(e.IdleReady(townhallTypes...)) > 0 }

// IdealEvolutionChambers grows with match time.
func (e RuleEnv) IdealEvolutionChambers() int {
	n := 0
	if e.Time() > 190 {
		n++
	}
	if e.Time() > 300 {
		n++
	}
	return n
}

// IdealSpines is the spine crawler count wanted at the front base.
func (e RuleEnv) IdealSpines() int {
	n := 0
	if e.Time() > 250 {
		n++
	}
	if e.Time() > 350 {
		n++
	}
	return n
}

func (e RuleEnv) IdealSpores() int {
	if e.Time() > 400 {
		return 1
	}
	return 0
}

// FrontDefenses counts finished structures of type t within 20 of the front base.
func (e RuleEnv) FrontDefenses(t string) int {
	front, ok := e.FrontTownhall()
	if !ok {
		return 0
	}
	return len(model.Within(e.Ready(t), front.Position, 20))
}

// IdealExtractors is the extractor count wanted at this point of the match.
func (e RuleEnv) IdealExtractors() float64 {
	n := 0.0
	if e.State.ExpansionCount != 0 && e.Time() > 68 {
		n++
	}
	if e.Time() > 255 {
		n += 2
	}
	if e.Time() > 200 {
		n++
	}
	if e.Time() > 300 {
		n++
	}
	if e.Time() > 334 {
		n = math.Inf(1)
	}
	return n
}

// ShouldBuildGas is false while sitting on a gas surplus before the late game.
func (e RuleEnv) ShouldBuildGas() bool {
	if e.Vespene() > 1000 && e.Time() <= 2000 {
		return false
	}
	return float64(e.Count(Extractor)) < e.IdealExtractors()
}

// WorkersPerBase divides workers by owned bases that still have minerals.
func (e RuleEnv) WorkersPerBase() float64 {
	workers := float64(len(e.Workers()))
	bases := 0
	for _, x := range e.Snap.Expansions {
		if x.MineralFields > 0 {
			bases++
		}
	}
	if bases == 0 {
		return workers
	}
	return workers / float64(bases)
}

// WorkersPerTownhall divides workers by townhalls, or counts ready workers
// when no townhall has finished.
func (e RuleEnv) WorkersPerTownhall() float64 {
	if len(e.ReadyTownhalls()) == 0 {
		n := 0
		for _, w := range e.Workers() {
			if w.IsReady {
				n++
			}
		}
		return float64(n)
	}
	return float64(len(e.Workers())) / float64(len(e.Townhalls()))
}

// --- unit selections used from Go ---

func (e RuleEnv) Units(types ...string) []model.UnitView { return ofType(e.Snap.Units, types...) }

func (e RuleEnv) Ready(types ...string) []model.UnitView {
	var out []model.UnitView
	for _, u := range e.Units(types...) {
		if u.IsReady {
			out = append(out, u)
		}
	}
	return out
}

// IdleReady returns finished units of the given types with nothing queued.
func (e RuleEnv) IdleReady(types ...string) []model.UnitView {
	var out []model.UnitView
	for _, u := range e.Ready(types...) {
		if u.HasNoQueue() && !e.claimed(u.ID) {
			out = append(out, u)
		}
	}
	return out
}

func (e RuleEnv) claimed(id int) bool { return e.out != nil && e.out.Claimed(id) }

func (e RuleEnv) Townhalls() []model.UnitView      { return e.Units(townhallTypes...) }
func (e RuleEnv) ReadyTownhalls() []model.UnitView { return e.Ready(townhallTypes...) }
func (e RuleEnv) Workers() []model.UnitView        { return e.Units(workerTypes...) }

// Forces are the finished combat units.
func (e RuleEnv) Forces() []model.UnitView { return e.Ready(combatTypes...) }

// Larvae returns ready larvae nobody has claimed this tick.
func (e RuleEnv) Larvae() []model.UnitView {
	var out []model.UnitView
	for _, l := range e.Ready(Larva) {
		if !e.claimed(l.ID) {
			out = append(out, l)
		}
	}
	return out
}

// Home is the start location.
func (e RuleEnv) Home() model.Point { return e.Snap.StartLocation }

// EnemyHome is the first enemy start location, if the map has one.
func (e RuleEnv) EnemyHome() (model.Point, bool) {
	if len(e.Snap.EnemyStartLocations) == 0 {
		return model.Point{}, false
	}
	return e.Snap.EnemyStartLocations[0], true
}

// TownhallsUnderAttack returns townhalls with more than 3 ground attackers
// (dps above 5) within 35.
func (e RuleEnv) TownhallsUnderAttack() []model.UnitView {
	var out []model.UnitView
	for _, th := range e.Townhalls() {
		if len(groundAttackersNear(e.Snap.Enemies, th.Position, 35)) > 3 {
			out = append(out, th)
		}
	}
	return out
}

func groundAttackersNear(enemies []model.UnitView, at model.Point, radius float64) []model.UnitView {
	var out []model.UnitView
	for _, u := range model.Within(enemies, at, radius) {
		if u.CanAttackGround && u.GroundDPS > 5 {
			out = append(out, u)
		}
	}
	return out
}

// FrontTownhall is the finished townhall closest to the enemy.
func (e RuleEnv) FrontTownhall() (model.UnitView, bool) {
	toward := e.Snap.MapCenter
	if enemy, ok := e.EnemyHome(); ok {
		toward = enemy
	}
	return model.ClosestUnit(e.ReadyTownhalls(), toward)
}

// RallyPoint is where idle forces gather: the map center while rushing,
// otherwise a point in front of our bases.
func (e RuleEnv) RallyPoint() model.Point {
	if e.Rushing() {
		return e.Snap.MapCenter
	}
	if c, ok := model.Centroid(model.Positions(e.Townhalls())); ok {
		return c.Towards(e.Snap.MapCenter, 25)
	}
	return e.Home()
}

// PriorityTarget is where an all-in push should go: the closest known enemy
// structure, else the likely enemy natural early on, else their start, else
// the closest enemy start location we have not walked over yet.
func (e RuleEnv) PriorityTarget() (model.Point, bool) {
	var structures []model.UnitView
	for _, u := range e.Snap.Enemies {
		if u.IsStructure {
			structures = append(structures, u)
		}
	}
	if s, ok := model.ClosestUnit(structures, e.Home()); ok {
		return s.Position, true
	}
	enemy, hasEnemy := e.EnemyHome()
	if e.Time() < 400 && hasEnemy {
		if i := model.Closest(e.Snap.PotentialEnemyBases, enemy); i >= 0 {
			return e.Snap.PotentialEnemyBases[i], true
		}
	}
	if e.Time() < 450 && hasEnemy {
		return enemy, true
	}
	var unchecked, checked []model.Point
	for i, loc := range e.Snap.EnemyStartLocations {
		if e.State.Checked(i) {
			checked = append(checked, loc)
		} else {
			unchecked = append(unchecked, loc)
		}
	}
	if i := model.Closest(unchecked, e.Home()); i >= 0 {
		return unchecked[i], true
	}
	if i := model.Closest(checked, e.Home()); i >= 0 {
		return checked[i], true
	}
	return model.Point{}, false
}
