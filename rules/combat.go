package rules

import (
	"math"

	"github.com/nstehr/brood/model"
)

const (
	// relevanceRadius bounds which enemies a unit considers at all.
	relevanceRadius = 20.0

	retreatHealth   = 1.0 / 3
	shortRange      = 3.0
	closeInFraction = 0.7
	lowThreatHealth = 0.5
	lowTargetHealth = 0.8
	massRadius      = 15.0
	massFraction    = 0.75
	regroupOffset   = 15.0
	nearCapSupply   = 190
)

// Battlefield is the per-tick context every unit decision shares.
type Battlefield struct {
	Forces      []model.UnitView
	ForceCenter model.Point
	HasForces   bool
	Home        model.Point
	Attacked    []model.UnitView
	Aggressive  bool
	Target      model.Point
	HasTarget   bool
}

// NewBattlefield reads the shared combat context out of env.
func NewBattlefield(env RuleEnv) Battlefield {
	forces := env.Forces()
	center, ok := model.Centroid(model.Positions(forces))
	target, hasTarget := env.PriorityTarget()
	return Battlefield{
		Forces:      forces,
		ForceCenter: center,
		HasForces:   ok,
		Home:        env.Home(),
		Attacked:    env.TownhallsUnderAttack(),
		Aggressive:  env.Rushing() || env.SupplyUsed() > nearCapSupply,
		Target:      target,
		HasTarget:   hasTarget,
	}
}

// fallback is where a hurt unit backs off to.
func (b Battlefield) fallback() model.Point {
	if b.HasForces {
		return b.ForceCenter
	}
	return b.Home
}

// MicroUnit runs the target selection cascade for one combat unit. The first
// rule that produces a target decides; ok is false when the unit should be
// left alone this tick. Units without a weapon are always left alone.
func MicroUnit(unit model.UnitView, enemies []model.UnitView, b Battlefield) (model.Command, bool) {
	if unit.Capability().Class() == model.AttackNone {
		return model.Command{}, false
	}
	nearby := model.Within(enemies, unit.Position, relevanceRadius)
	targetable := model.Targetable(unit, nearby)
	threats := model.Threats(unit, targetable)
	reach := unit.WeaponRange()

	// Threats in range that are nearly dead.
	if t, ok := lowestHealth(inRange(threats, unit, reach), lowThreatHealth); ok {
		return Engage(unit, t, b)
	}
	// Otherwise the nearest threat anywhere in the relevance radius.
	if t, ok := model.ClosestUnit(threats, unit.Position); ok {
		return Engage(unit, t, b)
	}
	// Hurt targets in range.
	if t, ok := lowestHealth(inRange(targetable, unit, reach), lowTargetHealth); ok {
		return Engage(unit, t, b)
	}
	if t, ok := model.ClosestUnit(targetable, unit.Position); ok {
		return Engage(unit, t, b)
	}

	// Defend: the enemy closest to the attacked base nearest this unit.
	if base, ok := model.ClosestUnit(b.Attacked, unit.Position); ok {
		if t, ok := model.ClosestUnit(model.Targetable(unit, enemies), base.Position); ok {
			return attackUnit(unit, t), true
		}
		return model.Command{}, false
	}

	if b.Aggressive && b.HasTarget {
		return push(unit, b)
	}
	return model.Command{}, false
}

// push attacks the priority target once enough of the army is massed around
// this unit, otherwise regroups in front of the army's centroid.
func push(unit model.UnitView, b Battlefield) (model.Command, bool) {
	if !b.HasForces {
		return model.Command{}, false
	}
	massed := len(model.Within(b.Forces, unit.Position, massRadius))
	if float64(massed) >= massFraction*float64(len(b.Forces)) {
		return attackPoint(unit, b.Target), true
	}
	return move(unit, b.ForceCenter.Towards(b.Target, regroupOffset)), true
}

// Engage decides how to fight a chosen target. Badly hurt units step back
// toward the army by one weapon range. Ranged units fire off cooldown and
// close in while reloading if the target sits beyond 70% of their range;
// otherwise they hold, which issues nothing. Melee units just attack.
func Engage(unit, target model.UnitView, b Battlefield) (model.Command, bool) {
	reach := unit.WeaponRange()
	if unit.Health < retreatHealth {
		return move(unit, target.Position.Towards(b.fallback(), reach)), true
	}
	if reach > shortRange {
		if unit.WeaponCooldown == 0 {
			return attackUnit(unit, target), true
		}
		if target.Position.Distance(unit.Position) > reach*closeInFraction {
			return move(unit, target.Position), true
		}
		return model.Command{}, false
	}
	return attackUnit(unit, target), true
}

func inRange(units []model.UnitView, from model.UnitView, reach float64) []model.UnitView {
	return model.Within(units, from.Position, reach)
}

// lowestHealth returns the unit with the lowest health strictly below limit.
func lowestHealth(units []model.UnitView, limit float64) (model.UnitView, bool) {
	best, bestHealth, found := model.UnitView{}, math.Inf(1), false
	for _, u := range units {
		if u.Health < limit && u.Health < bestHealth {
			best, bestHealth, found = u, u.Health, true
		}
	}
	return best, found
}

func attackUnit(unit, target model.UnitView) model.Command {
	return model.Command{Kind: model.CommandAttack, ActorID: unit.ID, TargetID: target.ID}
}

func attackPoint(unit model.UnitView, at model.Point) model.Command {
	return model.Command{Kind: model.CommandAttack, ActorID: unit.ID, Target: &at}
}

func move(unit model.UnitView, to model.Point) model.Command {
	return model.Command{Kind: model.CommandMove, ActorID: unit.ID, Target: &to}
}

// raidTarget picks a random known enemy structure, else a random enemy
// unit, else their start location.
func raidTarget(env RuleEnv) model.Point {
	var structures []model.UnitView
	for _, e := range env.Snap.Enemies {
		if e.IsStructure {
			structures = append(structures, e)
		}
	}
	switch {
	case len(structures) > 0:
		return structures[env.Rand.IntN(len(structures))].Position
	case len(env.Snap.Enemies) > 0:
		return env.Snap.Enemies[env.Rand.IntN(len(env.Snap.Enemies))].Position
	}
	if enemy, ok := env.EnemyHome(); ok {
		return enemy
	}
	return env.Snap.MapCenter
}
