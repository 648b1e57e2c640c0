package rules

import (
	"github.com/nstehr/brood/model"
)

const (
	burrowUpHealth      = 0.5
	mutaliskRetreat     = 0.40
	mutaliskCheckRadius = 20.0
	smallArmy           = 10
	overlordDanger      = 20.0
	overlordSafety      = 10.0
	overlordSpreadStart = 35.0
	overlordSpreadStep  = 15.0
	rallyLeash          = 10.0
	droneDangerRadius   = 30.0
	droneDangerCount    = 5
	mainBaseRadius      = 10.0
	pullRadius          = 10.0
	pullDroneRadius     = 20.0
	scoutWaypoints      = 20
)

// MicroBurrowed resurfaces healed burrowed units. Burrowed roaches that are
// still hurt crawl home.
func MicroBurrowed(env RuleEnv, out *Orders) {
	for _, u := range env.Ready(RoachBurrowed, UltraliskBurrowed) {
		switch {
		case u.Health > burrowUpHealth:
			out.Use(u.ID, AbilityBurrowUp, 0)
		case u.Type == RoachBurrowed:
			out.Move(u.ID, env.Home(), false)
		}
	}
}

// burrowPosture handles roaches and ultralisks below a third of their health.
// handled is true when the unit got an order and must skip the cascade.
func burrowPosture(env RuleEnv, u model.UnitView, out *Orders) (handled bool) {
	if u.Health >= retreatHealth {
		return false
	}
	burrow := env.Snap.HasUpgrade(Burrow)
	switch u.Type {
	case Roach:
		if burrow {
			out.Use(u.ID, AbilityBurrowDown, 0)
			return true
		}
	case Ultralisk:
		if burrow {
			out.Use(u.ID, AbilityBurrowDown, 0)
		} else {
			out.Move(u.ID, env.Home(), false)
		}
		return true
	}
	return false
}

// MutaliskRetreat pulls a hurt mutalisk out when nearby threats outnumber
// nearby friends. With a small army it falls back three ranges toward home.
func MutaliskRetreat(env RuleEnv, u model.UnitView, b Battlefield) (model.Command, bool) {
	if u.Type != Mutalisk || u.Health >= mutaliskRetreat {
		return model.Command{}, false
	}
	friends := model.Within(b.Forces, u.Position, mutaliskCheckRadius)
	threats := model.Threats(u, model.Within(env.Snap.Enemies, u.Position, mutaliskCheckRadius))
	if len(friends) >= len(threats) {
		return model.Command{}, false
	}
	distance := u.GroundRange
	toward := b.ForceCenter
	if len(b.Forces) <= smallArmy || !b.HasForces {
		distance = u.GroundRange * 3
		toward = b.Home
	}
	dest := u.Position.Towards(toward, distance)
	if u.Position.Distance(dest) <= distance/2 {
		return model.Command{}, false
	}
	return move(u, dest), true
}

// MicroOverlords spreads creep once lair tech is up, pulls any overlord near
// anti-air back toward home, and fans the other idle overlords out once at
// the top of every minute.
func MicroOverlords(env RuleEnv, out *Orders) {
	overlords := env.Ready(Overlord)
	if env.Iteration()%50 == 0 && (env.HasReady(Lair) || env.HasReady(Hive)) {
		for _, o := range overlords {
			out.Use(o.ID, AbilityGenerateCreep, 0)
		}
	}

	fled := make(map[int]bool)
	for _, o := range overlords {
		var antiAir []model.UnitView
		for _, e := range model.Within(env.Snap.Enemies, o.Position, overlordDanger) {
			if e.CanAttackAir {
				antiAir = append(antiAir, e)
			}
		}
		threat, ok := model.ClosestUnit(antiAir, o.Position)
		if !ok {
			continue
		}
		out.Move(o.ID, threat.Position.Towards(env.Home(), threat.SightRange+overlordSafety), false)
		fled[o.ID] = true
	}

	second := int(env.Time())
	enemy, ok := env.EnemyHome()
	if !ok || second%60 != 0 || second/60 == env.State.spreadMinute {
		return
	}
	env.State.spreadMinute = second / 60
	distance := overlordSpreadStart
	for _, o := range overlords {
		if !o.IsIdle || fled[o.ID] {
			continue
		}
		out.Move(o.ID, env.Home().TowardsRandomAngle(enemy, distance, env.Rand), false)
		distance += overlordSpreadStep
	}
}

// MicroIdle walks idle units that strayed from the rally point back to it.
func MicroIdle(env RuleEnv, units []model.UnitView, out *Orders) {
	rally := env.RallyPoint()
	for _, u := range units {
		if u.IsIdle && u.Position.Distance(rally) > rallyLeash {
			out.AttackMove(u.ID, rally)
		}
	}
}

// MicroDrones sends returning drones home from dangerous spots and evacuates
// drones from an outlying base that is being overrun.
func MicroDrones(env RuleEnv, b Battlefield, out *Orders) {
	home := env.Home()
	for _, d := range env.Ready(Drone) {
		if !d.IsReturning || d.Position.Distance(home) <= mainBaseRadius {
			continue
		}
		if len(model.Within(env.Snap.Enemies, d.Position, droneDangerRadius)) > droneDangerCount {
			out.Move(d.ID, home, false)
		}
	}

	for _, th := range b.Attacked {
		if th.Position.Distance(home) < mainBaseRadius {
			continue
		}
		if len(groundAttackersNear(env.Snap.Enemies, th.Position, pullRadius)) <= droneDangerCount {
			continue
		}
		drones := model.Within(env.Units(Drone), th.Position, pullDroneRadius)
		if _, hurt := lowestHealth(drones, 0.5); !hurt {
			continue
		}
		for _, d := range drones {
			out.Move(d.ID, home, false)
		}
	}
}

// Scout sends a random worker on a loop of queued waypoints around a random
// enemy start location.
func Scout(env RuleEnv, out *Orders) bool {
	workers := env.Workers()
	if len(workers) == 0 || len(env.Snap.EnemyStartLocations) == 0 {
		return false
	}
	scout := workers[env.Rand.IntN(len(workers))]
	loc := env.Snap.EnemyStartLocations[env.Rand.IntN(len(env.Snap.EnemyStartLocations))]
	for range scoutWaypoints {
		wp := loc.TowardsRandomAngle(env.Snap.MapCenter, float64(1+env.Rand.IntN(19)), env.Rand)
		out.Move(scout.ID, wp, true)
	}
	return true
}

// GoForBroke throws everything at the priority target. Used when every
// townhall is gone.
func GoForBroke(env RuleEnv, b Battlefield, out *Orders) {
	if !b.HasTarget {
		return
	}
	units := append(env.Workers(), env.Units(Queen)...)
	units = append(units, b.Forces...)
	for _, u := range units {
		out.AttackMove(u.ID, b.Target)
	}
}

// CameraTarget follows the fight: engaged forces first, then the whole
// army, then the closest known attacker, then the rally point.
func CameraTarget(env RuleEnv, b Battlefield) model.Point {
	if b.HasForces {
		var engaged []model.Point
		for _, u := range b.Forces {
			if len(model.Within(env.Snap.Enemies, u.Position, relevanceRadius)) > 5 {
				engaged = append(engaged, u.Position)
			}
		}
		if c, ok := model.Centroid(engaged); ok {
			return c
		}
		return b.ForceCenter
	}
	var attackers []model.UnitView
	for _, e := range env.Snap.Enemies {
		if e.CanAttackGround {
			attackers = append(attackers, e)
		}
	}
	if e, ok := model.ClosestUnit(attackers, env.Home()); ok {
		return e.Position
	}
	return env.RallyPoint()
}
