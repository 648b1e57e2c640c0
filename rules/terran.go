package rules

import (
	"fmt"

	"github.com/nstehr/brood/model"
	"github.com/nstehr/brood/timing"
)

const (
	marineGather       = 10.0
	marineGatherCount  = 5
	marineCritical     = 15
	marineThreatRadius = 10.0
	marineKite         = 3.0
	marineRetreat      = 5.0
)

// Terran is the marine strategy: SCVs to saturation, marines from every
// barracks, and a push once enough marines have gathered.
type Terran struct {
	profile Profile
	engine  *Engine
}

func NewTerran(p Profile) (*Terran, error) {
	engine, err := NewEngine(CompileTerranStructures())
	if err != nil {
		return nil, fmt.Errorf("terran rules: %w", err)
	}
	return &Terran{profile: p, engine: engine}, nil
}

func (t *Terran) Name() string { return FactionTerran }

func (t *Terran) ClassifyPhases(env RuleEnv) []timing.Transition {
	return classifyOnCadence(env)
}

func (t *Terran) PlanProduction(env RuleEnv, out *Orders) {
	cc, ok := model.ClosestUnit(env.Ready(CommandCenter), env.Home())
	if !ok {
		return
	}
	if env.Phase(PhaseBooming) && len(env.Workers()) < t.profile.MaxWorkers && cc.HasNoQueue() {
		out.Train(cc.ID, SCV)
	}
	t.engine.Evaluate(env, out)
	for _, rax := range env.IdleReady(Barracks) {
		out.Train(rax.ID, Marine)
	}
}

func (t *Terran) ControlUnits(env RuleEnv, out *Orders) {
	for _, depot := range env.Ready(SupplyDepot) {
		out.Use(depot.ID, AbilityLowerDepot, 0)
	}

	cc, ok := model.ClosestUnit(env.Townhalls(), env.Home())
	if !ok {
		return
	}
	target := raidTarget(env)
	if t.profile.CameraFollow {
		out.Camera(target)
	}
	marines := env.Ready(Marine)
	if !marinesGathered(env, marines, cc, target) {
		return
	}

	for _, m := range marines {
		if m.IsIdle {
			out.AttackMove(m.ID, target)
			continue
		}
		var threats []model.UnitView
		for _, e := range model.Within(env.Snap.Enemies, m.Position, marineThreatRadius) {
			if e.CanAttackGround {
				threats = append(threats, e)
			}
		}
		closest, ok := model.ClosestUnit(threats, m.Position)
		if !ok {
			continue
		}
		switch {
		case m.WeaponCooldown == 0:
			out.Attack(m.ID, closest.ID)
		case m.Position.Distance(closest.Position) > marineKite:
			out.Move(m.ID, closest.Position, false)
		case m.Health < lowThreatHealth:
			out.Move(m.ID, m.Position.Towards(env.Home(), marineRetreat), false)
		}
	}
}

// marinesGathered decides when the marines go: a periodic check for a group
// at the command center, any marine already at the target, or a big enough
// army.
func marinesGathered(env RuleEnv, marines []model.UnitView, cc model.UnitView, target model.Point) bool {
	if len(marines) > marineCritical {
		return true
	}
	if len(model.Within(marines, target, marineGather)) > 0 {
		return true
	}
	return env.Iteration()%10 == 0 && len(model.Within(marines, cc.Position, marineGather)) > marineGatherCount
}
