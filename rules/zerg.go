package rules

import (
	"fmt"

	"github.com/nstehr/brood/model"
	"github.com/nstehr/brood/timing"
)

// Zerg is the balanced zerg strategy: a timing-window driven mix of droning,
// tech and army rolls with per-unit micro.
type Zerg struct {
	profile Profile
	engine  *Engine
	tracks  []upgradeTrack
}

func NewZerg(p Profile) (*Zerg, error) {
	engine, err := NewEngine(CompileZergStructures())
	if err != nil {
		return nil, fmt.Errorf("zerg rules: %w", err)
	}
	return &Zerg{profile: p, engine: engine, tracks: zergUpgradeTracks(p)}, nil
}

func (z *Zerg) Name() string { return FactionZerg }

func (z *Zerg) ClassifyPhases(env RuleEnv) []timing.Transition {
	return classifyOnCadence(env)
}

func (z *Zerg) PlanProduction(env RuleEnv, out *Orders) {
	if len(env.Townhalls()) == 0 {
		return
	}
	if env.Iteration()%50 == 0 {
		PlanRallies(env, out)
	}

	z.engine.Evaluate(env, out)
	PlanMilestones(env, out)
	ScheduleUpgrades(env, out, z.tracks)

	PlanOverlords(env, out)
	if env.SupplyLeft() > 0 {
		PlanArmy(env, out)
		PlanDrones(env, out)
	}
	PlanQueens(env, out)
	PlanInjects(env, out)
	PlanExpansion(env, out)
}

func (z *Zerg) ControlUnits(env RuleEnv, out *Orders) {
	b := NewBattlefield(env)

	if !env.State.scouted {
		env.State.scouted = Scout(env, out)
	}
	if z.profile.CameraFollow {
		out.Camera(CameraTarget(env, b))
	}

	if len(env.Townhalls()) == 0 {
		if env.Iteration()%50 == 0 {
			GoForBroke(env, b, out)
		}
		return
	}

	handled := make(map[int]bool)
	for _, u := range b.Forces {
		if burrowPosture(env, u, out) {
			handled[u.ID] = true
			continue
		}
		if cmd, ok := MutaliskRetreat(env, u, b); ok {
			out.Issue(cmd)
			handled[u.ID] = true
			continue
		}
		if cmd, ok := MicroUnit(u, env.Snap.Enemies, b); ok {
			out.Issue(cmd)
			handled[u.ID] = true
		}
	}

	var idle []model.UnitView
	for _, u := range b.Forces {
		if !handled[u.ID] {
			idle = append(idle, u)
		}
	}
	MicroIdle(env, idle, out)
	MicroDrones(env, b, out)
	MicroBurrowed(env, out)
	MicroOverlords(env, out)
}
