package rules

import (
	"fmt"
	"log/slog"

	"github.com/nstehr/brood/model"
	"github.com/nstehr/brood/timing"
)

// Strategy is one faction's decision making, split the way a tick runs:
// classify phases, plan production, then control units.
type Strategy interface {
	Name() string
	ClassifyPhases(env RuleEnv) []timing.Transition
	PlanProduction(env RuleEnv, out *Orders)
	ControlUnits(env RuleEnv, out *Orders)
}

// NewStrategy selects the implementation for the profile's faction.
func NewStrategy(p Profile) (Strategy, error) {
	switch p.Faction {
	case FactionZerg:
		return NewZerg(p)
	case FactionTerran:
		return NewTerran(p)
	case FactionProtoss:
		return NewProtoss(p)
	default:
		return nil, fmt.Errorf("unknown faction %q", p.Faction)
	}
}

// Decision is everything one tick produced.
type Decision struct {
	Commands    []model.Command
	Transitions []timing.Transition
}

// Step runs one full tick: fold the snapshot into match memory, classify
// phases, plan production, control units, and return the batch.
func Step(s Strategy, snap model.WorldSnapshot, state *StrategyState, p Profile, r Rand) Decision {
	out := NewOrders(snap)
	env := NewRuleEnv(snap, state, p, r, out)

	state.observe(snap, env.UnderAttack())
	transitions := s.ClassifyPhases(env)
	s.PlanProduction(env, out)
	s.ControlUnits(env, out)

	slog.Debug("tick planned", "strategy", s.Name(), "tick", snap.Iteration, "commands", out.Len())
	return Decision{Commands: out.Commands(), Transitions: transitions}
}

// classifyOnCadence updates the phase flags every PhaseCadence iterations,
// and always on the first tick seen.
func classifyOnCadence(env RuleEnv) []timing.Transition {
	if env.State.classified && env.Iteration()%env.Profile.PhaseCadence != 0 {
		return nil
	}
	env.State.classified = true
	return env.State.Phases.Update(env.Time())
}
