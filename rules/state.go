package rules

import (
	"log/slog"
	"math/rand/v2"

	"github.com/nstehr/brood/model"
	"github.com/nstehr/brood/timing"
)

// Milestone is a one-shot research that is never retried once started.
type Milestone string

const (
	MilestoneMetabolicBoost Milestone = "metabolic_boost"
	MilestoneAdrenalGlands  Milestone = "adrenal_glands"
	MilestoneBurrow         Milestone = "burrow"
	MilestoneWarpGate       Milestone = "warpgate"
	MilestoneProxyPylon     Milestone = "proxy_pylon"
)

const (
	// recentAttackWindow is how long after a defensive situation the agent
	// still behaves as if under attack.
	recentAttackWindow = 20.0

	// confirmRadius and confirmCount decide when an enemy start location has
	// been walked over by enough of our units to count as checked.
	confirmRadius = 20.0
	confirmCount  = 10
)

// StrategyState is the mutable memory of one match. It is owned by a single
// agent and passed explicitly into every decision.
type StrategyState struct {
	Phases            *timing.Manager
	ExpansionCount    int
	LastExpansionTime float64

	milestones        map[Milestone]bool
	lastDefensiveTime float64
	defended          bool
	upgradeCursor     map[string]int
	checked           map[int]bool
	scouted           bool
	classified        bool
	spreadMinute      int

	// gateway strategy
	warpgateAt  float64
	attacking   bool
	attackWaves int
}

func NewStrategyState(p Profile) *StrategyState {
	return &StrategyState{
		Phases:        timing.NewManager(p.Timings),
		milestones:    make(map[Milestone]bool),
		upgradeCursor: make(map[string]int),
		checked:       make(map[int]bool),
		spreadMinute:  -1,
	}
}

// Phase returns the stored flag for a timing phase.
func (s *StrategyState) Phase(name string) bool {
	return s.Phases.Active(name)
}

// Mark sets a milestone. Milestones are never cleared.
func (s *StrategyState) Mark(m Milestone) {
	if !s.milestones[m] {
		slog.Info("milestone reached", "milestone", m)
	}
	s.milestones[m] = true
}

func (s *StrategyState) Reached(m Milestone) bool {
	return s.milestones[m]
}

// RecordExpansion bumps the expansion counter. The counter only grows.
func (s *StrategyState) RecordExpansion(t float64) {
	s.ExpansionCount++
	s.LastExpansionTime = t
}

// RecordDefense notes that a base was under attack at time t.
func (s *StrategyState) RecordDefense(t float64) {
	s.lastDefensiveTime = t
	s.defended = true
}

// RecentlyAttacked reports whether a defensive situation happened within the
// last recentAttackWindow seconds.
func (s *StrategyState) RecentlyAttacked(now float64) bool {
	return s.defended && now-s.lastDefensiveTime < recentAttackWindow
}

// Checked reports whether the i-th enemy start location has been confirmed.
func (s *StrategyState) Checked(i int) bool {
	return s.checked[i]
}

// observe folds the facts that persist across ticks out of a snapshot:
// defensive situations and enemy start locations our army has walked over.
func (s *StrategyState) observe(snap model.WorldSnapshot, underAttack bool) {
	if underAttack {
		s.RecordDefense(snap.Time)
	}
	for i, loc := range snap.EnemyStartLocations {
		if s.checked[i] {
			continue
		}
		if len(model.Within(snap.Units, loc, confirmRadius)) > confirmCount {
			slog.Info("enemy start location checked", "index", i, "x", loc.X, "y", loc.Y)
			s.checked[i] = true
		}
	}
}

// Rand is the randomness the strategies consume. Tests substitute a scripted
// source to force particular rolls.
type Rand interface {
	Float64() float64
	IntN(n int) int
}

// NewRand returns a deterministic generator for seed.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}
