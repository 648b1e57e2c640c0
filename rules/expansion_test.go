package rules

import (
	"testing"

	"github.com/nstehr/brood/model"
)

func expansionSnapshot(time float64, minerals int) model.WorldSnapshot {
	snap := openingSnapshot()
	snap.Time = time
	snap.Minerals = minerals
	return snap
}

func TestExpansionCooldown(t *testing.T) {
	state := NewStrategyState(DefaultProfile())
	state.RecordExpansion(100)

	env, out := newTestEnv(expansionSnapshot(120, 600), state, nil)
	if env.ShouldExpand() {
		t.Error("expansion inside the cooldown")
	}
	if PlanExpansion(env, out) {
		t.Error("PlanExpansion inside the cooldown")
	}

	env, out = newTestEnv(expansionSnapshot(131, 600), state, nil)
	if !PlanExpansion(env, out) {
		t.Fatal("expected an expansion after the cooldown")
	}
	if state.ExpansionCount != 2 || state.LastExpansionTime != 131 {
		t.Errorf("state = count %d time %v, want 2 and 131", state.ExpansionCount, state.LastExpansionTime)
	}
	builds := commandsOf(out.Commands(), model.CommandBuild, Hatchery)
	if len(builds) != 1 || *builds[0].Target != *env.Snap.NextExpansion {
		t.Errorf("expected one hatchery at the next expansion, got %+v", builds)
	}

	env, out = newTestEnv(expansionSnapshot(140, 900), state, nil)
	if PlanExpansion(env, out) {
		t.Error("a second expansion right after the first")
	}
}

func TestExpansionTriggers(t *testing.T) {
	tests := []struct {
		name     string
		time     float64
		minerals int
		rate     float64
		count    int
		want     bool
	}{
		{"first base", 40, 0, 0, 0, true},
		{"banked minerals", 100, 501, 900, 1, true},
		{"starved economy late", 201, 0, 599, 1, true},
		{"starved economy early", 199, 0, 599, 1, false},
		{"healthy economy", 300, 200, 900, 1, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := NewStrategyState(DefaultProfile())
			state.ExpansionCount = tt.count
			snap := expansionSnapshot(tt.time, tt.minerals)
			snap.CollectionRateMinerals = tt.rate
			env, _ := newTestEnv(snap, state, nil)
			if got := env.ShouldExpand(); got != tt.want {
				t.Errorf("ShouldExpand() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestExpansionGate(t *testing.T) {
	t.Run("recently attacked", func(t *testing.T) {
		state := NewStrategyState(DefaultProfile())
		state.RecordDefense(120)
		env, _ := newTestEnv(expansionSnapshot(131, 600), state, nil)
		if env.ExpansionAllowed() {
			t.Error("expansion allowed right after a defense")
		}
	})

	t.Run("no site", func(t *testing.T) {
		snap := expansionSnapshot(131, 600)
		snap.NextExpansion = nil
		env, _ := newTestEnv(snap, nil, nil)
		if env.ExpansionAllowed() {
			t.Error("expansion allowed without a site")
		}
	})

	t.Run("unsaturated after three bases", func(t *testing.T) {
		snap := expansionSnapshot(600, 600)
		snap.Units = append(snap.Units, unit(3, Hatchery, 60, 30), unit(4, Hatchery, 90, 30))
		env, _ := newTestEnv(snap, nil, nil)
		if env.ExpansionAllowed() {
			t.Errorf("expansion allowed at %.1f workers per townhall", env.WorkersPerTownhall())
		}
	})
}
