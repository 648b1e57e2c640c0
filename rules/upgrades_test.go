package rules

import (
	"testing"

	"github.com/nstehr/brood/model"
)

func evoSnapshot(minerals, vespene int) model.WorldSnapshot {
	snap := openingSnapshot()
	snap.Minerals, snap.Vespene = minerals, vespene
	snap.Units = append(snap.Units, unit(40, EvolutionChamber, 28, 34))
	snap.Abilities = map[int][]string{
		40: {ZergMissileWeapons[0], ZergGroundArmor[0], ZergMeleeWeapons[0]},
	}
	return snap
}

func researched(out *Orders) []string {
	var names []string
	for _, c := range commandsOf(out.Commands(), model.CommandResearch, "") {
		names = append(names, c.Item)
	}
	return names
}

func TestScheduleUpgradesRotates(t *testing.T) {
	state := NewStrategyState(DefaultProfile())
	tracks := zergUpgradeTracks(DefaultProfile())

	want := []string{ZergMissileWeapons[0], ZergGroundArmor[0], ZergMeleeWeapons[0]}
	for i, w := range want {
		env, out := newTestEnv(evoSnapshot(1000, 1000), state, nil)
		ScheduleUpgrades(env, out, tracks)
		got := researched(out)
		if len(got) != 1 || got[0] != w {
			t.Fatalf("purchase %d = %v, want [%s]", i, got, w)
		}
	}
}

func TestScheduleUpgradesSkipsUnoffered(t *testing.T) {
	snap := evoSnapshot(1000, 1000)
	snap.Abilities[40] = []string{ZergMeleeWeapons[0]}
	env, out := newTestEnv(snap, nil, nil)

	ScheduleUpgrades(env, out, zergUpgradeTracks(DefaultProfile()))
	if got := researched(out); len(got) != 1 || got[0] != ZergMeleeWeapons[0] {
		t.Errorf("got %v, want the only offered upgrade", got)
	}
}

func TestScheduleUpgradesReserve(t *testing.T) {
	tests := []struct {
		name              string
		minerals, vespene int
		wantBuy           bool
	}{
		{"both above reserve", 301, 301, true},
		{"minerals at reserve", 300, 1000, false},
		{"gas below reserve", 1000, 200, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env, out := newTestEnv(evoSnapshot(tt.minerals, tt.vespene), nil, nil)
			ScheduleUpgrades(env, out, zergUpgradeTracks(DefaultProfile()))
			if got := len(researched(out)) > 0; got != tt.wantBuy {
				t.Errorf("bought = %v, want %v", got, tt.wantBuy)
			}
		})
	}
}

func TestScheduleUpgradesBusyBuilding(t *testing.T) {
	snap := evoSnapshot(1000, 1000)
	snap.Units[len(snap.Units)-1].OrderCount = 1
	env, out := newTestEnv(snap, nil, nil)
	ScheduleUpgrades(env, out, zergUpgradeTracks(DefaultProfile()))
	if out.Len() != 0 {
		t.Errorf("researching building got another order: %+v", out.Commands())
	}
}

func TestPlanMilestonesOnce(t *testing.T) {
	snap := openingSnapshot()
	snap.Minerals, snap.Vespene = 500, 500
	snap.Units = append(snap.Units, unit(5, SpawningPool, 25, 35))
	snap.Abilities = map[int][]string{5: {MetabolicBoost}}
	state := NewStrategyState(DefaultProfile())

	env, out := newTestEnv(snap, state, nil)
	PlanMilestones(env, out)
	if got := researched(out); len(got) != 2 {
		t.Fatalf("expected speed and burrow, got %v", got)
	}
	if !state.Reached(MilestoneMetabolicBoost) || !state.Reached(MilestoneBurrow) {
		t.Error("milestones not recorded")
	}

	env, out = newTestEnv(snap, state, nil)
	PlanMilestones(env, out)
	if out.Len() != 0 {
		t.Errorf("milestones retried: %+v", out.Commands())
	}
}
