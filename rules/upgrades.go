package rules

import (
	"log/slog"

	"github.com/nstehr/brood/model"
)

// upgradeTrack is an ordered research list bound to one building type.
type upgradeTrack struct {
	building string
	list     []string
	// reserve is the stock both resources must exceed before buying.
	// Zero means plain affordability.
	reserve int
	enabled func(env RuleEnv) bool
}

func zergUpgradeTracks(p Profile) []upgradeTrack {
	always := func(RuleEnv) bool { return true }
	phase := func(name string) func(RuleEnv) bool {
		return func(env RuleEnv) bool { return env.Phase(name) }
	}
	return []upgradeTrack{
		{
			building: EvolutionChamber,
			list:     RoundRobin(ZergMissileWeapons, ZergGroundArmor, ZergMeleeWeapons),
			reserve:  300,
			enabled:  always,
		},
		{
			building: Spire,
			list:     RoundRobin(ZergFlyerWeapons, ZergFlyerArmor),
			reserve:  400,
			enabled: func(env RuleEnv) bool {
				return p.SpireUpgrades && env.Phase(PhaseMutalisk)
			},
		},
		{building: RoachWarren, list: []string{GlialReconstitution, TunnelingClaws}, enabled: phase(PhaseRoach)},
		{building: HydraliskDen, list: []string{GroovedSpines, MuscularAugments}, enabled: phase(PhaseHydralisk)},
		{building: UltraliskCavern, list: []string{ChitinousPlating, AnabolicSynthesis}, enabled: phase(PhaseUltralisk)},
	}
}

// ScheduleUpgrades makes at most one purchase per idle finished building of
// each enabled track. Each track keeps a cursor into its round-robin list so
// consecutive purchases rotate through the categories.
func ScheduleUpgrades(env RuleEnv, out *Orders, tracks []upgradeTrack) {
	for _, tr := range tracks {
		if !tr.enabled(env) || len(tr.list) == 0 {
			continue
		}
		for _, b := range env.IdleReady(tr.building) {
			buyNext(env, out, tr, b)
		}
	}
}

func buyNext(env RuleEnv, out *Orders, tr upgradeTrack, b model.UnitView) {
	start := env.State.upgradeCursor[tr.building]
	for i := range tr.list {
		idx := (start + i) % len(tr.list)
		up := tr.list[idx]
		if !env.Snap.Offers(b.ID, up) {
			continue
		}
		if tr.reserve > 0 && (env.Minerals() <= tr.reserve || env.Vespene() <= tr.reserve) {
			return
		}
		if !out.Research(b.ID, up) {
			continue
		}
		env.State.upgradeCursor[tr.building] = idx + 1
		slog.Info("buying upgrade", "upgrade", up, "building", tr.building, "time", env.Time())
		return
	}
}

// PlanMilestones starts the one-shot researches: zergling speed from the
// pool, burrow from a townhall, and adrenal glands once a hive is up.
func PlanMilestones(env RuleEnv, out *Orders) {
	if !env.State.Reached(MilestoneMetabolicBoost) {
		if pool, ok := firstOffering(env, SpawningPool, MetabolicBoost); ok && out.Research(pool.ID, MetabolicBoost) {
			env.State.Mark(MilestoneMetabolicBoost)
		}
	}

	if !env.State.Reached(MilestoneBurrow) && env.Pending(Burrow) == 0 && env.CanAfford(Burrow) {
		if th, ok := model.ClosestUnit(env.IdleReady(townhallTypes...), env.Home()); ok && out.Research(th.ID, Burrow) {
			env.State.Mark(MilestoneBurrow)
		}
	}

	if !env.State.Reached(MilestoneAdrenalGlands) && env.HasReady(Hive) {
		if pool, ok := firstOffering(env, SpawningPool, AdrenalGlands); ok && out.Research(pool.ID, AdrenalGlands) {
			env.State.Mark(MilestoneAdrenalGlands)
		}
	}
}

func firstOffering(env RuleEnv, building, ability string) (model.UnitView, bool) {
	for _, b := range env.IdleReady(building) {
		if env.Snap.Offers(b.ID, ability) {
			return b, true
		}
	}
	return model.UnitView{}, false
}
