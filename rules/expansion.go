package rules

import "log/slog"

const (
	expansionCooldown      = 30.0
	lowMineralRate         = 600.0
	lowMineralRateAfter    = 200.0
	expansionBank          = 500
	minimumBases           = 1
	freeExpansionTownhalls = 3
	lateExpansionAfter     = 500.0
	lateWorkersPerTownhall = 14
)

// ShouldExpand is the expansion trigger. The cooldown since the last
// expansion applies to every branch.
func (e RuleEnv) ShouldExpand() bool {
	if e.Time()-e.State.LastExpansionTime <= expansionCooldown {
		return false
	}
	if e.Snap.CollectionRateMinerals < lowMineralRate && e.Time() > lowMineralRateAfter {
		return true
	}
	return e.Minerals() > expansionBank || e.State.ExpansionCount < minimumBases
}

// ExpansionAllowed is the gate around the trigger: safe, worker-saturated
// past the first three bases, and a site to go to.
func (e RuleEnv) ExpansionAllowed() bool {
	if e.RecentlyAttacked() {
		return false
	}
	saturated := len(e.ReadyTownhalls()) < freeExpansionTownhalls ||
		(e.Time() > lateExpansionAfter && e.WorkersPerTownhall() > lateWorkersPerTownhall)
	return saturated && e.Snap.NextExpansion != nil && e.CanAfford(Hatchery)
}

// PlanExpansion takes the next base when both trigger and gate pass. The
// expansion counter and timestamp are its only persistent side effects.
func PlanExpansion(env RuleEnv, out *Orders) bool {
	if !env.ExpansionAllowed() || !env.ShouldExpand() {
		return false
	}
	if !out.Build(Hatchery, *env.Snap.NextExpansion) {
		return false
	}
	env.State.RecordExpansion(env.Time())
	slog.Info("taking expansion",
		"count", env.State.ExpansionCount,
		"time", env.Time(),
		"workersPerTownhall", env.WorkersPerTownhall(),
	)
	return true
}
