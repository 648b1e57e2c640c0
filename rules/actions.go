package rules

import (
	"errors"
	"log/slog"

	"github.com/nstehr/brood/model"
)

var errNoTownhall = errors.New("no townhall")

// nearBase picks a spot 7 to 14 units from the start location toward the map
// center, jittered so repeated requests do not stack on one cell. The host
// spiral-searches from this point for valid placement.
func nearBase(env RuleEnv) model.Point {
	return env.Home().TowardsRandomAngle(env.Snap.MapCenter, float64(7+env.Rand.IntN(8)), env.Rand)
}

// BuildInBase returns an action that places structure somewhere in the main.
func BuildInBase(structure string) ActionFunc {
	return func(env RuleEnv, out *Orders) error {
		if len(env.Townhalls()) == 0 {
			return errNoTownhall
		}
		at := nearBase(env)
		if out.Build(structure, at) {
			slog.Info("building", "structure", structure, "x", at.X, "y", at.Y, "time", env.Time())
		}
		return nil
	}
}

func ActionBuildEvolutionChamber(env RuleEnv, out *Orders) error {
	th, ok := model.ClosestUnit(env.Townhalls(), env.Home())
	if !ok {
		return errNoTownhall
	}
	if out.Build(EvolutionChamber, th.Position) {
		slog.Info("building", "structure", EvolutionChamber, "time", env.Time())
	}
	return nil
}

func ActionBuildSpire(env RuleEnv, out *Orders) error {
	if out.Build(Spire, env.Home()) {
		slog.Info("building", "structure", Spire, "time", env.Time())
	}
	return nil
}

// ActionMorphLair upgrades the idle finished townhall closest to home.
func ActionMorphLair(env RuleEnv, out *Orders) error {
	th, ok := model.ClosestUnit(env.IdleReady(Hatchery), env.Home())
	if !ok {
		return nil
	}
	if out.Morph(th.ID, Lair) {
		slog.Info("morphing", "into", Lair, "actor", th.ID, "time", env.Time())
	}
	return nil
}

func ActionMorphHive(env RuleEnv, out *Orders) error {
	lair, ok := model.ClosestUnit(env.IdleReady(Lair), env.Home())
	if !ok {
		return nil
	}
	if out.Morph(lair.ID, Hive) {
		slog.Info("morphing", "into", Hive, "actor", lair.ID, "time", env.Time())
	}
	return nil
}

// ActionBuildExtractor takes the first free geyser within 10 of a finished townhall.
func ActionBuildExtractor(env RuleEnv, out *Orders) error {
	buildOnGeyser(env, out, Extractor)
	return nil
}

func ActionBuildAssimilator(env RuleEnv, out *Orders) error {
	buildOnGeyser(env, out, Assimilator)
	return nil
}

func buildOnGeyser(env RuleEnv, out *Orders, structure string) {
	for _, th := range env.ReadyTownhalls() {
		for _, g := range env.Snap.Geysers {
			if g.HasExtractor || g.Position.Distance(th.Position) >= 10 {
				continue
			}
			if out.BuildOn(structure, g.ID) {
				slog.Info("building", "structure", structure, "geyser", g.ID, "time", env.Time())
			}
			return
		}
	}
}

func ActionBuildSpineCrawler(env RuleEnv, out *Orders) error {
	front, ok := env.FrontTownhall()
	if !ok {
		return errNoTownhall
	}
	at := front.Position.TowardsRandomAngle(env.Snap.MapCenter, 10, env.Rand)
	if out.Build(SpineCrawler, at) {
		slog.Info("building", "structure", SpineCrawler, "time", env.Time())
	}
	return nil
}

func ActionBuildSporeCrawler(env RuleEnv, out *Orders) error {
	front, ok := env.FrontTownhall()
	if !ok {
		return errNoTownhall
	}
	if out.Build(SporeCrawler, front.Position) {
		slog.Info("building", "structure", SporeCrawler, "time", env.Time())
	}
	return nil
}

func ActionBuildSupplyDepot(env RuleEnv, out *Orders) error {
	cc, ok := model.ClosestUnit(env.Ready(CommandCenter), env.Home())
	if !ok {
		return errNoTownhall
	}
	out.Build(SupplyDepot, cc.Position)
	return nil
}

func ActionBuildBarracks(env RuleEnv, out *Orders) error {
	cc, ok := model.ClosestUnit(env.Ready(CommandCenter), env.Home())
	if !ok {
		return errNoTownhall
	}
	out.Build(Barracks, cc.Position.Towards(env.Snap.MapCenter, 10))
	return nil
}

// ActionBuildPylon puts the first pylon on the ramp side of the main and
// scatters the rest around it.
func ActionBuildPylon(env RuleEnv, out *Orders) error {
	if len(env.Townhalls()) == 0 {
		return errNoTownhall
	}
	at := env.Home().Towards(env.Snap.MapCenter, 8)
	if env.Has(Pylon) {
		at = env.Home().TowardsRandomAngle(env.Snap.MapCenter, float64(5+env.Rand.IntN(35)), env.Rand)
	}
	if out.Build(Pylon, at) {
		slog.Debug("building", "structure", Pylon, "x", at.X, "y", at.Y, "time", env.Time())
	}
	return nil
}

// BuildNearPylon returns an action that places structure on the powered
// field of the finished pylon closest to the main. Nothing happens until a
// pylon within pylonReach of home has finished.
func BuildNearPylon(structure string) ActionFunc {
	return func(env RuleEnv, out *Orders) error {
		pylon, ok := model.ClosestUnit(env.Ready(Pylon), env.Home())
		if !ok || pylon.Position.Distance(env.Home()) > pylonReach {
			return nil
		}
		if out.Build(structure, pylon.Position) {
			slog.Info("building", "structure", structure, "pylon", pylon.ID, "time", env.Time())
		}
		return nil
	}
}

// ActionResearchWarpGate starts warpgate research at an idle cybernetics core.
func ActionResearchWarpGate(env RuleEnv, out *Orders) error {
	core, ok := model.ClosestUnit(env.IdleReady(CyberneticsCore), env.Home())
	if !ok {
		return nil
	}
	if out.Research(core.ID, WarpGateResearch) {
		env.State.warpgateAt = env.Time()
		env.State.Mark(MilestoneWarpGate)
	}
	return nil
}

// ActionBuildProxyPylon drops a forward pylon past the map center that
// warp-ins and rallies use from then on.
func ActionBuildProxyPylon(env RuleEnv, out *Orders) error {
	enemy, ok := env.EnemyHome()
	if !ok {
		return nil
	}
	at := env.Snap.MapCenter.TowardsRandomAngle(enemy, proxyDistance, env.Rand)
	if out.Build(Pylon, at) {
		env.State.Mark(MilestoneProxyPylon)
		slog.Info("building proxy pylon", "x", at.X, "y", at.Y, "time", env.Time())
	}
	return nil
}
