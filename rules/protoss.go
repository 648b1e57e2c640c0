package rules

import (
	"fmt"
	"log/slog"

	"github.com/nstehr/brood/model"
	"github.com/nstehr/brood/timing"
)

const (
	pylonReach         = 50.0
	proxyDistance      = 20.0
	warpInSpread       = 4.0
	warpgateResearch   = 120.0
	sentryMineralGas   = 0.3
	stalkerAfterCharge = 0.4

	waveSize         = 20
	waveSupply       = 180
	minimumWave      = 5
	baseAlertRadius  = 5.0
	proxyAlertRadius = 10.0

	cannonRadius          = 10.0
	proxyPylonRadius      = 20.0
	proxyFortifyCount     = 3
	expansionBankPerNexus = 400
)

// Protoss is the gateway strategy: gateway units until warpgate research
// lands, warp-ins at a forward pylon afterwards, immortals from robotics,
// and attack waves that grow by twenty units each time.
type Protoss struct {
	profile Profile
	engine  *Engine
	tracks  []upgradeTrack
}

func NewProtoss(p Profile) (*Protoss, error) {
	engine, err := NewEngine(CompileProtossStructures())
	if err != nil {
		return nil, fmt.Errorf("protoss rules: %w", err)
	}
	return &Protoss{profile: p, engine: engine, tracks: protossUpgradeTracks()}, nil
}

func protossUpgradeTracks() []upgradeTrack {
	after := func(t float64) func(RuleEnv) bool {
		return func(env RuleEnv) bool { return env.Time() > t }
	}
	return []upgradeTrack{
		{
			building: Forge,
			list:     RoundRobin(ProtossGroundWeapons, ProtossGroundArmor, ProtossShields),
			reserve:  400,
			enabled:  after(300),
		},
		{building: TwilightCouncil, list: []string{Charge}, reserve: 400, enabled: after(550)},
	}
}

func (p *Protoss) Name() string { return FactionProtoss }

func (p *Protoss) ClassifyPhases(env RuleEnv) []timing.Transition {
	return classifyOnCadence(env)
}

// GatewayCount counts gateways whether or not they have turned into warpgates.
func (e RuleEnv) GatewayCount() int { return e.Count(Gateway) + e.Count(WarpGate) }

// WarpGateDone trusts the host's upgrade list, falling back to the research
// time once the research was started.
func (e RuleEnv) WarpGateDone() bool {
	if e.Snap.HasUpgrade(WarpGateResearch) {
		return true
	}
	return e.State.Reached(MilestoneWarpGate) && e.Time()-e.State.warpgateAt >= warpgateResearch
}

func (e RuleEnv) ResearchingWarpGate() bool {
	return e.State.Reached(MilestoneWarpGate) && !e.WarpGateDone()
}

// forwardPylon is the pylon closest to the enemy start.
func forwardPylon(env RuleEnv) (model.UnitView, model.Point, bool) {
	enemy, ok := env.EnemyHome()
	if !ok {
		return model.UnitView{}, model.Point{}, false
	}
	pylon, ok := model.ClosestUnit(env.Units(Pylon), enemy)
	return pylon, enemy, ok
}

// proxyPylon is the forward pylon, once one was deliberately placed.
func proxyPylon(env RuleEnv) (model.UnitView, model.Point, bool) {
	if !env.State.Reached(MilestoneProxyPylon) {
		return model.UnitView{}, model.Point{}, false
	}
	return forwardPylon(env)
}

// GatewayRally is in front of the proxy pylon once there is one, the map
// center during an attack, and just outside the main otherwise.
func (e RuleEnv) GatewayRally() model.Point {
	if proxy, enemy, ok := proxyPylon(e); ok {
		return proxy.Position.Towards(enemy, 3)
	}
	if e.State.attacking {
		return e.Snap.MapCenter
	}
	return e.Home().Towards(e.Snap.MapCenter, 8)
}

func (p *Protoss) PlanProduction(env RuleEnv, out *Orders) {
	if len(env.Units(Nexus)) == 0 {
		return
	}
	if env.Iteration()%50 == 0 {
		rally := env.GatewayRally()
		for _, b := range env.Ready(Gateway, RoboticsFacility) {
			out.Rally(b.ID, rally)
		}
	}

	PlanChronoboost(env, out)
	p.planWorkers(env, out)
	p.engine.Evaluate(env, out)
	ScheduleUpgrades(env, out, p.tracks)

	if !env.Phase(PhaseBooming) {
		PlanGatewayArmy(env, out)
	}
	planNexus(env, out)
	if env.Iteration()%10 == 0 && int(env.Time())%60 < 5 {
		Fortify(env, out)
	}
}

func (p *Protoss) planWorkers(env RuleEnv, out *Orders) {
	workers := len(env.Workers())
	perNexus := float64(workers) / float64(len(env.Units(Nexus)))
	saturated := perNexus >= float64(p.profile.IdealWorkersPerBase) && env.Minerals() <= 800
	if saturated || workers >= p.profile.MaxWorkers {
		return
	}
	for _, nx := range env.IdleReady(Nexus) {
		out.Train(nx.ID, ProtossWorker)
	}
}

// PlanChronoboost spends every nexus's chronoboost. Warpgate research gets
// it first, then nexuses while booming, then production buildings.
func PlanChronoboost(env RuleEnv, out *Orders) {
	for _, nx := range env.Ready(Nexus) {
		if !env.Snap.Offers(nx.ID, AbilityChronoboost) {
			continue
		}
		target, ok := chronoboostTarget(env)
		if !ok {
			return
		}
		out.Use(nx.ID, AbilityChronoboost, target.ID)
		slog.Debug("chronoboost", "nexus", nx.ID, "target", target.Type, "time", env.Time())
	}
}

func chronoboostTarget(env RuleEnv) (model.UnitView, bool) {
	if env.ResearchingWarpGate() {
		if core, ok := model.ClosestUnit(env.Ready(CyberneticsCore), env.Home()); ok {
			return core, true
		}
	}
	pick := func(units []model.UnitView) (model.UnitView, bool) {
		if len(units) == 0 {
			return model.UnitView{}, false
		}
		return units[env.Rand.IntN(len(units))], true
	}
	if env.Phase(PhaseBooming) {
		return pick(env.Ready(Nexus))
	}
	for _, t := range []string{WarpGate, Gateway, RoboticsFacility, Nexus} {
		if u, ok := pick(env.Ready(t)); ok {
			return u, true
		}
	}
	return model.UnitView{}, false
}

func (e RuleEnv) chargeStarted() bool {
	return e.Snap.HasUpgrade(Charge) || e.Snap.PendingCount(Charge) > 0
}

func (e RuleEnv) sentryWanted() bool {
	return e.HasReady(CyberneticsCore) && e.Vespene() > 0 &&
		float64(e.Minerals())/float64(e.Vespene()) < sentryMineralGas && e.CanAfford(Sentry)
}

// GatewayCandidates is the gateway roll: sentries when gas piles up,
// stalkers once the core is done, zealots otherwise.
func GatewayCandidates() []Candidate {
	return []Candidate{
		{Sentry, 1, RuleEnv.sentryWanted},
		{Stalker, 1, func(e RuleEnv) bool { return e.HasReady(CyberneticsCore) && e.CanAfford(Stalker) }},
		{Zealot, 1, func(e RuleEnv) bool { return e.CanAfford(Zealot) }},
	}
}

// WarpInCandidates favors stalkers until charge is on its way.
func WarpInCandidates(env RuleEnv) []Candidate {
	stalker := 1.0
	if env.chargeStarted() {
		stalker = stalkerAfterCharge
	}
	return []Candidate{
		{Stalker, stalker, func(e RuleEnv) bool { return e.CanAfford(Stalker) }},
		{Sentry, 1, RuleEnv.sentryWanted},
		{Zealot, 1, func(e RuleEnv) bool { return e.CanAfford(Zealot) }},
	}
}

// PlanGatewayArmy trains immortals, gateway units until warpgates are in,
// and warps in at the forward pylon.
func PlanGatewayArmy(env RuleEnv, out *Orders) {
	for _, robo := range env.IdleReady(RoboticsFacility) {
		out.Train(robo.ID, Immortal)
	}
	if !env.WarpGateDone() {
		for _, gw := range env.IdleReady(Gateway) {
			trainRolled(env, out, gw.ID, GatewayCandidates())
		}
	}

	pylon, enemy, ok := forwardPylon(env)
	if !ok {
		return
	}
	for _, wg := range env.Ready(WarpGate) {
		if out.Claimed(wg.ID) || !env.Snap.Offers(wg.ID, AbilityWarpInZealot) {
			continue
		}
		unit, ok := SelectComposition(env, WarpInCandidates(env))
		if !ok {
			return
		}
		at := pylon.Position.TowardsRandomAngle(enemy, warpInSpread, env.Rand)
		if !out.WarpIn(wg.ID, unit, at) {
			return
		}
		slog.Debug("warping in", "unit", unit, "x", at.X, "y", at.Y, "time", env.Time())
	}
}

// planNexus takes the next base: the natural after 400 seconds, any other
// once the bank covers 400 minerals per nexus.
func planNexus(env RuleEnv, out *Orders) {
	if env.Snap.NextExpansion == nil || env.Pending(Nexus) > 0 {
		return
	}
	n := len(env.Units(Nexus))
	early := n < 2 && env.Time() > 400
	if !early && env.Minerals() <= max(n, 1)*expansionBankPerNexus {
		return
	}
	if out.Build(Nexus, *env.Snap.NextExpansion) {
		env.State.RecordExpansion(env.Time())
		slog.Info("taking expansion", "count", env.State.ExpansionCount, "time", env.Time())
	}
}

// Fortify puts a pylon and cannons at lightly defended bases and keeps the
// proxy pylon covered.
func Fortify(env RuleEnv, out *Orders) {
	forge := env.HasReady(Forge)
	for _, x := range env.Snap.Expansions {
		if len(model.Within(env.Units(PhotonCannon), x.Position, cannonRadius)) > 1 {
			continue
		}
		out.Build(Pylon, x.Position)
		if forge && len(model.Within(env.Ready(Pylon), x.Position, cannonRadius)) > 0 {
			out.Build(PhotonCannon, x.Position)
		}
	}

	proxy, enemy, ok := proxyPylon(env)
	if !ok {
		return
	}
	if len(model.Within(env.Units(Pylon), proxy.Position, proxyPylonRadius)) < proxyFortifyCount {
		out.Build(Pylon, proxy.Position.TowardsRandomAngle(enemy, 10, env.Rand))
	}
	if forge && len(model.Within(env.Units(PhotonCannon), proxy.Position, cannonRadius)) < proxyFortifyCount {
		out.Build(PhotonCannon, proxy.Position.TowardsRandomAngle(enemy, 3, env.Rand))
	}
}

func (p *Protoss) ControlUnits(env RuleEnv, out *Orders) {
	if !env.State.scouted || (env.Iteration()%50 == 0 && env.Time() > 600 && env.Time() < 610) {
		env.State.scouted = Scout(env, out) || env.State.scouted
	}
	b := NewBattlefield(env)
	if p.profile.CameraFollow {
		out.Camera(CameraTarget(env, b))
	}

	if proxy, _, ok := proxyPylon(env); ok && env.Iteration()%50 == 0 {
		for _, u := range b.Forces {
			if u.IsIdle {
				out.Move(u.ID, proxy.Position, false)
			}
		}
	}

	if env.State.attacking {
		if env.Iteration()%2 == 0 && len(b.Forces) < minimumWave {
			env.State.attacking = false
			slog.Info("attack wave spent", "forces", len(b.Forces), "time", env.Time())
		}
		MicroGatewayArmy(env, b, out)
		return
	}
	AttackWhenReady(env, b, out)
}

// AttackWhenReady sends the idle army at the enemy start once it outgrows
// the next wave's size, and otherwise defends bases and the proxy. Each wave
// needs twenty more units than the one before.
func AttackWhenReady(env RuleEnv, b Battlefield, out *Orders) {
	forces := b.Forces
	if len(forces) > (env.State.attackWaves+1)*waveSize || env.SupplyUsed() > waveSupply {
		enemy, ok := env.EnemyHome()
		if !ok {
			return
		}
		sent := 0
		for _, u := range forces {
			if u.IsIdle {
				out.AttackMove(u.ID, enemy)
				sent++
			}
		}
		if sent > 0 {
			env.State.attacking = true
			env.State.attackWaves++
			slog.Info("attack wave", "wave", env.State.attackWaves, "units", sent, "time", env.Time())
		}
		return
	}
	if len(forces) <= 2 || len(env.Snap.Enemies) == 0 {
		return
	}
	if !defenseNeeded(env) {
		return
	}
	for _, u := range forces {
		if e, ok := model.ClosestUnit(env.Snap.Enemies, u.Position); ok {
			out.Attack(u.ID, e.ID)
		}
	}
}

func defenseNeeded(env RuleEnv) bool {
	for _, x := range env.Snap.Expansions {
		if len(model.Within(env.Snap.Enemies, x.Position, baseAlertRadius)) > 0 {
			return true
		}
	}
	if proxy, _, ok := proxyPylon(env); ok {
		return len(model.Within(env.Snap.Enemies, proxy.Position, proxyAlertRadius)) > 0
	}
	return false
}

// MicroGatewayArmy shields sentries that are in range of the closest enemy
// and runs the combat cascade for everyone. Units with nothing near them
// raid a random known target.
func MicroGatewayArmy(env RuleEnv, b Battlefield, out *Orders) {
	for _, s := range env.Ready(Sentry) {
		e, ok := model.ClosestUnit(env.Snap.Enemies, s.Position)
		if ok && s.Position.Distance(e.Position) <= s.WeaponRange() && env.Snap.Offers(s.ID, AbilityGuardianShield) {
			out.Use(s.ID, AbilityGuardianShield, 0)
		}
	}
	for _, u := range b.Forces {
		if cmd, ok := MicroUnit(u, env.Snap.Enemies, b); ok {
			out.Issue(cmd)
			continue
		}
		if len(model.Within(env.Snap.Enemies, u.Position, relevanceRadius)) == 0 {
			out.AttackMove(u.ID, raidTarget(env))
		}
	}
}
