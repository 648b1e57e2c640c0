package rules

import "fmt"

// CompileZergStructures generates the structure, tech and static defense
// rules for a zerg profile. Conditions are built via fmt.Sprintf with
// interpolated names so the compiler never generates invalid expr.
func CompileZergStructures() []*Rule {
	var rules []*Rule

	// --- Tech buildings ---

	rules = append(rules, &Rule{
		Name:         "spawning-pool",
		Priority:     900,
		Category:     "tech",
		ConditionSrc: fmt.Sprintf(`ExpansionCount() > 0 && BuildOnce(%q)`, SpawningPool),
		Action:       BuildInBase(SpawningPool),
	})

	rules = append(rules, &Rule{
		Name:     "roach-warren",
		Priority: 850,
		Category: "tech",
		ConditionSrc: fmt.Sprintf(`Phase(%q) && HasReady(%q) && Missing(%q)`,
			PhaseRoach, SpawningPool, RoachWarren),
		Action: BuildInBase(RoachWarren),
	})

	rules = append(rules, &Rule{
		Name:     "hydralisk-den",
		Priority: 840,
		Category: "tech",
		ConditionSrc: fmt.Sprintf(`Phase(%q) && (HasReady(%q) || HasReady(%q)) && Missing(%q)`,
			PhaseHydralisk, Lair, Hive, HydraliskDen),
		Action: BuildInBase(HydraliskDen),
	})

	rules = append(rules, &Rule{
		Name:         "infestation-pit",
		Priority:     830,
		Category:     "tech",
		ConditionSrc: fmt.Sprintf(`SupplyUsed() > 100 && Missing(%q)`, InfestationPit),
		Action:       BuildInBase(InfestationPit),
	})

	rules = append(rules, &Rule{
		Name:     "ultralisk-cavern",
		Priority: 820,
		Category: "tech",
		ConditionSrc: fmt.Sprintf(`HasReady(%q) && Phase(%q) && BuildOnce(%q)`,
			Hive, PhaseUltralisk, UltraliskCavern),
		Action: BuildInBase(UltraliskCavern),
	})

	rules = append(rules, &Rule{
		Name:     "evolution-chamber",
		Priority: 800,
		Category: "tech",
		ConditionSrc: fmt.Sprintf(`ExpansionCount() > 1 && Count(%q) < IdealEvolutionChambers() && Pending(%q) == 0 && CanAfford(%q)`,
			EvolutionChamber, EvolutionChamber, EvolutionChamber),
		Action: ActionBuildEvolutionChamber,
	})

	// --- Townhall morphs ---
	// Lair, spire and hive are checked every 10 iterations once the pool is up.
	// Lair and hive both morph a townhall, so they share an exclusive category.

	rules = append(rules, &Rule{
		Name:      "lair",
		Priority:  780,
		Category:  "morph",
		Exclusive: true,
		ConditionSrc: fmt.Sprintf(`Iteration() %% 10 == 0 && HasReady(%q) && !Has(%q) && !Has(%q) && HasIdleTownhall() && Pending(%q) == 0 && CanAfford(%q)`,
			SpawningPool, Lair, Hive, Lair, Lair),
		Action: ActionMorphLair,
	})

	rules = append(rules, &Rule{
		Name:     "spire",
		Priority: 770,
		Category: "tech",
		ConditionSrc: fmt.Sprintf(`Iteration() %% 10 == 0 && HasReady(%q) && HasReady(%q) && Phase(%q) && Missing(%q)`,
			SpawningPool, Lair, PhaseMutalisk, Spire),
		Action: ActionBuildSpire,
	})

	rules = append(rules, &Rule{
		Name:      "hive",
		Priority:  760,
		Category:  "morph",
		Exclusive: true,
		ConditionSrc: fmt.Sprintf(`Iteration() %% 10 == 0 && HasReady(%q) && HasReady(%q) && !HasReady(%q) && Pending(%q) == 0 && CanAfford(%q)`,
			SpawningPool, InfestationPit, Hive, Hive, Hive),
		Action: ActionMorphHive,
	})

	// --- Economy ---

	rules = append(rules, &Rule{
		Name:     "extractor",
		Priority: 700,
		Category: "economy",
		ConditionSrc: fmt.Sprintf(`!RecentlyAttacked() && ShouldBuildGas() && SupplyUsed() >= 16 && Pending(%q) == 0 && CanAfford(%q)`,
			Extractor, Extractor),
		Action: ActionBuildExtractor,
	})

	// --- Static defense at the base closest to the enemy ---

	rules = append(rules, &Rule{
		Name:     "spine-crawler",
		Priority: 650,
		Category: "defense",
		ConditionSrc: fmt.Sprintf(`HasReady(%q) && FrontDefenses(%q) < IdealSpines() && Pending(%q) == 0 && CanAfford(%q)`,
			SpawningPool, SpineCrawler, SpineCrawler, SpineCrawler),
		Action: ActionBuildSpineCrawler,
	})

	rules = append(rules, &Rule{
		Name:     "spore-crawler",
		Priority: 640,
		Category: "defense",
		ConditionSrc: fmt.Sprintf(`HasReady(%q) && FrontDefenses(%q) < IdealSpores() && Pending(%q) == 0 && CanAfford(%q)`,
			SpawningPool, SporeCrawler, SporeCrawler, SporeCrawler),
		Action: ActionBuildSporeCrawler,
	})

	return rules
}

// CompileTerranStructures generates the marine strategy's building rules.
func CompileTerranStructures() []*Rule {
	var rules []*Rule

	rules = append(rules, &Rule{
		Name:     "supply-depot",
		Priority: 900,
		Category: "economy",
		ConditionSrc: fmt.Sprintf(`SupplyLeft() < 5 && Pending(%q) == 0 && CanAfford(%q)`,
			SupplyDepot, SupplyDepot),
		Action: ActionBuildSupplyDepot,
	})

	rules = append(rules, &Rule{
		Name:     "barracks",
		Priority: 800,
		Category: "production",
		ConditionSrc: fmt.Sprintf(`CanAfford(%q) && (Count(%q) < 3 || Minerals() > 700)`,
			Barracks, Barracks),
		Action: ActionBuildBarracks,
	})

	return rules
}

// CompileProtossStructures generates the gateway strategy's building and
// research rules.
func CompileProtossStructures() []*Rule {
	var rules []*Rule

	rules = append(rules, &Rule{
		Name:     "pylon",
		Priority: 900,
		Category: "economy",
		ConditionSrc: fmt.Sprintf(`SupplyLeft() < 6 && SupplyUsed() < 195 && (Pending(%q) == 0 || Minerals() > 600) && CanAfford(%q)`,
			Pylon, Pylon),
		Action: ActionBuildPylon,
	})

	rules = append(rules, &Rule{
		Name:     "assimilator",
		Priority: 850,
		Category: "economy",
		ConditionSrc: fmt.Sprintf(`SupplyUsed() >= 22 && Pending(%q) == 0 && CanAfford(%q)`,
			Assimilator, Assimilator),
		Action: ActionBuildAssimilator,
	})

	rules = append(rules, &Rule{
		Name:     "gateway",
		Priority: 800,
		Category: "production",
		ConditionSrc: fmt.Sprintf(`HasReady(%q) && Pending(%q) == 0 && CanAfford(%q) && (GatewayCount() < 1 || (GatewayCount() < 2 && Time() > 200) || (GatewayCount() < 3 && Time() > 300))`,
			Pylon, Gateway, Gateway),
		Action: BuildNearPylon(Gateway),
	})

	rules = append(rules, &Rule{
		Name:     "gateway-flood",
		Priority: 790,
		Category: "production",
		ConditionSrc: fmt.Sprintf(`GatewayCount() >= 3 && GatewayCount() < 20 && Minerals() > 900 && Time() > 300 && CanAfford(%q)`,
			Gateway),
		Action: BuildNearPylon(Gateway),
	})

	rules = append(rules, &Rule{
		Name:     "cybernetics-core",
		Priority: 780,
		Category: "tech",
		ConditionSrc: fmt.Sprintf(`HasReady(%q) && BuildOnce(%q)`,
			Gateway, CyberneticsCore),
		Action: BuildNearPylon(CyberneticsCore),
	})

	rules = append(rules, &Rule{
		Name:     "robotics-facility",
		Priority: 770,
		Category: "tech",
		ConditionSrc: fmt.Sprintf(`HasReady(%q) && Pending(%q) == 0 && CanAfford(%q) && ((Count(%q) < 1 && Time() > 250) || (Count(%q) < 2 && Time() > 400))`,
			CyberneticsCore, RoboticsFacility, RoboticsFacility, RoboticsFacility, RoboticsFacility),
		Action: BuildNearPylon(RoboticsFacility),
	})

	rules = append(rules, &Rule{
		Name:     "warpgate-research",
		Priority: 760,
		Category: "tech",
		ConditionSrc: fmt.Sprintf(`HasReady(%q) && !Milestone(%q) && CanAfford(%q)`,
			CyberneticsCore, string(MilestoneWarpGate), WarpGateResearch),
		Action: ActionResearchWarpGate,
	})

	rules = append(rules, &Rule{
		Name:     "forge",
		Priority: 750,
		Category: "tech",
		ConditionSrc: fmt.Sprintf(`Time() > 300 && ReadyCount(%q) <= 1 && Pending(%q) == 0 && CanAfford(%q)`,
			Forge, Forge, Forge),
		Action: BuildNearPylon(Forge),
	})

	rules = append(rules, &Rule{
		Name:         "twilight-council",
		Priority:     740,
		Category:     "tech",
		ConditionSrc: fmt.Sprintf(`Time() > 550 && Missing(%q)`, TwilightCouncil),
		Action:       BuildNearPylon(TwilightCouncil),
	})

	// The forward pylon shares the structure slot with supply pylons, so a
	// tick that needs supply takes it first.
	rules = append(rules, &Rule{
		Name:     "proxy-pylon",
		Priority: 600,
		Category: "army",
		ConditionSrc: fmt.Sprintf(`HasReady(%q) && !Milestone(%q) && CanAfford(%q)`,
			CyberneticsCore, string(MilestoneProxyPylon), Pylon),
		Action: ActionBuildProxyPylon,
	})

	return rules
}
