package rules

import (
	"slices"

	"github.com/nstehr/brood/model"
)

// typed is a generic constraint for any model type with a TypeName accessor.
type typed interface {
	TypeName() string
}

// ofType keeps items whose TypeName is any of types.
func ofType[T typed](items []T, types ...string) []T {
	var out []T
	for _, item := range items {
		if slices.Contains(types, item.TypeName()) {
			out = append(out, item)
		}
	}
	return out
}

// countType counts items whose TypeName is any of types.
func countType[T typed](items []T, types ...string) int {
	n := 0
	for _, item := range items {
		if slices.Contains(types, item.TypeName()) {
			n++
		}
	}
	return n
}

// Zerg unit types.
const (
	Larva             = "larva"
	Drone             = "drone"
	Overlord          = "overlord"
	Queen             = "queen"
	Zergling          = "zergling"
	Baneling          = "baneling"
	Roach             = "roach"
	RoachBurrowed     = "roachburrowed"
	Hydralisk         = "hydralisk"
	Mutalisk          = "mutalisk"
	Corruptor         = "corruptor"
	Broodlord         = "broodlord"
	Lurker            = "lurker"
	Ultralisk         = "ultralisk"
	UltraliskBurrowed = "ultraliskburrowed"
)

// Zerg structure types.
const (
	Hatchery         = "hatchery"
	Lair             = "lair"
	Hive             = "hive"
	Extractor        = "extractor"
	SpawningPool     = "spawningpool"
	RoachWarren      = "roachwarren"
	HydraliskDen     = "hydraliskden"
	InfestationPit   = "infestationpit"
	UltraliskCavern  = "ultraliskcavern"
	EvolutionChamber = "evolutionchamber"
	Spire            = "spire"
	SpineCrawler     = "spinecrawler"
	SporeCrawler     = "sporecrawler"
)

// Terran types used by the marine strategy.
const (
	CommandCenter      = "commandcenter"
	SCV                = "scv"
	Marine             = "marine"
	Barracks           = "barracks"
	SupplyDepot        = "supplydepot"
	SupplyDepotLowered = "supplydepotlowered"
)

// Protoss types used by the gateway strategy.
const (
	Nexus            = "nexus"
	ProtossWorker    = "probe"
	Pylon            = "pylon"
	Assimilator      = "assimilator"
	Gateway          = "gateway"
	WarpGate         = "warpgate"
	CyberneticsCore  = "cyberneticscore"
	RoboticsFacility = "roboticsfacility"
	Forge            = "forge"
	TwilightCouncil  = "twilightcouncil"
	PhotonCannon     = "photoncannon"
	Zealot           = "zealot"
	Stalker          = "stalker"
	Sentry           = "sentry"
	Immortal         = "immortal"
)

// Upgrades. Names match what the host lists in a building's ability set.
const (
	MetabolicBoost = "zerglingmovementspeed"
	AdrenalGlands  = "zerglingattackspeed"
	Burrow         = "burrow"

	GlialReconstitution = "glialreconstitution"
	TunnelingClaws      = "tunnelingclaws"
	GroovedSpines       = "evolvegroovedspines"
	MuscularAugments    = "evolvemuscularaugments"
	ChitinousPlating    = "chitinousplating"
	AnabolicSynthesis   = "anabolicsynthesis"

	WarpGateResearch = "warpgateresearch"
	Charge           = "charge"
)

// Unit abilities.
const (
	AbilityInjectLarva   = "injectlarva"
	AbilityBurrowDown    = "burrowdown"
	AbilityBurrowUp      = "burrowup"
	AbilityGenerateCreep = "generatecreep"
	AbilityLowerDepot    = "lowerdepot"

	AbilityChronoboost    = "chronoboost"
	AbilityGuardianShield = "guardianshield"

	// AbilityWarpInZealot is offered while a warpgate is off cooldown.
	// Every warp-in shares the cooldown, so it stands for all of them.
	AbilityWarpInZealot = "warpgatetrainzealot"
)

var (
	ZergMissileWeapons = []string{"zergmissileweaponslevel1", "zergmissileweaponslevel2", "zergmissileweaponslevel3"}
	ZergGroundArmor    = []string{"zerggroundarmorslevel1", "zerggroundarmorslevel2", "zerggroundarmorslevel3"}
	ZergMeleeWeapons   = []string{"zergmeleeweaponslevel1", "zergmeleeweaponslevel2", "zergmeleeweaponslevel3"}
	ZergFlyerWeapons   = []string{"zergflyerweaponslevel1", "zergflyerweaponslevel2", "zergflyerweaponslevel3"}
	ZergFlyerArmor     = []string{"zergflyerarmorslevel1", "zergflyerarmorslevel2", "zergflyerarmorslevel3"}

	ProtossGroundWeapons = []string{"protossgroundweaponslevel1", "protossgroundweaponslevel2", "protossgroundweaponslevel3"}
	ProtossGroundArmor   = []string{"protossgroundarmorslevel1", "protossgroundarmorslevel2", "protossgroundarmorslevel3"}
	ProtossShields       = []string{"protossshieldslevel1", "protossshieldslevel2", "protossshieldslevel3"}
)

var (
	townhallTypes = []string{Hatchery, Lair, Hive, CommandCenter, Nexus}
	workerTypes   = []string{Drone, SCV, ProtossWorker}

	// combatTypes are the units the combat controller drives and that count
	// toward the friendly force.
	combatTypes = []string{Zergling, Baneling, Roach, Hydralisk, Mutalisk, Corruptor, Broodlord, Lurker, Ultralisk, Marine,
		Zealot, Stalker, Sentry, Immortal}
)

// Cost is the price of a unit, structure or upgrade.
type Cost struct {
	Minerals int
	Vespene  int
	Supply   int
}

var costs = map[string]Cost{
	Drone:     {50, 0, 1},
	Overlord:  {100, 0, 0},
	Queen:     {150, 0, 2},
	Zergling:  {50, 0, 1},
	Roach:     {75, 25, 2},
	Hydralisk: {100, 50, 2},
	Mutalisk:  {100, 100, 2},
	Ultralisk: {275, 200, 6},

	Hatchery:         {300, 0, 0},
	Lair:             {150, 100, 0},
	Hive:             {200, 150, 0},
	Extractor:        {25, 0, 0},
	SpawningPool:     {200, 0, 0},
	RoachWarren:      {150, 0, 0},
	HydraliskDen:     {100, 100, 0},
	InfestationPit:   {100, 100, 0},
	UltraliskCavern:  {150, 200, 0},
	EvolutionChamber: {75, 0, 0},
	Spire:            {200, 200, 0},
	SpineCrawler:     {100, 0, 0},
	SporeCrawler:     {75, 0, 0},

	MetabolicBoost:      {100, 100, 0},
	AdrenalGlands:       {200, 200, 0},
	Burrow:              {100, 100, 0},
	GlialReconstitution: {100, 100, 0},
	TunnelingClaws:      {100, 100, 0},
	GroovedSpines:       {100, 100, 0},
	MuscularAugments:    {100, 100, 0},
	ChitinousPlating:    {150, 150, 0},
	AnabolicSynthesis:   {150, 150, 0},

	CommandCenter: {400, 0, 0},
	SCV:           {50, 0, 1},
	Marine:        {50, 0, 1},
	Barracks:      {150, 0, 0},
	SupplyDepot:   {100, 0, 0},

	Nexus:            {400, 0, 0},
	ProtossWorker:    {50, 0, 1},
	Pylon:            {100, 0, 0},
	Assimilator:      {75, 0, 0},
	Gateway:          {150, 0, 0},
	CyberneticsCore:  {150, 0, 0},
	RoboticsFacility: {150, 100, 0},
	Forge:            {150, 0, 0},
	TwilightCouncil:  {150, 100, 0},
	PhotonCannon:     {150, 0, 0},
	Zealot:           {100, 0, 2},
	Stalker:          {125, 50, 2},
	Sentry:           {50, 100, 2},
	Immortal:         {275, 100, 4},
	WarpGateResearch: {50, 50, 0},
	Charge:           {100, 100, 0},
}

func init() {
	tiered := func(names []string, base, step int) {
		for i, n := range names {
			c := base + i*step
			costs[n] = Cost{c, c, 0}
		}
	}
	tiered(ZergMissileWeapons, 100, 50)
	tiered(ZergGroundArmor, 150, 75)
	tiered(ZergMeleeWeapons, 100, 50)
	tiered(ZergFlyerWeapons, 100, 75)
	tiered(ZergFlyerArmor, 150, 75)
	tiered(ProtossGroundWeapons, 100, 50)
	tiered(ProtossGroundArmor, 100, 50)
	tiered(ProtossShields, 150, 75)
}

// CostOf returns the price of item. Unknown items report ok=false.
func CostOf(item string) (Cost, bool) {
	c, ok := costs[item]
	return c, ok
}

func isTownhall(u model.UnitView) bool { return slices.Contains(townhallTypes, u.Type) }
func isWorker(u model.UnitView) bool   { return slices.Contains(workerTypes, u.Type) }
func isCombat(u model.UnitView) bool   { return slices.Contains(combatTypes, u.Type) }
