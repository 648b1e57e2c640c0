package model

// WorldSnapshot is the read-only view of the match the host pushes every tick.
// The core never mutates it; a fresh one replaces it wholesale next tick.
type WorldSnapshot struct {
	Iteration              int              `json:"iteration"`
	Time                   float64          `json:"time"`
	Minerals               int              `json:"minerals"`
	Vespene                int              `json:"vespene"`
	SupplyUsed             int              `json:"supplyUsed"`
	SupplyCap              int              `json:"supplyCap"`
	CollectionRateMinerals float64          `json:"collectionRateMinerals"` // per minute
	CollectionRateVespene  float64          `json:"collectionRateVespene"`  // per minute
	Score                  Score            `json:"score"`
	Units                  []UnitView       `json:"units"`
	Enemies                []UnitView       `json:"enemies"`
	Abilities              map[int][]string `json:"abilities"`
	Pending                map[string]int   `json:"pending"`
	Upgrades               []string         `json:"upgrades"`
	Expansions             []Expansion      `json:"expansions"`
	NextExpansion          *Point           `json:"nextExpansion,omitempty"`
	PotentialEnemyBases    []Point          `json:"potentialEnemyBases"`
	Geysers                []Geyser         `json:"geysers"`
	StartLocation          Point            `json:"startLocation"`
	EnemyStartLocations    []Point          `json:"enemyStartLocations"`
	MapCenter              Point            `json:"mapCenter"`
	MapName                string           `json:"mapName"`
}

// Score carries the army value counters the host tracks for both sides.
type Score struct {
	ArmyLost   int `json:"armyLost"`
	ArmyKilled int `json:"armyKilled"`
}

// UnitView describes one friendly or enemy unit as seen this tick.
type UnitView struct {
	ID              int     `json:"id"`
	Type            string  `json:"type"`
	Position        Point   `json:"position"`
	Health          float64 `json:"health"` // fraction 0..1
	WeaponCooldown  float64 `json:"weaponCooldown"`
	IsFlying        bool    `json:"isFlying"`
	CanAttackGround bool    `json:"canAttackGround"`
	CanAttackAir    bool    `json:"canAttackAir"`
	GroundRange     float64 `json:"groundRange"`
	AirRange        float64 `json:"airRange"`
	GroundDPS       float64 `json:"groundDps"`
	SightRange      float64 `json:"sightRange"`
	Energy          float64 `json:"energy"`
	IsIdle          bool    `json:"isIdle"`
	IsReady         bool    `json:"isReady"`
	OrderCount      int     `json:"orderCount"`
	IsStructure     bool    `json:"isStructure"`
	IsReturning     bool    `json:"isReturning"`
}

func (u UnitView) TypeName() string { return u.Type }

// WeaponRange is the longer of the unit's two weapon ranges.
func (u UnitView) WeaponRange() float64 {
	return max(u.GroundRange, u.AirRange)
}

// HasNoQueue reports whether a building or unit has nothing queued.
func (u UnitView) HasNoQueue() bool { return u.OrderCount == 0 }

// Expansion is an owned base site together with the mineral fields left on it.
type Expansion struct {
	Position      Point `json:"position"`
	MineralFields int   `json:"mineralFields"`
}

type Geyser struct {
	ID           int   `json:"id"`
	Position     Point `json:"position"`
	HasExtractor bool  `json:"hasExtractor"`
}

// PendingCount returns how many of item are already ordered or under construction.
func (s WorldSnapshot) PendingCount(item string) int {
	if s.Pending == nil {
		return 0
	}
	return s.Pending[item]
}

// HasUpgrade reports whether an upgrade has finished researching.
func (s WorldSnapshot) HasUpgrade(name string) bool {
	for _, u := range s.Upgrades {
		if u == name {
			return true
		}
	}
	return false
}

// Offers reports whether the building with the given id currently offers an ability.
func (s WorldSnapshot) Offers(id int, ability string) bool {
	for _, a := range s.Abilities[id] {
		if a == ability {
			return true
		}
	}
	return false
}

func (s WorldSnapshot) SupplyLeft() int {
	return s.SupplyCap - s.SupplyUsed
}
