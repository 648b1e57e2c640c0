package model

// AttackClass summarizes which layers a unit's weapons reach.
type AttackClass int

const (
	AttackNone AttackClass = iota
	AttackGround
	AttackAir
	AttackBoth
)

func (c AttackClass) String() string {
	switch c {
	case AttackGround:
		return "ground"
	case AttackAir:
		return "air"
	case AttackBoth:
		return "both"
	default:
		return "none"
	}
}

// Capability is the subset of a unit's flags that decides who can hit whom.
type Capability struct {
	CanAttackGround bool
	CanAttackAir    bool
	IsFlying        bool
}

func (u UnitView) Capability() Capability {
	return Capability{
		CanAttackGround: u.CanAttackGround,
		CanAttackAir:    u.CanAttackAir,
		IsFlying:        u.IsFlying,
	}
}

func (c Capability) Class() AttackClass {
	switch {
	case c.CanAttackGround && c.CanAttackAir:
		return AttackBoth
	case c.CanAttackGround:
		return AttackGround
	case c.CanAttackAir:
		return AttackAir
	default:
		return AttackNone
	}
}

// CanTarget reports whether a unit with capability c can strike other.
func (c Capability) CanTarget(other Capability) bool {
	if other.IsFlying {
		return c.CanAttackAir
	}
	return c.CanAttackGround
}

// Threatens reports whether c can damage other. It is CanTarget read from
// the attacker's side and exists so call sites say what they mean.
func (c Capability) Threatens(other Capability) bool {
	return c.CanTarget(other)
}

// Targetable filters enemies down to those the unit can strike.
func Targetable(unit UnitView, enemies []UnitView) []UnitView {
	self := unit.Capability()
	var out []UnitView
	for _, e := range enemies {
		if self.CanTarget(e.Capability()) {
			out = append(out, e)
		}
	}
	return out
}

// Threats filters enemies down to those able to damage the unit.
func Threats(unit UnitView, enemies []UnitView) []UnitView {
	self := unit.Capability()
	var out []UnitView
	for _, e := range enemies {
		if e.Capability().Threatens(self) {
			out = append(out, e)
		}
	}
	return out
}
