package rules

import (
	"github.com/nstehr/brood/model"
)

// scriptedRand replays fixed rolls. Once the script runs out Float64 returns
// a value no weight can beat and IntN returns zero.
type scriptedRand struct {
	floats []float64
	ints   []int
	rolled int
}

func (r *scriptedRand) Float64() float64 {
	if len(r.floats) == 0 {
		return 0.999
	}
	v := r.floats[0]
	r.floats = r.floats[1:]
	r.rolled++
	return v
}

func (r *scriptedRand) IntN(n int) int {
	if len(r.ints) == 0 {
		return 0
	}
	v := r.ints[0]
	r.ints = r.ints[1:]
	return v % n
}

func pt(x, y float64) model.Point { return model.Point{X: x, Y: y} }

func unit(id int, typ string, x, y float64) model.UnitView {
	return model.UnitView{ID: id, Type: typ, Position: pt(x, y), Health: 1, IsReady: true, IsIdle: true}
}

// openingSnapshot is a zerg start: one hatchery, twelve drones, three larvae
// and one overlord at 12/14 supply.
func openingSnapshot() model.WorldSnapshot {
	snap := model.WorldSnapshot{
		Minerals:            100,
		SupplyUsed:          12,
		SupplyCap:           14,
		StartLocation:       pt(30, 30),
		EnemyStartLocations: []model.Point{pt(150, 150)},
		MapCenter:           pt(90, 90),
		NextExpansion:       ptr(pt(50, 30)),
		Expansions:          []model.Expansion{{Position: pt(30, 30), MineralFields: 8}},
	}
	snap.Units = append(snap.Units, unit(1, Hatchery, 30, 30), unit(2, Overlord, 32, 32))
	for i := range 12 {
		snap.Units = append(snap.Units, unit(10+i, Drone, 25, 25))
	}
	for i := range 3 {
		snap.Units = append(snap.Units, unit(30+i, Larva, 31, 30))
	}
	return snap
}

func ptr[T any](v T) *T { return &v }

func newTestEnv(snap model.WorldSnapshot, state *StrategyState, r Rand) (RuleEnv, *Orders) {
	p := DefaultProfile()
	if state == nil {
		state = NewStrategyState(p)
	}
	if r == nil {
		r = &scriptedRand{}
	}
	out := NewOrders(snap)
	return NewRuleEnv(snap, state, p, r, out), out
}

func commandsOf(cmds []model.Command, kind model.CommandKind, item string) []model.Command {
	var out []model.Command
	for _, c := range cmds {
		if c.Kind == kind && (item == "" || c.Item == item) {
			out = append(out, c)
		}
	}
	return out
}
