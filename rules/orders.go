package rules

import (
	"log/slog"

	"github.com/nstehr/brood/model"
)

// Orders accumulates one tick's commands. It tracks the resources the batch
// has already committed, the actors that already hold a production order, and
// the exclusive items requested this pass, so that later decisions in the
// same tick see the effect of earlier ones.
type Orders struct {
	cmds      []model.Command
	minerals  int
	vespene   int
	supply    int
	claimed   map[int]bool
	requested map[string]int
}

func NewOrders(snap model.WorldSnapshot) *Orders {
	return &Orders{
		minerals:  snap.Minerals,
		vespene:   snap.Vespene,
		supply:    snap.SupplyLeft(),
		claimed:   make(map[int]bool),
		requested: make(map[string]int),
	}
}

// CanAfford checks item against what the batch has not yet spent. Supply is
// only checked for units.
func (o *Orders) CanAfford(item string) bool {
	c, ok := CostOf(item)
	if !ok {
		return false
	}
	return c.Minerals <= o.minerals && c.Vespene <= o.vespene && c.Supply <= max(o.supply, 0)
}

// Requested reports how many of item this batch has already asked for.
func (o *Orders) Requested(item string) int { return o.requested[item] }

// Claimed reports whether actor already holds an order this tick.
func (o *Orders) Claimed(actor int) bool { return o.claimed[actor] }

func (o *Orders) spend(item string) bool {
	if !o.CanAfford(item) {
		slog.Debug("cannot afford", "item", item, "minerals", o.minerals, "vespene", o.vespene)
		return false
	}
	c, _ := CostOf(item)
	o.minerals -= c.Minerals
	o.vespene -= c.Vespene
	o.supply -= c.Supply
	o.requested[item]++
	return true
}

// Train queues a unit from actor. Each actor trains at most one unit a tick.
func (o *Orders) Train(actor int, unit string) bool {
	if o.claimed[actor] || !o.spend(unit) {
		return false
	}
	o.claimed[actor] = true
	o.add(model.Command{Kind: model.CommandTrain, ActorID: actor, Item: unit})
	return true
}

// WarpIn trains unit from a warpgate and places it at a position, usually
// next to a pylon near the front.
func (o *Orders) WarpIn(actor int, unit string, at model.Point) bool {
	if o.claimed[actor] || !o.spend(unit) {
		return false
	}
	o.claimed[actor] = true
	o.add(model.Command{Kind: model.CommandTrain, ActorID: actor, Item: unit, Target: &at})
	return true
}

// Build asks the host to place a structure near at with a worker of its choosing.
// A structure type is requested at most once per batch.
func (o *Orders) Build(structure string, at model.Point) bool {
	if o.requested[structure] > 0 || !o.spend(structure) {
		return false
	}
	o.add(model.Command{Kind: model.CommandBuild, Item: structure, Target: &at})
	return true
}

// BuildOn places a structure on a target unit, e.g. an extractor on a geyser.
func (o *Orders) BuildOn(structure string, targetID int) bool {
	if o.requested[structure] > 0 || !o.spend(structure) {
		return false
	}
	o.add(model.Command{Kind: model.CommandBuild, Item: structure, TargetID: targetID})
	return true
}

// Morph turns actor into another type (hatchery into lair and so on).
func (o *Orders) Morph(actor int, into string) bool {
	if o.claimed[actor] || o.requested[into] > 0 || !o.spend(into) {
		return false
	}
	o.claimed[actor] = true
	o.add(model.Command{Kind: model.CommandMorph, ActorID: actor, Item: into})
	return true
}

// Research starts an upgrade at actor. An upgrade is requested at most once per batch.
func (o *Orders) Research(actor int, upgrade string) bool {
	if o.claimed[actor] || o.requested[upgrade] > 0 || !o.spend(upgrade) {
		return false
	}
	o.claimed[actor] = true
	o.add(model.Command{Kind: model.CommandResearch, ActorID: actor, Item: upgrade})
	return true
}

func (o *Orders) Move(actor int, to model.Point, queue bool) {
	o.add(model.Command{Kind: model.CommandMove, ActorID: actor, Target: &to, Queue: queue})
}

// AttackMove attacks anything met on the way to a position.
func (o *Orders) AttackMove(actor int, to model.Point) {
	o.add(model.Command{Kind: model.CommandAttack, ActorID: actor, Target: &to})
}

func (o *Orders) Attack(actor, target int) {
	o.add(model.Command{Kind: model.CommandAttack, ActorID: actor, TargetID: target})
}

// Use casts an ability. targetID is zero for self-cast abilities.
func (o *Orders) Use(actor int, ability string, targetID int) {
	o.add(model.Command{Kind: model.CommandAbility, ActorID: actor, Item: ability, TargetID: targetID})
}

func (o *Orders) Rally(actor int, to model.Point) {
	o.add(model.Command{Kind: model.CommandRally, ActorID: actor, Target: &to})
}

func (o *Orders) Camera(at model.Point) {
	o.add(model.Command{Kind: model.CommandCamera, Target: &at})
}

// Issue appends a command built elsewhere, e.g. by the combat controller.
func (o *Orders) Issue(cmd model.Command) {
	o.add(cmd)
}

func (o *Orders) add(cmd model.Command) {
	o.cmds = append(o.cmds, cmd)
}

// Commands returns the batch in emission order.
func (o *Orders) Commands() []model.Command {
	return o.cmds
}

func (o *Orders) Len() int { return len(o.cmds) }
