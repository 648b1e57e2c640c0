package agent

import (
	"fmt"

	"github.com/nstehr/brood/model"
	"github.com/nstehr/brood/rules"
	"github.com/nstehr/brood/timing"
)

// EventKind identifies a notable change between two consecutive snapshots.
type EventKind string

const (
	EventPhaseStarted    EventKind = "phase_started"
	EventPhaseEnded      EventKind = "phase_ended"
	EventBaseUnderAttack EventKind = "base_under_attack"
	EventTownhallLost    EventKind = "townhall_lost"
	EventArmyDevastated  EventKind = "army_devastated"
	EventFirstContact    EventKind = "first_contact"
)

// Event is logged and journaled; nothing in the decision core consumes it.
type Event struct {
	Kind      EventKind
	Iteration int
	Detail    string
}

func (e Event) String() string { return fmt.Sprintf("%s: %s", e.Kind, e.Detail) }

// stateSnapshot captures the diffable fields of one tick.
type stateSnapshot struct {
	townhalls   map[int]string // id → type
	forces      int
	underAttack bool
	enemiesSeen bool
}

// devastatedFloor keeps small early skirmishes from counting as a lost army.
const devastatedFloor = 6

func takeSnapshot(env rules.RuleEnv) stateSnapshot {
	snap := stateSnapshot{
		townhalls:   make(map[int]string),
		forces:      len(env.Forces()),
		underAttack: env.UnderAttack(),
		enemiesSeen: len(env.Snap.Enemies) > 0,
	}
	for _, th := range env.Townhalls() {
		snap.townhalls[th.ID] = th.Type
	}
	return snap
}

// phaseEvents turns timing transitions into events.
func phaseEvents(iteration int, transitions []timing.Transition) []Event {
	var events []Event
	for _, t := range transitions {
		kind := EventPhaseEnded
		if t.Active {
			kind = EventPhaseStarted
		}
		events = append(events, Event{
			Kind:      kind,
			Iteration: iteration,
			Detail:    fmt.Sprintf("%s at %.0fs", t.Phase, t.Time),
		})
	}
	return events
}

// detectEvents compares cur against the previous tick. Nothing is reported
// for the first tick of a match.
func detectEvents(snap model.WorldSnapshot, cur stateSnapshot, prev *stateSnapshot) []Event {
	if prev == nil {
		return nil
	}
	var events []Event

	for id, typ := range prev.townhalls {
		if _, ok := cur.townhalls[id]; !ok {
			events = append(events, Event{
				Kind:      EventTownhallLost,
				Iteration: snap.Iteration,
				Detail:    fmt.Sprintf("lost %s (id %d), %d left", typ, id, len(cur.townhalls)),
			})
		}
	}

	if !prev.underAttack && cur.underAttack {
		events = append(events, Event{
			Kind:      EventBaseUnderAttack,
			Iteration: snap.Iteration,
			Detail:    fmt.Sprintf("%d enemies visible", len(snap.Enemies)),
		})
	}

	// More than half the army gone in one tick.
	if prev.forces >= devastatedFloor {
		lost := prev.forces - cur.forces
		if lost > 0 && float64(lost)/float64(prev.forces) > 0.5 {
			events = append(events, Event{
				Kind:      EventArmyDevastated,
				Iteration: snap.Iteration,
				Detail:    fmt.Sprintf("forces %d→%d", prev.forces, cur.forces),
			})
		}
	}

	if !prev.enemiesSeen && cur.enemiesSeen {
		events = append(events, Event{
			Kind:      EventFirstContact,
			Iteration: snap.Iteration,
			Detail:    fmt.Sprintf("%d enemies now visible", len(snap.Enemies)),
		})
	}
	return events
}
