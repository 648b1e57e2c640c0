package timing

import (
	"maps"
	"slices"
)

// Transition records a phase flag flipping between two evaluations.
type Transition struct {
	Phase  string
	Active bool
	Time   float64
}

// Manager keeps the last evaluated flag per named phase so callers can
// observe transitions. Flags only change inside Update.
type Manager struct {
	windows map[string][]Window
	active  map[string]bool
	order   []string
}

// NewManager builds a manager over the given phase windows. Every flag starts
// false; the first Update reports each phase that is already open.
func NewManager(windows map[string][]Window) *Manager {
	m := &Manager{
		windows: make(map[string][]Window, len(windows)),
		active:  make(map[string]bool, len(windows)),
	}
	for name, ws := range windows {
		m.windows[name] = slices.Clone(ws)
	}
	m.order = slices.Sorted(maps.Keys(m.windows))
	return m
}

// Update recomputes every phase at time t and returns the ones that changed,
// in phase-name order.
func (m *Manager) Update(t float64) []Transition {
	var out []Transition
	for _, name := range m.order {
		now := PhaseActive(m.windows[name], t)
		if now != m.active[name] {
			m.active[name] = now
			out = append(out, Transition{Phase: name, Active: now, Time: t})
		}
	}
	return out
}

// Active returns the stored flag, not a fresh evaluation.
func (m *Manager) Active(phase string) bool {
	return m.active[phase]
}

// Phases lists the configured phase names in sorted order.
func (m *Manager) Phases() []string {
	return slices.Clone(m.order)
}
