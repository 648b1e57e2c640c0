package rules

import (
	"slices"
	"testing"
)

func TestRoundRobin(t *testing.T) {
	tests := []struct {
		name  string
		lists [][]string
		want  []string
	}{
		{"uneven", [][]string{{"a1", "a2"}, {"b1"}, {"c1", "c2", "c3"}}, []string{"a1", "b1", "c1", "a2", "c2", "c3"}},
		{"single", [][]string{{"x", "y"}}, []string{"x", "y"}},
		{"empty list skipped", [][]string{{}, {"b1", "b2"}}, []string{"b1", "b2"}},
		{"nothing", nil, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RoundRobin(tt.lists...)
			if !slices.Equal(got, tt.want) {
				t.Errorf("RoundRobin() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestUpgradeListsInterleave(t *testing.T) {
	got := RoundRobin(ZergMissileWeapons, ZergGroundArmor, ZergMeleeWeapons)
	if len(got) != 9 {
		t.Fatalf("expected 9 upgrades, got %d", len(got))
	}
	if got[0] != ZergMissileWeapons[0] || got[1] != ZergGroundArmor[0] || got[2] != ZergMeleeWeapons[0] || got[3] != ZergMissileWeapons[1] {
		t.Errorf("unexpected order: %v", got)
	}
}
