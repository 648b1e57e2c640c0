package rules

import (
	"errors"
	"testing"
)

func TestStructureRulesCompile(t *testing.T) {
	sets := map[string][]*Rule{
		"zerg":   CompileZergStructures(),
		"terran": CompileTerranStructures(),
	}
	for name, rules := range sets {
		t.Run(name, func(t *testing.T) {
			engine, err := NewEngine(rules)
			if err != nil {
				t.Fatalf("NewEngine failed: %v", err)
			}
			got := engine.Rules()
			if len(got) == 0 {
				t.Fatal("no rules")
			}
			for i := 1; i < len(got); i++ {
				if got[i].Priority > got[i-1].Priority {
					t.Errorf("rules not sorted by priority: %s (%d) > %s (%d)",
						got[i].Name, got[i].Priority, got[i-1].Name, got[i-1].Priority)
				}
			}
		})
	}
}

func TestEngineRejectsBadCondition(t *testing.T) {
	_, err := NewEngine([]*Rule{{Name: "broken", ConditionSrc: `NoSuchMethod() > 1`}})
	if err == nil {
		t.Fatal("expected a compile error")
	}
}

func TestEngineExclusiveCategory(t *testing.T) {
	var fired []string
	record := func(name string, err error) ActionFunc {
		return func(RuleEnv, *Orders) error {
			fired = append(fired, name)
			return err
		}
	}

	tests := []struct {
		name  string
		rules []*Rule
		want  []string
	}{
		{
			name: "exclusive blocks lower in category",
			rules: []*Rule{
				{Name: "low", Priority: 5, Category: "morph", ConditionSrc: `true`, Action: record("low", nil)},
				{Name: "high", Priority: 10, Category: "morph", Exclusive: true, ConditionSrc: `true`, Action: record("high", nil)},
				{Name: "other", Priority: 1, Category: "tech", ConditionSrc: `true`, Action: record("other", nil)},
			},
			want: []string{"high", "other"},
		},
		{
			name: "failed action does not block",
			rules: []*Rule{
				{Name: "high", Priority: 10, Category: "morph", Exclusive: true, ConditionSrc: `true`, Action: record("high", errors.New("no townhall"))},
				{Name: "low", Priority: 5, Category: "morph", ConditionSrc: `true`, Action: record("low", nil)},
			},
			want: []string{"high", "low"},
		},
		{
			name: "false condition does not block",
			rules: []*Rule{
				{Name: "high", Priority: 10, Category: "morph", Exclusive: true, ConditionSrc: `Minerals() > 1000`, Action: record("high", nil)},
				{Name: "low", Priority: 5, Category: "morph", ConditionSrc: `Minerals() >= 100`, Action: record("low", nil)},
			},
			want: []string{"low"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fired = nil
			engine, err := NewEngine(tt.rules)
			if err != nil {
				t.Fatalf("NewEngine failed: %v", err)
			}
			env, out := newTestEnv(openingSnapshot(), nil, nil)
			engine.Evaluate(env, out)
			if len(fired) != len(tt.want) {
				t.Fatalf("fired %v, want %v", fired, tt.want)
			}
			for i := range fired {
				if fired[i] != tt.want[i] {
					t.Errorf("fired %v, want %v", fired, tt.want)
				}
			}
		})
	}
}

func TestZergRulesOpening(t *testing.T) {
	engine, err := NewEngine(CompileZergStructures())
	if err != nil {
		t.Fatal(err)
	}

	t.Run("no pool before the first expansion", func(t *testing.T) {
		snap := openingSnapshot()
		snap.Minerals = 400
		env, out := newTestEnv(snap, nil, nil)
		engine.Evaluate(env, out)
		if out.Len() != 0 {
			t.Errorf("unexpected orders: %+v", out.Commands())
		}
	})

	t.Run("pool after the first expansion", func(t *testing.T) {
		snap := openingSnapshot()
		snap.Minerals = 400
		state := NewStrategyState(DefaultProfile())
		state.RecordExpansion(30)
		env, out := newTestEnv(snap, state, nil)
		engine.Evaluate(env, out)
		if n := len(commandsOf(out.Commands(), "build", SpawningPool)); n != 1 {
			t.Errorf("expected a pool, got %+v", out.Commands())
		}
	})

	t.Run("lair only on the check cadence", func(t *testing.T) {
		snap := openingSnapshot()
		snap.Minerals, snap.Vespene = 400, 200
		snap.Units = append(snap.Units, unit(5, SpawningPool, 25, 35))
		for _, iter := range []int{9, 10} {
			snap.Iteration = iter
			env, out := newTestEnv(snap, nil, nil)
			engine.Evaluate(env, out)
			n := len(commandsOf(out.Commands(), "morph", Lair))
			if want := map[int]int{9: 0, 10: 1}[iter]; n != want {
				t.Errorf("iteration %d: %d lair morphs, want %d", iter, n, want)
			}
		}
	})
}
