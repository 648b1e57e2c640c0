package rules

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// Engine runs compiled rules against one planning pass. Rules fire in
// priority order; exclusive rules block lower-priority rules in the same
// category.
type Engine struct {
	rules []*Rule
}

// NewEngine compiles all rule conditions into expr bytecode and sorts by priority.
func NewEngine(rules []*Rule) (*Engine, error) {
	compiled, err := compileRules(rules)
	if err != nil {
		return nil, err
	}
	return &Engine{rules: compiled}, nil
}

// Evaluate runs every rule against env. A failing condition or action is
// logged and skipped; it never aborts the pass.
func (e *Engine) Evaluate(env RuleEnv, out *Orders) {
	fired := make(map[string]bool) // category → exclusive rule already fired

	for _, r := range e.rules {
		if fired[r.Category] {
			continue
		}

		result, err := vm.Run(r.program, env)
		if err != nil {
			slog.Warn("rule condition error", "rule", r.Name, "error", err)
			continue
		}

		match, ok := result.(bool)
		if !ok || !match {
			continue
		}

		slog.Debug("rule fired", "rule", r.Name, "priority", r.Priority, "category", r.Category, "tick", env.Iteration())

		if err := r.Action(env, out); err != nil {
			slog.Warn("rule action error", "rule", r.Name, "error", err)
			continue
		}

		if r.Exclusive {
			fired[r.Category] = true
		}
	}
}

// Rules returns the compiled rules in evaluation order.
func (e *Engine) Rules() []*Rule {
	return e.rules
}

func compileRules(rules []*Rule) ([]*Rule, error) {
	for _, r := range rules {
		prog, err := expr.Compile(r.ConditionSrc, expr.Env(RuleEnv{}), expr.AsBool())
		if err != nil {
			return nil, fmt.Errorf("compile rule %q: %w", r.Name, err)
		}
		r.program = prog
	}
	sort.SliceStable(rules, func(i, j int) bool {
		return rules[i].Priority > rules[j].Priority
	})
	return rules, nil
}
