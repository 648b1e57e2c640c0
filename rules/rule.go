package rules

import (
	"github.com/expr-lang/expr/vm"
)

// ActionFunc appends to the tick's orders once a rule's condition holds.
type ActionFunc func(env RuleEnv, out *Orders) error

// Rule pairs a compiled predicate with the orders it places. Rules in the
// same Category share one producer; an Exclusive rule that fires stops the
// lower-priority rules of its category for the rest of the pass.
type Rule struct {
	Name         string
	Priority     int // evaluated highest first
	Category     string
	Exclusive    bool
	ConditionSrc string
	program      *vm.Program
	Action       ActionFunc
}
