package cdcl

import "github.com/arrowsmith/cplsat/pkg/cnf"

// NoDecision is the sentinel decideA/decideB value meaning "this rule
// does not transitively depend on any decision" — used by the
// initial unit trail and returned when a conflict has no backjump
// target.
const NoDecision = -1

// Rule is one trail entry: a forced literal, whether it was a free
// decision or a propagated consequence, and the indices of the last
// two decision rules it transitively depends on. DecideA and DecideB
// satisfy DecideA > DecideB when both are not NoDecision, and
// rules[DecideA]/rules[DecideB] (when referenced) are themselves
// decisions.
type Rule struct {
	Literal cnf.Literal
	Decide  bool
	DecideA int
	DecideB int
}

func unitPropagate(l cnf.Literal, decideA, decideB int) Rule {
	return Rule{Literal: l, DecideA: decideA, DecideB: decideB}
}

func decisionRule(l cnf.Literal, idx int) Rule {
	return Rule{Literal: l, Decide: true, DecideA: idx, DecideB: NoDecision}
}
