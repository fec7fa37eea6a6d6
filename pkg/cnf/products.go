package cnf

import (
	"github.com/arrowsmith/cplsat/internal/diag"
	"github.com/arrowsmith/cplsat/pkg/expr"
)

// Products lowers an NNF-reduced expression tree to CNF by
// distribution: And concatenates its children's clause lists; Or
// takes the Cartesian product of its children's clause lists,
// joining each combination by disjunction; a variable or a negated
// variable is a unit clause list. This may produce exponentially
// many clauses in the size of the input.
func Products(e *expr.Expr, pool *VarPool) ([]Clause, error) {
	switch e.Kind {
	case expr.KindVariable:
		return []Clause{{Literals: []Literal{Literal(varID(e, pool))}}}, nil
	case expr.KindNot:
		if e.Args[0].Kind != expr.KindVariable {
			return nil, diag.NewShapeError("products: expected NNF input, found Not over a %v", e.Args[0].Kind)
		}
		return []Clause{{Literals: []Literal{-Literal(varID(e.Args[0], pool))}}}, nil
	case expr.KindAnd:
		var all []Clause
		for _, a := range e.Args {
			sub, err := Products(a, pool)
			if err != nil {
				return nil, err
			}
			all = append(all, sub...)
		}
		return all, nil
	case expr.KindOr:
		acc, err := Products(e.Args[0], pool)
		if err != nil {
			return nil, err
		}
		for _, a := range e.Args[1:] {
			sub, err := Products(a, pool)
			if err != nil {
				return nil, err
			}
			acc = crossJoin(acc, sub)
		}
		return acc, nil
	default:
		return nil, diag.NewShapeError("products: expected NNF input (Variable/Not/And/Or), found %v", e.Kind)
	}
}

// varID returns the CNF variable id for a Variable leaf: the
// solver-assigned id directly for a Tseytin auxiliary, or the
// pool-interned id for a source-labeled variable.
func varID(e *expr.Expr, pool *VarPool) int {
	if e.IsAux() {
		return e.AuxID
	}
	return pool.Intern(e.Label)
}

func crossJoin(left, right []Clause) []Clause {
	out := make([]Clause, 0, len(left)*len(right))
	for _, l := range left {
		for _, r := range right {
			merged := append(append([]Literal(nil), l.Literals...), r.Literals...)
			c, tautology := NewClause(merged)
			if tautology {
				continue
			}
			out = append(out, c)
		}
	}
	return out
}
