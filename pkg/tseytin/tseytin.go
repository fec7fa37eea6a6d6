// Package tseytin lowers a propositional expression to a 3-CNF clause
// list via the Tseytin transformation: double-negation removal and
// BONF (binary, one-or-more-normal-form) first flatten the tree to
// binary operators, then a single traversal allocates one auxiliary
// variable per non-literal subformula and emits the standard
// equivalence templates, finishing with a unit clause pinning the
// whole formula true. Unlike the distributive (products) lowering,
// this pass is linear in the size of the input and every clause it
// emits has at most three literals.
package tseytin

import (
	"github.com/arrowsmith/cplsat/pkg/cnf"
	"github.com/arrowsmith/cplsat/pkg/expr"
)

// Lower transforms e into a 3-CNF clause list over pool's variable
// ids, returning the clauses that pin nTop — the auxiliary (or bare
// literal) naming the whole formula — to true.
func Lower(e *expr.Expr, pool *cnf.VarPool) ([]cnf.Clause, error) {
	dn := expr.RemoveDoubleNegation(e)
	bonf, err := expr.BONF(dn)
	if err != nil {
		return nil, err
	}
	var clauses []cnf.Clause
	top, err := visit(bonf, pool, &clauses)
	if err != nil {
		return nil, err
	}
	unit, _ := cnf.NewClause([]cnf.Literal{top})
	clauses = append(clauses, unit)
	return clauses, nil
}

// visit returns the literal naming e — its own literal when e is a
// literal subformula (a variable or the negation of one), or a fresh
// auxiliary literal for any compound subformula, appending the
// equivalence clauses for that auxiliary to *clauses as a side
// effect.
func visit(e *expr.Expr, pool *cnf.VarPool, clauses *[]cnf.Clause) (cnf.Literal, error) {
	if lit, ok := literalOf(e, pool); ok {
		return lit, nil
	}
	switch e.Kind {
	case expr.KindNot:
		q, err := visit(e.Args[0], pool, clauses)
		if err != nil {
			return 0, err
		}
		n := cnf.Literal(pool.NewAux())
		emit(clauses, n, q)
		emit(clauses, -n, -q)
		return n, nil
	case expr.KindAnd:
		q, r, err := visitPair(e, pool, clauses)
		if err != nil {
			return 0, err
		}
		n := cnf.Literal(pool.NewAux())
		emit(clauses, n, -q, -r)
		emit(clauses, -n, q)
		emit(clauses, -n, r)
		return n, nil
	case expr.KindOr:
		q, r, err := visitPair(e, pool, clauses)
		if err != nil {
			return 0, err
		}
		n := cnf.Literal(pool.NewAux())
		emit(clauses, -n, q, r)
		emit(clauses, n, -q)
		emit(clauses, n, -r)
		return n, nil
	case expr.KindImply:
		q, r, err := visitPair(e, pool, clauses)
		if err != nil {
			return 0, err
		}
		n := cnf.Literal(pool.NewAux())
		emit(clauses, -n, -q, r)
		emit(clauses, n, -r)
		emit(clauses, n, q)
		return n, nil
	case expr.KindIff:
		q, r, err := visitPair(e, pool, clauses)
		if err != nil {
			return 0, err
		}
		n := cnf.Literal(pool.NewAux())
		emit(clauses, n, q, r)
		emit(clauses, n, -q, -r)
		emit(clauses, -n, q, -r)
		emit(clauses, -n, -q, r)
		return n, nil
	default:
		return 0, nil
	}
}

func visitPair(e *expr.Expr, pool *cnf.VarPool, clauses *[]cnf.Clause) (cnf.Literal, cnf.Literal, error) {
	q, err := visit(e.Args[0], pool, clauses)
	if err != nil {
		return 0, 0, err
	}
	r, err := visit(e.Args[1], pool, clauses)
	if err != nil {
		return 0, 0, err
	}
	return q, r, nil
}

func emit(clauses *[]cnf.Clause, lits ...cnf.Literal) {
	c, tautology := cnf.NewClause(lits)
	if tautology {
		return
	}
	*clauses = append(*clauses, c)
}

// literalOf reports the literal naming e when e is itself a literal
// subformula: a bare variable, or a negation of one.
func literalOf(e *expr.Expr, pool *cnf.VarPool) (cnf.Literal, bool) {
	switch {
	case e.Kind == expr.KindVariable:
		return cnf.Literal(varID(e, pool)), true
	case e.Kind == expr.KindNot && e.Args[0].Kind == expr.KindVariable:
		return -cnf.Literal(varID(e.Args[0], pool)), true
	default:
		return 0, false
	}
}

func varID(e *expr.Expr, pool *cnf.VarPool) int {
	if e.IsAux() {
		return e.AuxID
	}
	return pool.Intern(e.Label)
}
