package theory

import (
	"github.com/hashicorp/go-hclog"

	"github.com/arrowsmith/cplsat/internal/diag"
	"github.com/arrowsmith/cplsat/pkg/cdcl"
	"github.com/arrowsmith/cplsat/pkg/cnf"
	"github.com/arrowsmith/cplsat/pkg/cnf3"
	"github.com/arrowsmith/cplsat/pkg/cpl"
	"github.com/arrowsmith/cplsat/pkg/expr"
	"github.com/arrowsmith/cplsat/pkg/tseytin"
)

// BooleanConstraint wraps a lowered propositional expression so it
// can travel through the theory.Problem.Add interface opaquely.
type BooleanConstraint struct {
	Expr *expr.Expr
}

// BooleanTheory is the SAT core's own Theory provider: it reads
// already-parsed CPL terms (cpl.Term) into BooleanConstraints.
type BooleanTheory struct {
	// Assignments resolves any (? v) lookups encountered while
	// lowering a term; nil if the source has none.
	Assignments map[string]bool
	Logger      hclog.Logger
}

// Read lowers t (which must be a cpl.Term) into a BooleanConstraint.
// ok is false only when term is not a cpl.Term at all; a malformed
// term is reported as an error rather than a "not mine" rejection,
// since this is the only theory these terms could belong to.
func (bt BooleanTheory) Read(term interface{}) (interface{}, bool, error) {
	t, ok := term.(cpl.Term)
	if !ok {
		return nil, false, nil
	}
	e, err := cpl.Lower(t, bt.Assignments)
	if err != nil {
		return nil, true, err
	}
	return &BooleanConstraint{Expr: e}, true, nil
}

// CreateEmptyProblem builds an empty BooleanProblem backed by a fresh
// variable pool.
func (bt BooleanTheory) CreateEmptyProblem() Problem {
	return &BooleanProblem{pool: cnf.NewVarPool(), logger: bt.Logger}
}

// BooleanProblem is the Boolean theory's Problem: it conjoins every
// added constraint, lowers the conjunction via Tseytin, and decides
// satisfiability with the CDCL engine. It is the theory-interface
// front door onto the same pipeline pkg/compile exposes directly.
type BooleanProblem struct {
	pool        *cnf.VarPool
	logger      hclog.Logger
	constraints []*expr.Expr
	model       map[int]bool
	labels      map[int]string
}

// Add appends c (a *BooleanConstraint produced by BooleanTheory.Read)
// to the problem.
func (p *BooleanProblem) Add(constraint interface{}) error {
	c, ok := constraint.(*BooleanConstraint)
	if !ok {
		return diag.NewShapeError("BooleanProblem.Add: expected a *BooleanConstraint, got %T", constraint)
	}
	p.constraints = append(p.constraints, c.Expr)
	return nil
}

// Check conjoins every added constraint, lowers it to 3-CNF via
// Tseytin, and decides satisfiability via CDCL.
func (p *BooleanProblem) Check() (bool, error) {
	if len(p.constraints) == 0 {
		return true, nil
	}
	conj, err := expr.NewAnd(p.constraints)
	if err != nil {
		return false, err
	}
	clauses, err := tseytin.Lower(conj, p.pool)
	if err != nil {
		return false, err
	}
	p.labels = p.pool.Labels()
	input, err := cnf3.ConvertClausesToCDCLInput(clauses, p.labels)
	if err != nil {
		return false, err
	}
	eng := cdcl.NewEngine(input, cdcl.WithLogger(p.logger))
	result, err := eng.CheckSat()
	if err != nil {
		return false, err
	}
	p.model = result.Model
	return result.Sat, nil
}

// Assignment returns the satisfying valuation from the last
// successful Check, keyed by source label. Tseytin auxiliary
// variables (which have no entry in labels) are omitted.
func (p *BooleanProblem) Assignment() map[string]interface{} {
	out := make(map[string]interface{}, len(p.labels))
	for id, label := range p.labels {
		if v, ok := p.model[id]; ok {
			out[label] = v
		}
	}
	return out
}
