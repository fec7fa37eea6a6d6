// Package compile wires the whole pipeline of §6's Compile API
// together: CPL source text in, clause lists out, via either normal
// form, and from there into the DP, DPLL, or CDCL decision
// procedures. It imports every stage of the pipeline so callers such
// as the CLI driver don't have to; theory.BooleanProblem wires the
// Tseytin and CDCL stages itself.
package compile

import (
	"github.com/hashicorp/go-hclog"

	"github.com/arrowsmith/cplsat/pkg/cdcl"
	"github.com/arrowsmith/cplsat/pkg/cnf"
	"github.com/arrowsmith/cplsat/pkg/cnf3"
	"github.com/arrowsmith/cplsat/pkg/cpl"
	"github.com/arrowsmith/cplsat/pkg/expr"
	"github.com/arrowsmith/cplsat/pkg/tseytin"
)

// CompileCplToCnf parses, expands, and lowers source to a clause list
// over a fresh variable pool, using the Tseytin 3-CNF lowering when
// tseytinLowering is set and the distributive (products) lowering
// otherwise. assignments resolves any (? v) lookups; it may be nil.
func CompileCplToCnf(source string, assignments map[string]bool, tseytinLowering bool) ([]cnf.Clause, map[int]string, error) {
	terms, err := cpl.Parse(source)
	if err != nil {
		return nil, nil, err
	}
	prog, err := cpl.NewProgram(terms)
	if err != nil {
		return nil, nil, err
	}
	expanded, err := cpl.Expand(prog)
	if err != nil {
		return nil, nil, err
	}
	e, err := cpl.Lower(expanded, assignments)
	if err != nil {
		return nil, nil, err
	}

	pool := cnf.NewVarPool()
	var clauses []cnf.Clause
	if tseytinLowering {
		clauses, err = tseytin.Lower(e, pool)
	} else {
		clauses, err = distributiveLower(e, pool)
	}
	if err != nil {
		return nil, nil, err
	}
	return clauses, pool.Labels(), nil
}

func distributiveLower(e *expr.Expr, pool *cnf.VarPool) ([]cnf.Clause, error) {
	reduced, err := expr.CDNNF(e)
	if err != nil {
		return nil, err
	}
	nnf, err := expr.NNF(reduced)
	if err != nil {
		return nil, err
	}
	return cnf.Products(nnf, pool)
}

// ConvertClausesToCNF wraps a compiled clause list as a cnf.CNF,
// discarding tautologies and computing the active-variable set.
func ConvertClausesToCNF(clauses []cnf.Clause, labels map[int]string) cnf.CNF {
	return cnf.NewCNF(clauses, labels)
}

// ConvertClausesToCDCLInput wraps a compiled (Tseytin) clause list as
// a cnf3.CDCLInput, or reports a DomainError if it isn't a 3-CNF.
func ConvertClausesToCDCLInput(clauses []cnf.Clause, labels map[int]string) (*cnf3.CDCLInput, error) {
	return cnf3.ConvertClausesToCDCLInput(clauses, labels)
}

// Pipeline bundles the solver-facing entry points with a shared
// logger, so a single construction gives every solve the same
// structured tracing.
type Pipeline struct {
	Logger hclog.Logger
}

// NewPipeline builds a Pipeline; a nil logger defaults to
// hclog.NewNullLogger().
func NewPipeline(logger hclog.Logger) *Pipeline {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Pipeline{Logger: logger}
}

// SolveByDP compiles source via the distributive lowering and decides
// satisfiability by the Davis-Putnam procedure. No model is produced.
func (p *Pipeline) SolveByDP(source string, assignments map[string]bool) (bool, error) {
	clauses, labels, err := CompileCplToCnf(source, assignments, false)
	if err != nil {
		return false, err
	}
	f := ConvertClausesToCNF(clauses, labels)
	return cnf.CheckSatByDP(f), nil
}

// SolveByDPLL compiles source via the distributive lowering and
// decides satisfiability by DPLL, returning a model on success.
func (p *Pipeline) SolveByDPLL(source string, assignments map[string]bool) (cnf.DPLLResult, error) {
	clauses, labels, err := CompileCplToCnf(source, assignments, false)
	if err != nil {
		return cnf.DPLLResult{}, err
	}
	f := ConvertClausesToCNF(clauses, labels)
	return cnf.CheckSatByDPLL(f), nil
}

// SolveByCDCL compiles source via the Tseytin lowering and decides
// satisfiability by CDCL, returning a model over source variables and
// Tseytin auxiliaries alike on success.
func (p *Pipeline) SolveByCDCL(source string, assignments map[string]bool, opts ...cdcl.Option) (cdcl.Result, error) {
	clauses, labels, err := CompileCplToCnf(source, assignments, true)
	if err != nil {
		return cdcl.Result{}, err
	}
	input, err := ConvertClausesToCDCLInput(clauses, labels)
	if err != nil {
		return cdcl.Result{}, err
	}
	allOpts := append([]cdcl.Option{cdcl.WithLogger(p.Logger)}, opts...)
	eng := cdcl.NewEngine(input, allOpts...)
	return eng.CheckSat()
}
