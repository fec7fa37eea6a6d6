// Package cdcl implements the Conflict-Driven Clause-Learning decision
// procedure over an interned 3-CNF (pkg/cnf3): a trail of decisions
// and propagated consequences, a two-level implication index queried
// directly from cnf3.CNF3, and non-chronological backjumping guided
// by each trail entry's decision genealogy.
package cdcl

import (
	"math/rand"
	"sort"

	"github.com/hashicorp/go-hclog"
	"github.com/pkg/errors"

	"github.com/arrowsmith/cplsat/internal/diag"
	"github.com/arrowsmith/cplsat/pkg/cnf"
	"github.com/arrowsmith/cplsat/pkg/cnf3"
)

// Result is the outcome of Engine.CheckSat: Sat reports whether a
// model exists, and Model (when Sat) maps every active variable id —
// source-labeled and Tseytin auxiliary alike — to its truth value.
type Result struct {
	Sat   bool
	Model map[int]bool
}

// Engine owns one CDCL run's mutable state exclusively; it is built
// fresh per call and never shared across concurrent solves.
type Engine struct {
	input  *cnf3.CDCLInput
	rand   *rand.Rand
	logger hclog.Logger
	checks bool

	rules []Rule
	fixed map[cnf.Literal]int
	free  map[int]bool
}

// Option configures an Engine at construction time.
type Option func(*Engine)

// WithRandSource injects the decision-selection generator. Supplying
// a seeded source makes the engine's branching fully reproducible;
// the zero Engine otherwise seeds from a fixed default so tests never
// depend on process entropy by accident.
func WithRandSource(r *rand.Rand) Option {
	return func(e *Engine) { e.rand = r }
}

// WithLogger attaches a structured logger for trace-level visibility
// into decisions, backjumps, and conflicts that end the search;
// propagations are not logged. A nil logger (the
// default) is replaced with hclog.NewNullLogger().
func WithLogger(l hclog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithInvariantChecks enables the trail-integrity assertions of §5:
// fixed[rules[i].literal]==i, the literal's variable absent from
// free, |variables|==|free|+|fixed|, and every referenced decideA/
// decideB indexing a decision rule. Intended for test builds; a
// failed assertion raises diag.SolverInvariantError rather than
// silently producing a wrong answer.
func WithInvariantChecks(enabled bool) Option {
	return func(e *Engine) { e.checks = enabled }
}

// NewEngine builds a CDCL engine over input, ready for CheckSat.
func NewEngine(input *cnf3.CDCLInput, opts ...Option) *Engine {
	e := &Engine{
		input:  input,
		rand:   rand.New(rand.NewSource(1)),
		logger: hclog.NewNullLogger(),
		fixed:  map[cnf.Literal]int{},
		free:   map[int]bool{},
	}
	for v := range input.CNF3.Variables {
		e.free[v] = true
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// CheckSat runs the CDCL main loop to completion, returning SAT with
// a model over every active variable, or UNSAT.
func (e *Engine) CheckSat() (Result, error) {
	if err := e.initializeTrail(); err != nil {
		if isUnsat(err) {
			return Result{Sat: false}, nil
		}
		return Result{}, err
	}
	if len(e.rules) == 0 {
		if len(e.free) == 0 {
			return Result{Sat: true, Model: e.buildModel()}, nil
		}
		e.decide()
	}

	i := 0
	for i < len(e.rules) {
		if e.checks {
			if err := e.assertInvariants(); err != nil {
				return Result{}, err
			}
		}
		next, outcome, err := e.step(i)
		if err != nil {
			return Result{}, err
		}
		switch outcome {
		case stepUnsat:
			return Result{Sat: false}, nil
		case stepSat:
			return Result{Sat: true, Model: e.buildModel()}, nil
		}
		i = next
	}
	return Result{Sat: true, Model: e.buildModel()}, nil
}

type stepOutcome int

const (
	stepOngoing stepOutcome = iota
	stepSat
	stepUnsat
)

// step processes trail index i: it derives every literal implied by
// cur through the two-level index (binary clauses keyed on cur
// directly, ternary clauses keyed on cur paired with every earlier
// trail entry), then — if nothing new was appended and i is the last
// trail index — either declares SAT or makes a fresh decision. It
// returns the trail index CheckSat should resume at.
func (e *Engine) step(i int) (next int, outcome stepOutcome, err error) {
	cur := e.rules[i]
	appended := false

	for _, l := range e.input.CNF3.DoubleClauses[cur.Literal] {
		res, perr := e.addUnitPropagate(l, cur.DecideA, cur.DecideB)
		if perr != nil {
			return 0, stepOngoing, perr
		}
		switch res.outcome {
		case outcomeFail:
			return 0, stepUnsat, nil
		case outcomeBackjump:
			return res.resumeAt, stepOngoing, nil
		case outcomeAppended:
			appended = true
		}
	}

	for j := 0; j < i; j++ {
		other := e.rules[j]
		pair := cnf3.NewPairKey(cur.Literal, other.Literal)
		for _, l := range e.input.CNF3.TripleClauses[pair] {
			dA, dB := combineGenealogy(cur, other)
			res, perr := e.addUnitPropagate(l, dA, dB)
			if perr != nil {
				return 0, stepOngoing, perr
			}
			switch res.outcome {
			case outcomeFail:
				return 0, stepUnsat, nil
			case outcomeBackjump:
				return res.resumeAt, stepOngoing, nil
			case outcomeAppended:
				appended = true
			}
		}
	}

	if !appended && i == len(e.rules)-1 {
		if len(e.free) == 0 {
			return 0, stepSat, nil
		}
		e.decide()
	}
	return i + 1, stepOngoing, nil
}

// initializeTrail walks the initial unit clauses in order, appending
// each as a no-decision propagation; a literal contradicting one
// already fixed is an immediate, unconditional UNSAT (the spec's
// initialization has no backjump target to fall back to).
func (e *Engine) initializeTrail() error {
	for _, l := range e.input.InitialUnits {
		if _, ok := e.fixed[-l]; ok {
			return errUnsat
		}
		if _, ok := e.fixed[l]; ok {
			continue
		}
		e.push(unitPropagate(l, NoDecision, NoDecision))
	}
	return nil
}

type propagateOutcome int

const (
	outcomeNoop propagateOutcome = iota
	outcomeAppended
	outcomeFail
	outcomeBackjump
)

type propagateResult struct {
	outcome  propagateOutcome
	resumeAt int
}

// addUnitPropagate implements the contract of §4.6: assert l with
// genealogy (decideA, decideB), no-op if already fixed, append a new
// trail entry if its negation isn't fixed, or resolve a conflict by
// backjumping to the earliest decision whose removal invalidates the
// contradiction (or failing outright if no such decision exists).
func (e *Engine) addUnitPropagate(l cnf.Literal, decideA, decideB int) (propagateResult, error) {
	if _, ok := e.fixed[l]; ok {
		return propagateResult{outcome: outcomeNoop}, nil
	}
	if _, ok := e.fixed[-l]; !ok {
		e.push(unitPropagate(l, decideA, decideB))
		return propagateResult{outcome: outcomeAppended}, nil
	}

	lD := decideA
	if lD == NoDecision {
		e.logger.Trace("cdcl: conflict with no backjump target, unsat", "literal", int(l))
		return propagateResult{outcome: outcomeFail}, nil
	}

	m := e.fixed[-l]
	npR := e.rules[m]
	var other int
	if npR.DecideA == lD {
		other = npR.DecideB
	} else {
		other = npR.DecideA
	}
	slD := maxIdx(decideB, other)

	newStart := e.firstDecisionAfter(slD)
	if newStart < 0 {
		return propagateResult{}, diag.NewSolverInvariantError("conflict analysis found no decision after index %d", slD)
	}
	q := e.rules[lD].Literal

	e.popTo(newStart)
	e.push(unitPropagate(-q, slD, NoDecision))

	e.logger.Trace("cdcl: backjump", "to", newStart, "learned", int(-q))
	return propagateResult{outcome: outcomeBackjump, resumeAt: newStart}, nil
}

// combineGenealogy computes the (decideA, decideB) pair for a literal
// implied jointly by rules a and b via a ternary clause: the most
// recent decision either depends on, and the most recent OTHER
// decision among the four candidate ancestors — the largest of the
// four that isn't equal to that first one.
func combineGenealogy(a, b Rule) (int, int) {
	alpha := maxIdx(a.DecideA, b.DecideA)
	beta := NoDecision
	for _, cand := range []int{a.DecideA, a.DecideB, b.DecideA, b.DecideB} {
		if cand != alpha && cand > beta {
			beta = cand
		}
	}
	return alpha, beta
}

func maxIdx(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// firstDecisionAfter returns the smallest trail index strictly
// greater than after at which the rule is a decision, or -1 if none
// exists.
func (e *Engine) firstDecisionAfter(after int) int {
	for idx := after + 1; idx < len(e.rules); idx++ {
		if e.rules[idx].Decide {
			return idx
		}
	}
	return -1
}

// decide picks a free variable uniformly at random and asserts it
// true, recording it as its own (self-dependent) decision.
func (e *Engine) decide() {
	vars := make([]int, 0, len(e.free))
	for v := range e.free {
		vars = append(vars, v)
	}
	sort.Ints(vars)
	p := vars[e.rand.Intn(len(vars))]
	idx := len(e.rules)
	e.push(decisionRule(cnf.Literal(p), idx))
	e.logger.Trace("cdcl: decide", "variable", p, "index", idx)
}

func (e *Engine) push(r Rule) {
	idx := len(e.rules)
	e.rules = append(e.rules, r)
	e.fixed[r.Literal] = idx
	delete(e.free, r.Literal.Var())
}

// popTo discards every trail entry with index >= from, restoring
// fixed and free for each.
func (e *Engine) popTo(from int) {
	for idx := len(e.rules) - 1; idx >= from; idx-- {
		r := e.rules[idx]
		delete(e.fixed, r.Literal)
		e.free[r.Literal.Var()] = true
	}
	e.rules = e.rules[:from]
}

func (e *Engine) buildModel() map[int]bool {
	model := make(map[int]bool, len(e.input.CNF3.Variables))
	for _, r := range e.rules {
		model[r.Literal.Var()] = r.Literal.Positive()
	}
	return model
}

// assertInvariants checks the §5 trail-integrity conditions: every
// fixed literal maps back to its own index, its variable is absent
// from free, the variable count splits exactly between free and
// fixed, and any referenced decideA/decideB indexes a decision.
func (e *Engine) assertInvariants() error {
	if len(e.input.CNF3.Variables) != len(e.free)+len(e.fixed) {
		return diag.NewSolverInvariantError("variable count %d != free %d + fixed %d",
			len(e.input.CNF3.Variables), len(e.free), len(e.fixed))
	}
	for idx, r := range e.rules {
		if got := e.fixed[r.Literal]; got != idx {
			return diag.NewSolverInvariantError("fixed[%d] = %d, want %d", int(r.Literal), got, idx)
		}
		if e.free[r.Literal.Var()] {
			return diag.NewSolverInvariantError("variable %d is both fixed and free", r.Literal.Var())
		}
		for _, d := range []int{r.DecideA, r.DecideB} {
			if d == NoDecision {
				continue
			}
			if d < 0 || d >= len(e.rules) || !e.rules[d].Decide {
				return diag.NewSolverInvariantError("rule %d references non-decision index %d", idx, d)
			}
		}
		if r.DecideA != NoDecision && r.DecideB != NoDecision && r.DecideA <= r.DecideB {
			return diag.NewSolverInvariantError("rule %d has decideA %d <= decideB %d", idx, r.DecideA, r.DecideB)
		}
	}
	return nil
}

// errUnsat is a private sentinel distinguishing "no satisfying
// assignment" from a genuine error inside initializeTrail.
var errUnsat = errors.New("cdcl: unsat by initialization")

func isUnsat(err error) bool { return err == errUnsat }
