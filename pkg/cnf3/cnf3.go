// Package cnf3 implements the interned, two-level-indexed 3-CNF
// representation the CDCL engine runs over: binary clauses are keyed
// by the single literal they imply from, and ternary clauses by the
// unordered pair of literals that must both be falsified before the
// third is implied. Unit clauses are not representable in either
// index; they are carried alongside as the engine's initial trail.
package cnf3

import (
	"sort"
	"strconv"
	"strings"

	"github.com/arrowsmith/cplsat/internal/diag"
	"github.com/arrowsmith/cplsat/pkg/cnf"
)

// PairKey is an order-insensitive key for a pair of distinct-variable
// literals, used to index ternary clauses. Two literals l1, l2 with
// |l1| != |l2| always normalize to the same key regardless of the
// order they're supplied in.
type PairKey struct {
	A, B cnf.Literal
}

// NewPairKey builds the canonical key for the unordered pair (a, b).
// The design note's original hash (q*q+p, |p|<|q|) is a hand-rolled
// bucket hash for a language without native structural map keys; Go's
// comparable structs give the same order-insensitivity with exact
// equality for free, so PairKey is used directly as a map key instead
// of replicating that hash (see DESIGN.md).
func NewPairKey(a, b cnf.Literal) PairKey {
	if abs(a) > abs(b) {
		a, b = b, a
	}
	return PairKey{A: a, B: b}
}

func abs(l cnf.Literal) cnf.Literal {
	if l < 0 {
		return -l
	}
	return l
}

// CNF3 is the interned 3-CNF: active variables, a literal-keyed index
// of binary clauses, and a pair-keyed index of ternary clauses, plus
// id-to-source-label metadata.
type CNF3 struct {
	Variables     map[int]bool
	DoubleClauses map[cnf.Literal][]cnf.Literal
	TripleClauses map[PairKey][]cnf.Literal
	Labels        map[int]string
}

// CDCLInput bundles a CNF3 with the unit clauses that cannot live in
// either index: the trail the CDCL engine starts from before any
// decision is made.
type CDCLInput struct {
	CNF3         *CNF3
	InitialUnits []cnf.Literal
}

// ConvertClausesToCDCLInput builds a CDCLInput from a clause list that
// must already be a 3-CNF (every clause has 1, 2, or 3 literals after
// deduplication); a clause outside that range is a DomainError. Unit
// clauses become InitialUnits; binary and ternary clauses populate
// CNF3's two indices, each entry recorded from every literal
// direction the main CDCL loop will query it from.
func ConvertClausesToCDCLInput(clauses []cnf.Clause, labels map[int]string) (*CDCLInput, error) {
	c3 := &CNF3{
		Variables:     map[int]bool{},
		DoubleClauses: map[cnf.Literal][]cnf.Literal{},
		TripleClauses: map[PairKey][]cnf.Literal{},
		Labels:        labels,
	}
	var units []cnf.Literal

	for _, c := range clauses {
		for _, l := range c.Literals {
			c3.Variables[l.Var()] = true
		}
		switch len(c.Literals) {
		case 1:
			units = append(units, c.Literals[0])
		case 2:
			p, q := c.Literals[0], c.Literals[1]
			c3.DoubleClauses[-p] = append(c3.DoubleClauses[-p], q)
			c3.DoubleClauses[-q] = append(c3.DoubleClauses[-q], p)
		case 3:
			p, q, r := c.Literals[0], c.Literals[1], c.Literals[2]
			c3.TripleClauses[NewPairKey(-p, -q)] = append(c3.TripleClauses[NewPairKey(-p, -q)], r)
			c3.TripleClauses[NewPairKey(-p, -r)] = append(c3.TripleClauses[NewPairKey(-p, -r)], q)
			c3.TripleClauses[NewPairKey(-q, -r)] = append(c3.TripleClauses[NewPairKey(-q, -r)], p)
		default:
			return nil, diag.NewDomainError("clause %s has %d literals, not a 1-3 literal 3-CNF clause", c, len(c.Literals))
		}
	}
	return &CDCLInput{CNF3: c3, InitialUnits: units}, nil
}

// ConvertCDCLInputToCNF reconstructs the ordinary clause set a
// CDCLInput was built from. Because each binary clause is recorded
// from both literal directions and each ternary clause from all three
// pair directions, the reconstruction deduplicates by canonical
// (sorted) literal sequence before returning — the result is the same
// set of clauses as the input to ConvertClausesToCDCLInput, though not
// necessarily in the same order.
func ConvertCDCLInputToCNF(in *CDCLInput) cnf.CNF {
	seen := map[string]cnf.Clause{}
	add := func(lits []cnf.Literal) {
		c, tautology := cnf.NewClause(lits)
		if tautology {
			return
		}
		seen[clauseKey(c)] = c
	}

	for _, l := range in.InitialUnits {
		add([]cnf.Literal{l})
	}
	for negP, qs := range in.CNF3.DoubleClauses {
		for _, q := range qs {
			add([]cnf.Literal{-negP, q})
		}
	}
	for pair, rs := range in.CNF3.TripleClauses {
		for _, r := range rs {
			add([]cnf.Literal{-pair.A, -pair.B, r})
		}
	}

	clauses := make([]cnf.Clause, 0, len(seen))
	for _, c := range seen {
		clauses = append(clauses, c)
	}
	return cnf.NewCNF(clauses, in.CNF3.Labels)
}

func clauseKey(c cnf.Clause) string {
	lits := append([]cnf.Literal(nil), c.Literals...)
	sort.Slice(lits, func(i, j int) bool { return lits[i] < lits[j] })
	parts := make([]string, len(lits))
	for i, l := range lits {
		parts[i] = strconv.Itoa(int(l))
	}
	return strings.Join(parts, ",")
}
