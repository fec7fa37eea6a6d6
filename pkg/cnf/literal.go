// Package cnf implements the clause data model shared by the DP and
// DPLL decision procedures and the distributive (products) lowering
// from a propositional expression tree.
package cnf

import (
	"sort"
	"strconv"
	"strings"
)

// Literal is a signed, non-zero variable reference: |l| is the
// variable id, and l < 0 denotes negation.
type Literal int

// Var returns the unsigned variable id underlying l.
func (l Literal) Var() int {
	if l < 0 {
		return int(-l)
	}
	return int(l)
}

// Negate returns the complementary literal.
func (l Literal) Negate() Literal { return -l }

// Positive reports whether l is an unnegated reference.
func (l Literal) Positive() bool { return l > 0 }

func (l Literal) String() string {
	return strconv.Itoa(int(l))
}

// Clause is a duplicate-free set of literals. NewClause discards
// duplicates and reports tautologies (a variable occurring both
// positively and negatively) so the caller can drop them.
type Clause struct {
	Literals []Literal
}

// NewClause builds a deduplicated clause from lits, returning
// (clause, false) normally or (zero-value, true) if lits form a
// tautology.
func NewClause(lits []Literal) (Clause, bool) {
	seen := map[Literal]bool{}
	var out []Literal
	for _, l := range lits {
		if seen[l] {
			continue
		}
		seen[l] = true
		out = append(out, l)
	}
	for _, l := range out {
		if seen[l.Negate()] {
			return Clause{}, true
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return Clause{Literals: out}, false
}

// IsTriviallyTrue reports whether c contains both a literal and its
// negation.
func (c Clause) IsTriviallyTrue() bool {
	seen := map[Literal]bool{}
	for _, l := range c.Literals {
		seen[l] = true
	}
	for _, l := range c.Literals {
		if seen[l.Negate()] {
			return true
		}
	}
	return false
}

// Contains reports whether l appears in c.
func (c Clause) Contains(l Literal) bool {
	for _, x := range c.Literals {
		if x == l {
			return true
		}
	}
	return false
}

// Subset reports whether every literal of c also appears in other —
// the subsumption test used by DP preprocessing (c subsumes other
// when c is a subset of it).
func (c Clause) Subset(other Clause) bool {
	for _, l := range c.Literals {
		if !other.Contains(l) {
			return false
		}
	}
	return true
}

// Clone deep-copies the clause's literal slice.
func (c Clause) Clone() Clause {
	out := make([]Literal, len(c.Literals))
	copy(out, c.Literals)
	return Clause{Literals: out}
}

func (c Clause) String() string {
	parts := make([]string, len(c.Literals))
	for i, l := range c.Literals {
		parts[i] = l.String()
	}
	return "{" + strings.Join(parts, ",") + "}"
}

// tryResolution returns the resolvent of c1 and c2 on variable v:
// (c1 ∪ c2) \ {v,¬v}, when exactly one clause contains +v and the
// other contains -v and the resolvent is not a tautology. Otherwise
// it returns (zero, false).
func tryResolution(c1, c2 Clause, v int) (Clause, bool) {
	pos, neg := Literal(v), Literal(-v)
	c1Pos, c1Neg := c1.Contains(pos), c1.Contains(neg)
	c2Pos, c2Neg := c2.Contains(pos), c2.Contains(neg)
	if !((c1Pos && c2Neg) || (c1Neg && c2Pos)) {
		return Clause{}, false
	}
	var merged []Literal
	for _, l := range c1.Literals {
		if l != pos && l != neg {
			merged = append(merged, l)
		}
	}
	for _, l := range c2.Literals {
		if l != pos && l != neg {
			merged = append(merged, l)
		}
	}
	resolvent, tautology := NewClause(merged)
	if tautology {
		return Clause{}, false
	}
	return resolvent, true
}
