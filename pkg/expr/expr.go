// Package expr defines the propositional expression tree produced by
// lowering a CPL term, and the transformations that prepare it for
// clausal form: CDNNF/NNF for the distributive pipeline, and
// double-negation removal plus BONF for the Tseytin pipeline.
package expr

import (
	"fmt"
	"strings"

	"github.com/arrowsmith/cplsat/internal/diag"
)

// Kind discriminates the Expr tagged sum.
type Kind int

const (
	KindVariable Kind = iota
	KindNot
	KindAnd
	KindOr
	KindImply
	KindIff
)

func (k Kind) String() string {
	switch k {
	case KindVariable:
		return "Variable"
	case KindNot:
		return "Not"
	case KindAnd:
		return "And"
	case KindOr:
		return "Or"
	case KindImply:
		return "Imply"
	case KindIff:
		return "Iff"
	default:
		return "Unknown"
	}
}

// Expr is a propositional expression: a variable leaf, or an
// operator over an ordered list of argument expressions. Variables
// carry either a source Label (ordinary CPL variables) or a positive
// AuxID (solver-assigned Tseytin auxiliaries); exactly one of the two
// is set.
type Expr struct {
	Kind  Kind
	Label string
	AuxID int
	Args  []*Expr
}

// NewVar builds a source-labeled variable leaf.
func NewVar(label string) *Expr {
	return &Expr{Kind: KindVariable, Label: label}
}

// NewAuxVar builds a solver-assigned auxiliary variable leaf. id must
// be a positive integer distinct from any interned source label id.
func NewAuxVar(id int) *Expr {
	return &Expr{Kind: KindVariable, AuxID: id}
}

// IsAux reports whether this variable leaf is a Tseytin auxiliary
// rather than a source-labeled variable.
func (e *Expr) IsAux() bool {
	return e.Kind == KindVariable && e.AuxID != 0
}

// NewNot builds a negation. Arity is fixed at one by the Go
// signature, matching the data model's Not = 1 invariant.
func NewNot(x *Expr) *Expr {
	return &Expr{Kind: KindNot, Args: []*Expr{x}}
}

// NewImply builds an implication. Arity is fixed at two by the Go
// signature, matching the data model's Imply = 2 invariant.
func NewImply(l, r *Expr) *Expr {
	return &Expr{Kind: KindImply, Args: []*Expr{l, r}}
}

// NewAnd builds a conjunction over one or more arguments. BONF later
// unwraps the arity-1 case and left-associates arity >2.
func NewAnd(args []*Expr) (*Expr, error) {
	return newVariadic(KindAnd, args)
}

// NewOr builds a disjunction over one or more arguments.
func NewOr(args []*Expr) (*Expr, error) {
	return newVariadic(KindOr, args)
}

// NewIff builds a chained biconditional over one or more arguments.
func NewIff(args []*Expr) (*Expr, error) {
	return newVariadic(KindIff, args)
}

func newVariadic(k Kind, args []*Expr) (*Expr, error) {
	if len(args) == 0 {
		return nil, diag.NewShapeError("%s requires at least one operand", k)
	}
	return &Expr{Kind: k, Args: append([]*Expr(nil), args...)}, nil
}

// String renders the expression using the core CPL spellings.
func (e *Expr) String() string {
	if e == nil {
		return "<nil>"
	}
	switch e.Kind {
	case KindVariable:
		if e.IsAux() {
			return fmt.Sprintf("n%d", e.AuxID)
		}
		return e.Label
	case KindNot:
		return fmt.Sprintf("(~ %s)", e.Args[0])
	case KindImply:
		return fmt.Sprintf("(%s -> %s)", e.Args[0], e.Args[1])
	default:
		var op string
		switch e.Kind {
		case KindAnd:
			op = "/\\"
		case KindOr:
			op = "\\/"
		case KindIff:
			op = "<->"
		}
		parts := make([]string, len(e.Args))
		for i, a := range e.Args {
			parts[i] = a.String()
		}
		return "(" + strings.Join(parts, " "+op+" ") + ")"
	}
}

// Clone deep-copies the expression tree.
func (e *Expr) Clone() *Expr {
	if e == nil {
		return nil
	}
	c := &Expr{Kind: e.Kind, Label: e.Label, AuxID: e.AuxID}
	if len(e.Args) > 0 {
		c.Args = make([]*Expr, len(e.Args))
		for i, a := range e.Args {
			c.Args[i] = a.Clone()
		}
	}
	return c
}
