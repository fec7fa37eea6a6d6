package expr

import "github.com/arrowsmith/cplsat/internal/diag"

// CDNNF eliminates Imply and Iff from e, rewriting P->Q as ¬P∨Q and a
// chained Iff P<->Q1<->...<->Qk via pairwise unfolding
// unfoldIff(L,R) = (L->R) ^ (R->L) of each consecutive pair, nested to
// the right as (P<->Q1) ^ (Q1<->...<->Qk). The result contains only
// Variable, Not, And, and Or nodes; And/Or keep their source arity
// (not yet normalized to binary), while each unfolded Iff is binary.
func CDNNF(e *Expr) (*Expr, error) {
	switch e.Kind {
	case KindVariable:
		return e.Clone(), nil
	case KindNot:
		x, err := CDNNF(e.Args[0])
		if err != nil {
			return nil, err
		}
		return NewNot(x), nil
	case KindAnd:
		args, err := cdnnfAll(e.Args)
		if err != nil {
			return nil, err
		}
		return mustVariadic(NewAnd(args))
	case KindOr:
		args, err := cdnnfAll(e.Args)
		if err != nil {
			return nil, err
		}
		return mustVariadic(NewOr(args))
	case KindImply:
		l, err := CDNNF(e.Args[0])
		if err != nil {
			return nil, err
		}
		r, err := CDNNF(e.Args[1])
		if err != nil {
			return nil, err
		}
		return mustVariadic(NewOr([]*Expr{NewNot(l), r}))
	case KindIff:
		args, err := cdnnfAll(e.Args)
		if err != nil {
			return nil, err
		}
		return unfoldIffChain(args)
	}
	return nil, diag.NewShapeError("CDNNF: unknown expression kind %v", e.Kind)
}

func cdnnfAll(args []*Expr) ([]*Expr, error) {
	out := make([]*Expr, len(args))
	for i, a := range args {
		x, err := CDNNF(a)
		if err != nil {
			return nil, err
		}
		out[i] = x
	}
	return out, nil
}

func unfoldIffChain(args []*Expr) (*Expr, error) {
	if len(args) < 2 {
		return nil, diag.NewShapeError("iff requires at least two operands, got %d", len(args))
	}
	head := unfoldIffPair(args[0], args[1])
	if len(args) == 2 {
		return head, nil
	}
	tail, err := unfoldIffChain(args[1:])
	if err != nil {
		return nil, err
	}
	return mustVariadic(NewAnd([]*Expr{head, tail}))
}

// unfoldIffPair builds (¬L∨R) ∧ (¬R∨L), the CDNNF-reduced form of
// L<->R, directly (rather than via Imply nodes that would themselves
// need elimination).
func unfoldIffPair(l, r *Expr) *Expr {
	lr, _ := NewOr([]*Expr{NewNot(l.Clone()), r.Clone()})
	rl, _ := NewOr([]*Expr{NewNot(r.Clone()), l.Clone()})
	and, _ := NewAnd([]*Expr{lr, rl})
	return and
}

func mustVariadic(e *Expr, err error) (*Expr, error) { return e, err }

// NNF pushes negations in a CDNNF-reduced expression down to the
// variable leaves via De Morgan's laws, eliminating double negations
// along the way.
func NNF(e *Expr) (*Expr, error) {
	return nnfPush(e, false)
}

func nnfPush(e *Expr, neg bool) (*Expr, error) {
	switch e.Kind {
	case KindVariable:
		if neg {
			return NewNot(e.Clone()), nil
		}
		return e.Clone(), nil
	case KindNot:
		return nnfPush(e.Args[0], !neg)
	case KindAnd:
		return nnfJunction(e.Args, neg, true)
	case KindOr:
		return nnfJunction(e.Args, neg, false)
	default:
		return nil, diag.NewShapeError("NNF: expected a CDNNF-reduced expression, got %v", e.Kind)
	}
}

func nnfJunction(args []*Expr, neg bool, wasAnd bool) (*Expr, error) {
	children := make([]*Expr, len(args))
	for i, a := range args {
		x, err := nnfPush(a, neg)
		if err != nil {
			return nil, err
		}
		children[i] = x
	}
	isAnd := wasAnd
	if neg {
		isAnd = !wasAnd
	}
	if isAnd {
		return mustVariadic(NewAnd(children))
	}
	return mustVariadic(NewOr(children))
}
