package expr

import "github.com/arrowsmith/cplsat/internal/diag"

// RemoveDoubleNegation collapses runs of Not into their parity,
// leaving at most a single Not above any non-Not node.
func RemoveDoubleNegation(e *Expr) *Expr {
	if e.Kind == KindNot {
		return collapseNot(e, false)
	}
	args := make([]*Expr, len(e.Args))
	for i, a := range e.Args {
		args[i] = RemoveDoubleNegation(a)
	}
	return &Expr{Kind: e.Kind, Label: e.Label, AuxID: e.AuxID, Args: args}
}

func collapseNot(e *Expr, neg bool) *Expr {
	for e.Kind == KindNot {
		neg = !neg
		e = e.Args[0]
	}
	inner := RemoveDoubleNegation(e)
	if neg {
		return NewNot(inner)
	}
	return inner
}

// BONF rewrites every And/Or/Iff of arity >2 into a left-associated
// binary nest, and unwraps any arity-1 And/Or/Iff down to its single
// child. Not and Imply are untouched (their arity is already fixed).
func BONF(e *Expr) (*Expr, error) {
	switch e.Kind {
	case KindVariable:
		return e.Clone(), nil
	case KindNot:
		x, err := BONF(e.Args[0])
		if err != nil {
			return nil, err
		}
		return NewNot(x), nil
	case KindImply:
		l, err := BONF(e.Args[0])
		if err != nil {
			return nil, err
		}
		r, err := BONF(e.Args[1])
		if err != nil {
			return nil, err
		}
		return NewImply(l, r), nil
	case KindAnd, KindOr, KindIff:
		args := make([]*Expr, len(e.Args))
		for i, a := range e.Args {
			x, err := BONF(a)
			if err != nil {
				return nil, err
			}
			args[i] = x
		}
		return leftAssociate(e.Kind, args)
	}
	return nil, diag.NewShapeError("BONF: unknown expression kind %v", e.Kind)
}

func leftAssociate(k Kind, args []*Expr) (*Expr, error) {
	if len(args) == 0 {
		return nil, diag.NewShapeError("%v requires at least one operand", k)
	}
	if len(args) == 1 {
		return args[0], nil
	}
	acc := args[0]
	for _, a := range args[1:] {
		var err error
		acc, err = pairNode(k, acc, a)
		if err != nil {
			return nil, err
		}
	}
	return acc, nil
}

func pairNode(k Kind, l, r *Expr) (*Expr, error) {
	switch k {
	case KindAnd:
		return mustVariadic(NewAnd([]*Expr{l, r}))
	case KindOr:
		return mustVariadic(NewOr([]*Expr{l, r}))
	case KindIff:
		return mustVariadic(NewIff([]*Expr{l, r}))
	}
	return nil, diag.NewShapeError("leftAssociate: unsupported kind %v", k)
}
