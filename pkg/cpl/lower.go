package cpl

import (
	"strconv"
	"strings"

	"github.com/arrowsmith/cplsat/internal/diag"
	"github.com/arrowsmith/cplsat/pkg/expr"
)

// Lower converts a fully macro-expanded term into a propositional
// expression tree. assignments resolves (? v) lookups against an
// external partial valuation; a lookup of an unassigned variable is a
// ShapeError.
func Lower(t Term, assignments map[string]bool) (*expr.Expr, error) {
	switch v := t.(type) {
	case Name:
		if strings.HasPrefix(v.Value, "#") {
			return nil, diag.NewMacroError(v.Value[1:], "unexpanded macro reference %s", v.Value)
		}
		return expr.NewVar(v.Value), nil
	case Number:
		// §4.3: a number in operand position becomes the variable
		// labeled by its own decimal digits, so it joins
		// uniformly with names under (_ ...) compound-name construction.
		return expr.NewVar(strconv.Itoa(v.Value)), nil
	case Tuple:
		head, ok := v.Head()
		if !ok {
			return nil, diag.NewShapeError("tuple head must be a name, got %s", t)
		}
		args := v.Args()
		switch head {
		case "_":
			return lowerIndexedVar(args)
		case "?":
			return lowerAssignmentLookup(args, assignments)
		case "not", "~":
			return lowerUnary(args, assignments, expr.NewNot)
		case "imply", "->":
			return lowerBinary(args, assignments, expr.NewImply)
		case "and", "/\\":
			return lowerVariadic(args, assignments, expr.NewAnd)
		case "or", "\\/":
			return lowerVariadic(args, assignments, expr.NewOr)
		case "iff", "<->":
			return lowerVariadic(args, assignments, expr.NewIff)
		case "empty":
			return nil, diag.NewShapeError("an (empty) term from a vacuous (if) cannot stand alone; it must appear inside and/or")
		default:
			return nil, diag.NewShapeError("unknown operator %q", head)
		}
	}
	return nil, diag.NewShapeError("unrecognized term %s", t)
}

// lowerIndexedVar builds the compound variable name t1_t2_..._tk from
// (_ t1 t2 ... tk), where each ti is a name or number leaf.
func lowerIndexedVar(args []Term) (*expr.Expr, error) {
	if len(args) == 0 {
		return nil, diag.NewShapeError("(_ ...) requires at least one component")
	}
	parts := make([]string, len(args))
	for i, a := range args {
		text, ok := leafText(a)
		if !ok {
			return nil, diag.NewShapeError("(_ ...) component %d must be a name or number, got %s", i, a)
		}
		parts[i] = text
	}
	return expr.NewVar(strings.Join(parts, "_")), nil
}

func lowerAssignmentLookup(args []Term, assignments map[string]bool) (*expr.Expr, error) {
	if len(args) != 1 {
		return nil, diag.NewShapeError("(? v) requires exactly one argument, got %d", len(args))
	}
	name, ok := args[0].(Name)
	if !ok {
		return nil, diag.NewShapeError("(? v) argument must be a name, got %s", args[0])
	}
	val, ok := assignments[name.Value]
	if !ok {
		return nil, diag.NewShapeError("variable %q has no external assignment", name.Value)
	}
	if val {
		return expr.NewVar(name.Value), nil
	}
	return expr.NewNot(expr.NewVar(name.Value)), nil
}

func lowerUnary(args []Term, assignments map[string]bool, build func(*expr.Expr) *expr.Expr) (*expr.Expr, error) {
	if len(args) != 1 {
		return nil, diag.NewShapeError("unary operator requires exactly one operand, got %d", len(args))
	}
	x, err := Lower(args[0], assignments)
	if err != nil {
		return nil, err
	}
	return build(x), nil
}

func lowerBinary(args []Term, assignments map[string]bool, build func(l, r *expr.Expr) *expr.Expr) (*expr.Expr, error) {
	if len(args) != 2 {
		return nil, diag.NewShapeError("binary operator requires exactly two operands, got %d", len(args))
	}
	l, err := Lower(args[0], assignments)
	if err != nil {
		return nil, err
	}
	r, err := Lower(args[1], assignments)
	if err != nil {
		return nil, err
	}
	return build(l, r), nil
}

func lowerVariadic(args []Term, assignments map[string]bool, build func([]*expr.Expr) (*expr.Expr, error)) (*expr.Expr, error) {
	children := make([]*expr.Expr, 0, len(args))
	for _, a := range args {
		if isEmptyTerm(a) {
			continue
		}
		x, err := Lower(a, assignments)
		if err != nil {
			return nil, err
		}
		children = append(children, x)
	}
	if len(children) == 0 {
		return nil, diag.NewShapeError("operator has no non-vacuous operands")
	}
	return build(children)
}

func isEmptyTerm(t Term) bool {
	tup, ok := t.(Tuple)
	if !ok {
		return false
	}
	head, ok := tup.Head()
	return ok && head == "empty" && len(tup.Args()) == 0
}
