package cpl

import (
	"github.com/arrowsmith/cplsat/internal/diag"
)

// standardMacros lists the fixed macros applied after all user macros,
// in order: indexed-family forms first (so arithmetic embedded in a
// generated body is resolved only after the family has been expanded
// into concrete indices), then calc, then if.
var standardMacros = []macroDef{
	indexedMacro{head: "/\\*", join: "/\\"},
	indexedMacro{head: "\\/*", join: "\\/"},
	pairIndexedMacro{head: "/\\**", join: "/\\"},
	pairIndexedMacro{head: "\\/**", join: "\\/"},
	calcMacro{},
	ifMacro{},
}

// indexedMacro expands (HEAD i lo hi body) into
// (JOIN body[i:=lo] body[i:=lo+1] ... body[i:=hi]).
type indexedMacro struct {
	head string
	join string
}

func (m indexedMacro) matches(t Term) ([]Term, bool) {
	tup, ok := t.(Tuple)
	if !ok {
		return nil, false
	}
	head, ok := tup.Head()
	if !ok || head != m.head {
		return nil, false
	}
	args := tup.Args()
	if len(args) != 4 {
		return nil, false
	}
	return args, true
}

func (m indexedMacro) expand(args []Term) (Term, error) {
	idx, ok := args[0].(Name)
	if !ok {
		return nil, diag.NewMacroError(m.head, "index variable must be a name, got %s", args[0])
	}
	lo, ok := asNumber(args[1])
	if !ok {
		return nil, diag.NewMacroError(m.head, "lower bound must be a number, got %s", args[1])
	}
	hi, ok := asNumber(args[2])
	if !ok {
		return nil, diag.NewMacroError(m.head, "upper bound must be a number, got %s", args[2])
	}
	body := args[3]
	if lo > hi {
		return nil, diag.NewMacroError(m.head, "empty range %d..%d", lo, hi)
	}
	children := make([]Term, 0, hi-lo+1)
	for i := lo; i <= hi; i++ {
		inst, err := substitute(body, idx.Value, Number{Value: i})
		if err != nil {
			return nil, err
		}
		children = append(children, inst)
	}
	return joinTerm(m.join, children), nil
}

// pairIndexedMacro expands (HEAD lo i j hi body) into the JOIN of
// body[i:=a,j:=b] over every lo<=a<b<=hi.
type pairIndexedMacro struct {
	head string
	join string
}

func (m pairIndexedMacro) matches(t Term) ([]Term, bool) {
	tup, ok := t.(Tuple)
	if !ok {
		return nil, false
	}
	head, ok := tup.Head()
	if !ok || head != m.head {
		return nil, false
	}
	args := tup.Args()
	if len(args) != 5 {
		return nil, false
	}
	return args, true
}

func (m pairIndexedMacro) expand(args []Term) (Term, error) {
	lo, ok := asNumber(args[0])
	if !ok {
		return nil, diag.NewMacroError(m.head, "lower bound must be a number, got %s", args[0])
	}
	idxI, ok := args[1].(Name)
	if !ok {
		return nil, diag.NewMacroError(m.head, "first index must be a name, got %s", args[1])
	}
	idxJ, ok := args[2].(Name)
	if !ok {
		return nil, diag.NewMacroError(m.head, "second index must be a name, got %s", args[2])
	}
	hi, ok := asNumber(args[3])
	if !ok {
		return nil, diag.NewMacroError(m.head, "upper bound must be a number, got %s", args[3])
	}
	body := args[4]
	var children []Term
	for a := lo; a <= hi; a++ {
		for b := a + 1; b <= hi; b++ {
			inst, err := substitute(body, idxI.Value, Number{Value: a})
			if err != nil {
				return nil, err
			}
			inst, err = substitute(inst, idxJ.Value, Number{Value: b})
			if err != nil {
				return nil, err
			}
			children = append(children, inst)
		}
	}
	if len(children) == 0 {
		return nil, diag.NewMacroError(m.head, "empty pair range %d..%d", lo, hi)
	}
	return joinTerm(m.join, children), nil
}

func joinTerm(join string, children []Term) Term {
	if len(children) == 1 {
		return children[0]
	}
	return Tuple{Children: append([]Term{Name{Value: join}}, children...)}
}

func asNumber(t Term) (int, bool) {
	n, ok := t.(Number)
	if !ok {
		return 0, false
	}
	return n.Value, true
}

// calcMacro evaluates (calc tok tok ...), a postfix stack expression
// over +, -, *, =, and, or, down to a single residual term. Every
// operator yields a Number: arithmetic its integer result, and a
// comparison or connective 0 or 1.
type calcMacro struct{}

func (calcMacro) matches(t Term) ([]Term, bool) {
	tup, ok := t.(Tuple)
	if !ok {
		return nil, false
	}
	head, ok := tup.Head()
	if !ok || head != "calc" {
		return nil, false
	}
	return tup.Args(), true
}

func (calcMacro) expand(args []Term) (Term, error) {
	var stack []Term
	pop := func() (Term, error) {
		if len(stack) == 0 {
			return nil, diag.NewShapeError("calc: stack underflow")
		}
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		return top, nil
	}
	for _, tok := range args {
		switch v := tok.(type) {
		case Number:
			stack = append(stack, v)
			continue
		case Name:
			switch v.Value {
			case "+", "-", "*", "=", "and", "or":
				r, err := pop()
				if err != nil {
					return nil, err
				}
				l, err := pop()
				if err != nil {
					return nil, err
				}
				res, err := calcApply(v.Value, l, r)
				if err != nil {
					return nil, err
				}
				stack = append(stack, res)
				continue
			}
		}
		stack = append(stack, tok)
	}
	if len(stack) != 1 {
		return nil, diag.NewShapeError("calc: expected exactly one residual value, got %d", len(stack))
	}
	return stack[0], nil
}

func calcApply(op string, l, r Term) (Term, error) {
	switch op {
	case "+", "-", "*":
		ln, ok := asNumber(l)
		if !ok {
			return nil, diag.NewShapeError("calc: %q requires numeric operands, got %s", op, l)
		}
		rn, ok := asNumber(r)
		if !ok {
			return nil, diag.NewShapeError("calc: %q requires numeric operands, got %s", op, r)
		}
		switch op {
		case "+":
			return Number{Value: ln + rn}, nil
		case "-":
			return Number{Value: ln - rn}, nil
		default:
			return Number{Value: ln * rn}, nil
		}
	case "=":
		ln, lok := asNumber(l)
		rn, rok := asNumber(r)
		if !lok || !rok {
			return nil, diag.NewShapeError("calc: %q requires numeric operands", op)
		}
		return boolNumber(ln == rn), nil
	case "and", "or":
		ln, lok := asNumber(l)
		rn, rok := asNumber(r)
		if !lok || !rok {
			return nil, diag.NewShapeError("calc: %q requires numeric operands", op)
		}
		if op == "and" {
			return boolNumber(ln != 0 && rn != 0), nil
		}
		return boolNumber(ln != 0 || rn != 0), nil
	}
	return nil, diag.NewShapeError("calc: unknown operator %q", op)
}

// boolNumber encodes a comparison/boolean calc result as 0 or 1, per
// spec §4.2: calc is a postfix evaluator "over integers", so every
// result — arithmetic or comparison/boolean — is itself a Number that
// can feed further calc operators or indexed-variable construction.
func boolNumber(b bool) Term {
	if b {
		return Number{Value: 1}
	}
	return Number{Value: 0}
}

// ifMacro expands (if n body) to body when n is a nonzero number or
// the literal name true, and to the empty tuple (empty) otherwise —
// a vacuous conjunct/disjunct left for Lower to special-case.
type ifMacro struct{}

func (ifMacro) matches(t Term) ([]Term, bool) {
	tup, ok := t.(Tuple)
	if !ok {
		return nil, false
	}
	head, ok := tup.Head()
	if !ok || head != "if" {
		return nil, false
	}
	args := tup.Args()
	if len(args) != 2 {
		return nil, false
	}
	return args, true
}

func (ifMacro) expand(args []Term) (Term, error) {
	cond := args[0]
	truthy := false
	switch v := cond.(type) {
	case Number:
		truthy = v.Value != 0
	case Name:
		switch v.Value {
		case "true":
			truthy = true
		case "false":
			truthy = false
		default:
			return nil, diag.NewShapeError("if: condition must be a number or boolean, got %s", cond)
		}
	default:
		return nil, diag.NewShapeError("if: condition must be a number or boolean, got %s", cond)
	}
	if truthy {
		return args[1], nil
	}
	return Tuple{Children: []Term{Name{Value: "empty"}}}, nil
}
