package cpl

import (
	"strconv"
	"strings"

	"github.com/arrowsmith/cplsat/internal/diag"
)

// macroDef is satisfied by every rewritable macro — user-defined or
// one of the fixed standard forms — so a single expansion driver can
// apply either population uniformly.
type macroDef interface {
	// matches reports whether t invokes this macro, returning the
	// argument terms (nil for a nullary reference).
	matches(t Term) ([]Term, bool)
	expand(args []Term) (Term, error)
}

func (u *UserMacro) matches(t Term) ([]Term, bool) {
	if len(u.Params) == 0 {
		if n, ok := t.(Name); ok && n.Value == "#"+u.Name {
			return nil, true
		}
		return nil, false
	}
	tup, ok := t.(Tuple)
	if !ok {
		return nil, false
	}
	head, ok := tup.Head()
	if !ok || head != u.Name {
		return nil, false
	}
	return tup.Args(), true
}

func (u *UserMacro) expand(args []Term) (Term, error) {
	if len(u.Params) == 0 {
		if len(args) != 0 {
			return nil, diag.NewMacroError(u.Name, "nullary macro takes no arguments")
		}
		return u.Body, nil
	}
	if len(args) != len(u.Params) {
		return nil, diag.NewMacroError(u.Name, "expected %d argument(s), got %d", len(u.Params), len(args))
	}
	result := u.Body
	for i, p := range u.Params {
		var err error
		result, err = substitute(result, p, args[i])
		if err != nil {
			return nil, err
		}
	}
	return result, nil
}

// substitute replaces every leaf name equal to param with repl.
// Compound names are split on '_'; a segment equal to param is
// replaced textually (only when repl is itself a leaf) and rejoined.
// Substituting a tuple into a compound name is a MacroError.
func substitute(t Term, param string, repl Term) (Term, error) {
	switch v := t.(type) {
	case Name:
		if v.Value == param {
			return repl, nil
		}
		if strings.Contains(v.Value, "_") {
			parts := strings.Split(v.Value, "_")
			changed := false
			for i, p := range parts {
				if p == param {
					text, ok := leafText(repl)
					if !ok {
						return nil, diag.NewMacroError(param, "cannot substitute a tuple into compound name %q", v.Value)
					}
					parts[i] = text
					changed = true
				}
			}
			if changed {
				return Name{Value: strings.Join(parts, "_")}, nil
			}
		}
		return v, nil
	case Number:
		return v, nil
	case Tuple:
		newChildren := make([]Term, len(v.Children))
		for i, c := range v.Children {
			nc, err := substitute(c, param, repl)
			if err != nil {
				return nil, err
			}
			newChildren[i] = nc
		}
		return Tuple{Children: newChildren}, nil
	}
	return t, nil
}

func leafText(t Term) (string, bool) {
	switch v := t.(type) {
	case Name:
		return v.Value, true
	case Number:
		return strconv.Itoa(v.Value), true
	default:
		return "", false
	}
}

// rewriteOnce applies a single macro m across t in one bottom-up
// (post-order) pass: a tuple's children are rewritten before the
// tuple itself is tested for a match, so macro arguments are always
// pre-expanded by the time the enclosing instance is recognized.
func rewriteOnce(t Term, m macroDef) (Term, error) {
	switch v := t.(type) {
	case Name:
		if args, ok := m.matches(v); ok {
			return m.expand(args)
		}
		return v, nil
	case Number:
		return v, nil
	case Tuple:
		newChildren := make([]Term, len(v.Children))
		for i, c := range v.Children {
			nc, err := rewriteOnce(c, m)
			if err != nil {
				return nil, err
			}
			newChildren[i] = nc
		}
		newTuple := Tuple{Children: newChildren}
		if args, ok := m.matches(newTuple); ok {
			return m.expand(args)
		}
		return newTuple, nil
	}
	return t, nil
}

// Expand rewrites prog.Final by applying, in order: each user macro
// exactly once, LIFO (last declared first, each the last term's
// macros seeing only macros declared before it forbids recursion);
// then the fixed standard macros, indexed forms first so that
// arithmetic inside an indexed expansion's body is resolved only
// after the index substitution that produces it, then calc, then if.
func Expand(prog *Program) (Term, error) {
	term := prog.Final
	for i := len(prog.Macros) - 1; i >= 0; i-- {
		var err error
		term, err = rewriteOnce(term, prog.Macros[i])
		if err != nil {
			return nil, err
		}
	}
	for _, m := range standardMacros {
		var err error
		term, err = rewriteOnce(term, m)
		if err != nil {
			return nil, err
		}
	}
	return term, nil
}
