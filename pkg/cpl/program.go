package cpl

import "github.com/arrowsmith/cplsat/internal/diag"

// UserMacro is a user-defined macro: either nullary (Params is empty,
// referenced as "#NAME") or parameterized (referenced as a tuple
// headed by NAME).
type UserMacro struct {
	Name   string
	Params []string
	Body   Term
}

// Program is a parsed CPL source: zero or more macro definitions
// followed by a single final term.
type Program struct {
	Macros []*UserMacro
	Final  Term
}

// NewProgram groups a parsed top-level term sequence into macro
// definitions plus a final term, rejecting duplicate macro names.
func NewProgram(terms []Term) (*Program, error) {
	if len(terms) == 0 {
		return nil, diag.NewParseError(diag.Position{}, "empty program")
	}
	seen := map[string]bool{}
	macros := make([]*UserMacro, 0, len(terms)-1)
	for _, t := range terms[:len(terms)-1] {
		m, err := parseMacroDef(t)
		if err != nil {
			return nil, err
		}
		if seen[m.Name] {
			return nil, diag.NewMacroError(m.Name, "duplicate macro definition")
		}
		seen[m.Name] = true
		macros = append(macros, m)
	}
	return &Program{Macros: macros, Final: terms[len(terms)-1]}, nil
}

func parseMacroDef(t Term) (*UserMacro, error) {
	tup, ok := t.(Tuple)
	if !ok {
		return nil, diag.NewParseError(diag.Position{}, "expected a (macro ...) definition, got %s", t)
	}
	head, ok := tup.Head()
	if !ok || head != "macro" {
		return nil, diag.NewParseError(diag.Position{}, "unexpected top-level term %s, expected a macro definition", t)
	}
	args := tup.Args()
	switch len(args) {
	case 2:
		name, ok := args[0].(Name)
		if !ok {
			return nil, diag.NewMacroError("", "macro name must be a name, got %s", args[0])
		}
		return &UserMacro{Name: name.Value, Body: args[1]}, nil
	case 3:
		name, ok := args[0].(Name)
		if !ok {
			return nil, diag.NewMacroError("", "macro name must be a name, got %s", args[0])
		}
		paramsTup, ok := args[1].(Tuple)
		if !ok {
			return nil, diag.NewMacroError(name.Value, "parameter list must be a tuple, got %s", args[1])
		}
		params := make([]string, len(paramsTup.Children))
		for i, p := range paramsTup.Children {
			pn, ok := p.(Name)
			if !ok {
				return nil, diag.NewMacroError(name.Value, "parameter %d must be a name, got %s", i, p)
			}
			params[i] = pn.Value
		}
		return &UserMacro{Name: name.Value, Params: params, Body: args[2]}, nil
	default:
		return nil, diag.NewMacroError("", "expected (macro NAME BODY) or (macro NAME (ARG ...) BODY), got %s", t)
	}
}
