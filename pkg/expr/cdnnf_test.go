package expr

import "testing"

// allSatisfy checks that e evaluates to true under every assignment to
// the given variable labels — used to confirm CDNNF/NNF preserve
// semantics by brute force over small formulas.
func allSatisfy(t *testing.T, e *Expr, labels []string, want func(map[string]bool) bool) {
	t.Helper()
	n := len(labels)
	for mask := 0; mask < (1 << n); mask++ {
		assignment := map[string]bool{}
		for i, l := range labels {
			assignment[l] = mask&(1<<i) != 0
		}
		got := evalExpr(e, assignment)
		if got != want(assignment) {
			t.Fatalf("assignment %v: got %v, want %v", assignment, got, want(assignment))
		}
	}
}

func evalExpr(e *Expr, m map[string]bool) bool {
	switch e.Kind {
	case KindVariable:
		return m[e.Label]
	case KindNot:
		return !evalExpr(e.Args[0], m)
	case KindAnd:
		for _, a := range e.Args {
			if !evalExpr(a, m) {
				return false
			}
		}
		return true
	case KindOr:
		for _, a := range e.Args {
			if evalExpr(a, m) {
				return true
			}
		}
		return false
	case KindImply:
		return !evalExpr(e.Args[0], m) || evalExpr(e.Args[1], m)
	case KindIff:
		first := evalExpr(e.Args[0], m)
		for _, a := range e.Args[1:] {
			if evalExpr(a, m) != first {
				return false
			}
			first = evalExpr(a, m)
		}
		return true
	}
	return false
}

func TestCDNNFPreservesImplySemantics(t *testing.T) {
	e := NewImply(NewVar("a"), NewVar("b"))
	reduced, err := CDNNF(e)
	if err != nil {
		t.Fatal(err)
	}
	allSatisfy(t, reduced, []string{"a", "b"}, func(m map[string]bool) bool {
		return !m["a"] || m["b"]
	})
}

func TestCDNNFPreservesIffChainSemantics(t *testing.T) {
	e, err := NewIff([]*Expr{NewVar("a"), NewVar("b"), NewVar("c")})
	if err != nil {
		t.Fatal(err)
	}
	reduced, err := CDNNF(e)
	if err != nil {
		t.Fatal(err)
	}
	allSatisfy(t, reduced, []string{"a", "b", "c"}, func(m map[string]bool) bool {
		return m["a"] == m["b"] && m["b"] == m["c"]
	})
}

func TestCDNNFOutputHasNoImplyOrIff(t *testing.T) {
	e, err := NewIff([]*Expr{NewVar("a"), NewImply(NewVar("b"), NewVar("c"))})
	if err != nil {
		t.Fatal(err)
	}
	reduced, err := CDNNF(e)
	if err != nil {
		t.Fatal(err)
	}
	var walk func(*Expr)
	walk = func(x *Expr) {
		if x.Kind == KindImply || x.Kind == KindIff {
			t.Fatalf("CDNNF output still contains a %v node", x.Kind)
		}
		for _, a := range x.Args {
			walk(a)
		}
	}
	walk(reduced)
}

func TestNNFPushesNegationToLeaves(t *testing.T) {
	and, _ := NewAnd([]*Expr{NewVar("a"), NewVar("b")})
	e := NewNot(and)
	reduced, err := CDNNF(e)
	if err != nil {
		t.Fatal(err)
	}
	nnf, err := NNF(reduced)
	if err != nil {
		t.Fatal(err)
	}
	if nnf.Kind != KindOr {
		t.Fatalf("not(a and b) should push to an Or, got %v", nnf.Kind)
	}
	for _, a := range nnf.Args {
		if a.Kind != KindNot {
			t.Fatalf("expected every child negated, got %v", a.Kind)
		}
		if a.Args[0].Kind != KindVariable {
			t.Fatalf("expected negation directly over a variable, got %v", a.Args[0].Kind)
		}
	}
}

func TestNNFRejectsNonCDNNFInput(t *testing.T) {
	e := NewImply(NewVar("a"), NewVar("b"))
	if _, err := NNF(e); err == nil {
		t.Fatal("expected an error: NNF requires CDNNF-reduced input")
	}
}
