package expr

import "testing"

func TestNewVariadicRejectsEmpty(t *testing.T) {
	if _, err := NewAnd(nil); err == nil {
		t.Fatal("expected an error for a zero-operand And")
	}
}

func TestIsAux(t *testing.T) {
	v := NewAuxVar(5)
	if !v.IsAux() {
		t.Fatal("an auxiliary variable should report IsAux")
	}
	if NewVar("x").IsAux() {
		t.Fatal("a source-labeled variable should not report IsAux")
	}
}

func TestCloneIsDeep(t *testing.T) {
	e := NewNot(NewVar("x"))
	c := e.Clone()
	c.Args[0].Label = "y"
	if e.Args[0].Label != "x" {
		t.Fatal("Clone shares the argument slice with the original")
	}
}

func TestStringRendersCoreSpellings(t *testing.T) {
	and, _ := NewAnd([]*Expr{NewVar("a"), NewVar("b")})
	if got, want := and.String(), "(a /\\ b)"; got != want {
		t.Fatalf("String() = %q, want %q", got, want)
	}
	imply := NewImply(NewVar("a"), NewVar("b"))
	if got, want := imply.String(), "(a -> b)"; got != want {
		t.Fatalf("String() = %q, want %q", got, want)
	}
}
