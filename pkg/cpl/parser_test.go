package cpl

import "testing"

func TestParseSimpleTuple(t *testing.T) {
	terms, err := Parse("(/\\ a b)")
	if err != nil {
		t.Fatal(err)
	}
	if len(terms) != 1 {
		t.Fatalf("got %d terms, want 1", len(terms))
	}
	tup, ok := terms[0].(Tuple)
	if !ok {
		t.Fatalf("got %T, want Tuple", terms[0])
	}
	head, ok := tup.Head()
	if !ok || head != "/\\" {
		t.Fatalf("Head() = %q, %v, want \"/\\\\\", true", head, ok)
	}
	if len(tup.Args()) != 2 {
		t.Fatalf("got %d args, want 2", len(tup.Args()))
	}
}

func TestParseMultipleTopLevelTerms(t *testing.T) {
	terms, err := Parse("(macro foo (a) a) a")
	if err != nil {
		t.Fatal(err)
	}
	if len(terms) != 2 {
		t.Fatalf("got %d terms, want 2", len(terms))
	}
}

func TestParseUnbalancedCloseIsError(t *testing.T) {
	if _, err := Parse("(a b))"); err == nil {
		t.Fatal("expected an error for an extra ')'")
	}
}

func TestParseUnterminatedTupleIsError(t *testing.T) {
	if _, err := Parse("(a (b c)"); err == nil {
		t.Fatal("expected an error for an unterminated tuple")
	}
}

func TestParseEmptyTupleIsError(t *testing.T) {
	if _, err := Parse("()"); err == nil {
		t.Fatal("expected an error for an empty tuple")
	}
}

func TestParseTupleOperatorMustBeName(t *testing.T) {
	if _, err := Parse("(1 2)"); err == nil {
		t.Fatal("expected an error: tuple head must be a name")
	}
}

func TestParseEmptySourceIsError(t *testing.T) {
	if _, err := Parse("  % just a comment\n"); err == nil {
		t.Fatal("expected an error for an empty program")
	}
}
