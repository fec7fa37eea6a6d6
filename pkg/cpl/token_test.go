package cpl

import "testing"

func TestTokenizeBasics(t *testing.T) {
	toks, err := Tokenize("(/\\ a (~ b))")
	if err != nil {
		t.Fatal(err)
	}
	want := []TokenKind{TokOpen, TokName, TokName, TokOpen, TokName, TokName, TokClose, TokClose}
	if len(toks) != len(want) {
		t.Fatalf("got %d tokens, want %d", len(toks), len(want))
	}
	for i, k := range want {
		if toks[i].Kind != k {
			t.Fatalf("token %d: kind = %v, want %v", i, toks[i].Kind, k)
		}
	}
}

func TestTokenizeNumber(t *testing.T) {
	toks, err := Tokenize("42")
	if err != nil {
		t.Fatal(err)
	}
	if len(toks) != 1 || toks[0].Kind != TokNumber || toks[0].Num != 42 {
		t.Fatalf("got %+v, want a single NUMBER token with value 42", toks)
	}
}

func TestTokenizeSkipsCommentsAndWhitespace(t *testing.T) {
	toks, err := Tokenize("  a % this is a comment\n  b")
	if err != nil {
		t.Fatal(err)
	}
	if len(toks) != 2 || toks[0].Text != "a" || toks[1].Text != "b" {
		t.Fatalf("got %+v, want [a b]", toks)
	}
}

func TestTokenizeCompoundNamesStayWhole(t *testing.T) {
	toks, err := Tokenize("a_1 q_2_3")
	if err != nil {
		t.Fatal(err)
	}
	if len(toks) != 2 || toks[0].Text != "a_1" || toks[1].Text != "q_2_3" {
		t.Fatalf("got %+v, want compound names preserved whole", toks)
	}
}
