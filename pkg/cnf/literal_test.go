package cnf

import "testing"

func TestLiteralVarAndNegate(t *testing.T) {
	l := Literal(-3)
	if l.Var() != 3 {
		t.Fatalf("Var() = %d, want 3", l.Var())
	}
	if l.Positive() {
		t.Fatal("Positive() true for a negative literal")
	}
	if l.Negate() != 3 {
		t.Fatalf("Negate() = %d, want 3", l.Negate())
	}
}

func TestNewClauseDedupAndSort(t *testing.T) {
	c, tautology := NewClause([]Literal{3, 1, 3, 2})
	if tautology {
		t.Fatal("reported a tautology for a clause with none")
	}
	want := []Literal{1, 2, 3}
	if len(c.Literals) != len(want) {
		t.Fatalf("Literals = %v, want %v", c.Literals, want)
	}
	for i, l := range want {
		if c.Literals[i] != l {
			t.Fatalf("Literals[%d] = %d, want %d", i, c.Literals[i], l)
		}
	}
}

func TestNewClauseTautology(t *testing.T) {
	_, tautology := NewClause([]Literal{1, -1, 2})
	if !tautology {
		t.Fatal("expected a tautology for {1, -1, 2}")
	}
}

func TestClauseSubset(t *testing.T) {
	c1, _ := NewClause([]Literal{1, 2})
	c2, _ := NewClause([]Literal{1, 2, 3})
	if !c1.Subset(c2) {
		t.Fatal("{1,2} should be a subset of {1,2,3}")
	}
	if c2.Subset(c1) {
		t.Fatal("{1,2,3} should not be a subset of {1,2}")
	}
}

func TestClauseClone(t *testing.T) {
	c, _ := NewClause([]Literal{1, 2})
	clone := c.Clone()
	clone.Literals[0] = 99
	if c.Literals[0] == 99 {
		t.Fatal("Clone shares backing array with the original")
	}
}

func TestTryResolution(t *testing.T) {
	c1, _ := NewClause([]Literal{1, 2})
	c2, _ := NewClause([]Literal{-1, 3})
	resolvent, ok := tryResolution(c1, c2, 1)
	if !ok {
		t.Fatal("expected a resolvent on variable 1")
	}
	if !resolvent.Contains(2) || !resolvent.Contains(3) || resolvent.Contains(1) || resolvent.Contains(-1) {
		t.Fatalf("resolvent = %v, want {2,3}", resolvent)
	}
}

func TestTryResolutionTautologyRejected(t *testing.T) {
	c1, _ := NewClause([]Literal{1, 2})
	c2, _ := NewClause([]Literal{-1, -2})
	if _, ok := tryResolution(c1, c2, 1); ok {
		t.Fatal("resolvent {2,-2} is a tautology and should be rejected")
	}
}

func TestTryResolutionNoSharedVariable(t *testing.T) {
	c1, _ := NewClause([]Literal{1})
	c2, _ := NewClause([]Literal{2})
	if _, ok := tryResolution(c1, c2, 1); ok {
		t.Fatal("no resolution possible: neither clause has the negation on variable 1")
	}
}
