package cnf

import "testing"

func TestUnitResolveSat(t *testing.T) {
	clauses := []Clause{clause(1), clause(-1, 2)}
	model := map[int]bool{}
	reduced, outcome := unitResolve(clauses, model)
	if outcome != unitSAT {
		t.Fatalf("outcome = %v, want unitSAT", outcome)
	}
	if len(reduced) != 0 {
		t.Fatalf("reduced = %v, want empty", reduced)
	}
	if !model[1] || !model[2] {
		t.Fatalf("model = %v, want both variables forced true", model)
	}
}

func TestUnitResolveUnsat(t *testing.T) {
	clauses := []Clause{clause(1), clause(-1)}
	_, outcome := unitResolve(clauses, nil)
	if outcome != unitUNSAT {
		t.Fatalf("outcome = %v, want unitUNSAT", outcome)
	}
}

func TestUnitResolveOngoing(t *testing.T) {
	clauses := []Clause{clause(1, 2)}
	reduced, outcome := unitResolve(clauses, nil)
	if outcome != unitOngoing {
		t.Fatalf("outcome = %v, want unitOngoing", outcome)
	}
	if len(reduced) != 1 {
		t.Fatalf("reduced = %v, want the original clause unchanged", reduced)
	}
}

func TestVarPoolInternIsStable(t *testing.T) {
	p := NewVarPool()
	id1 := p.Intern("x")
	id2 := p.Intern("y")
	id3 := p.Intern("x")
	if id1 != id3 {
		t.Fatalf("Intern(x) = %d then %d, want the same id", id1, id3)
	}
	if id1 == id2 {
		t.Fatal("distinct labels got the same id")
	}
	if p.Labels()[id1] != "x" {
		t.Fatalf("Labels()[%d] = %q, want \"x\"", id1, p.Labels()[id1])
	}
}

func TestVarPoolNewAuxDoesNotCollideWithInterned(t *testing.T) {
	p := NewVarPool()
	id := p.Intern("x")
	aux := p.NewAux()
	if aux == id {
		t.Fatal("NewAux produced an id already claimed by Intern")
	}
	if _, labeled := p.Labels()[aux]; labeled {
		t.Fatal("an auxiliary id should carry no source label")
	}
}
