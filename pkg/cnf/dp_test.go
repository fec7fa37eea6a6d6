package cnf

import "testing"

func clause(lits ...Literal) Clause {
	c, _ := NewClause(lits)
	return c
}

func TestCheckSatByDPSatisfiable(t *testing.T) {
	// (x1 or x2) and (not x1 or x2) and (x1 or not x2)
	f := NewCNF([]Clause{
		clause(1, 2),
		clause(-1, 2),
		clause(1, -2),
	}, nil)
	if !CheckSatByDP(f) {
		t.Fatal("expected SAT")
	}
}

func TestCheckSatByDPUnsatisfiable(t *testing.T) {
	// x1 and not x1
	f := NewCNF([]Clause{clause(1), clause(-1)}, nil)
	if CheckSatByDP(f) {
		t.Fatal("expected UNSAT")
	}
}

func TestCheckSatByDPPigeonhole(t *testing.T) {
	// Two pigeons, one hole: p1 in hole, p2 in hole, not both.
	f := NewCNF([]Clause{
		clause(1), // pigeon 1 takes the hole
		clause(2), // pigeon 2 takes the hole
		clause(-1, -2),
	}, nil)
	if CheckSatByDP(f) {
		t.Fatal("expected UNSAT: two pigeons cannot share the one hole exclusively")
	}
}

func TestCheckSatByDPEmptyIsSat(t *testing.T) {
	f := NewCNF(nil, nil)
	if !CheckSatByDP(f) {
		t.Fatal("the empty clause set is vacuously satisfiable")
	}
}
