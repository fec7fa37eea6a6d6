package compile

import (
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"testing"

	"github.com/arrowsmith/cplsat/pkg/cdcl"
	"github.com/arrowsmith/cplsat/pkg/cnf"
)

func readTestdata(t *testing.T, name string) string {
	t.Helper()
	_, thisFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("runtime.Caller failed")
	}
	path := filepath.Join(filepath.Dir(thisFile), "..", "..", "testdata", name)
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return string(b)
}

func TestCompileCplToCnfBothLoweringsAgreeOnSatisfiability(t *testing.T) {
	src := `(/\ a (~ b))`

	distClauses, distLabels, err := CompileCplToCnf(src, nil, false)
	if err != nil {
		t.Fatal(err)
	}
	distSat := cnf.CheckSatByDP(ConvertClausesToCNF(distClauses, distLabels))

	tseytinClauses, tseytinLabels, err := CompileCplToCnf(src, nil, true)
	if err != nil {
		t.Fatal(err)
	}
	input, err := ConvertClausesToCDCLInput(tseytinClauses, tseytinLabels)
	if err != nil {
		t.Fatal(err)
	}
	result, err := cdcl.NewEngine(input).CheckSat()
	if err != nil {
		t.Fatal(err)
	}

	if distSat != result.Sat {
		t.Fatalf("distributive sat=%v, tseytin/CDCL sat=%v, want agreement", distSat, result.Sat)
	}
	if !distSat {
		t.Fatal("expected SAT")
	}
}

func TestAdvisorsFixtureIsUnsatByAllThreeProcedures(t *testing.T) {
	p := NewPipeline(nil)
	src := readTestdata(t, "advisors.cpl")

	dpSat, err := p.SolveByDP(src, nil)
	if err != nil {
		t.Fatal(err)
	}
	if dpSat {
		t.Fatal("DP: expected UNSAT")
	}

	dpllResult, err := p.SolveByDPLL(src, nil)
	if err != nil {
		t.Fatal(err)
	}
	if dpllResult.Sat {
		t.Fatal("DPLL: expected UNSAT")
	}

	cdclResult, err := p.SolveByCDCL(src, nil)
	if err != nil {
		t.Fatal(err)
	}
	if cdclResult.Sat {
		t.Fatal("CDCL: expected UNSAT")
	}
}

func TestAdderFixtureSumsCorrectly(t *testing.T) {
	src := readTestdata(t, "adder.cpl")
	assignments := map[string]bool{"c_0": false}
	setBits(assignments, "a", 42, 8)
	setBits(assignments, "b", 24, 8)

	clauses, labels, err := CompileCplToCnf(src, assignments, true)
	if err != nil {
		t.Fatal(err)
	}
	input, err := ConvertClausesToCDCLInput(clauses, labels)
	if err != nil {
		t.Fatal(err)
	}
	result, err := cdcl.NewEngine(input).CheckSat()
	if err != nil {
		t.Fatal(err)
	}
	if !result.Sat {
		t.Fatal("expected SAT")
	}
	got := readBits(result.Model, labels, "d", 8)
	if got != 66 {
		t.Fatalf("42 + 24 = %d, want 66", got)
	}
}

func TestAdderFixtureRejectsWrongSum(t *testing.T) {
	src := readTestdata(t, "adder.cpl")
	assignments := map[string]bool{"c_0": false}
	setBits(assignments, "a", 42, 8)
	setBits(assignments, "b", 24, 8)

	clauses, labels, err := CompileCplToCnf(src, assignments, true)
	if err != nil {
		t.Fatal(err)
	}
	// Pin the top output bit wrong: 66 has bit 7 clear. The fixture has
	// no (? d_7) lookup, so the pin is an extra unit clause on d_7.
	for id, label := range labels {
		if label == "d_7" {
			pin, _ := cnf.NewClause([]cnf.Literal{cnf.Literal(id)})
			clauses = append(clauses, pin)
		}
	}
	input, err := ConvertClausesToCDCLInput(clauses, labels)
	if err != nil {
		t.Fatal(err)
	}
	result, err := cdcl.NewEngine(input).CheckSat()
	if err != nil {
		t.Fatal(err)
	}
	if result.Sat {
		t.Fatal("expected UNSAT: 42+24 cannot equal a sum with bit 7 set")
	}
}

func TestQueensFixtureProducesAValidPlacement(t *testing.T) {
	src := readTestdata(t, "queens.cpl")
	clauses, labels, err := CompileCplToCnf(src, nil, true)
	if err != nil {
		t.Fatal(err)
	}
	input, err := ConvertClausesToCDCLInput(clauses, labels)
	if err != nil {
		t.Fatal(err)
	}
	result, err := cdcl.NewEngine(input).CheckSat()
	if err != nil {
		t.Fatal(err)
	}
	if !result.Sat {
		t.Fatal("expected 4-queens to be satisfiable")
	}

	byLabel := map[string]bool{}
	for id, label := range labels {
		byLabel[label] = result.Model[id]
	}

	queenCol := map[int]int{}
	for row := 1; row <= 4; row++ {
		for col := 1; col <= 4; col++ {
			key := "q_" + strconv.Itoa(row) + "_" + strconv.Itoa(col)
			if byLabel[key] {
				if _, already := queenCol[row]; already {
					t.Fatalf("row %d has more than one queen", row)
				}
				queenCol[row] = col
			}
		}
	}
	if len(queenCol) != 4 {
		t.Fatalf("expected exactly one queen per row, got %v", queenCol)
	}
	seenCol := map[int]bool{}
	for row, col := range queenCol {
		if seenCol[col] {
			t.Fatalf("column %d is shared by two queens", col)
		}
		seenCol[col] = true
		for otherRow, otherCol := range queenCol {
			if otherRow == row {
				continue
			}
			if abs(row-otherRow) == abs(col-otherCol) {
				t.Fatalf("queens at row %d and row %d share a diagonal", row, otherRow)
			}
		}
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func setBits(assignments map[string]bool, name string, value, width int) {
	for i := 0; i < width; i++ {
		assignments[name+"_"+strconv.Itoa(i)] = value&(1<<i) != 0
	}
}

func readBits(model map[int]bool, labels map[int]string, name string, width int) int {
	byLabel := map[string]bool{}
	for id, label := range labels {
		byLabel[label] = model[id]
	}
	n := 0
	for i := 0; i < width; i++ {
		if byLabel[name+"_"+strconv.Itoa(i)] {
			n |= 1 << i
		}
	}
	return n
}
