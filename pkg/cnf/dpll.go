package cnf

import "sort"

// DPLLResult is the outcome of CheckSatByDPLL: Sat reports whether a
// model exists, and Model (when Sat) maps every original variable id
// to its truth value.
type DPLLResult struct {
	Sat   bool
	Model map[int]bool
}

// CheckSatByDPLL decides satisfiability of f by unit propagation plus
// splitting, producing a model on success. Branching order follows
// the ascending numeric order of the variable ids remaining after
// propagation — deterministic given the input's id assignment, as
// the contract requires, though unspecified in absolute terms.
func CheckSatByDPLL(f CNF) DPLLResult {
	model := map[int]bool{}
	sat := dpll(f.Copy().Clauses, model)
	if !sat {
		return DPLLResult{Sat: false}
	}
	for v := range f.Variables {
		if _, ok := model[v]; !ok {
			model[v] = false
		}
	}
	return DPLLResult{Sat: true, Model: model}
}

func dpll(clauses []Clause, model map[int]bool) bool {
	reduced, outcome := unitResolve(clauses, model)
	switch outcome {
	case unitSAT:
		return true
	case unitUNSAT:
		return false
	}

	p := firstVariable(reduced)

	branchModel := cloneModel(model)
	branchClauses := cloneClauses(reduced)
	branchClauses = append(branchClauses, Clause{Literals: []Literal{Literal(p)}})
	if dpll(branchClauses, branchModel) {
		for k, v := range branchModel {
			model[k] = v
		}
		return true
	}

	reduced = append(reduced, Clause{Literals: []Literal{Literal(-p)}})
	if dpll(reduced, model) {
		return true
	}
	return false
}

func firstVariable(clauses []Clause) int {
	vars := map[int]bool{}
	for _, c := range clauses {
		for _, l := range c.Literals {
			vars[l.Var()] = true
		}
	}
	ids := make([]int, 0, len(vars))
	for v := range vars {
		ids = append(ids, v)
	}
	sort.Ints(ids)
	return ids[0]
}

func cloneClauses(clauses []Clause) []Clause {
	out := make([]Clause, len(clauses))
	for i, c := range clauses {
		out[i] = c.Clone()
	}
	return out
}

func cloneModel(model map[int]bool) map[int]bool {
	out := make(map[int]bool, len(model))
	for k, v := range model {
		out[k] = v
	}
	return out
}
