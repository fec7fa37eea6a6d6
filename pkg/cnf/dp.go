package cnf

import "sort"

// CheckSatByDP decides satisfiability of f by the Davis-Putnam
// resolution procedure: eliminate one variable at a time by
// resolving every pair of clauses that disagree on it, discarding
// tautological resolvents, until either an empty clause appears
// (UNSAT) or every variable has been eliminated (SAT). It never
// produces a model — only CheckSatByDPLL and the cdcl engine do.
func CheckSatByDP(f CNF) bool {
	g := f.Copy()
	clauses := removeSubsumed(g.Clauses)

	vars := make([]int, 0, len(g.Variables))
	for v := range g.Variables {
		vars = append(vars, v)
	}
	sort.Ints(vars)

	for _, v := range vars {
		var withPos, withNeg, rest []Clause
		for _, c := range clauses {
			switch {
			case c.Contains(Literal(v)):
				withPos = append(withPos, c)
			case c.Contains(Literal(-v)):
				withNeg = append(withNeg, c)
			default:
				rest = append(rest, c)
			}
		}
		for _, c1 := range withPos {
			for _, c2 := range withNeg {
				resolvent, ok := tryResolution(c1, c2, v)
				if !ok {
					continue
				}
				if len(resolvent.Literals) == 0 {
					return false
				}
				rest = append(rest, resolvent)
			}
		}
		clauses = rest
	}
	return true
}
