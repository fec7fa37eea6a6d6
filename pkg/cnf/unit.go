package cnf

// unitResolveResult reports the outcome of exhaustively applying
// unit resolution: either the clause set collapsed to empty (SAT
// by propagation alone), an empty clause was derived (UNSAT), or
// neither and the reduced clauses remain to be branched on.
type unitResolveResult int

const (
	unitOngoing unitResolveResult = iota
	unitSAT
	unitUNSAT
)

// unitResolve repeatedly finds a unit clause, records its forced
// literal into model (if non-nil), removes the unit clause, strikes
// its literal's occurrences as satisfied clauses, and strikes its
// negation from every remaining clause, until no unit clause
// remains. It returns the reduced clause list and the outcome.
func unitResolve(clauses []Clause, model map[int]bool) ([]Clause, unitResolveResult) {
	clauses = append([]Clause(nil), clauses...)
	for {
		unitIdx := -1
		for i, c := range clauses {
			if len(c.Literals) == 0 {
				return clauses, unitUNSAT
			}
			if len(c.Literals) == 1 {
				unitIdx = i
				break
			}
		}
		if unitIdx == -1 {
			break
		}
		l := clauses[unitIdx].Literals[0]
		if model != nil {
			model[l.Var()] = l.Positive()
		}
		var next []Clause
		for i, c := range clauses {
			if i == unitIdx {
				continue
			}
			if c.Contains(l) {
				continue
			}
			if c.Contains(l.Negate()) {
				var reduced []Literal
				for _, lit := range c.Literals {
					if lit != l.Negate() {
						reduced = append(reduced, lit)
					}
				}
				if len(reduced) == 0 {
					return nil, unitUNSAT
				}
				next = append(next, Clause{Literals: reduced})
				continue
			}
			next = append(next, c)
		}
		clauses = next
	}
	if len(clauses) == 0 {
		return clauses, unitSAT
	}
	return clauses, unitOngoing
}
