package cnf

// CNF is an ordered list of clauses over a set of active variable
// ids, with optional id→source-label metadata.
type CNF struct {
	Clauses   []Clause
	Variables map[int]bool
	Labels    map[int]string
}

// NewCNF builds a CNF from clauses, discarding tautologies and
// computing the active-variable set from what remains.
func NewCNF(clauses []Clause, labels map[int]string) CNF {
	vars := map[int]bool{}
	var kept []Clause
	for _, c := range clauses {
		if c.IsTriviallyTrue() {
			continue
		}
		kept = append(kept, c)
		for _, l := range c.Literals {
			vars[l.Var()] = true
		}
	}
	return CNF{Clauses: kept, Variables: vars, Labels: labels}
}

// Copy deep-copies the CNF so a destructive algorithm may run on it
// without disturbing the caller's input.
func (f CNF) Copy() CNF {
	clauses := make([]Clause, len(f.Clauses))
	for i, c := range f.Clauses {
		clauses[i] = c.Clone()
	}
	vars := make(map[int]bool, len(f.Variables))
	for k, v := range f.Variables {
		vars[k] = v
	}
	var labels map[int]string
	if f.Labels != nil {
		labels = make(map[int]string, len(f.Labels))
		for k, v := range f.Labels {
			labels[k] = v
		}
	}
	return CNF{Clauses: clauses, Variables: vars, Labels: labels}
}

// Evaluate reports whether every clause of f is satisfied under the
// total assignment model (keyed by variable id).
func Evaluate(f CNF, model map[int]bool) bool {
	for _, c := range f.Clauses {
		satisfied := false
		for _, l := range c.Literals {
			v, ok := model[l.Var()]
			if ok && v == l.Positive() {
				satisfied = true
				break
			}
		}
		if !satisfied {
			return false
		}
	}
	return true
}

// removeSubsumed discards any clause for which a distinct, strictly
// smaller-or-equal clause in the set is a subset of it — DP's
// subsumption preprocessing step.
func removeSubsumed(clauses []Clause) []Clause {
	kept := make([]bool, len(clauses))
	for i := range clauses {
		kept[i] = true
	}
	for i, ci := range clauses {
		if !kept[i] {
			continue
		}
		for j, cj := range clauses {
			if i == j || !kept[j] {
				continue
			}
			if len(ci.Literals) < len(cj.Literals) && ci.Subset(cj) {
				kept[j] = false
			} else if len(ci.Literals) == len(cj.Literals) && i < j && ci.Subset(cj) {
				kept[j] = false
			}
		}
	}
	var out []Clause
	for i, c := range clauses {
		if kept[i] {
			out = append(out, c)
		}
	}
	return out
}
