package cnf

// VarPool interns source variable labels to small positive integer
// ids, and auxiliary Tseytin ids to ids of their own, so both
// populations share one dense id space across a compile.
type VarPool struct {
	ids    map[string]int
	labels map[int]string
	next   int
}

// NewVarPool returns an empty pool; ids are allocated starting at 1
// (0 is reserved by the literal encoding).
func NewVarPool() *VarPool {
	return &VarPool{ids: map[string]int{}, labels: map[int]string{}, next: 1}
}

// Intern returns the id for label, allocating a fresh one on first
// use.
func (p *VarPool) Intern(label string) int {
	if id, ok := p.ids[label]; ok {
		return id
	}
	id := p.next
	p.next++
	p.ids[label] = id
	p.labels[id] = label
	return id
}

// NewAux allocates a fresh id with no source label, for a Tseytin
// auxiliary variable.
func (p *VarPool) NewAux() int {
	id := p.next
	p.next++
	return id
}

// Labels returns the id→label metadata map accumulated so far. The
// returned map is a copy.
func (p *VarPool) Labels() map[int]string {
	out := make(map[int]string, len(p.labels))
	for k, v := range p.labels {
		out[k] = v
	}
	return out
}
