// Package theory defines the SMT-style collaborator interface the
// SAT core plugs into: a theory reads source terms into typed
// constraints and builds problems that accumulate those constraints,
// check satisfiability, and expose the resulting assignment. The
// Boolean theory below is the core's own provider of that interface;
// per spec §1 it is the only theory implemented here — a linear-
// programming/simplex theory is an independent plug-in out of scope.
package theory

// Problem accumulates constraints of one theory and decides their
// joint satisfiability.
type Problem interface {
	// Add records a constraint previously produced by Theory.Read.
	Add(constraint interface{}) error
	// Check decides satisfiability of everything added so far.
	Check() (bool, error)
	// Assignment returns the satisfying valuation found by the last
	// successful Check, keyed by the theory's own identifier space.
	Assignment() map[string]interface{}
}

// Theory reads source terms into typed constraints and builds empty
// problems to accumulate them into.
type Theory interface {
	// Read parses term into a typed constraint this theory
	// understands, or reports that term does not belong to it.
	Read(term interface{}) (constraint interface{}, ok bool, err error)
	CreateEmptyProblem() Problem
}
