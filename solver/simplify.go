package solver

// simplifyFor rebuilds clauses given assignment: a clause containing a
// literal that is true under assignment is dropped (satisfied); a
// literal on an assigned variable that is false under assignment is
// dropped from its clause. If a clause collapses to zero literals, the
// whole result collapses to the single canonical empty clause,
// signalling UNSAT (spec.md §4.1.3).
//
// The search engine's "single-assignment simplification" (spec.md
// §4.2) is the same operation applied right after one more variable
// was added to assignment; since every earlier decision already ran
// this same pass, clauses never carry literals on variables assigned
// before the most recent one, so a single shared implementation
// serves both call sites.
func simplifyFor(clauses []*Clause, assignment Assignment) []*Clause {
	newClauses := make([]*Clause, 0, len(clauses))
	for _, c := range clauses {
		satisfied := false
		var newLits []Literal
		for _, lit := range c.Lits() {
			val, ok := assignment[lit.Var]
			if !ok {
				newLits = append(newLits, lit)
				continue
			}
			if val != lit.Negated {
				satisfied = true
				break
			}
		}
		if satisfied {
			continue
		}
		if len(newLits) == 0 {
			return []*Clause{NewClause(nil)}
		}
		newClauses = append(newClauses, NewClause(newLits))
	}
	return newClauses
}
