package solver

// Package-internal QBF-aware unit propagation and pure-literal
// elimination, run to a fixpoint by Preprocessor.Preprocess.

// Tracer receives diagnostic events from the preprocessor and the
// search engine. It is nil-safe: a nil Tracer means "no tracing". The
// standard implementation (internal/obs.Tracer) turns these into
// leveled zap log lines and Prometheus counters; it never influences
// the verdict.
type Tracer interface {
	UnitPropagated(lit Literal, blockIndex int)
	PureLiteralEliminated(v Var, value bool)
	Decision(v Var, value bool, quant Quantifier)
	Backtrack(v Var)
}

// Preprocessor owns the clause set, the prefix and the partial
// assignment of a QBF being built up and simplified. It is the first
// stage of the pipeline described in spec.md §2.
type Preprocessor struct {
	clauses    []*Clause
	prefix     *Prefix
	assignment Assignment
	tracer     Tracer
}

// NewPreprocessor returns an empty preprocessor.
func NewPreprocessor() *Preprocessor {
	return &Preprocessor{
		prefix:     NewPrefix(),
		assignment: make(Assignment),
	}
}

// SetTracer installs t as the preprocessor's diagnostic tracer. A nil
// t disables tracing.
func (p *Preprocessor) SetTracer(t Tracer) {
	p.tracer = t
}

// AddBlock appends a quantifier block to the prefix and updates the
// derived indices.
func (p *Preprocessor) AddBlock(q Quantifier, variables []Var) {
	p.prefix.AddBlock(q, variables)
}

// AddClause appends a clause to the matrix.
func (p *Preprocessor) AddClause(lits []Literal) {
	p.clauses = append(p.clauses, NewClause(lits))
}

// Clauses returns the current clause set. Callers must treat it as a
// read-only view.
func (p *Preprocessor) Clauses() []*Clause {
	return p.clauses
}

// Assignment returns the current partial assignment. Callers must
// treat it as a read-only view.
func (p *Preprocessor) Assignment() Assignment {
	return p.assignment
}

// Prefix returns the quantifier prefix. Callers must treat it as a
// read-only view.
func (p *Preprocessor) Prefix() *Prefix {
	return p.prefix
}

// Snapshot hands the preprocessor's final state to the search engine
// by value: the clause set, assignment and prefix are all deep-copied,
// so the engine can mutate its own copy freely without ever touching
// the preprocessor (spec.md §4.2, §9).
type Snapshot struct {
	Prefix     *Prefix
	Clauses    []*Clause
	Assignment Assignment
}

// Snapshot returns a deep copy of the preprocessor's current state.
func (p *Preprocessor) Snapshot() Snapshot {
	return Snapshot{
		Prefix:     p.prefix.Clone(),
		Clauses:    cloneClauses(p.clauses),
		Assignment: p.assignment.Clone(),
	}
}

// Preprocess runs simplification to a fixpoint and returns the verdict
// implied by the final state: Unsat if an empty clause exists, Sat if
// the clause set is empty, Unknown otherwise (spec.md §4.1, §4.1.4).
func (p *Preprocessor) Preprocess() Verdict {
	for {
		if p.hasEmptyClause() {
			break
		}
		changed := p.unitPropagate()
		changed = p.pureLiteralElimination() || changed
		if !changed {
			break
		}
	}
	return p.verdict()
}

func (p *Preprocessor) hasEmptyClause() bool {
	for _, c := range p.clauses {
		if c.Empty() {
			return true
		}
	}
	return false
}

func (p *Preprocessor) verdict() Verdict {
	if p.hasEmptyClause() {
		return Unsat
	}
	if len(p.clauses) == 0 {
		return Sat
	}
	return Unknown
}

// buildOccurrenceIndex maps each variable to the clauses that currently
// contain a literal on it. It is rebuilt from scratch whenever needed,
// rather than maintained incrementally, since deleted clauses and
// falsified literals must stop contributing the moment they vanish
// (spec.md §9, "Admissibility scope").
func (p *Preprocessor) buildOccurrenceIndex() map[Var][]*Clause {
	occ := make(map[Var][]*Clause, len(p.clauses))
	for _, c := range p.clauses {
		seen := make(map[Var]bool, c.Len())
		for _, lit := range c.lits {
			if seen[lit.Var] {
				continue
			}
			seen[lit.Var] = true
			occ[lit.Var] = append(occ[lit.Var], c)
		}
	}
	return occ
}

type unitCandidate struct {
	lit        Literal
	blockIndex int
}

// unitPropagate runs QBF-aware unit propagation to an inner fixpoint
// (spec.md §4.1.1).
func (p *Preprocessor) unitPropagate() (changed bool) {
	for {
		occ := p.buildOccurrenceIndex()
		candidates := p.collectUnits()
		sortUnitsByBlockDesc(candidates)

		propagated := false
		for _, cand := range candidates {
			v := cand.lit.Var
			if _, assigned := p.assignment[v]; assigned {
				continue
			}
			if !p.canPropagate(v, occ[v]) {
				continue
			}
			p.applyUnit(cand.lit)
			if p.tracer != nil {
				p.tracer.UnitPropagated(cand.lit, cand.blockIndex)
			}
			changed = true
			propagated = true
			break // restart the collect-sort scan
		}
		if !propagated {
			return changed
		}
	}
}

func (p *Preprocessor) collectUnits() []unitCandidate {
	var units []unitCandidate
	for _, c := range p.clauses {
		if c.Unit() {
			lit := c.Get(0)
			units = append(units, unitCandidate{lit: lit, blockIndex: p.prefix.BlockIndex(lit.Var)})
		}
	}
	return units
}

// sortUnitsByBlockDesc sorts candidates by descending block index
// (innermost first), breaking ties by original matrix position, i.e.
// it is a stable sort (spec.md §4.1.1, §5).
func sortUnitsByBlockDesc(units []unitCandidate) {
	// Insertion sort: candidate lists are short in practice (one per
	// unit clause) and stability matters more than asymptotics here.
	for i := 1; i < len(units); i++ {
		j := i
		for j > 0 && units[j-1].blockIndex < units[j].blockIndex {
			units[j-1], units[j] = units[j], units[j-1]
			j--
		}
	}
}

// canPropagate implements the propagation admissibility test of
// spec.md §4.1.1.
func (p *Preprocessor) canPropagate(v Var, relevant []*Clause) bool {
	vBlock := p.prefix.BlockIndex(v)
	switch p.prefix.QuantifierOf(v) {
	case Exists:
		for _, c := range relevant {
			for _, m := range c.lits {
				if m.Var == v {
					continue
				}
				if p.prefix.BlockIndex(m.Var) < vBlock && p.prefix.QuantifierOf(m.Var) == Forall {
					if _, assigned := p.assignment[m.Var]; !assigned {
						return false
					}
				}
			}
		}
		return true
	case Forall:
		for _, c := range relevant {
			for _, m := range c.lits {
				if m.Var == v {
					continue
				}
				if p.prefix.BlockIndex(m.Var) > vBlock && p.prefix.QuantifierOf(m.Var) == Exists {
					if _, assigned := p.assignment[m.Var]; !assigned {
						return false
					}
				}
			}
		}
		return true
	default:
		return false
	}
}

// applyUnit records v's forced assignment and rebuilds the clause set
// around it: satisfied clauses are dropped, falsified literals are
// dropped from the rest (spec.md §4.1.1).
func (p *Preprocessor) applyUnit(unit Literal) {
	p.assignment[unit.Var] = !unit.Negated
	newClauses := make([]*Clause, 0, len(p.clauses))
	for _, c := range p.clauses {
		satisfied := false
		for _, lit := range c.lits {
			if lit.Var == unit.Var && lit.Negated == unit.Negated {
				satisfied = true
				break
			}
		}
		if satisfied {
			continue
		}
		var newLits []Literal
		for _, lit := range c.lits {
			if lit.Var == unit.Var && lit.Negated != unit.Negated {
				continue
			}
			newLits = append(newLits, lit)
		}
		newClauses = append(newClauses, NewClause(newLits))
	}
	p.clauses = newClauses
}

// pureLiteralElimination sweeps blocks innermost to outermost and
// schedules an assignment for every eligible pure variable, then
// applies all scheduled assignments and re-simplifies once (spec.md
// §4.1.2).
func (p *Preprocessor) pureLiteralElimination() bool {
	occ := p.buildOccurrenceIndex()
	blocks := p.prefix.Blocks()
	type scheduled struct {
		v   Var
		val bool
	}
	var toAssign []scheduled

	for i := len(blocks) - 1; i >= 0; i-- {
		if !p.allEarlierAssigned(i) {
			continue
		}
		for _, v := range blocks[i].Variables {
			if _, assigned := p.assignment[v]; assigned {
				continue
			}
			posPure, negPure := purity(occ, v)
			if !posPure && !negPure {
				continue
			}
			// An existential pure literal is reduced toward the value
			// that satisfies it (true when positive-pure): that value
			// can never hurt the existential player, since every
			// remaining clause mentioning v only wants that polarity.
			// A universal pure literal is reduced the opposite way,
			// toward the value that falsifies it (false when
			// positive-pure): the adversary must be allowed to pick
			// the worst case for the existential player, and dropping
			// straight to the satisfying value would silently remove
			// a constraint the adversary is entitled to impose
			// (spec.md §8 end-to-end scenario 3; §9's note that a
			// pure universal literal "imposes no constraint" holds
			// only in isolation, not once it co-occurs with other
			// literals in the same clause).
			val := posPure
			if p.prefix.QuantifierOf(v) == Forall {
				val = negPure
			}
			toAssign = append(toAssign, scheduled{v: v, val: val})
		}
	}
	if len(toAssign) == 0 {
		return false
	}
	for _, s := range toAssign {
		p.assignment[s.v] = s.val
		if p.tracer != nil {
			p.tracer.PureLiteralEliminated(s.v, s.val)
		}
	}
	p.simplify()
	return true
}

// allEarlierAssigned is true iff every variable of every block strictly
// before blockIndex is already assigned (spec.md §4.1.2 eligibility).
func (p *Preprocessor) allEarlierAssigned(blockIndex int) bool {
	blocks := p.prefix.Blocks()
	for i := 0; i < blockIndex; i++ {
		for _, v := range blocks[i].Variables {
			if _, assigned := p.assignment[v]; !assigned {
				return false
			}
		}
	}
	return true
}

// purity scans v's occurrences and reports whether only the positive
// literal, only the negative literal, both, or neither appear.
func purity(occ map[Var][]*Clause, v Var) (posPure, negPure bool) {
	sawPos, sawNeg := false, false
	for _, c := range occ[v] {
		for _, lit := range c.lits {
			if lit.Var != v {
				continue
			}
			if lit.Negated {
				sawNeg = true
			} else {
				sawPos = true
			}
		}
	}
	return sawPos && !sawNeg, sawNeg && !sawPos
}

// simplify rebuilds the clause set given the current assignment
// (spec.md §4.1.3).
func (p *Preprocessor) simplify() {
	p.clauses = simplifyFor(p.clauses, p.assignment)
}
