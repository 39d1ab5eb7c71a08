package solver

// Engine implements the recursive DPLL-for-QBF search of spec.md §4.2:
// a two-player game tree over the prefix, where existential nodes
// disjoin the outcomes of both polarity branches and universal nodes
// conjoin them. It consumes the preprocessor's final state by
// snapshot and never mutates the preprocessor.
type Engine struct {
	prefix     *Prefix
	clauses    []*Clause
	assignment Assignment
	tracer     Tracer
}

// NewEngine returns an Engine that owns its own copy of snap. The
// caller retains ownership of snap's fields; NewEngine clones them, so
// mutating them afterwards has no effect on the engine.
func NewEngine(snap Snapshot) *Engine {
	return &Engine{
		prefix:     snap.Prefix.Clone(),
		clauses:    cloneClauses(snap.Clauses),
		assignment: snap.Assignment.Clone(),
	}
}

// SetTracer installs t as the engine's diagnostic tracer. A nil t
// disables tracing.
func (e *Engine) SetTracer(t Tracer) {
	e.tracer = t
}

// Solve decides the formula's truth value. Per the backtrack-
// cleanliness law (spec.md §8), the engine's working clause set and
// assignment are restored to the snapshot it received before Solve
// returns, regardless of the verdict: intermediate recursive branches
// leave a winning assignment in place while the verdict propagates
// back up (spec.md §4.2's branching steps never restore on success),
// but the outermost call undoes that bookkeeping once the verdict is
// final, since solve's contract is the bare verdict, not a witness
// (spec.md §4.2; no Skolem/strategy certificate is part of this
// contract, per spec.md §1's Non-goals).
func (e *Engine) Solve() Verdict {
	initialClauses := e.clauses
	initialAssignment := e.assignment.Clone()
	verdict := e.solve()
	e.clauses = initialClauses
	e.assignment = initialAssignment
	return verdict
}

func (e *Engine) verdict() Verdict {
	empty := false
	for _, c := range e.clauses {
		if c.Empty() {
			empty = true
			break
		}
	}
	if empty {
		return Unsat
	}
	if len(e.clauses) == 0 {
		return Sat
	}
	return Unknown
}

// selectVariable walks the prefix outermost-to-innermost, and within
// each block in declaration order, returning the first unassigned
// variable found (spec.md §4.2). The second return value is false if
// every variable is already assigned.
func (e *Engine) selectVariable() (Var, Quantifier, bool) {
	for _, block := range e.prefix.Blocks() {
		for _, v := range block.Variables {
			if _, assigned := e.assignment[v]; !assigned {
				return v, block.Quantifier, true
			}
		}
	}
	return 0, 0, false
}

func (e *Engine) solve() Verdict {
	if v := e.verdict(); v != Unknown {
		return v
	}
	variable, quant, ok := e.selectVariable()
	if !ok {
		// No unassigned variable remains: re-check the trivial
		// verdicts (spec.md §4.2).
		return e.verdict()
	}

	switch quant {
	case Exists:
		return e.branchExists(variable)
	case Forall:
		return e.branchForall(variable)
	default:
		panic("invalid quantifier")
	}
}

// branchExists tries true, then false, returning SAT as soon as either
// succeeds and leaving the witnessing assignment and clause state in
// place; clauses are only restored between a failed attempt and the
// next one (spec.md §4.2).
func (e *Engine) branchExists(v Var) Verdict {
	saved := e.clauses

	e.assign(v, true, Exists)
	if e.solve() == Sat {
		return Sat
	}
	e.unassign(v, saved)

	e.assign(v, false, Exists)
	if e.solve() == Sat {
		return Sat
	}
	e.unassign(v, saved)
	return Unsat
}

// branchForall tries true, then false, returning UNSAT as soon as
// either fails; a successful first branch is still rolled back before
// trying the second, since both must hold for the block to be SAT
// (spec.md §4.2).
func (e *Engine) branchForall(v Var) Verdict {
	saved := e.clauses
	savedAssignment := e.assignment.Clone()

	e.assign(v, true, Forall)
	if e.solve() == Unsat {
		e.unassign(v, saved)
		return Unsat
	}
	e.unassign(v, saved)
	e.assignment = savedAssignment

	e.assign(v, false, Forall)
	if e.solve() == Unsat {
		e.unassign(v, saved)
		return Unsat
	}
	return Sat
}

func (e *Engine) assign(v Var, value bool, quant Quantifier) {
	if e.tracer != nil {
		e.tracer.Decision(v, value, quant)
	}
	e.assignment[v] = value
	e.clauses = simplifyFor(e.clauses, e.assignment)
}

// unassign restores the clause set snapshot taken before the decision
// and removes v from the assignment, per the backtrack-cleanliness law
// of spec.md §8 and the copy-based backtracking design of §9.
func (e *Engine) unassign(v Var, saved []*Clause) {
	if e.tracer != nil {
		e.tracer.Backtrack(v)
	}
	e.clauses = saved
	delete(e.assignment, v)
}
