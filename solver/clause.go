package solver

import "strings"

// A Clause is an ordered sequence of literals, interpreted as a
// disjunction. A clause with zero literals is the empty clause and
// denotes falsity; a clause with exactly one literal is a unit clause.
type Clause struct {
	lits []Literal
}

// NewClause returns a clause whose literals are given as an argument.
func NewClause(lits []Literal) *Clause {
	return &Clause{lits: lits}
}

// Len returns the number of literals in the clause.
func (c *Clause) Len() int {
	return len(c.lits)
}

// Empty is true iff the clause has no literals, i.e. it denotes
// falsity.
func (c *Clause) Empty() bool {
	return len(c.lits) == 0
}

// Unit is true iff the clause has exactly one literal.
func (c *Clause) Unit() bool {
	return len(c.lits) == 1
}

// Get returns the ith literal of the clause.
func (c *Clause) Get(i int) Literal {
	return c.lits[i]
}

// Lits returns the clause's literals. The caller must not mutate the
// returned slice.
func (c *Clause) Lits() []Literal {
	return c.lits
}

// Clone returns an independent copy of c.
func (c *Clause) Clone() *Clause {
	lits := make([]Literal, len(c.lits))
	copy(lits, c.lits)
	return &Clause{lits: lits}
}

// CNF returns a DIMACS CNF representation of the clause.
func (c *Clause) CNF() string {
	var b strings.Builder
	for _, lit := range c.lits {
		b.WriteString(lit.String())
		b.WriteByte(' ')
	}
	b.WriteByte('0')
	return b.String()
}

func cloneClauses(clauses []*Clause) []*Clause {
	res := make([]*Clause, len(clauses))
	for i, c := range clauses {
		res[i] = c.Clone()
	}
	return res
}
