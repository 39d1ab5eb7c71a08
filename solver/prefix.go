package solver

import "fmt"

// A QuantifierBlock is a maximal run of variables bound by the same
// quantifier at the same nesting level.
type QuantifierBlock struct {
	Quantifier Quantifier
	Variables  []Var
}

// Prefix is the ordered sequence of quantifier blocks of a QBF,
// indexed from 0 (outermost), together with the derived var->block and
// var->quantifier indices. AddBlock mutates the receiver in place, so
// a Prefix is only built up by its owner; once handed off (e.g. to a
// search Engine, spec.md §9 "copy in, never aliased"), callers treat
// it as a read-only value and rely on Clone to take an independent
// copy rather than mutating a shared one.
type Prefix struct {
	blocks   []QuantifierBlock
	varBlock map[Var]int
	varQuant map[Var]Quantifier
}

// NewPrefix returns an empty prefix.
func NewPrefix() *Prefix {
	return &Prefix{
		varBlock: make(map[Var]int),
		varQuant: make(map[Var]Quantifier),
	}
}

// AddBlock appends a quantifier block to the prefix and updates the
// derived indices. variables must be non-empty.
func (p *Prefix) AddBlock(q Quantifier, variables []Var) {
	if len(variables) == 0 {
		panic("quantifier block must bind at least one variable")
	}
	idx := len(p.blocks)
	vars := make([]Var, len(variables))
	copy(vars, variables)
	p.blocks = append(p.blocks, QuantifierBlock{Quantifier: q, Variables: vars})
	for _, v := range vars {
		p.varBlock[v] = idx
		p.varQuant[v] = q
	}
}

// Blocks returns the prefix's blocks, outermost first. The caller must
// not mutate the returned slice.
func (p *Prefix) Blocks() []QuantifierBlock {
	return p.blocks
}

// Len returns the number of blocks in the prefix.
func (p *Prefix) Len() int {
	return len(p.blocks)
}

// BlockIndex returns the 0-based position of v's block in the prefix.
// It panics if v does not appear in any block, since every variable
// appearing in a clause must belong to exactly one block (spec.md §3).
func (p *Prefix) BlockIndex(v Var) int {
	idx, ok := p.varBlock[v]
	if !ok {
		panic(fmt.Sprintf("variable %d does not belong to any quantifier block", v))
	}
	return idx
}

// QuantifierOf returns the quantifier binding v.
func (p *Prefix) QuantifierOf(v Var) Quantifier {
	q, ok := p.varQuant[v]
	if !ok {
		panic(fmt.Sprintf("variable %d does not belong to any quantifier block", v))
	}
	return q
}

// Clone returns an independent copy of the prefix.
func (p *Prefix) Clone() *Prefix {
	c := NewPrefix()
	for _, b := range p.blocks {
		c.AddBlock(b.Quantifier, b.Variables)
	}
	return c
}
