package solver

import "fmt"

// Describes basic types and constants that are used in the solver.

// Var is a variable identifier, as it appears in a QDIMACS file: a
// positive integer, 1-indexed.
type Var int32

// Quantifier tags a QuantifierBlock as existential or universal.
type Quantifier byte

const (
	// Exists marks a block of existentially quantified variables.
	Exists = Quantifier(iota)
	// Forall marks a block of universally quantified variables.
	Forall
)

func (q Quantifier) String() string {
	switch q {
	case Exists:
		return "EXISTS"
	case Forall:
		return "FORALL"
	default:
		panic("invalid quantifier")
	}
}

// Literal is a variable together with a polarity. Equality is
// structural: two literals are equal iff they share both the variable
// and the negated flag.
type Literal struct {
	Var     Var
	Negated bool
}

// Lit builds the literal for v with the given polarity.
func Lit(v Var, negated bool) Literal {
	return Literal{Var: v, Negated: negated}
}

// IntToLit converts a signed DIMACS literal to a Literal.
func IntToLit(i int) Literal {
	if i < 0 {
		return Literal{Var: Var(-i), Negated: true}
	}
	return Literal{Var: Var(i), Negated: false}
}

// Complement returns the literal with the same variable and the
// opposite polarity.
func (l Literal) Complement() Literal {
	return Literal{Var: l.Var, Negated: !l.Negated}
}

// Int returns the signed DIMACS integer for l.
func (l Literal) Int() int {
	if l.Negated {
		return -int(l.Var)
	}
	return int(l.Var)
}

func (l Literal) String() string {
	return fmt.Sprintf("%d", l.Int())
}

// Verdict is the three-valued outcome of preprocessing or search.
type Verdict byte

const (
	// Unknown means the formula was neither proven SAT nor UNSAT yet.
	Unknown = Verdict(iota)
	// Sat means the existential player has a winning strategy.
	Sat
	// Unsat means no winning strategy exists for the existential player.
	Unsat
)

func (v Verdict) String() string {
	switch v {
	case Unknown:
		return "UNKNOWN"
	case Sat:
		return "SAT"
	case Unsat:
		return "UNSAT"
	default:
		panic("invalid verdict")
	}
}

// Assignment is a partial mapping from variable to boolean value. A
// variable is unassigned iff it is absent as a key.
type Assignment map[Var]bool

// Clone returns an independent copy of a.
func (a Assignment) Clone() Assignment {
	c := make(Assignment, len(a))
	for k, v := range a {
		c[k] = v
	}
	return c
}
