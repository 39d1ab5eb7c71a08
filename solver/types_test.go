package solver

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIntToLit(t *testing.T) {
	assert.Equal(t, Literal{Var: 3, Negated: false}, IntToLit(3))
	assert.Equal(t, Literal{Var: 3, Negated: true}, IntToLit(-3))
}

func TestLiteralComplement(t *testing.T) {
	l := IntToLit(5)
	assert.Equal(t, IntToLit(-5), l.Complement())
	assert.Equal(t, l, l.Complement().Complement())
}

func TestLiteralInt(t *testing.T) {
	assert.Equal(t, 5, IntToLit(5).Int())
	assert.Equal(t, -5, IntToLit(-5).Int())
}

func TestQuantifierString(t *testing.T) {
	assert.Equal(t, "EXISTS", Exists.String())
	assert.Equal(t, "FORALL", Forall.String())
}

func TestVerdictString(t *testing.T) {
	assert.Equal(t, "UNKNOWN", Unknown.String())
	assert.Equal(t, "SAT", Sat.String())
	assert.Equal(t, "UNSAT", Unsat.String())
}

func TestAssignmentClone(t *testing.T) {
	a := Assignment{1: true, 2: false}
	c := a.Clone()
	c[1] = false
	assert.True(t, a[1])
	assert.False(t, c[1])
}
