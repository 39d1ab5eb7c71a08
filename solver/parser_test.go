package solver

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseQDIMACSBasic(t *testing.T) {
	in := `c a comment
p cnf 3 2
e 1 0
a 2 0
e 3 0
1 2 0
-2 3 0
`
	p, err := ParseQDIMACS(strings.NewReader(in))
	require.NoError(t, err)
	require.Equal(t, 3, p.Prefix().Len())
	assert.Equal(t, Exists, p.Prefix().QuantifierOf(1))
	assert.Equal(t, Forall, p.Prefix().QuantifierOf(2))
	assert.Equal(t, Exists, p.Prefix().QuantifierOf(3))
	require.Len(t, p.Clauses(), 2)
	assert.Equal(t, []Literal{IntToLit(1), IntToLit(2)}, p.Clauses()[0].Lits())
	assert.Equal(t, []Literal{IntToLit(-2), IntToLit(3)}, p.Clauses()[1].Lits())
}

func TestParseQDIMACSRejectsQuantifierAfterClause(t *testing.T) {
	in := `p cnf 2 1
1 2 0
e 1 0
`
	_, err := ParseQDIMACS(strings.NewReader(in))
	assert.Error(t, err)
}

func TestParseQDIMACSRejectsUnterminatedQuantifierBlock(t *testing.T) {
	in := `p cnf 1 0
e 1
`
	_, err := ParseQDIMACS(strings.NewReader(in))
	assert.Error(t, err)
}

func TestParseQDIMACSRejectsNonIntegerLiteral(t *testing.T) {
	in := `p cnf 1 1
1 x 0
`
	_, err := ParseQDIMACS(strings.NewReader(in))
	assert.Error(t, err)
}

func TestParseQDIMACSSkipsBlankLines(t *testing.T) {
	in := "c header\n\np cnf 1 1\n\ne 1 0\n\n1 0\n"
	p, err := ParseQDIMACS(strings.NewReader(in))
	require.NoError(t, err)
	assert.Len(t, p.Clauses(), 1)
}
