package solver

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// A scenario associates a QDIMACS source with its expected verdict,
// run through preprocessing alone, then (if still Unknown) through
// the search engine.
type scenario struct {
	name     string
	qdimacs  string
	expected Verdict
}

var scenarios = []scenario{
	{
		name:     "unit chain",
		qdimacs:  "p cnf 1 1\ne 1 0\n1 0\n",
		expected: Sat,
	},
	{
		name:     "immediate contradiction",
		qdimacs:  "p cnf 1 2\ne 1 0\n1 0\n-1 0\n",
		expected: Unsat,
	},
	{
		name:     "universal falsifies",
		qdimacs:  "p cnf 2 2\na 1 0\ne 2 0\n1 2 0\n1 -2 0\n",
		expected: Unsat,
	},
	{
		name:     "simple forall/exists win",
		qdimacs:  "p cnf 2 2\na 1 0\ne 2 0\n-1 2 0\n1 -2 0\n",
		expected: Sat,
	},
	{
		name:     "alternating four-variable formula",
		qdimacs:  "p cnf 4 4\ne 1 0\na 2 0\ne 3 4 0\n1 -2 0\n-1 3 0\n2 4 0\n3 4 0\n",
		expected: Sat,
	},
	{
		name:     "pure-literal sweep",
		qdimacs:  "p cnf 2 2\ne 1 2 0\n1 2 0\n1 -2 0\n",
		expected: Sat,
	},
}

func runScenario(t *testing.T, s scenario) {
	p, err := ParseQDIMACS(strings.NewReader(s.qdimacs))
	require.NoError(t, err)

	verdict := p.Preprocess()
	if verdict == Unknown {
		engine := NewEngine(p.Snapshot())
		verdict = engine.Solve()
	}
	assert.Equal(t, s.expected, verdict, "scenario %q", s.name)
}

func TestScenarios(t *testing.T) {
	for _, s := range scenarios {
		s := s
		t.Run(s.name, func(t *testing.T) {
			runScenario(t, s)
		})
	}
}

func TestPreprocessEmptyMatrixWithNonEmptyPrefixIsSat(t *testing.T) {
	p := NewPreprocessor()
	p.AddBlock(Exists, []Var{1})
	assert.Equal(t, Sat, p.Preprocess())
}

func TestPreprocessEmptyClauseIsUnsat(t *testing.T) {
	p := NewPreprocessor()
	p.AddBlock(Exists, []Var{1})
	p.AddClause(nil)
	assert.Equal(t, Unsat, p.Preprocess())
}

func TestPreprocessDefersInadmissibleUnitUntilAdmissible(t *testing.T) {
	// (x2) is a unit clause, but x2 is existential and co-occurs with
	// x1 (an earlier, still-unassigned universal) in (-x1, x2), so
	// propagating x2 is initially inadmissible. x1 is pure-negative,
	// so pure-literal elimination assigns it its falsifying value
	// (true), which satisfies nothing outright but clears x1 from
	// (-x1, x2); only then does x2's unit clause become admissible
	// and propagate to true, reaching SAT.
	p := NewPreprocessor()
	p.AddBlock(Forall, []Var{1})
	p.AddBlock(Exists, []Var{2})
	p.AddClause([]Literal{IntToLit(2)})
	p.AddClause([]Literal{IntToLit(-1), IntToLit(2)})

	verdict := p.Preprocess()
	assert.Equal(t, Sat, verdict)
	assert.True(t, p.Assignment()[2])
}

func TestPreprocessInvariantsHoldAfterFixpoint(t *testing.T) {
	p, err := ParseQDIMACS(strings.NewReader(
		"p cnf 4 4\ne 1 0\na 2 0\ne 3 4 0\n1 -2 0\n-1 3 0\n2 4 0\n3 4 0\n"))
	require.NoError(t, err)
	p.Preprocess()

	for _, c := range p.Clauses() {
		for _, lit := range c.Lits() {
			_, assigned := p.Assignment()[lit.Var]
			assert.False(t, assigned, "matrix must not reference assigned variable %d", lit.Var)
		}
	}
	for v := range p.Assignment() {
		idx := p.Prefix().BlockIndex(v)
		assert.GreaterOrEqual(t, idx, 0)
	}
}

func TestPreprocessDeterministic(t *testing.T) {
	src := "p cnf 4 4\ne 1 0\na 2 0\ne 3 4 0\n1 -2 0\n-1 3 0\n2 4 0\n3 4 0\n"

	p1, err := ParseQDIMACS(strings.NewReader(src))
	require.NoError(t, err)
	v1 := p1.Preprocess()

	p2, err := ParseQDIMACS(strings.NewReader(src))
	require.NoError(t, err)
	v2 := p2.Preprocess()

	assert.Equal(t, v1, v2)
	assert.Equal(t, p1.Assignment(), p2.Assignment())
}
