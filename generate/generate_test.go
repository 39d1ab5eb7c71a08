package generate

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crillab/goqbf/solver"
)

func TestGenerateProducesRequestedClauseCount(t *testing.T) {
	g := NewGenerator(Params{
		BlockSizes:   []int{4, 6},
		LitsPerBlock: []int{2, 3},
		Clauses:      20,
		Seed:         1,
	})
	res := g.Generate()
	require.False(t, res.Aborted)
	assert.Len(t, res.Clauses, 20)
}

func TestGenerateBlockVariableRanges(t *testing.T) {
	g := NewGenerator(Params{
		BlockSizes:   []int{3, 5},
		LitsPerBlock: []int{2, 2},
		Clauses:      10,
		Seed:         42,
	})
	res := g.Generate()
	blocks := res.Prefix.Blocks()
	require.Len(t, blocks, 2)
	assert.Equal(t, []solver.Var{1, 2, 3}, blocks[0].Variables)
	assert.Equal(t, []solver.Var{4, 5, 6, 7, 8}, blocks[1].Variables)
}

func TestGenerateQuantifierAlternationInnermostExists(t *testing.T) {
	g := NewGenerator(Params{
		BlockSizes:   []int{2, 2, 2},
		LitsPerBlock: []int{1, 1, 1},
		Clauses:      5,
		Seed:         7,
	})
	blocks := g.prefix().Blocks()
	require.Len(t, blocks, 3)
	assert.Equal(t, solver.Exists, blocks[0].Quantifier)
	assert.Equal(t, solver.Forall, blocks[1].Quantifier)
	assert.Equal(t, solver.Exists, blocks[2].Quantifier)
}

func TestGenerateDeterministicGivenSeed(t *testing.T) {
	params := Params{
		BlockSizes:   []int{5, 5},
		LitsPerBlock: []int{2, 2},
		Clauses:      15,
		Seed:         99,
	}
	a := NewGenerator(params).Generate()
	b := NewGenerator(params).Generate()
	require.Len(t, a.Clauses, len(b.Clauses))
	for i := range a.Clauses {
		assert.Equal(t, a.Clauses[i], b.Clauses[i])
	}
}

func TestGenerateAbortsAfterDupLimit(t *testing.T) {
	// A single-variable, single-block configuration can only produce
	// two distinct unit clauses (1 or -1), so asking for more than
	// that forces the dup-resolve limit to trip.
	g := NewGenerator(Params{
		BlockSizes:   []int{1},
		LitsPerBlock: []int{1},
		Clauses:      50,
		Seed:         3,
		DupLimit:     5,
	})
	res := g.Generate()
	assert.True(t, res.Aborted)
	assert.LessOrEqual(t, len(res.Clauses), 2)
}

func TestWriteQDIMACSRoundTrips(t *testing.T) {
	g := NewGenerator(Params{
		BlockSizes:   []int{2, 3},
		LitsPerBlock: []int{1, 2},
		Clauses:      6,
		Seed:         5,
	})
	res := g.Generate()

	var buf bytes.Buffer
	require.NoError(t, WriteQDIMACS(&buf, res, []string{"generated by test"}))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "c generated by test\n"))
	assert.Contains(t, out, "p cnf 5 6\n")

	p, err := solver.ParseQDIMACS(&buf)
	require.NoError(t, err)
	assert.Len(t, p.Clauses(), 6)
	assert.Equal(t, 2, p.Prefix().Len())
}
