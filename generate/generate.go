// Package generate builds random block-structured quantified boolean
// formulas and writes them out as QDIMACS, per spec.md §4.3.
package generate

import (
	"bufio"
	"fmt"
	"io"
	"math/rand"
	"sort"

	"github.com/crillab/goqbf/solver"
)

// primes rotates through a small table of primes to combine per-
// position literal values into a clause hash, mirroring
// blocksqbf.c's hash() over its fixed-length lits array.
var primes = []uint64{1000003, 1000033, 1000037, 1000039, 1000081, 1000099}

// Tracer receives diagnostic events from a Generator. Nil-safe.
type Tracer interface {
	DuplicateClause(tries uint)
	ClauseGenerated(index int, lits []solver.Literal)
}

// Params configures a single generation run (spec.md §4.3).
type Params struct {
	// BlockSizes holds s[0..B), outermost first.
	BlockSizes []int
	// LitsPerBlock holds k[0..B), the number of distinct variables
	// drawn per clause from each corresponding block.
	LitsPerBlock []int
	// Clauses is C, the total number of clauses to generate.
	Clauses int
	// Seed seeds the PRNG. Callers needing the original's wall-clock
	// default must compute it themselves; Generate never reads the
	// clock (spec.md §5 keeps the core free of ambient time/process
	// state beyond what is explicitly passed in).
	Seed int64
	// DupLimit bounds consecutive duplicate-clause regenerations
	// before generation aborts early. Zero means the default of 100.
	DupLimit int
	// SortClauses, when true, sorts each clause's literals by
	// absolute variable identifier before writing it out.
	SortClauses bool
}

const defaultDupLimit = 100

// Result is the outcome of a single Generate call.
type Result struct {
	Prefix     *solver.Prefix
	Clauses    [][]solver.Literal
	Aborted    bool // true if dup_limit was reached before Clauses clauses were produced
	NumDropped int  // consecutive duplicates discarded at abort time
}

// clauseKey is the literal sequence of a generated clause, used both
// for exact equality comparison after a hash collision and as the entry
// stored in the chained dedup table (Go's map already chains internally,
// so the bucket-and-chain structure of blocksqbf.c's clause_table
// collapses to map[hash][]entry only to preserve the same hash-then-
// compare two-step instead of relying on a direct map[string]bool,
// keeping the generator's behavior traceable to its source).
type clauseKey struct {
	vars    []solver.Var
	negated []bool
}

func keyOf(lits []solver.Literal) clauseKey {
	k := clauseKey{vars: make([]solver.Var, len(lits)), negated: make([]bool, len(lits))}
	for i, l := range lits {
		k.vars[i] = l.Var
		k.negated[i] = l.Negated
	}
	return k
}

func (a clauseKey) equal(b clauseKey) bool {
	if len(a.vars) != len(b.vars) {
		return false
	}
	for i := range a.vars {
		if a.vars[i] != b.vars[i] || a.negated[i] != b.negated[i] {
			return false
		}
	}
	return true
}

func hashKey(k clauseKey) uint64 {
	var result uint64
	i := 0
	for j, v := range k.vars {
		lit := int64(v)
		if k.negated[j] {
			lit = -lit
		}
		result += uint64(lit) * primes[i]
		i++
		if i == len(primes) {
			i = 0
		}
	}
	return result
}

// Generator builds random QBF instances according to Params (spec.md
// §4.3), grounded on blocksqbf.c's block-relative variable ranges,
// rotating-prime clause hash and chained-bucket dedup table.
type Generator struct {
	params Params
	rng    *rand.Rand
	tracer Tracer

	minID []int // minblockids
	maxID []int // maxblockids

	buckets map[uint64][]clauseKey
}

// NewGenerator returns a Generator configured by p. p.BlockSizes and
// p.LitsPerBlock must have equal, nonzero length.
func NewGenerator(p Params) *Generator {
	if len(p.BlockSizes) == 0 || len(p.BlockSizes) != len(p.LitsPerBlock) {
		panic("generate: BlockSizes and LitsPerBlock must be equal-length and nonempty")
	}
	if p.DupLimit == 0 {
		p.DupLimit = defaultDupLimit
	}
	g := &Generator{
		params:  p,
		rng:     rand.New(rand.NewSource(p.Seed)),
		buckets: make(map[uint64][]clauseKey),
	}
	g.minID = make([]int, len(p.BlockSizes))
	g.maxID = make([]int, len(p.BlockSizes))
	id := 1
	for i, size := range p.BlockSizes {
		g.minID[i] = id
		g.maxID[i] = id + size - 1
		id += size
	}
	return g
}

// SetTracer installs t as the generator's diagnostic tracer.
func (g *Generator) SetTracer(t Tracer) {
	g.tracer = t
}

// prefix builds the quantifier prefix for the configured blocks:
// innermost existential, alternating outward (spec.md §4.3).
func (g *Generator) prefix() *solver.Prefix {
	p := solver.NewPrefix()
	numBlocks := len(g.params.BlockSizes)
	for i, size := range g.params.BlockSizes {
		q := solver.Exists
		if (numBlocks-1-i)%2 != 0 {
			q = solver.Forall
		}
		vars := make([]solver.Var, size)
		for j := 0; j < size; j++ {
			vars[j] = solver.Var(g.minID[i] + j)
		}
		p.AddBlock(q, vars)
	}
	return p
}

// Generate runs the full generation procedure and returns the
// resulting prefix and clause set.
func (g *Generator) Generate() Result {
	prefix := g.prefix()
	clauses := make([][]solver.Literal, 0, g.params.Clauses)
	dupTries := 0

	for len(clauses) < g.params.Clauses {
		lits := g.drawClause()
		key := keyOf(lits)
		h := hashKey(key) % uint64(g.params.Clauses)

		if g.isDuplicate(h, key) {
			dupTries++
			if g.tracer != nil {
				g.tracer.DuplicateClause(uint(dupTries))
			}
			if dupTries >= g.params.DupLimit {
				return Result{Prefix: prefix, Clauses: clauses, Aborted: true, NumDropped: dupTries}
			}
			continue
		}
		dupTries = 0
		g.buckets[h] = append(g.buckets[h], key)

		if g.params.SortClauses {
			sortLits(lits)
		}
		clauses = append(clauses, lits)
		if g.tracer != nil {
			g.tracer.ClauseGenerated(len(clauses), lits)
		}
	}
	return Result{Prefix: prefix, Clauses: clauses}
}

func (g *Generator) isDuplicate(h uint64, key clauseKey) bool {
	for _, existing := range g.buckets[h] {
		if existing.equal(key) {
			return true
		}
	}
	return false
}

// drawClause draws, for each block i, k[i] distinct variables from
// that block's identifier range (redrawing on in-clause collision)
// and negates each with probability 1/2 (spec.md §4.3).
func (g *Generator) drawClause() []solver.Literal {
	var lits []solver.Literal
	for i, k := range g.params.LitsPerBlock {
		lo, hi := g.minID[i], g.maxID[i]
		seen := make(map[int]bool, k)
		for len(seen) < k {
			id := lo + g.rng.Intn(hi-lo+1)
			if seen[id] {
				continue
			}
			seen[id] = true
			lits = append(lits, solver.Lit(solver.Var(id), g.rng.Intn(2) == 0))
		}
	}
	return lits
}

func sortLits(lits []solver.Literal) {
	sort.Slice(lits, func(i, j int) bool { return lits[i].Var < lits[j].Var })
}

// WriteQDIMACS writes r as a QDIMACS text stream (spec.md §4.3):
// optional header comments, the p cnf line, one quantifier line per
// block, then one clause line per clause.
func WriteQDIMACS(w io.Writer, r Result, headerComments []string) error {
	bw := bufio.NewWriter(w)
	for _, line := range headerComments {
		if _, err := fmt.Fprintf(bw, "c %s\n", line); err != nil {
			return err
		}
	}
	numVars := 0
	for _, b := range r.Prefix.Blocks() {
		numVars += len(b.Variables)
	}
	if _, err := fmt.Fprintf(bw, "p cnf %d %d\n", numVars, len(r.Clauses)); err != nil {
		return err
	}
	for _, b := range r.Prefix.Blocks() {
		tag := "e"
		if b.Quantifier == solver.Forall {
			tag = "a"
		}
		if _, err := fmt.Fprintf(bw, "%s", tag); err != nil {
			return err
		}
		for _, v := range b.Variables {
			if _, err := fmt.Fprintf(bw, " %d", v); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprint(bw, " 0\n"); err != nil {
			return err
		}
	}
	for _, lits := range r.Clauses {
		for _, l := range lits {
			if _, err := fmt.Fprintf(bw, "%s ", l.String()); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprint(bw, "0\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}
