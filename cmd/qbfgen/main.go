package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/crillab/goqbf/generate"
	"github.com/crillab/goqbf/internal/obs"
)

// version is reported by --version, for parity with blocksqbf.c's
// own --version flag (SPEC_FULL.md §C.2).
const version = "goqbf-generate 1.0"

func main() {
	os.Exit(run())
}

func run() int {
	var (
		numClauses  int
		numBlocks   int
		blockSizes  []int
		blockCounts []int
		seed        int64
		dupLimit    int
		sortClauses bool
		verbosity   int
		showVersion bool
	)

	cmd := &cobra.Command{
		Use:           "qbfgen -c N -b N -bs N -bs N ... -bc N -bc N ...",
		Short:         "Generate a random block-structured quantified boolean formula",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	flags := cmd.Flags()
	flags.IntVarP(&numClauses, "clauses", "c", 0, "total number of clauses to generate")
	flags.IntVarP(&numBlocks, "blocks", "b", 0, "number of quantifier blocks")
	flags.IntSliceVar(&blockSizes, "bs", nil, "block size, repeated once per block outer-to-inner")
	flags.IntSliceVar(&blockCounts, "bc", nil, "per-block clause literal count, repeated once per block outer-to-inner")
	flags.Int64VarP(&seed, "seed", "s", 0, "random seed (default: wall-clock nanoseconds XOR process id)")
	flags.IntVarP(&dupLimit, "dup-limit", "d", 0, "consecutive duplicate-clause regenerations before aborting (default 100)")
	flags.BoolVar(&sortClauses, "sort", false, "sort literals within each clause by absolute variable identifier")
	flags.CountVarP(&verbosity, "verbose", "v", "increase diagnostics verbosity (repeatable)")
	flags.BoolVar(&showVersion, "version", false, "print version and exit")

	cmd.RunE = func(_ *cobra.Command, _ []string) error {
		if showVersion {
			fmt.Println(version)
			return nil
		}
		if seed == 0 {
			seed = int64(time.Now().UnixNano()) ^ int64(os.Getpid())
		}
		return generateToStdout(genArgs{
			numClauses:  numClauses,
			numBlocks:   numBlocks,
			blockSizes:  blockSizes,
			blockCounts: blockCounts,
			seed:        seed,
			dupLimit:    dupLimit,
			sortClauses: sortClauses,
			verbosity:   verbosity,
		})
	}

	// pflag only accepts multi-letter flags with a double dash; accept
	// the single-dash -bs/-bc spelling shown in Use as well.
	args := make([]string, 0, len(os.Args)-1)
	for _, a := range os.Args[1:] {
		if a == "-bs" || a == "-bc" {
			a = "-" + a
		}
		args = append(args, a)
	}
	cmd.SetArgs(args)

	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "qbfgen: %v\n", err)
		return 1
	}
	return 0
}

type genArgs struct {
	numClauses  int
	numBlocks   int
	blockSizes  []int
	blockCounts []int
	seed        int64
	dupLimit    int
	sortClauses bool
	verbosity   int
}

func generateToStdout(a genArgs) error {
	if a.numClauses <= 0 {
		return fmt.Errorf("-c/--clauses is required and must be positive")
	}
	if a.numBlocks <= 0 {
		return fmt.Errorf("-b/--blocks is required and must be positive")
	}
	if len(a.blockSizes) != a.numBlocks {
		return fmt.Errorf("expected %d -bs occurrences, got %d", a.numBlocks, len(a.blockSizes))
	}
	if len(a.blockCounts) != a.numBlocks {
		return fmt.Errorf("expected %d -bc occurrences, got %d", a.numBlocks, len(a.blockCounts))
	}
	for i, k := range a.blockCounts {
		if k < 1 || k > a.blockSizes[i] {
			return fmt.Errorf("-bc[%d]=%d must be between 1 and the block size %d", i, k, a.blockSizes[i])
		}
	}

	log, err := obs.NewLogger(a.verbosity > 0)
	if err != nil {
		return fmt.Errorf("could not build logger: %w", err)
	}
	defer log.Sync() //nolint:errcheck
	tracer := obs.NewTracer(log, nil)

	g := generate.NewGenerator(generate.Params{
		BlockSizes:   a.blockSizes,
		LitsPerBlock: a.blockCounts,
		Clauses:      a.numClauses,
		Seed:         a.seed,
		DupLimit:     a.dupLimit,
		SortClauses:  a.sortClauses,
	})
	g.SetTracer(tracer)

	result := g.Generate()
	if result.Aborted {
		fmt.Fprintf(os.Stderr, "qbfgen: duplicate-resolve limit reached after %d tries; emitting %d of %d requested clauses\n",
			result.NumDropped, len(result.Clauses), a.numClauses)
	}

	headers := []string{
		fmt.Sprintf("seed = %d", a.seed),
		fmt.Sprintf("blocks = %d", a.numBlocks),
		fmt.Sprintf("dup resolve limit = %d", a.dupLimit),
	}
	return generate.WriteQDIMACS(os.Stdout, result, headers)
}
