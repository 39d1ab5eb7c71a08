package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/crillab/goqbf/internal/obs"
	"github.com/crillab/goqbf/solver"
)

func main() {
	os.Exit(run())
}

func run() int {
	var verbose bool

	cmd := &cobra.Command{
		Use:           "qbfsolve [options] <file.qdimacs>",
		Short:         "Decide the truth value of a quantified boolean formula",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "print decision/backtrack trace to stderr")

	exitCode := 1
	cmd.RunE = func(_ *cobra.Command, args []string) error {
		code, err := solveFile(args[0], verbose)
		exitCode = code
		return err
	}

	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "qbfsolve: %v\n", err)
		return 1
	}
	return exitCode
}

func solveFile(path string, verbose bool) (int, error) {
	log, err := obs.NewLogger(verbose)
	if err != nil {
		return 1, fmt.Errorf("could not build logger: %w", err)
	}
	defer log.Sync() //nolint:errcheck

	f, err := os.Open(path)
	if err != nil {
		return 1, fmt.Errorf("could not open %q: %w", path, err)
	}
	defer f.Close()

	p, err := solver.ParseQDIMACS(f)
	if err != nil {
		return 1, fmt.Errorf("could not parse %q: %w", path, err)
	}

	tracer := obs.NewTracer(log, nil)
	p.SetTracer(tracer)

	fmt.Printf("c solving %s\n", path)
	if verbose {
		fmt.Printf("c blocks: %d, clauses: %d\n", p.Prefix().Len(), len(p.Clauses()))
	}

	verdict := p.Preprocess()
	if verdict == solver.Unknown {
		engine := solver.NewEngine(p.Snapshot())
		engine.SetTracer(tracer)
		verdict = engine.Solve()
	}

	fmt.Println(verdict)
	if verdict == solver.Sat {
		return 0, nil
	}
	return 1, nil
}
