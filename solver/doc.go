/*
Package solver implements the core of a quantified boolean formula
solver: a preprocessor that runs QBF-aware unit propagation and
pure-literal elimination to a fixpoint, and a recursive search engine
that walks the remaining game tree.

Describing a problem

A problem is built by adding quantifier blocks, outermost first, and
then clauses:

    p := solver.NewPreprocessor()
    p.AddBlock(solver.Forall, []solver.Var{1, 2})
    p.AddBlock(solver.Exists, []solver.Var{3})
    p.AddClause([]solver.Literal{solver.IntToLit(1), solver.IntToLit(3)})
    p.AddClause([]solver.Literal{solver.IntToLit(-2), solver.IntToLit(-3)})

or parsed directly from a QDIMACS stream:

    p, err := solver.ParseQDIMACS(f)

Solving a problem

Preprocess simplifies the clause set in place and returns a verdict as
soon as one is implied:

    verdict := p.Preprocess()

If the verdict is still Unknown, hand the preprocessor's state to a
search Engine, which owns its own copy and never touches the
preprocessor again:

    engine := solver.NewEngine(p.Snapshot())
    verdict = engine.Solve()

The final verdict is one of Sat, Unsat or, for Preprocess alone,
Unknown; Engine.Solve always resolves to Sat or Unsat.
*/
package solver
