// Package obs wires structured logging and metrics into the solver
// and generator binaries. Neither cmd/qbfsolve nor cmd/qbfgen links
// against obs for correctness: every counter and log line here is
// diagnostic only and never influences a verdict (spec.md §5).
package obs

import (
	"context"
	"errors"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/crillab/goqbf/solver"
)

// NewLogger returns a zap.SugaredLogger writing to stderr. verbose
// selects development (debug-level, human-readable) vs. production
// (warn-level) encoding, mirroring the teacher's single verbose bool
// (gophersat's s.Verbose) but through zap's standard constructors
// instead of a hand-rolled level check.
func NewLogger(verbose bool) (*zap.SugaredLogger, error) {
	var cfg zap.Config
	if verbose {
		cfg = zap.NewDevelopmentConfig()
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	} else {
		cfg = zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	}
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	logger, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return logger.Sugar(), nil
}

// Metrics holds the Prometheus counters shared by both binaries. Only
// the counters relevant to a given run are ever incremented; the
// generator never touches the solver counters and vice versa.
type Metrics struct {
	Decisions        prometheus.Counter
	Backtracks       prometheus.Counter
	UnitPropagations prometheus.Counter
	PureLiterals     prometheus.Counter
	GeneratedClauses prometheus.Counter
	DuplicateClauses prometheus.Counter
}

// NewMetrics registers the counters against reg and returns them.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Decisions: factory.NewCounter(prometheus.CounterOpts{
			Name: "qbf_decisions_total",
			Help: "Number of search-engine branching decisions made.",
		}),
		Backtracks: factory.NewCounter(prometheus.CounterOpts{
			Name: "qbf_backtracks_total",
			Help: "Number of search-engine backtracks performed.",
		}),
		UnitPropagations: factory.NewCounter(prometheus.CounterOpts{
			Name: "qbf_unit_propagations_total",
			Help: "Number of admissible unit propagations applied.",
		}),
		PureLiterals: factory.NewCounter(prometheus.CounterOpts{
			Name: "qbf_pure_literals_total",
			Help: "Number of pure-literal eliminations applied.",
		}),
		GeneratedClauses: factory.NewCounter(prometheus.CounterOpts{
			Name: "qbf_generated_clauses_total",
			Help: "Number of distinct clauses written by the generator.",
		}),
		DuplicateClauses: factory.NewCounter(prometheus.CounterOpts{
			Name: "qbf_duplicate_clauses_total",
			Help: "Number of duplicate clause draws discarded by the generator.",
		}),
	}
}

// Tracer adapts a zap logger and a Metrics set into solver.Tracer and
// generate.Tracer, the only two diagnostic hooks the core exposes.
type Tracer struct {
	log     *zap.SugaredLogger
	metrics *Metrics
}

// NewTracer returns a Tracer. Either argument may be nil to disable
// that half of the tracing (logging only, metrics only, or neither).
func NewTracer(log *zap.SugaredLogger, metrics *Metrics) *Tracer {
	return &Tracer{log: log, metrics: metrics}
}

func (t *Tracer) UnitPropagated(lit solver.Literal, blockIndex int) {
	if t.metrics != nil {
		t.metrics.UnitPropagations.Inc()
	}
	if t.log != nil {
		t.log.Debugw("unit propagated", "literal", lit.String(), "block", blockIndex)
	}
}

func (t *Tracer) PureLiteralEliminated(v solver.Var, value bool) {
	if t.metrics != nil {
		t.metrics.PureLiterals.Inc()
	}
	if t.log != nil {
		t.log.Debugw("pure literal eliminated", "var", v, "value", value)
	}
}

func (t *Tracer) Decision(v solver.Var, value bool, quant solver.Quantifier) {
	if t.metrics != nil {
		t.metrics.Decisions.Inc()
	}
	if t.log != nil {
		t.log.Debugw("decision", "var", v, "value", value, "quantifier", quant.String())
	}
}

func (t *Tracer) Backtrack(v solver.Var) {
	if t.metrics != nil {
		t.metrics.Backtracks.Inc()
	}
	if t.log != nil {
		t.log.Debugw("backtrack", "var", v)
	}
}

func (t *Tracer) DuplicateClause(tries uint) {
	if t.metrics != nil {
		t.metrics.DuplicateClauses.Inc()
	}
	if t.log != nil {
		t.log.Debugw("duplicate clause discarded", "consecutive_tries", tries)
	}
}

func (t *Tracer) ClauseGenerated(index int, lits []solver.Literal) {
	if t.metrics != nil {
		t.metrics.GeneratedClauses.Inc()
	}
	if t.log != nil {
		t.log.Debugw("clause generated", "index", index, "len", len(lits))
	}
}

// ServeMetrics starts an HTTP server exposing reg's metrics at
// /metrics on addr, shutting down cleanly when ctx is cancelled. It
// is the optional benchmark-harness endpoint of SPEC_FULL.md §B; it
// never gates on or influences the solver's verdict.
func ServeMetrics(ctx context.Context, addr string, reg *prometheus.Registry) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	srv := &http.Server{Addr: addr, Handler: mux}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		return srv.Shutdown(context.Background())
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
