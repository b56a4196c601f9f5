package splitter

import (
	"go.uber.org/zap"

	"github.com/tachyonhpc/tachyon/annotation"
	"github.com/tachyonhpc/tachyon/ir"
	"github.com/tachyonhpc/tachyon/splitter/internal/engine"
)

// Config configures one pass invocation.
type Config struct {
	// Oracle answers kernel/splitter classification queries. Required.
	Oracle annotation.Oracle
	// Logger receives pass diagnostics. Defaults to the package logger.
	Logger *zap.Logger
}

// Preserved describes which cached analyses survive a pass invocation.
type Preserved int

const (
	// PreservedAll: the function was not mutated.
	PreservedAll Preserved = iota
	// PreservedAnnotationsOnly: code shape changed; only the annotation
	// classification remains valid, loop/dominator/alias results must be
	// recomputed by the scheduler.
	PreservedAnnotationsOnly
)

// Result reports the outcome of one pass invocation.
type Result struct {
	// Diagnostics aggregates non-fatal warnings (undefined callees,
	// unmarked candidate loops). Nil when the run was clean.
	Diagnostics error
	// Changed reports whether the function body was mutated.
	Changed bool
}

// Preserved reports the analysis-invalidation consequence of this run.
func (r Result) Preserved() Preserved {
	if r.Changed {
		return PreservedAnnotationsOnly
	}
	return PreservedAll
}

// Run applies splitter inlining to a single function.
//
// The returned error is fatal (nothing useful was produced); non-fatal
// warnings travel in Result.Diagnostics. Run never mutates functions the
// oracle does not classify as kernels.
func Run(f *ir.Function, cfg Config) (Result, error) {
	log := cfg.Logger
	if log == nil {
		log = Logger()
	}
	eng := engine.New(engine.Config{Oracle: cfg.Oracle, Logger: log})
	changed, err := eng.Run(f)
	return Result{Changed: changed, Diagnostics: eng.Diagnostics()}, err
}

// RunModule applies the pass to every function of a module, in module
// order. It stops at the first fatal error; warnings are aggregated into
// the per-function results, keyed by function name.
func RunModule(m *ir.Module, cfg Config) (map[string]Result, error) {
	results := make(map[string]Result, len(m.Funcs))
	for _, f := range m.Funcs {
		res, err := Run(f, cfg)
		results[f.Name] = res
		if err != nil {
			return results, err
		}
	}
	return results, nil
}
