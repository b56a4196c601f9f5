package engine

import (
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/tachyonhpc/tachyon/analysis"
	"github.com/tachyonhpc/tachyon/annotation"
	"github.com/tachyonhpc/tachyon/diag"
	"github.com/tachyonhpc/tachyon/ir"
)

// Config configures the transformation engine.
type Config struct {
	Oracle annotation.Oracle
	Logger *zap.Logger
}

// Engine drives splitter inlining for one or more functions.
//
// The engine accumulates non-fatal diagnostics across Run calls; fatal
// errors abort the current function's transformation and are returned.
type Engine struct {
	oracle annotation.Oracle
	log    *zap.Logger
	warns  error
}

// New creates an engine.
func New(cfg Config) *Engine {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{oracle: cfg.Oracle, log: log}
}

// Diagnostics returns the accumulated non-fatal warnings, or nil.
func (e *Engine) Diagnostics() error {
	return e.warns
}

func (e *Engine) warn(err error) {
	e.warns = multierr.Append(e.warns, err)
}

// Run transforms f and reports whether its body changed.
//
// Non-kernel functions are left untouched. For kernels the scope is the
// single work-item loop when one exists, otherwise the whole body.
func (e *Engine) Run(f *ir.Function) (bool, error) {
	if e.oracle == nil {
		return false, diag.New(diag.PhaseTransform, diag.KindInvalidInput, "no annotation oracle")
	}
	if !e.oracle.IsKernelFunc(f) {
		return false, nil
	}

	dt := analysis.BuildDomTree(f)
	li := analysis.BuildLoopInfo(f, dt)

	if l := annotation.SingleWorkItemLoop(f, li); l != nil {
		return e.inlineSplitterInLoop(f, l)
	}

	// A lone unmarked loop is suspicious: the kernel front end should have
	// tagged it. Warn, then treat the whole body as the scope.
	if top := li.TopLevel(); len(top) == 1 {
		header := f.Block(top[0].Header)
		e.log.Warn("not a work-item loop",
			zap.String("func", f.Name),
			zap.String("header", header.Label))
		e.warn(diag.New(diag.PhaseAnalyze, diag.KindNotWorkItemLoop,
			"loop header %s lacks the work-item marker", header.Label).InFunc(f.Name))
	}

	fr := newFinder(e)
	found, err := fr.fromFunc(f)
	if err != nil {
		return false, err
	}
	if !found {
		e.log.Debug("transitively no splitter found in kernel", zap.String("func", f.Name))
		return false, nil
	}
	return e.inlineCallsInFunction(f, fr.set)
}

// inlineSplitterInLoop transforms the loop-scoped case: only call sites
// inside the work-item loop participate, calls elsewhere in the kernel
// are deliberately left alone.
func (e *Engine) inlineSplitterInLoop(f *ir.Function, l *analysis.Loop) (bool, error) {
	fr := newFinder(e)
	found, err := fr.fromBlocks(f, l.Blocks(f))
	if err != nil {
		return false, err
	}
	if !found {
		e.log.Debug("transitively no splitter found in loop", zap.String("func", f.Name))
		return false, nil
	}
	return e.inlineCallsInLoop(f, l, fr.set)
}
