package engine

import (
	"go.uber.org/zap"

	"github.com/tachyonhpc/tachyon/diag"
	"github.com/tachyonhpc/tachyon/ir"
)

// finder computes the transitive splitter-caller set for one scope: every
// function that is a splitter or that reaches one through a chain of
// direct calls. Intermediate callers are members too, since each link of
// the chain must be inlined to expose the barrier to the outer scope.
//
// The set memoizes positive answers, which keeps diamond call patterns
// linear. Cycles are detected with a visiting mark and reported as
// diag.ErrRecursiveCallGraph instead of diverging.
type finder struct {
	eng      *Engine
	set      map[*ir.Function]bool
	visiting map[*ir.Function]bool
}

func newFinder(e *Engine) *finder {
	return &finder{
		eng:      e,
		set:      make(map[*ir.Function]bool),
		visiting: make(map[*ir.Function]bool),
	}
}

// fromBlocks walks the call sites of the given blocks of f. Indirect
// calls and calls to names the module does not define are skipped.
func (fr *finder) fromBlocks(f *ir.Function, blocks []*ir.BasicBlock) (bool, error) {
	found := false
	for _, bb := range blocks {
		for _, ins := range bb.Instrs {
			if ins.Op != ir.OpCall {
				continue
			}
			callee := f.Callee(ins)
			if callee == nil {
				continue
			}
			ok, err := fr.fromFunc(callee)
			if err != nil {
				return false, err
			}
			if ok {
				found = true
			}
		}
	}
	return found, nil
}

// fromFunc reports whether f is a splitter or transitively calls one,
// inserting f into the set when it does.
func (fr *finder) fromFunc(f *ir.Function) (bool, error) {
	if f.IsDecl() && !f.Intrinsic {
		fr.eng.log.Warn("function is not defined", zap.String("func", f.Name))
		fr.eng.warn(diag.UndefinedCallee(f.Name))
	}
	if fr.eng.oracle.IsSplitterFunc(f) {
		fr.set[f] = true
		return true, nil
	}
	if fr.set[f] {
		return true, nil
	}
	if fr.visiting[f] {
		return false, diag.Recursion(f.Name)
	}
	fr.visiting[f] = true
	defer delete(fr.visiting, f)

	found, err := fr.fromBlocks(f, f.BlockOrder())
	if err != nil {
		return false, err
	}
	if found {
		fr.set[f] = true
	}
	return found, nil
}
