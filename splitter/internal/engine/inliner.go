package engine

import (
	"go.uber.org/zap"

	"github.com/tachyonhpc/tachyon/analysis"
	"github.com/tachyonhpc/tachyon/diag"
	"github.com/tachyonhpc/tachyon/ir"
)

// inlineCallsInBlock rewrites the call sites of one block to a local
// fixed point. Two rules fire:
//
//   - a call to a splitter-caller set member that is not itself a
//     splitter is inlined, which splits the block and invalidates the
//     instruction scan, so the scan restarts;
//   - a call to a splitter under any name other than the canonical
//     barrier intrinsic is replaced in place by a call to the intrinsic.
//
// Calls to the intrinsic itself, indirect calls, and everything outside
// the set are left untouched.
func (e *Engine) inlineCallsInBlock(f *ir.Function, bb *ir.BasicBlock, set map[*ir.Function]bool) (bool, error) {
	changed := false
	lastChanged := true

	for lastChanged {
		lastChanged = false
		for idx, ins := range bb.Instrs {
			if ins.Op != ir.OpCall {
				continue
			}
			callee := f.Callee(ins)
			if callee == nil {
				continue
			}
			if set[callee] && !e.oracle.IsSplitterFunc(callee) {
				if err := ir.InlineCall(f, bb.ID, idx); err != nil {
					return changed, err
				}
				lastChanged = true
				break
			}
			if e.oracle.IsSplitterFunc(callee) && callee.Name != e.oracle.BarrierIntrinsic() {
				e.log.Info("replacing barrier with intrinsic",
					zap.String("func", f.Name),
					zap.String("barrier", callee.Name))
				e.replaceWithBarrier(f, bb, idx)
				lastChanged = true
				break
			}
		}
		if lastChanged {
			changed = true
		}
	}
	return changed, nil
}

// replaceWithBarrier lowers the call at bb.Instrs[idx] to the canonical
// barrier intrinsic at the same program point, declaring the intrinsic in
// the module on first use. Barriers are void; a result binding on the
// original call is dropped.
func (e *Engine) replaceWithBarrier(f *ir.Function, bb *ir.BasicBlock, idx int) {
	if call, ok := bb.Instrs[idx].Imm.(ir.CallImm); ok && call.Result != "" {
		e.log.Debug("dropping result of barrier call",
			zap.String("func", f.Name),
			zap.String("block", bb.Label),
			zap.String("result", call.Result))
	}
	name := e.oracle.BarrierIntrinsic()
	f.Module.Declare(name, true)
	bb.Instrs[idx] = ir.Call("", name)
}

// inlineCallsInLoop runs the block rewriter over the loop's blocks until
// a full sweep fires no rule. Every structural change refreshes the
// dominator tree and loop info and re-resolves the loop handle, since the
// inline splices fresh blocks into the loop body.
func (e *Engine) inlineCallsInLoop(f *ir.Function, l *analysis.Loop, set map[*ir.Function]bool) (bool, error) {
	header := l.Header
	changed := false
	lastChanged := true

	for lastChanged {
		lastChanged = false
		for _, bb := range l.Blocks(f) {
			ch, err := e.inlineCallsInBlock(f, bb, set)
			if err != nil {
				return changed, err
			}
			if ch {
				lastChanged = true
				break
			}
		}
		if lastChanged {
			changed = true
			_, _, l = analysis.Update(f, header)
			if l == nil {
				return changed, diag.New(diag.PhaseTransform, diag.KindMalformedIR,
					"work-item loop lost during inlining").InFunc(f.Name)
			}
		}
	}
	return changed, nil
}

// inlineCallsInFunction runs the block rewriter over the whole body until
// a full sweep fires no rule. No analysis refresh is needed: nothing
// loop-scoped is being preserved in this fallback.
func (e *Engine) inlineCallsInFunction(f *ir.Function, set map[*ir.Function]bool) (bool, error) {
	changed := false
	lastChanged := true

	for lastChanged {
		lastChanged = false
		for _, bb := range f.BlockOrder() {
			ch, err := e.inlineCallsInBlock(f, bb, set)
			if err != nil {
				return changed, err
			}
			if ch {
				lastChanged = true
				break
			}
		}
		changed = changed || lastChanged
	}
	return changed, nil
}
