package ir

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/tachyonhpc/tachyon/diag"
)

// InlineCall replaces the direct call at instruction index idx of block id
// with the callee's control flow:
//
//  1. the host block is split after the call; the tail instructions and
//     the original terminator move to a fresh continuation block,
//  2. the callee's live blocks are cloned into the host arena, with ret
//     terminators rewritten to branch to the continuation block,
//  3. the host block binds call arguments to parameter names and branches
//     to the cloned entry.
//
// Value names inside the clone are not renamed: the IR carries no def-use
// graph, names exist for printing and debugging only.
//
// The callee must have a body; inlining a declaration reports
// diag.ErrDeclaration.
func InlineCall(f *Function, id BlockID, idx int) error {
	bb := f.Block(id)
	if bb == nil {
		return diag.New(diag.PhaseTransform, diag.KindMalformedIR, "no block %d", id).InFunc(f.Name)
	}
	if idx < 0 || idx >= len(bb.Instrs) || bb.Instrs[idx].Op != OpCall {
		return diag.New(diag.PhaseTransform, diag.KindMalformedIR,
			"instruction %d is not a call", idx).InFunc(f.Name).InBlock(bb.Label)
	}
	call := bb.Instrs[idx].Imm.(CallImm)
	callee := f.Module.Func(call.Callee)
	if callee == nil {
		return diag.New(diag.PhaseTransform, diag.KindUnknownSymbol,
			"callee @%s", call.Callee).InFunc(f.Name).InBlock(bb.Label)
	}
	if callee.IsDecl() {
		return diag.Wrap(diag.PhaseTransform, diag.KindMalformedIR, diag.ErrDeclaration,
			"cannot inline @%s", callee.Name).InFunc(f.Name)
	}

	Logger().Debug("inlining call",
		zap.String("caller", f.Name),
		zap.String("callee", callee.Name),
		zap.String("block", bb.Label))

	// Continuation block takes the tail of the host block.
	cont := f.NewBlock(fmt.Sprintf("%s.split%d", bb.Label, len(f.Blocks)))
	cont.Instrs = append(cont.Instrs, bb.Instrs[idx+1:]...)
	cont.Term = bb.Term

	// Clone the callee body, remapping block IDs into the host arena.
	remap := make(map[BlockID]BlockID, len(callee.Blocks))
	for _, src := range callee.Blocks {
		if src == nil {
			continue
		}
		dst := f.NewBlock(fmt.Sprintf("%s.%s.%d", callee.Name, src.Label, len(f.Blocks)))
		dst.Annotations = append([]string(nil), src.Annotations...)
		for _, ins := range src.Instrs {
			dst.Instrs = append(dst.Instrs, cloneInstruction(ins))
		}
		dst.Term = cloneTerminator(src.Term)
		remap[src.ID] = dst.ID
	}
	for _, src := range callee.Blocks {
		if src == nil {
			continue
		}
		dst := f.Block(remap[src.ID])
		if dst.Term.Op == OpRet {
			if call.Result != "" && dst.Term.Val != "" {
				dst.Instrs = append(dst.Instrs, Compute(call.Result, "id "+dst.Term.Val))
			}
			dst.Term = Br(cont.ID)
			continue
		}
		for i, s := range dst.Term.Succs {
			dst.Term.Succs[i] = remap[s]
		}
	}

	// Rewire the host block: bind arguments, branch into the clone.
	bb.Instrs = bb.Instrs[:idx]
	for i, p := range callee.Params {
		if i < len(call.Args) {
			bb.Instrs = append(bb.Instrs, Compute(p, "id "+call.Args[i]))
		}
	}
	bb.Term = Br(remap[callee.Entry])
	return nil
}
