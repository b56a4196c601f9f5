package ir

import (
	"github.com/tachyonhpc/tachyon/diag"
)

// Validate checks structural consistency of a function body: an entry
// block exists, every live block has a terminator, every successor edge
// targets a live block, and no terminator opcode appears mid-block.
// Declarations are trivially valid.
func Validate(f *Function) error {
	if f.IsDecl() {
		return nil
	}
	if f.Block(f.Entry) == nil {
		return diag.New(diag.PhaseVerify, diag.KindMalformedIR, "entry block missing").InFunc(f.Name)
	}
	for _, b := range f.Blocks {
		if b == nil {
			continue
		}
		for _, ins := range b.Instrs {
			switch ins.Op {
			case OpCompute, OpCall, OpCallIndirect:
			default:
				return diag.New(diag.PhaseVerify, diag.KindMalformedIR,
					"%s is not a plain instruction", ins.Op).InFunc(f.Name).InBlock(b.Label)
			}
		}
		switch b.Term.Op {
		case OpBr, OpCondBr:
			for _, s := range b.Term.Succs {
				if f.Block(s) == nil {
					return diag.New(diag.PhaseVerify, diag.KindMalformedIR,
						"successor %d does not exist", s).InFunc(f.Name).InBlock(b.Label)
				}
			}
			want := 1
			if b.Term.Op == OpCondBr {
				want = 2
			}
			if len(b.Term.Succs) != want {
				return diag.New(diag.PhaseVerify, diag.KindMalformedIR,
					"%s has %d successors, want %d", b.Term.Op, len(b.Term.Succs), want).
					InFunc(f.Name).InBlock(b.Label)
			}
		case OpRet:
			if len(b.Term.Succs) != 0 {
				return diag.New(diag.PhaseVerify, diag.KindMalformedIR,
					"ret has successors").InFunc(f.Name).InBlock(b.Label)
			}
		default:
			return diag.New(diag.PhaseVerify, diag.KindMalformedIR,
				"missing terminator").InFunc(f.Name).InBlock(b.Label)
		}
	}
	return nil
}
