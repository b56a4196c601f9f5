package irtext

import (
	"strings"

	"github.com/tachyonhpc/tachyon/ir"
)

func print(m *ir.Module, info *Info) string {
	kernels := make(map[string]bool)
	splitters := make(map[string]bool)
	if info != nil {
		for _, k := range info.Kernels {
			kernels[k] = true
		}
		for _, s := range info.Splitters {
			splitters[s] = true
		}
	}

	var b strings.Builder
	b.WriteString("module ")
	b.WriteString(m.Name)
	b.WriteString("\n")

	for _, f := range m.Funcs {
		b.WriteString("\n")
		if f.IsDecl() {
			b.WriteString("declare @")
			b.WriteString(f.Name)
			if splitters[f.Name] {
				b.WriteString(" splitter")
			}
			if f.Intrinsic {
				b.WriteString(" intrinsic")
			}
			b.WriteString("\n")
			continue
		}
		printFunc(&b, f, kernels[f.Name], splitters[f.Name])
	}

	if info != nil && info.Barrier != "" {
		b.WriteString("\nbarrier @")
		b.WriteString(info.Barrier)
		b.WriteString("\n")
	}
	return b.String()
}

func printFunc(b *strings.Builder, f *ir.Function, kernel, splitter bool) {
	b.WriteString("func @")
	b.WriteString(f.Name)
	if len(f.Params) > 0 {
		b.WriteString("(")
		b.WriteString(strings.Join(f.Params, ", "))
		b.WriteString(")")
	}
	if kernel {
		b.WriteString(" kernel")
	}
	if splitter {
		b.WriteString(" splitter")
	}
	b.WriteString(" {\n")

	for _, bb := range f.BlockOrder() {
		b.WriteString(bb.Label)
		if len(bb.Annotations) > 0 {
			b.WriteString(" [")
			b.WriteString(strings.Join(bb.Annotations, ", "))
			b.WriteString("]")
		}
		b.WriteString(":\n")
		for _, ins := range bb.Instrs {
			b.WriteString("  ")
			printInstr(b, ins)
			b.WriteString("\n")
		}
		b.WriteString("  ")
		printTerm(b, f, bb.Term)
		b.WriteString("\n")
	}
	b.WriteString("}\n")
}

func printInstr(b *strings.Builder, ins ir.Instruction) {
	switch imm := ins.Imm.(type) {
	case ir.ComputeImm:
		if imm.Result != "" {
			b.WriteString(imm.Result)
			b.WriteString(" = ")
		}
		b.WriteString("op ")
		b.WriteString(imm.Text)
	case ir.CallImm:
		if imm.Result != "" {
			b.WriteString(imm.Result)
			b.WriteString(" = ")
		}
		b.WriteString("call @")
		b.WriteString(imm.Callee)
		b.WriteString("(")
		b.WriteString(strings.Join(imm.Args, ", "))
		b.WriteString(")")
	case ir.CallIndirectImm:
		if imm.Result != "" {
			b.WriteString(imm.Result)
			b.WriteString(" = ")
		}
		b.WriteString("call_indirect ")
		b.WriteString(imm.Ptr)
		b.WriteString("(")
		b.WriteString(strings.Join(imm.Args, ", "))
		b.WriteString(")")
	}
}

func printTerm(b *strings.Builder, f *ir.Function, t ir.Terminator) {
	label := func(id ir.BlockID) string {
		if blk := f.Block(id); blk != nil {
			return blk.Label
		}
		return "<dead>"
	}
	switch t.Op {
	case ir.OpBr:
		b.WriteString("br ")
		b.WriteString(label(t.Succs[0]))
	case ir.OpCondBr:
		b.WriteString("condbr ")
		b.WriteString(t.Cond)
		b.WriteString(", ")
		b.WriteString(label(t.Succs[0]))
		b.WriteString(", ")
		b.WriteString(label(t.Succs[1]))
	case ir.OpRet:
		b.WriteString("ret")
		if t.Val != "" {
			b.WriteString(" ")
			b.WriteString(t.Val)
		}
	default:
		b.WriteString("<no terminator>")
	}
}
