package ir

// BlockID identifies a basic block within its function's arena.
// IDs are stable for the lifetime of the function and never reused.
type BlockID int32

// NoBlock is the invalid block ID.
const NoBlock BlockID = -1

// Function is a named unit of code. A function with no blocks is a
// declaration: either an external symbol or, when Intrinsic is set, a
// compiler built-in that is body-less by design.
type Function struct {
	Name      string
	Module    *Module
	Params    []string
	Blocks    []*BasicBlock // arena indexed by BlockID; nil slots are removed blocks
	Entry     BlockID
	Intrinsic bool
}

// IsDecl reports whether the function has no body.
func (f *Function) IsDecl() bool {
	for _, b := range f.Blocks {
		if b != nil {
			return false
		}
	}
	return true
}

// NumBlocks returns the arena size. Analyses use this to size per-block
// state; nil slots still count.
func (f *Function) NumBlocks() int {
	return len(f.Blocks)
}

// Block returns the block with the given ID, or nil if it was removed or
// the ID is out of range.
func (f *Function) Block(id BlockID) *BasicBlock {
	if id < 0 || int(id) >= len(f.Blocks) {
		return nil
	}
	return f.Blocks[id]
}

// NewBlock appends a fresh block to the arena. The first block created
// becomes the entry block.
func (f *Function) NewBlock(label string) *BasicBlock {
	b := &BasicBlock{
		Label: label,
		Func:  f,
		ID:    BlockID(len(f.Blocks)),
	}
	f.Blocks = append(f.Blocks, b)
	if f.Entry == NoBlock {
		f.Entry = b.ID
	}
	return b
}

// BlockOrder returns the live blocks in arena order.
func (f *Function) BlockOrder() []*BasicBlock {
	out := make([]*BasicBlock, 0, len(f.Blocks))
	for _, b := range f.Blocks {
		if b != nil {
			out = append(out, b)
		}
	}
	return out
}

// Callee resolves the statically-known target of a call instruction.
// Returns nil for non-call instructions, indirect calls, and targets the
// module does not define.
func (f *Function) Callee(ins Instruction) *Function {
	if ins.Op != OpCall || f.Module == nil {
		return nil
	}
	imm, ok := ins.Imm.(CallImm)
	if !ok {
		return nil
	}
	return f.Module.Func(imm.Callee)
}
