package ir

// BasicBlock is an ordered instruction sequence with a single terminator.
// Control enters at the top and leaves only through the terminator's
// successor edges.
type BasicBlock struct {
	Label       string
	Func        *Function
	ID          BlockID
	Instrs      []Instruction
	Term        Terminator
	Annotations []string
}

// HasAnnotation reports whether the block carries the given annotation.
func (b *BasicBlock) HasAnnotation(a string) bool {
	for _, have := range b.Annotations {
		if have == a {
			return true
		}
	}
	return false
}

// Succs returns the successor block IDs, derived from the terminator.
func (b *BasicBlock) Succs() []BlockID {
	return b.Term.Succs
}

// Terminator ends a basic block. Op is OpBr (one successor), OpCondBr
// (then/else successors, Cond names the condition value), or OpRet
// (no successors, Val optionally names the returned value).
type Terminator struct {
	Op    Opcode
	Cond  string
	Val   string
	Succs []BlockID
}

// Br builds an unconditional branch terminator.
func Br(to BlockID) Terminator {
	return Terminator{Op: OpBr, Succs: []BlockID{to}}
}

// CondBr builds a two-way conditional branch terminator.
func CondBr(cond string, then, els BlockID) Terminator {
	return Terminator{Op: OpCondBr, Cond: cond, Succs: []BlockID{then, els}}
}

// Ret builds a return terminator. val may be empty for void returns.
func Ret(val string) Terminator {
	return Terminator{Op: OpRet, Val: val}
}
