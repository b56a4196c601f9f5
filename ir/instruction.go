package ir

// Opcode identifies an instruction or terminator form.
type Opcode byte

const (
	OpNone Opcode = iota

	// ordinary instructions
	OpCompute      // opaque computation
	OpCall         // direct call with a statically-known target
	OpCallIndirect // call through a function value; no static target

	// terminators
	OpBr
	OpCondBr
	OpRet
)

func (op Opcode) String() string {
	switch op {
	case OpCompute:
		return "op"
	case OpCall:
		return "call"
	case OpCallIndirect:
		return "call_indirect"
	case OpBr:
		return "br"
	case OpCondBr:
		return "condbr"
	case OpRet:
		return "ret"
	default:
		return "none"
	}
}

// Instruction represents one non-terminator instruction.
type Instruction struct {
	Imm interface{}
	Op  Opcode
}

// CallImm holds the target name and operands for a direct call.
type CallImm struct {
	Callee string
	Args   []string
	Result string
}

// CallIndirectImm holds the operands for an indirect call. Ptr names the
// function value being invoked.
type CallIndirectImm struct {
	Ptr    string
	Args   []string
	Result string
}

// ComputeImm holds an opaque computation: Text is a printable operation
// description, Result the value it defines (may be empty).
type ComputeImm struct {
	Result string
	Text   string
}

// Compute builds an opaque computation instruction.
func Compute(result, text string) Instruction {
	return Instruction{Op: OpCompute, Imm: ComputeImm{Result: result, Text: text}}
}

// Call builds a direct call instruction.
func Call(result, callee string, args ...string) Instruction {
	return Instruction{Op: OpCall, Imm: CallImm{Callee: callee, Args: args, Result: result}}
}

// cloneInstruction deep-copies an instruction, including immediate slices.
func cloneInstruction(ins Instruction) Instruction {
	switch imm := ins.Imm.(type) {
	case CallImm:
		imm.Args = append([]string(nil), imm.Args...)
		ins.Imm = imm
	case CallIndirectImm:
		imm.Args = append([]string(nil), imm.Args...)
		ins.Imm = imm
	}
	return ins
}

// cloneTerminator deep-copies a terminator.
func cloneTerminator(t Terminator) Terminator {
	t.Succs = append([]BlockID(nil), t.Succs...)
	return t
}
