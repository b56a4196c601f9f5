package ir

import (
	"errors"
	"testing"

	"github.com/tachyonhpc/tachyon/diag"
)

// buildCallerCallee sets up @caller with pre/call/post in one block and a
// single-block @callee with one compute and a ret.
func buildCallerCallee(t *testing.T) (*Module, *Function, *Function) {
	t.Helper()
	m := NewModule("test")

	callee := m.NewFunc("callee", "p")
	cb := callee.NewBlock("entry")
	cb.Instrs = append(cb.Instrs, Compute("v", "mul p two"))
	cb.Term = Ret("v")

	caller := m.NewFunc("caller")
	bb := caller.NewBlock("entry")
	bb.Instrs = append(bb.Instrs,
		Compute("a", "const 1"),
		Call("r", "callee", "a"),
		Compute("b", "add r a"),
	)
	bb.Term = Ret("b")
	return m, caller, callee
}

// TestInlineCall_SplitsBlock tests the basic splice: the host block is
// split at the call, the callee body becomes host blocks, and control
// rejoins at the continuation.
func TestInlineCall_SplitsBlock(t *testing.T) {
	_, caller, _ := buildCallerCallee(t)
	entry := caller.Block(caller.Entry)

	if err := InlineCall(caller, entry.ID, 1); err != nil {
		t.Fatalf("InlineCall: %v", err)
	}
	if err := Validate(caller); err != nil {
		t.Fatalf("Validate after inline: %v", err)
	}

	// No call remains anywhere in the caller.
	for _, bb := range caller.BlockOrder() {
		for _, ins := range bb.Instrs {
			if ins.Op == OpCall {
				t.Fatalf("call survived inlining in block %s", bb.Label)
			}
		}
	}

	// Host block kept the prefix and now binds the argument.
	if len(entry.Instrs) != 2 {
		t.Fatalf("host block has %d instrs, want prefix + arg binding", len(entry.Instrs))
	}
	if imm := entry.Instrs[1].Imm.(ComputeImm); imm.Result != "p" {
		t.Errorf("arg binding defines %q, want callee param p", imm.Result)
	}
	if entry.Term.Op != OpBr {
		t.Fatalf("host terminator = %v, want br into clone", entry.Term.Op)
	}

	// The cloned body branches on to a continuation that kept the tail
	// and the original ret.
	clone := caller.Block(entry.Term.Succs[0])
	if clone.Term.Op != OpBr {
		t.Fatalf("clone terminator = %v, want br to continuation", clone.Term.Op)
	}
	cont := caller.Block(clone.Term.Succs[0])
	if cont.Term.Op != OpRet || cont.Term.Val != "b" {
		t.Errorf("continuation terminator = %+v, want original ret b", cont.Term)
	}
	if len(cont.Instrs) != 1 {
		t.Errorf("continuation has %d instrs, want the post-call tail", len(cont.Instrs))
	}

	// The ret value reaches the call result through an id move.
	last := clone.Instrs[len(clone.Instrs)-1].Imm.(ComputeImm)
	if last.Result != "r" || last.Text != "id v" {
		t.Errorf("result move = %+v, want r = id v", last)
	}
}

// TestInlineCall_MultiReturn tests that every ret block of the callee is
// rewired to the continuation.
func TestInlineCall_MultiReturn(t *testing.T) {
	m := NewModule("test")

	callee := m.NewFunc("pick", "c")
	e := callee.NewBlock("entry")
	a := callee.NewBlock("a")
	b := callee.NewBlock("b")
	e.Term = CondBr("c", a.ID, b.ID)
	a.Term = Ret("")
	b.Term = Ret("")

	caller := m.NewFunc("caller")
	bb := caller.NewBlock("entry")
	bb.Instrs = append(bb.Instrs, Call("", "pick", "x"))
	bb.Term = Ret("")

	if err := InlineCall(caller, bb.ID, 0); err != nil {
		t.Fatalf("InlineCall: %v", err)
	}
	if err := Validate(caller); err != nil {
		t.Fatalf("Validate after inline: %v", err)
	}

	// Both cloned ret blocks must now branch to the same continuation.
	var conts []BlockID
	for _, blk := range caller.BlockOrder() {
		if blk.Term.Op == OpBr && len(blk.Instrs) == 0 && blk != bb {
			conts = append(conts, blk.Term.Succs[0])
		}
	}
	if len(conts) != 2 || conts[0] != conts[1] {
		t.Errorf("cloned rets branch to %v, want one shared continuation", conts)
	}
}

// TestInlineCall_Declaration tests the declaration guard.
func TestInlineCall_Declaration(t *testing.T) {
	m := NewModule("test")
	m.Declare("ext", false)

	caller := m.NewFunc("caller")
	bb := caller.NewBlock("entry")
	bb.Instrs = append(bb.Instrs, Call("", "ext"))
	bb.Term = Ret("")

	err := InlineCall(caller, bb.ID, 0)
	if !errors.Is(err, diag.ErrDeclaration) {
		t.Fatalf("InlineCall(decl) = %v, want ErrDeclaration", err)
	}
}

// TestInlineCall_NotACall tests index validation.
func TestInlineCall_NotACall(t *testing.T) {
	m := NewModule("test")
	f := m.NewFunc("f")
	bb := f.NewBlock("entry")
	bb.Instrs = append(bb.Instrs, Compute("x", "const 0"))
	bb.Term = Ret("")

	if err := InlineCall(f, bb.ID, 0); err == nil {
		t.Error("InlineCall on a compute should fail")
	}
	if err := InlineCall(f, bb.ID, 7); err == nil {
		t.Error("InlineCall out of range should fail")
	}
	if err := InlineCall(f, 99, 0); err == nil {
		t.Error("InlineCall on a missing block should fail")
	}
}

// TestInlineCall_AnnotationsCloned tests that callee block annotations
// travel with the clone, as a cloning pass would preserve metadata.
func TestInlineCall_AnnotationsCloned(t *testing.T) {
	m := NewModule("test")

	callee := m.NewFunc("g")
	cb := callee.NewBlock("entry")
	cb.Annotations = []string{"mark"}
	cb.Term = Ret("")

	caller := m.NewFunc("caller")
	bb := caller.NewBlock("entry")
	bb.Instrs = append(bb.Instrs, Call("", "g"))
	bb.Term = Ret("")

	if err := InlineCall(caller, bb.ID, 0); err != nil {
		t.Fatalf("InlineCall: %v", err)
	}
	clone := caller.Block(bb.Term.Succs[0])
	if !clone.HasAnnotation("mark") {
		t.Error("clone lost the block annotation")
	}
	// The clone owns its annotation slice.
	clone.Annotations[0] = "changed"
	if cb.Annotations[0] != "mark" {
		t.Error("clone aliases the callee's annotation slice")
	}
}
