package analysis

import (
	"testing"

	"github.com/tachyonhpc/tachyon/ir"
)

// singleLoop builds entry -> header <-> body, header -> exit.
func singleLoop(t *testing.T) (*ir.Function, ir.BlockID) {
	t.Helper()
	m := ir.NewModule("test")
	f := m.NewFunc("f")

	entry := f.NewBlock("entry")
	header := f.NewBlock("header")
	body := f.NewBlock("body")
	exit := f.NewBlock("exit")

	entry.Term = ir.Br(header.ID)
	header.Term = ir.CondBr("c", body.ID, exit.ID)
	body.Term = ir.Br(header.ID)
	exit.Term = ir.Ret("")
	return f, header.ID
}

// TestBuildLoopInfo_SingleLoop tests natural loop discovery.
func TestBuildLoopInfo_SingleLoop(t *testing.T) {
	f, header := singleLoop(t)
	li := BuildLoopInfo(f, BuildDomTree(f))

	loops := li.Loops()
	if len(loops) != 1 {
		t.Fatalf("found %d loops, want 1", len(loops))
	}
	l := loops[0]
	if l.Header != header {
		t.Errorf("header = %d, want %d", l.Header, header)
	}
	if l.NumBlocks() != 2 {
		t.Errorf("loop has %d blocks, want header + body", l.NumBlocks())
	}
	if !l.Contains(header) {
		t.Error("loop must contain its header")
	}
	if li.LoopFor(f.Entry) != nil {
		t.Error("entry is not in any loop")
	}
	if li.LoopFor(header) != l {
		t.Error("LoopFor(header) should be the loop")
	}
}

// TestBuildLoopInfo_Nested tests loop nesting and TopLevel.
func TestBuildLoopInfo_Nested(t *testing.T) {
	m := ir.NewModule("test")
	f := m.NewFunc("f")

	entry := f.NewBlock("entry")
	oh := f.NewBlock("outer.header")
	ih := f.NewBlock("inner.header")
	il := f.NewBlock("inner.latch")
	ol := f.NewBlock("outer.latch")
	exit := f.NewBlock("exit")

	entry.Term = ir.Br(oh.ID)
	oh.Term = ir.CondBr("a", ih.ID, exit.ID)
	ih.Term = ir.CondBr("b", il.ID, ol.ID)
	il.Term = ir.Br(ih.ID)
	ol.Term = ir.Br(oh.ID)
	exit.Term = ir.Ret("")

	li := BuildLoopInfo(f, BuildDomTree(f))
	if len(li.Loops()) != 2 {
		t.Fatalf("found %d loops, want 2", len(li.Loops()))
	}
	top := li.TopLevel()
	if len(top) != 1 || top[0].Header != oh.ID {
		t.Fatalf("TopLevel = %v, want the outer loop", top)
	}
	inner := li.LoopFor(il.ID)
	if inner == nil || inner.Header != ih.ID {
		t.Fatalf("LoopFor(inner.latch) = %v, want inner loop", inner)
	}
	if inner.Parent != top[0] {
		t.Error("inner loop's parent should be the outer loop")
	}
	// Innermost mapping: the inner header belongs to the inner loop.
	if li.LoopFor(ih.ID) != inner {
		t.Error("LoopFor(inner.header) should be the inner loop")
	}
}

// TestBuildLoopInfo_TwoTopLevel tests sibling loops.
func TestBuildLoopInfo_TwoTopLevel(t *testing.T) {
	m := ir.NewModule("test")
	f := m.NewFunc("f")

	entry := f.NewBlock("entry")
	h1 := f.NewBlock("h1")
	h2 := f.NewBlock("h2")
	exit := f.NewBlock("exit")

	entry.Term = ir.Br(h1.ID)
	h1.Term = ir.CondBr("a", h1.ID, h2.ID)
	h2.Term = ir.CondBr("b", h2.ID, exit.ID)
	exit.Term = ir.Ret("")

	li := BuildLoopInfo(f, BuildDomTree(f))
	if got := len(li.TopLevel()); got != 2 {
		t.Fatalf("TopLevel = %d loops, want 2", got)
	}
}

// TestUpdate tests the refresh operation after a structural change.
func TestUpdate(t *testing.T) {
	f, header := singleLoop(t)

	// Split the body edge: body now reaches the header through a fresh
	// block, as inlining would leave it.
	body := f.Block(header + 1)
	mid := f.NewBlock("mid")
	mid.Term = ir.Br(header)
	body.Term = ir.Br(mid.ID)

	_, li, l := Update(f, header)
	if l == nil {
		t.Fatal("Update lost the loop")
	}
	if l.Header != header {
		t.Errorf("header = %d, want %d", l.Header, header)
	}
	if !l.Contains(mid.ID) {
		t.Error("refreshed loop should contain the new block")
	}
	if li.LoopFor(mid.ID) != l {
		t.Error("LoopFor(mid) should be the refreshed loop")
	}

	// A header that no longer heads a loop yields nil.
	if _, _, gone := Update(f, f.Entry); gone != nil {
		t.Error("Update with a non-header block should return a nil loop")
	}
}
