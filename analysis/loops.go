package analysis

import (
	"sort"

	"github.com/tachyonhpc/tachyon/ir"
)

// Loop is a natural loop: the set of blocks from which the header can be
// re-entered without leaving through it.
type Loop struct {
	Parent  *Loop
	Header  ir.BlockID
	Latches []ir.BlockID
	blocks  map[ir.BlockID]bool
}

// Contains reports whether id is part of the loop body (header included).
func (l *Loop) Contains(id ir.BlockID) bool {
	return l.blocks[id]
}

// NumBlocks returns the size of the loop body.
func (l *Loop) NumBlocks() int {
	return len(l.blocks)
}

// Blocks returns the loop's live blocks in arena order.
func (l *Loop) Blocks(f *ir.Function) []*ir.BasicBlock {
	out := make([]*ir.BasicBlock, 0, len(l.blocks))
	for _, b := range f.BlockOrder() {
		if l.blocks[b.ID] {
			out = append(out, b)
		}
	}
	return out
}

// LoopInfo holds all natural loops of one function.
type LoopInfo struct {
	fn    *ir.Function
	loops []*Loop
	b2l   []*Loop // innermost containing loop per block ID
}

// BuildLoopInfo discovers natural loops from the back edges of the
// dominator tree: an edge d->h where h dominates d closes a loop with
// header h, and the body is everything that reaches d without passing
// through h. Loops sharing a header are merged.
func BuildLoopInfo(f *ir.Function, dt *DomTree) *LoopInfo {
	li := &LoopInfo{fn: f, b2l: make([]*Loop, f.NumBlocks())}
	preds := predecessors(f)
	byHeader := make(map[ir.BlockID]*Loop)

	for _, b := range f.BlockOrder() {
		if !dt.Reachable(b.ID) {
			continue
		}
		for _, h := range b.Succs() {
			if !dt.Dominates(h, b.ID) {
				continue
			}
			l := byHeader[h]
			if l == nil {
				l = &Loop{Header: h, blocks: map[ir.BlockID]bool{h: true}}
				byHeader[h] = l
				li.loops = append(li.loops, l)
			}
			l.Latches = append(l.Latches, b.ID)
			collectLoopBody(l, b.ID, preds)
		}
	}

	// Innermost-first ordering by body size establishes nesting.
	sort.Slice(li.loops, func(i, j int) bool {
		return li.loops[i].NumBlocks() < li.loops[j].NumBlocks()
	})
	for _, l := range li.loops {
		for id := range l.blocks {
			if li.b2l[id] == nil {
				li.b2l[id] = l
			}
		}
	}
	for _, l := range li.loops {
		for _, outer := range li.loops {
			if outer == l || outer.NumBlocks() < l.NumBlocks() {
				continue
			}
			if outer.Contains(l.Header) {
				l.Parent = outer
				break
			}
		}
	}
	return li
}

// collectLoopBody walks predecessors backwards from latch, stopping at the
// header, adding every visited block to the loop.
func collectLoopBody(l *Loop, latch ir.BlockID, preds [][]ir.BlockID) {
	if l.blocks[latch] {
		return
	}
	work := []ir.BlockID{latch}
	l.blocks[latch] = true
	for len(work) > 0 {
		id := work[len(work)-1]
		work = work[:len(work)-1]
		for _, p := range preds[id] {
			if !l.blocks[p] {
				l.blocks[p] = true
				work = append(work, p)
			}
		}
	}
}

// Loops returns all discovered loops, innermost first.
func (li *LoopInfo) Loops() []*Loop {
	return li.loops
}

// TopLevel returns the outermost loops.
func (li *LoopInfo) TopLevel() []*Loop {
	var out []*Loop
	for _, l := range li.loops {
		if l.Parent == nil {
			out = append(out, l)
		}
	}
	return out
}

// LoopFor returns the innermost loop containing id, or nil.
func (li *LoopInfo) LoopFor(id ir.BlockID) *Loop {
	if id < 0 || int(id) >= len(li.b2l) {
		return nil
	}
	return li.b2l[id]
}

// Update recomputes the dominator tree and loop info of f after a
// structural change and re-resolves the loop handle for the given header
// block. The previous handles must not be used again; the returned loop
// is nil if no loop with that header survives the change.
func Update(f *ir.Function, header ir.BlockID) (*DomTree, *LoopInfo, *Loop) {
	dt := BuildDomTree(f)
	li := BuildLoopInfo(f, dt)
	for _, l := range li.loops {
		if l.Header == header {
			return dt, li, l
		}
	}
	return dt, li, nil
}
