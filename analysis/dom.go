package analysis

import (
	"github.com/tachyonhpc/tachyon/ir"
)

// DomTree is an immediate-dominator tree for one function, valid until
// the next structural change to that function.
type DomTree struct {
	fn      *ir.Function
	idom    []ir.BlockID // per block ID; NoBlock for entry and unreachable blocks
	postnum []int        // postorder number per block ID; -1 if unreachable
	po      []*ir.BasicBlock
}

// BuildDomTree computes the dominator tree using the iterative
// Cooper-Harvey-Kennedy scheme over a DFS postorder.
func BuildDomTree(f *ir.Function) *DomTree {
	dt := &DomTree{
		fn:      f,
		idom:    make([]ir.BlockID, f.NumBlocks()),
		postnum: make([]int, f.NumBlocks()),
	}
	for i := range dt.idom {
		dt.idom[i] = ir.NoBlock
		dt.postnum[i] = -1
	}
	if f.IsDecl() {
		return dt
	}

	dt.po = postorder(f)
	for n, b := range dt.po {
		dt.postnum[b.ID] = n
	}

	preds := predecessors(f)

	// Iterate to a fixed point in reverse postorder.
	changed := true
	for changed {
		changed = false
		for i := len(dt.po) - 1; i >= 0; i-- {
			b := dt.po[i]
			if b.ID == f.Entry {
				continue
			}
			var newIdom ir.BlockID = ir.NoBlock
			for _, p := range preds[b.ID] {
				if dt.postnum[p] < 0 {
					continue // unreachable predecessor
				}
				if p != f.Entry && dt.idom[p] == ir.NoBlock {
					continue // not yet processed
				}
				if newIdom == ir.NoBlock {
					newIdom = p
				} else {
					newIdom = dt.intersect(p, newIdom)
				}
			}
			if newIdom != ir.NoBlock && dt.idom[b.ID] != newIdom {
				dt.idom[b.ID] = newIdom
				changed = true
			}
		}
	}
	return dt
}

// intersect finds the closest common dominator of b and c, walking up
// the partially-built tree by postorder number. The entry block has the
// highest postorder number, so the walks always meet.
func (dt *DomTree) intersect(b, c ir.BlockID) ir.BlockID {
	for b != c {
		for dt.postnum[b] < dt.postnum[c] {
			b = dt.idom[b]
		}
		for dt.postnum[c] < dt.postnum[b] {
			c = dt.idom[c]
		}
	}
	return b
}

// IDom returns the immediate dominator of id, or NoBlock for the entry
// block and unreachable blocks.
func (dt *DomTree) IDom(id ir.BlockID) ir.BlockID {
	if int(id) >= len(dt.idom) || id < 0 {
		return ir.NoBlock
	}
	if id == dt.fn.Entry {
		return ir.NoBlock
	}
	return dt.idom[id]
}

// Reachable reports whether id is reachable from the entry block.
func (dt *DomTree) Reachable(id ir.BlockID) bool {
	return id >= 0 && int(id) < len(dt.postnum) && dt.postnum[id] >= 0
}

// Dominates reports whether a dominates b. Every reachable block
// dominates itself; unreachable blocks dominate nothing.
func (dt *DomTree) Dominates(a, b ir.BlockID) bool {
	if !dt.Reachable(a) || !dt.Reachable(b) {
		return false
	}
	for {
		if a == b {
			return true
		}
		if b == dt.fn.Entry {
			return false
		}
		next := dt.idom[b]
		if next == ir.NoBlock {
			return false
		}
		b = next
	}
}

type blockAndIndex struct {
	b     *ir.BasicBlock
	index int // number of successor edges already explored
}

// postorder computes a DFS postorder of the reachable blocks.
func postorder(f *ir.Function) []*ir.BasicBlock {
	entry := f.Block(f.Entry)
	if entry == nil {
		return nil
	}
	seen := make([]bool, f.NumBlocks())
	order := make([]*ir.BasicBlock, 0, f.NumBlocks())

	s := make([]blockAndIndex, 0, 32)
	s = append(s, blockAndIndex{b: entry})
	seen[entry.ID] = true
	for len(s) > 0 {
		tos := len(s) - 1
		x := s[tos]
		b := x.b
		if i := x.index; i < len(b.Succs()) {
			s[tos].index++
			bb := f.Block(b.Succs()[i])
			if bb != nil && !seen[bb.ID] {
				seen[bb.ID] = true
				s = append(s, blockAndIndex{b: bb})
			}
			continue
		}
		s = s[:tos]
		order = append(order, b)
	}
	return order
}

// predecessors computes the predecessor lists of all live blocks.
func predecessors(f *ir.Function) [][]ir.BlockID {
	preds := make([][]ir.BlockID, f.NumBlocks())
	for _, b := range f.BlockOrder() {
		for _, s := range b.Succs() {
			preds[s] = append(preds[s], b.ID)
		}
	}
	return preds
}
