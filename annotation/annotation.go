// Package annotation classifies functions and loops for the splitter
// pipeline: which functions are kernel entry points, which represent
// work-group barriers, and which loop of a kernel is the canonical
// work-item loop.
//
// Classification state is read-only for the duration of a pass
// invocation. Passes consume it through the Oracle interface so the
// transformation core can be exercised with fake oracles in tests.
package annotation

import (
	"github.com/tachyonhpc/tachyon/analysis"
	"github.com/tachyonhpc/tachyon/ir"
)

// DefaultBarrierIntrinsic is the canonical barrier intrinsic name used
// when a Set is built without an explicit override. Downstream splitting
// passes recognize barrier synchronization points only under this name.
const DefaultBarrierIntrinsic = "__tachyon_splitter_barrier"

// WorkItemLoopAnnotation marks the header block of a kernel's canonical
// work-item loop.
const WorkItemLoopAnnotation = "tachyon.loop.workitem"

// Oracle answers classification queries for the splitter transformation.
type Oracle interface {
	// IsKernelFunc reports whether f is a kernel entry point.
	IsKernelFunc(f *ir.Function) bool
	// IsSplitterFunc reports whether calls to f are work-group barriers.
	IsSplitterFunc(f *ir.Function) bool
	// BarrierIntrinsic returns the canonical barrier intrinsic name.
	BarrierIntrinsic() string
}

// Set is an Oracle backed by explicit name lists. The canonical barrier
// intrinsic is always classified as a splitter.
type Set struct {
	kernels   map[string]bool
	splitters map[string]bool
	barrier   string
}

// NewSet builds a Set from kernel and splitter name lists. An empty
// barrier name selects DefaultBarrierIntrinsic.
func NewSet(kernels, splitters []string, barrier string) *Set {
	if barrier == "" {
		barrier = DefaultBarrierIntrinsic
	}
	s := &Set{
		kernels:   make(map[string]bool, len(kernels)),
		splitters: make(map[string]bool, len(splitters)+1),
		barrier:   barrier,
	}
	for _, k := range kernels {
		s.kernels[k] = true
	}
	for _, sp := range splitters {
		s.splitters[sp] = true
	}
	s.splitters[barrier] = true
	return s
}

func (s *Set) IsKernelFunc(f *ir.Function) bool {
	return f != nil && s.kernels[f.Name]
}

func (s *Set) IsSplitterFunc(f *ir.Function) bool {
	return f != nil && s.splitters[f.Name]
}

func (s *Set) BarrierIntrinsic() string {
	return s.barrier
}

// IsWorkItemLoop reports whether l is the canonical work-item loop of f,
// recognized by the marker annotation on its header block.
func IsWorkItemLoop(f *ir.Function, l *analysis.Loop) bool {
	if l == nil {
		return false
	}
	h := f.Block(l.Header)
	return h != nil && h.HasAnnotation(WorkItemLoopAnnotation)
}

// SingleWorkItemLoop returns the function's canonical work-item loop:
// the unique top-level loop, provided it carries the work-item marker.
// Returns nil when the function has no loops, more than one top-level
// loop, or a single unmarked one; callers then fall back to
// whole-function scope.
func SingleWorkItemLoop(f *ir.Function, li *analysis.LoopInfo) *analysis.Loop {
	top := li.TopLevel()
	if len(top) != 1 || !IsWorkItemLoop(f, top[0]) {
		return nil
	}
	return top[0]
}
