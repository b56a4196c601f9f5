// Package splitter implements work-item loop splitter inlining.
//
// # Overview
//
// Kernel functions synchronize work items through barrier ("splitter")
// calls. Later pipeline stages partition the canonical work-item loop at
// each barrier into separate execution phases, but they can only do so
// when every barrier sits directly inside that loop. This pass makes that
// true: it finds every function that transitively reaches a splitter,
// inlines those call chains into the work-item loop, and normalizes each
// surviving barrier call to the single canonical barrier intrinsic that
// downstream passes recognize.
//
// The transformation, per kernel function:
//
//  1. Identify the canonical work-item loop; without one, fall back to
//     whole-function scope.
//  2. Compute the transitive splitter-caller set for the scope.
//  3. Inline calls to set members and canonicalize barrier calls until a
//     fixed point, refreshing dominator/loop analyses after each in-loop
//     structural change.
//
// Non-kernel functions are never touched. Indirect calls are ignored.
// Recursive call graphs are rejected with diag.ErrRecursiveCallGraph
// before any mutation.
//
// # Usage
//
//	ann := annotation.NewSet(kernels, splitters, "")
//	res, err := splitter.Run(fn, splitter.Config{Oracle: ann})
//	if res.Changed {
//	    // all analyses except the annotation classification are stale
//	}
package splitter
