// Package engine orchestrates splitter inlining.
//
// Per kernel function:
//  1. Pick the transformation scope (work-item loop or whole body)
//  2. Compute the transitive splitter-caller set for that scope
//  3. Inline set members and canonicalize barrier calls to a fixed point,
//     refreshing loop/dominator analyses after in-loop structural changes
package engine
