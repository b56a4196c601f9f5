// Package analysis provides dominator-tree and natural-loop analyses over
// the tachyon IR, plus the refresh operation passes invoke after
// structural changes.
//
// Results are snapshots: any CFG mutation invalidates them, and Loop
// handles in particular must be replaced through Update rather than kept
// across a mutation.
package analysis
