// Package ir provides the owned, mutable control-flow-graph intermediate
// representation the tachyon compiler passes operate on.
//
// A Module owns named Functions; a Function owns an arena of BasicBlocks
// indexed by stable BlockID. Transformations mutate the arena in place:
// splitting a block or splicing in a clone appends fresh blocks and never
// reuses an ID within a function, so analyses can key state by BlockID and
// passes can rebuild worklists after a mutation instead of juggling
// invalidated iterators.
//
// Instructions follow an opcode-plus-immediate shape. Ordinary computation
// is opaque to the IR (ComputeImm carries printable text); only calls and
// control flow are modeled structurally, which is all the splitter
// transformation needs. Terminators live outside the instruction list so
// successor edges are always well defined.
//
// Indirect calls carry no static target and are skipped by every analysis
// and transformation in this module. That is a documented limitation of
// the splitter pipeline, not an error.
package ir
