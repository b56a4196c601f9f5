// Package tachyon is the compiler middle end of the tachyon heterogeneous
// compute framework.
//
// Kernel functions offloaded to a device run one iteration of a canonical
// work-item loop per unit of parallel work. Work-group barriers inside a
// kernel force later pipeline stages to split that loop at each
// synchronization point; this module prepares functions so that the split
// is possible at all.
//
// # Architecture Overview
//
// The module is organized into packages with distinct responsibilities:
//
//	tachyon/
//	├── ir/          Owned mutable CFG intermediate representation
//	├── irtext/      Textual IR reader and writer
//	├── analysis/    Dominator tree and natural loop analyses
//	├── annotation/  Kernel/splitter/work-item-loop classification
//	├── splitter/    Work-item loop splitter inlining pass
//	├── diag/        Structured diagnostics
//	└── cmd/         splitrun batch driver
//
// # Quick Start
//
// Parse a module, classify it, and run the pass over a kernel:
//
//	m, info, err := irtext.Parse(source)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	ann := annotation.NewSet(info.Kernels, info.Splitters, info.Barrier)
//	res, err := splitter.Run(m.Func("kern"), splitter.Config{Oracle: ann})
//
// After a run that reports Changed, every cached analysis except the
// annotation classification is stale; see splitter.Result.Preserved.
package tachyon
