// Package diag provides structured diagnostics for the tachyon compiler.
//
// Diagnostics are categorized by Phase (where they arose) and Kind
// (category). The Error type carries the offending function and basic
// block when known, plus a cause chain.
//
// Warnings and errors use the same type; it is the consumer that decides
// whether a diagnostic is fatal. Non-fatal diagnostics are aggregated with
// go.uber.org/multierr and surfaced alongside ordinary results.
//
//	err := diag.UndefinedCallee("ext_helper")
//	err := diag.New(diag.PhaseParse, diag.KindInvalidInput, "line %d: %s", ln, msg)
//
// All diagnostics implement the standard error interface and support
// errors.Is/As; cross-package sentinel conditions (recursive call graphs,
// declaration-only bodies) are exposed as sentinel error values.
package diag
