// Package ir provides the canonical intermediate representation for quantum
// circuits.
//
// This package is the foundational layer: every adapter and emitter converts
// through it, and all other internal packages import ir while ir imports
// nothing internal. Gate vocabulary lookups are abstracted behind the
// GateTable interface so the catalog package can supply them without a
// dependency cycle.
//
// Key design constraints:
//   - Instruction order is the sole source of execution-order truth; gates
//     are in general non-commuting, so nothing here ever reorders ops.
//   - A Circuit is immutable once built. Builder validates each op on
//     append; BindParams returns a new Circuit.
//   - Controlled gates use the canonical "controls + base gate" encoding.
//     Composite native gates (cx, CCNOT, cnot, ...) are normalized by the
//     adapters before they reach this package.
//   - Parameters are a tagged variant: Value (bound float64) or Symbol
//     (named free parameter).
package ir
