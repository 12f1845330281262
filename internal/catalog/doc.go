// Package catalog provides the canonical gate vocabulary: each gate's
// arity and parameter count, plus its native spelling in every supported
// framework, keyed by control count.
//
// The vocabulary is static configuration, not computed. It lives in the
// embedded gates.cue table and is compiled once; adding a framework means
// adding a column to the affected rows, never touching adapter code.
//
// Controlled gates are a lookup dimension rather than separate rows: the
// canonical encoding is controls + base gate, so "x with one control" maps
// to qasm "cx", quil "CNOT", and so on. Reverse lookup (native name back to
// canonical gate + control count) serves the adapters.
package catalog
