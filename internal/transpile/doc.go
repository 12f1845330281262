// Package transpile connects native circuit representations to the
// canonical IR: the Registry maps framework identifiers to adapter/emitter
// factories, and the Wrapper pairs one native circuit with its conversion
// capabilities.
//
// The Registry is the single indirection point for adding frameworks. It is
// populated once at process start by an explicit registration list (see
// internal/frameworks) and treated as read-only afterwards; no reflective
// plugin scanning. Conversions themselves are pure functions of their
// inputs and safe to run concurrently for different circuits.
package transpile
