package transpile

import (
	"sync"

	"github.com/quantabase/qmorph/internal/ir"
)

// Wrapper pairs exactly one native circuit with its framework identity and
// conversion capabilities, exposing framework-agnostic introspection.
//
// The native object and the IR derived from it are two read-only views of
// the same logical circuit: the IR is built lazily, at most once, and the
// native object is never mutated. Wrappers share no caches, so independent
// wrappers may convert concurrently without coordination.
type Wrapper struct {
	framework string
	native    any
	adapter   Adapter
	registry  *Registry

	once sync.Once
	circ *ir.Circuit
	err  error
}

// Wrap constructs a Wrapper around a native circuit. The framework's
// adapter is resolved immediately, so an unknown identifier fails here with
// UnknownFrameworkError rather than at first use.
func Wrap(native any, framework string, reg *Registry) (*Wrapper, error) {
	adapterFactory, _, err := reg.Resolve(framework)
	if err != nil {
		return nil, err
	}
	return &Wrapper{
		framework: framework,
		native:    native,
		adapter:   adapterFactory(),
		registry:  reg,
	}, nil
}

// Framework returns the source framework identifier.
func (w *Wrapper) Framework() string { return w.framework }

// Native returns the wrapped native circuit object.
func (w *Wrapper) Native() any { return w.native }

// IR returns the canonical IR for the wrapped circuit, building it on first
// call. Rebuilding from the native object is deterministic, so caching the
// first result loses nothing.
func (w *Wrapper) IR() (*ir.Circuit, error) {
	w.once.Do(func() {
		w.circ, w.err = w.adapter.ToIR(w.native)
	})
	return w.circ, w.err
}

// QubitCount returns the circuit's qubit register size.
func (w *Wrapper) QubitCount() (int, error) {
	c, err := w.IR()
	if err != nil {
		return 0, err
	}
	return c.NumQubits(), nil
}

// ClbitCount returns the circuit's classical register size.
func (w *Wrapper) ClbitCount() (int, error) {
	c, err := w.IR()
	if err != nil {
		return 0, err
	}
	return c.NumClbits(), nil
}

// Depth returns the longest instruction-dependency chain length.
func (w *Wrapper) Depth() (int, error) {
	c, err := w.IR()
	if err != nil {
		return 0, err
	}
	return c.Depth(), nil
}

// FreeParams returns the circuit's free symbolic parameter names, sorted.
func (w *Wrapper) FreeParams() ([]string, error) {
	c, err := w.IR()
	if err != nil {
		return nil, err
	}
	return c.FreeParams(), nil
}

// Transpile converts the wrapped circuit into the target framework's native
// form. The conversion is pure: it composes emit(to_ir(native)) and never
// touches the source native object. Any failure (unknown target, unmapped
// gate, unbound symbol) produces no partial output.
func (w *Wrapper) Transpile(target string) (any, error) {
	_, emitterFactory, err := w.registry.Resolve(target)
	if err != nil {
		return nil, err
	}
	c, err := w.IR()
	if err != nil {
		return nil, err
	}
	return emitterFactory().FromIR(c)
}

// Convert is the one-shot form of Wrap + Transpile.
func Convert(native any, from, to string, reg *Registry) (any, error) {
	w, err := Wrap(native, from, reg)
	if err != nil {
		return nil, err
	}
	return w.Transpile(to)
}
