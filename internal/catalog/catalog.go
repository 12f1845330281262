package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/quantabase/qmorph/internal/ir"
)

//go:embed gates.cue
var gatesCUE []byte

// CanonicalRef is the result of a reverse lookup: the canonical base gate a
// native identifier denotes, and how many controls that spelling implies.
type CanonicalRef struct {
	Gate     string
	Controls int
}

// gateDef is one compiled catalog row.
type gateDef struct {
	spec ir.GateSpec
	// names: framework -> control count -> native identifier.
	names map[string]map[int]string
}

// Catalog is the compiled gate vocabulary. It is immutable after Compile
// and safe for concurrent use.
type Catalog struct {
	frameworks []string
	gates      map[string]*gateDef
	// reverse: framework -> native identifier -> canonical ref.
	reverse map[string]map[string]CanonicalRef
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
)

// Default returns the catalog compiled from the embedded gates.cue table.
// The table ships with the binary, so a compile failure is a build defect;
// Default panics rather than returning an error every caller would have to
// rethread.
func Default() *Catalog {
	defaultOnce.Do(func() {
		c, err := Compile(gatesCUE)
		if err != nil {
			panic(fmt.Sprintf("embedded gate table: %v", err))
		}
		defaultCatalog = c
	})
	return defaultCatalog
}

// Gate resolves a canonical gate name to its spec.
// Implements ir.GateTable. Fails with UnrecognizedGateError for names
// outside the canonical vocabulary.
func (c *Catalog) Gate(name string) (ir.GateSpec, error) {
	def, ok := c.gates[name]
	if !ok {
		return ir.GateSpec{}, &UnrecognizedGateError{Gate: name}
	}
	return def.spec, nil
}

// Lookup is an alias for Gate, matching the catalog contract's naming.
func (c *Catalog) Lookup(name string) (ir.GateSpec, error) {
	return c.Gate(name)
}

// NativeName maps a canonical gate with the given control count to its
// identifier in framework. Fails with UnsupportedGateError when the
// framework has no spelling for that gate/control combination, and with
// UnrecognizedGateError when the canonical name itself is unknown.
func (c *Catalog) NativeName(gate string, controls int, framework string) (string, error) {
	def, ok := c.gates[gate]
	if !ok {
		return "", &UnrecognizedGateError{Gate: gate}
	}
	byControls, ok := def.names[framework]
	if !ok {
		return "", &UnsupportedGateError{Gate: gate, Controls: controls, Framework: framework}
	}
	name, ok := byControls[controls]
	if !ok {
		return "", &UnsupportedGateError{Gate: gate, Controls: controls, Framework: framework}
	}
	return name, nil
}

// Canonical reverse-maps a framework's native identifier to its canonical
// gate and implied control count. Fails with UnrecognizedGateError when the
// identifier has no canonical counterpart.
func (c *Catalog) Canonical(framework, native string) (CanonicalRef, error) {
	byNative, ok := c.reverse[framework]
	if !ok {
		return CanonicalRef{}, &UnrecognizedGateError{Gate: native, Framework: framework}
	}
	ref, ok := byNative[native]
	if !ok {
		return CanonicalRef{}, &UnrecognizedGateError{Gate: native, Framework: framework}
	}
	return ref, nil
}

// Gates returns every canonical gate spec, name-sorted.
func (c *Catalog) Gates() []ir.GateSpec {
	specs := make([]ir.GateSpec, 0, len(c.gates))
	for _, def := range c.gates {
		specs = append(specs, def.spec)
	}
	sort.Slice(specs, func(i, j int) bool { return specs[i].Name < specs[j].Name })
	return specs
}

// Frameworks returns the framework columns of the table, sorted.
func (c *Catalog) Frameworks() []string {
	out := make([]string, len(c.frameworks))
	copy(out, c.frameworks)
	return out
}

// UnrecognizedGateError reports a gate name with no canonical counterpart:
// either a canonical vocabulary miss (Framework empty) or a native
// identifier unknown to the reverse table (Framework set).
type UnrecognizedGateError struct {
	Gate      string
	Framework string
}

// Error implements the error interface.
func (e *UnrecognizedGateError) Error() string {
	if e.Framework != "" {
		return fmt.Sprintf("unrecognized gate %q: no canonical counterpart for framework %q", e.Gate, e.Framework)
	}
	return fmt.Sprintf("unrecognized gate %q: not in the canonical vocabulary", e.Gate)
}

// IsUnrecognizedGate reports whether err is (or wraps) an UnrecognizedGateError.
func IsUnrecognizedGate(err error) bool {
	var ue *UnrecognizedGateError
	return errors.As(err, &ue)
}

// UnsupportedGateError reports a canonical gate the target framework cannot
// express. This is a "not yet representable" condition, distinct from a
// malformed program.
type UnsupportedGateError struct {
	Gate      string
	Controls  int
	Framework string

	// Reason optionally names the unexpressible feature when the gate
	// itself is mapped (e.g. a classical condition).
	Reason string
}

// Error implements the error interface.
func (e *UnsupportedGateError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("gate %q not supported by framework %q: %s", e.Gate, e.Framework, e.Reason)
	}
	if e.Controls > 0 {
		return fmt.Sprintf("gate %q with %d controls has no mapping for framework %q", e.Gate, e.Controls, e.Framework)
	}
	return fmt.Sprintf("gate %q has no mapping for framework %q", e.Gate, e.Framework)
}

// IsUnsupportedGate reports whether err is (or wraps) an UnsupportedGateError.
func IsUnsupportedGate(err error) bool {
	var ue *UnsupportedGateError
	return errors.As(err, &ue)
}
