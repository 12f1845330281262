// Package quil adapts Quil program text to and from the canonical IR. The
// native circuit form for this framework is the Quil source itself (a
// string).
//
// Quil is the one supported framework with symbolic parameters: %name
// parameters pass through emission unbound. Qubit labels in Quil are free
// integers rather than register indices, so the adapter compacts them to a
// contiguous range by first appearance and records the original labels as
// IR qubit names; the emitter restores them on the way back out.
package quil

import (
	"github.com/quantabase/qmorph/internal/catalog"
	"github.com/quantabase/qmorph/internal/ir"
	"github.com/quantabase/qmorph/internal/transpile"
)

// Framework is the registry identifier for Quil.
const Framework = "quil"

// Adapter converts Quil source into IR.
type Adapter struct {
	catalog *catalog.Catalog
}

// Emitter converts IR into Quil source.
type Emitter struct {
	catalog *catalog.Catalog
}

// NewAdapter creates a Quil adapter backed by the default gate catalog.
func NewAdapter() transpile.Adapter {
	return &Adapter{catalog: catalog.Default()}
}

// NewEmitter creates a Quil emitter backed by the default gate catalog.
func NewEmitter() transpile.Emitter {
	return &Emitter{catalog: catalog.Default()}
}

// ToIR parses Quil source text into canonical IR.
// The native object must be a string.
func (a *Adapter) ToIR(native any) (*ir.Circuit, error) {
	src, ok := native.(string)
	if !ok {
		return nil, transpile.NewAdapterError(Framework, -1, "native circuit must be Quil source text (string)", nil)
	}
	return a.parse(src)
}

// FromIR emits the circuit as Quil source text.
func (e *Emitter) FromIR(c *ir.Circuit) (any, error) {
	out, err := e.emit(c)
	if err != nil {
		return nil, err
	}
	return out, nil
}
