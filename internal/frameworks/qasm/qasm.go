// Package qasm adapts OpenQASM 2.0 source text to and from the canonical
// IR. The native circuit form for this framework is the QASM program text
// itself (a string).
//
// Supported surface: single qreg/creg declarations, qelib1 gate
// applications, measure statements, and bit-level conditionals of the form
// "if(c[i]==v) ...". Gates outside the catalog's qasm column fail
// explicitly; nothing is passed through or dropped.
package qasm

import (
	"github.com/quantabase/qmorph/internal/catalog"
	"github.com/quantabase/qmorph/internal/ir"
	"github.com/quantabase/qmorph/internal/transpile"
)

// Framework is the registry identifier for OpenQASM 2.0.
const Framework = "qasm"

// Adapter converts QASM 2.0 source into IR.
type Adapter struct {
	catalog *catalog.Catalog
}

// Emitter converts IR into QASM 2.0 source.
type Emitter struct {
	catalog *catalog.Catalog
}

// NewAdapter creates a QASM adapter backed by the default gate catalog.
func NewAdapter() transpile.Adapter {
	return &Adapter{catalog: catalog.Default()}
}

// NewEmitter creates a QASM emitter backed by the default gate catalog.
func NewEmitter() transpile.Emitter {
	return &Emitter{catalog: catalog.Default()}
}

// ToIR parses QASM source text into canonical IR.
// The native object must be a string.
func (a *Adapter) ToIR(native any) (*ir.Circuit, error) {
	src, ok := native.(string)
	if !ok {
		return nil, transpile.NewAdapterError(Framework, -1, "native circuit must be QASM source text (string)", nil)
	}
	return a.parse(src)
}

// FromIR emits the circuit as QASM 2.0 source text.
func (e *Emitter) FromIR(c *ir.Circuit) (any, error) {
	out, err := e.emit(c)
	if err != nil {
		return nil, err
	}
	return out, nil
}
