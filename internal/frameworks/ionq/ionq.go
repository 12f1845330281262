// Package ionq adapts IonQ-style JSON circuit programs to and from the
// canonical IR. The native circuit form is *Program, the in-memory shape of
// the provider's JSON payload.
package ionq

import (
	"fmt"

	"github.com/quantabase/qmorph/internal/catalog"
	"github.com/quantabase/qmorph/internal/ir"
	"github.com/quantabase/qmorph/internal/transpile"
)

// Framework is the registry identifier for IonQ programs.
const Framework = "ionq"

// Program is an IonQ circuit payload.
type Program struct {
	Qubits  int         `json:"qubits"`
	Circuit []Operation `json:"circuit"`
}

// Operation is one entry in a Program's circuit list. Gate names use the
// provider's vocabulary (h, cnot, rx, ...); "measure" records Targets into
// the classical Bits.
type Operation struct {
	Gate     string   `json:"gate"`
	Targets  []int    `json:"targets"`
	Controls []int    `json:"controls,omitempty"`
	Rotation *float64 `json:"rotation,omitempty"`
	Bits     []int    `json:"bits,omitempty"`
}

// measureGate is the Operation.Gate value marking a measurement.
const measureGate = "measure"

// Adapter converts IonQ programs into IR.
type Adapter struct {
	catalog *catalog.Catalog
}

// Emitter converts IR into IonQ programs.
type Emitter struct {
	catalog *catalog.Catalog
}

// NewAdapter creates an IonQ adapter backed by the default gate catalog.
func NewAdapter() transpile.Adapter {
	return &Adapter{catalog: catalog.Default()}
}

// NewEmitter creates an IonQ emitter backed by the default gate catalog.
func NewEmitter() transpile.Emitter {
	return &Emitter{catalog: catalog.Default()}
}

// ToIR converts an IonQ program into canonical IR.
// The native object must be a *Program.
func (a *Adapter) ToIR(native any) (*ir.Circuit, error) {
	prog, ok := native.(*Program)
	if !ok {
		return nil, transpile.NewAdapterError(Framework, -1, "native circuit must be *ionq.Program", nil)
	}

	// The payload has no classical register size; derive it from the
	// highest readout bit referenced.
	nClbits := 0
	for _, op := range prog.Circuit {
		for _, b := range op.Bits {
			if b+1 > nClbits {
				nClbits = b + 1
			}
		}
	}

	builder, err := ir.NewBuilder(a.catalog, prog.Qubits, nClbits)
	if err != nil {
		return nil, transpile.NewAdapterError(Framework, -1, "create circuit", err)
	}

	for i, op := range prog.Circuit {
		if op.Gate == measureGate {
			if len(op.Bits) != len(op.Targets) {
				return nil, transpile.NewAdapterError(Framework, i,
					fmt.Sprintf("measure maps %d qubits to %d bits", len(op.Targets), len(op.Bits)), nil)
			}
			for j, q := range op.Targets {
				if err := builder.AppendMeasurement(ir.Measurement{Qubit: q, Clbit: op.Bits[j]}); err != nil {
					return nil, err
				}
			}
			continue
		}

		ref, err := a.catalog.Canonical(Framework, op.Gate)
		if err != nil {
			return nil, err
		}
		if len(op.Controls) != ref.Controls {
			return nil, transpile.NewAdapterError(Framework, i,
				fmt.Sprintf("gate %q expects %d controls, got %d", op.Gate, ref.Controls, len(op.Controls)), nil)
		}

		spec, err := a.catalog.Gate(ref.Gate)
		if err != nil {
			return nil, err
		}
		var params []ir.Param
		switch {
		case spec.ParamCount == 1 && op.Rotation != nil:
			params = ir.Values(*op.Rotation)
		case spec.ParamCount == 1:
			return nil, transpile.NewAdapterError(Framework, i,
				fmt.Sprintf("gate %q requires a rotation", op.Gate), nil)
		case op.Rotation != nil:
			return nil, transpile.NewAdapterError(Framework, i,
				fmt.Sprintf("gate %q takes no rotation", op.Gate), nil)
		}

		if err := builder.AppendGate(ir.Instruction{
			Gate:     ref.Gate,
			Params:   params,
			Targets:  op.Targets,
			Controls: op.Controls,
		}); err != nil {
			return nil, err
		}
	}

	return builder.Build(), nil
}

// FromIR converts canonical IR into an IonQ program, in IR order.
// IonQ cannot express symbolic parameters or classical conditions; either
// fails the whole conversion with no partial program.
func (e *Emitter) FromIR(c *ir.Circuit) (any, error) {
	if syms := c.FreeParams(); len(syms) > 0 {
		return nil, ir.NewUnboundParameterError(Framework, syms)
	}

	prog := &Program{Qubits: c.NumQubits()}
	for _, op := range c.Ops() {
		switch v := op.(type) {
		case ir.Instruction:
			if v.Condition != nil {
				return nil, &catalog.UnsupportedGateError{
					Gate:      v.Gate,
					Controls:  len(v.Controls),
					Framework: Framework,
					Reason:    "classically conditioned gates are not representable",
				}
			}
			if len(v.Params) > 1 {
				return nil, &catalog.UnsupportedGateError{
					Gate:      v.Gate,
					Controls:  len(v.Controls),
					Framework: Framework,
					Reason:    "multi-parameter gates are not representable",
				}
			}
			native, err := e.catalog.NativeName(v.Gate, len(v.Controls), Framework)
			if err != nil {
				return nil, err
			}
			out := Operation{Gate: native}
			out.Targets = append(out.Targets, v.Targets...)
			out.Controls = append(out.Controls, v.Controls...)
			if len(v.Params) == 1 {
				rot := float64(v.Params[0].(ir.Value))
				out.Rotation = &rot
			}
			prog.Circuit = append(prog.Circuit, out)

		case ir.Measurement:
			prog.Circuit = append(prog.Circuit, Operation{
				Gate:    measureGate,
				Targets: []int{v.Qubit},
				Bits:    []int{v.Clbit},
			})
		}
	}

	return prog, nil
}
