// Package braket adapts Braket JAQCD-style JSON programs to and from the
// canonical IR. The native circuit form is *Program, the in-memory shape of
// the provider's instruction-list payload.
package braket

import (
	"fmt"

	"github.com/quantabase/qmorph/internal/catalog"
	"github.com/quantabase/qmorph/internal/ir"
	"github.com/quantabase/qmorph/internal/transpile"
)

// Framework is the registry identifier for Braket programs.
const Framework = "braket"

// Program is a Braket circuit payload.
type Program struct {
	QubitCount   int           `json:"qubitCount"`
	Instructions []Instruction `json:"instructions"`
}

// Instruction is one entry in a Program's instruction list. Type names use
// the provider's vocabulary (h, cnot, rx, ...); "measure" records Targets
// into the classical Bits.
type Instruction struct {
	Type     string   `json:"type"`
	Targets  []int    `json:"targets"`
	Controls []int    `json:"controls,omitempty"`
	Angle    *float64 `json:"angle,omitempty"`
	Bits     []int    `json:"bits,omitempty"`
}

const measureType = "measure"

// Adapter converts Braket programs into IR.
type Adapter struct {
	catalog *catalog.Catalog
}

// Emitter converts IR into Braket programs.
type Emitter struct {
	catalog *catalog.Catalog
}

// NewAdapter creates a Braket adapter backed by the default gate catalog.
func NewAdapter() transpile.Adapter {
	return &Adapter{catalog: catalog.Default()}
}

// NewEmitter creates a Braket emitter backed by the default gate catalog.
func NewEmitter() transpile.Emitter {
	return &Emitter{catalog: catalog.Default()}
}

// ToIR converts a Braket program into canonical IR.
// The native object must be a *Program.
func (a *Adapter) ToIR(native any) (*ir.Circuit, error) {
	prog, ok := native.(*Program)
	if !ok {
		return nil, transpile.NewAdapterError(Framework, -1, "native circuit must be *braket.Program", nil)
	}

	nClbits := 0
	for _, inst := range prog.Instructions {
		for _, b := range inst.Bits {
			if b+1 > nClbits {
				nClbits = b + 1
			}
		}
	}

	builder, err := ir.NewBuilder(a.catalog, prog.QubitCount, nClbits)
	if err != nil {
		return nil, transpile.NewAdapterError(Framework, -1, "create circuit", err)
	}

	for i, inst := range prog.Instructions {
		if inst.Type == measureType {
			if len(inst.Bits) != len(inst.Targets) {
				return nil, transpile.NewAdapterError(Framework, i,
					fmt.Sprintf("measure maps %d qubits to %d bits", len(inst.Targets), len(inst.Bits)), nil)
			}
			for j, q := range inst.Targets {
				if err := builder.AppendMeasurement(ir.Measurement{Qubit: q, Clbit: inst.Bits[j]}); err != nil {
					return nil, err
				}
			}
			continue
		}

		ref, err := a.catalog.Canonical(Framework, inst.Type)
		if err != nil {
			return nil, err
		}
		if len(inst.Controls) != ref.Controls {
			return nil, transpile.NewAdapterError(Framework, i,
				fmt.Sprintf("instruction %q expects %d controls, got %d", inst.Type, ref.Controls, len(inst.Controls)), nil)
		}

		spec, err := a.catalog.Gate(ref.Gate)
		if err != nil {
			return nil, err
		}
		var params []ir.Param
		switch {
		case spec.ParamCount == 1 && inst.Angle != nil:
			params = ir.Values(*inst.Angle)
		case spec.ParamCount == 1:
			return nil, transpile.NewAdapterError(Framework, i,
				fmt.Sprintf("instruction %q requires an angle", inst.Type), nil)
		case inst.Angle != nil:
			return nil, transpile.NewAdapterError(Framework, i,
				fmt.Sprintf("instruction %q takes no angle", inst.Type), nil)
		}

		if err := builder.AppendGate(ir.Instruction{
			Gate:     ref.Gate,
			Params:   params,
			Targets:  inst.Targets,
			Controls: inst.Controls,
		}); err != nil {
			return nil, err
		}
	}

	return builder.Build(), nil
}

// FromIR converts canonical IR into a Braket program, in IR order.
// Braket cannot express symbolic parameters or classical conditions; either
// fails the whole conversion with no partial program.
func (e *Emitter) FromIR(c *ir.Circuit) (any, error) {
	if syms := c.FreeParams(); len(syms) > 0 {
		return nil, ir.NewUnboundParameterError(Framework, syms)
	}

	prog := &Program{QubitCount: c.NumQubits()}
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
			out := Instruction{Type: native}
			out.Targets = append(out.Targets, v.Targets...)
			out.Controls = append(out.Controls, v.Controls...)
			if len(v.Params) == 1 {
				angle := float64(v.Params[0].(ir.Value))
				out.Angle = &angle
			}
			prog.Instructions = append(prog.Instructions, out)

		case ir.Measurement:
			prog.Instructions = append(prog.Instructions, Instruction{
				Type:    measureType,
				Targets: []int{v.Qubit},
				Bits:    []int{v.Clbit},
			})
		}
	}

	return prog, nil
}
