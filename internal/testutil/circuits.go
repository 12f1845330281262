// Package testutil provides deterministic circuit fixtures shared across
// package tests.
//
// Every fixture builds against the default gate catalog, so the same fixture
// produces byte-identical canonical JSON (and therefore the same content
// hash) on every call. Tests that snapshot emitted programs or hashes rely
// on this determinism.
package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/quantabase/qmorph/internal/catalog"
	"github.com/quantabase/qmorph/internal/ir"
)

// BellCircuit builds the canonical 2-qubit Bell pair:
//
//	h q[0]; cx q[0],q[1]; measure q[0]->c[0]; measure q[1]->c[1];
//
// The CNOT is encoded as gate "x" with one control, the canonical form for
// controlled gates.
func BellCircuit(t *testing.T) *ir.Circuit {
	t.Helper()
	b, err := ir.NewBuilder(catalog.Default(), 2, 2)
	require.NoError(t, err)

	require.NoError(t, b.AppendGate(ir.Instruction{Gate: "h", Targets: []int{0}}))
	require.NoError(t, b.AppendGate(ir.Instruction{Gate: "x", Targets: []int{1}, Controls: []int{0}}))
	require.NoError(t, b.AppendMeasurement(ir.Measurement{Qubit: 0, Clbit: 0}))
	require.NoError(t, b.AppendMeasurement(ir.Measurement{Qubit: 1, Clbit: 1}))
	return b.Build()
}

// ParamCircuit builds a 1-qubit circuit with one bound and one free rotation:
//
//	rx(0.5) q[0]; rz(theta) q[0];
//
// Used to exercise FreeParams, BindParams, and symbolic-parameter emission.
func ParamCircuit(t *testing.T) *ir.Circuit {
	t.Helper()
	b, err := ir.NewBuilder(catalog.Default(), 1, 0)
	require.NoError(t, err)

	require.NoError(t, b.AppendGate(ir.Instruction{
		Gate:    "rx",
		Params:  ir.Values(0.5),
		Targets: []int{0},
	}))
	require.NoError(t, b.AppendGate(ir.Instruction{
		Gate:    "rz",
		Params:  []ir.Param{ir.Symbol("theta")},
		Targets: []int{0},
	}))
	return b.Build()
}

// WideCircuit builds a 3-qubit circuit touching most of the shared gate set:
// single-qubit Cliffords, parameterized rotations, a two-qubit swap, and a
// doubly-controlled gate. All parameters are bound, so the circuit converts
// to every framework that maps these gates.
func WideCircuit(t *testing.T) *ir.Circuit {
	t.Helper()
	b, err := ir.NewBuilder(catalog.Default(), 3, 3)
	require.NoError(t, err)

	steps := []ir.Instruction{
		{Gate: "h", Targets: []int{0}},
		{Gate: "x", Targets: []int{1}},
		{Gate: "y", Targets: []int{2}},
		{Gate: "z", Targets: []int{0}},
		{Gate: "s", Targets: []int{1}},
		{Gate: "t", Targets: []int{2}},
		{Gate: "rx", Params: ir.Values(0.25), Targets: []int{0}},
		{Gate: "ry", Params: ir.Values(0.5), Targets: []int{1}},
		{Gate: "rz", Params: ir.Values(0.75), Targets: []int{2}},
		{Gate: "swap", Targets: []int{0, 1}},
		{Gate: "x", Targets: []int{2}, Controls: []int{0}},
		{Gate: "x", Targets: []int{2}, Controls: []int{0, 1}},
	}
	for _, inst := range steps {
		require.NoError(t, b.AppendGate(inst))
	}
	for q := 0; q < 3; q++ {
		require.NoError(t, b.AppendMeasurement(ir.Measurement{Qubit: q, Clbit: q}))
	}
	return b.Build()
}

// ConditionedCircuit builds a 2-qubit circuit with a classically conditioned
// gate, which only OpenQASM can express natively:
//
//	h q[0]; measure q[0]->c[0]; if(c[0]==1) x q[1];
func ConditionedCircuit(t *testing.T) *ir.Circuit {
	t.Helper()
	b, err := ir.NewBuilder(catalog.Default(), 2, 2)
	require.NoError(t, err)

	require.NoError(t, b.AppendGate(ir.Instruction{Gate: "h", Targets: []int{0}}))
	require.NoError(t, b.AppendMeasurement(ir.Measurement{Qubit: 0, Clbit: 0}))
	require.NoError(t, b.AppendGate(ir.Instruction{
		Gate:      "x",
		Targets:   []int{1},
		Condition: &ir.Condition{Bit: 0, Value: 1},
	}))
	return b.Build()
}

// BellQASM is the OpenQASM 2.0 source for the Bell pair fixture. Parsing it
// yields a circuit equal to BellCircuit.
const BellQASM = `OPENQASM 2.0;
include "qelib1.inc";
qreg q[2];
creg c[2];
h q[0];
cx q[0],q[1];
measure q[0] -> c[0];
measure q[1] -> c[1];
`

// BellQuil is the Quil source for the Bell pair fixture.
const BellQuil = `DECLARE ro BIT[2]
H 0
CNOT 0 1
MEASURE 0 ro[0]
MEASURE 1 ro[1]
`
