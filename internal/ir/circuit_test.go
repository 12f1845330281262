package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildTestCircuit(t *testing.T) *Circuit {
	t.Helper()
	b, err := NewBuilder(testTable, 2, 2)
	require.NoError(t, err)

	require.NoError(t, b.AppendGate(Instruction{Gate: "h", Targets: []int{0}}))
	require.NoError(t, b.AppendGate(Instruction{Gate: "rz", Params: []Param{Symbol("theta")}, Targets: []int{0}}))
	require.NoError(t, b.AppendGate(Instruction{Gate: "rz", Params: []Param{Symbol("alpha")}, Targets: []int{1}}))
	require.NoError(t, b.AppendGate(Instruction{Gate: "rz", Params: []Param{Symbol("theta")}, Targets: []int{1}}))
	require.NoError(t, b.AppendMeasurement(Measurement{Qubit: 0, Clbit: 0}))
	require.NoError(t, b.AppendMeasurement(Measurement{Qubit: 1, Clbit: 1}))
	return b.Build()
}

func TestCircuit_OpsReturnsCopy(t *testing.T) {
	c := buildTestCircuit(t)

	ops := c.Ops()
	ops[0] = Measurement{Qubit: 1, Clbit: 1}

	fresh := c.Ops()
	_, isInstruction := fresh[0].(Instruction)
	assert.True(t, isInstruction)
}

func TestCircuit_FreeParamsSortedDeduplicated(t *testing.T) {
	c := buildTestCircuit(t)
	// theta appears twice; output is sorted and unique
	assert.Equal(t, []string{"alpha", "theta"}, c.FreeParams())
}

func TestCircuit_Measurements(t *testing.T) {
	c := buildTestCircuit(t)

	ms := c.Measurements()
	require.Len(t, ms, 2)
	assert.Equal(t, Measurement{Qubit: 0, Clbit: 0}, ms[0])
	assert.Equal(t, Measurement{Qubit: 1, Clbit: 1}, ms[1])
}

func TestCircuit_QubitNamesCopy(t *testing.T) {
	b, err := NewBuilder(testTable, 2, 0)
	require.NoError(t, err)
	require.NoError(t, b.NameQubits([]string{"5", "9"}))
	c := b.Build()

	names := c.QubitNames()
	names[0] = "mutated"
	assert.Equal(t, []string{"5", "9"}, c.QubitNames())
}

func TestCircuit_QubitNamesNilWhenUnnamed(t *testing.T) {
	c := buildTestCircuit(t)
	assert.Nil(t, c.QubitNames())
}

func TestInstruction_QubitsControlsFirst(t *testing.T) {
	inst := Instruction{Gate: "x", Targets: []int{2}, Controls: []int{0, 1}}
	assert.Equal(t, []int{0, 1, 2}, inst.Qubits())
}

func TestBound(t *testing.T) {
	assert.True(t, Bound(nil))
	assert.True(t, Bound(Values(0.1, 0.2)))
	assert.False(t, Bound([]Param{Value(0.1), Symbol("theta")}))
}

func TestValue_StringShortestForm(t *testing.T) {
	assert.Equal(t, "0.5", Value(0.5).String())
	assert.Equal(t, "3.141592653589793", Value(3.141592653589793).String())
	assert.Equal(t, "-2", Value(-2).String())
	assert.Equal(t, "1e-05", Value(0.00001).String())
}
