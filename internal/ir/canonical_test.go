package ir

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalCanonical_FixedKeyOrder(t *testing.T) {
	b, err := NewBuilder(testTable, 2, 2)
	require.NoError(t, err)
	require.NoError(t, b.AppendGate(Instruction{Gate: "h", Targets: []int{0}}))
	require.NoError(t, b.AppendGate(Instruction{Gate: "x", Targets: []int{1}, Controls: []int{0}}))
	require.NoError(t, b.AppendMeasurement(Measurement{Qubit: 0, Clbit: 0}))
	require.NoError(t, b.AppendMeasurement(Measurement{Qubit: 1, Clbit: 1}))

	data, err := MarshalCanonical(b.Build())
	require.NoError(t, err)

	want := `{"n_clbits":2,"n_qubits":2,"ops":[` +
		`{"gate":"h","targets":[0],"type":"gate"},` +
		`{"controls":[0],"gate":"x","targets":[1],"type":"gate"},` +
		`{"clbit":0,"qubit":0,"type":"measure"},` +
		`{"clbit":1,"qubit":1,"type":"measure"}]}`
	assert.Equal(t, want, string(data))
}

func TestMarshalCanonical_ParamsAndConditions(t *testing.T) {
	b, err := NewBuilder(testTable, 1, 1)
	require.NoError(t, err)
	require.NoError(t, b.AppendGate(Instruction{Gate: "rz", Params: Values(0.5), Targets: []int{0}}))
	require.NoError(t, b.AppendGate(Instruction{
		Gate:      "rz",
		Params:    []Param{Symbol("theta")},
		Targets:   []int{0},
		Condition: &Condition{Bit: 0, Value: 1},
	}))

	data, err := MarshalCanonical(b.Build())
	require.NoError(t, err)

	want := `{"n_clbits":1,"n_qubits":1,"ops":[` +
		`{"gate":"rz","params":[0.5],"targets":[0],"type":"gate"},` +
		`{"condition":{"bit":0,"value":1},"gate":"rz","params":[{"sym":"theta"}],"targets":[0],"type":"gate"}]}`
	assert.Equal(t, want, string(data))
}

func TestMarshalCanonical_QubitNames(t *testing.T) {
	b, err := NewBuilder(testTable, 2, 0)
	require.NoError(t, err)
	require.NoError(t, b.NameQubits([]string{"5", "9"}))

	data, err := MarshalCanonical(b.Build())
	require.NoError(t, err)
	assert.Equal(t, `{"n_clbits":0,"n_qubits":2,"ops":[],"qubit_names":["5","9"]}`, string(data))
}

func TestMarshalCanonical_NoHTMLEscaping(t *testing.T) {
	b, err := NewBuilder(testTable, 1, 0)
	require.NoError(t, err)
	require.NoError(t, b.NameQubits([]string{"a<b>&c"}))

	data, err := MarshalCanonical(b.Build())
	require.NoError(t, err)
	assert.Contains(t, string(data), `"a<b>&c"`)
	assert.NotContains(t, string(data), `<`)
}

func TestMarshalCanonical_NFCNormalization(t *testing.T) {
	// e + combining acute normalizes to the precomposed form
	decomposed := "é"
	precomposed := "é"

	b1, err := NewBuilder(testTable, 1, 0)
	require.NoError(t, err)
	require.NoError(t, b1.NameQubits([]string{decomposed}))
	d1, err := MarshalCanonical(b1.Build())
	require.NoError(t, err)

	b2, err := NewBuilder(testTable, 1, 0)
	require.NoError(t, err)
	require.NoError(t, b2.NameQubits([]string{precomposed}))
	d2, err := MarshalCanonical(b2.Build())
	require.NoError(t, err)

	assert.Equal(t, string(d2), string(d1))
}

func TestMarshalCanonical_Deterministic(t *testing.T) {
	c := buildTestCircuit(t)

	first, err := MarshalCanonical(c)
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		again, err := MarshalCanonical(c)
		require.NoError(t, err)
		assert.Equal(t, string(first), string(again))
	}
}

func TestHash_StableAndPrefixed(t *testing.T) {
	c := buildTestCircuit(t)

	h1, err := Hash(c)
	require.NoError(t, err)
	h2, err := Hash(c)
	require.NoError(t, err)

	assert.Equal(t, h1, h2)
	assert.Len(t, h1, 64)
	assert.Equal(t, strings.ToLower(h1), h1)
}

func TestHash_DiffersAcrossCircuits(t *testing.T) {
	b1, err := NewBuilder(testTable, 1, 0)
	require.NoError(t, err)
	require.NoError(t, b1.AppendGate(Instruction{Gate: "h", Targets: []int{0}}))

	b2, err := NewBuilder(testTable, 1, 0)
	require.NoError(t, err)
	require.NoError(t, b2.AppendGate(Instruction{Gate: "x", Targets: []int{0}}))

	h1 := MustHash(b1.Build())
	h2 := MustHash(b2.Build())
	assert.NotEqual(t, h1, h2)
}

func TestHash_OrderSensitive(t *testing.T) {
	b1, err := NewBuilder(testTable, 2, 0)
	require.NoError(t, err)
	require.NoError(t, b1.AppendGate(Instruction{Gate: "h", Targets: []int{0}}))
	require.NoError(t, b1.AppendGate(Instruction{Gate: "x", Targets: []int{1}}))

	b2, err := NewBuilder(testTable, 2, 0)
	require.NoError(t, err)
	require.NoError(t, b2.AppendGate(Instruction{Gate: "x", Targets: []int{1}}))
	require.NoError(t, b2.AppendGate(Instruction{Gate: "h", Targets: []int{0}}))

	assert.NotEqual(t, MustHash(b1.Build()), MustHash(b2.Build()))
}
