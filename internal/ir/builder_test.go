package ir

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubTable is a minimal GateTable for builder tests.
type stubTable map[string]GateSpec

func (t stubTable) Gate(name string) (GateSpec, error) {
	spec, ok := t[name]
	if !ok {
		return GateSpec{}, fmt.Errorf("unknown gate %q", name)
	}
	return spec, nil
}

var testTable = stubTable{
	"h":    {Name: "h", Arity: 1, ParamCount: 0},
	"x":    {Name: "x", Arity: 1, ParamCount: 0},
	"rz":   {Name: "rz", Arity: 1, ParamCount: 1},
	"swap": {Name: "swap", Arity: 2, ParamCount: 0},
}

func TestNewBuilder_NegativeRegisters(t *testing.T) {
	_, err := NewBuilder(testTable, -1, 0)
	assert.Error(t, err)

	_, err = NewBuilder(testTable, 2, -1)
	assert.Error(t, err)
}

func TestNewBuilder_NilTable(t *testing.T) {
	_, err := NewBuilder(nil, 2, 0)
	assert.Error(t, err)
}

func TestAppendGate_UnknownGate(t *testing.T) {
	b, err := NewBuilder(testTable, 2, 0)
	require.NoError(t, err)

	err = b.AppendGate(Instruction{Gate: "warp", Targets: []int{0}})
	require.Error(t, err)
	// Vocabulary errors come from the table, not builder validation
	assert.False(t, IsValidationError(err))
}

func TestAppendGate_ArityMismatch(t *testing.T) {
	b, err := NewBuilder(testTable, 3, 0)
	require.NoError(t, err)

	err = b.AppendGate(Instruction{Gate: "swap", Targets: []int{0}})
	require.Error(t, err)

	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, ErrCodeArity, ve.Code)
	assert.Equal(t, "swap", ve.Gate)
	assert.Equal(t, 0, ve.Index)
}

func TestAppendGate_ParamCountMismatch(t *testing.T) {
	b, err := NewBuilder(testTable, 1, 0)
	require.NoError(t, err)

	// rz takes one parameter, none given
	err = b.AppendGate(Instruction{Gate: "rz", Targets: []int{0}})
	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, ErrCodeParamCount, ve.Code)

	// h takes none, one given
	err = b.AppendGate(Instruction{Gate: "h", Params: Values(0.5), Targets: []int{0}})
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, ErrCodeParamCount, ve.Code)
}

func TestAppendGate_QubitOutOfRange(t *testing.T) {
	b, err := NewBuilder(testTable, 2, 0)
	require.NoError(t, err)

	for _, q := range []int{-1, 2, 7} {
		err = b.AppendGate(Instruction{Gate: "h", Targets: []int{q}})
		var ve *ValidationError
		require.True(t, errors.As(err, &ve), "qubit %d", q)
		assert.Equal(t, ErrCodeQubitRange, ve.Code)
	}
}

func TestAppendGate_ControlOutOfRange(t *testing.T) {
	b, err := NewBuilder(testTable, 2, 0)
	require.NoError(t, err)

	err = b.AppendGate(Instruction{Gate: "x", Targets: []int{0}, Controls: []int{5}})
	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, ErrCodeQubitRange, ve.Code)
}

func TestAppendGate_DuplicateQubit(t *testing.T) {
	b, err := NewBuilder(testTable, 2, 0)
	require.NoError(t, err)

	// Control and target collide
	err = b.AppendGate(Instruction{Gate: "x", Targets: []int{1}, Controls: []int{1}})
	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, ErrCodeDuplicateQubit, ve.Code)

	// Two identical targets
	err = b.AppendGate(Instruction{Gate: "swap", Targets: []int{0, 0}})
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, ErrCodeDuplicateQubit, ve.Code)
}

func TestAppendGate_ConditionBitOutOfRange(t *testing.T) {
	b, err := NewBuilder(testTable, 1, 1)
	require.NoError(t, err)

	err = b.AppendGate(Instruction{
		Gate:      "x",
		Targets:   []int{0},
		Condition: &Condition{Bit: 3, Value: 1},
	})
	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, ErrCodeClbitRange, ve.Code)
}

func TestAppendGate_ErrorIndexTracksPosition(t *testing.T) {
	b, err := NewBuilder(testTable, 2, 0)
	require.NoError(t, err)

	require.NoError(t, b.AppendGate(Instruction{Gate: "h", Targets: []int{0}}))
	require.NoError(t, b.AppendGate(Instruction{Gate: "x", Targets: []int{1}}))

	err = b.AppendGate(Instruction{Gate: "h", Targets: []int{9}})
	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, 2, ve.Index)
}

func TestAppendMeasurement_Bounds(t *testing.T) {
	b, err := NewBuilder(testTable, 2, 1)
	require.NoError(t, err)

	err = b.AppendMeasurement(Measurement{Qubit: 2, Clbit: 0})
	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, ErrCodeQubitRange, ve.Code)

	err = b.AppendMeasurement(Measurement{Qubit: 0, Clbit: 1})
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, ErrCodeClbitRange, ve.Code)

	assert.NoError(t, b.AppendMeasurement(Measurement{Qubit: 0, Clbit: 0}))
}

func TestNameQubits_WrongCount(t *testing.T) {
	b, err := NewBuilder(testTable, 2, 0)
	require.NoError(t, err)

	assert.Error(t, b.NameQubits([]string{"only-one"}))
	assert.NoError(t, b.NameQubits([]string{"a", "b"}))
}

func TestAppend_Dispatch(t *testing.T) {
	b, err := NewBuilder(testTable, 2, 1)
	require.NoError(t, err)

	require.NoError(t, b.Append(Instruction{Gate: "h", Targets: []int{0}}))
	require.NoError(t, b.Append(Measurement{Qubit: 0, Clbit: 0}))

	c := b.Build()
	assert.Equal(t, 2, c.Len())
}

func TestBuild_CopiesCallerSlices(t *testing.T) {
	b, err := NewBuilder(testTable, 3, 0)
	require.NoError(t, err)

	targets := []int{1}
	controls := []int{0}
	params := Values(0.5)
	require.NoError(t, b.AppendGate(Instruction{Gate: "rz", Params: params, Targets: targets}))
	require.NoError(t, b.AppendGate(Instruction{Gate: "x", Targets: targets, Controls: controls}))

	// Mutating the caller's slices must not reach the built circuit
	targets[0] = 2
	controls[0] = 2
	params[0] = Value(99)

	c := b.Build()
	inst := c.Ops()[1].(Instruction)
	assert.Equal(t, []int{1}, inst.Targets)
	assert.Equal(t, []int{0}, inst.Controls)
	rz := c.Ops()[0].(Instruction)
	assert.Equal(t, Value(0.5), rz.Params[0])
}

func TestBuild_SnapshotIsolatedFromBuilder(t *testing.T) {
	b, err := NewBuilder(testTable, 1, 0)
	require.NoError(t, err)

	require.NoError(t, b.AppendGate(Instruction{Gate: "h", Targets: []int{0}}))
	first := b.Build()

	require.NoError(t, b.AppendGate(Instruction{Gate: "x", Targets: []int{0}}))
	second := b.Build()

	assert.Equal(t, 1, first.Len())
	assert.Equal(t, 2, second.Len())
}
