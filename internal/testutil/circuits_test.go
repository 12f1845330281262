package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantabase/qmorph/internal/ir"
)

func TestBellCircuit_Deterministic(t *testing.T) {
	first := BellCircuit(t)
	second := BellCircuit(t)
	assert.Equal(t, ir.MustHash(first), ir.MustHash(second))
}

func TestBellCircuit_Structure(t *testing.T) {
	c := BellCircuit(t)

	assert.Equal(t, 2, c.NumQubits())
	assert.Equal(t, 2, c.NumClbits())
	assert.Equal(t, 4, c.Len())
	assert.Equal(t, 3, c.Depth())
	assert.Empty(t, c.FreeParams())

	cnot := c.Ops()[1].(ir.Instruction)
	assert.Equal(t, "x", cnot.Gate)
	assert.Equal(t, []int{0}, cnot.Controls)
}

func TestParamCircuit_HasOneFreeParam(t *testing.T) {
	c := ParamCircuit(t)
	assert.Equal(t, []string{"theta"}, c.FreeParams())

	bound, err := c.BindParams(map[string]float64{"theta": 1.0})
	require.NoError(t, err)
	assert.Empty(t, bound.FreeParams())
}

func TestWideCircuit_Structure(t *testing.T) {
	c := WideCircuit(t)

	assert.Equal(t, 3, c.NumQubits())
	assert.Equal(t, 15, c.Len())
	assert.Len(t, c.Measurements(), 3)
	assert.Empty(t, c.FreeParams())
}

func TestConditionedCircuit_Condition(t *testing.T) {
	c := ConditionedCircuit(t)

	inst := c.Ops()[2].(ir.Instruction)
	require.NotNil(t, inst.Condition)
	assert.Equal(t, 0, inst.Condition.Bit)
	assert.Equal(t, 1, inst.Condition.Value)
}
