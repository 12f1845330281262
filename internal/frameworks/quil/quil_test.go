package quil

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantabase/qmorph/internal/catalog"
	"github.com/quantabase/qmorph/internal/ir"
	"github.com/quantabase/qmorph/internal/testutil"
	"github.com/quantabase/qmorph/internal/transpile"
)

func parseQuil(t *testing.T, src string) *ir.Circuit {
	t.Helper()
	c, err := NewAdapter().ToIR(src)
	require.NoError(t, err)
	return c
}

func emitQuil(t *testing.T, c *ir.Circuit) string {
	t.Helper()
	out, err := NewEmitter().FromIR(c)
	require.NoError(t, err)
	return out.(string)
}

func TestToIR_BellMatchesFixture(t *testing.T) {
	c := parseQuil(t, testutil.BellQuil)

	assert.Equal(t, 2, c.NumQubits())
	assert.Equal(t, 2, c.NumClbits())
	ops := c.Ops()
	require.Len(t, ops, 4)
	assert.Equal(t, "h", ops[0].(ir.Instruction).Gate)
	cnot := ops[1].(ir.Instruction)
	assert.Equal(t, "x", cnot.Gate)
	assert.Equal(t, []int{0}, cnot.Controls)
	assert.Equal(t, []int{1}, cnot.Targets)
}

func TestToIR_SparseLabelsCompacted(t *testing.T) {
	src := `DECLARE ro BIT[2]
H 4
CNOT 4 9
MEASURE 4 ro[0]
MEASURE 9 ro[1]
`
	c := parseQuil(t, src)

	assert.Equal(t, 2, c.NumQubits())
	assert.Equal(t, []string{"4", "9"}, c.QubitNames())

	cnot := c.Ops()[1].(ir.Instruction)
	assert.Equal(t, []int{0}, cnot.Controls)
	assert.Equal(t, []int{1}, cnot.Targets)
	assert.Equal(t, ir.Measurement{Qubit: 0, Clbit: 0}, c.Ops()[2])
}

func TestToIR_FirstAppearanceOrdering(t *testing.T) {
	src := `X 7
H 2
CNOT 2 7
`
	c := parseQuil(t, src)
	// label 7 appears first, so it becomes index 0
	assert.Equal(t, []string{"7", "2"}, c.QubitNames())
	cnot := c.Ops()[2].(ir.Instruction)
	assert.Equal(t, []int{1}, cnot.Controls)
	assert.Equal(t, []int{0}, cnot.Targets)
}

func TestToIR_Params(t *testing.T) {
	src := `RX(pi/2) 0
RZ(%theta) 0
PHASE(0.25) 0
`
	c := parseQuil(t, src)
	ops := c.Ops()

	assert.InDelta(t, math.Pi/2, float64(ops[0].(ir.Instruction).Params[0].(ir.Value)), 1e-12)
	assert.Equal(t, ir.Symbol("theta"), ops[1].(ir.Instruction).Params[0])
	assert.Equal(t, "phase", ops[2].(ir.Instruction).Gate)
	assert.Equal(t, []string{"theta"}, c.FreeParams())
}

func TestToIR_CommentsIgnored(t *testing.T) {
	src := `# bell pair
H 0

CNOT 0 1
`
	c := parseQuil(t, src)
	assert.Equal(t, 2, c.Len())
}

func TestToIR_UnknownGate(t *testing.T) {
	_, err := NewAdapter().ToIR("XY 0 1\n")
	require.Error(t, err)

	var ue *catalog.UnrecognizedGateError
	require.True(t, errors.As(err, &ue))
	assert.Equal(t, "XY", ue.Gate)
	assert.Equal(t, Framework, ue.Framework)
}

func TestToIR_MalformedStatement(t *testing.T) {
	src := `H 0
MEASURE zero ro[0]
`
	_, err := NewAdapter().ToIR(src)
	var ae *transpile.AdapterError
	require.True(t, errors.As(err, &ae))
	assert.Equal(t, 2, ae.Position)
}

func TestToIR_MeasureUndeclaredMemory(t *testing.T) {
	src := `DECLARE ro BIT[1]
MEASURE 0 mem[0]
`
	_, err := NewAdapter().ToIR(src)
	assert.True(t, transpile.IsAdapterError(err))
}

func TestToIR_MultipleDeclaresRejected(t *testing.T) {
	src := `DECLARE ro BIT[1]
DECLARE other BIT[1]
`
	_, err := NewAdapter().ToIR(src)
	assert.True(t, transpile.IsAdapterError(err))
}

func TestToIR_RequiresString(t *testing.T) {
	_, err := NewAdapter().ToIR([]byte("H 0"))
	assert.True(t, transpile.IsAdapterError(err))
}

func TestFromIR_Bell(t *testing.T) {
	got := emitQuil(t, testutil.BellCircuit(t))
	assert.Equal(t, testutil.BellQuil, got)
}

func TestFromIR_RestoresOriginalLabels(t *testing.T) {
	src := `DECLARE ro BIT[1]
H 4
CNOT 4 9
MEASURE 9 ro[0]
`
	c := parseQuil(t, src)
	got := emitQuil(t, c)
	assert.Equal(t, src, got)
}

func TestFromIR_SymbolicParamsPassThrough(t *testing.T) {
	got := emitQuil(t, testutil.ParamCircuit(t))
	assert.Equal(t, "RX(0.5) 0\nRZ(%theta) 0\n", got)
}

func TestFromIR_ConditionUnsupported(t *testing.T) {
	out, err := NewEmitter().FromIR(testutil.ConditionedCircuit(t))
	assert.Nil(t, out)

	var ue *catalog.UnsupportedGateError
	require.True(t, errors.As(err, &ue))
	assert.Equal(t, Framework, ue.Framework)
	assert.NotEmpty(t, ue.Reason)
}

func TestFromIR_UnmappedGateFailsWhole(t *testing.T) {
	// sdg has no Quil spelling
	b, err := ir.NewBuilder(catalog.Default(), 1, 0)
	require.NoError(t, err)
	require.NoError(t, b.AppendGate(ir.Instruction{Gate: "h", Targets: []int{0}}))
	require.NoError(t, b.AppendGate(ir.Instruction{Gate: "sdg", Targets: []int{0}}))

	out, err := NewEmitter().FromIR(b.Build())
	assert.Nil(t, out)
	assert.True(t, catalog.IsUnsupportedGate(err))
}

func TestRoundTrip_HashStable(t *testing.T) {
	c1 := parseQuil(t, testutil.BellQuil)
	c2 := parseQuil(t, emitQuil(t, c1))
	assert.Equal(t, ir.MustHash(c1), ir.MustHash(c2))
}
