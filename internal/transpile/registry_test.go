package transpile

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantabase/qmorph/internal/ir"
)

// countingAdapter records how many times ToIR runs.
type countingAdapter struct {
	calls *int
	circ  *ir.Circuit
	err   error
}

func (a *countingAdapter) ToIR(native any) (*ir.Circuit, error) {
	*a.calls++
	return a.circ, a.err
}

// echoEmitter returns a fixed native object.
type echoEmitter struct {
	out any
	err error
}

func (e *echoEmitter) FromIR(c *ir.Circuit) (any, error) {
	return e.out, e.err
}

func registerStub(t *testing.T, reg *Registry, framework string, adapter Adapter, emitter Emitter) {
	t.Helper()
	err := reg.Register(framework,
		func() Adapter { return adapter },
		func() Emitter { return emitter })
	require.NoError(t, err)
}

func TestRegistry_RegisterAndResolve(t *testing.T) {
	reg := New()
	calls := 0
	registerStub(t, reg, "alpha", &countingAdapter{calls: &calls}, &echoEmitter{out: "prog"})

	adapterFactory, emitterFactory, err := reg.Resolve("alpha")
	require.NoError(t, err)
	assert.NotNil(t, adapterFactory())
	assert.NotNil(t, emitterFactory())
}

func TestRegistry_EmptyIdentifier(t *testing.T) {
	reg := New()
	err := reg.Register("",
		func() Adapter { return &countingAdapter{calls: new(int)} },
		func() Emitter { return &echoEmitter{} })
	assert.Error(t, err)
}

func TestRegistry_NilFactories(t *testing.T) {
	reg := New()
	assert.Error(t, reg.Register("alpha", nil, func() Emitter { return &echoEmitter{} }))
	assert.Error(t, reg.Register("alpha", func() Adapter { return &countingAdapter{calls: new(int)} }, nil))
}

func TestRegistry_DuplicateRegistration(t *testing.T) {
	reg := New()
	calls := 0
	registerStub(t, reg, "alpha", &countingAdapter{calls: &calls}, &echoEmitter{})

	err := reg.Register("alpha",
		func() Adapter { return &countingAdapter{calls: &calls} },
		func() Emitter { return &echoEmitter{} })
	assert.Error(t, err)
}

func TestRegistry_ResolveUnknown(t *testing.T) {
	reg := New()
	calls := 0
	registerStub(t, reg, "alpha", &countingAdapter{calls: &calls}, &echoEmitter{})
	registerStub(t, reg, "beta", &countingAdapter{calls: &calls}, &echoEmitter{})

	_, _, err := reg.Resolve("gamma")
	require.Error(t, err)

	var ue *UnknownFrameworkError
	require.True(t, errors.As(err, &ue))
	assert.Equal(t, "gamma", ue.Framework)
	assert.Equal(t, []string{"alpha", "beta"}, ue.Known)
	assert.True(t, IsUnknownFramework(err))
}

func TestRegistry_FrameworksSorted(t *testing.T) {
	reg := New()
	calls := 0
	for _, name := range []string{"zeta", "alpha", "mid"} {
		registerStub(t, reg, name, &countingAdapter{calls: &calls}, &echoEmitter{})
	}
	assert.Equal(t, []string{"alpha", "mid", "zeta"}, reg.Frameworks())
}

func TestAdapterError_Formatting(t *testing.T) {
	err := NewAdapterError("qasm", 7, "malformed statement", nil)
	assert.Contains(t, err.Error(), "position 7")
	assert.Contains(t, err.Error(), "qasm")

	noPos := NewAdapterError("quil", -1, "create circuit", fmt.Errorf("boom"))
	assert.NotContains(t, noPos.Error(), "position")
	assert.Contains(t, noPos.Error(), "boom")
	assert.EqualError(t, errors.Unwrap(noPos), "boom")
}
