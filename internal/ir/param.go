package ir

import "strconv"

// Param is a sealed interface over gate parameter variants.
// Only Value (bound) and Symbol (free) implement it.
type Param interface {
	param()
	// String returns the canonical textual form of the parameter.
	String() string
}

// Value is a bound numeric parameter (a gate angle, in radians).
type Value float64

func (Value) param() {}

// String formats the value in shortest round-trippable form, so canonical
// serialization stays deterministic.
func (v Value) String() string {
	return strconv.FormatFloat(float64(v), 'g', -1, 64)
}

// Symbol is a named free parameter awaiting a concrete value.
type Symbol string

func (Symbol) param() {}

func (s Symbol) String() string {
	return string(s)
}

// Bound reports whether every parameter in params carries a concrete value.
func Bound(params []Param) bool {
	for _, p := range params {
		if _, ok := p.(Symbol); ok {
			return false
		}
	}
	return true
}

// Values creates a bound parameter list from concrete values.
func Values(vals ...float64) []Param {
	params := make([]Param, len(vals))
	for i, v := range vals {
		params[i] = Value(v)
	}
	return params
}
