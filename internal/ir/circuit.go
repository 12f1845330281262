package ir

import "sort"

// Circuit is an immutable quantum circuit: an ordered op sequence over
// fixed-size qubit and classical-bit registers.
//
// Circuits are only created by Builder.Build, BindParams, or
// UnmarshalCircuit; once created they never change. Conversions produce new
// circuits rather than mutating shared state, so a Circuit may be read from
// any number of goroutines without coordination.
type Circuit struct {
	nQubits    int
	nClbits    int
	ops        []Op
	qubitNames []string
}

// NumQubits returns the qubit register size.
func (c *Circuit) NumQubits() int { return c.nQubits }

// NumClbits returns the classical register size.
func (c *Circuit) NumClbits() int { return c.nClbits }

// Len returns the number of ops (gate instructions plus measurements).
func (c *Circuit) Len() int { return len(c.ops) }

// Ops returns the op sequence in execution order.
// The returned slice is a copy; callers may not reach the circuit's state.
func (c *Circuit) Ops() []Op {
	ops := make([]Op, len(c.ops))
	copy(ops, c.ops)
	return ops
}

// QubitNames returns the source framework's qubit naming, index-ordered, or
// nil when the source used plain indices. Emitters targeting frameworks
// with named qubits use this to restore original naming.
func (c *Circuit) QubitNames() []string {
	if c.qubitNames == nil {
		return nil
	}
	names := make([]string, len(c.qubitNames))
	copy(names, c.qubitNames)
	return names
}

// FreeParams returns the circuit's free symbolic parameter names, sorted
// and deduplicated.
func (c *Circuit) FreeParams() []string {
	seen := map[string]bool{}
	var names []string
	for _, op := range c.ops {
		inst, ok := op.(Instruction)
		if !ok {
			continue
		}
		for _, p := range inst.Params {
			if sym, ok := p.(Symbol); ok && !seen[string(sym)] {
				seen[string(sym)] = true
				names = append(names, string(sym))
			}
		}
	}
	sort.Strings(names)
	return names
}

// Measurements returns the circuit's measurements in execution order.
func (c *Circuit) Measurements() []Measurement {
	var ms []Measurement
	for _, op := range c.ops {
		if m, ok := op.(Measurement); ok {
			ms = append(ms, m)
		}
	}
	return ms
}
