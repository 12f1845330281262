package ir

// Depth returns the length of the longest instruction-dependency chain.
//
// Two ops depend on each other when they share a wire (qubit or classical
// bit). Depth is computed as the standard per-wire schedule: each op lands
// at 1 + max(depth of every wire it touches), measurements and classical
// conditions tying qubit wires to classical wires.
func (c *Circuit) Depth() int {
	qubitDepth := make([]int, c.nQubits)
	clbitDepth := make([]int, c.nClbits)
	depth := 0

	for _, op := range c.ops {
		var qubits, clbits []int
		switch v := op.(type) {
		case Instruction:
			qubits = v.Qubits()
			if v.Condition != nil {
				clbits = []int{v.Condition.Bit}
			}
		case Measurement:
			qubits = []int{v.Qubit}
			clbits = []int{v.Clbit}
		}

		level := 0
		for _, q := range qubits {
			if qubitDepth[q] > level {
				level = qubitDepth[q]
			}
		}
		for _, b := range clbits {
			if clbitDepth[b] > level {
				level = clbitDepth[b]
			}
		}
		level++

		for _, q := range qubits {
			qubitDepth[q] = level
		}
		for _, b := range clbits {
			clbitDepth[b] = level
		}
		if level > depth {
			depth = level
		}
	}
	return depth
}
