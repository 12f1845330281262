package ir

// BindParams returns a new Circuit with symbolic parameters replaced by the
// mapped concrete values. Binding is total-or-nothing: if any free symbol is
// absent from the mapping, the whole call fails with UnboundParameterError
// listing every missing symbol, and no circuit is produced.
func (c *Circuit) BindParams(binding map[string]float64) (*Circuit, error) {
	var missing []string
	for _, name := range c.FreeParams() {
		if _, ok := binding[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, NewUnboundParameterError("", missing)
	}

	ops := make([]Op, len(c.ops))
	for i, op := range c.ops {
		inst, ok := op.(Instruction)
		if !ok {
			ops[i] = op
			continue
		}
		bound := copyInstruction(inst)
		for j, p := range bound.Params {
			if sym, ok := p.(Symbol); ok {
				bound.Params[j] = Value(binding[string(sym)])
			}
		}
		ops[i] = bound
	}

	return &Circuit{
		nQubits:    c.nQubits,
		nClbits:    c.nClbits,
		ops:        ops,
		qubitNames: c.QubitNames(),
	}, nil
}
