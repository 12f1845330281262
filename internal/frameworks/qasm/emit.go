package qasm

import (
	"fmt"
	"strings"

	"github.com/quantabase/qmorph/internal/ir"
)

// emit generates QASM 2.0 source from IR, in IR order. Registers are sized
// exactly to the circuit's n_qubits/n_clbits. Any unmapped gate or unbound
// symbolic parameter fails the whole emission; no partial text is returned.
func (e *Emitter) emit(c *ir.Circuit) (string, error) {
	if syms := c.FreeParams(); len(syms) > 0 {
		return "", ir.NewUnboundParameterError(Framework, syms)
	}

	var sb strings.Builder
	sb.WriteString("OPENQASM 2.0;\n")
	sb.WriteString("include \"qelib1.inc\";\n")
	fmt.Fprintf(&sb, "qreg q[%d];\n", c.NumQubits())
	if c.NumClbits() > 0 {
		fmt.Fprintf(&sb, "creg c[%d];\n", c.NumClbits())
	}

	for _, op := range c.Ops() {
		switch v := op.(type) {
		case ir.Instruction:
			stmt, err := e.emitGate(v)
			if err != nil {
				return "", err
			}
			sb.WriteString(stmt)
			sb.WriteByte('\n')

		case ir.Measurement:
			fmt.Fprintf(&sb, "measure q[%d] -> c[%d];\n", v.Qubit, v.Clbit)
		}
	}

	return sb.String(), nil
}

func (e *Emitter) emitGate(inst ir.Instruction) (string, error) {
	native, err := e.catalog.NativeName(inst.Gate, len(inst.Controls), Framework)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	if inst.Condition != nil {
		fmt.Fprintf(&sb, "if(c[%d]==%d) ", inst.Condition.Bit, inst.Condition.Value)
	}
	sb.WriteString(native)

	if len(inst.Params) > 0 {
		sb.WriteByte('(')
		for i, p := range inst.Params {
			if i > 0 {
				sb.WriteByte(',')
			}
			val, ok := p.(ir.Value)
			if !ok {
				return "", ir.NewUnboundParameterError(Framework, []string{p.String()})
			}
			sb.WriteString(val.String())
		}
		sb.WriteByte(')')
	}

	sb.WriteByte(' ')
	for i, q := range inst.Qubits() {
		if i > 0 {
			sb.WriteByte(',')
		}
		fmt.Fprintf(&sb, "q[%d]", q)
	}
	sb.WriteByte(';')
	return sb.String(), nil
}
