package ir

import "fmt"

// Builder constructs a Circuit one validated op at a time.
//
// Every append is checked against the gate table (vocabulary, arity,
// parameter count) and the register bounds; nothing invalid ever reaches a
// built Circuit. Build snapshots the current sequence, so a Builder can be
// discarded after use without affecting circuits it produced.
type Builder struct {
	table      GateTable
	nQubits    int
	nClbits    int
	ops        []Op
	qubitNames []string
}

// NewBuilder creates an empty circuit shell over the given register sizes.
func NewBuilder(table GateTable, nQubits, nClbits int) (*Builder, error) {
	if nQubits < 0 || nClbits < 0 {
		return nil, fmt.Errorf("negative register size: n_qubits=%d, n_clbits=%d", nQubits, nClbits)
	}
	if table == nil {
		return nil, fmt.Errorf("nil gate table")
	}
	return &Builder{table: table, nQubits: nQubits, nClbits: nClbits}, nil
}

// Append validates and appends a gate instruction or measurement.
func (b *Builder) Append(op Op) error {
	switch v := op.(type) {
	case Instruction:
		return b.AppendGate(v)
	case Measurement:
		return b.AppendMeasurement(v)
	default:
		return fmt.Errorf("unknown op type: %T", op)
	}
}

// AppendGate validates inst against the gate table and register bounds and
// appends it. The instruction's slices are copied; the caller keeps
// ownership of its arguments.
func (b *Builder) AppendGate(inst Instruction) error {
	spec, err := b.table.Gate(inst.Gate)
	if err != nil {
		return err
	}

	pos := len(b.ops)
	if len(inst.Targets) != spec.Arity {
		return &ValidationError{
			Code:    ErrCodeArity,
			Message: fmt.Sprintf("gate takes %d target qubits, got %d", spec.Arity, len(inst.Targets)),
			Gate:    inst.Gate,
			Index:   pos,
		}
	}
	if len(inst.Params) != spec.ParamCount {
		return &ValidationError{
			Code:    ErrCodeParamCount,
			Message: fmt.Sprintf("gate takes %d parameters, got %d", spec.ParamCount, len(inst.Params)),
			Gate:    inst.Gate,
			Index:   pos,
		}
	}

	seen := make(map[int]bool, len(inst.Targets)+len(inst.Controls))
	for _, q := range inst.Qubits() {
		if q < 0 || q >= b.nQubits {
			return &ValidationError{
				Code:    ErrCodeQubitRange,
				Message: fmt.Sprintf("qubit %d outside register [0, %d)", q, b.nQubits),
				Gate:    inst.Gate,
				Index:   pos,
			}
		}
		if seen[q] {
			return &ValidationError{
				Code:    ErrCodeDuplicateQubit,
				Message: fmt.Sprintf("qubit %d referenced twice", q),
				Gate:    inst.Gate,
				Index:   pos,
			}
		}
		seen[q] = true
	}

	if cond := inst.Condition; cond != nil {
		if cond.Bit < 0 || cond.Bit >= b.nClbits {
			return &ValidationError{
				Code:    ErrCodeClbitRange,
				Message: fmt.Sprintf("condition bit %d outside register [0, %d)", cond.Bit, b.nClbits),
				Gate:    inst.Gate,
				Index:   pos,
			}
		}
	}

	b.ops = append(b.ops, copyInstruction(inst))
	return nil
}

// AppendMeasurement validates m against the register bounds and appends it.
func (b *Builder) AppendMeasurement(m Measurement) error {
	pos := len(b.ops)
	if m.Qubit < 0 || m.Qubit >= b.nQubits {
		return &ValidationError{
			Code:    ErrCodeQubitRange,
			Message: fmt.Sprintf("measured qubit %d outside register [0, %d)", m.Qubit, b.nQubits),
			Index:   pos,
		}
	}
	if m.Clbit < 0 || m.Clbit >= b.nClbits {
		return &ValidationError{
			Code:    ErrCodeClbitRange,
			Message: fmt.Sprintf("measurement clbit %d outside register [0, %d)", m.Clbit, b.nClbits),
			Index:   pos,
		}
	}
	b.ops = append(b.ops, m)
	return nil
}

// NameQubits records the source framework's qubit naming, index-ordered.
// Adapters for frameworks with named qubits call this after assigning
// indices by first appearance.
func (b *Builder) NameQubits(names []string) error {
	if len(names) != b.nQubits {
		return fmt.Errorf("qubit name count %d != n_qubits %d", len(names), b.nQubits)
	}
	b.qubitNames = make([]string, len(names))
	copy(b.qubitNames, names)
	return nil
}

// Build snapshots the op sequence into an immutable Circuit.
func (b *Builder) Build() *Circuit {
	ops := make([]Op, len(b.ops))
	copy(ops, b.ops)
	var names []string
	if b.qubitNames != nil {
		names = make([]string, len(b.qubitNames))
		copy(names, b.qubitNames)
	}
	return &Circuit{
		nQubits:    b.nQubits,
		nClbits:    b.nClbits,
		ops:        ops,
		qubitNames: names,
	}
}

// copyInstruction deep-copies an instruction so built circuits never alias
// caller-owned slices.
func copyInstruction(inst Instruction) Instruction {
	out := Instruction{Gate: inst.Gate}
	if inst.Params != nil {
		out.Params = make([]Param, len(inst.Params))
		copy(out.Params, inst.Params)
	}
	out.Targets = make([]int, len(inst.Targets))
	copy(out.Targets, inst.Targets)
	if inst.Controls != nil {
		out.Controls = make([]int, len(inst.Controls))
		copy(out.Controls, inst.Controls)
	}
	if inst.Condition != nil {
		cond := *inst.Condition
		out.Condition = &cond
	}
	return out
}
