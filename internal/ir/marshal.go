package ir

import (
	"encoding/json"
	"fmt"
)

// MarshalJSON implements json.Marshaler for Value: a plain JSON number.
func (v Value) MarshalJSON() ([]byte, error) {
	return []byte(v.String()), nil
}

// MarshalJSON implements json.Marshaler for Symbol: {"sym": name}, so bound
// and free parameters stay distinguishable on the wire.
func (s Symbol) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]string{"sym": string(s)})
}

type rawCircuit struct {
	NClbits    int               `json:"n_clbits"`
	NQubits    int               `json:"n_qubits"`
	Ops        []json.RawMessage `json:"ops"`
	QubitNames []string          `json:"qubit_names"`
}

type rawOp struct {
	Type      string            `json:"type"`
	Gate      string            `json:"gate"`
	Params    []json.RawMessage `json:"params"`
	Targets   []int             `json:"targets"`
	Controls  []int             `json:"controls"`
	Condition *Condition        `json:"condition"`
	Qubit     int               `json:"qubit"`
	Clbit     int               `json:"clbit"`
}

// UnmarshalCircuit decodes the canonical serialized form back into a
// Circuit. Index bounds are re-checked so a corrupt snapshot cannot produce
// an invalid circuit; gate vocabulary is NOT re-checked, since snapshots
// are only written from validated circuits.
func UnmarshalCircuit(data []byte) (*Circuit, error) {
	var raw rawCircuit
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("unmarshal circuit: %w", err)
	}
	if raw.NQubits < 0 || raw.NClbits < 0 {
		return nil, fmt.Errorf("unmarshal circuit: negative register size")
	}
	if raw.QubitNames != nil && len(raw.QubitNames) != raw.NQubits {
		return nil, fmt.Errorf("unmarshal circuit: %d qubit names for %d qubits", len(raw.QubitNames), raw.NQubits)
	}

	c := &Circuit{
		nQubits:    raw.NQubits,
		nClbits:    raw.NClbits,
		qubitNames: raw.QubitNames,
		ops:        make([]Op, 0, len(raw.Ops)),
	}

	for i, rawMsg := range raw.Ops {
		var op rawOp
		if err := json.Unmarshal(rawMsg, &op); err != nil {
			return nil, fmt.Errorf("unmarshal op %d: %w", i, err)
		}
		switch op.Type {
		case "gate":
			inst := Instruction{
				Gate:      op.Gate,
				Targets:   op.Targets,
				Controls:  op.Controls,
				Condition: op.Condition,
			}
			for j, rawParam := range op.Params {
				p, err := unmarshalParam(rawParam)
				if err != nil {
					return nil, fmt.Errorf("op %d param %d: %w", i, j, err)
				}
				inst.Params = append(inst.Params, p)
			}
			for _, q := range inst.Qubits() {
				if q < 0 || q >= c.nQubits {
					return nil, fmt.Errorf("op %d: qubit %d outside register [0, %d)", i, q, c.nQubits)
				}
			}
			if inst.Condition != nil && (inst.Condition.Bit < 0 || inst.Condition.Bit >= c.nClbits) {
				return nil, fmt.Errorf("op %d: condition bit %d outside register [0, %d)", i, inst.Condition.Bit, c.nClbits)
			}
			c.ops = append(c.ops, inst)

		case "measure":
			if op.Qubit < 0 || op.Qubit >= c.nQubits {
				return nil, fmt.Errorf("op %d: measured qubit %d outside register [0, %d)", i, op.Qubit, c.nQubits)
			}
			if op.Clbit < 0 || op.Clbit >= c.nClbits {
				return nil, fmt.Errorf("op %d: measurement clbit %d outside register [0, %d)", i, op.Clbit, c.nClbits)
			}
			c.ops = append(c.ops, Measurement{Qubit: op.Qubit, Clbit: op.Clbit})

		default:
			return nil, fmt.Errorf("op %d: unknown op type %q", i, op.Type)
		}
	}

	return c, nil
}

func unmarshalParam(data []byte) (Param, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("empty parameter")
	}
	if data[0] == '{' {
		var sym struct {
			Sym string `json:"sym"`
		}
		if err := json.Unmarshal(data, &sym); err != nil {
			return nil, err
		}
		if sym.Sym == "" {
			return nil, fmt.Errorf("symbolic parameter with empty name")
		}
		return Symbol(sym.Sym), nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	return Value(f), nil
}
