package ir

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"golang.org/x/text/unicode/norm"
)

// MarshalCanonical produces the canonical serialized form of a circuit.
// This is the ONLY serialization used for content-addressed identity and
// for storage: object keys appear in a fixed order, strings are NFC
// normalized with HTML escaping disabled, and bound parameters use the
// shortest round-trippable float form, so equal circuits always produce
// byte-identical output.
func MarshalCanonical(c *Circuit) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')

	fmt.Fprintf(&buf, `"n_clbits":%d,"n_qubits":%d,"ops":[`, c.nClbits, c.nQubits)
	for i, op := range c.ops {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeCanonicalOp(&buf, op); err != nil {
			return nil, fmt.Errorf("op %d: %w", i, err)
		}
	}
	buf.WriteByte(']')

	if c.qubitNames != nil {
		buf.WriteString(`,"qubit_names":[`)
		for i, name := range c.qubitNames {
			if i > 0 {
				buf.WriteByte(',')
			}
			s, err := canonicalString(name)
			if err != nil {
				return nil, fmt.Errorf("qubit name %d: %w", i, err)
			}
			buf.Write(s)
		}
		buf.WriteByte(']')
	}

	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func writeCanonicalOp(buf *bytes.Buffer, op Op) error {
	switch v := op.(type) {
	case Instruction:
		buf.WriteByte('{')
		if v.Condition != nil {
			fmt.Fprintf(buf, `"condition":{"bit":%d,"value":%d},`, v.Condition.Bit, v.Condition.Value)
		}
		if len(v.Controls) > 0 {
			buf.WriteString(`"controls":`)
			writeIntArray(buf, v.Controls)
			buf.WriteByte(',')
		}
		name, err := canonicalString(v.Gate)
		if err != nil {
			return err
		}
		fmt.Fprintf(buf, `"gate":%s,`, name)
		if len(v.Params) > 0 {
			buf.WriteString(`"params":[`)
			for i, p := range v.Params {
				if i > 0 {
					buf.WriteByte(',')
				}
				if err := writeCanonicalParam(buf, p); err != nil {
					return err
				}
			}
			buf.WriteString(`],`)
		}
		buf.WriteString(`"targets":`)
		writeIntArray(buf, v.Targets)
		buf.WriteString(`,"type":"gate"}`)
		return nil

	case Measurement:
		fmt.Fprintf(buf, `{"clbit":%d,"qubit":%d,"type":"measure"}`, v.Clbit, v.Qubit)
		return nil

	default:
		return fmt.Errorf("unknown op type: %T", op)
	}
}

func writeCanonicalParam(buf *bytes.Buffer, p Param) error {
	switch v := p.(type) {
	case Value:
		buf.WriteString(strconv.FormatFloat(float64(v), 'g', -1, 64))
		return nil
	case Symbol:
		s, err := canonicalString(string(v))
		if err != nil {
			return err
		}
		fmt.Fprintf(buf, `{"sym":%s}`, s)
		return nil
	default:
		return fmt.Errorf("unknown param type: %T", p)
	}
}

func writeIntArray(buf *bytes.Buffer, vals []int) {
	buf.WriteByte('[')
	for i, v := range vals {
		if i > 0 {
			buf.WriteByte(',')
		}
		fmt.Fprintf(buf, "%d", v)
	}
	buf.WriteByte(']')
}

// canonicalString JSON-encodes a string NFC-normalized and without HTML
// escaping, per the canonical form rules.
func canonicalString(s string) ([]byte, error) {
	normalized := norm.NFC.String(s)

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(normalized); err != nil {
		return nil, err
	}
	// Encoder appends a newline; strip it.
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
