package quil

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/quantabase/qmorph/internal/catalog"
	"github.com/quantabase/qmorph/internal/ir"
)

// emit generates Quil source from IR, in IR order. Symbolic parameters
// pass through as %name. Classically conditioned gates have no Quil
// counterpart here and fail explicitly.
func (e *Emitter) emit(c *ir.Circuit) (string, error) {
	labels := qubitLabels(c)

	var sb strings.Builder
	if c.NumClbits() > 0 {
		fmt.Fprintf(&sb, "DECLARE ro BIT[%d]\n", c.NumClbits())
	}

	for _, op := range c.Ops() {
		switch v := op.(type) {
		case ir.Instruction:
			if v.Condition != nil {
				return "", &catalog.UnsupportedGateError{
					Gate:      v.Gate,
					Controls:  len(v.Controls),
					Framework: Framework,
					Reason:    "classically conditioned gates are not representable",
				}
			}
			native, err := e.catalog.NativeName(v.Gate, len(v.Controls), Framework)
			if err != nil {
				return "", err
			}
			sb.WriteString(native)
			if len(v.Params) > 0 {
				sb.WriteByte('(')
				for i, p := range v.Params {
					if i > 0 {
						sb.WriteString(", ")
					}
					switch pv := p.(type) {
					case ir.Value:
						sb.WriteString(pv.String())
					case ir.Symbol:
						sb.WriteByte('%')
						sb.WriteString(string(pv))
					}
				}
				sb.WriteByte(')')
			}
			for _, q := range v.Qubits() {
				sb.WriteByte(' ')
				sb.WriteString(labels[q])
			}
			sb.WriteByte('\n')

		case ir.Measurement:
			fmt.Fprintf(&sb, "MEASURE %s ro[%d]\n", labels[v.Qubit], v.Clbit)
		}
	}

	return sb.String(), nil
}

// qubitLabels restores the source framework's qubit labels when the IR
// carries integer names (a Quil round-trip); otherwise labels are the IR
// indices themselves.
func qubitLabels(c *ir.Circuit) []string {
	names := c.QubitNames()
	if names != nil {
		numeric := true
		for _, name := range names {
			if _, err := strconv.Atoi(name); err != nil {
				numeric = false
				break
			}
		}
		if numeric {
			return names
		}
	}
	labels := make([]string, c.NumQubits())
	for i := range labels {
		labels[i] = strconv.Itoa(i)
	}
	return labels
}
