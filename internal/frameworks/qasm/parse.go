package qasm

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/quantabase/qmorph/internal/ir"
	"github.com/quantabase/qmorph/internal/transpile"
)

// Pre-compiled regexps for QASM parsing.
var (
	qregRegex    = regexp.MustCompile(`^qreg\s+([a-zA-Z_]\w*)\[(\d+)\]$`)
	cregRegex    = regexp.MustCompile(`^creg\s+([a-zA-Z_]\w*)\[(\d+)\]$`)
	measureRegex = regexp.MustCompile(`^measure\s+([a-zA-Z_]\w*)\[(\d+)\]\s*->\s*([a-zA-Z_]\w*)\[(\d+)\]$`)
	condRegex    = regexp.MustCompile(`^if\s*\(\s*([a-zA-Z_]\w*)\[(\d+)\]\s*==\s*(\d+)\s*\)\s*(.+)$`)
	gateRegex    = regexp.MustCompile(`^([a-zA-Z_]\w*)\s*(?:\(([^)]*)\))?\s+(.+)$`)
	argRegex     = regexp.MustCompile(`^([a-zA-Z_]\w*)\[(\d+)\]$`)
	identRegex   = regexp.MustCompile(`^[a-zA-Z_]\w*$`)
)

// parse converts QASM 2.0 source into IR. Statement order is preserved
// exactly; every fault carries its 1-based source line.
func (a *Adapter) parse(src string) (*ir.Circuit, error) {
	var (
		builder  *ir.Builder
		qregName string
		cregName string
		nQubits  = -1
		nClbits  int
	)

	ensureBuilder := func(line int) error {
		if builder != nil {
			return nil
		}
		if nQubits < 0 {
			return transpile.NewAdapterError(Framework, line, "statement before qreg declaration", nil)
		}
		b, err := ir.NewBuilder(a.catalog, nQubits, nClbits)
		if err != nil {
			return transpile.NewAdapterError(Framework, line, "create circuit", err)
		}
		builder = b
		return nil
	}

	for lineNo, rawLine := range strings.Split(src, "\n") {
		line := strings.TrimSpace(rawLine)
		pos := lineNo + 1
		if line == "" || strings.HasPrefix(line, "//") {
			continue
		}
		line = strings.TrimSuffix(line, ";")
		line = strings.TrimSpace(line)

		switch {
		case strings.HasPrefix(line, "OPENQASM"), strings.HasPrefix(line, "include"):
			continue

		case strings.HasPrefix(line, "qreg"):
			m := qregRegex.FindStringSubmatch(line)
			if m == nil {
				return nil, transpile.NewAdapterError(Framework, pos, fmt.Sprintf("malformed qreg declaration %q", line), nil)
			}
			if nQubits >= 0 {
				return nil, transpile.NewAdapterError(Framework, pos, "multiple qreg declarations are not supported", nil)
			}
			qregName = m[1]
			nQubits, _ = strconv.Atoi(m[2])

		case strings.HasPrefix(line, "creg"):
			m := cregRegex.FindStringSubmatch(line)
			if m == nil {
				return nil, transpile.NewAdapterError(Framework, pos, fmt.Sprintf("malformed creg declaration %q", line), nil)
			}
			if cregName != "" {
				return nil, transpile.NewAdapterError(Framework, pos, "multiple creg declarations are not supported", nil)
			}
			cregName = m[1]
			nClbits, _ = strconv.Atoi(m[2])

		case strings.HasPrefix(line, "measure"):
			if err := ensureBuilder(pos); err != nil {
				return nil, err
			}
			m := measureRegex.FindStringSubmatch(line)
			if m == nil {
				return nil, transpile.NewAdapterError(Framework, pos, fmt.Sprintf("malformed measure statement %q", line), nil)
			}
			if m[1] != qregName || m[3] != cregName {
				return nil, transpile.NewAdapterError(Framework, pos, fmt.Sprintf("measure references undeclared register in %q", line), nil)
			}
			qubit, _ := strconv.Atoi(m[2])
			clbit, _ := strconv.Atoi(m[4])
			if err := builder.AppendMeasurement(ir.Measurement{Qubit: qubit, Clbit: clbit}); err != nil {
				return nil, err
			}

		default:
			if err := ensureBuilder(pos); err != nil {
				return nil, err
			}

			var cond *ir.Condition
			if m := condRegex.FindStringSubmatch(line); m != nil {
				if m[1] != cregName {
					return nil, transpile.NewAdapterError(Framework, pos, fmt.Sprintf("condition references undeclared register in %q", line), nil)
				}
				bit, _ := strconv.Atoi(m[2])
				val, _ := strconv.Atoi(m[3])
				cond = &ir.Condition{Bit: bit, Value: val}
				line = strings.TrimSpace(m[4])
				line = strings.TrimSuffix(line, ";")
			}

			inst, err := a.parseGate(line, qregName, pos)
			if err != nil {
				return nil, err
			}
			inst.Condition = cond
			if err := builder.AppendGate(inst); err != nil {
				return nil, err
			}
		}
	}

	if nQubits < 0 {
		return nil, transpile.NewAdapterError(Framework, -1, "no qreg declaration found", nil)
	}
	if builder == nil {
		b, err := ir.NewBuilder(a.catalog, nQubits, nClbits)
		if err != nil {
			return nil, transpile.NewAdapterError(Framework, -1, "create circuit", err)
		}
		builder = b
	}
	return builder.Build(), nil
}

// parseGate translates one gate application statement via the catalog's
// reverse lookup, splitting operands into controls and targets per the
// canonical controls + base gate encoding.
func (a *Adapter) parseGate(line, qregName string, pos int) (ir.Instruction, error) {
	m := gateRegex.FindStringSubmatch(line)
	if m == nil {
		return ir.Instruction{}, transpile.NewAdapterError(Framework, pos, fmt.Sprintf("malformed statement %q", line), nil)
	}
	name, paramExpr, operandExpr := m[1], m[2], m[3]

	ref, err := a.catalog.Canonical(Framework, name)
	if err != nil {
		return ir.Instruction{}, err
	}

	var params []ir.Param
	if paramExpr != "" {
		for _, expr := range strings.Split(paramExpr, ",") {
			p, err := evalParam(expr)
			if err != nil {
				return ir.Instruction{}, transpile.NewAdapterError(Framework, pos, fmt.Sprintf("parameter %q", strings.TrimSpace(expr)), err)
			}
			params = append(params, p)
		}
	}

	var operands []int
	for _, arg := range strings.Split(operandExpr, ",") {
		arg = strings.TrimSpace(arg)
		am := argRegex.FindStringSubmatch(arg)
		if am == nil || am[1] != qregName {
			return ir.Instruction{}, transpile.NewAdapterError(Framework, pos, fmt.Sprintf("malformed qubit argument %q", arg), nil)
		}
		q, _ := strconv.Atoi(am[2])
		operands = append(operands, q)
	}

	if len(operands) < ref.Controls {
		return ir.Instruction{}, transpile.NewAdapterError(Framework, pos,
			fmt.Sprintf("gate %q takes at least %d qubits, got %d", name, ref.Controls+1, len(operands)), nil)
	}

	return ir.Instruction{
		Gate:     ref.Gate,
		Params:   params,
		Controls: operands[:ref.Controls],
		Targets:  operands[ref.Controls:],
	}, nil
}

// evalParam evaluates a QASM parameter expression: a product/quotient chain
// over numbers and pi (e.g. "pi/2", "3*pi/4", "-1.5e-2"), or a bare
// identifier naming a free symbolic parameter.
func evalParam(expr string) (ir.Param, error) {
	s := strings.TrimSpace(expr)
	if s == "" {
		return nil, fmt.Errorf("empty parameter expression")
	}

	if identRegex.MatchString(s) && s != "pi" {
		return ir.Symbol(s), nil
	}

	sign := 1.0
	if strings.HasPrefix(s, "-") {
		sign = -1.0
		s = strings.TrimSpace(s[1:])
	}

	result := 1.0
	op := byte('*')
	for len(s) > 0 {
		idx := strings.IndexAny(s, "*/")
		var factor string
		var nextOp byte
		if idx < 0 {
			factor, s = s, ""
		} else {
			factor, nextOp, s = s[:idx], s[idx], s[idx+1:]
		}
		factor = strings.TrimSpace(factor)

		var v float64
		if factor == "pi" {
			v = math.Pi
		} else {
			parsed, err := strconv.ParseFloat(factor, 64)
			if err != nil {
				return nil, fmt.Errorf("cannot evaluate %q", expr)
			}
			v = parsed
		}

		switch op {
		case '*':
			result *= v
		case '/':
			if v == 0 {
				return nil, fmt.Errorf("division by zero in %q", expr)
			}
			result /= v
		}
		op = nextOp
	}

	return ir.Value(sign * result), nil
}
