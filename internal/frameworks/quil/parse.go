package quil

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/quantabase/qmorph/internal/ir"
	"github.com/quantabase/qmorph/internal/transpile"
)

// Pre-compiled regexps for Quil parsing.
var (
	declareRegex = regexp.MustCompile(`^DECLARE\s+(\w+)\s+BIT\[(\d+)\]$`)
	measureRegex = regexp.MustCompile(`^MEASURE\s+(\d+)\s+(\w+)\[(\d+)\]$`)
	gateRegex    = regexp.MustCompile(`^([A-Za-z]\w*)\s*(?:\(([^)]*)\))?((?:\s+\d+)+)$`)
)

// quilStmt is one parsed statement, pre-index-compaction.
type quilStmt struct {
	line    int
	gate    string // canonical name; empty for measurements
	params  []ir.Param
	qubits  []int // native labels, controls first
	targets int   // count of target labels at the tail of qubits
	measure *ir.Measurement
}

// parse converts Quil source into IR. Qubit labels are compacted to
// [0, n) by first appearance; the original labels become IR qubit names.
func (a *Adapter) parse(src string) (*ir.Circuit, error) {
	var (
		stmts   []quilStmt
		roName  string
		nClbits int
		labels  []int
		index   = map[int]int{}
	)

	touch := func(label int) {
		if _, seen := index[label]; !seen {
			index[label] = len(labels)
			labels = append(labels, label)
		}
	}

	for lineNo, rawLine := range strings.Split(src, "\n") {
		line := strings.TrimSpace(rawLine)
		pos := lineNo + 1
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if m := declareRegex.FindStringSubmatch(line); m != nil {
			if roName != "" {
				return nil, transpile.NewAdapterError(Framework, pos, "multiple DECLARE statements are not supported", nil)
			}
			roName = m[1]
			nClbits, _ = strconv.Atoi(m[2])
			continue
		}

		if m := measureRegex.FindStringSubmatch(line); m != nil {
			qubit, _ := strconv.Atoi(m[1])
			clbit, _ := strconv.Atoi(m[3])
			if m[2] != roName {
				return nil, transpile.NewAdapterError(Framework, pos,
					fmt.Sprintf("MEASURE references undeclared memory %q", m[2]), nil)
			}
			touch(qubit)
			stmts = append(stmts, quilStmt{line: pos, measure: &ir.Measurement{Qubit: qubit, Clbit: clbit}})
			continue
		}

		m := gateRegex.FindStringSubmatch(line)
		if m == nil {
			return nil, transpile.NewAdapterError(Framework, pos, fmt.Sprintf("malformed statement %q", line), nil)
		}
		name, paramExpr, qubitExpr := m[1], m[2], m[3]

		ref, err := a.catalog.Canonical(Framework, name)
		if err != nil {
			return nil, err
		}

		var params []ir.Param
		if paramExpr != "" {
			for _, expr := range strings.Split(paramExpr, ",") {
				p, err := evalParam(expr)
				if err != nil {
					return nil, transpile.NewAdapterError(Framework, pos,
						fmt.Sprintf("parameter %q", strings.TrimSpace(expr)), err)
				}
				params = append(params, p)
			}
		}

		var qubits []int
		for _, field := range strings.Fields(qubitExpr) {
			q, _ := strconv.Atoi(field)
			touch(q)
			qubits = append(qubits, q)
		}
		if len(qubits) < ref.Controls {
			return nil, transpile.NewAdapterError(Framework, pos,
				fmt.Sprintf("gate %q takes at least %d qubits, got %d", name, ref.Controls+1, len(qubits)), nil)
		}

		stmts = append(stmts, quilStmt{
			line:    pos,
			gate:    ref.Gate,
			params:  params,
			qubits:  qubits,
			targets: len(qubits) - ref.Controls,
		})
	}

	builder, err := ir.NewBuilder(a.catalog, len(labels), nClbits)
	if err != nil {
		return nil, transpile.NewAdapterError(Framework, -1, "create circuit", err)
	}
	if len(labels) > 0 {
		names := make([]string, len(labels))
		for i, label := range labels {
			names[i] = strconv.Itoa(label)
		}
		if err := builder.NameQubits(names); err != nil {
			return nil, transpile.NewAdapterError(Framework, -1, "record qubit labels", err)
		}
	}

	for _, s := range stmts {
		if s.measure != nil {
			m := ir.Measurement{Qubit: index[s.measure.Qubit], Clbit: s.measure.Clbit}
			if err := builder.AppendMeasurement(m); err != nil {
				return nil, err
			}
			continue
		}
		compacted := make([]int, len(s.qubits))
		for i, q := range s.qubits {
			compacted[i] = index[q]
		}
		split := len(s.qubits) - s.targets
		if err := builder.AppendGate(ir.Instruction{
			Gate:     s.gate,
			Params:   s.params,
			Controls: compacted[:split],
			Targets:  compacted[split:],
		}); err != nil {
			return nil, err
		}
	}

	return builder.Build(), nil
}

// evalParam evaluates a Quil parameter: a %name symbolic parameter, or a
// product/quotient chain over numbers and pi.
func evalParam(expr string) (ir.Param, error) {
	s := strings.TrimSpace(expr)
	if s == "" {
		return nil, fmt.Errorf("empty parameter expression")
	}

	if strings.HasPrefix(s, "%") {
		name := s[1:]
		if name == "" {
			return nil, fmt.Errorf("empty symbolic parameter name")
		}
		return ir.Symbol(name), nil
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
