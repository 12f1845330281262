package catalog

import (
	"fmt"
	"strconv"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"

	"github.com/quantabase/qmorph/internal/ir"
)

// Compile parses a CUE gate table into a Catalog.
// Uses the CUE SDK's Go API directly (not CLI subprocess). The table must
// declare a "frameworks" list and a "gates" struct; see gates.cue for the
// schema.
func Compile(data []byte) (*Catalog, error) {
	ctx := cuecontext.New()
	v := ctx.CompileBytes(data)
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	c := &Catalog{
		gates:   make(map[string]*gateDef),
		reverse: make(map[string]map[string]CanonicalRef),
	}

	frameworks, err := parseFrameworks(v)
	if err != nil {
		return nil, err
	}
	c.frameworks = frameworks
	known := make(map[string]bool, len(frameworks))
	for _, fw := range frameworks {
		known[fw] = true
		c.reverse[fw] = make(map[string]CanonicalRef)
	}

	gatesVal := v.LookupPath(cue.ParsePath("gates"))
	if !gatesVal.Exists() {
		return nil, &CompileError{Field: "gates", Message: "gates table is required", Pos: v.Pos()}
	}

	iter, err := gatesVal.Fields()
	if err != nil {
		return nil, formatCUEError(err)
	}
	for iter.Next() {
		name := iter.Label()
		def, err := parseGate(name, iter.Value(), known)
		if err != nil {
			return nil, err
		}
		c.gates[name] = def

		for fw, byControls := range def.names {
			for controls, native := range byControls {
				if prev, dup := c.reverse[fw][native]; dup {
					return nil, &CompileError{
						Field: fmt.Sprintf("gates.%s.names.%s", name, fw),
						Message: fmt.Sprintf("native name %q already maps to %s with %d controls",
							native, prev.Gate, prev.Controls),
						Pos: iter.Value().Pos(),
					}
				}
				c.reverse[fw][native] = CanonicalRef{Gate: name, Controls: controls}
			}
		}
	}

	if len(c.gates) == 0 {
		return nil, &CompileError{Field: "gates", Message: "gate table is empty", Pos: v.Pos()}
	}
	return c, nil
}

func parseFrameworks(v cue.Value) ([]string, error) {
	fwVal := v.LookupPath(cue.ParsePath("frameworks"))
	if !fwVal.Exists() {
		return nil, &CompileError{Field: "frameworks", Message: "frameworks list is required", Pos: v.Pos()}
	}
	iter, err := fwVal.List()
	if err != nil {
		return nil, formatCUEError(err)
	}
	var frameworks []string
	for iter.Next() {
		fw, err := iter.Value().String()
		if err != nil {
			return nil, formatCUEError(err)
		}
		frameworks = append(frameworks, fw)
	}
	if len(frameworks) == 0 {
		return nil, &CompileError{Field: "frameworks", Message: "at least one framework is required", Pos: fwVal.Pos()}
	}
	return frameworks, nil
}

func parseGate(name string, v cue.Value, known map[string]bool) (*gateDef, error) {
	arity, err := parseIntField(v, "arity", name)
	if err != nil {
		return nil, err
	}
	if arity < 1 {
		return nil, &CompileError{
			Field:   fmt.Sprintf("gates.%s.arity", name),
			Message: "arity must be at least 1",
			Pos:     v.Pos(),
		}
	}
	params, err := parseIntField(v, "params", name)
	if err != nil {
		return nil, err
	}

	def := &gateDef{
		spec:  ir.GateSpec{Name: name, Arity: int(arity), ParamCount: int(params)},
		names: make(map[string]map[int]string),
	}

	namesVal := v.LookupPath(cue.ParsePath("names"))
	if !namesVal.Exists() {
		return nil, &CompileError{
			Field:   fmt.Sprintf("gates.%s.names", name),
			Message: "at least one framework mapping is required",
			Pos:     v.Pos(),
		}
	}
	fwIter, err := namesVal.Fields()
	if err != nil {
		return nil, formatCUEError(err)
	}
	for fwIter.Next() {
		fw := fwIter.Label()
		if !known[fw] {
			return nil, &CompileError{
				Field:   fmt.Sprintf("gates.%s.names.%s", name, fw),
				Message: "framework not declared in frameworks list",
				Pos:     fwIter.Value().Pos(),
			}
		}
		byControls := make(map[int]string)
		ctrlIter, err := fwIter.Value().Fields()
		if err != nil {
			return nil, formatCUEError(err)
		}
		for ctrlIter.Next() {
			label := ctrlIter.Label()
			controls, err := strconv.Atoi(label)
			if err != nil || controls < 0 {
				return nil, &CompileError{
					Field:   fmt.Sprintf("gates.%s.names.%s", name, fw),
					Message: fmt.Sprintf("control count key %q must be a non-negative integer", label),
					Pos:     ctrlIter.Value().Pos(),
				}
			}
			native, err := ctrlIter.Value().String()
			if err != nil {
				return nil, formatCUEError(err)
			}
			byControls[controls] = native
		}
		def.names[fw] = byControls
	}

	return def, nil
}

func parseIntField(v cue.Value, field, gate string) (int64, error) {
	fieldVal := v.LookupPath(cue.ParsePath(field))
	if !fieldVal.Exists() {
		return 0, &CompileError{
			Field:   fmt.Sprintf("gates.%s.%s", gate, field),
			Message: field + " is required",
			Pos:     v.Pos(),
		}
	}
	n, err := fieldVal.Int64()
	if err != nil {
		return 0, formatCUEError(err)
	}
	if n < 0 {
		return 0, &CompileError{
			Field:   fmt.Sprintf("gates.%s.%s", gate, field),
			Message: field + " must be non-negative",
			Pos:     fieldVal.Pos(),
		}
	}
	return n, nil
}

// CompileError represents a gate-table compilation error with source position.
type CompileError struct {
	Field   string
	Message string
	Pos     token.Pos
}

func (e *CompileError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s",
			e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(),
			e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// formatCUEError extracts position info from CUE errors.
func formatCUEError(err error) error {
	if err == nil {
		return nil
	}
	errs := cueerrors.Errors(err)
	if len(errs) == 0 {
		return err
	}
	firstErr := errs[0]
	positions := cueerrors.Positions(firstErr)
	if len(positions) > 0 {
		return &CompileError{
			Field:   "cue",
			Message: firstErr.Error(),
			Pos:     positions[0],
		}
	}
	return err
}
