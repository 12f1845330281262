package ir

// Op is a sealed interface over the two circuit operation kinds.
// Only Instruction and Measurement implement it.
type Op interface {
	op()
}

// Instruction is a single gate application.
//
// Gate names the canonical base gate; any controls ride in Controls rather
// than being folded into a composite gate name. Targets and Params are
// ordered and must match the catalog's declared arity and parameter count.
type Instruction struct {
	Gate      string     `json:"gate"`
	Params    []Param    `json:"params,omitempty"`
	Targets   []int      `json:"targets"`
	Controls  []int      `json:"controls,omitempty"`
	Condition *Condition `json:"condition,omitempty"`
}

func (Instruction) op() {}

// Qubits returns every qubit the instruction touches, controls first.
func (inst Instruction) Qubits() []int {
	qubits := make([]int, 0, len(inst.Controls)+len(inst.Targets))
	qubits = append(qubits, inst.Controls...)
	qubits = append(qubits, inst.Targets...)
	return qubits
}

// Condition gates an instruction on a classical bit holding a value.
type Condition struct {
	Bit   int `json:"bit"`
	Value int `json:"value"`
}

// Measurement records a qubit into a classical bit.
// Measurement order within a circuit is significant and preserved.
type Measurement struct {
	Qubit int `json:"qubit"`
	Clbit int `json:"clbit"`
}

func (Measurement) op() {}

// GateSpec describes a canonical gate's shape: how many target qubits it
// acts on and how many parameters it takes.
type GateSpec struct {
	Name       string
	Arity      int
	ParamCount int
}

// GateTable resolves canonical gate names to their specs. The catalog
// package provides the production implementation; tests may supply fakes.
// Gate returns an error (catalog's UnrecognizedGateError) for names outside
// the canonical vocabulary.
type GateTable interface {
	Gate(name string) (GateSpec, error)
}
