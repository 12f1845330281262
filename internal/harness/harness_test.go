package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantabase/qmorph/internal/frameworks"
	"github.com/quantabase/qmorph/internal/frameworks/ionq"
	"github.com/quantabase/qmorph/internal/transpile"
)

func testRegistry(t *testing.T) *transpile.Registry {
	t.Helper()
	reg := transpile.New()
	require.NoError(t, frameworks.RegisterAll(reg))
	return reg
}

func TestScenarios_Golden(t *testing.T) {
	scenarios, err := LoadDir("testdata")
	require.NoError(t, err)
	require.NotEmpty(t, scenarios)

	reg := testRegistry(t)
	for _, s := range scenarios {
		t.Run(s.Name, func(t *testing.T) {
			RunGolden(t, s, reg)
		})
	}
}

func TestLoadScenario_Valid(t *testing.T) {
	s, err := LoadScenario(filepath.Join("testdata", "bell.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "bell", s.Name)
	assert.Equal(t, "qasm", s.Source.Framework)
	assert.Equal(t, []string{"quil", "ionq", "braket"}, s.Targets)
	require.NotNil(t, s.Expect)
	assert.Equal(t, 2, s.Expect.Qubits)
}

func TestLoadScenario_MissingFile(t *testing.T) {
	_, err := LoadScenario(filepath.Join("testdata", "nope.yaml"))
	assert.Error(t, err)
}

func writeScenario(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "s.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadScenario_MissingName(t *testing.T) {
	path := writeScenario(t, `
source:
  framework: qasm
  program: "qreg q[1];"
targets: [quil]
`)
	_, err := LoadScenario(path)
	assert.ErrorContains(t, err, "name")
}

func TestLoadScenario_MissingSource(t *testing.T) {
	path := writeScenario(t, `
name: no-source
targets: [quil]
`)
	_, err := LoadScenario(path)
	assert.ErrorContains(t, err, "source")
}

func TestLoadScenario_NoTargets(t *testing.T) {
	path := writeScenario(t, `
name: no-targets
source:
  framework: qasm
  program: "qreg q[1];"
`)
	_, err := LoadScenario(path)
	assert.ErrorContains(t, err, "target")
}

func TestRun_PopulatesResult(t *testing.T) {
	s := &Scenario{
		Name:    "inline",
		Source:  Source{Framework: "qasm", Program: "qreg q[2];\nh q[0];\ncx q[0],q[1];\n"},
		Targets: []string{"quil"},
	}
	result, err := Run(s, testRegistry(t))
	require.NoError(t, err)

	assert.Equal(t, 2, result.Qubits)
	assert.Equal(t, 0, result.Clbits)
	assert.Equal(t, 2, result.Depth)
	assert.Equal(t, 2, result.Ops)
	assert.Equal(t, "H 0\nCNOT 0 1\n", result.Emitted["quil"])
}

func TestRun_BadSourceProgram(t *testing.T) {
	s := &Scenario{
		Name:    "broken",
		Source:  Source{Framework: "qasm", Program: "h q[0];\n"},
		Targets: []string{"quil"},
	}
	_, err := Run(s, testRegistry(t))
	assert.True(t, transpile.IsAdapterError(err))
}

func TestRun_UnknownTarget(t *testing.T) {
	s := &Scenario{
		Name:    "bad-target",
		Source:  Source{Framework: "qasm", Program: "qreg q[1];\nh q[0];\n"},
		Targets: []string{"qiskit"},
	}
	_, err := Run(s, testRegistry(t))
	assert.Error(t, err)
}

func TestVerify_Mismatch(t *testing.T) {
	s := &Scenario{
		Name:    "wrong-depth",
		Source:  Source{Framework: "qasm", Program: "qreg q[1];\nh q[0];\n"},
		Targets: []string{"quil"},
		Expect:  &Expect{Qubits: 1, Clbits: 0, Depth: 5, Ops: 1},
	}
	result, err := Run(s, testRegistry(t))
	require.NoError(t, err)

	err = Verify(result)
	assert.ErrorContains(t, err, "depth")
}

func TestVerify_NoExpectationsPasses(t *testing.T) {
	result := &Result{Scenario: &Scenario{Name: "bare"}}
	assert.NoError(t, Verify(result))
}

func TestRenderNative_Text(t *testing.T) {
	out, err := RenderNative("H 0\n")
	require.NoError(t, err)
	assert.Equal(t, "H 0\n", out)
}

func TestRenderNative_Structured(t *testing.T) {
	out, err := RenderNative(&ionq.Program{Qubits: 1, Circuit: []ionq.Operation{{Gate: "h", Targets: []int{0}}}})
	require.NoError(t, err)
	assert.Contains(t, out, `"qubits": 1`)
	assert.Equal(t, byte('\n'), out[len(out)-1])
}
