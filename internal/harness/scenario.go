// Package harness runs conversion conformance scenarios: YAML-described
// source programs converted through the registry to one or more target
// frameworks, with introspection expectations and golden-file comparison of
// the emitted programs.
package harness

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/quantabase/qmorph/internal/transpile"
)

// Scenario defines one conversion conformance scenario.
type Scenario struct {
	// Name uniquely identifies this scenario; golden files derive from it.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description,omitempty"`

	// Source holds the input program and its framework.
	Source Source `yaml:"source"`

	// Targets lists the frameworks to convert to.
	Targets []string `yaml:"targets"`

	// Expect holds introspection expectations checked after wrapping.
	Expect *Expect `yaml:"expect,omitempty"`
}

// Source is a scenario's input program.
type Source struct {
	Framework string `yaml:"framework"`
	Program   string `yaml:"program"`
}

// Expect holds framework-agnostic introspection expectations.
type Expect struct {
	Qubits     int      `yaml:"qubits"`
	Clbits     int      `yaml:"clbits"`
	Depth      int      `yaml:"depth"`
	Ops        int      `yaml:"ops"`
	FreeParams []string `yaml:"free_params,omitempty"`
}

// Result captures one scenario execution.
type Result struct {
	Scenario *Scenario

	Qubits     int
	Clbits     int
	Depth      int
	Ops        int
	FreeParams []string

	// Emitted maps each target framework to the rendered native program.
	Emitted map[string]string
}

// LoadScenario reads a scenario from a YAML file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}
	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse scenario %s: %w", path, err)
	}
	if s.Name == "" {
		return nil, fmt.Errorf("scenario %s: name is required", path)
	}
	if s.Source.Framework == "" || s.Source.Program == "" {
		return nil, fmt.Errorf("scenario %s: source framework and program are required", path)
	}
	if len(s.Targets) == 0 {
		return nil, fmt.Errorf("scenario %s: at least one target is required", path)
	}
	return &s, nil
}

// LoadDir reads every *.yaml scenario in a directory, name-sorted.
func LoadDir(dir string) ([]*Scenario, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read scenario dir: %w", err)
	}
	var scenarios []*Scenario
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}
		s, err := LoadScenario(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, err
		}
		scenarios = append(scenarios, s)
	}
	sort.Slice(scenarios, func(i, j int) bool { return scenarios[i].Name < scenarios[j].Name })
	return scenarios, nil
}

// Run executes a scenario against the given registry: wraps the source,
// gathers introspection, and converts to every target.
func Run(s *Scenario, reg *transpile.Registry) (*Result, error) {
	w, err := transpile.Wrap(s.Source.Program, s.Source.Framework, reg)
	if err != nil {
		return nil, err
	}
	c, err := w.IR()
	if err != nil {
		return nil, err
	}

	result := &Result{
		Scenario:   s,
		Qubits:     c.NumQubits(),
		Clbits:     c.NumClbits(),
		Depth:      c.Depth(),
		Ops:        c.Len(),
		FreeParams: c.FreeParams(),
		Emitted:    make(map[string]string, len(s.Targets)),
	}

	for _, target := range s.Targets {
		native, err := w.Transpile(target)
		if err != nil {
			return nil, fmt.Errorf("scenario %s: convert to %s: %w", s.Name, target, err)
		}
		rendered, err := RenderNative(native)
		if err != nil {
			return nil, fmt.Errorf("scenario %s: render %s output: %w", s.Name, target, err)
		}
		result.Emitted[target] = rendered
	}

	return result, nil
}

// Verify checks a result against the scenario's expectations.
func Verify(result *Result) error {
	expect := result.Scenario.Expect
	if expect == nil {
		return nil
	}
	if result.Qubits != expect.Qubits {
		return fmt.Errorf("scenario %s: qubits = %d, want %d", result.Scenario.Name, result.Qubits, expect.Qubits)
	}
	if result.Clbits != expect.Clbits {
		return fmt.Errorf("scenario %s: clbits = %d, want %d", result.Scenario.Name, result.Clbits, expect.Clbits)
	}
	if result.Depth != expect.Depth {
		return fmt.Errorf("scenario %s: depth = %d, want %d", result.Scenario.Name, result.Depth, expect.Depth)
	}
	if result.Ops != expect.Ops {
		return fmt.Errorf("scenario %s: ops = %d, want %d", result.Scenario.Name, result.Ops, expect.Ops)
	}
	if len(expect.FreeParams) > 0 {
		got := strings.Join(result.FreeParams, ",")
		want := strings.Join(expect.FreeParams, ",")
		if got != want {
			return fmt.Errorf("scenario %s: free params = [%s], want [%s]", result.Scenario.Name, got, want)
		}
	}
	return nil
}

// RenderNative renders a native circuit as comparable text: text-format
// programs as-is, structured programs as indented JSON.
func RenderNative(native any) (string, error) {
	if text, ok := native.(string); ok {
		return text, nil
	}
	data, err := json.MarshalIndent(native, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data) + "\n", nil
}
