package harness

import (
	"fmt"
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/quantabase/qmorph/internal/transpile"
)

// RunGolden executes a scenario, verifies its expectations, and compares
// each emitted program against a golden file named <scenario>_<target>.
func RunGolden(t *testing.T, s *Scenario, reg *transpile.Registry) {
	t.Helper()

	result, err := Run(s, reg)
	if err != nil {
		t.Fatalf("run scenario %s: %v", s.Name, err)
	}
	if err := Verify(result); err != nil {
		t.Fatal(err)
	}

	g := goldie.New(t)
	for _, target := range s.Targets {
		name := fmt.Sprintf("%s_%s", s.Name, target)
		g.Assert(t, name, []byte(result.Emitted[target]))
	}
}
