// Package frameworks wires the built-in framework plugins into a registry.
//
// Registration is an explicit call list, mirroring an entry-point discovery
// mechanism without reflective scanning: adding a framework means adding
// one line to RegisterAll and a column to the gate catalog.
package frameworks

import (
	"github.com/quantabase/qmorph/internal/frameworks/braket"
	"github.com/quantabase/qmorph/internal/frameworks/ionq"
	"github.com/quantabase/qmorph/internal/frameworks/qasm"
	"github.com/quantabase/qmorph/internal/frameworks/quil"
	"github.com/quantabase/qmorph/internal/transpile"
)

// RegisterAll registers every built-in framework with reg.
// Call once at process start, before any Resolve.
func RegisterAll(reg *transpile.Registry) error {
	registrations := []struct {
		id      string
		adapter transpile.AdapterFactory
		emitter transpile.EmitterFactory
	}{
		{braket.Framework, braket.NewAdapter, braket.NewEmitter},
		{ionq.Framework, ionq.NewAdapter, ionq.NewEmitter},
		{qasm.Framework, qasm.NewAdapter, qasm.NewEmitter},
		{quil.Framework, quil.NewAdapter, quil.NewEmitter},
	}
	for _, r := range registrations {
		if err := reg.Register(r.id, r.adapter, r.emitter); err != nil {
			return err
		}
	}
	return nil
}
