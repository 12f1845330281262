package transpile

import (
	"fmt"
	"sort"
	"sync"

	"github.com/quantabase/qmorph/internal/ir"
)

// Adapter converts a native circuit object into canonical IR.
type Adapter interface {
	ToIR(native any) (*ir.Circuit, error)
}

// Emitter converts canonical IR into a native circuit object.
type Emitter interface {
	FromIR(c *ir.Circuit) (any, error)
}

// AdapterFactory creates an Adapter for one framework.
type AdapterFactory func() Adapter

// EmitterFactory creates an Emitter for one framework.
type EmitterFactory func() Emitter

type entry struct {
	adapter AdapterFactory
	emitter EmitterFactory
}

// Registry maps framework identifiers to adapter/emitter factories.
//
// Registration happens once at process start; after that the registry is
// read-only and Resolve needs no coordination beyond the RWMutex, which
// exists so fresh registries built inside tests stay race-free too.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]entry
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{entries: make(map[string]entry)}
}

// Register adds a framework's adapter/emitter pair under its identifier.
// Registering the same identifier twice is an error: the registry is an
// append-once structure, never a mutable dispatch table.
func (r *Registry) Register(framework string, adapter AdapterFactory, emitter EmitterFactory) error {
	if framework == "" {
		return fmt.Errorf("register: empty framework identifier")
	}
	if adapter == nil || emitter == nil {
		return fmt.Errorf("register %q: nil adapter or emitter factory", framework)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, dup := r.entries[framework]; dup {
		return fmt.Errorf("register %q: framework already registered", framework)
	}
	r.entries[framework] = entry{adapter: adapter, emitter: emitter}
	return nil
}

// Resolve returns the adapter/emitter factories registered for framework.
// Fails with UnknownFrameworkError for unregistered identifiers.
func (r *Registry) Resolve(framework string) (AdapterFactory, EmitterFactory, error) {
	r.mu.RLock()
	e, ok := r.entries[framework]
	r.mu.RUnlock()
	if !ok {
		return nil, nil, &UnknownFrameworkError{Framework: framework, Known: r.Frameworks()}
	}
	return e.adapter, e.emitter, nil
}

// Frameworks returns the registered identifiers, sorted.
func (r *Registry) Frameworks() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
)

// Default returns the process-wide registry. It starts empty; startup code
// populates it through an explicit registration list (internal/frameworks
// RegisterAll) before any Resolve call.
func Default() *Registry {
	defaultOnce.Do(func() {
		defaultRegistry = New()
	})
	return defaultRegistry
}
