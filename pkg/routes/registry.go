package routes

import (
	"fmt"
	"sort"
	"sync"
)

// Factory builds a route definition. It runs once during table assembly;
// a returned error marks the module broken without affecting others.
type Factory func() (*Builder, error)

// Module pairs a routes-root-relative source path with the factory for its
// definition. The source path determines the module's URL pattern.
type Module struct {
	Source  string
	Factory Factory
}

// Registry collects route modules ahead of table assembly. Modules add
// themselves from init functions; the assembler drains the registry once,
// in sorted source order, before the server starts.
type Registry struct {
	mu      sync.RWMutex
	modules map[string]Module
}

// NewRegistry creates an empty route module registry.
func NewRegistry() *Registry {
	return &Registry{modules: make(map[string]Module)}
}

// Add registers a module under its source path. Two registrations for the
// same source path indicate conflicting route modules; like duplicate
// database/sql drivers, that is a programming error and panics.
func (r *Registry) Add(source string, factory Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.modules[source]; exists {
		panic(fmt.Sprintf("routes: module %q registered twice", source))
	}
	r.modules[source] = Module{Source: source, Factory: factory}
}

// Modules returns all registered modules sorted by source path, so table
// assembly is deterministic regardless of package init order.
func (r *Registry) Modules() []Module {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Module, 0, len(r.modules))
	for _, m := range r.modules {
		result = append(result, m)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Source < result[j].Source
	})
	return result
}

// Default is the registry route modules register with at init time.
var Default = NewRegistry()

// Register adds a module to the default registry.
func Register(source string, factory Factory) {
	Default.Add(source, factory)
}
