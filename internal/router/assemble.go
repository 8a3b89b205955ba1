package router

import (
	"fmt"
	"log/slog"
	"net/http"
	"sort"

	"github.com/waypost/waypost/pkg/endpoint"
	"github.com/waypost/waypost/pkg/handlers"
	"github.com/waypost/waypost/pkg/routes"
)

// Config carries everything table assembly needs.
type Config struct {
	// Registry holds the route modules to compile into the table.
	Registry *routes.Registry

	// Fixed maps patterns to single handlers invoked for every method,
	// e.g. health checks and the metrics endpoint. Installed before route
	// modules, so a module deriving the same pattern fails assembly.
	Fixed map[string]http.Handler

	Logger *slog.Logger
}

// Assemble builds the compiled route table: fixed endpoints first, then
// every registered route module in sorted source order. A module whose
// factory fails is logged and skipped so one broken definition cannot keep
// the rest of the service from starting; a pattern collision aborts
// assembly. The returned table is frozen.
func Assemble(cfg Config) (*Table, error) {
	t := newTable()

	fixed := make([]string, 0, len(cfg.Fixed))
	for pattern := range cfg.Fixed {
		fixed = append(fixed, pattern)
	}
	sort.Strings(fixed)
	for _, pattern := range fixed {
		if err := t.install(&entry{pattern: pattern, single: cfg.Fixed[pattern]}); err != nil {
			return nil, fmt.Errorf("fixed endpoint: %w", err)
		}
	}

	for _, module := range cfg.Registry.Modules() {
		builder, err := module.Factory()
		if err != nil {
			cfg.Logger.Error(
				"route module failed to build, skipping",
				"source", module.Source,
				"error", err,
			)
			continue
		}

		methods := builder.Compile()
		if len(methods) == 0 {
			cfg.Logger.Warn("route module defines no handlers, skipping", "source", module.Source)
			continue
		}

		pattern := endpoint.Derive(module.Source)
		e := &entry{pattern: pattern, source: module.Source, methods: methods}
		if err := t.install(e); err != nil {
			return nil, err
		}

		cfg.Logger.Debug("route installed", "pattern", pattern, "source", module.Source)
	}

	t.catchAll = http.HandlerFunc(notFound)
	t.freeze()
	return t, nil
}

// notFound is the catch-all entry: any pathname absent from the table gets
// a 404 regardless of method.
func notFound(w http.ResponseWriter, r *http.Request) {
	handlers.RespondJSON(w, http.StatusNotFound, map[string]string{
		"error": "Not found",
	})
}
