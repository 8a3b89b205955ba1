// Package router assembles the compiled route table at startup and
// dispatches requests against it. The table is written exactly once during
// assembly and is read-only afterward, so the dispatch path takes no locks.
package router

import (
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/waypost/waypost/pkg/routes"
)

// entry is one resolved table slot: either a single handler invoked for
// every method (fixed endpoints, catch-all) or a method→handler table.
type entry struct {
	pattern  string
	source   string
	segments []segment
	methods  map[string]routes.Compiled
	single   http.Handler
}

type segment struct {
	value   string
	isParam bool
}

// Table is the compiled route table. Static patterns resolve by exact
// pathname match; parameterized patterns are matched segment by segment in
// specificity order.
type Table struct {
	static   map[string]*entry
	dynamic  []*entry
	catchAll http.Handler
	frozen   bool
}

func newTable() *Table {
	return &Table{static: make(map[string]*entry)}
}

func (t *Table) install(e *entry) error {
	if t.frozen {
		return fmt.Errorf("pattern %q: %w", e.pattern, ErrTableFrozen)
	}

	segments, dynamic := parsePattern(e.pattern)
	e.segments = segments

	if !dynamic {
		if prior, exists := t.static[e.pattern]; exists {
			return collisionError(e, prior)
		}
		t.static[e.pattern] = e
		return nil
	}

	for _, prior := range t.dynamic {
		if prior.pattern == e.pattern {
			return collisionError(e, prior)
		}
	}
	t.dynamic = append(t.dynamic, e)
	return nil
}

func collisionError(e, prior *entry) error {
	return fmt.Errorf("pattern %q from %q and %q: %w",
		e.pattern, prior.source, e.source, ErrPatternCollision)
}

// freeze orders parameterized entries by specificity and closes the table
// to further writes.
func (t *Table) freeze() {
	sort.SliceStable(t.dynamic, func(i, j int) bool {
		return priority(t.dynamic[i].segments) > priority(t.dynamic[j].segments)
	})
	t.frozen = true
}

// resolve finds the entry for a pathname: exact match first, then ordered
// parameterized matching. Trailing slashes are ignored, matching how
// matchPath trims before splitting. A nil entry means the catch-all applies.
func (t *Table) resolve(path string) (*entry, map[string]string) {
	if path != "/" {
		path = strings.TrimRight(path, "/")
	}
	if path == "" {
		path = "/"
	}
	if e, ok := t.static[path]; ok {
		return e, nil
	}
	for _, e := range t.dynamic {
		if params, ok := matchPath(e.segments, path); ok {
			return e, params
		}
	}
	return nil, nil
}

// Patterns returns every installed pattern, sorted. Intended for startup
// logging and tests.
func (t *Table) Patterns() []string {
	patterns := make([]string, 0, len(t.static)+len(t.dynamic))
	for p := range t.static {
		patterns = append(patterns, p)
	}
	for _, e := range t.dynamic {
		patterns = append(patterns, e.pattern)
	}
	sort.Strings(patterns)
	return patterns
}

func parsePattern(pattern string) ([]segment, bool) {
	trimmed := strings.Trim(pattern, "/")
	if trimmed == "" {
		return nil, false
	}

	parts := strings.Split(trimmed, "/")
	segments := make([]segment, len(parts))
	dynamic := false

	for i, part := range parts {
		if strings.HasPrefix(part, ":") {
			segments[i] = segment{value: part[1:], isParam: true}
			dynamic = true
			continue
		}
		segments[i] = segment{value: part}
	}

	return segments, dynamic
}

// priority ranks patterns so literal segments beat parameters at the same
// depth and longer patterns beat shorter ones.
func priority(segments []segment) int {
	p := len(segments) * 10
	for _, seg := range segments {
		if seg.isParam {
			p -= 2
		} else {
			p += 3
		}
	}
	return p
}

func matchPath(segments []segment, path string) (map[string]string, bool) {
	trimmed := strings.Trim(path, "/")
	if trimmed == "" {
		return nil, len(segments) == 0
	}

	parts := strings.Split(trimmed, "/")
	if len(parts) != len(segments) {
		return nil, false
	}

	var params map[string]string
	for i, seg := range segments {
		if seg.isParam {
			if params == nil {
				params = make(map[string]string)
			}
			params[seg.value] = parts[i]
			continue
		}
		if seg.value != parts[i] {
			return nil, false
		}
	}
	return params, true
}
