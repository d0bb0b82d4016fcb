// Copyright 2026 The Athena Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package route

import (
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strings"
)

var (
	// ErrDuplicateName is returned when registering a route whose name is
	// already taken in the table.
	ErrDuplicateName = errors.New("duplicate route name")

	// ErrDuplicateRoute is returned when registering a route whose pattern
	// shape and method set collide with an existing route. Such pairs are
	// ambiguous: one of them could never match.
	ErrDuplicateRoute = errors.New("duplicate route pattern")

	// ErrTableCompiled is returned when registering into a compiled table.
	ErrTableCompiled = errors.New("route table is compiled and immutable")

	// ErrTableNotCompiled is returned by lookups that require compilation.
	ErrTableNotCompiled = errors.New("route table is not compiled")

	// ErrRouteNotFound is returned by name lookups for unknown routes.
	ErrRouteNotFound = errors.New("route not found")

	// ErrMissingParameter is returned by URL generation when a placeholder
	// has neither a supplied value nor a default.
	ErrMissingParameter = errors.New("missing route parameter")

	// ErrNilAction is returned when registering a route without an action.
	ErrNilAction = errors.New("route has no action")
)

// Table holds registered routes and, once compiled, the ordered candidate
// list consumed by the matcher.
//
// A Table has two phases. During registration it is mutable and must only
// be used from a single goroutine. Compile freezes it: further Register
// calls fail with ErrTableCompiled and all read methods become safe for
// unsynchronized concurrent use.
type Table struct {
	routes   []*Route
	byName   map[string]*Route
	bySig    map[string]*Route // signature+method ambiguity detection
	ordered  []*Route          // priority desc, declaration order asc
	compiled bool
}

// NewTable creates an empty route table.
func NewTable() *Table {
	return &Table{
		byName: make(map[string]*Route),
		bySig:  make(map[string]*Route),
	}
}

// Register adds a route to the table.
//
// Registration fails when the table is compiled, the route name is taken,
// the route has no action, or another route with the same pattern shape
// shares a method. Two routes whose patterns differ only in placeholder
// names ("/users/:id" vs "/users/:uid") count as the same shape: with an
// overlapping method set one of them could never match, so the conflict is
// rejected at startup rather than discovered in production.
func (t *Table) Register(r *Route) error {
	if t.compiled {
		return ErrTableCompiled
	}
	if r.action == nil {
		return fmt.Errorf("%w: %s", ErrNilAction, r.name)
	}
	if _, exists := t.byName[r.name]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateName, r.name)
	}

	for _, method := range r.methods {
		key := method + " " + r.signature()
		if prev, exists := t.bySig[key]; exists {
			return fmt.Errorf("%w: %s %s conflicts with route %q",
				ErrDuplicateRoute, method, r.pattern, prev.name)
		}
	}

	r.order = len(t.routes)
	t.routes = append(t.routes, r)
	t.byName[r.name] = r
	for _, method := range r.methods {
		t.bySig[method+" "+r.signature()] = r
	}

	return nil
}

// MustRegister is like Register but panics on error. Intended for static
// route tables built during startup.
func (t *Table) MustRegister(r *Route) {
	if err := t.Register(r); err != nil {
		panic(err)
	}
}

// RegisterPrefixed registers routes with a shared path prefix applied at
// registration time. The prefix may itself contain placeholders:
//
//	table.RegisterPrefixed("/api/:version",
//	    route.New("user.show", []string{"GET"}, "/users/:id", show),
//	)
//	// matches /api/v1/users/42
func (t *Table) RegisterPrefixed(prefix string, routes ...*Route) error {
	prefix = "/" + strings.Trim(prefix, "/")

	for _, r := range routes {
		if prefix != "/" {
			r.pattern = prefix + "/" + strings.TrimLeft(r.pattern, "/")
		}
		if err := t.Register(r); err != nil {
			return err
		}
	}

	return nil
}

// Compile freezes the table: it compiles every route's segments and
// constraints and builds the ordered candidate list. Compile is idempotent;
// calling it on an already compiled table is a no-op.
func (t *Table) Compile() error {
	if t.compiled {
		return nil
	}

	for _, r := range t.routes {
		if err := r.compile(); err != nil {
			return err
		}
	}

	t.ordered = make([]*Route, len(t.routes))
	copy(t.ordered, t.routes)
	sort.SliceStable(t.ordered, func(i, j int) bool {
		if t.ordered[i].priority != t.ordered[j].priority {
			return t.ordered[i].priority > t.ordered[j].priority
		}

		return t.ordered[i].order < t.ordered[j].order
	})

	t.compiled = true

	return nil
}

// MustCompile is like Compile but panics on error.
func (t *Table) MustCompile() {
	if err := t.Compile(); err != nil {
		panic(err)
	}
}

// Compiled reports whether the table has been compiled.
func (t *Table) Compiled() bool {
	return t.compiled
}

// Len returns the number of registered routes.
func (t *Table) Len() int {
	return len(t.routes)
}

// ByName returns the route registered under the given name.
func (t *Table) ByName(name string) (*Route, error) {
	r, ok := t.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrRouteNotFound, name)
	}

	return r, nil
}

// Ordered returns the compiled candidate list: priority descending, then
// declaration order ascending. The matcher walks this slice in order.
func (t *Table) Ordered() ([]*Route, error) {
	if !t.compiled {
		return nil, ErrTableNotCompiled
	}

	return t.ordered, nil
}

// URL builds a path for a named route from the given parameter values.
// Parameters not consumed by a placeholder are appended as query string
// entries. Placeholder values are path-escaped.
//
// Example:
//
//	u, err := table.URL("user.show", map[string]string{"id": "42", "tab": "posts"})
//	// "/users/42?tab=posts"
func (t *Table) URL(name string, params map[string]string) (string, error) {
	if !t.compiled {
		return "", ErrTableNotCompiled
	}

	r, err := t.ByName(name)
	if err != nil {
		return "", err
	}

	used := make(map[string]bool, len(r.segments))
	for _, seg := range r.segments {
		if seg.IsParam() {
			used[seg.Param] = true
		}
	}

	var query url.Values
	for k, v := range params {
		if !used[k] {
			if query == nil {
				query = make(url.Values)
			}
			query.Set(k, v)
		}
	}

	path, err := r.reverse.BuildURL(params, r.defaults, query)
	if err != nil {
		return "", fmt.Errorf("route %q: %w", name, err)
	}

	return path, nil
}

// Routes returns introspection records for every registered route, in
// declaration order. Safe to call before Compile; constraint and static
// information is only populated afterwards.
func (t *Table) Routes() []Info {
	infos := make([]Info, 0, len(t.routes))
	for _, r := range t.routes {
		info := Info{
			Name:     r.name,
			Methods:  append([]string(nil), r.methods...),
			Path:     r.pattern,
			Priority: r.priority,
			IsStatic: r.static,
		}
		if r.action != nil {
			info.Action = r.action.Name
		}
		if len(r.typed) > 0 {
			info.Constraints = make(map[string]string, len(r.typed))
			for param, pc := range r.typed {
				if c := pc.ToRegexConstraint(param); c != nil {
					info.Constraints[param] = c.Pattern.String()
				}
			}
		}
		for _, seg := range r.segments {
			if seg.IsParam() {
				info.ParamCount++
			}
		}
		infos = append(infos, info)
	}

	return infos
}
