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
	"fmt"
	"net/url"
	"strings"
)

// Route represents a mapping from method set + path pattern to an action,
// with optional per-placeholder constraints and defaults.
//
// Routes provide a fluent interface for adding constraints and metadata:
//
//	route.New("user.show", []string{"GET"}, "/users/:id", act).
//	    WhereInt("id").
//	    SetPriority(10)
//
// A Route is mutable until its table is compiled; afterwards it is
// immutable and safe for concurrent reads.
type Route struct {
	name        string
	methods     []string
	pattern     string
	priority    int
	order       int // declaration order within the table, set by Register
	defaults    map[string]string
	constraints []Constraint
	typed       map[string]ParamConstraint
	action      *Action

	// Compiled artifacts, built by Table.Compile.
	segments []Segment
	reverse  *ReversePattern
	static   bool
}

// Segment is one compiled element of a route pattern: either a literal
// path segment or a named placeholder with an optional constraint.
type Segment struct {
	Literal    string // literal text, empty for placeholders
	Param      string // placeholder name, empty for literals
	Constraint *Constraint
}

// IsParam reports whether the segment is a placeholder.
func (s Segment) IsParam() bool {
	return s.Param != ""
}

// New creates a route. Methods are uppercased; the pattern uses :name
// placeholders:
//
//	route.New("user.show", []string{"GET"}, "/users/:id", act)
func New(name string, methods []string, pattern string, action *Action) *Route {
	normalized := make([]string, 0, len(methods))
	for _, m := range methods {
		normalized = append(normalized, strings.ToUpper(m))
	}

	return &Route{
		name:    name,
		methods: normalized,
		pattern: pattern,
		action:  action,
	}
}

// Where adds a regex constraint to a placeholder. The pattern is anchored
// and tested against the full path segment during matching.
//
// Panics on an invalid pattern: constraints are declared during startup and
// an invalid pattern should fail fast.
//
// Example:
//
//	route.New("file.get", []string{"GET"}, "/files/:name", act).
//	    Where("name", `[a-zA-Z0-9._-]+`)
func (r *Route) Where(param, pattern string) *Route {
	r.ensureTyped()
	r.typed[param] = ParamConstraint{Kind: ConstraintRegex, Pattern: pattern}
	// Compile eagerly so an invalid pattern panics at declaration site.
	ConstraintFromPattern(param, pattern)

	return r
}

// WhereInt constrains a placeholder to decimal digits.
func (r *Route) WhereInt(param string) *Route {
	r.ensureTyped()
	r.typed[param] = ParamConstraint{Kind: ConstraintInt}

	return r
}

// WhereFloat constrains a placeholder to a floating-point literal.
func (r *Route) WhereFloat(param string) *Route {
	r.ensureTyped()
	r.typed[param] = ParamConstraint{Kind: ConstraintFloat}

	return r
}

// WhereUUID constrains a placeholder to a canonical UUID.
func (r *Route) WhereUUID(param string) *Route {
	r.ensureTyped()
	r.typed[param] = ParamConstraint{Kind: ConstraintUUID}

	return r
}

// WhereEnum constrains a placeholder to one of the given values.
func (r *Route) WhereEnum(param string, values ...string) *Route {
	r.ensureTyped()
	r.typed[param] = ParamConstraint{
		Kind: ConstraintEnum,
		Enum: append([]string(nil), values...),
	}

	return r
}

// SetDefault records a default value for a placeholder, used by reverse URL
// generation when the caller supplies no value.
func (r *Route) SetDefault(param, value string) *Route {
	if r.defaults == nil {
		r.defaults = make(map[string]string)
	}
	r.defaults[param] = value

	return r
}

// SetPriority assigns an explicit matching priority. Higher priorities are
// tried first; routes with equal priority keep declaration order.
func (r *Route) SetPriority(p int) *Route {
	r.priority = p
	return r
}

func (r *Route) ensureTyped() {
	if r.typed == nil {
		r.typed = make(map[string]ParamConstraint)
	}
}

// Name returns the route name.
func (r *Route) Name() string { return r.name }

// Methods returns the HTTP method set for this route.
func (r *Route) Methods() []string { return r.methods }

// Pattern returns the route path pattern.
func (r *Route) Pattern() string { return r.pattern }

// Priority returns the explicit priority (0 unless set).
func (r *Route) Priority() int { return r.priority }

// Order returns the declaration order within the table.
func (r *Route) Order() int { return r.order }

// Action returns the bound action descriptor.
func (r *Route) Action() *Action { return r.action }

// Defaults returns the placeholder default values (nil if none).
func (r *Route) Defaults() map[string]string { return r.defaults }

// Segments returns the compiled pattern segments.
// Empty until the owning table is compiled.
func (r *Route) Segments() []Segment { return r.segments }

// IsStatic reports whether the pattern contains no placeholders.
// Meaningful only after the owning table is compiled.
func (r *Route) IsStatic() bool { return r.static }

// AllowsMethod reports whether the route accepts the given HTTP method.
func (r *Route) AllowsMethod(method string) bool {
	for _, m := range r.methods {
		if m == method {
			return true
		}
	}

	return false
}

// compile builds the segment list and reverse pattern for this route.
// Called by Table.Compile exactly once per route.
func (r *Route) compile() error {
	constraints := make(map[string]*Constraint, len(r.typed))
	for param, pc := range r.typed {
		c := pc.ToRegexConstraint(param)
		if c == nil {
			return fmt.Errorf("route %q: cannot compile constraint for parameter %q", r.name, param)
		}
		constraints[param] = c
		r.constraints = append(r.constraints, *c)
	}

	trimmed := strings.Trim(r.pattern, "/")
	r.static = true

	if trimmed != "" {
		for _, part := range strings.Split(trimmed, "/") {
			if part == "" {
				continue
			}
			if name, ok := strings.CutPrefix(part, ":"); ok {
				r.segments = append(r.segments, Segment{
					Param:      name,
					Constraint: constraints[name],
				})
				r.static = false
				delete(constraints, name)
			} else {
				r.segments = append(r.segments, Segment{Literal: part})
			}
		}
	}

	for param := range constraints {
		return fmt.Errorf("route %q: constraint on unknown parameter %q", r.name, param)
	}

	r.reverse = parseReversePattern(r.segments)

	return nil
}

// signature identifies structurally identical routes: two routes with the
// same signature and an overlapping method set are ambiguous under the
// matching algorithm and rejected at registration time.
func (r *Route) signature() string {
	trimmed := strings.Trim(r.pattern, "/")
	if trimmed == "" {
		return "/"
	}

	var b strings.Builder
	for _, part := range strings.Split(trimmed, "/") {
		b.WriteByte('/')
		if strings.HasPrefix(part, ":") {
			b.WriteByte(':')
		} else {
			b.WriteString(part)
		}
	}

	return b.String()
}

// ReversePattern represents a compiled route pattern for URL building.
// It stores segment positions to avoid string replacement at build time.
type ReversePattern struct {
	Segments []Segment
}

func parseReversePattern(segments []Segment) *ReversePattern {
	return &ReversePattern{Segments: segments}
}

// BuildURL builds a path from the pattern, the supplied parameter values,
// defaults for placeholders without a supplied value, and an optional query
// string. A placeholder with neither a value nor a default fails with an
// error wrapping ErrMissingParameter.
func (p *ReversePattern) BuildURL(params, defaults map[string]string, query url.Values) (string, error) {
	var buf strings.Builder

	if len(p.Segments) == 0 {
		buf.WriteByte('/')
	}

	for _, seg := range p.Segments {
		buf.WriteByte('/')

		if !seg.IsParam() {
			buf.WriteString(seg.Literal)
			continue
		}

		val, ok := params[seg.Param]
		if !ok {
			val, ok = defaults[seg.Param]
		}
		if !ok {
			return "", fmt.Errorf("%w: %s", ErrMissingParameter, seg.Param)
		}
		buf.WriteString(url.PathEscape(val))
	}

	if len(query) > 0 {
		buf.WriteByte('?')
		buf.WriteString(query.Encode())
	}

	return buf.String(), nil
}
