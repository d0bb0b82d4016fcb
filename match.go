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

package athena

import (
	"sort"
	"strings"

	"github.com/Tubbz-alt/athena-2/route"
)

// matcher selects a route for a method + path. It walks the table's ordered
// candidate list (priority descending, declaration order ascending), so a
// candidate whose constraints reject a segment simply yields to the next
// candidate instead of failing the request.
//
// Static routes additionally populate an exact-path map consulted first. A
// static route only enters the map when the ordered scan would select it
// anyway, so the fast path never changes which route wins.
type matcher struct {
	ordered   []*route.Route
	static    map[string]*route.Route // "METHOD /exact/path"
	foldCase  bool
	trimSlash bool
}

// capture is one placeholder binding produced while testing a candidate.
type capture struct {
	key, value string
}

func newMatcher(table *route.Table, foldCase, trimSlash bool) (*matcher, error) {
	ordered, err := table.Ordered()
	if err != nil {
		return nil, err
	}

	m := &matcher{
		ordered:   ordered,
		static:    make(map[string]*route.Route),
		foldCase:  foldCase,
		trimSlash: trimSlash,
	}

	var caps []capture
	for _, r := range m.ordered {
		if !r.IsStatic() {
			continue
		}
		path := m.normalize("/" + strings.Trim(r.Pattern(), "/"))
		for _, method := range r.Methods() {
			// Insert only if the full scan agrees; a higher-priority
			// dynamic route may shadow this exact path.
			winner, _ := m.scan(method, path, &caps)
			if winner == r {
				m.static[method+" "+path] = r
			}
		}
	}

	return m, nil
}

// match resolves the request to a route, recording placeholder captures on
// the context. Failures are *NotFoundError or *MethodNotAllowedError; both
// report the path as requested, before normalization.
func (m *matcher) match(method, path string, c *Context) (*route.Route, error) {
	norm := m.normalize(path)

	if r, ok := m.static[method+" "+norm]; ok {
		return r, nil
	}

	var caps []capture
	r, allowed := m.scan(method, norm, &caps)
	if r != nil {
		for _, cp := range caps {
			c.addParam(cp.key, cp.value)
		}

		return r, nil
	}

	if len(allowed) > 0 {
		methods := make([]string, 0, len(allowed))
		for am := range allowed {
			methods = append(methods, am)
		}
		sort.Strings(methods)

		return nil, &MethodNotAllowedError{Method: method, Path: path, Allowed: methods}
	}

	return nil, &NotFoundError{Method: method, Path: path}
}

// scan walks the candidate list. It returns the first route whose pattern,
// constraints, and method all accept the request, with caps holding its
// placeholder bindings. When only the method disqualifies otherwise
// matching candidates, their methods are returned for the Allow header.
func (m *matcher) scan(method, path string, caps *[]capture) (*route.Route, map[string]bool) {
	// Compiled patterns never carry a trailing slash, so a path that kept
	// one after normalization cannot match any candidate.
	if len(path) > 1 && strings.HasSuffix(path, "/") {
		return nil, nil
	}

	var allowed map[string]bool

	for _, r := range m.ordered {
		*caps = (*caps)[:0]
		if !m.matchPattern(r, path, caps) {
			continue
		}

		if r.AllowsMethod(method) {
			return r, nil
		}

		if allowed == nil {
			allowed = make(map[string]bool)
		}
		for _, am := range r.Methods() {
			allowed[am] = true
		}
	}

	return nil, allowed
}

// matchPattern tests a path against one route's compiled segments,
// appending placeholder captures. Constraints are tested against the raw
// segment; a failing constraint rejects this candidate only.
func (m *matcher) matchPattern(r *route.Route, path string, caps *[]capture) bool {
	segments := r.Segments()
	rest := strings.TrimPrefix(path, "/")

	for _, seg := range segments {
		if rest == "" {
			return false
		}

		var part string
		if idx := strings.IndexByte(rest, '/'); idx >= 0 {
			part, rest = rest[:idx], rest[idx+1:]
		} else {
			part, rest = rest, ""
		}
		if part == "" {
			return false
		}

		if !seg.IsParam() {
			if !m.literalEqual(seg.Literal, part) {
				return false
			}

			continue
		}

		if seg.Constraint != nil && !seg.Constraint.Pattern.MatchString(part) {
			return false
		}
		*caps = append(*caps, capture{key: seg.Param, value: part})
	}

	return rest == ""
}

func (m *matcher) literalEqual(literal, part string) bool {
	if m.foldCase {
		return strings.EqualFold(literal, part)
	}

	return literal == part
}

// normalize canonicalizes a request path per the configured options.
// Errors still report the original path.
func (m *matcher) normalize(path string) string {
	if path == "" {
		path = "/"
	}
	if m.trimSlash && len(path) > 1 {
		path = strings.TrimRight(path, "/")
		if path == "" {
			path = "/"
		}
	}

	return path
}
