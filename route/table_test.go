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
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testAction(name string) *Action {
	return NewAction(name, func(ctx context.Context, args []any) (any, error) {
		return nil, nil
	})
}

func TestTableRejectsDuplicateName(t *testing.T) {
	t.Parallel()

	table := NewTable()
	require.NoError(t, table.Register(New("a", []string{"GET"}, "/a", testAction("a"))))

	err := table.Register(New("a", []string{"POST"}, "/b", testAction("a")))
	require.ErrorIs(t, err, ErrDuplicateName)
}

func TestTableRejectsAmbiguousPattern(t *testing.T) {
	t.Parallel()

	table := NewTable()
	require.NoError(t, table.Register(New("first", []string{"GET"}, "/users/:id", testAction("first"))))

	// Same shape, overlapping method: one of the two could never match.
	err := table.Register(New("second", []string{"GET", "POST"}, "/users/:uid", testAction("second")))
	require.ErrorIs(t, err, ErrDuplicateRoute)

	// Same shape on a disjoint method set is fine.
	require.NoError(t, table.Register(New("third", []string{"PUT"}, "/users/:uid", testAction("third"))))
}

func TestTableRejectsNilAction(t *testing.T) {
	t.Parallel()

	table := NewTable()
	err := table.Register(New("naked", []string{"GET"}, "/naked", nil))
	require.ErrorIs(t, err, ErrNilAction)
}

func TestTableImmutableAfterCompile(t *testing.T) {
	t.Parallel()

	table := NewTable()
	require.NoError(t, table.Register(New("a", []string{"GET"}, "/a", testAction("a"))))
	require.NoError(t, table.Compile())

	err := table.Register(New("b", []string{"GET"}, "/b", testAction("b")))
	require.ErrorIs(t, err, ErrTableCompiled)

	// Compile is idempotent.
	require.NoError(t, table.Compile())
	assert.True(t, table.Compiled())
}

func TestTableOrderedByPriorityThenDeclaration(t *testing.T) {
	t.Parallel()

	table := NewTable()
	table.MustRegister(New("low", []string{"GET"}, "/l", testAction("low")))
	table.MustRegister(New("high", []string{"GET"}, "/h", testAction("high")).SetPriority(5))
	table.MustRegister(New("mid-a", []string{"GET"}, "/ma", testAction("mid-a")).SetPriority(1))
	table.MustRegister(New("mid-b", []string{"GET"}, "/mb", testAction("mid-b")).SetPriority(1))
	table.MustCompile()

	ordered, err := table.Ordered()
	require.NoError(t, err)

	names := make([]string, 0, len(ordered))
	for _, r := range ordered {
		names = append(names, r.Name())
	}
	assert.Equal(t, []string{"high", "mid-a", "mid-b", "low"}, names)
}

func TestTableOrderedRequiresCompile(t *testing.T) {
	t.Parallel()

	table := NewTable()
	_, err := table.Ordered()
	require.ErrorIs(t, err, ErrTableNotCompiled)
}

func TestTableURL(t *testing.T) {
	t.Parallel()

	table := NewTable()
	table.MustRegister(New("user.show", []string{"GET"}, "/users/:id", testAction("user.show")))
	table.MustRegister(New("search", []string{"GET"}, "/search/:scope", testAction("search")).
		SetDefault("scope", "all"))
	table.MustCompile()

	u, err := table.URL("user.show", map[string]string{"id": "42"})
	require.NoError(t, err)
	assert.Equal(t, "/users/42", u)

	// Extra parameters become the query string.
	u, err = table.URL("user.show", map[string]string{"id": "42", "tab": "posts"})
	require.NoError(t, err)
	assert.Equal(t, "/users/42?tab=posts", u)

	// Placeholder values are path-escaped.
	u, err = table.URL("user.show", map[string]string{"id": "a/b"})
	require.NoError(t, err)
	assert.Equal(t, "/users/a%2Fb", u)

	// Defaults fill missing placeholders.
	u, err = table.URL("search", nil)
	require.NoError(t, err)
	assert.Equal(t, "/search/all", u)

	// No value and no default fails.
	_, err = table.URL("user.show", nil)
	require.ErrorIs(t, err, ErrMissingParameter)

	_, err = table.URL("nope", nil)
	require.ErrorIs(t, err, ErrRouteNotFound)
}

func TestTableRoutesIntrospection(t *testing.T) {
	t.Parallel()

	table := NewTable()
	table.MustRegister(New("user.show", []string{"GET", "HEAD"}, "/users/:id", testAction("show")).
		WhereInt("id").
		SetPriority(3))
	table.MustRegister(New("health", []string{"GET"}, "/healthz", testAction("health")))
	table.MustCompile()

	infos := table.Routes()
	require.Len(t, infos, 2)

	show := infos[0]
	assert.Equal(t, "user.show", show.Name)
	assert.Equal(t, []string{"GET", "HEAD"}, show.Methods)
	assert.Equal(t, 3, show.Priority)
	assert.Equal(t, 1, show.ParamCount)
	assert.False(t, show.IsStatic)
	assert.Contains(t, show.Constraints["id"], `\d+`)

	assert.True(t, infos[1].IsStatic)
	assert.Zero(t, infos[1].ParamCount)
}

func TestRouteCompileRejectsConstraintOnUnknownParam(t *testing.T) {
	t.Parallel()

	table := NewTable()
	table.MustRegister(New("bad", []string{"GET"}, "/static/path", testAction("bad")).WhereInt("id"))

	require.Error(t, table.Compile())
}

func TestRegisterPrefixed(t *testing.T) {
	t.Parallel()

	table := NewTable()
	require.NoError(t, table.RegisterPrefixed("/api/:version",
		New("user.show", []string{"GET"}, "/users/:id", testAction("show")),
		New("user.list", []string{"GET"}, "/users", testAction("list")),
	))
	require.NoError(t, table.Compile())

	r, err := table.ByName("user.show")
	require.NoError(t, err)
	assert.Equal(t, "/api/:version/users/:id", r.Pattern())

	u, err := table.URL("user.list", map[string]string{"version": "v2"})
	require.NoError(t, err)
	assert.Equal(t, "/api/v2/users", u)
}

func TestRouteMethodsNormalized(t *testing.T) {
	t.Parallel()

	r := New("m", []string{"get", "Post"}, "/m", testAction("m"))
	assert.Equal(t, []string{"GET", "POST"}, r.Methods())
	assert.True(t, r.AllowsMethod("GET"))
	assert.False(t, r.AllowsMethod("DELETE"))
}
