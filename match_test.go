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
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tubbz-alt/athena-2/route"
)

func nopAction(name string) *route.Action {
	return route.NewAction(name, func(ctx context.Context, args []any) (any, error) {
		return nil, nil
	})
}

func compiledMatcher(t *testing.T, routes ...*route.Route) *matcher {
	t.Helper()

	table := route.NewTable()
	for _, r := range routes {
		table.MustRegister(r)
	}
	table.MustCompile()

	m, err := newMatcher(table, false, false)
	require.NoError(t, err)

	return m
}

func TestMatcherCapturesPlaceholders(t *testing.T) {
	t.Parallel()

	m := compiledMatcher(t,
		route.New("show", []string{"GET"}, "/users/:id/posts/:post", nopAction("show")),
	)

	c := testContext(t)
	r, err := m.match(http.MethodGet, "/users/7/posts/99", c)
	require.NoError(t, err)

	assert.Equal(t, "show", r.Name())
	assert.Equal(t, "7", c.Param("id"))
	assert.Equal(t, "99", c.Param("post"))
}

func TestMatcherStaticFastPathRespectsPriority(t *testing.T) {
	t.Parallel()

	// The dynamic route outranks the static one for the same path, so the
	// static fast path must not shortcut around it.
	m := compiledMatcher(t,
		route.New("static", []string{"GET"}, "/users/list", nopAction("static")),
		route.New("dynamic", []string{"GET"}, "/users/:id", nopAction("dynamic")).SetPriority(10),
	)

	c := testContext(t)
	r, err := m.match(http.MethodGet, "/users/list", c)
	require.NoError(t, err)
	assert.Equal(t, "dynamic", r.Name())
	assert.Equal(t, "list", c.Param("id"))
}

func TestMatcherRootPath(t *testing.T) {
	t.Parallel()

	m := compiledMatcher(t,
		route.New("root", []string{"GET"}, "/", nopAction("root")),
	)

	r, err := m.match(http.MethodGet, "/", testContext(t))
	require.NoError(t, err)
	assert.Equal(t, "root", r.Name())
}

func TestMatcherSegmentCountMustAgree(t *testing.T) {
	t.Parallel()

	m := compiledMatcher(t,
		route.New("pair", []string{"GET"}, "/a/:x/:y", nopAction("pair")),
	)

	_, err := m.match(http.MethodGet, "/a/1", testContext(t))
	require.Error(t, err)

	_, err = m.match(http.MethodGet, "/a/1/2/3", testContext(t))
	require.Error(t, err)

	_, err = m.match(http.MethodGet, "/a/1/2", testContext(t))
	require.NoError(t, err)
}

func TestMatcherNotFoundReportsRequestedPath(t *testing.T) {
	t.Parallel()

	m := compiledMatcher(t,
		route.New("only", []string{"GET"}, "/present", nopAction("only")),
	)

	_, err := m.match(http.MethodGet, "/absent", testContext(t))

	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "No route found for 'GET /absent'", notFound.Error())
}

func TestMatcherAllowedMethodsRequireConstraintPass(t *testing.T) {
	t.Parallel()

	// The POST route's constraint rejects the segment, so it must not
	// contribute to the Allow set; the result is 404, not 405.
	m := compiledMatcher(t,
		route.New("create", []string{"POST"}, "/items/:id", nopAction("create")).WhereInt("id"),
	)

	_, err := m.match(http.MethodGet, "/items/abc", testContext(t))

	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)

	// With a passing constraint the same request is a proper 405.
	_, err = m.match(http.MethodGet, "/items/42", testContext(t))

	var notAllowed *MethodNotAllowedError
	require.ErrorAs(t, err, &notAllowed)
	assert.Equal(t, []string{"POST"}, notAllowed.Allowed)
}

func TestMatcherUUIDAndEnumConstraints(t *testing.T) {
	t.Parallel()

	m := compiledMatcher(t,
		route.New("doc", []string{"GET"}, "/docs/:id", nopAction("doc")).WhereUUID("id"),
		route.New("feed", []string{"GET"}, "/feed/:format", nopAction("feed")).
			WhereEnum("format", "rss", "atom"),
	)

	_, err := m.match(http.MethodGet, "/docs/550e8400-e29b-41d4-a716-446655440000", testContext(t))
	require.NoError(t, err)

	_, err = m.match(http.MethodGet, "/docs/not-a-uuid", testContext(t))
	require.Error(t, err)

	_, err = m.match(http.MethodGet, "/feed/rss", testContext(t))
	require.NoError(t, err)

	_, err = m.match(http.MethodGet, "/feed/json", testContext(t))
	require.Error(t, err)
}

func TestMatcherTrailingSlashIsDistinctByDefault(t *testing.T) {
	t.Parallel()

	table := route.NewTable()
	table.MustRegister(route.New("users", []string{"GET"}, "/users", nopAction("users")))
	table.MustRegister(route.New("show", []string{"GET"}, "/users/:id", nopAction("show")))
	table.MustCompile()

	strict, err := newMatcher(table, false, false)
	require.NoError(t, err)

	_, err = strict.match(http.MethodGet, "/users", testContext(t))
	require.NoError(t, err)

	var notFound *NotFoundError
	_, err = strict.match(http.MethodGet, "/users/", testContext(t))
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "No route found for 'GET /users/'", notFound.Error())

	_, err = strict.match(http.MethodGet, "/users/42/", testContext(t))
	require.ErrorAs(t, err, &notFound)

	lenient, err := newMatcher(table, false, true)
	require.NoError(t, err)

	r, err := lenient.match(http.MethodGet, "/users/", testContext(t))
	require.NoError(t, err)
	assert.Equal(t, "users", r.Name())
}
