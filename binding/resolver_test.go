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

package binding

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tubbz-alt/athena-2/route"
)

func actionWith(params ...route.Param) *route.Action {
	return route.NewAction("test", func(ctx context.Context, args []any) (any, error) {
		return nil, nil
	}, params...)
}

func TestResolvePathParams(t *testing.T) {
	t.Parallel()

	r := NewResolver()
	req := httptest.NewRequest(http.MethodGet, "/users/42", nil)
	act := actionWith(route.PathParam("id", route.Int))

	args, err := r.Resolve(context.Background(), req, map[string]string{"id": "42"}, act)
	require.NoError(t, err)
	assert.Equal(t, []any{int64(42)}, args)
}

func TestResolveQueryDefaults(t *testing.T) {
	t.Parallel()

	r := NewResolver()
	req := httptest.NewRequest(http.MethodGet, "/list?limit=25", nil)
	act := actionWith(
		route.QueryParam("limit", route.Int, int64(10)),
		route.QueryParam("offset", route.Int, int64(0)),
		route.QueryParam("verbose", route.Bool, false),
	)

	args, err := r.Resolve(context.Background(), req, nil, act)
	require.NoError(t, err)
	assert.Equal(t, []any{int64(25), int64(0), false}, args)
}

func TestResolveRequiredQueryMissing(t *testing.T) {
	t.Parallel()

	r := NewResolver()
	req := httptest.NewRequest(http.MethodGet, "/list", nil)
	act := actionWith(route.RequiredQueryParam("q", route.String))

	_, err := r.Resolve(context.Background(), req, nil, act)

	var missing *MissingParameterError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "q", missing.Param)
	assert.Equal(t, http.StatusBadRequest, missing.HTTPStatus())
}

func TestResolveTypeMismatch(t *testing.T) {
	t.Parallel()

	r := NewResolver()
	req := httptest.NewRequest(http.MethodGet, "/list?limit=lots", nil)
	act := actionWith(route.QueryParam("limit", route.Int, int64(10)))

	_, err := r.Resolve(context.Background(), req, nil, act)

	var typeErr *TypeError
	require.ErrorAs(t, err, &typeErr)
	assert.Equal(t, "limit", typeErr.Param)
	assert.Equal(t, http.StatusBadRequest, typeErr.HTTPStatus())
}

func TestResolveRepeatedKeyPreservesOrder(t *testing.T) {
	t.Parallel()

	r := NewResolver()
	req := httptest.NewRequest(http.MethodGet, "/pick?tag=c&tag=a&tag=b&n=3&n=1", nil)
	act := actionWith(
		route.QueryParam("tag", route.StringSlice, nil),
		route.QueryParam("n", route.IntSlice, nil),
	)

	args, err := r.Resolve(context.Background(), req, nil, act)
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "a", "b"}, args[0])
	assert.Equal(t, []int64{3, 1}, args[1])
}

func TestResolveBoolSpellings(t *testing.T) {
	t.Parallel()

	r := NewResolver()
	act := actionWith(route.RequiredQueryParam("flag", route.Bool))

	for raw, want := range map[string]bool{
		"true": true, "1": true, "yes": true, "on": true,
		"false": false, "0": false, "no": false, "off": false,
	} {
		req := httptest.NewRequest(http.MethodGet, "/f?flag="+raw, nil)
		args, err := r.Resolve(context.Background(), req, nil, act)
		require.NoError(t, err, "flag=%s", raw)
		assert.Equal(t, want, args[0], "flag=%s", raw)
	}

	req := httptest.NewRequest(http.MethodGet, "/f?flag=maybe", nil)
	_, err := r.Resolve(context.Background(), req, nil, act)
	require.Error(t, err)
}

func TestResolveEnumTimeDuration(t *testing.T) {
	t.Parallel()

	r := NewResolver()
	act := actionWith(
		route.Param{Name: "sort", Source: route.SourceQuery, Kind: route.Enum, Enum: []string{"asc", "desc"}, Required: true},
		route.RequiredQueryParam("since", route.Time),
		route.RequiredQueryParam("window", route.Duration),
	)

	req := httptest.NewRequest(http.MethodGet, "/q?sort=desc&since=2026-08-01&window=5m", nil)
	args, err := r.Resolve(context.Background(), req, nil, act)
	require.NoError(t, err)

	assert.Equal(t, "desc", args[0])
	assert.Equal(t, time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC), args[1])
	assert.Equal(t, 5*time.Minute, args[2])

	req = httptest.NewRequest(http.MethodGet, "/q?sort=sideways&since=2026-08-01&window=5m", nil)
	_, err = r.Resolve(context.Background(), req, nil, act)
	require.Error(t, err)
}

func TestResolveMutuallyExclusiveParams(t *testing.T) {
	t.Parallel()

	r := NewResolver()
	act := actionWith(
		route.Param{Name: "before", Source: route.SourceQuery, Kind: route.String, Excludes: []string{"after"}},
		route.Param{Name: "after", Source: route.SourceQuery, Kind: route.String},
	)

	req := httptest.NewRequest(http.MethodGet, "/page?before=x&after=y", nil)
	_, err := r.Resolve(context.Background(), req, nil, act)

	var incompatible *IncompatibleParamsError
	require.ErrorAs(t, err, &incompatible)
	assert.Equal(t, http.StatusBadRequest, incompatible.HTTPStatus())

	// Either alone is fine.
	req = httptest.NewRequest(http.MethodGet, "/page?before=x", nil)
	_, err = r.Resolve(context.Background(), req, nil, act)
	require.NoError(t, err)
}

func TestResolveValidationRule(t *testing.T) {
	t.Parallel()

	r := NewResolver()
	act := actionWith(
		route.Param{Name: "limit", Source: route.SourceQuery, Kind: route.Int, Required: true, Validate: "min=1,max=100"},
	)

	req := httptest.NewRequest(http.MethodGet, "/list?limit=50", nil)
	_, err := r.Resolve(context.Background(), req, nil, act)
	require.NoError(t, err)

	req = httptest.NewRequest(http.MethodGet, "/list?limit=500", nil)
	_, err = r.Resolve(context.Background(), req, nil, act)

	var invalid *ValidationError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, http.StatusUnprocessableEntity, invalid.HTTPStatus())
	assert.Equal(t, "limit", invalid.Param)
}

func TestResolveFormBody(t *testing.T) {
	t.Parallel()

	r := NewResolver()
	form := url.Values{"name": {"ada"}, "age": {"36"}}
	req := httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	act := actionWith(
		route.BodyParam("name", route.String, nil),
		route.BodyParam("age", route.Int, int64(0)),
	)

	args, err := r.Resolve(context.Background(), req, nil, act)
	require.NoError(t, err)
	assert.Equal(t, []any{"ada", int64(36)}, args)
}

func TestResolveJSONBody(t *testing.T) {
	t.Parallel()

	r := NewResolver()
	body := `{"name": "ada", "age": 36, "tags": ["x", "y"], "address": {"city": "london"}}`
	req := httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	act := actionWith(
		route.BodyParam("name", route.String, nil),
		route.BodyParam("age", route.Int, int64(0)),
		route.BodyParam("tags", route.StringSlice, nil),
		route.BodyParam("address.city", route.String, nil),
	)

	args, err := r.Resolve(context.Background(), req, nil, act)
	require.NoError(t, err)
	assert.Equal(t, "ada", args[0])
	assert.Equal(t, int64(36), args[1])
	assert.Equal(t, []string{"x", "y"}, args[2])
	assert.Equal(t, "london", args[3])
}

func TestResolveMalformedFormBody(t *testing.T) {
	t.Parallel()

	r := NewResolver()
	// "%zz" is an invalid percent escape; ParseForm rejects the body.
	req := httptest.NewRequest(http.MethodPost, "/users", strings.NewReader("name=%zz"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	act := actionWith(route.BodyParam("name", route.String, nil))

	_, err := r.Resolve(context.Background(), req, nil, act)

	var malformed *MalformedBodyError
	require.ErrorAs(t, err, &malformed)
	assert.Equal(t, http.StatusBadRequest, malformed.HTTPStatus())
	assert.Equal(t, "malformed_body", malformed.Code())
}

func TestResolveBodyAbsentUsesDefault(t *testing.T) {
	t.Parallel()

	r := NewResolver()
	req := httptest.NewRequest(http.MethodPost, "/users", nil)

	act := actionWith(route.BodyParam("name", route.String, "anonymous"))

	args, err := r.Resolve(context.Background(), req, nil, act)
	require.NoError(t, err)
	assert.Equal(t, "anonymous", args[0])
}

func TestResolveHeaderParam(t *testing.T) {
	t.Parallel()

	r := NewResolver()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("X-Tenant", "acme")

	act := actionWith(route.HeaderParam("X-Tenant", route.String, "default"))

	args, err := r.Resolve(context.Background(), req, nil, act)
	require.NoError(t, err)
	assert.Equal(t, "acme", args[0])
}

func TestResolveDerivedProvider(t *testing.T) {
	t.Parallel()

	r := NewResolver()
	r.RegisterProvider("clientIP", ProviderFunc(func(ctx context.Context, req *http.Request) (any, error) {
		return req.RemoteAddr, nil
	}))

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	act := actionWith(route.DerivedParam("clientIP"))

	args, err := r.Resolve(context.Background(), req, nil, act)
	require.NoError(t, err)
	assert.Equal(t, req.RemoteAddr, args[0])
}

func TestResolveDerivedWithoutProvider(t *testing.T) {
	t.Parallel()

	r := NewResolver()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	act := actionWith(route.DerivedParam("missing"))

	_, err := r.Resolve(context.Background(), req, nil, act)

	var unknown *UnknownProviderError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, http.StatusInternalServerError, unknown.HTTPStatus())
}

func TestResolveArgumentsInDeclarationOrder(t *testing.T) {
	t.Parallel()

	r := NewResolver()
	req := httptest.NewRequest(http.MethodGet, "/mix/7?q=go", nil)
	req.Header.Set("X-Lang", "en")

	act := actionWith(
		route.PathParam("id", route.Int),
		route.RequiredQueryParam("q", route.String),
		route.HeaderParam("X-Lang", route.String, "en"),
	)

	args, err := r.Resolve(context.Background(), req, map[string]string{"id": "7"}, act)
	require.NoError(t, err)
	assert.Equal(t, []any{int64(7), "go", "en"}, args)
}
