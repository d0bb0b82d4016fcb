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
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tubbz-alt/athena-2/route"
)

func TestMetricsRecorderCountsRequests(t *testing.T) {
	t.Parallel()

	registry := prometheus.NewRegistry()
	rec := NewMetrics(registry)

	table := route.NewTable()
	table.MustRegister(route.New("ok", []string{"GET"}, "/ok",
		noArgAction("ok", func() (any, error) { return "ok", nil }),
	))

	kernel := MustNew(table, WithObservability(rec))

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		kernel.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ok", nil))
	}

	// A miss is keyed on the sentinel, not the raw path.
	w := httptest.NewRecorder()
	kernel.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/missing", nil))

	count := testutil.ToFloat64(rec.requests.WithLabelValues("GET", "ok", "2xx"))
	assert.Equal(t, float64(3), count)

	missCount := testutil.ToFloat64(rec.requests.WithLabelValues("GET", RouteNotFound, "4xx"))
	assert.Equal(t, float64(1), missCount)
}

func TestMetricsRecorderExcludesPaths(t *testing.T) {
	t.Parallel()

	registry := prometheus.NewRegistry()
	rec := NewMetrics(registry, WithExcludedPaths("/healthz"))

	table := route.NewTable()
	table.MustRegister(route.New("health", []string{"GET"}, "/healthz",
		noArgAction("health", func() (any, error) { return "ok", nil }),
	))

	kernel := MustNew(table, WithObservability(rec))

	w := httptest.NewRecorder()
	kernel.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.Equal(t, http.StatusOK, w.Code)

	count := testutil.ToFloat64(rec.requests.WithLabelValues("GET", "health", "2xx"))
	assert.Zero(t, count)
}

func TestObservedWriterCapturesStatusAndSize(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	w := &observedWriter{ResponseWriter: rec}

	w.WriteHeader(http.StatusAccepted)
	w.WriteHeader(http.StatusTeapot) // superfluous, must be ignored
	n, err := w.Write([]byte("hello"))
	require.NoError(t, err)
	require.Equal(t, 5, n)

	assert.Equal(t, http.StatusAccepted, w.StatusCode())
	assert.Equal(t, int64(5), w.Size())
	assert.Equal(t, http.StatusAccepted, rec.Code)
}
