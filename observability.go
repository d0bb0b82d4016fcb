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
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// ObservabilityRecorder provides lifecycle hooks around request dispatch.
// Implementations typically combine metrics, tracing, and access logging.
//
// Lifecycle:
//  1. OnRequestStart(ctx, req) → (enrichedCtx, state). The enriched context
//     is always used; a nil state excludes the request from the remaining
//     hooks (context enrichment still applies, so trace propagation works
//     on excluded paths).
//  2. WrapResponseWriter wraps the writer to capture status and size, only
//     when state != nil.
//  3. OnRequestEnd(ctx, state, writer, routeName) after the response is
//     written, only when state != nil. routeName is the matched route name
//     or a sentinel ("_not_found", "_method_not_allowed"); implementations
//     should key metrics on it, not the raw path, to bound cardinality.
//
// All methods must be safe for concurrent use.
type ObservabilityRecorder interface {
	OnRequestStart(ctx context.Context, req *http.Request) (context.Context, any)
	WrapResponseWriter(w http.ResponseWriter, state any) http.ResponseWriter
	OnRequestEnd(ctx context.Context, state any, writer http.ResponseWriter, routeName string)
}

// ResponseInfo is implemented by response writers that track response
// metadata, letting OnRequestEnd extract status and size.
type ResponseInfo interface {
	StatusCode() int
	Size() int64
}

// Sentinel route names reported to observability when no route matched.
const (
	RouteNotFound         = "_not_found"
	RouteMethodNotAllowed = "_method_not_allowed"
)

// observedWriter wraps http.ResponseWriter to capture status code and size.
// It also suppresses superfluous WriteHeader calls.
type observedWriter struct {
	http.ResponseWriter
	statusCode int
	size       int64
	written    bool
}

func (w *observedWriter) WriteHeader(code int) {
	if !w.written {
		w.statusCode = code
		w.ResponseWriter.WriteHeader(code)
		w.written = true
	}
}

func (w *observedWriter) Write(b []byte) (int, error) {
	if !w.written {
		w.written = true
	}
	if w.statusCode == 0 {
		w.statusCode = http.StatusOK
	}
	n, err := w.ResponseWriter.Write(b)
	w.size += int64(n)

	return n, err
}

// StatusCode returns the HTTP status code.
func (w *observedWriter) StatusCode() int {
	if w.statusCode == 0 {
		return http.StatusOK
	}

	return w.statusCode
}

// Size returns the response size in bytes.
func (w *observedWriter) Size() int64 {
	return w.size
}

// Flush implements http.Flusher.
func (w *observedWriter) Flush() {
	if flusher, ok := w.ResponseWriter.(http.Flusher); ok {
		flusher.Flush()
	}
}

var _ ResponseInfo = (*observedWriter)(nil)

// MetricsRecorder is the bundled ObservabilityRecorder: Prometheus request
// metrics plus an OpenTelemetry server span per request. Use NewMetrics
// and register the collectors with your Prometheus registry.
type MetricsRecorder struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
	inflight prometheus.Gauge
	tracer   trace.Tracer
	exclude  map[string]bool
}

// MetricsOption configures a MetricsRecorder.
type MetricsOption func(*MetricsRecorder)

// WithTracer sets the tracer used for per-request server spans. Without it
// no spans are created.
func WithTracer(t trace.Tracer) MetricsOption {
	return func(m *MetricsRecorder) { m.tracer = t }
}

// WithExcludedPaths excludes exact request paths (health checks, metrics
// endpoints) from recording. Context enrichment still applies.
func WithExcludedPaths(paths ...string) MetricsOption {
	return func(m *MetricsRecorder) {
		for _, p := range paths {
			m.exclude[p] = true
		}
	}
}

// NewMetrics creates a MetricsRecorder and registers its collectors with
// the given registerer.
func NewMetrics(reg prometheus.Registerer, opts ...MetricsOption) *MetricsRecorder {
	m := &MetricsRecorder{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total HTTP requests by method, route, and status.",
		}, []string{"method", "route", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency by method and route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		inflight: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "http_requests_in_flight",
			Help: "Requests currently being dispatched.",
		}),
		exclude: make(map[string]bool),
	}
	for _, opt := range opts {
		opt(m)
	}

	reg.MustRegister(m.requests, m.duration, m.inflight)

	return m
}

type metricsState struct {
	start  time.Time
	method string
	span   trace.Span
}

// OnRequestStart implements ObservabilityRecorder.
func (m *MetricsRecorder) OnRequestStart(ctx context.Context, req *http.Request) (context.Context, any) {
	if m.exclude[req.URL.Path] {
		return ctx, nil
	}

	state := &metricsState{start: time.Now(), method: req.Method}

	if m.tracer != nil {
		var span trace.Span
		ctx, span = m.tracer.Start(ctx, req.Method,
			trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(
				attribute.String("http.request.method", req.Method),
				attribute.String("url.path", req.URL.Path),
			),
		)
		state.span = span
	}

	m.inflight.Inc()

	return ctx, state
}

// WrapResponseWriter implements ObservabilityRecorder.
func (m *MetricsRecorder) WrapResponseWriter(w http.ResponseWriter, state any) http.ResponseWriter {
	if state == nil {
		return w
	}

	return &observedWriter{ResponseWriter: w}
}

// OnRequestEnd implements ObservabilityRecorder.
func (m *MetricsRecorder) OnRequestEnd(ctx context.Context, state any, writer http.ResponseWriter, routeName string) {
	s, ok := state.(*metricsState)
	if !ok {
		return
	}

	m.inflight.Dec()

	status := http.StatusOK
	if info, ok := writer.(ResponseInfo); ok {
		status = info.StatusCode()
	}

	m.requests.WithLabelValues(s.method, routeName, statusClass(status)).Inc()
	m.duration.WithLabelValues(s.method, routeName).Observe(time.Since(s.start).Seconds())

	if s.span != nil {
		s.span.SetAttributes(
			attribute.Int("http.response.status_code", status),
			attribute.String("http.route", routeName),
		)
		if status >= http.StatusInternalServerError {
			s.span.SetStatus(codes.Error, http.StatusText(status))
		}
		s.span.End()
	}
}

func statusClass(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	case status >= 300:
		return "3xx"
	default:
		return "2xx"
	}
}
