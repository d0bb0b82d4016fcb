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
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/Tubbz-alt/athena-2/binding"
	"github.com/Tubbz-alt/athena-2/errors"
	"github.com/Tubbz-alt/athena-2/route"
)

// noopLogger is a singleton no-op logger used when no logger is configured.
var noopLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// NoopLogger returns the singleton no-op logger.
func NoopLogger() *slog.Logger {
	return noopLogger
}

// Kernel dispatches HTTP requests through the lifecycle pipeline: match a
// route, resolve the action's arguments, invoke it, wrap the result in a
// response, and write it — with listener stages between every step and an
// exception stage collecting failures.
//
// Construct with New, register listeners, then serve:
//
//	kernel, err := athena.New(table,
//	    athena.WithLogger(logger),
//	)
//	kernel.On(athena.StageRequestStart, 0, authListener)
//	http.ListenAndServe(":8080", kernel)
//
// A Kernel is safe for concurrent use once serving begins. Configuration
// (options, listeners, resolver providers) must complete first.
type Kernel struct {
	table         *route.Table
	dispatcher    *Dispatcher
	resolver      *binding.Resolver
	formatter     errors.Formatter
	logger        *slog.Logger
	observability ObservabilityRecorder

	renderers map[string]Renderer

	debug         bool
	foldCase      bool
	trimSlash     bool
	defaultFormat string
	enableH2C     bool
	timeouts      *serverTimeouts
	serving       serveState

	prepareOnce sync.Once
	prepareErr  error
	matcher     *matcher

	ctxPool sync.Pool
}

// New creates a kernel over a route table. The table may be compiled
// already; if not, the kernel compiles it on first use (or on Prepare).
func New(table *route.Table, opts ...Option) (*Kernel, error) {
	if table == nil {
		return nil, stderrors.New("athena: route table is required")
	}

	k := &Kernel{
		table:      table,
		dispatcher: NewDispatcher(),
		logger:     noopLogger,
		renderers: map[string]Renderer{
			"json": RendererFunc(jsonRenderer),
			"text": RendererFunc(textRenderer),
		},
		defaultFormat: "json",
	}
	for _, opt := range opts {
		opt(k)
	}

	if k.formatter == nil {
		k.formatter = &errors.Simple{Debug: k.debug}
	}
	if k.resolver == nil {
		k.resolver = binding.NewResolver()
	}

	k.ctxPool.New = func() any { return &Context{} }

	k.dispatcher.On(StageRequestEnd, accessLogPriority, k.accessLog)

	return k, nil
}

// MustNew is like New but panics on error.
func MustNew(table *route.Table, opts ...Option) *Kernel {
	k, err := New(table, opts...)
	if err != nil {
		panic(err)
	}

	return k
}

// On registers a lifecycle listener. Higher priorities run first within a
// stage; equal priorities run in registration order. Register before
// serving begins.
func (k *Kernel) On(stage Stage, priority int, fn ListenerFunc) {
	k.dispatcher.On(stage, priority, fn)
}

// Table returns the kernel's route table.
func (k *Kernel) Table() *route.Table { return k.table }

// Resolver returns the argument resolver, for provider registration.
func (k *Kernel) Resolver() *binding.Resolver { return k.resolver }

// Prepare compiles the route table and builds the matcher. Called lazily
// by Handle; call it during startup to surface configuration errors before
// the first request.
func (k *Kernel) Prepare() error {
	k.prepareOnce.Do(func() {
		if err := k.table.Compile(); err != nil {
			k.prepareErr = fmt.Errorf("compiling route table: %w", err)
			return
		}

		m, err := newMatcher(k.table, k.foldCase, k.trimSlash)
		if err != nil {
			k.prepareErr = fmt.Errorf("building matcher: %w", err)
			return
		}
		k.matcher = m
	})

	return k.prepareErr
}

// Handle dispatches one request through the pipeline and writes the
// response.
//
// Handle itself never returns the request's failure: action errors,
// resolution errors, and unmatched routes are rendered to the client
// through the exception path. The returned error is reserved for faults in
// error handling itself — an exception listener that failed while a
// failure was being processed — which the caller may want to escalate.
func (k *Kernel) Handle(w http.ResponseWriter, req *http.Request) error {
	if err := k.Prepare(); err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return err
	}

	var obsState any
	if k.observability != nil {
		enriched, state := k.observability.OnRequestStart(req.Context(), req)
		req = req.WithContext(enriched)
		obsState = state
		w = k.observability.WrapResponseWriter(w, obsState)
	}

	c := k.acquireContext(req)
	defer k.releaseContext(c)

	secondary := k.run(c, w)

	if k.observability != nil && obsState != nil {
		k.observability.OnRequestEnd(req.Context(), obsState, w, c.routeLabel)
	}

	return secondary
}

// ServeHTTP implements http.Handler. Secondary failures from Handle are
// already logged, so they are dropped here.
func (k *Kernel) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	_ = k.Handle(w, req)
}

// run executes the lifecycle stages for one request. The returned error is
// the secondary failure described on Handle, or nil.
func (k *Kernel) run(c *Context, w http.ResponseWriter) error {
	var failure error

	if err := k.dispatcher.Dispatch(StageRequestStart, c); err != nil {
		failure = err
	}

	if failure == nil && c.response == nil {
		failure = k.matchStage(c)
	}

	if failure == nil && c.response == nil && c.matched != nil {
		failure = k.resolveStage(c)
	}

	if failure == nil && c.response == nil && c.matched != nil {
		failure = k.invokeStage(c)
	}

	var secondary error
	if failure != nil {
		secondary = k.handleFailure(c, failure)
	}

	if c.response == nil {
		// Nothing produced a response and nothing failed. A listener
		// cleared the response without substituting one.
		c.logger.Error("pipeline produced no response")
		c.response = k.renderError(c, ErrNoResponse)
	}

	if err := k.dispatcher.Dispatch(StageResponseReady, c); err != nil {
		if failure == nil {
			failure = err
			// The prepared response is abandoned; the failure renders in
			// its place. ResponseReady is not re-dispatched for it.
			c.response = nil
			if s := k.handleFailure(c, err); secondary == nil {
				secondary = s
			}
		} else {
			// Already inside failure handling; do not loop.
			c.logger.Error("response listener failed during error handling", slog.Any("error", err))
		}
	}

	if c.response != nil {
		if err := c.response.Write(w); err != nil {
			c.logger.Error("response write failed", slog.Any("error", err))
		}
	}

	if err := k.dispatcher.Dispatch(StageRequestEnd, c); err != nil {
		c.logger.Error("request end listener failed", slog.Any("error", err))
	}

	return secondary
}

// matchStage selects the route. Matching failures (404, 405) are terminal
// protocol answers, not exceptions: they render directly without running
// the exception stage.
func (k *Kernel) matchStage(c *Context) error {
	r, err := k.matcher.match(c.req.Method, c.req.URL.Path, c)
	if err != nil {
		var notAllowed *MethodNotAllowedError
		if stderrors.As(err, &notAllowed) {
			c.routeLabel = RouteMethodNotAllowed
		}
		c.logger.Debug("no route matched", slog.String("reason", err.Error()))
		c.response = k.renderError(c, err)

		return nil
	}

	c.matched = r
	c.routeLabel = r.Name()
	c.logger = c.logger.With(slog.String("route", r.Name()))

	return k.dispatcher.Dispatch(StageRouteMatched, c)
}

// resolveStage produces the action's argument list.
func (k *Kernel) resolveStage(c *Context) error {
	if err := k.dispatcher.Dispatch(StageArgumentsResolving, c); err != nil {
		return err
	}
	if c.response != nil {
		return nil
	}

	args, err := k.resolver.Resolve(c.req.Context(), c.req, c.Params(), c.matched.Action())
	if err != nil {
		return err
	}
	c.args = args

	return nil
}

// invokeStage runs the action and wraps its result. A listener that set a
// response at the invoking stage suppresses the action entirely.
func (k *Kernel) invokeStage(c *Context) error {
	if err := k.dispatcher.Dispatch(StageActionInvoking, c); err != nil {
		return err
	}
	if c.response != nil {
		return nil
	}

	result, err := invokeAction(c.req.Context(), c.matched.Action(), c.args)
	if err != nil {
		return err
	}

	resp, err := k.buildResponse(c, result)
	if err != nil {
		return err
	}
	c.response = resp

	return nil
}

// handleFailure routes a pipeline failure through the exception stage and
// ensures a client-facing response exists afterwards. The returned error
// is a failing exception listener, propagated to the Handle caller; the
// original failure is always rendered, listener fault or not.
func (k *Kernel) handleFailure(c *Context, cause error) error {
	k.logFailure(c, cause)

	finalErr, listenerErr := k.dispatcher.dispatchException(c, cause)
	if listenerErr != nil {
		c.logger.Error("exception listener failed",
			slog.Any("error", listenerErr),
			slog.Any("cause", cause),
		)
	}

	if c.response == nil {
		c.response = k.renderError(c, finalErr)
	}

	return listenerErr
}

// logFailure logs at a severity matching fault ownership: client faults
// (4xx) at Warn, server faults at Error with panic stacks attached.
func (k *Kernel) logFailure(c *Context, cause error) {
	var panicked *PanicError
	if stderrors.As(cause, &panicked) {
		c.logger.Error("action panicked",
			slog.Any("value", panicked.Value),
			slog.String("stack", string(panicked.Stack)),
		)

		return
	}

	var typed errors.ErrorType
	if stderrors.As(cause, &typed) && typed.HTTPStatus() < http.StatusInternalServerError {
		c.logger.Warn("request failed", slog.Any("error", cause))
		return
	}

	c.logger.Error("request failed", slog.Any("error", cause))
}

// accessLogPriority places the access log after every user listener at the
// request end stage.
const accessLogPriority = -1000

// accessLog is the default request-end listener: one canonical line per
// request.
func (k *Kernel) accessLog(e *Event) error {
	c := e.Context

	status := 0
	if c.response != nil {
		status = c.response.Status()
	}

	c.logger.Info("request",
		slog.Int("status", status),
		slog.Duration("duration", time.Since(c.start)),
	)

	return nil
}

func (k *Kernel) acquireContext(req *http.Request) *Context {
	c := k.ctxPool.Get().(*Context)
	c.req = req
	c.start = time.Now()
	c.routeLabel = RouteNotFound
	c.logger = k.logger.With(
		slog.String("method", req.Method),
		slog.String("path", req.URL.Path),
	)

	return c
}

func (k *Kernel) releaseContext(c *Context) {
	c.reset()
	k.ctxPool.Put(c)
}
