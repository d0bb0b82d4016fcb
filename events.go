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
)

// Stage identifies a point in the request lifecycle at which listeners run.
type Stage uint8

const (
	// StageRequestStart runs before route matching. A listener that sets a
	// response here short-circuits matching, resolution, and invocation.
	StageRequestStart Stage = iota

	// StageRouteMatched runs after a route has been selected, before
	// argument resolution.
	StageRouteMatched

	// StageArgumentsResolving runs before the resolver executes. Listeners
	// may inspect the matched route and prime request attributes consumed
	// by derived parameters.
	StageArgumentsResolving

	// StageActionInvoking runs after arguments are resolved, immediately
	// before the action executes. A listener that sets a response here
	// skips invocation.
	StageActionInvoking

	// StageResponseReady runs once a response exists, before it is written.
	// Listeners may mutate headers or replace the response entirely.
	StageResponseReady

	// StageException runs when any earlier stage fails. The event carries
	// the error; a listener may set a recovery response.
	StageException

	// StageRequestEnd always runs last, after the response is written (or
	// writing failed). Listener errors here are logged, never rendered.
	StageRequestEnd
)

// String returns the lifecycle stage name.
func (s Stage) String() string {
	switch s {
	case StageRequestStart:
		return "request_start"
	case StageRouteMatched:
		return "route_matched"
	case StageArgumentsResolving:
		return "arguments_resolving"
	case StageActionInvoking:
		return "action_invoking"
	case StageResponseReady:
		return "response_ready"
	case StageException:
		return "exception"
	case StageRequestEnd:
		return "request_end"
	default:
		return "unknown"
	}
}

// Event is passed to every listener at a stage. Listeners communicate with
// the pipeline through the Context (setting a response, storing attributes)
// and through the event itself (stopping propagation, replacing the error
// during the exception stage).
type Event struct {
	Stage   Stage
	Context *Context

	// Err is the failure being handled. Set only during StageException;
	// exception listeners may replace it to change what gets rendered.
	Err error

	stopped bool
}

// StopPropagation prevents later listeners at the same stage from running.
// It has no effect on later stages.
func (e *Event) StopPropagation() {
	e.stopped = true
}

// ListenerFunc observes or alters a lifecycle stage. A non-nil error aborts
// the remaining listeners at the stage and routes the request to the
// exception stage (for StageException and StageRequestEnd the error is
// handled specially; see Kernel.Handle).
type ListenerFunc func(*Event) error

// listener pairs a callback with its ordering keys.
type listener struct {
	priority int
	seq      int // registration order, breaks priority ties
	fn       ListenerFunc
}

// Dispatcher routes lifecycle events to registered listeners.
//
// Registration happens during configuration, before the kernel serves
// requests; dispatch is then safe for unsynchronized concurrent use.
// Listeners at a stage run sequentially: higher priority first, equal
// priorities in registration order.
type Dispatcher struct {
	listeners [StageRequestEnd + 1][]listener
	seq       int
}

// NewDispatcher creates an empty dispatcher.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{}
}

// On registers a listener for a stage with the given priority. Higher
// priorities run first; listeners with equal priority run in registration
// order.
func (d *Dispatcher) On(stage Stage, priority int, fn ListenerFunc) {
	d.seq++
	ls := append(d.listeners[stage], listener{priority: priority, seq: d.seq, fn: fn})
	sort.SliceStable(ls, func(i, j int) bool {
		if ls[i].priority != ls[j].priority {
			return ls[i].priority > ls[j].priority
		}

		return ls[i].seq < ls[j].seq
	})
	d.listeners[stage] = ls
}

// Len returns the number of listeners registered at a stage.
func (d *Dispatcher) Len(stage Stage) int {
	return len(d.listeners[stage])
}

// Dispatch runs the stage's listeners against the context. It stops at the
// first listener error and returns it; StopPropagation stops the walk
// without error. A cancelled request context stops dispatch between
// listeners and returns the context error.
func (d *Dispatcher) Dispatch(stage Stage, c *Context) error {
	ls := d.listeners[stage]
	if len(ls) == 0 {
		return nil
	}

	event := &Event{Stage: stage, Context: c}

	for _, l := range ls {
		if err := c.req.Context().Err(); err != nil {
			return err
		}
		if err := l.fn(event); err != nil {
			return err
		}
		if event.stopped {
			break
		}
	}

	return nil
}

// dispatchException runs exception listeners with the failure attached.
// Returns the possibly replaced error and the first listener failure.
func (d *Dispatcher) dispatchException(c *Context, cause error) (error, error) {
	ls := d.listeners[StageException]
	if len(ls) == 0 {
		return cause, nil
	}

	event := &Event{Stage: StageException, Context: c, Err: cause}

	for _, l := range ls {
		if err := l.fn(event); err != nil {
			return event.Err, err
		}
		if event.stopped {
			break
		}
	}

	return event.Err, nil
}
