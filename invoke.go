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
	"runtime/debug"

	"github.com/Tubbz-alt/athena-2/route"
)

// invokeAction runs the action with the resolved arguments, converting a
// panic into a *PanicError so one misbehaving action cannot take down the
// server. The stack is captured at recovery for the exception log.
func invokeAction(ctx context.Context, act *route.Action, args []any) (result any, err error) {
	defer func() {
		if v := recover(); v != nil {
			result = nil
			err = &PanicError{Value: v, Stack: debug.Stack()}
		}
	}()

	return act.Func(ctx, args)
}
