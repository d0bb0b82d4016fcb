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
	"strconv"
	"strings"
	"time"

	"github.com/Tubbz-alt/athena-2/route"
)

// coerce converts a raw wire value to the parameter's declared kind.
// Returns a *TypeError (or for enums potentially a *ValidationError) when
// the value does not fit.
func coerce(p route.Param, raw string) (any, error) {
	switch p.Kind {
	case route.String:
		return raw, nil

	case route.Int:
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, &TypeError{Param: p.Name, Kind: p.Kind.String(), Value: raw}
		}

		return n, nil

	case route.Float:
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, &TypeError{Param: p.Name, Kind: p.Kind.String(), Value: raw}
		}

		return f, nil

	case route.Bool:
		b, ok := parseBool(raw)
		if !ok {
			return nil, &TypeError{Param: p.Name, Kind: p.Kind.String(), Value: raw}
		}

		return b, nil

	case route.Enum:
		for _, allowed := range p.Enum {
			if raw == allowed {
				return raw, nil
			}
		}

		return nil, &TypeError{Param: p.Name, Kind: "one of " + strings.Join(p.Enum, "|"), Value: raw}

	case route.Time:
		t, err := parseTime(raw)
		if err != nil {
			return nil, &TypeError{Param: p.Name, Kind: p.Kind.String(), Value: raw}
		}

		return t, nil

	case route.Duration:
		d, err := time.ParseDuration(raw)
		if err != nil {
			return nil, &TypeError{Param: p.Name, Kind: p.Kind.String(), Value: raw}
		}

		return d, nil

	default:
		return nil, &TypeError{Param: p.Name, Kind: p.Kind.String(), Value: raw}
	}
}

// coerceSlice converts every raw value for a repeated key, preserving
// request order.
func coerceSlice(p route.Param, raws []string) (any, error) {
	switch p.Kind {
	case route.StringSlice:
		return append([]string(nil), raws...), nil

	case route.IntSlice:
		out := make([]int64, 0, len(raws))
		for _, raw := range raws {
			n, err := strconv.ParseInt(raw, 10, 64)
			if err != nil {
				return nil, &TypeError{Param: p.Name, Kind: "integer", Value: raw}
			}
			out = append(out, n)
		}

		return out, nil

	default:
		return nil, &TypeError{Param: p.Name, Kind: p.Kind.String(), Value: strings.Join(raws, ",")}
	}
}

// parseBool accepts the wire spellings commonly produced by HTML forms and
// query strings, not just strconv's set.
func parseBool(raw string) (bool, bool) {
	switch strings.ToLower(raw) {
	case "true", "1", "yes", "on":
		return true, true
	case "false", "0", "no", "off":
		return false, true
	default:
		return false, false
	}
}

// parseTime tries RFC 3339 first, then the bare date form.
func parseTime(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}

	return time.Parse("2006-01-02", raw)
}
