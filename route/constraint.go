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
	"regexp"
	"strings"
)

// Constraint represents a compiled constraint for a route placeholder.
// The pattern is tested against the full path segment during matching.
type Constraint struct {
	Param   string         // Placeholder name
	Pattern *regexp.Regexp // Compiled regex pattern, anchored at both ends
}

// ConstraintKind represents the type of constraint applied to a placeholder.
type ConstraintKind uint8

const (
	ConstraintNone ConstraintKind = iota
	ConstraintInt
	ConstraintFloat
	ConstraintUUID
	ConstraintRegex
	ConstraintEnum
	ConstraintDate     // RFC3339 full-date
	ConstraintDateTime // RFC3339 date-time
)

// ParamConstraint represents a typed constraint for a route placeholder.
// Typed constraints preserve semantic information for introspection while
// compiling down to regex tests for matching.
type ParamConstraint struct {
	Kind    ConstraintKind
	Pattern string   // for ConstraintRegex
	Enum    []string // for ConstraintEnum
}

// ToRegexConstraint converts a typed constraint into a compiled Constraint
// for use by the matcher. Returns nil for unknown kinds or patterns that do
// not compile.
func (pc ParamConstraint) ToRegexConstraint(paramName string) *Constraint {
	var pattern string
	switch pc.Kind {
	case ConstraintInt:
		pattern = `\d+`
	case ConstraintFloat:
		pattern = `-?(?:\d+\.?\d*|\.\d+)(?:[eE][+-]?\d+)?`
	case ConstraintUUID:
		pattern = `[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[1-5][0-9a-fA-F]{3}-[89abAB][0-9a-fA-F]{3}-[0-9a-fA-F]{12}`
	case ConstraintRegex:
		pattern = pc.Pattern
	case ConstraintEnum:
		escaped := make([]string, 0, len(pc.Enum))
		for _, v := range pc.Enum {
			escaped = append(escaped, regexp.QuoteMeta(v))
		}
		pattern = "(" + strings.Join(escaped, "|") + ")"
	case ConstraintDate:
		pattern = `\d{4}-\d{2}-\d{2}`
	case ConstraintDateTime:
		pattern = `\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}(?:\.\d+)?(?:Z|[+-]\d{2}:\d{2})`
	default:
		return nil
	}

	regex, err := regexp.Compile("^" + pattern + "$")
	if err != nil {
		// Should not happen for predefined patterns; user regexes are
		// validated earlier by Where.
		return nil
	}

	return &Constraint{
		Param:   paramName,
		Pattern: regex,
	}
}

// ConstraintFromPattern compiles a regex pattern into a Constraint.
// Panics on an invalid pattern; constraints are declared at startup and an
// invalid pattern is a programming error.
func ConstraintFromPattern(param, pattern string) Constraint {
	return Constraint{
		Param:   param,
		Pattern: regexp.MustCompile("^" + pattern + "$"),
	}
}

// Info contains information about a registered route for introspection.
// Used for debugging, documentation generation, and monitoring.
type Info struct {
	Name        string            // Route name (unique per table)
	Methods     []string          // HTTP methods (GET, POST, ...)
	Path        string            // Route path pattern (/users/:id)
	Action      string            // Name of the bound action
	Priority    int               // Explicit priority (0 unless set)
	Constraints map[string]string // Placeholder constraints (param -> pattern)
	IsStatic    bool              // True if the pattern has no placeholders
	ParamCount  int               // Number of placeholders in the pattern
}
