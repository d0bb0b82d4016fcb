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

// attrKind discriminates the variants of Attr.
type attrKind uint8

const (
	attrNone attrKind = iota
	attrString
	attrInt
	attrFloat
	attrBool
	attrStrings
	attrAny
)

// Attr is a request attribute value. Attributes carry per-request state
// between pipeline stages and listeners (matched route name, resolved
// principal, trace tags) without allocation for the common scalar kinds.
//
// The zero Attr is "unset"; accessors on it return their zero value and
// false.
type Attr struct {
	kind attrKind
	s    string
	i    int64
	f    float64
	b    bool
	ss   []string
	v    any
}

// StringAttr creates a string attribute.
func StringAttr(v string) Attr { return Attr{kind: attrString, s: v} }

// IntAttr creates an integer attribute.
func IntAttr(v int64) Attr { return Attr{kind: attrInt, i: v} }

// FloatAttr creates a float attribute.
func FloatAttr(v float64) Attr { return Attr{kind: attrFloat, f: v} }

// BoolAttr creates a boolean attribute.
func BoolAttr(v bool) Attr { return Attr{kind: attrBool, b: v} }

// StringsAttr creates a string-slice attribute.
func StringsAttr(v []string) Attr { return Attr{kind: attrStrings, ss: v} }

// AnyAttr creates an attribute holding an arbitrary value. Prefer the
// typed constructors; AnyAttr boxes its value.
func AnyAttr(v any) Attr { return Attr{kind: attrAny, v: v} }

// IsSet reports whether the attribute holds a value.
func (a Attr) IsSet() bool { return a.kind != attrNone }

// AsString returns the string value, or "" and false for other kinds.
func (a Attr) AsString() (string, bool) {
	if a.kind != attrString {
		return "", false
	}

	return a.s, true
}

// AsInt returns the integer value, or 0 and false for other kinds.
func (a Attr) AsInt() (int64, bool) {
	if a.kind != attrInt {
		return 0, false
	}

	return a.i, true
}

// AsFloat returns the float value, or 0 and false for other kinds.
func (a Attr) AsFloat() (float64, bool) {
	if a.kind != attrFloat {
		return 0, false
	}

	return a.f, true
}

// AsBool returns the boolean value, or false and false for other kinds.
func (a Attr) AsBool() (bool, bool) {
	if a.kind != attrBool {
		return false, false
	}

	return a.b, true
}

// AsStrings returns the string-slice value, or nil and false for other kinds.
func (a Attr) AsStrings() ([]string, bool) {
	if a.kind != attrStrings {
		return nil, false
	}

	return a.ss, true
}

// Value returns the attribute as an untyped value, whatever its kind.
// Returns nil for the unset attribute.
func (a Attr) Value() any {
	switch a.kind {
	case attrString:
		return a.s
	case attrInt:
		return a.i
	case attrFloat:
		return a.f
	case attrBool:
		return a.b
	case attrStrings:
		return a.ss
	case attrAny:
		return a.v
	default:
		return nil
	}
}
