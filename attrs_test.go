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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAttrAccessors(t *testing.T) {
	t.Parallel()

	s, ok := StringAttr("hello").AsString()
	assert.True(t, ok)
	assert.Equal(t, "hello", s)

	n, ok := IntAttr(42).AsInt()
	assert.True(t, ok)
	assert.Equal(t, int64(42), n)

	// Wrong-kind access returns the zero value.
	_, ok = IntAttr(42).AsString()
	assert.False(t, ok)

	var zero Attr
	assert.False(t, zero.IsSet())
	assert.Nil(t, zero.Value())

	assert.Equal(t, []string{"a", "b"}, StringsAttr([]string{"a", "b"}).Value())
}
