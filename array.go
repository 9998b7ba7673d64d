/*
 * MinIO Cloud Storage, (C) 2020 MinIO, Inc.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package jsontape

// Array is a read-only view over an ARRAY token's immediate elements,
// a read-only view over an array's elements.
type Array struct {
	v Value
}

// Len returns the number of immediate elements.
func (a Array) Len() int { return a.v.tokens.At(a.v.idx).Children }

// At returns the i-th immediate element (0-based), or ok=false if i is
// out of range.
func (a Array) At(i int) (Value, bool) {
	if i < 0 || i >= a.Len() {
		return Value{}, false
	}
	end := NextSiblingOrFollowing(a.v.tokens, a.v.idx)
	cur := FirstChild(a.v.idx)
	for ; i > 0 && cur < end; i-- {
		cur = NextSiblingOrFollowing(a.v.tokens, cur)
	}
	if cur >= end {
		return Value{}, false
	}
	return ValueAt(a.v.tokens, a.v.input, cur), true
}

// ForEach calls fn for every immediate element, in document order.
// Returning false from fn stops iteration early.
func (a Array) ForEach(fn func(val Value) bool) {
	for _, c := range Children(a.v.tokens, a.v.idx) {
		if !fn(ValueAt(a.v.tokens, a.v.input, c)) {
			return
		}
	}
}

// Interface decodes every element into a []interface{}, recursing into
// nested containers, the same way encoding/json's generic decode does
// over its tape.
func (a Array) Interface(scratch *Buffer) ([]interface{}, error) {
	out := make([]interface{}, 0, a.Len())
	var err error
	a.ForEach(func(val Value) bool {
		var v interface{}
		v, err = val.interfaceValue(scratch)
		if err != nil {
			return false
		}
		out = append(out, v)
		return true
	})
	return out, err
}
