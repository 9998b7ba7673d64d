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

// Object is a read-only view over an OBJECT token's immediate members,
// a read-only view over an object's members, built on top of the
// index-based token store instead of a uint64 tape.
type Object struct {
	v Value
}

// Len returns the number of immediate members.
func (o Object) Len() int { return o.v.tokens.At(o.v.idx).Children }

// FindKey returns a single named member, comparing raw (unescaped)
// lexemes first and falling back to a decoded comparison only for keys
// that contain escapes. FindKey
// does not advance or mutate the receiver.
func (o Object) FindKey(key string, dst *Buffer) (Value, bool) {
	for _, c := range Children(o.v.tokens, o.v.idx) {
		tok := o.v.tokens.At(c)
		if !tok.NameEscaped {
			if string(o.v.input[tok.NameOff:tok.NameOff+tok.NameLen]) == key {
				return ValueAt(o.v.tokens, o.v.input, c), true
			}
			continue
		}
		if dst == nil {
			continue
		}
		mark := dst.Len()
		lo, hi, ok := UnescapeName(o.v.input, o.v.tokens, c, dst)
		if ok && string(dst.Bytes()[lo:hi]) == key {
			return ValueAt(o.v.tokens, o.v.input, c), true
		}
		dst.Trim(mark)
	}
	return Value{}, false
}

// ForEach calls fn for every immediate member, in document order. fn
// receives the raw (possibly escaped) member name lexeme and a Value
// for the member. Returning false from fn stops iteration early.
func (o Object) ForEach(fn func(name []byte, val Value) bool) {
	for _, c := range Children(o.v.tokens, o.v.idx) {
		tok := o.v.tokens.At(c)
		name := o.v.input[tok.NameOff : tok.NameOff+tok.NameLen]
		if !fn(name, ValueAt(o.v.tokens, o.v.input, c)) {
			return
		}
	}
}

// Map decodes every member into a Go map, using String()/NumberLexeme/
// Bool/IsNull/recursive Object/Array decoding for nested containers.
// Handles arbitrary
// nesting instead of a single-level tape walk.
func (o Object) Map(dst map[string]interface{}, scratch *Buffer) (map[string]interface{}, error) {
	if dst == nil {
		dst = make(map[string]interface{}, o.Len())
	}
	var err error
	o.ForEach(func(name []byte, val Value) bool {
		tok := o.v.tokens.At(val.idx)
		key := string(name)
		if tok.NameEscaped {
			mark := scratch.Len()
			lo, hi, ok := UnescapeName(o.v.input, o.v.tokens, val.idx, scratch)
			if ok {
				key = string(scratch.Bytes()[lo:hi])
			}
			scratch.Trim(mark)
		}
		var v interface{}
		v, err = val.interfaceValue(scratch)
		if err != nil {
			return false
		}
		dst[key] = v
		return true
	})
	return dst, err
}
