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

import (
	"errors"
	"fmt"
	"strconv"
)

// Value is a thin, independent handle onto one token in a Tokens store,
// a (tape, offset) pair that callers
// copy freely rather than mutate in place.
type Value struct {
	tokens *Tokens
	input  []byte
	idx    int
}

// ValueAt builds a Value for an arbitrary token index, e.g. one
// returned by Children or ChildByName.
func ValueAt(tokens *Tokens, input []byte, idx int) Value {
	return Value{tokens: tokens, input: input, idx: idx}
}

// Index returns the underlying token index, for callers that want to
// drop down to the navigation primitives directly.
func (v Value) Index() int { return v.idx }

// Kind returns the JSON type of the value.
func (v Value) Kind() Kind { return v.tokens.At(v.idx).Kind }

// Name returns the raw (possibly still-escaped) member-name lexeme, or
// nil if this value is not an object member.
func (v Value) Name() []byte {
	tok := v.tokens.At(v.idx)
	if tok.NameOff == 0 && tok.NameLen == 0 {
		// The root token's member name is never set (object member
		// names always start past the opening '{' and at least one
		// byte of whitespace/quote, so a genuine name can never sit at
		// offset 0); zero/zero doubles as the not-a-member sentinel.
		return nil
	}
	return v.input[tok.NameOff : tok.NameOff+tok.NameLen]
}

// NameString decodes the member name into dst. If it has no escapes,
// the result is read straight from the input and dst is left untouched.
func (v Value) NameString(dst *Buffer) (string, bool) {
	lo, hi, ok := UnescapeName(v.input, v.tokens, v.idx, dst)
	if !ok {
		return "", false
	}
	if v.tokens.At(v.idx).NameEscaped {
		return string(dst.Bytes()[lo:hi]), true
	}
	return string(v.input[lo:hi]), true
}

// Bool returns the decoded boolean. ok is false if Kind() != KindBool.
func (v Value) Bool() (val, ok bool) {
	tok := v.tokens.At(v.idx)
	if tok.Kind != KindBool {
		return false, false
	}
	return tok.Boolean, true
}

// IsNull reports whether this value is the null literal.
func (v Value) IsNull() bool { return v.tokens.At(v.idx).Kind == KindNull }

// NumberLexeme returns the raw verbatim number lexeme (sign, digits,
// fraction, exponent), unparsed: this package never parses numbers
// into a binary form. Callers that need a numeric value call strconv
// on this.
func (v Value) NumberLexeme() ([]byte, bool) {
	tok := v.tokens.At(v.idx)
	if tok.Kind != KindNumber {
		return nil, false
	}
	return v.input[tok.StrOff : tok.StrOff+tok.StrLen], true
}

// StringRaw returns the raw (possibly still-escaped) STRING value
// lexeme, quotes excluded.
func (v Value) StringRaw() ([]byte, bool) {
	tok := v.tokens.At(v.idx)
	if tok.Kind != KindString {
		return nil, false
	}
	return v.input[tok.StrOff : tok.StrOff+tok.StrLen], true
}

// String decodes a STRING value into dst. If the lexeme had no
// escapes, the returned string is copied straight from the input and
// dst is left untouched.
func (v Value) String(dst *Buffer) (string, bool) {
	tok := v.tokens.At(v.idx)
	if tok.Kind != KindString {
		return "", false
	}
	lo, hi, ok := UnescapeValue(v.input, v.tokens, v.idx, dst)
	if !ok {
		return "", false
	}
	if tok.ValueEscaped {
		return string(dst.Bytes()[lo:hi]), true
	}
	return string(v.input[lo:hi]), true
}

// AsInterface recursively decodes v into plain Go types (float64, bool,
// nil, string, map[string]interface{}, []interface{}), the same shape
// encoding/json would produce. It allocates its own scratch buffer for
// any escape decoding; callers that decode repeatedly should call
// interfaceValue directly with a reused Buffer instead.
func (v Value) AsInterface() (interface{}, error) {
	return v.interfaceValue(NewBuffer(nil))
}

var errNotContainer = errors.New("jsontape: value is not an object/array")

// Object returns an Object view, or an error if Kind() != KindObject.
func (v Value) Object() (Object, error) {
	if v.tokens.At(v.idx).Kind != KindObject {
		return Object{}, errNotContainer
	}
	return Object{v}, nil
}

// Array returns an Array view, or an error if Kind() != KindArray.
func (v Value) Array() (Array, error) {
	if v.tokens.At(v.idx).Kind != KindArray {
		return Array{}, errNotContainer
	}
	return Array{v}, nil
}

// interfaceValue recursively decodes v into the same plain Go types
// encoding/json would produce (float64 for numbers, map[string]interface{}
// for objects, []interface{} for arrays), the same shape an
// Iter.Interface contract.
func (v Value) interfaceValue(scratch *Buffer) (interface{}, error) {
	switch v.Kind() {
	case KindNull:
		return nil, nil
	case KindBool:
		b, _ := v.Bool()
		return b, nil
	case KindNumber:
		lex, _ := v.NumberLexeme()
		f, err := strconv.ParseFloat(string(lex), 64)
		if err != nil {
			return nil, fmt.Errorf("jsontape: decoding number %q: %w", lex, err)
		}
		return f, nil
	case KindString:
		s, ok := v.String(scratch)
		if !ok {
			return nil, fmt.Errorf("jsontape: invalid \\u escape in string")
		}
		return s, nil
	case KindObject:
		obj, _ := v.Object()
		return obj.Map(nil, scratch)
	case KindArray:
		arr, _ := v.Array()
		return arr.Interface(scratch)
	default:
		return nil, fmt.Errorf("jsontape: unknown token kind %v", v.Kind())
	}
}
