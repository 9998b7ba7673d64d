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

import "errors"

// Kind identifies the JSON value a Token represents.
type Kind uint8

const (
	KindNone Kind = iota
	KindNull
	KindBool
	KindNumber
	KindString
	KindObject
	KindArray
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindObject:
		return "object"
	case KindArray:
		return "array"
	default:
		return "none"
	}
}

// Token is a fixed-size record describing one JSON value, and, if it is
// an object member, the member name that precedes it. Name and value
// byte ranges refer into the input slice supplied to Parse; no string
// data is copied during parsing.
type Token struct {
	Kind Kind

	// NameOff/NameLen bracket the member-name lexeme (quotes excluded).
	// Both are zero when the token is not an object member.
	NameOff, NameLen int
	NameEscaped      bool

	// Parent is the index of the enclosing OBJECT/ARRAY token, or 0 for
	// the root.
	Parent int

	// Boolean holds the decoded value for KindBool.
	Boolean bool

	// StrOff/StrLen bracket the value lexeme for KindNumber (the entire
	// numeric literal) and KindString (quotes excluded).
	StrOff, StrLen int
	ValueEscaped   bool

	// Children/Next are populated for KindObject/KindArray only. Children
	// is the count of immediate members; Next is the index of the token
	// immediately following the closing brace/bracket.
	Children int
	Next     int
}

// ErrCapacity is returned by Parse when the token store ran out of room
// and no reallocation policy was able to grow it.
var ErrCapacity = errors.New("jsontape: token store exhausted")

// Allocator grows a Tokens store to at least size_hint slots, or releases
// all owned storage when size_hint is 0. It must preserve existing
// contents and must return an error if it cannot satisfy the hint.
//
// A size_hint of 0 must always succeed (it means "give storage back").
type Allocator func(t *Tokens, sizeHint int) error

// DefaultAllocator doubles capacity (starting at 2) using the general
// purpose allocator. It is the policy NewTokens installs; a zero-value
// Tokens has no allocator.
func DefaultAllocator(t *Tokens, sizeHint int) error {
	if sizeHint == 0 {
		t.buf = nil
		return nil
	}
	newCap := cap(t.buf)
	if newCap == 0 {
		newCap = 2
	}
	for newCap < sizeHint {
		newCap *= 2
	}
	grown := make([]Token, len(t.buf), newCap)
	copy(grown, t.buf)
	t.buf = grown
	return nil
}

// Tokens is a contiguous, 1-indexed array of Token records. Index 0 is a
// permanently zeroed sentinel: it is the parent of the root token and
// the terminator of every upward parent-chain walk. Indices are used
// throughout instead of pointers because growth may reallocate the
// backing array.
type Tokens struct {
	buf   []Token
	last  int
	alloc Allocator

	// parent is the current-parent cursor used by alloc: every freshly
	// allocated token inherits it as Parent, and the parent's Children
	// counter is bumped.
	parent int
}

// NewTokens creates a fully dynamic store using the default doubling
// allocator.
func NewTokens() *Tokens {
	return NewTokensWithAllocator(nil, DefaultAllocator)
}

// NewFixedTokens creates a bounded store backed by a buffer sized for
// exactly capacity usable tokens (plus the one slot reserved for the
// sentinel) and no reallocation policy: once capacity is reached, Parse
// fails with ErrCapacity instead of growing.
func NewFixedTokens(capacity int) *Tokens {
	buf := make([]Token, 0, capacity+1)
	return NewTokensWithAllocator(buf, nil)
}

// NewTokensWithAllocator creates a store from an optional pre-allocated
// fixed buffer and an optional reallocation policy. Passing both means:
// use buf first, fall back to alloc on overflow. A nil alloc with a
// non-nil buf means a bounded parse that fails with ErrCapacity once buf
// is exhausted. A caller-supplied buf is never freed by this package.
func NewTokensWithAllocator(buf []Token, alloc Allocator) *Tokens {
	t := &Tokens{alloc: alloc}
	if buf != nil {
		t.buf = buf[:0]
	}
	return t
}

// Reset sets the high-water index back to 0 without releasing storage,
// so the same Tokens can be reused across any number of parses.
func (t *Tokens) Reset() {
	t.last = 0
	t.parent = 0
	if len(t.buf) != 0 {
		t.buf = t.buf[:0]
	}
}

// Release hands owned storage back via the reallocation policy. A store
// without a policy just drops its reference to the buffer; a
// caller-supplied slice itself is left untouched. Either way Cap is 0
// afterwards.
func (t *Tokens) Release() error {
	if t.alloc == nil {
		t.buf = nil
		return nil
	}
	return t.alloc(t, 0)
}

// Cap returns the current usable token capacity: the maximum high-water
// index reachable before the allocator must grow or refuse, i.e. the
// raw backing array size minus the one slot permanently reserved for
// the sentinel at index 0.
func (t *Tokens) Cap() int {
	c := cap(t.buf)
	if c == 0 {
		return 0
	}
	return c - 1
}

// Last returns the high-water index: the index of the most recently
// allocated token, or 0 if none has been allocated yet.
func (t *Tokens) Last() int { return t.last }

// At returns a mutable pointer to slot i. Callers must not retain the
// pointer across any call that may allocate (Parse, alloc): growth may
// move the backing array.
func (t *Tokens) At(i int) *Token { return &t.buf[i] }

// allocToken grows last by one, allocating backing storage on demand via
// the configured policy, and returns the new index. The new slot is
// zeroed, its Parent is set to the current-parent cursor, and the
// parent's Children counter (if any) is incremented.
func (t *Tokens) allocToken() (int, bool) {
	want := t.last + 1
	if want >= cap(t.buf) {
		if t.alloc == nil {
			return 0, false
		}
		if err := t.alloc(t, want+1); err != nil {
			return 0, false
		}
		if want >= cap(t.buf) {
			return 0, false
		}
	}
	t.buf = t.buf[:want+1]
	t.last = want
	tok := &t.buf[want]
	*tok = Token{Parent: t.parent}
	if t.parent != 0 {
		// Token 0 is the permanent sentinel (reserved
		// and always zeroed) and is never treated as a container, so only a
		// real enclosing OBJECT/ARRAY gets its Children bumped.
		t.buf[t.parent].Children++
	}
	return want, true
}

// AllocRaw appends one zeroed token without touching the parent cursor or
// any Children counter, growing storage via the configured allocator if
// needed. It exists for callers reconstructing a store from a serialized
// record array (see package serialize), where every field including Parent
// and Children is about to be overwritten verbatim; ordinary parsing never
// calls it.
func (t *Tokens) AllocRaw() (int, bool) {
	if cap(t.buf) == 0 {
		if t.alloc == nil {
			return 0, false
		}
		if err := t.alloc(t, 1); err != nil {
			return 0, false
		}
		if cap(t.buf) == 0 {
			return 0, false
		}
	}
	if len(t.buf) == 0 {
		// First call produces the index-0 sentinel itself and leaves the
		// high-water mark at 0, matching ensureSentinel.
		t.buf = t.buf[:1]
		t.buf[0] = Token{}
		return 0, true
	}
	want := t.last + 1
	if want >= cap(t.buf) {
		if t.alloc == nil {
			return 0, false
		}
		if err := t.alloc(t, want+1); err != nil {
			return 0, false
		}
		if want >= cap(t.buf) {
			return 0, false
		}
	}
	t.buf = t.buf[:want+1]
	t.last = want
	t.buf[want] = Token{}
	return want, true
}

// ensureSentinel guarantees buf[0] exists and is zeroed before any
// allocation, before any real token is ever written.
func (t *Tokens) ensureSentinel() bool {
	if cap(t.buf) == 0 {
		if t.alloc == nil {
			return false
		}
		if err := t.alloc(t, 1); err != nil {
			return false
		}
		if cap(t.buf) == 0 {
			return false
		}
	}
	if len(t.buf) == 0 {
		t.buf = t.buf[:1]
		t.buf[0] = Token{}
	}
	return true
}
