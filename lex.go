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

// Package jsontape implements a strict, validating, one-pass JSON lexer
// that tokenizes an input byte slice into a contiguous, index-based
// token store without copying string data out of the input. It targets
// RFC 8259 plus the JSONTestSuite pass/fail matrix; see SPEC_FULL.md for
// the full requirements this package implements.
package jsontape

const defaultMaxDepth = 1024

// Parser holds the reusable parse context: a token store plus the
// handful of limits that govern one invocation of Parse. A Parser may
// be reused across any number of Parse calls; each call resets the
// token store and overwrites it from scratch.
type Parser struct {
	tokens      *Tokens
	input       []byte
	maxDepth    int
	tolerateBOM bool
}

// NewParser builds a Parser with a fully dynamic token store unless
// overridden by options.
func NewParser(opts ...ParserOption) (*Parser, error) {
	p := &Parser{
		tokens:      NewTokens(),
		maxDepth:    defaultMaxDepth,
		tolerateBOM: true,
	}
	for _, opt := range opts {
		if err := opt(p); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// Tokens returns the token store populated by the most recent Parse.
func (p *Parser) Tokens() *Tokens { return p.tokens }

// Input returns the byte slice passed to the most recent Parse call.
// Token byte ranges are offsets into this slice.
func (p *Parser) Input() []byte { return p.input }

// Root returns a navigable Value for the single top-level JSON value
// produced by the most recent successful Parse.
func (p *Parser) Root() Value {
	return Value{tokens: p.tokens, input: p.input, idx: 1}
}

var utf8BOM = [3]byte{0xEF, 0xBB, 0xBF}

// foreignBOMLen reports the length of a recognized non-UTF-8 byte order
// mark at the start of input, or 0 if none is present. UTF-16/UTF-32
// input is out of scope; detecting the common BOMs up front
// gives a precise ErrUnsupportedInput instead of a confusing syntax
// error pointing at byte 0.
func foreignBOMLen(input []byte) int {
	switch {
	case len(input) >= 4 && input[0] == 0x00 && input[1] == 0x00 && input[2] == 0xFE && input[3] == 0xFF:
		return 4 // UTF-32 BE
	case len(input) >= 4 && input[0] == 0xFF && input[1] == 0xFE && input[2] == 0x00 && input[3] == 0x00:
		return 4 // UTF-32 LE
	case len(input) >= 2 && input[0] == 0xFE && input[1] == 0xFF:
		return 2 // UTF-16 BE
	case len(input) >= 2 && input[0] == 0xFF && input[1] == 0xFE:
		return 2 // UTF-16 LE
	default:
		return 0
	}
}

// Parse validates and tokenizes input, resetting and overwriting the
// Parser's token store. On success every live token is reachable via
// Tokens()/navigation primitives; on failure the returned error is
// either a *SyntaxError (grammar violation) or ErrCapacity (the token
// store is full and could not grow) or ErrUnsupportedInput (a non-UTF-8
// BOM was detected).
func (p *Parser) Parse(input []byte) error {
	p.tokens.Reset()
	p.input = input

	pos := 0
	if n := foreignBOMLen(input); n > 0 {
		return ErrUnsupportedInput
	}
	if p.tolerateBOM && len(input) >= 3 && input[0] == utf8BOM[0] && input[1] == utf8BOM[1] && input[2] == utf8BOM[2] {
		pos = 3
	}

	if !p.tokens.ensureSentinel() {
		return ErrCapacity
	}

	pos = skipWS(input, pos)
	if pos >= len(input) {
		return p.errorf(pos, "unexpected end of input")
	}

	newPos, _, err := p.parseValue(input, pos, 0, 1)
	if err != nil {
		return err
	}
	pos = skipWS(input, newPos)
	if pos != len(input) {
		return p.errorf(pos, "trailing data after JSON value")
	}
	return nil
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isHexDigit(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

// skipWS advances past the four whitespace bytes RFC 8259 defines.
// Form feed and vertical tab are deliberately not whitespace here.
func skipWS(input []byte, pos int) int {
	for pos < len(input) {
		switch input[pos] {
		case ' ', '\t', '\n', '\r':
			pos++
		default:
			return pos
		}
	}
	return pos
}

// parseValue dispatches on the first non-whitespace byte and returns
// the position just past the value,
// the index of the token it allocated for that value, and an error.
// depth is the nesting depth this value would sit at if it opens a new
// container; it is checked against maxDepth before any token for a
// container is allocated.
func (p *Parser) parseValue(input []byte, pos, parent, depth int) (int, int, error) {
	pos = skipWS(input, pos)
	if pos >= len(input) {
		return pos, 0, p.errorf(pos, "unexpected end of input")
	}
	switch c := input[pos]; {
	case c == '"':
		return p.parseStringValue(input, pos, parent)
	case c == '{':
		return p.parseObject(input, pos, parent, depth)
	case c == '[':
		return p.parseArray(input, pos, parent, depth)
	case c == 't':
		return p.parseLiteral(input, pos, parent, "true", KindBool, true)
	case c == 'f':
		return p.parseLiteral(input, pos, parent, "false", KindBool, false)
	case c == 'n':
		return p.parseLiteral(input, pos, parent, "null", KindNull, false)
	case c == '-' || isDigit(c):
		return p.parseNumber(input, pos, parent)
	default:
		return pos, 0, p.errorf(pos, "unexpected character %q", c)
	}
}

// parseLiteral matches a case-sensitive keyword in full; "True", "nul",
// "fals" and similar prefixes/typos are rejected.
func (p *Parser) parseLiteral(input []byte, pos, parent int, lit string, kind Kind, boolVal bool) (int, int, error) {
	end := pos + len(lit)
	if end > len(input) || string(input[pos:end]) != lit {
		return pos, 0, p.errorf(pos, "invalid literal, expected %q", lit)
	}
	p.tokens.parent = parent
	idx, ok := p.tokens.allocToken()
	if !ok {
		return pos, 0, ErrCapacity
	}
	tok := p.tokens.At(idx)
	tok.Kind = kind
	if kind == KindBool {
		tok.Boolean = boolVal
	}
	return end, idx, nil
}

// parseObject implements the OBJECT production: a depth-checked token
// allocation for the container itself, then zero or more "name : value"
// members separated by exactly one comma, with no trailing comma
// permitted.
func (p *Parser) parseObject(input []byte, pos, parent, depth int) (int, int, error) {
	if depth > p.maxDepth {
		return pos, 0, p.errorf(pos, "maximum nesting depth %d exceeded", p.maxDepth)
	}
	p.tokens.parent = parent
	idx, ok := p.tokens.allocToken()
	if !ok {
		return pos, 0, ErrCapacity
	}
	p.tokens.At(idx).Kind = KindObject

	pos++ // consume '{'
	pos = skipWS(input, pos)
	p.tokens.parent = idx
	if pos < len(input) && input[pos] == '}' {
		pos++
	} else {
		for {
			pos = skipWS(input, pos)
			if pos >= len(input) || input[pos] != '"' {
				return pos, idx, p.errorf(pos, "expected string object key")
			}
			nameOff, nameLen, nameEscaped, newPos, err := p.scanString(input, pos)
			if err != nil {
				return newPos, idx, err
			}
			pos = skipWS(input, newPos)
			if pos >= len(input) || input[pos] != ':' {
				return pos, idx, p.errorf(pos, "expected ':' after object key")
			}
			pos++

			var memberIdx int
			pos, memberIdx, err = p.parseValue(input, pos, idx, depth+1)
			if err != nil {
				return pos, idx, err
			}
			m := p.tokens.At(memberIdx)
			m.NameOff, m.NameLen, m.NameEscaped = nameOff, nameLen, nameEscaped

			pos = skipWS(input, pos)
			if pos >= len(input) {
				return pos, idx, p.errorf(pos, "unexpected end of input in object")
			}
			switch input[pos] {
			case ',':
				pos++
				continue
			case '}':
				pos++
			default:
				return pos, idx, p.errorf(pos, "expected ',' or '}'")
			}
			break
		}
	}
	p.tokens.parent = parent
	tok := p.tokens.At(idx)
	tok.Next = p.tokens.Last() + 1
	return pos, idx, nil
}

// parseArray implements the ARRAY production analogously to parseObject
// but without member names.
func (p *Parser) parseArray(input []byte, pos, parent, depth int) (int, int, error) {
	if depth > p.maxDepth {
		return pos, 0, p.errorf(pos, "maximum nesting depth %d exceeded", p.maxDepth)
	}
	p.tokens.parent = parent
	idx, ok := p.tokens.allocToken()
	if !ok {
		return pos, 0, ErrCapacity
	}
	p.tokens.At(idx).Kind = KindArray

	pos++ // consume '['
	pos = skipWS(input, pos)
	p.tokens.parent = idx
	if pos < len(input) && input[pos] == ']' {
		pos++
	} else {
		for {
			var err error
			pos, _, err = p.parseValue(input, pos, idx, depth+1)
			if err != nil {
				return pos, idx, err
			}
			pos = skipWS(input, pos)
			if pos >= len(input) {
				return pos, idx, p.errorf(pos, "unexpected end of input in array")
			}
			switch input[pos] {
			case ',':
				pos++
				continue
			case ']':
				pos++
			default:
				return pos, idx, p.errorf(pos, "expected ',' or ']'")
			}
			break
		}
	}
	p.tokens.parent = parent
	tok := p.tokens.At(idx)
	tok.Next = p.tokens.Last() + 1
	return pos, idx, nil
}

// parseStringValue scans a STRING lexeme and allocates its token.
func (p *Parser) parseStringValue(input []byte, pos, parent int) (int, int, error) {
	off, length, escaped, newPos, err := p.scanString(input, pos)
	if err != nil {
		return newPos, 0, err
	}
	p.tokens.parent = parent
	idx, ok := p.tokens.allocToken()
	if !ok {
		return newPos, 0, ErrCapacity
	}
	tok := p.tokens.At(idx)
	tok.Kind = KindString
	tok.StrOff, tok.StrLen = off, length
	tok.ValueEscaped = escaped
	return newPos, idx, nil
}

// scanString implements the STRING grammar: pos must point
// at the opening quote. It rejects unescaped control bytes and any
// escape other than \" \\ \/ \b \f \n \r \t \uXXXX, without decoding
// \uXXXX (that happens later, on demand, in Unescape). It returns the
// byte range strictly between the quotes, whether any escape occurred,
// and the position just past the closing quote.
func (p *Parser) scanString(input []byte, pos int) (off, length int, escaped bool, newPos int, err error) {
	start := pos + 1
	i := start
	n := len(input)
	for {
		if i >= n {
			return 0, 0, false, i, p.errorf(i, "unterminated string")
		}
		c := input[i]
		switch {
		case c == '"':
			return start, i - start, escaped, i + 1, nil
		case c == '\\':
			escaped = true
			i++
			if i >= n {
				return 0, 0, false, i, p.errorf(i, "unterminated escape sequence")
			}
			switch input[i] {
			case '"', '\\', '/', 'b', 'f', 'n', 'r', 't':
				i++
			case 'u':
				i++
				for k := 0; k < 4; k++ {
					if i >= n || !isHexDigit(input[i]) {
						return 0, 0, false, i, p.errorf(i, "invalid \\u escape, expected 4 hex digits")
					}
					i++
				}
			default:
				return 0, 0, false, i, p.errorf(i, "invalid escape character %q", input[i])
			}
		case c < 0x20:
			return 0, 0, false, i, p.errorf(i, "control character in string literal")
		default:
			i++
		}
	}
}

// parseNumber implements the strict NUMBER grammar:
//
//	number = [ '-' ] int [ frac ] [ exp ]
//	int    = '0' | nonzero digit*
//	frac   = '.' digit+
//	exp    = ('e'|'E') ['+'|'-'] digit+
//
// Magnitudes are never validated: arbitrarily long literals parse
// successfully and are retained verbatim as the token's lexeme.
func (p *Parser) parseNumber(input []byte, pos, parent int) (int, int, error) {
	start := pos
	i := pos
	n := len(input)

	if i < n && input[i] == '-' {
		i++
	}
	if i >= n || !isDigit(input[i]) {
		return i, 0, p.errorf(i, "invalid number: expected digit")
	}
	if input[i] == '0' {
		i++
	} else {
		for i < n && isDigit(input[i]) {
			i++
		}
	}
	if i < n && input[i] == '.' {
		i++
		if i >= n || !isDigit(input[i]) {
			return i, 0, p.errorf(i, "invalid number: expected digit after '.'")
		}
		for i < n && isDigit(input[i]) {
			i++
		}
	}
	if i < n && (input[i] == 'e' || input[i] == 'E') {
		i++
		if i < n && (input[i] == '+' || input[i] == '-') {
			i++
		}
		if i >= n || !isDigit(input[i]) {
			return i, 0, p.errorf(i, "invalid number: expected digit in exponent")
		}
		for i < n && isDigit(input[i]) {
			i++
		}
	}

	p.tokens.parent = parent
	idx, ok := p.tokens.allocToken()
	if !ok {
		return i, 0, ErrCapacity
	}
	tok := p.tokens.At(idx)
	tok.Kind = KindNumber
	tok.StrOff, tok.StrLen = start, i-start
	return i, idx, nil
}
