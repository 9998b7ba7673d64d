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

const (
	highSurrogateLo = 0xD800
	highSurrogateHi = 0xDBFF
	lowSurrogateLo  = 0xDC00
	lowSurrogateHi  = 0xDFFF
)

// UnescapeValue decodes token i's STRING value lexeme into dst. If
// ValueEscaped is false, the raw input range is returned unchanged (no
// copy). The returned (lo, hi) is the decoded range
// within dst.Bytes(); valid is false if a \u escape or surrogate pair
// was malformed, in which case dst still holds whatever was decoded
// before the failure.
func UnescapeValue(input []byte, tokens *Tokens, i int, dst *Buffer) (lo, hi int, valid bool) {
	tok := tokens.At(i)
	return unescapeRange(input, tok.StrOff, tok.StrLen, tok.ValueEscaped, dst)
}

// UnescapeName decodes token i's member-name lexeme the same way
// UnescapeValue decodes its STRING value.
func UnescapeName(input []byte, tokens *Tokens, i int, dst *Buffer) (lo, hi int, valid bool) {
	tok := tokens.At(i)
	return unescapeRange(input, tok.NameOff, tok.NameLen, tok.NameEscaped, dst)
}

// Unescape decodes an arbitrary lexeme (off, length, escaped) the same
// way UnescapeValue/UnescapeName do; it is the primitive both build on
// and is exported so callers holding a raw lexeme (rather than a token
// index) can still unescape it.
func Unescape(input []byte, off, length int, escaped bool, dst *Buffer) (lo, hi int, valid bool) {
	return unescapeRange(input, off, length, escaped, dst)
}

func unescapeRange(input []byte, off, length int, escaped bool, dst *Buffer) (lo, hi int, valid bool) {
	lexeme := input[off : off+length]
	if !escaped {
		return off, off + length, true
	}

	start := dst.Len()
	i := 0
	n := len(lexeme)
	for i < n {
		c := lexeme[i]
		if c != '\\' {
			dst.AppendByte(c)
			i++
			continue
		}
		i++
		if i >= n {
			return start, dst.Len(), false
		}
		switch lexeme[i] {
		case '"':
			dst.AppendByte('"')
			i++
		case '\\':
			dst.AppendByte('\\')
			i++
		case '/':
			dst.AppendByte('/')
			i++
		case 'b':
			dst.AppendByte(0x08)
			i++
		case 'f':
			dst.AppendByte(0x0C)
			i++
		case 'n':
			dst.AppendByte(0x0A)
			i++
		case 'r':
			dst.AppendByte(0x0D)
			i++
		case 't':
			dst.AppendByte(0x09)
			i++
		case 'u':
			i++
			u, ok := readHex4(lexeme, i)
			if !ok {
				return start, dst.Len(), false
			}
			i += 4
			scalar := rune(u)
			if u >= highSurrogateLo && u <= highSurrogateHi {
				if i+1 >= n || lexeme[i] != '\\' || lexeme[i+1] != 'u' {
					return start, dst.Len(), false
				}
				v, ok := readHex4(lexeme, i+2)
				if !ok || v < lowSurrogateLo || v > lowSurrogateHi {
					return start, dst.Len(), false
				}
				i += 6
				scalar = 0x10000 + (rune(u-highSurrogateLo) << 10) + rune(v-lowSurrogateLo)
			} else if u >= lowSurrogateLo && u <= lowSurrogateHi {
				return start, dst.Len(), false
			}
			appendUTF8(dst, scalar)
		default:
			return start, dst.Len(), false
		}
	}
	return start, dst.Len(), true
}

// readHex4 parses exactly four hex digits at lexeme[pos:pos+4].
func readHex4(lexeme []byte, pos int) (uint32, bool) {
	if pos+4 > len(lexeme) {
		return 0, false
	}
	var v uint32
	for k := 0; k < 4; k++ {
		c := lexeme[pos+k]
		v <<= 4
		switch {
		case c >= '0' && c <= '9':
			v |= uint32(c - '0')
		case c >= 'a' && c <= 'f':
			v |= uint32(c-'a') + 10
		case c >= 'A' && c <= 'F':
			v |= uint32(c-'A') + 10
		default:
			return 0, false
		}
	}
	return v, true
}

// appendUTF8 encodes scalar as 1-4 UTF-8 bytes and appends it to dst.
func appendUTF8(dst *Buffer, scalar rune) {
	switch {
	case scalar < 0x80:
		dst.AppendByte(byte(scalar))
	case scalar < 0x800:
		dst.AppendByte(byte(0xC0 | (scalar >> 6)))
		dst.AppendByte(byte(0x80 | (scalar & 0x3F)))
	case scalar < 0x10000:
		dst.AppendByte(byte(0xE0 | (scalar >> 12)))
		dst.AppendByte(byte(0x80 | ((scalar >> 6) & 0x3F)))
		dst.AppendByte(byte(0x80 | (scalar & 0x3F)))
	default:
		dst.AppendByte(byte(0xF0 | (scalar >> 18)))
		dst.AppendByte(byte(0x80 | ((scalar >> 12) & 0x3F)))
		dst.AppendByte(byte(0x80 | ((scalar >> 6) & 0x3F)))
		dst.AppendByte(byte(0x80 | (scalar & 0x3F)))
	}
}
