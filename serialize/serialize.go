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

// Package serialize persists a jsontape.Tokens store and the input it was
// built from to a single compact block, and reloads it without re-running
// the parser. Uses the same
// versioned block-of-compressed-blocks layout and CompressMode knobs, but
// over a Token array plus raw input bytes instead of a uint64 tape.
package serialize

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/klauspost/compress/s2"
	"github.com/klauspost/compress/zstd"

	tokenizer "github.com/strict-json/tokenizer"
)

const serializedVersion = 1

// CompressMode selects how the tokens and input blocks are compressed.
type CompressMode uint8

const (
	// CompressNone stores both blocks verbatim.
	CompressNone CompressMode = iota
	// CompressFast applies S2, a low-latency choice.
	CompressFast
	// CompressBest applies zstd, a high-ratio choice.
	CompressBest
)

const (
	blockUncompressed byte = 0
	blockS2           byte = 1
	blockZstd         byte = 2
)

// Serializer turns a Tokens store into a single byte slice and back. A
// Serializer may be reused across calls but is not safe for concurrent use.
type Serializer struct {
	mode CompressMode
}

// NewSerializer creates a Serializer using CompressFast, a reasonable
// default balance of speed and ratio.
func NewSerializer() *Serializer {
	return &Serializer{mode: CompressFast}
}

// CompressMode changes the compression applied by subsequent Serialize calls.
func (s *Serializer) CompressMode(m CompressMode) { s.mode = m }

func (s *Serializer) blockTag() byte {
	switch s.mode {
	case CompressNone:
		return blockUncompressed
	case CompressFast:
		return blockS2
	case CompressBest:
		return blockZstd
	default:
		panic("serialize: unknown compression mode")
	}
}

func encodeBlock(tag byte, raw []byte) ([]byte, error) {
	switch tag {
	case blockUncompressed:
		return raw, nil
	case blockS2:
		return s2.Encode(nil, raw), nil
	case blockZstd:
		enc, err := zstd.NewWriter(nil)
		if err != nil {
			return nil, err
		}
		out := enc.EncodeAll(raw, nil)
		enc.Close()
		return out, nil
	default:
		return nil, fmt.Errorf("serialize: unknown block tag %d", tag)
	}
}

func decodeBlock(tag byte, raw []byte) ([]byte, error) {
	switch tag {
	case blockUncompressed:
		return raw, nil
	case blockS2:
		return s2.Decode(nil, raw)
	case blockZstd:
		dec, err := zstd.NewReader(nil)
		if err != nil {
			return nil, err
		}
		defer dec.Close()
		return dec.DecodeAll(raw, nil)
	default:
		return nil, fmt.Errorf("serialize: unknown block tag %d", tag)
	}
}

func appendVarint(dst []byte, v uint64) []byte {
	var tmp [binary.MaxVarintLen64]byte
	n := binary.PutUvarint(tmp[:], v)
	return append(dst, tmp[:n]...)
}

func writeBlock(dst []byte, tag byte, raw []byte) ([]byte, error) {
	enc, err := encodeBlock(tag, raw)
	if err != nil {
		return nil, err
	}
	dst = append(dst, tag)
	dst = appendVarint(dst, uint64(len(raw)))
	dst = appendVarint(dst, uint64(len(enc)))
	dst = append(dst, enc...)
	return dst, nil
}

func readBlock(r *bytes.Reader) ([]byte, error) {
	tag, err := r.ReadByte()
	if err != nil {
		return nil, err
	}
	rawLen, err := binary.ReadUvarint(r)
	if err != nil {
		return nil, err
	}
	encLen, err := binary.ReadUvarint(r)
	if err != nil {
		return nil, err
	}
	enc := make([]byte, encLen)
	if _, err := io.ReadFull(r, enc); err != nil {
		return nil, err
	}
	raw, err := decodeBlock(tag, enc)
	if err != nil {
		return nil, err
	}
	if uint64(len(raw)) != rawLen {
		return nil, errors.New("serialize: decompressed size mismatch")
	}
	return raw, nil
}

// tokenWireSize is the fixed on-wire size of one Token record: Kind (1) +
// NameOff/NameLen (varint-free fixed 8 bytes each for simplicity) + the rest
// as fixed-width little-endian fields. Kept fixed-width (unlike the varint
// framing used for block sizes) so tokens can be read back with a single
// bulk decode pass.
const tokenWireSize = 1 + 8 + 8 + 1 + 8 + 1 + 8 + 8 + 1 + 8 + 8

func putUint64(dst []byte, v uint64) { binary.LittleEndian.PutUint64(dst, v) }
func getUint64(src []byte) uint64    { return binary.LittleEndian.Uint64(src) }

func putBool(dst []byte, v bool) {
	if v {
		dst[0] = 1
	} else {
		dst[0] = 0
	}
}

// encodeTokens flattens every token (including the index-0 sentinel) into a
// fixed-width record array.
func encodeTokens(toks *tokenizer.Tokens) []byte {
	n := toks.Last() + 1
	out := make([]byte, n*tokenWireSize)
	for i := 0; i < n; i++ {
		tok := toks.At(i)
		rec := out[i*tokenWireSize:]
		rec[0] = byte(tok.Kind)
		putUint64(rec[1:], uint64(tok.NameOff))
		putUint64(rec[9:], uint64(tok.NameLen))
		putBool(rec[17:], tok.NameEscaped)
		putUint64(rec[18:], uint64(tok.Parent))
		putBool(rec[26:], tok.Boolean)
		putUint64(rec[27:], uint64(tok.StrOff))
		putUint64(rec[35:], uint64(tok.StrLen))
		putBool(rec[43:], tok.ValueEscaped)
		putUint64(rec[44:], uint64(tok.Children))
		putUint64(rec[52:], uint64(tok.Next))
	}
	return out
}

// decodeTokens rebuilds a fixed-capacity Tokens store from a flattened
// record array previously produced by encodeTokens.
func decodeTokens(raw []byte) (*tokenizer.Tokens, error) {
	if len(raw)%tokenWireSize != 0 {
		return nil, errors.New("serialize: corrupt token block")
	}
	n := len(raw) / tokenWireSize
	if n == 0 {
		return tokenizer.NewFixedTokens(0), nil
	}
	toks := tokenizer.NewFixedTokens(n - 1)
	for i := 0; i < n; i++ {
		rec := raw[i*tokenWireSize:]
		idx, ok := toks.AllocRaw()
		if !ok || idx != i {
			return nil, errors.New("serialize: token index mismatch on reload")
		}
		tok := toks.At(idx)
		tok.Kind = tokenizer.Kind(rec[0])
		tok.NameOff = int(getUint64(rec[1:]))
		tok.NameLen = int(getUint64(rec[9:]))
		tok.NameEscaped = rec[17] != 0
		tok.Parent = int(getUint64(rec[18:]))
		tok.Boolean = rec[26] != 0
		tok.StrOff = int(getUint64(rec[27:]))
		tok.StrLen = int(getUint64(rec[35:]))
		tok.ValueEscaped = rec[43] != 0
		tok.Children = int(getUint64(rec[44:]))
		tok.Next = int(getUint64(rec[52:]))
	}
	return toks, nil
}

// Serialize appends the serialized form of toks and input to dst and
// returns the result. Layout: version byte, tokens block, input block -
// the same "header then sequence of length-prefixed compressed blocks"
// shape used throughout, simplified to two blocks since a token array
// has no separate tag/value stream to split.
func (s *Serializer) Serialize(dst []byte, toks *tokenizer.Tokens, input []byte) ([]byte, error) {
	dst = append(dst, serializedVersion)
	tag := s.blockTag()
	dst, err := writeBlock(dst, tag, encodeTokens(toks))
	if err != nil {
		return nil, err
	}
	dst, err = writeBlock(dst, tag, input)
	if err != nil {
		return nil, err
	}
	return dst, nil
}

// Deserialize reverses Serialize, returning a freshly rebuilt Tokens store
// and the input bytes it was parsed from (a copy, since the block may have
// been decompressed into a scratch buffer).
func (s *Serializer) Deserialize(src []byte) (*tokenizer.Tokens, []byte, error) {
	if len(src) == 0 || src[0] != serializedVersion {
		return nil, nil, fmt.Errorf("serialize: unsupported version")
	}
	r := bytes.NewReader(src[1:])
	tokRaw, err := readBlock(r)
	if err != nil {
		return nil, nil, fmt.Errorf("serialize: reading tokens block: %w", err)
	}
	inputRaw, err := readBlock(r)
	if err != nil {
		return nil, nil, fmt.Errorf("serialize: reading input block: %w", err)
	}
	toks, err := decodeTokens(tokRaw)
	if err != nil {
		return nil, nil, err
	}
	return toks, inputRaw, nil
}
