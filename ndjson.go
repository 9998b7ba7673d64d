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
	"bufio"
	"bytes"
	"fmt"
	"io"
)

const ndjsonInitialLineSize = 64 << 10

// ParseAll parses a stream of newline-delimited JSON documents from r,
// reusing this Parser's token store across documents the same way a
// single Parser is reused across repeated Parse calls. Blank
// (whitespace-only) lines are skipped. fn is called once per
// successfully parsed document, in document order, with p itself so fn
// can read Root()/Tokens()/Input() as usual; fn must not retain
// p.Input() or anything derived from it past its own call, since the
// next line's Parse overwrites the token store and reuses the read
// buffer. A non-nil error from fn stops the stream immediately and is
// returned verbatim. ParseAll returns nil once the stream reaches
// io.EOF, or the first read/parse error encountered.
//
// Modeled on ParseNDStream's single-reused-context-per-stream design,
// but synchronous rather than channel-based: a caller wanting
// concurrent consumption runs ParseAll in its own goroutine and hands
// results off through its own channel.
func (p *Parser) ParseAll(r io.Reader, fn func(*Parser) error) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, ndjsonInitialLineSize), bufio.MaxScanTokenSize)
	line := 0
	for scanner.Scan() {
		line++
		text := scanner.Bytes()
		if len(bytes.TrimSpace(text)) == 0 {
			continue
		}
		if err := p.Parse(text); err != nil {
			return fmt.Errorf("jsontape: line %d: %w", line, err)
		}
		if err := fn(p); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("jsontape: reading ndjson stream: %w", err)
	}
	return nil
}
