package jsontape

// Buffer is a small growable byte buffer used as unescape scratch: it
// supports appending bytes, exposes its unfilled tail as a slice so a
// caller can write into it directly, and can be trimmed back to the
// size actually filled. The unescape functions and the Value, Object and
// Array decoders use it as scratch space.
type Buffer struct {
	buf []byte
}

// NewBuffer wraps an existing slice (len 0 is fine) as growable scratch.
func NewBuffer(initial []byte) *Buffer {
	return &Buffer{buf: initial}
}

// Reset empties the buffer without releasing its backing array. It must
// not be called while a previously returned unescape range is still in
// use.
func (b *Buffer) Reset() { b.buf = b.buf[:0] }

// Len returns the number of filled bytes.
func (b *Buffer) Len() int { return len(b.buf) }

// Bytes returns the filled portion of the buffer.
func (b *Buffer) Bytes() []byte { return b.buf }

// Grow ensures at least n more bytes are available in the unfilled tail
// without changing Len.
func (b *Buffer) Grow(n int) {
	if cap(b.buf)-len(b.buf) >= n {
		return
	}
	grown := make([]byte, len(b.buf), 2*cap(b.buf)+n)
	copy(grown, b.buf)
	b.buf = grown
}

// AppendByte appends a single byte, growing as needed.
func (b *Buffer) AppendByte(c byte) {
	b.buf = append(b.buf, c)
}

// AppendBytes appends a slice, growing as needed.
func (b *Buffer) AppendBytes(p []byte) {
	b.buf = append(b.buf, p...)
}

// Trim cuts the buffer back to n filled bytes; it is the caller's way of
// discarding a partially written result after an unescape failure while
// keeping earlier results intact.
func (b *Buffer) Trim(n int) {
	b.buf = b.buf[:n]
}
