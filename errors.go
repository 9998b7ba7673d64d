package jsontape

import (
	"errors"
	"fmt"
)

// ErrUnsupportedInput is returned by Parse when the input is encoded in
// something other than UTF-8 with an optional leading BOM (a UTF-16 or
// UTF-32 byte order mark is detected before any grammar byte is read).
var ErrUnsupportedInput = errors.New("jsontape: input is not UTF-8")

// SyntaxError reports the byte offset of the first grammar violation
// encountered while lexing: a message plus an offset into the original
// input.
type SyntaxError struct {
	Offset int
	Msg    string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("jsontape: syntax error at offset %d: %s", e.Offset, e.Msg)
}

func (p *Parser) errorf(offset int, format string, args ...interface{}) error {
	return &SyntaxError{Offset: offset, Msg: fmt.Sprintf(format, args...)}
}
