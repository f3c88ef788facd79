package io

import (
	"bufio"
	"fmt"
	"io"
)

// Tape provides sequential console I/O over an io.Reader and io.Writer pair,
// typically stdin and stdout. A nil Input reads as end-of-input; a nil
// Output discards writes.
type Tape struct {
	Input  io.Reader
	Output io.Writer

	br *bufio.Reader
}

var _ Channel = (*Tape)(nil)

// Rewind is not possible on a tape.
func (tc *Tape) Rewind() {
}

func (tc *Tape) reader() io.ByteScanner {
	if tc.br == nil {
		tc.br = bufio.NewReader(tc.Input)
	}
	return tc.br
}

// ReadInt scans a signed decimal integer from the input stream.
func (tc *Tape) ReadInt() (value int32, err error) {
	if tc.Input == nil {
		err = io.EOF
		return
	}
	return scanInt(tc.reader())
}

// ReadByte reads a single byte from the input stream.
func (tc *Tape) ReadByte() (value byte, err error) {
	if tc.Input == nil {
		err = io.EOF
		return
	}
	return tc.reader().ReadByte()
}

// WriteInt writes the decimal textual representation of value.
func (tc *Tape) WriteInt(value int32) (err error) {
	if tc.Output == nil {
		return
	}
	_, err = fmt.Fprintf(tc.Output, "%d", value)
	return
}

// WriteByte writes a single raw byte.
func (tc *Tape) WriteByte(value byte) (err error) {
	if tc.Output == nil {
		return
	}
	_, err = tc.Output.Write([]byte{value})
	return
}
