// Package io provides console channel implementations for the cellvm machine.
// A channel carries both of the machine's input forms (decimal integers for
// the 'in' instruction, raw bytes for 'get') and both of its output forms
// (decimal text for 'out', raw bytes for 'put') over a single stream pair.
package io

// Channel defines the interface for the machine's console.
type Channel interface {
	// Rewind resets the channel to its initial state, where possible.
	Rewind()
	// ReadInt scans a signed decimal integer from the input.
	// Returns io.EOF at end of input, ErrMalformedInt when the next
	// token is not an integer.
	ReadInt() (int32, error)
	// ReadByte reads a single byte from the input.
	ReadByte() (byte, error)
	// WriteInt writes the decimal textual representation of a value.
	WriteInt(value int32) error
	// WriteByte writes a single raw byte.
	WriteByte(value byte) error
}
