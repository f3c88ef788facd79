package cpu

import (
	"encoding/binary"
	"iter"
)

// Line represents a line of assembled source with its cell placement.
type Line struct {
	LineNo    int      // Source line number.
	Ip        int      // Cell index of the first emitted cell.
	Words     []string // Source words, after substitutions.
	Cells     []int32  // Emitted cells.
	LinkLabel string   // Label to link into the last cell, when set.
}

// Program is an assembled listing.
type Program struct {
	Lines []Line
}

// Debug locates the source line covering an instruction index.
type Debug struct {
	*Line
	Index int
}

// Debug returns the source line record covering the cell at ip.
func (prog *Program) Debug(ip int32) (dbg Debug) {
	for n, line := range prog.Lines {
		if ip >= int32(line.Ip) && ip < int32(line.Ip)+int32(len(line.Cells)) {
			dbg = Debug{
				Line:  &prog.Lines[n],
				Index: int(ip - int32(line.Ip)),
			}
			break
		}
	}

	return
}

// Cells iterates the program image in cell order.
func (prog *Program) Cells() iter.Seq2[int, int32] {
	return func(yield func(ip int, cell int32) bool) {
		for _, line := range prog.Lines {
			for n, cell := range line.Cells {
				if !yield(line.Ip+n, cell) {
					return
				}
			}
		}
	}
}

// Binary renders the program as the native-endian byte image accepted by
// NewMemory.
func (prog *Program) Binary() (image []byte) {
	for _, cell := range prog.Cells() {
		image = binary.NativeEndian.AppendUint32(image, uint32(cell))
	}

	return
}
