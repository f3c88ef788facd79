package cpu

import (
	"encoding/binary"
	"io"
)

const (
	CELL_SIZE  = 4    // Bytes per memory cell.
	BLOCK_SIZE = 4096 // Bytes per allocation block.
)

// Predefines exported to the assembler.
var _cpu_defines = map[string]string{
	"CELL_SIZE":  "4",
	"BLOCK_SIZE": "4096",
}

// NewMemory reads an entire program binary into a cell buffer and reserves a
// zero-filled stack region of stackCapacity cells at the high-address end.
// The buffer grows in BLOCK_SIZE increments; the program byte length must be
// a multiple of CELL_SIZE. Cells are decoded in the host's native byte
// order. Returns the memory and the stack-bottom index, which is always the
// last cell of the buffer.
func NewMemory(program io.Reader, stackCapacity int) (memory []int32, stackBottom int32, err error) {
	if stackCapacity < 0 {
		err = ErrStackCapacity
		return
	}

	capacity := BLOCK_SIZE
	buf := make([]byte, 0, capacity)
	for {
		if len(buf) == capacity {
			capacity += BLOCK_SIZE
			grown := make([]byte, len(buf), capacity)
			copy(grown, buf)
			buf = grown
		}
		var n int
		n, err = program.Read(buf[len(buf):capacity])
		buf = buf[:len(buf)+n]
		if err == io.EOF {
			err = nil
			break
		}
		if err != nil {
			return
		}
	}

	size := len(buf)
	if size%CELL_SIZE != 0 {
		err = ErrProgramSize
		return
	}

	// Reserve room for the stack, in whole blocks.
	for capacity-size < stackCapacity*CELL_SIZE {
		capacity += BLOCK_SIZE
	}

	memory = make([]int32, capacity/CELL_SIZE)
	for n := 0; n < size/CELL_SIZE; n++ {
		memory[n] = int32(binary.NativeEndian.Uint32(buf[n*CELL_SIZE:]))
	}

	stackBottom = int32(len(memory) - 1)
	return
}
