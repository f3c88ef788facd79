package cpu

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProgram_Debug(t *testing.T) {
	assert := assert.New(t)

	prog := &Program{
		Lines: []Line{
			{LineNo: 1, Ip: 0, Words: []string{"movr", "a", "5"},
				Cells: []int32{int32(OP_MOVR), int32(REG_A), 5}},
			{LineNo: 2, Ip: 3, Words: []string{"out", "a"},
				Cells: []int32{int32(OP_OUT), int32(REG_A)}},
			{LineNo: 3, Ip: 5, Words: []string{"halt"},
				Cells: []int32{int32(OP_HALT)}},
		},
	}

	dbg := prog.Debug(0)
	assert.NotNil(dbg.Line)
	assert.Equal(1, dbg.Line.LineNo)
	assert.Equal(0, dbg.Index)

	dbg = prog.Debug(2)
	assert.NotNil(dbg.Line)
	assert.Equal(1, dbg.Line.LineNo)
	assert.Equal(2, dbg.Index)

	dbg = prog.Debug(4)
	assert.NotNil(dbg.Line)
	assert.Equal(2, dbg.Line.LineNo)
	assert.Equal(1, dbg.Index)

	dbg = prog.Debug(5)
	assert.NotNil(dbg.Line)
	assert.Equal(3, dbg.Line.LineNo)
}

func TestProgram_Debug_NotFound(t *testing.T) {
	assert := assert.New(t)

	prog := &Program{
		Lines: []Line{
			{LineNo: 1, Ip: 0, Words: []string{"halt"},
				Cells: []int32{int32(OP_HALT)}},
		},
	}

	dbg := prog.Debug(10)
	assert.Nil(dbg.Line)
	assert.Equal(0, dbg.Index)
}

func TestProgram_Binary(t *testing.T) {
	assert := assert.New(t)

	prog := &Program{
		Lines: []Line{
			{LineNo: 1, Ip: 0, Cells: []int32{int32(OP_MOVR), int32(REG_A), -5}},
			{LineNo: 2, Ip: 3, Cells: []int32{int32(OP_HALT)}},
		},
	}

	image := prog.Binary()
	assert.Equal(4*CELL_SIZE, len(image))

	// The image loads back into an identical program region.
	memory, _, err := NewMemory(bytes.NewReader(image), 16)
	assert.NoError(err)
	assert.Equal([]int32{int32(OP_MOVR), int32(REG_A), -5, int32(OP_HALT)}, memory[:4])
}

func TestProgram_Cells(t *testing.T) {
	assert := assert.New(t)

	prog := &Program{
		Lines: []Line{
			{LineNo: 1, Ip: 0, Cells: []int32{int32(OP_NOP)}},
			{LineNo: 2, Ip: 1, Cells: []int32{int32(OP_PUT), int32(REG_B)}},
		},
	}

	var ips []int
	var cells []int32
	for ip, cell := range prog.Cells() {
		ips = append(ips, ip)
		cells = append(cells, cell)
	}
	assert.Equal([]int{0, 1, 2}, ips)
	assert.Equal([]int32{int32(OP_NOP), int32(OP_PUT), int32(REG_B)}, cells)
}
