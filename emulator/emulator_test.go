package emulator

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cellvm/cellvm/cpu"
)

func assemble(t *testing.T, source ...string) *cpu.Program {
	asm := &cpu.Assembler{}
	prog, err := asm.Parse(strings.NewReader(strings.Join(source, "\n")))
	assert.NoError(t, err)
	return prog
}

// doRun assembles and runs a program to completion, returning its console
// output.
func doRun(emu *Emulator, prog *cpu.Program, input []byte, t *testing.T) (output []byte) {
	assert := assert.New(t)

	err := emu.LoadProgram(prog, STACK_CAPACITY)
	assert.NoError(err)

	emu.Tape.Input = bytes.NewReader(input)
	tape_output := &bytes.Buffer{}
	emu.Tape.Output = tape_output

	_, err = emu.Run(math.MaxInt32)
	assert.NoError(err)

	output = tape_output.Bytes()
	return
}

func TestEmulator(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()

	assert.False(emu.Verbose)
	assert.Nil(emu.Cpu)
	assert.Equal(0, emu.LineNo())
	assert.Equal("", emu.State())
}

func TestEmulator_Load(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	prog := assemble(t, "halt")

	err := emu.Load(bytes.NewReader(prog.Binary()), 16)
	assert.NoError(err)
	assert.NotNil(emu.Cpu)
	assert.Equal(int32(16), emu.Cpu.StackCapacity())
	assert.Equal(cpu.STATUS_OK, emu.Cpu.Status())
}

func TestEmulator_Load_Misaligned(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	err := emu.Load(bytes.NewReader([]byte{1, 2, 3}), 16)
	assert.ErrorIs(err, cpu.ErrProgramSize)
}

func TestEmulator_Hello(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	prog := assemble(t,
		"movr a 'h'",
		"put a",
		"movr a 'i'",
		"put a",
		"halt",
	)

	output := doRun(emu, prog, nil, t)
	assert.Equal("hi", string(output))
	assert.Equal(cpu.STATUS_HALTED, emu.Cpu.Status())
}

func TestEmulator_Countdown(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	prog := assemble(t,
		"; print n down to 1, separated by spaces",
		"in c",
		"top: out c",
		"movr a ' '",
		"put a",
		"dec c",
		"loop top",
		"halt",
	)

	output := doRun(emu, prog, []byte("3"), t)
	assert.Equal("3 2 1 ", string(output))
}

func TestEmulator_Echo(t *testing.T) {
	assert := assert.New(t)

	// Copy input bytes to output until end of input. On end of input,
	// get clears register c and the loop falls through.
	emu := NewEmulator()
	prog := assemble(t,
		"movr c 1",
		"top: get a",
		"loop copy",
		"halt",
		"copy: put a",
		"movr c 1",
		"loop top",
	)

	output := doRun(emu, prog, []byte("abc"), t)
	assert.Equal("abc", string(output))
}

func TestEmulator_Sum(t *testing.T) {
	assert := assert.New(t)

	// Sum decimal inputs until end of input, then print the total.
	emu := NewEmulator()
	prog := assemble(t,
		"movr c 1",
		"top: in b",
		"loop accumulate",
		"out a",
		"halt",
		"accumulate: add b",
		"movr c 1",
		"loop top",
	)

	output := doRun(emu, prog, []byte("1 2 3 4"), t)
	assert.Equal("10", string(output))
}

func TestEmulator_RunError(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	prog := assemble(t,
		"nop",
		"div b",
	)

	err := emu.LoadProgram(prog, 16)
	assert.NoError(err)

	steps, err := emu.Run(math.MaxInt32)
	assert.Equal(int64(2), steps)

	var status *ErrStatus
	assert.ErrorAs(err, &status)
	assert.Equal(cpu.STATUS_DIV_BY_ZERO, status.Status)
	assert.Equal(2, status.LineNo)
}

func TestEmulator_RunHalted(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	prog := assemble(t, "halt")

	err := emu.LoadProgram(prog, 16)
	assert.NoError(err)

	steps, err := emu.Run(math.MaxInt32)
	assert.NoError(err)
	assert.Equal(int64(1), steps)
}

func TestEmulator_LineNo(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	prog := assemble(t,
		"movr a 1",
		"movr b 2",
		"halt",
	)

	err := emu.LoadProgram(prog, 16)
	assert.NoError(err)

	assert.Equal(1, emu.LineNo())
	assert.True(emu.Cpu.Step())
	assert.Equal(2, emu.LineNo())
	assert.True(emu.Cpu.Step())
	assert.Equal(3, emu.LineNo())
}

func TestEmulator_Reset(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	prog := assemble(t,
		"movr a 7",
		"push a",
		"halt",
	)

	err := emu.LoadProgram(prog, 16)
	assert.NoError(err)

	_, err = emu.Run(math.MaxInt32)
	assert.NoError(err)
	assert.Equal(int32(1), emu.Cpu.StackSize())

	emu.Reset()
	assert.Equal(cpu.STATUS_OK, emu.Cpu.Status())
	assert.Equal(int32(0), emu.Cpu.StackSize())

	_, err = emu.Run(math.MaxInt32)
	assert.NoError(err)
	assert.Equal(int32(7), emu.Cpu.GetRegister(cpu.REG_A))
}

func TestEmulator_Defines(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()

	defines := map[string]string{}
	for attr, val := range emu.Defines() {
		defines[attr] = val
	}

	assert.Equal("256", defines["STACK_CAPACITY"])
	assert.Equal("4", defines["CELL_SIZE"])
	assert.Equal("4096", defines["BLOCK_SIZE"])
}
