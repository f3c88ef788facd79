package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// newTestCpu builds a CPU whose program region holds exactly the given
// cells, followed by a stack window of stackCapacity cells.
func newTestCpu(t *testing.T, program []int32, stackCapacity int32) *Cpu {
	memory := make([]int32, len(program)+int(stackCapacity))
	copy(memory, program)

	cpu, err := NewCpu(memory, int32(len(memory)-1), stackCapacity, REGISTER_COUNT)
	assert.NoError(t, err)

	return cpu
}

func TestNewCpu(t *testing.T) {
	assert := assert.New(t)

	cpu := newTestCpu(t, []int32{int32(OP_HALT)}, 8)

	assert.Equal(STATUS_OK, cpu.Status())
	assert.Equal(int32(0), cpu.StackSize())
	assert.Equal(int32(8), cpu.StackCapacity())
	assert.Equal(int32(0), cpu.Ip())
	for reg := REG_A; reg <= REG_D; reg++ {
		assert.Equal(int32(0), cpu.GetRegister(reg))
	}
}

func TestNewCpu_BadRegisterCount(t *testing.T) {
	assert := assert.New(t)

	memory := make([]int32, 16)
	_, err := NewCpu(memory, 15, 8, 3)
	assert.ErrorIs(err, ErrRegisterCount)

	_, err = NewCpu(memory, 15, 8, 6)
	assert.ErrorIs(err, ErrRegisterCount)
}

func TestNewCpu_BadLayout(t *testing.T) {
	assert := assert.New(t)

	memory := make([]int32, 16)

	_, err := NewCpu(memory, 14, 8, REGISTER_COUNT)
	assert.ErrorIs(err, ErrMemoryLayout)

	_, err = NewCpu(memory, 15, 17, REGISTER_COUNT)
	assert.ErrorIs(err, ErrStackCapacity)

	_, err = NewCpu(memory, 15, -1, REGISTER_COUNT)
	assert.ErrorIs(err, ErrStackCapacity)
}

func TestCpu_Registers(t *testing.T) {
	assert := assert.New(t)

	cpu := newTestCpu(t, []int32{int32(OP_HALT)}, 8)

	cpu.SetRegister(REG_A, 42)
	cpu.SetRegister(REG_D, -7)
	assert.Equal(int32(42), cpu.GetRegister(REG_A))
	assert.Equal(int32(-7), cpu.GetRegister(REG_D))

	assert.Panics(func() { cpu.GetRegister(REG_RESULT) })
	assert.Panics(func() { cpu.SetRegister(Register(-1), 0) })
}

func TestCpu_ResultRegister(t *testing.T) {
	assert := assert.New(t)

	memory := make([]int32, 16)
	cpu, err := NewCpu(memory, 15, 8, REGISTER_COUNT_RESULT)
	assert.NoError(err)

	cpu.SetRegister(REG_RESULT, 99)
	assert.Equal(int32(99), cpu.GetRegister(REG_RESULT))

	// The result register is never a valid program operand.
	cpu.memory[0] = int32(OP_INC)
	cpu.memory[1] = int32(REG_RESULT)
	assert.False(cpu.Step())
	assert.Equal(STATUS_ILLEGAL_OPERAND, cpu.Status())
}

func TestCpu_Reset(t *testing.T) {
	assert := assert.New(t)

	program := []int32{
		int32(OP_MOVR), int32(REG_A), 5,
		int32(OP_PUSH), int32(REG_A),
		int32(OP_HALT),
	}
	cpu := newTestCpu(t, program, 8)

	steps, status := cpu.Run(100)
	assert.Equal(int64(3), steps)
	assert.Equal(STATUS_HALTED, status)
	assert.Equal(int32(1), cpu.StackSize())

	used := cpu.stackBottom
	assert.Equal(int32(5), cpu.memory[used])

	cpu.Reset()
	assert.Equal(STATUS_OK, cpu.Status())
	assert.Equal(int32(0), cpu.StackSize())
	assert.Equal(int32(0), cpu.Ip())
	assert.Equal(int32(0), cpu.GetRegister(REG_A))
	assert.Equal(int32(0), cpu.memory[used])

	// The memory layout survives reset; the program runs again.
	steps, status = cpu.Run(100)
	assert.Equal(int64(3), steps)
	assert.Equal(STATUS_HALTED, status)
	assert.Equal(int32(1), cpu.StackSize())
}

func TestCpu_Destroy(t *testing.T) {
	assert := assert.New(t)

	cpu := newTestCpu(t, []int32{int32(OP_HALT)}, 8)
	cpu.Destroy()
	assert.Nil(cpu.memory)
}

func TestCpu_String(t *testing.T) {
	assert := assert.New(t)

	cpu := newTestCpu(t, []int32{int32(OP_HALT)}, 8)
	cpu.SetRegister(REG_B, 3)

	text := cpu.String()
	assert.Contains(text, "b: 3")
	assert.Contains(text, "stack size: 0")
}
