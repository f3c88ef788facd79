package cpu

import (
	"fmt"
	"iter"
	"maps"

	"github.com/cellvm/cellvm/io"
)

// Channel is the machine's console interface.
type Channel io.Channel

// Cpu is the machine state: the register file, latched status, instruction
// index, stack bookkeeping, and the exclusively owned memory buffer.
//
// A Cpu is not safe for concurrent use; callers must serialize all access.
type Cpu struct {
	Verbose bool // Set to enable verbose logging.

	register  []int32
	status    Status
	stackSize int32
	ip        int32

	memory      []int32
	stackBottom int32 // Highest stack cell index (bottom of the stack).
	stackTop    int32 // Lowest cell index the stack may ever occupy.

	console Channel
}

// NewCpu creates a CPU around a built memory image. stackBottom and
// stackCapacity describe the stack window reserved by NewMemory. registers
// selects the register file width: REGISTER_COUNT for the base machine, or
// REGISTER_COUNT_RESULT to add the host-visible result register.
func NewCpu(memory []int32, stackBottom int32, stackCapacity int32, registers int) (cpu *Cpu, err error) {
	if registers != REGISTER_COUNT && registers != REGISTER_COUNT_RESULT {
		err = ErrRegisterCount
		return
	}
	if stackCapacity < 0 || stackCapacity > int32(len(memory)) {
		err = ErrStackCapacity
		return
	}
	if stackBottom != int32(len(memory))-1 {
		err = ErrMemoryLayout
		return
	}

	cpu = &Cpu{
		register:    make([]int32, registers),
		memory:      memory,
		stackBottom: stackBottom,
		stackTop:    stackBottom - stackCapacity + 1,
	}

	return
}

// SetChannel attaches the console channel used by the in/get/out/put
// instructions. A nil channel reads as end-of-input and discards output.
func (cpu *Cpu) SetChannel(channel Channel) {
	cpu.console = channel
}

// GetRegister returns the value of a register. Passing an id outside the
// constructed register file is a caller contract violation and panics;
// program-supplied register operands are instead validated at runtime by the
// instruction handlers.
func (cpu *Cpu) GetRegister(reg Register) int32 {
	if reg < 0 || int(reg) >= len(cpu.register) {
		panic(fmt.Sprintf("cpu: register %v out of range", reg))
	}
	return cpu.register[reg]
}

// SetRegister sets the value of a register. The register id contract matches
// GetRegister.
func (cpu *Cpu) SetRegister(reg Register, value int32) {
	if reg < 0 || int(reg) >= len(cpu.register) {
		panic(fmt.Sprintf("cpu: register %v out of range", reg))
	}
	cpu.register[reg] = value
}

// Status returns the latched status.
func (cpu *Cpu) Status() Status {
	return cpu.status
}

// StackSize returns the count of cells currently pushed.
func (cpu *Cpu) StackSize() int32 {
	return cpu.stackSize
}

// StackCapacity returns the fixed capacity of the stack window, in cells.
func (cpu *Cpu) StackCapacity() int32 {
	return cpu.stackBottom - cpu.stackTop + 1
}

// Ip returns the instruction index.
func (cpu *Cpu) Ip() int32 {
	return cpu.ip
}

// String returns the current CPU state as a string.
func (cpu *Cpu) String() (text string) {
	for n, reg := range cpu.register {
		if n > 0 {
			text += ", "
		}
		text += fmt.Sprintf("%v: %d", Register(n), reg)
	}
	text += fmt.Sprintf("\nstack size: %d\n", cpu.stackSize)

	return
}

// Reset re-zeroes the registers, status, instruction index, and the used
// portion of the stack region. The program region and the memory layout are
// preserved, so the CPU is immediately runnable again.
func (cpu *Cpu) Reset() {
	clear(cpu.register)
	cpu.status = STATUS_OK
	cpu.ip = 0

	for n := cpu.stackBottom - cpu.stackSize + 1; n <= cpu.stackBottom; n++ {
		cpu.memory[n] = 0
	}
	cpu.stackSize = 0
}

// Destroy releases the owned memory. The CPU is invalid for further use.
func (cpu *Cpu) Destroy() {
	clear(cpu.register)
	cpu.status = STATUS_OK
	cpu.ip = 0
	cpu.stackSize = 0
	cpu.memory = nil
	cpu.console = nil
}

// Defines for the cpu
func Defines() iter.Seq2[string, string] {
	return maps.All(_cpu_defines)
}
