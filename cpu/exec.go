package cpu

import (
	"errors"
	"log"
	"math"

	"github.com/cellvm/cellvm/io"
)

// Step executes a single instruction cycle. It returns true when the
// instruction completed with the CPU still runnable, false when no progress
// was made: the CPU was already stopped, the instruction index left the
// program region, the fetched cell is not a valid opcode, or the handler
// latched an error status.
func (cpu *Cpu) Step() (progressed bool) {
	if cpu.status != STATUS_OK {
		return false
	}

	if cpu.ip < 0 || cpu.ip > cpu.stackTop-1 {
		cpu.status = STATUS_INVALID_ADDRESS
		return false
	}

	cell := cpu.memory[cpu.ip]
	if cell < int32(OP_NOP) || cell > int32(OP_POP) {
		cpu.status = STATUS_ILLEGAL_INSTRUCTION
		return false
	}

	if cpu.Verbose {
		log.Printf("cpu: %05d: %v", cpu.ip, Opcode(cell))
	}

	cpu.execute(Opcode(cell))

	return cpu.status == STATUS_OK
}

// Run repeatedly invokes Step until the CPU stops or maxSteps instruction
// cycles have been attempted. It returns the count of attempted cycles,
// including the cycle that stopped the CPU, and the terminal status.
func (cpu *Cpu) Run(maxSteps int64) (steps int64, status Status) {
	if cpu.status != STATUS_OK {
		return 0, cpu.status
	}

	for cpu.status == STATUS_OK && steps < maxSteps {
		cpu.Step()
		steps++
	}

	return steps, cpu.status
}

// fetchCell reads the next operand cell, advancing the instruction index
// onto it. Reading past the end of memory latches STATUS_INVALID_ADDRESS.
func (cpu *Cpu) fetchCell() (value int32, ok bool) {
	next := cpu.ip + 1
	if next < 0 || next >= int32(len(cpu.memory)) {
		cpu.status = STATUS_INVALID_ADDRESS
		return
	}

	cpu.ip = next
	value = cpu.memory[next]
	ok = true
	return
}

// fetchRegister reads the next operand cell and validates it as a register
// id. Register operands are program data; any value outside a..d latches
// STATUS_ILLEGAL_OPERAND.
func (cpu *Cpu) fetchRegister() (reg Register, ok bool) {
	value, ok := cpu.fetchCell()
	if !ok {
		return
	}

	if value < int32(REG_A) || value > int32(REG_D) {
		cpu.status = STATUS_ILLEGAL_OPERAND
		ok = false
		return
	}

	reg = Register(value)
	return
}

// inStack validates a derived stack index against the currently used stack
// window, latching STATUS_INVALID_STACK_OPERATION if it lies outside.
func (cpu *Cpu) inStack(index int32) bool {
	if index >= cpu.stackBottom-cpu.stackSize+1 && index <= cpu.stackBottom {
		return true
	}

	cpu.status = STATUS_INVALID_STACK_OPERATION
	return false
}

// stackTarget reads the register and offset operands shared by load and
// store, and derives the effective stack index from register d, the offset,
// and the current stack occupancy.
func (cpu *Cpu) stackTarget() (reg Register, index int32, ok bool) {
	reg, ok = cpu.fetchRegister()
	if !ok {
		return
	}

	offset, ok := cpu.fetchCell()
	if !ok {
		return
	}

	index = cpu.stackBottom - cpu.stackSize + cpu.register[REG_D] + offset + 1
	ok = cpu.inStack(index)
	return
}

// handleEof applies the end-of-input convention shared by in and get:
// register c is cleared, the target register is set to -1, and execution
// continues with no error status.
func (cpu *Cpu) handleEof(reg Register) {
	cpu.register[REG_C] = 0
	cpu.register[reg] = -1
	cpu.ip++
}

// execute dispatches one fetched opcode. Each arm validates its own
// operands before mutating state; on an error latch the instruction index
// is left mid-instruction, which is harmless because Step refuses to fetch
// while the status is not ok.
func (cpu *Cpu) execute(op Opcode) {
	switch op {
	case OP_NOP:
		cpu.ip++

	case OP_HALT:
		cpu.status = STATUS_HALTED

	case OP_ADD:
		reg, ok := cpu.fetchRegister()
		if !ok {
			return
		}
		cpu.register[REG_A] += cpu.register[reg]
		cpu.ip++

	case OP_SUB:
		reg, ok := cpu.fetchRegister()
		if !ok {
			return
		}
		cpu.register[REG_A] -= cpu.register[reg]
		cpu.ip++

	case OP_MUL:
		reg, ok := cpu.fetchRegister()
		if !ok {
			return
		}
		cpu.register[REG_A] *= cpu.register[reg]
		cpu.ip++

	case OP_DIV:
		reg, ok := cpu.fetchRegister()
		if !ok {
			return
		}
		divisor := cpu.register[reg]
		if divisor == 0 {
			cpu.status = STATUS_DIV_BY_ZERO
			return
		}
		if cpu.register[REG_A] == math.MinInt32 && divisor == -1 {
			// Quotient wraps; Go would panic on the overflow.
			cpu.register[REG_A] = math.MinInt32
		} else {
			cpu.register[REG_A] /= divisor
		}
		cpu.ip++

	case OP_INC:
		reg, ok := cpu.fetchRegister()
		if !ok {
			return
		}
		cpu.register[reg]++
		cpu.ip++

	case OP_DEC:
		reg, ok := cpu.fetchRegister()
		if !ok {
			return
		}
		cpu.register[reg]--
		cpu.ip++

	case OP_LOOP:
		if cpu.register[REG_C] == 0 {
			cpu.ip += 2
			return
		}
		target, ok := cpu.fetchCell()
		if !ok {
			return
		}
		// Unconditional jump with no bounds pre-check; an out-of-range
		// target is caught by the next Step as an invalid address.
		cpu.ip = target

	case OP_MOVR:
		reg, ok := cpu.fetchRegister()
		if !ok {
			return
		}
		value, ok := cpu.fetchCell()
		if !ok {
			return
		}
		cpu.register[reg] = value
		cpu.ip++

	case OP_LOAD:
		reg, index, ok := cpu.stackTarget()
		if !ok {
			return
		}
		cpu.register[reg] = cpu.memory[index]
		cpu.ip++

	case OP_STORE:
		reg, index, ok := cpu.stackTarget()
		if !ok {
			return
		}
		cpu.memory[index] = cpu.register[reg]
		cpu.ip++

	case OP_IN:
		reg, ok := cpu.fetchRegister()
		if !ok {
			return
		}
		if cpu.console == nil {
			cpu.handleEof(reg)
			return
		}
		value, err := cpu.console.ReadInt()
		if errors.Is(err, io.ErrMalformedInt) {
			cpu.status = STATUS_IO_ERROR
			return
		}
		if err != nil {
			cpu.handleEof(reg)
			return
		}
		cpu.register[reg] = value
		cpu.ip++

	case OP_GET:
		reg, ok := cpu.fetchRegister()
		if !ok {
			return
		}
		if cpu.console == nil {
			cpu.handleEof(reg)
			return
		}
		value, err := cpu.console.ReadByte()
		if err != nil {
			cpu.handleEof(reg)
			return
		}
		cpu.register[reg] = int32(value)
		cpu.ip++

	case OP_OUT:
		reg, ok := cpu.fetchRegister()
		if !ok {
			return
		}
		if cpu.console != nil {
			cpu.console.WriteInt(cpu.register[reg])
		}
		cpu.ip++

	case OP_PUT:
		reg, ok := cpu.fetchRegister()
		if !ok {
			return
		}
		value := cpu.register[reg]
		if value < 0 || value > 255 {
			cpu.status = STATUS_ILLEGAL_OPERAND
			return
		}
		if cpu.console != nil {
			cpu.console.WriteByte(byte(value))
		}
		cpu.ip++

	case OP_SWAP:
		reg1, ok := cpu.fetchRegister()
		if !ok {
			return
		}
		reg2, ok := cpu.fetchRegister()
		if !ok {
			return
		}
		cpu.register[reg1], cpu.register[reg2] = cpu.register[reg2], cpu.register[reg1]
		cpu.ip++

	case OP_PUSH:
		reg, ok := cpu.fetchRegister()
		if !ok {
			return
		}
		if cpu.stackSize == cpu.StackCapacity() {
			cpu.status = STATUS_INVALID_STACK_OPERATION
			return
		}
		cpu.memory[cpu.stackBottom-cpu.stackSize] = cpu.register[reg]
		cpu.stackSize++
		cpu.ip++

	case OP_POP:
		reg, ok := cpu.fetchRegister()
		if !ok {
			return
		}
		if cpu.stackSize == 0 {
			cpu.status = STATUS_INVALID_STACK_OPERATION
			return
		}
		cpu.stackSize--
		index := cpu.stackBottom - cpu.stackSize
		cpu.register[reg] = cpu.memory[index]
		cpu.memory[index] = 0
		cpu.ip++
	}
}
