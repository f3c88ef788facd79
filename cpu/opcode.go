package cpu

import (
	"fmt"
)

// Register is a register id, as it appears in program cells.
type Register int32

const (
	REG_A = Register(0) // a
	REG_B = Register(1) // b
	REG_C = Register(2) // c
	REG_D = Register(3) // d

	// REG_RESULT is only present on a CPU constructed with
	// REGISTER_COUNT_RESULT and is never a valid program operand.
	REG_RESULT = Register(4) // result
)

// Register file widths accepted by NewCpu.
const (
	REGISTER_COUNT        = 4 // a..d
	REGISTER_COUNT_RESULT = 5 // a..d plus result
)

var registerNames = [REGISTER_COUNT_RESULT]string{"a", "b", "c", "d", "result"}

// registerMap maps assembler register names to ids.
var registerMap = map[string]Register{
	"a": REG_A,
	"b": REG_B,
	"c": REG_C,
	"d": REG_D,
}

// String returns the assembly name of the register.
func (reg Register) String() string {
	if reg < 0 || int(reg) >= len(registerNames) {
		return fmt.Sprintf("reg(%d)", int32(reg))
	}
	return registerNames[reg]
}

// Status is the CPU's latched outcome flag. STATUS_OK is the only state
// permitting further execution; every other state is sticky until Reset.
type Status int32

const (
	STATUS_OK                      = Status(0) // ok
	STATUS_HALTED                  = Status(1) // halted
	STATUS_ILLEGAL_INSTRUCTION     = Status(2) // illegal instruction
	STATUS_ILLEGAL_OPERAND         = Status(3) // illegal operand
	STATUS_INVALID_ADDRESS         = Status(4) // invalid address
	STATUS_INVALID_STACK_OPERATION = Status(5) // invalid stack operation
	STATUS_DIV_BY_ZERO             = Status(6) // division by zero
	STATUS_IO_ERROR                = Status(7) // io error
)

var statusNames = [...]string{
	"ok",
	"halted",
	"illegal instruction",
	"illegal operand",
	"invalid address",
	"invalid stack operation",
	"division by zero",
	"io error",
}

func (st Status) String() string {
	if st < 0 || int(st) >= len(statusNames) {
		return fmt.Sprintf("status(%d)", int32(st))
	}
	return statusNames[st]
}

// Opcode is an instruction opcode, as it appears in program cells.
// The valid range is OP_NOP..OP_POP; any other cell value fetched as an
// instruction is an illegal instruction.
type Opcode int32

const (
	OP_NOP   = Opcode(0)  // nop
	OP_HALT  = Opcode(1)  // halt
	OP_ADD   = Opcode(2)  // add
	OP_SUB   = Opcode(3)  // sub
	OP_MUL   = Opcode(4)  // mul
	OP_DIV   = Opcode(5)  // div
	OP_INC   = Opcode(6)  // inc
	OP_DEC   = Opcode(7)  // dec
	OP_LOOP  = Opcode(8)  // loop
	OP_MOVR  = Opcode(9)  // movr
	OP_LOAD  = Opcode(10) // load
	OP_STORE = Opcode(11) // store
	OP_IN    = Opcode(12) // in
	OP_GET   = Opcode(13) // get
	OP_OUT   = Opcode(14) // out
	OP_PUT   = Opcode(15) // put
	OP_SWAP  = Opcode(16) // swap
	OP_PUSH  = Opcode(17) // push
	OP_POP   = Opcode(18) // pop
)

var opcodeNames = [...]string{
	"nop",
	"halt",
	"add",
	"sub",
	"mul",
	"div",
	"inc",
	"dec",
	"loop",
	"movr",
	"load",
	"store",
	"in",
	"get",
	"out",
	"put",
	"swap",
	"push",
	"pop",
}

// mnemonicMap maps assembler mnemonics to opcodes.
var mnemonicMap = func() map[string]Opcode {
	m := make(map[string]Opcode, len(opcodeNames))
	for n, name := range opcodeNames {
		m[name] = Opcode(n)
	}
	return m
}()

// String returns the assembly mnemonic of the opcode.
func (op Opcode) String() string {
	if op < 0 || int(op) >= len(opcodeNames) {
		return fmt.Sprintf("op(%d)", int32(op))
	}
	return opcodeNames[op]
}

// operand is the kind of a single operand cell.
type operand int

const (
	operandReg    = operand(0) // register id (a..d)
	operandValue  = operand(1) // immediate cell value
	operandTarget = operand(2) // immediate cell value or label
)

// opcodeOperands lists the operand cells following each opcode.
var opcodeOperands = [...][]operand{
	OP_NOP:   nil,
	OP_HALT:  nil,
	OP_ADD:   {operandReg},
	OP_SUB:   {operandReg},
	OP_MUL:   {operandReg},
	OP_DIV:   {operandReg},
	OP_INC:   {operandReg},
	OP_DEC:   {operandReg},
	OP_LOOP:  {operandTarget},
	OP_MOVR:  {operandReg, operandTarget},
	OP_LOAD:  {operandReg, operandValue},
	OP_STORE: {operandReg, operandValue},
	OP_IN:    {operandReg},
	OP_GET:   {operandReg},
	OP_OUT:   {operandReg},
	OP_PUT:   {operandReg},
	OP_SWAP:  {operandReg, operandReg},
	OP_PUSH:  {operandReg},
	OP_POP:   {operandReg},
}

// Arity returns the number of operand cells following the opcode cell.
func (op Opcode) Arity() int {
	if op < 0 || int(op) >= len(opcodeOperands) {
		return 0
	}
	return len(opcodeOperands[op])
}
