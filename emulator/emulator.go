// Package emulator wires the cellvm CPU to its console channels and drives
// whole-program execution for the command line and for tests.
package emulator

import (
	"bytes"
	"fmt"
	stdio "io"
	"iter"
	"maps"

	"github.com/cellvm/cellvm/cpu"
	"github.com/cellvm/cellvm/internal"
	"github.com/cellvm/cellvm/io"
)

const (
	STACK_CAPACITY = 256 // Default stack capacity in cells.
)

var _emulator_defines = map[string]string{
	"STACK_CAPACITY": fmt.Sprintf("%v", STACK_CAPACITY),
}

// Emulator state. CPU + console + optional source listing.
type Emulator struct {
	Verbose  bool         // If set, enables verbose logging.
	*cpu.Cpu              // Reference to the CPU.
	Program  *cpu.Program // Listing of the running program, when assembled.

	Tape io.Tape // Console channel.
}

// NewEmulator creates a new emulator with no program loaded.
func NewEmulator() (emu *Emulator) {
	emu = &Emulator{}

	return
}

// Defines returns an iterator over all of the assembler predefines.
func (emu *Emulator) Defines() iter.Seq2[string, string] {
	return internal.IterSeq2Concat(maps.All(_emulator_defines),
		cpu.Defines(),
	)
}

// Load builds the memory image from a program binary and constructs the CPU
// around it, attached to the emulator's tape.
func (emu *Emulator) Load(program stdio.Reader, stackCapacity int) (err error) {
	memory, stackBottom, err := cpu.NewMemory(program, stackCapacity)
	if err != nil {
		return
	}

	emu.Cpu, err = cpu.NewCpu(memory, stackBottom, int32(stackCapacity), cpu.REGISTER_COUNT)
	if err != nil {
		return
	}

	emu.Cpu.SetChannel(&emu.Tape)
	emu.Cpu.Verbose = emu.Verbose

	return
}

// LoadProgram loads an assembled program, keeping its listing for
// line-number reporting.
func (emu *Emulator) LoadProgram(prog *cpu.Program, stackCapacity int) (err error) {
	emu.Program = prog

	return emu.Load(bytes.NewReader(prog.Binary()), stackCapacity)
}

// LineNo returns the source line number for the executing instruction, or 0
// when no listing is available.
func (emu *Emulator) LineNo() int {
	if emu.Program == nil || emu.Cpu == nil {
		return 0
	}

	dbg := emu.Program.Debug(emu.Cpu.Ip())
	if dbg.Line == nil {
		return 0
	}

	return dbg.Line.LineNo
}

// State returns the register and stack state as a printable string.
func (emu *Emulator) State() string {
	if emu.Cpu == nil {
		return ""
	}

	return emu.Cpu.String()
}

// Run drives the CPU for up to maxSteps instruction cycles. It returns the
// count of attempted cycles; err is nil when the machine is still runnable
// or halted cleanly, and an *ErrStatus otherwise.
func (emu *Emulator) Run(maxSteps int64) (steps int64, err error) {
	steps, status := emu.Cpu.Run(maxSteps)
	if status == cpu.STATUS_OK || status == cpu.STATUS_HALTED {
		return
	}

	err = &ErrStatus{LineNo: emu.LineNo(), Status: status}
	return
}

// Reset returns the CPU to its initial runnable state and rewinds the
// console.
func (emu *Emulator) Reset() {
	if emu.Cpu != nil {
		emu.Cpu.Reset()
	}
	emu.Tape.Rewind()
}
