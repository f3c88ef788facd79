package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"log"
	"math"
	"os"

	"github.com/cellvm/cellvm/cpu"
	"github.com/cellvm/cellvm/emulator"
)

func usage() {
	fmt.Fprintf(os.Stderr, "usage: %v [flags] (run|trace) [FILE]\n", os.Args[0])
	flag.PrintDefaults()
	os.Exit(2)
}

// runAll executes the loaded program to completion and prints the final
// state, with the legacy signed step count for compatibility.
func runAll(emu *emulator.Emulator) (ok bool) {
	steps, err := emu.Run(math.MaxInt32)

	fmt.Print(emu.State())

	result := steps
	if err != nil {
		result = -steps
		fmt.Printf("error: %v\n", err)
	}
	fmt.Printf("run result: %d\n", result)

	var status *emulator.ErrStatus
	return !errors.As(err, &status)
}

// runTrace single-steps the program, printing state after every
// instruction, until the machine stops or the user quits.
func runTrace(emu *emulator.Emulator) (ok bool) {
	fmt.Println("Press Enter to execute the next instruction or type 'q' to quit.")

	prompt := bufio.NewScanner(os.Stdin)
	for prompt.Scan() {
		if prompt.Text() == "q" {
			break
		}
		if emu.Cpu.Step() {
			fmt.Print(emu.State())
			continue
		}
		fmt.Print(emu.State())
		fmt.Printf("finished: %v\n", emu.Cpu.Status())
		break
	}

	status := emu.Cpu.Status()
	return status == cpu.STATUS_OK || status == cpu.STATUS_HALTED
}

func main() {
	var compile string
	var capacity int
	var input string
	var output string
	var verbose bool

	flag.StringVar(&compile, "c", "", "assembly source to compile instead of a binary FILE")
	flag.IntVar(&capacity, "stack", emulator.STACK_CAPACITY, "stack capacity in cells")
	flag.StringVar(&input, "i", "-", "console input")
	flag.StringVar(&output, "o", "-", "console output")
	flag.BoolVar(&verbose, "v", false, "verbose mode")

	flag.Usage = usage
	flag.Parse()

	if flag.NArg() < 1 || flag.NArg() > 2 {
		usage()
	}

	mode := flag.Arg(0)
	if mode != "run" && mode != "trace" {
		usage()
	}

	emu := emulator.NewEmulator()
	emu.Verbose = verbose

	if len(compile) != 0 {
		if flag.NArg() != 1 {
			usage()
		}

		inf, err := os.Open(compile)
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}
		defer inf.Close()

		asm := &cpu.Assembler{Verbose: verbose}
		for attr, val := range emu.Defines() {
			asm.Predefine(attr, val)
		}

		prog, err := asm.Parse(inf)
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}

		if err := emu.LoadProgram(prog, capacity); err != nil {
			log.Fatalf("%v: %v", compile, err)
		}
	} else {
		if flag.NArg() != 2 {
			usage()
		}
		name := flag.Arg(1)

		inf, err := os.Open(name)
		if err != nil {
			log.Fatalf("%v: %v", name, err)
		}
		defer inf.Close()

		if err := emu.Load(inf, capacity); err != nil {
			log.Fatalf("%v: %v", name, err)
		}
	}

	if input == "-" {
		emu.Tape.Input = os.Stdin
	} else {
		inf, err := os.Open(input)
		if err != nil {
			log.Fatalf("%v: %v", input, err)
		}
		defer inf.Close()
		emu.Tape.Input = inf
	}

	if output == "-" {
		emu.Tape.Output = os.Stdout
	} else {
		ouf, err := os.Create(output)
		if err != nil {
			log.Fatalf("%v: %v", output, err)
		}
		defer ouf.Close()
		emu.Tape.Output = ouf
	}

	var ok bool
	if mode == "run" {
		ok = runAll(emu)
	} else {
		ok = runTrace(emu)
	}

	if !ok {
		os.Exit(1)
	}
}
