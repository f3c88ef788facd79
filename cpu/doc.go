// Package cpu implements the cellvm machine and its assembler.
//
// The machine is a stack/register virtual machine over a flat memory of
// signed 32-bit cells. A program binary is loaded into the low end of
// memory; a fixed-capacity, downward-growing stack occupies the high end.
// Four general-purpose registers (a-d) and a latched status drive a
// 19-instruction set executed one cell-addressed instruction at a time.
//
// The assembler provides textual mnemonics for the instruction set,
// supporting macros, labels, equates, and compile-time expression
// evaluation.
package cpu
