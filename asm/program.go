package asm

import (
	"io"
	"iter"

	"github.com/ezrec/slasm/internal"
	"github.com/ezrec/slasm/isa"
)

// Instruction is an encoded source line.
type Instruction struct {
	LineNo  int        // Source line number.
	Offset  int        // Byte offset in the program image.
	Words   []string   // Source words.
	Opcode  isa.Opcode // Opcode of the mnemonic.
	Operand Operand    // Parsed operand.
	Code    []byte     // Encoded bytes.
}

// Program is an assembled program.
type Program struct {
	Instructions []Instruction
}

type Debug struct {
	*Instruction
	Index int // Byte index into Instruction.Code
}

// Debug finds the instruction that covers an image offset.
func (prog *Program) Debug(offset int) (dbg Debug) {
	for n, inst := range prog.Instructions {
		if offset >= inst.Offset && offset < inst.Offset+len(inst.Code) {
			dbg = Debug{
				Instruction: &prog.Instructions[n],
				Index:       offset - inst.Offset,
			}
			break
		}
	}

	return
}

// Codes iterates over the encoded instructions and their offsets.
func (prog *Program) Codes() iter.Seq2[int, []byte] {
	return func(yield func(offset int, code []byte) bool) {
		for _, inst := range prog.Instructions {
			if !yield(inst.Offset, inst.Code) {
				return
			}
		}
	}
}

// Binary returns the program image.
func (prog *Program) Binary() (bin []byte) {
	return internal.SliceConcat(internal.Values2(prog.Codes()))
}

// Size returns the length of the program image in bytes.
func (prog *Program) Size() (size int) {
	for _, code := range prog.Codes() {
		size += len(code)
	}
	return
}

// WriteTo writes the program image.
func (prog *Program) WriteTo(w io.Writer) (n int64, err error) {
	for _, code := range prog.Codes() {
		var wrote int
		wrote, err = w.Write(code)
		n += int64(wrote)
		if err != nil {
			return
		}
	}

	return
}
