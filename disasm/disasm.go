// Package disasm decodes slasm program images.
//
// The image carries no operand markers. Operands are read the way the
// machine fetches them: after every opcode for which isa.Opcode.HasOperand
// is true.
package disasm

import (
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/ezrec/slasm/isa"
)

// Instruction is a decoded instruction.
type Instruction struct {
	Offset     int        // Byte offset in the image.
	Opcode     isa.Opcode // Instruction opcode.
	Operand    int32      // Operand, if HasOperand is set.
	HasOperand bool       // Set if an operand follows the opcode.
	Code       []byte     // Bytes of the instruction in the image.
}

func (inst Instruction) String() string {
	if !inst.HasOperand {
		return inst.Opcode.String()
	}
	return fmt.Sprintf("%v %d", inst.Opcode, inst.Operand)
}

// reader walks an image, most significant byte first.
type reader struct {
	image []byte
	pc    int
}

func (r *reader) done() bool {
	return r.pc >= len(r.image)
}

func (r *reader) nextByte() (value byte) {
	value = r.image[r.pc]
	r.pc++
	return
}

func (r *reader) nextWord() (value uint32, ok bool) {
	if len(r.image)-r.pc < isa.OPERAND_SIZE {
		return
	}
	value = binary.BigEndian.Uint32(r.image[r.pc:])
	r.pc += isa.OPERAND_SIZE
	ok = true
	return
}

// Disassemble decodes an image. On error, the instructions decoded before
// the error are returned with it.
func Disassemble(image []byte) (insts []Instruction, err error) {
	r := &reader{image: image}

	for !r.done() {
		offset := r.pc
		op := isa.Opcode(r.nextByte())
		if !op.Valid() {
			err = &ErrDecode{Offset: offset, Err: isa.ErrOpcode(op)}
			return
		}

		inst := Instruction{
			Offset: offset,
			Opcode: op,
		}

		if op.HasOperand() {
			value, ok := r.nextWord()
			if !ok {
				err = &ErrDecode{Offset: offset, Err: ErrTruncated}
				return
			}
			inst.Operand = int32(value)
			inst.HasOperand = true
		}

		inst.Code = image[offset:r.pc]
		insts = append(insts, inst)
	}

	return
}

// Source returns assembly text for decoded instructions, one per line.
func Source(insts []Instruction) string {
	var sb strings.Builder
	for _, inst := range insts {
		sb.WriteString(inst.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}
