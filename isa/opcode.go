// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package isa defines the instruction set of the slasm stack machine.
//
// Every instruction is a single opcode byte. Opcodes in the 0x1_ (memory and
// call) and 0x8_ (jump) classes are followed by a 32-bit big-endian operand
// when executed by the machine.
package isa

import (
	"fmt"
	"iter"
	"slices"
)

// OPERAND_SIZE is the width in bytes of an encoded operand.
const OPERAND_SIZE = 4

// Opcode is a single instruction byte.
type Opcode uint8

const (
	OP_NOOP = Opcode(0x00) // noop

	OP_CONST  = Opcode(0x10) // const
	OP_LOAD   = Opcode(0x11) // load
	OP_GLOAD  = Opcode(0x12) // gload
	OP_STORE  = Opcode(0x14) // store
	OP_GSTORE = Opcode(0x15) // gstore
	OP_CALL   = Opcode(0x18) // call

	OP_ADD = Opcode(0x40) // add
	OP_SUB = Opcode(0x41) // sub
	OP_MUL = Opcode(0x42) // mul
	OP_DIV = Opcode(0x43) // div
	OP_POW = Opcode(0x44) // pow
	OP_MOD = Opcode(0x45) // mod

	OP_SHL = Opcode(0x50) // shl
	OP_SHR = Opcode(0x51) // shr
	OP_AND = Opcode(0x52) // and
	OP_OR  = Opcode(0x53) // or
	OP_XOR = Opcode(0x54) // xor
	OP_NOT = Opcode(0x55) // not

	OP_CMPEQ  = Opcode(0x61) // cmpeq
	OP_CMPPNE = Opcode(0x62) // cmppne
	OP_CMPGT  = Opcode(0x63) // cmpgt
	OP_CMPLT  = Opcode(0x64) // cmplt

	OP_RELJUMP   = Opcode(0x80) // reljump
	OP_RELJUMPEQ = Opcode(0x81) // reljumpeq
	OP_RELJUMPNE = Opcode(0x82) // reljumpne
	OP_RELJUMPGT = Opcode(0x83) // reljumpgt
	OP_RELJUMPLT = Opcode(0x84) // reljumplt
	OP_JMP       = Opcode(0x88) // jmp

	OP_RET   = Opcode(0xA0) // ret
	OP_PRINT = Opcode(0xE0) // print
	OP_HALT  = Opcode(0xF0) // halt
)

// mnemonicMap is the instruction vocabulary. Mnemonics are case sensitive.
var mnemonicMap = map[string]Opcode{
	"noop":      OP_NOOP,
	"const":     OP_CONST,
	"load":      OP_LOAD,
	"gload":     OP_GLOAD,
	"store":     OP_STORE,
	"gstore":    OP_GSTORE,
	"call":      OP_CALL,
	"add":       OP_ADD,
	"sub":       OP_SUB,
	"mul":       OP_MUL,
	"div":       OP_DIV,
	"pow":       OP_POW,
	"mod":       OP_MOD,
	"shl":       OP_SHL,
	"shr":       OP_SHR,
	"and":       OP_AND,
	"or":        OP_OR,
	"xor":       OP_XOR,
	"not":       OP_NOT,
	"cmpeq":     OP_CMPEQ,
	"cmppne":    OP_CMPPNE,
	"cmpgt":     OP_CMPGT,
	"cmplt":     OP_CMPLT,
	"reljump":   OP_RELJUMP,
	"reljumpeq": OP_RELJUMPEQ,
	"reljumpne": OP_RELJUMPNE,
	"reljumpgt": OP_RELJUMPGT,
	"reljumplt": OP_RELJUMPLT,
	"jmp":       OP_JMP,
	"ret":       OP_RET,
	"print":     OP_PRINT,
	"halt":      OP_HALT,
}

// opcodeMap is the reverse of mnemonicMap.
var opcodeMap map[Opcode]string

func init() {
	opcodeMap = make(map[Opcode]string, len(mnemonicMap))
	for mnemonic, op := range mnemonicMap {
		opcodeMap[op] = mnemonic
	}
}

// Lookup returns the opcode for a mnemonic.
func Lookup(mnemonic string) (op Opcode, err error) {
	op, ok := mnemonicMap[mnemonic]
	if !ok {
		err = ErrUnknownMnemonic(mnemonic)
	}
	return
}

// Valid returns true if the opcode is part of the instruction set.
func (op Opcode) Valid() bool {
	_, ok := opcodeMap[op]
	return ok
}

// HasOperand returns true if the machine fetches an operand after this opcode.
func (op Opcode) HasOperand() bool {
	switch op >> 4 {
	case 0x1, 0x8:
		return true
	}
	return false
}

func (op Opcode) String() string {
	mnemonic, ok := opcodeMap[op]
	if !ok {
		return fmt.Sprintf("0x%02x", uint8(op))
	}
	return mnemonic
}

// Mnemonics iterates over the instruction set in opcode order.
func Mnemonics() iter.Seq2[string, Opcode] {
	return func(yield func(mnemonic string, op Opcode) bool) {
		ops := make([]Opcode, 0, len(opcodeMap))
		for op := range opcodeMap {
			ops = append(ops, op)
		}
		slices.Sort(ops)
		for _, op := range ops {
			if !yield(opcodeMap[op], op) {
				return
			}
		}
	}
}
