// Package asm implements the slasm assembler.
//
// A source line holds a mnemonic and at most one base-10 integer operand;
// text after ';' is a comment. Each line is encoded independently into a
// single opcode byte, optionally followed by a 32-bit big-endian operand.
// The program image is the concatenation of the encoded lines, without any
// header.
package asm
