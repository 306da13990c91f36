// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package asm

import (
	"encoding/binary"
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/ezrec/slasm/isa"
)

// ZeroPolicy selects the encoding of an operand whose value is zero.
type ZeroPolicy int

const (
	ZERO_ELIDE = ZeroPolicy(0) // elide
	ZERO_KEEP  = ZeroPolicy(1) // keep
)

var zeroPolicyMap = map[string]ZeroPolicy{
	"elide": ZERO_ELIDE,
	"keep":  ZERO_KEEP,
}

// ParseZeroPolicy returns the policy for a name, as printed by String().
func ParseZeroPolicy(name string) (zp ZeroPolicy, err error) {
	zp, ok := zeroPolicyMap[name]
	if !ok {
		err = ErrZeroPolicy
	}
	return
}

func (zp ZeroPolicy) String() string {
	for name, policy := range zeroPolicyMap {
		if policy == zp {
			return name
		}
	}
	return strconv.Itoa(int(zp))
}

// Operand is an optional immediate value.
type Operand struct {
	Value   uint32 // Two's complement bits of the value.
	Present bool   // Set if the source line had an operand.
}

// Int32 returns the signed reading of the operand.
func (o Operand) Int32() int32 {
	return int32(o.Value)
}

// ParseOperand parses the first of the operand words as a base-10 integer.
// Remaining words are ignored. With no words, the operand is absent.
func ParseOperand(words []string) (operand Operand, err error) {
	if len(words) == 0 {
		return
	}

	word := words[0]
	v64, err := strconv.ParseInt(word, 10, 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) && isDecimal(word) {
			err = ErrOperandRange(word)
		} else {
			err = ErrMalformedOperand(word)
		}
		return
	}

	// Accepts both the signed and unsigned readings of 32 bits.
	if v64 > math.MaxUint32 || v64 < math.MinInt32 {
		err = ErrOperandRange(word)
		return
	}

	operand = Operand{Value: uint32(v64), Present: true}

	return
}

// isDecimal reports if word is an optional sign followed by ASCII digits.
func isDecimal(word string) bool {
	if strings.HasPrefix(word, "+") || strings.HasPrefix(word, "-") {
		word = word[1:]
	}
	if len(word) == 0 {
		return false
	}
	for _, c := range word {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// Emit appends the wire form of an instruction to buf.
//
// The opcode byte is followed by the operand, most significant byte first,
// only when the operand is present. Under ZERO_ELIDE a zero operand is
// treated as absent.
func Emit(buf []byte, op isa.Opcode, operand Operand, zero ZeroPolicy) []byte {
	buf = append(buf, byte(op))

	if !operand.Present {
		return buf
	}

	if operand.Value == 0 && zero != ZERO_KEEP {
		return buf
	}

	return binary.BigEndian.AppendUint32(buf, operand.Value)
}

// Encoder encodes single instruction lines.
type Encoder struct {
	Zero ZeroPolicy // Encoding of zero operands.
}

// Encode returns the bytes for a mnemonic and the words that follow it.
func (enc *Encoder) Encode(mnemonic string, words []string) (code []byte, err error) {
	_, _, code, err = enc.encode(mnemonic, words)
	return
}

func (enc *Encoder) encode(mnemonic string, words []string) (op isa.Opcode, operand Operand, code []byte, err error) {
	op, err = isa.Lookup(mnemonic)
	if err != nil {
		return
	}

	operand, err = ParseOperand(words)
	if err != nil {
		return
	}

	code = Emit(make([]byte, 0, 1+isa.OPERAND_SIZE), op, operand, enc.Zero)

	return
}

// Encode encodes a line with the default Encoder.
func Encode(mnemonic string, words []string) (code []byte, err error) {
	enc := &Encoder{}
	return enc.Encode(mnemonic, words)
}
