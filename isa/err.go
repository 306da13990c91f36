package isa

import (
	"github.com/ezrec/slasm/translate"
)

var f = translate.From

// ErrUnknownMnemonic is a mnemonic outside of the instruction set.
type ErrUnknownMnemonic string

func (err ErrUnknownMnemonic) Error() string {
	return f("unknown mnemonic '%v'", string(err))
}

// ErrOpcode is an instruction byte outside of the instruction set.
type ErrOpcode Opcode

func (eo ErrOpcode) Error() string {
	return f("bad opcode 0x%02x", uint8(eo))
}

func (eo ErrOpcode) Is(err error) (ok bool) {
	_, ok = err.(ErrOpcode)
	return
}
