package asm

import (
	"strings"

	"github.com/ezrec/slasm/translate"
)

var f = translate.From

var (
	ErrMnemonicMissing = translate.Error("mnemonic missing")
	ErrZeroPolicy      = translate.Error("zero operand policy invalid")
)

// ErrMalformedOperand is an operand word that is not a base-10 integer.
type ErrMalformedOperand string

func (err ErrMalformedOperand) Error() string {
	return f("'%v' is not a number", string(err))
}

// ErrOperandRange is an operand that does not fit in 32 bits.
type ErrOperandRange string

func (err ErrOperandRange) Error() string {
	return f("'%v' does not fit in 32 bits", string(err))
}

// ErrParseExpression is a $(...) expression that does not evaluate to an integer.
type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}

// ErrSyntax locates an error in the source text.
type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err *ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err *ErrSyntax) Unwrap() error {
	return err.Err
}

// ErrList is every error found in a source, in line order.
type ErrList []*ErrSyntax

func (el ErrList) Error() string {
	lines := make([]string, len(el))
	for n, err := range el {
		lines[n] = err.Error()
	}
	return strings.Join(lines, "\n")
}

func (el ErrList) Unwrap() []error {
	errs := make([]error, len(el))
	for n, err := range el {
		errs[n] = err
	}
	return errs
}
