package disasm

import (
	"github.com/ezrec/slasm/translate"
)

var f = translate.From

// ErrTruncated is an operand that runs past the end of the image.
var (
	ErrTruncated = translate.Error("operand truncated")
)

// ErrDecode locates an error in the image.
type ErrDecode struct {
	Offset int
	Err    error
}

func (err *ErrDecode) Error() string {
	return f("offset 0x%04x %v", err.Offset, err.Err)
}

func (err *ErrDecode) Unwrap() error {
	return err.Err
}
