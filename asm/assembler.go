// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package asm

import (
	"io"
	"log"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/ezrec/slasm/translate"
)

var ErrPredefineSyntax = translate.Error("predefine syntax, expected NAME=VALUE")

// Assembler assembles slasm source into a program image.
//
// Every line is encoded on its own; there are no labels and no second pass.
// All line errors of a source are reported together as an ErrList.
type Assembler struct {
	Verbose     bool       // If set, verbosely logs the assembler actions.
	Zero        ZeroPolicy // Encoding of zero operands.
	Expressions bool       // If set, evaluates $(...) expressions.
	Workers     int        // Number of concurrent line encoders; <= 1 is serial.

	predefine map[string]int64 // Names visible in $(...) expressions.
}

// Predefine defines a new name or redefines an existing one for use in
// expressions.
func (asm *Assembler) Predefine(name string, value int64) {
	if asm.predefine == nil {
		asm.predefine = map[string]int64{name: value}
	} else {
		asm.predefine[name] = value
	}
}

// PredefineString defines a name from NAME=VALUE text. The value may be in
// any Go integer literal base.
func (asm *Assembler) PredefineString(def string) (err error) {
	name, text, ok := strings.Cut(def, "=")
	if !ok || len(name) == 0 {
		err = ErrPredefineSyntax
		return
	}

	value, err := strconv.ParseInt(text, 0, 64)
	if err != nil {
		err = ErrMalformedOperand(text)
		return
	}

	asm.Predefine(name, value)

	return
}

// Parse parses an input stream into a Program.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {
	lines, err := ReadLines(input)
	if err != nil {
		return
	}

	return asm.Assemble(lines)
}

// Assemble encodes tokenized lines into a Program.
func (asm *Assembler) Assemble(lines []Line) (prog *Program, err error) {
	enc := &Encoder{Zero: asm.Zero}

	insts := make([]Instruction, len(lines))
	errs := make([]error, len(lines))

	encodeLine := func(n int) {
		insts[n], errs[n] = asm.encodeLine(enc, lines[n])
	}

	if asm.Workers > 1 {
		var g errgroup.Group
		g.SetLimit(asm.Workers)
		for n := range lines {
			g.Go(func() error {
				encodeLine(n)
				return nil
			})
		}
		_ = g.Wait()
	} else {
		for n := range lines {
			encodeLine(n)
		}
	}

	var el ErrList
	offset := 0
	for n := range insts {
		line := &lines[n]
		if errs[n] != nil {
			el = append(el, &ErrSyntax{LineNo: line.LineNo, Line: line.Text, Err: errs[n]})
			continue
		}

		inst := &insts[n]
		inst.Offset = offset
		offset += len(inst.Code)

		if asm.Verbose {
			log.Printf("%v: %04x % x\t%v\n", line.LineNo, inst.Offset, inst.Code, line.Text)
			if inst.Opcode.HasOperand() != (len(inst.Code) > 1) {
				log.Printf("%v: %v: operand layout differs from machine fetch\n", line.LineNo, inst.Opcode)
			}
		}
	}

	if len(el) > 0 {
		err = el
		return
	}

	prog = &Program{
		Instructions: insts,
	}

	return
}

// encodeLine encodes a single line.
func (asm *Assembler) encodeLine(enc *Encoder, line Line) (inst Instruction, err error) {
	words := line.Words

	if asm.Expressions && strings.Contains(line.Text, "$(") {
		var text string
		text, err = expandExpressions(line.Text, lineGlobals(asm.predefine, line.LineNo))
		if err != nil {
			return
		}
		words = strings.Fields(text)
	}

	if len(words) == 0 {
		err = ErrMnemonicMissing
		return
	}

	op, operand, code, err := enc.encode(words[0], words[1:])
	if err != nil {
		return
	}

	inst = Instruction{
		LineNo:  line.LineNo,
		Words:   words,
		Opcode:  op,
		Operand: operand,
		Code:    code,
	}

	return
}
