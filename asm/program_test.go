package asm

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/slasm/isa"
)

func testProgram() *Program {
	return &Program{
		Instructions: []Instruction{
			{LineNo: 1, Offset: 0, Words: []string{"const", "16"}, Opcode: isa.OP_CONST,
				Operand: Operand{16, true}, Code: []byte{0x10, 0, 0, 0, 0x10}},
			{LineNo: 2, Offset: 5, Words: []string{"print"}, Opcode: isa.OP_PRINT,
				Code: []byte{0xe0}},
			{LineNo: 4, Offset: 6, Words: []string{"jmp", "-6"}, Opcode: isa.OP_JMP,
				Operand: Operand{0xfffffffa, true}, Code: []byte{0x88, 0xff, 0xff, 0xff, 0xfa}},
		},
	}
}

func TestProgram_Debug(t *testing.T) {
	assert := assert.New(t)

	prog := testProgram()

	dbg := prog.Debug(0)
	assert.NotNil(dbg.Instruction)
	assert.Equal(1, dbg.LineNo)
	assert.Equal(0, dbg.Index)

	dbg = prog.Debug(4)
	assert.Equal(1, dbg.LineNo)
	assert.Equal(4, dbg.Index)

	dbg = prog.Debug(5)
	assert.Equal(2, dbg.LineNo)
	assert.Equal(0, dbg.Index)

	dbg = prog.Debug(8)
	assert.Equal(4, dbg.LineNo)
	assert.Equal(2, dbg.Index)
}

func TestProgram_Debug_NotFound(t *testing.T) {
	assert := assert.New(t)

	prog := testProgram()

	dbg := prog.Debug(11)
	assert.Nil(dbg.Instruction)
	assert.Equal(0, dbg.Index)

	dbg = prog.Debug(-1)
	assert.Nil(dbg.Instruction)
}

func TestProgram_Binary(t *testing.T) {
	assert := assert.New(t)

	prog := testProgram()

	assert.Equal([]byte{
		0x10, 0, 0, 0, 0x10,
		0xe0,
		0x88, 0xff, 0xff, 0xff, 0xfa,
	}, prog.Binary())
	assert.Equal(11, prog.Size())

	empty := &Program{}
	assert.Equal(0, len(empty.Binary()))
	assert.Equal(0, empty.Size())
}

func TestProgram_Codes(t *testing.T) {
	assert := assert.New(t)

	prog := testProgram()

	offsets := []int{}
	for offset, code := range prog.Codes() {
		offsets = append(offsets, offset)
		assert.NotEmpty(code)
	}
	assert.Equal([]int{0, 5, 6}, offsets)
}

func TestProgram_Codes_EarlyReturn(t *testing.T) {
	assert := assert.New(t)

	prog := testProgram()

	count := 0
	for range prog.Codes() {
		count++
		if count == 1 {
			break
		}
	}

	assert.Equal(1, count)
}

func TestProgram_WriteTo(t *testing.T) {
	assert := assert.New(t)

	prog := testProgram()

	var buf bytes.Buffer
	n, err := prog.WriteTo(&buf)
	assert.NoError(err)
	assert.Equal(int64(11), n)
	assert.Equal(prog.Binary(), buf.Bytes())
}

type shortWriter struct {
	limit int
}

func (sw *shortWriter) Write(data []byte) (n int, err error) {
	if len(data) > sw.limit {
		n = sw.limit
		sw.limit = 0
		err = errors.New("short write")
		return
	}
	sw.limit -= len(data)
	n = len(data)
	return
}

func TestProgram_WriteTo_Error(t *testing.T) {
	assert := assert.New(t)

	prog := testProgram()

	n, err := prog.WriteTo(&shortWriter{limit: 7})
	assert.EqualError(err, "short write")
	assert.Equal(int64(7), n)
}

func TestProgram_Integration_ParseAndDebug(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}
	program := strings.Join([]string{
		"const 256",
		"const 512",
		"add",
	}, "\n")

	prog, err := asm.Parse(strings.NewReader(program))
	assert.NoError(err)

	dbg := prog.Debug(0)
	assert.Equal(1, dbg.LineNo)

	dbg = prog.Debug(7)
	assert.Equal(2, dbg.LineNo)
	assert.Equal(2, dbg.Index)

	dbg = prog.Debug(10)
	assert.Equal(3, dbg.LineNo)
	assert.Equal(isa.OP_ADD, dbg.Opcode)
}
