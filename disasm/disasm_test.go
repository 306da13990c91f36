package disasm_test

import (
	"bytes"
	"errors"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/ezrec/slasm/asm"
	"github.com/ezrec/slasm/disasm"
	"github.com/ezrec/slasm/isa"
)

var _ = Describe("Disassemble", func() {
	Context("Well formed images", func() {
		It("should decode opcodes and operands", func() {
			image := []byte{
				0x10, 0x00, 0x00, 0x00, 0x05,
				0x40,
				0x81, 0xff, 0xff, 0xff, 0xfb,
				0xf0,
			}

			insts, err := disasm.Disassemble(image)
			Expect(err).NotTo(HaveOccurred())
			Expect(insts).To(HaveLen(4))

			Expect(insts[0].Offset).To(Equal(0))
			Expect(insts[0].Opcode).To(Equal(isa.OP_CONST))
			Expect(insts[0].HasOperand).To(BeTrue())
			Expect(insts[0].Operand).To(Equal(int32(5)))
			Expect(insts[0].Code).To(Equal(image[0:5]))

			Expect(insts[1].Offset).To(Equal(5))
			Expect(insts[1].Opcode).To(Equal(isa.OP_ADD))
			Expect(insts[1].HasOperand).To(BeFalse())

			Expect(insts[2].Offset).To(Equal(6))
			Expect(insts[2].Operand).To(Equal(int32(-5)))

			Expect(insts[3].Opcode).To(Equal(isa.OP_HALT))
			Expect(insts[3].Offset).To(Equal(11))
		})

		It("should decode an empty image", func() {
			insts, err := disasm.Disassemble(nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(insts).To(BeEmpty())
		})

		It("should print instructions as source", func() {
			insts, err := disasm.Disassemble([]byte{0x10, 0, 0, 0, 7, 0xe0})
			Expect(err).NotTo(HaveOccurred())
			Expect(disasm.Source(insts)).To(Equal("const 7\nprint\n"))
		})
	})

	Context("Malformed images", func() {
		It("should reject a truncated operand", func() {
			insts, err := disasm.Disassemble([]byte{0x40, 0x10, 0x00, 0x01})
			Expect(err).To(HaveOccurred())
			Expect(errors.Is(err, disasm.ErrTruncated)).To(BeTrue())
			Expect(insts).To(HaveLen(1))

			var decodeErr *disasm.ErrDecode
			Expect(errors.As(err, &decodeErr)).To(BeTrue())
			Expect(decodeErr.Offset).To(Equal(1))
		})

		It("should reject an opcode outside the instruction set", func() {
			_, err := disasm.Disassemble([]byte{0x00, 0x30})
			Expect(err).To(HaveOccurred())
			Expect(errors.Is(err, isa.ErrOpcode(0))).To(BeTrue())
			Expect(err.Error()).To(ContainSubstring("0x30"))
		})
	})

	Context("Round trip", func() {
		It("should reproduce a program assembled with kept zero operands", func() {
			source := strings.Join([]string{
				"const 0",
				"store 2",
				"load 2",
				"const -1",
				"add",
				"gstore 4294967295",
				"call 0",
				"reljumplt -2147483648",
				"ret",
				"halt",
			}, "\n")

			as := &asm.Assembler{Zero: asm.ZERO_KEEP}
			prog, err := as.Parse(strings.NewReader(source))
			Expect(err).NotTo(HaveOccurred())

			insts, err := disasm.Disassemble(prog.Binary())
			Expect(err).NotTo(HaveOccurred())
			Expect(insts).To(HaveLen(len(prog.Instructions)))

			for n, inst := range insts {
				Expect(inst.Opcode).To(Equal(prog.Instructions[n].Opcode))
				Expect(inst.Offset).To(Equal(prog.Instructions[n].Offset))
				Expect(inst.Operand).To(Equal(prog.Instructions[n].Operand.Int32()))
			}

			again, err := as.Parse(strings.NewReader(disasm.Source(insts)))
			Expect(err).NotTo(HaveOccurred())
			Expect(again.Binary()).To(Equal(prog.Binary()))
		})
	})
})

var _ = Describe("Listing", func() {
	It("should tabulate offsets, bytes and instructions", func() {
		insts, err := disasm.Disassemble([]byte{0x10, 0, 0, 0x01, 0x00, 0xe0, 0xf0})
		Expect(err).NotTo(HaveOccurred())

		var buf bytes.Buffer
		disasm.Listing(&buf, insts)

		text := buf.String()
		Expect(text).To(ContainSubstring("0000"))
		Expect(text).To(ContainSubstring("10 00 00 01 00"))
		Expect(text).To(ContainSubstring("const 256"))
		Expect(text).To(ContainSubstring("0005"))
		Expect(text).To(ContainSubstring("print"))
		Expect(text).To(ContainSubstring("0006"))
		Expect(text).To(ContainSubstring("halt"))
	})
})
