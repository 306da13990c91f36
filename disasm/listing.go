package disasm

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
)

// Listing writes a table of offsets, bytes and instructions.
func Listing(w io.Writer, insts []Instruction) {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetStyle(table.StyleLight)

	tw.AppendHeader(table.Row{f("Offset"), f("Bytes"), f("Instruction")})
	for _, inst := range insts {
		tw.AppendRow(table.Row{
			fmt.Sprintf("%04x", inst.Offset),
			fmt.Sprintf("% x", inst.Code),
			inst.String(),
		})
	}
	tw.AppendFooter(table.Row{"", f("%d instructions", len(insts))})

	tw.Render()
}
