// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"
	"syscall"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"

	"github.com/ezrec/slasm/asm"
	"github.com/ezrec/slasm/disasm"
	"github.com/ezrec/slasm/isa"
	"github.com/ezrec/slasm/translate"
)

// openInput opens a file, or standard input for "-".
func openInput(cmd *cobra.Command, name string) (rc io.ReadCloser, err error) {
	if name == "-" {
		rc = io.NopCloser(cmd.InOrStdin())
		return
	}
	rc, err = os.Open(name)
	return
}

// outputFile is a file that is removed on exit unless committed.
type outputFile struct {
	*os.File
	once sync.Once
	id   atexit.HandlerID
}

// createOutput creates a file, and registers its removal as an exit handler.
func createOutput(name string) (out *outputFile, err error) {
	ouf, err := os.Create(name)
	if err != nil {
		return
	}

	out = &outputFile{File: ouf}
	out.id = atexit.Register(out.discard)

	return
}

// discard closes and removes the file.
func (out *outputFile) discard() {
	out.once.Do(func() {
		out.File.Close()
		os.Remove(out.Name())
	})
}

// commit closes the file and keeps it.
func (out *outputFile) commit() (err error) {
	out.id.Cancel()

	err = os.ErrClosed
	out.once.Do(func() {
		err = out.File.Close()
		if err != nil {
			os.Remove(out.Name())
		}
	})

	return
}

// writeOutput writes data to a file, or standard output for "-".
func writeOutput(cmd *cobra.Command, name string, write func(w io.Writer) error) (err error) {
	if name == "-" {
		return write(cmd.OutOrStdout())
	}

	out, err := createOutput(name)
	if err != nil {
		return
	}

	err = write(out)
	if err != nil {
		out.id.Cancel()
		out.discard()
		return
	}

	return out.commit()
}

// binaryName returns the default image name for a source file.
func binaryName(source string) string {
	if source == "-" {
		return "-"
	}
	return strings.TrimSuffix(source, filepath.Ext(source)) + ".bin"
}

func newAsmCommand() *cobra.Command {
	var output string
	var zero string
	var expressions bool
	var defines []string
	var jobs int
	var verbose bool

	cmd := &cobra.Command{
		Use:   "asm source.sl",
		Short: "Assemble a source file into a program image",
		Long: `Asm encodes each line of the source, a mnemonic and an optional
base-10 operand, into one opcode byte and an optional 32-bit big-endian
operand. Every line error is reported before exiting.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			as := &asm.Assembler{
				Verbose:     verbose,
				Expressions: expressions,
				Workers:     jobs,
			}

			as.Zero, err = asm.ParseZeroPolicy(zero)
			if err != nil {
				return fmt.Errorf("%v: %w", zero, err)
			}

			for _, def := range defines {
				err = as.PredefineString(def)
				if err != nil {
					return fmt.Errorf("%v: %w", def, err)
				}
			}

			source := args[0]
			inf, err := openInput(cmd, source)
			if err != nil {
				return
			}
			defer inf.Close()

			prog, err := as.Parse(inf)
			if err != nil {
				return fmt.Errorf("%v: %w", source, err)
			}

			if len(output) == 0 {
				output = binaryName(source)
			}

			err = writeOutput(cmd, output, func(w io.Writer) (err error) {
				_, err = prog.WriteTo(w)
				return
			})
			if err != nil {
				return
			}

			if verbose {
				log.Print(translate.From("%v: %d instructions, %d bytes", output, len(prog.Instructions), prog.Size()))
			}

			return
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&output, "output", "o", "", "Program image to write, '-' for stdout (default: source with .bin)")
	flags.StringVarP(&zero, "zero", "z", asm.ZERO_ELIDE.String(), "Zero operand encoding: elide or keep")
	flags.BoolVarP(&expressions, "expr", "e", false, "Evaluate $(...) expressions")
	flags.StringArrayVarP(&defines, "define", "D", nil, "Define NAME=VALUE for expressions")
	flags.IntVarP(&jobs, "jobs", "j", 1, "Number of concurrent line encoders")
	flags.BoolVarP(&verbose, "verbose", "v", false, "Verbose mode")

	return cmd
}

func newDisCommand() *cobra.Command {
	var output string
	var source bool

	cmd := &cobra.Command{
		Use:   "dis image.bin",
		Short: "Disassemble a program image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			inf, err := openInput(cmd, args[0])
			if err != nil {
				return
			}
			defer inf.Close()

			image, err := io.ReadAll(inf)
			if err != nil {
				return
			}

			insts, err := disasm.Disassemble(image)
			if err != nil {
				return fmt.Errorf("%v: %w", args[0], err)
			}

			return writeOutput(cmd, output, func(w io.Writer) (err error) {
				if source {
					_, err = io.WriteString(w, disasm.Source(insts))
					return
				}
				disasm.Listing(w, insts)
				return
			})
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&output, "output", "o", "-", "Listing to write, '-' for stdout")
	flags.BoolVarP(&source, "source", "s", false, "Write assembly source instead of a listing")

	return cmd
}

func newOpsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "ops",
		Short: "List the instruction set",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			tw := table.NewWriter()
			tw.SetOutputMirror(cmd.OutOrStdout())
			tw.SetStyle(table.StyleLight)
			tw.AppendHeader(table.Row{"Mnemonic", "Opcode", "Operand"})
			for mnemonic, op := range isa.Mnemonics() {
				operand := ""
				if op.HasOperand() {
					operand = "int32"
				}
				tw.AppendRow(table.Row{mnemonic, fmt.Sprintf("0x%02x", uint8(op)), operand})
			}
			tw.Render()
		},
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "slasm",
		Short:         "Assembler for the slasm stack machine",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newAsmCommand(), newDisCommand(), newOpsCommand())

	return root
}

func main() {
	log.SetFlags(0)
	log.SetPrefix(filepath.Base(os.Args[0]) + ": ")

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)
	go func() {
		atexit.Fatal(<-sigs)
	}()

	err := newRootCommand().Execute()
	if err != nil {
		atexit.Fatal(err)
	}

	atexit.Exit(0)
}
