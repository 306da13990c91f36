package asm

import (
	"bufio"
	"errors"
	"io"
	"strings"
)

// Line is a tokenized source line.
type Line struct {
	LineNo int      // Line number in the source, from 1.
	Text   string   // Text with the comment removed.
	Words  []string // Mnemonic followed by its operand words.
}

// splitLine removes a ';' comment and trims the result.
func splitLine(text string) (line string, words []string) {
	text_comment := strings.SplitN(text, ";", 2)
	line = strings.TrimSpace(text_comment[0])
	words = strings.Fields(line)
	return
}

// MAX_LINE_SIZE is the longest source line ReadLines accepts.
const MAX_LINE_SIZE = 1 << 20

// ReadLines tokenizes an input stream. Lines with no words are skipped.
// A line longer than MAX_LINE_SIZE fails with an ErrSyntax for that line.
func ReadLines(input io.Reader) (lines []Line, err error) {
	scanner := bufio.NewScanner(input)
	scanner.Buffer(nil, MAX_LINE_SIZE)

	var lineno int
	for scanner.Scan() {
		lineno += 1

		line, words := splitLine(scanner.Text())
		if len(words) == 0 {
			continue
		}

		lines = append(lines, Line{LineNo: lineno, Text: line, Words: words})
	}

	err = scanner.Err()
	if errors.Is(err, bufio.ErrTooLong) {
		err = &ErrSyntax{LineNo: lineno + 1, Err: err}
	}

	return
}
