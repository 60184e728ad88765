// Package repl SPDX-License-Identifier: Apache-2.0
package repl

import (
	"bufio"
	"fmt"
	"io"

	"gcodes/internal/lexer"
)

const PROMPT = ">> "

// Start lexes each line read from in and prints its tokens and comments to
// out. Lexer errors are printed and the loop carries on with the next line.
func Start(in io.Reader, out io.Writer) {
	scanner := bufio.NewScanner(in)

	for {
		fmt.Fprint(out, PROMPT)
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return
		}

		line := scanner.Text()
		l := lexer.New(line, lexer.WithCommentHandler(func(c lexer.Comment) {
			fmt.Fprintf(out, "comment %q @ %s\n", c.Text, c.Span)
		}))

		for tok, err := range l.Tokenize() {
			if err != nil {
				fmt.Fprintf(out, "error: %s\n", err)
				break
			}
			fmt.Fprintln(out, tok)
		}
	}
}
