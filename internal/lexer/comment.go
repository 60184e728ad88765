package lexer

import "strings"

// Comment is reported through the comment handler for every comment the
// lexer skips. Text excludes the delimiters, Span includes them.
type Comment struct {
	Text string
	Span Span
}

// scanComment recognises a comment starting at pos. It returns the number of
// bytes consumed, which is 0 when no comment starts there.
//
// A ';' comment runs to the end of the line, newline excluded. A '(' comment
// runs to the first ')'; parentheses do not nest.
func scanComment(source string, pos int) (Comment, int, error) {
	if pos >= len(source) {
		return Comment{}, 0, nil
	}

	switch source[pos] {
	case ';':
		end := strings.IndexByte(source[pos:], '\n')
		if end < 0 {
			end = len(source) - pos
		}
		return Comment{
			Text: source[pos+1 : pos+end],
			Span: Span{Start: pos, End: pos + end},
		}, end, nil

	case '(':
		closing := strings.IndexByte(source[pos+1:], ')')
		if closing < 0 {
			return Comment{}, 0, &UnterminatedCommentError{Position: Resolve(source, pos)}
		}
		end := pos + 1 + closing + 1
		return Comment{
			Text: source[pos+1 : end-1],
			Span: Span{Start: pos, End: end},
		}, end - pos, nil
	}

	return Comment{}, 0, nil
}

func isWhitespace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}

func countWhitespace(s string) int {
	n := 0
	for n < len(s) && isWhitespace(s[n]) {
		n++
	}
	return n
}
