package lsp

import (
	"unicode/utf16"

	"gcodes/internal/lexer"
)

// utf16Len returns the number of UTF-16 code units needed to encode s.
func utf16Len(s string) uint32 {
	n := uint32(0)
	for _, r := range s {
		if size := utf16.RuneLen(r); size > 0 {
			n += uint32(size)
		} else {
			n++
		}
	}
	return n
}

// position converts a byte offset into a 0-based LSP line and UTF-16
// character offset, the default encoding clients expect.
func position(lines *lexer.LineIndex, source string, offset int) (line, character uint32) {
	pos := lines.Position(offset)
	start := lines.LineStart(pos.Line)
	return uint32(pos.Line - 1), utf16Len(source[start:pos.Offset])
}

// runesAt returns the byte length of the first n runes of source[offset:].
func runesAt(source string, offset, n int) int {
	if offset < 0 || offset > len(source) {
		return 0
	}
	rest := source[offset:]
	for i := range rest {
		if n == 0 {
			return i
		}
		n--
	}
	return len(rest)
}
