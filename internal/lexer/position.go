package lexer

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"
)

// Position is a resolved source location. Line and Column are 1-based,
// Column counts runes from the start of the line, Offset is the 0-based
// byte offset it was resolved from.
type Position struct {
	Offset int
	Line   int
	Column int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Resolve converts a byte offset into a line/column pair by counting the
// newlines that precede it. Offsets outside the source are clamped.
func Resolve(source string, offset int) Position {
	offset = clamp(offset, len(source))
	before := source[:offset]
	lineStart := strings.LastIndexByte(before, '\n') + 1

	return Position{
		Offset: offset,
		Line:   1 + strings.Count(before, "\n"),
		Column: 1 + utf8.RuneCountInString(before[lineStart:]),
	}
}

// LineIndex answers repeated position lookups over one source without
// rescanning it. Use Resolve for a single lookup.
type LineIndex struct {
	source string
	starts []int // byte offset of the first character of every line
}

func NewLineIndex(source string) *LineIndex {
	starts := []int{0}
	for i := 0; i < len(source); i++ {
		if source[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &LineIndex{source: source, starts: starts}
}

// Position resolves offset to the same result Resolve would produce.
func (li *LineIndex) Position(offset int) Position {
	offset = clamp(offset, len(li.source))
	line := sort.Search(len(li.starts), func(i int) bool {
		return li.starts[i] > offset
	})
	start := li.starts[line-1]

	return Position{
		Offset: offset,
		Line:   line,
		Column: 1 + utf8.RuneCountInString(li.source[start:offset]),
	}
}

// LineCount returns the number of lines, counting a trailing empty line.
func (li *LineIndex) LineCount() int {
	return len(li.starts)
}

// LineStart returns the byte offset of the first character of the 1-based
// line, or -1 when the line does not exist.
func (li *LineIndex) LineStart(line int) int {
	if line < 1 || line > len(li.starts) {
		return -1
	}
	return li.starts[line-1]
}

// Line returns the text of the 1-based line without its newline.
func (li *LineIndex) Line(line int) string {
	if line < 1 || line > len(li.starts) {
		return ""
	}
	start := li.starts[line-1]
	end := len(li.source)
	if line < len(li.starts) {
		end = li.starts[line] - 1
	}
	return li.source[start:end]
}

func clamp(offset, size int) int {
	if offset < 0 {
		return 0
	}
	if offset > size {
		return size
	}
	return offset
}
