package lsp

import (
	"gcodes/internal/lexer"
)

// SemanticToken represents a single LSP semantic token entry
// Line and StartChar are 0-based; StartChar and Length count UTF-16 units
// TokenType is an index into the SemanticTokenTypes array
type SemanticToken struct {
	Line           uint32
	StartChar      uint32
	Length         uint32
	TokenType      int
	TokenModifiers int
}

// collectSemanticTokens returns tokens and comments in source order. Scanning
// stops quietly at the first lexer error; diagnostics report it separately.
func collectSemanticTokens(source string) []SemanticToken {
	lines := lexer.NewLineIndex(source)

	var tokens []SemanticToken
	l := lexer.New(source, lexer.WithCommentHandler(func(c lexer.Comment) {
		tokens = append(tokens, commentTokens(lines, source, c.Span)...)
	}))

	for tok, err := range l.Tokenize() {
		if err != nil {
			break
		}
		line, char := position(lines, source, tok.Span.Start)
		tokens = append(tokens, SemanticToken{
			Line:      line,
			StartChar: char,
			Length:    uint32(tok.Span.Len()),
			TokenType: indexOf(tokenTypeFor(tok.Kind), SemanticTokenTypes),
		})
	}

	return tokens
}

func tokenTypeFor(k lexer.Kind) string {
	switch k {
	case lexer.G, lexer.M, lexer.O, lexer.N, lexer.T:
		return "keyword"
	case lexer.F, lexer.S, lexer.H, lexer.P:
		return "property"
	case lexer.Number:
		return "number"
	default:
		return "parameter"
	}
}

// commentTokens splits a comment into one token per line it covers, since
// clients are not assumed to support multi-line tokens.
func commentTokens(lines *lexer.LineIndex, source string, span lexer.Span) []SemanticToken {
	first := lines.Position(span.Start).Line
	last := lines.Position(span.End).Line
	typ := indexOf("comment", SemanticTokenTypes)

	var tokens []SemanticToken
	for line := first; line <= last; line++ {
		lineStart := lines.LineStart(line)
		from := max(span.Start, lineStart)
		to := min(span.End, lineStart+len(lines.Line(line)))
		if to <= from {
			continue
		}
		tokens = append(tokens, SemanticToken{
			Line:      uint32(line - 1),
			StartChar: utf16Len(source[lineStart:from]),
			Length:    utf16Len(source[from:to]),
			TokenType: typ,
		})
	}
	return tokens
}

func indexOf(target string, list []string) int {
	for i, v := range list {
		if v == target {
			return i
		}
	}
	return -1
}
