package lsp

import (
	"fmt"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"gcodes/grammar"
	"gcodes/internal/errors"
	"gcodes/internal/lexer"
)

// Diagnostics lexes and parses source, returning at most one diagnostic:
// the lexer stops at its first error and the word parser at its first
// unexpected token. The result is never nil so it clears stale markers.
func Diagnostics(source string) []protocol.Diagnostic {
	diagnostics := []protocol.Diagnostic{}

	_, err := grammar.ParseString("", source)
	if err == nil {
		return diagnostics
	}

	diag, ok := grammar.Diagnose(err)
	if !ok {
		log.Errorf("undiagnosable error: %s", err)
		return diagnostics
	}
	return append(diagnostics, ConvertCompilerError(source, diag))
}

// ConvertCompilerError transforms a diagnostic into its LSP form, with a
// 0-based line and UTF-16 character offsets into source.
func ConvertCompilerError(source string, err errors.CompilerError) protocol.Diagnostic {
	length := err.Length
	if length <= 0 {
		length = 1
	}

	diagSource := "gcodes-lexer"
	if err.Code == errors.ErrorUnexpectedWord {
		diagSource = "gcodes-parser"
	}

	offset := min(max(err.Position.Offset, 0), len(source))
	line, start := position(lexer.NewLineIndex(source), source, offset)
	end := start + utf16Len(source[offset:offset+runesAt(source, offset, length)])
	if end == start {
		end++
	}

	return protocol.Diagnostic{
		Range: protocol.Range{
			Start: protocol.Position{Line: line, Character: start},
			End:   protocol.Position{Line: line, Character: end},
		},
		Severity: ptrSeverity(protocol.DiagnosticSeverityError),
		Source:   ptrString(diagSource),
		Message:  fmt.Sprintf("%s [%s]", err.Message, err.Code),
	}
}

func ptrSeverity(s protocol.DiagnosticSeverity) *protocol.DiagnosticSeverity {
	return &s
}

func ptrString(s string) *string {
	return &s
}
