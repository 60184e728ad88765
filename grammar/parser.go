package grammar

import (
	"fmt"
	"os"

	"github.com/alecthomas/participle/v2"
	plexer "github.com/alecthomas/participle/v2/lexer"

	"gcodes/internal/errors"
	"gcodes/internal/lexer"
)

var wordParser = participle.MustBuild[Program](
	participle.Lexer(GcodeLexer),
)

// ParseFile reads and parses the file at path.
func ParseFile(path string) (*Program, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return ParseString(path, string(source))
}

// ParseString parses source into words. Lexer errors are returned unwrapped
// so callers can match them with errors.Is and errors.As.
func ParseString(filename, source string, opts ...lexer.Option) (*Program, error) {
	def := &Definition{Options: opts}
	lex, err := def.LexString(filename, source)
	if err != nil {
		return nil, err
	}

	peek, err := plexer.Upgrade(lex)
	if err != nil {
		return nil, err
	}
	return wordParser.ParseFromLexer(peek)
}

// Diagnose converts a ParseString error into a diagnostic.
func Diagnose(err error) (errors.CompilerError, bool) {
	if diag, ok := errors.FromLexError(err); ok {
		return diag, true
	}

	pe, ok := err.(participle.Error)
	if !ok {
		return errors.CompilerError{}, false
	}
	pos := pe.Position()
	return errors.UnexpectedWord(pe.Message(), lexer.Position{
		Offset: pos.Offset,
		Line:   pos.Line,
		Column: pos.Column,
	}), true
}
