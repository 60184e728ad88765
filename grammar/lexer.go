package grammar

import (
	"errors"
	"fmt"
	"io"

	plexer "github.com/alecthomas/participle/v2/lexer"

	"gcodes/internal/lexer"
)

// GcodeLexer adapts the hand-written lexer to participle. Letter tokens carry
// their canonical upper-case letter as Value, numbers carry the literal text.
var GcodeLexer = &Definition{}

var (
	_ plexer.Definition       = (*Definition)(nil)
	_ plexer.StringDefinition = (*Definition)(nil)
)

type Definition struct {
	// Options are passed to every lexer.Lexer the definition creates.
	Options []lexer.Option
}

func (d *Definition) Symbols() map[string]plexer.TokenType {
	symbols := map[string]plexer.TokenType{"EOF": plexer.EOF}
	for _, k := range lexer.Kinds() {
		symbols[k.String()] = tokenType(k)
	}
	return symbols
}

func (d *Definition) Lex(filename string, r io.Reader) (plexer.Lexer, error) {
	source, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", filename, err)
	}
	return d.LexString(filename, string(source))
}

func (d *Definition) LexString(filename string, source string) (plexer.Lexer, error) {
	return &tokenStream{
		filename: filename,
		lex:      lexer.New(source, d.Options...),
		lines:    lexer.NewLineIndex(source),
		size:     len(source),
	}, nil
}

func tokenType(k lexer.Kind) plexer.TokenType {
	return plexer.TokenType(k) + 1
}

type tokenStream struct {
	filename string
	lex      *lexer.Lexer
	lines    *lexer.LineIndex
	size     int
}

func (s *tokenStream) Next() (plexer.Token, error) {
	tok, err := s.lex.Next()
	if errors.Is(err, io.EOF) {
		return plexer.EOFToken(s.position(s.size)), nil
	}
	if err != nil {
		return plexer.Token{}, err
	}

	value := tok.Value
	if tok.Kind.IsLetter() {
		value = tok.Kind.String()
	}
	return plexer.Token{
		Type:  tokenType(tok.Kind),
		Value: value,
		Pos:   s.position(tok.Span.Start),
	}, nil
}

func (s *tokenStream) position(offset int) plexer.Position {
	pos := s.lines.Position(offset)
	return plexer.Position{
		Filename: s.filename,
		Offset:   pos.Offset,
		Line:     pos.Line,
		Column:   pos.Column,
	}
}
