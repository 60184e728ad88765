// Package lexer turns G-code source text into a lazy stream of typed,
// span-tagged tokens. Whitespace and comments never become tokens; comments
// are reported through an optional handler instead.
package lexer

import (
	"errors"
	"io"
	"iter"
	"unicode/utf8"
)

type state int

const (
	scanning state = iota
	done
	failed
)

// Lexer scans one source text. It is not safe for concurrent use; create one
// Lexer per buffer instead. A Lexer cannot be restarted.
type Lexer struct {
	source    string
	cursor    int
	state     state
	err       error
	onComment func(Comment)
}

// Option configures a Lexer.
type Option func(*Lexer)

// WithCommentHandler installs fn to be called synchronously, in source order,
// for every comment skipped. A comment before a token is reported before that
// token is returned.
func WithCommentHandler(fn func(Comment)) Option {
	return func(l *Lexer) {
		l.onComment = fn
	}
}

func New(source string, opts ...Option) *Lexer {
	l := &Lexer{source: source}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Source returns the text being scanned.
func (l *Lexer) Source() string {
	return l.source
}

// Next returns the next token. It returns io.EOF once the source is
// exhausted. After a lexer error, every call returns that same error.
func (l *Lexer) Next() (Token, error) {
	switch l.state {
	case done:
		return Token{}, io.EOF
	case failed:
		return Token{}, l.err
	}

	if err := l.skip(); err != nil {
		return l.fail(err)
	}

	if l.cursor >= len(l.source) {
		l.state = done
		return Token{}, io.EOF
	}

	tok, ok := matchRule(l.source, l.cursor)
	if !ok {
		c, _ := utf8.DecodeRuneInString(l.source[l.cursor:])
		return l.fail(&UnrecognizedCharacterError{
			Position:  Resolve(l.source, l.cursor),
			Character: c,
		})
	}

	l.cursor = tok.Span.End
	return tok, nil
}

// Tokenize returns the token sequence. Scanning happens as the sequence is
// pulled; stopping early leaves the rest of the source unscanned. On failure
// the sequence yields one zero Token paired with the error and ends.
func (l *Lexer) Tokenize() iter.Seq2[Token, error] {
	return func(yield func(Token, error) bool) {
		for {
			tok, err := l.Next()
			if errors.Is(err, io.EOF) {
				return
			}
			if err != nil {
				yield(Token{}, err)
				return
			}
			if !yield(tok, nil) {
				return
			}
		}
	}
}

// Tokens drains the sequence. On failure it returns the tokens produced
// before the offending position along with the error.
func (l *Lexer) Tokens() ([]Token, error) {
	var tokens []Token
	for tok, err := range l.Tokenize() {
		if err != nil {
			return tokens, err
		}
		tokens = append(tokens, tok)
	}
	return tokens, nil
}

// Tokenize is shorthand for New(source, opts...).Tokenize().
func Tokenize(source string, opts ...Option) iter.Seq2[Token, error] {
	return New(source, opts...).Tokenize()
}

// Lex scans source in one go, collecting both tokens and comments.
func Lex(source string) ([]Token, []Comment, error) {
	var comments []Comment
	l := New(source, WithCommentHandler(func(c Comment) {
		comments = append(comments, c)
	}))
	tokens, err := l.Tokens()
	return tokens, comments, err
}

// skip consumes any interleaving of whitespace runs and comments.
func (l *Lexer) skip() error {
	for l.cursor < len(l.source) {
		if n := countWhitespace(l.source[l.cursor:]); n > 0 {
			l.cursor += n
			continue
		}

		comment, n, err := scanComment(l.source, l.cursor)
		if err != nil {
			return err
		}
		if n == 0 {
			return nil
		}

		l.cursor += n
		if l.onComment != nil {
			l.onComment(comment)
		}
	}
	return nil
}

func (l *Lexer) fail(err error) (Token, error) {
	l.state = failed
	l.err = err
	return Token{}, err
}
