package lexer

import (
	"errors"
	"fmt"
)

var (
	ErrUnrecognizedCharacter = errors.New("unrecognized character")
	ErrUnterminatedComment   = errors.New("unterminated comment")
)

// UnrecognizedCharacterError is returned when no rule matches at the cursor.
type UnrecognizedCharacterError struct {
	Position  Position
	Character rune
}

func (e *UnrecognizedCharacterError) Error() string {
	return fmt.Sprintf("%s: unrecognized character %q", e.Position, e.Character)
}

func (e *UnrecognizedCharacterError) Is(target error) bool {
	return target == ErrUnrecognizedCharacter
}

// UnterminatedCommentError is returned for a '(' comment with no closing ')'.
// Position points at the opening parenthesis.
type UnterminatedCommentError struct {
	Position Position
}

func (e *UnterminatedCommentError) Error() string {
	return fmt.Sprintf("%s: unterminated comment", e.Position)
}

func (e *UnterminatedCommentError) Is(target error) bool {
	return target == ErrUnterminatedComment
}

// ErrorPosition extracts the source position from a lexer error.
func ErrorPosition(err error) (Position, bool) {
	var unrecognized *UnrecognizedCharacterError
	if errors.As(err, &unrecognized) {
		return unrecognized.Position, true
	}
	var unterminated *UnterminatedCommentError
	if errors.As(err, &unterminated) {
		return unterminated.Position, true
	}
	return Position{}, false
}
