package errors

import (
	stderrors "errors"
	"fmt"

	"gcodes/internal/lexer"
)

// UnrecognizedCharacter creates an error for a character no rule matches
func UnrecognizedCharacter(char rune, pos lexer.Position) CompilerError {
	err := CompilerError{
		Level:    Error,
		Code:     ErrorUnrecognizedCharacter,
		Message:  fmt.Sprintf("unrecognized character %q", char),
		Position: pos,
		Length:   1,
		HelpText: "expected a command letter, a number, whitespace or a comment",
	}
	if char == ')' {
		err.Notes = append(err.Notes, "there is no open '(' comment for this parenthesis to close")
	}
	return err
}

// UnterminatedComment creates an error for a '(' comment that never closes
func UnterminatedComment(pos lexer.Position) CompilerError {
	return CompilerError{
		Level:    Error,
		Code:     ErrorUnterminatedComment,
		Message:  "unterminated comment",
		Position: pos,
		Length:   1,
		HelpText: "add a closing ')' to end the comment",
	}
}

// UnexpectedWord creates an error for tokens the word parser rejected
func UnexpectedWord(message string, pos lexer.Position) CompilerError {
	return CompilerError{
		Level:    Error,
		Code:     ErrorUnexpectedWord,
		Message:  message,
		Position: pos,
		Length:   1,
		HelpText: "every number must follow a command letter, as in X10",
	}
}

// FromLexError converts an error returned by the lexer into a diagnostic.
// The second result is false for errors that did not come from the lexer.
func FromLexError(err error) (CompilerError, bool) {
	var unrecognized *lexer.UnrecognizedCharacterError
	if stderrors.As(err, &unrecognized) {
		return UnrecognizedCharacter(unrecognized.Character, unrecognized.Position), true
	}

	var unterminated *lexer.UnterminatedCommentError
	if stderrors.As(err, &unterminated) {
		return UnterminatedComment(unterminated.Position), true
	}

	return CompilerError{}, false
}
