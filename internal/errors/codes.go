package errors

// Error codes for the G-code front end.
//
// Error code ranges:
// E0001-E0099: Lexical errors
// E0100-E0199: Parser errors
// E0900-E0999: Tooling errors
const (
	// E0001: A character no token rule recognises
	ErrorUnrecognizedCharacter = "E0001"

	// E0002: A '(' comment with no closing ')'
	ErrorUnterminatedComment = "E0002"

	// E0100: Token sequence that does not form a word
	ErrorUnexpectedWord = "E0100"

	// E0900: Source could not be read
	ErrorUnreadableSource = "E0900"
)

// ErrorDescriptions provides human-readable descriptions for each error code
var ErrorDescriptions = map[string]string{
	ErrorUnrecognizedCharacter: "Character is not a command letter, number, whitespace or comment",
	ErrorUnterminatedComment:   "Parenthesised comment is missing its closing parenthesis",
	ErrorUnexpectedWord:        "Tokens do not form a letter/number word",
	ErrorUnreadableSource:      "Source file could not be read",
}

// GetErrorDescription returns the description for an error code
func GetErrorDescription(code string) string {
	if desc, ok := ErrorDescriptions[code]; ok {
		return desc
	}
	return "Unknown error"
}
