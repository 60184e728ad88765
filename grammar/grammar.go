package grammar

import (
	"strconv"

	plexer "github.com/alecthomas/participle/v2/lexer"
)

// Program is a flat list of words in source order.
type Program struct {
	Pos    plexer.Position
	EndPos plexer.Position
	Words  []*Word `parser:"@@*"`
}

// Word is a command letter followed by an optional number, e.g. G01 or X-1.5.
type Word struct {
	Pos    plexer.Position
	EndPos plexer.Position
	Letter string  `parser:"@(G | M | N | T | X | Y | Z | F | I | J | K | A | B | C | H | P | S | O)"`
	Value  *string `parser:"@Number?"`
}

// Float parses the word's number. Words without a number report ok == false.
func (w *Word) Float() (value float64, ok bool, err error) {
	if w.Value == nil {
		return 0, false, nil
	}
	value, err = strconv.ParseFloat(*w.Value, 64)
	if err != nil {
		return 0, true, err
	}
	return value, true, nil
}
