package lexer

import "fmt"

// Kind is the category of a Token: one per command letter, plus Number.
type Kind int

const (
	G Kind = iota
	M
	N
	T
	X
	Y
	Z
	F
	I
	J
	K
	A
	B
	C
	H
	P
	S
	O

	// Number is any numeric literal; the literal text is kept in Token.Value.
	Number
)

// letters holds the upper-case command letter of every letter kind, in Kind order.
const letters = "GMNTXYZFIJKABCHPSO"

var kindNames = [...]string{
	G: "G", M: "M", N: "N", T: "T", X: "X", Y: "Y", Z: "Z", F: "F", I: "I",
	J: "J", K: "K", A: "A", B: "B", C: "C", H: "H", P: "P", S: "S", O: "O",
	Number: "Number",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// HasValue reports whether tokens of this kind carry a literal Value.
func (k Kind) HasValue() bool {
	return k == Number
}

// IsLetter reports whether k is a command letter kind.
func (k Kind) IsLetter() bool {
	return k >= G && k <= O
}

// Kinds returns every kind in declaration order.
func Kinds() []Kind {
	kinds := make([]Kind, 0, len(kindNames))
	for k := range kindNames {
		kinds = append(kinds, Kind(k))
	}
	return kinds
}

// KindForLetter maps a command letter, in either case, to its Kind.
func KindForLetter(r rune) (Kind, bool) {
	if r >= 'a' && r <= 'z' {
		r -= 'a' - 'A'
	}
	for i := 0; i < len(letters); i++ {
		if rune(letters[i]) == r {
			return Kind(i), true
		}
	}
	return 0, false
}

// Token is one lexical unit. Value is empty unless Kind.HasValue.
type Token struct {
	Span  Span
	Kind  Kind
	Value string
}

func (t Token) String() string {
	if t.Kind.HasValue() {
		return fmt.Sprintf("%s(%s) @ %s", t.Kind, t.Value, t.Span)
	}
	return fmt.Sprintf("%s @ %s", t.Kind, t.Span)
}
