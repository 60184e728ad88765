package lexer

// matcher returns the length in bytes of the match at the start of s, or 0.
type matcher func(s string) int

type rule struct {
	match matcher
	kind  Kind
}

// rules is tried in order and the first match wins. Letter and number rules
// start on disjoint characters, so the order only matters for readability.
var rules = buildRules()

func buildRules() []rule {
	rs := make([]rule, 0, len(letters)+1)
	for i := 0; i < len(letters); i++ {
		rs = append(rs, rule{match: matchLetter(letters[i]), kind: Kind(i)})
	}
	return append(rs, rule{match: matchNumber, kind: Number})
}

func matchLetter(upper byte) matcher {
	lower := upper + ('a' - 'A')
	return func(s string) int {
		if len(s) > 0 && (s[0] == upper || s[0] == lower) {
			return 1
		}
		return 0
	}
}

// matchNumber accepts [+-]? ( digits ( '.' digits* )? | '.' digits ).
func matchNumber(s string) int {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}

	if n := countDigits(s[i:]); n > 0 {
		i += n
		if i < len(s) && s[i] == '.' {
			i++
			i += countDigits(s[i:])
		}
		return i
	}

	if i < len(s) && s[i] == '.' {
		if n := countDigits(s[i+1:]); n > 0 {
			return i + 1 + n
		}
	}
	return 0
}

func countDigits(s string) int {
	n := 0
	for n < len(s) && isDigit(s[n]) {
		n++
	}
	return n
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

// matchRule returns the token recognised at pos by the first matching rule.
func matchRule(source string, pos int) (Token, bool) {
	rest := source[pos:]
	for _, r := range rules {
		n := r.match(rest)
		if n == 0 {
			continue
		}
		tok := Token{Span: Span{Start: pos, End: pos + n}, Kind: r.kind}
		if r.kind.HasValue() {
			tok.Value = rest[:n]
		}
		return tok, true
	}
	return Token{}, false
}
