package lexer

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectInvalidCharacters(t *testing.T) {
	_, err := New("$Foo").Tokens()
	require.Error(t, err)

	var got *UnrecognizedCharacterError
	require.ErrorAs(t, err, &got)
	assert.Equal(t, 1, got.Position.Line)
	assert.Equal(t, 1, got.Position.Column)
	assert.Equal(t, '$', got.Character)
	assert.ErrorIs(t, err, ErrUnrecognizedCharacter)
}

func TestUnrecognizedCharacterPosition(t *testing.T) {
	tests := []struct {
		input  string
		offset int
		line   int
		column int
		char   rune
	}{
		{"$", 0, 1, 1, '$'},
		{"G1 X2 #", 6, 1, 7, '#'},
		{"G1\nX2 $", 6, 2, 4, '$'},
		{"G1\n\n\n%", 5, 4, 1, '%'},
		{"G1 é", 3, 1, 4, 'é'},
		{"(é)$", 4, 1, 4, '$'},
		{"; ünïcode\nG1 ?", 15, 2, 4, '?'},
		{"G1 )", 3, 1, 4, ')'},
		{"0..", 2, 1, 3, '.'},
		{"X-", 1, 1, 2, '-'},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := New(tt.input).Tokens()

			var got *UnrecognizedCharacterError
			require.ErrorAs(t, err, &got)
			assert.Equal(t, Position{Offset: tt.offset, Line: tt.line, Column: tt.column}, got.Position)
			assert.Equal(t, tt.char, got.Character)
		})
	}
}

func TestRecogniseStandardTokens(t *testing.T) {
	for i, upper := range letters {
		want := Kind(i)
		for _, src := range []string{string(upper), strings.ToLower(string(upper))} {
			t.Run(src, func(t *testing.T) {
				tok, err := New(src).Next()
				require.NoError(t, err)
				assert.Equal(t, want, tok.Kind)
				assert.Equal(t, Span{Start: 0, End: 1}, tok.Span)
				assert.Empty(t, tok.Value)
			})
		}
	}
}

func TestLetterDoesNotConsumeDigits(t *testing.T) {
	tokens, err := New("g01").Tokens()
	require.NoError(t, err)

	want := []Token{
		{Span: Span{0, 1}, Kind: G},
		{Span: Span{1, 3}, Kind: Number, Value: "01"},
	}
	if diff := cmp.Diff(want, tokens); diff != "" {
		t.Errorf("tokens mismatch (-want +got):\n%s", diff)
	}
}

func TestRecogniseVariousNumbers(t *testing.T) {
	for _, src := range []string{"12", "1.23", ".23", "0.", "-1.23", "-1.", "+5", "+.5", "-.5", "007"} {
		t.Run(src, func(t *testing.T) {
			tokens, err := New(src).Tokens()
			require.NoError(t, err)
			require.Len(t, tokens, 1)
			assert.Equal(t, Number, tokens[0].Kind)
			assert.Equal(t, src, tokens[0].Value)
			assert.Equal(t, Span{Start: 0, End: len(src)}, tokens[0].Span)
		})
	}
}

func TestRejectMalformedNumbers(t *testing.T) {
	for _, src := range []string{".", "+", "-", "-.", "+."} {
		t.Run(src, func(t *testing.T) {
			tokens, err := New(src).Tokens()
			assert.Empty(t, tokens)

			var got *UnrecognizedCharacterError
			require.ErrorAs(t, err, &got)
			assert.Equal(t, 1, got.Position.Column)
			assert.Equal(t, rune(src[0]), got.Character)
		})
	}
}

func TestTrailingDotAfterNumber(t *testing.T) {
	tokens, err := New("0..").Tokens()
	require.ErrorIs(t, err, ErrUnrecognizedCharacter)
	require.Len(t, tokens, 1)
	assert.Equal(t, Token{Span: Span{0, 2}, Kind: Number, Value: "0."}, tokens[0])
}

func TestSkipComments(t *testing.T) {
	tok, err := New("; this is a comment\nG13").Next()
	require.NoError(t, err)
	assert.Equal(t, G, tok.Kind)
}

func TestBracketsAreCommentsToo(t *testing.T) {
	tok, err := New("( this is a comment)G13").Next()
	require.NoError(t, err)
	assert.Equal(t, G, tok.Kind)
	assert.Equal(t, Span{Start: 20, End: 21}, tok.Span)
}

func TestCommentsTriggerAnEvent(t *testing.T) {
	const src = "( this is a comment)G13\n;And so is this\n"

	tokens, comments, err := Lex(src)
	require.NoError(t, err)

	wantComments := []Comment{
		{Text: " this is a comment", Span: Span{0, 20}},
		{Text: "And so is this", Span: Span{24, len(src) - 1}},
	}
	if diff := cmp.Diff(wantComments, comments); diff != "" {
		t.Errorf("comments mismatch (-want +got):\n%s", diff)
	}

	wantTokens := []Token{
		{Span: Span{20, 21}, Kind: G},
		{Span: Span{21, 23}, Kind: Number, Value: "13"},
	}
	if diff := cmp.Diff(wantTokens, tokens); diff != "" {
		t.Errorf("tokens mismatch (-want +got):\n%s", diff)
	}
}

func TestCommentAtEndOfSource(t *testing.T) {
	tokens, comments, err := Lex("G1 ;tail")
	require.NoError(t, err)
	assert.Len(t, tokens, 2)
	assert.Equal(t, []Comment{{Text: "tail", Span: Span{3, 8}}}, comments)
}

func TestEmptyComments(t *testing.T) {
	_, comments, err := Lex("()\n;\n")
	require.NoError(t, err)
	assert.Equal(t, []Comment{
		{Text: "", Span: Span{0, 2}},
		{Text: "", Span: Span{3, 4}},
	}, comments)
}

func TestBlockCommentsDoNotNest(t *testing.T) {
	tokens, comments, err := Lex("(outer (inner) X1")
	require.NoError(t, err)

	assert.Equal(t, []Comment{{Text: "outer (inner", Span: Span{0, 14}}}, comments)
	assert.Equal(t, []Token{
		{Span: Span{15, 16}, Kind: X},
		{Span: Span{16, 17}, Kind: Number, Value: "1"},
	}, tokens)
}

func TestBlockCommentSpansLines(t *testing.T) {
	tokens, comments, err := Lex("(first\nsecond)\nM3")
	require.NoError(t, err)
	assert.Equal(t, []Comment{{Text: "first\nsecond", Span: Span{0, 14}}}, comments)
	require.Len(t, tokens, 2)
	assert.Equal(t, M, tokens[0].Kind)
}

func TestUnterminatedBlockComment(t *testing.T) {
	var comments []Comment
	l := New("G1 (oops", WithCommentHandler(func(c Comment) {
		comments = append(comments, c)
	}))

	tokens, err := l.Tokens()
	require.ErrorIs(t, err, ErrUnterminatedComment)
	assert.Len(t, tokens, 2)
	assert.Empty(t, comments)

	var got *UnterminatedCommentError
	require.ErrorAs(t, err, &got)
	assert.Equal(t, Position{Offset: 3, Line: 1, Column: 4}, got.Position)
}

func TestCommentsAndWhitespaceInterleave(t *testing.T) {
	src := " \t(a) ;b\n\r\n(c)(d)  ;e\nG0"

	tokens, comments, err := Lex(src)
	require.NoError(t, err)

	var texts []string
	for _, c := range comments {
		texts = append(texts, c.Text)
		assert.Contains(t, "(;", string(src[c.Span.Start]))
	}
	assert.Equal(t, []string{"a", "b", "c", "d", "e"}, texts)
	require.Len(t, tokens, 2)
	assert.Equal(t, strings.Index(src, "G"), tokens[0].Span.Start)
}

func TestCommentsReportedBeforeFollowingToken(t *testing.T) {
	var events []string
	l := New("(one)G1;two\nX2(three)", WithCommentHandler(func(c Comment) {
		events = append(events, "comment:"+c.Text)
	}))

	for tok, err := range l.Tokenize() {
		require.NoError(t, err)
		events = append(events, "token:"+tok.Kind.String())
	}

	assert.Equal(t, []string{
		"comment:one",
		"token:G",
		"token:Number",
		"comment:two",
		"token:X",
		"token:Number",
		"comment:three",
	}, events)
}

func TestSkipWhitespace(t *testing.T) {
	tokens, err := New(" G").Tokens()
	require.NoError(t, err)
	assert.Equal(t, []Token{{Span: Span{1, 2}, Kind: G}}, tokens)
}

func TestCarriageReturnsAreWhitespace(t *testing.T) {
	tokens, err := New("G1\r\nX2\r\n").Tokens()
	require.NoError(t, err)
	assert.Len(t, tokens, 4)
}

func TestEmptyInput(t *testing.T) {
	for _, src := range []string{"", "   ", "\n\n", "; only a comment", "(only a comment)"} {
		tokens, err := New(src).Tokens()
		assert.NoError(t, err, "source %q", src)
		assert.Empty(t, tokens, "source %q", src)
	}
}

func TestLexSomeBasicGcodeStuff(t *testing.T) {
	want := []Token{
		{Span: Span{0, 1}, Kind: G},
		{Span: Span{1, 3}, Kind: Number, Value: "10"},
		{Span: Span{4, 5}, Kind: X},
		{Span: Span{5, 9}, Kind: Number, Value: "50.0"},
		{Span: Span{10, 11}, Kind: Y},
		{Span: Span{11, 16}, Kind: Number, Value: "100.0"},
	}

	got, err := New("G10 X50.0 Y100.0").Tokens()
	require.NoError(t, err)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("tokens mismatch (-want +got):\n%s", diff)
	}
}

func TestTokenizeTroublesomeLines(t *testing.T) {
	for _, src := range []string{"G0 X-0.5 Y0.", "Y0."} {
		got, err := New(src).Tokens()
		require.NoError(t, err)
		assert.NotEmpty(t, got)
	}
}

func TestRecognisedAlphabetNeverFails(t *testing.T) {
	sources := []string{
		"O1000\nN10 G21 G90 G94\nN20 T1 M6\nN30 S12000 M3\nN40 G0 X0 Y0 Z5.\n",
		"g1x-.5y+2.25z-1f300 (feed)\n;done\n",
		"N1G2X1.Y2.I.5J-.5K0P1H2A90B-45C180\n",
	}
	for _, src := range sources {
		_, err := New(src).Tokens()
		assert.NoError(t, err, "source %q", src)
	}
}

func TestTokenizeFunction(t *testing.T) {
	var comments []string
	var kinds []Kind
	for tok, err := range Tokenize("(c)G1", WithCommentHandler(func(c Comment) {
		comments = append(comments, c.Text)
	})) {
		require.NoError(t, err)
		kinds = append(kinds, tok.Kind)
	}
	assert.Equal(t, []Kind{G, Number}, kinds)
	assert.Equal(t, []string{"c"}, comments)

	var errs []error
	for _, err := range Tokenize("X$") {
		if err != nil {
			errs = append(errs, err)
		}
	}
	require.Len(t, errs, 1)
	assert.ErrorIs(t, errs[0], ErrUnrecognizedCharacter)
}

func TestLineCommentKeepsCarriageReturn(t *testing.T) {
	tokens, comments, err := Lex("G1;x\r\nX2")
	require.NoError(t, err)

	assert.Equal(t, []Comment{{Text: "x\r", Span: Span{2, 5}}}, comments)
	require.Len(t, tokens, 4)
	assert.Equal(t, Span{6, 7}, tokens[2].Span)
}

func TestNextAfterEndAndFailure(t *testing.T) {
	l := New("G")
	_, err := l.Next()
	require.NoError(t, err)
	_, err = l.Next()
	require.ErrorIs(t, err, io.EOF)
	_, err = l.Next()
	require.ErrorIs(t, err, io.EOF)

	l = New("$G")
	_, first := l.Next()
	require.ErrorIs(t, first, ErrUnrecognizedCharacter)
	_, second := l.Next()
	assert.Same(t, first, second)

	var yielded int
	for _, err := range l.Tokenize() {
		yielded++
		assert.ErrorIs(t, err, ErrUnrecognizedCharacter)
	}
	assert.Equal(t, 1, yielded)
}

func TestTokenizeIsLazy(t *testing.T) {
	var comments int
	l := New("G1 (a) X2 $", WithCommentHandler(func(Comment) { comments++ }))

	for tok, err := range l.Tokenize() {
		require.NoError(t, err)
		assert.Equal(t, G, tok.Kind)
		break
	}
	assert.Zero(t, comments)

	tok, err := l.Next()
	require.NoError(t, err)
	assert.Equal(t, Number, tok.Kind)
}

func TestIndependentLexersAgree(t *testing.T) {
	for _, src := range []string{"G10 X50.0 Y100.0", "(c)G1\n;x\nM30", "G1 X$"} {
		first, firstErr := New(src).Tokens()
		second, secondErr := New(src).Tokens()
		assert.Equal(t, first, second)
		assert.Equal(t, fmt.Sprint(firstErr), fmt.Sprint(secondErr))
	}
}

func TestErrorPosition(t *testing.T) {
	_, err := New("G1\n(").Tokens()
	pos, ok := ErrorPosition(err)
	require.True(t, ok)
	assert.Equal(t, Position{Offset: 3, Line: 2, Column: 1}, pos)

	_, ok = ErrorPosition(errors.New("other"))
	assert.False(t, ok)
}

func FuzzTokenize(f *testing.F) {
	for _, seed := range []string{"", "G10 X50.0 Y100.0", "(c)G1\n;x\nM30", "$Foo", "0..", "(open", "é G1"} {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, src string) {
		tokens, err := New(src).Tokens()
		if err != nil && !errors.Is(err, ErrUnrecognizedCharacter) && !errors.Is(err, ErrUnterminatedComment) {
			t.Fatalf("unexpected error type %T: %v", err, err)
		}

		prevEnd := 0
		for _, tok := range tokens {
			if tok.Span.Start < prevEnd || tok.Span.End <= tok.Span.Start || tok.Span.End > len(src) {
				t.Fatalf("bad span %s after %d in %q", tok.Span, prevEnd, src)
			}
			if tok.Kind.HasValue() != (tok.Value != "") {
				t.Fatalf("value presence mismatch for %s", tok)
			}
			if tok.Kind == Number && src[tok.Span.Start:tok.Span.End] != tok.Value {
				t.Fatalf("value %q does not match source", tok.Value)
			}
			prevEnd = tok.Span.End
		}
	})
}
