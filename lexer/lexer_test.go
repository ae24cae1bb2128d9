package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func types(toks []Token) []TokenType {
	out := make([]TokenType, 0, len(toks))
	for _, t := range toks {
		out = append(out, t.Type)
	}
	return out
}

func TestTokensSimpleProgram(t *testing.T) {
	toks, err := New("x = 1.5 + y\nprint x # trailing\n").Tokens()
	require.NoError(t, err)

	assert.Equal(t, []TokenType{
		IDENT, ASSIGN, NUMBER, PLUS, IDENT, NEWLINE,
		PRINT, IDENT, NEWLINE,
		EOF,
	}, types(toks))
	assert.Equal(t, "1.5", toks[2].Lexeme)
	assert.Equal(t, 2, toks[6].Line)
	assert.Equal(t, 1, toks[6].Col)
}

func TestTokensOperators(t *testing.T) {
	toks, err := New("== != <= >= < > = % : { } [ ] ,").Tokens()
	require.NoError(t, err)

	assert.Equal(t, []TokenType{
		EQ, NEQ, LTE, GTE, LT, GT, ASSIGN, PERCENT, COLON,
		LBRACE, RBRACE, LBRACKET, RBRACKET, COMMA, EOF,
	}, types(toks))
}

func TestTokensStringEscapes(t *testing.T) {
	toks, err := New(`"a\tb\n\"q\"\\"`).Tokens()
	require.NoError(t, err)
	require.Len(t, toks, 2)
	assert.Equal(t, STRING, toks[0].Type)
	assert.Equal(t, "a\tb\n\"q\"\\", toks[0].Lexeme)
}

func TestKeywordsAreCaseSensitive(t *testing.T) {
	assert.Equal(t, PRINT, LookupIdent("print"))
	assert.Equal(t, IDENT, LookupIdent("Print"))
	assert.Equal(t, NULL, LookupIdent("null"))
}

func TestNumberFollowedByDot(t *testing.T) {
	toks, err := New("3.").Tokens()
	assert.Nil(t, toks)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Unexpected character '.'")
}

func TestTokensErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
		line int
		col  int
	}{
		{"unterminated string", "x = \"abc\n", "Unterminated string", 1, 5},
		{"bang", "\n  !x", "Unexpected character '!'", 2, 3},
		{"unknown rune", "a $ b", "Unexpected character '$'", 1, 3},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := New(tc.src).Tokens()
			require.Error(t, err)

			var se *SyntaxError
			require.ErrorAs(t, err, &se)
			assert.Equal(t, tc.want, se.Msg)
			assert.Equal(t, tc.line, se.Line)
			assert.Equal(t, tc.col, se.Col)
		})
	}
}

func TestSyntaxErrorMessage(t *testing.T) {
	assert.Equal(t, "Syntax error at 3:7: boom", (&SyntaxError{Line: 3, Col: 7, Msg: "boom"}).Error())
	assert.Equal(t, "Syntax error: boom at end of file", (&SyntaxError{Msg: "boom"}).Error())
}
