package lexer

import "fmt"

type TokenType string

const (
	ILLEGAL TokenType = "ILLEGAL"
	EOF     TokenType = "EOF"
	NEWLINE TokenType = "NEWLINE"

	IDENT  TokenType = "IDENT"
	NUMBER TokenType = "NUMBER"
	STRING TokenType = "STRING"

	PRINT    TokenType = "PRINT"
	IF       TokenType = "IF"
	ELSE     TokenType = "ELSE"
	END      TokenType = "END"
	WHILE    TokenType = "WHILE"
	FOR      TokenType = "FOR"
	EACH     TokenType = "EACH"
	IN       TokenType = "IN"
	TO       TokenType = "TO"
	STEP     TokenType = "STEP"
	FUNCTION TokenType = "FUNCTION"
	RETURN   TokenType = "RETURN"
	BREAK    TokenType = "BREAK"
	CONTINUE TokenType = "CONTINUE"
	TRUE     TokenType = "TRUE"
	FALSE    TokenType = "FALSE"
	NULL     TokenType = "NULL"

	AND TokenType = "AND"
	OR  TokenType = "OR"
	NOT TokenType = "NOT"

	ASSIGN  TokenType = "ASSIGN"
	PLUS    TokenType = "PLUS"
	MINUS   TokenType = "MINUS"
	STAR    TokenType = "STAR"
	SLASH   TokenType = "SLASH"
	PERCENT TokenType = "PERCENT"

	LPAREN   TokenType = "LPAREN"
	RPAREN   TokenType = "RPAREN"
	LBRACKET TokenType = "LBRACKET"
	RBRACKET TokenType = "RBRACKET"
	LBRACE   TokenType = "LBRACE"
	RBRACE   TokenType = "RBRACE"

	COMMA TokenType = "COMMA"
	COLON TokenType = "COLON"

	EQ  TokenType = "EQ"
	NEQ TokenType = "NEQ"
	LT  TokenType = "LT"
	GT  TokenType = "GT"
	LTE TokenType = "LTE"
	GTE TokenType = "GTE"
)

type Token struct {
	Type   TokenType
	Lexeme string
	Line   int
	Col    int
}

func (t Token) String() string {
	switch t.Type {
	case STRING:
		return fmt.Sprintf("%s(%q) @ %d:%d", t.Type, t.Lexeme, t.Line, t.Col)
	case IDENT, NUMBER, ILLEGAL:
		return fmt.Sprintf("%s(%s) @ %d:%d", t.Type, t.Lexeme, t.Line, t.Col)
	default:
		return fmt.Sprintf("%s @ %d:%d", t.Type, t.Line, t.Col)
	}
}

var keywords = map[string]TokenType{
	"print":    PRINT,
	"if":       IF,
	"else":     ELSE,
	"end":      END,
	"while":    WHILE,
	"for":      FOR,
	"each":     EACH,
	"in":       IN,
	"to":       TO,
	"step":     STEP,
	"function": FUNCTION,
	"return":   RETURN,
	"break":    BREAK,
	"continue": CONTINUE,
	"true":     TRUE,
	"false":    FALSE,
	"null":     NULL,
	"and":      AND,
	"or":       OR,
	"not":      NOT,
}

// LookupIdent reports the keyword type for ident, or IDENT. Keywords are case-sensitive.
func LookupIdent(ident string) TokenType {
	if tt, ok := keywords[ident]; ok {
		return tt
	}
	return IDENT
}

// SyntaxError is returned by the lexer and the parser.
type SyntaxError struct {
	Line int
	Col  int
	Msg  string
}

func (e *SyntaxError) Error() string {
	if e.Line <= 0 {
		return fmt.Sprintf("Syntax error: %s at end of file", e.Msg)
	}
	return fmt.Sprintf("Syntax error at %d:%d: %s", e.Line, e.Col, e.Msg)
}
