package lexer

import "strings"

type Lexer struct {
	input []rune
	pos   int
	line  int
	col   int
}

func New(input string) *Lexer {
	return &Lexer{
		input: []rune(input),
		line:  1,
		col:   1,
	}
}

var singleChar = map[rune]TokenType{
	'+': PLUS,
	'-': MINUS,
	'*': STAR,
	'/': SLASH,
	'%': PERCENT,
	'(': LPAREN,
	')': RPAREN,
	'[': LBRACKET,
	']': RBRACKET,
	'{': LBRACE,
	'}': RBRACE,
	',': COMMA,
	':': COLON,
}

// Tokens lexes the whole input. The returned slice always ends with EOF.
// The first ILLEGAL token stops lexing and is reported as a *SyntaxError.
func (l *Lexer) Tokens() ([]Token, error) {
	var toks []Token
	for {
		tok := l.NextToken()
		if tok.Type == ILLEGAL {
			return nil, &SyntaxError{Line: tok.Line, Col: tok.Col, Msg: tok.Lexeme}
		}
		toks = append(toks, tok)
		if tok.Type == EOF {
			return toks, nil
		}
	}
}

func (l *Lexer) peek() rune {
	if l.pos >= len(l.input) {
		return 0
	}
	return l.input[l.pos]
}

func (l *Lexer) advance() rune {
	ch := l.peek()
	if ch == 0 {
		return 0
	}
	l.pos++
	if ch == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	return ch
}

func (l *Lexer) NextToken() Token {
	// skip spaces/tabs/carriage returns (not newline)
	for {
		ch := l.peek()
		if ch == ' ' || ch == '\t' || ch == '\r' {
			l.advance()
			continue
		}
		break
	}

	line, col := l.line, l.col
	tok := func(tt TokenType, lex string) Token {
		return Token{Type: tt, Lexeme: lex, Line: line, Col: col}
	}

	ch := l.peek()
	switch {
	case ch == 0:
		return tok(EOF, "")

	case ch == '\n':
		l.advance()
		return tok(NEWLINE, "\n")

	case ch == '#':
		for l.peek() != 0 && l.peek() != '\n' {
			l.advance()
		}
		return l.NextToken()

	case isAlpha(ch) || ch == '_':
		var b strings.Builder
		for isAlphaNum(l.peek()) || l.peek() == '_' {
			b.WriteRune(l.advance())
		}
		lex := b.String()
		return tok(LookupIdent(lex), lex)

	case isDigit(ch):
		return tok(NUMBER, l.readNumber())

	case ch == '"':
		s, ok := l.readString()
		if !ok {
			return tok(ILLEGAL, s)
		}
		return tok(STRING, s)
	}

	l.advance()
	switch ch {
	case '=':
		if l.peek() == '=' {
			l.advance()
			return tok(EQ, "==")
		}
		return tok(ASSIGN, "=")
	case '!':
		if l.peek() == '=' {
			l.advance()
			return tok(NEQ, "!=")
		}
		return tok(ILLEGAL, "Unexpected character '!'")
	case '<':
		if l.peek() == '=' {
			l.advance()
			return tok(LTE, "<=")
		}
		return tok(LT, "<")
	case '>':
		if l.peek() == '=' {
			l.advance()
			return tok(GTE, ">=")
		}
		return tok(GT, ">")
	}

	if tt, ok := singleChar[ch]; ok {
		return tok(tt, string(ch))
	}
	return tok(ILLEGAL, "Unexpected character "+quoteRune(ch))
}

func (l *Lexer) readNumber() string {
	var b strings.Builder
	dotSeen := false
	for {
		c := l.peek()
		if isDigit(c) {
			b.WriteRune(l.advance())
			continue
		}
		// a dot only belongs to the number when a digit follows it
		if c == '.' && !dotSeen && l.pos+1 < len(l.input) && isDigit(l.input[l.pos+1]) {
			dotSeen = true
			b.WriteRune(l.advance())
			continue
		}
		return b.String()
	}
}

// readString consumes a double-quoted literal. On failure the message is returned
// with ok=false.
func (l *Lexer) readString() (string, bool) {
	l.advance()
	var b strings.Builder
	for {
		c := l.peek()
		if c == 0 || c == '\n' {
			return "Unterminated string", false
		}
		l.advance()
		if c == '"' {
			return b.String(), true
		}
		if c != '\\' {
			b.WriteRune(c)
			continue
		}
		esc := l.advance()
		switch esc {
		case 0:
			return "Bad escape", false
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		default:
			b.WriteRune(esc)
		}
	}
}

func quoteRune(r rune) string { return "'" + string(r) + "'" }

func isAlpha(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isAlphaNum(r rune) bool {
	return isAlpha(r) || isDigit(r)
}
