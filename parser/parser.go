package parser

import (
	"fmt"

	"yaj-editor/ast"
	"yaj-editor/lexer"
)

type Parser struct {
	toks []lexer.Token
	pos  int
	cur  lexer.Token
	peek lexer.Token
}

// New builds a parser over a token stream produced by lexer.Tokens.
// A missing trailing EOF is tolerated.
func New(toks []lexer.Token) *Parser {
	p := &Parser{toks: toks, pos: -1}
	p.next()
	p.next()
	return p
}

func (p *Parser) at(i int) lexer.Token {
	if i < len(p.toks) {
		return p.toks[i]
	}
	return lexer.Token{Type: lexer.EOF}
}

func (p *Parser) next() {
	p.cur = p.peek
	p.pos++
	p.peek = p.at(p.pos)
}

func sp(tok lexer.Token) ast.Span { return ast.Span{Line: tok.Line, Col: tok.Col} }

func (p *Parser) ParseProgram() (*ast.Program, error) {
	stmts, err := p.parseBlockUntil()
	if err != nil {
		return nil, err
	}
	if p.cur.Type != lexer.EOF {
		return nil, p.errAt(p.cur, "Unexpected token")
	}
	return &ast.Program{Stmts: stmts}, nil
}

func (p *Parser) parseStmt() (ast.Stmt, error) {
	switch p.cur.Type {
	case lexer.PRINT:
		return p.parsePrint()
	case lexer.IF:
		return p.parseIf()
	case lexer.WHILE:
		return p.parseWhile()
	case lexer.FOR:
		if p.peek.Type == lexer.EACH {
			return p.parseForEach()
		}
		return p.parseFor()
	case lexer.FUNCTION:
		return p.parseFunctionDecl()
	case lexer.RETURN:
		return p.parseReturn()
	case lexer.BREAK:
		tok := p.cur
		p.next()
		return &ast.BreakStmt{S: sp(tok)}, nil
	case lexer.CONTINUE:
		tok := p.cur
		p.next()
		return &ast.ContinueStmt{S: sp(tok)}, nil
	}

	if p.cur.Type == lexer.IDENT {
		switch p.peek.Type {
		case lexer.LBRACKET:
			return p.parseIndexAssign()
		case lexer.ASSIGN:
			return p.parseAssign()
		case lexer.LPAREN:
			return p.parseExprStmt()
		}
	}
	return nil, p.errAt(p.cur, "Expected a statement")
}

func (p *Parser) parsePrint() (ast.Stmt, error) {
	printTok := p.cur
	p.next()
	expr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return &ast.PrintStmt{S: sp(printTok), Value: expr}, nil
}

func (p *Parser) parseAssign() (ast.Stmt, error) {
	nameTok := p.cur
	p.next() // '='
	p.next()
	expr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return &ast.AssignStmt{S: sp(nameTok), Name: nameTok.Lexeme, Value: expr}, nil
}

// indexAssign = IDENT "[" expr "]" "=" expr
func (p *Parser) parseIndexAssign() (ast.Stmt, error) {
	nameTok := p.cur
	p.next()
	lbTok := p.cur

	p.next()
	indexExpr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if err := p.expect(lexer.RBRACKET, "Expected ']' after index expression"); err != nil {
		return nil, err
	}
	if err := p.expect(lexer.ASSIGN, "Expected '=' after index expression"); err != nil {
		return nil, err
	}

	valExpr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return &ast.IndexAssignStmt{S: sp(lbTok), Name: nameTok.Lexeme, Index: indexExpr, Value: valExpr}, nil
}

func (p *Parser) parseExprStmt() (ast.Stmt, error) {
	startTok := p.cur
	expr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return &ast.ExprStmt{S: sp(startTok), Expr: expr}, nil
}

func (p *Parser) parseReturn() (ast.Stmt, error) {
	retTok := p.cur
	p.next()
	if p.atLineEnd() {
		return &ast.ReturnStmt{S: sp(retTok)}, nil
	}
	expr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return &ast.ReturnStmt{S: sp(retTok), Value: expr}, nil
}

func (p *Parser) parseFunctionDecl() (ast.Stmt, error) {
	p.next()
	if p.cur.Type != lexer.IDENT {
		return nil, p.errAt(p.cur, "Expected function name after 'function'")
	}
	nameTok := p.cur
	p.next()
	if err := p.expect(lexer.LPAREN, "Expected '(' after function name"); err != nil {
		return nil, err
	}

	params := []string{}
	seen := map[string]bool{}
	for p.cur.Type != lexer.RPAREN {
		if p.cur.Type != lexer.IDENT {
			return nil, p.errAt(p.cur, "Expected parameter name")
		}
		if seen[p.cur.Lexeme] {
			return nil, p.errAt(p.cur, fmt.Sprintf("Duplicate parameter %q", p.cur.Lexeme))
		}
		seen[p.cur.Lexeme] = true
		params = append(params, p.cur.Lexeme)
		p.next()

		if p.cur.Type == lexer.COMMA {
			p.next()
			continue
		}
		if p.cur.Type != lexer.RPAREN {
			return nil, p.errAt(p.cur, "Expected ',' or ')' in parameter list")
		}
	}
	p.next()

	body, err := p.parseBody("function")
	if err != nil {
		return nil, err
	}
	return &ast.FunctionDecl{S: sp(nameTok), Name: nameTok.Lexeme, Params: params, Body: body}, nil
}

func (p *Parser) parseIf() (ast.Stmt, error) {
	ifTok := p.cur
	p.next()
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if err := p.expectNewline("if condition"); err != nil {
		return nil, err
	}

	thenBlock, err := p.parseBlockUntil(lexer.ELSE, lexer.END)
	if err != nil {
		return nil, err
	}

	elseBlock := []ast.Stmt{}
	if p.cur.Type == lexer.ELSE {
		p.next()
		// else if ... end   (one shared 'end')
		if p.cur.Type == lexer.IF {
			nested, err := p.parseIf()
			if err != nil {
				return nil, err
			}
			return &ast.IfStmt{S: sp(ifTok), Condition: cond, Then: thenBlock, Else: []ast.Stmt{nested}}, nil
		}
		if err := p.expectNewline("else"); err != nil {
			return nil, err
		}
		elseBlock, err = p.parseBlockUntil(lexer.END)
		if err != nil {
			return nil, err
		}
	}

	if err := p.expect(lexer.END, "Expected 'end' to close if"); err != nil {
		return nil, err
	}
	return &ast.IfStmt{S: sp(ifTok), Condition: cond, Then: thenBlock, Else: elseBlock}, nil
}

func (p *Parser) parseWhile() (ast.Stmt, error) {
	wTok := p.cur
	p.next()
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBody("while")
	if err != nil {
		return nil, err
	}
	return &ast.WhileStmt{S: sp(wTok), Condition: cond, Body: body}, nil
}

func (p *Parser) parseFor() (ast.Stmt, error) {
	p.next()
	if p.cur.Type != lexer.IDENT {
		return nil, p.errAt(p.cur, "Expected loop variable after 'for'")
	}
	varTok := p.cur
	p.next()
	if err := p.expect(lexer.ASSIGN, "Expected '=' after loop variable"); err != nil {
		return nil, err
	}

	startExpr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if err := p.expect(lexer.TO, "Expected 'to' in for loop"); err != nil {
		return nil, err
	}
	endExpr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	var stepExpr ast.Expr
	if p.cur.Type == lexer.STEP {
		p.next()
		stepExpr, err = p.parseExpr()
		if err != nil {
			return nil, err
		}
	}

	body, err := p.parseBody("for")
	if err != nil {
		return nil, err
	}
	return &ast.ForStmt{S: sp(varTok), Var: varTok.Lexeme, Start: startExpr, End: endExpr, Step: stepExpr, Body: body}, nil
}

// forEach = "for" "each" IDENT [ "," IDENT ] "in" expr
func (p *Parser) parseForEach() (ast.Stmt, error) {
	forTok := p.cur
	p.next() // each
	p.next()
	if p.cur.Type != lexer.IDENT {
		return nil, p.errAt(p.cur, "Expected loop variable after 'for each'")
	}
	varName := p.cur.Lexeme
	p.next()

	indexVar := ""
	if p.cur.Type == lexer.COMMA {
		p.next()
		if p.cur.Type != lexer.IDENT {
			return nil, p.errAt(p.cur, "Expected index variable after ','")
		}
		indexVar = p.cur.Lexeme
		p.next()
	}

	if err := p.expect(lexer.IN, "Expected 'in' in for each loop"); err != nil {
		return nil, err
	}
	iter, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	body, err := p.parseBody("for each")
	if err != nil {
		return nil, err
	}
	return &ast.ForEachStmt{S: sp(forTok), Var: varName, IndexVar: indexVar, Iterable: iter, Body: body}, nil
}

// parseBody parses NEWLINE block "end" after a block header.
func (p *Parser) parseBody(what string) ([]ast.Stmt, error) {
	if err := p.expectNewline(what + " header"); err != nil {
		return nil, err
	}
	body, err := p.parseBlockUntil(lexer.END)
	if err != nil {
		return nil, err
	}
	if err := p.expect(lexer.END, fmt.Sprintf("Expected 'end' to close %s", what)); err != nil {
		return nil, err
	}
	return body, nil
}

func (p *Parser) parseBlockUntil(terminators ...lexer.TokenType) ([]ast.Stmt, error) {
	block := []ast.Stmt{}
	for {
		for p.cur.Type == lexer.NEWLINE {
			p.next()
		}
		if p.cur.Type == lexer.EOF || p.isOneOf(p.cur.Type, terminators...) {
			return block, nil
		}
		stmt, err := p.parseStmt()
		if err != nil {
			return nil, err
		}
		block = append(block, stmt)

		if !p.atLineEnd() && !p.isOneOf(p.cur.Type, terminators...) {
			return nil, p.errAt(p.cur, "Unexpected token after statement")
		}
	}
}

func (p *Parser) atLineEnd() bool {
	return p.cur.Type == lexer.NEWLINE || p.cur.Type == lexer.EOF || p.cur.Type == lexer.END
}

func (p *Parser) isOneOf(t lexer.TokenType, list ...lexer.TokenType) bool {
	for _, x := range list {
		if t == x {
			return true
		}
	}
	return false
}

func (p *Parser) expect(tt lexer.TokenType, msg string) error {
	if p.cur.Type != tt {
		return p.errAt(p.cur, msg)
	}
	p.next()
	return nil
}

func (p *Parser) expectNewline(after string) error {
	if p.cur.Type != lexer.NEWLINE {
		return p.errAt(p.cur, "Expected end of line after "+after)
	}
	return nil
}

// expr = or
func (p *Parser) parseExpr() (ast.Expr, error) { return p.parseOr() }

// or = and ( "or" and )*
func (p *Parser) parseOr() (ast.Expr, error) {
	return p.parseLeftAssoc(p.parseAnd, lexer.OR)
}

// and = comparison ( "and" comparison )*
func (p *Parser) parseAnd() (ast.Expr, error) {
	return p.parseLeftAssoc(p.parseComparison, lexer.AND)
}

// comparison = addsub ( (==|!=|<|>|<=|>=) addsub )?
func (p *Parser) parseComparison() (ast.Expr, error) {
	left, err := p.parseAddSub()
	if err != nil {
		return nil, err
	}
	if !p.isOneOf(p.cur.Type, lexer.EQ, lexer.NEQ, lexer.LT, lexer.GT, lexer.LTE, lexer.GTE) {
		return left, nil
	}
	opTok := p.cur
	p.next()
	right, err := p.parseAddSub()
	if err != nil {
		return nil, err
	}
	return &ast.BinaryExpr{S: sp(opTok), Left: left, Op: opTok.Lexeme, Right: right}, nil
}

func (p *Parser) parseAddSub() (ast.Expr, error) {
	return p.parseLeftAssoc(p.parseMulDiv, lexer.PLUS, lexer.MINUS)
}

func (p *Parser) parseMulDiv() (ast.Expr, error) {
	return p.parseLeftAssoc(p.parseUnary, lexer.STAR, lexer.SLASH, lexer.PERCENT)
}

func (p *Parser) parseLeftAssoc(operand func() (ast.Expr, error), ops ...lexer.TokenType) (ast.Expr, error) {
	left, err := operand()
	if err != nil {
		return nil, err
	}
	for p.isOneOf(p.cur.Type, ops...) {
		opTok := p.cur
		p.next()
		right, err := operand()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryExpr{S: sp(opTok), Left: left, Op: opTok.Lexeme, Right: right}
	}
	return left, nil
}

// unary = ("not" | "-") unary | postfix
func (p *Parser) parseUnary() (ast.Expr, error) {
	if p.cur.Type == lexer.NOT || p.cur.Type == lexer.MINUS {
		opTok := p.cur
		p.next()
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &ast.UnaryExpr{S: sp(opTok), Op: opTok.Lexeme, Right: right}, nil
	}
	return p.parsePostfix()
}

// postfix = primary ( "[" expr "]" )*
func (p *Parser) parsePostfix() (ast.Expr, error) {
	left, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for p.cur.Type == lexer.LBRACKET {
		brTok := p.cur
		p.next()
		indexExpr, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if err := p.expect(lexer.RBRACKET, "Expected ']' after index expression"); err != nil {
			return nil, err
		}
		left = &ast.IndexExpr{S: sp(brTok), Left: left, Index: indexExpr}
	}
	return left, nil
}

func (p *Parser) parsePrimary() (ast.Expr, error) {
	tok := p.cur
	switch tok.Type {
	case lexer.STRING:
		p.next()
		return &ast.StringLiteral{S: sp(tok), Value: tok.Lexeme}, nil

	case lexer.NUMBER:
		p.next()
		return &ast.NumberLiteral{S: sp(tok), Lexeme: tok.Lexeme}, nil

	case lexer.TRUE, lexer.FALSE:
		p.next()
		return &ast.BoolLiteral{S: sp(tok), Value: tok.Type == lexer.TRUE}, nil

	case lexer.NULL:
		p.next()
		return &ast.NullLiteral{S: sp(tok)}, nil

	case lexer.IDENT:
		p.next()
		if p.cur.Type != lexer.LPAREN {
			return &ast.Identifier{S: sp(tok), Name: tok.Lexeme}, nil
		}
		p.next()
		args, err := p.parseList(lexer.RPAREN, "call arguments")
		if err != nil {
			return nil, err
		}
		return &ast.CallExpr{S: sp(tok), Callee: tok.Lexeme, Args: args}, nil

	case lexer.LPAREN:
		p.next()
		expr, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if err := p.expect(lexer.RPAREN, "Expected ')'"); err != nil {
			return nil, err
		}
		return expr, nil

	case lexer.LBRACKET:
		p.next()
		elems, err := p.parseList(lexer.RBRACKET, "array literal")
		if err != nil {
			return nil, err
		}
		return &ast.ArrayLiteralExpr{S: sp(tok), Elements: elems}, nil

	case lexer.LBRACE:
		return p.parseMapLiteral()
	}
	return nil, p.errAt(tok, "Expected an expression")
}

// parseList parses [ expr ("," expr)* ] close, with the opener already consumed.
func (p *Parser) parseList(closer lexer.TokenType, what string) ([]ast.Expr, error) {
	items := []ast.Expr{}
	for p.cur.Type != closer {
		item, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		items = append(items, item)

		if p.cur.Type == lexer.COMMA {
			p.next()
			continue
		}
		if p.cur.Type != closer {
			return nil, p.errAt(p.cur, fmt.Sprintf("Expected ',' or closing bracket in %s", what))
		}
	}
	p.next()
	return items, nil
}

// mapLiteral = "{" [ STRING ":" expr ("," STRING ":" expr)* ] "}"
func (p *Parser) parseMapLiteral() (ast.Expr, error) {
	lbTok := p.cur
	p.next()

	entries := []ast.MapEntry{}
	for p.cur.Type != lexer.RBRACE {
		if p.cur.Type != lexer.STRING {
			return nil, p.errAt(p.cur, "Expected string key in map literal")
		}
		key := p.cur.Lexeme
		p.next()
		if err := p.expect(lexer.COLON, "Expected ':' after map key"); err != nil {
			return nil, err
		}
		val, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		entries = append(entries, ast.MapEntry{Key: key, Value: val})

		if p.cur.Type == lexer.COMMA {
			p.next()
			continue
		}
		if p.cur.Type != lexer.RBRACE {
			return nil, p.errAt(p.cur, "Expected ',' or '}' in map literal")
		}
	}
	p.next()
	return &ast.MapLiteralExpr{S: sp(lbTok), Entries: entries}, nil
}

func (p *Parser) errAt(tok lexer.Token, msg string) error {
	if tok.Type == lexer.EOF {
		return &lexer.SyntaxError{Msg: msg}
	}
	return &lexer.SyntaxError{Line: tok.Line, Col: tok.Col, Msg: fmt.Sprintf("%s (got %s)", msg, describe(tok))}
}

func describe(tok lexer.Token) string {
	switch tok.Type {
	case lexer.NEWLINE:
		return "end of line"
	case lexer.EOF:
		return "end of file"
	case lexer.IDENT, lexer.NUMBER:
		return fmt.Sprintf("%s %s", tok.Type, tok.Lexeme)
	case lexer.STRING:
		return fmt.Sprintf("STRING %q", tok.Lexeme)
	}
	return string(tok.Type)
}
