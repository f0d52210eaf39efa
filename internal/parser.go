package internal

import (
	"fmt"
	"strconv"

	"skink/internal/tokens"
)

// Operator precedence, lowest to highest. The gaps between ranks are what
// parseExpression compares against to decide whether to keep consuming.
const (
	_ int = iota
	lowest
	equality    // == !=
	relational  // < >
	additive    // + -
	multiplicative
	prefix // -x !x
	call   // f(x)
	index  // a[i]
)

var precedences = map[tokens.TokenType]int{
	tokens.EQ:       equality,
	tokens.NOT_EQ:   equality,
	tokens.LT:       relational,
	tokens.GT:       relational,
	tokens.PLUS:     additive,
	tokens.MINUS:    additive,
	tokens.SLASH:    multiplicative,
	tokens.ASTERISK: multiplicative,
	tokens.LPAREN:   call,
	tokens.LBRACKET: index,
}

type (
	prefixParseFn func() expression
	infixParseFn  func(expression) expression
)

// Parser turns a token stream into a Program, collecting syntax errors as it
// goes. A statement whose expression fails to parse is dropped; parsing then
// resumes at the next statement.
type Parser struct {
	l *Lexer

	curToken  tokens.Token
	peekToken tokens.Token

	errors []string

	prefixParseFns map[tokens.TokenType]prefixParseFn
	infixParseFns  map[tokens.TokenType]infixParseFn
}

// NewParser builds a parser with its prefix/infix handler tables and primes
// curToken/peekToken from the lexer.
func NewParser(l *Lexer) *Parser {
	p := &Parser{l: l}

	p.prefixParseFns = map[tokens.TokenType]prefixParseFn{
		tokens.IDENT:    p.parseIdentifier,
		tokens.INT:      p.parseIntegerLiteral,
		tokens.STRING:   p.parseStringLiteral,
		tokens.TRUE:     p.parseBooleanLiteral,
		tokens.FALSE:    p.parseBooleanLiteral,
		tokens.BANG:     p.parsePrefixExpression,
		tokens.MINUS:    p.parsePrefixExpression,
		tokens.LPAREN:   p.parseGroupedExpression,
		tokens.IF:       p.parseIfExpression,
		tokens.FUNCTION: p.parseFunctionLiteral,
		tokens.LBRACKET: p.parseArrayLiteral,
		tokens.LBRACE:   p.parseHashLiteral,
	}
	p.infixParseFns = map[tokens.TokenType]infixParseFn{
		tokens.PLUS:     p.parseInfixExpression,
		tokens.MINUS:    p.parseInfixExpression,
		tokens.SLASH:    p.parseInfixExpression,
		tokens.ASTERISK: p.parseInfixExpression,
		tokens.EQ:       p.parseInfixExpression,
		tokens.NOT_EQ:   p.parseInfixExpression,
		tokens.LT:       p.parseInfixExpression,
		tokens.GT:       p.parseInfixExpression,
		tokens.LPAREN:   p.parseCallExpression,
		tokens.LBRACKET: p.parseIndexExpression,
	}

	p.nextToken()
	p.nextToken()
	return p
}

// Errors returns the syntax errors collected so far.
func (p *Parser) Errors() []string {
	return p.errors
}

// ParseProgram parses statements until EOF. It keeps going after a failed
// statement so a single run can surface multiple diagnostics.
func (p *Parser) ParseProgram() *Program {
	program := &Program{}

	for p.curToken.Type != tokens.EOF {
		if stmt := p.parseStatement(); stmt != nil {
			program.Statements = append(program.Statements, stmt)
		}
		p.nextToken()
	}

	return program
}

func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	p.peekToken = p.l.NextToken()
}

func (p *Parser) curTokenIs(t tokens.TokenType) bool  { return p.curToken.Type == t }
func (p *Parser) peekTokenIs(t tokens.TokenType) bool { return p.peekToken.Type == t }

// expectPeek advances on a match; otherwise it records a mismatch error and
// leaves the parser where it was.
func (p *Parser) expectPeek(t tokens.TokenType) bool {
	if p.peekTokenIs(t) {
		p.nextToken()
		return true
	}
	p.peekError(t)
	return false
}

func (p *Parser) peekError(t tokens.TokenType) {
	p.errors = append(p.errors, fmt.Sprintf(
		"expected next token to be %s, got %s instead", t, p.peekToken.Type))
}

func (p *Parser) noPrefixParseFnError(t tokens.TokenType) {
	p.errors = append(p.errors, fmt.Sprintf("no prefix parse function for %s found", t))
}

func (p *Parser) peekPrecedence() int {
	if prec, ok := precedences[p.peekToken.Type]; ok {
		return prec
	}
	return lowest
}

func (p *Parser) curPrecedence() int {
	if prec, ok := precedences[p.curToken.Type]; ok {
		return prec
	}
	return lowest
}

func (p *Parser) parseStatement() statement {
	switch p.curToken.Type {
	case tokens.LET:
		return p.parseLetStatement()
	case tokens.RETURN:
		return p.parseReturnStatement()
	default:
		return p.parseExpressionStatement()
	}
}

func (p *Parser) parseLetStatement() statement {
	stmt := &letStatement{token: p.curToken}

	if !p.expectPeek(tokens.IDENT) {
		return nil
	}
	stmt.name = &identifier{token: p.curToken, value: p.curToken.Literal}

	if !p.expectPeek(tokens.ASSIGN) {
		return nil
	}
	p.nextToken()

	stmt.value = p.parseExpression(lowest)
	if stmt.value == nil {
		return nil
	}

	if p.peekTokenIs(tokens.SEMICOLON) {
		p.nextToken()
	}
	return stmt
}

func (p *Parser) parseReturnStatement() statement {
	stmt := &returnStatement{token: p.curToken}

	p.nextToken()
	stmt.returnValue = p.parseExpression(lowest)
	if stmt.returnValue == nil {
		return nil
	}

	if p.peekTokenIs(tokens.SEMICOLON) {
		p.nextToken()
	}
	return stmt
}

func (p *Parser) parseExpressionStatement() statement {
	stmt := &expressionStatement{token: p.curToken}

	stmt.expression = p.parseExpression(lowest)
	if stmt.expression == nil {
		return nil
	}

	// Trailing semicolons are optional.
	if p.peekTokenIs(tokens.SEMICOLON) {
		p.nextToken()
	}
	return stmt
}

// parseExpression is the precedence-climbing core: a prefix handler builds
// the left operand, then infix handlers fold in operators as long as their
// precedence exceeds the caller's floor.
func (p *Parser) parseExpression(precedence int) expression {
	prefixFn := p.prefixParseFns[p.curToken.Type]
	if prefixFn == nil {
		p.noPrefixParseFnError(p.curToken.Type)
		return nil
	}
	left := prefixFn()

	for left != nil && !p.peekTokenIs(tokens.SEMICOLON) && precedence < p.peekPrecedence() {
		infixFn := p.infixParseFns[p.peekToken.Type]
		if infixFn == nil {
			return left
		}
		p.nextToken()
		left = infixFn(left)
	}

	return left
}

func (p *Parser) parseIdentifier() expression {
	return &identifier{token: p.curToken, value: p.curToken.Literal}
}

func (p *Parser) parseIntegerLiteral() expression {
	lit := &integerLiteral{token: p.curToken}

	value, err := strconv.ParseInt(p.curToken.Literal, 0, 64)
	if err != nil {
		p.errors = append(p.errors, fmt.Sprintf(
			"could not parse %q as integer", p.curToken.Literal))
		return nil
	}
	lit.value = value
	return lit
}

func (p *Parser) parseStringLiteral() expression {
	return &stringLiteral{token: p.curToken, value: p.curToken.Literal}
}

func (p *Parser) parseBooleanLiteral() expression {
	return &booleanLiteral{token: p.curToken, value: p.curTokenIs(tokens.TRUE)}
}

func (p *Parser) parsePrefixExpression() expression {
	expr := &prefixExpression{token: p.curToken, operator: p.curToken.Literal}
	p.nextToken()
	expr.right = p.parseExpression(prefix)
	if expr.right == nil {
		return nil
	}
	return expr
}

func (p *Parser) parseInfixExpression(left expression) expression {
	expr := &infixExpression{
		token:    p.curToken,
		left:     left,
		operator: p.curToken.Literal,
	}

	precedence := p.curPrecedence()
	p.nextToken()
	expr.right = p.parseExpression(precedence)
	if expr.right == nil {
		return nil
	}
	return expr
}

func (p *Parser) parseGroupedExpression() expression {
	p.nextToken()
	expr := p.parseExpression(lowest)
	if !p.expectPeek(tokens.RPAREN) {
		return nil
	}
	return expr
}

func (p *Parser) parseIfExpression() expression {
	expr := &ifExpression{token: p.curToken}

	if !p.expectPeek(tokens.LPAREN) {
		return nil
	}
	p.nextToken()
	expr.condition = p.parseExpression(lowest)
	if expr.condition == nil {
		return nil
	}
	if !p.expectPeek(tokens.RPAREN) {
		return nil
	}
	if !p.expectPeek(tokens.LBRACE) {
		return nil
	}
	expr.consequence = p.parseBlockStatement()

	if p.peekTokenIs(tokens.ELSE) {
		p.nextToken()
		if !p.expectPeek(tokens.LBRACE) {
			return nil
		}
		expr.alternative = p.parseBlockStatement()
	}

	return expr
}

func (p *Parser) parseBlockStatement() *blockStatement {
	block := &blockStatement{token: p.curToken}

	p.nextToken()
	for !p.curTokenIs(tokens.RBRACE) && !p.curTokenIs(tokens.EOF) {
		if stmt := p.parseStatement(); stmt != nil {
			block.statements = append(block.statements, stmt)
		}
		p.nextToken()
	}

	return block
}

func (p *Parser) parseFunctionLiteral() expression {
	lit := &functionLiteral{token: p.curToken}

	if !p.expectPeek(tokens.LPAREN) {
		return nil
	}
	lit.parameters = p.parseFunctionParameters()
	if lit.parameters == nil {
		return nil
	}
	if !p.expectPeek(tokens.LBRACE) {
		return nil
	}
	lit.body = p.parseBlockStatement()
	return lit
}

func (p *Parser) parseFunctionParameters() []*identifier {
	params := []*identifier{}

	if p.peekTokenIs(tokens.RPAREN) {
		p.nextToken()
		return params
	}

	p.nextToken()
	params = append(params, &identifier{token: p.curToken, value: p.curToken.Literal})

	for p.peekTokenIs(tokens.COMMA) {
		p.nextToken()
		p.nextToken()
		params = append(params, &identifier{token: p.curToken, value: p.curToken.Literal})
	}

	if !p.expectPeek(tokens.RPAREN) {
		return nil
	}
	return params
}

func (p *Parser) parseCallExpression(function expression) expression {
	expr := &callExpression{token: p.curToken, function: function}
	expr.arguments = p.parseExpressionList(tokens.RPAREN)
	if expr.arguments == nil {
		return nil
	}
	return expr
}

func (p *Parser) parseArrayLiteral() expression {
	arr := &arrayLiteral{token: p.curToken}
	arr.elements = p.parseExpressionList(tokens.RBRACKET)
	if arr.elements == nil {
		return nil
	}
	return arr
}

// parseExpressionList handles the shared comma-separated form of call
// arguments and array elements, up to the given terminator.
func (p *Parser) parseExpressionList(end tokens.TokenType) []expression {
	list := []expression{}

	if p.peekTokenIs(end) {
		p.nextToken()
		return list
	}

	p.nextToken()
	first := p.parseExpression(lowest)
	if first == nil {
		return nil
	}
	list = append(list, first)

	for p.peekTokenIs(tokens.COMMA) {
		p.nextToken()
		p.nextToken()
		next := p.parseExpression(lowest)
		if next == nil {
			return nil
		}
		list = append(list, next)
	}

	if !p.expectPeek(end) {
		return nil
	}
	return list
}

func (p *Parser) parseHashLiteral() expression {
	hash := &hashLiteral{token: p.curToken}

	for !p.peekTokenIs(tokens.RBRACE) {
		p.nextToken()
		key := p.parseExpression(lowest)
		if key == nil {
			return nil
		}
		if !p.expectPeek(tokens.COLON) {
			return nil
		}
		p.nextToken()
		value := p.parseExpression(lowest)
		if value == nil {
			return nil
		}
		hash.pairs = append(hash.pairs, hashPairExpr{key: key, value: value})

		if !p.peekTokenIs(tokens.RBRACE) && !p.expectPeek(tokens.COMMA) {
			return nil
		}
	}

	if !p.expectPeek(tokens.RBRACE) {
		return nil
	}
	return hash
}

func (p *Parser) parseIndexExpression(left expression) expression {
	expr := &indexExpression{token: p.curToken, left: left}

	p.nextToken()
	expr.index = p.parseExpression(lowest)
	if expr.index == nil {
		return nil
	}
	if !p.expectPeek(tokens.RBRACKET) {
		return nil
	}
	return expr
}
