package internal

import "skink/internal/tokens"

// Lexer scans source text into tokens on demand. Once the end of input is
// reached it keeps handing back EOF tokens.
type Lexer struct {
	source  string
	pos     int // current char
	readPos int // next char
	ch      byte
}

// NewLexer returns a lexer primed on the first character of source.
func NewLexer(source string) *Lexer {
	l := &Lexer{source: source}
	l.readChar()
	return l
}

// NextToken consumes and returns the next token, applying maximal munch to
// the two-character operators == and !=.
func (l *Lexer) NextToken() tokens.Token {
	var tok tokens.Token

	l.skipWhitespace()

	switch l.ch {
	case '=':
		if l.peekChar() == '=' {
			l.readChar()
			tok = tokens.Token{Type: tokens.EQ, Literal: "=="}
		} else {
			tok = newToken(tokens.ASSIGN, l.ch)
		}
	case '!':
		if l.peekChar() == '=' {
			l.readChar()
			tok = tokens.Token{Type: tokens.NOT_EQ, Literal: "!="}
		} else {
			tok = newToken(tokens.BANG, l.ch)
		}
	case '+':
		tok = newToken(tokens.PLUS, l.ch)
	case '-':
		tok = newToken(tokens.MINUS, l.ch)
	case '*':
		tok = newToken(tokens.ASTERISK, l.ch)
	case '/':
		tok = newToken(tokens.SLASH, l.ch)
	case '<':
		tok = newToken(tokens.LT, l.ch)
	case '>':
		tok = newToken(tokens.GT, l.ch)
	case ',':
		tok = newToken(tokens.COMMA, l.ch)
	case ';':
		tok = newToken(tokens.SEMICOLON, l.ch)
	case ':':
		tok = newToken(tokens.COLON, l.ch)
	case '(':
		tok = newToken(tokens.LPAREN, l.ch)
	case ')':
		tok = newToken(tokens.RPAREN, l.ch)
	case '{':
		tok = newToken(tokens.LBRACE, l.ch)
	case '}':
		tok = newToken(tokens.RBRACE, l.ch)
	case '[':
		tok = newToken(tokens.LBRACKET, l.ch)
	case ']':
		tok = newToken(tokens.RBRACKET, l.ch)
	case '"':
		tok = tokens.Token{Type: tokens.STRING, Literal: l.readString()}
	case 0:
		tok = tokens.Token{Type: tokens.EOF, Literal: ""}
	default:
		if isLetter(l.ch) {
			lit := l.readIdentifier()
			return tokens.Token{Type: tokens.LookupIdent(lit), Literal: lit}
		}
		if isDigit(l.ch) {
			return tokens.Token{Type: tokens.INT, Literal: l.readNumber()}
		}
		tok = newToken(tokens.ILLEGAL, l.ch)
	}

	l.readChar()
	return tok
}

func (l *Lexer) readChar() {
	if l.readPos >= len(l.source) {
		l.ch = 0
	} else {
		l.ch = l.source[l.readPos]
	}
	l.pos = l.readPos
	l.readPos++
}

func (l *Lexer) peekChar() byte {
	if l.readPos >= len(l.source) {
		return 0
	}
	return l.source[l.readPos]
}

func (l *Lexer) skipWhitespace() {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r' {
		l.readChar()
	}
}

func (l *Lexer) readIdentifier() string {
	start := l.pos
	for isLetter(l.ch) || isDigit(l.ch) {
		l.readChar()
	}
	return l.source[start:l.pos]
}

func (l *Lexer) readNumber() string {
	start := l.pos
	for isDigit(l.ch) {
		l.readChar()
	}
	return l.source[start:l.pos]
}

// readString consumes up to the closing quote or end of input.
func (l *Lexer) readString() string {
	start := l.pos + 1
	for {
		l.readChar()
		if l.ch == '"' || l.ch == 0 {
			break
		}
	}
	return l.source[start:l.pos]
}

func newToken(tokenType tokens.TokenType, ch byte) tokens.Token {
	return tokens.Token{Type: tokenType, Literal: string(ch)}
}

func isLetter(ch byte) bool {
	return 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z' || ch == '_'
}

func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}
