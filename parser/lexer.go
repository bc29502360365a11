package parser

import (
	"strings"
	"unicode"
)

// Lexer tokenizes source code
type Lexer struct {
	input        string
	position     int  // current position in input (points to current char)
	readPosition int  // current reading position in input (after current char)
	ch           byte // current char under examination
	line         int
	column       int
}

// NewLexer creates a new Lexer instance
func NewLexer(input string) *Lexer {
	l := &Lexer{
		input:  input,
		line:   1,
		column: 0,
	}
	l.readChar()
	return l
}

// readChar reads the next character and advances position
func (l *Lexer) readChar() {
	if l.ch == '\n' {
		l.line++
		l.column = 0
	}
	if l.readPosition >= len(l.input) {
		l.ch = 0 // ASCII NUL
	} else {
		l.ch = l.input[l.readPosition]
	}
	l.position = l.readPosition
	l.readPosition++
	l.column++
}

// peekChar returns the next character without advancing
func (l *Lexer) peekChar() byte {
	if l.readPosition >= len(l.input) {
		return 0
	}
	return l.input[l.readPosition]
}

// skipWhitespaceAndComments skips blanks and line comments (# or //)
func (l *Lexer) skipWhitespaceAndComments() {
	for {
		switch {
		case l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r':
			l.readChar()
		case l.ch == '#' || (l.ch == '/' && l.peekChar() == '/'):
			for l.ch != '\n' && l.ch != 0 {
				l.readChar()
			}
		default:
			return
		}
	}
}

// NextToken returns the next token from the input
func (l *Lexer) NextToken() Token {
	l.skipWhitespaceAndComments()

	tok := Token{
		Position: Position{
			Line:   l.line,
			Column: l.column,
			Offset: l.position,
		},
	}

	// single makes a one-character token and advances
	single := func(t TokenType) Token {
		tok.Type = t
		tok.Value = string(l.ch)
		l.readChar()
		return tok
	}
	// pair makes a two-character token when the next char matches, else falls back
	pair := func(next byte, two, one TokenType) Token {
		if l.peekChar() == next {
			start := l.position
			l.readChar()
			l.readChar()
			tok.Type = two
			tok.Value = l.input[start:l.position]
			return tok
		}
		return single(one)
	}

	switch l.ch {
	case 0:
		tok.Type = TOKEN_EOF
		return tok
	case '+':
		return pair('=', TOKEN_ADDASSIGN, TOKEN_PLUS)
	case '-':
		return pair('=', TOKEN_SUBASSIGN, TOKEN_MINUS)
	case '*':
		return pair('=', TOKEN_MULASSIGN, TOKEN_STAR)
	case '/':
		return pair('=', TOKEN_DIVASSIGN, TOKEN_SLASH)
	case '=':
		return pair('=', TOKEN_EQ, TOKEN_ASSIGN)
	case '<':
		return pair('=', TOKEN_LE, TOKEN_LT)
	case '>':
		return pair('=', TOKEN_GE, TOKEN_GT)
	case '!':
		return pair('=', TOKEN_NE, TOKEN_ILLEGAL)
	case '.':
		if isDigit(l.peekChar()) {
			return l.readNumber()
		}
		return l.readDottedOperator()
	case '\'':
		return single(TOKEN_TRANSPOSE)
	case '"':
		return l.readString()
	case '(':
		return single(TOKEN_LPAREN)
	case ')':
		return single(TOKEN_RPAREN)
	case '{':
		return single(TOKEN_LBRACE)
	case '}':
		return single(TOKEN_RBRACE)
	case '[':
		return single(TOKEN_LBRACKET)
	case ']':
		return single(TOKEN_RBRACKET)
	case ',':
		return single(TOKEN_COMMA)
	case ';':
		return single(TOKEN_SEMICOLON)
	case ':':
		return single(TOKEN_COLON)
	}

	if isLetter(l.ch) {
		start := l.position
		for isLetter(l.ch) || isDigit(l.ch) {
			l.readChar()
		}
		tok.Value = l.input[start:l.position]
		tok.Type = LookupIdent(tok.Value)
		return tok
	}
	if isDigit(l.ch) {
		return l.readNumber()
	}
	return single(TOKEN_ILLEGAL)
}

// readDottedOperator reads one of the elementwise operators .+ .- .* ./
func (l *Lexer) readDottedOperator() Token {
	tok := Token{Position: Position{Line: l.line, Column: l.column, Offset: l.position}}
	var t TokenType
	switch l.peekChar() {
	case '+':
		t = TOKEN_DOTPLUS
	case '-':
		t = TOKEN_DOTMINUS
	case '*':
		t = TOKEN_DOTSTAR
	case '/':
		t = TOKEN_DOTSLASH
	default:
		tok.Type = TOKEN_ILLEGAL
		tok.Value = "."
		l.readChar()
		return tok
	}
	start := l.position
	l.readChar()
	l.readChar()
	tok.Type = t
	tok.Value = l.input[start:l.position]
	return tok
}

// readNumber reads an integer or float literal.
// A '.' only belongs to the number when a digit follows it, so "1.*2"
// lexes as 1 .* 2.
func (l *Lexer) readNumber() Token {
	tok := Token{
		Type:     TOKEN_INT,
		Position: Position{Line: l.line, Column: l.column, Offset: l.position},
	}
	start := l.position

	for isDigit(l.ch) {
		l.readChar()
	}
	if l.ch == '.' && isDigit(l.peekChar()) {
		tok.Type = TOKEN_FLOAT
		l.readChar()
		for isDigit(l.ch) {
			l.readChar()
		}
	}
	if l.ch == 'e' || l.ch == 'E' {
		next := l.peekChar()
		if isDigit(next) || ((next == '+' || next == '-') && l.readPosition+1 < len(l.input) && isDigit(l.input[l.readPosition+1])) {
			tok.Type = TOKEN_FLOAT
			l.readChar()
			if l.ch == '+' || l.ch == '-' {
				l.readChar()
			}
			for isDigit(l.ch) {
				l.readChar()
			}
		}
	}

	tok.Value = l.input[start:l.position]
	return tok
}

// readString reads a double-quoted string literal with \" \\ \n \t escapes.
// An unterminated string yields an ILLEGAL token at EOF.
func (l *Lexer) readString() Token {
	tok := Token{
		Type:     TOKEN_STRING,
		Position: Position{Line: l.line, Column: l.column, Offset: l.position},
	}
	start := l.position
	l.readChar() // skip opening quote

	var sb strings.Builder
	for l.ch != '"' {
		if l.ch == 0 {
			tok.Type = TOKEN_ILLEGAL
			tok.Value = l.input[start:l.position]
			return tok
		}
		if l.ch == '\\' {
			l.readChar()
			switch l.ch {
			case 'n':
				sb.WriteByte('\n')
			case 't':
				sb.WriteByte('\t')
			case 0:
				continue
			default:
				sb.WriteByte(l.ch)
			}
			l.readChar()
			continue
		}
		sb.WriteByte(l.ch)
		l.readChar()
	}
	l.readChar() // skip closing quote

	tok.Value = l.input[start:l.position]
	tok.Literal = sb.String()
	return tok
}

// isLetter returns true if the character is a letter or underscore
func isLetter(ch byte) bool {
	return unicode.IsLetter(rune(ch)) || ch == '_'
}

// isDigit returns true if the character is a digit
func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}
