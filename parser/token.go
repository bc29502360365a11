package parser

// TokenType represents different types of lexical tokens
type TokenType int

const (
	// Special tokens
	TOKEN_EOF TokenType = iota
	TOKEN_ILLEGAL

	// Literals
	TOKEN_INT    // 42
	TOKEN_FLOAT  // 3.14
	TOKEN_STRING // "hello"

	// Keywords
	TOKEN_IF
	TOKEN_ELSE
	TOKEN_WHILE
	TOKEN_FOR
	TOKEN_BREAK
	TOKEN_CONTINUE
	TOKEN_RETURN
	TOKEN_PRINT
	TOKEN_EYE
	TOKEN_ZEROS
	TOKEN_ONES

	// Identifiers
	TOKEN_IDENTIFIER

	// Operators
	TOKEN_PLUS  // +
	TOKEN_MINUS // -
	TOKEN_STAR  // *
	TOKEN_SLASH // /

	TOKEN_DOTPLUS  // .+
	TOKEN_DOTMINUS // .-
	TOKEN_DOTSTAR  // .*
	TOKEN_DOTSLASH // ./

	TOKEN_EQ // ==
	TOKEN_NE // !=
	TOKEN_LT // <
	TOKEN_GT // >
	TOKEN_LE // <=
	TOKEN_GE // >=

	TOKEN_ASSIGN    // =
	TOKEN_ADDASSIGN // +=
	TOKEN_SUBASSIGN // -=
	TOKEN_MULASSIGN // *=
	TOKEN_DIVASSIGN // /=

	TOKEN_TRANSPOSE // '

	// Delimiters
	TOKEN_LPAREN    // (
	TOKEN_RPAREN    // )
	TOKEN_LBRACE    // {
	TOKEN_RBRACE    // }
	TOKEN_LBRACKET  // [
	TOKEN_RBRACKET  // ]
	TOKEN_COMMA     // ,
	TOKEN_SEMICOLON // ;
	TOKEN_COLON     // :
)

// Position represents a position in the source code
type Position struct {
	Line   int
	Column int
	Offset int
}

// Token represents a lexical token
type Token struct {
	Type     TokenType
	Value    string
	Literal  string // Decoded string value (for TOKEN_STRING)
	Position Position
}

var keywords = map[string]TokenType{
	"if":       TOKEN_IF,
	"else":     TOKEN_ELSE,
	"while":    TOKEN_WHILE,
	"for":      TOKEN_FOR,
	"break":    TOKEN_BREAK,
	"continue": TOKEN_CONTINUE,
	"return":   TOKEN_RETURN,
	"print":    TOKEN_PRINT,
	"eye":      TOKEN_EYE,
	"zeros":    TOKEN_ZEROS,
	"ones":     TOKEN_ONES,
}

// LookupIdent returns the keyword token for ident, or TOKEN_IDENTIFIER
func LookupIdent(ident string) TokenType {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return TOKEN_IDENTIFIER
}

var tokenNames = [...]string{
	TOKEN_EOF:        "EOF",
	TOKEN_ILLEGAL:    "ILLEGAL",
	TOKEN_INT:        "INT",
	TOKEN_FLOAT:      "FLOAT",
	TOKEN_STRING:     "STRING",
	TOKEN_IF:         "IF",
	TOKEN_ELSE:       "ELSE",
	TOKEN_WHILE:      "WHILE",
	TOKEN_FOR:        "FOR",
	TOKEN_BREAK:      "BREAK",
	TOKEN_CONTINUE:   "CONTINUE",
	TOKEN_RETURN:     "RETURN",
	TOKEN_PRINT:      "PRINT",
	TOKEN_EYE:        "EYE",
	TOKEN_ZEROS:      "ZEROS",
	TOKEN_ONES:       "ONES",
	TOKEN_IDENTIFIER: "IDENTIFIER",
	TOKEN_PLUS:       "+",
	TOKEN_MINUS:      "-",
	TOKEN_STAR:       "*",
	TOKEN_SLASH:      "/",
	TOKEN_DOTPLUS:    ".+",
	TOKEN_DOTMINUS:   ".-",
	TOKEN_DOTSTAR:    ".*",
	TOKEN_DOTSLASH:   "./",
	TOKEN_EQ:         "==",
	TOKEN_NE:         "!=",
	TOKEN_LT:         "<",
	TOKEN_GT:         ">",
	TOKEN_LE:         "<=",
	TOKEN_GE:         ">=",
	TOKEN_ASSIGN:     "=",
	TOKEN_ADDASSIGN:  "+=",
	TOKEN_SUBASSIGN:  "-=",
	TOKEN_MULASSIGN:  "*=",
	TOKEN_DIVASSIGN:  "/=",
	TOKEN_TRANSPOSE:  "'",
	TOKEN_LPAREN:     "(",
	TOKEN_RPAREN:     ")",
	TOKEN_LBRACE:     "{",
	TOKEN_RBRACE:     "}",
	TOKEN_LBRACKET:   "[",
	TOKEN_RBRACKET:   "]",
	TOKEN_COMMA:      ",",
	TOKEN_SEMICOLON:  ";",
	TOKEN_COLON:      ":",
}

// String returns a string representation of the token type
func (t TokenType) String() string {
	if int(t) >= 0 && int(t) < len(tokenNames) && tokenNames[t] != "" {
		return tokenNames[t]
	}
	return "UNKNOWN"
}

// IsAssignOp reports whether t is = or one of the compound assignments
func (t TokenType) IsAssignOp() bool {
	switch t {
	case TOKEN_ASSIGN, TOKEN_ADDASSIGN, TOKEN_SUBASSIGN, TOKEN_MULASSIGN, TOKEN_DIVASSIGN:
		return true
	}
	return false
}
