package parser

import (
	"strconv"
)

// Operator precedence levels, lowest first
const (
	PREC_LOWEST   = iota
	PREC_RELATION // == != < <= > >=
	PREC_SUM      // + - .+ .-
	PREC_PRODUCT  // * / .* ./
	PREC_PREFIX   // -x
	PREC_POSTFIX  // x'
)

var precedences = map[TokenType]int{
	TOKEN_EQ:        PREC_RELATION,
	TOKEN_NE:        PREC_RELATION,
	TOKEN_LT:        PREC_RELATION,
	TOKEN_LE:        PREC_RELATION,
	TOKEN_GT:        PREC_RELATION,
	TOKEN_GE:        PREC_RELATION,
	TOKEN_PLUS:      PREC_SUM,
	TOKEN_MINUS:     PREC_SUM,
	TOKEN_DOTPLUS:   PREC_SUM,
	TOKEN_DOTMINUS:  PREC_SUM,
	TOKEN_STAR:      PREC_PRODUCT,
	TOKEN_SLASH:     PREC_PRODUCT,
	TOKEN_DOTSTAR:   PREC_PRODUCT,
	TOKEN_DOTSLASH:  PREC_PRODUCT,
	TOKEN_TRANSPOSE: PREC_POSTFIX,
}

// Parser parses source code into an AST
type Parser struct {
	lexer   *Lexer
	current Token
	peek    Token
}

// NewParser creates a new Parser instance
func NewParser(input string) *Parser {
	p := &Parser{
		lexer: NewLexer(input),
	}
	// Read two tokens to initialize current and peek
	p.nextToken()
	p.nextToken()
	return p
}

// Parse parses a complete program from source text
func Parse(input string) (*Program, error) {
	return NewParser(input).ParseProgram()
}

// nextToken advances to the next token
func (p *Parser) nextToken() {
	p.current = p.peek
	p.peek = p.lexer.NextToken()
}

// expect consumes the current token if it has type t
func (p *Parser) expect(t TokenType) error {
	if p.current.Type != t {
		return p.errorf("expected '%s', got %s", t, describe(p.current))
	}
	p.nextToken()
	return nil
}

// ParseExpression parses an expression whose operators all bind tighter
// than prec
func (p *Parser) ParseExpression(prec int) (Expr, error) {
	left, err := p.parsePrefix()
	if err != nil {
		return nil, err
	}
	return p.parseInfix(left, prec)
}

// parseInfix extends left with binary and postfix operators while they
// bind tighter than prec
func (p *Parser) parseInfix(left Expr, prec int) (Expr, error) {
	for {
		opPrec, ok := precedences[p.current.Type]
		if !ok || opPrec <= prec {
			return left, nil
		}

		op := p.current
		if op.Type == TOKEN_TRANSPOSE {
			p.nextToken()
			left = &TransposeExpr{Pos: op.Position, Operand: left}
			continue
		}

		p.nextToken()
		right, err := p.ParseExpression(opPrec)
		if err != nil {
			return nil, err
		}

		switch op.Type {
		case TOKEN_DOTPLUS, TOKEN_DOTMINUS, TOKEN_DOTSTAR, TOKEN_DOTSLASH:
			left = &MatBinaryExpr{Pos: op.Position, Left: left, Operator: op.Type, Right: right}
		case TOKEN_PLUS, TOKEN_MINUS, TOKEN_STAR, TOKEN_SLASH:
			left = &BinaryExpr{Pos: op.Position, Left: left, Operator: op.Type, Right: right}
		default:
			left = &RelationExpr{Pos: op.Position, Left: left, Operator: op.Type, Right: right}
		}
	}
}

// parsePrefix parses a primary expression or a unary minus
func (p *Parser) parsePrefix() (Expr, error) {
	tok := p.current
	switch tok.Type {
	case TOKEN_INT:
		val, err := strconv.ParseInt(tok.Value, 10, 64)
		if err != nil {
			return nil, p.errorf("invalid integer literal %s", tok.Value)
		}
		p.nextToken()
		return &IntLiteral{Pos: tok.Position, Value: val}, nil

	case TOKEN_FLOAT:
		val, err := strconv.ParseFloat(tok.Value, 64)
		if err != nil {
			return nil, p.errorf("invalid float literal %s", tok.Value)
		}
		p.nextToken()
		return &FloatLiteral{Pos: tok.Position, Value: val}, nil

	case TOKEN_STRING:
		p.nextToken()
		return &StringLiteral{Pos: tok.Position, Value: tok.Literal}, nil

	case TOKEN_IDENTIFIER:
		p.nextToken()
		if p.current.Type != TOKEN_LBRACKET {
			return &VariableExpr{Pos: tok.Position, Name: tok.Value}, nil
		}
		row, col, err := p.parseIndexPair()
		if err != nil {
			return nil, err
		}
		return &AccessExpr{Pos: tok.Position, Name: tok.Value, Row: row, Col: col}, nil

	case TOKEN_MINUS:
		p.nextToken()
		operand, err := p.ParseExpression(PREC_PREFIX)
		if err != nil {
			return nil, err
		}
		return &UnaryMinusExpr{Pos: tok.Position, Operand: operand}, nil

	case TOKEN_LPAREN:
		p.nextToken()
		expr, err := p.ParseExpression(PREC_LOWEST)
		if err != nil {
			return nil, err
		}
		if err := p.expect(TOKEN_RPAREN); err != nil {
			return nil, err
		}
		return expr, nil

	case TOKEN_LBRACKET:
		return p.parseMatrixLiteral()

	case TOKEN_EYE, TOKEN_ZEROS, TOKEN_ONES:
		return p.parseGen()

	default:
		return nil, p.errorf("unexpected %s in expression", describe(tok))
	}
}

// parseIndexPair parses [row, col]
func (p *Parser) parseIndexPair() (Expr, Expr, error) {
	if err := p.expect(TOKEN_LBRACKET); err != nil {
		return nil, nil, err
	}
	row, err := p.ParseExpression(PREC_LOWEST)
	if err != nil {
		return nil, nil, err
	}
	if err := p.expect(TOKEN_COMMA); err != nil {
		return nil, nil, err
	}
	col, err := p.ParseExpression(PREC_LOWEST)
	if err != nil {
		return nil, nil, err
	}
	if err := p.expect(TOKEN_RBRACKET); err != nil {
		return nil, nil, err
	}
	return row, col, nil
}

// parseMatrixLiteral parses [a, b; c, d] or the nested form [[a, b], [c, d]]
func (p *Parser) parseMatrixLiteral() (Expr, error) {
	pos := p.current.Position
	p.nextToken() // consume '['

	if p.current.Type == TOKEN_RBRACKET {
		return nil, p.errorf("empty matrix literal")
	}

	var rows [][]Expr
	var row []Expr
	for {
		cell, err := p.ParseExpression(PREC_LOWEST)
		if err != nil {
			return nil, err
		}
		row = append(row, cell)

		switch p.current.Type {
		case TOKEN_COMMA:
			p.nextToken()
		case TOKEN_SEMICOLON:
			rows = append(rows, row)
			row = nil
			p.nextToken()
		case TOKEN_RBRACKET:
			rows = append(rows, row)
			p.nextToken()
			return &MatrixExpr{Pos: pos, Rows: flattenNestedRows(rows)}, nil
		default:
			return nil, p.errorf("expected ',', ';' or ']' in matrix literal, got %s", describe(p.current))
		}
	}
}

// flattenNestedRows turns [[1, 2], [3, 4]] (one row of single-row
// literals) into the two-row form
func flattenNestedRows(rows [][]Expr) [][]Expr {
	if len(rows) != 1 {
		return rows
	}
	var flat [][]Expr
	for _, cell := range rows[0] {
		inner, ok := cell.(*MatrixExpr)
		if !ok || len(inner.Rows) != 1 {
			return rows
		}
		flat = append(flat, inner.Rows[0])
	}
	return flat
}

// parseGen parses eye(n), zeros(r[, c]) and ones(r[, c])
func (p *Parser) parseGen() (Expr, error) {
	tok := p.current
	p.nextToken()

	if err := p.expect(TOKEN_LPAREN); err != nil {
		return nil, err
	}
	var args []Expr
	for {
		arg, err := p.ParseExpression(PREC_LOWEST)
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		if p.current.Type != TOKEN_COMMA {
			break
		}
		p.nextToken()
	}
	if err := p.expect(TOKEN_RPAREN); err != nil {
		return nil, err
	}

	name := tok.Value
	switch {
	case tok.Type == TOKEN_EYE && len(args) != 1:
		return nil, &Error{Pos: tok.Position, Msg: name + " expects 1 argument"}
	case len(args) > 2:
		return nil, &Error{Pos: tok.Position, Msg: name + " expects 1 or 2 arguments"}
	}
	return &GenExpr{Pos: tok.Position, Func: tok.Type, Args: args}, nil
}
