package parser

// ParseProgram parses a complete program (sequence of statements)
func (p *Parser) ParseProgram() (*Program, error) {
	prog := &Program{Pos: p.current.Position}

	for {
		p.skipEmptyStatements()
		if p.current.Type == TOKEN_EOF {
			break
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		prog.Stmts = append(prog.Stmts, stmt)
	}

	return prog, nil
}

// skipEmptyStatements consumes stray semicolons
func (p *Parser) skipEmptyStatements() {
	for p.current.Type == TOKEN_SEMICOLON {
		p.nextToken()
	}
}

// parseStatement parses a single statement
func (p *Parser) parseStatement() (Stmt, error) {
	switch p.current.Type {
	case TOKEN_IF:
		return p.parseIfStatement()
	case TOKEN_WHILE:
		return p.parseWhileStatement()
	case TOKEN_FOR:
		return p.parseForStatement()
	case TOKEN_RETURN:
		return p.parseReturnStatement()
	case TOKEN_BREAK:
		pos := p.current.Position
		p.nextToken()
		if err := p.expectTerminator(); err != nil {
			return nil, err
		}
		return &BreakStmt{Pos: pos}, nil
	case TOKEN_CONTINUE:
		pos := p.current.Position
		p.nextToken()
		if err := p.expectTerminator(); err != nil {
			return nil, err
		}
		return &ContinueStmt{Pos: pos}, nil
	case TOKEN_PRINT:
		return p.parsePrintStatement()
	case TOKEN_LBRACE:
		pos := p.current.Position
		body, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		return &ScopeStmt{Pos: pos, Body: body}, nil
	case TOKEN_IDENTIFIER:
		return p.parseAssignment()
	default:
		return nil, p.errorf("unexpected %s at start of statement", describe(p.current))
	}
}

// expectTerminator consumes the ';' ending a simple statement.
// The semicolon may be omitted before '}' or at end of input.
func (p *Parser) expectTerminator() error {
	switch p.current.Type {
	case TOKEN_SEMICOLON:
		p.nextToken()
		return nil
	case TOKEN_RBRACE, TOKEN_EOF:
		return nil
	default:
		return p.errorf("expected ';', got %s", describe(p.current))
	}
}

// parseBlock parses { stmt* }
func (p *Parser) parseBlock() ([]Stmt, error) {
	if err := p.expect(TOKEN_LBRACE); err != nil {
		return nil, err
	}
	stmts := []Stmt{}
	for {
		p.skipEmptyStatements()
		if p.current.Type == TOKEN_RBRACE {
			p.nextToken()
			return stmts, nil
		}
		if p.current.Type == TOKEN_EOF {
			return nil, p.errorf("expected '}' before end of input")
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}
}

// parseBody parses the body of if/while/for: a block or a single statement
func (p *Parser) parseBody() ([]Stmt, error) {
	if p.current.Type == TOKEN_LBRACE {
		return p.parseBlock()
	}
	stmt, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	return []Stmt{stmt}, nil
}

// parseCondition parses ( expr )
func (p *Parser) parseCondition() (Expr, error) {
	if err := p.expect(TOKEN_LPAREN); err != nil {
		return nil, err
	}
	cond, err := p.ParseExpression(PREC_LOWEST)
	if err != nil {
		return nil, err
	}
	if err := p.expect(TOKEN_RPAREN); err != nil {
		return nil, err
	}
	return cond, nil
}

// parseIfStatement parses if/else; "else if" nests an if in the else branch
func (p *Parser) parseIfStatement() (Stmt, error) {
	pos := p.current.Position
	p.nextToken() // consume 'if'

	condition, err := p.parseCondition()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBody()
	if err != nil {
		return nil, err
	}

	if p.current.Type != TOKEN_ELSE {
		return &IfStmt{Pos: pos, Condition: condition, Body: body}, nil
	}
	p.nextToken() // consume 'else'

	var elseBody []Stmt
	if p.current.Type == TOKEN_IF {
		nested, err := p.parseIfStatement()
		if err != nil {
			return nil, err
		}
		elseBody = []Stmt{nested}
	} else {
		elseBody, err = p.parseBody()
		if err != nil {
			return nil, err
		}
	}

	return &IfElseStmt{Pos: pos, Condition: condition, Body: body, Else: elseBody}, nil
}

// parseWhileStatement parses while (cond) body
func (p *Parser) parseWhileStatement() (Stmt, error) {
	pos := p.current.Position
	p.nextToken() // consume 'while'

	condition, err := p.parseCondition()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBody()
	if err != nil {
		return nil, err
	}

	return &WhileStmt{Pos: pos, Condition: condition, Body: body}, nil
}

// parseForStatement parses for i = start : limit body (',' may replace ':')
func (p *Parser) parseForStatement() (Stmt, error) {
	pos := p.current.Position
	p.nextToken() // consume 'for'

	if p.current.Type != TOKEN_IDENTIFIER {
		return nil, p.errorf("expected loop variable after 'for', got %s", describe(p.current))
	}
	name := p.current.Value
	p.nextToken()

	if err := p.expect(TOKEN_ASSIGN); err != nil {
		return nil, err
	}
	start, err := p.ParseExpression(PREC_LOWEST)
	if err != nil {
		return nil, err
	}

	if p.current.Type != TOKEN_COLON && p.current.Type != TOKEN_COMMA {
		return nil, p.errorf("expected ':' or ',' in for range, got %s", describe(p.current))
	}
	p.nextToken()

	limit, err := p.ParseExpression(PREC_LOWEST)
	if err != nil {
		return nil, err
	}
	body, err := p.parseBody()
	if err != nil {
		return nil, err
	}

	return &ForStmt{Pos: pos, Var: name, Start: start, Limit: limit, Body: body}, nil
}

// parseReturnStatement parses return [expr]
func (p *Parser) parseReturnStatement() (Stmt, error) {
	pos := p.current.Position
	p.nextToken() // consume 'return'

	var value Expr
	switch p.current.Type {
	case TOKEN_SEMICOLON, TOKEN_RBRACE, TOKEN_EOF:
	default:
		var err error
		value, err = p.ParseExpression(PREC_LOWEST)
		if err != nil {
			return nil, err
		}
	}
	if err := p.expectTerminator(); err != nil {
		return nil, err
	}

	return &ReturnStmt{Pos: pos, Value: value}, nil
}

// parsePrintStatement parses print a, b and the call form print(a, b)
func (p *Parser) parsePrintStatement() (Stmt, error) {
	pos := p.current.Position
	p.nextToken() // consume 'print'

	var args []Expr
	if p.current.Type == TOKEN_LPAREN {
		p.nextToken()
		first, err := p.ParseExpression(PREC_LOWEST)
		if err != nil {
			return nil, err
		}
		if p.current.Type == TOKEN_COMMA {
			// print(a, b, ...)
			args = append(args, first)
			for p.current.Type == TOKEN_COMMA {
				p.nextToken()
				arg, err := p.ParseExpression(PREC_LOWEST)
				if err != nil {
					return nil, err
				}
				args = append(args, arg)
			}
			if err := p.expect(TOKEN_RPAREN); err != nil {
				return nil, err
			}
		} else {
			// print (expr) ... where the parentheses only group
			if err := p.expect(TOKEN_RPAREN); err != nil {
				return nil, err
			}
			expr, err := p.parseInfix(first, PREC_LOWEST)
			if err != nil {
				return nil, err
			}
			args = append(args, expr)
			if args, err = p.parseMoreArgs(args); err != nil {
				return nil, err
			}
		}
	} else {
		first, err := p.ParseExpression(PREC_LOWEST)
		if err != nil {
			return nil, err
		}
		if args, err = p.parseMoreArgs([]Expr{first}); err != nil {
			return nil, err
		}
	}

	if err := p.expectTerminator(); err != nil {
		return nil, err
	}
	return &PrintStmt{Pos: pos, Args: args}, nil
}

// parseMoreArgs appends any further ", expr" arguments
func (p *Parser) parseMoreArgs(args []Expr) ([]Expr, error) {
	for p.current.Type == TOKEN_COMMA {
		p.nextToken()
		arg, err := p.ParseExpression(PREC_LOWEST)
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
	}
	return args, nil
}

// parseAssignment parses name op= expr and name[row, col] op= expr
func (p *Parser) parseAssignment() (Stmt, error) {
	pos := p.current.Position
	name := p.current.Value
	p.nextToken()

	if p.current.Type == TOKEN_LBRACKET {
		row, col, err := p.parseIndexPair()
		if err != nil {
			return nil, err
		}
		op, value, err := p.parseAssignTail(name)
		if err != nil {
			return nil, err
		}
		return &ArrAssignStmt{Pos: pos, Name: name, Row: row, Col: col, Operator: op, Value: value}, nil
	}

	op, value, err := p.parseAssignTail(name)
	if err != nil {
		return nil, err
	}
	return &AssignStmt{Pos: pos, Name: name, Operator: op, Value: value}, nil
}

// parseAssignTail parses "op= expr ;"
func (p *Parser) parseAssignTail(name string) (TokenType, Expr, error) {
	op := p.current.Type
	if !op.IsAssignOp() {
		return 0, nil, p.errorf("expected assignment to %q, got %s", name, describe(p.current))
	}
	p.nextToken()

	value, err := p.ParseExpression(PREC_LOWEST)
	if err != nil {
		return 0, nil, err
	}
	if err := p.expectTerminator(); err != nil {
		return 0, nil, err
	}
	return op, value, nil
}
