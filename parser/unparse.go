package parser

import (
	"strconv"
	"strings"
)

// UnparseProgram converts AST statements back to source code lines
func UnparseProgram(prog *Program) []string {
	lines := []string{}
	for _, stmt := range prog.Stmts {
		lines = append(lines, unparseStmt(stmt, 0))
	}
	return lines
}

// UnparseExpr converts an expression back to source code, adding
// parentheses only where precedence requires them
func UnparseExpr(expr Expr) string {
	return unparseExpr(expr, PREC_LOWEST)
}

// unparseStmt converts a statement to source code
func unparseStmt(stmt Stmt, indent int) string {
	indentStr := strings.Repeat("  ", indent)

	switch s := stmt.(type) {
	case *PrintStmt:
		args := make([]string, len(s.Args))
		for i, arg := range s.Args {
			args[i] = unparseExpr(arg, PREC_LOWEST)
		}
		return indentStr + "print " + strings.Join(args, ", ") + ";"

	case *AssignStmt:
		return indentStr + s.Name + " " + s.Operator.String() + " " + unparseExpr(s.Value, PREC_LOWEST) + ";"

	case *ArrAssignStmt:
		return indentStr + s.Name + "[" + unparseExpr(s.Row, PREC_LOWEST) + ", " + unparseExpr(s.Col, PREC_LOWEST) + "] " +
			s.Operator.String() + " " + unparseExpr(s.Value, PREC_LOWEST) + ";"

	case *IfStmt:
		return indentStr + "if (" + unparseExpr(s.Condition, PREC_LOWEST) + ") " + unparseBlock(s.Body, indent)

	case *IfElseStmt:
		return indentStr + "if (" + unparseExpr(s.Condition, PREC_LOWEST) + ") " + unparseBlock(s.Body, indent) +
			" else " + unparseBlock(s.Else, indent)

	case *WhileStmt:
		return indentStr + "while (" + unparseExpr(s.Condition, PREC_LOWEST) + ") " + unparseBlock(s.Body, indent)

	case *ForStmt:
		return indentStr + "for " + s.Var + " = " + unparseExpr(s.Start, PREC_LOWEST) + ":" +
			unparseExpr(s.Limit, PREC_LOWEST) + " " + unparseBlock(s.Body, indent)

	case *ScopeStmt:
		return indentStr + unparseBlock(s.Body, indent)

	case *BreakStmt:
		return indentStr + "break;"

	case *ContinueStmt:
		return indentStr + "continue;"

	case *ReturnStmt:
		if s.Value == nil {
			return indentStr + "return;"
		}
		return indentStr + "return " + unparseExpr(s.Value, PREC_LOWEST) + ";"

	default:
		return indentStr + "/* unknown statement */"
	}
}

// unparseBlock renders { ... } with the body indented one level
func unparseBlock(body []Stmt, indent int) string {
	if len(body) == 0 {
		return "{}"
	}
	var sb strings.Builder
	sb.WriteString("{\n")
	for _, stmt := range body {
		sb.WriteString(unparseStmt(stmt, indent+1))
		sb.WriteByte('\n')
	}
	sb.WriteString(strings.Repeat("  ", indent) + "}")
	return sb.String()
}

// unparseExpr converts an expression to source code.
// outer is the precedence of the enclosing operator.
func unparseExpr(expr Expr, outer int) string {
	switch e := expr.(type) {
	case *IntLiteral:
		return strconv.FormatInt(e.Value, 10)

	case *FloatLiteral:
		s := strconv.FormatFloat(e.Value, 'g', -1, 64)
		if !strings.ContainsAny(s, ".eE") {
			s += ".0"
		}
		return s

	case *StringLiteral:
		return strconv.Quote(e.Value)

	case *VariableExpr:
		return e.Name

	case *AccessExpr:
		return e.Name + "[" + unparseExpr(e.Row, PREC_LOWEST) + ", " + unparseExpr(e.Col, PREC_LOWEST) + "]"

	case *BinaryExpr:
		return unparseInfix(e.Left, e.Operator, e.Right, outer)

	case *MatBinaryExpr:
		return unparseInfix(e.Left, e.Operator, e.Right, outer)

	case *RelationExpr:
		return unparseInfix(e.Left, e.Operator, e.Right, outer)

	case *UnaryMinusExpr:
		return wrap("-"+unparseExpr(e.Operand, PREC_PREFIX), PREC_PREFIX, outer)

	case *TransposeExpr:
		return unparseExpr(e.Operand, PREC_PREFIX) + "'"

	case *MatrixExpr:
		rows := make([]string, len(e.Rows))
		for i, row := range e.Rows {
			cells := make([]string, len(row))
			for j, cell := range row {
				cells[j] = unparseExpr(cell, PREC_LOWEST)
			}
			rows[i] = strings.Join(cells, ", ")
		}
		return "[" + strings.Join(rows, "; ") + "]"

	case *GenExpr:
		args := make([]string, len(e.Args))
		for i, arg := range e.Args {
			args[i] = unparseExpr(arg, PREC_LOWEST)
		}
		return strings.ToLower(e.Func.String()) + "(" + strings.Join(args, ", ") + ")"

	default:
		return "/* unknown expression */"
	}
}

// unparseInfix renders a left-associative binary operation
func unparseInfix(left Expr, op TokenType, right Expr, outer int) string {
	prec := precedences[op]
	s := unparseExpr(left, prec-1) + " " + op.String() + " " + unparseExpr(right, prec)
	return wrap(s, prec, outer)
}

// wrap parenthesizes s when its precedence does not bind tighter than outer
func wrap(s string, prec, outer int) string {
	if prec <= outer {
		return "(" + s + ")"
	}
	return s
}
