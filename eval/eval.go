package eval

import (
	"fmt"
	"io"
	"os"

	"mtl/parser"
	"mtl/types"
)

// Evaluator walks the AST and evaluates expressions/statements
type Evaluator struct {
	scopes *ScopeStack
	out    io.Writer

	// errPos is where the error currently unwinding was raised;
	// signalPos is where the last break/continue was raised
	errPos    *parser.Position
	signalPos parser.Position
}

// The Evaluator must handle every node kind
var _ parser.Visitor = (*Evaluator)(nil)

// NewEvaluator creates a new evaluator that prints to stdout
func NewEvaluator() *Evaluator {
	return NewEvaluatorWithOutput(os.Stdout)
}

// NewEvaluatorWithOutput creates a new evaluator with a fresh Global frame
// that prints to out
func NewEvaluatorWithOutput(out io.Writer) *Evaluator {
	return NewEvaluatorWithScopes(NewScopeStack(), out)
}

// NewEvaluatorWithScopes creates a new evaluator over an existing scope stack
func NewEvaluatorWithScopes(scopes *ScopeStack, out io.Writer) *Evaluator {
	return &Evaluator{
		scopes: scopes,
		out:    out,
	}
}

// Scopes returns the evaluator's scope stack
func (e *Evaluator) Scopes() *ScopeStack {
	return e.scopes
}

// Eval evaluates an AST node and returns a Result
// All evaluation methods follow this pattern:
// - Accept *TaskContext for tick counting
// - Return Result (not raw Value) to unify error handling and control flow
// - Check tick limit before processing
func (e *Evaluator) Eval(node parser.Node, ctx *types.TaskContext) types.Result {
	// Tick counting - protect against runaway loops when a budget is set
	if !ctx.ConsumeTick() {
		return e.locate(node, types.Errf(types.E_MAXTICKS, "tick budget exhausted"))
	}
	return e.locate(node, node.Accept(e, ctx))
}

// locate remembers the innermost node at which an error surfaced
func (e *Evaluator) locate(node parser.Node, result types.Result) types.Result {
	if result.IsError() && e.errPos == nil {
		pos := node.Position()
		e.errPos = &pos
	}
	return result
}

// evalOperands evaluates left then right
func (e *Evaluator) evalOperands(left, right parser.Expr, ctx *types.TaskContext) (types.Value, types.Value, types.Result) {
	leftResult := e.Eval(left, ctx)
	if !leftResult.IsNormal() {
		return nil, nil, leftResult
	}
	rightResult := e.Eval(right, ctx)
	if !rightResult.IsNormal() {
		return nil, nil, rightResult
	}
	return leftResult.Val, rightResult.Val, rightResult
}

// VisitIntLiteral returns the literal payload
func (e *Evaluator) VisitIntLiteral(n *parser.IntLiteral, ctx *types.TaskContext) types.Result {
	return types.Ok(types.NewInt(n.Value))
}

// VisitFloatLiteral returns the literal payload
func (e *Evaluator) VisitFloatLiteral(n *parser.FloatLiteral, ctx *types.TaskContext) types.Result {
	return types.Ok(types.NewFloat(n.Value))
}

// VisitStringLiteral returns the literal payload
func (e *Evaluator) VisitStringLiteral(n *parser.StringLiteral, ctx *types.TaskContext) types.Result {
	return types.Ok(types.NewStr(n.Value))
}

// VisitVariable looks up a variable by name
// Returns E_VARNF if the variable is not defined
func (e *Evaluator) VisitVariable(n *parser.VariableExpr, ctx *types.TaskContext) types.Result {
	val, ok := e.scopes.Get(n.Name)
	if !ok {
		return undefined(n.Name)
	}
	return types.Ok(val)
}

func undefined(name string) types.Result {
	return types.Errf(types.E_VARNF, fmt.Sprintf("undefined variable %s", name))
}

// VisitAccess reads one cell: A[row, col]
func (e *Evaluator) VisitAccess(n *parser.AccessExpr, ctx *types.TaskContext) types.Result {
	m, res := e.lookupMatrix(n.Name)
	if res.IsError() {
		return res
	}
	row, col, res := e.evalCell(m, n.Row, n.Col, ctx)
	if !res.IsNormal() {
		return res
	}
	return types.Ok(m.At(row, col))
}

// lookupMatrix fetches a binding that must hold a matrix
func (e *Evaluator) lookupMatrix(name string) (types.MatrixValue, types.Result) {
	val, ok := e.scopes.Get(name)
	if !ok {
		return types.MatrixValue{}, undefined(name)
	}
	m, ok := val.(types.MatrixValue)
	if !ok {
		return types.MatrixValue{}, types.Errf(types.E_TYPE, fmt.Sprintf("%s is %s, not a matrix", name, val.Type()))
	}
	return m, types.Result{}
}

// evalCell evaluates the row and column expressions, each from its own
// subtree, and checks that they address a cell of m
func (e *Evaluator) evalCell(m types.MatrixValue, rowExpr, colExpr parser.Expr, ctx *types.TaskContext) (int, int, types.Result) {
	row, res := e.evalIndex(rowExpr, ctx)
	if !res.IsNormal() {
		return 0, 0, res
	}
	col, res := e.evalIndex(colExpr, ctx)
	if !res.IsNormal() {
		return 0, 0, res
	}
	if !m.InBounds(row, col) {
		return 0, 0, types.Errf(types.E_RANGE, fmt.Sprintf("index (%d, %d) outside %s matrix", row, col, shape(m)))
	}
	return row, col, res
}

// evalIndex evaluates one subscript, which must be an INT
func (e *Evaluator) evalIndex(expr parser.Expr, ctx *types.TaskContext) (int, types.Result) {
	res := e.Eval(expr, ctx)
	if !res.IsNormal() {
		return 0, res
	}
	idx, ok := res.Val.(types.IntValue)
	if !ok {
		return 0, types.Errf(types.E_TYPE, fmt.Sprintf("index must be INT, got %s", res.Val.Type()))
	}
	return int(idx.Val), res
}

// VisitBinary evaluates + - * /
func (e *Evaluator) VisitBinary(n *parser.BinaryExpr, ctx *types.TaskContext) types.Result {
	left, right, res := e.evalOperands(n.Left, n.Right, ctx)
	if !res.IsNormal() {
		return res
	}
	return binaryOp(n.Operator, left, right)
}

// VisitMatBinary evaluates the dotted operators .+ .- .* ./
func (e *Evaluator) VisitMatBinary(n *parser.MatBinaryExpr, ctx *types.TaskContext) types.Result {
	left, right, res := e.evalOperands(n.Left, n.Right, ctx)
	if !res.IsNormal() {
		return res
	}

	switch n.Operator {
	case parser.TOKEN_DOTPLUS:
		return elementwise(opAdd, left, right)
	case parser.TOKEN_DOTMINUS:
		return elementwise(opSub, left, right)
	case parser.TOKEN_DOTSTAR:
		return elementwise(opMul, left, right)
	case parser.TOKEN_DOTSLASH:
		return elementwise(opDiv, left, right)
	default:
		return types.Errf(types.E_TYPE, fmt.Sprintf("unknown operator %s", n.Operator))
	}
}

// VisitRelation evaluates == != < <= > >=
func (e *Evaluator) VisitRelation(n *parser.RelationExpr, ctx *types.TaskContext) types.Result {
	left, right, res := e.evalOperands(n.Left, n.Right, ctx)
	if !res.IsNormal() {
		return res
	}

	switch n.Operator {
	case parser.TOKEN_EQ:
		return evalEqual(left, right)
	case parser.TOKEN_NE:
		return evalNotEqual(left, right)
	case parser.TOKEN_LT:
		return evalLessThan(left, right)
	case parser.TOKEN_LE:
		return evalLessThanEqual(left, right)
	case parser.TOKEN_GT:
		return evalGreaterThan(left, right)
	case parser.TOKEN_GE:
		return evalGreaterThanEqual(left, right)
	default:
		return types.Errf(types.E_TYPE, fmt.Sprintf("unknown operator %s", n.Operator))
	}
}

// binaryOp dispatches a plain arithmetic operator; compound assignment
// shares it
func binaryOp(op parser.TokenType, left, right types.Value) types.Result {
	switch op {
	case parser.TOKEN_PLUS, parser.TOKEN_ADDASSIGN:
		return evalAdd(left, right)
	case parser.TOKEN_MINUS, parser.TOKEN_SUBASSIGN:
		return evalSubtract(left, right)
	case parser.TOKEN_STAR, parser.TOKEN_MULASSIGN:
		return evalMultiply(left, right)
	case parser.TOKEN_SLASH, parser.TOKEN_DIVASSIGN:
		return evalDivide(left, right)
	default:
		return types.Errf(types.E_TYPE, fmt.Sprintf("unknown operator %s", op))
	}
}

// VisitUnaryMinus evaluates -x
func (e *Evaluator) VisitUnaryMinus(n *parser.UnaryMinusExpr, ctx *types.TaskContext) types.Result {
	operandResult := e.Eval(n.Operand, ctx)
	if !operandResult.IsNormal() {
		return operandResult
	}
	return evalUnaryMinus(operandResult.Val)
}

// VisitTranspose evaluates m'
func (e *Evaluator) VisitTranspose(n *parser.TransposeExpr, ctx *types.TaskContext) types.Result {
	operandResult := e.Eval(n.Operand, ctx)
	if !operandResult.IsNormal() {
		return operandResult
	}
	return evalTranspose(operandResult.Val)
}

// VisitMatrix materializes a matrix literal, evaluating every cell in
// row-major order
func (e *Evaluator) VisitMatrix(n *parser.MatrixExpr, ctx *types.TaskContext) types.Result {
	rows := make([][]types.Value, len(n.Rows))
	for i, row := range n.Rows {
		rows[i] = make([]types.Value, len(row))
		for j, cell := range row {
			res := e.Eval(cell, ctx)
			if !res.IsNormal() {
				return res
			}
			rows[i][j] = res.Val
		}
	}
	return buildMatrix(rows)
}

// VisitGen evaluates eye(n), zeros(r, c) and ones(r, c).
// zeros and ones with one argument build a square matrix.
func (e *Evaluator) VisitGen(n *parser.GenExpr, ctx *types.TaskContext) types.Result {
	args := make([]types.Value, len(n.Args))
	for i, arg := range n.Args {
		res := e.Eval(arg, ctx)
		if !res.IsNormal() {
			return res
		}
		args[i] = res.Val
	}

	rows, cols := args[0], args[0]
	if len(args) > 1 {
		cols = args[1]
	}

	switch n.Func {
	case parser.TOKEN_EYE:
		return genEye(args[0])
	case parser.TOKEN_ZEROS:
		return genZeros(rows, cols)
	case parser.TOKEN_ONES:
		return genOnes(rows, cols)
	default:
		return types.Errf(types.E_INVARG, fmt.Sprintf("unknown generator %s", n.Func))
	}
}
