package parser

import "mtl/types"

// Node is the base interface for all AST nodes.
// Accept dispatches to the Visitor method for the node's kind.
type Node interface {
	Position() Position
	Accept(v Visitor, ctx *types.TaskContext) types.Result
}

// Expr represents an expression node
type Expr interface {
	Node
	exprNode()
}

// Stmt represents a statement node
type Stmt interface {
	Node
	stmtNode()
}

// Visitor has one method per node kind. Adding a node kind means adding a
// method here, so every Visitor implementation stops compiling until it
// handles the new kind.
type Visitor interface {
	VisitProgram(n *Program, ctx *types.TaskContext) types.Result

	// Statements
	VisitPrint(n *PrintStmt, ctx *types.TaskContext) types.Result
	VisitAssign(n *AssignStmt, ctx *types.TaskContext) types.Result
	VisitArrAssign(n *ArrAssignStmt, ctx *types.TaskContext) types.Result
	VisitIf(n *IfStmt, ctx *types.TaskContext) types.Result
	VisitIfElse(n *IfElseStmt, ctx *types.TaskContext) types.Result
	VisitWhile(n *WhileStmt, ctx *types.TaskContext) types.Result
	VisitFor(n *ForStmt, ctx *types.TaskContext) types.Result
	VisitScope(n *ScopeStmt, ctx *types.TaskContext) types.Result
	VisitBreak(n *BreakStmt, ctx *types.TaskContext) types.Result
	VisitContinue(n *ContinueStmt, ctx *types.TaskContext) types.Result
	VisitReturn(n *ReturnStmt, ctx *types.TaskContext) types.Result

	// Expressions
	VisitIntLiteral(n *IntLiteral, ctx *types.TaskContext) types.Result
	VisitFloatLiteral(n *FloatLiteral, ctx *types.TaskContext) types.Result
	VisitStringLiteral(n *StringLiteral, ctx *types.TaskContext) types.Result
	VisitVariable(n *VariableExpr, ctx *types.TaskContext) types.Result
	VisitAccess(n *AccessExpr, ctx *types.TaskContext) types.Result
	VisitBinary(n *BinaryExpr, ctx *types.TaskContext) types.Result
	VisitMatBinary(n *MatBinaryExpr, ctx *types.TaskContext) types.Result
	VisitRelation(n *RelationExpr, ctx *types.TaskContext) types.Result
	VisitUnaryMinus(n *UnaryMinusExpr, ctx *types.TaskContext) types.Result
	VisitTranspose(n *TransposeExpr, ctx *types.TaskContext) types.Result
	VisitMatrix(n *MatrixExpr, ctx *types.TaskContext) types.Result
	VisitGen(n *GenExpr, ctx *types.TaskContext) types.Result
}

// Program is the root node: an ordered list of top-level statements
type Program struct {
	Pos   Position
	Stmts []Stmt
}

func (n *Program) Position() Position { return n.Pos }
func (n *Program) Accept(v Visitor, ctx *types.TaskContext) types.Result {
	return v.VisitProgram(n, ctx)
}

// Statement AST nodes

// PrintStmt represents print a, b, ...
type PrintStmt struct {
	Pos  Position
	Args []Expr
}

func (s *PrintStmt) Position() Position { return s.Pos }
func (s *PrintStmt) stmtNode()          {}
func (s *PrintStmt) Accept(v Visitor, ctx *types.TaskContext) types.Result {
	return v.VisitPrint(s, ctx)
}

// AssignStmt represents name = expr and the compound forms += -= *= /=
type AssignStmt struct {
	Pos      Position
	Name     string
	Operator TokenType // TOKEN_ASSIGN or a compound assignment token
	Value    Expr
}

func (s *AssignStmt) Position() Position { return s.Pos }
func (s *AssignStmt) stmtNode()          {}
func (s *AssignStmt) Accept(v Visitor, ctx *types.TaskContext) types.Result {
	return v.VisitAssign(s, ctx)
}

// ArrAssignStmt represents name[row, col] op= expr
type ArrAssignStmt struct {
	Pos      Position
	Name     string
	Row      Expr
	Col      Expr
	Operator TokenType
	Value    Expr
}

func (s *ArrAssignStmt) Position() Position { return s.Pos }
func (s *ArrAssignStmt) stmtNode()          {}
func (s *ArrAssignStmt) Accept(v Visitor, ctx *types.TaskContext) types.Result {
	return v.VisitArrAssign(s, ctx)
}

// IfStmt represents if (cond) body without an else branch
type IfStmt struct {
	Pos       Position
	Condition Expr
	Body      []Stmt
}

func (s *IfStmt) Position() Position { return s.Pos }
func (s *IfStmt) stmtNode()          {}
func (s *IfStmt) Accept(v Visitor, ctx *types.TaskContext) types.Result {
	return v.VisitIf(s, ctx)
}

// IfElseStmt represents if (cond) body else body.
// "else if" chains nest another if statement inside Else.
type IfElseStmt struct {
	Pos       Position
	Condition Expr
	Body      []Stmt
	Else      []Stmt
}

func (s *IfElseStmt) Position() Position { return s.Pos }
func (s *IfElseStmt) stmtNode()          {}
func (s *IfElseStmt) Accept(v Visitor, ctx *types.TaskContext) types.Result {
	return v.VisitIfElse(s, ctx)
}

// WhileStmt represents while (cond) body
type WhileStmt struct {
	Pos       Position
	Condition Expr
	Body      []Stmt
}

func (s *WhileStmt) Position() Position { return s.Pos }
func (s *WhileStmt) stmtNode()          {}
func (s *WhileStmt) Accept(v Visitor, ctx *types.TaskContext) types.Result {
	return v.VisitWhile(s, ctx)
}

// ForStmt represents for var = start : limit body.
// The loop runs while var != limit, stepping by 1.
type ForStmt struct {
	Pos   Position
	Var   string
	Start Expr
	Limit Expr
	Body  []Stmt
}

func (s *ForStmt) Position() Position { return s.Pos }
func (s *ForStmt) stmtNode()          {}
func (s *ForStmt) Accept(v Visitor, ctx *types.TaskContext) types.Result {
	return v.VisitFor(s, ctx)
}

// ScopeStmt is a bare { ... } block; it does not open a new frame
type ScopeStmt struct {
	Pos  Position
	Body []Stmt
}

func (s *ScopeStmt) Position() Position { return s.Pos }
func (s *ScopeStmt) stmtNode()          {}
func (s *ScopeStmt) Accept(v Visitor, ctx *types.TaskContext) types.Result {
	return v.VisitScope(s, ctx)
}

// BreakStmt represents break
type BreakStmt struct {
	Pos Position
}

func (s *BreakStmt) Position() Position { return s.Pos }
func (s *BreakStmt) stmtNode()          {}
func (s *BreakStmt) Accept(v Visitor, ctx *types.TaskContext) types.Result {
	return v.VisitBreak(s, ctx)
}

// ContinueStmt represents continue
type ContinueStmt struct {
	Pos Position
}

func (s *ContinueStmt) Position() Position { return s.Pos }
func (s *ContinueStmt) stmtNode()          {}
func (s *ContinueStmt) Accept(v Visitor, ctx *types.TaskContext) types.Result {
	return v.VisitContinue(s, ctx)
}

// ReturnStmt represents return [expr]
type ReturnStmt struct {
	Pos   Position
	Value Expr // Can be nil (no result)
}

func (s *ReturnStmt) Position() Position { return s.Pos }
func (s *ReturnStmt) stmtNode()          {}
func (s *ReturnStmt) Accept(v Visitor, ctx *types.TaskContext) types.Result {
	return v.VisitReturn(s, ctx)
}

// Expression AST nodes

// IntLiteral represents an integer literal
type IntLiteral struct {
	Pos   Position
	Value int64
}

func (e *IntLiteral) Position() Position { return e.Pos }
func (e *IntLiteral) exprNode()          {}
func (e *IntLiteral) Accept(v Visitor, ctx *types.TaskContext) types.Result {
	return v.VisitIntLiteral(e, ctx)
}

// FloatLiteral represents a float literal
type FloatLiteral struct {
	Pos   Position
	Value float64
}

func (e *FloatLiteral) Position() Position { return e.Pos }
func (e *FloatLiteral) exprNode()          {}
func (e *FloatLiteral) Accept(v Visitor, ctx *types.TaskContext) types.Result {
	return v.VisitFloatLiteral(e, ctx)
}

// StringLiteral represents a decoded string literal
type StringLiteral struct {
	Pos   Position
	Value string
}

func (e *StringLiteral) Position() Position { return e.Pos }
func (e *StringLiteral) exprNode()          {}
func (e *StringLiteral) Accept(v Visitor, ctx *types.TaskContext) types.Result {
	return v.VisitStringLiteral(e, ctx)
}

// VariableExpr represents a variable reference
type VariableExpr struct {
	Pos  Position
	Name string
}

func (e *VariableExpr) Position() Position { return e.Pos }
func (e *VariableExpr) exprNode()          {}
func (e *VariableExpr) Accept(v Visitor, ctx *types.TaskContext) types.Result {
	return v.VisitVariable(e, ctx)
}

// AccessExpr represents an indexed read: name[row, col]
type AccessExpr struct {
	Pos  Position
	Name string
	Row  Expr
	Col  Expr
}

func (e *AccessExpr) Position() Position { return e.Pos }
func (e *AccessExpr) exprNode()          {}
func (e *AccessExpr) Accept(v Visitor, ctx *types.TaskContext) types.Result {
	return v.VisitAccess(e, ctx)
}

// BinaryExpr represents + - * /
type BinaryExpr struct {
	Pos      Position
	Left     Expr
	Operator TokenType
	Right    Expr
}

func (e *BinaryExpr) Position() Position { return e.Pos }
func (e *BinaryExpr) exprNode()          {}
func (e *BinaryExpr) Accept(v Visitor, ctx *types.TaskContext) types.Result {
	return v.VisitBinary(e, ctx)
}

// MatBinaryExpr represents the elementwise operators .+ .- .* ./
type MatBinaryExpr struct {
	Pos      Position
	Left     Expr
	Operator TokenType
	Right    Expr
}

func (e *MatBinaryExpr) Position() Position { return e.Pos }
func (e *MatBinaryExpr) exprNode()          {}
func (e *MatBinaryExpr) Accept(v Visitor, ctx *types.TaskContext) types.Result {
	return v.VisitMatBinary(e, ctx)
}

// RelationExpr represents == != < <= > >=
type RelationExpr struct {
	Pos      Position
	Left     Expr
	Operator TokenType
	Right    Expr
}

func (e *RelationExpr) Position() Position { return e.Pos }
func (e *RelationExpr) exprNode()          {}
func (e *RelationExpr) Accept(v Visitor, ctx *types.TaskContext) types.Result {
	return v.VisitRelation(e, ctx)
}

// UnaryMinusExpr represents -expr
type UnaryMinusExpr struct {
	Pos     Position
	Operand Expr
}

func (e *UnaryMinusExpr) Position() Position { return e.Pos }
func (e *UnaryMinusExpr) exprNode()          {}
func (e *UnaryMinusExpr) Accept(v Visitor, ctx *types.TaskContext) types.Result {
	return v.VisitUnaryMinus(e, ctx)
}

// TransposeExpr represents expr'
type TransposeExpr struct {
	Pos     Position
	Operand Expr
}

func (e *TransposeExpr) Position() Position { return e.Pos }
func (e *TransposeExpr) exprNode()          {}
func (e *TransposeExpr) Accept(v Visitor, ctx *types.TaskContext) types.Result {
	return v.VisitTranspose(e, ctx)
}

// MatrixExpr represents a matrix literal; every row is a list of cell
// expressions
type MatrixExpr struct {
	Pos  Position
	Rows [][]Expr
}

func (e *MatrixExpr) Position() Position { return e.Pos }
func (e *MatrixExpr) exprNode()          {}
func (e *MatrixExpr) Accept(v Visitor, ctx *types.TaskContext) types.Result {
	return v.VisitMatrix(e, ctx)
}

// GenExpr represents a matrix generator call: eye(n), zeros(r, c), ones(r, c)
type GenExpr struct {
	Pos  Position
	Func TokenType // TOKEN_EYE, TOKEN_ZEROS or TOKEN_ONES
	Args []Expr
}

func (e *GenExpr) Position() Position { return e.Pos }
func (e *GenExpr) exprNode()          {}
func (e *GenExpr) Accept(v Visitor, ctx *types.TaskContext) types.Result {
	return v.VisitGen(e, ctx)
}
