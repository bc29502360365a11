package eval

import (
	"fmt"
	"strings"

	"mtl/parser"
	"mtl/trace"
	"mtl/types"
)

// EvalStatements evaluates a sequence of statements in the current frame
func (e *Evaluator) EvalStatements(stmts []parser.Stmt, ctx *types.TaskContext) types.Result {
	for _, stmt := range stmts {
		result := e.Eval(stmt, ctx)
		// Propagate control flow (return, break, continue, error)
		if !result.IsNormal() {
			return result
		}
	}
	return types.Ok(nil)
}

// evalBlock runs body in a new frame tagged tag and pops the frame on
// every exit path
func (e *Evaluator) evalBlock(tag string, body []parser.Stmt, ctx *types.TaskContext) types.Result {
	e.scopes.Push(tag)
	result := e.EvalStatements(body, ctx)
	e.scopes.Pop()

	if result.IsLoopSignal() || result.IsReturn() {
		trace.Signal(result.Flow, tag, "propagated")
	}
	return result
}

// VisitProgram evaluates the top-level statements in the Global frame.
// A break or continue that no loop caught is a program defect.
func (e *Evaluator) VisitProgram(n *parser.Program, ctx *types.TaskContext) types.Result {
	result := e.EvalStatements(n.Stmts, ctx)
	if result.IsLoopSignal() {
		pos := e.signalPos
		e.errPos = &pos
		return types.Errf(types.E_CTRL, fmt.Sprintf("%s outside of a loop", result.Flow))
	}
	return result
}

// VisitPrint writes its arguments joined by single spaces as one line
func (e *Evaluator) VisitPrint(n *parser.PrintStmt, ctx *types.TaskContext) types.Result {
	parts := make([]string, len(n.Args))
	for i, arg := range n.Args {
		res := e.Eval(arg, ctx)
		if !res.IsNormal() {
			return res
		}
		parts[i] = res.Val.String()
	}
	fmt.Fprintln(e.out, strings.Join(parts, " "))
	return types.Ok(nil)
}

// VisitAssign evaluates name = expr and the compound forms += -= *= /=
func (e *Evaluator) VisitAssign(n *parser.AssignStmt, ctx *types.TaskContext) types.Result {
	valueResult := e.Eval(n.Value, ctx)
	if !valueResult.IsNormal() {
		return valueResult
	}
	value := valueResult.Val

	if n.Operator != parser.TOKEN_ASSIGN {
		current, ok := e.scopes.Get(n.Name)
		if !ok {
			return undefined(n.Name)
		}
		res := binaryOp(n.Operator, current, value)
		if !res.IsNormal() {
			return res
		}
		value = res.Val
	}

	e.scopes.Set(n.Name, value)
	return types.Ok(nil)
}

// VisitArrAssign evaluates A[row, col] op= expr. The cell is replaced on
// a copy of the matrix which is then rebound, so other bindings of the
// old matrix never observe the write.
func (e *Evaluator) VisitArrAssign(n *parser.ArrAssignStmt, ctx *types.TaskContext) types.Result {
	m, res := e.lookupMatrix(n.Name)
	if res.IsError() {
		return res
	}
	row, col, res := e.evalCell(m, n.Row, n.Col, ctx)
	if !res.IsNormal() {
		return res
	}

	valueResult := e.Eval(n.Value, ctx)
	if !valueResult.IsNormal() {
		return valueResult
	}
	value := valueResult.Val

	if n.Operator != parser.TOKEN_ASSIGN {
		res := binaryOp(n.Operator, m.At(row, col), value)
		if !res.IsNormal() {
			return res
		}
		value = res.Val
	}

	cell, isInt, ok := scalar(value)
	if !ok {
		return types.Errf(types.E_TYPE, fmt.Sprintf("cannot store %s in a matrix cell", value.Type()))
	}

	e.scopes.Set(n.Name, m.WithCell(row, col, cell, isInt))
	return types.Ok(nil)
}

// condition evaluates expr and reduces it to a boolean
func (e *Evaluator) condition(expr parser.Expr, ctx *types.TaskContext) (bool, types.Result) {
	res := e.Eval(expr, ctx)
	if !res.IsNormal() {
		return false, res
	}
	ok, truthResult := truth(res.Val)
	if truthResult.IsError() {
		return false, e.locate(expr, truthResult)
	}
	return ok, res
}

// VisitIf evaluates the body under an "If" frame when the condition holds
func (e *Evaluator) VisitIf(n *parser.IfStmt, ctx *types.TaskContext) types.Result {
	ok, res := e.condition(n.Condition, ctx)
	if !res.IsNormal() {
		return res
	}
	if !ok {
		return types.Ok(nil)
	}
	return e.evalBlock(TagIf, n.Body, ctx)
}

// VisitIfElse evaluates exactly one branch, under an "If" or "Else" frame
func (e *Evaluator) VisitIfElse(n *parser.IfElseStmt, ctx *types.TaskContext) types.Result {
	ok, res := e.condition(n.Condition, ctx)
	if !res.IsNormal() {
		return res
	}
	if ok {
		return e.evalBlock(TagIf, n.Body, ctx)
	}
	return e.evalBlock(TagElse, n.Else, ctx)
}

// VisitWhile evaluates a while loop. One "WhileLoop" frame lives for the
// whole loop.
func (e *Evaluator) VisitWhile(n *parser.WhileStmt, ctx *types.TaskContext) types.Result {
	e.scopes.Push(TagWhile)
	defer e.scopes.Pop()

	for {
		ok, condResult := e.condition(n.Condition, ctx)
		if !condResult.IsNormal() {
			return condResult
		}
		if !ok {
			break
		}

		bodyResult := e.EvalStatements(n.Body, ctx)

		// Handle control flow
		switch bodyResult.Flow {
		case types.FlowReturn, types.FlowException:
			// Propagate return or error
			return bodyResult
		case types.FlowBreak:
			trace.Signal(bodyResult.Flow, TagWhile, "caught")
			return types.Ok(nil)
		case types.FlowContinue:
			trace.Signal(bodyResult.Flow, TagWhile, "caught")
		}
	}

	return types.Ok(nil)
}

// VisitFor evaluates for var = start : limit. The loop variable is bound
// in the loop's own frame, so it never aliases an outer variable of the
// same name. The limit is evaluated once; the loop runs while var != limit
// and steps var by 1 after every iteration, including one cut short by
// continue.
func (e *Evaluator) VisitFor(n *parser.ForStmt, ctx *types.TaskContext) types.Result {
	e.scopes.Push(TagFor)
	defer e.scopes.Pop()

	startResult := e.Eval(n.Start, ctx)
	if !startResult.IsNormal() {
		return startResult
	}
	e.scopes.Insert(n.Var, startResult.Val)

	limitResult := e.Eval(n.Limit, ctx)
	if !limitResult.IsNormal() {
		return limitResult
	}
	limit := limitResult.Val

	for {
		current, _ := e.scopes.Get(n.Var)
		neResult := evalNotEqual(current, limit)
		if !neResult.IsNormal() {
			return e.locate(n, neResult)
		}
		if more, _ := truth(neResult.Val); !more {
			break
		}

		// Execute body
		bodyResult := e.EvalStatements(n.Body, ctx)

		// Handle control flow
		switch bodyResult.Flow {
		case types.FlowReturn, types.FlowException:
			return bodyResult
		case types.FlowBreak:
			trace.Signal(bodyResult.Flow, TagFor, "caught")
			return types.Ok(nil)
		case types.FlowContinue:
			trace.Signal(bodyResult.Flow, TagFor, "caught")
		}

		current, _ = e.scopes.Get(n.Var)
		stepResult := evalAdd(current, types.NewInt(1))
		if !stepResult.IsNormal() {
			return e.locate(n, stepResult)
		}
		e.scopes.Set(n.Var, stepResult.Val)
	}

	return types.Ok(nil)
}

// VisitScope evaluates a bare block in the enclosing frame
func (e *Evaluator) VisitScope(n *parser.ScopeStmt, ctx *types.TaskContext) types.Result {
	return e.EvalStatements(n.Body, ctx)
}

// VisitBreak raises a break signal
func (e *Evaluator) VisitBreak(n *parser.BreakStmt, ctx *types.TaskContext) types.Result {
	e.signalPos = n.Pos
	return types.Break()
}

// VisitContinue raises a continue signal
func (e *Evaluator) VisitContinue(n *parser.ContinueStmt, ctx *types.TaskContext) types.Result {
	e.signalPos = n.Pos
	return types.Continue()
}

// VisitReturn raises a return signal carrying the evaluated operand.
// A bare return carries no value.
func (e *Evaluator) VisitReturn(n *parser.ReturnStmt, ctx *types.TaskContext) types.Result {
	if n.Value == nil {
		return types.Return(nil)
	}

	result := e.Eval(n.Value, ctx)
	if !result.IsNormal() {
		return result
	}
	return types.Return(result.Val)
}
