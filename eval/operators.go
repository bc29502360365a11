package eval

import (
	"fmt"

	"mtl/types"
)

// ============================================================================
// UNARY OPERATORS
// ============================================================================

// evalUnaryMinus implements unary negation: -x
// Scalars negate arithmetically, matrices cell by cell
func evalUnaryMinus(operand types.Value) types.Result {
	switch v := operand.(type) {
	case types.IntValue:
		return types.Ok(types.IntValue{Val: -v.Val})
	case types.FloatValue:
		return types.Ok(types.FloatValue{Val: -v.Val})
	case types.MatrixValue:
		return types.Ok(negateMatrix(v))
	default:
		return types.Errf(types.E_TYPE, fmt.Sprintf("cannot negate %s", operand.Type()))
	}
}

// evalTranspose implements postfix transposition: m'
func evalTranspose(operand types.Value) types.Result {
	m, ok := operand.(types.MatrixValue)
	if !ok {
		return types.Errf(types.E_TYPE, fmt.Sprintf("cannot transpose %s", operand.Type()))
	}
	return types.Ok(m.Transpose())
}

// ============================================================================
// ARITHMETIC OPERATORS
// ============================================================================

// arith identifies one of the four arithmetic operations
type arith int

const (
	opAdd arith = iota
	opSub
	opMul
	opDiv
)

func (op arith) String() string {
	switch op {
	case opAdd:
		return "+"
	case opSub:
		return "-"
	case opMul:
		return "*"
	default:
		return "/"
	}
}

// apply computes a op b on raw cells. The caller has already ruled out
// a zero divisor.
func (op arith) apply(a, b float64) float64 {
	switch op {
	case opAdd:
		return a + b
	case opSub:
		return a - b
	case opMul:
		return a * b
	default:
		return a / b
	}
}

// evalAdd implements addition: left + right
// Supports INT + INT, FLOAT + FLOAT, INT + FLOAT (promotes to FLOAT),
// string concatenation STR + STR, and matrix addition (same shape, or
// a scalar broadcast over every cell)
func evalAdd(left, right types.Value) types.Result {
	if leftStr, ok := left.(types.StrValue); ok {
		if rightStr, ok := right.(types.StrValue); ok {
			return types.Ok(types.NewStr(leftStr.Value() + rightStr.Value()))
		}
	}
	return elementwise(opAdd, left, right)
}

// evalSubtract implements subtraction: left - right
func evalSubtract(left, right types.Value) types.Result {
	return elementwise(opSub, left, right)
}

// evalMultiply implements multiplication: left * right
// Two matrices multiply algebraically; anything else multiplies cell by cell
func evalMultiply(left, right types.Value) types.Result {
	leftMat, leftIsMat := left.(types.MatrixValue)
	rightMat, rightIsMat := right.(types.MatrixValue)
	if leftIsMat && rightIsMat {
		return matrixProduct(leftMat, rightMat)
	}
	return elementwise(opMul, left, right)
}

// evalDivide implements division: left / right
// Division is always true division and yields FLOAT.
// Raises E_DIV for a zero divisor. Matrix / matrix has no algebraic
// meaning here; the dotted ./ divides cell by cell.
func evalDivide(left, right types.Value) types.Result {
	_, leftIsMat := left.(types.MatrixValue)
	_, rightIsMat := right.(types.MatrixValue)
	if leftIsMat && rightIsMat {
		return types.Errf(types.E_TYPE, "matrix / matrix is undefined, use ./ to divide cell by cell")
	}
	return elementwise(opDiv, left, right)
}

// elementwise applies op to scalars, to two equally shaped matrices cell
// by cell, or to every cell of a matrix against a scalar.
// It backs the dotted operators .+ .- .* ./ directly.
func elementwise(op arith, left, right types.Value) types.Result {
	leftMat, leftIsMat := left.(types.MatrixValue)
	rightMat, rightIsMat := right.(types.MatrixValue)

	switch {
	case leftIsMat && rightIsMat:
		return matrixElementwise(op, leftMat, rightMat)
	case leftIsMat:
		s, integral, ok := scalar(right)
		if !ok {
			return operandMismatch(op, left, right)
		}
		return matrixScalar(op, leftMat, s, integral, false)
	case rightIsMat:
		s, integral, ok := scalar(left)
		if !ok {
			return operandMismatch(op, left, right)
		}
		return matrixScalar(op, rightMat, s, integral, true)
	default:
		return scalarArith(op, left, right)
	}
}

// scalarArith applies op to two numeric scalars
func scalarArith(op arith, left, right types.Value) types.Result {
	leftNum, leftIsFloat := toNumeric(left)
	rightNum, rightIsFloat := toNumeric(right)

	if leftNum == nil || rightNum == nil {
		return operandMismatch(op, left, right)
	}

	if op == opDiv {
		divisor := toFloat64(rightNum)
		if divisor == 0 {
			return types.Errf(types.E_DIV, "division by zero")
		}
		return types.Ok(types.FloatValue{Val: toFloat64(leftNum) / divisor})
	}

	if leftIsFloat || rightIsFloat {
		return types.Ok(types.FloatValue{Val: op.apply(toFloat64(leftNum), toFloat64(rightNum))})
	}

	l, r := leftNum.(int64), rightNum.(int64)
	switch op {
	case opAdd:
		return types.Ok(types.IntValue{Val: l + r})
	case opSub:
		return types.Ok(types.IntValue{Val: l - r})
	default:
		return types.Ok(types.IntValue{Val: l * r})
	}
}

func operandMismatch(op arith, left, right types.Value) types.Result {
	return types.Errf(types.E_TYPE, fmt.Sprintf("unsupported operands for %s: %s and %s", op, left.Type(), right.Type()))
}

// ============================================================================
// COMPARISON OPERATORS
// ============================================================================

// evalEqual implements equality: left == right
// Two matrices are equal when shape and every cell match
func evalEqual(left, right types.Value) types.Result {
	if eq, ok := matrixEquality(left, right); ok {
		return types.Ok(types.Bool(eq))
	}
	cmp, errCode := compare(left, right)
	if errCode != types.E_NONE {
		return compareMismatch("==", left, right)
	}
	return types.Ok(types.Bool(cmp == 0))
}

// evalNotEqual implements inequality: left != right
func evalNotEqual(left, right types.Value) types.Result {
	if eq, ok := matrixEquality(left, right); ok {
		return types.Ok(types.Bool(!eq))
	}
	cmp, errCode := compare(left, right)
	if errCode != types.E_NONE {
		return compareMismatch("!=", left, right)
	}
	return types.Ok(types.Bool(cmp != 0))
}

// evalLessThan implements less than: left < right
func evalLessThan(left, right types.Value) types.Result {
	cmp, errCode := compare(left, right)
	if errCode != types.E_NONE {
		return compareMismatch("<", left, right)
	}
	return types.Ok(types.Bool(cmp < 0))
}

// evalLessThanEqual implements less than or equal: left <= right
func evalLessThanEqual(left, right types.Value) types.Result {
	cmp, errCode := compare(left, right)
	if errCode != types.E_NONE {
		return compareMismatch("<=", left, right)
	}
	return types.Ok(types.Bool(cmp <= 0))
}

// evalGreaterThan implements greater than: left > right
func evalGreaterThan(left, right types.Value) types.Result {
	cmp, errCode := compare(left, right)
	if errCode != types.E_NONE {
		return compareMismatch(">", left, right)
	}
	return types.Ok(types.Bool(cmp > 0))
}

// evalGreaterThanEqual implements greater than or equal: left >= right
func evalGreaterThanEqual(left, right types.Value) types.Result {
	cmp, errCode := compare(left, right)
	if errCode != types.E_NONE {
		return compareMismatch(">=", left, right)
	}
	return types.Ok(types.Bool(cmp >= 0))
}

// matrixEquality compares two matrices; ok is false unless both operands
// are matrices
func matrixEquality(left, right types.Value) (eq bool, ok bool) {
	leftMat, leftIsMat := left.(types.MatrixValue)
	rightMat, rightIsMat := right.(types.MatrixValue)
	if !leftIsMat || !rightIsMat {
		return false, false
	}
	return leftMat.Equal(rightMat), true
}

func compareMismatch(op string, left, right types.Value) types.Result {
	return types.Errf(types.E_TYPE, fmt.Sprintf("cannot compare %s %s %s", left.Type(), op, right.Type()))
}

// ============================================================================
// CONDITIONS
// ============================================================================

// truth reduces a condition value to a boolean.
// Numbers are true when non-zero and a 1x1 matrix stands for its cell.
// Strings and larger matrices raise E_BOOL.
func truth(v types.Value) (bool, types.Result) {
	switch val := v.(type) {
	case types.IntValue:
		return val.Val != 0, types.Result{}
	case types.FloatValue:
		return val.Val != 0, types.Result{}
	case types.MatrixValue:
		if r, c := val.Dims(); r == 1 && c == 1 {
			return truth(val.At(0, 0))
		}
		r, c := val.Dims()
		return false, types.Errf(types.E_BOOL, fmt.Sprintf("a %dx%d matrix is not a condition", r, c))
	default:
		return false, types.Errf(types.E_BOOL, fmt.Sprintf("a %s is not a condition", v.Type()))
	}
}

// ============================================================================
// HELPER FUNCTIONS
// ============================================================================

// toNumeric converts a Value to a numeric type (int64 or float64)
// Returns (value, isFloat) where value is either int64 or float64
// Returns (nil, false) if the value is not numeric
func toNumeric(v types.Value) (interface{}, bool) {
	switch val := v.(type) {
	case types.IntValue:
		return val.Val, false
	case types.FloatValue:
		return val.Val, true
	default:
		return nil, false
	}
}

// toFloat64 converts a numeric interface value to float64
func toFloat64(v interface{}) float64 {
	switch val := v.(type) {
	case int64:
		return float64(val)
	case float64:
		return val
	default:
		return 0
	}
}

// scalar returns a numeric scalar as a raw cell value and whether it is
// an integer
func scalar(v types.Value) (float64, bool, bool) {
	num, isFloat := toNumeric(v)
	if num == nil {
		return 0, false, false
	}
	return toFloat64(num), !isFloat, true
}

// compare compares two scalars for ordering
// Returns: -1 if left < right, 0 if equal, 1 if left > right
// Returns error code if comparison is not valid for the types
func compare(left, right types.Value) (int, types.ErrorCode) {
	// Numeric comparison
	leftNum, _ := toNumeric(left)
	rightNum, _ := toNumeric(right)

	if leftNum != nil && rightNum != nil {
		leftFloat, rightFloat := toFloat64(leftNum), toFloat64(rightNum)
		if leftFloat < rightFloat {
			return -1, types.E_NONE
		} else if leftFloat > rightFloat {
			return 1, types.E_NONE
		}
		return 0, types.E_NONE
	}

	// String comparison
	leftStr, leftIsStr := left.(types.StrValue)
	rightStr, rightIsStr := right.(types.StrValue)

	if leftIsStr && rightIsStr {
		leftVal := leftStr.Value()
		rightVal := rightStr.Value()
		if leftVal < rightVal {
			return -1, types.E_NONE
		} else if leftVal > rightVal {
			return 1, types.E_NONE
		}
		return 0, types.E_NONE
	}

	// Type mismatch
	return 0, types.E_TYPE
}
