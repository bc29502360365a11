package eval

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"mtl/types"
)

// shape renders matrix dimensions for error messages
func shape(m types.MatrixValue) string {
	r, c := m.Dims()
	return fmt.Sprintf("%dx%d", r, c)
}

// negateMatrix negates every cell
func negateMatrix(m types.MatrixValue) types.MatrixValue {
	var d mat.Dense
	// 0 - v keeps zero cells at +0
	d.Apply(func(_, _ int, v float64) float64 { return 0 - v }, m.Raw())
	return types.NewMatrixFromDense(&d, m.Integral())
}

// matrixProduct is the algebraic product of an r x n and an n x c matrix
func matrixProduct(a, b types.MatrixValue) types.Result {
	_, inner := a.Dims()
	if rows, _ := b.Dims(); inner != rows {
		return types.Errf(types.E_SHAPE, fmt.Sprintf("cannot multiply %s by %s", shape(a), shape(b)))
	}
	var d mat.Dense
	d.Mul(a.Raw(), b.Raw())
	return types.Ok(types.NewMatrixFromDense(&d, a.Integral() && b.Integral()))
}

// matrixElementwise combines two equally shaped matrices cell by cell
func matrixElementwise(op arith, a, b types.MatrixValue) types.Result {
	ar, ac := a.Dims()
	br, bc := b.Dims()
	if ar != br || ac != bc {
		return types.Errf(types.E_SHAPE, fmt.Sprintf("operands of %s have shapes %s and %s", op, shape(a), shape(b)))
	}

	var d mat.Dense
	switch op {
	case opAdd:
		d.Add(a.Raw(), b.Raw())
	case opSub:
		d.Sub(a.Raw(), b.Raw())
	case opMul:
		d.MulElem(a.Raw(), b.Raw())
	case opDiv:
		if i, j, found := zeroCell(b); found {
			return types.Errf(types.E_DIV, fmt.Sprintf("division by zero at cell (%d, %d)", i, j))
		}
		d.DivElem(a.Raw(), b.Raw())
	}
	return types.Ok(types.NewMatrixFromDense(&d, op != opDiv && a.Integral() && b.Integral()))
}

// matrixScalar broadcasts a scalar over every cell of m. When
// scalarFirst is set the scalar is the left operand.
func matrixScalar(op arith, m types.MatrixValue, s float64, integral bool, scalarFirst bool) types.Result {
	if op == opDiv {
		if !scalarFirst && s == 0 {
			return types.Errf(types.E_DIV, "division by zero")
		}
		if i, j, found := zeroCell(m); scalarFirst && found {
			return types.Errf(types.E_DIV, fmt.Sprintf("division by zero at cell (%d, %d)", i, j))
		}
	}

	var d mat.Dense
	d.Apply(func(_, _ int, v float64) float64 {
		if scalarFirst {
			return op.apply(s, v)
		}
		return op.apply(v, s)
	}, m.Raw())
	return types.Ok(types.NewMatrixFromDense(&d, op != opDiv && integral && m.Integral()))
}

// zeroCell finds the first zero cell in row-major order
func zeroCell(m types.MatrixValue) (int, int, bool) {
	r, c := m.Dims()
	raw := m.Raw()
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if raw.At(i, j) == 0 {
				return i, j, true
			}
		}
	}
	return 0, 0, false
}

// buildMatrix materializes a matrix literal from evaluated cells.
// Rows must share one length and every cell must be a number; the
// result is integral when every cell is an INT.
func buildMatrix(rows [][]types.Value) types.Result {
	cols := len(rows[0])
	data := make([]float64, 0, len(rows)*cols)
	integral := true

	for i, row := range rows {
		if len(row) != cols {
			return types.Errf(types.E_SHAPE, fmt.Sprintf("matrix row %d has %d cells, expected %d", i, len(row), cols))
		}
		for _, cell := range row {
			v, isInt, ok := scalar(cell)
			if !ok {
				return types.Errf(types.E_TYPE, fmt.Sprintf("matrix cells must be numbers, got %s", cell.Type()))
			}
			integral = integral && isInt
			data = append(data, v)
		}
	}
	return types.Ok(types.NewMatrix(len(rows), cols, data, integral))
}

// ============================================================================
// GENERATORS
// ============================================================================

// maxCells bounds the size of a generated matrix
const maxCells = 1 << 24

// checkCells rejects a rows x cols request larger than maxCells, testing
// by division so the product never overflows
func checkCells(rows, cols int) types.Result {
	if rows > maxCells/cols {
		return types.Errf(types.E_INVARG, fmt.Sprintf("%dx%d matrix exceeds %d cells", rows, cols, maxCells))
	}
	return types.Result{}
}

// dimension validates a generator argument: an INT of at least 1
func dimension(v types.Value) (int, types.Result) {
	n, ok := v.(types.IntValue)
	if !ok {
		return 0, types.Errf(types.E_INVARG, fmt.Sprintf("matrix dimension must be an INT, got %s", v.Type()))
	}
	if n.Val < 1 {
		return 0, types.Errf(types.E_INVARG, fmt.Sprintf("matrix dimension must be at least 1, got %d", n.Val))
	}
	if n.Val > maxCells {
		return 0, types.Errf(types.E_INVARG, fmt.Sprintf("matrix dimension %d exceeds %d", n.Val, maxCells))
	}
	return int(n.Val), types.Result{}
}

// genFilled builds a rows x cols float matrix with every cell set to fill
func genFilled(rowsVal, colsVal types.Value, fill float64) types.Result {
	rows, res := dimension(rowsVal)
	if res.IsError() {
		return res
	}
	cols, res := dimension(colsVal)
	if res.IsError() {
		return res
	}
	if res := checkCells(rows, cols); res.IsError() {
		return res
	}

	data := make([]float64, rows*cols)
	for i := range data {
		data[i] = fill
	}
	return types.Ok(types.NewMatrix(rows, cols, data, false))
}

// genZeros implements zeros(r, c)
func genZeros(rows, cols types.Value) types.Result {
	return genFilled(rows, cols, 0)
}

// genOnes implements ones(r, c)
func genOnes(rows, cols types.Value) types.Result {
	return genFilled(rows, cols, 1)
}

// genEye implements eye(n), the n x n identity
func genEye(size types.Value) types.Result {
	n, res := dimension(size)
	if res.IsError() {
		return res
	}
	if res := checkCells(n, n); res.IsError() {
		return res
	}

	diag := make([]float64, n)
	for i := range diag {
		diag[i] = 1
	}
	return types.Ok(types.NewMatrixFromDense(mat.DenseCopyOf(mat.NewDiagDense(n, diag)), false))
}
