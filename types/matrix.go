package types

import (
	"math"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"
)

// MaxExactInt is the largest magnitude an integral cell may hold
// (2^53 - 1). Larger INTs may already have been rounded on their way
// into a float64 cell.
const MaxExactInt = 1<<53 - 1

// MatrixValue represents a rectangular 2-D numeric grid.
// The shape is fixed at construction. Cells are stored as float64; an
// integral matrix only ever holds whole numbers and reads them back as
// IntValue.
type MatrixValue struct {
	data     *mat.Dense
	integral bool
}

// NewMatrix builds a rows x cols matrix from row-major data.
// rows and cols must be >= 1 and len(data) == rows*cols.
// An integral request is dropped when a cell is not an exact integer.
func NewMatrix(rows, cols int, data []float64, integral bool) MatrixValue {
	return NewMatrixFromDense(mat.NewDense(rows, cols, data), integral)
}

// NewMatrixFromDense wraps an existing dense matrix. The matrix takes
// ownership of d; callers must not mutate it afterwards.
func NewMatrixFromDense(d *mat.Dense, integral bool) MatrixValue {
	return MatrixValue{data: d, integral: integral && exactIntegers(d)}
}

// exactIntegers reports whether every cell is a whole number that
// converts to int64 and back unchanged
func exactIntegers(d *mat.Dense) bool {
	r, c := d.Dims()
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if !ExactInt(d.At(i, j)) {
				return false
			}
		}
	}
	return true
}

// ExactInt reports whether v is a whole number within ±MaxExactInt
func ExactInt(v float64) bool {
	return v == math.Trunc(v) && math.Abs(v) <= MaxExactInt
}

// Type returns the type code for matrices
func (m MatrixValue) Type() TypeCode {
	return TYPE_MATRIX
}

// Dims returns the number of rows and columns
func (m MatrixValue) Dims() (int, int) {
	return m.data.Dims()
}

// Integral reports whether every cell is read back as an integer
func (m MatrixValue) Integral() bool {
	return m.integral
}

// Raw exposes the underlying grid for read-only use by operators
func (m MatrixValue) Raw() mat.Matrix {
	return m.data
}

// At returns cell (i, j) as a scalar Value. Indices must be in range.
func (m MatrixValue) At(i, j int) Value {
	v := m.data.At(i, j)
	if m.integral {
		return NewInt(int64(v))
	}
	return NewFloat(v)
}

// InBounds reports whether (i, j) addresses a cell of the grid
func (m MatrixValue) InBounds(i, j int) bool {
	r, c := m.Dims()
	return i >= 0 && i < r && j >= 0 && j < c
}

// WithCell returns a copy of the matrix with cell (i, j) replaced.
// isInt says whether v came from an INT; storing a FLOAT, or an INT too
// large to hold exactly, demotes the copy to a float matrix.
func (m MatrixValue) WithCell(i, j int, v float64, isInt bool) MatrixValue {
	d := mat.DenseCopyOf(m.data)
	d.Set(i, j, v)
	integral := m.integral && isInt && ExactInt(v)
	return MatrixValue{data: d, integral: integral}
}

// Copy returns an independent copy of the matrix
func (m MatrixValue) Copy() MatrixValue {
	return MatrixValue{data: mat.DenseCopyOf(m.data), integral: m.integral}
}

// Transpose returns a new matrix with rows and columns swapped
func (m MatrixValue) Transpose() MatrixValue {
	return MatrixValue{data: mat.DenseCopyOf(m.data.T()), integral: m.integral}
}

// Equal compares shape and every cell
func (m MatrixValue) Equal(other Value) bool {
	o, ok := other.(MatrixValue)
	if !ok {
		return false
	}
	r1, c1 := m.Dims()
	r2, c2 := o.Dims()
	if r1 != r2 || c1 != c2 {
		return false
	}
	return mat.Equal(m.data, o.data)
}

// String renders the grid one row per line with right-aligned cells:
//
//	[[1 0]
//	 [0 1]]
func (m MatrixValue) String() string {
	r, c := m.Dims()
	cells := make([][]string, r)
	width := 0
	for i := 0; i < r; i++ {
		cells[i] = make([]string, c)
		for j := 0; j < c; j++ {
			var s string
			if m.integral {
				s = strconv.FormatInt(int64(m.data.At(i, j)), 10)
			} else {
				s = formatFloat(m.data.At(i, j))
			}
			cells[i][j] = s
			if len(s) > width {
				width = len(s)
			}
		}
	}

	var sb strings.Builder
	sb.WriteByte('[')
	for i, row := range cells {
		if i > 0 {
			sb.WriteString("\n ")
		}
		sb.WriteByte('[')
		for j, s := range row {
			if j > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(strings.Repeat(" ", width-len(s)))
			sb.WriteString(s)
		}
		sb.WriteByte(']')
	}
	sb.WriteByte(']')
	return sb.String()
}
