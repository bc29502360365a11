package types

import (
	"math"
	"strconv"
	"strings"
)

// FloatValue represents a floating point scalar
type FloatValue struct {
	Val float64
}

// Type returns the type code for floats
func (f FloatValue) Type() TypeCode {
	return TYPE_FLOAT
}

// String returns the display form
func (f FloatValue) String() string {
	return formatFloat(f.Val)
}

// formatFloat renders whole numbers with a trailing ".0" so floats stay
// distinguishable from integers (3.0 not 3)
func formatFloat(v float64) string {
	if math.IsNaN(v) {
		return "NaN"
	}
	if math.IsInf(v, 1) {
		return "Inf"
	}
	if math.IsInf(v, -1) {
		return "-Inf"
	}
	s := strconv.FormatFloat(v, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

// Equal checks equality with another float
func (f FloatValue) Equal(other Value) bool {
	otherFloat, ok := other.(FloatValue)
	if !ok {
		return false
	}
	// NaN != NaN (IEEE 754 semantics)
	if math.IsNaN(f.Val) || math.IsNaN(otherFloat.Val) {
		return false
	}
	return f.Val == otherFloat.Val
}

// NewFloat creates a new FloatValue
func NewFloat(val float64) FloatValue {
	return FloatValue{Val: val}
}
