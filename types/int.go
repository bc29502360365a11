package types

import "strconv"

// IntValue represents an integer scalar
type IntValue struct {
	Val int64
}

// Type returns the type code for integers
func (i IntValue) Type() TypeCode {
	return TYPE_INT
}

// String returns the decimal representation
func (i IntValue) String() string {
	return strconv.FormatInt(i.Val, 10)
}

// Equal checks equality with another integer
func (i IntValue) Equal(other Value) bool {
	otherInt, ok := other.(IntValue)
	if !ok {
		return false
	}
	return i.Val == otherInt.Val
}

// Float returns the value widened to float64
func (i IntValue) Float() float64 {
	return float64(i.Val)
}

// NewInt creates a new IntValue
func NewInt(val int64) IntValue {
	return IntValue{Val: val}
}

// Bool converts a Go bool to the integer truth value 1 or 0
func Bool(b bool) IntValue {
	if b {
		return IntValue{Val: 1}
	}
	return IntValue{Val: 0}
}
