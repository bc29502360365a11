package types

// TypeCode identifies the runtime kind of a Value
type TypeCode int

const (
	TYPE_INT    TypeCode = 0
	TYPE_FLOAT  TypeCode = 1
	TYPE_STR    TypeCode = 2
	TYPE_MATRIX TypeCode = 3
)

// String returns the string representation of the type code
func (t TypeCode) String() string {
	switch t {
	case TYPE_INT:
		return "INT"
	case TYPE_FLOAT:
		return "FLOAT"
	case TYPE_STR:
		return "STR"
	case TYPE_MATRIX:
		return "MATRIX"
	default:
		return "UNKNOWN"
	}
}

// IsNumeric reports whether the type is a scalar number
func (t TypeCode) IsNumeric() bool {
	return t == TYPE_INT || t == TYPE_FLOAT
}
