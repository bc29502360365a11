package types

// ErrorCode represents a runtime error kind (E_TYPE, E_DIV, etc.)
type ErrorCode int

// Error codes raised during evaluation
const (
	E_NONE     ErrorCode = 0
	E_VARNF    ErrorCode = 1 // UndefinedVariable
	E_TYPE     ErrorCode = 2 // TypeMismatch
	E_SHAPE    ErrorCode = 3 // ShapeMismatch
	E_DIV      ErrorCode = 4 // DivisionByZero
	E_RANGE    ErrorCode = 5 // IndexOutOfRange
	E_INVARG   ErrorCode = 6 // InvalidArgument
	E_BOOL     ErrorCode = 7 // NotABoolean
	E_CTRL     ErrorCode = 8 // MisplacedControlFlow
	E_MAXTICKS ErrorCode = 9 // ResourceLimit
)

var errorNames = map[ErrorCode]string{
	E_NONE:     "E_NONE",
	E_VARNF:    "E_VARNF",
	E_TYPE:     "E_TYPE",
	E_SHAPE:    "E_SHAPE",
	E_DIV:      "E_DIV",
	E_RANGE:    "E_RANGE",
	E_INVARG:   "E_INVARG",
	E_BOOL:     "E_BOOL",
	E_CTRL:     "E_CTRL",
	E_MAXTICKS: "E_MAXTICKS",
}

// String returns the symbolic name for an error code
func (e ErrorCode) String() string {
	if name, ok := errorNames[e]; ok {
		return name
	}
	return "E_UNKNOWN"
}

// Message returns a human-readable message for an error code
func (e ErrorCode) Message() string {
	switch e {
	case E_NONE:
		return "No error"
	case E_VARNF:
		return "Undefined variable"
	case E_TYPE:
		return "Type mismatch"
	case E_SHAPE:
		return "Shape mismatch"
	case E_DIV:
		return "Division by zero"
	case E_RANGE:
		return "Index out of range"
	case E_INVARG:
		return "Invalid argument"
	case E_BOOL:
		return "Condition is not a boolean"
	case E_CTRL:
		return "Misplaced control flow"
	case E_MAXTICKS:
		return "Resource limit exceeded"
	default:
		return "Unknown error"
	}
}

// ErrorFromString converts a string like "E_DIV" to an ErrorCode
func ErrorFromString(s string) (ErrorCode, bool) {
	for code, name := range errorNames {
		if name == s {
			return code, true
		}
	}
	return E_NONE, false
}

// Value is the interface all runtime values implement
type Value interface {
	Type() TypeCode
	String() string   // Display form, as written by print
	Equal(Value) bool // Deep equality
}
