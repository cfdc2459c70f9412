package ff

import "errors"

var (
	// ErrInvalidValue is returned by strict constructors when the input
	// is not a canonical representative in [0, q).
	ErrInvalidValue = errors.New("ff: value is not a canonical field element")

	// ErrDivisionByZero is returned when inverting the zero element.
	ErrDivisionByZero = errors.New("ff: division by zero")

	// ErrNoSquareRoot is returned by Sqrt when the operand is not a
	// quadratic residue.
	ErrNoSquareRoot = errors.New("ff: element is not a square")
)
