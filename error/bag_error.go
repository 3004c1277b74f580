package error

import "errors"

type ErrorType int

const (
	BagError ErrorType = iota
	OverflowError
	ReporterError
	IoError
	ConditionError
	EnvNotSetError
	LineNumZeroError
	LineNumTooLargeError
)

type Error struct {
	Message string
	Type    ErrorType
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)

	if !ok {
		return false
	}

	return (e.Type == t.Type) && (e.Message == t.Message)
}

// IsType reports whether err, or any error it wraps, is an *Error of the
// given type. Messages are not compared.
func IsType(err error, errorType ErrorType) bool {
	var t *Error

	return errors.As(err, &t) && t.Type == errorType
}

func New(errorType ErrorType, reason string) *Error {
	error := &Error{}

	switch errorType {
	case BagError:
		error.Message = "bag: " + reason
	case OverflowError:
		error.Message = "bag: Counter overflow: " + reason
	case ReporterError:
		error.Message = "bag: Reporter error: " + reason
	case IoError:
		error.Message = "bag: IO error: " + reason
	case ConditionError:
		error.Message = "bag: Condition was not true: " + reason
	case EnvNotSetError:
		error.Message = "bag: Environment variable not set: " + reason
	case LineNumTooLargeError:
		error.Message = "bag: Line number too large: " + reason
	case LineNumZeroError:
		error.Message = "bag: Line number is zero or negative: " + reason
	default:
		error.Message = "bag: Unknown error: " + reason
	}

	error.Type = errorType

	return error
}
