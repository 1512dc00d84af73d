package availability

import "fmt"

const (
	CodeMalformedTime   = "malformedTime"
	CodeInvalidInterval = "invalidInterval"
	CodeInvalidDay      = "invalidDay"
)

// ValidationError reports availability data rejected at write time.
type ValidationError struct {
	Code    string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func newMalformedTime(value string) error {
	return &ValidationError{
		Code:    CodeMalformedTime,
		Message: fmt.Sprintf("%q is not a valid HH:MM time", value),
	}
}

func newInvalidInterval(start, end string) error {
	return &ValidationError{
		Code:    CodeInvalidInterval,
		Message: fmt.Sprintf("interval start %s must be before end %s", start, end),
	}
}

func newInvalidDay(day string) error {
	return &ValidationError{
		Code:    CodeInvalidDay,
		Message: fmt.Sprintf("%q is not a weekday name", day),
	}
}
