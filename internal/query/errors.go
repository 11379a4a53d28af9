package query

import (
	"errors"
	"fmt"
)

// ErrInvalidParameter is matched by every InvalidParameterError via errors.Is
var ErrInvalidParameter = errors.New("invalid parameter")

// InvalidParameterError names the request parameter that could not be accepted
type InvalidParameterError struct {
	Param  string
	Value  string
	Reason string
	// Date is set when Value is not a usable date
	Date bool
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("invalid %s %q: %s", e.Param, e.Value, e.Reason)
}

// Is lets callers test with errors.Is(err, ErrInvalidParameter)
func (e *InvalidParameterError) Is(target error) bool {
	return target == ErrInvalidParameter
}

func invalidParam(param, value, reason string) error {
	return &InvalidParameterError{Param: param, Value: value, Reason: reason}
}

func invalidDate(param, value string) error {
	return &InvalidParameterError{Param: param, Value: value, Reason: "use YYYY-MM-DD or RFC3339", Date: true}
}
