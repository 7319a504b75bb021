package timeplugin

import (
	"fmt"
	"strings"
)

// ErrDateParse indicates a date string matched none of the accepted formats
type ErrDateParse struct {
	Input string
	Err   error
}

func (e *ErrDateParse) Error() string {
	return fmt.Sprintf("could not parse date '%s'. Try one of: %s",
		e.Input, strings.Join(AcceptedFormats, ", "))
}

func (e *ErrDateParse) Unwrap() error {
	return e.Err
}
