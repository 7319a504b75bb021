package weather

import (
	"fmt"
)

// ErrUpstreamHTTP indicates the forecast API could not be reached or
// answered with a non-success status
type ErrUpstreamHTTP struct {
	StatusCode int
	Body       string
	Err        error
}

func (e *ErrUpstreamHTTP) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("forecast request failed: %v", e.Err)
	}
	return fmt.Sprintf("forecast API returned status %d: %s", e.StatusCode, e.Body)
}

func (e *ErrUpstreamHTTP) Unwrap() error {
	return e.Err
}

// ErrUpstreamParse indicates the forecast API answered with an unexpected body
type ErrUpstreamParse struct {
	Err error
}

func (e *ErrUpstreamParse) Error() string {
	return fmt.Sprintf("failed to parse forecast response: %v", e.Err)
}

func (e *ErrUpstreamParse) Unwrap() error {
	return e.Err
}

// ErrCoordination indicates a sibling plugin returned nothing usable
type ErrCoordination struct {
	Plugin   string
	Function string
	Reason   string
	Err      error
}

func (e *ErrCoordination) Error() string {
	msg := fmt.Sprintf("%s.%s: %s", e.Plugin, e.Function, e.Reason)
	if e.Err != nil {
		msg += fmt.Sprintf(": %v", e.Err)
	}
	return msg
}

func (e *ErrCoordination) Unwrap() error {
	return e.Err
}

// ErrInvalidDaySpec indicates a day specification that is neither a day
// count nor a weekday name
type ErrInvalidDaySpec struct {
	Spec string
}

func (e *ErrInvalidDaySpec) Error() string {
	return fmt.Sprintf("invalid day specification %q: use a number of days from today or a weekday name", e.Spec)
}
