package agent

import (
	"fmt"
)

// ErrLoopProtection indicates that a loop protection limit was reached
type ErrLoopProtection struct {
	Limit   string
	Current int
	Max     int
}

func (e *ErrLoopProtection) Error() string {
	return fmt.Sprintf("loop protection: %s limit reached (%d/%d)",
		e.Limit, e.Current, e.Max)
}

// ErrToolExecution indicates an error occurred while executing a tool
type ErrToolExecution struct {
	ToolName string
	Err      error
}

func (e *ErrToolExecution) Error() string {
	return fmt.Sprintf("tool execution error (%s): %v", e.ToolName, e.Err)
}

func (e *ErrToolExecution) Unwrap() error {
	return e.Err
}
