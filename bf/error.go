package bf

import (
	"errors"
	"fmt"
)

var (
	ErrUnmatchedLoopOpen  = errors.New("unmatched loop open")
	ErrUnmatchedLoopClose = errors.New("unmatched loop close")

	ErrPointerOutOfRange = errors.New("pointer out of range")
	ErrInputExhausted    = errors.New("input exhausted")
	ErrOutputFailed      = errors.New("output failed")

	ErrHalted = errors.New("halted")
)

// CompileError reports unbalanced brackets.
// Index is the offending opcode index, Pos its source offset.
// For an unmatched loop open, Indices holds every pending open index.
type CompileError struct {
	Err     error
	Index   int
	Indices []int
	Pos     int
}

var _ error = new(CompileError)

func (c *CompileError) Error() string {
	if len(c.Indices) > 1 {
		return fmt.Sprintf("%v at opcodes %v", c.Err, c.Indices)
	}
	return fmt.Sprintf("%v at opcode %d (offset %d)", c.Err, c.Index, c.Pos)
}

func (c *CompileError) Unwrap() error {
	return c.Err
}

// RuntimeError aborts a run. IP and DP are the pointers at the failing opcode.
type RuntimeError struct {
	Err   error
	IP    int
	DP    int
	Cause error
}

var _ error = new(RuntimeError)

func (r *RuntimeError) Error() string {
	if r.Cause != nil {
		return fmt.Sprintf("%v at ip %d, dp %d: %v", r.Err, r.IP, r.DP, r.Cause)
	}
	return fmt.Sprintf("%v at ip %d, dp %d", r.Err, r.IP, r.DP)
}

func (r *RuntimeError) Unwrap() []error {
	if r.Cause != nil {
		return []error{r.Err, r.Cause}
	}
	return []error{r.Err}
}
