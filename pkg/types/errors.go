package types

import "fmt"

// ParseError reports a malformed or incomplete golden case record. It is
// fatal: the whole load aborts and no case executes.
type ParseError struct {
	Path string
	Line int
	Msg  string
	Err  error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s:%d: %s: %v", e.Path, e.Line, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s:%d: %s", e.Path, e.Line, e.Msg)
}

func (e *ParseError) Unwrap() error { return e.Err }

// NewParseError constructs a ParseError for the given file position.
func NewParseError(path string, line int, msg string, err error) *ParseError {
	return &ParseError{Path: path, Line: line, Msg: msg, Err: err}
}

// InfraError reports a failed, errored or timed-out producer call. It is
// non-fatal: the case is recorded with failure class "infra" and the run
// continues.
type InfraError struct {
	Op      string
	Err     error
	Timeout bool
}

func (e *InfraError) Error() string {
	if e.Timeout {
		return fmt.Sprintf("%s: timed out: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *InfraError) Unwrap() error { return e.Err }

// NewInfraError wraps a backend failure.
func NewInfraError(op string, err error, timeout bool) *InfraError {
	return &InfraError{Op: op, Err: err, Timeout: timeout}
}
