package bignum

import (
	"errors"
	"fmt"
)

var (
	// ErrDivByZero indicates an attempt to divide by zero.
	ErrDivByZero = errors.New("division by zero")
	// ErrParse indicates a malformed numeral.
	ErrParse = errors.New("invalid numeral")
	// ErrPlatformAssumption indicates that the host violates an assumption
	// every arithmetic routine relies on.
	ErrPlatformAssumption = errors.New("platform assumption violated")
	// ErrInvariant indicates a broken internal precondition (a caller bug).
	ErrInvariant = errors.New("internal invariant violated")
)

// ParseError describes why a numeral was rejected.
type ParseError struct {
	Input  string
	Offset int // byte offset of the offending character, -1 when not positional
	Base   Word
	Reason string
}

func (e *ParseError) Error() string {
	if e.Offset < 0 {
		return fmt.Sprintf("%v %q (base %d): %s", ErrParse, e.Input, e.Base, e.Reason)
	}
	return fmt.Sprintf("%v %q (base %d) at offset %d: %s", ErrParse, e.Input, e.Base, e.Offset, e.Reason)
}

func (e *ParseError) Unwrap() error { return ErrParse }

// PlatformError names the self-check that failed.
type PlatformError struct {
	Check string
}

func (e *PlatformError) Error() string {
	return fmt.Sprintf("%v: %s", ErrPlatformAssumption, e.Check)
}

func (e *PlatformError) Unwrap() error { return ErrPlatformAssumption }

// InvariantError is the panic value raised by the raw word-range primitives
// when their sizing or ordering preconditions are not met.
type InvariantError struct {
	Op     string
	Reason string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("%v: %s: %s", ErrInvariant, e.Op, e.Reason)
}

func (e *InvariantError) Unwrap() error { return ErrInvariant }

func invariantf(op, format string, args ...any) *InvariantError {
	return &InvariantError{Op: op, Reason: fmt.Sprintf(format, args...)}
}
