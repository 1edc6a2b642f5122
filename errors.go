package fstr

import (
	"errors"
	"fmt"
)

// Sentinel errors for programmatic error handling.
var (
	ErrBadFormat      = errors.New("malformed format string")
	ErrBadSpec        = errors.New("malformed format spec")
	ErrNoArg          = errors.New("argument not found")
	ErrNotFormattable = errors.New("value is not formattable")
	ErrTypeMismatch   = errors.New("presentation type mismatch")
)

// ParseError reports a syntax error in a format string or spec, with the
// byte offset of the offending character. It wraps [ErrBadFormat] or
// [ErrBadSpec] so errors.Is works against the sentinels.
type ParseError struct {
	Pos int
	Err error
	Msg string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%v at position %d: %s", e.Err, e.Pos, e.Msg)
}

func (e *ParseError) Unwrap() error { return e.Err }

func parseErr(pos int, sentinel error, format string, args ...any) *ParseError {
	return &ParseError{Pos: pos, Err: sentinel, Msg: fmt.Sprintf(format, args...)}
}

// ResolveError reports a failure to bind a replacement field to an argument:
// an index out of range, an unknown name, a width or precision reference to
// a non-integer, or a presentation type incompatible with the argument. It
// wraps [ErrNoArg], [ErrNotFormattable], or [ErrTypeMismatch].
type ResolveError struct {
	Ref ArgRef
	Err error
	Msg string
}

func (e *ResolveError) Error() string {
	return fmt.Sprintf("%v: %s", e.Err, e.Msg)
}

func (e *ResolveError) Unwrap() error { return e.Err }

func resolveErr(ref ArgRef, sentinel error, format string, args ...any) *ResolveError {
	return &ResolveError{Ref: ref, Err: sentinel, Msg: fmt.Sprintf(format, args...)}
}
