package apierr

import (
	"context"
	"errors"
	"fmt"
	"net"
)

type Kind string

const (
	KindBackend           Kind = "backend"
	KindTimeout           Kind = "timeout"
	KindStore             Kind = "store"
	KindValidation        Kind = "validation"
	KindIdentityCollision Kind = "identity_collision"
)

// Error tags a failure with its kind and the operation that produced it.
// Error() returns the underlying message unchanged so callers see the raw cause.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		if e.Op != "" {
			return e.Op + ": " + e.Err.Error()
		}
		return e.Err.Error()
	}
	if e.Op != "" {
		return fmt.Sprintf("%s: %s error", e.Op, e.Kind)
	}
	return string(e.Kind) + " error"
}

func (e *Error) Unwrap() error { return e.Err }

func New(kind Kind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

func Backend(op string, err error) *Error    { return New(KindBackend, op, err) }
func Timeout(op string, err error) *Error    { return New(KindTimeout, op, err) }
func Store(op string, err error) *Error      { return New(KindStore, op, err) }
func Validation(op string, err error) *Error { return New(KindValidation, op, err) }
func IdentityCollision(op string, err error) *Error {
	return New(KindIdentityCollision, op, err)
}

// Backendf and friends are shorthands for a formatted cause.
func Backendf(op, format string, args ...any) *Error {
	return Backend(op, fmt.Errorf(format, args...))
}
func Validationf(op, format string, args ...any) *Error {
	return Validation(op, fmt.Errorf(format, args...))
}

// KindOf returns the kind of the outermost *Error in the chain, or "" if none.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) && e != nil {
		return e.Kind
	}
	return ""
}

func IsTimeout(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// Classify wraps a raw backend failure as Timeout or Backend. Errors already carrying
// a kind pass through untouched.
func Classify(op string, err error) error {
	if err == nil {
		return nil
	}
	if KindOf(err) != "" {
		return err
	}
	if IsTimeout(err) {
		return Timeout(op, err)
	}
	return Backend(op, err)
}
