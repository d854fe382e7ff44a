package middlewares

import (
	"errors"

	"github.com/dmitrymomot/reactssr/internal"
)

// IsPanicError reports whether err carries a panic recovered by Recover.
func IsPanicError(err error) bool {
	_, ok := as[*internal.PanicError](err)
	return ok
}

// AsPanicError returns the recovered panic carried by err.
func AsPanicError(err error) (*internal.PanicError, bool) {
	return as[*internal.PanicError](err)
}

// IsTimeoutError reports whether err is a TimeoutError.
func IsTimeoutError(err error) bool {
	_, ok := as[*TimeoutError](err)
	return ok
}

// AsTimeoutError returns the TimeoutError carried by err.
func AsTimeoutError(err error) (*TimeoutError, bool) {
	return as[*TimeoutError](err)
}

func as[T error](err error) (T, bool) {
	var target T
	ok := errors.As(err, &target)
	return target, ok
}
