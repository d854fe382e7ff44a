package middlewares

import (
	"context"
	"errors"
	"time"

	"github.com/dmitrymomot/reactssr/internal"
)

// DefaultTimeout is the default request timeout.
const DefaultTimeout = 30 * time.Second

// TimeoutError reports a handler that outlived the request deadline.
// It unwraps to context.DeadlineExceeded, so the default error handler
// answers with 504.
type TimeoutError struct {
	Duration time.Duration
}

func (e *TimeoutError) Error() string {
	return "request timeout after " + e.Duration.String()
}

func (e *TimeoutError) Unwrap() error {
	return context.DeadlineExceeded
}

// Timeout returns middleware that bounds the request with a deadline.
// The request context carries the deadline, so page and global data
// operations observe it and fail with a 504 outcome that the page handler
// renders itself. The handler runs on the calling goroutine: nothing writes
// to the response after the middleware returns, so long operations must
// watch ctx.Done().
//
// When the handler gives up with an error after the deadline and has not
// written a response, the error is replaced with a *TimeoutError.
func Timeout(timeout time.Duration) internal.Middleware {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			ctx, cancel := context.WithTimeout(c.Request().Context(), timeout)
			defer cancel()

			c.SetRequest(c.Request().WithContext(ctx))

			err := next(c)
			if err == nil || c.Written() || !errors.Is(ctx.Err(), context.DeadlineExceeded) {
				return err
			}
			c.LogWarn("request timeout", "timeout", timeout.String(), "error", err)
			return &TimeoutError{Duration: timeout}
		}
	}
}
