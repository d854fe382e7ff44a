package middlewares

import (
	"log/slog"
	"time"

	"github.com/dmitrymomot/reactssr/internal"
)

// AccessLog returns middleware that logs one entry per request after the
// handler returns. A staged response body implementing slog.LogValuer
// (such as the SSR result envelope) is logged under "result".
//
// Requests with a status of 500 or above are logged at error level,
// 400 and above at warn level, everything else at info level.
func AccessLog() internal.Middleware {
	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			start := time.Now()
			err := next(c)

			r := c.Request()
			rw := c.ResponseWriter()
			status := rw.Status()
			if err != nil && !rw.Written() {
				status = internal.ClassifyError(err).Status
			}

			attrs := []any{
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", status),
				slog.Int64("size", rw.Size()),
				slog.Duration("duration", time.Since(start)),
			}
			if v, ok := c.Staged().(slog.LogValuer); ok {
				attrs = append(attrs, slog.Any("result", v))
			}
			if err != nil {
				attrs = append(attrs, slog.Any("error", err))
			}

			switch {
			case status >= 500:
				c.LogError("request", attrs...)
			case status >= 400:
				c.LogWarn("request", attrs...)
			default:
				c.LogInfo("request", attrs...)
			}
			return err
		}
	}
}
