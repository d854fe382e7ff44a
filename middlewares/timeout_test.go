package middlewares_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/reactssr/internal"
	"github.com/dmitrymomot/reactssr/middlewares"
)

func TestTimeout(t *testing.T) {
	t.Parallel()

	t.Run("passes through when handler completes in time", func(t *testing.T) {
		t.Parallel()

		_, err := direct(httptest.NewRequest(http.MethodGet, "/", nil), middlewares.Timeout(time.Second),
			func(c internal.Context) error { return nil })

		require.NoError(t, err)
	})

	t.Run("request context carries deadline", func(t *testing.T) {
		t.Parallel()

		var hasDeadline bool
		_, err := direct(httptest.NewRequest(http.MethodGet, "/", nil), middlewares.Timeout(time.Second),
			func(c internal.Context) error {
				_, hasDeadline = c.Request().Context().Deadline()
				return nil
			})

		require.NoError(t, err)
		require.True(t, hasDeadline)
	})

	t.Run("returns TimeoutError when handler gives up after deadline", func(t *testing.T) {
		t.Parallel()

		_, err := direct(httptest.NewRequest(http.MethodGet, "/", nil), middlewares.Timeout(20*time.Millisecond),
			func(c internal.Context) error {
				<-c.Done()
				return c.Err()
			})

		require.True(t, middlewares.IsTimeoutError(err))
		te, ok := middlewares.AsTimeoutError(err)
		require.True(t, ok)
		require.Equal(t, 20*time.Millisecond, te.Duration)
		require.ErrorIs(t, err, context.DeadlineExceeded)
	})

	t.Run("late response is the only response", func(t *testing.T) {
		t.Parallel()

		for range 20 {
			w := serve(httptest.NewRequest(http.MethodGet, "/", nil),
				[]internal.Middleware{middlewares.Timeout(10 * time.Millisecond)},
				func(r internal.Router) {
					r.GET("/", func(c internal.Context) error {
						<-c.Done()
						return c.HTML(http.StatusGatewayTimeout, "<html>late page</html>")
					})
				})

			require.Equal(t, http.StatusGatewayTimeout, w.Code)
			require.Equal(t, "<html>late page</html>", w.Body.String())
		}
	})

	t.Run("unwritten deadline error answers gateway timeout", func(t *testing.T) {
		t.Parallel()

		w := serve(httptest.NewRequest(http.MethodGet, "/", nil),
			[]internal.Middleware{middlewares.Timeout(10 * time.Millisecond)},
			func(r internal.Router) {
				r.GET("/", func(c internal.Context) error {
					<-c.Done()
					return c.Err()
				})
			})

		require.Equal(t, http.StatusGatewayTimeout, w.Code)
		require.Equal(t, "Gateway Timeout\n", w.Body.String())
	})

	t.Run("error before deadline is not a timeout", func(t *testing.T) {
		t.Parallel()

		_, err := direct(httptest.NewRequest(http.MethodGet, "/", nil), middlewares.Timeout(time.Second),
			func(c internal.Context) error { return context.Canceled })

		require.ErrorIs(t, err, context.Canceled)
		require.False(t, middlewares.IsTimeoutError(err))
	})

	t.Run("timeout is classified as gateway timeout", func(t *testing.T) {
		t.Parallel()

		res := internal.ClassifyError(&middlewares.TimeoutError{Duration: time.Second})
		require.Equal(t, http.StatusGatewayTimeout, res.Status)
		require.Equal(t, "timeout", res.ErrorCode)
	})

	t.Run("handler error is returned", func(t *testing.T) {
		t.Parallel()

		cause := errors.New("failed")
		_, err := direct(httptest.NewRequest(http.MethodGet, "/", nil), middlewares.Timeout(time.Second),
			func(c internal.Context) error { return cause })

		require.ErrorIs(t, err, cause)
		require.False(t, middlewares.IsTimeoutError(err))
	})

	t.Run("non positive duration uses default", func(t *testing.T) {
		t.Parallel()

		var deadline time.Time
		_, err := direct(httptest.NewRequest(http.MethodGet, "/", nil), middlewares.Timeout(0),
			func(c internal.Context) error {
				deadline, _ = c.Request().Context().Deadline()
				return nil
			})

		require.NoError(t, err)
		require.WithinDuration(t, time.Now().Add(middlewares.DefaultTimeout), deadline, 5*time.Second)
	})
}
