package middlewares_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/reactssr/internal"
	"github.com/dmitrymomot/reactssr/middlewares"
)

var supported = []string{"en", "de", "uk"}

// localePage echoes the routed path and the resolved locals.
func localePage(got *internal.Locals) routes {
	return func(r internal.Router) {
		h := func(c internal.Context) error {
			*got = c.Locals()
			return c.String(http.StatusOK, c.Request().URL.Path)
		}
		r.GET("/", h)
		r.GET("/about", h)
	}
}

func TestLocale(t *testing.T) {
	t.Parallel()

	t.Run("strips locale prefix before routing", func(t *testing.T) {
		t.Parallel()

		var got internal.Locals
		w := serve(httptest.NewRequest(http.MethodGet, "/de/about?tab=team", nil),
			[]internal.Middleware{middlewares.Locale(supported)}, localePage(&got))

		require.Equal(t, http.StatusOK, w.Code)
		require.Equal(t, "/about", w.Body.String())
		require.Equal(t, "de", got.Locale)
		require.Equal(t, "/de/about?tab=team", got.OriginalURLWithLocale)
		require.Equal(t, supported, got.Locales)
	})

	t.Run("bare locale prefix routes to root", func(t *testing.T) {
		t.Parallel()

		var got internal.Locals
		w := serve(httptest.NewRequest(http.MethodGet, "/UK", nil),
			[]internal.Middleware{middlewares.Locale(supported)}, localePage(&got))

		require.Equal(t, http.StatusOK, w.Code)
		require.Equal(t, "/", w.Body.String())
		require.Equal(t, "uk", got.Locale)
		require.Equal(t, "/UK", got.OriginalURLWithLocale)
	})

	t.Run("unsupported prefix is not stripped", func(t *testing.T) {
		t.Parallel()

		var got internal.Locals
		w := serve(httptest.NewRequest(http.MethodGet, "/fr/about", nil),
			[]internal.Middleware{middlewares.Locale(supported)}, localePage(&got))

		require.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("accept language", func(t *testing.T) {
		t.Parallel()

		var got internal.Locals
		req := httptest.NewRequest(http.MethodGet, "/about", nil)
		req.Header.Set("Accept-Language", "fr-FR,de-AT;q=0.8")

		w := serve(req, []internal.Middleware{middlewares.Locale(supported)}, localePage(&got))

		require.Equal(t, http.StatusOK, w.Code)
		require.Equal(t, "de", got.Locale)
		require.Empty(t, got.OriginalURLWithLocale)
	})

	t.Run("cookie wins over accept language", func(t *testing.T) {
		t.Parallel()

		var got internal.Locals
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Accept-Language", "de")
		req.AddCookie(&http.Cookie{Name: middlewares.DefaultLocaleCookie, Value: "UK"})

		serve(req, []internal.Middleware{middlewares.Locale(supported)}, localePage(&got))

		require.Equal(t, "uk", got.Locale)
	})

	t.Run("unsupported cookie falls back to default", func(t *testing.T) {
		t.Parallel()

		var got internal.Locals
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: middlewares.DefaultLocaleCookie, Value: "xx"})

		serve(req, []internal.Middleware{middlewares.Locale(supported)}, localePage(&got))

		require.Equal(t, "en", got.Locale)
	})

	t.Run("unsupported cookie defers to accept language", func(t *testing.T) {
		t.Parallel()

		var got internal.Locals
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Accept-Language", "de")
		req.AddCookie(&http.Cookie{Name: middlewares.DefaultLocaleCookie, Value: "xx"})

		serve(req, []internal.Middleware{middlewares.Locale(supported)}, localePage(&got))

		require.Equal(t, "de", got.Locale)
	})

	t.Run("custom default and extractor", func(t *testing.T) {
		t.Parallel()

		var got internal.Locals
		req := httptest.NewRequest(http.MethodGet, "/?lang=de", nil)

		mw := middlewares.Locale(supported,
			middlewares.WithDefaultLocale("uk"),
			middlewares.WithLocaleExtractor(internal.NewExtractor(internal.FromQuery("lang"))),
		)
		serve(req, []internal.Middleware{mw}, localePage(&got))
		require.Equal(t, "de", got.Locale)

		serve(httptest.NewRequest(http.MethodGet, "/", nil), []internal.Middleware{mw}, localePage(&got))
		require.Equal(t, "uk", got.Locale)
	})

	t.Run("prefix detection disabled", func(t *testing.T) {
		t.Parallel()

		var got internal.Locals
		w := serve(httptest.NewRequest(http.MethodGet, "/de/about", nil),
			[]internal.Middleware{middlewares.Locale(supported, middlewares.WithoutLocalePrefix())}, localePage(&got))

		require.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("get locale", func(t *testing.T) {
		t.Parallel()

		var locale string
		_, err := direct(httptest.NewRequest(http.MethodGet, "/de", nil), middlewares.Locale(supported),
			func(c internal.Context) error {
				locale = middlewares.GetLocale(c)
				return nil
			})

		require.NoError(t, err)
		require.Equal(t, "de", locale)
	})
}
