package internal_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/reactssr/internal"
)

// captureHandler registers GET / and GET /{id} routes that run fn.
type captureHandler struct {
	fn func(c internal.Context) error
}

func (h *captureHandler) Routes(r internal.Router) {
	r.GET("/", h.fn)
	r.GET("/items/{id}", h.fn)
}

// requestVia serves req through an App built from opts plus a capture handler.
func requestVia(t *testing.T, req *http.Request, opts []internal.Option, fn func(c internal.Context) error) *httptest.ResponseRecorder {
	t.Helper()

	opts = append(opts, internal.WithHandlers(&captureHandler{fn: fn}))
	app := internal.New(opts...)

	w := httptest.NewRecorder()
	app.ServeHTTP(w, req)
	return w
}

type routes func(r internal.Router)

func (f routes) Routes(r internal.Router) { f(r) }

type pageController struct {
	calls int
}

func (p *pageController) Endpoints(r *internal.Registry) {
	r.Add(internal.Endpoint{
		Kind: "test",
		Path: "/page",
		Name: "page",
		Operation: func(c internal.Context) (any, error) {
			p.calls++
			return "page data", nil
		},
	})
}

type kindPlugin struct {
	kind     string
	notFound internal.HandlerFunc
	mounted  []internal.Endpoint
}

func (p *kindPlugin) Register(app *internal.App) {
	app.RegisterRouteHandler(p.kind, func(r internal.Router, ep internal.Endpoint) {
		p.mounted = append(p.mounted, ep)
		r.GET(ep.Path, func(c internal.Context) error {
			data, err := internal.Invoke(c, ep)
			if err != nil {
				return err
			}
			return c.String(http.StatusOK, data.(string))
		})
	})
	if p.notFound != nil {
		app.UseNotFoundRoute(p.notFound)
	}
}

func TestApp_Routing(t *testing.T) {
	t.Parallel()

	t.Run("handler routes", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/items/42", nil)
		w := requestVia(t, req, nil, func(c internal.Context) error {
			return c.String(http.StatusOK, "item "+c.Param("id"))
		})

		require.Equal(t, http.StatusOK, w.Code)
		require.Equal(t, "item 42", w.Body.String())
	})

	t.Run("route groups and methods", func(t *testing.T) {
		t.Parallel()

		var seen []string
		mw := func(name string) internal.Middleware {
			return func(next internal.HandlerFunc) internal.HandlerFunc {
				return func(c internal.Context) error {
					seen = append(seen, name)
					return next(c)
				}
			}
		}
		h := routes(func(r internal.Router) {
			r.Route("/api", func(r internal.Router) {
				r.Use(mw("group"))
				r.Method(http.MethodPut, "/items/{id}", func(c internal.Context) error {
					return c.String(http.StatusOK, "put "+c.Param("id"))
				}, mw("outer"), mw("inner"))
			})
		})
		app := internal.New(internal.WithHandlers(h))

		w := httptest.NewRecorder()
		app.ServeHTTP(w, httptest.NewRequest(http.MethodPut, "/api/items/3", nil))

		require.Equal(t, "put 3", w.Body.String())
		require.Equal(t, []string{"group", "outer", "inner"}, seen)
	})

	t.Run("head is served by get routes", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodHead, "/items/9", nil)
		w := requestVia(t, req, nil, func(c internal.Context) error {
			c.SetHeader("X-Item", c.Param("id"))
			return c.NoContent(http.StatusOK)
		})

		require.Equal(t, http.StatusOK, w.Code)
		require.Equal(t, "9", w.Header().Get("X-Item"))
	})

	t.Run("global middleware runs in order", func(t *testing.T) {
		t.Parallel()

		var order []string
		mw := func(name string) internal.Middleware {
			return func(next internal.HandlerFunc) internal.HandlerFunc {
				return func(c internal.Context) error {
					order = append(order, name)
					return next(c)
				}
			}
		}

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		w := requestVia(t, req, []internal.Option{internal.WithMiddleware(mw("first"), mw("second"))},
			func(c internal.Context) error {
				order = append(order, "handler")
				return c.NoContent(http.StatusNoContent)
			})

		require.Equal(t, http.StatusNoContent, w.Code)
		require.Equal(t, []string{"first", "second", "handler"}, order)
	})

	t.Run("middleware shares the response writer", func(t *testing.T) {
		t.Parallel()

		var staged any
		mw := func(next internal.HandlerFunc) internal.HandlerFunc {
			return func(c internal.Context) error {
				err := next(c)
				staged = c.Staged()
				return err
			}
		}

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		requestVia(t, req, []internal.Option{internal.WithMiddleware(mw)}, func(c internal.Context) error {
			c.Stage("body")
			return c.NoContent(http.StatusOK)
		})

		require.Equal(t, "body", staged)
	})

	t.Run("handler error uses default error handler", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		w := requestVia(t, req, nil, func(c internal.Context) error {
			return internal.ErrNotFound("missing")
		})

		require.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("custom error handler", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		w := requestVia(t, req, []internal.Option{
			internal.WithErrorHandler(func(c internal.Context, err error) error {
				return c.String(http.StatusTeapot, "custom: "+err.Error())
			}),
		}, func(c internal.Context) error {
			return errors.New("boom")
		})

		require.Equal(t, http.StatusTeapot, w.Code)
		require.Equal(t, "custom: boom", w.Body.String())
	})

	t.Run("set value is visible downstream", func(t *testing.T) {
		t.Parallel()

		type key struct{}
		mw := func(next internal.HandlerFunc) internal.HandlerFunc {
			return func(c internal.Context) error {
				c.Set(key{}, "value")
				return next(c)
			}
		}

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		w := requestVia(t, req, []internal.Option{internal.WithMiddleware(mw)}, func(c internal.Context) error {
			return c.String(http.StatusOK, internal.ContextValue[string](c, key{}))
		})

		require.Equal(t, "value", w.Body.String())
	})
}

func TestApp_Controllers(t *testing.T) {
	t.Parallel()

	t.Run("endpoints mounted by kind", func(t *testing.T) {
		t.Parallel()

		plugin := &kindPlugin{kind: "test"}
		ctrl := &pageController{}
		app := internal.New(
			internal.WithPlugins(plugin),
			internal.WithControllers(ctrl),
		)

		w := httptest.NewRecorder()
		app.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/page", nil))

		require.Equal(t, http.StatusOK, w.Code)
		require.Equal(t, "page data", w.Body.String())
		require.Equal(t, 1, ctrl.calls)
		require.Len(t, plugin.mounted, 1)
		require.Equal(t, internal.DefaultEndpointType, plugin.mounted[0].Type)

		eps := app.Endpoints()
		require.Len(t, eps, 1)
		require.Equal(t, "/page", eps[0].Path)
	})

	t.Run("unknown kind panics at startup", func(t *testing.T) {
		t.Parallel()

		require.PanicsWithValue(t,
			`no route handler registered for endpoint kind: "test" (path "/page", operation "page")`,
			func() {
				internal.New(internal.WithControllers(&pageController{}))
			})
	})

	t.Run("plugin not found route", func(t *testing.T) {
		t.Parallel()

		plugin := &kindPlugin{
			kind: "test",
			notFound: func(c internal.Context) error {
				return c.String(http.StatusNotFound, "plugin not found")
			},
		}
		app := internal.New(
			internal.WithNotFoundHandler(func(c internal.Context) error {
				return c.String(http.StatusNotFound, "option not found")
			}),
			internal.WithPlugins(plugin),
		)

		w := httptest.NewRecorder()
		app.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nowhere", nil))

		require.Equal(t, http.StatusNotFound, w.Code)
		require.Equal(t, "plugin not found", w.Body.String())
	})

	t.Run("nil plugins are ignored", func(t *testing.T) {
		t.Parallel()

		require.NotPanics(t, func() {
			internal.New(internal.WithPlugins(nil))
		})
	})
}

func TestApp_StaticFiles(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"public/build/app.js": {Data: []byte("console.log(1)")},
	}
	app := internal.New(internal.WithStaticFiles("/build/", fsys, "public/build"))

	t.Run("serves file", func(t *testing.T) {
		t.Parallel()

		w := httptest.NewRecorder()
		app.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/build/app.js", nil))

		require.Equal(t, http.StatusOK, w.Code)
		require.Equal(t, "console.log(1)", w.Body.String())
		require.Contains(t, w.Header().Get("Cache-Control"), "immutable")
	})

	t.Run("directory listing disabled", func(t *testing.T) {
		t.Parallel()

		w := httptest.NewRecorder()
		app.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/build/", nil))

		require.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestApp_HealthChecks(t *testing.T) {
	t.Parallel()

	t.Run("liveness", func(t *testing.T) {
		t.Parallel()

		app := internal.New(internal.WithHealthChecks())
		w := httptest.NewRecorder()
		app.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health/live", nil))

		require.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("failing readiness check", func(t *testing.T) {
		t.Parallel()

		app := internal.New(internal.WithHealthChecks(
			internal.WithReadinessPath("/ready"),
			internal.WithReadinessCheck("renderer", func(ctx context.Context) error {
				return errors.New("renderer down")
			}),
		))
		w := httptest.NewRecorder()
		app.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ready?format=json", nil))

		require.Equal(t, http.StatusServiceUnavailable, w.Code)
		require.True(t, strings.Contains(w.Body.String(), "renderer"))
	})
}
