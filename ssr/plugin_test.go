package ssr_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/reactssr/internal"
	"github.com/dmitrymomot/reactssr/middlewares"
	"github.com/dmitrymomot/reactssr/pkg/manifest"
	"github.com/dmitrymomot/reactssr/ssr"
)

// recordingRenderer captures every render context it receives.
type recordingRenderer struct {
	mu    sync.Mutex
	calls []ssr.RenderContext
	html  string
	err   error
	panic any
}

func (r *recordingRenderer) Render(_ context.Context, rc *ssr.RenderContext) (string, error) {
	r.mu.Lock()
	r.calls = append(r.calls, *rc)
	r.mu.Unlock()

	if r.panic != nil {
		panic(r.panic)
	}
	if r.err != nil {
		return "", r.err
	}
	return r.html, nil
}

func (r *recordingRenderer) Calls() []ssr.RenderContext {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]ssr.RenderContext(nil), r.calls...)
}

type pages struct {
	home func(c internal.Context) (any, error)
}

func (p *pages) Endpoints(r *internal.Registry) {
	ssr.Page(r, "/", "homePage", p.home)
}

type notFoundPage struct {
	err error
}

func (n notFoundPage) NotFoundPage(c internal.Context) (any, error) {
	if n.err != nil {
		return nil, n.err
	}
	return map[string]string{"path": c.Request().URL.Path}, nil
}

func homeReturns(data any, err error) *pages {
	return &pages{home: func(c internal.Context) (any, error) { return data, err }}
}

func newApp(t *testing.T, plugin *ssr.Plugin, ctrl internal.Controller, opts ...internal.Option) *internal.App {
	t.Helper()

	opts = append(opts, internal.WithPlugins(plugin))
	if ctrl != nil {
		opts = append(opts, internal.WithControllers(ctrl))
	}
	return internal.New(opts...)
}

func serve(app *internal.App, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	app.ServeHTTP(w, req)
	return w
}

func TestNew(t *testing.T) {
	t.Parallel()

	render := (&recordingRenderer{}).Render

	t.Run("missing manifest", func(t *testing.T) {
		t.Parallel()

		_, err := ssr.New(ssr.Build{Render: render})
		require.ErrorIs(t, err, ssr.ErrNoManifest)
	})

	t.Run("missing render func", func(t *testing.T) {
		t.Parallel()

		_, err := ssr.New(ssr.Build{Manifest: testManifest()})
		require.ErrorIs(t, err, ssr.ErrNoRenderFunc)
	})

	t.Run("invalid manifest", func(t *testing.T) {
		t.Parallel()

		_, err := ssr.New(ssr.Build{Manifest: &manifest.Manifest{}, Render: render})
		require.ErrorIs(t, err, manifest.ErrMissingRootRoute)
	})

	t.Run("must new panics", func(t *testing.T) {
		t.Parallel()

		require.Panics(t, func() {
			ssr.MustNew(ssr.Build{})
		})
	})
}

func TestPlugin_HTML(t *testing.T) {
	t.Parallel()

	t.Run("page success renders document", func(t *testing.T) {
		t.Parallel()

		renderer := &recordingRenderer{html: "<html>home</html>"}
		plugin := ssr.MustNew(ssr.Build{Manifest: testManifest(), Render: renderer.Render})
		app := newApp(t, plugin, homeReturns(map[string]string{"title": "Home"}, nil))

		w := serve(app, httptest.NewRequest(http.MethodGet, "/", nil))

		require.Equal(t, http.StatusOK, w.Code)
		require.Contains(t, w.Header().Get("Content-Type"), "text/html")
		require.Equal(t, "<html>home</html>", w.Body.String())

		calls := renderer.Calls()
		require.Len(t, calls, 1)
		require.Equal(t, map[string]string{"title": "Home"}, calls[0].PageData.Data)
		require.False(t, calls[0].PageData.Error)
		require.Nil(t, calls[0].GlobalData)
		require.Equal(t, "/", calls[0].Router.Path)
	})

	t.Run("page status is response status", func(t *testing.T) {
		t.Parallel()

		renderer := &recordingRenderer{html: "<html>missing</html>"}
		plugin := ssr.MustNew(ssr.Build{Manifest: testManifest(), Render: renderer.Render})
		app := newApp(t, plugin, homeReturns(nil, internal.ErrNotFound("Page not found", internal.WithErrorCode("not_found"))))

		w := serve(app, httptest.NewRequest(http.MethodGet, "/", nil))

		require.Equal(t, http.StatusNotFound, w.Code)
		require.Equal(t, "<html>missing</html>", w.Body.String())
		require.Len(t, renderer.Calls(), 1)
		require.True(t, renderer.Calls()[0].PageData.Error)
	})

	t.Run("render error serves fallback page", func(t *testing.T) {
		t.Parallel()

		renderer := &recordingRenderer{err: errors.New("window is not defined")}
		plugin := ssr.MustNew(ssr.Build{Manifest: testManifest(), Render: renderer.Render})
		app := newApp(t, plugin, homeReturns("home", nil))

		w := serve(app, httptest.NewRequest(http.MethodGet, "/", nil))

		require.Equal(t, http.StatusInternalServerError, w.Code)
		require.Contains(t, w.Header().Get("Content-Type"), "text/html")
		require.Equal(t, ssr.FallbackPage(nil), w.Body.String())
		require.NotContains(t, w.Body.String(), "window is not defined")
	})

	t.Run("render panic serves fallback page", func(t *testing.T) {
		t.Parallel()

		renderer := &recordingRenderer{panic: "render exploded"}
		plugin := ssr.MustNew(ssr.Build{Manifest: testManifest(), Render: renderer.Render})
		app := newApp(t, plugin, homeReturns("home", nil))

		w := serve(app, httptest.NewRequest(http.MethodGet, "/", nil))

		require.Equal(t, http.StatusInternalServerError, w.Code)
		require.Equal(t, ssr.FallbackPage(nil), w.Body.String())
	})

	t.Run("localized fallback page", func(t *testing.T) {
		t.Parallel()

		renderer := &recordingRenderer{err: errors.New("boom")}
		plugin := ssr.MustNew(
			ssr.Build{Manifest: testManifest(), Render: renderer.Render},
			ssr.WithErrorPageCopy(ssr.UkrainianErrorPageCopy),
		)
		app := newApp(t, plugin, homeReturns("home", nil))

		w := serve(app, httptest.NewRequest(http.MethodGet, "/", nil))

		require.Equal(t, http.StatusInternalServerError, w.Code)
		require.Equal(t, ssr.RenderErrorPage(ssr.UkrainianErrorPageCopy), w.Body.String())
		require.Contains(t, w.Body.String(), `lang="uk"`)
	})

	t.Run("global data reaches render context", func(t *testing.T) {
		t.Parallel()

		renderer := &recordingRenderer{html: "ok"}
		g := &globalController{data: map[string]string{"menu": "main"}}
		plugin := ssr.MustNew(ssr.Build{Manifest: testManifest(), Render: renderer.Render}).
			UseGlobalDataController(func() ssr.GlobalDataController { return g })
		app := newApp(t, plugin, homeReturns("home", nil))

		w := serve(app, httptest.NewRequest(http.MethodGet, "/", nil))

		require.Equal(t, http.StatusOK, w.Code)
		calls := renderer.Calls()
		require.Len(t, calls, 1)
		require.NotNil(t, calls[0].GlobalData)
		require.Equal(t, map[string]string{"menu": "main"}, calls[0].GlobalData.Data)
		require.EqualValues(t, 1, g.calls.Load())
	})

	t.Run("initial preload false skips global data", func(t *testing.T) {
		t.Parallel()

		renderer := &recordingRenderer{html: "ok"}
		g := &globalController{data: "layout"}
		plugin := ssr.MustNew(ssr.Build{Manifest: testManifest(), Render: renderer.Render}).
			UseGlobalDataController(func() ssr.GlobalDataController { return g })
		app := newApp(t, plugin, homeReturns("home", nil))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(ssr.HeaderInitialPreload, "false")
		w := serve(app, req)

		require.Equal(t, http.StatusOK, w.Code)
		require.Zero(t, g.calls.Load())
		require.Nil(t, renderer.Calls()[0].GlobalData)
	})
}

func TestPlugin_JSON(t *testing.T) {
	t.Parallel()

	t.Run("not found page data", func(t *testing.T) {
		t.Parallel()

		renderer := &recordingRenderer{html: "unused"}
		plugin := ssr.MustNew(ssr.Build{Manifest: testManifest(), Render: renderer.Render})
		app := newApp(t, plugin, homeReturns(nil, internal.ErrNotFound("Page not found", internal.WithErrorCode("not_found"))))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(ssr.HeaderOnlyJSON, "true")
		w := serve(app, req)

		require.Equal(t, http.StatusNotFound, w.Code)
		require.Contains(t, w.Header().Get("Content-Type"), "application/json")
		require.JSONEq(t, `{
			"globalData": null,
			"pageData": {
				"data": null,
				"error": true,
				"errors": ["Page not found"],
				"errorCode": "not_found",
				"status": 404
			}
		}`, w.Body.String())
		require.Empty(t, renderer.Calls())
	})

	t.Run("success payload", func(t *testing.T) {
		t.Parallel()

		renderer := &recordingRenderer{html: "unused"}
		g := &globalController{data: "layout"}
		plugin := ssr.MustNew(ssr.Build{Manifest: testManifest(), Render: renderer.Render}).
			UseGlobalDataController(func() ssr.GlobalDataController { return g })
		app := newApp(t, plugin, homeReturns(map[string]string{"title": "Home"}, nil))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(ssr.HeaderOnlyJSON, "true")
		w := serve(app, req)

		require.Equal(t, http.StatusOK, w.Code)
		require.JSONEq(t, `{
			"globalData": {"data": "layout", "error": false, "errors": [], "errorCode": null, "status": 200},
			"pageData": {"data": {"title": "Home"}, "error": false, "errors": [], "errorCode": null, "status": 200}
		}`, w.Body.String())
		require.Empty(t, renderer.Calls())
	})

	t.Run("other header values render html", func(t *testing.T) {
		t.Parallel()

		renderer := &recordingRenderer{html: "<html></html>"}
		plugin := ssr.MustNew(ssr.Build{Manifest: testManifest(), Render: renderer.Render})
		app := newApp(t, plugin, homeReturns("home", nil))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(ssr.HeaderOnlyJSON, "1")
		w := serve(app, req)

		require.Equal(t, "<html></html>", w.Body.String())
		require.Len(t, renderer.Calls(), 1)
	})
}

func TestPlugin_StagedEnvelope(t *testing.T) {
	t.Parallel()

	capture := func(dst *ssr.Envelope) internal.Middleware {
		return func(next internal.HandlerFunc) internal.HandlerFunc {
			return func(c internal.Context) error {
				err := next(c)
				if env, ok := c.Staged().(ssr.Envelope); ok {
					*dst = env
				}
				return err
			}
		}
	}

	t.Run("unclassified global failure", func(t *testing.T) {
		t.Parallel()

		var env ssr.Envelope
		renderer := &recordingRenderer{html: "ok"}
		g := &globalController{err: errors.New("db down")}
		plugin := ssr.MustNew(ssr.Build{Manifest: testManifest(), Render: renderer.Render}).
			UseGlobalDataController(func() ssr.GlobalDataController { return g })
		app := newApp(t, plugin, homeReturns("home", nil), internal.WithMiddleware(capture(&env)))

		w := serve(app, httptest.NewRequest(http.MethodGet, "/", nil))

		require.Equal(t, http.StatusOK, w.Code)
		require.True(t, env.Error)
		require.Equal(t, ssr.ErrorCodeServerSide, env.Code())
		require.NotNil(t, env.GlobalData)
		require.Equal(t, http.StatusInternalServerError, env.GlobalData.Status)
		require.Equal(t, http.StatusOK, env.PageData.Status)
	})

	t.Run("classified global failure wins over page code", func(t *testing.T) {
		t.Parallel()

		var env ssr.Envelope
		renderer := &recordingRenderer{html: "ok"}
		g := &globalController{err: internal.ErrForbidden("no", internal.WithErrorCode("forbidden"))}
		plugin := ssr.MustNew(ssr.Build{Manifest: testManifest(), Render: renderer.Render}).
			UseGlobalDataController(func() ssr.GlobalDataController { return g })
		app := newApp(t, plugin,
			homeReturns(nil, internal.ErrNotFound("gone", internal.WithErrorCode("not_found"))),
			internal.WithMiddleware(capture(&env)),
		)

		w := serve(app, httptest.NewRequest(http.MethodGet, "/", nil))

		require.Equal(t, http.StatusNotFound, w.Code)
		require.True(t, env.Error)
		require.Equal(t, "forbidden", env.Code())
	})

	t.Run("success has no code", func(t *testing.T) {
		t.Parallel()

		var env ssr.Envelope
		renderer := &recordingRenderer{html: "ok"}
		plugin := ssr.MustNew(ssr.Build{Manifest: testManifest(), Render: renderer.Render})
		app := newApp(t, plugin, homeReturns("home", nil), internal.WithMiddleware(capture(&env)))

		serve(app, httptest.NewRequest(http.MethodGet, "/", nil))

		require.False(t, env.Error)
		require.Nil(t, env.ErrorCode)
		require.Nil(t, env.GlobalData)
	})
}

func TestPlugin_NotFoundController(t *testing.T) {
	t.Parallel()

	t.Run("serves unmatched routes", func(t *testing.T) {
		t.Parallel()

		renderer := &recordingRenderer{html: "<html>404</html>"}
		plugin := ssr.MustNew(ssr.Build{Manifest: testManifest(), Render: renderer.Render}).
			UseNotFoundController(func() ssr.NotFoundController {
				return notFoundPage{err: internal.ErrNotFound("Page not found", internal.WithErrorCode("not_found"))}
			})
		app := newApp(t, plugin, homeReturns("home", nil))

		w := serve(app, httptest.NewRequest(http.MethodGet, "/nowhere", nil))

		require.Equal(t, http.StatusNotFound, w.Code)
		require.Equal(t, "<html>404</html>", w.Body.String())
		calls := renderer.Calls()
		require.Len(t, calls, 1)
		require.Equal(t, "/nowhere", calls[0].Router.Path)
		require.Equal(t, "not_found", calls[0].PageData.ErrorCode)
	})

	t.Run("successful not found page keeps status 200", func(t *testing.T) {
		t.Parallel()

		renderer := &recordingRenderer{html: "ok"}
		plugin := ssr.MustNew(ssr.Build{Manifest: testManifest(), Render: renderer.Render}).
			UseNotFoundController(func() ssr.NotFoundController { return notFoundPage{} })
		app := newApp(t, plugin, nil)

		req := httptest.NewRequest(http.MethodGet, "/missing", nil)
		req.Header.Set(ssr.HeaderOnlyJSON, "true")
		w := serve(app, req)

		require.Equal(t, http.StatusOK, w.Code)
		require.JSONEq(t, `{
			"globalData": null,
			"pageData": {"data": {"path": "/missing"}, "error": false, "errors": [], "errorCode": null, "status": 200}
		}`, w.Body.String())
	})

	t.Run("later call replaces earlier", func(t *testing.T) {
		t.Parallel()

		renderer := &recordingRenderer{html: "ok"}
		plugin := ssr.MustNew(ssr.Build{Manifest: testManifest(), Render: renderer.Render}).
			UseNotFoundController(func() ssr.NotFoundController {
				return notFoundPage{err: errors.New("first")}
			}).
			UseNotFoundController(func() ssr.NotFoundController { return notFoundPage{} })
		app := newApp(t, plugin, nil)

		w := serve(app, httptest.NewRequest(http.MethodGet, "/missing", nil))

		require.Equal(t, http.StatusOK, w.Code)
		require.False(t, renderer.Calls()[0].PageData.Error)
	})

	t.Run("nil factory removes controller", func(t *testing.T) {
		t.Parallel()

		renderer := &recordingRenderer{html: "ok"}
		plugin := ssr.MustNew(ssr.Build{Manifest: testManifest(), Render: renderer.Render}).
			UseNotFoundController(func() ssr.NotFoundController { return notFoundPage{} }).
			UseNotFoundController(nil)
		app := newApp(t, plugin, nil)

		w := serve(app, httptest.NewRequest(http.MethodGet, "/missing", nil))

		require.Equal(t, http.StatusNotFound, w.Code)
		require.Empty(t, renderer.Calls())
	})
}

func TestPlugin_GlobalDataController(t *testing.T) {
	t.Parallel()

	t.Run("nil factory removes controller", func(t *testing.T) {
		t.Parallel()

		g := &globalController{data: "layout"}
		plugin := ssr.MustNew(ssr.Build{Manifest: testManifest(), Render: (&recordingRenderer{}).Render}).
			UseGlobalDataController(func() ssr.GlobalDataController { return g }).
			UseGlobalDataController(nil)

		require.False(t, plugin.Resolver().HasGlobal())
	})

	t.Run("parallel resolve", func(t *testing.T) {
		t.Parallel()

		renderer := &recordingRenderer{html: "ok"}
		g := &globalController{data: "layout"}
		plugin := ssr.MustNew(
			ssr.Build{Manifest: testManifest(), Render: renderer.Render},
			ssr.WithParallelResolve(),
		).UseGlobalDataController(func() ssr.GlobalDataController { return g })
		app := newApp(t, plugin, homeReturns("home", nil))

		w := serve(app, httptest.NewRequest(http.MethodGet, "/", nil))

		require.Equal(t, http.StatusOK, w.Code)
		calls := renderer.Calls()
		require.Len(t, calls, 1)
		require.Equal(t, "home", calls[0].PageData.Data)
		require.Equal(t, "layout", calls[0].GlobalData.Data)
	})
}

func TestPlugin_Register(t *testing.T) {
	t.Parallel()

	plugin := ssr.MustNew(ssr.Build{Manifest: testManifest(), Render: (&recordingRenderer{}).Render})
	app := newApp(t, plugin, homeReturns("home", nil))

	eps := app.Endpoints()
	require.Len(t, eps, 1)
	require.Equal(t, ssr.KindReactSSR, eps[0].Kind)
	require.Equal(t, "homePage", eps[0].Name)

	w := serve(app, httptest.NewRequest(http.MethodPost, "/", nil))
	require.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestPlugin_RequestDeadline(t *testing.T) {
	t.Parallel()

	for range 20 {
		renderer := &recordingRenderer{html: "<html>late page</html>"}
		plugin := ssr.MustNew(ssr.Build{Manifest: testManifest(), Render: renderer.Render})
		slow := &pages{home: func(c internal.Context) (any, error) {
			<-c.Done()
			return nil, c.Err()
		}}
		app := newApp(t, plugin, slow, internal.WithMiddleware(middlewares.Timeout(10*time.Millisecond)))

		w := serve(app, httptest.NewRequest(http.MethodGet, "/", nil))

		require.Equal(t, http.StatusGatewayTimeout, w.Code)
		require.Equal(t, "<html>late page</html>", w.Body.String())

		calls := renderer.Calls()
		require.Len(t, calls, 1)
		require.Equal(t, "timeout", calls[0].PageData.ErrorCode)
	}
}
