package internal

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/reactssr/pkg/health"
	"github.com/dmitrymomot/reactssr/pkg/logger"
)

// Default server timeouts (hardcoded, opinionated).
const (
	defaultReadTimeout       = 15 * time.Second
	defaultWriteTimeout      = 30 * time.Second
	defaultIdleTimeout       = 120 * time.Second
	defaultReadHeaderTimeout = 5 * time.Second
	defaultMaxHeaderBytes    = 1 << 20 // 1MB
	defaultShutdownTimeout   = 30 * time.Second
)

// App orchestrates the application lifecycle.
// It manages HTTP routing, middleware, plugins and graceful shutdown.
// App is immutable after creation - all configuration is done via New().
type App struct {
	router                  chi.Router
	errorHandler            ErrorHandler
	notFoundHandler         HandlerFunc
	methodNotAllowedHandler HandlerFunc
	healthConfig            *healthConfig
	logger                  *slog.Logger
	routeHandlers           map[string]RouteHandler
	middlewares             []Middleware
	handlers                []Handler
	controllers             []Controller
	plugins                 []Plugin
	staticRoutes            []staticRoute
	endpoints               []Endpoint
}

// staticRoute represents a static file handler mount point.
type staticRoute struct {
	handler http.Handler
	pattern string
}

// New creates a new application with the given options.
// Plugins are registered after all options are applied, then routes are
// mounted. An endpoint whose kind has no route handler panics here:
// a misconfigured application must not start.
//
// Example:
//
//	app := reactssr.New(
//	    reactssr.WithMiddleware(middlewares.RequestID()),
//	    reactssr.WithPlugins(ssrPlugin),
//	    reactssr.WithControllers(pages.New(repo)),
//	)
func New(opts ...Option) *App {
	a := &App{
		router:        chi.NewRouter(),
		logger:        logger.Discard(),
		routeHandlers: make(map[string]RouteHandler),
	}

	for _, opt := range opts {
		opt(a)
	}

	for _, p := range a.plugins {
		p.Register(a)
	}

	a.setupRoutes()
	return a
}

// RegisterRouteHandler installs the strategy used to mount endpoints of the
// given kind. A later call for the same kind replaces the earlier one.
func (a *App) RegisterRouteHandler(kind string, h RouteHandler) {
	if kind == "" || h == nil {
		return
	}
	a.routeHandlers[kind] = h
}

// UseNotFoundRoute sets the catch-all handler for unmatched routes.
func (a *App) UseNotFoundRoute(h HandlerFunc) {
	if h != nil {
		a.notFoundHandler = h
	}
}

// Logger returns the application logger.
func (a *App) Logger() *slog.Logger {
	return a.logger
}

// Router returns the underlying chi.Router for the App.
func (a *App) Router() chi.Router {
	return a.router
}

// Endpoints returns the controller endpoints mounted on the router.
func (a *App) Endpoints() []Endpoint {
	out := make([]Endpoint, len(a.endpoints))
	copy(out, a.endpoints)
	return out
}

// ServeHTTP implements http.Handler.
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.router.ServeHTTP(w, r)
}

// Run starts the HTTP server and blocks until shutdown.
//
// Example:
//
//	app := reactssr.New(
//	    reactssr.WithPlugins(ssrPlugin),
//	)
//	err := app.Run(":8080", reactssr.Logger(slog))
func (a *App) Run(addr string, opts ...RunOption) error {
	cfg := &runConfig{shutdownTimeout: defaultShutdownTimeout}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg.serve(addr, a.router)
}

// setupRoutes configures the router with middleware and handlers.
func (a *App) setupRoutes() {
	for _, mw := range a.middlewares {
		a.router.Use(a.adaptMiddleware(mw))
	}

	if a.notFoundHandler != nil {
		a.router.NotFound(a.wrapHandler(a.notFoundHandler))
	}
	if a.methodNotAllowedHandler != nil {
		a.router.MethodNotAllowed(a.wrapHandler(a.methodNotAllowedHandler))
	}

	for _, sr := range a.staticRoutes {
		a.router.Mount(sr.pattern, sr.handler)
	}

	if a.healthConfig != nil {
		a.router.Get(a.healthConfig.livenessPath, health.LivenessHandler())
		a.router.Get(a.healthConfig.readinessPath, health.ReadinessHandler(
			a.healthConfig.checks,
			health.WithLogger(a.logger),
		))
	}

	r := &routerAdapter{router: a.router, app: a}
	for _, h := range a.handlers {
		h.Routes(r)
	}

	for _, ep := range CollectEndpoints(a.controllers...) {
		mount, ok := a.routeHandlers[ep.Kind]
		if !ok {
			panic(fmt.Sprintf("%v: %q (path %q, operation %q)", ErrUnknownEndpointKind, ep.Kind, ep.Path, ep.Name))
		}
		mount(r, ep)
		a.endpoints = append(a.endpoints, ep)
	}
}

// wrapHandler converts a HandlerFunc to http.HandlerFunc using the app's error handler.
func (a *App) wrapHandler(h HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := newContext(w, r, a.logger)
		if err := h(c); err != nil {
			a.handleError(c, err)
		}
	}
}

// handleError handles errors from handlers using the configured error handler.
func (a *App) handleError(c Context, err error) {
	if c.Written() {
		return
	}
	if a.errorHandler != nil {
		_ = a.errorHandler(c, err)
		return
	}

	res := ClassifyError(err)
	if res.Status >= http.StatusInternalServerError {
		c.LogError("request failed", slog.Any("error", err))
	}
	http.Error(c.Response(), http.StatusText(res.Status), res.Status)
}
