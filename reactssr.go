package reactssr

import (
	"context"
	"io/fs"
	"log/slog"
	"time"

	"github.com/dmitrymomot/reactssr/internal"
	"github.com/dmitrymomot/reactssr/pkg/health"
	"github.com/dmitrymomot/reactssr/pkg/logger"
)

// Type aliases - public API
type (
	// App orchestrates the application lifecycle.
	// It manages HTTP routing, middleware, plugins and graceful shutdown.
	App = internal.App

	// Router is the interface handlers use to declare routes.
	Router = internal.Router

	// Context provides request/response access and helper methods.
	Context = internal.Context

	// Handler declares routes on a router.
	Handler = internal.Handler

	// HandlerFunc is the signature for route handlers.
	HandlerFunc = internal.HandlerFunc

	// Middleware wraps a HandlerFunc to add cross-cutting concerns.
	Middleware = internal.Middleware

	// ErrorHandler handles errors returned from handlers.
	ErrorHandler = internal.ErrorHandler

	// Option configures the application.
	Option = internal.Option

	// RunOption configures the server runtime.
	RunOption = internal.RunOption

	// HealthOption configures health check endpoints.
	HealthOption = internal.HealthOption

	// Component is the interface for renderable templates.
	Component = internal.Component

	// ResponseWriter wraps http.ResponseWriter with status tracking and a staged body.
	ResponseWriter = internal.ResponseWriter

	// Controller declares endpoints served by a plugin.
	Controller = internal.Controller

	// Registry collects the endpoints a controller declares.
	Registry = internal.Registry

	// Endpoint is a controller operation bound to a path and kind.
	Endpoint = internal.Endpoint

	// Operation produces the data of an endpoint.
	Operation = internal.Operation

	// Plugin extends the App during construction.
	Plugin = internal.Plugin

	// RouteHandler mounts a single endpoint of a given kind.
	RouteHandler = internal.RouteHandler

	// Locals is per-request locale state read by page rendering.
	Locals = internal.Locals

	// HTTPError represents an HTTP error with all data needed for rendering.
	HTTPError = internal.HTTPError

	// HTTPErrorOption configures an HTTPError.
	HTTPErrorOption = internal.HTTPErrorOption

	// ErrorItem is a single user-facing error message.
	ErrorItem = internal.ErrorItem

	// ErrorResult is the classification of an error into user-facing data.
	ErrorResult = internal.ErrorResult

	// PanicError represents a recovered panic.
	PanicError = internal.PanicError

	// ContextExtractor extracts a slog attribute from context.
	// Used with WithLogger to add request-scoped values to logs.
	ContextExtractor = logger.ContextExtractor
)

// Sentinel errors.
var (
	ErrNoOperation         = internal.ErrNoOperation
	ErrUnknownEndpointKind = internal.ErrUnknownEndpointKind
)

// DefaultEndpointType is the endpoint type used when none is set.
const DefaultEndpointType = internal.DefaultEndpointType

// New creates a new application with the given options.
// Plugins register after all options are applied; an endpoint whose kind
// no plugin serves panics here.
//
// Example:
//
//	plugin := ssr.MustNew(build)
//
//	app := reactssr.New(
//	    reactssr.WithLogger("web", middlewares.RequestIDExtractor()),
//	    reactssr.WithMiddleware(middlewares.RequestID(), middlewares.AccessLog()),
//	    reactssr.WithPlugins(plugin),
//	    reactssr.WithControllers(pages.New(repo)),
//	)
//
//	err := app.Run(":8080", reactssr.Logger(log))
func New(opts ...Option) *App {
	return internal.New(opts...)
}

// App options

// WithMiddleware adds global middleware to the application.
// Middleware is applied in the order provided.
func WithMiddleware(mw ...Middleware) Option {
	return internal.WithMiddleware(mw...)
}

// WithHandlers registers handlers that declare routes.
func WithHandlers(h ...Handler) Option {
	return internal.WithHandlers(h...)
}

// WithControllers registers controllers that declare endpoints.
func WithControllers(c ...Controller) Option {
	return internal.WithControllers(c...)
}

// WithPlugins registers plugins, such as the SSR plugin.
func WithPlugins(p ...Plugin) Option {
	return internal.WithPlugins(p...)
}

// WithStaticFiles mounts a static file handler at the given pattern.
// Use it for the client build output:
//
//	//go:embed public/build
//	var assets embed.FS
//
//	reactssr.WithStaticFiles("/build/", assets, "public/build")
func WithStaticFiles(pattern string, fsys fs.FS, subDir string) Option {
	return internal.WithStaticFiles(pattern, fsys, subDir)
}

// WithErrorHandler sets a custom error handler for handler errors.
func WithErrorHandler(h ErrorHandler) Option {
	return internal.WithErrorHandler(h)
}

// WithNotFoundHandler sets a custom 404 handler.
// The SSR plugin's not-found page takes precedence when configured.
func WithNotFoundHandler(h HandlerFunc) Option {
	return internal.WithNotFoundHandler(h)
}

// WithMethodNotAllowedHandler sets a custom 405 handler.
func WithMethodNotAllowedHandler(h HandlerFunc) Option {
	return internal.WithMethodNotAllowedHandler(h)
}

// WithHealthChecks enables liveness and readiness endpoints.
//
// Example:
//
//	reactssr.WithHealthChecks(
//	    reactssr.WithReadinessCheck("renderer", renderer.Ping),
//	)
func WithHealthChecks(opts ...HealthOption) Option {
	return internal.WithHealthChecks(opts...)
}

// WithLogger creates a logger with a component name and optional extractors.
func WithLogger(component string, extractors ...ContextExtractor) Option {
	return internal.WithLogger(component, extractors...)
}

// WithCustomLogger sets a fully custom logger.
func WithCustomLogger(l *slog.Logger) Option {
	return internal.WithCustomLogger(l)
}

// Health check options

// WithLivenessPath sets a custom liveness endpoint path.
func WithLivenessPath(path string) HealthOption {
	return internal.WithLivenessPath(path)
}

// WithReadinessPath sets a custom readiness endpoint path.
func WithReadinessPath(path string) HealthOption {
	return internal.WithReadinessPath(path)
}

// WithReadinessCheck adds a named readiness check.
func WithReadinessCheck(name string, fn health.CheckFunc) HealthOption {
	return internal.WithReadinessCheck(name, fn)
}

// Run options

// Logger sets the runtime logger.
func Logger(l *slog.Logger) RunOption {
	return internal.Logger(l)
}

// ShutdownTimeout sets the timeout for graceful shutdown.
func ShutdownTimeout(d time.Duration) RunOption {
	return internal.ShutdownTimeout(d)
}

// StartupHook registers a function to run after the port is bound.
func StartupHook(fn func(context.Context) error) RunOption {
	return internal.StartupHook(fn)
}

// ShutdownHook registers a cleanup function to run during shutdown.
//
// Example:
//
//	reactssr.ShutdownHook(renderer.Close)
func ShutdownHook(fn func(context.Context) error) RunOption {
	return internal.ShutdownHook(fn)
}

// WithContext sets a custom base context for signal handling.
func WithContext(ctx context.Context) RunOption {
	return internal.WithContext(ctx)
}

// Endpoint helpers

// Invoke runs the operation of ep, converting a panic into *PanicError.
func Invoke(c Context, ep Endpoint) (any, error) {
	return internal.Invoke(c, ep)
}

// ClassifyError converts any error into user-facing status, code and messages.
func ClassifyError(err error) ErrorResult {
	return internal.ClassifyError(err)
}

// Context helpers

// ContextValue retrieves a typed value from the context.
// Returns the zero value of T if the key is not found or type assertion fails.
func ContextValue[T any](c Context, key any) T {
	return internal.ContextValue[T](c, key)
}

// Param returns a typed URL parameter.
func Param[T string | int | int64 | bool](c Context, name string) T {
	return internal.Param[T](c, name)
}

// QueryDefault returns a typed query parameter or def when missing or invalid.
func QueryDefault[T string | int | int64 | bool](c Context, name string, def T) T {
	return internal.QueryDefault[T](c, name, def)
}

// HTTP errors

// NewHTTPError creates an HTTPError.
func NewHTTPError(code int, message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.NewHTTPError(code, message, opts...)
}

// ErrBadRequest creates a 400 error.
func ErrBadRequest(message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.ErrBadRequest(message, opts...)
}

// ErrUnauthorized creates a 401 error.
func ErrUnauthorized(message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.ErrUnauthorized(message, opts...)
}

// ErrForbidden creates a 403 error.
func ErrForbidden(message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.ErrForbidden(message, opts...)
}

// ErrNotFound creates a 404 error.
func ErrNotFound(message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.ErrNotFound(message, opts...)
}

// ErrUnprocessable creates a 422 error.
func ErrUnprocessable(message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.ErrUnprocessable(message, opts...)
}

// ErrInternal creates a 500 error.
func ErrInternal(message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.ErrInternal(message, opts...)
}

// WithErrorCode sets the machine-readable error code.
func WithErrorCode(code string) HTTPErrorOption {
	return internal.WithErrorCode(code)
}

// WithTitle sets the error title.
func WithTitle(title string) HTTPErrorOption {
	return internal.WithTitle(title)
}

// WithFieldError adds a keyed error message.
func WithFieldError(key, message string) HTTPErrorOption {
	return internal.WithFieldError(key, message)
}

// WithError attaches the underlying error.
func WithError(err error) HTTPErrorOption {
	return internal.WithError(err)
}

// IsHTTPError reports whether err is or wraps an HTTPError.
func IsHTTPError(err error) bool {
	return internal.IsHTTPError(err)
}

// AsHTTPError extracts the HTTPError from err, or nil.
func AsHTTPError(err error) *HTTPError {
	return internal.AsHTTPError(err)
}
