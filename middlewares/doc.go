// Package middlewares provides HTTP middleware for reactssr applications.
//
// # Locale
//
// Locale resolves the request locale and stores it as internal.Locals, which
// the SSR plugin copies into the render context. A supported locale in the
// first path segment is stripped before routing:
//
//	app := reactssr.New(
//	    reactssr.WithMiddleware(
//	        middlewares.Locale([]string{"en", "de", "uk"}),
//	    ),
//	)
//
// GET /de/about is routed as /about with locale "de"; the page receives
// router.path "/de/about". Without a prefix the "locale" cookie and the
// Accept-Language header are consulted, then the default locale.
//
// # Request ID
//
// RequestID assigns a unique ID to each request. Use RequestIDExtractor with
// WithLogger to add request_id to every log entry:
//
//	app := reactssr.New(
//	    reactssr.WithLogger("web", middlewares.RequestIDExtractor()),
//	    reactssr.WithMiddleware(middlewares.RequestID()),
//	)
//
// # Recover
//
// Recover converts panics in plain handlers into *internal.PanicError.
// SSR page handlers never panic: data operations and render functions are
// recovered by the plugin itself.
//
// # Timeout
//
// Timeout puts a deadline on the request context. Data operations that
// honour the context fail with a 504 outcome; a handler that does not return
// in time yields a *TimeoutError.
//
// # Access log
//
// AccessLog writes one entry per request and includes the staged SSR result
// envelope, so failed page or global data fetches are visible even when the
// response status is 200.
//
// # Recommended Middleware Order
//
//	reactssr.WithMiddleware(
//	    middlewares.RequestID(),
//	    middlewares.AccessLog(),
//	    middlewares.Recover(),
//	    middlewares.Timeout(10*time.Second),
//	    middlewares.Locale(locales),
//	)
package middlewares
