package internal

// Handler declares routes on a router.
//
// Example:
//
//	type Sitemap struct{ pages []string }
//
//	func (s *Sitemap) Routes(r reactssr.Router) {
//	    r.GET("/sitemap.xml", s.serve)
//	}
type Handler interface {
	Routes(r Router)
}

// HandlerFunc handles a request. A returned error goes to the App error
// handler unless the response was already written.
type HandlerFunc func(c Context) error

// Middleware wraps a HandlerFunc. Global middleware runs before routing and
// may replace the request with Context.SetRequest.
//
// Example:
//
//	func NoIndex(next reactssr.HandlerFunc) reactssr.HandlerFunc {
//	    return func(c reactssr.Context) error {
//	        c.SetHeader("X-Robots-Tag", "noindex")
//	        return next(c)
//	    }
//	}
type Middleware func(next HandlerFunc) HandlerFunc

// ErrorHandler handles errors returned from handlers.
type ErrorHandler func(Context, error) error

// Plugin extends the App during construction.
// Register is called once, after all options are applied and before
// routes are mounted, so plugins can install route handlers and
// not-found handlers.
type Plugin interface {
	Register(app *App)
}

// RouteHandler mounts a single endpoint of a given kind on the router.
// Plugins register one per endpoint kind they own.
type RouteHandler func(r Router, ep Endpoint)
