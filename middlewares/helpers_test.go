package middlewares_test

import (
	"net/http"
	"net/http/httptest"

	"github.com/dmitrymomot/reactssr/internal"
)

// routes registers arbitrary routes on the app.
type routes func(r internal.Router)

func (fn routes) Routes(r internal.Router) { fn(r) }

// serve runs req through an App with the given middleware and routes.
func serve(req *http.Request, mw []internal.Middleware, fn routes, opts ...internal.Option) *httptest.ResponseRecorder {
	opts = append(opts,
		internal.WithMiddleware(mw...),
		internal.WithHandlers(fn),
	)
	app := internal.New(opts...)

	w := httptest.NewRecorder()
	app.ServeHTTP(w, req)
	return w
}

// direct runs a middleware around h with a standalone context.
func direct(req *http.Request, mw internal.Middleware, h internal.HandlerFunc) (*httptest.ResponseRecorder, error) {
	w := httptest.NewRecorder()
	err := mw(h)(internal.NewContext(w, req, nil))
	return w, err
}
