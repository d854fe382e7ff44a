package ssr

import "github.com/dmitrymomot/reactssr/internal"

// KindReactSSR is the endpoint kind served by the plugin.
const KindReactSSR = "ReactSsr"

// Fixed operation names of the optional controllers.
const (
	NotFoundOperation   = "notFoundPage"
	GlobalDataOperation = "loadGlobalData"
)

// NotFoundController produces the data of the catch-all not-found page.
// Returning an error classified as 404 makes the page respond with 404.
type NotFoundController interface {
	NotFoundPage(c internal.Context) (any, error)
}

// GlobalDataController produces layout-wide data shared by every page.
// With WithParallelResolve it runs concurrently with the page operation
// on a forked Context.
type GlobalDataController interface {
	LoadGlobalData(c internal.Context) (any, error)
}

// Page declares a server-rendered page endpoint.
//
// Example:
//
//	func (p *Pages) Endpoints(r *reactssr.Registry) {
//	    ssr.Page(r, "/", "homePage", p.homePage)
//	    ssr.Page(r, "/posts/{slug}", "postPage", p.postPage)
//	}
func Page(r *internal.Registry, path, name string, op internal.Operation) {
	r.Add(internal.Endpoint{
		Kind:      KindReactSSR,
		Path:      path,
		Name:      name,
		Type:      internal.DefaultEndpointType,
		Operation: op,
	})
}
