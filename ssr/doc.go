// Package ssr renders pages on the server for ReactSsr endpoints.
//
// For every matched request the plugin resolves the page data of the
// endpoint and, optionally, layout-wide global data, builds an immutable
// [RenderContext] and answers with either a rendered HTML document or the
// JSON payload.
//
// # Setup
//
// Load the build once at startup and register the plugin with the host:
//
//	_, m, err := manifest.Load(ctx, manifest.NewFSSource(os.DirFS(".")), "")
//	if err != nil {
//	    return err
//	}
//	renderer := ssr.NewHTTPRenderer("http://127.0.0.1:3000")
//	plugin, err := ssr.New(ssr.Build{Manifest: m, Render: renderer.Render})
//	if err != nil {
//	    return err
//	}
//	plugin.
//	    UseNotFoundController(func() ssr.NotFoundController { return &NotFound{} }).
//	    UseGlobalDataController(func() ssr.GlobalDataController { return &Layout{} })
//
//	app := reactssr.New(
//	    reactssr.WithPlugins(plugin),
//	    reactssr.WithControllers(&Pages{}),
//	)
//
// Controllers declare pages with [Page]:
//
//	func (p *Pages) Endpoints(r *reactssr.Registry) {
//	    ssr.Page(r, "/", "homePage", p.homePage)
//	}
//
//	func (p *Pages) homePage(c reactssr.Context) (any, error) {
//	    return map[string]string{"title": "Home"}, nil
//	}
//
// # Data Outcomes
//
// Every fetch yields an [Outcome]. Success:
//
//	{"data": {...}, "error": false, "errors": [], "errorCode": null, "status": 200}
//
// Failure (errors are classified, data is dropped):
//
//	{"data": null, "error": true, "errors": ["Not Found"], "errorCode": "not_found", "status": 404}
//
// A failed fetch never fails the request. Page and global data are
// resolved independently, so one failing does not affect the other.
//
// # Request Headers
//
//   - xinitialpreload: "false" skips global data for the request
//   - xonlyjson: "true" returns {"pageData": ..., "globalData": ...} as JSON
//     instead of rendering
//
// # Response Status
//
// The page status is the response status. Global data failures only mark
// the staged [Envelope] as erroneous. A render failure, returned error or
// panic, is logged and answered with 500 and the fallback error page.
//
// # Staged Envelope
//
// Before answering, the handler stages an [Envelope] on the response:
//
//	{"pageData": ..., "globalData": ..., "error": true, "error_code": "not_found"}
//
// Middleware read it with Context.Staged after the handler returns.
package ssr
