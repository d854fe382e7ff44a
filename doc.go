// Package reactssr serves server-rendered React pages from Go.
//
// A reactssr application is a chi-based App extended by plugins. The SSR
// plugin (package ssr) serves every endpoint of kind "ReactSsr": it runs the
// page's data operation, optionally the layout-wide global data operation,
// and answers with a rendered document or, for client-side navigation, with
// the JSON payload only.
//
// # Quick Start
//
//	_, m, err := manifest.Load(ctx, manifest.NewFSSource(os.DirFS(".")), "")
//	if err != nil {
//	    return err
//	}
//
//	renderer := ssr.NewHTTPRenderer("http://127.0.0.1:3000")
//	plugin, err := ssr.New(ssr.Build{Manifest: m, Render: renderer.Render})
//	if err != nil {
//	    return err
//	}
//	plugin.UseNotFoundController(func() ssr.NotFoundController { return pages.NotFound{} })
//
//	app := reactssr.New(
//	    reactssr.WithPlugins(plugin),
//	    reactssr.WithControllers(pages.New(repo)),
//	    reactssr.WithStaticFiles("/build/", os.DirFS("public"), "build"),
//	)
//	return app.Run(":8080", reactssr.ShutdownHook(renderer.Close))
//
// # Controllers
//
// Controllers declare endpoints instead of routes. Each endpoint has a kind;
// the plugin registered for that kind decides how it is mounted:
//
//	type Pages struct{ repo *Repo }
//
//	func (p *Pages) Endpoints(r *reactssr.Registry) {
//	    ssr.Page(r, "/", "homePage", p.home)
//	    ssr.Page(r, "/posts/{slug}", "postPage", p.post)
//	}
//
//	func (p *Pages) post(c reactssr.Context) (any, error) {
//	    post, err := p.repo.Post(c, c.Param("slug"))
//	    if err != nil {
//	        return nil, reactssr.ErrNotFound("Post not found", reactssr.WithErrorCode("not_found"))
//	    }
//	    return post, nil
//	}
//
// An endpoint kind without a registered plugin is a configuration error and
// New panics.
//
// # Handlers
//
// Plain routes (APIs, webhooks) are declared by handlers:
//
//	func (h *API) Routes(r reactssr.Router) {
//	    r.GET("/api/ping", h.ping)
//	}
//
// # Errors
//
// Errors returned by data operations never escape: they are classified into
// status, error code and messages and delivered to the page. Use HTTPError
// constructors (ErrNotFound, ErrForbidden, ...) to control what the page sees;
// any other error becomes a 500 outcome with the code "server_side_error".
//
// # Graceful Shutdown
//
// Run blocks until SIGINT or SIGTERM, then drains in-flight requests and runs
// shutdown hooks within the shutdown timeout.
package reactssr
