package ssr

import (
	"fmt"

	"github.com/dmitrymomot/reactssr/internal"
)

// Plugin serves ReactSsr endpoints: it resolves page and global data,
// assembles the render context and answers with HTML or JSON.
//
// Configure the plugin before passing it to the host; the host calls
// Register once, after all options are applied.
type Plugin struct {
	build     Build
	resolver  *Resolver
	notFound  internal.HandlerFunc
	errorPage string
}

// New creates a plugin for build. The build must be valid.
//
// Example:
//
//	plugin, err := ssr.New(ssr.Build{Manifest: m, Render: renderer.Render})
//	if err != nil {
//	    return err
//	}
//	plugin.UseGlobalDataController(func() ssr.GlobalDataController { return layout.New(repo) })
func New(build Build, opts ...Option) (*Plugin, error) {
	if err := build.Validate(); err != nil {
		return nil, err
	}
	o := newOptions(opts...)
	return &Plugin{
		build:     build,
		resolver:  NewResolver(nil, opts...),
		errorPage: RenderErrorPage(o.errorCopy),
	}, nil
}

// MustNew is like New but panics on an invalid build.
func MustNew(build Build, opts ...Option) *Plugin {
	p, err := New(build, opts...)
	if err != nil {
		panic(fmt.Sprintf("ssr: %v", err))
	}
	return p
}

// Register implements the host plugin contract. It mounts every ReactSsr
// endpoint as a GET route and installs the not-found page if configured.
func (p *Plugin) Register(app *internal.App) {
	app.RegisterRouteHandler(KindReactSSR, func(r internal.Router, ep internal.Endpoint) {
		r.GET(ep.Path, p.Handler(ep))
	})
	if p.notFound != nil {
		app.UseNotFoundRoute(p.notFound)
	}
}

// UseNotFoundController installs the controller built by factory as the
// catch-all not-found page. A later call replaces the earlier one; a nil
// controller removes it.
func (p *Plugin) UseNotFoundController(factory func() NotFoundController) *Plugin {
	p.notFound = nil
	if factory == nil {
		return p
	}
	ctrl := factory()
	if ctrl == nil {
		return p
	}
	p.notFound = p.Handler(internal.Endpoint{
		Kind:      KindReactSSR,
		Path:      "",
		Name:      NotFoundOperation,
		Type:      internal.DefaultEndpointType,
		Operation: ctrl.NotFoundPage,
	})
	return p
}

// UseGlobalDataController installs the controller built by factory as the
// source of global data. A later call replaces the earlier one; a nil
// controller removes it.
func (p *Plugin) UseGlobalDataController(factory func() GlobalDataController) *Plugin {
	p.resolver.global = nil
	if factory != nil {
		p.resolver.global = factory()
	}
	return p
}

// Resolver returns the data resolver used by the plugin.
func (p *Plugin) Resolver() *Resolver {
	return p.resolver
}

// Handler returns the request handler for ep.
func (p *Plugin) Handler(ep internal.Endpoint) internal.HandlerFunc {
	return func(c internal.Context) error {
		data := p.resolver.Resolve(c, ep, InitialPreload(c.Request()))
		return p.respond(c, data)
	}
}
