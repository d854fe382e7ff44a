package ssr

import (
	"slices"

	"github.com/dmitrymomot/reactssr/internal"
	"github.com/dmitrymomot/reactssr/pkg/manifest"
)

// RenderContext is the complete input of a render function for one request.
// JSON field names are stable so sidecar renderers can consume it as is.
type RenderContext struct {
	GlobalData *Outcome `json:"globalData"`
	Locale     *string  `json:"locale"`
	UserAgent  string   `json:"userAgent"`
	Router     Router   `json:"router"`
	Location   Location `json:"location"`
	Routes     Routes   `json:"routes"`
	Locales    []string `json:"locales"`
	PageData   Outcome  `json:"pageData"`
}

// Routes holds the route manifest and the server module of every route.
type Routes struct {
	RouteModules   map[string]string `json:"routeModules"`
	RoutesManifest RoutesManifest    `json:"routesManifest"`
}

// RoutesManifest is the client-facing part of the build manifest.
type RoutesManifest struct {
	Routes        map[string]manifest.Route `json:"routes"`
	Version       string                    `json:"version"`
	URL           string                    `json:"url"`
	Mode          string                    `json:"mode"`
	Entry         manifest.Entry            `json:"entry"`
	HMRServerPort int                       `json:"hmrServerPort"`
}

// Router describes the current route.
type Router struct {
	Path string `json:"path"`
}

// Location holds the request URL before and after locale resolution.
type Location struct {
	OriginalURL string `json:"originalUrl"`
	URL         string `json:"url"`
}

// RequestFacts are the request-derived inputs of a RenderContext.
type RequestFacts struct {
	URL         string
	OriginalURL string
	UserAgent   string
	Locals      internal.Locals
}

// RequestFactsFrom extracts the request facts from c.
// URL is the routed request URI (after any locale prefix was stripped);
// OriginalURL is the URI as received from the client.
func RequestFactsFrom(c internal.Context) RequestFacts {
	r := c.Request()
	url := r.URL.RequestURI()
	original := r.RequestURI
	if original == "" {
		original = url
	}
	return RequestFacts{
		URL:         url,
		OriginalURL: original,
		UserAgent:   r.Header.Get("User-Agent"),
		Locals:      c.Locals(),
	}
}

// Assemble builds the render context from the build manifest, the request
// facts and the resolved data. Inputs are copied; none are modified.
func Assemble(m *manifest.Manifest, facts RequestFacts, data AppData) RenderContext {
	path := facts.URL
	if facts.Locals.OriginalURLWithLocale != "" {
		path = facts.Locals.OriginalURLWithLocale
	}

	rc := RenderContext{
		PageData:  data.PageData,
		UserAgent: facts.UserAgent,
		Router:    Router{Path: path},
		Location:  Location{OriginalURL: facts.OriginalURL, URL: path},
		Locales:   slices.Clone(facts.Locals.Locales),
		Routes:    assembleRoutes(m),
	}
	if rc.Locales == nil {
		rc.Locales = []string{}
	}
	if facts.Locals.Locale != "" {
		locale := facts.Locals.Locale
		rc.Locale = &locale
	}
	if data.GlobalData != nil {
		global := *data.GlobalData
		rc.GlobalData = &global
	}
	return rc
}

func assembleRoutes(m *manifest.Manifest) Routes {
	out := Routes{
		RouteModules: map[string]string{},
		RoutesManifest: RoutesManifest{
			Routes:        map[string]manifest.Route{},
			Mode:          manifest.ModeProduction,
			HMRServerPort: manifest.DefaultHMRServerPort,
		},
	}
	if m == nil {
		return out
	}

	for id, rm := range m.Routes {
		out.RouteModules[id] = rm.Module
	}
	for id, route := range m.Assets.Routes {
		out.RoutesManifest.Routes[id] = route.Clone()
	}
	out.RoutesManifest.Version = m.Assets.Version
	out.RoutesManifest.URL = m.Assets.URL
	out.RoutesManifest.Entry = m.Assets.Entry.Clone()
	out.RoutesManifest.Mode = m.ModeOrDefault()
	out.RoutesManifest.HMRServerPort = m.HMRPortOrDefault()
	return out
}
