package ssr

import (
	"context"
	"log/slog"
	"net/http"
	"runtime"

	"github.com/dmitrymomot/reactssr/internal"
)

// Request headers read by the handler.
const (
	HeaderInitialPreload = "xinitialpreload"
	HeaderOnlyJSON       = "xonlyjson"
)

const renderPanicStackSize = 4096

// InitialPreload reports whether global data should be resolved.
// Only the literal header value "false" disables it.
func InitialPreload(r *http.Request) bool {
	return r.Header.Get(HeaderInitialPreload) != "false"
}

// OnlyJSON reports whether the client asked for the JSON payload only.
func OnlyJSON(r *http.Request) bool {
	return r.Header.Get(HeaderOnlyJSON) == "true"
}

// respond stages the envelope and writes either the JSON payload or the
// rendered document. The page status is the response status.
func (p *Plugin) respond(c internal.Context, data AppData) error {
	c.Stage(Combine(data))

	if OnlyJSON(c.Request()) {
		return c.JSON(data.Status(), data)
	}

	rc := Assemble(p.build.Manifest, RequestFactsFrom(c), data)
	html, err := renderSafely(c, p.build.Render, &rc)
	if err != nil {
		c.LogError("ssr render failed",
			slog.String("path", rc.Router.Path),
			slog.Any("error", err),
		)
		return c.HTML(http.StatusInternalServerError, p.errorPage)
	}
	return c.HTML(data.Status(), html)
}

// renderSafely runs render and converts a panic into a *internal.PanicError.
func renderSafely(ctx context.Context, render RenderFunc, rc *RenderContext) (html string, err error) {
	if render == nil {
		return "", ErrNoRenderFunc
	}

	defer func() {
		if r := recover(); r != nil {
			stack := make([]byte, renderPanicStackSize)
			stack = stack[:runtime.Stack(stack, false)]
			html = ""
			err = &internal.PanicError{Value: r, Stack: stack}
		}
	}()

	return render(ctx, rc)
}
