package ssr

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/a-h/templ"
)

// RenderFunc renders a document for a render context.
// It is the Go counterpart of the build's entry render function.
type RenderFunc func(ctx context.Context, rc *RenderContext) (string, error)

// TemplRenderer adapts a templ page constructor into a RenderFunc.
//
// Example:
//
//	render := ssr.TemplRenderer(func(rc *ssr.RenderContext) templ.Component {
//	    return views.Document(rc)
//	})
func TemplRenderer(page func(rc *RenderContext) templ.Component) RenderFunc {
	return func(ctx context.Context, rc *RenderContext) (string, error) {
		component := page(rc)
		if component == nil {
			return "", fmt.Errorf("%w: nil component", ErrRenderFailed)
		}
		var b strings.Builder
		if err := component.Render(ctx, &b); err != nil {
			return "", fmt.Errorf("%w: %w", ErrRenderFailed, err)
		}
		return b.String(), nil
	}
}

// Default sidecar settings.
const (
	DefaultRenderPath = "/render"
	DefaultPingPath   = "/health"

	defaultRendererTimeout = 10 * time.Second
	maxRenderResponseSize  = 16 << 20
)

// HTTPRenderer renders pages through a JavaScript SSR sidecar (Node, Bun).
// The render context is posted as JSON to the render path; the sidecar
// answers with {"html": "..."} or {"error": {"message": "...", "stack": "..."}}.
type HTTPRenderer struct {
	client     *http.Client
	baseURL    string
	renderPath string
	pingPath   string
}

// HTTPRendererOption configures an HTTPRenderer.
type HTTPRendererOption func(*HTTPRenderer)

// WithHTTPClient sets the HTTP client used to reach the sidecar.
func WithHTTPClient(c *http.Client) HTTPRendererOption {
	return func(r *HTTPRenderer) {
		if c != nil {
			r.client = c
		}
	}
}

// WithRenderPath sets the sidecar render path. Defaults to "/render".
func WithRenderPath(p string) HTTPRendererOption {
	return func(r *HTTPRenderer) {
		if p != "" {
			r.renderPath = p
		}
	}
}

// WithPingPath sets the sidecar health path. Defaults to "/health".
func WithPingPath(p string) HTTPRendererOption {
	return func(r *HTTPRenderer) {
		if p != "" {
			r.pingPath = p
		}
	}
}

// NewHTTPRenderer creates a renderer for the sidecar at baseURL.
func NewHTTPRenderer(baseURL string, opts ...HTTPRendererOption) *HTTPRenderer {
	r := &HTTPRenderer{
		client:     &http.Client{Timeout: defaultRendererTimeout},
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		renderPath: DefaultRenderPath,
		pingPath:   DefaultPingPath,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

type sidecarResponse struct {
	Error *struct {
		Message string `json:"message"`
		Stack   string `json:"stack"`
	} `json:"error"`
	HTML string `json:"html"`
}

// Render posts rc to the sidecar and returns the rendered document.
// Its method value satisfies RenderFunc.
func (r *HTTPRenderer) Render(ctx context.Context, rc *RenderContext) (string, error) {
	body, err := json.Marshal(rc)
	if err != nil {
		return "", fmt.Errorf("%w: encode render context: %w", ErrRenderFailed, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.baseURL+r.renderPath, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrRenderFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrRenderFailed, err)
	}
	defer resp.Body.Close()

	var result sidecarResponse
	dec := json.NewDecoder(io.LimitReader(resp.Body, maxRenderResponseSize))
	if err := dec.Decode(&result); err != nil {
		return "", fmt.Errorf("%w: sidecar status %d: decode response: %w", ErrRenderFailed, resp.StatusCode, err)
	}

	if result.Error != nil {
		msg := result.Error.Message
		if result.Error.Stack != "" {
			msg += "\n\nStack:\n" + result.Error.Stack
		}
		return "", fmt.Errorf("%w: %s", ErrRenderFailed, msg)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("%w: sidecar status %d", ErrRenderFailed, resp.StatusCode)
	}
	return result.HTML, nil
}

// Ping reports whether the sidecar is reachable.
// It matches the health.CheckFunc signature.
func (r *HTTPRenderer) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.baseURL+r.pingPath, nil)
	if err != nil {
		return err
	}
	resp, err := r.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return errors.New("renderer sidecar unhealthy: " + resp.Status)
	}
	return nil
}

// Close releases idle connections to the sidecar.
// It matches the shutdown hook signature.
func (r *HTTPRenderer) Close(context.Context) error {
	r.client.CloseIdleConnections()
	return nil
}
