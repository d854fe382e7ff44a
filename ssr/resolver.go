package ssr

import (
	"errors"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/reactssr/internal"
)

// Resolver fetches page and global data and never lets a failure escape.
type Resolver struct {
	global   GlobalDataController
	classify Classifier
	parallel bool
}

// NewResolver creates a resolver. A nil global controller disables global data.
func NewResolver(global GlobalDataController, opts ...Option) *Resolver {
	o := newOptions(opts...)
	return &Resolver{
		global:   global,
		classify: o.classify,
		parallel: o.parallel,
	}
}

// HasGlobal reports whether a global data controller is configured.
func (r *Resolver) HasGlobal() bool {
	return r.global != nil
}

// ResolvePage runs the endpoint operation and wraps its result.
func (r *Resolver) ResolvePage(c internal.Context, ep internal.Endpoint) Outcome {
	return r.resolve(c, ep)
}

// ResolveGlobal runs the global controller's loadGlobalData operation.
// Without a global controller the outcome is a failure.
func (r *Resolver) ResolveGlobal(c internal.Context) Outcome {
	ep := internal.Endpoint{Name: GlobalDataOperation}
	if r.global != nil {
		ep.Operation = r.global.LoadGlobalData
	}
	return r.resolve(c, ep)
}

// Resolve fetches page data and, when a global controller is configured and
// preload is true, global data. Each side is resolved independently.
func (r *Resolver) Resolve(c internal.Context, ep internal.Endpoint, preload bool) AppData {
	if !preload || r.global == nil {
		return AppData{PageData: r.ResolvePage(c, ep)}
	}

	var page, global Outcome
	if r.parallel {
		gc := internal.Fork(c)
		var g errgroup.Group
		g.Go(func() error {
			page = r.ResolvePage(c, ep)
			return nil
		})
		g.Go(func() error {
			global = r.ResolveGlobal(gc)
			return nil
		})
		_ = g.Wait()
	} else {
		page = r.ResolvePage(c, ep)
		global = r.ResolveGlobal(c)
	}

	return AppData{PageData: page, GlobalData: &global}
}

func (r *Resolver) resolve(c internal.Context, ep internal.Endpoint) Outcome {
	data, err := internal.Invoke(c, ep)
	out := NewOutcome(data, err, r.classify)
	if err != nil {
		logFailure(c, ep.Name, out, err)
	}
	return out
}

func logFailure(c internal.Context, operation string, out Outcome, err error) {
	attrs := []any{
		slog.String("operation", operation),
		slog.Int("status", out.Status),
		slog.String("error_code", out.ErrorCode),
		slog.Any("error", err),
	}

	var pe *internal.PanicError
	if errors.As(err, &pe) {
		c.LogError("ssr data operation panicked", append(attrs, slog.String("stack", string(pe.Stack)))...)
		return
	}
	c.LogWarn("ssr data operation failed", attrs...)
}
