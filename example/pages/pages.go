// Package pages holds the example's page controllers.
package pages

import (
	"errors"

	"github.com/dmitrymomot/reactssr"
	"github.com/dmitrymomot/reactssr/middlewares"
	"github.com/dmitrymomot/reactssr/ssr"
)

// Pages serves the blog pages.
type Pages struct {
	store *Store
}

// New creates the page controller.
func New(store *Store) *Pages {
	return &Pages{store: store}
}

// Endpoints implements reactssr.Controller.
func (p *Pages) Endpoints(r *reactssr.Registry) {
	ssr.Page(r, "/", "homePage", p.home)
	ssr.Page(r, "/posts/{slug}", "postPage", p.post)
}

func (p *Pages) home(c reactssr.Context) (any, error) {
	posts, err := p.store.Latest(c, 10)
	if err != nil {
		return nil, err
	}
	return map[string]any{"title": "Blog", "posts": posts}, nil
}

func (p *Pages) post(c reactssr.Context) (any, error) {
	post, err := p.store.Post(c, c.Param("slug"))
	if errors.Is(err, ErrPostNotFound) {
		return nil, reactssr.ErrNotFound("Post not found", reactssr.WithErrorCode("not_found"))
	}
	if err != nil {
		return nil, err
	}
	return post, nil
}

// Layout loads data shared by every page.
type Layout struct {
	store *Store
}

// NewLayout creates the global data controller.
func NewLayout(store *Store) *Layout {
	return &Layout{store: store}
}

// LoadGlobalData implements ssr.GlobalDataController.
func (l *Layout) LoadGlobalData(c reactssr.Context) (any, error) {
	recent, err := l.store.Latest(c, 3)
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"siteName":  "reactssr blog",
		"locale":    middlewares.GetLocale(c),
		"recent":    recent,
		"requestId": middlewares.GetRequestID(c),
	}, nil
}

// NotFound renders the catch-all page.
type NotFound struct{}

// NotFoundPage implements ssr.NotFoundController.
func (NotFound) NotFoundPage(c reactssr.Context) (any, error) {
	return nil, reactssr.ErrNotFound("Page not found", reactssr.WithErrorCode("not_found"))
}
