// Package internal provides the core types and implementation of reactssr.
//
// This package is internal and should not be used directly. Import
// "github.com/dmitrymomot/reactssr" instead, which re-exports the public API.
//
// # Core Types
//
//   - App: owns the chi router, middleware, plugins and graceful shutdown
//   - Context: request/response access, staging and per-request locals
//   - Router: interface handlers use to declare routes
//   - Controller: declares endpoints through a Registry
//   - Endpoint: a named operation with a kind that selects its route handler
//   - Plugin: registers route handlers and the catch-all route on the App
//
// # Context as context.Context
//
// Context embeds context.Context, so it can be passed directly to any function
// that expects a standard library context:
//
//	func (p *Pages) post(c reactssr.Context) (any, error) {
//	    return p.store.Post(c, c.Param("slug"))
//	}
//
// # Endpoints and kinds
//
// Controllers never touch the router. Each endpoint carries a kind, and the
// plugin registered for that kind decides how it is mounted. An endpoint whose
// kind has no route handler makes New panic.
//
// # Staged results
//
// Handlers may stage a value on the shared ResponseWriter with Context.Stage.
// Outer middleware reads it back with Context.Staged after the handler
// returns, for example to log the outcome of a request.
package internal
