package internal

import (
	"fmt"
	"runtime"
)

// DefaultEndpointType is the endpoint type used by plain page endpoints.
const DefaultEndpointType = "default"

// Operation is a controller method that produces data for an endpoint.
// It receives the request Context, which gives access to both the request
// and the response.
type Operation func(c Context) (any, error)

// Endpoint associates an HTTP path and an operation name with a controller
// operation. Kind selects the route handler that mounts the endpoint.
type Endpoint struct {
	Operation Operation
	Kind      string
	Path      string
	Name      string
	Type      string
}

// Controller declares endpoints into a Registry.
// It is the explicit counterpart of annotation-based route metadata.
//
// Example:
//
//	type Pages struct{ repo *repository.Queries }
//
//	func (p *Pages) Endpoints(r *reactssr.Registry) {
//	    ssr.Page(r, "/", "homePage", p.homePage)
//	    ssr.Page(r, "/about", "aboutPage", p.aboutPage)
//	}
type Controller interface {
	Endpoints(r *Registry)
}

// Registry collects endpoints declared by controllers.
// It is filled at configuration time and read once during route setup.
type Registry struct {
	endpoints []Endpoint
}

// Add appends an endpoint to the registry.
// Type defaults to DefaultEndpointType.
func (r *Registry) Add(ep Endpoint) {
	if ep.Type == "" {
		ep.Type = DefaultEndpointType
	}
	r.endpoints = append(r.endpoints, ep)
}

// Endpoints returns a copy of the registered endpoints in declaration order.
func (r *Registry) Endpoints() []Endpoint {
	out := make([]Endpoint, len(r.endpoints))
	copy(out, r.endpoints)
	return out
}

// CollectEndpoints builds a registry from the given controllers.
func CollectEndpoints(controllers ...Controller) []Endpoint {
	r := &Registry{}
	for _, c := range controllers {
		if c != nil {
			c.Endpoints(r)
		}
	}
	return r.Endpoints()
}

// Invoke runs an endpoint operation and converts a panic into a *PanicError.
// A nil operation yields ErrNoOperation.
func Invoke(c Context, ep Endpoint) (data any, err error) {
	if ep.Operation == nil {
		return nil, fmt.Errorf("%w: %q", ErrNoOperation, ep.Name)
	}

	defer func() {
		if r := recover(); r != nil {
			stack := make([]byte, defaultPanicStackSize)
			stack = stack[:runtime.Stack(stack, false)]
			data = nil
			err = &PanicError{Value: r, Stack: stack}
		}
	}()

	return ep.Operation(c)
}
