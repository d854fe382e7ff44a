package manifest

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"
)

// Build modes.
const (
	ModeProduction = "production"
	ModeDev        = "dev"
)

// DefaultHMRServerPort is the dev server port used when the manifest omits it.
const DefaultHMRServerPort = 3001

// RootRouteID is the route every manifest must contain.
const RootRouteID = "root"

// Entry is the client entry module and its preloaded imports.
type Entry struct {
	Module  string   `json:"module"`
	Imports []string `json:"imports"`
}

// Route is one entry of the versioned route table.
type Route struct {
	ID            string   `json:"id"`
	ParentID      string   `json:"parentId,omitempty"`
	Path          string   `json:"path,omitempty"`
	Index         bool     `json:"index,omitempty"`
	CaseSensitive bool     `json:"caseSensitive,omitempty"`
	Module        string   `json:"module"`
	Imports       []string `json:"imports,omitempty"`
}

// Assets is the versioned asset manifest.
type Assets struct {
	Routes  map[string]Route `json:"routes"`
	Version string           `json:"version"`
	URL     string           `json:"url"`
	Entry   Entry            `json:"entry"`
}

// RouteModule references the server module of a route.
type RouteModule struct {
	Module string `json:"module"`
}

// Manifest describes one frontend build.
type Manifest struct {
	Routes        map[string]RouteModule `json:"routes"`
	Mode          string                 `json:"mode,omitempty"`
	Assets        Assets                 `json:"assets"`
	HMRServerPort int                    `json:"hmrServerPort,omitempty"`
}

// Parse decodes and validates a JSON manifest.
func Parse(data []byte) (*Manifest, error) {
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidManifest, err)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// Validate checks the invariants the renderer relies on.
func (m *Manifest) Validate() error {
	if m == nil {
		return fmt.Errorf("%w: manifest is nil", ErrInvalidManifest)
	}
	if _, ok := m.Assets.Routes[RootRouteID]; !ok {
		return ErrMissingRootRoute
	}
	switch m.Mode {
	case "", ModeProduction, ModeDev:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidMode, m.Mode)
	}
	if m.HMRServerPort < 0 || m.HMRServerPort > 65535 {
		return fmt.Errorf("%w: hmrServerPort %d out of range", ErrInvalidManifest, m.HMRServerPort)
	}
	for id, r := range m.Assets.Routes {
		if r.ParentID != "" {
			if _, ok := m.Assets.Routes[r.ParentID]; !ok {
				return fmt.Errorf("%w: route %q references unknown parent %q", ErrInvalidManifest, id, r.ParentID)
			}
		}
	}
	return nil
}

// ModeOrDefault returns the build mode, defaulting to production.
func (m *Manifest) ModeOrDefault() string {
	if m.Mode == "" {
		return ModeProduction
	}
	return m.Mode
}

// HMRPortOrDefault returns the dev server port, defaulting to DefaultHMRServerPort.
func (m *Manifest) HMRPortOrDefault() int {
	if m.HMRServerPort == 0 {
		return DefaultHMRServerPort
	}
	return m.HMRServerPort
}

// RouteIDs returns the route ids of the asset table in sorted order.
func (m *Manifest) RouteIDs() []string {
	return slices.Sorted(maps.Keys(m.Assets.Routes))
}

// Clone returns a deep copy of the route table.
func (r Route) Clone() Route {
	r.Imports = slices.Clone(r.Imports)
	return r
}

// Clone returns a deep copy of the entry.
func (e Entry) Clone() Entry {
	e.Imports = slices.Clone(e.Imports)
	return e
}
