package ssr

import (
	"fmt"

	"github.com/dmitrymomot/reactssr/pkg/manifest"
)

// Build is the loaded frontend build: the route manifest and the entry
// render function. It is created once at startup and never modified.
type Build struct {
	Manifest *manifest.Manifest
	Render   RenderFunc
}

// Validate reports whether the build can serve pages.
func (b Build) Validate() error {
	if b.Manifest == nil {
		return ErrNoManifest
	}
	if b.Render == nil {
		return ErrNoRenderFunc
	}
	if err := b.Manifest.Validate(); err != nil {
		return fmt.Errorf("validate build manifest: %w", err)
	}
	return nil
}
