package ssr

import "errors"

// Sentinel errors for the ssr package.
var (
	// ErrNoManifest is returned when a Build has no manifest.
	ErrNoManifest = errors.New("ssr: build has no manifest")

	// ErrNoRenderFunc is returned when a Build has no render function.
	ErrNoRenderFunc = errors.New("ssr: build has no render function")

	// ErrRenderFailed wraps failures reported by a render function.
	ErrRenderFailed = errors.New("ssr: render failed")
)
