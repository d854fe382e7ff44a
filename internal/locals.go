package internal

import "slices"

// LocalsKey is the context key used to store per-request Locals.
type LocalsKey struct{}

// Locals is per-request locale state written by locale middleware and read
// by page rendering.
type Locals struct {
	// Locale is the resolved locale for the request, empty if unresolved.
	Locale string

	// Locales lists the locales the application accepts.
	Locales []string

	// OriginalURLWithLocale is the request URI including the locale prefix
	// that was stripped before routing. Empty when nothing was stripped.
	OriginalURLWithLocale string
}

// Clone returns a deep copy of l.
func (l Locals) Clone() Locals {
	l.Locales = slices.Clone(l.Locales)
	return l
}
