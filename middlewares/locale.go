package middlewares

import (
	"slices"
	"strings"

	"golang.org/x/text/language"

	"github.com/dmitrymomot/reactssr/internal"
)

// DefaultLocaleCookie is the cookie read for a saved locale preference.
const DefaultLocaleCookie = "locale"

// LocaleConfig configures the Locale middleware.
type LocaleConfig struct {
	Extractor    internal.Extractor
	Default      string
	extractorSet bool
	NoPrefix     bool
}

// LocaleOption configures LocaleConfig.
type LocaleOption func(*LocaleConfig)

// WithLocaleExtractor sets the sources consulted when the path carries no
// locale prefix. Defaults to the "locale" cookie, then Accept-Language.
// Values outside the supported set are skipped.
func WithLocaleExtractor(ext internal.Extractor) LocaleOption {
	return func(cfg *LocaleConfig) {
		cfg.Extractor = ext
		cfg.extractorSet = true
	}
}

// WithDefaultLocale sets the locale used when nothing else matches.
// Defaults to the first supported locale.
func WithDefaultLocale(locale string) LocaleOption {
	return func(cfg *LocaleConfig) {
		cfg.Default = locale
	}
}

// WithoutLocalePrefix disables locale detection from the first path segment.
func WithoutLocalePrefix() LocaleOption {
	return func(cfg *LocaleConfig) {
		cfg.NoPrefix = true
	}
}

// localeSet matches arbitrary language tags against the supported locales.
type localeSet struct {
	matcher language.Matcher
	names   []string
}

func newLocaleSet(locales []string) localeSet {
	tags := make([]language.Tag, 0, len(locales))
	names := make([]string, 0, len(locales))
	for _, l := range locales {
		tag, err := language.Parse(l)
		if err != nil {
			continue
		}
		tags = append(tags, tag)
		names = append(names, l)
	}
	return localeSet{matcher: language.NewMatcher(tags), names: names}
}

// exact returns the supported locale equal to s, ignoring case.
func (s localeSet) exact(v string) (string, bool) {
	for _, name := range s.names {
		if strings.EqualFold(name, v) {
			return name, true
		}
	}
	return "", false
}

// match returns the best supported locale for an Accept-Language value.
func (s localeSet) match(header string) (string, bool) {
	if len(s.names) == 0 {
		return "", false
	}
	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(tags) == 0 {
		return "", false
	}
	_, idx, conf := s.matcher.Match(tags...)
	if conf == language.No {
		return "", false
	}
	return s.names[idx], true
}

// FromAcceptLanguage returns an ExtractorSource that matches the
// Accept-Language header against the supported locales.
func FromAcceptLanguage(locales []string) internal.ExtractorSource {
	set := newLocaleSet(locales)
	return func(c internal.Context) (string, bool) {
		header := c.Header("Accept-Language")
		if header == "" {
			return "", false
		}
		return set.match(header)
	}
}

// Locale returns middleware that resolves the request locale and stores it
// as internal.Locals for page rendering.
//
// A path starting with a supported locale ("/de/about") selects that locale;
// the prefix is stripped before routing and the full URI is kept as
// Locals.OriginalURLWithLocale. Otherwise the extractor chain decides,
// falling back to the default locale. Values outside the supported set are
// ignored.
func Locale(locales []string, opts ...LocaleOption) internal.Middleware {
	set := newLocaleSet(locales)

	cfg := &LocaleConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	if !cfg.extractorSet {
		cfg.Extractor = internal.NewExtractor(
			internal.FromCookie(DefaultLocaleCookie),
			FromAcceptLanguage(set.names),
		)
	}
	if cfg.Default == "" && len(set.names) > 0 {
		cfg.Default = set.names[0]
	}

	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			locals := &internal.Locals{Locales: slices.Clone(set.names)}

			if !cfg.NoPrefix {
				if locale, rest, ok := splitLocalePrefix(c.Request().URL.Path, set); ok {
					r := c.Request()
					locals.Locale = locale
					locals.OriginalURLWithLocale = r.URL.RequestURI()

					stripped := r.Clone(r.Context())
					stripped.URL.Path = rest
					stripped.URL.RawPath = ""
					c.SetRequest(stripped)
				}
			}

			if locals.Locale == "" {
				locals.Locale, _ = cfg.Extractor.ExtractValid(c, set.exact)
			}
			if locals.Locale == "" {
				locals.Locale = cfg.Default
			}

			c.Set(internal.LocalsKey{}, locals)
			return next(c)
		}
	}
}

// splitLocalePrefix splits "/de/about" into "de" and "/about".
func splitLocalePrefix(path string, set localeSet) (locale, rest string, ok bool) {
	trimmed := strings.TrimPrefix(path, "/")
	segment, tail, found := strings.Cut(trimmed, "/")
	locale, ok = set.exact(segment)
	if !ok {
		return "", "", false
	}
	if !found {
		return locale, "/", true
	}
	return locale, "/" + tail, true
}

// GetLocale returns the locale resolved for the request, or an empty string.
func GetLocale(c internal.Context) string {
	return c.Locals().Locale
}
