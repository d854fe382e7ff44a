package internal

// ExtractorSource reads one candidate value from the request.
// It reports false when the value is absent or empty.
type ExtractorSource = func(Context) (string, bool)

// Extractor consults its sources in order.
type Extractor struct {
	sources []ExtractorSource
}

// NewExtractor creates an Extractor over the given sources. Nil sources are skipped.
func NewExtractor(sources ...ExtractorSource) Extractor {
	clean := make([]ExtractorSource, 0, len(sources))
	for _, src := range sources {
		if src != nil {
			clean = append(clean, src)
		}
	}
	return Extractor{sources: clean}
}

// Extract returns the first non-empty value.
func (e Extractor) Extract(c Context) (string, bool) {
	return e.ExtractValid(c, func(v string) (string, bool) { return v, true })
}

// ExtractValid returns the first value that valid accepts, as normalized by valid.
// Rejected values do not stop the search.
func (e Extractor) ExtractValid(c Context, valid func(string) (string, bool)) (string, bool) {
	for _, src := range e.sources {
		v, ok := src(c)
		if !ok || v == "" {
			continue
		}
		if norm, ok := valid(v); ok {
			return norm, true
		}
	}
	return "", false
}

// Len returns the number of sources.
func (e Extractor) Len() int {
	return len(e.sources)
}

// FromHeader reads a request header.
func FromHeader(name string) ExtractorSource {
	return func(c Context) (string, bool) {
		return nonEmpty(c.Header(name))
	}
}

// FromQuery reads a query parameter.
func FromQuery(name string) ExtractorSource {
	return func(c Context) (string, bool) {
		return nonEmpty(c.Query(name))
	}
}

// FromCookie reads a plain cookie.
func FromCookie(name string) ExtractorSource {
	return func(c Context) (string, bool) {
		v, err := c.Cookie(name)
		if err != nil {
			return "", false
		}
		return nonEmpty(v)
	}
}

// FromParam reads a URL parameter of the matched route.
func FromParam(name string) ExtractorSource {
	return func(c Context) (string, bool) {
		return nonEmpty(c.Param(name))
	}
}

func nonEmpty(v string) (string, bool) {
	return v, v != ""
}
