package ssr

// Option configures the plugin and its resolver.
type Option func(*options)

type options struct {
	classify  Classifier
	errorCopy ErrorPageCopy
	parallel  bool
}

func newOptions(opts ...Option) options {
	o := options{
		errorCopy: DefaultErrorPageCopy,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithClassifier replaces the error classifier used for failed data fetches.
// Defaults to the host's ClassifyError.
func WithClassifier(fn Classifier) Option {
	return func(o *options) {
		if fn != nil {
			o.classify = fn
		}
	}
}

// WithParallelResolve resolves page and global data concurrently.
// The global data operation runs on its own fork of the request Context, so
// values either operation sets are not visible to the other. Neither may
// write the response.
func WithParallelResolve() Option {
	return func(o *options) {
		o.parallel = true
	}
}

// WithErrorPageCopy sets the text of the fallback error page.
// Empty fields keep the default text.
func WithErrorPageCopy(text ErrorPageCopy) Option {
	return func(o *options) {
		o.errorCopy = text.withDefaults(DefaultErrorPageCopy)
	}
}
