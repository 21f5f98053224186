package filestore

type Options struct {
	// TextExtensions are served as json text content.
	TextExtensions []string
	// RawExtensions are served as raw bytes.
	RawExtensions []string
	// WritableExtensions are the only ones accepted by Save().
	WritableExtensions []string
}

type OptionFunc func(opts *Options)

func WithTextExtensions(extensions ...string) OptionFunc {
	return func(opts *Options) {
		opts.TextExtensions = extensions
	}
}

func WithRawExtensions(extensions ...string) OptionFunc {
	return func(opts *Options) {
		opts.RawExtensions = extensions
	}
}

func WithWritableExtensions(extensions ...string) OptionFunc {
	return func(opts *Options) {
		opts.WritableExtensions = extensions
	}
}

func NewOptions(funcs ...OptionFunc) *Options {
	opts := &Options{
		TextExtensions:     []string{".md"},
		RawExtensions:      []string{".pdf"},
		WritableExtensions: []string{".md"},
	}
	for _, fn := range funcs {
		fn(opts)
	}
	return opts
}
