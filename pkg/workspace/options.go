package workspace

type Options struct {
	// BinaryExtensions lists the lower-cased extensions, without dot, of the
	// files opened through an object url.
	BinaryExtensions []string
}

type OptionFunc func(opts *Options)

func WithBinaryExtensions(extensions ...string) OptionFunc {
	return func(opts *Options) {
		opts.BinaryExtensions = extensions
	}
}

func NewOptions(funcs ...OptionFunc) *Options {
	opts := &Options{
		BinaryExtensions: []string{"pdf"},
	}
	for _, fn := range funcs {
		fn(opts)
	}
	return opts
}
