package blob

type Options struct {
	Origin string
}

type OptionFunc func(opts *Options)

func WithOrigin(origin string) OptionFunc {
	return func(opts *Options) {
		opts.Origin = origin
	}
}

func NewOptions(funcs ...OptionFunc) *Options {
	opts := &Options{
		Origin: "mdstore",
	}
	for _, fn := range funcs {
		fn(opts)
	}
	return opts
}
