package http

import (
	"net/http"
	"time"
)

type Options struct {
	Address         string
	BaseURL         string
	Mounts          map[string]http.Handler
	Middlewares     []func(http.Handler) http.Handler
	ShutdownTimeout time.Duration
}

type OptionFunc func(opts *Options)

func NewOptions(funcs ...OptionFunc) *Options {
	opts := &Options{
		Address:         ":8000",
		BaseURL:         "",
		Mounts:          map[string]http.Handler{},
		Middlewares:     make([]func(http.Handler) http.Handler, 0),
		ShutdownTimeout: 10 * time.Second,
	}
	for _, fn := range funcs {
		fn(opts)
	}
	return opts
}

func WithMount(prefix string, handler http.Handler) OptionFunc {
	return func(opts *Options) {
		opts.Mounts[prefix] = handler
	}
}

// WithMiddlewares wraps the whole server handler. The first middleware is the
// outermost one.
func WithMiddlewares(middlewares ...func(http.Handler) http.Handler) OptionFunc {
	return func(opts *Options) {
		opts.Middlewares = append(opts.Middlewares, middlewares...)
	}
}

func WithBaseURL(baseURL string) OptionFunc {
	return func(opts *Options) {
		opts.BaseURL = baseURL
	}
}

func WithAddress(addr string) OptionFunc {
	return func(opts *Options) {
		opts.Address = addr
	}
}

func WithShutdownTimeout(timeout time.Duration) OptionFunc {
	return func(opts *Options) {
		opts.ShutdownTimeout = timeout
	}
}
