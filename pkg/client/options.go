package client

import (
	"net/http"
	"net/url"

	"github.com/bornholm/mdstore/pkg/blob"
)

const DefaultBaseURL = "http://localhost:8000/api/files"

type Options struct {
	BaseURL      *url.URL
	HTTPClient   *http.Client
	BlobRegistry *blob.Registry
}

type OptionFunc func(opts *Options)

// WithBaseURL sets the collection endpoint, ie the url listing the files.
func WithBaseURL(baseURL *url.URL) OptionFunc {
	return func(opts *Options) {
		opts.BaseURL = baseURL
	}
}

func WithHTTPClient(httpClient *http.Client) OptionFunc {
	return func(opts *Options) {
		opts.HTTPClient = httpClient
	}
}

func WithBlobRegistry(registry *blob.Registry) OptionFunc {
	return func(opts *Options) {
		opts.BlobRegistry = registry
	}
}

func NewOptions(funcs ...OptionFunc) *Options {
	opts := &Options{
		BaseURL: &url.URL{
			Scheme: "http",
			Host:   "localhost:8000",
			Path:   "/api/files",
		},
		HTTPClient: &http.Client{},
	}
	for _, fn := range funcs {
		fn(opts)
	}
	if opts.BlobRegistry == nil {
		opts.BlobRegistry = blob.NewRegistry()
	}
	return opts
}
