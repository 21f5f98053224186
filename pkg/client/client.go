// Package client talks to a remote markdown file store through its collection
// endpoint.
package client

import (
	"net/http"
	"net/url"

	"github.com/bornholm/mdstore/pkg/blob"
)

type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	blobs      *blob.Registry
}

func New(funcs ...OptionFunc) *Client {
	opts := NewOptions(funcs...)
	return &Client{
		baseURL:    opts.BaseURL,
		httpClient: opts.HTTPClient,
		blobs:      opts.BlobRegistry,
	}
}

// Blobs returns the registry holding the object urls created by the client.
func (c *Client) Blobs() *blob.Registry {
	return c.blobs
}

// BaseURL returns a copy of the collection endpoint url.
func (c *Client) BaseURL() *url.URL {
	u := *c.baseURL
	return &u
}
