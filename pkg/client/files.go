package client

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"

	"github.com/bornholm/go-x/slogx"
	"github.com/bornholm/mdstore/pkg/blob"
	"github.com/pkg/errors"
)

type ListFilesResponse struct {
	Files []string `json:"files"`
}

type ReadFileResponse struct {
	Content string `json:"content"`
}

type WriteFileRequest struct {
	Content string `json:"content"`
}

// ListFiles returns the names of the files available in the collection.
func (c *Client) ListFiles(ctx context.Context) ([]string, error) {
	var res ListFilesResponse

	if err := c.jsonRequest(ctx, http.MethodGet, c.endpoint(""), nil, &res); err != nil {
		return nil, errors.WithStack(err)
	}

	if res.Files == nil {
		return []string{}, nil
	}

	return res.Files, nil
}

// ReadFile returns the text content of the given file.
func (c *Client) ReadFile(ctx context.Context, filename string) (string, error) {
	if filename == "" {
		return "", errors.WithStack(ErrEmptyFilename)
	}

	var res ReadFileResponse

	if err := c.jsonRequest(ctx, http.MethodGet, c.endpoint(filename), nil, &res); err != nil {
		return "", errors.WithStack(err)
	}

	return res.Content, nil
}

// WriteFile creates or replaces the given file with content.
func (c *Client) WriteFile(ctx context.Context, filename string, content string) error {
	if filename == "" {
		return errors.WithStack(ErrEmptyFilename)
	}

	req := WriteFileRequest{
		Content: content,
	}

	if err := c.jsonRequest(ctx, http.MethodPut, c.endpoint(filename), req, nil); err != nil {
		return errors.WithStack(err)
	}

	return nil
}

// RemoveFile deletes the given file.
func (c *Client) RemoveFile(ctx context.Context, filename string) error {
	if filename == "" {
		return errors.WithStack(ErrEmptyFilename)
	}

	if _, err := c.request(ctx, http.MethodDelete, c.endpoint(filename), nil, nil, nil); err != nil {
		return errors.WithStack(err)
	}

	return nil
}

// ReadFileAsDisplayableURL downloads the raw content of the given file and
// registers it as a blob in the client registry.
//
// The returned object url must be revoked by the caller once the view using
// it is discarded, otherwise its payload stays in memory as long as the
// registry lives.
func (c *Client) ReadFileAsDisplayableURL(ctx context.Context, filename string) (*blob.ObjectURL, error) {
	if filename == "" {
		return nil, errors.WithStack(ErrEmptyFilename)
	}

	ctx = slogx.WithAttrs(ctx, slog.String("filename", filename))

	var buff bytes.Buffer

	header, err := c.request(ctx, http.MethodGet, c.endpoint(filename), nil, nil, &buff)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	// An empty content type lets the blob sniff it from the payload
	objectURL := c.blobs.CreateObjectURL(blob.New(buff.Bytes(), header.Get("Content-Type")))

	slog.DebugContext(ctx, "created displayable url", slog.String("url", objectURL.String()))

	return objectURL, nil
}
