package client

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/pkg/errors"
)

const maxErrorBody = 4096

func (c *Client) endpoint(filename string) *url.URL {
	u := *c.baseURL
	u.RawQuery = ""
	u.Fragment = ""

	if filename == "" {
		return &u
	}

	rawPath := strings.TrimSuffix(c.baseURL.EscapedPath(), "/") + "/" + EscapeFilename(filename)

	// RawPath keeps the encoding chosen by EscapeFilename when it differs from
	// the default one of net/url
	u.Path = strings.TrimSuffix(c.baseURL.Path, "/") + "/" + filename
	u.RawPath = rawPath

	return &u
}

func (c *Client) request(ctx context.Context, method string, endpoint *url.URL, header http.Header, body io.Reader, result io.Writer) (http.Header, error) {
	slog.DebugContext(ctx, "new client request",
		slog.String("method", method),
		slog.String("path", endpoint.EscapedPath()),
		slog.String("host", endpoint.Host),
	)

	req, err := http.NewRequestWithContext(ctx, method, endpoint.String(), body)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	for k, v := range header {
		req.Header[k] = v
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	defer res.Body.Close()

	if res.StatusCode < http.StatusOK || res.StatusCode >= http.StatusMultipleChoices {
		data, _ := io.ReadAll(io.LimitReader(res.Body, maxErrorBody))
		return nil, errors.WithStack(&HTTPError{
			StatusCode: res.StatusCode,
			Status:     res.Status,
			Body:       string(data),
		})
	}

	if result == nil {
		result = io.Discard
	}

	if _, err := io.Copy(result, res.Body); err != nil {
		return nil, errors.WithStack(err)
	}

	return res.Header, nil
}

func (c *Client) jsonRequest(ctx context.Context, method string, endpoint *url.URL, payload any, result any) error {
	var (
		body   io.Reader
		header http.Header
	)

	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return errors.WithStack(err)
		}

		body = bytes.NewReader(data)
		header = http.Header{}
		header.Set("Content-Type", "application/json")
	}

	var buff bytes.Buffer

	if _, err := c.request(ctx, method, endpoint, header, body, &buff); err != nil {
		return errors.WithStack(err)
	}

	if result == nil {
		return nil
	}

	if err := json.Unmarshal(buff.Bytes(), result); err != nil {
		return errors.WithStack(err)
	}

	return nil
}

func hasStatus(err error, status int) bool {
	var httpErr *HTTPError
	if !errors.As(err, &httpErr) {
		return false
	}
	return httpErr.StatusCode == status
}
