package client

import (
	"io"
	"log/slog"
	"math/rand"
	"net/http"
	"strconv"
	"time"

	"github.com/pkg/errors"
)

// RateLimitTransport retries requests answered with a 429 status, waiting for
// the delay advertised by the server.
//
// It is not installed by default: the client performs a single request per
// operation unless configured with
//
//	client.WithHTTPClient(&http.Client{Transport: &client.RateLimitTransport{...}})
type RateLimitTransport struct {
	Base        http.RoundTripper
	MaxRetries  int
	DefaultWait time.Duration
	MaxWait     time.Duration
}

func (t *RateLimitTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	transport := t.Base
	if transport == nil {
		transport = http.DefaultTransport
	}

	var resp *http.Response
	var err error

	for attempt := 0; attempt <= t.MaxRetries; attempt++ {
		resp, err = transport.RoundTrip(req)
		if err != nil {
			return nil, err
		}

		if resp.StatusCode != http.StatusTooManyRequests || attempt == t.MaxRetries {
			return resp, nil
		}

		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()

		waitTime := t.getWaitTime(resp)

		slog.WarnContext(req.Context(), "rate limited (429)", slog.Duration("wait_time", waitTime), slog.Int("attempt", attempt+1), slog.Int("max_retries", t.MaxRetries))

		select {
		case <-req.Context().Done():
			return nil, req.Context().Err()
		case <-time.After(waitTime):
		}

		if req.GetBody != nil {
			newBody, err := req.GetBody()
			if err != nil {
				return nil, errors.Wrap(err, "failed to rewind request body")
			}
			req.Body = newBody
		} else if req.Body != nil && req.Body != http.NoBody {
			return nil, errors.New("cannot retry request with one-time reader body")
		}
	}

	return resp, nil
}

func (t *RateLimitTransport) getWaitTime(resp *http.Response) time.Duration {
	wait := t.DefaultWait

	if retryAfter := resp.Header.Get("Retry-After"); retryAfter != "" {
		if seconds, err := strconv.Atoi(retryAfter); err == nil {
			base := time.Duration(seconds) * time.Second
			jitter := time.Duration(rand.Float64() * float64(base) / 2)
			wait = base + jitter
		} else if date, err := http.ParseTime(retryAfter); err == nil {
			wait = time.Until(date)
		}
	} else if resetHeader := resp.Header.Get("X-RateLimit-Reset"); resetHeader != "" {
		if resetTime, err := strconv.ParseInt(resetHeader, 10, 64); err == nil {
			if until := time.Until(time.Unix(resetTime, 0)); until > 0 {
				wait = until
			}
		}
	}

	if wait < 0 {
		wait = 0
	}

	if t.MaxWait > 0 && wait > t.MaxWait {
		wait = t.MaxWait
	}

	return wait
}

var _ http.RoundTripper = &RateLimitTransport{}
