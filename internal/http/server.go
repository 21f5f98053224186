package http

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"strings"

	"github.com/pkg/errors"
)

type Server struct {
	opts *Options
}

func NewServer(funcs ...OptionFunc) *Server {
	opts := NewOptions(funcs...)
	return &Server{
		opts: opts,
	}
}

// Handler returns the root handler of the server, with every mount and
// middleware applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	baseURL := strings.TrimSuffix(s.opts.BaseURL, "/")

	for prefix, handler := range s.opts.Mounts {
		trimmed := strings.TrimSuffix(prefix, "/")
		mountPath := baseURL + trimmed

		// Mounting both "/prefix" and "/prefix/" lets the collection endpoint
		// answer without trailing slash
		mux.Handle(mountPath+"/", stripPrefix(mountPath, handler))
		if mountPath != "" {
			mux.Handle(mountPath, stripPrefix(mountPath, handler))
		}
	}

	var handler http.Handler = mux

	for i := len(s.opts.Middlewares) - 1; i >= 0; i-- {
		handler = s.opts.Middlewares[i](handler)
	}

	return handler
}

// Run listens on the configured address until the context is canceled.
func (s *Server) Run(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.opts.Address)
	if err != nil {
		return errors.Wrapf(err, "could not listen on '%s'", s.opts.Address)
	}

	return s.Serve(ctx, listener)
}

func (s *Server) Serve(ctx context.Context, listener net.Listener) error {
	server := &http.Server{
		Handler: s.Handler(),
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	errs := make(chan error, 1)

	go func() {
		slog.InfoContext(ctx, "http server listening", slog.String("address", listener.Addr().String()))

		if err := server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errs <- errors.WithStack(err)
		}

		close(errs)
	}()

	select {
	case err := <-errs:
		return errors.WithStack(err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.opts.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return errors.WithStack(err)
	}

	return nil
}

// stripPrefix behaves like http.StripPrefix but never leaves an empty path
// behind.
func stripPrefix(prefix string, next http.Handler) http.Handler {
	if prefix == "" {
		return next
	}

	return http.StripPrefix(prefix, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "" {
			r.URL.Path = "/"
			r.URL.RawPath = ""
		}

		next.ServeHTTP(w, r)
	}))
}
