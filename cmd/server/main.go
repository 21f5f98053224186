package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"

	"github.com/bornholm/go-x/slogx"
	"github.com/bornholm/mdstore/internal/config"
	"github.com/bornholm/mdstore/internal/setup"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	conf, err := config.Parse()
	if err != nil {
		slog.ErrorContext(ctx, "could not parse config", slogx.Error(errors.WithStack(err)))
		os.Exit(1)
	}

	logger := slog.New(slogx.ContextHandler{
		Handler: slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level:     slog.Level(conf.Logger.Level),
			AddSource: true,
		}),
	})

	slog.SetDefault(logger)

	slog.DebugContext(ctx, "using configuration", slog.Any("config", conf))

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt)

	go func() {
		slog.InfoContext(ctx, "use ctrl+c to interrupt")
		<-sig
		cancel()
	}()

	backend, err := setup.NewFilesystemBackendFromConfig(ctx, conf)
	if err != nil {
		slog.ErrorContext(ctx, "could not setup filesystem", slogx.Error(errors.WithStack(err)))
		os.Exit(1)
	}

	err = backend.Mount(ctx, func(ctx context.Context, fs afero.Fs) error {
		server, err := setup.NewHTTPServerFromConfig(ctx, conf, fs)
		if err != nil {
			return errors.Wrap(err, "could not setup http server")
		}

		slog.InfoContext(ctx, "starting server", slog.Any("address", conf.HTTP.Address))

		if err := server.Run(ctx); err != nil {
			return errors.Wrap(err, "could not run server")
		}

		return nil
	})
	if err != nil {
		slog.ErrorContext(ctx, "server stopped with an error", slogx.Error(errors.WithStack(err)))
		os.Exit(1)
	}
}
