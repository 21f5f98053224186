package setup

import (
	"context"

	"github.com/bornholm/mdstore/internal/config"
	"github.com/bornholm/mdstore/internal/http"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/afero"
)

// NewHTTPServerFromConfig creates the file server exposing the given
// filesystem.
func NewHTTPServerFromConfig(ctx context.Context, conf *config.Config, fs afero.Fs) (*http.Server, error) {
	api, err := getAPIHandlerFromConfig(ctx, conf, fs)
	if err != nil {
		return nil, errors.Wrap(err, "could not configure api handler from config")
	}

	middlewares, err := getMiddlewaresFromConfig(ctx, conf)
	if err != nil {
		return nil, errors.Wrap(err, "could not configure middlewares from config")
	}

	options := []http.OptionFunc{
		http.WithAddress(conf.HTTP.Address),
		http.WithBaseURL(conf.HTTP.BaseURL),
		http.WithMount(conf.HTTP.FilesPath, api),
		http.WithMiddlewares(middlewares...),
	}

	if conf.HTTP.MetricsPath != "" {
		options = append(options, http.WithMount(conf.HTTP.MetricsPath, promhttp.Handler()))
	}

	server := http.NewServer(options...)

	return server, nil
}
