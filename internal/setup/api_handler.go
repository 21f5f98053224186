package setup

import (
	"context"

	"github.com/bornholm/mdstore/internal/config"
	"github.com/bornholm/mdstore/internal/filestore"
	"github.com/bornholm/mdstore/internal/http/handler/api"
	"github.com/spf13/afero"
)

func getAPIHandlerFromConfig(ctx context.Context, conf *config.Config, fs afero.Fs) (*api.Handler, error) {
	store := filestore.New(
		fs,
		filestore.WithTextExtensions(conf.Storage.TextExtensions...),
		filestore.WithRawExtensions(conf.Storage.RawExtensions...),
		filestore.WithWritableExtensions(conf.Storage.WritableExtensions...),
	)

	handler := api.NewHandler(store)

	return handler, nil
}
