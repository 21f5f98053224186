package file

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/bornholm/mdstore/internal/command/common"
	"github.com/bornholm/mdstore/internal/http"
	"github.com/bornholm/mdstore/pkg/blob"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"github.com/urfave/cli/v2/altsrc"
)

const paramAddress = "address"

func ViewCommand() *cli.Command {
	return newCommand(
		"view", "Serve a file through its object url until interrupted", "<file>",
		func(cliCtx *cli.Context) error {
			filename, err := getFilename(cliCtx)
			if err != nil {
				return errors.WithStack(err)
			}

			client, err := common.GetClient(cliCtx)
			if err != nil {
				return errors.Wrap(err, "could not create client")
			}

			ctx, cancel := signal.NotifyContext(cliCtx.Context, os.Interrupt)
			defer cancel()

			objectURL, err := client.ReadFileAsDisplayableURL(ctx, filename)
			if err != nil {
				return errors.Wrapf(err, "could not fetch file '%s'", filename)
			}

			defer func() {
				if objectURL.Revoke() {
					slog.DebugContext(context.Background(), "object url revoked", slog.String("url", objectURL.String()))
				}
			}()

			address := cliCtx.String(paramAddress)

			server := http.NewServer(
				http.WithAddress(address),
				http.WithMount("/blobs", blob.NewHandler(client.Blobs())),
			)

			if _, err := fmt.Fprintf(cliCtx.App.Writer, "%s available at http://%s/blobs/%s (use ctrl+c to stop)\n", objectURL, address, objectURL.ID()); err != nil {
				return errors.WithStack(err)
			}

			if err := server.Run(ctx); err != nil {
				return errors.WithStack(err)
			}

			return nil
		},
		altsrc.NewStringFlag(&cli.StringFlag{
			Name:  paramAddress,
			Value: "127.0.0.1:8001",
			Usage: "Address to serve the object url on",
		}),
	)
}
