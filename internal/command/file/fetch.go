package file

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/bornholm/mdstore/internal/command/common"
	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"github.com/urfave/cli/v2/altsrc"
)

const paramTo = "to"

func FetchCommand() *cli.Command {
	return newCommand(
		"fetch", "Download a file through an object url", "<file>",
		func(ctx *cli.Context) error {
			filename, err := getFilename(ctx)
			if err != nil {
				return errors.WithStack(err)
			}

			client, err := common.GetClient(ctx)
			if err != nil {
				return errors.Wrap(err, "could not create client")
			}

			objectURL, err := client.ReadFileAsDisplayableURL(ctx.Context, filename)
			if err != nil {
				return errors.Wrapf(err, "could not fetch file '%s'", filename)
			}

			defer objectURL.Revoke()

			blob, err := objectURL.Blob()
			if err != nil {
				return errors.WithStack(err)
			}

			to := ctx.String(paramTo)
			if to == "" {
				to = filepath.Base(filename)
			}

			if err := os.WriteFile(to, blob.Bytes(), 0o644); err != nil {
				return errors.Wrapf(err, "could not write '%s'", to)
			}

			if _, err := fmt.Fprintf(ctx.App.Writer, "%s (%s, %s)\n", to, blob.Type(), humanize.Bytes(uint64(blob.Size()))); err != nil {
				return errors.WithStack(err)
			}

			return nil
		},
		altsrc.NewStringFlag(&cli.StringFlag{
			Name:  paramTo,
			Usage: "Local path to write the file to, defaults to the file name",
		}),
	)
}
