package file

import (
	"io"
	"log/slog"
	"os"

	"github.com/bornholm/mdstore/internal/command/common"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"github.com/urfave/cli/v2/altsrc"
)

const paramFrom = "from"

func PutCommand() *cli.Command {
	return newCommand(
		"put", "Create or replace a file with the content of a local file or stdin", "<file>",
		func(ctx *cli.Context) error {
			filename, err := getFilename(ctx)
			if err != nil {
				return errors.WithStack(err)
			}

			from := ctx.String(paramFrom)

			var reader io.Reader
			if from == "-" {
				reader = ctx.App.Reader
			} else {
				file, err := os.Open(from)
				if err != nil {
					return errors.Wrapf(err, "could not open '%s'", from)
				}

				defer file.Close()

				reader = file
			}

			content, err := io.ReadAll(reader)
			if err != nil {
				return errors.WithStack(err)
			}

			client, err := common.GetClient(ctx)
			if err != nil {
				return errors.Wrap(err, "could not create client")
			}

			if err := client.WriteFile(ctx.Context, filename, string(content)); err != nil {
				return errors.Wrapf(err, "could not write file '%s'", filename)
			}

			slog.InfoContext(ctx.Context, "file written", slog.String("filename", filename), slog.Int("size", len(content)))

			return nil
		},
		altsrc.NewStringFlag(&cli.StringFlag{
			Name:    paramFrom,
			Aliases: []string{"f"},
			Value:   "-",
			Usage:   "Local file to read the content from, '-' for stdin",
		}),
	)
}
