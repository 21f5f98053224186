package file

import (
	"io"

	"github.com/bornholm/mdstore/internal/command/common"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

func CatCommand() *cli.Command {
	return newCommand(
		"cat", "Print the content of a text file", "<file>",
		func(ctx *cli.Context) error {
			filename, err := getFilename(ctx)
			if err != nil {
				return errors.WithStack(err)
			}

			client, err := common.GetClient(ctx)
			if err != nil {
				return errors.Wrap(err, "could not create client")
			}

			content, err := client.ReadFile(ctx.Context, filename)
			if err != nil {
				return errors.Wrapf(err, "could not read file '%s'", filename)
			}

			if _, err := io.WriteString(ctx.App.Writer, content); err != nil {
				return errors.WithStack(err)
			}

			return nil
		},
	)
}
