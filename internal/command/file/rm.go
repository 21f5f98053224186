package file

import (
	"log/slog"

	"github.com/bornholm/mdstore/internal/command/common"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

func RemoveCommand() *cli.Command {
	return newCommand(
		"rm", "Delete a file", "<file>",
		func(ctx *cli.Context) error {
			filename, err := getFilename(ctx)
			if err != nil {
				return errors.WithStack(err)
			}

			client, err := common.GetClient(ctx)
			if err != nil {
				return errors.Wrap(err, "could not create client")
			}

			if err := client.RemoveFile(ctx.Context, filename); err != nil {
				return errors.Wrapf(err, "could not remove file '%s'", filename)
			}

			slog.InfoContext(ctx.Context, "file removed", slog.String("filename", filename))

			return nil
		},
	)
}
