package file

import (
	"fmt"
	"io"

	"github.com/bornholm/mdstore/internal/command/common"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

func ListCommand() *cli.Command {
	return newCommand(
		"ls", "List the files of the store", "",
		func(ctx *cli.Context) error {
			format, err := common.GetOutputFormat(ctx)
			if err != nil {
				return errors.WithStack(err)
			}

			client, err := common.GetClient(ctx)
			if err != nil {
				return errors.Wrap(err, "could not create client")
			}

			files, err := client.ListFiles(ctx.Context)
			if err != nil {
				return errors.Wrap(err, "could not list files")
			}

			err = common.Print(ctx.App.Writer, format, files, func(w io.Writer) error {
				for _, f := range files {
					if _, err := fmt.Fprintln(w, f); err != nil {
						return errors.WithStack(err)
					}
				}
				return nil
			})
			if err != nil {
				return errors.WithStack(err)
			}

			return nil
		},
		common.NewOutputFlag(),
	)
}
