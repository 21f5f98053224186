package file

import (
	"github.com/bornholm/mdstore/internal/command/common"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"github.com/urfave/cli/v2/altsrc"
)

func newCommand(name string, usage string, argsUsage string, action cli.ActionFunc, flags ...cli.Flag) *cli.Command {
	flags = common.WithCommonFlags(flags...)
	return &cli.Command{
		Name:      name,
		Usage:     usage,
		ArgsUsage: argsUsage,
		Flags:     flags,
		Before:    altsrc.InitInputSourceWithContext(flags, common.ConfigSource),
		Action:    action,
	}
}

func getFilename(ctx *cli.Context) (string, error) {
	if ctx.NArg() != 1 {
		return "", errors.New("expected exactly one filename argument")
	}

	filename := ctx.Args().First()
	if filename == "" {
		return "", errors.New("filename must not be empty")
	}

	return filename, nil
}
