package mirror

import (
	"time"

	"github.com/urfave/cli/v2"
	"github.com/urfave/cli/v2/altsrc"
)

const (
	paramFilesystem  = "filesystem"
	paramConcurrency = "concurrency"
	paramExtension   = "extension"
	paramDebounce    = "debounce"
)

var (
	flagFilesystem = altsrc.NewStringSliceFlag(&cli.StringSliceFlag{
		Name:     paramFilesystem,
		Aliases:  []string{"f"},
		Value:    cli.NewStringSlice(),
		Usage:    "One or more filesystem DSN to watch",
		Required: true,
	})
	flagConcurrency = altsrc.NewIntFlag(&cli.IntFlag{
		Name:  paramConcurrency,
		Value: 5,
		Usage: "Maximum number of concurrent operations to execute (by filesystem)",
	})
	flagExtension = altsrc.NewStringSliceFlag(&cli.StringSliceFlag{
		Name:  paramExtension,
		Value: cli.NewStringSlice(".md"),
		Usage: "Extensions of the files to mirror",
	})
	flagDebounce = altsrc.NewDurationFlag(&cli.DurationFlag{
		Name:  paramDebounce,
		Value: time.Second,
		Usage: "Delay before uploading a modified file",
	})
)

func withMirrorFlags(flags ...cli.Flag) []cli.Flag {
	return append([]cli.Flag{
		flagFilesystem,
		flagConcurrency,
		flagExtension,
		flagDebounce,
	}, flags...)
}

func getFilesystems(ctx *cli.Context) ([]string, error) {
	filesystems := ctx.StringSlice(paramFilesystem)
	return filesystems, nil
}

func getConcurrency(ctx *cli.Context) (int, error) {
	concurrency := ctx.Int(paramConcurrency)
	if concurrency < 1 {
		concurrency = 1
	}
	return concurrency, nil
}
