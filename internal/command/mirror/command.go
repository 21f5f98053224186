package mirror

import (
	"context"
	"log/slog"
	"net/url"
	"regexp"
	"sync"
	"time"

	"github.com/bornholm/go-x/slogx"
	"github.com/pkg/errors"
	"github.com/redmatter/go-globre/v2"
	"github.com/urfave/cli/v2"
	"github.com/urfave/cli/v2/altsrc"

	"github.com/bornholm/mdstore/internal/command/common"
	"github.com/bornholm/mdstore/internal/filesystem"
	"github.com/bornholm/mdstore/internal/filesystem/backend"

	// Filesystem backends
	_ "github.com/bornholm/mdstore/internal/filesystem/backend/local"
	_ "github.com/bornholm/mdstore/internal/filesystem/backend/memory"
	_ "github.com/bornholm/mdstore/internal/filesystem/backend/sftp"
)

func Command() *cli.Command {
	flags := common.WithCommonFlags(
		withMirrorFlags()...,
	)
	return &cli.Command{
		Name:   "sync",
		Usage:  "Watch one or more filesystems and mirror their markdown files to the store",
		Flags:  flags,
		Before: altsrc.InitInputSourceWithContext(flags, common.ConfigSource),
		Action: func(ctx *cli.Context) error {
			filesystems, err := getFilesystems(ctx)
			if err != nil {
				return errors.Wrap(err, "could not retrieve filesystems")
			}

			concurrency, err := getConcurrency(ctx)
			if err != nil {
				return errors.Wrap(err, "could not retrieve concurrency")
			}

			client, err := common.GetClient(ctx)
			if err != nil {
				return errors.Wrap(err, "could not create client")
			}

			backends := make([]filesystem.Backend, 0, len(filesystems))

			for _, f := range filesystems {
				b, err := backend.New(f)
				if err != nil {
					return errors.Wrapf(err, "could not create filesystem backend from dsn '%s'", f)
				}

				backends = append(backends, b)
			}

			sharedCtx, sharedCancel := context.WithCancel(ctx.Context)
			defer sharedCancel()

			var wg sync.WaitGroup

			wg.Add(len(backends))

			for i, b := range backends {
				dsn, err := url.Parse(filesystems[i])
				if err != nil {
					return errors.WithStack(err)
				}

				watchOptions, err := getWatchOptions(dsn)
				if err != nil {
					return errors.Wrapf(err, "could not retrieve watch options from dsn '%s'", scrubbedURL(dsn))
				}

				watchOptions = append(watchOptions, filesystem.WithExtensions(ctx.StringSlice(paramExtension)...))

				m := newMirror(client, b, ctx.Duration(paramDebounce), concurrency)

				go func(m *mirror, dsn *url.URL) {
					defer wg.Done()
					defer sharedCancel()

					watchCtx := slogx.WithAttrs(sharedCtx, slog.String("filesystem", scrubbedURL(dsn)))

					if err := m.Watch(watchCtx, watchOptions...); err != nil {
						slog.ErrorContext(watchCtx, "could not watch filesystem", slogx.Error(errors.WithStack(err)))
					}
				}(m, dsn)
			}

			wg.Wait()

			return nil
		},
	}
}

func getWatchOptions(dsn *url.URL) ([]filesystem.WatchOptionFunc, error) {
	options := make([]filesystem.WatchOptionFunc, 0)

	query := dsn.Query()

	recursive := query.Get("watchRecursive")
	switch recursive {
	case "true":
		options = append(options, filesystem.WithRecursive(true))
	case "false":
		fallthrough
	default:
		options = append(options, filesystem.WithRecursive(false))
	}

	if rawInterval := query.Get("watchInterval"); rawInterval != "" {
		interval, err := time.ParseDuration(rawInterval)
		if err != nil {
			return nil, errors.Wrap(err, "could not parse 'watchInterval' parameter")
		}

		options = append(options, filesystem.WithInterval(interval))
	}

	if directory := query.Get("watchDirectory"); directory != "" {
		options = append(options, filesystem.WithDirectory(directory))
	}

	if rawFilter := query.Get("watchFilter"); rawFilter != "" {
		filter, err := compileGlob(rawFilter)
		if err != nil {
			return nil, errors.Wrap(err, "could not parse 'watchFilter' parameter")
		}

		options = append(options, filesystem.WithFilter(filter))
	}

	return options, nil
}

func compileGlob(pattern string) (*regexp.Regexp, error) {
	pathRegExp := globre.RegexFromGlob(
		pattern,
		globre.ExtendedSyntaxEnabled(true),
		globre.GlobStarEnabled(true),
		globre.WithDelimiter('/'),
	)

	filter, err := regexp.Compile(pathRegExp)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return filter, nil
}

func scrubbedURL(u *url.URL) string {
	scrubbed := *u
	if scrubbed.User != nil {
		scrubbed.User = url.UserPassword("***", "***")
	}
	return scrubbed.String()
}
