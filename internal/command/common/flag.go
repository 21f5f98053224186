package common

import (
	"net/http"
	"net/url"
	"time"

	"github.com/bornholm/mdstore/pkg/client"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"github.com/urfave/cli/v2/altsrc"
)

const (
	paramServer           = "server"
	paramRetryRateLimited = "retry-rate-limited"
	paramMaxRetries       = "max-retries"
	paramMaxRetryWait     = "max-retry-wait"
)

var (
	flagServer = altsrc.NewStringFlag(&cli.StringFlag{
		Name:    paramServer,
		Aliases: []string{"s"},
		EnvVars: []string{"MDSTORE_CLI_SERVER"},
		Value:   client.DefaultBaseURL,
		Usage:   "File store collection endpoint",
	})
	flagRetryRateLimited = altsrc.NewBoolFlag(&cli.BoolFlag{
		Name:    paramRetryRateLimited,
		EnvVars: []string{"MDSTORE_CLI_RETRY_RATE_LIMITED"},
		Value:   false,
		Usage:   "Retry the requests rejected by the server rate limiter (429)",
	})
	flagMaxRetries = altsrc.NewIntFlag(&cli.IntFlag{
		Name:    paramMaxRetries,
		EnvVars: []string{"MDSTORE_CLI_MAX_RETRIES"},
		Value:   5,
		Usage:   "Maximum number of retries of a rate limited request",
	})
	flagMaxRetryWait = altsrc.NewDurationFlag(&cli.DurationFlag{
		Name:    paramMaxRetryWait,
		EnvVars: []string{"MDSTORE_CLI_MAX_RETRY_WAIT"},
		Value:   time.Minute,
		Usage:   "Maximum delay to wait before retrying a rate limited request",
	})
)

func WithCommonFlags(flags ...cli.Flag) []cli.Flag {
	return append([]cli.Flag{
		flagServer,
		flagRetryRateLimited,
		flagMaxRetries,
		flagMaxRetryWait,
	}, flags...)
}

// ConfigSource loads the flag values from the yaml file given with the global
// --config flag.
var ConfigSource = altsrc.NewYamlSourceFromFlagFunc("config")

func GetClient(ctx *cli.Context) (*client.Client, error) {
	rawServerURL := ctx.String(paramServer)

	serverURL, err := url.Parse(rawServerURL)
	if err != nil {
		return nil, errors.Wrapf(err, "could not parse server url '%s'", rawServerURL)
	}

	if serverURL.Scheme == "" || serverURL.Host == "" {
		return nil, errors.Errorf("server url '%s' must be absolute", rawServerURL)
	}

	funcs := []client.OptionFunc{
		client.WithBaseURL(serverURL),
	}

	if ctx.Bool(paramRetryRateLimited) {
		funcs = append(funcs, client.WithHTTPClient(&http.Client{
			Transport: &client.RateLimitTransport{
				Base:        http.DefaultTransport,
				MaxRetries:  ctx.Int(paramMaxRetries),
				DefaultWait: time.Second,
				MaxWait:     ctx.Duration(paramMaxRetryWait),
			},
		}))
	}

	return client.New(funcs...), nil
}
