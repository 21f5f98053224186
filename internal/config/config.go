package config

import (
	"github.com/caarlos0/env/v11"
	"github.com/pkg/errors"
)

type Config struct {
	Logger  Logger  `envPrefix:"LOGGER_"`
	HTTP    HTTP    `envPrefix:"HTTP_"`
	Storage Storage `envPrefix:"STORAGE_"`
}

func Parse() (*Config, error) {
	return ParseWithEnvironment(nil)
}

// ParseWithEnvironment parses the configuration from the given variables
// instead of the process environment when environment is not nil.
func ParseWithEnvironment(environment map[string]string) (*Config, error) {
	conf, err := env.ParseAsWithOptions[Config](env.Options{
		Prefix:      "MDSTORE_",
		Environment: environment,
	})
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return &conf, nil
}
