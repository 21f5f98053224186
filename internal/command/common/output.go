package common

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"
)

type OutputFormat string

const (
	OutputText OutputFormat = "text"
	OutputJSON OutputFormat = "json"
	OutputYAML OutputFormat = "yaml"
)

const paramOutput = "output"

func NewOutputFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    paramOutput,
		Aliases: []string{"o"},
		Value:   string(OutputText),
		Usage:   "Output format (text, json or yaml)",
	}
}

func GetOutputFormat(ctx *cli.Context) (OutputFormat, error) {
	format := OutputFormat(strings.ToLower(ctx.String(paramOutput)))

	switch format {
	case OutputText, OutputJSON, OutputYAML:
		return format, nil
	default:
		return "", errors.Errorf("unknown output format '%s'", format)
	}
}

// Print writes the value in the given format. The text format uses the
// textFn function.
func Print(w io.Writer, format OutputFormat, value any, textFn func(w io.Writer) error) error {
	switch format {
	case OutputJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")

		if err := encoder.Encode(value); err != nil {
			return errors.WithStack(err)
		}

	case OutputYAML:
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)

		if err := encoder.Encode(value); err != nil {
			return errors.WithStack(err)
		}

		if err := encoder.Close(); err != nil {
			return errors.WithStack(err)
		}

	default:
		if textFn == nil {
			if _, err := fmt.Fprintln(w, value); err != nil {
				return errors.WithStack(err)
			}

			return nil
		}

		if err := textFn(w); err != nil {
			return errors.WithStack(err)
		}
	}

	return nil
}
