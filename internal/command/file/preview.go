package file

import (
	"fmt"
	"html"
	"io"
	"os"

	"github.com/bornholm/mdstore/internal/command/common"
	"github.com/bornholm/mdstore/internal/markdown"
	"github.com/bornholm/mdstore/pkg/store"
	"github.com/bornholm/mdstore/pkg/workspace"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"github.com/urfave/cli/v2/altsrc"
)

const (
	paramUnsafe         = "unsafe"
	paramHighlightStyle = "highlight-style"
)

func PreviewCommand() *cli.Command {
	return newCommand(
		"preview", "Render a markdown file to html", "<file>",
		func(ctx *cli.Context) error {
			filename, err := getFilename(ctx)
			if err != nil {
				return errors.WithStack(err)
			}

			client, err := common.GetClient(ctx)
			if err != nil {
				return errors.Wrap(err, "could not create client")
			}

			ws := workspace.New(client, store.NewEditor(), store.NewPreview())
			defer ws.Close()

			if ws.IsBinary(filename) {
				return errors.Errorf("'%s' is not a markdown file", filename)
			}

			if err := ws.Open(ctx.Context, filename); err != nil {
				return errors.Wrapf(err, "could not open file '%s'", filename)
			}

			document, err := markdown.Render(
				[]byte(ws.Preview().Content()),
				markdown.WithUnsafe(ctx.Bool(paramUnsafe)),
				markdown.WithHighlightStyle(ctx.String(paramHighlightStyle)),
				markdown.WithNodeTransformers(markdown.ResolveRelativeLinks(client.BaseURL())),
			)
			if err != nil {
				return errors.Wrapf(err, "could not render file '%s'", filename)
			}

			title := document.Title()
			if title == "" {
				title = ws.Editor().SelectedFile().Stem()
			}

			to := ctx.String(paramTo)
			if to == "" {
				if err := writePage(ctx.App.Writer, title, document.HTML()); err != nil {
					return errors.WithStack(err)
				}

				return nil
			}

			file, err := os.Create(to)
			if err != nil {
				return errors.Wrapf(err, "could not create '%s'", to)
			}

			if err := writePage(file, title, document.HTML()); err != nil {
				file.Close()
				return errors.Wrapf(err, "could not write '%s'", to)
			}

			if err := file.Close(); err != nil {
				return errors.Wrapf(err, "could not close '%s'", to)
			}

			return nil
		},
		altsrc.NewStringFlag(&cli.StringFlag{
			Name:  paramTo,
			Usage: "Local path to write the html to, defaults to stdout",
		}),
		altsrc.NewBoolFlag(&cli.BoolFlag{
			Name:  paramUnsafe,
			Usage: "Keep the raw html of the document",
		}),
		altsrc.NewStringFlag(&cli.StringFlag{
			Name:  paramHighlightStyle,
			Value: "github",
			Usage: "Style used to color code blocks, empty to disable",
		}),
	)
}

const pageTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>%s</title>
</head>
<body>
%s</body>
</html>
`

func writePage(w io.Writer, title string, body []byte) error {
	if _, err := fmt.Fprintf(w, pageTemplate, html.EscapeString(title), body); err != nil {
		return errors.WithStack(err)
	}

	return nil
}
