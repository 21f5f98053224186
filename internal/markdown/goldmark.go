package markdown

import (
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	meta "github.com/yuin/goldmark-meta"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

func New(opts *Options) goldmark.Markdown {
	extensions := []goldmark.Extender{
		extension.GFM,
		meta.Meta,
	}

	if opts.HighlightStyle != "" {
		extensions = append(extensions, highlighting.NewHighlighting(
			highlighting.WithStyle(opts.HighlightStyle),
		))
	}

	rendererOptions := []goldmark.Option{
		goldmark.WithRendererOptions(html.WithXHTML()),
	}

	if opts.Unsafe {
		rendererOptions = append(rendererOptions, goldmark.WithRendererOptions(html.WithUnsafe()))
	}

	return goldmark.New(
		append([]goldmark.Option{
			goldmark.WithExtensions(extensions...),
			goldmark.WithParserOptions(
				parser.WithAutoHeadingID(),
			),
		}, rendererOptions...)...,
	)
}
