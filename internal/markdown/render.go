package markdown

import (
	"bytes"
	"strings"

	"github.com/pkg/errors"
	meta "github.com/yuin/goldmark-meta"
	"github.com/yuin/goldmark/ast"
	gmParser "github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

type Options struct {
	Transformers []NodeTransformer
	Unsafe       bool
	// HighlightStyle is the name of the style used to color code blocks.
	// Code blocks are left as is when empty.
	HighlightStyle string
}

type OptionFunc func(opts *Options)

func NewOptions(funcs ...OptionFunc) *Options {
	opts := &Options{
		Transformers:   make([]NodeTransformer, 0),
		Unsafe:         false,
		HighlightStyle: "",
	}

	for _, fn := range funcs {
		fn(opts)
	}

	return opts
}

func WithNodeTransformers(transformers ...NodeTransformer) OptionFunc {
	return func(opts *Options) {
		opts.Transformers = transformers
	}
}

// WithUnsafe keeps the raw html blocks and dangerous links of the source.
func WithUnsafe(unsafe bool) OptionFunc {
	return func(opts *Options) {
		opts.Unsafe = unsafe
	}
}

func WithHighlightStyle(style string) OptionFunc {
	return func(opts *Options) {
		opts.HighlightStyle = style
	}
}

func Render(source []byte, funcs ...OptionFunc) (*Document, error) {
	opts := NewOptions(funcs...)

	md := New(opts)

	context := gmParser.NewContext()
	parser := md.Parser()

	transformer := &Transformer{
		transformers: opts.Transformers,
	}

	parser.AddOptions(gmParser.WithASTTransformers(
		util.Prioritized(
			transformer,
			999,
		),
	))

	root := parser.Parse(
		text.NewReader(source),
		gmParser.WithContext(context),
	)

	if err := transformer.Error(); err != nil {
		return nil, errors.WithStack(err)
	}

	metadata, err := meta.TryGet(context)
	if err != nil {
		return nil, errors.Wrap(err, "could not parse front matter")
	}

	if metadata == nil {
		metadata = map[string]any{}
	}

	var buff bytes.Buffer

	if err := md.Renderer().Render(&buff, source, root); err != nil {
		return nil, errors.WithStack(err)
	}

	document := &Document{
		html:     buff.Bytes(),
		metadata: metadata,
		heading:  findFirstHeading(root, source, 1),
	}

	return document, nil
}

func findFirstHeading(root ast.Node, source []byte, level int) string {
	var heading string

	_ = ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		h, ok := n.(*ast.Heading)
		if !ok || h.Level != level {
			return ast.WalkContinue, nil
		}

		heading = strings.TrimSpace(nodeText(h, source))

		return ast.WalkStop, nil
	})

	return heading
}

func nodeText(n ast.Node, source []byte) string {
	var sb strings.Builder

	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch typ := c.(type) {
		case *ast.Text:
			sb.Write(typ.Segment.Value(source))
			if typ.SoftLineBreak() {
				sb.WriteString(" ")
			}
		case *ast.String:
			sb.Write(typ.Value)
		default:
			sb.WriteString(nodeText(c, source))
		}
	}

	return sb.String()
}
