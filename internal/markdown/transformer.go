package markdown

import (
	"net/url"
	"strings"

	"github.com/pkg/errors"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

type NodeTransformer interface {
	Transform(n ast.Node) error
}

type NodeTransformerFunc func(n ast.Node) error

func (f NodeTransformerFunc) Transform(n ast.Node) error {
	if err := f(n); err != nil {
		return errors.WithStack(err)
	}

	return nil
}

type Transformer struct {
	transformers []NodeTransformer
	err          error
}

func (t *Transformer) Transform(root *ast.Document, reader text.Reader, pc parser.Context) {
	err := ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		for _, nodeTransformer := range t.transformers {
			if err := nodeTransformer.Transform(n); err != nil {
				return ast.WalkStop, errors.WithStack(err)
			}
		}

		return ast.WalkContinue, nil
	})
	if err != nil {
		t.err = errors.WithStack(err)
	}
}

func (t *Transformer) Error() error {
	if t.err == nil {
		return nil
	}

	return errors.WithStack(t.err)
}

// ResolveRelativeLinks rewrites the relative destinations of links and images
// against the given base url, so that documents referencing sibling files of
// the store render outside of it.
func ResolveRelativeLinks(baseURL *url.URL) NodeTransformerFunc {
	base := *baseURL
	if !strings.HasSuffix(base.Path, "/") {
		base.Path += "/"
		if base.RawPath != "" {
			base.RawPath += "/"
		}
	}

	resolve := func(destination []byte) ([]byte, error) {
		if len(destination) == 0 || destination[0] == '#' {
			return destination, nil
		}

		ref, err := url.Parse(string(destination))
		if err != nil {
			return nil, errors.Wrapf(err, "could not parse destination '%s'", destination)
		}

		if ref.IsAbs() || ref.Host != "" || strings.HasPrefix(ref.Path, "/") {
			return destination, nil
		}

		return []byte(base.ResolveReference(ref).String()), nil
	}

	return func(n ast.Node) error {
		var err error

		switch typ := n.(type) {
		case *ast.Image:
			typ.Destination, err = resolve(typ.Destination)
		case *ast.Link:
			typ.Destination, err = resolve(typ.Destination)
		}

		if err != nil {
			return errors.WithStack(err)
		}

		return nil
	}
}
