// Package markdown converts blog posts from Markdown to HTML.
//
// Fenced code blocks are rendered with the same pipeline
// as code block tags: the fence's info string is the option string.
//
//	```ruby caption="Example" highlight=[2]
//	def hello
//	  puts "hello"
//	end
//	```
//
// Raw HTML is passed through untouched
// so that expanded code block tags survive conversion.
package markdown

import (
	"braces.dev/errtrace"
	"github.com/christopher-b/cbennell.com/internal/options"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/util"
)

// CodeRenderer renders a code block into HTML.
type CodeRenderer interface {
	Render(opts options.Options, code string) (string, error)
}

// New builds a Markdown converter
// that renders fenced code blocks with the given CodeRenderer.
func New(code CodeRenderer) goldmark.Markdown {
	return goldmark.New(
		goldmark.WithExtensions(&codeExtension{code: code}),
		goldmark.WithRendererOptions(html.WithUnsafe()),
	)
}

type codeExtension struct{ code CodeRenderer }

var _ goldmark.Extender = (*codeExtension)(nil)

func (e *codeExtension) Extend(m goldmark.Markdown) {
	// Lower values take priority over goldmark's own renderers.
	m.Renderer().AddOptions(renderer.WithNodeRenderers(
		util.Prioritized(&codeBlockRenderer{code: e.code}, 100),
	))
}

type codeBlockRenderer struct{ code CodeRenderer }

var _ renderer.NodeRenderer = (*codeBlockRenderer)(nil)

func (r *codeBlockRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(ast.KindFencedCodeBlock, r.renderFencedCodeBlock)
}

func (r *codeBlockRenderer) renderFencedCodeBlock(
	w util.BufWriter, src []byte, node ast.Node, entering bool,
) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}

	n := node.(*ast.FencedCodeBlock)
	var info string
	if n.Info != nil {
		info = string(n.Info.Segment.Value(src))
	}

	var body []byte
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		body = append(body, seg.Value(src)...)
	}

	out, err := r.code.Render(options.Parse(info), string(body))
	if err != nil {
		return ast.WalkStop, errtrace.Wrap(err)
	}
	if _, err := w.WriteString(out); err != nil {
		return ast.WalkStop, errtrace.Wrap(err)
	}
	if err := w.WriteByte('\n'); err != nil {
		return ast.WalkStop, errtrace.Wrap(err)
	}
	return ast.WalkSkipChildren, nil
}
