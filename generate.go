package main

import (
	"bytes"
	"html/template"
	"io"
	"os"
	"path/filepath"
	"strings"

	"braces.dev/errtrace"
	"github.com/charmbracelet/log"
	"github.com/christopher-b/cbennell.com/internal/errdefer"
	"github.com/christopher-b/cbennell.com/internal/flagvalue"
	"github.com/christopher-b/cbennell.com/internal/highlight"
	"github.com/christopher-b/cbennell.com/internal/html"
	"github.com/christopher-b/cbennell.com/internal/liquid"
	"github.com/christopher-b/cbennell.com/internal/markdown"
	"github.com/christopher-b/cbennell.com/internal/options"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/parser"
)

// Highlighter renders a single code block into HTML.
type Highlighter interface {
	Render(opts options.Options, code string) (string, error)
}

var _ Highlighter = (*highlight.Highlighter)(nil)

// Converter converts Markdown into HTML.
type Converter interface {
	Convert(src []byte, w io.Writer, opts ...parser.ParseOption) error
}

var _ Converter = (goldmark.Markdown)(nil)

// Renderer renders converted posts into pages.
type Renderer interface {
	WriteStatic(dir string) error
	RenderPage(io.Writer, *html.Page) error
}

var _ Renderer = (*html.Renderer)(nil)

// Generator renders blog posts into HTML pages.
//
// In terms of code organization,
// Generator's purpose is to add a separation between main
// and the program's core logic to aid in testability.
type Generator struct {
	Log         *log.Logger
	Highlighter Highlighter
	Markdown    Converter
	Renderer    Renderer
	OutDir      string
}

// Generate renders the given files into the output directory.
// Each file becomes a page named after it, with an .html extension.
func (g *Generator) Generate(files []string) error {
	if err := g.Renderer.WriteStatic(g.OutDir); err != nil {
		return errtrace.Wrap(err)
	}

	for _, path := range files {
		if err := g.generateFile(path); err != nil {
			return errtrace.Errorf("%v: %w", path, err)
		}
	}
	return nil
}

func (g *Generator) logger() *log.Logger {
	if g.Log == nil {
		return log.New(io.Discard)
	}
	return g.Log
}

func (g *Generator) generateFile(path string) (err error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return errtrace.Wrap(err)
	}

	fm, body, err := markdown.SplitFrontMatter(src)
	if err != nil {
		return errtrace.Wrap(err)
	}

	logger := g.logger()
	body, err = liquid.Expand(body, func(inv *liquid.Invocation) (string, error) {
		logger.Debug("Rendering code block", "file", path, "line", inv.Line, "options", inv.Options)
		return g.Highlighter.Render(options.Parse(inv.Options), inv.Body)
	})
	if err != nil {
		return errtrace.Wrap(err)
	}

	var buff bytes.Buffer
	if err := g.Markdown.Convert(body, &buff); err != nil {
		return errtrace.Errorf("convert: %w", err)
	}

	if err := os.MkdirAll(g.OutDir, 0o1755); err != nil {
		return errtrace.Wrap(err)
	}

	outPath := filepath.Join(g.OutDir, pageName(path))
	logger.Info("Rendering page", "path", outPath)

	f, err := os.Create(outPath)
	if err != nil {
		return errtrace.Wrap(err)
	}
	defer errdefer.Close(&err, f)

	page := html.Page{
		Title: fm.Title,
		Date:  fm.Date,
		Tags:  fm.Tags,
		Body:  template.HTML(buff.String()),
	}
	if err := g.Renderer.RenderPage(f, &page); err != nil {
		return errtrace.Errorf("render: %w", err)
	}
	return nil
}

// pageName is the name of the page generated for the given post.
//
//	posts/hello-world.md => hello-world.html
func pageName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base)) + ".html"
}

// writeCSS writes the highlighter's stylesheet
// to the destination picked by the -css flag.
func writeCSS(hl *highlight.Highlighter, dest *flagvalue.FileSwitch, fallback io.Writer) (err error) {
	w, done, err := dest.Create(fallback)
	if err != nil {
		return errtrace.Wrap(err)
	}
	defer errdefer.Run(&err, done)

	return errtrace.Wrap(hl.WriteCSS(w))
}
