// Package html renders blog pages around converted post bodies.
package html

import (
	"bytes"
	"embed"
	"html/template"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"

	"braces.dev/errtrace"
	"github.com/christopher-b/cbennell.com/internal/highlight"
)

const _staticDir = "_"

var (
	//go:embed tmpl/*.html
	_tmplFS embed.FS

	//go:embed static/**
	_staticFS embed.FS

	// Unusable function references at parse time,
	// and then Clone and replace at render time.
	// This way, template validity is still
	// verified at init.
	_pageTmpl = template.Must(
		template.New("page.html").
			Funcs((*render)(nil).FuncMap()).
			ParseFS(_tmplFS, "tmpl/page.html", "tmpl/layout.html"),
	)
)

// Highlighter provides the stylesheet for rendered code blocks.
type Highlighter interface {
	WriteCSS(io.Writer) error
}

var _ Highlighter = (*highlight.Highlighter)(nil)

// Renderer renders pages into HTML.
type Renderer struct {
	// Path from rendered pages to the root of the generated site.
	Home string

	// Whether we're in embedded mode.
	// In this mode, output will only contain the page body
	// and will not generate complete, stylized HTML pages.
	Embedded bool

	// Highlighter supplies the code block stylesheet.
	Highlighter Highlighter
}

func (r *Renderer) templateName() string {
	if r.Embedded {
		return "Body"
	}
	return "Page"
}

// WriteStatic dumps the contents of static/ into the given directory,
// followed by the highlighter's stylesheet.
//
// This is a no-op if the renderer is running in embedded mode.
func (r *Renderer) WriteStatic(dir string) error {
	if r.Embedded {
		return nil
	}

	dir = filepath.Join(dir, _staticDir)
	static, err := fs.Sub(_staticFS, "static")
	if err != nil {
		return errtrace.Wrap(err)
	}
	return errtrace.Wrap(fs.WalkDir(static, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil || path == "." {
			return err
		}

		outPath := filepath.Join(dir, path)
		if d.IsDir() {
			return os.MkdirAll(outPath, 0o1755)
		}

		bs, err := fs.ReadFile(static, path)
		if err != nil {
			return err
		}

		if path == "css/code.css" && r.Highlighter != nil {
			buff := bytes.NewBuffer(bs)
			buff.WriteString("\n")
			if err := r.Highlighter.WriteCSS(buff); err != nil {
				return err
			}
			bs = buff.Bytes()
		}

		return os.WriteFile(outPath, bs, 0o644)
	}))
}

// Page is a single rendered post.
type Page struct {
	// Title of the page, if any.
	Title string

	// Date the post was published, as written in its front matter.
	Date string

	Tags []string

	// Body is the converted post.
	Body template.HTML
}

// RenderPage renders a complete page,
// or in embedded mode, only its body.
func (r *Renderer) RenderPage(w io.Writer, p *Page) error {
	render := render{Home: r.Home}
	return errtrace.Wrap(template.Must(_pageTmpl.Clone()).
		Funcs(render.FuncMap()).
		ExecuteTemplate(w, r.templateName(), p))
}

type render struct {
	Home string
}

func (r *render) FuncMap() template.FuncMap {
	return template.FuncMap{
		"static": r.static,
	}
}

func (r *render) static(p string) string {
	return path.Join(r.Home, _staticDir, p)
}
