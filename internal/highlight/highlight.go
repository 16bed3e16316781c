package highlight

import (
	"io"
	"regexp"
	"strings"
	"sync"

	"braces.dev/errtrace"
	chroma "github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/christopher-b/cbennell.com/internal/options"
)

// Highlighter turns code blocks into HTML.
//
// A Highlighter is safe for concurrent use
// once its fields are set.
type Highlighter struct {
	// Style used for syntax highlighting of code.
	// Defaults to PlainStyle.
	Style *chroma.Style

	// Registry finds lexers by language name.
	// Defaults to a ChromaRegistry.
	Registry Registry

	once      sync.Once
	formatter *chromahtml.Formatter
	style     *chroma.Style
	registry  Registry
}

func (h *Highlighter) init() {
	h.once.Do(func() {
		h.formatter = chromahtml.New(
			chromahtml.PreventSurroundingPre(true),
			chromahtml.WithClasses(true),
		)

		h.style = h.Style
		if h.style == nil {
			h.style = PlainStyle
		}

		h.registry = h.Registry
		if h.registry == nil {
			h.registry = new(ChromaRegistry)
		}
	})
}

// WriteCSS writes the style classes for this highlighter to writer.
func (h *Highlighter) WriteCSS(w io.Writer) error {
	h.init()

	return errtrace.Wrap(h.formatter.WriteCSS(w, h.style))
}

// Formatter builds the formatter chain for a code block
// with the given options.
func (h *Highlighter) Formatter(opts options.Options) Formatter {
	h.init()

	caption, _ := opts.Caption()
	return Chain(
		&tokenFormatter{fmt: h.formatter, style: h.style},
		HighlightLines(opts.Lines()),
		Chomp,
		Table,
		Wrap(caption),
	)
}

// Render renders a code block into HTML.
//
// The language in opts picks the lexer.
// Unknown or missing languages are rendered as plain text.
// Leading and trailing line breaks are removed from code.
//
// Render only fails if the lexer fails.
func (h *Highlighter) Render(opts options.Options, code string) (string, error) {
	h.init()

	// Lexers may append a newline to empty input,
	// which would render a phantom blank line.
	var tokens []chroma.Token
	if src := TrimCode(code); len(src) > 0 {
		var err error
		tokens, err = LookupLexer(h.registry, opts.Lang()).Lex([]byte(src))
		if err != nil {
			return "", errtrace.Wrap(err)
		}
	}

	var sb strings.Builder
	if err := h.Formatter(opts).Format(&sb, tokens); err != nil {
		return "", errtrace.Wrap(err)
	}
	return sb.String(), nil
}

var _lineBreaksRe = regexp.MustCompile(`\A[\r\n]+|[\r\n]+\z`)

// TrimCode strips runs of line breaks
// from the start and end of a code block,
// and normalizes CRLF and lone CR line endings to LF.
// Blank lines inside the block are kept.
func TrimCode(code string) string {
	code = _lineBreaksRe.ReplaceAllString(code, "")
	code = strings.ReplaceAll(code, "\r\n", "\n")
	return strings.ReplaceAll(code, "\r", "\n")
}
