package highlight

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"strconv"
	"strings"

	"braces.dev/errtrace"
	chroma "github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
)

// Formatter writes HTML for a stream of tokens.
type Formatter interface {
	Format(w io.Writer, tokens []chroma.Token) error
}

// FormatterFunc is a [Formatter] implemented as a function.
type FormatterFunc func(w io.Writer, tokens []chroma.Token) error

var _ Formatter = FormatterFunc(nil)

// Format calls the function.
func (f FormatterFunc) Format(w io.Writer, tokens []chroma.Token) error {
	return f(w, tokens)
}

// Stage wraps a Formatter to post-process or decorate its output.
type Stage func(Formatter) Formatter

// Chain builds a Formatter by applying stages to base in order.
// The last stage produces the outermost markup.
func Chain(base Formatter, stages ...Stage) Formatter {
	f := base
	for _, stage := range stages {
		f = stage(f)
	}
	return f
}

// tokenFormatter renders each token as a span
// carrying Chroma's short class name for its type.
type tokenFormatter struct {
	fmt   *chromahtml.Formatter
	style *chroma.Style
}

var _ Formatter = (*tokenFormatter)(nil)

func (f *tokenFormatter) Format(w io.Writer, tokens []chroma.Token) error {
	return errtrace.Wrap(f.fmt.Format(w, f.style, chroma.Literator(tokens...)))
}

// HighlightLines renders tokens one line at a time,
// wrapping each line in a span, followed by a newline.
// Lines whose 1-based number is in lines get the "hll" class.
func HighlightLines(lines []int) Stage {
	emphasize := make(map[int]struct{}, len(lines))
	for _, n := range lines {
		emphasize[n] = struct{}{}
	}

	return func(inner Formatter) Formatter {
		return FormatterFunc(func(w io.Writer, tokens []chroma.Token) error {
			for i, line := range splitLines(tokens) {
				class := "line"
				if _, ok := emphasize[i+1]; ok {
					class = "line hll"
				}

				if _, err := fmt.Fprintf(w, `<span class=%q>`, class); err != nil {
					return errtrace.Wrap(err)
				}
				if err := inner.Format(w, line); err != nil {
					return errtrace.Wrap(err)
				}
				if _, err := io.WriteString(w, "</span>\n"); err != nil {
					return errtrace.Wrap(err)
				}
			}
			return nil
		})
	}
}

// Chomp removes a single trailing newline from the output of inner.
// Newlines elsewhere are left alone.
func Chomp(inner Formatter) Formatter {
	return FormatterFunc(func(w io.Writer, tokens []chroma.Token) error {
		var buf bytes.Buffer
		if err := inner.Format(&buf, tokens); err != nil {
			return errtrace.Wrap(err)
		}

		out := buf.Bytes()
		switch {
		case bytes.HasSuffix(out, []byte("\r\n")):
			out = out[:len(out)-2]
		case bytes.HasSuffix(out, []byte("\n")), bytes.HasSuffix(out, []byte("\r")):
			out = out[:len(out)-1]
		}

		_, err := w.Write(out)
		return errtrace.Wrap(err)
	})
}

// Table lays out the output of inner in a two-column table:
// line numbers in the gutter on the left and code on the right.
func Table(inner Formatter) Formatter {
	return FormatterFunc(func(w io.Writer, tokens []chroma.Token) error {
		var gutter strings.Builder
		for n := 1; n <= countLines(tokens); n++ {
			gutter.WriteString(strconv.Itoa(n))
			gutter.WriteByte('\n')
		}

		_, err := fmt.Fprintf(w,
			`<table class="rouge-table"><tbody><tr>`+
				`<td class="gutter gl"><pre class="lineno">%s</pre></td>`+
				`<td class="code"><pre>`,
			gutter.String())
		if err != nil {
			return errtrace.Wrap(err)
		}

		if err := inner.Format(w, tokens); err != nil {
			return errtrace.Wrap(err)
		}

		_, err = io.WriteString(w, `</pre></td></tr></tbody></table>`)
		return errtrace.Wrap(err)
	})
}

// Wrap places the output of its Formatter inside a figure
// with the given caption.
// An empty caption renders an empty figcaption.
func Wrap(caption string) Stage {
	return func(inner Formatter) Formatter {
		return FormatterFunc(func(w io.Writer, tokens []chroma.Token) error {
			_, err := fmt.Fprintf(w,
				`<figure class="highlight not-prose"><figcaption>%s</figcaption><pre><code>`,
				template.HTMLEscapeString(caption))
			if err != nil {
				return errtrace.Wrap(err)
			}

			if err := inner.Format(w, tokens); err != nil {
				return errtrace.Wrap(err)
			}

			_, err = io.WriteString(w, `</code></pre></figure>`)
			return errtrace.Wrap(err)
		})
	}
}

// splitLines splits tokens on newlines.
// The newlines themselves are dropped,
// and a trailing newline doesn't start a new line.
func splitLines(tokens []chroma.Token) [][]chroma.Token {
	var (
		lines [][]chroma.Token
		line  []chroma.Token
	)
	for _, tok := range tokens {
		value := tok.Value
		for {
			head, tail, found := strings.Cut(value, "\n")
			if len(head) > 0 {
				line = append(line, chroma.Token{Type: tok.Type, Value: head})
			}
			if !found {
				break
			}

			lines = append(lines, line)
			line = nil
			value = tail
		}
	}
	if len(line) > 0 {
		lines = append(lines, line)
	}
	return lines
}

// countLines reports the number of lines in the token stream.
// It agrees with len(splitLines(tokens)).
func countLines(tokens []chroma.Token) int {
	var n int
	var last string
	for _, tok := range tokens {
		if len(tok.Value) == 0 {
			continue
		}
		n += strings.Count(tok.Value, "\n")
		last = tok.Value
	}
	if len(last) > 0 && !strings.HasSuffix(last, "\n") {
		n++
	}
	return n
}
