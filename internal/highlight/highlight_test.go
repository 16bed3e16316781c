package highlight

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/andybalholm/cascadia"
	chroma "github.com/alecthomas/chroma/v2"
	"github.com/christopher-b/cbennell.com/internal/options"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

func TestHighlighter_Render(t *testing.T) {
	t.Parallel()

	var h Highlighter
	got, err := h.Render(options.Parse(`text caption="demo"`), "a\nb\nc")
	require.NoError(t, err)

	want := `<figure class="highlight not-prose">` +
		`<figcaption>demo</figcaption>` +
		`<pre><code>` +
		`<table class="rouge-table"><tbody><tr>` +
		`<td class="gutter gl"><pre class="lineno">1` + "\n" + `2` + "\n" + `3` + "\n" + `</pre></td>` +
		`<td class="code"><pre>` +
		`<span class="line">a</span>` + "\n" +
		`<span class="line">b</span>` + "\n" +
		`<span class="line">c</span>` +
		`</pre></td>` +
		`</tr></tbody></table>` +
		`</code></pre></figure>`
	assert.Equal(t, want, got)
	assert.NotContains(t, got, "hll")
}

func TestHighlighter_Render_markup(t *testing.T) {
	t.Parallel()

	tests := []struct {
		desc string
		opts string
		code string

		wantGutter  string
		wantCaption string
		wantLines   []string // text of each code line
		wantHLL     []string // text of emphasized lines
	}{
		{
			desc:       "no options",
			code:       "x := 1",
			wantGutter: "1\n",
			wantLines:  []string{"x := 1"},
		},
		{
			desc:       "surrounding blank lines",
			opts:       "text",
			code:       "\n\r\n\nfoo\nbar\n\n\r\n",
			wantGutter: "1\n2\n",
			wantLines:  []string{"foo", "bar"},
		},
		{
			desc:       "inner blank lines",
			opts:       "text",
			code:       "foo\n\n\nbar",
			wantGutter: "1\n2\n3\n4\n",
			wantLines:  []string{"foo", "", "", "bar"},
		},
		{
			desc:       "crlf",
			opts:       "text",
			code:       "foo\r\nbar\r\n",
			wantGutter: "1\n2\n",
			wantLines:  []string{"foo", "bar"},
		},
		{
			desc:        "highlighted lines",
			opts:        `text caption="Lines" highlight=[1,3-4]`,
			code:        "a\nb\nc\nd\ne",
			wantGutter:  "1\n2\n3\n4\n5\n",
			wantCaption: "Lines",
			wantLines:   []string{"a", "b", "c", "d", "e"},
			wantHLL:     []string{"a", "c", "d"},
		},
		{
			desc:       "highlight out of range",
			opts:       "text highlight=[0,7]",
			code:       "a\nb",
			wantGutter: "1\n2\n",
			wantLines:  []string{"a", "b"},
		},
		{
			desc:       "inverted range",
			opts:       "text highlight=[9-5]",
			code:       "a\nb",
			wantGutter: "1\n2\n",
			wantLines:  []string{"a", "b"},
		},
		{
			desc:        "caption is escaped",
			opts:        `text caption="<b>bold</b>"`,
			code:        "a",
			wantGutter:  "1\n",
			wantCaption: "<b>bold</b>",
			wantLines:   []string{"a"},
		},
		{
			desc:        "special characters",
			opts:        "text",
			code:        "a < b && c > d",
			wantGutter:  "1\n",
			wantCaption: "",
			wantLines:   []string{"a < b && c > d"},
		},
		{
			desc: "empty",
			opts: "go",
			code: "\n\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			t.Parallel()

			var h Highlighter
			got, err := h.Render(options.Parse(tt.opts), tt.code)
			require.NoError(t, err)

			doc, err := html.Parse(strings.NewReader(got))
			require.NoError(t, err, "invalid HTML:\n%v", got)

			caption := cascadia.MustCompile("figure > figcaption").MatchFirst(doc)
			require.NotNil(t, caption, "figcaption:\n%v", got)
			assert.Equal(t, tt.wantCaption, allText(caption), "caption")

			gutter := cascadia.MustCompile("td.gutter > pre.lineno").MatchFirst(doc)
			require.NotNil(t, gutter, "gutter:\n%v", got)
			assert.Equal(t, tt.wantGutter, allText(gutter), "gutter")

			var lines []string
			for _, n := range cascadia.QueryAll(doc, cascadia.MustCompile("td.code span.line")) {
				lines = append(lines, allText(n))
			}
			assert.Equal(t, tt.wantLines, lines, "lines")

			var hll []string
			for _, n := range cascadia.QueryAll(doc, cascadia.MustCompile("td.code span.hll")) {
				hll = append(hll, allText(n))
			}
			assert.Equal(t, tt.wantHLL, hll, "highlighted lines")
		})
	}
}

func TestHighlighter_Render_syntax(t *testing.T) {
	t.Parallel()

	var h Highlighter
	got, err := h.Render(options.Parse("go"), "func foo() {}")
	require.NoError(t, err)
	assert.Contains(t, got, `<span class="kd">func</span>`)
	assert.Contains(t, got, `<span class="nf">foo</span>`)
}

func TestHighlighter_Render_unknownLanguage(t *testing.T) {
	t.Parallel()

	const code = "def foo\n  42\nend"

	var h Highlighter
	unknown, err := h.Render(options.Parse("lang=qwxyz123"), code)
	require.NoError(t, err)

	plain, err := h.Render(options.Parse("text"), code)
	require.NoError(t, err)

	assert.Equal(t, plain, unknown)
	assert.Contains(t, unknown, `<span class="line">def foo</span>`)
}

func TestHighlighter_Render_idempotent(t *testing.T) {
	t.Parallel()

	opts := options.Parse(`go caption="main.go" highlight=[2]`)
	const code = "package main\n\nfunc main() {\n}\n"

	var h Highlighter
	first, err := h.Render(opts, code)
	require.NoError(t, err)
	second, err := h.Render(opts, code)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestHighlighter_Render_lexerError(t *testing.T) {
	t.Parallel()

	giveErr := errors.New("great sadness")
	h := Highlighter{
		Registry: stubRegistry{
			"broken": &stubLexer{err: giveErr},
		},
	}

	_, err := h.Render(options.Parse("broken"), "foo")
	assert.ErrorIs(t, err, giveErr)
}

func TestHighlighter_Render_stubLexer(t *testing.T) {
	t.Parallel()

	h := Highlighter{
		Registry: stubRegistry{
			"stub": &stubLexer{
				tokens: []chroma.Token{
					{Type: chroma.Keyword, Value: "if"},
					{Type: chroma.Text, Value: " x\n"},
					{Type: chroma.Comment, Value: "# y"},
				},
			},
		},
	}

	got, err := h.Render(options.Parse("stub highlight=[2]"), "ignored")
	require.NoError(t, err)
	assert.Contains(t, got, `<span class="line"><span class="k">if</span> x</span>`+"\n")
	assert.Contains(t, got, `<span class="line hll"><span class="c"># y</span></span></pre>`)
}

func TestHighlighter_WriteCSS(t *testing.T) {
	t.Parallel()

	var buff bytes.Buffer
	require.NoError(t, new(Highlighter).WriteCSS(&buff))
	assert.Contains(t, buff.String(), ".chroma")
}

func TestTrimCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		give string
		want string
	}{
		{give: "", want: ""},
		{give: "\n\n", want: ""},
		{give: "foo", want: "foo"},
		{give: "\r\nfoo\r\n", want: "foo"},
		{give: "\n\nfoo\n\nbar\n\n", want: "foo\n\nbar"},
		{give: "  foo  \n", want: "  foo  "},
		{give: "\n  \nfoo", want: "  \nfoo"},
		{give: "a\rb", want: "a\nb"},
		{give: "a\r\n\rb\r", want: "a\n\nb"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, TrimCode(tt.give), "TrimCode(%q)", tt.give)
	}
}

func TestHighlighter_Render_loneCR(t *testing.T) {
	t.Parallel()

	var h Highlighter
	got, err := h.Render(options.Parse("text"), "a\rb")
	require.NoError(t, err)
	assert.Contains(t, got, `<pre class="lineno">1`+"\n"+`2`+"\n"+`</pre>`)
	assert.NotContains(t, got, "\r")
}

type stubLexer struct {
	tokens []chroma.Token
	err    error
}

func (l *stubLexer) Lex([]byte) ([]chroma.Token, error) {
	return l.tokens, l.err
}

type stubRegistry map[string]Lexer

func (r stubRegistry) Lookup(name string) Lexer {
	return r[name]
}

func allText(n *html.Node) string {
	var sb strings.Builder
	var visit func(*html.Node)
	visit = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			visit(c)
		}
	}
	visit(n)
	return sb.String()
}
