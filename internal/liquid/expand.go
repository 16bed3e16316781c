// Package liquid finds code block tags in a document
// and replaces them with rendered HTML.
//
// A code block tag looks like this:
//
//	{% code ruby caption="Example" highlight=[2] %}
//	def hello
//	  puts "hello"
//	end
//	{% endcode %}
//
// Everything between "code" and "%}" is the option string.
// Whitespace control markers ({%- and -%}) are honored
// on the outside of the tag pair.
package liquid

import (
	"bytes"
	"regexp"
	"strings"

	"braces.dev/errtrace"
)

var (
	_openRe  = regexp.MustCompile(`\{%(-?)\s*code\b(.*?)-?%\}`)
	_closeRe = regexp.MustCompile(`\{%-?\s*endcode\s*(-?)%\}`)
)

// Invocation is a single code block tag found in a document.
type Invocation struct {
	// Options is the raw option string of the opening tag.
	Options string

	// Body is the text between the opening and closing tags.
	Body string

	// Line is the 1-based line of the opening tag.
	Line int

	// Byte offsets of the whole tag pair in the document.
	start, end int

	// Whitespace control on the outside of the tag pair.
	trimBefore, trimAfter bool
}

// Scan returns all code block tags in src, in order.
//
// It fails if an opening tag has no matching closing tag.
func Scan(src []byte) ([]*Invocation, error) {
	var (
		invs []*Invocation
		pos  int
	)
	for {
		open := _openRe.FindSubmatchIndex(src[pos:])
		if open == nil {
			break
		}
		for i := range open {
			if open[i] >= 0 {
				open[i] += pos
			}
		}

		line := bytes.Count(src[:open[0]], []byte("\n")) + 1
		closing := _closeRe.FindSubmatchIndex(src[open[1]:])
		if closing == nil {
			return nil, errtrace.Errorf("line %d: code tag is never closed", line)
		}
		for i := range closing {
			if closing[i] >= 0 {
				closing[i] += open[1]
			}
		}

		invs = append(invs, &Invocation{
			Options:    strings.TrimSpace(string(src[open[4]:open[5]])),
			Body:       string(src[open[1]:closing[0]]),
			Line:       line,
			start:      open[0],
			end:        closing[1],
			trimBefore: open[3] > open[2],
			trimAfter:  closing[3] > closing[2],
		})
		pos = closing[1]
	}
	return invs, nil
}

// RenderFunc renders a single code block tag into HTML.
type RenderFunc func(*Invocation) (string, error)

// Expand replaces every code block tag in src
// with the output of render for it.
// Text outside of tags is copied as-is.
func Expand(src []byte, render RenderFunc) ([]byte, error) {
	invs, err := Scan(src)
	if err != nil {
		return nil, errtrace.Wrap(err)
	}
	if len(invs) == 0 {
		return src, nil
	}

	var (
		out  bytes.Buffer
		last int
	)
	for _, inv := range invs {
		before := src[last:inv.start]
		if inv.trimBefore {
			before = bytes.TrimRight(before, " \t\r\n")
		}
		out.Write(before)

		html, err := render(inv)
		if err != nil {
			return nil, errtrace.Errorf("line %d: %w", inv.Line, err)
		}
		out.WriteString(html)

		last = inv.end
		if inv.trimAfter {
			for last < len(src) && strings.IndexByte(" \t\r\n", src[last]) >= 0 {
				last++
			}
		}
	}
	out.Write(src[last:])
	return out.Bytes(), nil
}
