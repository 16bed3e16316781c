package markdown

import (
	"bytes"

	"braces.dev/errtrace"
	"gopkg.in/yaml.v3"
)

var _delim = []byte("---")

// FrontMatter is the YAML header of a page.
type FrontMatter struct {
	Title  string   `yaml:"title"`
	Layout string   `yaml:"layout"`
	Date   string   `yaml:"date"`
	Tags   []string `yaml:"tags"`
}

// SplitFrontMatter separates a leading YAML front matter block
// from the rest of a document.
//
// The block must start on the first line with "---"
// and end with a line containing only "---".
// Documents without front matter are returned unchanged.
func SplitFrontMatter(src []byte) (FrontMatter, []byte, error) {
	var fm FrontMatter

	first, rest, ok := cutLine(src)
	if !ok || !bytes.Equal(bytes.TrimRight(first, " \t\r"), _delim) {
		return fm, src, nil
	}

	var header []byte
	for len(rest) > 0 {
		var line []byte
		line, rest, _ = cutLine(rest)
		if bytes.Equal(bytes.TrimRight(line, " \t\r"), _delim) {
			if err := yaml.Unmarshal(header, &fm); err != nil {
				return fm, nil, errtrace.Errorf("front matter: %w", err)
			}
			return fm, rest, nil
		}
		header = append(header, line...)
		header = append(header, '\n')
	}

	// Never closed: not front matter after all.
	return FrontMatter{}, src, nil
}

// cutLine splits off the first line of src without its newline.
// ok is false if src is empty.
func cutLine(src []byte) (line, rest []byte, ok bool) {
	if len(src) == 0 {
		return nil, nil, false
	}
	line, rest, _ = bytes.Cut(src, []byte("\n"))
	return line, rest, true
}
