package highlight

import (
	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/styles"
)

// PlainStyle is a minimal syntax highlighting style for Chroma.
// It leaves most text as-is, fades comments ever so slightly,
// and tints emphasized lines.
var PlainStyle = chroma.MustNewStyle("plain", map[chroma.TokenType]string{
	chroma.Comment:       "#666666",
	chroma.PreWrapper:    "bg:#eeeeee",
	chroma.Background:    "bg:#eeeeee",
	chroma.LineHighlight: "bg:#e2e2c8",
	chroma.LineNumbers:   "#999999",
})

func init() {
	styles.Register(PlainStyle)
}

// LookupStyle returns the registered Chroma style with the given name.
// It reports false if there's no such style.
func LookupStyle(name string) (*chroma.Style, bool) {
	s, ok := styles.Registry[name]
	return s, ok
}
