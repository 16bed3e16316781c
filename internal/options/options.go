// Package options parses the inline option string of a code tag.
//
// An option string is a single line of whitespace-separated fragments:
//
//	ruby caption="Hello World" highlight=[1,3,5-7] nowrap
//
// The first fragment names the language if it has no '='.
// Every other fragment is one of:
//
//   - key="quoted string", recorded as a string
//   - key=[1,3,5-7], recorded as a list of line numbers
//   - key=value, recorded as a string
//   - key, recorded as true
//
// Parsing never fails.
// Fragments that can't be understood are dropped.
package options

// Reserved option keys.
const (
	// KeyLang names the language of the code block.
	// It's set implicitly by a leading fragment without '='.
	KeyLang = "lang"

	// KeyCaption is displayed above the code block.
	KeyCaption = "caption"

	// KeyHighlight lists 1-based line numbers to emphasize.
	KeyHighlight = "highlight"
)

// Options is the parsed form of an option string.
//
// Values are one of:
//
//   - true, for bare flags
//   - string, for quoted and bare values
//   - []int, for bracket lists
//
// If a key appears more than once, the last occurrence wins.
type Options map[string]any

// Lang returns the language of the code block,
// or an empty string if it wasn't specified.
func (o Options) Lang() string {
	return o.String(KeyLang)
}

// Caption returns the caption for the code block.
// A caption that isn't a string, e.g. caption=[1,2], is reported as absent.
func (o Options) Caption() (string, bool) {
	s, ok := o[KeyCaption].(string)
	return s, ok
}

// Lines returns the line numbers that should be emphasized.
//
// Only the bracket list form is honored.
// highlight="1 2" and highlight=1 hold strings
// and are ignored here.
func (o Options) Lines() []int {
	lines, _ := o[KeyHighlight].([]int)
	return lines
}

// Flag reports whether the given key was passed as a bare flag.
func (o Options) Flag(key string) bool {
	b, _ := o[key].(bool)
	return b
}

// String returns the string value for the given key,
// or an empty string if the key is absent or isn't a string.
func (o Options) String(key string) string {
	s, _ := o[key].(string)
	return s
}
