// Package highlight renders code blocks into HTML.
// It uses the Chroma library to tokenize source code.
//
// Rendering happens in two parts.
// First, a [Lexer] is picked from a [Registry] by language name,
// falling back to plain text if the language isn't known.
// Second, the tokens are fed through a chain of [Formatter]s,
// each wrapping the output of the one before it:
//
//	tokens -> spans -> lines -> chomp -> table -> figure
//
// The chain is assembled with [Chain] from [Stage]s.
package highlight
