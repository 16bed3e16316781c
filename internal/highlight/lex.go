package highlight

import (
	chroma "github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/go-enry/go-enry/v2"
)

// PlainText is a [Lexer] that doesn't recognize any syntax.
// It's used when a language is unknown.
var PlainText Lexer = &chromaLexer{l: lexers.Fallback}

// Lexer analyzes source code and generates a stream of tokens.
type Lexer interface {
	Lex(src []byte) ([]chroma.Token, error)
}

// chromaLexer builds a [Lexer] from a Chroma lexer.
type chromaLexer struct{ l chroma.Lexer }

// Lex lexically analyzes the given source code using Chroma.
func (cl *chromaLexer) Lex(src []byte) ([]chroma.Token, error) {
	return chroma.Tokenise(cl.l, nil, string(src))
}

// Registry finds lexers by language name.
type Registry interface {
	// Lookup returns the lexer for the given language,
	// or nil if the language isn't known.
	Lookup(name string) Lexer
}

// ChromaRegistry is a [Registry] backed by Chroma's lexers.
//
// Names are matched against Chroma's lexer names, aliases,
// and filename patterns.
// Names Chroma doesn't know are resolved as language aliases
// with go-enry, and the canonical language name is tried again.
type ChromaRegistry struct {
	// ResolveAlias maps an alias to a canonical language name.
	// Defaults to enry.GetLanguageByAlias.
	ResolveAlias func(alias string) (lang string, ok bool)
}

var _ Registry = (*ChromaRegistry)(nil)

// Lookup returns a Chroma lexer for the given language name.
func (r *ChromaRegistry) Lookup(name string) Lexer {
	if len(name) == 0 {
		return nil
	}

	l := lexers.Get(name)
	if l == nil {
		resolve := r.ResolveAlias
		if resolve == nil {
			resolve = enry.GetLanguageByAlias
		}
		if lang, ok := resolve(name); ok {
			l = lexers.Get(lang)
		}
	}
	if l == nil {
		return nil
	}
	return &chromaLexer{l: chroma.Coalesce(l)}
}

// LookupLexer finds the lexer for the given language in the registry.
// It never returns nil: unknown languages get [PlainText].
func LookupLexer(r Registry, name string) Lexer {
	if l := r.Lookup(name); l != nil {
		return l
	}
	return PlainText
}
