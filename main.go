// codetag renders blog posts containing code block tags into HTML.
//
// Each input file may begin with YAML front matter,
// may contain {% code %} tags,
// and is otherwise Markdown.
// See 'codetag -h options' for the option syntax of code blocks.
package main

import (
	"errors"
	"io"
	"os"

	"braces.dev/errtrace"
	"github.com/charmbracelet/log"
	"github.com/christopher-b/cbennell.com/internal/highlight"
	"github.com/christopher-b/cbennell.com/internal/html"
	"github.com/christopher-b/cbennell.com/internal/markdown"
	"github.com/christopher-b/cbennell.com/internal/touch"
)

func main() {
	cmd := mainCmd{
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
	os.Exit(cmd.Run(os.Args[1:]))
}

// mainCmd is the actual entry point to the program.
type mainCmd struct {
	Stdout io.Writer // == os.Stdout
	Stderr io.Writer // == os.Stderr

	log *log.Logger
}

func (cmd *mainCmd) Run(args []string) (exitCode int) {
	cmd.log = log.NewWithOptions(cmd.Stderr, log.Options{
		Prefix: "codetag",
	})

	opts, err := (&cliParser{
		Stdout: cmd.Stdout,
		Stderr: cmd.Stderr,
	}).Parse(args)
	if err != nil {
		// '$cmd -h' should exit with zero.
		if errors.Is(err, errHelp) {
			return 0
		}
		// No need to print anything.
		// Parse prints messages.
		return 1
	}

	if opts.Debug {
		cmd.log.SetLevel(log.DebugLevel)
	}

	if err := cmd.run(opts); err != nil {
		cmd.log.Error(err)
		return 1
	}
	return 0
}

func (cmd *mainCmd) run(opts *params) error {
	style, ok := highlight.LookupStyle(opts.Style)
	if !ok {
		return errtrace.Errorf("unknown style %q", opts.Style)
	}
	hl := &highlight.Highlighter{Style: style}

	if len(opts.Touch) > 0 {
		toucher := touch.Toucher{Log: cmd.log}
		if err := toucher.Touch(paths(opts.Touch)...); err != nil {
			return errtrace.Wrap(err)
		}
	}

	if opts.CSS.Bool() {
		if err := writeCSS(hl, &opts.CSS, cmd.Stdout); err != nil {
			return errtrace.Errorf("write stylesheet: %w", err)
		}
	}

	gen := Generator{
		Log:         cmd.log,
		Highlighter: hl,
		Markdown:    markdown.New(hl),
		Renderer: &html.Renderer{
			Embedded:    opts.Embed,
			Highlighter: hl,
		},
		OutDir: opts.OutputDir,
	}
	return errtrace.Wrap(gen.Generate(opts.Files))
}
