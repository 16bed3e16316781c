package main

import (
	"errors"
	"flag"
	"fmt"
	"io"

	"braces.dev/errtrace"
	"github.com/christopher-b/cbennell.com/internal/flagvalue"
	"github.com/peterbourgon/ff/v3"
)

var (
	errHelp             = flag.ErrHelp
	errInvalidArguments = errors.New("invalid arguments")
)

// _envPrefix is prepended to flag names to find environment variables.
// For example, -out is also read from CODETAG_OUT.
const _envPrefix = "CODETAG"

// params holds all arguments for codetag.
type params struct {
	version bool
	help    Help
	config  string

	Debug bool

	OutputDir string
	Embed     bool

	Style string
	CSS   flagvalue.FileSwitch

	Touch []filePath

	Files []string
}

// cliParser parses the command line arguments for codetag.
type cliParser struct {
	Stdout io.Writer
	Stderr io.Writer
}

func (cmd *cliParser) newFlagSet() (*params, *flag.FlagSet) {
	flag := flag.NewFlagSet("codetag", flag.ContinueOnError)
	// Parse reports errors itself.
	flag.SetOutput(io.Discard)
	flag.Usage = func() {
		UsageHelp.Write(cmd.Stderr)
	}

	var p params

	// Filesystem:
	flag.StringVar(&p.OutputDir, "out", "_site", "")
	flag.Var(flagvalue.ListOf(&p.Touch), "touch", "")

	// HTML output:
	flag.BoolVar(&p.Embed, "embed", false, "")
	flag.StringVar(&p.Style, "style", "plain", "")
	flag.Var(&p.CSS, "css", "")

	// Program-level:
	flag.StringVar(&p.config, "config", "", "")
	flag.BoolVar(&p.Debug, "debug", false, "")
	flag.BoolVar(&p.version, "version", false, "")
	flag.Var(&p.help, "help", "")
	flag.Var(&p.help, "h", "")

	return &p, flag
}

func (cmd *cliParser) Parse(args []string) (*params, error) {
	p, flag := cmd.newFlagSet()
	err := ff.Parse(flag, args,
		ff.WithEnvVarPrefix(_envPrefix),
		ff.WithConfigFileFlag("config"),
		ff.WithConfigFileParser(ff.PlainParser),
	)
	if err != nil {
		fmt.Fprintln(cmd.Stderr, err)
		return nil, errtrace.Wrap(err)
	}
	args = flag.Args()

	if p.version {
		fmt.Fprintln(cmd.Stdout, "codetag", _version)
		return nil, errHelp
	}

	if p.help == DefaultHelp && len(args) > 0 {
		// The user might have done "-h foo"
		// instead of "-h=foo".
		// If the argument is a known help topic,
		// take it.
		var h Help
		if err := h.Set(args[0]); err == nil && h.Known() {
			p.help = h
		}
	}

	switch p.help {
	case NoHelp:
		// proceed as usual
	default:
		if err := p.help.Write(cmd.Stderr); err != nil {
			fmt.Fprintln(cmd.Stderr, err)
		}
		return nil, errHelp
	}

	p.Files = args
	if len(p.Files) == 0 && !p.CSS.Bool() {
		fmt.Fprintln(cmd.Stderr, "Please provide at least one file.")
		UsageHelp.Write(cmd.Stderr)
		return nil, errInvalidArguments
	}

	return p, nil
}

// filePath is a flag.Getter that holds a non-empty path.
type filePath string

// paths converts a list of filePath flags to plain strings.
func paths(fps []filePath) []string {
	out := make([]string, len(fps))
	for i, fp := range fps {
		out[i] = string(fp)
	}
	return out
}

var _ flag.Getter = (*filePath)(nil)

func (fp *filePath) Get() any { return string(*fp) }

func (fp *filePath) String() string { return string(*fp) }

func (fp *filePath) Set(s string) error {
	if len(s) == 0 {
		return errors.New("path must not be empty")
	}
	*fp = filePath(s)
	return nil
}
