package main

import (
	"errors"
	"flag"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/jcorbin/stacky"
	"github.com/jcorbin/stacky/internal/fileinput"
	"github.com/jcorbin/stacky/internal/logio"
	"github.com/jcorbin/stacky/internal/sink"
)

func main() {
	log := logio.New(os.Stderr)
	cfg, names, err := parseArgs(filepath.Base(os.Args[0]), os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return
	} else if err != nil {
		log.Errorf("%v", err)
		os.Exit(2)
	}
	newline := cfg.trailingNewline(logio.IsTerminal(os.Stdout))
	os.Exit(run(cfg, names, os.Stdout, newline, log, os.Stderr))
}

// run executes each named source in one runtime, stopping at the first
// failure, and returns the process exit code.
func run(cfg Config, names []string, stdout io.Writer, newline bool, log *logio.Logger, dumps io.Writer) int {
	if len(names) == 0 {
		names = []string{"-"}
	}

	out := sink.Count(sink.New(stdout))
	opts := []stacky.Option{
		stacky.WithOutput(out),
		stacky.WithMaxCallDepth(cfg.MaxCallDepth),
	}
	if cfg.Trace {
		opts = append(opts, stacky.WithLogf(log.Taggedf("TRACE", uuid.NewString())))
	}
	rt := stacky.New(opts...)

	for _, name := range names {
		if err := runSource(cfg, rt, name, log, dumps); err != nil {
			reportError(cfg, log, err)
			break
		}
	}

	if cfg.DumpState {
		log.ErrorIf(rt.Dump(dumps))
	}
	if newline && !out.EndsLine() {
		_, err := io.WriteString(out, "\n")
		log.ErrorIf(err)
	}
	log.ErrorIf(out.Flush())
	return log.ExitCode()
}

func runSource(cfg Config, rt *stacky.Stacky, name string, log *logio.Logger, dumps io.Writer) error {
	src, err := fileinput.Open(name)
	if err != nil {
		return err
	}

	toks, err := stacky.Lex(src.Text)
	if err != nil {
		return src.Locate(err)
	}
	if cfg.DumpTokens {
		log.Printf("", "# Tokens %v", src.Name)
		if err := stacky.DumpTokens(dumps, toks); err != nil {
			return err
		}
	}

	prog, err := stacky.Parse(toks)
	if err != nil {
		return src.Locate(err)
	}
	if cfg.DumpAST {
		log.Printf("", "# AST %v", src.Name)
		if err := stacky.DumpAST(dumps, prog); err != nil {
			return err
		}
	}

	return src.Locate(rt.Run(prog))
}

func reportError(cfg Config, log *logio.Logger, err error) {
	log.Errorf("%v", err)
	var le *fileinput.Error
	if errors.As(err, &le) {
		if ctx := le.Context(); ctx != "" {
			log.Printf("", "%s", ctx)
		}
	}
	if stack := stacky.PanicStack(err); stack != "" && cfg.Trace {
		log.Printf("TRACE", "panic stack: %s", stack)
	}
}
