package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds everything that may be set by flag or config file.
type Config struct {
	Trace        bool   `yaml:"trace"`
	DumpTokens   bool   `yaml:"dump_tokens"`
	DumpAST      bool   `yaml:"dump_ast"`
	DumpState    bool   `yaml:"dump_state"`
	Newline      string `yaml:"newline"`
	MaxCallDepth int    `yaml:"max_call_depth"`
}

var defaultConfig = Config{Newline: "auto"}

// LoadConfig reads a YAML config file over the defaults; unknown keys are an
// error.
func LoadConfig(path string) (Config, error) {
	cfg := defaultConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("config %v: %w", path, err)
	}
	return cfg, cfg.validate()
}

func (cfg Config) validate() error {
	switch cfg.Newline {
	case "auto", "always", "never":
		return nil
	}
	return fmt.Errorf("invalid newline mode %q, want auto, always or never", cfg.Newline)
}

// trailingNewline decides whether to end unterminated output with a newline.
func (cfg Config) trailingNewline(terminal bool) bool {
	switch cfg.Newline {
	case "always":
		return true
	case "auto":
		return terminal
	}
	return false
}

// parseArgs parses command line flags, layered over any -config file; flags
// given explicitly win. It returns the remaining arguments as source names.
func parseArgs(name string, args []string, stderr io.Writer) (Config, []string, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: %v [flags] [FILE ...]\n\n", name)
		fmt.Fprintf(stderr, "Runs each FILE in turn, sharing one runtime; - or no FILE reads stdin.\n\n")
		fs.PrintDefaults()
	}

	var configPath string
	flagCfg := defaultConfig
	fs.StringVar(&configPath, "config", "", "read settings from a YAML file")
	fs.BoolVar(&flagCfg.Trace, "trace", false, "enable trace logging")
	fs.BoolVar(&flagCfg.DumpTokens, "dump-tokens", false, "dump tokens to stderr before running")
	fs.BoolVar(&flagCfg.DumpAST, "dump-ast", false, "dump the parse tree as YAML to stderr before running")
	fs.BoolVar(&flagCfg.DumpState, "dump-state", false, "dump the stack and dictionary to stderr after running")
	fs.StringVar(&flagCfg.Newline, "newline", flagCfg.Newline, "end unterminated output with a newline: auto (if a terminal), always or never")
	fs.IntVar(&flagCfg.MaxCallDepth, "max-call-depth", 0, "limit nested word calls (default 10000, at most 100000)")
	if err := fs.Parse(args); err != nil {
		return flagCfg, nil, err
	}

	cfg := flagCfg
	if configPath != "" {
		fileCfg, err := LoadConfig(configPath)
		if err != nil {
			return cfg, nil, err
		}
		cfg = fileCfg
		fs.Visit(func(f *flag.Flag) {
			switch f.Name {
			case "trace":
				cfg.Trace = flagCfg.Trace
			case "dump-tokens":
				cfg.DumpTokens = flagCfg.DumpTokens
			case "dump-ast":
				cfg.DumpAST = flagCfg.DumpAST
			case "dump-state":
				cfg.DumpState = flagCfg.DumpState
			case "newline":
				cfg.Newline = flagCfg.Newline
			case "max-call-depth":
				cfg.MaxCallDepth = flagCfg.MaxCallDepth
			}
		})
	}
	return cfg, fs.Args(), cfg.validate()
}
