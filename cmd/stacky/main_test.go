package main

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jcorbin/stacky/internal/logio"
)

func runCLI(t *testing.T, cfg Config, newline bool, names ...string) (code int, stdout, stderr string) {
	var out, errs strings.Builder
	code = run(cfg, names, &out, newline, logio.New(&errs), &errs)
	t.Logf("stdout: %q", out.String())
	t.Logf("stderr: %q", errs.String())
	return code, out.String(), errs.String()
}

func TestRun(t *testing.T) {
	defs := writeFile(t, "defs.st", ": sq DUP * ;\n")
	prog := writeFile(t, "main.st", "3 sq .\n4 sq .")

	code, stdout, stderr := runCLI(t, defaultConfig, false, defs, prog)
	assert.Equal(t, 0, code)
	assert.Equal(t, "916", stdout)
	assert.Equal(t, "", stderr)

	code, stdout, _ = runCLI(t, defaultConfig, true, defs, prog)
	assert.Equal(t, 0, code)
	assert.Equal(t, "916\n", stdout)
}

func TestRunFault(t *testing.T) {
	bad := writeFile(t, "bad.st", "1 .\n2 0 / .\n")
	never := writeFile(t, "never.st", "3 .")

	code, stdout, stderr := runCLI(t, defaultConfig, false, bad, never)
	assert.Equal(t, 1, code)
	assert.Equal(t, "1", stdout, "output before the fault remains, later files don't run")
	assert.Equal(t, "ERROR: "+bad+": runtime error in /: division by zero\n", stderr)
}

func TestRunLexFault(t *testing.T) {
	bad := writeFile(t, "bad.st", "1 2 +\n3 $ 4\n")
	code, stdout, stderr := runCLI(t, defaultConfig, false, bad)
	assert.Equal(t, 1, code)
	assert.Equal(t, "", stdout)
	assert.Equal(t, strings.Join([]string{
		"ERROR: " + bad + ": lex error at 2:3: unexpected character '$'",
		"3 $ 4",
		"  ^",
		"",
	}, "\n"), stderr)
}

func TestRunMissingFile(t *testing.T) {
	code, _, stderr := runCLI(t, defaultConfig, false, "/nonexistent/prog.st")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "ERROR: open /nonexistent/prog.st")
}

func TestRunDumps(t *testing.T) {
	prog := writeFile(t, "prog.st", `: sq DUP * ; 2 sq -> x`)
	cfg := defaultConfig
	cfg.DumpTokens = true
	cfg.DumpAST = true
	cfg.DumpState = true
	code, stdout, stderr := runCLI(t, cfg, false, prog)
	assert.Equal(t, 0, code)
	assert.Equal(t, "", stdout)
	assert.Contains(t, stderr, "# Tokens "+prog+"\n1:1\t:\t:\n")
	assert.Contains(t, stderr, "# AST "+prog+"\n- define:\n")
	assert.Contains(t, stderr, "\n- set: x\n")
	assert.True(t, strings.HasSuffix(stderr, strings.Join([]string{
		"# Stacky Dump",
		"  stack: []",
		"  dict: [sq x]",
		"    : sq DUP * ;",
		"    x = 4",
		"",
	}, "\n")), "expected state dump last")
}

func TestRunTrace(t *testing.T) {
	prog := writeFile(t, "prog.st", "1 .")
	cfg := defaultConfig
	cfg.Trace = true
	code, stdout, stderr := runCLI(t, cfg, false, prog)
	assert.Equal(t, 0, code)
	assert.Equal(t, "1", stdout)
	assert.Regexp(t, regexp.MustCompile(
		`^TRACE: \[[0-9a-f-]{36}\] exec 1 -- s:\[\] l:\[\]\n`+
			`TRACE: \[[0-9a-f-]{36}\] exec \. -- s:\[1\] l:\[\]\n$`), stderr)
}
