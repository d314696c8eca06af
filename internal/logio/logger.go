package logio

import (
	"bytes"
	"fmt"
	"io"
	"sync"

	"github.com/mattn/go-isatty"
)

// Logger implements a leveled logging facility around an output stream.
// Level prefixes are colored when the stream is a terminal.
type Logger struct {
	sync.Mutex
	output   io.Writer
	color    bool
	buf      bytes.Buffer
	exitCode int
}

// New creates a Logger writing to out.
func New(out io.Writer) *Logger {
	var log Logger
	log.SetOutput(out)
	return &log
}

// SetOutput sets the logger's output stream.
func (log *Logger) SetOutput(out io.Writer) {
	log.Lock()
	defer log.Unlock()
	log.output = out
	log.color = IsTerminal(out)
}

// IsTerminal reports whether w is a file descriptor attached to a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(interface{ Fd() uintptr })
	if !ok {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// ExitCode returns a code to pass to os.Exit, facilitating "exit non-zero if
// any error log" semantics.
func (log *Logger) ExitCode() int {
	log.Lock()
	defer log.Unlock()
	return log.exitCode
}

// Leveledf returns a typical printf-style formatting function that logs
// messages with the given level.
func (log *Logger) Leveledf(level string) func(mess string, args ...interface{}) {
	return func(mess string, args ...interface{}) { log.Printf(level, mess, args...) }
}

// Taggedf is like Leveledf, but each message is further prefixed by a
// bracketed tag.
func (log *Logger) Taggedf(level, tag string) func(mess string, args ...interface{}) {
	prefix := "[" + tag + "] "
	return func(mess string, args ...interface{}) { log.Printf(level, prefix+mess, args...) }
}

// ErrorIf logs any non-nil error through Errorf.
func (log *Logger) ErrorIf(err error) {
	if err != nil {
		log.Errorf("%v", err)
	}
}

// Errorf is like `Printf("ERROR", ...)` but additionally retains state so that
// ExitCode() will return non-zero.
func (log *Logger) Errorf(mess string, args ...interface{}) {
	log.Lock()
	defer log.Unlock()
	log.printf("ERROR", mess, args...)
	log.exitCode = 1
}

// Printf prints a line to the output stream like "level: message...\n".
// Reports any io error as an "ERROR" level log, and retains similar state for ExitCode().
func (log *Logger) Printf(level, mess string, args ...interface{}) {
	log.Lock()
	defer log.Unlock()
	if err := log.printf(level, mess, args...); err != nil {
		log.reportError(err)
	}
}

func (log *Logger) printf(level, mess string, args ...interface{}) error {
	if level != "" {
		if code := levelColor(level); log.color && code != "" {
			fmt.Fprintf(&log.buf, "\x1b[%sm%s\x1b[0m: ", code, level)
		} else {
			log.buf.WriteString(level)
			log.buf.WriteString(": ")
		}
	}
	if len(args) > 0 {
		fmt.Fprintf(&log.buf, mess, args...)
	} else {
		log.buf.WriteString(mess)
	}
	if b := log.buf.Bytes(); len(b) > 0 && b[len(b)-1] != '\n' {
		log.buf.WriteByte('\n')
	}
	if log.output == nil {
		log.buf.Reset()
		return nil
	}
	_, err := log.buf.WriteTo(log.output)
	return err
}

func levelColor(level string) string {
	switch level {
	case "ERROR":
		return "31"
	case "WARN":
		return "33"
	case "TRACE", "DEBUG":
		return "2"
	case "INFO":
		return "36"
	}
	return ""
}

func (log *Logger) reportError(err error) {
	log.buf.Reset()
	log.printf("ERROR", "%+v", err)
	log.exitCode = 2
}
