package stacky

import (
	"io"

	"github.com/jcorbin/stacky/internal/sink"
)

// Option configures a Stacky runtime under New.
type Option interface{ apply(s *Stacky) }

// Options combines any number of options into one.
func Options(opts ...Option) Option {
	var res options
	for _, opt := range opts {
		switch impl := opt.(type) {
		case nil:
		case options:
			res = append(res, impl...)
		default:
			res = append(res, impl)
		}
	}
	if len(res) == 1 {
		return res[0]
	}
	return res
}

// WithOutput sets where program output goes; output is discarded by default.
func WithOutput(w io.Writer) Option { return outputOption{w} }

// WithTee copies program output into w, in addition to any other output.
func WithTee(w io.Writer) Option { return teeOption{w} }

// WithLogf installs a trace function, called for every executed node, every
// word definition and every fault.
func WithLogf(logfn func(mess string, args ...interface{})) Option { return withLogfn(logfn) }

// WithMaxCallDepth bounds how deeply word calls may nest; zero or less means
// the default of 10000, and depths above 100000 are clamped to 100000.
func WithMaxCallDepth(depth int) Option { return maxCallDepth(depth) }

type options []Option
type outputOption struct{ io.Writer }
type teeOption struct{ io.Writer }
type withLogfn func(mess string, args ...interface{})
type maxCallDepth int

func (opts options) apply(s *Stacky) {
	for _, opt := range opts {
		opt.apply(s)
	}
}

func (o outputOption) apply(s *Stacky) {
	if s.out != nil {
		s.out.Flush()
	}
	s.out = sink.New(o.Writer)
}

func (o teeOption) apply(s *Stacky) {
	s.out = sink.Tee(s.out, sink.New(o.Writer))
}

func (logfn withLogfn) apply(s *Stacky) {
	s.logfn = logfn
}

func (depth maxCallDepth) apply(s *Stacky) {
	s.maxDepth = int(depth)
}
