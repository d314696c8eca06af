// Package sink provides the flushable writers that program output goes
// through.
package sink

import "io"

// Sink is a flush-able io.Writer.
type Sink interface {
	io.Writer
	Flush() error
}

var discard Sink = nopFlusher{io.Discard}

// New creates a new sink around w, which sees every write as it happens: a w
// that's already a Sink is returned as is, anything else gets a noop Flush.
func New(w io.Writer) Sink {
	if w == nil || w == io.Discard {
		return discard
	}
	if s, is := w.(Sink); is {
		return s
	}
	return nopFlusher{w}
}

type nopFlusher struct{ io.Writer }

func (nf nopFlusher) Flush() error { return nil }

// Tee combines any number of sinks into a single one that writes into and
// flushes all of them.
func Tee(ss ...Sink) Sink {
	switch ss := appendSinks(nil, ss...); len(ss) {
	case 0:
		return discard
	case 1:
		return ss[0]
	default:
		return ss
	}
}

type tee []Sink

func (t tee) Write(p []byte) (n int, err error) {
	for _, s := range t {
		n, err = s.Write(p)
		if err != nil {
			return n, err
		}
		if n != len(p) {
			return n, io.ErrShortWrite
		}
	}
	return len(p), nil
}

func (t tee) Flush() (err error) {
	for _, s := range t {
		if ferr := s.Flush(); err == nil {
			err = ferr
		}
	}
	return err
}

func appendSinks(all tee, some ...Sink) tee {
	for _, one := range some {
		if many, ok := one.(tee); ok {
			all = append(all, many...)
		} else if one != nil {
			all = append(all, one)
		}
	}
	return all
}

// Counter is a Sink that remembers how much was written through it and the
// last byte written.
type Counter struct {
	Sink
	N    int64
	Last byte
}

// Count wraps s in a Counter.
func Count(s Sink) *Counter { return &Counter{Sink: s} }

func (c *Counter) Write(p []byte) (int, error) {
	n, err := c.Sink.Write(p)
	if n > 0 {
		c.N += int64(n)
		c.Last = p[n-1]
	}
	return n, err
}

// EndsLine reports whether nothing was written or the last byte written was
// a newline.
func (c *Counter) EndsLine() bool { return c.N == 0 || c.Last == '\n' }
