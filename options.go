package infcounter

import (
	"io"
	"os"

	"github.com/inconshreveable/log15"
	"k8s.io/utils/clock"
)

type settings struct {
	l           log15.Logger
	clock       clock.Clock
	out         io.Writer
	announceDir string
}

func newSettings(opts []Option) *settings {
	noopLogger := log15.New()
	noopLogger.SetHandler(log15.DiscardHandler())
	s := &settings{
		l:     noopLogger,
		clock: clock.RealClock{},
		out:   os.Stdout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Option configures a Counter or a Controller. Options that don't apply to
// the component they're passed to are ignored.
// See Rob Pike's post on the topic for more information on this pattern:
// https://commandcenter.blogspot.com/2014/01/self-referential-functions-and-design.html
type Option func(s *settings)

// WithLogger configures the logger to use.
// By default, nothing will be logged.
func WithLogger(l log15.Logger) Option {
	return func(s *settings) {
		s.l = l
	}
}

// WithClock replaces the clock a Counter ticks on.
func WithClock(c clock.Clock) Option {
	return func(s *settings) {
		s.clock = c
	}
}

// WithOutput sets where a Counter writes its tick lines. Defaults to stdout.
func WithOutput(w io.Writer) Option {
	return func(s *settings) {
		s.out = w
	}
}

// WithAnnounceDir enables announcing. A Counter publishes itself in dir for as
// long as it runs, and a Controller lists the counters it finds there before
// asking for pids. An empty dir disables announcing.
func WithAnnounceDir(dir string) Option {
	return func(s *settings) {
		s.announceDir = dir
	}
}
