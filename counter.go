package infcounter

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync/atomic"
	"time"

	"github.com/inconshreveable/log15"
	"github.com/pkg/errors"
	"k8s.io/utils/clock"
)

// TickInterval is the time a Counter waits between two ticks.
const TickInterval = time.Second

// Direction is the sign applied to the counter on every tick.
type Direction int32

const (
	Increasing Direction = 1
	Decreasing Direction = -1
)

func (d Direction) String() string {
	if d == Decreasing {
		return "decreasing"
	}
	return "increasing"
}

// Counter ticks an integer once per TickInterval and prints it. Its value may
// be reset and its direction reversed at any time, either directly or by
// sending the process ResetSignal and ToggleSignal.
//
// value and direction are independent atomic words. Nothing orders a reset
// against a toggle, and neither is ever observed half-applied.
type Counter struct {
	value     atomic.Int64
	direction atomic.Int32
	// resetPending is set by Reset and consumed by the tick that follows it.
	resetPending atomic.Bool

	clock       clock.Clock
	out         io.Writer
	announceDir string
	l           log15.Logger

	// mocks
	os      osIface
	signals signalSource
}

// NewCounter constructs a Counter which starts at zero and counts upwards.
func NewCounter(opts ...Option) *Counter {
	return newCounter(realOS{}, realSignals{}, opts...)
}

func newCounter(os osIface, signals signalSource, opts ...Option) *Counter {
	s := newSettings(opts)
	c := &Counter{
		clock:       s.clock,
		out:         s.out,
		announceDir: s.announceDir,
		l:           s.l,
		os:          os,
		signals:     signals,
	}
	c.direction.Store(int32(Increasing))
	return c
}

// Reset sets the value to zero. The direction is left alone.
func (c *Counter) Reset() {
	c.value.Store(0)
	c.resetPending.Store(true)
}

// Toggle reverses the direction.
func (c *Counter) Toggle() {
	for {
		d := c.direction.Load()
		if c.direction.CompareAndSwap(d, -d) {
			return
		}
	}
}

func (c *Counter) Value() int64 {
	return c.value.Load()
}

func (c *Counter) Direction() Direction {
	return Direction(c.direction.Load())
}

// Run ticks until ctx is done or output can no longer be written. Each tick
// prints the current value, applies the direction, then waits TickInterval.
// Notifications are applied as they arrive, including while Run is waiting.
func (c *Counter) Run(ctx context.Context) error {
	pid := c.os.Getpid()
	l := c.l.New("pid", pid)

	resetC, toggleC := c.subscribe()
	defer c.signals.Stop(resetC)
	defer c.signals.Stop(toggleC)

	handlerDone := make(chan struct{})
	defer close(handlerDone)
	go c.handleNotifications(l, handlerDone, resetC, toggleC)

	if c.announceDir != "" {
		a, err := announce(l, c.announceDir, PID(pid), c.clock.Now())
		if err != nil {
			return errors.Wrapf(err, "could not announce counter in %s", c.announceDir)
		}
		defer func() {
			if err := a.Close(); err != nil {
				l.Warn("error withdrawing announcement", "err", err)
			}
		}()
	}

	l.Info("counter running", "direction", c.Direction())
	for {
		c.resetPending.Store(false)
		if _, err := fmt.Fprintf(c.out, "current count is '%d' : %d\n", c.value.Load(), pid); err != nil {
			return errors.Wrap(err, "could not write count")
		}
		c.value.Add(int64(c.direction.Load()))
		// a reset that landed after the load must still be what the next
		// tick prints
		if c.resetPending.Swap(false) {
			c.value.Store(0)
		}

		select {
		case <-ctx.Done():
			l.Info("counter stopping", "reason", ctx.Err())
			return ctx.Err()
		case <-c.clock.After(TickInterval):
		}
	}
}

// subscribe registers for both notification kinds. A buffer of one per kind
// means a notification arriving while another of the same kind is still
// pending is dropped.
func (c *Counter) subscribe() (resetC, toggleC chan os.Signal) {
	resetC = make(chan os.Signal, 1)
	toggleC = make(chan os.Signal, 1)
	c.signals.Notify(resetC, ResetSignal)
	c.signals.Notify(toggleC, ToggleSignal)
	return resetC, toggleC
}

func (c *Counter) handleNotifications(l log15.Logger, done <-chan struct{}, resetC, toggleC <-chan os.Signal) {
	for {
		select {
		case <-done:
			return
		case <-resetC:
			c.Reset()
			l.Debug("counter reset")
		case <-toggleC:
			c.Toggle()
			l.Debug("direction toggled", "direction", c.Direction())
		}
	}
}
