package infcounter

import (
	"github.com/inconshreveable/log15"
	"golang.org/x/sync/errgroup"
)

// Dispatcher delivers control actions without waiting for them. Each Dispatch
// runs on its own goroutine and its outcome is never reported to the caller:
// a pid that no longer exists, or that belongs to someone else, fails
// silently apart from a debug log line.
type Dispatcher struct {
	os osIface
	l  log15.Logger
	g  errgroup.Group
}

func newDispatcher(os osIface, l log15.Logger) *Dispatcher {
	return &Dispatcher{os: os, l: l}
}

// Dispatch sends action's signal to pid and returns immediately.
func (d *Dispatcher) Dispatch(pid PID, action Action) {
	sig := action.Signal()
	l := d.l.New("pid", pid, "action", action)
	d.g.Go(func() error {
		p, err := d.os.FindProcess(pid)
		if err != nil {
			l.Debug("could not find process", "err", err)
			return nil
		}
		if err := p.Signal(sig); err != nil {
			l.Debug("signal not delivered", "signal", sig, "err", err)
			return nil
		}
		l.Debug("signal sent", "signal", sig)
		return nil
	})
}

// Wait blocks until every dispatched signal has been handed to the kernel.
// It only exists so that a process about to exit doesn't drop its last
// dispatches.
func (d *Dispatcher) Wait() {
	_ = d.g.Wait()
}
