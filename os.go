package infcounter

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

type osIface interface {
	Getpid() int
	FindProcess(pid PID) (processIface, error)
}

type realOS struct{}

func (realOS) Getpid() int {
	return os.Getpid()
}

// FindProcess never checks that pid is alive; a stale pid only surfaces as an
// error from Signal.
func (realOS) FindProcess(pid PID) (processIface, error) {
	if !pid.Valid() {
		return nil, errors.Wrapf(ErrInvalidPID, "cannot address pid %d", int(pid))
	}
	return unixProcess(pid), nil
}

type processIface interface {
	Signal(os.Signal) error
}

// unixProcess signals a pid with kill(2).
type unixProcess PID

func (p unixProcess) Signal(sig os.Signal) error {
	s, ok := sig.(syscall.Signal)
	if !ok {
		return errors.Errorf("unsupported signal %v", sig)
	}
	return unix.Kill(int(p), s)
}

// signalSource abstracts signal registration so tests can deliver
// notifications without involving the kernel.
type signalSource interface {
	Notify(c chan<- os.Signal, sig ...os.Signal)
	Stop(c chan<- os.Signal)
}

type realSignals struct{}

func (realSignals) Notify(c chan<- os.Signal, sig ...os.Signal) {
	signal.Notify(c, sig...)
}

func (realSignals) Stop(c chan<- os.Signal) {
	signal.Stop(c)
}
