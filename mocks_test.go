package infcounter

import (
	"os"
	"sync"
)

type sentSignal struct {
	pid PID
	sig os.Signal
}

type mockOS struct {
	pid int

	mu   sync.Mutex
	sent []sentSignal
	// errs makes signals to the given pids fail
	errs map[PID]error
}

func (m *mockOS) Getpid() int {
	return m.pid
}

func (m *mockOS) FindProcess(pid PID) (processIface, error) {
	return mockProcess{os: m, pid: pid}, nil
}

func (m *mockOS) signals() []sentSignal {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]sentSignal(nil), m.sent...)
}

type mockProcess struct {
	os  *mockOS
	pid PID
}

func (m mockProcess) Signal(s os.Signal) error {
	m.os.mu.Lock()
	defer m.os.mu.Unlock()
	if err := m.os.errs[m.pid]; err != nil {
		return err
	}
	m.os.sent = append(m.os.sent, sentSignal{pid: m.pid, sig: s})
	return nil
}

// mockSignals records the channels a Counter registers so tests can deliver
// notifications directly.
type mockSignals struct {
	mu       sync.Mutex
	channels map[os.Signal]chan<- os.Signal
	ready    chan struct{}
	once     sync.Once
}

func newMockSignals() *mockSignals {
	return &mockSignals{
		channels: map[os.Signal]chan<- os.Signal{},
		ready:    make(chan struct{}),
	}
}

func (m *mockSignals) Notify(c chan<- os.Signal, sig ...os.Signal) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range sig {
		m.channels[s] = c
	}
	if _, ok := m.channels[ResetSignal]; ok {
		if _, ok := m.channels[ToggleSignal]; ok {
			m.once.Do(func() { close(m.ready) })
		}
	}
}

func (m *mockSignals) Stop(c chan<- os.Signal) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for s, ch := range m.channels {
		if ch == c {
			delete(m.channels, s)
		}
	}
}

// send delivers sig the way os/signal does: without blocking, dropping it if
// one is already pending.
func (m *mockSignals) send(sig os.Signal) bool {
	<-m.ready
	m.mu.Lock()
	c := m.channels[sig]
	m.mu.Unlock()
	if c == nil {
		return false
	}
	select {
	case c <- sig:
		return true
	default:
		return false
	}
}
