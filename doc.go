// Package infcounter implements counters that are steered from another
// process with POSIX signals, and the controller that steers them.
//
// A Counter prints its value once a second and then adds its direction (+1
// or -1) to it. Receiving ResetSignal sets the value to zero; receiving
// ToggleSignal reverses the direction. Suspending, resuming and killing a
// counter use the operating system's own SIGSTOP, SIGCONT and SIGKILL, which
// the counter never sees.
//
// A Controller asks an operator for the pids of up to MaxCounters counters,
// then loops: the operator picks a counter and an Action, and the Controller
// dispatches the matching signal without waiting to find out whether it was
// delivered. Killing a counter removes it from the Controller's Registry, and
// the Controller exits when the registry is empty.
//
// Nothing in this package checks that a pid refers to a live counter. Pids
// may optionally be published in an announce directory (see WithAnnounceDir
// and Discover) to help the operator find them, but the Controller still only
// acts on pids it was given.
package infcounter
