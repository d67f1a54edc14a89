package infcounter

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

const (
	// ResetSignal sets a counter's value back to zero.
	ResetSignal = unix.SIGUSR1
	// ToggleSignal reverses a counter's direction.
	ToggleSignal = unix.SIGUSR2
)

// Action is a control request the operator can issue against a counter. The
// numeric values are the menu codes.
type Action int

const (
	ActionStop Action = iota + 1
	ActionContinue
	ActionToggleDirection
	ActionReset
	ActionTerminate
)

var actionSignals = map[Action]os.Signal{
	ActionStop:            unix.SIGSTOP,
	ActionContinue:        unix.SIGCONT,
	ActionToggleDirection: ToggleSignal,
	ActionReset:           ResetSignal,
	ActionTerminate:       unix.SIGKILL,
}

// ParseAction maps a menu code to an Action. Unknown codes report false.
func ParseAction(code int) (Action, bool) {
	a := Action(code)
	_, ok := actionSignals[a]
	return a, ok
}

// Signal is the signal delivered to the target counter for this action.
func (a Action) Signal() os.Signal {
	return actionSignals[a]
}

func (a Action) String() string {
	switch a {
	case ActionStop:
		return "stop"
	case ActionContinue:
		return "continue"
	case ActionToggleDirection:
		return "toggle-direction"
	case ActionReset:
		return "reset"
	case ActionTerminate:
		return "terminate"
	}
	return fmt.Sprintf("action(%d)", int(a))
}

const actionMenu = "Now select the function you wish to execute:\n" +
	"1) Stop\n" +
	"2) Continue\n" +
	"3) Change the counting direction\n" +
	"4) Reset counter\n" +
	"5) Kill\n"
