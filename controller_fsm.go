package infcounter

import "fmt"

// controllerState represents the phases of a controller run. It has the following transitions:
// ∅               → ReadingQuantity
// ReadingQuantity → ReadingPIDs
// ReadingPIDs     → Interacting
// ReadingPIDs     → Exhausted
// Interacting     → Exhausted
//
// The meaning of each state is described above the state's definition below.
type controllerState string

const (
	// ReadingQuantity is the initial state. The operator is asked how many
	// counters will be managed until a number between 0 and MaxCounters is given.
	controllerStateReadingQuantity controllerState = "reading-quantity"
	// ReadingPIDs is the state in which the operator types the counters' pids.
	controllerStateReadingPIDs controllerState = "reading-pids"
	// Interacting is the menu loop. It lasts while the registry is non-empty.
	controllerStateInteracting controllerState = "interacting"
	// Exhausted is terminal: the registry is empty and the run is over.
	controllerStateExhausted controllerState = "exhausted"
)

var validControllerTransitions = map[controllerState][]controllerState{
	controllerStateReadingQuantity: {
		controllerStateReadingPIDs,
	},
	controllerStateReadingPIDs: {
		controllerStateInteracting,
		controllerStateExhausted,
	},
	controllerStateInteracting: {
		controllerStateExhausted,
	},
	controllerStateExhausted: {},
}

func (c *controllerState) canTransitionTo(state controllerState) error {
	for _, target := range validControllerTransitions[*c] {
		if target == state {
			return nil
		}
	}
	return fmt.Errorf("unable to transition from %s to %s", *c, state)
}

func (c *controllerState) transitionTo(state controllerState) error {
	if err := c.canTransitionTo(state); err != nil {
		return err
	}
	*c = state
	return nil
}
