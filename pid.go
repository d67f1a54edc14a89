package infcounter

import (
	"strconv"

	"github.com/pkg/errors"
)

// ErrInvalidPID is returned for process identifiers that are not positive.
// Zero and negative values address process groups in kill(2) and are never
// accepted.
var ErrInvalidPID = errors.New("process identifiers must be positive integers")

// PID identifies a counter process. It is a plain identifier: holding a PID
// says nothing about whether that process still exists.
type PID int

// ParsePID parses a decimal process identifier.
func ParsePID(s string) (PID, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, errors.Wrapf(ErrInvalidPID, "%q is not a number", s)
	}
	pid := PID(n)
	if !pid.Valid() {
		return 0, errors.Wrapf(ErrInvalidPID, "%d", n)
	}
	return pid, nil
}

func (p PID) Valid() bool {
	return p > 0
}

func (p PID) String() string {
	return strconv.Itoa(int(p))
}
