package infcounter

import (
	"fmt"
	"io"
	"slices"

	"github.com/pkg/errors"
)

// MaxCounters is the largest number of counters a Controller will manage.
const MaxCounters = 5

var (
	// ErrRegistryCapacity indicates a registry was asked to hold more than
	// MaxCounters pids.
	ErrRegistryCapacity = errors.New("registry capacity exceeded")
	// ErrNoSuchEntry indicates a 1-based registry index outside [1, Len()].
	ErrNoSuchEntry = errors.New("no such registry entry")
)

// Registry is the ordered list of pids a Controller manages. Entries are
// addressed with 1-based indexes, the way they are displayed. The only
// mutation is Remove, which preserves the order of the remaining entries.
type Registry struct {
	pids []PID
}

// NewRegistry builds a registry holding pids in the given order.
func NewRegistry(pids []PID) (*Registry, error) {
	if len(pids) > MaxCounters {
		return nil, errors.Wrapf(ErrRegistryCapacity, "%d pids requested, at most %d allowed", len(pids), MaxCounters)
	}
	return &Registry{pids: slices.Clone(pids)}, nil
}

func (r *Registry) Len() int {
	return len(r.pids)
}

// At returns the pid displayed at index.
func (r *Registry) At(index int) (PID, error) {
	if index < 1 || index > len(r.pids) {
		return 0, errors.Wrapf(ErrNoSuchEntry, "index %d of %d", index, len(r.pids))
	}
	return r.pids[index-1], nil
}

// Remove deletes the entry at index and shifts every later entry down by one.
// The backing storage shrinks to the new length.
func (r *Registry) Remove(index int) (PID, error) {
	pid, err := r.At(index)
	if err != nil {
		return 0, err
	}
	r.pids = slices.Clip(slices.Delete(r.pids, index-1, index))
	return pid, nil
}

// PIDs returns a copy of the entries in display order.
func (r *Registry) PIDs() []PID {
	return slices.Clone(r.pids)
}

// WriteTo prints the registry as a 1-based numbered list.
func (r *Registry) WriteTo(w io.Writer) (int64, error) {
	var total int64
	for i, pid := range r.pids {
		n, err := fmt.Fprintf(w, "%d) %d\n", i+1, pid)
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}
